package store

import (
	"fmt"

	"github.com/mr-tron/base58"
	"github.com/nspcc-dev/neo-go/pkg/util"
)

// FormatObjectID returns the canonical base58 string form of an object
// identifier, the form used in logs and CLI output.
func FormatObjectID(id util.Uint256) string {
	return base58.Encode(id.BytesBE())
}

// ParseObjectID decodes the base58 form produced by FormatObjectID.
func ParseObjectID(s string) (util.Uint256, error) {
	b, err := base58.Decode(s)
	if err != nil {
		return util.Uint256{}, fmt.Errorf("invalid object ID %q: %w", s, err)
	}
	id, err := util.Uint256DecodeBytesBE(b)
	if err != nil {
		return util.Uint256{}, fmt.Errorf("invalid object ID %q: %w", s, err)
	}
	return id, nil
}
