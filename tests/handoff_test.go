package tests

import (
	"crypto/sha256"
	"testing"

	"github.com/escrowfs/escrowfs-contract/common"
	"github.com/escrowfs/escrowfs-contract/contracts/handoff"
	"github.com/nspcc-dev/neo-go/pkg/neotest"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/stretchr/testify/require"
)

// expectedToken reproduces handoff token derivation: SHA-256 over the
// serialized [object, bucket, seq] triplet, where seq is the contract's park
// counter.
func expectedToken(t *testing.T, objectID []byte, bucketID, seq int64) []byte {
	arr := stackitem.NewArray([]stackitem.Item{
		stackitem.NewByteArray(objectID),
		stackitem.Make(bucketID),
		stackitem.Make(seq),
	})
	data, err := stackitem.Serialize(arr)
	require.NoError(t, err)

	h := sha256.Sum256(data)
	return h[:]
}

// parkObject stores an object and parks it for the given bucket, returning
// the handoff token.
func (s *contractSuite) parkObject(t *testing.T, sender neotest.Signer, obj testObject, bucketID int64) []byte {
	s.putObject(t, sender, obj, 50)

	s.parkSeq++
	token := expectedToken(t, obj.id[:], bucketID, s.parkSeq)

	c := s.handoff().WithSigners(sender)
	c.Invoke(t, token, "park", obj.id[:], bucketID, sender.ScriptHash())
	return token
}

func TestHandoffPark(t *testing.T) {
	s := newContractSuite(t)
	c := s.handoff()

	sender := c.NewAccount(t)
	obj := dummyObject()

	// unknown objects cannot be parked
	c.WithSigners(sender).InvokeFail(t, "object does not exist",
		"park", obj.id[:], int64(1), sender.ScriptHash())

	s.putObject(t, sender, obj, 50)

	// the sender witness is mandatory
	other := c.NewAccount(t)
	c.WithSigners(other).InvokeFail(t, common.ErrOwnerWitnessFailed,
		"park", obj.id[:], int64(1), sender.ScriptHash())

	cSender := c.WithSigners(sender)
	token := expectedToken(t, obj.id[:], 1, 1)
	cSender.Invoke(t, token, "park", obj.id[:], int64(1), sender.ScriptHash())

	// the parcel is visible until it is resolved
	info, err := c.TestInvoke(t, "info", token)
	require.NoError(t, err)
	parcel := info.Pop().Array()
	id, err := parcel[0].TryBytes()
	require.NoError(t, err)
	require.Equal(t, obj.id[:], id)

	// two parks of the same object yield distinct tokens
	token2 := expectedToken(t, obj.id[:], 1, 2)
	require.NotEqual(t, token, token2)
	cSender.Invoke(t, token2, "park", obj.id[:], int64(1), sender.ScriptHash())
}

func TestHandoffResolve(t *testing.T) {
	s := newContractSuite(t)
	c := s.handoff()

	sender := c.NewAccount(t)
	obj := dummyObject()
	token := s.parkObject(t, sender, obj, 1)

	// only the bucket contract resolves tokens
	c.InvokeFail(t, "method must be invoked by bucket contract", "resolve", token, int64(1))
	c.WithSigners(sender).InvokeFail(t, "method must be invoked by bucket contract",
		"resolve", token, int64(1))

	c.InvokeFail(t, handoff.NotFoundError, "info", randomBytes(32))
}
