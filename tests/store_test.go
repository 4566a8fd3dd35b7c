package tests

import (
	"crypto/sha256"
	"testing"

	"github.com/escrowfs/escrowfs-contract/common"
	"github.com/escrowfs/escrowfs-contract/contracts/store/storeconst"
	storerpc "github.com/escrowfs/escrowfs-contract/rpc/store"
	"github.com/nspcc-dev/neo-go/pkg/neotest"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/stretchr/testify/require"
)

type testObject struct {
	id      [32]byte
	payload []byte
}

func dummyObject() testObject {
	payload := randomBytes(64)
	return testObject{
		id:      sha256.Sum256(payload),
		payload: payload,
	}
}

// putObject stores an object on behalf of the owner, minting enough assets to
// cover the storage fee.
func (s *contractSuite) putObject(t *testing.T, owner neotest.Signer, obj testObject, lifetime int64) {
	s.mint(t, owner.ScriptHash(), storageFee*lifetime)

	c := s.store().WithSigners(owner)
	c.Invoke(t, obj.id[:], "put", obj.payload, owner.ScriptHash(), lifetime)
}

func TestStorePut(t *testing.T) {
	s := newContractSuite(t)
	c := s.store()

	owner := c.NewAccount(t)
	obj := dummyObject()
	cOwner := c.WithSigners(owner)

	// no assets yet
	cOwner.InvokeFail(t, "can't transfer assets for object storage",
		"put", obj.payload, owner.ScriptHash(), int64(10))

	s.mint(t, owner.ScriptHash(), storageFee*10)

	// the transaction must carry the owner witness
	other := c.NewAccount(t)
	c.WithSigners(other).InvokeFail(t, common.ErrOwnerWitnessFailed,
		"put", obj.payload, owner.ScriptHash(), int64(10))

	cOwner.Invoke(t, obj.id[:], "put", obj.payload, owner.ScriptHash(), int64(10))
	c.Invoke(t, 10, "expirationOf", obj.id[:])
	s.balance().Invoke(t, 0, "balanceOf", owner.ScriptHash())

	cOwner.InvokeFail(t, storeconst.DuplicateError,
		"put", obj.payload, owner.ScriptHash(), int64(10))

	// the whole fee goes to the store contract account
	s.balance().Invoke(t, storageFee*10, "balanceOf", s.storeHash)
}

func TestStoreExpirationOf(t *testing.T) {
	s := newContractSuite(t)
	c := s.store()

	c.InvokeFail(t, storeconst.NotFoundError, "expirationOf", util.Uint256{}.BytesBE())

	owner := c.NewAccount(t)
	obj := dummyObject()

	s.tickEpoch(t, 4)
	s.putObject(t, owner, obj, 10)

	// lifetime counts from the current epoch
	c.Invoke(t, 14, "expirationOf", obj.id[:])
}

func TestStoreExtend(t *testing.T) {
	s := newContractSuite(t)
	c := s.store()

	owner := c.NewAccount(t)
	obj := dummyObject()
	s.putObject(t, owner, obj, 10)

	payer := c.NewAccount(t)
	s.mint(t, payer.ScriptHash(), 100)
	cPayer := c.WithSigners(payer)

	// the offer must cover the cost
	cPayer.InvokeFail(t, storeconst.InsufficientPaymentError,
		"extend", obj.id[:], int64(4), extendFee*4-1, payer.ScriptHash())

	// exactly 4 * ExtendFee is withdrawn, the rest of the offer is untouched
	cPayer.Invoke(t, extendFee*4, "extend", obj.id[:], int64(4), int64(100), payer.ScriptHash())
	c.Invoke(t, 14, "expirationOf", obj.id[:])
	s.balance().Invoke(t, 100-extendFee*4, "balanceOf", payer.ScriptHash())

	// spending someone else's assets is not allowed
	other := c.NewAccount(t)
	c.WithSigners(other).InvokeFail(t, common.ErrOwnerWitnessFailed,
		"extend", obj.id[:], int64(1), int64(100), payer.ScriptHash())
}

func TestStoreCleanup(t *testing.T) {
	s := newContractSuite(t)
	c := s.store()

	owner := c.NewAccount(t)
	obj := dummyObject()
	s.putObject(t, owner, obj, 2)

	// expired objects linger for CleanupDelta epochs
	s.tickEpoch(t, int64(2+storeconst.CleanupDelta))
	c.Invoke(t, 2, "expirationOf", obj.id[:])

	s.tickEpoch(t, int64(2+storeconst.CleanupDelta)+1)
	_, err := c.TestInvoke(t, "expirationOf", obj.id[:])
	require.Error(t, err, "object '%s' should be collected", storerpc.FormatObjectID(util.Uint256(obj.id)))
}

func TestObjectIDFormat(t *testing.T) {
	obj := dummyObject()

	id, err := storerpc.ParseObjectID(storerpc.FormatObjectID(util.Uint256(obj.id)))
	require.NoError(t, err)
	require.Equal(t, util.Uint256(obj.id), id)

	_, err = storerpc.ParseObjectID("not-an-id-0OIl")
	require.Error(t, err)
}
