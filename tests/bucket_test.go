package tests

import (
	"encoding/binary"
	"testing"

	"github.com/escrowfs/escrowfs-contract/common"
	"github.com/escrowfs/escrowfs-contract/contracts/bucket/bucketconst"
	"github.com/escrowfs/escrowfs-contract/contracts/handoff"
	"github.com/escrowfs/escrowfs-contract/contracts/store/storeconst"
	"github.com/nspcc-dev/neo-go/pkg/core/interop/storage"
	"github.com/nspcc-dev/neo-go/pkg/neotest"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/stretchr/testify/require"
)

// newBucket creates a bucket owned by the signer and returns the bucket and
// capability identifiers. Identifiers come from a shared sequence, the suite
// mirrors it.
func (s *contractSuite) newBucket(t *testing.T, owner neotest.Signer, period, window int64) (int64, int64) {
	bucketID, capID := s.idSeq+1, s.idSeq+2
	s.idSeq += 2

	c := s.bucket().WithSigners(owner)
	c.Invoke(t, stackitem.NewStruct([]stackitem.Item{
		stackitem.Make(bucketID),
		stackitem.Make(capID),
	}), "newBucket", owner.ScriptHash(), period, window)

	return bucketID, capID
}

// fillSlot reserves a key and places the object under it.
func (s *contractSuite) fillSlot(t *testing.T, owner neotest.Signer, capID, bucketID, key int64, obj testObject) {
	c := s.bucket().WithSigners(owner)
	c.Invoke(t, stackitem.Null{}, "reserve", capID, bucketID, key)
	c.Invoke(t, stackitem.Null{}, "add", capID, bucketID, key, obj.id[:])
}

func fixedKey(k int64) []byte {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, uint64(k))
	return b
}

func TestNewBucket(t *testing.T) {
	s := newContractSuite(t)
	c := s.bucket()

	owner := c.NewAccount(t)
	bucketID, capID := s.newBucket(t, owner, 10, 3)
	require.EqualValues(t, 1, bucketID)
	require.EqualValues(t, 2, capID)

	c.Invoke(t, stackitem.NewStruct([]stackitem.Item{
		stackitem.Make(bucketID),
		stackitem.Make(10),
		stackitem.Make(3),
		stackitem.Make(0),
	}), "bucketInfo", bucketID)

	c.Invoke(t, stackitem.NewStruct([]stackitem.Item{
		stackitem.Make(capID),
		stackitem.Make(bucketID),
		stackitem.NewByteArray(owner.ScriptHash().BytesBE()),
	}), "capabilityInfo", capID)

	c.Invoke(t, 1, "count")

	// creating a bucket for an account requires its signature
	other := c.NewAccount(t)
	c.WithSigners(other).InvokeFail(t, common.ErrOwnerWitnessFailed,
		"newBucket", owner.ScriptHash(), int64(10), int64(3))

	cOwner := c.WithSigners(owner)
	cOwner.InvokeFail(t, "invalid extension period",
		"newBucket", owner.ScriptHash(), int64(0), int64(0))
	cOwner.InvokeFail(t, "invalid extension unlock window",
		"newBucket", owner.ScriptHash(), int64(10), int64(11))

	s.newBucket(t, other, 5, 0)
	c.Invoke(t, 2, "count")

	c.InvokeFail(t, bucketconst.NotFoundError, "bucketInfo", int64(99))
	c.InvokeFail(t, bucketconst.UnauthorizedError, "capabilityInfo", int64(99))
}

func TestBucketReserveAdd(t *testing.T) {
	s := newContractSuite(t)
	c := s.bucket()

	owner := c.NewAccount(t)
	bucketID, capID := s.newBucket(t, owner, 10, 3)

	obj := dummyObject()
	s.putObject(t, owner, obj, 50)

	cOwner := c.WithSigners(owner)

	// filling an unreserved key fails
	cOwner.InvokeFail(t, bucketconst.KeyNotReservedError, "add", capID, bucketID, int64(7), obj.id[:])

	// a capability of another bucket does not open this one
	stranger := c.NewAccount(t)
	_, strangerCap := s.newBucket(t, stranger, 10, 3)
	c.WithSigners(stranger).InvokeFail(t, bucketconst.UnauthorizedError,
		"reserve", strangerCap, bucketID, int64(7))

	// neither does a capability without its owner's signature
	c.WithSigners(stranger).InvokeFail(t, bucketconst.UnauthorizedError,
		"reserve", capID, bucketID, int64(7))

	// nor an unknown one
	cOwner.InvokeFail(t, bucketconst.UnauthorizedError, "reserve", int64(99), bucketID, int64(7))

	cOwner.Invoke(t, stackitem.Null{}, "reserve", capID, bucketID, int64(7))
	cOwner.InvokeFail(t, bucketconst.DuplicateKeyError, "reserve", capID, bucketID, int64(7))

	// only objects known to the store contract can be added
	unknown := dummyObject()
	cOwner.InvokeFail(t, storeconst.NotFoundError, "add", capID, bucketID, int64(7), unknown.id[:])

	cOwner.Invoke(t, stackitem.Null{}, "add", capID, bucketID, int64(7), obj.id[:])
	cOwner.InvokeFail(t, bucketconst.AlreadyFilledError, "add", capID, bucketID, int64(7), obj.id[:])
	cOwner.InvokeFail(t, bucketconst.DuplicateKeyError, "reserve", capID, bucketID, int64(7))

	cOwner.Invoke(t, obj.id[:], "get", capID, bucketID, int64(7))
	c.Invoke(t, stackitem.Null{}, "keyExists", bucketID, int64(7))
	c.Invoke(t, stackitem.Null{}, "isFilled", bucketID, int64(7))

	// reserved but still empty slot
	cOwner.Invoke(t, stackitem.Null{}, "reserve", capID, bucketID, int64(8))
	c.Invoke(t, stackitem.Null{}, "keyExists", bucketID, int64(8))
	c.InvokeFail(t, bucketconst.SlotEmptyError, "isFilled", bucketID, int64(8))
	cOwner.InvokeFail(t, bucketconst.SlotEmptyError, "get", capID, bucketID, int64(8))

	c.InvokeFail(t, bucketconst.KeyNotFoundError, "keyExists", bucketID, int64(9))
	cOwner.InvokeFail(t, bucketconst.KeyNotFoundError, "get", capID, bucketID, int64(9))
}

func TestBucketRemove(t *testing.T) {
	s := newContractSuite(t)
	c := s.bucket()

	owner := c.NewAccount(t)
	bucketID, capID := s.newBucket(t, owner, 10, 3)

	obj := dummyObject()
	s.putObject(t, owner, obj, 50)
	s.fillSlot(t, owner, capID, bucketID, 7, obj)

	cOwner := c.WithSigners(owner)
	cOwner.InvokeFail(t, bucketconst.KeyNotFoundError, "remove", capID, bucketID, int64(9))

	// a reserved slot holds nothing to remove
	cOwner.Invoke(t, stackitem.Null{}, "reserve", capID, bucketID, int64(8))
	cOwner.InvokeFail(t, bucketconst.SlotEmptyError, "remove", capID, bucketID, int64(8))

	cOwner.Invoke(t, obj.id[:], "remove", capID, bucketID, int64(7))
	c.InvokeFail(t, bucketconst.KeyNotFoundError, "keyExists", bucketID, int64(7))

	// a removed key can be reserved again
	cOwner.Invoke(t, stackitem.Null{}, "reserve", capID, bucketID, int64(7))
}

func TestBucketDepositWithdraw(t *testing.T) {
	s := newContractSuite(t)
	c := s.bucket()

	owner := c.NewAccount(t)
	bucketID, capID := s.newBucket(t, owner, 10, 3)

	payer := c.NewAccount(t)
	s.mint(t, payer.ScriptHash(), 100)

	// depositing someone's assets needs their signature
	c.WithSigners(owner).InvokeFail(t, common.ErrOwnerWitnessFailed,
		"deposit", bucketID, payer.ScriptHash(), int64(60))

	// but anyone may top up any bucket with their own assets
	cPayer := c.WithSigners(payer)
	cPayer.Invoke(t, stackitem.Null{}, "deposit", bucketID, payer.ScriptHash(), int64(60))
	c.Invoke(t, 60, "balanceOf", bucketID)
	s.balance().Invoke(t, 40, "balanceOf", payer.ScriptHash())
	s.balance().Invoke(t, 60, "balanceOf", s.bucketHash)

	cPayer.InvokeFail(t, "can't transfer assets for deposit",
		"deposit", bucketID, payer.ScriptHash(), int64(1000))
	cPayer.InvokeFail(t, bucketconst.NotFoundError,
		"deposit", int64(99), payer.ScriptHash(), int64(1))

	// withdrawal is capability-gated
	cPayer.InvokeFail(t, bucketconst.UnauthorizedError,
		"withdraw", capID, bucketID, payer.ScriptHash(), int64(10))

	cOwner := c.WithSigners(owner)
	cOwner.InvokeFail(t, bucketconst.InsufficientBalanceError,
		"withdraw", capID, bucketID, owner.ScriptHash(), int64(61))

	cOwner.Invoke(t, stackitem.Null{}, "withdraw", capID, bucketID, owner.ScriptHash(), int64(25))
	c.Invoke(t, 35, "balanceOf", bucketID)
	s.balance().Invoke(t, 25, "balanceOf", owner.ScriptHash())
	s.balance().Invoke(t, 35, "balanceOf", s.bucketHash)
}

func TestBucketReceiveAndAdd(t *testing.T) {
	s := newContractSuite(t)
	c := s.bucket()

	owner := c.NewAccount(t)
	bucketID, capID := s.newBucket(t, owner, 10, 3)

	sender := c.NewAccount(t)
	obj := dummyObject()
	token := s.parkObject(t, sender, obj, bucketID)

	cOwner := c.WithSigners(owner)
	cOwner.Invoke(t, stackitem.Null{}, "reserve", capID, bucketID, int64(1))
	cOwner.Invoke(t, stackitem.Null{}, "receiveAndAdd", capID, bucketID, int64(1), token)

	// an identifier which travelled through the handoff contract call comes
	// back as a buffer
	cOwner.Invoke(t, stackitem.NewBuffer(obj.id[:]), "get", capID, bucketID, int64(1))

	// the token is burned on resolution
	cOwner.Invoke(t, stackitem.Null{}, "reserve", capID, bucketID, int64(2))
	cOwner.InvokeFail(t, handoff.NotFoundError, "receiveAndAdd", capID, bucketID, int64(2), token)

	// a parcel addressed to another bucket cannot be claimed
	otherOwner := c.NewAccount(t)
	otherBucket, otherCap := s.newBucket(t, otherOwner, 10, 3)

	obj2 := dummyObject()
	token2 := s.parkObject(t, sender, obj2, bucketID)

	cOther := c.WithSigners(otherOwner)
	cOther.Invoke(t, stackitem.Null{}, "reserve", otherCap, otherBucket, int64(1))
	cOther.InvokeFail(t, handoff.MisaddressedError,
		"receiveAndAdd", otherCap, otherBucket, int64(1), token2)

	// the parcel stays claimable by the right bucket
	cOwner.InvokeFail(t, bucketconst.AlreadyFilledError,
		"receiveAndAdd", capID, bucketID, int64(1), token2)
	cOwner.Invoke(t, stackitem.Null{}, "receiveAndAdd", capID, bucketID, int64(2), token2)
	cOwner.Invoke(t, stackitem.NewBuffer(obj2.id[:]), "get", capID, bucketID, int64(2))
}

func TestBucketRenewWithPayment(t *testing.T) {
	s := newContractSuite(t)
	c := s.bucket()

	owner := c.NewAccount(t)
	bucketID, capID := s.newBucket(t, owner, 10, 3)

	obj := dummyObject()
	s.putObject(t, owner, obj, 20)
	s.fillSlot(t, owner, capID, bucketID, 1, obj)

	payer := c.NewAccount(t)
	s.mint(t, payer.ScriptHash(), 100)
	cPayer := c.WithSigners(payer)

	// spending the payer's assets needs their signature
	c.WithSigners(owner).InvokeFail(t, common.ErrOwnerWitnessFailed,
		"renewWithPayment", bucketID, int64(1), int64(4), payer.ScriptHash(), int64(100))

	cPayer.InvokeFail(t, bucketconst.KeyNotFoundError,
		"renewWithPayment", bucketID, int64(9), int64(4), payer.ScriptHash(), int64(100))

	// the offer must cover the cost
	cPayer.InvokeFail(t, storeconst.InsufficientPaymentError,
		"renewWithPayment", bucketID, int64(1), int64(4), payer.ScriptHash(), extendFee*4-1)

	cPayer.Invoke(t, stackitem.Null{}, "renewWithPayment",
		bucketID, int64(1), int64(4), payer.ScriptHash(), int64(100))
	s.store().Invoke(t, 24, "expirationOf", obj.id[:])

	// only the actual cost left the payer account, the bucket escrow is intact
	s.balance().Invoke(t, 100-extendFee*4, "balanceOf", payer.ScriptHash())
	c.Invoke(t, 0, "balanceOf", bucketID)
}

func TestBucketRenew(t *testing.T) {
	s := newContractSuite(t)
	c := s.bucket()

	owner := c.NewAccount(t)
	bucketID, capID := s.newBucket(t, owner, 10, 3)

	obj := dummyObject()
	s.putObject(t, owner, obj, 50)
	s.fillSlot(t, owner, capID, bucketID, 1, obj)

	payer := c.NewAccount(t)
	s.mint(t, payer.ScriptHash(), 100)
	c.WithSigners(payer).Invoke(t, stackitem.Null{}, "deposit", bucketID, payer.ScriptHash(), int64(100))

	// expiration 50, window 3: renewal opens at epoch 47
	s.tickEpoch(t, 46)
	c.InvokeFail(t, bucketconst.OutsideUnlockWindowError, "renew", bucketID, int64(1))

	s.tickEpoch(t, 48)

	// anyone may trigger an escrow-funded renewal
	stranger := c.NewAccount(t)
	c.WithSigners(stranger).Invoke(t, stackitem.Null{}, "renew", bucketID, int64(1))

	// one extension period is bought, the unspent escrow remainder stays
	s.store().Invoke(t, 60, "expirationOf", obj.id[:])
	c.Invoke(t, 100-extendFee*10, "balanceOf", bucketID)

	// the new expiration closes the window again
	c.InvokeFail(t, bucketconst.OutsideUnlockWindowError, "renew", bucketID, int64(1))

	s.tickEpoch(t, 57)
	c.Invoke(t, stackitem.Null{}, "renew", bucketID, int64(1))
	s.store().Invoke(t, 70, "expirationOf", obj.id[:])
	c.Invoke(t, 0, "balanceOf", bucketID)

	// an empty escrow cannot buy another period
	s.tickEpoch(t, 67)
	c.InvokeFail(t, storeconst.InsufficientPaymentError, "renew", bucketID, int64(1))
}

func TestBucketKeysOf(t *testing.T) {
	s := newContractSuite(t)
	c := s.bucket()

	owner := c.NewAccount(t)
	bucketID, capID := s.newBucket(t, owner, 10, 3)

	keys := []int64{1, 5, 9}
	for _, k := range keys {
		obj := dummyObject()
		s.putObject(t, owner, obj, 50)
		s.fillSlot(t, owner, capID, bucketID, k, obj)
	}

	res, err := c.TestInvoke(t, "keysOf", bucketID)
	require.NoError(t, err)

	iter, ok := res.Pop().Value().(*storage.Iterator)
	require.True(t, ok)

	items := iteratorToArray(iter)
	require.Len(t, items, len(keys))
	for i, k := range keys {
		raw, err := items[i].TryBytes()
		require.NoError(t, err)
		require.Equal(t, fixedKey(k), raw)
	}

	// slots of one bucket are invisible in another
	other := c.NewAccount(t)
	otherBucket, _ := s.newBucket(t, other, 10, 3)

	res, err = c.TestInvoke(t, "keysOf", otherBucket)
	require.NoError(t, err)
	iter, ok = res.Pop().Value().(*storage.Iterator)
	require.True(t, ok)
	require.Empty(t, iteratorToArray(iter))

	c.InvokeFail(t, bucketconst.NotFoundError, "keysOf", int64(99))
}

func TestBucketVersion(t *testing.T) {
	s := newContractSuite(t)
	s.bucket().Invoke(t, common.Version, "version")
	s.store().Invoke(t, common.Version, "version")
	s.epoch().Invoke(t, common.Version, "version")
	s.balance().Invoke(t, common.Version, "version")
	s.handoff().Invoke(t, common.Version, "version")
}
