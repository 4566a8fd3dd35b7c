package bucket

import (
	"github.com/escrowfs/escrowfs-contract/common"
	"github.com/escrowfs/escrowfs-contract/contracts/bucket/bucketconst"
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/convert"
	"github.com/nspcc-dev/neo-go/pkg/interop/iterator"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/std"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

type (
	// Bucket is one keyed registry of stored objects with its escrow balance.
	Bucket struct {
		ID                    int
		ExtensionPeriod       int
		ExtensionUnlockWindow int
		Balance               int
	}

	// Capability is the admin token of exactly one bucket. Mutating methods
	// accept a capability ID and require the owner signature.
	Capability struct {
		ID     int
		Bucket int
		Owner  interop.Hash160
	}

	// Slot is one key of a bucket. A reserved slot holds no object yet.
	Slot struct {
		Filled bool
		Object interop.Hash256
	}

	// Created is returned by NewBucket and carries the identifiers of the
	// fresh bucket and its admin capability.
	Created struct {
		Bucket     int
		Capability int
	}
)

const (
	bucketKeyPrefix     = 'i'
	capabilityKeyPrefix = 'c'
	slotKeyPrefix       = 's'
	counterKey          = "counter"

	balanceContractKey = "balanceScriptHash"
	storeContractKey   = "storeScriptHash"
	epochContractKey   = "epochScriptHash"
	handoffContractKey = "handoffScriptHash"

	// slot keys and bucket identifiers are padded to this width so that
	// per-bucket slot ranges never overlap in the storage keyspace.
	idWidth = 8
)

// nolint:deadcode,unused
func _deploy(data any, isUpdate bool) {
	ctx := storage.GetContext()
	if isUpdate {
		args := data.([]any)
		common.CheckVersion(args[len(args)-1].(int))
		return
	}

	args := data.([]any)
	addrBalance := args[0].(interop.Hash160)
	addrStore := args[1].(interop.Hash160)
	addrEpoch := args[2].(interop.Hash160)
	addrHandoff := args[3].(interop.Hash160)

	if len(addrBalance) != interop.Hash160Len ||
		len(addrStore) != interop.Hash160Len ||
		len(addrEpoch) != interop.Hash160Len ||
		len(addrHandoff) != interop.Hash160Len {
		panic("incorrect length of contract script hash")
	}

	storage.Put(ctx, balanceContractKey, addrBalance)
	storage.Put(ctx, storeContractKey, addrStore)
	storage.Put(ctx, epochContractKey, addrEpoch)
	storage.Put(ctx, handoffContractKey, addrHandoff)

	runtime.Log("bucket contract initialized")
}

// Update method updates contract source code and manifest. It can be invoked
// only by committee.
func Update(nefFile, manifest []byte, data any) {
	if !common.HasUpdateAccess() {
		panic("only committee can update contract")
	}

	management.UpdateWithData(nefFile, manifest, common.AppendVersion(data))
	runtime.Log("bucket contract updated")
}

// NewBucket method creates an empty bucket together with its admin capability
// owned by the given account and returns both identifiers. ExtensionPeriod is
// the lifetime extension bought by every escrow-funded renewal,
// extensionUnlockWindow is the number of epochs before an object's expiration
// during which such a renewal is allowed. The owner signature is required.
func NewBucket(owner interop.Hash160, extensionPeriod, extensionUnlockWindow int) Created {
	common.CheckOwnerWitness(owner)

	if extensionPeriod <= 0 {
		panic("invalid extension period")
	}
	if extensionUnlockWindow < 0 || extensionUnlockWindow > extensionPeriod {
		panic("invalid extension unlock window")
	}

	ctx := storage.GetContext()

	bucketID := nextID(ctx)
	capID := nextID(ctx)

	b := Bucket{
		ID:                    bucketID,
		ExtensionPeriod:       extensionPeriod,
		ExtensionUnlockWindow: extensionUnlockWindow,
		Balance:               0,
	}
	c := Capability{
		ID:     capID,
		Bucket: bucketID,
		Owner:  owner,
	}

	common.SetSerialized(ctx, bucketKey(bucketID), b)
	common.SetSerialized(ctx, capabilityKey(capID), c)

	runtime.Notify("NewBucket", bucketID, capID, owner)

	return Created{Bucket: bucketID, Capability: capID}
}

// Deposit method escrows assets of the payer into the bucket balance. Anyone
// may top up any bucket, so no capability is needed, but moving the payer's
// assets still requires the payer signature.
func Deposit(bucketID int, from interop.Hash160, amount int) {
	common.CheckOwnerWitness(from)

	if amount <= 0 {
		panic("invalid deposit amount")
	}

	ctx := storage.GetContext()
	b := getBucket(ctx, bucketID)

	balanceAddr := storage.Get(ctx, balanceContractKey).(interop.Hash160)
	details := common.DepositTransferDetails(fixedID(bucketID))
	res := contract.Call(balanceAddr, "transferX",
		contract.All,
		from,
		runtime.GetExecutingScriptHash(),
		amount,
		details,
	)
	if !res.(bool) {
		panic("can't transfer assets for deposit")
	}

	b.Balance += amount
	common.SetSerialized(ctx, bucketKey(bucketID), b)

	runtime.Notify("Deposit", bucketID, from, amount)
}

// Withdraw method releases escrowed assets from the bucket balance to the
// given account. It requires the bucket capability and fails if the escrow
// does not cover the amount.
func Withdraw(capID, bucketID int, to interop.Hash160, amount int) {
	ctx := storage.GetContext()
	checkCapability(ctx, capID, bucketID)

	if amount <= 0 {
		panic("invalid withdrawal amount")
	}

	b := getBucket(ctx, bucketID)
	if amount > b.Balance {
		panic(bucketconst.InsufficientBalanceError)
	}

	balanceAddr := storage.Get(ctx, balanceContractKey).(interop.Hash160)
	details := common.WithdrawTransferDetails(fixedID(bucketID))
	res := contract.Call(balanceAddr, "transferX",
		contract.All,
		runtime.GetExecutingScriptHash(),
		to,
		amount,
		details,
	)
	if !res.(bool) {
		panic("can't transfer assets for withdrawal")
	}

	b.Balance -= amount
	common.SetSerialized(ctx, bucketKey(bucketID), b)

	runtime.Notify("Withdraw", bucketID, to, amount)
}

// Reserve method claims a key in the bucket without filling it. The key must
// not be reserved or filled already. It requires the bucket capability.
func Reserve(capID, bucketID, key int) {
	ctx := storage.GetContext()
	checkCapability(ctx, capID, bucketID)
	getBucket(ctx, bucketID)

	sk := slotKey(bucketID, key)
	if storage.Get(ctx, sk) != nil {
		panic(bucketconst.DuplicateKeyError)
	}

	common.SetSerialized(ctx, sk, Slot{})

	runtime.Notify("Reserve", bucketID, key)
}

// Add method fills a previously reserved slot with a stored object. The
// object must exist in the store contract. It requires the bucket capability.
func Add(capID, bucketID, key int, object interop.Hash256) {
	ctx := storage.GetContext()
	checkCapability(ctx, capID, bucketID)

	if len(object) != interop.Hash256Len {
		panic("invalid object identifier")
	}

	storeAddr := storage.Get(ctx, storeContractKey).(interop.Hash160)
	contract.Call(storeAddr, "expirationOf", contract.ReadOnly, object)

	fillSlot(ctx, bucketID, key, object)
}

// ReceiveAndAdd method redeems a handoff token addressed to the bucket and
// fills a previously reserved slot with the parked object. It requires the
// bucket capability.
func ReceiveAndAdd(capID, bucketID, key int, token []byte) {
	ctx := storage.GetContext()
	checkCapability(ctx, capID, bucketID)

	handoffAddr := storage.Get(ctx, handoffContractKey).(interop.Hash160)
	object := contract.Call(handoffAddr, "resolve", contract.All, token, bucketID).(interop.Hash256)

	fillSlot(ctx, bucketID, key, object)
}

// Get method returns the object stored under the key. It requires the bucket
// capability and fails on missing keys and reserved-but-empty slots.
func Get(capID, bucketID, key int) interop.Hash256 {
	ctx := storage.GetReadOnlyContext()
	checkCapability(ctx, capID, bucketID)

	return filledSlot(ctx, bucketID, key).Object
}

// Remove method deletes the slot under the key and returns the object it
// held. The slot must be filled. It requires the bucket capability.
func Remove(capID, bucketID, key int) interop.Hash256 {
	ctx := storage.GetContext()
	checkCapability(ctx, capID, bucketID)

	s := filledSlot(ctx, bucketID, key)
	storage.Delete(ctx, slotKey(bucketID, key))

	runtime.Notify("RemoveSuccess", bucketID, key, s.Object)

	return s.Object
}

// KeyExists method panics if there is no slot under the key, reserved slots
// count. It needs no capability.
func KeyExists(bucketID, key int) {
	ctx := storage.GetReadOnlyContext()
	getBucket(ctx, bucketID)

	if storage.Get(ctx, slotKey(bucketID, key)) == nil {
		panic(bucketconst.KeyNotFoundError)
	}
}

// IsFilled method panics if there is no slot under the key or the slot holds
// no object. It needs no capability.
func IsFilled(bucketID, key int) {
	ctx := storage.GetReadOnlyContext()
	getBucket(ctx, bucketID)

	filledSlot(ctx, bucketID, key)
}

// RenewWithPayment method extends the lifetime of the object under the key at
// the expense of the payer, bypassing the bucket escrow. The store contract
// withdraws the actual cost from the payer up to the offered limit, anything
// above the cost stays untouched on the payer account. The payer signature is
// required, no capability is needed.
func RenewWithPayment(bucketID, key, extensionEpochs int, payer interop.Hash160, limit int) {
	common.CheckOwnerWitness(payer)

	if extensionEpochs <= 0 {
		panic("invalid number of epochs")
	}

	ctx := storage.GetContext()
	getBucket(ctx, bucketID)
	s := filledSlot(ctx, bucketID, key)

	storeAddr := storage.Get(ctx, storeContractKey).(interop.Hash160)
	cost := contract.Call(storeAddr, "extend",
		contract.All,
		s.Object,
		extensionEpochs,
		limit,
		payer,
	).(int)

	runtime.Notify("Renew", bucketID, key, extensionEpochs, cost)
}

// Renew method extends the lifetime of the object under the key by the
// bucket's extension period at the expense of the bucket escrow. The whole
// escrow balance is offered to the store contract, the unconsumed remainder
// stays escrowed. Renewal is allowed only once the current epoch enters the
// unlock window before the object's expiration. It needs no capability, any
// account may trigger it.
func Renew(bucketID, key int) {
	ctx := storage.GetContext()
	b := getBucket(ctx, bucketID)
	s := filledSlot(ctx, bucketID, key)

	storeAddr := storage.Get(ctx, storeContractKey).(interop.Hash160)
	epochAddr := storage.Get(ctx, epochContractKey).(interop.Hash160)

	expiration := contract.Call(storeAddr, "expirationOf", contract.ReadOnly, s.Object).(int)
	curEpoch := contract.Call(epochAddr, "epoch", contract.ReadOnly).(int)

	if curEpoch < expiration-b.ExtensionUnlockWindow {
		panic(bucketconst.OutsideUnlockWindowError)
	}

	cost := contract.Call(storeAddr, "extend",
		contract.All,
		s.Object,
		b.ExtensionPeriod,
		b.Balance,
		runtime.GetExecutingScriptHash(),
	).(int)

	b.Balance -= cost
	common.SetSerialized(ctx, bucketKey(bucketID), b)

	runtime.Notify("Renew", bucketID, key, b.ExtensionPeriod, cost)
}

// BucketInfo method returns the bucket parameters and escrow balance.
func BucketInfo(bucketID int) Bucket {
	ctx := storage.GetReadOnlyContext()
	return getBucket(ctx, bucketID)
}

// BalanceOf method returns the escrow balance of the bucket.
func BalanceOf(bucketID int) int {
	ctx := storage.GetReadOnlyContext()
	return getBucket(ctx, bucketID).Balance
}

// CapabilityInfo method returns the capability record.
func CapabilityInfo(capID int) Capability {
	ctx := storage.GetReadOnlyContext()
	return getCapability(ctx, capID)
}

// KeysOf method returns an iterator over the raw slot keys of the bucket.
// Each key is a little-endian integer padded to a fixed width.
func KeysOf(bucketID int) iterator.Iterator {
	ctx := storage.GetReadOnlyContext()
	getBucket(ctx, bucketID)

	prefix := append([]byte{slotKeyPrefix}, fixedID(bucketID)...)
	return storage.Find(ctx, prefix, storage.KeysOnly|storage.RemovePrefix)
}

// Count method returns the number of buckets ever created and not yet
// deleted.
func Count() int {
	count := 0
	ctx := storage.GetReadOnlyContext()
	it := storage.Find(ctx, []byte{bucketKeyPrefix}, storage.KeysOnly)
	for iterator.Next(it) {
		count++
	}
	return count
}

// Version returns the version of the contract.
func Version() int {
	return common.Version
}

func checkCapability(ctx storage.Context, capID, bucketID int) Capability {
	c := getCapability(ctx, capID)
	if c.Bucket != bucketID {
		panic(bucketconst.UnauthorizedError)
	}

	if !runtime.CheckWitness(c.Owner) {
		panic(bucketconst.UnauthorizedError)
	}

	return c
}

func fillSlot(ctx storage.Context, bucketID, key int, object interop.Hash256) {
	sk := slotKey(bucketID, key)

	data := storage.Get(ctx, sk)
	if data == nil {
		panic(bucketconst.KeyNotReservedError)
	}

	s := std.Deserialize(data.([]byte)).(Slot)
	if s.Filled {
		panic(bucketconst.AlreadyFilledError)
	}

	s.Filled = true
	s.Object = object
	common.SetSerialized(ctx, sk, s)

	runtime.Notify("AddSuccess", bucketID, key, object)
}

func filledSlot(ctx storage.Context, bucketID, key int) Slot {
	data := storage.Get(ctx, slotKey(bucketID, key))
	if data == nil {
		panic(bucketconst.KeyNotFoundError)
	}

	s := std.Deserialize(data.([]byte)).(Slot)
	if !s.Filled {
		panic(bucketconst.SlotEmptyError)
	}

	return s
}

func getBucket(ctx storage.Context, bucketID int) Bucket {
	data := storage.Get(ctx, bucketKey(bucketID))
	if data == nil {
		panic(bucketconst.NotFoundError)
	}

	return std.Deserialize(data.([]byte)).(Bucket)
}

func getCapability(ctx storage.Context, capID int) Capability {
	data := storage.Get(ctx, capabilityKey(capID))
	if data == nil {
		panic(bucketconst.UnauthorizedError)
	}

	return std.Deserialize(data.([]byte)).(Capability)
}

func nextID(ctx storage.Context) int {
	id := 1
	if v := storage.Get(ctx, counterKey); v != nil {
		id = v.(int) + 1
	}
	storage.Put(ctx, counterKey, id)
	return id
}

func bucketKey(bucketID int) []byte {
	return append([]byte{bucketKeyPrefix}, fixedID(bucketID)...)
}

func capabilityKey(capID int) []byte {
	return append([]byte{capabilityKeyPrefix}, fixedID(capID)...)
}

func slotKey(bucketID, key int) []byte {
	k := append([]byte{slotKeyPrefix}, fixedID(bucketID)...)
	return append(k, fixedID(key)...)
}

func fixedID(id int) []byte {
	if id < 0 {
		panic("negative identifier")
	}

	b := convert.ToBytes(id)
	if len(b) > idWidth {
		panic("identifier is too large")
	}
	for len(b) < idWidth {
		b = append(b, 0)
	}
	return b
}
