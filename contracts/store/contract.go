package store

import (
	"github.com/escrowfs/escrowfs-contract/common"
	"github.com/escrowfs/escrowfs-contract/contracts/store/storeconst"
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/iterator"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/crypto"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/std"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

// Object is one stored content blob together with its bookkeeping info.
type Object struct {
	Payload    []byte
	Owner      interop.Hash160
	Expiration int
}

const (
	objectKeyPrefix = 'o'

	balanceContractKey = "balanceScriptHash"
	epochContractKey   = "epochScriptHash"
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
	addrEpoch := args[1].(interop.Hash160)

	if len(addrBalance) != interop.Hash160Len || len(addrEpoch) != interop.Hash160Len {
		panic("incorrect length of contract script hash")
	}

	storage.Put(ctx, balanceContractKey, addrBalance)
	storage.Put(ctx, epochContractKey, addrEpoch)

	contract.Call(addrEpoch, "subscribeForNewEpoch", contract.All, runtime.GetExecutingScriptHash())

	runtime.Log("store contract initialized")
}

// Update method updates contract source code and manifest. It can be invoked
// only by committee.
func Update(nefFile, manifest []byte, data any) {
	if !common.HasUpdateAccess() {
		panic("only committee can update contract")
	}

	management.UpdateWithData(nefFile, manifest, common.AppendVersion(data))
	runtime.Log("store contract updated")
}

// Put method saves a content object on behalf of the owner and returns its
// content-derived identifier. It charges the owner StorageFee per epoch of the
// requested lifetime and sets the expiration to the current epoch plus
// lifetime. The owner signature is required.
func Put(payload []byte, owner interop.Hash160, lifetime int) interop.Hash256 {
	common.CheckOwnerWitness(owner)

	if lifetime <= 0 {
		panic("invalid object lifetime")
	}

	ctx := storage.GetContext()
	id := crypto.Sha256(payload)

	key := append([]byte{objectKeyPrefix}, id...)
	if storage.Get(ctx, key) != nil {
		panic(storeconst.DuplicateError)
	}

	epochAddr := storage.Get(ctx, epochContractKey).(interop.Hash160)
	balanceAddr := storage.Get(ctx, balanceContractKey).(interop.Hash160)

	fee := lifetime * getFeeOrPanic(epochAddr, storeconst.StorageFeeKey)
	if fee > 0 {
		details := common.StorageFeeTransferDetails(id)
		res := contract.Call(balanceAddr, "transferX",
			contract.All,
			owner,
			runtime.GetExecutingScriptHash(),
			fee,
			details,
		)
		if !res.(bool) {
			panic("can't transfer assets for object storage")
		}
	}

	curEpoch := contract.Call(epochAddr, "epoch", contract.ReadOnly).(int)

	obj := Object{
		Payload:    payload,
		Owner:      owner,
		Expiration: curEpoch + lifetime,
	}
	common.SetSerialized(ctx, key, obj)

	runtime.Notify("PutSuccess", id, owner)

	return id
}

// Get method returns a stored object. It panics if the object is missing.
func Get(id interop.Hash256) Object {
	ctx := storage.GetReadOnlyContext()
	return getObject(ctx, id)
}

// ExpirationOf method returns the epoch after which the object is considered
// expired. It panics if the object is missing.
func ExpirationOf(id interop.Hash256) int {
	ctx := storage.GetReadOnlyContext()
	return getObject(ctx, id).Expiration
}

// Extend method advances the expiration of the object by the requested number
// of epochs. The cost is epochs multiplied by the ExtendFee config value; it
// is withdrawn from the payer account and must not exceed the offered limit.
// The actual cost is returned, so that the caller can settle any leftover of
// the offer on its side. Either the payer signature is required or the payer
// must be the calling contract itself.
func Extend(id interop.Hash256, epochs, limit int, payer interop.Hash160) int {
	if epochs <= 0 {
		panic("invalid number of epochs")
	}

	if !runtime.CheckWitness(payer) {
		if !runtime.GetCallingScriptHash().Equals(payer) {
			panic(common.ErrOwnerWitnessFailed)
		}
	}

	ctx := storage.GetContext()
	obj := getObject(ctx, id)

	epochAddr := storage.Get(ctx, epochContractKey).(interop.Hash160)

	cost := epochs * getFeeOrPanic(epochAddr, storeconst.ExtendFeeKey)
	if cost > limit {
		panic(storeconst.InsufficientPaymentError)
	}

	if cost > 0 {
		balanceAddr := storage.Get(ctx, balanceContractKey).(interop.Hash160)
		details := common.ExtendFeeTransferDetails(id)
		res := contract.Call(balanceAddr, "transferX",
			contract.All,
			payer,
			runtime.GetExecutingScriptHash(),
			cost,
			details,
		)
		if !res.(bool) {
			panic("can't transfer assets for lifetime extension")
		}
	}

	obj.Expiration += epochs
	key := append([]byte{objectKeyPrefix}, id...)
	common.SetSerialized(ctx, key, obj)

	runtime.Notify("ExtendSuccess", id, epochs)

	return cost
}

// NewEpoch method removes objects that expired more than CleanupDelta epochs
// ago. It can be invoked only by NewEpoch method of the epoch contract.
func NewEpoch(epochNum int) {
	ctx := storage.GetContext()

	epochAddr := storage.Get(ctx, epochContractKey).(interop.Hash160)
	if !runtime.GetCallingScriptHash().Equals(epochAddr) {
		panic("method must be invoked by epoch contract")
	}

	it := storage.Find(ctx, []byte{objectKeyPrefix}, storage.None)
	for iterator.Next(it) {
		pair := iterator.Value(it).(struct {
			key []byte
			val []byte
		})
		obj := std.Deserialize(pair.val).(Object)

		if obj.Expiration+storeconst.CleanupDelta < epochNum {
			storage.Delete(ctx, pair.key)
			runtime.Notify("ObjectRemoved", interop.Hash256(pair.key[1:]))
		}
	}

	runtime.Log("store contract processed new epoch")
}

// Version returns the version of the contract.
func Version() int {
	return common.Version
}

func getObject(ctx storage.Context, id interop.Hash256) Object {
	key := append([]byte{objectKeyPrefix}, id...)

	data := storage.Get(ctx, key)
	if data == nil {
		panic(storeconst.NotFoundError)
	}

	return std.Deserialize(data.([]byte)).(Object)
}

func getFeeOrPanic(epochAddr interop.Hash160, key string) int {
	fee := contract.Call(epochAddr, "config", contract.ReadOnly, []byte(key))
	if fee == nil {
		panic(key + " config value is missing")
	}

	return fee.(int)
}
