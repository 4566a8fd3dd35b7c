package handoff

import (
	"github.com/escrowfs/escrowfs-contract/common"
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/crypto"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/std"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

// Parcel is a parked object waiting to be claimed by its target bucket.
type Parcel struct {
	Object interop.Hash256
	Bucket int
	From   interop.Hash160
}

const (
	parcelKeyPrefix = 't'
	counterKey      = "counter"

	storeContractKey  = "storeScriptHash"
	bucketContractKey = "bucketScriptHash"

	// NotFoundError is returned if the handoff token is unknown or already spent.
	NotFoundError = "handoff token does not exist"
	// MisaddressedError is returned if the token is claimed for a bucket other
	// than the one it was parked for.
	MisaddressedError = "object is parked for another bucket"
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
	addrStore := args[0].(interop.Hash160)
	addrBucket := args[1].(interop.Hash160)

	if len(addrStore) != interop.Hash160Len || len(addrBucket) != interop.Hash160Len {
		panic("incorrect length of contract script hash")
	}

	storage.Put(ctx, storeContractKey, addrStore)
	storage.Put(ctx, bucketContractKey, addrBucket)

	runtime.Log("handoff contract initialized")
}

// Update method updates contract source code and manifest. It can be invoked
// only by committee.
func Update(nefFile, manifest []byte, data any) {
	if !common.HasUpdateAccess() {
		panic("only committee can update contract")
	}

	management.UpdateWithData(nefFile, manifest, common.AppendVersion(data))
	runtime.Log("handoff contract updated")
}

// Park method records an intent to hand a stored object over to the given
// bucket and returns an opaque token that the bucket side redeems later. The
// object must exist in the store contract. The sender signature is required.
func Park(object interop.Hash256, bucket int, from interop.Hash160) []byte {
	common.CheckOwnerWitness(from)

	ctx := storage.GetContext()

	storeAddr := storage.Get(ctx, storeContractKey).(interop.Hash160)
	contract.Call(storeAddr, "expirationOf", contract.ReadOnly, object)

	seq := 1
	if v := storage.Get(ctx, counterKey); v != nil {
		seq = v.(int) + 1
	}
	storage.Put(ctx, counterKey, seq)

	parcel := Parcel{
		Object: object,
		Bucket: bucket,
		From:   from,
	}

	token := crypto.Sha256(std.Serialize([]any{object, bucket, seq}))
	common.SetSerialized(ctx, append([]byte{parcelKeyPrefix}, token...), parcel)

	runtime.Notify("Parked", token, object, bucket)

	return token
}

// Resolve method redeems a handoff token on behalf of the target bucket and
// returns the parked object identifier. The token is burned, a second resolve
// of the same token fails. It can be invoked only by the bucket contract.
func Resolve(token []byte, bucket int) interop.Hash256 {
	ctx := storage.GetContext()

	bucketAddr := storage.Get(ctx, bucketContractKey).(interop.Hash160)
	if !runtime.GetCallingScriptHash().Equals(bucketAddr) {
		panic("method must be invoked by bucket contract")
	}

	parcel := getParcel(ctx, token)
	if parcel.Bucket != bucket {
		panic(MisaddressedError)
	}

	storage.Delete(ctx, append([]byte{parcelKeyPrefix}, token...))

	runtime.Notify("Resolved", token, parcel.Object, bucket)

	return parcel.Object
}

// Info method returns a parked parcel without consuming the token.
func Info(token []byte) Parcel {
	ctx := storage.GetReadOnlyContext()
	return getParcel(ctx, token)
}

// Version returns the version of the contract.
func Version() int {
	return common.Version
}

func getParcel(ctx storage.Context, token []byte) Parcel {
	data := storage.Get(ctx, append([]byte{parcelKeyPrefix}, token...))
	if data == nil {
		panic(NotFoundError)
	}

	return std.Deserialize(data.([]byte)).(Parcel)
}
