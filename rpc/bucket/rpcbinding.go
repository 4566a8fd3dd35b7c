// Package bucket contains RPC wrappers for EscrowFS Bucket contract.
package bucket

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/google/uuid"
	"github.com/nspcc-dev/neo-go/pkg/core/transaction"
	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/unwrap"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
)

// BucketBucket is a contract-specific bucket.Bucket type used by its methods.
type BucketBucket struct {
	ID                    *big.Int
	ExtensionPeriod       *big.Int
	ExtensionUnlockWindow *big.Int
	Balance               *big.Int
}

// BucketCapability is a contract-specific bucket.Capability type used by its methods.
type BucketCapability struct {
	ID     *big.Int
	Bucket *big.Int
	Owner  util.Uint160
}

// BucketCreated is a contract-specific bucket.Created type used by its methods.
type BucketCreated struct {
	Bucket     *big.Int
	Capability *big.Int
}

// NewBucketEvent represents "NewBucket" event emitted by the contract.
type NewBucketEvent struct {
	BucketID     *big.Int
	CapabilityID *big.Int
	Owner        util.Uint160
}

// DepositEvent represents "Deposit" event emitted by the contract.
type DepositEvent struct {
	BucketID *big.Int
	From     util.Uint160
	Amount   *big.Int
}

// WithdrawEvent represents "Withdraw" event emitted by the contract.
type WithdrawEvent struct {
	BucketID *big.Int
	To       util.Uint160
	Amount   *big.Int
}

// ReserveEvent represents "Reserve" event emitted by the contract.
type ReserveEvent struct {
	BucketID *big.Int
	Key      *big.Int
}

// AddSuccessEvent represents "AddSuccess" event emitted by the contract.
type AddSuccessEvent struct {
	BucketID *big.Int
	Key      *big.Int
	ObjectID util.Uint256
}

// RemoveSuccessEvent represents "RemoveSuccess" event emitted by the contract.
type RemoveSuccessEvent struct {
	BucketID *big.Int
	Key      *big.Int
	ObjectID util.Uint256
}

// RenewEvent represents "Renew" event emitted by the contract.
type RenewEvent struct {
	BucketID *big.Int
	Key      *big.Int
	Epochs   *big.Int
	Cost     *big.Int
}

// Invoker is used by ContractReader to call various safe methods.
type Invoker interface {
	Call(contract util.Uint160, operation string, params ...any) (*result.Invoke, error)
	CallAndExpandIterator(contract util.Uint160, method string, maxItems int, params ...any) (*result.Invoke, error)
	TerminateSession(sessionID uuid.UUID) error
	TraverseIterator(sessionID uuid.UUID, iterator *result.Iterator, num int) ([]stackitem.Item, error)
}

// Actor is used by Contract to call state-changing methods.
type Actor interface {
	Invoker

	MakeCall(contract util.Uint160, method string, params ...any) (*transaction.Transaction, error)
	MakeRun(script []byte) (*transaction.Transaction, error)
	MakeUnsignedCall(contract util.Uint160, method string, attrs []transaction.Attribute, params ...any) (*transaction.Transaction, error)
	MakeUnsignedRun(script []byte, attrs []transaction.Attribute) (*transaction.Transaction, error)
	SendCall(contract util.Uint160, method string, params ...any) (util.Uint256, uint32, error)
	SendRun(script []byte) (util.Uint256, uint32, error)
}

// ContractReader implements safe contract methods.
type ContractReader struct {
	invoker Invoker
	hash    util.Uint160
}

// Contract implements all contract methods.
type Contract struct {
	ContractReader
	actor Actor
	hash  util.Uint160
}

// NewReader creates an instance of ContractReader using provided contract hash and the given Invoker.
func NewReader(invoker Invoker, hash util.Uint160) *ContractReader {
	return &ContractReader{invoker, hash}
}

// New creates an instance of Contract using provided contract hash and the given Actor.
func New(actor Actor, hash util.Uint160) *Contract {
	return &Contract{ContractReader{actor, hash}, actor, hash}
}

// BalanceOf invokes `balanceOf` method of contract.
func (c *ContractReader) BalanceOf(bucketID *big.Int) (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "balanceOf", bucketID))
}

// BucketInfo invokes `bucketInfo` method of contract.
func (c *ContractReader) BucketInfo(bucketID *big.Int) (*BucketBucket, error) {
	return itemToBucketBucket(unwrap.Item(c.invoker.Call(c.hash, "bucketInfo", bucketID)))
}

// CapabilityInfo invokes `capabilityInfo` method of contract.
func (c *ContractReader) CapabilityInfo(capID *big.Int) (*BucketCapability, error) {
	return itemToBucketCapability(unwrap.Item(c.invoker.Call(c.hash, "capabilityInfo", capID)))
}

// Count invokes `count` method of contract.
func (c *ContractReader) Count() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "count"))
}

// Get invokes `get` method of contract.
func (c *ContractReader) Get(capID *big.Int, bucketID *big.Int, key *big.Int) (util.Uint256, error) {
	return unwrap.Uint256(c.invoker.Call(c.hash, "get", capID, bucketID, key))
}

// IsFilled invokes `isFilled` method of contract.
func (c *ContractReader) IsFilled(bucketID *big.Int, key *big.Int) (*result.Invoke, error) {
	return c.invoker.Call(c.hash, "isFilled", bucketID, key)
}

// KeyExists invokes `keyExists` method of contract.
func (c *ContractReader) KeyExists(bucketID *big.Int, key *big.Int) (*result.Invoke, error) {
	return c.invoker.Call(c.hash, "keyExists", bucketID, key)
}

// KeysOf invokes `keysOf` method of contract.
func (c *ContractReader) KeysOf(bucketID *big.Int) (uuid.UUID, result.Iterator, error) {
	return unwrap.SessionIterator(c.invoker.Call(c.hash, "keysOf", bucketID))
}

// KeysOfExpanded is similar to KeysOf (uses the same contract
// method), but can be useful if the server used doesn't support sessions and
// doesn't expand iterators. It creates a script that will get the specified
// number of result items from the iterator right in the VM and return them to
// you. It's only limited by VM stack and GAS available for RPC invocations.
func (c *ContractReader) KeysOfExpanded(bucketID *big.Int, _numOfIteratorItems int) ([]stackitem.Item, error) {
	return unwrap.Array(c.invoker.CallAndExpandIterator(c.hash, "keysOf", _numOfIteratorItems, bucketID))
}

// Version invokes `version` method of contract.
func (c *ContractReader) Version() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "version"))
}

// Add creates a transaction invoking `add` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Add(capID *big.Int, bucketID *big.Int, key *big.Int, object util.Uint256) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "add", capID, bucketID, key, object)
}

// AddTransaction creates a transaction invoking `add` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) AddTransaction(capID *big.Int, bucketID *big.Int, key *big.Int, object util.Uint256) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "add", capID, bucketID, key, object)
}

// AddUnsigned creates a transaction invoking `add` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) AddUnsigned(capID *big.Int, bucketID *big.Int, key *big.Int, object util.Uint256) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "add", nil, capID, bucketID, key, object)
}

// Deposit creates a transaction invoking `deposit` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Deposit(bucketID *big.Int, from util.Uint160, amount *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "deposit", bucketID, from, amount)
}

// DepositTransaction creates a transaction invoking `deposit` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) DepositTransaction(bucketID *big.Int, from util.Uint160, amount *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "deposit", bucketID, from, amount)
}

// DepositUnsigned creates a transaction invoking `deposit` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) DepositUnsigned(bucketID *big.Int, from util.Uint160, amount *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "deposit", nil, bucketID, from, amount)
}

// NewBucket creates a transaction invoking `newBucket` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) NewBucket(owner util.Uint160, extensionPeriod *big.Int, extensionUnlockWindow *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "newBucket", owner, extensionPeriod, extensionUnlockWindow)
}

// NewBucketTransaction creates a transaction invoking `newBucket` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) NewBucketTransaction(owner util.Uint160, extensionPeriod *big.Int, extensionUnlockWindow *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "newBucket", owner, extensionPeriod, extensionUnlockWindow)
}

// NewBucketUnsigned creates a transaction invoking `newBucket` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) NewBucketUnsigned(owner util.Uint160, extensionPeriod *big.Int, extensionUnlockWindow *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "newBucket", nil, owner, extensionPeriod, extensionUnlockWindow)
}

// ReceiveAndAdd creates a transaction invoking `receiveAndAdd` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) ReceiveAndAdd(capID *big.Int, bucketID *big.Int, key *big.Int, token []byte) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "receiveAndAdd", capID, bucketID, key, token)
}

// ReceiveAndAddTransaction creates a transaction invoking `receiveAndAdd` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) ReceiveAndAddTransaction(capID *big.Int, bucketID *big.Int, key *big.Int, token []byte) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "receiveAndAdd", capID, bucketID, key, token)
}

// ReceiveAndAddUnsigned creates a transaction invoking `receiveAndAdd` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) ReceiveAndAddUnsigned(capID *big.Int, bucketID *big.Int, key *big.Int, token []byte) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "receiveAndAdd", nil, capID, bucketID, key, token)
}

// Remove creates a transaction invoking `remove` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Remove(capID *big.Int, bucketID *big.Int, key *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "remove", capID, bucketID, key)
}

// RemoveTransaction creates a transaction invoking `remove` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) RemoveTransaction(capID *big.Int, bucketID *big.Int, key *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "remove", capID, bucketID, key)
}

// RemoveUnsigned creates a transaction invoking `remove` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) RemoveUnsigned(capID *big.Int, bucketID *big.Int, key *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "remove", nil, capID, bucketID, key)
}

// Renew creates a transaction invoking `renew` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Renew(bucketID *big.Int, key *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "renew", bucketID, key)
}

// RenewTransaction creates a transaction invoking `renew` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) RenewTransaction(bucketID *big.Int, key *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "renew", bucketID, key)
}

// RenewUnsigned creates a transaction invoking `renew` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) RenewUnsigned(bucketID *big.Int, key *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "renew", nil, bucketID, key)
}

// RenewWithPayment creates a transaction invoking `renewWithPayment` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) RenewWithPayment(bucketID *big.Int, key *big.Int, extensionEpochs *big.Int, payer util.Uint160, limit *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "renewWithPayment", bucketID, key, extensionEpochs, payer, limit)
}

// RenewWithPaymentTransaction creates a transaction invoking `renewWithPayment` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) RenewWithPaymentTransaction(bucketID *big.Int, key *big.Int, extensionEpochs *big.Int, payer util.Uint160, limit *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "renewWithPayment", bucketID, key, extensionEpochs, payer, limit)
}

// RenewWithPaymentUnsigned creates a transaction invoking `renewWithPayment` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) RenewWithPaymentUnsigned(bucketID *big.Int, key *big.Int, extensionEpochs *big.Int, payer util.Uint160, limit *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "renewWithPayment", nil, bucketID, key, extensionEpochs, payer, limit)
}

// Reserve creates a transaction invoking `reserve` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Reserve(capID *big.Int, bucketID *big.Int, key *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "reserve", capID, bucketID, key)
}

// ReserveTransaction creates a transaction invoking `reserve` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) ReserveTransaction(capID *big.Int, bucketID *big.Int, key *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "reserve", capID, bucketID, key)
}

// ReserveUnsigned creates a transaction invoking `reserve` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) ReserveUnsigned(capID *big.Int, bucketID *big.Int, key *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "reserve", nil, capID, bucketID, key)
}

// Update creates a transaction invoking `update` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Update(nefFile []byte, manifest []byte, data any) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "update", nefFile, manifest, data)
}

// UpdateTransaction creates a transaction invoking `update` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) UpdateTransaction(nefFile []byte, manifest []byte, data any) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "update", nefFile, manifest, data)
}

// UpdateUnsigned creates a transaction invoking `update` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) UpdateUnsigned(nefFile []byte, manifest []byte, data any) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "update", nil, nefFile, manifest, data)
}

// Withdraw creates a transaction invoking `withdraw` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Withdraw(capID *big.Int, bucketID *big.Int, to util.Uint160, amount *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "withdraw", capID, bucketID, to, amount)
}

// WithdrawTransaction creates a transaction invoking `withdraw` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) WithdrawTransaction(capID *big.Int, bucketID *big.Int, to util.Uint160, amount *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "withdraw", capID, bucketID, to, amount)
}

// WithdrawUnsigned creates a transaction invoking `withdraw` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) WithdrawUnsigned(capID *big.Int, bucketID *big.Int, to util.Uint160, amount *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "withdraw", nil, capID, bucketID, to, amount)
}

// itemToBucketBucket converts stack item into *BucketBucket.
func itemToBucketBucket(item stackitem.Item, err error) (*BucketBucket, error) {
	if err != nil {
		return nil, err
	}
	var res = new(BucketBucket)
	err = res.FromStackItem(item)
	return res, err
}

// FromStackItem retrieves fields of BucketBucket from the given
// [stackitem.Item] or returns an error if it's not possible to do to due
// type mismatch.
func (res *BucketBucket) FromStackItem(item stackitem.Item) error {
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 4 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err   error
	)
	index++
	res.ID, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field ID: %w", err)
	}

	index++
	res.ExtensionPeriod, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field ExtensionPeriod: %w", err)
	}

	index++
	res.ExtensionUnlockWindow, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field ExtensionUnlockWindow: %w", err)
	}

	index++
	res.Balance, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Balance: %w", err)
	}

	return nil
}

// itemToBucketCapability converts stack item into *BucketCapability.
func itemToBucketCapability(item stackitem.Item, err error) (*BucketCapability, error) {
	if err != nil {
		return nil, err
	}
	var res = new(BucketCapability)
	err = res.FromStackItem(item)
	return res, err
}

// FromStackItem retrieves fields of BucketCapability from the given
// [stackitem.Item] or returns an error if it's not possible to do to due
// type mismatch.
func (res *BucketCapability) FromStackItem(item stackitem.Item) error {
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 3 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err   error
	)
	index++
	res.ID, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field ID: %w", err)
	}

	index++
	res.Bucket, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Bucket: %w", err)
	}

	index++
	res.Owner, err = func(item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	}(arr[index])
	if err != nil {
		return fmt.Errorf("field Owner: %w", err)
	}

	return nil
}

// itemToBucketCreated converts stack item into *BucketCreated.
func itemToBucketCreated(item stackitem.Item, err error) (*BucketCreated, error) {
	if err != nil {
		return nil, err
	}
	var res = new(BucketCreated)
	err = res.FromStackItem(item)
	return res, err
}

// FromStackItem retrieves fields of BucketCreated from the given
// [stackitem.Item] or returns an error if it's not possible to do to due
// type mismatch.
func (res *BucketCreated) FromStackItem(item stackitem.Item) error {
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 2 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err   error
	)
	index++
	res.Bucket, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Bucket: %w", err)
	}

	index++
	res.Capability, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Capability: %w", err)
	}

	return nil
}

// NewBucketEventsFromApplicationLog retrieves a set of all emitted events
// with "NewBucket" name from the provided [result.ApplicationLog].
func NewBucketEventsFromApplicationLog(log *result.ApplicationLog) ([]*NewBucketEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*NewBucketEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "NewBucket" {
				continue
			}
			event := new(NewBucketEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize NewBucketEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to NewBucketEvent
// or returns an error if it's not possible to do to due type mismatch.
func (e *NewBucketEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 3 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err   error
	)
	index++
	e.BucketID, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field BucketID: %w", err)
	}

	index++
	e.CapabilityID, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field CapabilityID: %w", err)
	}

	index++
	e.Owner, err = func(item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	}(arr[index])
	if err != nil {
		return fmt.Errorf("field Owner: %w", err)
	}

	return nil
}

// DepositEventsFromApplicationLog retrieves a set of all emitted events
// with "Deposit" name from the provided [result.ApplicationLog].
func DepositEventsFromApplicationLog(log *result.ApplicationLog) ([]*DepositEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*DepositEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "Deposit" {
				continue
			}
			event := new(DepositEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize DepositEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to DepositEvent
// or returns an error if it's not possible to do to due type mismatch.
func (e *DepositEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 3 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err   error
	)
	index++
	e.BucketID, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field BucketID: %w", err)
	}

	index++
	e.From, err = func(item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	}(arr[index])
	if err != nil {
		return fmt.Errorf("field From: %w", err)
	}

	index++
	e.Amount, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Amount: %w", err)
	}

	return nil
}

// WithdrawEventsFromApplicationLog retrieves a set of all emitted events
// with "Withdraw" name from the provided [result.ApplicationLog].
func WithdrawEventsFromApplicationLog(log *result.ApplicationLog) ([]*WithdrawEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*WithdrawEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "Withdraw" {
				continue
			}
			event := new(WithdrawEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize WithdrawEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to WithdrawEvent
// or returns an error if it's not possible to do to due type mismatch.
func (e *WithdrawEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 3 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err   error
	)
	index++
	e.BucketID, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field BucketID: %w", err)
	}

	index++
	e.To, err = func(item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	}(arr[index])
	if err != nil {
		return fmt.Errorf("field To: %w", err)
	}

	index++
	e.Amount, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Amount: %w", err)
	}

	return nil
}

// ReserveEventsFromApplicationLog retrieves a set of all emitted events
// with "Reserve" name from the provided [result.ApplicationLog].
func ReserveEventsFromApplicationLog(log *result.ApplicationLog) ([]*ReserveEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*ReserveEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "Reserve" {
				continue
			}
			event := new(ReserveEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize ReserveEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to ReserveEvent
// or returns an error if it's not possible to do to due type mismatch.
func (e *ReserveEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 2 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err   error
	)
	index++
	e.BucketID, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field BucketID: %w", err)
	}

	index++
	e.Key, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Key: %w", err)
	}

	return nil
}

// AddSuccessEventsFromApplicationLog retrieves a set of all emitted events
// with "AddSuccess" name from the provided [result.ApplicationLog].
func AddSuccessEventsFromApplicationLog(log *result.ApplicationLog) ([]*AddSuccessEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*AddSuccessEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "AddSuccess" {
				continue
			}
			event := new(AddSuccessEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize AddSuccessEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to AddSuccessEvent
// or returns an error if it's not possible to do to due type mismatch.
func (e *AddSuccessEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 3 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err   error
	)
	index++
	e.BucketID, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field BucketID: %w", err)
	}

	index++
	e.Key, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Key: %w", err)
	}

	index++
	e.ObjectID, err = func(item stackitem.Item) (util.Uint256, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint256{}, err
		}
		u, err := util.Uint256DecodeBytesBE(b)
		if err != nil {
			return util.Uint256{}, err
		}
		return u, nil
	}(arr[index])
	if err != nil {
		return fmt.Errorf("field ObjectID: %w", err)
	}

	return nil
}

// RemoveSuccessEventsFromApplicationLog retrieves a set of all emitted events
// with "RemoveSuccess" name from the provided [result.ApplicationLog].
func RemoveSuccessEventsFromApplicationLog(log *result.ApplicationLog) ([]*RemoveSuccessEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*RemoveSuccessEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "RemoveSuccess" {
				continue
			}
			event := new(RemoveSuccessEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize RemoveSuccessEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to RemoveSuccessEvent
// or returns an error if it's not possible to do to due type mismatch.
func (e *RemoveSuccessEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 3 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err   error
	)
	index++
	e.BucketID, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field BucketID: %w", err)
	}

	index++
	e.Key, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Key: %w", err)
	}

	index++
	e.ObjectID, err = func(item stackitem.Item) (util.Uint256, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint256{}, err
		}
		u, err := util.Uint256DecodeBytesBE(b)
		if err != nil {
			return util.Uint256{}, err
		}
		return u, nil
	}(arr[index])
	if err != nil {
		return fmt.Errorf("field ObjectID: %w", err)
	}

	return nil
}

// RenewEventsFromApplicationLog retrieves a set of all emitted events
// with "Renew" name from the provided [result.ApplicationLog].
func RenewEventsFromApplicationLog(log *result.ApplicationLog) ([]*RenewEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*RenewEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "Renew" {
				continue
			}
			event := new(RenewEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize RenewEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to RenewEvent
// or returns an error if it's not possible to do to due type mismatch.
func (e *RenewEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 4 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err   error
	)
	index++
	e.BucketID, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field BucketID: %w", err)
	}

	index++
	e.Key, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Key: %w", err)
	}

	index++
	e.Epochs, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Epochs: %w", err)
	}

	index++
	e.Cost, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Cost: %w", err)
	}

	return nil
}
