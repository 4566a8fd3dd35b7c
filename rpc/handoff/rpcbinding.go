// Package handoff contains RPC wrappers for EscrowFS Handoff contract.
package handoff

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

// HandoffParcel is a contract-specific handoff.Parcel type used by its methods.
type HandoffParcel struct {
	Object util.Uint256
	Bucket *big.Int
	From   util.Uint160
}

// ParkedEvent represents "Parked" event emitted by the contract.
type ParkedEvent struct {
	Token    util.Uint256
	ObjectID util.Uint256
	BucketID *big.Int
}

// ResolvedEvent represents "Resolved" event emitted by the contract.
type ResolvedEvent struct {
	Token    []byte
	ObjectID util.Uint256
	BucketID *big.Int
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

// Info invokes `info` method of contract.
func (c *ContractReader) Info(token []byte) (*HandoffParcel, error) {
	return itemToHandoffParcel(unwrap.Item(c.invoker.Call(c.hash, "info", token)))
}

// Version invokes `version` method of contract.
func (c *ContractReader) Version() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "version"))
}

// Park creates a transaction invoking `park` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Park(object util.Uint256, bucket *big.Int, from util.Uint160) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "park", object, bucket, from)
}

// ParkTransaction creates a transaction invoking `park` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) ParkTransaction(object util.Uint256, bucket *big.Int, from util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "park", object, bucket, from)
}

// ParkUnsigned creates a transaction invoking `park` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) ParkUnsigned(object util.Uint256, bucket *big.Int, from util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "park", nil, object, bucket, from)
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

// itemToHandoffParcel converts stack item into *HandoffParcel.
func itemToHandoffParcel(item stackitem.Item, err error) (*HandoffParcel, error) {
	if err != nil {
		return nil, err
	}
	var res = new(HandoffParcel)
	err = res.FromStackItem(item)
	return res, err
}

// FromStackItem retrieves fields of HandoffParcel from the given
// [stackitem.Item] or returns an error if it's not possible to do to due
// type mismatch.
func (res *HandoffParcel) FromStackItem(item stackitem.Item) error {
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
	res.Object, err = func(item stackitem.Item) (util.Uint256, error) {
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
		return fmt.Errorf("field Object: %w", err)
	}

	index++
	res.Bucket, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Bucket: %w", err)
	}

	index++
	res.From, err = func(item stackitem.Item) (util.Uint160, error) {
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

	return nil
}

// ParkedEventsFromApplicationLog retrieves a set of all emitted events
// with "Parked" name from the provided [result.ApplicationLog].
func ParkedEventsFromApplicationLog(log *result.ApplicationLog) ([]*ParkedEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*ParkedEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "Parked" {
				continue
			}
			event := new(ParkedEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize ParkedEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to ParkedEvent
// or returns an error if it's not possible to do to due type mismatch.
func (e *ParkedEvent) FromStackItem(item *stackitem.Array) error {
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
	e.Token, err = func(item stackitem.Item) (util.Uint256, error) {
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
		return fmt.Errorf("field Token: %w", err)
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

	index++
	e.BucketID, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field BucketID: %w", err)
	}

	return nil
}

// ResolvedEventsFromApplicationLog retrieves a set of all emitted events
// with "Resolved" name from the provided [result.ApplicationLog].
func ResolvedEventsFromApplicationLog(log *result.ApplicationLog) ([]*ResolvedEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*ResolvedEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "Resolved" {
				continue
			}
			event := new(ResolvedEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize ResolvedEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to ResolvedEvent
// or returns an error if it's not possible to do to due type mismatch.
func (e *ResolvedEvent) FromStackItem(item *stackitem.Array) error {
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
	e.Token, err = arr[index].TryBytes()
	if err != nil {
		return fmt.Errorf("field Token: %w", err)
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

	index++
	e.BucketID, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field BucketID: %w", err)
	}

	return nil
}
