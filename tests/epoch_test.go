package tests

import (
	"math/big"
	"testing"

	"github.com/escrowfs/escrowfs-contract/common"
	"github.com/escrowfs/escrowfs-contract/contracts/store/storeconst"
	"github.com/nspcc-dev/neo-go/pkg/encoding/bigint"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/stretchr/testify/require"
)

func TestDeploySetConfig(t *testing.T) {
	s := newContractSuite(t, "SomeKey", "TheValue")
	c := s.epoch()

	c.Invoke(t, "TheValue", "config", "SomeKey")
	c.Invoke(t, stackitem.NewByteArray(bigint.ToBytes(big.NewInt(storageFee))),
		"config", []byte(storeconst.StorageFeeKey))

	c.Invoke(t, stackitem.Null{}, "setConfig", []byte{}, "SomeKey", "OtherValue")
	c.Invoke(t, "OtherValue", "config", "SomeKey")

	acc := c.NewAccount(t)
	c.WithSigners(acc).InvokeFail(t, common.ErrAlphabetWitnessFailed,
		"setConfig", []byte{}, "SomeKey", "Nope")
}

func TestNewEpoch(t *testing.T) {
	s := newContractSuite(t)
	c := s.epoch()

	c.Invoke(t, 0, "epoch")

	c.Invoke(t, stackitem.Null{}, "newEpoch", 1)
	c.Invoke(t, 1, "epoch")

	// the number must grow monotonically
	c.InvokeFail(t, "invalid epoch", "newEpoch", 1)
	c.InvokeFail(t, "invalid epoch", "newEpoch", 0)

	// gaps are fine
	c.Invoke(t, stackitem.Null{}, "newEpoch", 10)
	c.Invoke(t, 10, "epoch")

	acc := c.NewAccount(t)
	c.WithSigners(acc).InvokeFail(t, common.ErrAlphabetWitnessFailed, "newEpoch", 11)
}

func TestLastEpochBlock(t *testing.T) {
	s := newContractSuite(t)
	c := s.epoch()

	c.Invoke(t, 0, "lastEpochBlock")

	h := c.Invoke(t, stackitem.Null{}, "newEpoch", 1)
	aer := c.CheckHalt(t, h)
	require.NotEmpty(t, aer.Events)

	// CurrentIndex inside the VM is the index of the last persisted block,
	// one behind the block carrying the newEpoch transaction
	blockHeight := c.Chain.BlockHeight()
	c.Invoke(t, blockHeight-1, "lastEpochBlock")
}

func TestNewEpochSubscription(t *testing.T) {
	s := newContractSuite(t)

	// store contract subscribes during deployment, so an epoch tick must
	// reach it without faulting
	s.tickEpoch(t, 1)

	// repeated subscription of the same contract is a no-op
	s.epoch().Invoke(t, stackitem.Null{}, "subscribeForNewEpoch", s.storeHash)
	s.tickEpoch(t, 2)
}
