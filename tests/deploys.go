package tests

import (
	"path"
	"testing"

	"github.com/escrowfs/escrowfs-contract/contracts/store/storeconst"
	"github.com/nspcc-dev/neo-go/pkg/neotest"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
)

const (
	epochPath   = "../contracts/epoch"
	balancePath = "../contracts/balance"
	storePath   = "../contracts/store"
	bucketPath  = "../contracts/bucket"
	handoffPath = "../contracts/handoff"
)

// fees used by every test deployment, in the smallest token denomination.
const (
	storageFee = int64(10)
	extendFee  = int64(5)
)

// contractSuite is a fully wired EscrowFS deployment on a test chain.
type contractSuite struct {
	executor *neotest.Executor

	epochHash   util.Uint160
	balanceHash util.Uint160
	storeHash   util.Uint160
	bucketHash  util.Uint160
	handoffHash util.Uint160

	// number of parcels parked through the handoff contract so far, mirrors
	// the contract's token derivation counter
	parkSeq int64
	// last identifier issued by the bucket contract
	idSeq int64
}

// newContractSuite deploys all EscrowFS contracts on a fresh single-node
// chain. Contract hashes are known before deployment, so mutually dependent
// contracts receive each other's addresses in deploy arguments.
func newContractSuite(t *testing.T, config ...any) *contractSuite {
	e := newExecutor(t)

	ctrEpoch := neotest.CompileFile(t, e.CommitteeHash, epochPath, path.Join(epochPath, "config.yml"))
	ctrBalance := neotest.CompileFile(t, e.CommitteeHash, balancePath, path.Join(balancePath, "config.yml"))
	ctrStore := neotest.CompileFile(t, e.CommitteeHash, storePath, path.Join(storePath, "config.yml"))
	ctrBucket := neotest.CompileFile(t, e.CommitteeHash, bucketPath, path.Join(bucketPath, "config.yml"))
	ctrHandoff := neotest.CompileFile(t, e.CommitteeHash, handoffPath, path.Join(handoffPath, "config.yml"))

	cfg := []any{
		[]byte(storeconst.StorageFeeKey), storageFee,
		[]byte(storeconst.ExtendFeeKey), extendFee,
	}
	cfg = append(cfg, config...)

	e.DeployContract(t, ctrEpoch, []any{cfg})
	e.DeployContract(t, ctrBalance, []any{ctrStore.Hash, ctrBucket.Hash})
	e.DeployContract(t, ctrStore, []any{ctrBalance.Hash, ctrEpoch.Hash})
	e.DeployContract(t, ctrBucket, []any{ctrBalance.Hash, ctrStore.Hash, ctrEpoch.Hash, ctrHandoff.Hash})
	e.DeployContract(t, ctrHandoff, []any{ctrStore.Hash, ctrBucket.Hash})

	return &contractSuite{
		executor:    e,
		epochHash:   ctrEpoch.Hash,
		balanceHash: ctrBalance.Hash,
		storeHash:   ctrStore.Hash,
		bucketHash:  ctrBucket.Hash,
		handoffHash: ctrHandoff.Hash,
	}
}

func (s *contractSuite) epoch() *neotest.ContractInvoker {
	return s.executor.CommitteeInvoker(s.epochHash)
}

func (s *contractSuite) balance() *neotest.ContractInvoker {
	return s.executor.CommitteeInvoker(s.balanceHash)
}

func (s *contractSuite) store() *neotest.ContractInvoker {
	return s.executor.CommitteeInvoker(s.storeHash)
}

func (s *contractSuite) bucket() *neotest.ContractInvoker {
	return s.executor.CommitteeInvoker(s.bucketHash)
}

func (s *contractSuite) handoff() *neotest.ContractInvoker {
	return s.executor.CommitteeInvoker(s.handoffHash)
}

// mint credits the account with test assets using the committee multisig.
func (s *contractSuite) mint(t *testing.T, to util.Uint160, amount int64) {
	s.balance().Invoke(t, stackitem.Null{}, "mint", to, amount, []byte{})
}

// tickEpoch moves the chain to the given epoch number.
func (s *contractSuite) tickEpoch(t *testing.T, epoch int64) {
	s.epoch().Invoke(t, stackitem.Null{}, "newEpoch", epoch)
}
