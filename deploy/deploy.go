// Package deploy provides EscrowFS contract suite deployment routine.
package deploy

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/actor"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/management"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/manifest"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/nef"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/wallet"
	"go.uber.org/zap"
)

// Blockchain groups services provided by particular Neo blockchain network
// representing FS chain that are required for its deployment.
type Blockchain interface {
	// RPCActor groups functions needed to compose and send transactions to the
	// blockchain.
	actor.RPCActor

	// GetContractStateByHash returns network state of the smart contract by its
	// address. GetContractStateByHash returns error with 'Unknown contract'
	// substring if requested contract is missing.
	GetContractStateByHash(util.Uint160) (*state.Contract, error)
}

// CommonDeployPrm groups common deployment parameters of the smart contract.
type CommonDeployPrm struct {
	NEF      nef.File
	Manifest manifest.Manifest
}

// EpochContractPrm groups deployment parameters of the epoch contract.
type EpochContractPrm struct {
	Common CommonDeployPrm
	Config NetworkConfiguration
}

// BalanceContractPrm groups deployment parameters of the balance contract.
type BalanceContractPrm struct {
	Common CommonDeployPrm
}

// StoreContractPrm groups deployment parameters of the store contract.
type StoreContractPrm struct {
	Common CommonDeployPrm
}

// BucketContractPrm groups deployment parameters of the bucket contract.
type BucketContractPrm struct {
	Common CommonDeployPrm
}

// HandoffContractPrm groups deployment parameters of the handoff contract.
type HandoffContractPrm struct {
	Common CommonDeployPrm
}

// Prm groups all parameters of the EscrowFS contract suite deployment
// procedure.
type Prm struct {
	// Writes progress into the log.
	Logger *zap.Logger

	// Particular Neo blockchain instance to be used as FS chain.
	Blockchain Blockchain

	// Local process account used for transaction signing (must be unlocked).
	LocalAccount *wallet.Account

	EpochContract   EpochContractPrm
	BalanceContract BalanceContractPrm
	StoreContract   StoreContractPrm
	BucketContract  BucketContractPrm
	HandoffContract HandoffContractPrm
}

// Addresses carries the script hashes of the deployed contract suite.
type Addresses struct {
	Epoch   util.Uint160
	Balance util.Uint160
	Store   util.Uint160
	Bucket  util.Uint160
	Handoff util.Uint160
}

// Deploy deploys the EscrowFS contract suite to the Neo network represented
// by the given Prm.Blockchain. The contracts are mutually dependent, so their
// addresses are computed upfront from the sender account and passed to the
// dependents in deployment arguments. Deploy is idempotent: contracts already
// present on the chain are left untouched.
//
// Deployment order: epoch, balance, store, bucket, handoff.
func Deploy(ctx context.Context, prm Prm) (*Addresses, error) {
	if prm.Logger == nil {
		return nil, errors.New("missing logger")
	}

	act, err := actor.NewSimple(prm.Blockchain, prm.LocalAccount)
	if err != nil {
		return nil, fmt.Errorf("init transaction sender from single local account: %w", err)
	}

	sender := prm.LocalAccount.ScriptHash()

	addrs := Addresses{
		Epoch:   contractAddress(sender, prm.EpochContract.Common),
		Balance: contractAddress(sender, prm.BalanceContract.Common),
		Store:   contractAddress(sender, prm.StoreContract.Common),
		Bucket:  contractAddress(sender, prm.BucketContract.Common),
		Handoff: contractAddress(sender, prm.HandoffContract.Common),
	}

	deployments := []struct {
		name string
		prm  CommonDeployPrm
		hash util.Uint160
		args []any
	}{
		{
			name: "epoch",
			prm:  prm.EpochContract.Common,
			hash: addrs.Epoch,
			args: []any{prm.EpochContract.Config.deployArgs()},
		},
		{
			name: "balance",
			prm:  prm.BalanceContract.Common,
			hash: addrs.Balance,
			args: []any{addrs.Store, addrs.Bucket},
		},
		{
			name: "store",
			prm:  prm.StoreContract.Common,
			hash: addrs.Store,
			args: []any{addrs.Balance, addrs.Epoch},
		},
		{
			name: "bucket",
			prm:  prm.BucketContract.Common,
			hash: addrs.Bucket,
			args: []any{addrs.Balance, addrs.Store, addrs.Epoch, addrs.Handoff},
		},
		{
			name: "handoff",
			prm:  prm.HandoffContract.Common,
			hash: addrs.Handoff,
			args: []any{addrs.Store, addrs.Bucket},
		},
	}

	mgmt := management.New(act)

	for i := range deployments {
		d := deployments[i]

		l := prm.Logger.With(zap.String("contract", d.name), zap.Stringer("address", d.hash))

		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("wait for %s contract deployment: %w", d.name, err)
		}

		alreadyDeployed, err := isDeployed(prm.Blockchain, d.hash)
		if err != nil {
			return nil, fmt.Errorf("check %s contract on the chain: %w", d.name, err)
		}
		if alreadyDeployed {
			l.Info("contract is already deployed, skip")
			continue
		}

		l.Info("contract is missing on the chain, deploying...")

		txHash, vub, err := mgmt.Deploy(&d.prm.NEF, &d.prm.Manifest, d.args)
		if err != nil {
			return nil, fmt.Errorf("deploy %s contract: %w", d.name, err)
		}

		l.Info("transaction deploying the contract has been successfully sent, waiting...",
			zap.Stringer("tx", txHash), zap.Uint32("vub", vub))

		if _, err = act.Wait(txHash, vub, nil); err != nil {
			return nil, fmt.Errorf("wait for %s contract deployment: %w", d.name, err)
		}

		l.Info("contract has been successfully deployed")
	}

	return &addrs, nil
}

func contractAddress(sender util.Uint160, prm CommonDeployPrm) util.Uint160 {
	return state.CreateContractHash(sender, prm.NEF.Checksum, prm.Manifest.Name)
}

func isDeployed(b Blockchain, addr util.Uint160) (bool, error) {
	_, err := b.GetContractStateByHash(addr)
	if err == nil {
		return true, nil
	}
	if strings.Contains(err.Error(), "Unknown contract") {
		return false, nil
	}
	return false, err
}
