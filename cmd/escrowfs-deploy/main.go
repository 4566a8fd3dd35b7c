// Command escrowfs-deploy deploys the EscrowFS contract suite to an FS chain.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/escrowfs/escrowfs-contract/deploy"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/nef"
	"github.com/nspcc-dev/neo-go/pkg/wallet"
	"go.uber.org/zap"
)

func main() {
	neoRPCEndpoint := flag.String("rpc", "", "Network address of the Neo RPC server")
	walletPath := flag.String("wallet", "", "Path to the NEP-6 wallet of the deployer account")
	walletPassword := flag.String("password", "", "Password of the deployer account")
	contractsDir := flag.String("contracts", "", "Directory with compiled contracts (<name>.nef and <name>.manifest.json per contract)")
	storageFee := flag.Uint64("storage-fee", 0, "Fee charged per epoch of object storage")
	extendFee := flag.Uint64("extend-fee", 0, "Fee charged per epoch of object lifetime extension")

	flag.Parse()

	switch {
	case *neoRPCEndpoint == "":
		log.Fatal("missing Neo RPC endpoint")
	case *walletPath == "":
		log.Fatal("missing deployer wallet")
	case *contractsDir == "":
		log.Fatal("missing contracts directory")
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal(fmt.Errorf("init logger: %w", err))
	}
	defer logger.Sync() //nolint:errcheck

	err = run(*neoRPCEndpoint, *walletPath, *walletPassword, *contractsDir, *storageFee, *extendFee, logger)
	if err != nil {
		log.Fatal(err)
	}
}

func run(endpoint, walletPath, password, contractsDir string, storageFee, extendFee uint64, logger *zap.Logger) error {
	ctx := context.Background()

	c, err := rpcclient.New(ctx, endpoint, rpcclient.Options{})
	if err != nil {
		return fmt.Errorf("init Neo RPC client: %w", err)
	}

	defer c.Close()

	w, err := wallet.NewWalletFromFile(walletPath)
	if err != nil {
		return fmt.Errorf("open deployer wallet: %w", err)
	}

	acc := w.GetAccount(w.GetChangeAddress())
	if acc == nil {
		return fmt.Errorf("deployer wallet '%s' has no usable account", walletPath)
	}

	err = acc.Decrypt(password, w.Scrypt)
	if err != nil {
		return fmt.Errorf("unlock deployer account: %w", err)
	}

	prm := deploy.Prm{
		Logger:       logger,
		Blockchain:   c,
		LocalAccount: acc,
	}

	prm.EpochContract.Common, err = readContract(contractsDir, "epoch")
	if err != nil {
		return err
	}
	prm.EpochContract.Config = deploy.NetworkConfiguration{
		StorageFee: storageFee,
		ExtendFee:  extendFee,
	}

	prm.BalanceContract.Common, err = readContract(contractsDir, "balance")
	if err != nil {
		return err
	}

	prm.StoreContract.Common, err = readContract(contractsDir, "store")
	if err != nil {
		return err
	}

	prm.BucketContract.Common, err = readContract(contractsDir, "bucket")
	if err != nil {
		return err
	}

	prm.HandoffContract.Common, err = readContract(contractsDir, "handoff")
	if err != nil {
		return err
	}

	addrs, err := deploy.Deploy(ctx, prm)
	if err != nil {
		return fmt.Errorf("deploy contract suite: %w", err)
	}

	logger.Info("EscrowFS contract suite is on the chain",
		zap.Stringer("epoch", addrs.Epoch),
		zap.Stringer("balance", addrs.Balance),
		zap.Stringer("store", addrs.Store),
		zap.Stringer("bucket", addrs.Bucket),
		zap.Stringer("handoff", addrs.Handoff),
	)

	return nil
}

func readContract(dir, name string) (deploy.CommonDeployPrm, error) {
	var prm deploy.CommonDeployPrm

	rawNEF, err := os.ReadFile(filepath.Join(dir, name+".nef"))
	if err != nil {
		return prm, fmt.Errorf("read NEF of %s contract: %w", name, err)
	}

	prm.NEF, err = nef.FileFromBytes(rawNEF)
	if err != nil {
		return prm, fmt.Errorf("decode NEF of %s contract: %w", name, err)
	}

	rawManifest, err := os.ReadFile(filepath.Join(dir, name+".manifest.json"))
	if err != nil {
		return prm, fmt.Errorf("read manifest of %s contract: %w", name, err)
	}

	err = json.Unmarshal(rawManifest, &prm.Manifest)
	if err != nil {
		return prm, fmt.Errorf("decode manifest of %s contract: %w", name, err)
	}

	return prm, nil
}
