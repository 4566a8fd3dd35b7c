package tests

import (
	"testing"

	"github.com/escrowfs/escrowfs-contract/common"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
)

func TestBalanceSymbol(t *testing.T) {
	s := newContractSuite(t)
	c := s.balance()

	c.Invoke(t, "ESFS", "symbol")
	c.Invoke(t, 12, "decimals")
	c.Invoke(t, 0, "totalSupply")
}

func TestBalanceMintBurn(t *testing.T) {
	s := newContractSuite(t)
	c := s.balance()

	acc := c.NewAccount(t)
	accHash := acc.ScriptHash()

	c.Invoke(t, stackitem.Null{}, "mint", accHash, int64(200), []byte{})
	c.Invoke(t, 200, "balanceOf", accHash)
	c.Invoke(t, 200, "totalSupply")

	c.Invoke(t, stackitem.Null{}, "burn", accHash, int64(50), []byte{})
	c.Invoke(t, 150, "balanceOf", accHash)
	c.Invoke(t, 150, "totalSupply")

	// only the Alphabet issues and retires assets
	cAcc := c.WithSigners(acc)
	cAcc.InvokeFail(t, common.ErrAlphabetWitnessFailed, "mint", accHash, int64(10), []byte{})
	cAcc.InvokeFail(t, common.ErrAlphabetWitnessFailed, "burn", accHash, int64(10), []byte{})
}

func TestBalanceTransfer(t *testing.T) {
	s := newContractSuite(t)
	c := s.balance()

	from := c.NewAccount(t)
	to := c.NewAccount(t)

	s.mint(t, from.ScriptHash(), 100)

	cFrom := c.WithSigners(from)
	cFrom.Invoke(t, true, "transfer", from.ScriptHash(), to.ScriptHash(), int64(40), nil)
	c.Invoke(t, 60, "balanceOf", from.ScriptHash())
	c.Invoke(t, 40, "balanceOf", to.ScriptHash())

	// spending someone else's balance is not allowed
	cTo := c.WithSigners(to)
	cTo.Invoke(t, false, "transfer", from.ScriptHash(), to.ScriptHash(), int64(10), nil)

	// overdraft
	cFrom.Invoke(t, false, "transfer", from.ScriptHash(), to.ScriptHash(), int64(1000), nil)
}

func TestBalanceTransferX(t *testing.T) {
	s := newContractSuite(t)
	c := s.balance()

	from := c.NewAccount(t)
	to := c.NewAccount(t)

	s.mint(t, from.ScriptHash(), 100)

	// a plain account is neither a system contract nor the Alphabet
	cFrom := c.WithSigners(from)
	cFrom.InvokeFail(t, common.ErrAlphabetWitnessFailed,
		"transferX", from.ScriptHash(), to.ScriptHash(), int64(10), []byte{})

	// Alphabet multisig moves assets freely
	c.Invoke(t, true, "transferX", from.ScriptHash(), to.ScriptHash(), int64(10), []byte{})
	c.Invoke(t, 90, "balanceOf", from.ScriptHash())
	c.Invoke(t, 10, "balanceOf", to.ScriptHash())
}
