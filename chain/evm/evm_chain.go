// Package evm wraps the go-ethereum client surface used by tokenops. The rest
// of the system treats a Chain as an opaque RPC boundary: calls may fail
// transiently and must be retryable by the caller.
package evm

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// ConfirmFunc takes a submitted transaction, waits for it to be confirmed, and
// returns the block number it was included in.
type ConfirmFunc func(tx *types.Transaction) (uint64, error)

// OnchainClient is an EVM chain client. The existing geth interfaces abstract
// chain clients for deployment and contract interaction.
type OnchainClient interface {
	bind.ContractBackend
	bind.DeployBackend

	BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error)
}

// Chain represents a single EVM network with signing context for the deployer
// account.
type Chain struct {
	// Name is the network name, e.g. "sepolia".
	Name string

	// ChainID is the EIP-155 chain ID.
	ChainID *big.Int

	Client OnchainClient

	// DeployerKey signs all transactions. The signing mechanism behind it can
	// vary (local key, KMS).
	DeployerKey *bind.TransactOpts

	Confirm ConfirmFunc
}

// String returns "<name> (<chain id>)".
func (c Chain) String() string {
	return fmt.Sprintf("%s (%s)", c.Name, c.ChainID)
}

// BalanceOf returns the native-currency balance of account at the latest block.
func (c Chain) BalanceOf(ctx context.Context, account common.Address) (*big.Int, error) {
	bal, err := c.Client.BalanceAt(ctx, account, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch balance of %s on %s: %w", account, c.Name, err)
	}

	return bal, nil
}

// transactOpts clones the deployer opts with the given context attached.
func (c Chain) transactOpts(ctx context.Context) *bind.TransactOpts {
	opts := *c.DeployerKey
	opts.Context = ctx

	return &opts
}
