// Package workflows implements the operational flows of tokenops: deploying
// the token and paymaster, recording deployments, enabling tokens with bounded
// retry, funding, status checks and source verification.
//
// All collaborators are injected through Deps; there is no module-level state
// or implicit process-wide lookup.
package workflows

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/tokenforge/tokenops/chain/evm"
	"github.com/tokenforge/tokenops/config"
	"github.com/tokenforge/tokenops/operations"
	"github.com/tokenforge/tokenops/pkg/logger"
	"github.com/tokenforge/tokenops/record"
	"github.com/tokenforge/tokenops/verify"
)

// TokenFactory creates and confirms a new token contract.
type TokenFactory interface {
	Deploy(ctx context.Context, params evm.TokenDeployParams) (evm.DeployResult, error)
}

// PaymasterFactory creates and confirms a new paymaster contract.
type PaymasterFactory interface {
	Deploy(ctx context.Context, params evm.PaymasterDeployParams) (evm.DeployResult, error)
}

// PaymasterContract is a handle to an already-deployed paymaster.
type PaymasterContract interface {
	Address() common.Address
	EnableToken(ctx context.Context, token common.Address) error
	IsTokenEnabled(ctx context.Context, token common.Address) (bool, error)
	Deposit(ctx context.Context, amount *big.Int) error
	Balance(ctx context.Context) (*big.Int, error)
}

// BalanceReader reads native-currency balances.
type BalanceReader interface {
	BalanceOf(ctx context.Context, account common.Address) (*big.Int, error)
}

// RecordStore persists and loads deployment records.
type RecordStore interface {
	Record(key record.Key, rec record.DeploymentRecord) error
	Load(key record.Key) (record.DeploymentRecord, error)
	FilePath(key record.Key) string
}

// Deps carries the collaborators a workflow needs. Individual workflows
// validate the subset they use.
type Deps struct {
	Logger   logger.Logger
	Network  config.Network
	Store    RecordStore
	Reporter operations.Reporter

	Tokens     TokenFactory
	Paymasters PaymasterFactory
	Paymaster  PaymasterContract
	Balances   BalanceReader
	Verifier   verify.SourceVerifier

	// RetryPolicy governs dependent actions such as enabling a token. Zero
	// value means operations.DefaultRetryPolicy.
	RetryPolicy operations.RetryPolicy
}

func (d Deps) lggr() logger.Logger {
	if d.Logger == nil {
		return logger.Nop()
	}

	return d.Logger
}

func (d Deps) retryPolicy() operations.RetryPolicy {
	if d.RetryPolicy.MaxAttempts == 0 {
		return operations.DefaultRetryPolicy()
	}

	return d.RetryPolicy
}

// report persists a run report if a reporter is configured. A report write
// failure is surfaced via the logger but does not override the workflow
// outcome.
func (d Deps) report(name string, input, output any, err error) {
	if d.Reporter == nil {
		return
	}

	if rErr := d.Reporter.AddReport(operations.NewReport(name, input, output, err)); rErr != nil {
		d.lggr().Errorw("Failed to persist run report", "workflow", name, "error", rErr)
	}
}

// parseAddress validates and parses a hex address, returning a configuration
// error when it is missing or malformed.
func parseAddress(field, value string) (common.Address, error) {
	if value == "" {
		return common.Address{}, fmt.Errorf("%w: %s is required", config.ErrMissingConfig, field)
	}
	if !common.IsHexAddress(value) {
		return common.Address{}, fmt.Errorf("%w: %s %q is not a valid address", config.ErrMissingConfig, field, value)
	}

	return common.HexToAddress(value), nil
}
