package workflows

import (
	"context"
	"fmt"
	"math/big"

	"github.com/tokenforge/tokenops/config"
)

// FundPaymasterInput is the native-currency amount to deposit, in wei.
type FundPaymasterInput struct {
	Amount *big.Int `json:"amount"`
}

// FundPaymasterOutput is the outcome of a funding run.
type FundPaymasterOutput struct {
	PaymasterAddress string `json:"paymasterAddress"`
	Amount           string `json:"amount"`
	Balance          string `json:"balance"`
}

// FundPaymaster deposits native currency into the paymaster and reports the
// resulting balance.
func FundPaymaster(ctx context.Context, deps Deps, in FundPaymasterInput) (FundPaymasterOutput, error) {
	lggr := deps.lggr()

	if in.Amount == nil || in.Amount.Sign() <= 0 {
		return FundPaymasterOutput{}, fmt.Errorf("%w: amount must be positive", config.ErrMissingConfig)
	}

	paymaster := deps.Paymaster

	lggr.Infow("Funding paymaster", "paymaster", paymaster.Address(), "amount", in.Amount)

	if err := paymaster.Deposit(ctx, in.Amount); err != nil {
		err = fmt.Errorf("failed to fund paymaster %s: %w", paymaster.Address(), err)
		deps.report("fund-paymaster", in, nil, err)

		return FundPaymasterOutput{}, err
	}

	balance, err := paymaster.Balance(ctx)
	if err != nil {
		return FundPaymasterOutput{}, err
	}

	out := FundPaymasterOutput{
		PaymasterAddress: paymaster.Address().Hex(),
		Amount:           in.Amount.String(),
		Balance:          balance.String(),
	}

	lggr.Infow("Paymaster funded", "paymaster", out.PaymasterAddress, "balance", out.Balance)
	deps.report("fund-paymaster", in, out, nil)

	return out, nil
}
