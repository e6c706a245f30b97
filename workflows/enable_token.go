package workflows

import (
	"context"
	"fmt"

	"github.com/tokenforge/tokenops/operations"
)

// EnableTokenInput identifies the token to register with the paymaster.
type EnableTokenInput struct {
	TokenAddress string `json:"tokenAddress"`
}

// EnableTokenOutput is the outcome of an enable run.
type EnableTokenOutput struct {
	TokenAddress     string `json:"tokenAddress"`
	PaymasterAddress string `json:"paymasterAddress"`
}

// EnableToken registers the token with the paymaster, retrying the enable
// transaction with linear backoff. Enabling an already-enabled token is a
// no-op on-chain, so at-least-once submission is harmless. When the attempt
// budget is exhausted the last error propagates; an already-recorded
// deployment is never rolled back by a failed enable.
func EnableToken(ctx context.Context, deps Deps, in EnableTokenInput) (EnableTokenOutput, error) {
	lggr := deps.lggr()

	token, err := parseAddress("tokenAddress", in.TokenAddress)
	if err != nil {
		return EnableTokenOutput{}, err
	}

	paymaster := deps.Paymaster
	policy := deps.retryPolicy()

	lggr.Infow("Enabling token with paymaster",
		"token", token, "paymaster", paymaster.Address(),
		"maxAttempts", policy.MaxAttempts, "backoffUnit", policy.BackoffUnit)

	err = operations.Retry(ctx, lggr, "enable-token", policy, func() error {
		return paymaster.EnableToken(ctx, token)
	})
	if err != nil {
		err = fmt.Errorf("failed to enable token %s: %w", token, err)
		deps.report("enable-token", in, nil, err)

		return EnableTokenOutput{}, err
	}

	out := EnableTokenOutput{
		TokenAddress:     token.Hex(),
		PaymasterAddress: paymaster.Address().Hex(),
	}

	lggr.Infow("Token enabled", "token", out.TokenAddress, "paymaster", out.PaymasterAddress)
	deps.report("enable-token", in, out, nil)

	return out, nil
}
