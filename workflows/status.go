package workflows

import (
	"context"
	"fmt"
)

// TokenStatusInput identifies the token to inspect.
type TokenStatusInput struct {
	TokenAddress string `json:"tokenAddress"`
}

// TokenStatusOutput reports whether the token is enabled with the paymaster.
type TokenStatusOutput struct {
	TokenAddress string `json:"tokenAddress"`
	Enabled      bool   `json:"enabled"`
}

// TokenStatus reports whether the token is registered with the paymaster.
func TokenStatus(ctx context.Context, deps Deps, in TokenStatusInput) (TokenStatusOutput, error) {
	token, err := parseAddress("tokenAddress", in.TokenAddress)
	if err != nil {
		return TokenStatusOutput{}, err
	}

	enabled, err := deps.Paymaster.IsTokenEnabled(ctx, token)
	if err != nil {
		return TokenStatusOutput{}, fmt.Errorf("failed to check status of token %s: %w", token, err)
	}

	return TokenStatusOutput{
		TokenAddress: token.Hex(),
		Enabled:      enabled,
	}, nil
}

// BalanceInput identifies the account to inspect.
type BalanceInput struct {
	Address string `json:"address"`
}

// BalanceOutput is the native-currency balance of the account, in wei.
type BalanceOutput struct {
	Address string `json:"address"`
	Balance string `json:"balance"`
}

// Balance reads the native-currency balance of an address.
func Balance(ctx context.Context, deps Deps, in BalanceInput) (BalanceOutput, error) {
	account, err := parseAddress("address", in.Address)
	if err != nil {
		return BalanceOutput{}, err
	}

	balance, err := deps.Balances.BalanceOf(ctx, account)
	if err != nil {
		return BalanceOutput{}, err
	}

	return BalanceOutput{
		Address: account.Hex(),
		Balance: balance.String(),
	}, nil
}
