package commands

import (
	"fmt"
	"math/big"

	"github.com/spf13/cobra"

	"github.com/tokenforge/tokenops/workflows"
)

func (c *Commands) newEnableCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "enable",
		Short: "Register a token with the paymaster, retrying on transient failure",
		RunE: func(cmd *cobra.Command, _ []string) error {
			deps, _, err := c.buildDeps(cmd)
			if err != nil {
				return err
			}

			token, _ := cmd.Flags().GetString("token")

			out, err := workflows.EnableToken(cmd.Context(), deps, workflows.EnableTokenInput{
				TokenAddress: token,
			})
			if err != nil {
				return err
			}

			cmd.Printf("Token %s enabled with paymaster %s\n", out.TokenAddress, out.PaymasterAddress)

			return nil
		},
	}

	cmd.Flags().String("token", "", "Token address to enable (required)")
	_ = cmd.MarkFlagRequired("token")

	return cmd
}

func (c *Commands) newFundCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fund",
		Short: "Deposit native currency into the paymaster",
		RunE: func(cmd *cobra.Command, _ []string) error {
			deps, _, err := c.buildDeps(cmd)
			if err != nil {
				return err
			}

			amountStr, _ := cmd.Flags().GetString("amount")
			amount, ok := new(big.Int).SetString(amountStr, 10)
			if !ok {
				return fmt.Errorf("invalid amount %q", amountStr)
			}

			out, err := workflows.FundPaymaster(cmd.Context(), deps, workflows.FundPaymasterInput{
				Amount: amount,
			})
			if err != nil {
				return err
			}

			cmd.Printf("Paymaster %s funded; balance %s wei\n", out.PaymasterAddress, out.Balance)

			return nil
		},
	}

	cmd.Flags().String("amount", "", "Amount to deposit, in wei (required)")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func (c *Commands) newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Check whether a token is enabled with the paymaster",
		RunE: func(cmd *cobra.Command, _ []string) error {
			deps, _, err := c.buildDeps(cmd)
			if err != nil {
				return err
			}

			token, _ := cmd.Flags().GetString("token")

			out, err := workflows.TokenStatus(cmd.Context(), deps, workflows.TokenStatusInput{
				TokenAddress: token,
			})
			if err != nil {
				return err
			}

			if out.Enabled {
				cmd.Printf("Token %s is enabled\n", out.TokenAddress)
			} else {
				cmd.Printf("Token %s is NOT enabled\n", out.TokenAddress)
			}

			return nil
		},
	}

	cmd.Flags().String("token", "", "Token address to check (required)")
	_ = cmd.MarkFlagRequired("token")

	return cmd
}

func (c *Commands) newBalanceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "balance",
		Short: "Check the native-currency balance of an address",
		RunE: func(cmd *cobra.Command, _ []string) error {
			deps, _, err := c.buildDeps(cmd)
			if err != nil {
				return err
			}

			address, _ := cmd.Flags().GetString("address")
			if address == "" {
				// Default to the configured paymaster.
				address = deps.Network.PaymasterAddress
			}

			out, err := workflows.Balance(cmd.Context(), deps, workflows.BalanceInput{
				Address: address,
			})
			if err != nil {
				return err
			}

			cmd.Printf("Balance of %s: %s wei\n", out.Address, out.Balance)

			return nil
		},
	}

	cmd.Flags().String("address", "", "Address to check (defaults to the configured paymaster)")

	return cmd
}
