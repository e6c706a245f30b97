package commands

import (
	"fmt"
	"math/big"

	"github.com/spf13/cobra"

	"github.com/tokenforge/tokenops/chain/evm"
	"github.com/tokenforge/tokenops/workflows"
)

func (c *Commands) newDeployTokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deploy-token",
		Short: "Deploy a token contract and record the deployment",
		RunE: func(cmd *cobra.Command, _ []string) error {
			deps, chain, err := c.buildDeps(cmd)
			if err != nil {
				return err
			}

			abiJSON, bytecodeHex, err := readArtifact(cmd)
			if err != nil {
				return err
			}

			deployer, err := evm.NewTokenDeployer(chain, abiJSON, bytecodeHex)
			if err != nil {
				return err
			}
			deps.Tokens = deployer

			name, _ := cmd.Flags().GetString("name")
			symbol, _ := cmd.Flags().GetString("symbol")
			capStr, _ := cmd.Flags().GetString("cap")
			hash, _ := cmd.Flags().GetString("metadata-hash")
			uri, _ := cmd.Flags().GetString("token-uri")

			capAmount, ok := new(big.Int).SetString(capStr, 10)
			if !ok {
				return fmt.Errorf("invalid cap %q", capStr)
			}

			out, err := workflows.DeployToken(cmd.Context(), deps, workflows.DeployTokenInput{
				Name:         name,
				Symbol:       symbol,
				Cap:          capAmount,
				MetadataHash: hash,
				TokenURI:     uri,
			})
			if err != nil {
				return err
			}

			cmd.Printf("Token deployed at %s (tx %s)\nRecord: %s\n", out.Address, out.TxHash, out.RecordPath)

			return nil
		},
	}

	addArtifactFlags(cmd)
	cmd.Flags().String("name", "", "Token name (required)")
	cmd.Flags().String("symbol", "", "Token symbol (required)")
	cmd.Flags().String("cap", "", "Token cap in base units (required)")
	cmd.Flags().String("metadata-hash", "", "Metadata hash constructor argument")
	cmd.Flags().String("token-uri", "", "Token URI constructor argument")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("symbol")
	_ = cmd.MarkFlagRequired("cap")

	return cmd
}

func (c *Commands) newDeployPaymasterCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deploy-paymaster",
		Short: "Deploy the paymaster contract and record the deployment",
		RunE: func(cmd *cobra.Command, _ []string) error {
			deps, chain, err := c.buildDeps(cmd)
			if err != nil {
				return err
			}

			abiJSON, bytecodeHex, err := readArtifact(cmd)
			if err != nil {
				return err
			}

			deployer, err := evm.NewPaymasterDeployer(chain, abiJSON, bytecodeHex)
			if err != nil {
				return err
			}
			deps.Paymasters = deployer

			out, err := workflows.DeployPaymaster(cmd.Context(), deps, workflows.DeployPaymasterInput{})
			if err != nil {
				return err
			}

			cmd.Printf("Paymaster deployed at %s (tx %s)\nRecord: %s\n", out.Address, out.TxHash, out.RecordPath)

			return nil
		},
	}

	addArtifactFlags(cmd)

	return cmd
}

func addArtifactFlags(cmd *cobra.Command) {
	cmd.Flags().String("abi-file", "", "Path to the compiled contract ABI JSON (required)")
	cmd.Flags().String("bytecode-file", "", "Path to the creation bytecode hex (required)")
	_ = cmd.MarkFlagRequired("abi-file")
	_ = cmd.MarkFlagRequired("bytecode-file")
}
