package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tokenforge/tokenops/config"
	"github.com/tokenforge/tokenops/record"
	"github.com/tokenforge/tokenops/verify"
	"github.com/tokenforge/tokenops/workflows"
)

func (c *Commands) newVerifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify a recorded deployment against the source verification service",
		RunE: func(cmd *cobra.Command, _ []string) error {
			deps, _, err := c.buildDeps(cmd)
			if err != nil {
				return err
			}

			if deps.Network.VerifierAPIURL == "" {
				return fmt.Errorf("%w: network %s has no verifierApiUrl configured",
					config.ErrMissingConfig, deps.Network.Name)
			}

			verifier, err := verify.NewHTTPVerifier(deps.Network.VerifierAPIURL, deps.Network.Name)
			if err != nil {
				return err
			}
			deps.Verifier = verifier

			kind, _ := cmd.Flags().GetString("kind")
			identifier, _ := cmd.Flags().GetString("identifier")
			address, _ := cmd.Flags().GetString("address")

			out, err := workflows.VerifyContract(cmd.Context(), deps, workflows.VerifyContractInput{
				Kind:       record.Kind(kind),
				Identifier: identifier,
				Address:    address,
			})
			if err != nil {
				return err
			}

			if out.AlreadyVerified {
				cmd.Printf("Contract %s was already verified\n", out.Address)
			} else {
				cmd.Printf("Contract %s verified\n", out.Address)
			}

			return nil
		},
	}

	cmd.Flags().String("kind", string(record.KindToken), "Record kind: token or paymaster")
	cmd.Flags().String("identifier", "", "Record identifier, e.g. the token symbol (required)")
	cmd.Flags().String("address", "", "Deployed contract address (required)")
	_ = cmd.MarkFlagRequired("identifier")
	_ = cmd.MarkFlagRequired("address")

	return cmd
}
