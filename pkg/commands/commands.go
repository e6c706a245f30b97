// Package commands provides the cobra command tree for the tokenops CLI.
//
// Commands share two persistent flags: --config (the network manifest path)
// and --network (the network entry to operate against). The deployer private
// key is never taken as a flag; it is read from the TOKENOPS_PRIVATE_KEY
// environment variable.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/tokenforge/tokenops/pkg/logger"
)

// EnvPrivateKey is the environment variable holding the hex-encoded deployer
// private key.
const EnvPrivateKey = "TOKENOPS_PRIVATE_KEY"

// Commands is a factory for CLI commands with shared configuration.
type Commands struct {
	lggr logger.Logger
}

// New creates a new Commands factory with the given logger. The logger is
// shared across all commands created by this factory.
func New(lggr logger.Logger) *Commands {
	return &Commands{lggr: lggr}
}

// Root builds the root command with all subcommands attached.
func (c *Commands) Root() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "tokenops",
		Short:         "Deployment operations for the token + paymaster stack",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringP("config", "c", "networks.yaml", "Path to the network manifest")
	cmd.PersistentFlags().StringP("network", "n", "", "Network to operate against")

	cmd.AddCommand(
		c.newInitConfigCmd(),
		c.newDeployTokenCmd(),
		c.newDeployPaymasterCmd(),
		c.newEnableCmd(),
		c.newFundCmd(),
		c.newStatusCmd(),
		c.newBalanceCmd(),
		c.newVerifyCmd(),
		c.newDetectorsCmd(),
	)

	return cmd
}
