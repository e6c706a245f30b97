package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"

	"github.com/tokenforge/tokenops/chain/evm"
	"github.com/tokenforge/tokenops/chain/evm/provider"
	"github.com/tokenforge/tokenops/config"
	"github.com/tokenforge/tokenops/operations"
	"github.com/tokenforge/tokenops/record"
	"github.com/tokenforge/tokenops/workflows"
)

// buildDeps assembles the workflow dependencies for a command invocation:
// manifest load, chain dial, record store and paymaster handle.
func (c *Commands) buildDeps(cmd *cobra.Command) (workflows.Deps, evm.Chain, error) {
	ctx := cmd.Context()

	cfgPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return workflows.Deps{}, evm.Chain{}, err
	}
	networkName, err := cmd.Flags().GetString("network")
	if err != nil {
		return workflows.Deps{}, evm.Chain{}, err
	}
	if networkName == "" {
		return workflows.Deps{}, evm.Chain{}, fmt.Errorf("%w: the --network flag is required", config.ErrMissingConfig)
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return workflows.Deps{}, evm.Chain{}, err
	}

	network, err := cfg.ByName(networkName)
	if err != nil {
		return workflows.Deps{}, evm.Chain{}, err
	}

	keyHex := os.Getenv(EnvPrivateKey)
	if keyHex == "" {
		return workflows.Deps{}, evm.Chain{}, fmt.Errorf("%w: %s environment variable is not set",
			config.ErrMissingConfig, EnvPrivateKey)
	}

	chain, err := c.initChain(ctx, network, keyHex)
	if err != nil {
		return workflows.Deps{}, evm.Chain{}, err
	}

	paymasterAddr, err := parseConfiguredAddress(network.PaymasterAddress)
	if err != nil {
		return workflows.Deps{}, evm.Chain{}, err
	}

	paymaster, err := evm.NewPaymaster(chain, paymasterAddr)
	if err != nil {
		return workflows.Deps{}, evm.Chain{}, err
	}

	deps := workflows.Deps{
		Logger:    c.lggr,
		Network:   network,
		Store:     record.NewFileStore(cfg.RecordDir()),
		Reporter:  operations.NewFileReporter(filepath.Join(cfg.RecordDir(), "reports")),
		Paymaster: paymaster,
		Balances:  chain,
	}

	return deps, chain, nil
}

func (c *Commands) initChain(ctx context.Context, network config.Network, keyHex string) (evm.Chain, error) {
	p := provider.NewRPCChainProvider(provider.RPCChainProviderConfig{
		NetworkName:    network.Name,
		ChainID:        network.ChainID,
		RPCURL:         network.RPCURL,
		DeployerKeyHex: keyHex,
		Logger:         c.lggr,
	})

	return p.Initialize(ctx)
}

// readArtifact loads a compiled contract artifact from the ABI and bytecode
// file flags on cmd.
func readArtifact(cmd *cobra.Command) (abiJSON, bytecodeHex string, err error) {
	abiPath, err := cmd.Flags().GetString("abi-file")
	if err != nil {
		return "", "", err
	}
	binPath, err := cmd.Flags().GetString("bytecode-file")
	if err != nil {
		return "", "", err
	}

	abiBytes, err := os.ReadFile(abiPath)
	if err != nil {
		return "", "", fmt.Errorf("failed to read ABI file: %w", err)
	}
	binBytes, err := os.ReadFile(binPath)
	if err != nil {
		return "", "", fmt.Errorf("failed to read bytecode file: %w", err)
	}

	return string(abiBytes), strings.TrimSpace(string(binBytes)), nil
}

func parseConfiguredAddress(value string) (common.Address, error) {
	if !common.IsHexAddress(value) {
		return common.Address{}, fmt.Errorf("%w: %q is not a valid address", config.ErrMissingConfig, value)
	}

	return common.HexToAddress(value), nil
}
