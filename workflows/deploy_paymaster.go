package workflows

import (
	"context"
	"fmt"

	"github.com/tokenforge/tokenops/chain/evm"
	"github.com/tokenforge/tokenops/record"
)

// paymasterIdentifier is the human identifier component of paymaster record
// keys. Paymasters have no symbol; one per network is the expected shape, and
// the deployed address keeps distinct keys distinct regardless.
const paymasterIdentifier = "paymaster"

// DeployPaymasterInput are the parameters for a paymaster deployment. The
// forwarder and relay hub come from the network configuration.
type DeployPaymasterInput struct{}

// DeployPaymasterOutput is the outcome of a paymaster deployment.
type DeployPaymasterOutput struct {
	Address    string `json:"address"`
	TxHash     string `json:"txHash"`
	RecordPath string `json:"recordPath"`
}

// DeployPaymaster deploys the paymaster contract and records its address and
// constructor arguments.
func DeployPaymaster(ctx context.Context, deps Deps, in DeployPaymasterInput) (DeployPaymasterOutput, error) {
	lggr := deps.lggr()

	forwarder, err := parseAddress("forwarderAddress", deps.Network.ForwarderAddress)
	if err != nil {
		return DeployPaymasterOutput{}, err
	}
	relayHub, err := parseAddress("relayHubAddress", deps.Network.RelayHubAddress)
	if err != nil {
		return DeployPaymasterOutput{}, err
	}

	lggr.Infow("Deploying paymaster", "network", deps.Network.Name)

	result, err := deps.Paymasters.Deploy(ctx, evm.PaymasterDeployParams{
		Forwarder: forwarder,
		RelayHub:  relayHub,
	})
	if err != nil {
		deps.report("deploy-paymaster", in, nil, err)
		return DeployPaymasterOutput{}, err
	}

	args, err := record.NewArgs(forwarder.Hex(), relayHub.Hex())
	if err != nil {
		return DeployPaymasterOutput{}, fmt.Errorf("failed to build constructor argument tuple: %w", err)
	}

	rec := record.DeploymentRecord{
		Address:         result.Address.Hex(),
		ConstructorArgs: args,
		Forwarder:       forwarder.Hex(),
	}

	key := record.NewKey(record.KindPaymaster, paymasterIdentifier, rec.Address, deps.Network.Name)
	if err := deps.Store.Record(key, rec); err != nil {
		err = fmt.Errorf("paymaster deployed at %s but record write failed: %w", rec.Address, err)
		deps.report("deploy-paymaster", in, nil, err)

		return DeployPaymasterOutput{}, err
	}

	out := DeployPaymasterOutput{
		Address:    rec.Address,
		TxHash:     result.TxHash.Hex(),
		RecordPath: deps.Store.FilePath(key),
	}

	lggr.Infow("Paymaster deployed",
		"address", out.Address, "tx", out.TxHash, "record", out.RecordPath)
	deps.report("deploy-paymaster", in, out, nil)

	return out, nil
}
