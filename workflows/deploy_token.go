package workflows

import (
	"context"
	"fmt"
	"math/big"

	"github.com/Masterminds/semver/v3"

	"github.com/tokenforge/tokenops/chain/evm"
	"github.com/tokenforge/tokenops/config"
	"github.com/tokenforge/tokenops/record"
)

// tokenRecordVersion tags the record schema written for token deployments.
var tokenRecordVersion = semver.MustParse("1.0.0")

// DeployTokenInput are the user-supplied parameters for a token deployment.
// The trusted forwarder comes from the network configuration.
type DeployTokenInput struct {
	Name         string   `json:"name"`
	Symbol       string   `json:"symbol"`
	Cap          *big.Int `json:"cap"`
	MetadataHash string   `json:"metadataHash"`
	TokenURI     string   `json:"tokenUri"`
}

// DeployTokenOutput is the outcome of a token deployment.
type DeployTokenOutput struct {
	Address    string `json:"address"`
	TxHash     string `json:"txHash"`
	RecordPath string `json:"recordPath"`
}

// DeployToken deploys a new token contract and durably records its address and
// constructor arguments. The record write happens exactly once, immediately
// after the chain confirms creation; a later enable failure leaves it intact.
func DeployToken(ctx context.Context, deps Deps, in DeployTokenInput) (DeployTokenOutput, error) {
	lggr := deps.lggr()

	forwarder, err := parseAddress("forwarderAddress", deps.Network.ForwarderAddress)
	if err != nil {
		return DeployTokenOutput{}, err
	}

	params := evm.TokenDeployParams{
		Name:         in.Name,
		Symbol:       in.Symbol,
		Cap:          in.Cap,
		MetadataHash: in.MetadataHash,
		TokenURI:     in.TokenURI,
		Forwarder:    forwarder,
	}
	if err := params.Validate(); err != nil {
		return DeployTokenOutput{}, fmt.Errorf("%w: %v", config.ErrMissingConfig, err)
	}

	lggr.Infow("Deploying token",
		"name", in.Name, "symbol", in.Symbol, "network", deps.Network.Name)

	result, err := deps.Tokens.Deploy(ctx, params)
	if err != nil {
		deps.report("deploy-token", in, nil, err)
		return DeployTokenOutput{}, err
	}

	args, err := record.NewArgs(
		params.Name, params.Symbol, params.Cap, params.MetadataHash, params.TokenURI, params.Forwarder.Hex(),
	)
	if err != nil {
		return DeployTokenOutput{}, fmt.Errorf("failed to build constructor argument tuple: %w", err)
	}

	rec := record.DeploymentRecord{
		Address:         result.Address.Hex(),
		ConstructorArgs: args,
		Name:            params.Name,
		Symbol:          params.Symbol,
		Cap:             params.Cap.String(),
		TokenURI:        params.TokenURI,
		Forwarder:       params.Forwarder.Hex(),
		Version:         tokenRecordVersion,
	}

	key := record.NewKey(record.KindToken, params.Symbol, rec.Address, deps.Network.Name)
	if err := deps.Store.Record(key, rec); err != nil {
		// The contract exists on-chain even though the record write failed;
		// include the address so the operator can recover manually.
		err = fmt.Errorf("token deployed at %s but record write failed: %w", rec.Address, err)
		deps.report("deploy-token", in, nil, err)

		return DeployTokenOutput{}, err
	}

	out := DeployTokenOutput{
		Address:    rec.Address,
		TxHash:     result.TxHash.Hex(),
		RecordPath: deps.Store.FilePath(key),
	}

	lggr.Infow("Token deployed",
		"address", out.Address, "tx", out.TxHash, "record", out.RecordPath)
	deps.report("deploy-token", in, out, nil)

	return out, nil
}
