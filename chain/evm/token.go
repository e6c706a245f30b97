package evm

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
)

// TokenDeployParams is the ordered constructor-argument tuple for the capped
// ERC-2771 token.
type TokenDeployParams struct {
	Name         string
	Symbol       string
	Cap          *big.Int
	MetadataHash string
	TokenURI     string
	Forwarder    common.Address
}

// Validate ensures the tuple is complete.
func (p TokenDeployParams) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("token name is required")
	}
	if p.Symbol == "" {
		return fmt.Errorf("token symbol is required")
	}
	if p.Cap == nil || p.Cap.Sign() <= 0 {
		return fmt.Errorf("token cap must be positive")
	}
	if p.Forwarder == (common.Address{}) {
		return fmt.Errorf("trusted forwarder address is required")
	}

	return nil
}

// DeployResult is the confirmed outcome of a contract deployment.
type DeployResult struct {
	Address     common.Address
	TxHash      common.Hash
	BlockNumber uint64
}

// TokenDeployer deploys token contracts from a compiled artifact (ABI +
// creation bytecode) against a single chain.
type TokenDeployer struct {
	chain    Chain
	abi      abi.ABI
	bytecode []byte
}

// NewTokenDeployer parses the artifact and returns a deployer bound to chain.
// abiJSON is the contract ABI document; bytecodeHex is the 0x-prefixed creation
// bytecode.
func NewTokenDeployer(chain Chain, abiJSON, bytecodeHex string) (*TokenDeployer, error) {
	parsed, err := abi.JSON(strings.NewReader(abiJSON))
	if err != nil {
		return nil, fmt.Errorf("failed to parse token ABI: %w", err)
	}

	bytecode := common.FromHex(bytecodeHex)
	if len(bytecode) == 0 {
		return nil, fmt.Errorf("token creation bytecode is empty")
	}

	return &TokenDeployer{
		chain:    chain,
		abi:      parsed,
		bytecode: bytecode,
	}, nil
}

// Deploy submits the creation transaction and waits for confirmation. The
// creation call itself is one-shot; transient failures surface to the caller
// rather than being retried here.
func (d *TokenDeployer) Deploy(ctx context.Context, params TokenDeployParams) (DeployResult, error) {
	if err := params.Validate(); err != nil {
		return DeployResult{}, err
	}

	addr, tx, _, err := bind.DeployContract(
		d.chain.transactOpts(ctx),
		d.abi,
		d.bytecode,
		d.chain.Client,
		params.Name,
		params.Symbol,
		params.Cap,
		params.MetadataHash,
		params.TokenURI,
		params.Forwarder,
	)
	if err != nil {
		return DeployResult{}, fmt.Errorf("failed to deploy token %s on %s: %w", params.Symbol, d.chain.Name, err)
	}

	blockNumber, err := d.chain.Confirm(tx)
	if err != nil {
		return DeployResult{}, fmt.Errorf("failed to confirm token deployment %s: %w", tx.Hash(), err)
	}

	return DeployResult{
		Address:     addr,
		TxHash:      tx.Hash(),
		BlockNumber: blockNumber,
	}, nil
}
