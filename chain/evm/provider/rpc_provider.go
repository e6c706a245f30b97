// Package provider initializes evm.Chain instances from RPC endpoints and raw
// key material.
package provider

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"

	"github.com/tokenforge/tokenops/chain/evm"
	"github.com/tokenforge/tokenops/pkg/logger"
)

// RPCChainProviderConfig holds the configuration to initialize an
// RPCChainProvider.
type RPCChainProviderConfig struct {
	// Required: name of the network, used for logging and record keys.
	NetworkName string
	// Required: EIP-155 chain ID of the network.
	ChainID uint64
	// Required: JSON-RPC endpoint of the EVM node.
	RPCURL string
	// Required: hex-encoded deployer private key, without 0x prefix.
	DeployerKeyHex string
	// Optional: how long Confirm waits for inclusion before giving up.
	// Defaults to 5 minutes.
	ConfirmTimeout time.Duration
	// Optional: Logger used by the provider. Defaults to a runtime logger.
	Logger logger.Logger
}

func (c RPCChainProviderConfig) validate() error {
	if c.NetworkName == "" {
		return errors.New("network name is required")
	}
	if c.ChainID == 0 {
		return errors.New("chain ID is required")
	}
	if c.RPCURL == "" {
		return errors.New("RPC URL is required")
	}
	if c.DeployerKeyHex == "" {
		return errors.New("deployer private key is required")
	}

	return nil
}

// RPCChainProvider provides an evm.Chain that connects to an EVM node via RPC.
type RPCChainProvider struct {
	config RPCChainProviderConfig

	chain *evm.Chain
}

// NewRPCChainProvider creates a new RPCChainProvider with the given
// configuration.
func NewRPCChainProvider(config RPCChainProviderConfig) *RPCChainProvider {
	return &RPCChainProvider{config: config}
}

// Initialize dials the RPC endpoint and sets up the deployer signing context.
// It returns the initialized chain, or an error if initialization fails.
func (p *RPCChainProvider) Initialize(ctx context.Context) (evm.Chain, error) {
	if p.chain != nil {
		return *p.chain, nil // Already initialized
	}

	if err := p.config.validate(); err != nil {
		return evm.Chain{}, fmt.Errorf("failed to validate provider config: %w", err)
	}

	if p.config.Logger == nil {
		lggr, err := logger.New()
		if err != nil {
			return evm.Chain{}, fmt.Errorf("failed to create default logger: %w", err)
		}
		p.config.Logger = lggr
	}

	confirmTimeout := p.config.ConfirmTimeout
	if confirmTimeout == 0 {
		confirmTimeout = 5 * time.Minute
	}

	client, err := ethclient.DialContext(ctx, p.config.RPCURL)
	if err != nil {
		return evm.Chain{}, fmt.Errorf("failed to dial %s: %w", p.config.RPCURL, err)
	}

	chainID := new(big.Int).SetUint64(p.config.ChainID)

	key, err := crypto.HexToECDSA(p.config.DeployerKeyHex)
	if err != nil {
		return evm.Chain{}, fmt.Errorf("failed to parse deployer private key: %w", err)
	}

	deployerKey, err := bind.NewKeyedTransactorWithChainID(key, chainID)
	if err != nil {
		return evm.Chain{}, fmt.Errorf("failed to create deployer transactor: %w", err)
	}

	lggr := p.config.Logger

	p.chain = &evm.Chain{
		Name:        p.config.NetworkName,
		ChainID:     chainID,
		Client:      client,
		DeployerKey: deployerKey,
		Confirm: func(tx *types.Transaction) (uint64, error) {
			if tx == nil {
				return 0, errors.New("tx was nil, nothing to confirm")
			}

			waitCtx, cancel := context.WithTimeout(ctx, confirmTimeout)
			defer cancel()

			receipt, err := bind.WaitMined(waitCtx, client, tx)
			if err != nil {
				return 0, fmt.Errorf("failed to wait for tx %s: %w", tx.Hash(), err)
			}

			if receipt.Status == types.ReceiptStatusFailed {
				return receipt.BlockNumber.Uint64(), fmt.Errorf("tx %s reverted", tx.Hash())
			}

			lggr.Debugw("Transaction confirmed",
				"tx", tx.Hash(), "block", receipt.BlockNumber.Uint64())

			return receipt.BlockNumber.Uint64(), nil
		},
	}

	return *p.chain, nil
}
