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

// paymasterABI is the fragment of the paymaster interface tokenops interacts
// with. Enabling an already-enabled token is a no-op on-chain, which is what
// makes the enable action safe to retry.
const paymasterABI = `[
	{"type":"function","name":"enableToken","stateMutability":"nonpayable","inputs":[{"name":"token","type":"address"}],"outputs":[]},
	{"type":"function","name":"isTokenEnabled","stateMutability":"view","inputs":[{"name":"token","type":"address"}],"outputs":[{"name":"","type":"bool"}]},
	{"type":"function","name":"deposit","stateMutability":"payable","inputs":[],"outputs":[]}
]`

// Paymaster is a handle to a deployed paymaster contract.
type Paymaster struct {
	chain    Chain
	address  common.Address
	contract *bind.BoundContract
}

// NewPaymaster binds the paymaster at address on chain.
func NewPaymaster(chain Chain, address common.Address) (*Paymaster, error) {
	parsed, err := abi.JSON(strings.NewReader(paymasterABI))
	if err != nil {
		return nil, fmt.Errorf("failed to parse paymaster ABI: %w", err)
	}

	return &Paymaster{
		chain:    chain,
		address:  address,
		contract: bind.NewBoundContract(address, parsed, chain.Client, chain.Client, chain.Client),
	}, nil
}

// Address returns the paymaster contract address.
func (p *Paymaster) Address() common.Address {
	return p.address
}

// EnableToken registers token with the paymaster and waits for confirmation.
func (p *Paymaster) EnableToken(ctx context.Context, token common.Address) error {
	tx, err := p.contract.Transact(p.chain.transactOpts(ctx), "enableToken", token)
	if err != nil {
		return fmt.Errorf("failed to submit enableToken(%s) to paymaster %s: %w", token, p.address, err)
	}

	if _, err := p.chain.Confirm(tx); err != nil {
		return fmt.Errorf("failed to confirm enableToken tx %s: %w", tx.Hash(), err)
	}

	return nil
}

// IsTokenEnabled reports whether token is registered with the paymaster.
func (p *Paymaster) IsTokenEnabled(ctx context.Context, token common.Address) (bool, error) {
	var out []any
	err := p.contract.Call(&bind.CallOpts{Context: ctx}, &out, "isTokenEnabled", token)
	if err != nil {
		return false, fmt.Errorf("failed to call isTokenEnabled(%s) on paymaster %s: %w", token, p.address, err)
	}

	enabled, ok := out[0].(bool)
	if !ok {
		return false, fmt.Errorf("unexpected isTokenEnabled return type %T", out[0])
	}

	return enabled, nil
}

// Deposit tops up the paymaster balance with amount of native currency and
// waits for confirmation.
func (p *Paymaster) Deposit(ctx context.Context, amount *big.Int) error {
	opts := p.chain.transactOpts(ctx)
	opts.Value = amount

	tx, err := p.contract.Transact(opts, "deposit")
	if err != nil {
		return fmt.Errorf("failed to submit deposit to paymaster %s: %w", p.address, err)
	}

	if _, err := p.chain.Confirm(tx); err != nil {
		return fmt.Errorf("failed to confirm deposit tx %s: %w", tx.Hash(), err)
	}

	return nil
}

// Balance returns the paymaster's native-currency balance.
func (p *Paymaster) Balance(ctx context.Context) (*big.Int, error) {
	return p.chain.BalanceOf(ctx, p.address)
}

// PaymasterDeployParams is the constructor-argument tuple for the paymaster.
type PaymasterDeployParams struct {
	Forwarder common.Address
	RelayHub  common.Address
}

// Validate ensures the tuple is complete.
func (p PaymasterDeployParams) Validate() error {
	if p.Forwarder == (common.Address{}) {
		return fmt.Errorf("trusted forwarder address is required")
	}
	if p.RelayHub == (common.Address{}) {
		return fmt.Errorf("relay hub address is required")
	}

	return nil
}

// PaymasterDeployer deploys paymaster contracts from a compiled artifact.
type PaymasterDeployer struct {
	chain    Chain
	abi      abi.ABI
	bytecode []byte
}

// NewPaymasterDeployer parses the artifact and returns a deployer bound to
// chain.
func NewPaymasterDeployer(chain Chain, abiJSON, bytecodeHex string) (*PaymasterDeployer, error) {
	parsed, err := abi.JSON(strings.NewReader(abiJSON))
	if err != nil {
		return nil, fmt.Errorf("failed to parse paymaster ABI: %w", err)
	}

	bytecode := common.FromHex(bytecodeHex)
	if len(bytecode) == 0 {
		return nil, fmt.Errorf("paymaster creation bytecode is empty")
	}

	return &PaymasterDeployer{
		chain:    chain,
		abi:      parsed,
		bytecode: bytecode,
	}, nil
}

// Deploy submits the creation transaction and waits for confirmation.
func (d *PaymasterDeployer) Deploy(ctx context.Context, params PaymasterDeployParams) (DeployResult, error) {
	if err := params.Validate(); err != nil {
		return DeployResult{}, err
	}

	addr, tx, _, err := bind.DeployContract(
		d.chain.transactOpts(ctx),
		d.abi,
		d.bytecode,
		d.chain.Client,
		params.Forwarder,
		params.RelayHub,
	)
	if err != nil {
		return DeployResult{}, fmt.Errorf("failed to deploy paymaster on %s: %w", d.chain.Name, err)
	}

	blockNumber, err := d.chain.Confirm(tx)
	if err != nil {
		return DeployResult{}, fmt.Errorf("failed to confirm paymaster deployment %s: %w", tx.Hash(), err)
	}

	return DeployResult{
		Address:     addr,
		TxHash:      tx.Hash(),
		BlockNumber: blockNumber,
	}, nil
}
