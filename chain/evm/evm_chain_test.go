package evm

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChain_String(t *testing.T) {
	t.Parallel()

	c := Chain{Name: "sepolia", ChainID: big.NewInt(11155111)}
	assert.Equal(t, "sepolia (11155111)", c.String())
}

func TestTokenDeployParams_Validate(t *testing.T) {
	t.Parallel()

	valid := TokenDeployParams{
		Name:      "Name",
		Symbol:    "SYM",
		Cap:       big.NewInt(1000),
		Forwarder: common.HexToAddress("0x2222222222222222222222222222222222222222"),
	}

	tests := []struct {
		name      string
		mutate    func(*TokenDeployParams)
		wantError string
	}{
		{
			name:   "valid",
			mutate: func(*TokenDeployParams) {},
		},
		{
			name:      "missing name",
			mutate:    func(p *TokenDeployParams) { p.Name = "" },
			wantError: "token name is required",
		},
		{
			name:      "missing symbol",
			mutate:    func(p *TokenDeployParams) { p.Symbol = "" },
			wantError: "token symbol is required",
		},
		{
			name:      "nil cap",
			mutate:    func(p *TokenDeployParams) { p.Cap = nil },
			wantError: "token cap must be positive",
		},
		{
			name:      "zero cap",
			mutate:    func(p *TokenDeployParams) { p.Cap = big.NewInt(0) },
			wantError: "token cap must be positive",
		},
		{
			name:      "zero forwarder",
			mutate:    func(p *TokenDeployParams) { p.Forwarder = common.Address{} },
			wantError: "trusted forwarder address is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p := valid
			tt.mutate(&p)

			err := p.Validate()
			if tt.wantError == "" {
				require.NoError(t, err)
			} else {
				require.EqualError(t, err, tt.wantError)
			}
		})
	}
}

func TestPaymasterDeployParams_Validate(t *testing.T) {
	t.Parallel()

	valid := PaymasterDeployParams{
		Forwarder: common.HexToAddress("0x2222222222222222222222222222222222222222"),
		RelayHub:  common.HexToAddress("0x3333333333333333333333333333333333333333"),
	}

	require.NoError(t, valid.Validate())

	missingForwarder := valid
	missingForwarder.Forwarder = common.Address{}
	require.EqualError(t, missingForwarder.Validate(), "trusted forwarder address is required")

	missingHub := valid
	missingHub.RelayHub = common.Address{}
	require.EqualError(t, missingHub.Validate(), "relay hub address is required")
}

func TestNewTokenDeployer(t *testing.T) {
	t.Parallel()

	t.Run("rejects malformed ABI", func(t *testing.T) {
		t.Parallel()

		_, err := NewTokenDeployer(Chain{}, "not json", "0x60016002")
		require.ErrorContains(t, err, "failed to parse token ABI")
	})

	t.Run("rejects empty bytecode", func(t *testing.T) {
		t.Parallel()

		_, err := NewTokenDeployer(Chain{}, "[]", "")
		require.ErrorContains(t, err, "bytecode is empty")
	})

	t.Run("parses a valid artifact", func(t *testing.T) {
		t.Parallel()

		d, err := NewTokenDeployer(Chain{}, "[]", "0x60016002")
		require.NoError(t, err)
		assert.NotNil(t, d)
	})
}

func TestNewPaymaster(t *testing.T) {
	t.Parallel()

	addr := common.HexToAddress("0x4444444444444444444444444444444444444444")
	p, err := NewPaymaster(Chain{}, addr)
	require.NoError(t, err)
	assert.Equal(t, addr, p.Address())
}
