package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validNetwork() Network {
	return Network{
		Name:             "sepolia",
		ChainID:          11155111,
		RPCURL:           "https://rpc.example.com",
		PaymasterAddress: "0x1111111111111111111111111111111111111111",
		ForwarderAddress: "0x2222222222222222222222222222222222222222",
	}
}

func TestNetwork_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		mutate    func(*Network)
		wantError string
	}{
		{
			name:   "valid",
			mutate: func(*Network) {},
		},
		{
			name:      "missing name",
			mutate:    func(n *Network) { n.Name = "" },
			wantError: "network name is required",
		},
		{
			name:      "missing chain id",
			mutate:    func(n *Network) { n.ChainID = 0 },
			wantError: "chainId is required",
		},
		{
			name:      "missing rpc url",
			mutate:    func(n *Network) { n.RPCURL = "" },
			wantError: "rpcUrl is required",
		},
		{
			name:      "missing paymaster",
			mutate:    func(n *Network) { n.PaymasterAddress = "" },
			wantError: "paymasterAddress is required",
		},
		{
			name:      "missing forwarder",
			mutate:    func(n *Network) { n.ForwarderAddress = "" },
			wantError: "forwarderAddress is required",
		},
		{
			name:      "malformed paymaster address",
			mutate:    func(n *Network) { n.PaymasterAddress = "not-an-address" },
			wantError: "not a valid address",
		},
		{
			name:      "malformed relay hub address",
			mutate:    func(n *Network) { n.RelayHubAddress = "0xZZ" },
			wantError: "not a valid address",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			n := validNetwork()
			tt.mutate(&n)

			err := n.Validate()
			if tt.wantError == "" {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, ErrMissingConfig)
				assert.ErrorContains(t, err, tt.wantError)
			}
		})
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("defaults record dir", func(t *testing.T) {
		t.Parallel()

		cfg, err := New(Manifest{Networks: []Network{validNetwork()}})
		require.NoError(t, err)
		assert.Equal(t, "deployments", cfg.RecordDir())
	})

	t.Run("rejects invalid network eagerly", func(t *testing.T) {
		t.Parallel()

		bad := validNetwork()
		bad.PaymasterAddress = ""

		_, err := New(Manifest{Networks: []Network{bad}})
		require.ErrorIs(t, err, ErrMissingConfig)
	})

	t.Run("rejects duplicate networks", func(t *testing.T) {
		t.Parallel()

		_, err := New(Manifest{Networks: []Network{validNetwork(), validNetwork()}})
		require.EqualError(t, err, "duplicate network entry: sepolia")
	})
}

func TestConfig_ByName(t *testing.T) {
	t.Parallel()

	cfg, err := New(Manifest{Networks: []Network{validNetwork()}})
	require.NoError(t, err)

	got, err := cfg.ByName("sepolia")
	require.NoError(t, err)
	assert.Equal(t, uint64(11155111), got.ChainID)

	_, err = cfg.ByName("mainnet")
	require.ErrorIs(t, err, ErrMissingConfig)
	assert.ErrorContains(t, err, `network "mainnet" not found`)
}

func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("loads manifest", func(t *testing.T) {
		t.Parallel()

		manifest := `
recordDir: records
networks:
  - name: sepolia
    chainId: 11155111
    rpcUrl: https://rpc.example.com
    paymasterAddress: "0x1111111111111111111111111111111111111111"
    forwarderAddress: "0x2222222222222222222222222222222222222222"
    verifierApiUrl: https://verify.example.com
`
		path := filepath.Join(t.TempDir(), "networks.yaml")
		require.NoError(t, os.WriteFile(path, []byte(manifest), 0o644))

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "records", cfg.RecordDir())

		network, err := cfg.ByName("sepolia")
		require.NoError(t, err)
		assert.Equal(t, "https://verify.example.com", network.VerifierAPIURL)
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
	})
}

func TestWriteExample(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "networks.yaml")
	require.NoError(t, WriteExample(path))

	// The template must round-trip through Load unchanged.
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "deployments", cfg.RecordDir())
	assert.Equal(t, []string{"sepolia"}, cfg.Networks())

	err = WriteExample(path)
	require.Error(t, err)
	assert.ErrorContains(t, err, "already exists")
}
