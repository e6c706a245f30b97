// Package config loads the typed per-network configuration manifest. Every
// address an operation depends on is declared here and validated eagerly, so a
// missing entry fails fast before any external call is made.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// ErrMissingConfig is returned when a required parameter or network entry is
// absent from the manifest.
var ErrMissingConfig = errors.New("missing configuration")

// Network holds the fixed set of addresses and endpoints required to operate
// against a single network.
type Network struct {
	// Name is the network identifier, e.g. "sepolia", "mainnet".
	Name string `mapstructure:"name" yaml:"name"`

	// ChainID is the EIP-155 chain ID of the network.
	ChainID uint64 `mapstructure:"chainId" yaml:"chainId"`

	// RPCURL is the JSON-RPC endpoint used for all chain interaction.
	RPCURL string `mapstructure:"rpcUrl" yaml:"rpcUrl"`

	// PaymasterAddress is the address of the previously deployed paymaster that
	// tracks which tokens are enabled and funds their operation.
	PaymasterAddress string `mapstructure:"paymasterAddress" yaml:"paymasterAddress"`

	// ForwarderAddress is the trusted forwarder passed to token constructors.
	ForwarderAddress string `mapstructure:"forwarderAddress" yaml:"forwarderAddress"`

	// RelayHubAddress is optional and only needed when funding the paymaster
	// through a relay hub.
	RelayHubAddress string `mapstructure:"relayHubAddress" yaml:"relayHubAddress,omitempty"`

	// VerifierAPIURL is the endpoint of the source verification service.
	// Optional; verification is skipped when unset.
	VerifierAPIURL string `mapstructure:"verifierApiUrl" yaml:"verifierApiUrl"`
}

// Validate ensures the network entry carries every required field and that all
// configured addresses are well-formed.
func (n Network) Validate() error {
	if n.Name == "" {
		return fmt.Errorf("%w: network name is required", ErrMissingConfig)
	}
	if n.ChainID == 0 {
		return fmt.Errorf("%w: network %s: chainId is required", ErrMissingConfig, n.Name)
	}
	if n.RPCURL == "" {
		return fmt.Errorf("%w: network %s: rpcUrl is required", ErrMissingConfig, n.Name)
	}
	if n.PaymasterAddress == "" {
		return fmt.Errorf("%w: network %s: paymasterAddress is required", ErrMissingConfig, n.Name)
	}
	if n.ForwarderAddress == "" {
		return fmt.Errorf("%w: network %s: forwarderAddress is required", ErrMissingConfig, n.Name)
	}

	for field, addr := range map[string]string{
		"paymasterAddress": n.PaymasterAddress,
		"forwarderAddress": n.ForwarderAddress,
	} {
		if !common.IsHexAddress(addr) {
			return fmt.Errorf("%w: network %s: %s %q is not a valid address", ErrMissingConfig, n.Name, field, addr)
		}
	}
	if n.RelayHubAddress != "" && !common.IsHexAddress(n.RelayHubAddress) {
		return fmt.Errorf("%w: network %s: relayHubAddress %q is not a valid address", ErrMissingConfig, n.Name, n.RelayHubAddress)
	}

	return nil
}

// Manifest is the YAML representation of the configuration file.
type Manifest struct {
	// RecordDir is the directory deployment records are written to.
	// Defaults to "deployments".
	RecordDir string `mapstructure:"recordDir" yaml:"recordDir"`

	// Networks is a YAML array of network entries.
	Networks []Network `mapstructure:"networks" yaml:"networks"`
}

// Config is the parsed and validated configuration. Networks are keyed by name
// so lookups are typed and explicit; there are no implicit process-wide
// defaults.
type Config struct {
	recordDir string
	networks  map[string]Network
}

// New creates a Config from a manifest. Duplicate network names are rejected.
func New(m Manifest) (*Config, error) {
	recordDir := m.RecordDir
	if recordDir == "" {
		recordDir = "deployments"
	}

	networks := make(map[string]Network, len(m.Networks))
	for _, n := range m.Networks {
		if err := n.Validate(); err != nil {
			return nil, err
		}
		if _, ok := networks[n.Name]; ok {
			return nil, fmt.Errorf("duplicate network entry: %s", n.Name)
		}
		networks[n.Name] = n
	}

	return &Config{
		recordDir: recordDir,
		networks:  networks,
	}, nil
}

// Load reads and validates the manifest at filePath.
func Load(filePath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(filePath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", filePath, err)
	}

	var m Manifest
	if err := v.Unmarshal(&m); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", filePath, err)
	}

	return New(m)
}

// ExampleManifest returns a starter manifest with a single placeholder network,
// suitable as a template for a new project.
func ExampleManifest() Manifest {
	return Manifest{
		RecordDir: "deployments",
		Networks: []Network{
			{
				Name:             "sepolia",
				ChainID:          11155111,
				RPCURL:           "https://sepolia.example-rpc.invalid",
				PaymasterAddress: "0x0000000000000000000000000000000000000000",
				ForwarderAddress: "0x0000000000000000000000000000000000000000",
				VerifierAPIURL:   "https://api-sepolia.etherscan.io/api",
			},
		},
	}
}

// WriteExample writes the starter manifest to filePath. It refuses to clobber
// an existing file.
func WriteExample(filePath string) error {
	if _, err := os.Stat(filePath); err == nil {
		return fmt.Errorf("config file %s already exists", filePath)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to stat %s: %w", filePath, err)
	}

	b, err := yaml.Marshal(ExampleManifest())
	if err != nil {
		return fmt.Errorf("failed to marshal example manifest: %w", err)
	}

	if err := os.WriteFile(filePath, b, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filePath, err)
	}

	return nil
}

// RecordDir returns the directory deployment records are written to.
func (c *Config) RecordDir() string {
	return c.recordDir
}

// ByName retrieves a network entry by name. A missing network is a
// configuration error, never a retryable one.
func (c *Config) ByName(name string) (Network, error) {
	n, ok := c.networks[name]
	if !ok {
		return Network{}, fmt.Errorf("%w: network %q not found in configuration", ErrMissingConfig, name)
	}

	return n, nil
}

// Networks returns the names of all configured networks.
func (c *Config) Networks() []string {
	names := make([]string, 0, len(c.networks))
	for name := range c.networks {
		names = append(names, name)
	}

	return names
}
