// Package record persists the result of a contract deployment as a durable,
// uniquely keyed JSON document, and loads it back for later verification or
// follow-up actions.
//
// A record is written exactly once per successful deployment and is never
// mutated afterwards. Callers derive a fresh Key per deployment; the package
// does not lock against overwrites.
package record

import (
	"errors"
	"fmt"

	"github.com/Masterminds/semver/v3"
)

var (
	// ErrRecordNotFound is returned when no record exists at the derived path.
	ErrRecordNotFound = errors.New("deployment record not found")

	// ErrRecordCorrupt is returned when a record exists but is unreadable or is
	// missing required identity fields.
	ErrRecordCorrupt = errors.New("deployment record corrupt")
)

// DeploymentRecord captures the result of a single contract deployment. Address
// and ConstructorArgs form the identity of the record; the remaining fields are
// mirrored for human inspection only.
type DeploymentRecord struct {
	Address         string `json:"address"`
	ConstructorArgs Args   `json:"constructorArguments"`

	Name      string          `json:"name,omitempty"`
	Symbol    string          `json:"symbol,omitempty"`
	Cap       string          `json:"cap,omitempty"`
	TokenURI  string          `json:"tokenUri,omitempty"`
	Forwarder string          `json:"forwarder,omitempty"`
	Version   *semver.Version `json:"version,omitempty"`
}

// Validate checks that the record carries the fields required for it to be
// usable by downstream steps.
func (r DeploymentRecord) Validate() error {
	if r.Address == "" {
		return fmt.Errorf("%w: missing address", ErrRecordCorrupt)
	}

	return nil
}
