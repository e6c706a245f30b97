package record

import "fmt"

// Kind identifies the class of deployed contract a record describes.
type Kind string

const (
	KindToken     Kind = "token"
	KindPaymaster Kind = "paymaster"
)

func (k Kind) String() string {
	return string(k)
}

// Key uniquely identifies a deployment record. It is a pure function of the
// contract kind, a human identifier (typically the token symbol), the deployed
// address and the network name, so records for distinct deployments never
// collide and re-deriving the key from known inputs always locates the same
// record.
type Key struct {
	kind       Kind
	identifier string
	address    string
	network    string
}

// NewKey creates a new Key.
func NewKey(kind Kind, identifier, address, network string) Key {
	return Key{
		kind:       kind,
		identifier: identifier,
		address:    address,
		network:    network,
	}
}

// Kind returns the contract kind component of the key.
func (k Key) Kind() Kind { return k.kind }

// Identifier returns the human identifier component of the key.
func (k Key) Identifier() string { return k.identifier }

// Address returns the deployed address component of the key.
func (k Key) Address() string { return k.address }

// Network returns the network name component of the key.
func (k Key) Network() string { return k.network }

// Equals returns true if the two keys are equal, false otherwise.
func (k Key) Equals(other Key) bool {
	return k.kind == other.kind &&
		k.identifier == other.identifier &&
		k.address == other.address &&
		k.network == other.network
}

// FileName returns the file name the record for this key is stored under.
// Format: "<kind>-<identifier>-<address>-<network>.json".
func (k Key) FileName() string {
	return fmt.Sprintf("%s-%s-%s-%s.json", k.kind, k.identifier, k.address, k.network)
}

// String returns the key in its file-name form.
func (k Key) String() string {
	return k.FileName()
}
