// Package verify submits deployed contracts to an external source-verification
// service, replaying the constructor-argument tuple persisted at deployment
// time.
package verify

import (
	"context"
	"errors"

	"github.com/tokenforge/tokenops/record"
)

// ErrAlreadyVerified indicates the service already holds a verified source
// mapping for the address. Callers treat it as success, not failure.
var ErrAlreadyVerified = errors.New("contract already verified")

// SourceVerifier registers or proves the source-to-bytecode correspondence of
// a deployed contract.
type SourceVerifier interface {
	// Verify submits address together with the original constructor-argument
	// tuple. Implementations must return ErrAlreadyVerified (possibly wrapped)
	// when the service reports the contract as already verified.
	Verify(ctx context.Context, address string, args record.Args) error
}

// IsSatisfied reports whether a verification outcome should be treated as
// success: either a nil error or an already-verified response.
func IsSatisfied(err error) bool {
	return err == nil || errors.Is(err, ErrAlreadyVerified)
}
