package workflows

import (
	"context"
	"errors"
	"fmt"

	"github.com/tokenforge/tokenops/record"
	"github.com/tokenforge/tokenops/verify"
)

// VerifyContractInput identifies the deployment record to replay through the
// verification service.
type VerifyContractInput struct {
	Kind       record.Kind `json:"kind"`
	Identifier string      `json:"identifier"`
	Address    string      `json:"address"`
}

// VerifyContractOutput is the outcome of a verification run.
type VerifyContractOutput struct {
	Address         string `json:"address"`
	AlreadyVerified bool   `json:"alreadyVerified"`
}

// VerifyContract loads the persisted deployment record and replays its
// constructor-argument tuple through the verification service. An
// already-verified response is success. A missing record means the producing
// deployment step has not run; that is never retried.
func VerifyContract(ctx context.Context, deps Deps, in VerifyContractInput) (VerifyContractOutput, error) {
	lggr := deps.lggr()

	key := record.NewKey(in.Kind, in.Identifier, in.Address, deps.Network.Name)

	rec, err := deps.Store.Load(key)
	if err != nil {
		if errors.Is(err, record.ErrRecordNotFound) {
			err = fmt.Errorf("%w; run the %s deployment step first", err, in.Kind)
		}
		deps.report("verify-contract", in, nil, err)

		return VerifyContractOutput{}, err
	}

	lggr.Infow("Verifying contract source",
		"address", rec.Address, "network", deps.Network.Name)

	out := VerifyContractOutput{Address: rec.Address}

	err = deps.Verifier.Verify(ctx, rec.Address, rec.ConstructorArgs)
	switch {
	case err == nil:
	case errors.Is(err, verify.ErrAlreadyVerified):
		lggr.Infow("Contract already verified", "address", rec.Address)
		out.AlreadyVerified = true
	default:
		err = fmt.Errorf("failed to verify contract %s: %w", rec.Address, err)
		deps.report("verify-contract", in, nil, err)

		return VerifyContractOutput{}, err
	}

	deps.report("verify-contract", in, out, nil)

	return out, nil
}
