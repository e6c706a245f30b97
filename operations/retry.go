// Package operations provides the bounded-retry primitive used for dependent
// on-chain actions, and run reports for auditing workflow executions.
package operations

import (
	"context"
	"errors"
	"time"

	"github.com/avast/retry-go/v4"

	"github.com/tokenforge/tokenops/pkg/logger"
)

// RetryPolicy defines the arguments to control the retry behavior. The attempt
// budget and backoff unit are first-class parameters rather than hardcoded
// literals so callers can reason about and test them.
type RetryPolicy struct {
	// MaxAttempts is the total number of invocations, including the first.
	MaxAttempts uint

	// BackoffUnit is the linear backoff unit: after the n-th failed attempt the
	// retry loop sleeps n * BackoffUnit before the next attempt.
	BackoffUnit time.Duration
}

// DefaultRetryPolicy returns the policy used for dependent on-chain actions:
// 5 attempts with a 1 second backoff unit. This is intended for transient
// network/RPC flakiness, not sustained outages; there is no jitter, exponential
// growth or circuit breaking.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 5,
		BackoffUnit: time.Second,
	}
}

// Validate ensures the policy is usable.
func (p RetryPolicy) Validate() error {
	if p.MaxAttempts == 0 {
		return errors.New("retry policy: MaxAttempts must be at least 1")
	}
	if p.BackoffUnit < 0 {
		return errors.New("retry policy: BackoffUnit must not be negative")
	}

	return nil
}

// Retry invokes action up to p.MaxAttempts times, sleeping attempt*BackoffUnit
// between attempts (attempt counted from 1). Intermediate failures are logged;
// the error from the final attempt is returned verbatim. The wait is
// cooperative and honors ctx cancellation.
//
// The action must be at-least-once-safe: performing it again after a failure
// that actually took effect must be harmless. That burden sits with the
// external resource, not with this loop.
func Retry(ctx context.Context, lggr logger.Logger, name string, p RetryPolicy, action func() error) error {
	if err := p.Validate(); err != nil {
		return err
	}

	return retry.Do(
		action,
		retry.Attempts(p.MaxAttempts),
		retry.DelayType(func(n uint, _ error, _ *retry.Config) time.Duration {
			// n counts completed failed attempts from 0.
			return time.Duration(n+1) * p.BackoffUnit
		}),
		retry.LastErrorOnly(true),
		retry.Context(ctx),
		retry.OnRetry(func(n uint, err error) {
			lggr.Infow("Action failed. Retrying...",
				"action", name, "attempt", n+1, "maxAttempts", p.MaxAttempts, "error", err)
		}),
	)
}

// Unrecoverable marks err so the retry loop gives up immediately instead of
// exhausting the attempt budget. Precondition failures (missing configuration,
// missing or corrupt records) should be wrapped with this.
func Unrecoverable(err error) error {
	return retry.Unrecoverable(err)
}

// IsRecoverable reports whether err is still considered retryable.
func IsRecoverable(err error) bool {
	return retry.IsRecoverable(err)
}
