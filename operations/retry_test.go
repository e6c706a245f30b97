package operations

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tokenforge/tokenops/pkg/logger"
)

func TestRetry_SucceedsOnFinalAttempt(t *testing.T) {
	t.Parallel()

	unit := 10 * time.Millisecond
	policy := RetryPolicy{MaxAttempts: 5, BackoffUnit: unit}

	var calls int
	start := time.Now()
	err := Retry(t.Context(), logger.Test(t), "flaky", policy, func() error {
		calls++
		if calls < 5 {
			return errors.New("transient failure")
		}

		return nil
	})
	elapsed := time.Since(start)

	require.NoError(t, err)
	assert.Equal(t, 5, calls)

	// Linear backoff sleeps 1, 2, 3 and 4 units between the five attempts.
	assert.GreaterOrEqual(t, elapsed, 10*unit)
}

func TestRetry_ExhaustsBudget(t *testing.T) {
	t.Parallel()

	policy := RetryPolicy{MaxAttempts: 5, BackoffUnit: time.Millisecond}

	final := errors.New("persistent failure")
	var calls int
	err := Retry(t.Context(), logger.Test(t), "doomed", policy, func() error {
		calls++
		return final
	})

	assert.Equal(t, 5, calls)
	// The final attempt's error propagates verbatim, not wrapped in an
	// aggregate.
	require.ErrorIs(t, err, final)
	assert.EqualError(t, err, "persistent failure")
}

func TestRetry_TwoAttemptTimeout(t *testing.T) {
	t.Parallel()

	unit := 50 * time.Millisecond
	policy := RetryPolicy{MaxAttempts: 2, BackoffUnit: unit}

	var calls int
	start := time.Now()
	err := Retry(t.Context(), logger.Test(t), "timeout", policy, func() error {
		calls++
		return errors.New("network timeout")
	})
	elapsed := time.Since(start)

	assert.Equal(t, 2, calls)
	require.EqualError(t, err, "network timeout")

	// One backoff of 1 unit between the two attempts.
	assert.GreaterOrEqual(t, elapsed, unit)
	assert.Less(t, elapsed, 10*unit)
}

func TestRetry_Unrecoverable(t *testing.T) {
	t.Parallel()

	policy := RetryPolicy{MaxAttempts: 5, BackoffUnit: time.Millisecond}

	precondition := errors.New("record not found")
	var calls int
	err := Retry(t.Context(), logger.Test(t), "fatal", policy, func() error {
		calls++
		return Unrecoverable(precondition)
	})

	// Precondition failures are never retried.
	assert.Equal(t, 1, calls)
	require.ErrorIs(t, err, precondition)
}

func TestRetry_ContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(t.Context())
	policy := RetryPolicy{MaxAttempts: 10, BackoffUnit: time.Minute}

	var calls int
	done := make(chan error, 1)
	go func() {
		done <- Retry(ctx, logger.Test(t), "cancelled", policy, func() error {
			calls++
			return errors.New("transient failure")
		})
	}()

	// Cancel while the loop is waiting out the first backoff.
	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.Error(t, err)
		assert.Equal(t, 1, calls)
	case <-time.After(5 * time.Second):
		t.Fatal("retry loop did not observe cancellation")
	}
}

func TestRetryPolicy_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		give      RetryPolicy
		wantError bool
	}{
		{
			name: "valid",
			give: RetryPolicy{MaxAttempts: 1, BackoffUnit: time.Second},
		},
		{
			name: "zero backoff is valid",
			give: RetryPolicy{MaxAttempts: 3},
		},
		{
			name:      "zero attempts",
			give:      RetryPolicy{BackoffUnit: time.Second},
			wantError: true,
		},
		{
			name:      "negative backoff",
			give:      RetryPolicy{MaxAttempts: 3, BackoffUnit: -time.Second},
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.give.Validate()
			if tt.wantError {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestDefaultRetryPolicy(t *testing.T) {
	t.Parallel()

	policy := DefaultRetryPolicy()
	assert.Equal(t, uint(5), policy.MaxAttempts)
	assert.Equal(t, time.Second, policy.BackoffUnit)
	require.NoError(t, policy.Validate())
}
