//go:build unit

package backoff_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"shiftlink/internal/pkg/backoff"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastPolicy(attempts int) backoff.Policy {
	return backoff.Policy{
		BaseDelay:   time.Millisecond,
		Multiplier:  1.0,
		MaxAttempts: attempts,
	}
}

func TestRetrySucceedsFirstTry(t *testing.T) {
	calls := 0
	err := fastPolicy(3).Retry(context.Background(), func(context.Context) error {
		calls++
		return nil
	}, nil)

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestRetryRecoversFromTransientFailure(t *testing.T) {
	transient := errors.New("unavailable")
	calls := 0
	err := fastPolicy(3).Retry(context.Background(), func(context.Context) error {
		calls++
		if calls < 3 {
			return transient
		}
		return nil
	}, func(err error) bool { return errors.Is(err, transient) })

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestRetryStopsOnNonRetryable(t *testing.T) {
	terminal := errors.New("declined")
	calls := 0
	err := fastPolicy(5).Retry(context.Background(), func(context.Context) error {
		calls++
		return terminal
	}, func(error) bool { return false })

	assert.ErrorIs(t, err, terminal)
	assert.Equal(t, 1, calls)
}

func TestRetryExhaustsBudgetAndReturnsLastError(t *testing.T) {
	transient := errors.New("unavailable")
	calls := 0
	err := fastPolicy(3).Retry(context.Background(), func(context.Context) error {
		calls++
		return transient
	}, func(error) bool { return true })

	assert.ErrorIs(t, err, transient)
	assert.Equal(t, 3, calls)
}

func TestRetryHonorsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	policy := backoff.Policy{
		BaseDelay:   time.Hour, // waits must never elapse
		Multiplier:  2.0,
		MaxAttempts: 3,
	}

	transient := errors.New("unavailable")
	calls := 0
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()
	err := policy.Retry(ctx, func(context.Context) error {
		calls++
		return transient
	}, func(error) bool { return true })

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestRetryZeroAttemptsRunsOnce(t *testing.T) {
	calls := 0
	err := backoff.Policy{}.Retry(context.Background(), func(context.Context) error {
		calls++
		return nil
	}, nil)

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}
