package ingest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestRetryer returns a retryer whose sleeps are recorded instead of slept.
func newTestRetryer(t *testing.T, retries int, multiplier, max time.Duration) (*Retryer, *[]time.Duration) {
	t.Helper()
	r, err := NewRetryer(retries, multiplier, max)
	require.NoError(t, err)

	var slept []time.Duration
	r.sleep = func(ctx context.Context, d time.Duration) error {
		slept = append(slept, d)
		return nil
	}
	return r, &slept
}

func TestNewRetryer(t *testing.T) {
	t.Run("negative retries", func(t *testing.T) {
		_, err := NewRetryer(-1, time.Millisecond, time.Second)
		assert.ErrorIs(t, err, ErrInvalidRetries)
	})

	t.Run("non-positive backoff", func(t *testing.T) {
		_, err := NewRetryer(1, 0, time.Second)
		assert.ErrorIs(t, err, ErrInvalidBackoff)

		_, err = NewRetryer(1, time.Millisecond, 0)
		assert.ErrorIs(t, err, ErrInvalidBackoff)
	})

	t.Run("zero retries allowed", func(t *testing.T) {
		_, err := NewRetryer(0, time.Millisecond, time.Second)
		assert.NoError(t, err)
	})
}

func TestRetryer_Do(t *testing.T) {
	ctx := context.Background()

	t.Run("succeeds first try", func(t *testing.T) {
		r, slept := newTestRetryer(t, 3, time.Millisecond, time.Second)

		attempts := 0
		err := r.Do(ctx, func(ctx context.Context) error {
			attempts++
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 1, attempts)
		assert.Empty(t, *slept, "no sleep without failure")
	})

	t.Run("N retries means N+1 attempts", func(t *testing.T) {
		r, slept := newTestRetryer(t, 3, time.Millisecond, time.Second)

		attempts := 0
		err := r.Do(ctx, func(ctx context.Context) error {
			attempts++
			return errors.New("always fails")
		})
		require.Error(t, err)
		assert.Equal(t, 4, attempts)
		assert.Len(t, *slept, 3, "no sleep after the last attempt")
	})

	t.Run("final error surfaced unchanged", func(t *testing.T) {
		r, _ := newTestRetryer(t, 2, time.Millisecond, time.Second)

		sentinel := errors.New("collaborator down")
		err := r.Do(ctx, func(ctx context.Context) error {
			return sentinel
		})
		assert.ErrorIs(t, err, sentinel)
		assert.Equal(t, "collaborator down", err.Error())
	})

	t.Run("recovers on later attempt", func(t *testing.T) {
		r, _ := newTestRetryer(t, 3, time.Millisecond, time.Second)

		attempts := 0
		err := r.Do(ctx, func(ctx context.Context) error {
			attempts++
			if attempts < 3 {
				return errors.New("transient")
			}
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 3, attempts)
	})

	t.Run("cancelled context stops retrying", func(t *testing.T) {
		r, err := NewRetryer(5, time.Millisecond, time.Second)
		require.NoError(t, err)

		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		doErr := r.Do(cancelled, func(ctx context.Context) error {
			return errors.New("never reached on the second attempt")
		})
		assert.ErrorIs(t, doErr, context.Canceled)
	})
}

func TestRetryer_JitterBounds(t *testing.T) {
	const (
		multiplier = 10 * time.Millisecond
		max        = 80 * time.Millisecond
		retries    = 6
	)
	r, slept := newTestRetryer(t, retries, multiplier, max)

	err := r.Do(context.Background(), func(ctx context.Context) error {
		return errors.New("always fails")
	})
	require.Error(t, err)
	require.Len(t, *slept, retries)

	// Sleep i must lie in [0, min(2^i * multiplier, max)]: 10, 20, 40, 80,
	// then capped at 80 once backoff saturates.
	for i, d := range *slept {
		ceiling := multiplier << uint(i)
		if ceiling > max {
			ceiling = max
		}
		assert.GreaterOrEqual(t, d, time.Duration(0), "sleep %d", i)
		assert.LessOrEqual(t, d, ceiling, "sleep %d", i)
	}
}
