package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDo_SucceedsFirstAttempt(t *testing.T) {
	calls := 0
	err := Do(context.Background(), func() error {
		calls++
		return nil
	}, WithInitialDelay(time.Millisecond))

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestDo_RetriesUntilSuccess(t *testing.T) {
	calls := 0
	err := Do(context.Background(), func() error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	}, WithMaxAttempts(5), WithInitialDelay(time.Millisecond))

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestDo_ExhaustsAttemptsAndWrapsLastError(t *testing.T) {
	sentinel := errors.New("still broken")
	calls := 0
	err := Do(context.Background(), func() error {
		calls++
		return sentinel
	}, WithMaxAttempts(4), WithInitialDelay(time.Millisecond))

	require.Error(t, err)
	assert.Equal(t, 4, calls)
	assert.ErrorIs(t, err, sentinel)
	assert.Contains(t, err.Error(), "after 4 attempts")
}

func TestDo_FatalStopsImmediately(t *testing.T) {
	sentinel := errors.New("bad credentials")
	calls := 0
	err := Do(context.Background(), func() error {
		calls++
		return Fatal(sentinel)
	}, WithMaxAttempts(5), WithInitialDelay(time.Millisecond))

	require.Error(t, err)
	assert.Equal(t, 1, calls)
	assert.ErrorIs(t, err, sentinel)
	assert.True(t, IsFatal(err))
}

func TestDo_ContextCancelledDuringDelay(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	err := Do(ctx, func() error {
		calls++
		return errors.New("transient")
	}, WithMaxAttempts(10), WithInitialDelay(time.Minute))

	require.Error(t, err)
	assert.Equal(t, 1, calls)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDo_FixedCadenceWithUnitMultiplier(t *testing.T) {
	start := time.Now()
	calls := 0
	err := Do(context.Background(), func() error {
		calls++
		return errors.New("transient")
	},
		WithMaxAttempts(3),
		WithInitialDelay(5*time.Millisecond),
		WithMaxDelay(5*time.Millisecond),
		WithMultiplier(1.0))

	require.Error(t, err)
	assert.Equal(t, 3, calls)
	// Two sleeps of 5ms; a growing backoff would take noticeably longer.
	assert.Less(t, time.Since(start), 200*time.Millisecond)
}

func TestFatal_NilStaysNil(t *testing.T) {
	assert.NoError(t, Fatal(nil))
	assert.False(t, IsFatal(nil))
}
