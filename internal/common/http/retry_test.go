package http

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var errTransient = errors.New("transient")

func isTransient(err error) bool { return errors.Is(err, errTransient) }

func TestBackoff(t *testing.T) {
	assert.Equal(t, time.Duration(0), Backoff(100*time.Millisecond, 0))
	assert.Equal(t, 100*time.Millisecond, Backoff(100*time.Millisecond, 1))
	assert.Equal(t, 200*time.Millisecond, Backoff(100*time.Millisecond, 2))
	assert.Equal(t, 400*time.Millisecond, Backoff(100*time.Millisecond, 3))
}

func TestDoWithRetry_SucceedsAfterTransient(t *testing.T) {
	calls := 0
	err := DoWithRetry(context.Background(), 2, time.Millisecond, isTransient, func(ctx context.Context, attempt int) error {
		calls++
		if attempt == 0 {
			return errTransient
		}
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestDoWithRetry_StopsOnPermanent(t *testing.T) {
	permanent := errors.New("permanent")
	calls := 0
	err := DoWithRetry(context.Background(), 3, time.Millisecond, isTransient, func(ctx context.Context, attempt int) error {
		calls++
		return permanent
	})
	assert.ErrorIs(t, err, permanent)
	assert.Equal(t, 1, calls)
}

func TestDoWithRetry_ExhaustsRetries(t *testing.T) {
	calls := 0
	err := DoWithRetry(context.Background(), 1, time.Millisecond, isTransient, func(ctx context.Context, attempt int) error {
		calls++
		return errTransient
	})
	assert.ErrorIs(t, err, errTransient)
	assert.Equal(t, 2, calls)
}

func TestDoWithRetry_ContextCancelledDuringBackoff(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	err := DoWithRetry(ctx, 5, time.Hour, isTransient, func(ctx context.Context, attempt int) error {
		calls++
		cancel()
		return errTransient
	})
	assert.ErrorIs(t, err, errTransient)
	assert.Equal(t, 1, calls)
}

func TestNewClient(t *testing.T) {
	c := NewClient(2 * time.Second)
	assert.Equal(t, 2*time.Second, c.HTTPClient().Timeout)
	assert.NotNil(t, c.HTTPClient().Transport)
}
