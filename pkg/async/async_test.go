package async_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formfeedback/pkg/async"
)

func TestAsync(t *testing.T) {
	t.Parallel()

	t.Run("returns result", func(t *testing.T) {
		f := async.Async(context.Background(), 42, func(_ context.Context, n int) (string, error) {
			time.Sleep(10 * time.Millisecond)
			return fmt.Sprintf("Number: %d", n), nil
		})
		res, err := f.Await()
		require.NoError(t, err)
		assert.Equal(t, "Number: 42", res)
	})

	t.Run("propagates error", func(t *testing.T) {
		want := errors.New("boom")
		f := async.Async(context.Background(), "x", func(context.Context, string) (bool, error) {
			return false, want
		})
		_, err := f.Await()
		assert.ErrorIs(t, err, want)
	})

	t.Run("recovers panic", func(t *testing.T) {
		f := async.Async(context.Background(), "x", func(context.Context, string) (bool, error) {
			panic("kaboom")
		})
		res, err := f.Await()
		require.Error(t, err)
		assert.False(t, res)
		assert.True(t, async.IsPanic(err))
		assert.Contains(t, err.Error(), "kaboom")
	})

	t.Run("pre-cancelled context skips the function", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		called := make(chan struct{}, 1)
		f := async.Async(ctx, 1, func(context.Context, int) (int, error) {
			called <- struct{}{}
			return 1, nil
		})
		_, err := f.Await()
		assert.ErrorIs(t, err, context.Canceled)
		assert.Empty(t, called)
	})

	t.Run("function sees context deadline", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		f := async.Async(ctx, 1, func(ctx context.Context, n int) (int, error) {
			select {
			case <-time.After(time.Second):
				return n, nil
			case <-ctx.Done():
				return 0, ctx.Err()
			}
		})
		_, err := f.Await()
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}
