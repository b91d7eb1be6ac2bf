package broadcast_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formfeedback/pkg/broadcast"
)

func TestMemoryBroadcaster_Subscribe(t *testing.T) {
	t.Run("subscribe creates active subscriber", func(t *testing.T) {
		b := broadcast.NewMemoryBroadcaster[string](10)
		defer b.Close()

		sub := b.Subscribe(context.Background())
		require.NotNil(t, sub)
		require.NotNil(t, sub.Receive(context.Background()))
		assert.Equal(t, 1, b.Len())
	})

	t.Run("subscribe after close returns closed subscriber", func(t *testing.T) {
		b := broadcast.NewMemoryBroadcaster[string](10)
		require.NoError(t, b.Close())

		sub := b.Subscribe(context.Background())
		_, ok := <-sub.Receive(context.Background())
		assert.False(t, ok)
		assert.Equal(t, 0, b.Len())
	})

	t.Run("context cancellation unsubscribes", func(t *testing.T) {
		b := broadcast.NewMemoryBroadcaster[string](10)
		defer b.Close()

		ctx, cancel := context.WithCancel(context.Background())
		sub := b.Subscribe(ctx)
		cancel()

		require.Eventually(t, func() bool { return b.Len() == 0 }, time.Second, 5*time.Millisecond)
		_, ok := <-sub.Receive(context.Background())
		assert.False(t, ok)
	})

	t.Run("closing subscriber removes it", func(t *testing.T) {
		b := broadcast.NewMemoryBroadcaster[int](1)
		defer b.Close()

		sub := b.Subscribe(context.Background())
		require.NoError(t, sub.Close())
		require.NoError(t, sub.Close())
		assert.Equal(t, 0, b.Len())
	})
}

func TestMemoryBroadcaster_Broadcast(t *testing.T) {
	t.Run("delivers to all subscribers", func(t *testing.T) {
		b := broadcast.NewMemoryBroadcaster[int](10)
		defer b.Close()

		ctx := context.Background()
		s1 := b.Subscribe(ctx)
		s2 := b.Subscribe(ctx)

		require.NoError(t, b.Broadcast(ctx, broadcast.Message[int]{Data: 7}))

		assert.Equal(t, 7, (<-s1.Receive(ctx)).Data)
		assert.Equal(t, 7, (<-s2.Receive(ctx)).Data)
	})

	t.Run("full buffer drops message but keeps subscriber", func(t *testing.T) {
		b := broadcast.NewMemoryBroadcaster[int](1)
		defer b.Close()

		ctx := context.Background()
		sub := b.Subscribe(ctx)

		require.NoError(t, b.Broadcast(ctx, broadcast.Message[int]{Data: 1}))
		require.NoError(t, b.Broadcast(ctx, broadcast.Message[int]{Data: 2}))

		assert.Equal(t, 1, (<-sub.Receive(ctx)).Data)
		assert.Equal(t, 1, b.Len())

		require.NoError(t, b.Broadcast(ctx, broadcast.Message[int]{Data: 3}))
		assert.Equal(t, 3, (<-sub.Receive(ctx)).Data)
	})

	t.Run("broadcast after close", func(t *testing.T) {
		b := broadcast.NewMemoryBroadcaster[int](1)
		require.NoError(t, b.Close())
		require.NoError(t, b.Close())
		assert.ErrorIs(t, b.Broadcast(context.Background(), broadcast.Message[int]{}), broadcast.ErrClosed)
	})
}

func TestMemoryBroadcaster_Listen(t *testing.T) {
	b := broadcast.NewMemoryBroadcaster[string](1)
	defer b.Close()

	var mu sync.Mutex
	var got []string
	stop := b.Listen(func(m broadcast.Message[string]) {
		mu.Lock()
		got = append(got, m.Data)
		mu.Unlock()
	})

	ctx := context.Background()
	require.NoError(t, b.Broadcast(ctx, broadcast.Message[string]{Data: "a"}))
	stop()
	require.NoError(t, b.Broadcast(ctx, broadcast.Message[string]{Data: "b"}))

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"a"}, got)

	noop := b.Listen(nil)
	noop()
}

func TestMemoryBroadcaster_Concurrent(t *testing.T) {
	b := broadcast.NewMemoryBroadcaster[int](100)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := range 10 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			sub := b.Subscribe(ctx)
			_ = sub.Close()
		}()
		go func(n int) {
			defer wg.Done()
			_ = b.Broadcast(ctx, broadcast.Message[int]{Data: n})
		}(i)
	}
	wg.Wait()
	require.NoError(t, b.Close())
}
