package broadcast

import (
	"context"
	"sync"
)

// Message wraps data of type T for type-safe broadcasting.
type Message[T any] struct {
	Data T
}

// Subscriber receives messages from a Broadcaster.
// Implementations must be safe for concurrent use.
type Subscriber[T any] interface {
	// Receive returns the channel messages are delivered on. It is closed
	// when the subscription ends.
	Receive(ctx context.Context) <-chan Message[T]

	// Close ends the subscription. It is idempotent.
	Close() error
}

// Broadcaster sends messages to multiple subscribers and listeners.
type Broadcaster[T any] interface {
	// Subscribe creates a subscriber bound to ctx: cancelling ctx ends it.
	Subscribe(ctx context.Context) Subscriber[T]

	// Listen registers fn for every message and returns a function that
	// removes it.
	Listen(fn func(Message[T])) (stop func())

	// Broadcast delivers msg without blocking.
	Broadcast(ctx context.Context, msg Message[T]) error

	// Close ends all subscriptions and drops all listeners.
	Close() error
}

type subscriber[T any] struct {
	ch      chan Message[T]
	closed  bool
	mu      sync.Mutex
	onClose func()
}

func newSubscriber[T any](bufferSize int) *subscriber[T] {
	return &subscriber[T]{
		ch: make(chan Message[T], bufferSize),
	}
}

func (s *subscriber[T]) Receive(ctx context.Context) <-chan Message[T] {
	return s.ch
}

func (s *subscriber[T]) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	close(s.ch)
	s.closed = true
	onClose := s.onClose
	s.mu.Unlock()

	if onClose != nil {
		onClose()
	}
	return nil
}

// send delivers msg if there is room; a full buffer drops the message.
func (s *subscriber[T]) send(msg Message[T]) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}

	select {
	case s.ch <- msg:
	default:
	}
}
