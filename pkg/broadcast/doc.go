// Package broadcast provides type-safe, fire-and-forget fan-out of change
// notifications to channel subscribers and callback listeners.
//
// Broadcasting never blocks the sender. A subscriber whose buffer is full
// misses the message but stays subscribed: notifications describe "something
// changed", so a consumer that falls behind only needs the next one to
// resynchronise. Listeners are invoked synchronously on the broadcasting
// goroutine and must return quickly.
//
// Basic usage:
//
//	b := broadcast.NewMemoryBroadcaster[string](10)
//	defer b.Close()
//
//	sub := b.Subscribe(ctx)
//	defer sub.Close()
//
//	stop := b.Listen(func(msg broadcast.Message[string]) { log.Println(msg.Data) })
//	defer stop()
//
//	_ = b.Broadcast(ctx, broadcast.Message[string]{Data: "hello"})
//
//	for msg := range sub.Receive(ctx) {
//		fmt.Println(msg.Data)
//	}
//
// Subscriptions are removed when their context is cancelled, when Close is
// called on them, or when the broadcaster is closed.
package broadcast
