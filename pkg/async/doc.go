// Package async provides a small generic Future used to run deferred checks
// off the caller's goroutine and observe their completion.
//
// Async starts a function in its own goroutine and returns a *Future right
// away; Await blocks until the function returned.
//
// A panic inside the function does not crash the process: it completes the
// future with a *PanicError.
//
// # Usage
//
//	f := async.Async(ctx, "john", func(ctx context.Context, name string) (bool, error) {
//	    return lookupAvailable(ctx, name)
//	})
//	ok, err := f.Await()
//
// # Cancellation
//
// A future cannot be cancelled once started. If ctx is already done when
// Async is called the function is not run and the future completes with
// ctx.Err(); otherwise ctx is handed to the function, which decides whether
// to honour it. Callers that lose interest in a result simply ignore it.
package async
