// Command formcheck validates declarative form documents and reports the
// feedback every field would display.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errFormsInvalid) {
			fmt.Fprintln(os.Stderr, "formcheck:", err)
		}
		stop()
		os.Exit(1)
	}
}
