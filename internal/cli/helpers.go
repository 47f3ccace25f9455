package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
)

// WithInterrupt returns a context cancelled on SIGINT or SIGTERM. The returned
// stop function releases the signal handler, cancels the context and reports
// the signal that ended it, or nil when it ended some other way.
func WithInterrupt(parent context.Context) (context.Context, func() os.Signal) {
	ctx, cancel := context.WithCancel(parent)
	sigs := make(chan os.Signal, 1)
	caught := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)

	go func() {
		defer close(caught)
		select {
		case sig := <-sigs:
			caught <- sig
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, func() os.Signal {
		signal.Stop(sigs)
		cancel()
		return <-caught
	}
}

// ReportInterrupt tells the user which signal stopped a run. Nothing is
// printed for a nil signal.
func ReportInterrupt(w io.Writer, sig os.Signal) {
	if sig == nil {
		return
	}
	printSystemMessage(w, "Stopped by %s.", sig)
}

// printSystemMessage prints a standardized system message.
func printSystemMessage(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, ">>> %s\n", fmt.Sprintf(format, args...))
}
