package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/sqltools-dev/connprof/internal/cli"
	"github.com/sqltools-dev/connprof/pkg/connprof"
)

func main() {
	// Recover from panics to ensure graceful exits with stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "panic: %v\n%s\n", r, debug.Stack())
			os.Exit(connprof.ExitPanic)
		}
	}()

	if err := cli.Execute(); err != nil {
		os.Exit(connprof.ExitCodeForError(err))
	}
}
