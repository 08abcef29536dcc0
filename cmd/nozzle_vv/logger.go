package main

import (
	"os"

	"github.com/baditaflorin/l"
)

// newLogger creates the CLI's structured logger.
func newLogger() (l.Logger, error) {
	return l.NewStandardFactory().CreateLogger(l.Config{
		Output:     os.Stderr,
		JsonFormat: false,
		AsyncWrite: false,
		AddSource:  false,
	})
}
