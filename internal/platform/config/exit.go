package config

import (
	"fmt"
	"os"
)

// Exitf prints a formatted fatal message to stderr and terminates the process
// with status 1. Command entry points use it after startup failures.
func Exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
