package commands

import (
	"log"
	"os"

	"github.com/go-logr/logr"
	"github.com/go-logr/stdr"
)

// newLogger logs to stderr through the standard log package. verbose enables
// V(1) tracing.
func newLogger(verbose bool) logr.Logger {
	if verbose {
		stdr.SetVerbosity(1)
	}
	return stdr.New(log.New(os.Stderr, "", log.LstdFlags))
}

// reorderArgs moves leading positional arguments behind the flags so both
// "play menu.json -toggles 2" and "play -toggles 2 menu.json" parse.
func reorderArgs(args []string) []string {
	var flags, positional []string
	for i := 0; i < len(args); i++ {
		a := args[i]
		if len(a) > 1 && a[0] == '-' {
			flags = append(flags, args[i:]...)
			break
		}
		positional = append(positional, a)
	}
	return append(flags, positional...)
}
