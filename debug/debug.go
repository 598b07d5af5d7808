// Package debug provides cold-path diagnostic logging: per-interval and
// resume status lines, the interrupt notice, and fatal errors. Never called
// from the kernel's enumeration loop or the tree's insert/cleanup path.
//
// Writes straight to os.Stderr rather than through a structured logger:
// both functions fire at most once per matrix or per run, never per candidate, so the
// allocation from one string concatenation per call is immaterial.
package debug

import (
	"fmt"
	"os"
)

// DropError logs prefix and err's message to stderr. If err is nil, only
// prefix is logged — used for cold-path tags that carry no error value.
func DropError(prefix string, err error) {
	if err != nil {
		fmt.Fprintln(os.Stderr, prefix+": "+err.Error())
	} else {
		fmt.Fprintln(os.Stderr, prefix)
	}
}

// DropMessage logs a prefixed diagnostic message to stderr.
func DropMessage(prefix, message string) {
	fmt.Fprintln(os.Stderr, prefix+": "+message)
}
