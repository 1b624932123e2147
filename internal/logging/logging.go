// Package logging provides the structured logger shared by the decoders
// and the CLI. The teacher logged ad hoc with fmt.Println
// at tick boundaries (core/core.go); here the same one-line-per-pass habit
// is kept, but routed through logr so a caller can redirect, filter, or
// silence it without touching decoder code.
package logging

import (
	"io"
	"os"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"
)

// Default is the package-wide logger used when callers don't supply one.
// The decoders take a logr.Logger parameter so tests can swap in
// logr.Discard(); the traversal engine does not log.
var Default = New(os.Stderr, "xnet")

// New builds a funcr-backed logger writing to w, prefixed with component.
func New(w io.Writer, component string) logr.Logger {
	return funcr.New(func(prefix, args string) {
		if prefix != "" {
			io.WriteString(w, prefix+" "+args+"\n")
			return
		}
		io.WriteString(w, args+"\n")
	}, funcr.Options{
		LogCaller: funcr.None,
	}).WithName(component)
}

// Discard returns a logger that drops everything, for use in tests and in
// callers that don't want decode-time chatter.
func Discard() logr.Logger {
	return logr.Discard()
}
