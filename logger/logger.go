// Package logger exposes the global zerolog instance the solver traces
// through.
//
// The engine emits Debug-level records for mutations and pivot work
// (constraint ids, marker symbols, pivot counts). Output defaults to a
// console writer on stderr; test binaries are silenced unless the debug
// build tag is set.
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/consensys/cassowary/debug"
	"github.com/rs/zerolog"
)

var root zerolog.Logger

func init() {
	if !debug.Debug && strings.HasSuffix(os.Args[0], ".test") {
		root = zerolog.Nop()
		return
	}
	root = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		With().Timestamp().Logger()
}

// Logger returns the solver logger.
func Logger() zerolog.Logger {
	return root
}

// With returns a sublogger tagged with a component name, so solver records
// can be told apart when routed into an application's log stream.
func With(component string) zerolog.Logger {
	return root.With().Str("component", component).Logger()
}

// Set replaces the solver logger with one owned by the caller.
func Set(l zerolog.Logger) {
	root = l
}

// SetOutput redirects the solver logger to w, keeping its context.
func SetOutput(w io.Writer) {
	root = root.Output(w)
}

// Disable silences all solver logging.
func Disable() {
	root = zerolog.Nop()
}
