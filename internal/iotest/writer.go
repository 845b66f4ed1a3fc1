// Package iotest provides io helpers for tests.
package iotest

import (
	"bytes"
	"io"
	"testing"

	"go.abhg.dev/codetabs/internal/linebuf"
)

// Writer builds an io.Writer that logs to the given testing.TB,
// one call to Logf per line of output.
// Partial lines are buffered until a newline,
// or until the test finishes.
func Writer(t testing.TB) io.Writer {
	w, flush := linebuf.Writer(func(line []byte) {
		t.Logf("%s", bytes.TrimSuffix(line, []byte{'\n'}))
	})
	t.Cleanup(flush)
	return w
}
