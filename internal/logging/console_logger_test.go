package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestLogger(verbose bool) (*ConsoleLogger, *bytes.Buffer, *bytes.Buffer) {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	l := NewConsoleLogger(verbose)
	l.out = out
	l.errOut = errOut
	return l, out, errOut
}

func TestConsoleLogger_InfoGoesToStdout(t *testing.T) {
	l, out, errOut := newTestLogger(false)

	l.Info("Inserted: %d", 100)

	assert.Equal(t, "Inserted: 100\n", out.String())
	assert.Empty(t, errOut.String())
}

func TestConsoleLogger_VerboseSuppressed(t *testing.T) {
	l, out, errOut := newTestLogger(false)

	l.Verbose("resolved format: %s", "csv")

	assert.Empty(t, out.String())
	assert.Empty(t, errOut.String())
}

func TestConsoleLogger_VerboseEnabled(t *testing.T) {
	l, _, errOut := newTestLogger(true)

	l.Verbose("resolved format: %s", "csv")

	assert.Equal(t, "[VERBOSE] resolved format: csv\n", errOut.String())
}

func TestConsoleLogger_ErrorGoesToStderr(t *testing.T) {
	l, out, errOut := newTestLogger(false)

	l.Error("load failed: %s", "boom")

	assert.Empty(t, out.String())
	assert.Equal(t, "[ERROR] load failed: boom\n", errOut.String())
}
