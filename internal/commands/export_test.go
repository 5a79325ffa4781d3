package commands

import (
	"io"
	"time"
)

// SetStdin replaces stdin for a test and returns a restore func.
func SetStdin(r io.Reader) func() {
	old := stdin
	stdin = r
	return func() { stdin = old }
}

// SetNow replaces the clock for a test and returns a restore func.
func SetNow(t time.Time) func() {
	old := now
	now = func() time.Time { return t }
	return func() { now = old }
}
