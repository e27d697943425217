package host

import (
	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

// TTY wraps raw-mode control of a single file descriptor, used to put a
// real terminal into the byte-at-a-time mode the engine's ProcessByte
// loop expects. It is a no-op pair when the fd is not a terminal (e.g.
// piped input in a test or a CI job), matching spec.md §6's "assumes an
// ANSI/VT100-capable terminal... a host embedding this engine is
// responsible for ensuring that".
type TTY struct {
	fd    int
	saved *term.State
}

// New returns a TTY for the given file descriptor.
func New(fd int) *TTY { return &TTY{fd: fd} }

// IsTerminal reports whether the wrapped fd is an interactive terminal.
func (t *TTY) IsTerminal() bool { return isatty.IsTerminal(uintptr(t.fd)) }

// RawMode switches the terminal to raw mode, remembering the previous
// state for Restore. A no-op (returning nil) when the fd isn't a
// terminal.
func (t *TTY) RawMode() error {
	if !t.IsTerminal() {
		return nil
	}
	state, err := term.MakeRaw(t.fd)
	if err != nil {
		return err
	}
	t.saved = state
	return nil
}

// Restore returns the terminal to the state captured by RawMode. A no-op
// if RawMode was never called or the fd wasn't a terminal.
func (t *TTY) Restore() error {
	if t.saved == nil {
		return nil
	}
	err := term.Restore(t.fd, t.saved)
	t.saved = nil
	return err
}
