// Package host provides the terminal harness an embedder wires around the
// embedcli core engine: raw-mode TTY control, a pty-backed integration
// test rig, shell detection, OSC 133 shell-integration scripts, and a
// clipboard-yank pre-filter. None of it is reachable from
// embedcli.Controller.ProcessByte's call graph — every allocation, disk
// write, and third-party dependency here lives strictly on the host side
// of the boundary described in SPEC_FULL.md §9.
package host

import (
	"log"

	"github.com/atotto/clipboard"
)

// DefaultYankByte is Ctrl-Y, the conventional "yank" keystroke this host
// intercepts before it ever reaches the core decoder.
const DefaultYankByte = 0x19

// ClipboardYank is a host-side byte pre-filter: it watches for a single
// configured trigger byte and, on match, copies the caller-supplied
// current line to the system clipboard instead of forwarding the byte to
// embedcli.Controller.ProcessByte. The core's Ground-state event table
// (spec.md §4.2) has no knowledge of this — it is strictly a host-level
// interception, so a byte that isn't the trigger always passes through
// untouched.
type ClipboardYank struct {
	Trigger byte
}

// NewClipboardYank builds a filter for the default yank byte.
func NewClipboardYank() *ClipboardYank {
	return &ClipboardYank{Trigger: DefaultYankByte}
}

// Intercept reports whether b was the trigger byte. If so, it writes line
// to the system clipboard (logging, not propagating, any failure — there
// is no user-visible error channel for this beyond the bell, which is
// reserved for BufferFull) and the caller must not forward b to the core.
func (y *ClipboardYank) Intercept(b byte, line []byte) (handled bool) {
	if b != y.Trigger {
		return false
	}
	if err := clipboard.WriteAll(string(line)); err != nil {
		log.Printf("host: clipboard yank failed: %v", err)
	}
	return true
}
