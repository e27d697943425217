package host

import (
	"io"
	"os"
	"os/exec"
	"os/signal"
	"syscall"

	"github.com/creack/pty"
)

// PtySession spawns a child process attached to a pseudo-terminal, used
// to exercise the core engine against a real line discipline (echo,
// signal delivery, window-size propagation) without a human at the
// keyboard — the integration-test harness named in SPEC_FULL.md §4.10,
// not a feature the engine depends on to function.
type PtySession struct {
	cmd  *exec.Cmd
	ptmx *os.File

	resizeCh chan os.Signal
}

// StartPtySession spawns name with args attached to a new pty.
func StartPtySession(name string, args ...string) (*PtySession, error) {
	cmd := exec.Command(name, args...)
	ptmx, err := pty.Start(cmd)
	if err != nil {
		return nil, err
	}
	return &PtySession{cmd: cmd, ptmx: ptmx}, nil
}

// File exposes the pty master end for reading/writing raw bytes.
func (s *PtySession) File() *os.File { return s.ptmx }

// WatchResize propagates SIGWINCH from this process to the pty, keeping
// the child's notion of terminal size in sync with the host's.
func (s *PtySession) WatchResize() {
	s.resizeCh = make(chan os.Signal, 1)
	signal.Notify(s.resizeCh, syscall.SIGWINCH)
	go func() {
		for range s.resizeCh {
			_ = pty.InheritSize(os.Stdin, s.ptmx)
		}
	}()
	s.resizeCh <- syscall.SIGWINCH
}

// Pump copies bytes from the pty master to dst until the child exits or
// the pty closes. It is meant to run in its own goroutine.
func (s *PtySession) Pump(dst io.Writer) {
	_, _ = io.Copy(dst, s.ptmx)
}

// Wait blocks until the child process exits.
func (s *PtySession) Wait() error { return s.cmd.Wait() }

// Close stops resize propagation and releases the pty master.
func (s *PtySession) Close() error {
	if s.resizeCh != nil {
		signal.Stop(s.resizeCh)
	}
	return s.ptmx.Close()
}
