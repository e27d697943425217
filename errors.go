package embedcli

import "errors"

// Sentinel errors returned by core operations. Only a Writer failure ever
// escapes ProcessByte; the others are recovered internally and surfaced to
// the user as terminal output (see Controller.ProcessByte).
var (
	// ErrUnknownCommand is raised by the help router for `help <name>`
	// when name is not in the command set.
	ErrUnknownCommand = errors.New("embedcli: unknown command")

	// ErrUnknownHelpTarget is raised for `<name> -h`/`--help` when name is
	// not in the command set.
	ErrUnknownHelpTarget = errors.New("embedcli: unknown help target")

	// errShortWrite escapes ProcessByte unchanged, same as any other
	// writer error (spec §7: WriterFailed).
	errShortWrite = errors.New("embedcli: short write")
)

// DispatcherError wraps an error returned by a user-supplied Dispatch call.
// The controller writes its message to the terminal and resumes; it is
// never returned from ProcessByte.
type DispatcherError struct {
	Err error
}

func (e *DispatcherError) Error() string { return e.Err.Error() }
func (e *DispatcherError) Unwrap() error { return e.Err }
