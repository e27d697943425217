package embedcli

// NameSource yields command names one at a time in a stable order. It is
// the lazy-sequence counterpart of CandidateSource, used for the
// top-level command list (spec §6 "names() → lazy sequence of &str").
type NameSource interface {
	Next() (name string, ok bool)
}

// CommandSet is this implementation's name for spec §6's "Command
// Descriptor contract" — the external, compile-time command-derivation
// facility the core consumes but never constructs itself. A CommandSet
// is built once, at session construction (spec §9), and held as a fixed
// interface value for the session's lifetime; the core never rebuilds or
// re-queries it per keystroke beyond what completion and help require.
type CommandSet interface {
	// Names lists top-level command names in stable order.
	Names() NameSource
	// HelpShort returns a one-line summary for name, used by `help`.
	HelpShort(name string) string
	// HelpLong returns detailed help for name, used by `help <name>` and
	// `<name> -h`/`--help`.
	HelpLong(name string) string
	// Complete returns candidate completions for the next token, given
	// the tokens already parsed on the current line (tokensSoFar[0] is
	// always the command name once len(tokensSoFar) >= 1).
	Complete(tokensSoFar []string) CandidateSource
	// Dispatch runs tokens; tokens[0] is the command name.
	Dispatch(tokens []string) error
}

// commandExists reports whether name appears in cs.Names().
func commandExists(cs CommandSet, name string) bool {
	names := cs.Names()
	for {
		n, ok := names.Next()
		if !ok {
			return false
		}
		if n == name {
			return true
		}
	}
}
