package embedcli

import "fmt"

// RouteHelp implements spec §4.7: before dispatch, inspect the tokenized
// line for the help forms
//
//	help                  -> list all top-level commands with short help
//	help <name>           -> detailed help for <name>; unknown -> error
//	<name> ... -h|--help  -> detailed help for <name>, anywhere after the
//	                         command name; dispatcher is not invoked
//
// handled reports whether one of these forms matched — if true, the
// Session Controller must not call CommandSet.Dispatch for this line.
// err is non-nil only for the two reported-diagnostic cases (unknown
// command / unknown help target); it is never a WriterFailed-class error
// unless the underlying Writer itself fails, in which case it propagates
// exactly like any other writer error (spec §7).
func RouteHelp(w Writer, cs CommandSet, tokens []string) (handled bool, err error) {
	if len(tokens) == 0 {
		return false, nil
	}

	if tokens[0] == "help" {
		if len(tokens) == 1 {
			return true, writeCommandList(w, cs)
		}
		name := tokens[1]
		if !commandExists(cs, name) {
			if werr := writeLinef(w, "unknown command: %s", name); werr != nil {
				return true, werr
			}
			return true, ErrUnknownCommand
		}
		return true, writeLinef(w, "%s", cs.HelpLong(name))
	}

	name := tokens[0]
	for _, t := range tokens[1:] {
		if t == "-h" || t == "--help" {
			if !commandExists(cs, name) {
				if werr := writeLinef(w, "unknown command: %s", name); werr != nil {
					return true, werr
				}
				return true, ErrUnknownHelpTarget
			}
			return true, writeLinef(w, "%s", cs.HelpLong(name))
		}
	}

	return false, nil
}

func writeCommandList(w Writer, cs CommandSet) error {
	names := cs.Names()
	for {
		name, ok := names.Next()
		if !ok {
			return nil
		}
		if err := writeLinef(w, "  %-10s %s", name, cs.HelpShort(name)); err != nil {
			return err
		}
	}
}

func writeLinef(w Writer, format string, args ...interface{}) error {
	return writeAll(w, []byte(fmt.Sprintf(format+"\r\n", args...)))
}
