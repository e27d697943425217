// Package command adapts a cobra command tree to the embedcli.CommandSet
// contract, so a CLI author who already describes their commands with
// spf13/cobra (flags, Short/Long help, nested subcommands) can drive the
// embedded line-editing engine without writing a second command table.
package command

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/kir-gadjello/embedcli"
)

// Set wraps a *cobra.Command tree rooted at root. Built once at session
// construction time and never mutated afterward, satisfying the core's
// "instantiate at construction, never per-call" requirement for its
// CommandSet collaborator.
type Set struct {
	root *cobra.Command
}

// New returns a CommandSet backed by root's registered subcommands. root
// itself is never dispatched to directly; its children are the engine's
// top-level command table.
func New(root *cobra.Command) *Set {
	return &Set{root: root}
}

// nameSeq is a lazy NameSource/CandidateSource over a cobra command's
// children, walked in registration order (the order cobra.Command.Commands
// returns them), which is the "stable order" the core requires.
type nameSeq struct {
	cmds []*cobra.Command
	i    int
}

func (n *nameSeq) Next() (string, bool) {
	for n.i < len(n.cmds) {
		c := n.cmds[n.i]
		n.i++
		if c.Hidden {
			continue
		}
		return c.Name(), true
	}
	return "", false
}

// Names lists the root's direct subcommands.
func (s *Set) Names() embedcli.NameSource {
	return &nameSeq{cmds: s.root.Commands()}
}

func (s *Set) find(name string) *cobra.Command {
	for _, c := range s.root.Commands() {
		if c.Name() == name {
			return c
		}
	}
	return nil
}

// HelpShort returns the command's one-line Short description.
func (s *Set) HelpShort(name string) string {
	c := s.find(name)
	if c == nil {
		return ""
	}
	return c.Short
}

// HelpLong returns the command's Long help, falling back to Short if no
// Long form was authored.
func (s *Set) HelpLong(name string) string {
	c := s.find(name)
	if c == nil {
		return ""
	}
	if c.Long != "" {
		return c.Long
	}
	return c.Short
}

// Complete returns candidates for the token following tokensSoFar[0]: the
// matched subcommand's own subcommands, plus its registered flag names
// prefixed with "--". tokensSoFar[0] (the command name) is never itself a
// completion candidate source for its siblings — that case is handled by
// the core via CommandSet.Names() directly, per spec.md §4.6.
func (s *Set) Complete(tokensSoFar []string) embedcli.CandidateSource {
	if len(tokensSoFar) == 0 {
		return &nameSeq{cmds: s.root.Commands()}
	}
	c := s.find(tokensSoFar[0])
	if c == nil {
		return embedcli.SliceCandidates(nil)
	}
	var candidates []string
	for _, child := range c.Commands() {
		if !child.Hidden {
			candidates = append(candidates, child.Name())
		}
	}
	c.Flags().VisitAll(func(f *pflag.Flag) {
		candidates = append(candidates, "--"+f.Name)
	})
	for _, a := range c.ValidArgs {
		candidates = append(candidates, a)
	}
	return embedcli.SliceCandidates(candidates)
}

// Dispatch rebuilds argv from tokens (tokens[0] is the command name,
// matching Cobra's convention that Args are everything after it) and runs
// it through the root command's normal parse-and-execute path. Any error
// cobra surfaces is wrapped as an embedcli.DispatcherError.
func (s *Set) Dispatch(tokens []string) error {
	if len(tokens) == 0 {
		return nil
	}
	s.root.SetArgs(tokens)
	if err := s.root.Execute(); err != nil {
		return &embedcli.DispatcherError{Err: err}
	}
	return nil
}
