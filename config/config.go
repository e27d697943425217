// Package config loads named, extend-able session profiles from a YAML
// file, the way the teacher resolves named model configs: pointer-typed
// optional fields so an unset key never clobbers a default, a cyclic-
// checked "extend" chain merged child-over-parent, and an alias list that
// expands into extend-only stub profiles.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Features bundles the core's boolean toggles (spec.md §6).
type Features struct {
	Autocomplete *bool `yaml:"autocomplete,omitempty"`
	History      *bool `yaml:"history,omitempty"`
	Help         *bool `yaml:"help,omitempty"`
}

// ProfileConfig is one named profile as authored in YAML. All scalar
// fields are pointers so that an unset key in a child profile leaves the
// corresponding value to be inherited from Extend rather than zeroing it.
type ProfileConfig struct {
	CMDLEN   *int      `yaml:"cmdlen,omitempty"`
	HISTLEN  *int      `yaml:"histlen,omitempty"`
	Prompt   *string   `yaml:"prompt,omitempty"`
	Features *Features `yaml:"features,omitempty"`
	Extend   *string   `yaml:"extend,omitempty"`
	Aliases  []string  `yaml:"aliases,omitempty"`
}

// File is the top-level YAML document: a map of profile name to
// ProfileConfig, plus which one is used when the embedder doesn't name
// one explicitly.
type File struct {
	Default  string                   `yaml:"default,omitempty"`
	Profiles map[string]ProfileConfig `yaml:"profiles,omitempty"`
}

// Resolved is a fully-merged profile, ready to build an embedcli.Config
// from (the embedder converts CMDLEN/HISTLEN/Prompt/Features directly;
// this package stays agnostic of the embedcli import to avoid a cyclic
// dependency with command-derivation adapters that also import embedcli).
type Resolved struct {
	CMDLEN             int
	HISTLEN            int
	Prompt             string
	EnableAutocomplete bool
	EnableHistory      bool
	EnableHelp         bool
}

// Load reads and parses the config file at path. A missing file is not an
// error: it returns an empty File so the caller falls back to built-in
// defaults, matching the teacher's "don't fail the program over a missing
// config" stance.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &File{}, nil
		}
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	expandAliases(&f)
	return &f, nil
}

// DefaultPath returns $HOME/.embedcli/config.yaml, falling back to the
// legacy $HOME/.embedcli.yaml if that's the only one present.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("config: home dir: %w", err)
	}
	modern := filepath.Join(home, ".embedcli", "config.yaml")
	if _, err := os.Stat(modern); err == nil {
		return modern, nil
	}
	legacy := filepath.Join(home, ".embedcli.yaml")
	if _, err := os.Stat(legacy); err == nil {
		return legacy, nil
	}
	return modern, nil
}

func expandAliases(f *File) {
	if f.Profiles == nil {
		return
	}
	aliasMap := make(map[string]ProfileConfig)
	for name, p := range f.Profiles {
		for _, alias := range p.Aliases {
			if _, exists := f.Profiles[alias]; exists {
				fmt.Fprintf(os.Stderr, "config: alias %q on profile %q clashes with an existing profile, ignoring\n", alias, name)
				continue
			}
			if _, exists := aliasMap[alias]; exists {
				fmt.Fprintf(os.Stderr, "config: duplicate alias %q on profile %q, ignoring\n", alias, name)
				continue
			}
			parent := name
			aliasMap[alias] = ProfileConfig{Extend: &parent}
		}
	}
	for name, p := range aliasMap {
		f.Profiles[name] = p
	}
}

// Resolve merges name's profile over its Extend chain (child fields
// override parent fields; unset fields in the child are inherited) and
// fills in any field still unset with the given hard defaults. It rejects
// a cyclic extend chain with an error instead of recursing forever.
func Resolve(f *File, name string, defaults Resolved) (Resolved, error) {
	if f == nil || f.Profiles == nil || name == "" {
		return defaults, nil
	}
	merged, err := resolveRec(f, name, map[string]bool{})
	if err != nil {
		return Resolved{}, err
	}
	return applyDefaults(merged, defaults), nil
}

func resolveRec(f *File, name string, visited map[string]bool) (ProfileConfig, error) {
	if name == "" {
		return ProfileConfig{}, nil
	}
	if visited[name] {
		return ProfileConfig{}, fmt.Errorf("config: circular extend chain at profile %q", name)
	}
	visited[name] = true

	p, ok := f.Profiles[name]
	if !ok {
		return ProfileConfig{}, fmt.Errorf("config: unknown profile %q", name)
	}

	if p.Extend == nil {
		return p, nil
	}
	parent, err := resolveRec(f, *p.Extend, visited)
	if err != nil {
		return ProfileConfig{}, err
	}

	merged := parent
	if p.CMDLEN != nil {
		merged.CMDLEN = p.CMDLEN
	}
	if p.HISTLEN != nil {
		merged.HISTLEN = p.HISTLEN
	}
	if p.Prompt != nil {
		merged.Prompt = p.Prompt
	}
	if p.Features != nil {
		if merged.Features == nil {
			merged.Features = &Features{}
		}
		if p.Features.Autocomplete != nil {
			merged.Features.Autocomplete = p.Features.Autocomplete
		}
		if p.Features.History != nil {
			merged.Features.History = p.Features.History
		}
		if p.Features.Help != nil {
			merged.Features.Help = p.Features.Help
		}
	}
	merged.Extend = nil
	return merged, nil
}

func applyDefaults(p ProfileConfig, d Resolved) Resolved {
	r := d
	if p.CMDLEN != nil {
		r.CMDLEN = *p.CMDLEN
	}
	if p.HISTLEN != nil {
		r.HISTLEN = *p.HISTLEN
	}
	if p.Prompt != nil {
		r.Prompt = *p.Prompt
	}
	if p.Features != nil {
		if p.Features.Autocomplete != nil {
			r.EnableAutocomplete = *p.Features.Autocomplete
		}
		if p.Features.History != nil {
			r.EnableHistory = *p.Features.History
		}
		if p.Features.Help != nil {
			r.EnableHelp = *p.Features.Help
		}
	}
	return r
}

// Validate checks a Resolved profile against the core's construction
// invariants (spec.md §3): CMDLEN and, when history is enabled, HISTLEN
// must be positive, and the prompt must be non-empty. Used by the
// cmd/embedcli interactive shell before a session is ever constructed.
func Validate(r Resolved) error {
	if r.CMDLEN <= 0 {
		return errors.New("config: CMDLEN must be positive")
	}
	if r.EnableHistory && r.HISTLEN <= 0 {
		return errors.New("config: HISTLEN must be positive when history is enabled")
	}
	if r.Prompt == "" {
		return errors.New("config: prompt must be non-empty")
	}
	return nil
}
