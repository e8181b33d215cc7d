// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Chott Contributors

package actor

import (
	"encoding/json"
	"strings"

	"github.com/samber/oops"
	"gopkg.in/yaml.v3"
)

// Flag is a single behavior tag. The set of flags is closed.
type Flag uint8

// Behavior flags.
const (
	Organic Flag = 1 << iota
	CanAttack
	CanSpeak
	Nocturnal
	Predatory
)

// allFlags lists every flag in declaration order.
var allFlags = [...]Flag{Organic, CanAttack, CanSpeak, Nocturnal, Predatory}

var flagNames = map[Flag]string{
	Organic:   "organic",
	CanAttack: "can_attack",
	CanSpeak:  "can_speak",
	Nocturnal: "nocturnal",
	Predatory: "predatory",
}

// String returns the snake_case name of the flag.
func (f Flag) String() string {
	if name, ok := flagNames[f]; ok {
		return name
	}
	return "unknown"
}

// ParseFlag parses a flag name. Matching ignores case and underscores, so
// "can_speak", "CanSpeak" and "canspeak" are equivalent.
func ParseFlag(s string) (Flag, error) {
	key := strings.ToLower(strings.ReplaceAll(s, "_", ""))
	for _, f := range allFlags {
		if strings.ReplaceAll(flagNames[f], "_", "") == key {
			return f, nil
		}
	}
	return 0, oops.Code(CodeUnknownFlag).With("flag", s).Errorf("unknown actor flag %q", s)
}

// Flags is a set of behavior flags stored as a bit set.
type Flags uint8

// NewFlags returns the set containing the given flags.
func NewFlags(flags ...Flag) Flags {
	var set Flags
	for _, f := range flags {
		set |= Flags(f)
	}
	return set
}

// Has reports whether flag is in the set.
func (s Flags) Has(flag Flag) bool {
	return s&Flags(flag) != 0
}

// List returns the flags in the set in declaration order.
func (s Flags) List() []Flag {
	out := make([]Flag, 0, len(allFlags))
	for _, f := range allFlags {
		if s.Has(f) {
			out = append(out, f)
		}
	}
	return out
}

// Strings returns the names of the flags in the set.
func (s Flags) Strings() []string {
	list := s.List()
	out := make([]string, len(list))
	for i, f := range list {
		out[i] = f.String()
	}
	return out
}

// MarshalJSON encodes the set as a list of flag names.
func (s Flags) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Strings())
}

// UnmarshalYAML decodes a list of flag names.
func (s *Flags) UnmarshalYAML(node *yaml.Node) error {
	var names []string
	if err := node.Decode(&names); err != nil {
		return err
	}
	var set Flags
	for _, name := range names {
		f, err := ParseFlag(name)
		if err != nil {
			return err
		}
		set |= Flags(f)
	}
	*s = set
	return nil
}
