// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Chott Contributors

package actor

import (
	"os"

	"github.com/samber/oops"
	"gopkg.in/yaml.v3"

	"github.com/chott/chott/internal/world"
	"github.com/chott/chott/pkg/errutil"
)

// RosterFile is the on-disk roster format.
type RosterFile struct {
	Actors []RosterEntry `yaml:"actors"`
}

// RosterEntry describes one actor in a roster file. Awake defaults to true.
type RosterEntry struct {
	ID       string           `yaml:"id"`
	Name     string           `yaml:"name"`
	Location world.LocationID `yaml:"location"`
	Health   int32            `yaml:"health"`
	Fatigue  uint8            `yaml:"fatigue"`
	Awake    *bool            `yaml:"awake"`
	Flags    Flags            `yaml:"flags"`
}

// Actor builds the actor described by the entry.
func (e RosterEntry) Actor() *Actor {
	awake := true
	if e.Awake != nil {
		awake = *e.Awake
	}
	return NewWithFlags(e.ID, e.Name, e.Location, State{
		Health:  e.Health,
		Awake:   awake,
		Fatigue: e.Fatigue,
	}, e.Flags)
}

// DefaultRoster returns the built-in seed population. Every actor starts
// awake and every location is in the default world.
func DefaultRoster() []*Actor {
	return []*Actor{
		New("prof", "Professor Tree", "small-town", State{Health: 10, Awake: true}, Organic, CanSpeak),
		New("joey", "Young Joey", "route-1", State{Health: 8, Awake: true}, Organic, CanSpeak),
		New("sneezer", "Sneezer", "route-1", State{Health: 2, Awake: true}, Organic),
		New("susan", "Susan B. Anthony", "green-city", State{Health: 99, Awake: true, Fatigue: 1}, Organic, CanSpeak),
	}
}

// ParseRoster decodes a YAML roster. Structural checks against a world are
// done by ValidateRoster.
func ParseRoster(data []byte) ([]*Actor, error) {
	var f RosterFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		// Flag errors already carry their own code.
		if errutil.Code(err) != "" {
			return nil, err
		}
		return nil, oops.Code(CodeRosterYAMLInvalid).Wrapf(err, "invalid roster YAML")
	}
	if len(f.Actors) == 0 {
		return nil, oops.Code(CodeRosterYAMLInvalid).Errorf("roster has no actors")
	}

	roster := make([]*Actor, len(f.Actors))
	for i, e := range f.Actors {
		roster[i] = e.Actor()
	}
	return roster, nil
}

// LoadRoster reads and parses the roster file at path.
func LoadRoster(path string) ([]*Actor, error) {
	data, err := os.ReadFile(path) //nolint:gosec // operator-supplied path
	if err != nil {
		return nil, oops.Code(CodeRosterReadFailed).With("path", path).Wrap(err)
	}
	roster, err := ParseRoster(data)
	if err != nil {
		return nil, oops.With("path", path).Wrap(err)
	}
	return roster, nil
}

// ValidateRoster checks that every actor has a unique non-empty id and
// stands on a location in graph.
func ValidateRoster(roster []*Actor, graph world.Graph) error {
	seen := make(map[string]bool, len(roster))
	for i, a := range roster {
		if a == nil || a.ID == "" {
			return oops.Code(CodeRosterEmptyID).
				With("index", i).
				Errorf("actor %d has no id", i)
		}
		if seen[a.ID] {
			return oops.Code(CodeRosterDuplicateID).
				With("actor", a.ID).
				Errorf("duplicate actor id %q", a.ID)
		}
		seen[a.ID] = true
		if _, ok := graph.Get(a.Location); !ok {
			return oops.Code(CodeRosterUnknownLocation).
				With("actor", a.ID).
				With("location", a.Location).
				Errorf("actor %q is at unknown location %q", a.ID, a.Location)
		}
	}
	return nil
}
