// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Chott Contributors

package world

import (
	"slices"

	"github.com/samber/oops"
)

// Graph provides read-only lookups into the location graph.
type Graph interface {
	// Get returns the location with the given ID. The returned location
	// must not be modified.
	Get(id LocationID) (*Location, bool)
}

// Map is the in-memory, immutable Graph implementation.
type Map struct {
	locations map[LocationID]*Location
	ids       []LocationID
}

// NewMap builds a Map from the given locations.
// Every location is validated, IDs must be unique, and every connection
// must target a location in the set.
func NewMap(locations []Location) (*Map, error) {
	m := &Map{
		locations: make(map[LocationID]*Location, len(locations)),
		ids:       make([]LocationID, 0, len(locations)),
	}

	for i := range locations {
		loc := cloneLocation(&locations[i])
		if err := ValidateLocation(loc); err != nil {
			return nil, oops.Code(CodeInvalidLocation).
				With("location", loc.ID).
				With("index", i).
				Wrap(err)
		}
		if _, dup := m.locations[loc.ID]; dup {
			return nil, oops.Code(CodeDuplicateLocation).
				With("location", loc.ID).
				Errorf("duplicate location id %q", loc.ID)
		}
		m.locations[loc.ID] = loc
		m.ids = append(m.ids, loc.ID)
	}

	for _, id := range m.ids {
		for _, c := range m.locations[id].Connections {
			if _, ok := m.locations[c.Target]; !ok {
				return nil, oops.Code(CodeDanglingConnection).
					With("location", id).
					With("connection", c.Name).
					With("target", c.Target).
					Errorf("connection %q from %q targets unknown location %q", c.Name, id, c.Target)
			}
		}
	}

	slices.Sort(m.ids)
	return m, nil
}

// Get implements Graph.
func (m *Map) Get(id LocationID) (*Location, bool) {
	loc, ok := m.locations[id]
	return loc, ok
}

// IDs returns all location IDs in ascending order.
func (m *Map) IDs() []LocationID {
	return slices.Clone(m.ids)
}

// Len returns the number of locations.
func (m *Map) Len() int {
	return len(m.ids)
}

// cloneLocation copies a location so the Map never shares slices or maps
// with the caller.
func cloneLocation(src *Location) *Location {
	dst := *src
	dst.Connections = slices.Clone(src.Connections)
	if src.Metadata != nil {
		dst.Metadata = make(map[string]string, len(src.Metadata))
		for k, v := range src.Metadata {
			dst.Metadata[k] = v
		}
	}
	return &dst
}
