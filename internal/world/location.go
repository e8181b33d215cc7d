// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Chott Contributors

// Package world contains the location graph actors live on.
//
// The graph is built once at startup, from the embedded default world or a
// YAML world file, and is read-only for the rest of the process lifetime.
package world

import (
	"strings"
)

// LocationID identifies a location, e.g. "small-town".
type LocationID string

// String returns the string representation of the location ID.
func (id LocationID) String() string {
	return string(id)
}

// Connection is a named, one-way link from one location to another.
type Connection struct {
	Name   string     `yaml:"name" json:"name" jsonschema:"minLength=1"`
	Target LocationID `yaml:"target" json:"target" jsonschema:"minLength=1"`
}

// Location is a node of the world graph.
type Location struct {
	ID          LocationID        `yaml:"id" json:"id" jsonschema:"pattern=^[a-z0-9][a-z0-9-]*$"`
	Title       string            `yaml:"title" json:"title" jsonschema:"minLength=1"`
	Description string            `yaml:"description,omitempty" json:"description,omitempty"`
	Template    string            `yaml:"template,omitempty" json:"template,omitempty"`
	Connections []Connection      `yaml:"connections,omitempty" json:"connections,omitempty"`
	Metadata    map[string]string `yaml:"metadata,omitempty" json:"metadata,omitempty"`
}

// Connection returns the outgoing connection with the given name.
// Matching is case-insensitive, so "north" finds a connection named "North".
func (l *Location) Connection(name string) (Connection, bool) {
	for _, c := range l.Connections {
		if strings.EqualFold(c.Name, name) {
			return c, true
		}
	}
	return Connection{}, false
}

// HasConnections reports whether any connection leaves this location.
func (l *Location) HasConnections() bool {
	return len(l.Connections) > 0
}
