// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Chott Contributors

// Package actor holds the simulated actors, their decision rules, and the
// state transitions applied when they act.
package actor

import (
	"math"

	"github.com/chott/chott/internal/world"
)

// FatigueThreshold is the fatigue at which an actor always sleeps.
const FatigueThreshold = 20

// State is the mutable part of an actor.
type State struct {
	Health  int32 // informational; no rule reads it
	Awake   bool
	Fatigue uint8 // saturates at 0 and 255
	Target  *string
}

// Actor is a single simulated entity.
//
// Flags are fixed at construction. Location must always name a location
// that exists in the world graph; the engine checks this when the roster
// is loaded and MoveTo only ever targets graph connections.
type Actor struct {
	ID       string
	Name     string
	Location world.LocationID
	State    State

	flags Flags
}

// New creates an actor.
func New(id, name string, location world.LocationID, state State, flags ...Flag) *Actor {
	return &Actor{
		ID:       id,
		Name:     name,
		Location: location,
		State:    state,
		flags:    NewFlags(flags...),
	}
}

// NewWithFlags creates an actor from an existing flag set.
func NewWithFlags(id, name string, location world.LocationID, state State, flags Flags) *Actor {
	a := New(id, name, location, state)
	a.flags = flags
	return a
}

// Flags returns the actor's flag set.
func (a *Actor) Flags() Flags {
	return a.flags
}

// Has reports whether the actor carries flag.
func (a *Actor) Has(flag Flag) bool {
	return a.flags.Has(flag)
}

// Clone returns a deep copy of the actor.
func (a *Actor) Clone() *Actor {
	c := *a
	if a.State.Target != nil {
		target := *a.State.Target
		c.State.Target = &target
	}
	return &c
}

func addFatigue(f, n uint8) uint8 {
	if f > math.MaxUint8-n {
		return math.MaxUint8
	}
	return f + n
}

func subFatigue(f, n uint8) uint8 {
	if f < n {
		return 0
	}
	return f - n
}
