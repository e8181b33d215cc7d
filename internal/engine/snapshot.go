// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Chott Contributors

package engine

import (
	"github.com/chott/chott/internal/actor"
	"github.com/chott/chott/internal/clock"
	"github.com/chott/chott/internal/world"
)

// Snapshot is an immutable view of the population as of one completed tick.
// Accessors return copies, so callers may modify what they get back.
type Snapshot struct {
	tick       uint64
	clock      clock.Clock
	actors     []*actor.Actor // ascending id
	byID       map[string]*actor.Actor
	byLocation map[world.LocationID][]*actor.Actor
}

// newSnapshot captures the actors named by ids, which must be sorted.
func newSnapshot(tick uint64, clk clock.Clock, ids []string, live map[string]*actor.Actor) *Snapshot {
	s := &Snapshot{
		tick:       tick,
		clock:      clk,
		actors:     make([]*actor.Actor, 0, len(ids)),
		byID:       make(map[string]*actor.Actor, len(ids)),
		byLocation: make(map[world.LocationID][]*actor.Actor),
	}
	for _, id := range ids {
		a := live[id].Clone()
		s.actors = append(s.actors, a)
		s.byID[id] = a
		s.byLocation[a.Location] = append(s.byLocation[a.Location], a)
	}
	return s
}

// Tick returns the number of ticks completed when the snapshot was taken.
func (s *Snapshot) Tick() uint64 {
	return s.tick
}

// Clock returns the world clock the last tick ran at. It is the zero clock
// before the first tick.
func (s *Snapshot) Clock() clock.Clock {
	return s.clock
}

// Len returns the population size.
func (s *Snapshot) Len() int {
	return len(s.actors)
}

// Actors returns every actor in ascending id order.
func (s *Snapshot) Actors() []*actor.Actor {
	return cloneAll(s.actors)
}

// Get returns the actor with the given id.
func (s *Snapshot) Get(id string) (*actor.Actor, bool) {
	a, ok := s.byID[id]
	if !ok {
		return nil, false
	}
	return a.Clone(), true
}

// At returns the actors at location in ascending id order.
func (s *Snapshot) At(location world.LocationID) []*actor.Actor {
	return cloneAll(s.byLocation[location])
}

func cloneAll(src []*actor.Actor) []*actor.Actor {
	out := make([]*actor.Actor, len(src))
	for i, a := range src {
		out[i] = a.Clone()
	}
	return out
}
