// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Chott Contributors

package actor

import (
	"github.com/chott/chott/internal/clock"
	"github.com/chott/chott/internal/world"
)

// MoveChance is the inverse probability of an idle, awake actor wandering
// off: one tick in MoveChance.
const MoveChance = 100

// Rand is the randomness Decide draws from. *math/rand/v2.Rand satisfies it.
type Rand interface {
	IntN(n int) int
}

// Decide chooses the one action a will attempt this tick. It never mutates
// its arguments.
//
// local holds the other actors at a's location. When several are valid
// attack targets the first in local wins, so callers that need a stable
// choice must pass local in a stable order.
//
// Rules, first match wins:
//  1. fatigue at or over FatigueThreshold: Sleep
//  2. asleep and it is the actor's waking time: WakeUp
//  3. awake Predatory actor with an Organic neighbour: Attack
//  4. awake: rarely MoveTo a random connection, otherwise Idle
//  5. Idle
func Decide(a *Actor, clk clock.Clock, local []*Actor, graph world.Graph, rng Rand) Action {
	if a.State.Fatigue >= FatigueThreshold {
		return Sleep()
	}

	if !a.State.Awake {
		if wakes(a, clk) {
			return WakeUp()
		}
		return Idle()
	}

	if a.Has(Predatory) {
		if target, ok := prey(a, local); ok {
			return Attack(target.ID)
		}
	}

	return wander(a, graph, rng)
}

// wakes reports whether a sleeping actor's chronotype calls for waking:
// nocturnal actors wake at night, everyone else in daytime.
func wakes(a *Actor, clk clock.Clock) bool {
	if a.Has(Nocturnal) {
		return clk.IsNight()
	}
	return clk.IsDaytime()
}

func prey(a *Actor, local []*Actor) (*Actor, bool) {
	for _, other := range local {
		if other == nil || other.ID == a.ID || other.Location != a.Location {
			continue
		}
		if other.Has(Organic) {
			return other, true
		}
	}
	return nil, false
}

func wander(a *Actor, graph world.Graph, rng Rand) Action {
	if rng.IntN(MoveChance) != 0 {
		return Idle()
	}
	loc, ok := graph.Get(a.Location)
	if !ok || !loc.HasConnections() {
		return Idle()
	}
	c := loc.Connections[rng.IntN(len(loc.Connections))]
	return MoveTo(c.Target)
}
