// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Chott Contributors

package actor

import (
	"fmt"

	"github.com/chott/chott/internal/world"
)

// Kind identifies what an actor does in a tick.
type Kind uint8

// Action kinds.
const (
	KindIdle Kind = iota
	KindMoveTo
	KindAttack
	KindSleep
	KindWakeUp
)

// Kinds lists every action kind.
var Kinds = [...]Kind{KindIdle, KindMoveTo, KindAttack, KindSleep, KindWakeUp}

// String returns the snake_case name of the kind, used for logs and metric labels.
func (k Kind) String() string {
	switch k {
	case KindIdle:
		return "idle"
	case KindMoveTo:
		return "move_to"
	case KindAttack:
		return "attack"
	case KindSleep:
		return "sleep"
	case KindWakeUp:
		return "wake_up"
	default:
		return "unknown"
	}
}

// Action is one intended action. Location is set for KindMoveTo and
// Target for KindAttack; both are zero otherwise.
type Action struct {
	Kind     Kind
	Location world.LocationID
	Target   string
}

// Idle returns an Idle action.
func Idle() Action { return Action{Kind: KindIdle} }

// MoveTo returns an action moving to the given location.
func MoveTo(loc world.LocationID) Action { return Action{Kind: KindMoveTo, Location: loc} }

// Attack returns an action attacking the actor with the given ID.
func Attack(target string) Action { return Action{Kind: KindAttack, Target: target} }

// Sleep returns a Sleep action.
func Sleep() Action { return Action{Kind: KindSleep} }

// WakeUp returns a WakeUp action.
func WakeUp() Action { return Action{Kind: KindWakeUp} }

func (a Action) String() string {
	switch a.Kind {
	case KindMoveTo:
		return fmt.Sprintf("move_to(%s)", a.Location)
	case KindAttack:
		return fmt.Sprintf("attack(%s)", a.Target)
	default:
		return a.Kind.String()
	}
}
