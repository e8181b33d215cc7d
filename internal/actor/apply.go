// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Chott Contributors

package actor

import (
	"log/slog"
)

// Fatigue changes per action.
const (
	idleRecovery  = 1
	sleepRecovery = 1
	wakeRecovery  = 2
	moveCost      = 4
	attackCost    = 6
)

// Apply mutates the actor according to action. Only the acting actor is
// changed: an Attack costs the attacker fatigue and leaves the target alone.
func (a *Actor) Apply(action Action) {
	switch action.Kind {
	case KindIdle:
		a.State.Fatigue = subFatigue(a.State.Fatigue, idleRecovery)
		slog.Debug("actor idles", "actor", a.ID, "fatigue", a.State.Fatigue)

	case KindMoveTo:
		from := a.Location
		a.Location = action.Location
		a.State.Fatigue = addFatigue(a.State.Fatigue, moveCost)
		slog.Debug("actor moved",
			"actor", a.ID,
			"from", from,
			"to", a.Location,
			"fatigue", a.State.Fatigue,
		)

	case KindAttack:
		a.State.Fatigue = addFatigue(a.State.Fatigue, attackCost)
		slog.Info("actor attacks",
			"actor", a.ID,
			"target", action.Target,
			"fatigue", a.State.Fatigue,
		)

	case KindSleep:
		a.State.Awake = false
		a.State.Fatigue = subFatigue(a.State.Fatigue, sleepRecovery)
		slog.Debug("actor goes to sleep", "actor", a.ID, "fatigue", a.State.Fatigue)

	case KindWakeUp:
		a.State.Awake = true
		// Waking only sheds fatigue above the recovery amount.
		if a.State.Fatigue > wakeRecovery {
			a.State.Fatigue -= wakeRecovery
		}
		slog.Debug("actor wakes up", "actor", a.ID, "fatigue", a.State.Fatigue)

	default:
		slog.Warn("unknown action kind", "actor", a.ID, "kind", action.Kind)
	}
}
