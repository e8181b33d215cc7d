// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Chott Contributors

// Package clock models the time of day that conditions actor decisions.
package clock

import (
	"fmt"
	"time"
)

// Daytime runs from DawnHour (inclusive) to DuskHour (exclusive).
const (
	DawnHour = 6
	DuskHour = 18
)

// Clock is the world's time of day, recomputed from wall time every tick.
type Clock struct {
	Hour   uint8 // 0-23
	Minute uint8 // 0-59
}

// FromTime builds a Clock from the local hour and minute of t.
func FromTime(t time.Time) Clock {
	return Clock{
		Hour:   uint8(t.Hour()),
		Minute: uint8(t.Minute()),
	}
}

// At returns the Clock for the given hour and minute.
func At(hour, minute uint8) Clock {
	return Clock{Hour: hour, Minute: minute}
}

// IsDaytime reports whether the hour is within [DawnHour, DuskHour).
func (c Clock) IsDaytime() bool {
	return c.Hour >= DawnHour && c.Hour < DuskHour
}

// IsNight is the complement of IsDaytime.
func (c Clock) IsNight() bool {
	return !c.IsDaytime()
}

// IsTwilight reports whether the hour is within one hour of dawn or dusk.
func (c Clock) IsTwilight() bool {
	return (c.Hour >= DawnHour-1 && c.Hour < DawnHour+1) ||
		(c.Hour >= DuskHour-1 && c.Hour < DuskHour+1)
}

// String renders the clock as HH:MM.
func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}
