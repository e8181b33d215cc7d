// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Chott Contributors

package clock_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/chott/chott/internal/clock"
)

func TestClock_IsDaytime(t *testing.T) {
	tests := []struct {
		name string
		hour uint8
		want bool
	}{
		{"midnight", 0, false},
		{"before dawn", 5, false},
		{"dawn", 6, true},
		{"noon", 12, true},
		{"last day hour", 17, true},
		{"dusk", 18, false},
		{"late night", 23, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := clock.At(tt.hour, 0)
			assert.Equal(t, tt.want, c.IsDaytime())
			assert.Equal(t, !tt.want, c.IsNight())
		})
	}
}

func TestClock_IsNightCoversEveryHourDaytimeDoesNot(t *testing.T) {
	for h := uint8(0); h < 24; h++ {
		c := clock.At(h, 30)
		assert.NotEqual(t, c.IsDaytime(), c.IsNight(), "hour %d", h)
	}
}

func TestClock_IsTwilight(t *testing.T) {
	twilight := map[uint8]bool{5: true, 6: true, 17: true, 18: true}
	for h := uint8(0); h < 24; h++ {
		assert.Equal(t, twilight[h], clock.At(h, 0).IsTwilight(), "hour %d", h)
	}
}

func TestFromTime(t *testing.T) {
	ts := time.Date(2026, time.March, 4, 19, 7, 42, 0, time.Local)
	c := clock.FromTime(ts)

	assert.Equal(t, uint8(19), c.Hour)
	assert.Equal(t, uint8(7), c.Minute)
	assert.True(t, c.IsNight())
	assert.Equal(t, "19:07", c.String())
}
