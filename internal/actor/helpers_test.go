// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Chott Contributors

package actor_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/chott/chott/internal/clock"
	"github.com/chott/chott/internal/world"
)

var (
	noon     = clock.At(12, 0)
	midnight = clock.At(0, 30)
)

// scriptedRand returns its values in order and records each bound asked for.
type scriptedRand struct {
	values []int
	bounds []int
}

func (r *scriptedRand) IntN(n int) int {
	r.bounds = append(r.bounds, n)
	if len(r.values) == 0 {
		return n - 1
	}
	v := r.values[0]
	r.values = r.values[1:]
	return v
}

// neverMoves is a Rand that always fails the move roll.
func neverMoves() *scriptedRand {
	return &scriptedRand{}
}

func testGraph(t *testing.T) *world.Map {
	t.Helper()
	m, err := world.NewMap([]world.Location{
		{
			ID:    "meadow",
			Title: "Meadow",
			Connections: []world.Connection{
				{Name: "East", Target: "forest"},
				{Name: "West", Target: "pond"},
			},
		},
		{ID: "forest", Title: "Forest", Connections: []world.Connection{{Name: "West", Target: "meadow"}}},
		{ID: "pond", Title: "Pond"},
	})
	require.NoError(t, err)
	return m
}
