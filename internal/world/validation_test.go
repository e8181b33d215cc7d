// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Chott Contributors

package world_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chott/chott/internal/world"
)

func TestValidateLocationID(t *testing.T) {
	tests := []struct {
		name    string
		id      world.LocationID
		wantErr string
	}{
		{"slug", "route-1", ""},
		{"digits only", "42", ""},
		{"empty", "", "cannot be empty"},
		{"uppercase", "Route-1", "lowercase"},
		{"leading hyphen", "-route", "lowercase"},
		{"space", "green city", "lowercase"},
		{"too long", world.LocationID(strings.Repeat("a", world.MaxIDLength+1)), "maximum length"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := world.ValidateLocationID(tt.id)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateName(t *testing.T) {
	assert.NoError(t, world.ValidateName("title", "Small Town"))

	err := world.ValidateName("title", "")
	require.Error(t, err)
	var verr *world.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "title", verr.Field)

	assert.Error(t, world.ValidateName("title", "bad\x00name"))
	assert.Error(t, world.ValidateName("title", strings.Repeat("x", world.MaxNameLength+1)))
	assert.Error(t, world.ValidateName("title", string([]byte{0xff, 0xfe})))
}

func TestValidateDescription(t *testing.T) {
	assert.NoError(t, world.ValidateDescription(""))
	assert.NoError(t, world.ValidateDescription("Line one.\nLine\ttwo."))
	assert.Error(t, world.ValidateDescription("bell\x07"))
	assert.Error(t, world.ValidateDescription(strings.Repeat("x", world.MaxDescriptionLength+1)))
}

func TestValidateLocation(t *testing.T) {
	valid := func() *world.Location {
		return &world.Location{
			ID:          "hall",
			Title:       "Hall",
			Connections: []world.Connection{{Name: "Down", Target: "cellar"}},
		}
	}

	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, world.ValidateLocation(valid()))
	})

	t.Run("self connection", func(t *testing.T) {
		loc := valid()
		loc.Connections[0].Target = "hall"
		err := world.ValidateLocation(loc)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "own location")
	})

	t.Run("duplicate connection names ignore case", func(t *testing.T) {
		loc := valid()
		loc.Connections = append(loc.Connections, world.Connection{Name: "down", Target: "pit"})
		err := world.ValidateLocation(loc)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "duplicate connection")
	})

	t.Run("empty target", func(t *testing.T) {
		loc := valid()
		loc.Connections[0].Target = ""
		assert.Error(t, world.ValidateLocation(loc))
	})
}
