// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Chott Contributors

package engine

import (
	"context"
	"fmt"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chott/chott/internal/actor"
	"github.com/chott/chott/internal/clock"
	"github.com/chott/chott/internal/world"
	"github.com/chott/chott/pkg/errutil"
)

func newTestManager(t *testing.T, opts ...Option) *Manager {
	t.Helper()
	opts = append([]Option{WithRand(rand.New(rand.NewPCG(1, 2)))}, opts...)
	m, err := NewManager(world.Default(), actor.DefaultRoster(), opts...)
	require.NoError(t, err)
	return m
}

func TestManager_LockContention(t *testing.T) {
	t.Run("skips after the lock wait", func(t *testing.T) {
		m := newTestManager(t, WithLockWait(20*time.Millisecond))
		m.mu.Lock()
		defer m.mu.Unlock()

		start := time.Now()
		_, err := m.Tick(context.Background(), clock.At(12, 0))
		require.Error(t, err)
		errutil.AssertErrorCode(t, err, CodeTickContended)
		assert.Less(t, time.Since(start), time.Second)
		assert.Equal(t, uint64(0), m.TickCount())
	})

	t.Run("zero wait fails on first attempt", func(t *testing.T) {
		m := newTestManager(t, WithLockWait(0))
		m.mu.Lock()
		defer m.mu.Unlock()

		_, err := m.Tick(context.Background(), clock.At(12, 0))
		errutil.AssertErrorCode(t, err, CodeTickContended)
	})

	t.Run("cancelled context skips", func(t *testing.T) {
		m := newTestManager(t, WithLockWait(time.Minute))
		m.mu.Lock()
		defer m.mu.Unlock()

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()
		_, err := m.Tick(ctx, clock.At(12, 0))
		errutil.AssertErrorCode(t, err, CodeTickContended)
	})

	t.Run("proceeds once the lock frees up", func(t *testing.T) {
		m := newTestManager(t, WithLockWait(time.Second))
		m.mu.Lock()
		released := make(chan struct{})
		go func() {
			time.Sleep(20 * time.Millisecond)
			m.mu.Unlock()
			close(released)
		}()

		result, err := m.Tick(context.Background(), clock.At(12, 0))
		<-released
		require.NoError(t, err)
		assert.Equal(t, 1, result.Updated)
	})
}

func TestManager_PanicReleasesLock(t *testing.T) {
	m := newTestManager(t)
	m.ids = append(m.ids, "zz-ghost")
	m.actors["zz-ghost"] = nil

	assert.Panics(t, func() {
		_, _ = m.Tick(context.Background(), clock.At(12, 0))
	})

	require.True(t, m.mu.TryLock(), "lock must not stay held after a panic")
	m.mu.Unlock()
	assert.Equal(t, uint64(0), m.TickCount())
}

func TestManager_LocationIndexIsOrdered(t *testing.T) {
	m := newTestManager(t)
	index := m.locationIndex()

	route := index["route-1"]
	require.Len(t, route, 2)
	assert.Equal(t, "joey", route[0].ID)
	assert.Equal(t, "sneezer", route[1].ID)
	assert.Len(t, index["small-town"], 1)
	assert.Len(t, index["green-city"], 1)

	got := peers(route, "joey")
	require.Len(t, got, 1)
	assert.Equal(t, "sneezer", got[0].ID)
}

func TestManager_SampleIsDistinct(t *testing.T) {
	roster := make([]*actor.Actor, 0, 50)
	for i := range 50 {
		roster = append(roster, actor.New(fmt.Sprintf("ant-%02d", i), "Ant", "route-1", actor.State{Awake: true}))
	}
	m, err := NewManager(world.Default(), roster, WithRand(rand.New(rand.NewPCG(7, 7))))
	require.NoError(t, err)

	for range 100 {
		got := m.sample(BatchSize(m.Len()))
		require.Len(t, got, 5)
		seen := make(map[string]bool)
		for _, id := range got {
			assert.False(t, seen[id], "duplicate %s", id)
			seen[id] = true
		}
	}
}
