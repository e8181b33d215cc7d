// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Chott Contributors

// Package engine advances the actor population one tick at a time.
package engine

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
	"github.com/sethvargo/go-retry"

	"github.com/chott/chott/internal/actor"
	"github.com/chott/chott/internal/clock"
	"github.com/chott/chott/internal/world"
)

// DefaultLockWait bounds how long a tick waits for a tick already in flight.
const DefaultLockWait = 250 * time.Millisecond

// lockPoll is the interval between attempts to take the population lock.
const lockPoll = 5 * time.Millisecond

var errLockBusy = errors.New("population lock busy")

// TickResult summarizes one completed tick.
type TickResult struct {
	ID       ulid.ULID
	Updated  int
	Total    int
	Actions  map[actor.Kind]int
	Duration time.Duration
}

// Option configures a Manager.
type Option func(*Manager)

// WithRand sets the random source used to select and drive actors.
func WithRand(rng *rand.Rand) Option {
	return func(m *Manager) {
		m.rng = rng
	}
}

// WithLockWait sets how long a tick waits for the population lock before
// it is skipped.
func WithLockWait(d time.Duration) Option {
	return func(m *Manager) {
		m.lockWait = d
	}
}

// WithMetrics records tick activity on metrics.
func WithMetrics(metrics *Metrics) Option {
	return func(m *Manager) {
		m.metrics = metrics
	}
}

// Manager owns the actor population and runs partial ticks over it.
//
// Ticks are serialized by mu. Readers never touch the live actors; they
// read the snapshot published at the end of each tick.
type Manager struct {
	graph    world.Graph
	rng      *rand.Rand
	lockWait time.Duration
	metrics  *Metrics

	mu     sync.Mutex
	actors map[string]*actor.Actor
	ids    []string // ascending

	ticks    atomic.Uint64
	snapshot atomic.Pointer[Snapshot]
}

// NewManager creates a manager over a copy of roster. Every actor must have
// a unique non-empty id and stand on a location in graph.
func NewManager(graph world.Graph, roster []*actor.Actor, opts ...Option) (*Manager, error) {
	if err := actor.ValidateRoster(roster, graph); err != nil {
		return nil, err
	}

	m := &Manager{
		graph:    graph,
		lockWait: DefaultLockWait,
		actors:   make(map[string]*actor.Actor, len(roster)),
		ids:      make([]string, 0, len(roster)),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.rng == nil {
		m.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())) //nolint:gosec // simulation randomness
	}

	for _, a := range roster {
		m.actors[a.ID] = a.Clone()
		m.ids = append(m.ids, a.ID)
	}
	slices.Sort(m.ids)

	m.snapshot.Store(newSnapshot(0, clock.Clock{}, m.ids, m.actors))
	m.metrics.setPopulation(len(m.ids))
	return m, nil
}

// Snapshot returns the population as of the last completed tick. It never
// blocks.
func (m *Manager) Snapshot() *Snapshot {
	return m.snapshot.Load()
}

// Len returns the population size.
func (m *Manager) Len() int {
	return len(m.ids)
}

// TickCount returns the number of completed ticks.
func (m *Manager) TickCount() uint64 {
	return m.ticks.Load()
}

// BatchSize returns how many actors a tick over a population of n updates.
func BatchSize(n int) int {
	if n <= 0 {
		return 0
	}
	return max(1, n/10)
}

// Tick advances a random subset of the population by one action each.
//
// All decisions are made against the population as it stood when the tick
// began, then applied together. If another tick holds the population for
// longer than the lock wait the tick is skipped with CodeTickContended.
func (m *Manager) Tick(ctx context.Context, clk clock.Clock) (TickResult, error) {
	if err := m.lock(ctx); err != nil {
		return TickResult{}, err
	}
	defer m.mu.Unlock()

	start := time.Now()
	result := TickResult{
		ID:      newTickID(start),
		Total:   len(m.ids),
		Actions: make(map[actor.Kind]int, len(actor.Kinds)),
	}

	selected := m.sample(BatchSize(len(m.ids)))
	index := m.locationIndex()

	type decision struct {
		id     string
		action actor.Action
	}
	decisions := make([]decision, 0, len(selected))
	for _, id := range selected {
		a := m.actors[id]
		decisions = append(decisions, decision{
			id:     id,
			action: actor.Decide(a, clk, peers(index[a.Location], id), m.graph, m.rng),
		})
	}

	for _, d := range decisions {
		a, ok := m.actors[d.id]
		if !ok {
			continue
		}
		a.Apply(d.action)
		result.Updated++
		result.Actions[d.action.Kind]++
	}

	tick := m.ticks.Add(1)
	m.snapshot.Store(newSnapshot(tick, clk, m.ids, m.actors))

	result.Duration = time.Since(start)
	m.metrics.recordApplied(result)

	slog.DebugContext(ctx, "world tick complete",
		"tick_id", result.ID.String(),
		"tick", tick,
		"clock", clk.String(),
		"updated", result.Updated,
		"total", result.Total,
		"duration", result.Duration,
	)
	return result, nil
}

// lock takes mu, polling for up to lockWait if a tick is already in flight.
func (m *Manager) lock(ctx context.Context) error {
	if m.mu.TryLock() {
		return nil
	}
	backoff := retry.WithMaxDuration(m.lockWait, retry.NewConstant(lockPoll))
	err := retry.Do(ctx, backoff, func(_ context.Context) error {
		if m.mu.TryLock() {
			return nil
		}
		return retry.RetryableError(errLockBusy)
	})
	if err != nil {
		return oops.Code(CodeTickContended).
			With("lock_wait", m.lockWait.String()).
			Wrapf(err, "tick skipped")
	}
	return nil
}

// sample picks k distinct ids uniformly at random with a partial
// Fisher-Yates shuffle over a copy of the sorted ids.
func (m *Manager) sample(k int) []string {
	ids := slices.Clone(m.ids)
	for i := range k {
		j := i + m.rng.IntN(len(ids)-i)
		ids[i], ids[j] = ids[j], ids[i]
	}
	return ids[:k]
}

// locationIndex groups the whole population by location, ascending id
// within each location.
func (m *Manager) locationIndex() map[world.LocationID][]*actor.Actor {
	index := make(map[world.LocationID][]*actor.Actor)
	for _, id := range m.ids {
		a := m.actors[id]
		index[a.Location] = append(index[a.Location], a)
	}
	return index
}

// peers returns the actors in local other than self, keeping their order.
func peers(local []*actor.Actor, self string) []*actor.Actor {
	out := make([]*actor.Actor, 0, len(local))
	for _, a := range local {
		if a.ID != self {
			out = append(out, a)
		}
	}
	return out
}
