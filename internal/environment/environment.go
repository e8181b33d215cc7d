// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Chott Contributors

// Package environment generates the season and weather shown at a location.
package environment

import (
	"context"
	"hash/fnv"
	"log/slog"
	"math"
	"math/rand/v2"
	"sync"
	"time"

	opensimplex "github.com/ojrac/opensimplex-go"
	"github.com/samber/oops"

	"github.com/chott/chott/internal/world"
)

// CodeUnknownLocation is returned for a location missing from the graph.
const CodeUnknownLocation = "ENVIRONMENT_UNKNOWN_LOCATION"

// Seasons.
const (
	Winter = "Winter"
	Spring = "Spring"
	Summer = "Summer"
	Autumn = "Autumn"
)

// Weathers lists the possible weather values.
var Weathers = [...]string{"Clear", "Rainy", "Cloudy", "Windy"}

// weatherPeriod is how long one weather sample holds before the noise moves on.
const weatherPeriod = time.Minute

const weatherBands = 32

// Environment is the ambient state of a location.
type Environment struct {
	Season      string    `json:"season"`
	Weather     string    `json:"weather"`
	GeneratedAt time.Time `json:"generated_at"`
}

// Option configures a Provider.
type Option func(*Provider)

// WithNow sets the clock environments are generated from.
func WithNow(now func() time.Time) Option {
	return func(p *Provider) {
		p.now = now
	}
}

// WithSeed sets the weather noise seed. Zero picks a random seed.
func WithSeed(seed int64) Option {
	return func(p *Provider) {
		p.seed = seed
	}
}

// Provider hands out one environment per location. The first environment
// generated for a location is kept for the life of the provider.
type Provider struct {
	graph world.Graph
	now   func() time.Time
	seed  int64
	noise opensimplex.Noise

	mu    sync.Mutex
	cache map[world.LocationID]Environment
}

// New creates a provider for the locations in graph.
func New(graph world.Graph, opts ...Option) *Provider {
	p := &Provider{
		graph: graph,
		now:   time.Now,
		cache: make(map[world.LocationID]Environment),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.seed == 0 {
		p.seed = rand.Int64() //nolint:gosec // weather is not security sensitive
	}
	p.noise = opensimplex.NewNormalized(p.seed)
	return p
}

// EnvironmentFor returns the environment at id, generating it on first use.
func (p *Provider) EnvironmentFor(ctx context.Context, id world.LocationID) (Environment, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if env, ok := p.cache[id]; ok {
		slog.DebugContext(ctx, "environment cache hit", "location", id)
		return env, nil
	}

	if _, ok := p.graph.Get(id); !ok {
		return Environment{}, oops.Code(CodeUnknownLocation).
			With("location", id).
			Errorf("unknown location %q", id)
	}

	now := p.now()
	env := Environment{
		Season:      SeasonOf(now),
		Weather:     p.weatherAt(id, now),
		GeneratedAt: now,
	}
	p.cache[id] = env
	slog.DebugContext(ctx, "environment generated",
		"location", id,
		"season", env.Season,
		"weather", env.Weather,
	)
	return env, nil
}

// SeasonOf returns the meteorological season of t's UTC month.
func SeasonOf(t time.Time) string {
	switch t.UTC().Month() {
	case time.December, time.January, time.February:
		return Winter
	case time.March, time.April, time.May:
		return Spring
	case time.June, time.July, time.August:
		return Summer
	default:
		return Autumn
	}
}

// weatherAt samples the noise field at the location's hashed coordinate and
// the current minute, so weather changes over time and differs by place.
// The sample is folded into weatherBands equal bands before picking a
// weather, which spreads the bell-shaped noise evenly across Weathers.
func (p *Provider) weatherAt(id world.LocationID, t time.Time) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(id))
	x := float64(h.Sum32()%4096) * 0.37
	y := float64(t.Unix()/int64(weatherPeriod.Seconds())) * 0.11

	v := p.noise.Eval2(x, y) * weatherBands
	frac := v - math.Floor(v)
	idx := int(frac * float64(len(Weathers)))
	idx = min(max(idx, 0), len(Weathers)-1)
	return Weathers[idx]
}
