// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Chott Contributors

package engine

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/chott/chott/internal/actor"
)

// Tick outcome labels.
const (
	OutcomeOK      = "ok"
	OutcomeSkipped = "skipped"
	OutcomePanic   = "panic"
	OutcomeError   = "error"
)

// Metrics holds the tick collectors. A nil *Metrics records nothing.
// Use Register to expose them on a Prometheus registry.
type Metrics struct {
	Ticks         *prometheus.CounterVec
	TickDuration  prometheus.Histogram
	ActorsUpdated prometheus.Counter
	Actions       *prometheus.CounterVec
	Population    prometheus.Gauge
}

// NewMetrics creates unregistered tick collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		Ticks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "chott_ticks_total",
				Help: "Total number of world ticks by outcome",
			},
			[]string{"outcome"},
		),
		TickDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "chott_tick_duration_seconds",
				Help:    "World tick duration in seconds",
				Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
			},
		),
		ActorsUpdated: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "chott_actors_updated_total",
				Help: "Total number of actor updates applied",
			},
		),
		Actions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "chott_actor_actions_total",
				Help: "Total number of applied actor actions by kind",
			},
			[]string{"action"},
		),
		Population: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "chott_population",
				Help: "Number of actors in the world",
			},
		),
	}
	for _, outcome := range []string{OutcomeOK, OutcomeSkipped, OutcomePanic, OutcomeError} {
		m.Ticks.WithLabelValues(outcome)
	}
	for _, kind := range actor.Kinds {
		m.Actions.WithLabelValues(kind.String())
	}
	return m
}

// Register registers the collectors with reg.
// Panics if registration fails (following prometheus convention).
func (m *Metrics) Register(reg prometheus.Registerer) {
	reg.MustRegister(m.Ticks, m.TickDuration, m.ActorsUpdated, m.Actions, m.Population)
}

// RecordTick counts a finished tick attempt.
func (m *Metrics) RecordTick(outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.Ticks.WithLabelValues(outcome).Inc()
	m.TickDuration.Observe(d.Seconds())
}

func (m *Metrics) recordApplied(result TickResult) {
	if m == nil {
		return
	}
	m.ActorsUpdated.Add(float64(result.Updated))
	for kind, n := range result.Actions {
		m.Actions.WithLabelValues(kind.String()).Add(float64(n))
	}
	m.Population.Set(float64(result.Total))
}

func (m *Metrics) setPopulation(n int) {
	if m == nil {
		return
	}
	m.Population.Set(float64(n))
}
