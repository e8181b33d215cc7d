// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Chott Contributors

package engine

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/samber/oops"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/chott/chott/internal/clock"
	"github.com/chott/chott/pkg/errutil"
)

// DefaultInterval is the time between world ticks.
const DefaultInterval = 2 * time.Second

var tracer = otel.Tracer("chott/engine")

// Ticker advances the world by one tick.
type Ticker interface {
	Tick(ctx context.Context, clk clock.Clock) (TickResult, error)
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithNow sets the wall clock the world clock is derived from.
func WithNow(now func() time.Time) RunnerOption {
	return func(r *Runner) {
		r.now = now
	}
}

// WithRunnerMetrics records tick outcomes and durations on metrics.
func WithRunnerMetrics(metrics *Metrics) RunnerOption {
	return func(r *Runner) {
		r.metrics = metrics
	}
}

// Runner calls a Ticker on a fixed interval. A tick that fails or panics
// is logged and counted, and the next tick runs on schedule.
type Runner struct {
	ticker   Ticker
	interval time.Duration
	now      func() time.Time
	metrics  *Metrics

	running  atomic.Bool
	stop     chan struct{}
	stopOnce sync.Once
}

// NewRunner creates a runner for t.
func NewRunner(t Ticker, interval time.Duration, opts ...RunnerOption) (*Runner, error) {
	if interval <= 0 {
		return nil, oops.Code(CodeInvalidInterval).
			With("interval", interval.String()).
			Errorf("tick interval must be positive")
	}
	r := &Runner{
		ticker:   t,
		interval: interval,
		now:      time.Now,
		stop:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Run ticks until ctx is cancelled or Stop is called. A tick in progress
// always completes; the stop signal is checked between ticks.
func (r *Runner) Run(ctx context.Context) error {
	if !r.running.CompareAndSwap(false, true) {
		return oops.Code(CodeRunnerRunning).Errorf("runner is already running")
	}
	defer r.running.Store(false)

	slog.InfoContext(ctx, "world runner started", "interval", r.interval)
	defer slog.InfoContext(ctx, "world runner stopped")

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-r.stop:
			return nil
		case <-ticker.C:
		}

		// Both may be ready at once; a pending stop wins over the tick.
		select {
		case <-ctx.Done():
			return nil
		case <-r.stop:
			return nil
		default:
		}

		r.RunOnce(ctx)
	}
}

// Stop asks Run to return after the current tick. It is safe to call more
// than once.
func (r *Runner) Stop() {
	r.stopOnce.Do(func() {
		close(r.stop)
	})
}

// Ready reports whether Run is looping.
func (r *Runner) Ready() bool {
	return r.running.Load()
}

// RunOnce performs a single supervised tick and reports its outcome label.
func (r *Runner) RunOnce(ctx context.Context) string {
	clk := clock.FromTime(r.now())
	ctx, span := tracer.Start(ctx, "world.tick",
		trace.WithAttributes(attribute.String("world.clock", clk.String())),
	)
	defer span.End()

	start := time.Now()
	var (
		result  TickResult
		tickErr error
	)
	panicErr := oops.Code(CodeTickPanic).
		With("clock", clk.String()).
		Recover(func() {
			result, tickErr = r.ticker.Tick(ctx, clk)
		})

	outcome := OutcomeOK
	switch {
	case panicErr != nil:
		outcome = OutcomePanic
		span.RecordError(panicErr)
		span.SetStatus(codes.Error, "tick panicked")
		errutil.LogError(ctx, slog.Default(), "world tick panicked", panicErr)
	case errutil.HasCode(tickErr, CodeTickContended):
		outcome = OutcomeSkipped
		span.SetAttributes(attribute.Bool("world.tick_skipped", true))
		errutil.LogWarn(ctx, slog.Default(), "world tick skipped", tickErr)
	case tickErr != nil:
		outcome = OutcomeError
		span.RecordError(tickErr)
		span.SetStatus(codes.Error, tickErr.Error())
		errutil.LogError(ctx, slog.Default(), "world tick failed", tickErr)
	default:
		span.SetAttributes(
			attribute.String("world.tick_id", result.ID.String()),
			attribute.Int("world.actors_updated", result.Updated),
			attribute.Int("world.population", result.Total),
		)
	}

	r.metrics.RecordTick(outcome, time.Since(start))
	return outcome
}
