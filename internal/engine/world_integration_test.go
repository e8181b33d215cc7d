// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Chott Contributors

//go:build integration

package engine_test

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"time"

	. "github.com/onsi/ginkgo/v2" //nolint:revive // ginkgo convention
	. "github.com/onsi/gomega"    //nolint:revive // gomega convention
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/chott/chott/internal/actor"
	"github.com/chott/chott/internal/clock"
	"github.com/chott/chott/internal/engine"
	"github.com/chott/chott/internal/environment"
	"github.com/chott/chott/internal/web"
	"github.com/chott/chott/internal/world"
)

// flakyTicker panics on every nth tick and otherwise delegates.
type flakyTicker struct {
	next  engine.Ticker
	every int64
	calls atomic.Int64
}

func (f *flakyTicker) Tick(ctx context.Context, clk clock.Clock) (engine.TickResult, error) {
	if f.calls.Add(1)%f.every == 0 {
		panic("simulated tick failure")
	}
	return f.next.Tick(ctx, clk)
}

// sleepers returns n asleep actors whose fatigue only ever falls by one
// per update, so the population's total fatigue tracks the tick count.
func sleepers(n int) []*actor.Actor {
	roster := make([]*actor.Actor, n)
	for i := range roster {
		roster[i] = actor.New(fmt.Sprintf("sleeper-%03d", i), "Sleeper", "route-1",
			actor.State{Fatigue: 250}, actor.Organic)
	}
	return roster
}

var _ = Describe("World engine", func() {
	var (
		graph   *world.Map
		manager *engine.Manager
		metrics *engine.Metrics
		api     *httptest.Server
		cancel  context.CancelFunc
		runErr  chan error
	)

	start := func(t engine.Ticker) *engine.Runner {
		runner, err := engine.NewRunner(t, 2*time.Millisecond, engine.WithRunnerMetrics(metrics))
		Expect(err).NotTo(HaveOccurred())

		var ctx context.Context
		ctx, cancel = context.WithCancel(context.Background())
		runErr = make(chan error, 1)
		go func() { runErr <- runner.Run(ctx) }()
		Eventually(runner.Ready).Should(BeTrue())
		return runner
	}

	BeforeEach(func() {
		graph = world.Default()
		metrics = engine.NewMetrics()

		var err error
		manager, err = engine.NewManager(graph, sleepers(40),
			engine.WithRand(rand.New(rand.NewPCG(3, 4))),
			engine.WithMetrics(metrics),
		)
		Expect(err).NotTo(HaveOccurred())

		srv := web.NewServer("127.0.0.1:0", graph, manager, environment.New(graph, environment.WithSeed(8)))
		api = httptest.NewServer(srv.Handler())
	})

	AfterEach(func() {
		if cancel != nil {
			cancel()
			Eventually(runErr).Should(Receive(BeNil()))
		}
		api.Close()
	})

	It("keeps ticking while the read API serves snapshots", func() {
		start(manager)

		Eventually(manager.TickCount).WithTimeout(5 * time.Second).Should(BeNumerically(">=", 10))

		resp, err := http.Get(api.URL + "/api/v1/clock")
		Expect(err).NotTo(HaveOccurred())
		defer resp.Body.Close()

		var body struct {
			Tick uint64 `json:"tick"`
		}
		Expect(json.NewDecoder(resp.Body).Decode(&body)).To(Succeed())
		Expect(body.Tick).To(BeNumerically(">", 0))
	})

	It("never exposes a partially applied tick", func() {
		start(manager)
		batch := engine.BatchSize(manager.Len())

		deadline := time.Now().Add(200 * time.Millisecond)
		for time.Now().Before(deadline) {
			snap := manager.Snapshot()
			total := 0
			for _, a := range snap.Actors() {
				total += int(a.State.Fatigue)
			}
			Expect(total).To(Equal(250*manager.Len() - batch*int(snap.Tick())))
		}
	})

	It("recovers from panicking ticks and keeps the schedule", func() {
		flaky := &flakyTicker{next: manager, every: 3}
		start(flaky)

		Eventually(func() float64 {
			return testutil.ToFloat64(metrics.Ticks.WithLabelValues(engine.OutcomePanic))
		}).WithTimeout(5 * time.Second).Should(BeNumerically(">=", 3))
		Expect(manager.TickCount()).To(BeNumerically(">=", 6))

		// The population lock is free again after each panic.
		_, err := manager.Tick(context.Background(), clock.At(12, 0))
		Expect(err).NotTo(HaveOccurred())
	})

	It("finishes the current tick and stops when asked", func() {
		runner := start(manager)
		Eventually(manager.TickCount).Should(BeNumerically(">=", 1))

		runner.Stop()
		Eventually(runErr).Should(Receive(BeNil()))
		cancel()
		cancel = nil
		Expect(runner.Ready()).To(BeFalse())

		stopped := manager.TickCount()
		Consistently(manager.TickCount, 50*time.Millisecond).Should(Equal(stopped))
	})
})
