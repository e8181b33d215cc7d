// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Chott Contributors

package main

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/chott/chott/internal/engine"
	"github.com/chott/chott/internal/environment"
	"github.com/chott/chott/internal/logging"
	"github.com/chott/chott/internal/observability"
	"github.com/chott/chott/internal/web"
)

// shutdownTimeout bounds graceful shutdown of the HTTP servers.
const shutdownTimeout = 5 * time.Second

// NewServeCmd creates the serve subcommand.
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the world simulation and the read API",
		Long: `Run the world simulation. The world ticks on a fixed interval until the
process receives SIGINT or SIGTERM. The read API serves locations, actors
and the world clock; the metrics address serves Prometheus metrics and
health probes.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			cfg, err := loadConfig(configPath, cmd.Flags())
			if err != nil {
				return err
			}
			return runServe(cmd.Context(), cmd, cfg)
		},
	}

	registerFlags(cmd.Flags())
	return cmd
}

// runServe runs the simulation until ctx is cancelled or a signal arrives.
func runServe(ctx context.Context, cmd *cobra.Command, cfg *Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	logging.SetDefault("chott", version, cfg.LogFormat, cfg.Level())

	graph, roster, err := loadWorld(cfg)
	if err != nil {
		return err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	slog.Info("starting world",
		"locations", graph.Len(),
		"actors", len(roster),
		"tick_interval", cfg.TickInterval,
		"seed", seed,
	)

	metrics := engine.NewMetrics()
	manager, err := engine.NewManager(graph, roster,
		engine.WithRand(rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15))), //nolint:gosec // simulation randomness
		engine.WithLockWait(cfg.LockWait),
		engine.WithMetrics(metrics),
	)
	if err != nil {
		return err
	}

	runner, err := engine.NewRunner(manager, cfg.TickInterval, engine.WithRunnerMetrics(metrics))
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		webOpts []web.Option
		started []stopper
	)

	if cfg.MetricsAddr != "" {
		obsServer := observability.NewServer(cfg.MetricsAddr, runner.Ready)
		metrics.Register(obsServer.Registerer())
		obsErrChan, err := obsServer.Start()
		if err != nil {
			return oops.With("server", "observability").Wrap(err)
		}
		started = append(started, obsServer)
		go monitorServerErrors(ctx, cancel, obsErrChan, "observability")
		webOpts = append(webOpts, web.WithRequestRecorder(obsServer.Metrics()))
	}

	env := environment.New(graph, environment.WithSeed(seed))
	webServer := web.NewServer(cfg.ListenAddr, graph, manager, env, webOpts...)
	webErrChan, err := webServer.Start()
	if err != nil {
		stopServers(started...)
		return oops.With("server", "web").Wrap(err)
	}
	started = append(started, webServer)
	go monitorServerErrors(ctx, cancel, webErrChan, "web")

	runDone := make(chan error, 1)
	go func() {
		runDone <- runner.Run(ctx)
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	cmd.Println("World started")
	slog.Info("world ready", "listen_addr", webServer.Addr())

	var runErr error
	select {
	case sig := <-sigChan:
		slog.Info("received shutdown signal", "signal", sig)
	case <-ctx.Done():
		slog.Info("context cancelled, shutting down")
	case runErr = <-runDone:
		runDone = nil
	}

	slog.Info("shutting down...")
	runner.Stop()
	if runDone != nil {
		runErr = <-runDone
	}
	stopServers(started...)

	slog.Info("shutdown complete", "ticks", manager.TickCount())
	return runErr
}

type stopper interface {
	Stop(ctx context.Context) error
}

// stopServers shuts down servers in reverse start order, logging failures.
func stopServers(servers ...stopper) {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	for i := len(servers) - 1; i >= 0; i-- {
		if err := servers[i].Stop(ctx); err != nil {
			slog.Warn("error stopping server", "error", err)
		}
	}
}

// monitorServerErrors cancels ctx when a server reports an error. It exits
// when an error arrives, the channel closes, or ctx is cancelled.
func monitorServerErrors(ctx context.Context, cancel context.CancelFunc, errCh <-chan error, serverName string) {
	select {
	case err, ok := <-errCh:
		if !ok {
			return
		}
		if err != nil {
			slog.Error("server error, triggering shutdown",
				"server", serverName,
				"error", err,
			)
			cancel()
		}
	case <-ctx.Done():
	}
}
