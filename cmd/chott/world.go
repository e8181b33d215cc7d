// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Chott Contributors

package main

import (
	"log/slog"

	"github.com/chott/chott/internal/actor"
	"github.com/chott/chott/internal/world"
)

// loadWorld returns the configured world and roster, falling back to the
// built-in ones, and checks that every actor stands somewhere real.
func loadWorld(cfg *Config) (*world.Map, []*actor.Actor, error) {
	graph := world.Default()
	if cfg.WorldFile != "" {
		m, err := world.Load(cfg.WorldFile)
		if err != nil {
			return nil, nil, err
		}
		graph = m
	}

	roster := actor.DefaultRoster()
	if cfg.RosterFile != "" {
		r, err := actor.LoadRoster(cfg.RosterFile)
		if err != nil {
			return nil, nil, err
		}
		roster = r
	}

	if err := actor.ValidateRoster(roster, graph); err != nil {
		return nil, nil, err
	}

	slog.Debug("world loaded",
		"world_file", cfg.WorldFile,
		"roster_file", cfg.RosterFile,
		"locations", graph.Len(),
		"actors", len(roster),
	)
	return graph, roster, nil
}
