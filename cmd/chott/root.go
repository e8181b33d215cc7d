// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Chott Contributors

package main

import (
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for the chott CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chott",
		Short: "chott - a tick-driven NPC world simulation",
		Long: `chott simulates a population of autonomous actors living on a graph
of locations. Every tick a random tenth of the population decides and
performs one action; a read-only JSON API exposes the result.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().String("config", "", "YAML config file path (default $XDG_CONFIG_HOME/chott/config.yaml)")

	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewValidateWorldCmd())

	return cmd
}
