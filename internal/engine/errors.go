// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Chott Contributors

package engine

// Error codes for tick failures.
const (
	// CodeTickContended means a tick was skipped because another tick held
	// the population for longer than the lock wait.
	CodeTickContended = "TICK_CONTENDED"
	// CodeTickPanic means a tick panicked and was abandoned.
	CodeTickPanic = "TICK_PANIC"
	// CodeRunnerRunning means Run was called on a runner that is already running.
	CodeRunnerRunning = "RUNNER_ALREADY_RUNNING"
	// CodeInvalidInterval means the runner was given a non-positive interval.
	CodeInvalidInterval = "RUNNER_INVALID_INTERVAL"
)
