// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Chott Contributors

package actor

// Error codes for actor and roster failures.
const (
	CodeUnknownFlag           = "ACTOR_UNKNOWN_FLAG"
	CodeRosterReadFailed      = "ROSTER_READ_FAILED"
	CodeRosterYAMLInvalid     = "ROSTER_YAML_INVALID"
	CodeRosterEmptyID         = "ROSTER_EMPTY_ID"
	CodeRosterDuplicateID     = "ROSTER_DUPLICATE_ID"
	CodeRosterUnknownLocation = "ROSTER_UNKNOWN_LOCATION"
)
