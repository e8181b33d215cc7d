// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Chott Contributors

package world

// Error codes for world loading failures.
const (
	CodeReadFailed         = "WORLD_READ_FAILED"
	CodeYAMLInvalid        = "WORLD_YAML_INVALID"
	CodeSchemaInvalid      = "WORLD_SCHEMA_INVALID"
	CodeVersionUnsupported = "WORLD_VERSION_UNSUPPORTED"
	CodeInvalidLocation    = "WORLD_INVALID_LOCATION"
	CodeDuplicateLocation  = "WORLD_DUPLICATE_LOCATION"
	CodeDanglingConnection = "WORLD_DANGLING_CONNECTION"
)
