// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Chott Contributors

package world

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Validation limits for world data.
const (
	MaxIDLength          = 64
	MaxNameLength        = 100
	MaxDescriptionLength = 4000
	MaxConnectionCount   = 32
)

// ValidationError represents an input validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// locationIDRegex matches slug-style IDs such as "route-1".
var locationIDRegex = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)

// ValidateLocationID checks that id is a lowercase slug within the length limit.
func ValidateLocationID(id LocationID) error {
	if id == "" {
		return &ValidationError{Field: "id", Message: "cannot be empty"}
	}
	if len(id) > MaxIDLength {
		return &ValidationError{Field: "id", Message: fmt.Sprintf("exceeds maximum length of %d", MaxIDLength)}
	}
	if !locationIDRegex.MatchString(string(id)) {
		return &ValidationError{Field: "id", Message: "must contain lowercase letters, digits and hyphens only"}
	}
	return nil
}

// ValidateName checks that a name is valid.
// Names must be non-empty, valid UTF-8, no control characters, and within length limit.
func ValidateName(field, name string) error {
	if name == "" {
		return &ValidationError{Field: field, Message: "cannot be empty"}
	}
	if !utf8.ValidString(name) {
		return &ValidationError{Field: field, Message: "must be valid UTF-8"}
	}
	if len(name) > MaxNameLength {
		return &ValidationError{Field: field, Message: fmt.Sprintf("exceeds maximum length of %d", MaxNameLength)}
	}
	if hasControlChars(name) {
		return &ValidationError{Field: field, Message: "cannot contain control characters"}
	}
	return nil
}

// ValidateDescription checks that a description is valid.
// Descriptions may be empty, must be valid UTF-8, no control characters (except newline/tab), and within length limit.
func ValidateDescription(desc string) error {
	if desc == "" {
		return nil
	}
	if !utf8.ValidString(desc) {
		return &ValidationError{Field: "description", Message: "must be valid UTF-8"}
	}
	if len(desc) > MaxDescriptionLength {
		return &ValidationError{Field: "description", Message: fmt.Sprintf("exceeds maximum length of %d", MaxDescriptionLength)}
	}
	if hasControlCharsExceptWhitespace(desc) {
		return &ValidationError{Field: "description", Message: "cannot contain control characters (except newline/tab)"}
	}
	return nil
}

// ValidateLocation checks a single location in isolation.
// Connection targets are checked by NewMap, which sees the whole graph.
func ValidateLocation(l *Location) error {
	if err := ValidateLocationID(l.ID); err != nil {
		return err
	}
	if err := ValidateName("title", l.Title); err != nil {
		return err
	}
	if err := ValidateDescription(l.Description); err != nil {
		return err
	}
	if len(l.Connections) > MaxConnectionCount {
		return &ValidationError{Field: "connections", Message: fmt.Sprintf("exceeds maximum count of %d", MaxConnectionCount)}
	}
	seen := make(map[string]bool, len(l.Connections))
	for i, c := range l.Connections {
		if err := ValidateName(fmt.Sprintf("connections[%d].name", i), c.Name); err != nil {
			return err
		}
		if c.Target == "" {
			return &ValidationError{Field: fmt.Sprintf("connections[%d].target", i), Message: "cannot be empty"}
		}
		if c.Target == l.ID {
			return &ValidationError{Field: fmt.Sprintf("connections[%d].target", i), Message: "cannot point back to its own location"}
		}
		key := strings.ToLower(c.Name)
		if seen[key] {
			return &ValidationError{Field: fmt.Sprintf("connections[%d].name", i), Message: fmt.Sprintf("duplicate connection name %q", c.Name)}
		}
		seen[key] = true
	}
	return nil
}

// hasControlChars returns true if the string contains control characters.
func hasControlChars(s string) bool {
	for _, r := range s {
		if unicode.IsControl(r) {
			return true
		}
	}
	return false
}

// hasControlCharsExceptWhitespace returns true if the string contains control characters
// other than newline, carriage return, and tab.
func hasControlCharsExceptWhitespace(s string) bool {
	for _, r := range s {
		if unicode.IsControl(r) && r != '\n' && r != '\r' && r != '\t' {
			return true
		}
	}
	return false
}
