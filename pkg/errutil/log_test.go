// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Chott Contributors

package errutil_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/samber/oops"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chott/chott/pkg/errutil"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestLogError(t *testing.T) {
	t.Run("oops error carries code, context and stacktrace", func(t *testing.T) {
		var buf bytes.Buffer
		logger := slog.New(slog.NewJSONHandler(&buf, nil))

		err := oops.Code("TICK_FAILED").
			With("tick", 7).
			Errorf("tick failed")

		errutil.LogError(context.Background(), logger, "world tick failed", err)

		entry := decodeLine(t, &buf)
		assert.Equal(t, "ERROR", entry["level"])
		assert.Equal(t, "world tick failed", entry["msg"])
		assert.Equal(t, "TICK_FAILED", entry["code"])
		assert.Contains(t, entry, "context")
		assert.Contains(t, entry, "stacktrace")
	})

	t.Run("standard error", func(t *testing.T) {
		var buf bytes.Buffer
		logger := slog.New(slog.NewJSONHandler(&buf, nil))

		errutil.LogError(context.Background(), logger, "operation failed", errors.New("standard error"))

		entry := decodeLine(t, &buf)
		assert.Equal(t, "ERROR", entry["level"])
		assert.Contains(t, entry["error"], "standard error")
		assert.NotContains(t, entry, "code")
	})
}

func TestLogWarn_OmitsStacktrace(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	errutil.LogWarn(context.Background(), logger, "tick skipped", oops.Code("TICK_CONTENDED").Errorf("busy"))

	entry := decodeLine(t, &buf)
	assert.Equal(t, "WARN", entry["level"])
	assert.Equal(t, "TICK_CONTENDED", entry["code"])
	assert.NotContains(t, entry, "stacktrace")
}

func TestCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"plain", errors.New("plain"), ""},
		{"oops without code", oops.Errorf("no code"), ""},
		{"oops with code", oops.Code("A_CODE").Errorf("x"), "A_CODE"},
		{"wrapped keeps inner code", oops.With("k", "v").Wrap(oops.Code("INNER").Errorf("x")), "INNER"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, errutil.Code(tt.err))
		})
	}

	assert.True(t, errutil.HasCode(oops.Code("A").Errorf("x"), "A"))
	assert.False(t, errutil.HasCode(errors.New("x"), ""))
}
