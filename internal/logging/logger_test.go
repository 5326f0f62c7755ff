// Inkwell - Publishing API Edge Caching and Rate Limiting
// Copyright 2026 Inkwell Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/inkwell-app/inkwell

package logging

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestInit_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{
		Level:     "info",
		Format:    "json",
		Timestamp: false,
		Output:    &buf,
	})
	defer Init(DefaultConfig())

	Info().Str("component", "test").Msg("hello")

	out := buf.String()
	if !strings.Contains(out, `"level":"info"`) {
		t.Errorf("expected JSON level field, got %q", out)
	}
	if !strings.Contains(out, `"component":"test"`) {
		t.Errorf("expected structured field, got %q", out)
	}
	if !strings.Contains(out, `"message":"hello"`) {
		t.Errorf("expected message field, got %q", out)
	}
}

func TestInit_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{
		Level:  "warn",
		Format: "json",
		Output: &buf,
	})
	defer Init(DefaultConfig())

	Debug().Msg("debug message")
	Info().Msg("info message")
	Warn().Msg("warn message")

	out := buf.String()
	if strings.Contains(out, "debug message") || strings.Contains(out, "info message") {
		t.Errorf("messages below warn should be filtered, got %q", out)
	}
	if !strings.Contains(out, "warn message") {
		t.Errorf("warn message should be emitted, got %q", out)
	}
}

func TestParseLevel_Unknown(t *testing.T) {
	if got := parseLevel("nonsense"); got.String() != "info" {
		t.Errorf("unknown level should default to info, got %s", got)
	}
}

func TestCtx_AddsRequestID(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{
		Level:     "info",
		Format:    "json",
		Timestamp: false,
		Output:    &buf,
	})
	defer Init(DefaultConfig())

	ctx := ContextWithRequestID(context.Background(), "req-123")
	Ctx(ctx).Info().Msg("with context")

	if !strings.Contains(buf.String(), `"request_id":"req-123"`) {
		t.Errorf("expected request_id in output, got %q", buf.String())
	}
}

func TestRequestIDFromContext_Missing(t *testing.T) {
	if id := RequestIDFromContext(context.Background()); id != "" {
		t.Errorf("expected empty request ID, got %q", id)
	}
}
