package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureJSON(t *testing.T, level string) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	Init(Config{Level: level, Format: "json", Output: &buf})
	t.Cleanup(func() { Init(Config{}) })
	return &buf
}

func TestParseLevel(t *testing.T) {
	tests := map[string]zerolog.Level{
		"trace":    zerolog.TraceLevel,
		"DEBUG":    zerolog.DebugLevel,
		"info":     zerolog.InfoLevel,
		"warning":  zerolog.WarnLevel,
		"error":    zerolog.ErrorLevel,
		"disabled": zerolog.Disabled,
		"bogus":    zerolog.WarnLevel,
		"":         zerolog.WarnLevel,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestInitFiltersByLevel(t *testing.T) {
	buf := captureJSON(t, "warn")

	l := Ctx(context.Background())
	l.Info().Msg("hidden")
	l.Warn().Msg("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestJSONFields(t *testing.T) {
	buf := captureJSON(t, "debug")

	Ctx(context.Background()).Debug().Int("items", 15).Msg("catalog loaded")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "debug", entry["level"])
	assert.Equal(t, "catalog loaded", entry["message"])
	assert.EqualValues(t, 15, entry["items"])
	assert.Contains(t, entry, "time")
}

func TestDisabled(t *testing.T) {
	buf := captureJSON(t, "disabled")

	Ctx(context.Background()).Error().Msg("nothing")
	assert.Empty(t, buf.String())
}

func TestConsoleFormat(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "info", Format: "console", Output: &buf})
	t.Cleanup(func() { Init(Config{}) })

	Ctx(context.Background()).Info().Str("source", "sample").Msg("loading")

	out := buf.String()
	assert.Contains(t, out, "loading")
	assert.Contains(t, out, "source=sample")
}

func TestCtxAddsRunID(t *testing.T) {
	buf := captureJSON(t, "info")

	ctx := ContextWithRunID(context.Background(), "abc12345")
	Ctx(ctx).Info().Msg("hello")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "abc12345", entry["run_id"])
}

func TestCtxWithoutRunID(t *testing.T) {
	buf := captureJSON(t, "info")

	Ctx(context.Background()).Info().Msg("hello")

	assert.NotContains(t, buf.String(), "run_id")
}

func TestRunID(t *testing.T) {
	a, b := NewRunID(), NewRunID()
	assert.Len(t, a, 8)
	assert.NotEqual(t, a, b)

	assert.Empty(t, RunIDFromContext(context.Background()))
	ctx := ContextWithRunID(context.Background(), a)
	assert.Equal(t, a, RunIDFromContext(ctx))
}

func TestNonFileOutputIsNotTerminal(t *testing.T) {
	var buf bytes.Buffer
	assert.False(t, isTerminal(&buf))
}

func TestConsoleFormatWithoutColorOnPipe(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	t.Cleanup(func() { r.Close() })

	assert.False(t, isTerminal(w))

	Init(Config{Level: "info", Format: "console", Output: w})
	t.Cleanup(func() { Init(Config{}) })
	Ctx(context.Background()).Info().Msg("piped")
	require.NoError(t, w.Close())

	out, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Contains(t, string(out), "piped")
	assert.NotContains(t, string(out), "\x1b[")
}
