package logger

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRedactSensitiveKeys(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{ReplaceAttr: redact}))

	l.Info("Login attempt", "email", "ana@test.com", "password", "password123", "Authorization", "Bearer abc")

	out := buf.String()
	assert.Contains(t, out, "ana@test.com")
	assert.NotContains(t, out, "password123")
	assert.NotContains(t, out, "Bearer abc")
	assert.Contains(t, out, "[REDACTED]")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warn"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}
