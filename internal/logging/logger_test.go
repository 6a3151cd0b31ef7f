package logging

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/trebuchet-org/proxyguard/internal/domain/config"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"DEBUG":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}

	for input, want := range tests {
		assert.Equal(t, want, ParseLevel(input), input)
	}
}

func TestNewLogger(t *testing.T) {
	t.Run("respects level and strips time", func(t *testing.T) {
		var buf bytes.Buffer
		log := newLogger(&buf, &config.RuntimeConfig{LogLevel: "warn"})

		log.Info("hidden")
		log.Warn("shown", "contract", "game_token")

		out := buf.String()
		assert.NotContains(t, out, "hidden")
		assert.Contains(t, out, "shown")
		assert.Contains(t, out, "contract=game_token")
		assert.NotContains(t, out, "time=")
	})

	t.Run("debug overrides level", func(t *testing.T) {
		var buf bytes.Buffer
		log := newLogger(&buf, &config.RuntimeConfig{LogLevel: "error", Debug: true})

		log.Debug("details")
		assert.Contains(t, buf.String(), "details")
		assert.Contains(t, buf.String(), "source=")
	})

	t.Run("json handler", func(t *testing.T) {
		var buf bytes.Buffer
		log := newLogger(&buf, &config.RuntimeConfig{JSON: true})

		log.Info("hello")
		assert.Contains(t, buf.String(), `"msg":"hello"`)
	})
}

func TestShortPath(t *testing.T) {
	assert.Equal(t, "internal/usecase/validate_contracts.go",
		shortPath("/home/dev/src/proxyguard/internal/usecase/validate_contracts.go"))
	assert.Equal(t, "main.go", shortPath("/somewhere/else/main.go"))
}
