package logger_test

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oaiiae/huma-crm/cli/logger"
)

func TestNewFileJSON(t *testing.T) {
	name := filepath.Join(t.TempDir(), "crm.log")
	log := logger.New(&logger.Options{Level: "debug", File: name, Format: "json"})
	log.Debug("hello", "id", 6)

	b, err := os.ReadFile(name)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"msg":"hello"`)
	assert.Contains(t, string(b), `"id":6`)
}

func TestNewFallbacks(t *testing.T) {
	name := filepath.Join(t.TempDir(), "crm.log")
	options := &logger.Options{Level: "loud", File: name, Format: "yaml"}
	log := logger.New(options)
	assert.Empty(t, options.Level)
	assert.Equal(t, "text", options.Format)
	assert.False(t, log.Enabled(context.Background(), slog.LevelDebug))

	b, err := os.ReadFile(name)
	require.NoError(t, err)
	assert.Contains(t, string(b), "could not parse logger format")
	assert.Contains(t, string(b), "could not parse logger level")
}

func TestNewDevNull(t *testing.T) {
	log := logger.New(&logger.Options{File: os.DevNull})
	assert.False(t, log.Enabled(context.Background(), slog.LevelError))
}

func TestNewBackground(t *testing.T) {
	log := logger.NewBackground(&logger.Options{Format: "text"})
	assert.False(t, log.Enabled(context.Background(), slog.LevelError))

	name := filepath.Join(t.TempDir(), "tui.log")
	log = logger.NewBackground(&logger.Options{File: name, Format: "text"})
	log.Info("started")
	b, err := os.ReadFile(name)
	require.NoError(t, err)
	assert.Contains(t, string(b), "msg=started")
}
