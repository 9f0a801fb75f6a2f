package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func reset(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		mu.Lock()
		base = nil
		opts = Options{}
		loggers = make(map[Category]*Logger)
		mu.Unlock()
	})
}

func TestGet_NoopBeforeInitialize(t *testing.T) {
	reset(t)
	assert.False(t, IsCategoryEnabled(CategorySession))

	// Must not panic.
	Get(CategorySession).Info("hello %s", "world")
	Session("ignored")
}

func TestInitializeWith_Categories(t *testing.T) {
	reset(t)
	core, logs := observer.New(zapcore.DebugLevel)
	InitializeWith(zap.New(core))

	Get(CategoryTables).Info("loaded %d rows", 3)
	TablesDebug("detail")
	Get(CategoryOutput).With("file", "prompts.txt").Warn("slow append")

	entries := logs.All()
	require.Len(t, entries, 3)
	assert.Equal(t, "tables", entries[0].LoggerName)
	assert.Equal(t, "loaded 3 rows", entries[0].Message)
	assert.Equal(t, zapcore.DebugLevel, entries[1].Level)
	assert.Equal(t, "output", entries[2].LoggerName)
	assert.Equal(t, "prompts.txt", entries[2].ContextMap()["file"])
}

func TestInitialize_FileAndFilter(t *testing.T) {
	reset(t)
	path := filepath.Join(t.TempDir(), "ponymatrix.log")

	err := Initialize(Options{
		Level:      "debug",
		Format:     "json",
		File:       path,
		Categories: map[string]bool{"selector": false},
	})
	require.NoError(t, err)

	assert.False(t, IsCategoryEnabled(CategorySelector))
	assert.True(t, IsCategoryEnabled(CategorySession))

	Get(CategorySelector).Warn("should not appear")
	Session("session %s started", "abc")
	Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, `"logger":"session"`)
	assert.Contains(t, out, "session abc started")
	assert.False(t, strings.Contains(out, "should not appear"))
}

func TestInitialize_Errors(t *testing.T) {
	reset(t)
	assert.Error(t, Initialize(Options{Level: "loud"}))
	assert.Error(t, Initialize(Options{Format: "xml"}))
}

func TestParseLevel(t *testing.T) {
	tests := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"":        zapcore.InfoLevel,
		"INFO":    zapcore.InfoLevel,
		"warning": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
	}
	for in, want := range tests {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}

func TestTimer(t *testing.T) {
	reset(t)
	core, logs := observer.New(zapcore.DebugLevel)
	InitializeWith(zap.New(core))

	timer := StartTimer(CategoryTables, "LoadCatalog")
	assert.GreaterOrEqual(t, int64(timer.Stop()), int64(0))
	require.Equal(t, 1, logs.Len())
	assert.Contains(t, logs.All()[0].Message, "LoadCatalog completed in")
}
