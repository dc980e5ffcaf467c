package logger_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"librarycatalog/internal/platform/logger"
)

func TestLog(t *testing.T) {
	buff := bytes.NewBuffer([]byte{})
	l, err := logger.New().FromWriter(buff).Make()
	require.NoError(t, err)
	require.Nil(t, l.File)

	require.Equal(t, 0, buff.Len())
	l.Logger.Info().Msg("Test")
	require.Contains(t, buff.String(), `"message":"Test"`)
	require.NoError(t, l.Close())
}

func TestLog_Level(t *testing.T) {
	buff := bytes.NewBuffer([]byte{})
	l, err := logger.New().FromWriter(buff).Level(zerolog.WarnLevel).Make()
	require.NoError(t, err)

	l.Logger.Info().Msg("dropped")
	assert.Equal(t, 0, buff.Len())
	l.Logger.Warn().Msg("kept")
	assert.Contains(t, buff.String(), "kept")
}

func TestSink_AppendsToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "library.log")
	require.NoError(t, os.WriteFile(path, []byte("{\"message\":\"earlier run\"}\n"), 0o644))

	s, err := logger.OpenSink(path)
	require.NoError(t, err)
	s.Info("Added book: 1984")
	s.Info("Removed book: 1984")
	require.NoError(t, s.Close())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "earlier run")
	assert.Contains(t, lines[1], `"level":"info"`)
	assert.Contains(t, lines[1], `"message":"Added book: 1984"`)
	assert.Contains(t, lines[2], `"message":"Removed book: 1984"`)
}

func TestOpenSink_BadPath(t *testing.T) {
	_, err := logger.OpenSink(filepath.Join(t.TempDir(), "missing", "library.log"))
	assert.Error(t, err)
}

func TestLog_MustMake(t *testing.T) {
	buff := bytes.NewBuffer([]byte{})
	l := logger.New().FromWriter(buff).MustMake()
	l.Logger.Info().Msg("ready")
	assert.Contains(t, buff.String(), `"message":"ready"`)

	missing := filepath.Join(t.TempDir(), "no-such-dir", "app.log")
	assert.Panics(t, func() { logger.New().FromPath(missing).MustMake() })
}
