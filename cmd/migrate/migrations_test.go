package main

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func migrationsPath(t *testing.T) string {
	t.Helper()
	_, thisFile, _, ok := runtime.Caller(0)
	require.True(t, ok, "runtime.Caller failed")
	// this file lives in cmd/migrate/, so repo root is ../..
	return filepath.Clean(filepath.Join(filepath.Dir(thisFile), "..", "..", "db", "migrations"))
}

func TestCollectMigrations_ParsesMigrationsDir(t *testing.T) {
	migrations, err := goose.CollectMigrations(migrationsPath(t), 0, goose.MaxVersion)
	require.NoError(t, err)
	assert.NotEmpty(t, migrations)
}

func TestSQLMigrations_HaveGooseDirectives(t *testing.T) {
	dir := migrationsPath(t)
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)

	var all strings.Builder
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".sql") {
			continue
		}
		b, err := os.ReadFile(filepath.Join(dir, e.Name()))
		require.NoError(t, err)
		s := string(b)
		assert.Contains(t, s, "-- +goose Up", e.Name())
		assert.Contains(t, s, "-- +goose Down", e.Name())
		all.WriteString(s)
	}

	assert.Contains(t, all.String(), "CREATE TABLE IF NOT EXISTS catalog_snapshots", "snapshot archive table must be created")
}

func TestCheckCommand(t *testing.T) {
	tests := []struct {
		name    string
		command string
		arg     string
		wantErr bool
	}{
		{"up", "up", "", false},
		{"down", "down", "", false},
		{"status", "status", "", false},
		{"create with name", "create", "add_index", false},
		{"create without name", "create", "", true},
		{"unknown", "redo", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkCommand(tt.command, tt.arg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}

	assert.ErrorIs(t, checkCommand("redo", ""), errUnknownCommand)
}
