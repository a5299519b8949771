package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default("/base")

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, filepath.Join("/base", DefaultConfigDir, DefaultDBFile), cfg.SQLite.Path)
}

func TestLoad(t *testing.T) {
	t.Run("missing config file", func(t *testing.T) {
		_, err := Load(t.TempDir())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "kin init")
	})

	t.Run("file values override defaults", func(t *testing.T) {
		dir := t.TempDir()
		writeConfigFile(t, dir, "env: production\nserver:\n  addr: \":9090\"\n")

		cfg, err := Load(dir)
		require.NoError(t, err)
		assert.Equal(t, "production", cfg.Env)
		assert.Equal(t, ":9090", cfg.Server.Addr)
		// Unset keys keep defaults
		assert.Equal(t, filepath.Join(dir, DefaultConfigDir, DefaultDBFile), cfg.SQLite.Path)
	})

	t.Run("env vars override file", func(t *testing.T) {
		dir := t.TempDir()
		writeConfigFile(t, dir, "server:\n  addr: \":9090\"\n")
		t.Setenv("KIN_ADDR", ":7070")
		t.Setenv("KIN_DB_PATH", "/tmp/other.db")

		cfg, err := Load(dir)
		require.NoError(t, err)
		assert.Equal(t, ":7070", cfg.Server.Addr)
		assert.Equal(t, "/tmp/other.db", cfg.SQLite.Path)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		dir := t.TempDir()
		writeConfigFile(t, dir, "server: [not a map")

		_, err := Load(dir)
		require.Error(t, err)
	})
}

func TestWriteDefault(t *testing.T) {
	t.Run("creates config", func(t *testing.T) {
		dir := t.TempDir()

		require.NoError(t, WriteDefault(dir))
		assert.True(t, Exists(dir))

		cfg, err := Load(dir)
		require.NoError(t, err)
		assert.Equal(t, "development", cfg.Env)
	})

	t.Run("refuses to overwrite", func(t *testing.T) {
		dir := t.TempDir()

		require.NoError(t, WriteDefault(dir))
		err := WriteDefault(dir)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already exists")
	})
}

func TestWrite(t *testing.T) {
	dir := t.TempDir()

	cfg := Default(dir)
	cfg.Server.Addr = ":4444"
	require.NoError(t, Write(dir, cfg))

	loaded, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, ":4444", loaded.Server.Addr)
}

func writeConfigFile(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(ConfigDir(dir), 0755))
	require.NoError(t, os.WriteFile(ConfigFilePath(dir), []byte(content), 0644))
}
