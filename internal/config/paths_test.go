package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDataDir_EnvOverride(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv(EnvCallerHome, tmp)

	d, err := DataDir()
	require.NoError(t, err)
	assert.Equal(t, tmp, d)
}

func TestDataDir_DefaultsUnderHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv(EnvCallerHome, "")
	t.Setenv("HOME", home)

	d, err := DataDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".caller-cli"), d)
}

func TestLoad_UsesCallerHomeWhenNoDataDir(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv(EnvCallerHome, tmp)
	t.Setenv(EnvCommandsFile, "")
	t.Setenv(EnvCallerDB, "")

	cfg, err := Load("", "")
	require.NoError(t, err)
	assert.Equal(t, tmp, cfg.DataDir)
	assert.Equal(t, filepath.Join(tmp, "caller-cli-commands.json"), cfg.CommandsFile)
	assert.Equal(t, filepath.Join(tmp, "caller.db"), cfg.History.DBPath)
}

func TestLoad_DBEnvOverride(t *testing.T) {
	db := filepath.Join(t.TempDir(), "custom.db")
	t.Setenv(EnvCallerDB, db)
	t.Setenv(EnvCommandsFile, "")

	cfg, err := Load("", t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, db, cfg.History.DBPath)
}
