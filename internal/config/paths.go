package config

import (
	"os"
	"path/filepath"
)

// Environment overrides for on-disk locations.
const (
	EnvCallerHome   = "CALLER_HOME"
	EnvCommandsFile = "CALLER_COMMANDS_FILE"
	EnvCallerDB     = "CALLER_DB"
)

// DataDir returns the directory used to store caller data.
func DataDir() (string, error) {
	if v := os.Getenv(EnvCallerHome); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".caller-cli"), nil
}
