package config

import (
	"os"
	"path/filepath"
)

// Environment overrides for storage locations.
const (
	EnvHome   = "BEAVERBUILD_HOME"
	EnvDB     = "BEAVERBUILD_DB"
	EnvConfig = "BEAVERBUILD_CONFIG"
)

// DataDir returns the directory used to store beaverbuild data.
func DataDir() (string, error) {
	if d := os.Getenv(EnvHome); d != "" {
		return d, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".beaverbuild"), nil
}

// EnsureDataDir returns DataDir after creating it when missing.
func EnsureDataDir() (string, error) {
	d, err := DataDir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(d, 0o755); err != nil {
		return "", err
	}
	return d, nil
}

// DBPath returns the full path to the SQLite history database.
func DBPath() (string, error) {
	if p := os.Getenv(EnvDB); p != "" {
		return p, nil
	}
	d, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(d, "beaverbuild.db"), nil
}
