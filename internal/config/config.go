// Package config resolves the on-disk locations used by trafficmon.
package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// AppName is the application identifier used for XDG paths.
	AppName = "trafficmon"
	// StoreFileName is the name of the SQLite file backing the data store.
	StoreFileName = "traffic.db"
)

// DefaultInterface is the network interface monitored when none is given.
const DefaultInterface = "wlan0"

// Paths holds the resolved data directories.
type Paths struct {
	DataDir   string
	StoreFile string
}

// GetPaths returns the data paths following the XDG Base Directory spec.
func GetPaths() (*Paths, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		dataHome = filepath.Join(homeDir, ".local", "share")
	}

	dataDir := filepath.Join(dataHome, AppName)
	return &Paths{
		DataDir:   dataDir,
		StoreFile: filepath.Join(dataDir, StoreFileName),
	}, nil
}

// EnsurePaths creates the data directory if it does not exist.
func (p *Paths) EnsurePaths() error {
	if err := os.MkdirAll(p.DataDir, 0700); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	return nil
}
