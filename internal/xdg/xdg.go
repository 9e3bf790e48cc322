// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SuperTicket Contributors

// Package xdg provides XDG Base Directory paths for the superticket client.
package xdg

import (
	"os"
	"path/filepath"

	"github.com/samber/oops"
)

const appName = "superticket"

// File names inside the application directories.
const (
	configFileName  = "config.yaml"
	sessionFileName = "session.json"
)

// ConfigDir returns the XDG config directory for superticket.
// Checks XDG_CONFIG_HOME first, falls back to ~/.config.
func ConfigDir() (string, error) {
	return appDir("XDG_CONFIG_HOME", ".config")
}

// StateDir returns the XDG state directory for superticket.
// Checks XDG_STATE_HOME first, falls back to ~/.local/state.
func StateDir() (string, error) {
	return appDir("XDG_STATE_HOME", ".local", "state")
}

// ConfigFile returns the default config file path.
func ConfigFile() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

// SessionFile returns the default session file path. The session lives in the
// state directory so it survives restarts but is not mistaken for config.
func SessionFile() (string, error) {
	dir, err := StateDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, sessionFileName), nil
}

func appDir(env string, fallback ...string) (string, error) {
	base := os.Getenv(env)
	if base == "" {
		home := os.Getenv("HOME")
		if home == "" {
			return "", oops.Code("XDG_NO_HOME").
				With("env", env).
				Errorf("neither %s nor HOME is set", env)
		}
		base = filepath.Join(append([]string{home}, fallback...)...)
	}
	return filepath.Join(base, appName), nil
}

// EnsureDir creates a directory and all parent directories if they don't exist.
// Directories are created with 0700 permissions.
func EnsureDir(path string) error {
	if err := os.MkdirAll(path, 0o700); err != nil {
		return oops.Code("XDG_MKDIR_FAILED").
			With("path", path).
			Wrapf(err, "failed to create directory")
	}
	return nil
}
