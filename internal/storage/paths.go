// Package storage keeps preferences, statistics and finished game summaries
// in a BadgerDB database.
package storage

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
)

const appName = "chessrules"

// EnvDataDir overrides the platform data directory when set.
const EnvDataDir = "CHESSRULES_DATA"

// baseDir is the environment variable naming a base directory and the
// fallback path relative to the home directory.
type baseDir struct {
	env      string
	fallback []string
}

// baseDirs is keyed by GOOS.
var baseDirs = map[string]baseDir{
	"darwin":  {"", []string{"Library", "Application Support"}},
	"windows": {"APPDATA", []string{"AppData", "Roaming"}},
}

// defaultBase is the XDG layout used on Linux and the other Unix systems.
var defaultBase = baseDir{"XDG_DATA_HOME", []string{".local", "share"}}

// dataRoot resolves the application directory for goos without touching the
// filesystem.
func dataRoot(goos string, getenv func(string) string, home func() (string, error)) (string, error) {
	if dir := getenv(EnvDataDir); dir != "" {
		return dir, nil
	}

	base, ok := baseDirs[goos]
	if !ok {
		base = defaultBase
	}
	if base.env != "" {
		if dir := getenv(base.env); dir != "" {
			return filepath.Join(dir, appName), nil
		}
	}

	homeDir, err := home()
	if err != nil {
		return "", fmt.Errorf("locate home directory: %w", err)
	}
	parts := append([]string{homeDir}, base.fallback...)
	return filepath.Join(append(parts, appName)...), nil
}

// DataDir returns the application data directory, creating it if needed:
// ~/Library/Application Support/chessrules on macOS, %APPDATA%\chessrules on
// Windows and $XDG_DATA_HOME/chessrules (or ~/.local/share/chessrules)
// elsewhere. CHESSRULES_DATA replaces the whole path.
func DataDir() (string, error) {
	dir, err := dataRoot(runtime.GOOS, os.Getenv, os.UserHomeDir)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create data directory: %w", err)
	}
	return dir, nil
}

// DatabaseDir returns the BadgerDB directory inside DataDir.
func DatabaseDir() (string, error) {
	dataDir, err := DataDir()
	if err != nil {
		return "", err
	}

	dbDir := filepath.Join(dataDir, "db")
	if err := os.MkdirAll(dbDir, 0o755); err != nil {
		return "", fmt.Errorf("create database directory: %w", err)
	}
	log.Printf("Database directory: %s", dbDir)
	return dbDir, nil
}
