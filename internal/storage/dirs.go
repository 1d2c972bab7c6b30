package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

const appName = "hike"

// DataDir returns the directory holding the bookmarks database.
func DataDir() (string, error) {
	return appDir("XDG_DATA_HOME", ".local", "share")
}

// ConfigDir returns the directory holding config.yaml.
func ConfigDir() (string, error) {
	return appDir("XDG_CONFIG_HOME", ".config")
}

// StateDir returns the directory holding the history record and log file.
func StateDir() (string, error) {
	return appDir("XDG_STATE_HOME", ".local", "state")
}

// appDir resolves hike's directory for one XDG base directory. On Linux and
// the BSDs xdgVar wins, falling back to the given path under $HOME.
func appDir(xdgVar string, fallback ...string) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home dir: %w", err)
	}

	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", appName), nil
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, appName), nil
		}
		return filepath.Join(home, "."+appName), nil
	}

	if dir := os.Getenv(xdgVar); dir != "" {
		return filepath.Join(dir, appName), nil
	}
	return filepath.Join(append(append([]string{home}, fallback...), appName)...), nil
}
