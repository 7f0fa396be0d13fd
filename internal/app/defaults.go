package app

import (
	"fmt"
	"os"
	"path/filepath"
)

// Defaults are the paths used when no config file says otherwise.
type Defaults struct {
	ConfigPath string
	BaseDir    string
	LogDir     string
}

// GetDefaults resolves default paths, checking environment variables first.
//   - STUDY_CONFIG_PATH: config file (default $XDG_CONFIG_HOME/study.toml)
//   - STUDY_HOME: data directory (default $XDG_DATA_HOME/study)
//   - STUDY_LOG_DIR: log directory (default STUDY_HOME/log when STUDY_HOME
//     is set, otherwise $XDG_STATE_HOME/study)
//
// Unset XDG variables fall back to ~/.config, ~/.local/share and ~/.local/state.
func GetDefaults() (Defaults, error) {
	var d Defaults
	var err error

	if d.ConfigPath, err = envOr("STUDY_CONFIG_PATH", func() (string, error) {
		dir, err := xdgDir("XDG_CONFIG_HOME", ".config")
		return filepath.Join(dir, "study.toml"), err
	}); err != nil {
		return Defaults{}, err
	}

	if d.BaseDir, err = envOr("STUDY_HOME", func() (string, error) {
		dir, err := xdgDir("XDG_DATA_HOME", ".local", "share")
		return filepath.Join(dir, "study"), err
	}); err != nil {
		return Defaults{}, err
	}

	if d.LogDir, err = envOr("STUDY_LOG_DIR", func() (string, error) {
		if os.Getenv("STUDY_HOME") != "" {
			return filepath.Join(d.BaseDir, "log"), nil
		}
		dir, err := xdgDir("XDG_STATE_HOME", ".local", "state")
		return filepath.Join(dir, "study"), err
	}); err != nil {
		return Defaults{}, err
	}

	return d, nil
}

func envOr(name string, fallback func() (string, error)) (string, error) {
	if v := os.Getenv(name); v != "" {
		return v, nil
	}
	return fallback()
}

// xdgDir returns $env when it holds an absolute path, else ~/<rel...>.
// Relative XDG values are invalid and ignored.
func xdgDir(env string, rel ...string) (string, error) {
	if v := os.Getenv(env); filepath.IsAbs(v) {
		return v, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(append([]string{homeDir}, rel...)...), nil
}
