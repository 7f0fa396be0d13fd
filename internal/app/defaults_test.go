package app

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGetDefaults(t *testing.T) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}

	tests := []struct {
		name string
		env  map[string]string
		want Defaults
	}{
		{
			name: "study variables win",
			env: map[string]string{
				"STUDY_CONFIG_PATH": "/custom/config.toml",
				"STUDY_HOME":        "/custom/study",
				"XDG_STATE_HOME":    "/xdg/state",
			},
			want: Defaults{
				ConfigPath: "/custom/config.toml",
				BaseDir:    "/custom/study",
				LogDir:     "/custom/study/log",
			},
		},
		{
			name: "explicit log dir",
			env: map[string]string{
				"STUDY_HOME":    "/custom/study",
				"STUDY_LOG_DIR": "/var/log/study",
			},
			want: Defaults{
				ConfigPath: filepath.Join(homeDir, ".config", "study.toml"),
				BaseDir:    "/custom/study",
				LogDir:     "/var/log/study",
			},
		},
		{
			name: "xdg directories",
			env: map[string]string{
				"XDG_CONFIG_HOME": "/xdg/config",
				"XDG_DATA_HOME":   "/xdg/data",
				"XDG_STATE_HOME":  "/xdg/state",
			},
			want: Defaults{
				ConfigPath: "/xdg/config/study.toml",
				BaseDir:    "/xdg/data/study",
				LogDir:     "/xdg/state/study",
			},
		},
		{
			name: "home fallbacks",
			env:  map[string]string{"XDG_DATA_HOME": "relative/ignored"},
			want: Defaults{
				ConfigPath: filepath.Join(homeDir, ".config", "study.toml"),
				BaseDir:    filepath.Join(homeDir, ".local", "share", "study"),
				LogDir:     filepath.Join(homeDir, ".local", "state", "study"),
			},
		},
	}

	vars := []string{"STUDY_CONFIG_PATH", "STUDY_HOME", "STUDY_LOG_DIR", "XDG_CONFIG_HOME", "XDG_DATA_HOME", "XDG_STATE_HOME"}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, v := range vars {
				t.Setenv(v, tt.env[v])
			}

			got, err := GetDefaults()
			if err != nil {
				t.Fatalf("GetDefaults() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("GetDefaults() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
