package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestManager_ReadWrite_RoundTrip(t *testing.T) {
	original := &Config{
		BaseDir:   "/home/user/.local/share/study",
		LogDir:    "/home/user/.local/share/study/log",
		LogStderr: true,
		Database:  DatabaseConfig{Type: "sqlite", DataDir: "/home/user/.local/share/study/db"},
		Vault:     VaultConfig{Type: "filesystem", Root: "/backup/study"},
		Encryption: EncryptionConfig{
			Type:           "age",
			PublicKeyPath:  "/home/user/.local/share/study/keys/study.pub",
			PrivateKeyPath: "/home/user/.local/share/study/keys/study.key",
		},
		Notify: NotifyConfig{Interval: "30s"},
		Mock:   MockConfig{OCRDelay: "0s", ConvertDelay: "250ms"},
	}

	var buf bytes.Buffer
	m := &Manager{}

	if err := m.Write(&buf, original); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	got, err := m.Read(&buf)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	if *got != *original {
		t.Errorf("Read() = %+v\nwant %+v", got, original)
	}
}

func TestNewConfig(t *testing.T) {
	cfg := NewConfig("/data/study")

	if cfg.BaseDir != "/data/study" {
		t.Errorf("BaseDir = %q, want %q", cfg.BaseDir, "/data/study")
	}
	if cfg.LogDir != "/data/study/log" {
		t.Errorf("LogDir = %q, want %q", cfg.LogDir, "/data/study/log")
	}
	if cfg.Database.DataDir != "/data/study/db" {
		t.Errorf("Database.DataDir = %q, want %q", cfg.Database.DataDir, "/data/study/db")
	}
	if cfg.Vault.Root != "/data/study/vault" {
		t.Errorf("Vault.Root = %q, want %q", cfg.Vault.Root, "/data/study/vault")
	}
	if cfg.Encryption.PublicKeyPath != "/data/study/keys/study.pub" {
		t.Errorf("Encryption.PublicKeyPath = %q", cfg.Encryption.PublicKeyPath)
	}
	if cfg.Encryption.PrivateKeyPath != "/data/study/keys/study.key" {
		t.Errorf("Encryption.PrivateKeyPath = %q", cfg.Encryption.PrivateKeyPath)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() on defaults = %v", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"memory database needs no data_dir", func(c *Config) { c.Database = DatabaseConfig{Type: "memory"} }, ""},
		{"unknown database type", func(c *Config) { c.Database.Type = "postgres" }, "database"},
		{"sqlite without data_dir", func(c *Config) { c.Database.DataDir = "" }, "datadir"},
		{"filesystem vault without root", func(c *Config) { c.Vault.Root = "" }, "vault"},
		{"no vault", func(c *Config) { c.Vault = VaultConfig{Type: "none"} }, ""},
		{"unknown encryption", func(c *Config) { c.Encryption.Type = "rot13" }, "encryption"},
		{"test encryption needs no keys", func(c *Config) { c.Encryption = EncryptionConfig{Type: "test"} }, ""},
		{"bad interval", func(c *Config) { c.Notify.Interval = "soon" }, "notify"},
		{"zero interval", func(c *Config) { c.Notify.Interval = "0s" }, "notify"},
		{"negative delay", func(c *Config) { c.Mock.OCRDelay = "-1s" }, "mock"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig("/data/study")
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() = nil, want error mentioning %q", tt.wantErr)
			}
			if !strings.Contains(strings.ToLower(err.Error()), tt.wantErr) {
				t.Errorf("Validate() = %v, want mention of %q", err, tt.wantErr)
			}
		})
	}
}

func TestDurations(t *testing.T) {
	t.Run("defaults when empty", func(t *testing.T) {
		interval, err := NotifyConfig{}.PollInterval()
		if err != nil || interval != time.Minute {
			t.Errorf("PollInterval() = %v, %v; want 1m", interval, err)
		}
		ocr, convert, err := MockConfig{}.Delays()
		if err != nil || ocr != 2*time.Second || convert != 1500*time.Millisecond {
			t.Errorf("Delays() = %v, %v, %v; want 2s, 1.5s", ocr, convert, err)
		}
	})

	t.Run("parses configured values", func(t *testing.T) {
		interval, err := NotifyConfig{Interval: "10s"}.PollInterval()
		if err != nil || interval != 10*time.Second {
			t.Errorf("PollInterval() = %v, %v; want 10s", interval, err)
		}
		ocr, convert, err := MockConfig{OCRDelay: "0s", ConvertDelay: "5ms"}.Delays()
		if err != nil || ocr != 0 || convert != 5*time.Millisecond {
			t.Errorf("Delays() = %v, %v, %v", ocr, convert, err)
		}
	})

	t.Run("rejects garbage", func(t *testing.T) {
		if _, err := (NotifyConfig{Interval: "often"}).PollInterval(); err == nil {
			t.Error("PollInterval() expected error")
		}
	})
}

func TestInit(t *testing.T) {
	t.Run("creates config file", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "study.toml")

		if err := Init(path, NewConfig(dir)); err != nil {
			t.Fatalf("Init() error = %v", err)
		}
		if _, err := os.Stat(path); err != nil {
			t.Fatalf("config file not created: %v", err)
		}
	})

	t.Run("fails if file already exists", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "study.toml")
		cfg := NewConfig(dir)

		if err := Init(path, cfg); err != nil {
			t.Fatalf("first Init() error = %v", err)
		}
		if err := Init(path, cfg); err == nil {
			t.Fatal("second Init() expected error")
		}
	})

	t.Run("rejects invalid config", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "study.toml")
		cfg := NewConfig(dir)
		cfg.Vault.Type = "s3"

		if err := Init(path, cfg); err == nil {
			t.Fatal("Init() expected error for invalid config")
		}
		if _, err := os.Stat(path); !os.IsNotExist(err) {
			t.Error("invalid config was written")
		}
	})
}

func TestReadFromFile(t *testing.T) {
	t.Run("reads valid config", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "study.toml")
		cfg := NewConfig(dir)
		cfg.Database = DatabaseConfig{Type: "memory"}

		if err := Init(path, cfg); err != nil {
			t.Fatalf("Init() error = %v", err)
		}

		got, err := ReadFromFile(path)
		if err != nil {
			t.Fatalf("ReadFromFile() error = %v", err)
		}
		if got.Database.Type != "memory" {
			t.Errorf("Database.Type = %q, want %q", got.Database.Type, "memory")
		}
	})

	t.Run("returns error for missing file", func(t *testing.T) {
		if _, err := ReadFromFile("/nonexistent/path/study.toml"); err == nil {
			t.Fatal("ReadFromFile() expected error for missing file")
		}
	})

	t.Run("returns error for invalid values", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "study.toml")
		content := "[database]\ntype = \"mongo\"\n"
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := ReadFromFile(path); err == nil {
			t.Fatal("ReadFromFile() expected validation error")
		}
	})
}
