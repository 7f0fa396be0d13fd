package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Config represents the main configuration for study.
type Config struct {
	BaseDir    string           `toml:"base_dir"`
	LogDir     string           `toml:"log_dir"`
	LogStderr  bool             `toml:"log_stderr"`
	Database   DatabaseConfig   `toml:"database"`
	Vault      VaultConfig      `toml:"vault"`
	Encryption EncryptionConfig `toml:"encryption"`
	Notify     NotifyConfig     `toml:"notify"`
	Mock       MockConfig       `toml:"mock"`
}

// DatabaseConfig selects the local store.
// This uses a tagged union pattern - the Type field determines which other fields are relevant.
type DatabaseConfig struct {
	Type    string `toml:"type"`               // "sqlite" or "memory"
	DataDir string `toml:"data_dir,omitempty"` // only used for type=sqlite
}

// VaultConfig selects where encrypted database snapshots are archived.
type VaultConfig struct {
	Type string `toml:"type"`           // "none", "memory" or "filesystem"
	Root string `toml:"root,omitempty"` // only used for type=filesystem
}

// EncryptionConfig holds paths to the age key pair used for snapshots.
type EncryptionConfig struct {
	Type           string `toml:"type"` // "age" (default), "test" or "none"
	PublicKeyPath  string `toml:"public_key_path"`
	PrivateKeyPath string `toml:"private_key_path"`
}

// NotifyConfig controls the reminder watcher.
type NotifyConfig struct {
	Interval string `toml:"interval"` // Go duration, defaults to 1m
}

// MockConfig sets the artificial latency of the simulated text
// recognition and conversion.
type MockConfig struct {
	OCRDelay     string `toml:"ocr_delay"`
	ConvertDelay string `toml:"convert_delay"`
}

const (
	defaultInterval     = time.Minute
	defaultOCRDelay     = 2 * time.Second
	defaultConvertDelay = 1500 * time.Millisecond
)

// NewConfig creates a Config rooted at baseDir with default settings.
func NewConfig(baseDir string) *Config {
	return &Config{
		BaseDir: baseDir,
		LogDir:  filepath.Join(baseDir, "log"),
		Database: DatabaseConfig{
			Type:    "sqlite",
			DataDir: filepath.Join(baseDir, "db"),
		},
		Vault: VaultConfig{
			Type: "filesystem",
			Root: filepath.Join(baseDir, "vault"),
		},
		Encryption: EncryptionConfig{
			Type:           "age",
			PublicKeyPath:  filepath.Join(baseDir, "keys", "study.pub"),
			PrivateKeyPath: filepath.Join(baseDir, "keys", "study.key"),
		},
		Notify: NotifyConfig{Interval: defaultInterval.String()},
		Mock: MockConfig{
			OCRDelay:     defaultOCRDelay.String(),
			ConvertDelay: defaultConvertDelay.String(),
		},
	}
}

// Validate checks the tagged unions and durations.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Database),
		validation.Field(&c.Vault),
		validation.Field(&c.Encryption),
		validation.Field(&c.Notify),
		validation.Field(&c.Mock),
	)
}

func (c DatabaseConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Type, validation.In("sqlite", "memory")),
		validation.Field(&c.DataDir, validation.When(c.Type == "sqlite" || c.Type == "", validation.Required)),
	)
}

func (c VaultConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Type, validation.In("none", "memory", "filesystem")),
		validation.Field(&c.Root, validation.When(c.Type == "filesystem", validation.Required)),
	)
}

func (c EncryptionConfig) Validate() error {
	age := c.Type == "age" || c.Type == ""
	return validation.ValidateStruct(&c,
		validation.Field(&c.Type, validation.In("age", "test", "none")),
		validation.Field(&c.PublicKeyPath, validation.When(age, validation.Required)),
		validation.Field(&c.PrivateKeyPath, validation.When(age, validation.Required)),
	)
}

func (c NotifyConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Interval, validation.By(positiveDuration)),
	)
}

func (c MockConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.OCRDelay, validation.By(duration)),
		validation.Field(&c.ConvertDelay, validation.By(duration)),
	)
}

// PollInterval returns the watcher interval, defaulting to one minute.
func (c NotifyConfig) PollInterval() (time.Duration, error) {
	return parseDuration(c.Interval, defaultInterval)
}

// Delays returns the simulated latency of recognition and conversion.
func (c MockConfig) Delays() (ocr, convert time.Duration, err error) {
	if ocr, err = parseDuration(c.OCRDelay, defaultOCRDelay); err != nil {
		return 0, 0, err
	}
	if convert, err = parseDuration(c.ConvertDelay, defaultConvertDelay); err != nil {
		return 0, 0, err
	}
	return ocr, convert, nil
}

func parseDuration(s string, def time.Duration) (time.Duration, error) {
	if s == "" {
		return def, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q: %w", s, err)
	}
	return d, nil
}

func duration(value any) error {
	s, _ := value.(string)
	d, err := parseDuration(s, 0)
	if err != nil {
		return err
	}
	if d < 0 {
		return fmt.Errorf("must not be negative")
	}
	return nil
}

func positiveDuration(value any) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	d, err := parseDuration(s, 0)
	if err != nil {
		return err
	}
	if d <= 0 {
		return fmt.Errorf("must be positive")
	}
	return nil
}

// Manager handles reading and writing configuration.
type Manager struct{}

// Read decodes a Config from the provided reader.
func (m *Manager) Read(r io.Reader) (*Config, error) {
	var cfg Config
	if _, err := toml.NewDecoder(r).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &cfg, nil
}

// Write encodes a Config to the provided writer.
func (m *Manager) Write(w io.Writer, cfg *Config) error {
	if err := toml.NewEncoder(w).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// ReadFromFile reads and validates a Config from the specified file path.
func ReadFromFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	cfg, err := m.Read(f)
	if err != nil {
		return nil, fmt.Errorf("reading config from %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func writeToFile(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	if err := m.Write(f, cfg); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Init writes cfg to path. It refuses to overwrite an existing file.
func Init(path string, cfg *Config) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("initializing config: %w", err)
	}
	if err := writeToFile(path, cfg); err != nil {
		return fmt.Errorf("initializing config: %w", err)
	}
	return nil
}
