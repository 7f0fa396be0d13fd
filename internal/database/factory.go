package database

import (
	"fmt"
	"os"
	"path/filepath"

	"study-go/internal/config"
)

// DatabaseFile is the file name of the SQLite database inside data_dir.
const DatabaseFile = "study.db"

// NewStoreFromConfig opens the store selected by the database config type.
func NewStoreFromConfig(cfg config.DatabaseConfig) (*SQLiteStore, error) {
	switch cfg.Type {
	case "sqlite", "":
		if cfg.DataDir == "" {
			return nil, fmt.Errorf("data_dir required for sqlite database")
		}
		if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
			return nil, fmt.Errorf("creating data_dir: %w", err)
		}
		return NewSQLiteStore(filepath.Join(cfg.DataDir, DatabaseFile))
	case "memory":
		return NewSQLiteStore(":memory:")
	default:
		return nil, fmt.Errorf("unknown database type: %s", cfg.Type)
	}
}
