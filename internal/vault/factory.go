package vault

import (
	"fmt"

	"study-go/internal/config"
	"study-go/internal/study"
)

// NewVaultFromConfig creates the vault selected by the config type.
// Type "none" (or empty) disables archiving and yields a nil vault.
func NewVaultFromConfig(cfg config.VaultConfig) (study.Vault, error) {
	switch cfg.Type {
	case "none", "":
		return nil, nil
	case "memory":
		return NewMemoryVault("memory"), nil
	case "filesystem":
		if cfg.Root == "" {
			return nil, fmt.Errorf("filesystem vault requires root to be set")
		}
		return NewFileSystemVault("filesystem", cfg.Root)
	default:
		return nil, fmt.Errorf("unknown vault type: %s", cfg.Type)
	}
}
