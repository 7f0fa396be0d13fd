package testutil

import (
	"study-go/internal/study"
	"study-go/internal/vault"
)

// NewTestVault creates a new in-memory vault for testing.
func NewTestVault() study.Vault {
	return vault.NewMemoryVault("test-vault")
}
