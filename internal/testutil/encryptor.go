package testutil

import (
	"study-go/internal/encryption"
	"study-go/internal/study"
)

// NewTestEncryptor creates a new test encryptor for testing.
func NewTestEncryptor() study.Encryptor {
	return encryption.NewTestEncryptor()
}
