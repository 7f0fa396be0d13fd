package study

import (
	"bytes"
	"fmt"
	"io"
)

// SnapshotName is the vault name under which database snapshots are archived.
const SnapshotName = "db"

// Vault stores encrypted database snapshots.
type Vault interface {
	// PutSnapshot stores a named snapshot. size is the number of bytes that
	// will be read from r. version is recorded alongside it.
	PutSnapshot(name string, r io.Reader, size int64, version int64) error

	// GetSnapshot writes the named snapshot to w.
	GetSnapshot(name string, w io.Writer) error

	// SnapshotVersion returns the version of the named snapshot, or 0 if
	// none has been stored.
	SnapshotVersion(name string) (int64, error)

	// ValidateSetup verifies that the vault is accessible.
	ValidateSetup() error
}

// Encryptor encrypts snapshots with a public key and unlocks the private
// key for restores.
type Encryptor interface {
	// Setup performs one-time key generation, protecting the private key
	// with passphrase.
	Setup(passphrase string) error

	// Encrypt reads plaintext from r and writes ciphertext to w.
	Encrypt(r io.Reader, w io.Writer) error

	// Unlock returns a DecryptionContext, or an error for a wrong passphrase.
	Unlock(passphrase string) (DecryptionContext, error)

	// IsConfigured reports whether keys are in place.
	IsConfigured() bool
}

// DecryptionContext holds an unlocked private key in memory.
type DecryptionContext interface {
	Decrypt(r io.Reader, w io.Writer) error
}

// Archiver moves encrypted snapshots in and out of a vault.
type Archiver struct {
	vault     Vault
	encryptor Encryptor
	logger    Logger
}

func NewArchiver(vault Vault, encryptor Encryptor, logger Logger) *Archiver {
	return &Archiver{vault: vault, encryptor: encryptor, logger: logger}
}

// Archive encrypts plaintext and stores it as the named snapshot at version.
func (a *Archiver) Archive(name string, version int64, plaintext io.Reader) error {
	var ciphertext bytes.Buffer
	if err := a.encryptor.Encrypt(plaintext, &ciphertext); err != nil {
		return fmt.Errorf("encrypting snapshot: %w", err)
	}
	size := int64(ciphertext.Len())
	if err := a.vault.PutSnapshot(name, &ciphertext, size, version); err != nil {
		return fmt.Errorf("storing snapshot: %w", err)
	}
	a.logger.Info("snapshot archived", "name", name, "version", version, "size", size)
	return nil
}

// Restore decrypts the named snapshot with passphrase and writes the
// plaintext to w.
func (a *Archiver) Restore(name, passphrase string, w io.Writer) error {
	dc, err := a.encryptor.Unlock(passphrase)
	if err != nil {
		return fmt.Errorf("unlocking key: %w", err)
	}
	var ciphertext bytes.Buffer
	if err := a.vault.GetSnapshot(name, &ciphertext); err != nil {
		return fmt.Errorf("fetching snapshot: %w", err)
	}
	if err := dc.Decrypt(&ciphertext, w); err != nil {
		return fmt.Errorf("decrypting snapshot: %w", err)
	}
	return nil
}

// Behind reports whether the archived snapshot is newer than local.
func (a *Archiver) Behind(name string, local int64) (bool, int64, error) {
	remote, err := a.vault.SnapshotVersion(name)
	if err != nil {
		return false, 0, fmt.Errorf("reading snapshot version: %w", err)
	}
	return remote > local, remote, nil
}
