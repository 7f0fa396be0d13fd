package vault

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"study-go/internal/study"
)

// FileSystemVault stores snapshots under a directory:
//
//	<root>/
//	  snapshots/
//	    <name>.snap     (encrypted snapshot)
//	    <name>.version  (operation ID it was taken at)
type FileSystemVault struct {
	name string
	root string
	dir  string
}

var _ study.Vault = (*FileSystemVault)(nil)

// NewFileSystemVault creates the vault directories under root.
func NewFileSystemVault(name, root string) (*FileSystemVault, error) {
	dir := filepath.Join(root, "snapshots")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create snapshot directory: %w", err)
	}
	return &FileSystemVault{name: name, root: root, dir: dir}, nil
}

// PutSnapshot writes the snapshot and then its version, each atomically.
func (v *FileSystemVault) PutSnapshot(name string, r io.Reader, size int64, version int64) error {
	if err := writeFile(v.snapshotPath(name), r, size); err != nil {
		return err
	}
	data := strconv.FormatInt(version, 10)
	return writeFile(v.versionPath(name), strings.NewReader(data), int64(len(data)))
}

func (v *FileSystemVault) GetSnapshot(name string, w io.Writer) error {
	f, err := os.Open(v.snapshotPath(name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("snapshot %q not found in vault %s", name, v.name)
		}
		return fmt.Errorf("failed to open snapshot: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(w, f); err != nil {
		return fmt.Errorf("failed to read snapshot: %w", err)
	}
	return nil
}

// SnapshotVersion returns 0 if no version file exists.
func (v *FileSystemVault) SnapshotVersion(name string) (int64, error) {
	data, err := os.ReadFile(v.versionPath(name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0, nil
		}
		return 0, fmt.Errorf("reading version file: %w", err)
	}

	version, err := strconv.ParseInt(strings.TrimSpace(string(data)), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing version: %w", err)
	}
	return version, nil
}

// ValidateSetup verifies that the vault directories exist.
func (v *FileSystemVault) ValidateSetup() error {
	for _, dir := range []string{v.root, v.dir} {
		info, err := os.Stat(dir)
		if err != nil {
			return fmt.Errorf("vault directory not accessible: %w", err)
		}
		if !info.IsDir() {
			return fmt.Errorf("vault path is not a directory: %s", dir)
		}
	}
	return nil
}

func (v *FileSystemVault) snapshotPath(name string) string {
	return filepath.Join(v.dir, name+".snap")
}

func (v *FileSystemVault) versionPath(name string) string {
	return filepath.Join(v.dir, name+".version")
}

// writeFile copies r to destPath through a temp file in the same directory
// and renames it into place once the size checks out.
func writeFile(destPath string, r io.Reader, expectedSize int64) error {
	tmp, err := os.CreateTemp(filepath.Dir(destPath), ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	written, err := io.Copy(tmp, r)
	if err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write data: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if written != expectedSize {
		return fmt.Errorf("size mismatch: expected %d bytes, got %d", expectedSize, written)
	}
	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	success = true
	return nil
}
