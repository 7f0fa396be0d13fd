package vault

import (
	"bytes"
	"fmt"
	"io"
	"sync"

	"study-go/internal/study"
)

// MemoryVault keeps snapshots in memory. It is safe for concurrent use and
// mostly useful in tests.
type MemoryVault struct {
	name     string
	mu       sync.RWMutex
	data     map[string][]byte
	versions map[string]int64
}

var _ study.Vault = (*MemoryVault)(nil)

// NewMemoryVault creates an empty in-memory vault with the given name.
func NewMemoryVault(name string) *MemoryVault {
	return &MemoryVault{
		name:     name,
		data:     make(map[string][]byte),
		versions: make(map[string]int64),
	}
}

// PutSnapshot stores the named snapshot, replacing any previous one.
func (m *MemoryVault) PutSnapshot(name string, r io.Reader, size int64, version int64) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("failed to read snapshot: %w", err)
	}
	if int64(len(data)) != size {
		return fmt.Errorf("size mismatch: expected %d bytes, got %d", size, len(data))
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[name] = data
	m.versions[name] = version
	return nil
}

func (m *MemoryVault) GetSnapshot(name string, w io.Writer) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.data[name]
	if !ok {
		return fmt.Errorf("snapshot %q not found in vault %s", name, m.name)
	}
	if _, err := io.Copy(w, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	return nil
}

// SnapshotVersion returns 0 when the snapshot was never stored.
func (m *MemoryVault) SnapshotVersion(name string) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.versions[name], nil
}

func (m *MemoryVault) ValidateSetup() error {
	return nil
}
