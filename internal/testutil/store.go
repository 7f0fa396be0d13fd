package testutil

import (
	"errors"
	"maps"
	"sync"
	"testing"

	"study-go/internal/database"
	"study-go/internal/study"
)

// ErrStoreUnavailable is returned by a MapStore that has been told to fail.
var ErrStoreUnavailable = errors.New("store unavailable")

// MapStore is an in-memory study.Store whose reads and writes can be made
// to fail.
type MapStore struct {
	mu       sync.Mutex
	data     map[string][]byte
	FailGet  bool
	FailPut  bool
	PutCount int
}

var _ study.Store = (*MapStore)(nil)

func NewMapStore() *MapStore {
	return &MapStore{data: map[string][]byte{}}
}

func (s *MapStore) Get(key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailGet {
		return nil, false, ErrStoreUnavailable
	}
	v, ok := s.data[key]
	return v, ok, nil
}

func (s *MapStore) Put(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailPut {
		return ErrStoreUnavailable
	}
	s.PutCount++
	s.data[key] = append([]byte(nil), value...)
	return nil
}

// SetFailPut toggles write failures.
func (s *MapStore) SetFailPut(fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.FailPut = fail
}

// SetFailGet toggles read failures.
func (s *MapStore) SetFailGet(fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.FailGet = fail
}

// Raw returns the bytes stored under key.
func (s *MapStore) Raw(key string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.data[key]
	return v, ok
}

// SetRaw stores value under key without any encoding.
func (s *MapStore) SetRaw(key string, value []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
}

// Snapshot returns a copy of the stored entries.
func (s *MapStore) Snapshot() map[string][]byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return maps.Clone(s.data)
}

// UpdatingStore is a MapStore that also implements study.Updater, so
// collections take their atomic read-modify-write path.
type UpdatingStore struct {
	*MapStore
}

var _ study.Updater = (*UpdatingStore)(nil)

func NewUpdatingStore() *UpdatingStore {
	return &UpdatingStore{MapStore: NewMapStore()}
}

func (s *UpdatingStore) Update(key string, fn func(value []byte, ok bool) ([]byte, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailGet {
		return ErrStoreUnavailable
	}
	v, ok := s.data[key]
	next, err := fn(v, ok)
	if err != nil {
		return err
	}
	if s.FailPut {
		return ErrStoreUnavailable
	}
	s.PutCount++
	s.data[key] = append([]byte(nil), next...)
	return nil
}

// NewTestStore creates an in-memory SQLite store with migrations applied.
// The store is closed when the test completes.
func NewTestStore(t *testing.T) *database.SQLiteStore {
	t.Helper()

	store, err := database.NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}

	t.Cleanup(func() {
		store.Close()
	})

	return store
}
