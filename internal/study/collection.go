package study

import (
	"encoding/json"
	"errors"
	"slices"
	"sync"
)

// Entity is a record owned by a Collection.
type Entity[T any] interface {
	EntityID() string
	WithID(id string) T
}

// errUnchanged aborts a mutation that found nothing to change.
var errUnchanged = errors.New("unchanged")

// Collection is an ordered, persisted set of records stored under one key.
// Every mutation re-reads the stored value, applies the change to it and
// writes the full collection back, so changes made by other sessions are
// never overwritten with a stale copy.
type Collection[T Entity[T]] struct {
	mu     sync.Mutex
	key    string
	store  Store
	logger Logger
	idgen  IDGenerator
	items  []T

	// unsaved is set while the last write failed. The in-memory state is
	// then authoritative and is not replaced by what the store holds.
	unsaved bool
}

// NewCollection loads the collection stored under key, falling back to seed.
func NewCollection[T Entity[T]](store Store, key string, seed []T, logger Logger, idgen IDGenerator) *Collection[T] {
	c := &Collection[T]{
		key:    key,
		store:  store,
		logger: logger,
		idgen:  idgen,
	}
	c.items = Read(store, logger, key, slices.Clone(seed))
	if c.items == nil {
		c.items = []T{}
	}
	return c
}

// Key returns the persistence key.
func (c *Collection[T]) Key() string { return c.key }

// Unsaved reports whether the in-memory state has changes the store lacks.
func (c *Collection[T]) Unsaved() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.unsaved
}

// List returns a copy of the records in insertion order.
func (c *Collection[T]) List() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.items)
}

// Find returns the record with the given id.
func (c *Collection[T]) Find(id string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := indexOf(c.items, id)
	if i < 0 {
		var zero T
		return zero, false
	}
	return c.items[i], true
}

// Add appends rec under a freshly generated identifier and returns the
// stored record along with the new state.
func (c *Collection[T]) Add(rec T) (T, []T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var added T
	c.mutate(func(items []T) ([]T, error) {
		id := c.idgen.New()
		for id == "" || indexOf(items, id) >= 0 {
			c.logger.Debug("regenerating colliding identifier", "key", c.key, "id", id)
			id = c.idgen.New()
		}
		added = rec.WithID(id)
		return append(items, added), nil
	})
	return added, slices.Clone(c.items)
}

// Put inserts rec keeping its identifier, or replaces the record that
// already carries it.
func (c *Collection[T]) Put(rec T) []T {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.mutate(func(items []T) ([]T, error) {
		if i := indexOf(items, rec.EntityID()); i >= 0 {
			items[i] = rec
			return items, nil
		}
		return append(items, rec), nil
	})
	return slices.Clone(c.items)
}

// Update replaces the record with the given id by patch(record).
// An absent id is a no-op. When patch fails nothing is written and the
// error is returned.
func (c *Collection[T]) Update(id string, patch func(T) (T, error)) ([]T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	err := c.mutate(func(items []T) ([]T, error) {
		i := indexOf(items, id)
		if i < 0 {
			return nil, errUnchanged
		}
		next, err := patch(items[i])
		if err != nil {
			return nil, err
		}
		items[i] = next.WithID(id)
		return items, nil
	})
	return slices.Clone(c.items), err
}

// Remove deletes the record with the given id. An absent id is a no-op.
func (c *Collection[T]) Remove(id string) []T {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.mutate(func(items []T) ([]T, error) {
		i := indexOf(items, id)
		if i < 0 {
			return nil, errUnchanged
		}
		return slices.Delete(items, i, i+1), nil
	})
	return slices.Clone(c.items)
}

// Reload replaces the in-memory state with what the store holds.
// When the stored value is unreadable, or unsaved changes are pending,
// the current state is kept.
func (c *Collection[T]) Reload() []T {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.refresh()
	return slices.Clone(c.items)
}

// mutate applies change to the latest committed state and persists the
// result. errUnchanged from change is swallowed without a write; any other
// error from change is returned and nothing is written. Storage failures
// are logged and leave the changed state in memory. c.mu must be held.
func (c *Collection[T]) mutate(change func(items []T) ([]T, error)) error {
	if u, ok := c.store.(Updater); ok && !c.unsaved {
		return c.mutateAtomic(u, change)
	}

	c.refresh()
	next, err := change(slices.Clone(c.items))
	if err != nil {
		if errors.Is(err, errUnchanged) {
			return nil
		}
		return err
	}
	c.items = next
	c.unsaved = !Write(c.store, c.logger, c.key, c.items)
	return nil
}

// mutateAtomic runs the read, change and write inside one store update.
func (c *Collection[T]) mutateAtomic(u Updater, change func(items []T) ([]T, error)) error {
	var (
		current   = c.items
		next      []T
		applied   bool
		changeErr error
	)
	err := u.Update(c.key, func(value []byte, ok bool) ([]byte, error) {
		if ok {
			current = c.decode(value)
		}
		n, err := change(slices.Clone(current))
		if err != nil {
			changeErr = err
			return nil, err
		}
		applied, next = true, n
		return json.Marshal(next)
	})

	switch {
	case changeErr != nil:
		c.items = current
		if errors.Is(changeErr, errUnchanged) {
			return nil
		}
		return changeErr
	case err != nil:
		c.logger.Error("persisting value failed", "key", c.key, "error", err)
		if !applied {
			n, cerr := change(slices.Clone(c.items))
			if cerr != nil {
				if errors.Is(cerr, errUnchanged) {
					return nil
				}
				return cerr
			}
			next = n
		}
		c.items = next
		c.unsaved = true
		return nil
	}
	c.items = next
	return nil
}

// refresh replaces the in-memory state with the stored one unless unsaved
// changes are pending. c.mu must be held.
func (c *Collection[T]) refresh() {
	if c.unsaved {
		return
	}
	c.items = Read(c.store, c.logger, c.key, c.items)
	if c.items == nil {
		c.items = []T{}
	}
}

// decode parses a stored value, keeping the current state when it is corrupt.
func (c *Collection[T]) decode(value []byte) []T {
	var stored []T
	if err := json.Unmarshal(value, &stored); err != nil {
		c.logger.Warn("decoding stored value failed, keeping current state", "key", c.key, "error", err)
		return c.items
	}
	if stored == nil {
		stored = []T{}
	}
	return stored
}

func indexOf[T Entity[T]](items []T, id string) int {
	return slices.IndexFunc(items, func(item T) bool { return item.EntityID() == id })
}
