package study

import "encoding/json"

// Persistence keys. Every collection and setting is stored under its own key.
const (
	KeyEvents               = "calendar-events"
	KeyFiles                = "user-files"
	KeyFolders              = "user-folders"
	KeyGrades               = "student-grades"
	KeyChecklists           = "exam-checklists"
	KeyNotificationSettings = "notification-settings"
	KeyTheme                = "ui-theme"
)

// Store is a synchronous, string-keyed blob store.
// A Put is atomic for its own key; there is no transaction across keys.
type Store interface {
	// Get returns the value stored under key. ok is false when the key is absent.
	Get(key string) (value []byte, ok bool, err error)

	// Put replaces the value stored under key.
	Put(key string, value []byte) error
}

// Updater is implemented by stores that can read, change and write one key
// as a single atomic step.
type Updater interface {
	// Update calls fn with the value stored under key and stores what fn
	// returns. When fn fails nothing is written and its error is returned.
	Update(key string, fn func(value []byte, ok bool) ([]byte, error)) error
}

// Read decodes the JSON value stored under key.
// It never fails: an absent key, a storage error or an undecodable value
// all yield def. Errors are logged.
func Read[T any](store Store, logger Logger, key string, def T) T {
	data, ok, err := store.Get(key)
	if err != nil {
		logger.Warn("reading stored value failed, using default", "key", key, "error", err)
		return def
	}
	if !ok {
		return def
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		logger.Warn("decoding stored value failed, using default", "key", key, "error", err)
		return def
	}
	return v
}

// Write encodes value as JSON and stores it under key.
// Failures are logged and swallowed so the caller's in-memory value stays
// authoritative for the rest of the session. It reports whether the value
// reached the store.
func Write[T any](store Store, logger Logger, key string, value T) bool {
	data, err := json.Marshal(value)
	if err != nil {
		logger.Error("encoding value failed, not persisted", "key", key, "error", err)
		return false
	}
	if err := store.Put(key, data); err != nil {
		logger.Error("persisting value failed", "key", key, "error", err)
		return false
	}
	return true
}
