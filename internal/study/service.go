package study

import (
	"errors"
	"sync"
)

// StudyService coordinates the collections and settings behind every
// command. All state lives in the Store; the service keeps the committed
// copy in memory.
type StudyService struct {
	store     Store
	notifier  Notifier
	processor Processor
	logger    Logger
	clock     Clock
	idgen     IDGenerator

	events     *Collection[Event]
	files      *Collection[File]
	folders    *Collection[Folder]
	grades     *Collection[Grade]
	checklists *Collection[Checklist]

	// treeMu guards checks that span files and folders.
	treeMu sync.Mutex
	scanMu sync.Mutex

	mu       sync.Mutex
	settings NotificationSettings
	theme    Theme
	// failed holds the setting keys whose last write did not reach the store.
	failed map[string]bool
}

// NewStudyService loads every collection and setting from store.
// The root folder is recreated if it is missing.
func NewStudyService(store Store, notifier Notifier, processor Processor, logger Logger, clock Clock, idgen IDGenerator) *StudyService {
	s := &StudyService{
		store:      store,
		notifier:   notifier,
		processor:  processor,
		logger:     logger,
		clock:      clock,
		idgen:      idgen,
		events:     NewCollection[Event](store, KeyEvents, nil, logger, idgen),
		files:      NewCollection[File](store, KeyFiles, nil, logger, idgen),
		folders:    NewCollection(store, KeyFolders, []Folder{RootFolder()}, logger, idgen),
		grades:     NewCollection[Grade](store, KeyGrades, nil, logger, idgen),
		checklists: NewCollection[Checklist](store, KeyChecklists, nil, logger, idgen),
		failed:     map[string]bool{},
	}

	if _, ok := s.folders.Find(RootFolderID); !ok {
		logger.Warn("root folder missing, recreating")
		s.folders.Put(RootFolder())
	}

	s.settings = s.loadSettings(DefaultNotificationSettings())
	s.theme = s.loadTheme(ThemeDark)
	return s
}

// UnsavedKeys returns the persistence keys whose latest change exists only
// in memory because the write to the store failed.
func (s *StudyService) UnsavedKeys() []string {
	var keys []string
	for _, c := range []interface {
		Key() string
		Unsaved() bool
	}{s.events, s.files, s.folders, s.grades, s.checklists} {
		if c.Unsaved() {
			keys = append(keys, c.Key())
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, key := range []string{KeyNotificationSettings, KeyTheme} {
		if s.failed[key] {
			keys = append(keys, key)
		}
	}
	return keys
}

// errSkip aborts a collection update without writing.
var errSkip = errors.New("skip")

// ScanNotifications fires the reminders that are due and marks their events
// notified. Settings and events are re-read from the store first so marks
// are applied to the latest committed state. It returns the events that fired.
func (s *StudyService) ScanNotifications() []Event {
	s.scanMu.Lock()
	defer s.scanMu.Unlock()

	s.mu.Lock()
	if !s.failed[KeyNotificationSettings] {
		s.settings = s.loadSettings(s.settings)
	}
	settings := s.settings
	s.mu.Unlock()

	if !settings.Enabled {
		return nil
	}
	lead := settings.LeadTime
	now := s.clock.Now()

	var fired []Event
	for _, e := range s.events.Reload() {
		if !Due(e, lead, now) {
			continue
		}
		var sent Event
		s.events.Update(e.ID, func(cur Event) (Event, error) {
			if !Due(cur, lead, now) {
				return cur, errSkip
			}
			s.notifier.Notify(reminderFor(cur, lead))
			cur.Notified = true
			sent = cur
			return cur, nil
		})
		if !sent.Notified {
			continue
		}
		fired = append(fired, sent)
		s.logger.Info("reminder sent", "event", sent.ID, "title", sent.Title, "lead", string(lead))
	}
	return fired
}
