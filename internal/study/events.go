package study

import "time"

// AddEvent validates draft and stores it as a new event.
func (s *StudyService) AddEvent(draft EventDraft) (Event, error) {
	e, err := draft.Build()
	if err != nil {
		return Event{}, err
	}
	e, _ = s.events.Add(e)
	s.logger.Info("event added", "id", e.ID, "title", e.Title, "category", string(e.Category))
	return e, nil
}

// UpdateEvent applies patch to the event with the given id. found is false
// when no such event exists, which is not an error.
func (s *StudyService) UpdateEvent(id string, patch EventPatch) (Event, bool, error) {
	var (
		updated Event
		found   bool
	)
	_, err := s.events.Update(id, func(cur Event) (Event, error) {
		found = true
		next, err := patch.Apply(cur)
		updated = next
		return next, err
	})
	if err != nil {
		return Event{}, found, err
	}
	if found {
		s.logger.Info("event updated", "id", id)
	}
	return updated, found, nil
}

// DeleteEvent removes the event with the given id and reports whether it existed.
func (s *StudyService) DeleteEvent(id string) bool {
	_, found := s.events.Find(id)
	s.events.Remove(id)
	if found {
		s.logger.Info("event deleted", "id", id)
	}
	return found
}

// ListEvents returns all events sorted by date.
func (s *StudyService) ListEvents() []Event {
	return SortEventsByDate(s.events.List())
}

// EventsOn returns the events on the calendar day of day, sorted by time.
func (s *StudyService) EventsOn(day time.Time) []Event {
	return SortEventsByDate(EventsForDate(s.events.List(), day))
}

// EventsIn returns the events in category, sorted by date.
func (s *StudyService) EventsIn(category Category) []Event {
	return SortEventsByDate(EventsByCategory(s.events.List(), category))
}
