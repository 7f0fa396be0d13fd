package study

import (
	"fmt"
	"time"
)

// LeadTime is how long before an event its reminder fires.
type LeadTime string

const (
	LeadTime30Min LeadTime = "30min"
	LeadTime1Hour LeadTime = "1hour"
	LeadTime1Day  LeadTime = "1day"
	LeadTime1Week LeadTime = "1week"
)

// LeadTimes returns the supported lead times, shortest first.
func LeadTimes() []LeadTime {
	return []LeadTime{LeadTime30Min, LeadTime1Hour, LeadTime1Day, LeadTime1Week}
}

// ParseLeadTime validates s as a LeadTime.
func ParseLeadTime(s string) (LeadTime, error) {
	l := LeadTime(s)
	if !l.Valid() {
		return "", fmt.Errorf("unknown lead time %q (want 30min, 1hour, 1day or 1week)", s)
	}
	return l, nil
}

func (l LeadTime) Valid() bool {
	switch l {
	case LeadTime30Min, LeadTime1Hour, LeadTime1Day, LeadTime1Week:
		return true
	}
	return false
}

// Duration returns the offset. Unknown values count as one day.
func (l LeadTime) Duration() time.Duration {
	switch l {
	case LeadTime30Min:
		return 30 * time.Minute
	case LeadTime1Hour:
		return time.Hour
	case LeadTime1Week:
		return 7 * 24 * time.Hour
	default:
		return 24 * time.Hour
	}
}

// Label is the human readable form used in reminders.
func (l LeadTime) Label() string {
	switch l {
	case LeadTime30Min:
		return "30 minutes"
	case LeadTime1Hour:
		return "1 hour"
	case LeadTime1Week:
		return "1 week"
	default:
		return "1 day"
	}
}

// NotificationSettings is the installation-wide reminder configuration.
type NotificationSettings struct {
	Enabled  bool     `json:"enabled"`
	LeadTime LeadTime `json:"reminderTime"`
}

// DefaultNotificationSettings has reminders off with a one day lead.
func DefaultNotificationSettings() NotificationSettings {
	return NotificationSettings{Enabled: false, LeadTime: LeadTime1Day}
}

// Notification is a user-visible alert.
type Notification struct {
	Title    string
	Body     string
	Duration time.Duration
}

// Notifier presents notifications. Delivery is fire-and-forget.
type Notifier interface {
	Notify(n Notification)
}

const notificationDuration = 5 * time.Second

// Due reports whether the reminder for e should fire at now: the event is
// still pending, the lead window has opened and the event has not started.
func Due(e Event, lead LeadTime, now time.Time) bool {
	if e.Notified {
		return false
	}
	trigger := e.Date.Add(-lead.Duration())
	return !now.Before(trigger) && now.Before(e.Date)
}

func reminderFor(e Event, lead LeadTime) Notification {
	return Notification{
		Title:    "Reminder: " + e.Title,
		Body:     "Event in " + lead.Label(),
		Duration: notificationDuration,
	}
}
