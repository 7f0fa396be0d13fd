package study_test

import (
	"testing"
	"time"

	"study-go/internal/study"
)

func TestLeadTime(t *testing.T) {
	tests := []struct {
		lead     study.LeadTime
		duration time.Duration
		label    string
	}{
		{study.LeadTime30Min, 30 * time.Minute, "30 minutes"},
		{study.LeadTime1Hour, time.Hour, "1 hour"},
		{study.LeadTime1Day, 24 * time.Hour, "1 day"},
		{study.LeadTime1Week, 7 * 24 * time.Hour, "1 week"},
		{"bogus", 24 * time.Hour, "1 day"},
	}

	for _, tt := range tests {
		t.Run(string(tt.lead), func(t *testing.T) {
			if got := tt.lead.Duration(); got != tt.duration {
				t.Errorf("Duration() = %v, want %v", got, tt.duration)
			}
			if got := tt.lead.Label(); got != tt.label {
				t.Errorf("Label() = %q, want %q", got, tt.label)
			}
		})
	}
}

func TestParseLeadTime(t *testing.T) {
	for _, l := range study.LeadTimes() {
		got, err := study.ParseLeadTime(string(l))
		if err != nil || got != l {
			t.Errorf("ParseLeadTime(%q) = %q, %v", l, got, err)
		}
	}
	for _, s := range []string{"", "2days", "1HOUR"} {
		if _, err := study.ParseLeadTime(s); err == nil {
			t.Errorf("ParseLeadTime(%q) expected error", s)
		}
	}
}

func TestDue(t *testing.T) {
	event := study.Event{ID: "e1", Title: "Exam", Date: testNow.Add(24 * time.Hour)}
	notified := event
	notified.Notified = true

	tests := []struct {
		name  string
		event study.Event
		lead  study.LeadTime
		now   time.Time
		want  bool
	}{
		{name: "before window", event: event, lead: study.LeadTime1Hour, now: testNow, want: false},
		{name: "window opens", event: event, lead: study.LeadTime1Day, now: testNow, want: true},
		{name: "inside window", event: event, lead: study.LeadTime1Week, now: testNow, want: true},
		{name: "one minute before start", event: event, lead: study.LeadTime30Min, now: event.Date.Add(-time.Minute), want: true},
		{name: "at start", event: event, lead: study.LeadTime1Day, now: event.Date, want: false},
		{name: "after start", event: event, lead: study.LeadTime1Day, now: event.Date.Add(time.Hour), want: false},
		{name: "already notified", event: notified, lead: study.LeadTime1Day, now: testNow, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := study.Due(tt.event, tt.lead, tt.now); got != tt.want {
				t.Errorf("Due() = %v, want %v", got, tt.want)
			}
		})
	}
}
