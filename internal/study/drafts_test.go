package study_test

import (
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"study-go/internal/study"
)

func ptr[T any](v T) *T { return &v }

var testNow = time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)

func TestEventDraft_Build(t *testing.T) {
	date := testNow.Add(48 * time.Hour)

	tests := []struct {
		name      string
		draft     study.EventDraft
		wantErr   string
		wantCat   study.Category
		wantTitle string
	}{
		{
			name:      "defaults category to reminder",
			draft:     study.EventDraft{Date: &date, Title: "  Read chapter 3 "},
			wantCat:   study.CategoryReminder,
			wantTitle: "Read chapter 3",
		},
		{
			name:      "keeps given category",
			draft:     study.EventDraft{Date: &date, Title: "Final", Category: study.CategoryExam},
			wantCat:   study.CategoryExam,
			wantTitle: "Final",
		},
		{
			name:    "missing date",
			draft:   study.EventDraft{Title: "Final"},
			wantErr: "Date",
		},
		{
			name:    "blank title",
			draft:   study.EventDraft{Date: &date, Title: "   "},
			wantErr: "Title",
		},
		{
			name:    "too long title",
			draft:   study.EventDraft{Date: &date, Title: strings.Repeat("x", 201)},
			wantErr: "Title",
		},
		{
			name:    "unknown category",
			draft:   study.EventDraft{Date: &date, Title: "Party", Category: "party"},
			wantErr: "Category",
		},
		{
			name:    "filter value is not a category",
			draft:   study.EventDraft{Date: &date, Title: "Party", Category: study.CategoryAll},
			wantErr: "Category",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := tt.draft.Build()
			if tt.wantErr != "" {
				var verr *study.ValidationError
				if !errors.As(err, &verr) {
					t.Fatalf("Build() error = %v, want ValidationError", err)
				}
				if !strings.Contains(err.Error(), tt.wantErr) {
					t.Errorf("Build() error = %q, want mention of %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Build() error = %v", err)
			}
			if e.Category != tt.wantCat || e.Title != tt.wantTitle || !e.Date.Equal(date) {
				t.Errorf("Build() = %+v", e)
			}
			if e.ID != "" || e.Notified {
				t.Errorf("Build() set ID or Notified: %+v", e)
			}
		})
	}
}

func TestEventPatch_Apply(t *testing.T) {
	orig := study.Event{
		ID:       "e1",
		Date:     testNow,
		Title:    "Exam",
		Category: study.CategoryExam,
		Notified: true,
	}

	t.Run("changes only the given fields and keeps notified", func(t *testing.T) {
		got, err := study.EventPatch{Title: ptr("Final exam")}.Apply(orig)
		if err != nil {
			t.Fatalf("Apply() error = %v", err)
		}
		if got.Title != "Final exam" || got.ID != "e1" || !got.Notified || got.Category != study.CategoryExam {
			t.Errorf("Apply() = %+v", got)
		}
	})

	t.Run("moving the date does not re-arm the reminder", func(t *testing.T) {
		later := testNow.Add(7 * 24 * time.Hour)
		got, err := study.EventPatch{Date: &later}.Apply(orig)
		if err != nil {
			t.Fatalf("Apply() error = %v", err)
		}
		if !got.Notified {
			t.Error("Notified reset by date change")
		}
	})

	t.Run("invalid patch returns the original", func(t *testing.T) {
		got, err := study.EventPatch{Title: ptr("")}.Apply(orig)
		if err == nil {
			t.Fatal("Apply() expected error for empty title")
		}
		if got.Title != "Exam" {
			t.Errorf("Apply() = %+v, want original", got)
		}
	})
}

func TestGradeDraft_Build(t *testing.T) {
	tests := []struct {
		name       string
		draft      study.GradeDraft
		wantErr    string
		wantWeight float64
	}{
		{name: "weight defaults to one", draft: study.GradeDraft{Subject: "Math", Score: ptr(8.0)}, wantWeight: 1},
		{name: "explicit weight", draft: study.GradeDraft{Subject: "Math", Score: ptr(8.0), Weight: ptr(2.5)}, wantWeight: 2.5},
		{name: "score bounds inclusive", draft: study.GradeDraft{Subject: "Math", Score: ptr(10.0)}, wantWeight: 1},
		{name: "zero score is valid", draft: study.GradeDraft{Subject: "Math", Score: ptr(0.0)}, wantWeight: 1},
		{name: "missing score", draft: study.GradeDraft{Subject: "Math"}, wantErr: "Score"},
		{name: "score above ten", draft: study.GradeDraft{Subject: "Math", Score: ptr(10.5)}, wantErr: "Score"},
		{name: "negative score", draft: study.GradeDraft{Subject: "Math", Score: ptr(-1.0)}, wantErr: "Score"},
		{name: "zero weight", draft: study.GradeDraft{Subject: "Math", Score: ptr(5.0), Weight: ptr(0.0)}, wantErr: "Weight"},
		{name: "negative weight", draft: study.GradeDraft{Subject: "Math", Score: ptr(5.0), Weight: ptr(-2.0)}, wantErr: "Weight"},
		{name: "blank subject", draft: study.GradeDraft{Subject: "  ", Score: ptr(5.0)}, wantErr: "Subject"},
		{name: "infinite weight", draft: study.GradeDraft{Subject: "Math", Score: ptr(5.0), Weight: ptr(math.Inf(1))}, wantErr: "Weight"},
		{name: "NaN weight", draft: study.GradeDraft{Subject: "Math", Score: ptr(5.0), Weight: ptr(math.NaN())}, wantErr: "Weight"},
		{name: "infinite score", draft: study.GradeDraft{Subject: "Math", Score: ptr(math.Inf(1))}, wantErr: "Score"},
		{name: "NaN score", draft: study.GradeDraft{Subject: "Math", Score: ptr(math.NaN())}, wantErr: "Score"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := tt.draft.Build(testNow)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("Build() error = %v, want mention of %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Build() error = %v", err)
			}
			if g.Weight != tt.wantWeight {
				t.Errorf("Weight = %v, want %v", g.Weight, tt.wantWeight)
			}
			if !g.Date.Equal(testNow) {
				t.Errorf("Date = %v, want %v", g.Date, testNow)
			}
		})
	}

	t.Run("subject whitespace is collapsed", func(t *testing.T) {
		g, err := study.GradeDraft{Subject: "  Linear   Algebra ", Score: ptr(7.0)}.Build(testNow)
		if err != nil {
			t.Fatalf("Build() error = %v", err)
		}
		if g.Subject != "Linear Algebra" {
			t.Errorf("Subject = %q", g.Subject)
		}
	})
}

func TestFolderAndChecklistDrafts(t *testing.T) {
	f, err := study.FolderDraft{Name: " Physics "}.Build()
	if err != nil {
		t.Fatalf("FolderDraft.Build() error = %v", err)
	}
	if f.Name != "Physics" || f.ParentID != study.RootFolderID {
		t.Errorf("FolderDraft.Build() = %+v", f)
	}
	if _, err := (study.FolderDraft{Name: ""}).Build(); err == nil {
		t.Error("FolderDraft.Build() expected error for empty name")
	}

	c, err := study.ChecklistDraft{Title: "Calculus final"}.Build()
	if err != nil {
		t.Fatalf("ChecklistDraft.Build() error = %v", err)
	}
	if !c.Date.IsZero() || c.Items == nil || len(c.Items) != 0 {
		t.Errorf("ChecklistDraft.Build() = %+v", c)
	}
	if _, err := (study.ChecklistDraft{Title: " "}).Build(); err == nil {
		t.Error("ChecklistDraft.Build() expected error for blank title")
	}
}

func TestFileUpload_Build(t *testing.T) {
	tests := []struct {
		name     string
		upload   study.FileUpload
		wantType string
	}{
		{
			name:     "detects png",
			upload:   study.FileUpload{Name: "board.png", Payload: []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")},
			wantType: "image/png",
		},
		{
			name:     "detects pdf",
			upload:   study.FileUpload{Name: "slides.pdf", Payload: []byte("%PDF-1.4\n%\xe2\xe3\xcf\xd3\n")},
			wantType: "application/pdf",
		},
		{
			name:     "strips parameters from detected text",
			upload:   study.FileUpload{Name: "notes.txt", Payload: []byte("plain notes\n")},
			wantType: "text/plain",
		},
		{
			name:     "keeps the given type",
			upload:   study.FileUpload{Name: "data.bin", MediaType: "application/octet-stream", Payload: []byte("plain")},
			wantType: "application/octet-stream",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := tt.upload.Build(testNow)
			if err != nil {
				t.Fatalf("Build() error = %v", err)
			}
			if f.MediaType != tt.wantType {
				t.Errorf("MediaType = %q, want %q", f.MediaType, tt.wantType)
			}
			if f.Size != int64(len(tt.upload.Payload)) {
				t.Errorf("Size = %d, want %d", f.Size, len(tt.upload.Payload))
			}
			if f.FolderID != study.RootFolderID {
				t.Errorf("FolderID = %q, want root", f.FolderID)
			}
			if !f.LastModified.Equal(testNow) {
				t.Errorf("LastModified = %v, want %v", f.LastModified, testNow)
			}
			if !strings.HasPrefix(f.Content, "data:"+tt.wantType+";base64,") {
				t.Errorf("Content = %q", f.Content)
			}
		})
	}

	t.Run("rejects a missing name", func(t *testing.T) {
		if _, err := (study.FileUpload{Payload: []byte("x")}).Build(testNow); err == nil {
			t.Error("Build() expected error for empty name")
		}
	})
}

func TestDataURL(t *testing.T) {
	payload := []byte{0x00, 0xff, 'h', 'i'}
	url := study.EncodeDataURL("image/png", payload)

	mediaType, got, err := study.DecodeDataURL(url)
	if err != nil {
		t.Fatalf("DecodeDataURL() error = %v", err)
	}
	if mediaType != "image/png" || string(got) != string(payload) {
		t.Errorf("DecodeDataURL() = %q, %v", mediaType, got)
	}

	for _, bad := range []string{"", "image/png;base64,AAAA", "data:image/png,AAAA", "data:image/png;base64", "data:x;base64,!!"} {
		if _, _, err := study.DecodeDataURL(bad); err == nil {
			t.Errorf("DecodeDataURL(%q) expected error", bad)
		}
	}
}
