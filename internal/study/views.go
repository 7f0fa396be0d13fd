package study

import (
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	"golang.org/x/text/cases"
)

// EventsForDate returns the events falling on the calendar day of day,
// compared in day's location.
func EventsForDate(events []Event, day time.Time) []Event {
	var out []Event
	for _, e := range events {
		if sameDay(e.Date, day) {
			out = append(out, e)
		}
	}
	return out
}

// DayHasEvent reports whether any event falls on the calendar day of day.
func DayHasEvent(events []Event, day time.Time) bool {
	return slices.ContainsFunc(events, func(e Event) bool { return sameDay(e.Date, day) })
}

func sameDay(t, day time.Time) bool {
	y1, m1, d1 := t.In(day.Location()).Date()
	y2, m2, d2 := day.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// EventsByCategory keeps events of the given category. CategoryAll and
// the empty filter keep everything.
func EventsByCategory(events []Event, filter Category) []Event {
	if filter == CategoryAll || filter == "" {
		return slices.Clone(events)
	}
	var out []Event
	for _, e := range events {
		if e.Category == filter {
			out = append(out, e)
		}
	}
	return out
}

// SortByDate returns a copy of items stably sorted by ascending date.
func SortByDate[T any](items []T, dateOf func(T) time.Time) []T {
	out := slices.Clone(items)
	slices.SortStableFunc(out, func(a, b T) int {
		return dateOf(a).Compare(dateOf(b))
	})
	return out
}

// SortEventsByDate returns a copy of events sorted by ascending date.
func SortEventsByDate(events []Event) []Event {
	return SortByDate(events, func(e Event) time.Time { return e.Date })
}

// SortChecklistsByDate returns a copy of lists sorted by ascending target
// date. Lists without a date come first.
func SortChecklistsByDate(lists []Checklist) []Checklist {
	return SortByDate(lists, func(c Checklist) time.Time { return c.Date })
}

// FilesInFolder keeps the files owned by folderID whose name contains
// query, ignoring case. An empty query matches every file.
func FilesInFolder(files []File, folderID, query string) []File {
	query = strings.ToLower(query)
	var out []File
	for _, f := range files {
		if f.FolderID != folderID {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(f.Name), query) {
			continue
		}
		out = append(out, f)
	}
	return out
}

// FileKind selects a tab of the file browser.
type FileKind string

const (
	FileKindAll       FileKind = "all"
	FileKindImages    FileKind = "images"
	FileKindDocuments FileKind = "documents"
)

// FilesByKind keeps the files matching kind: images by the image/ media
// type prefix, documents by the PDF media type.
func FilesByKind(files []File, kind FileKind) []File {
	var match func(File) bool
	switch kind {
	case FileKindImages:
		match = func(f File) bool { return strings.HasPrefix(f.MediaType, "image") }
	case FileKindDocuments:
		match = func(f File) bool { return f.MediaType == "application/pdf" }
	default:
		return slices.Clone(files)
	}

	var out []File
	for _, f := range files {
		if match(f) {
			out = append(out, f)
		}
	}
	return out
}

// FolderPath returns the folders from the root down to id.
// The walk is bounded by the number of folders; a cycle or a parent that
// does not exist yields ErrFolderCycle.
func FolderPath(folders []Folder, id string) ([]Folder, error) {
	byID := make(map[string]Folder, len(folders))
	for _, f := range folders {
		byID[f.ID] = f
	}

	current, ok := byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFolder, id)
	}

	path := []Folder{current}
	for current.ParentID != "" {
		if len(path) > len(folders) {
			return nil, fmt.Errorf("%w: walking from %s", ErrFolderCycle, id)
		}
		parent, ok := byID[current.ParentID]
		if !ok {
			return nil, fmt.Errorf("%w: %s has missing parent %s", ErrFolderCycle, current.ID, current.ParentID)
		}
		path = append(path, parent)
		current = parent
	}

	slices.Reverse(path)
	return path, nil
}

// SubjectKey normalizes a subject for grouping: surrounding and repeated
// inner whitespace is collapsed and case is folded.
func SubjectKey(subject string) string {
	return cases.Fold().String(strings.Join(strings.Fields(subject), " "))
}

// SubjectSummary aggregates the grades of one subject.
type SubjectSummary struct {
	Subject     string
	Key         string
	Average     float64
	Count       int
	TotalWeight float64
}

// GradesBySubject groups grades by normalized subject in order of first
// appearance. Each group is displayed under the first spelling seen.
func GradesBySubject(grades []Grade) []SubjectSummary {
	var (
		order  []string
		groups = map[string][]Grade{}
		names  = map[string]string{}
	)
	for _, g := range grades {
		key := SubjectKey(g.Subject)
		if _, ok := groups[key]; !ok {
			order = append(order, key)
			names[key] = g.Subject
		}
		groups[key] = append(groups[key], g)
	}

	out := make([]SubjectSummary, 0, len(order))
	for _, key := range order {
		gs := groups[key]
		var weight float64
		for _, g := range gs {
			weight += g.Weight
		}
		out = append(out, SubjectSummary{
			Subject:     names[key],
			Key:         key,
			Average:     weightedAverage(gs),
			Count:       len(gs),
			TotalWeight: weight,
		})
	}
	return out
}

// SubjectAverage is the weighted mean of the grades for subject, rounded
// to two decimals. It is 0 when the subject has no grades or no weight.
func SubjectAverage(grades []Grade, subject string) float64 {
	key := SubjectKey(subject)
	var matching []Grade
	for _, g := range grades {
		if SubjectKey(g.Subject) == key {
			matching = append(matching, g)
		}
	}
	return weightedAverage(matching)
}

func weightedAverage(grades []Grade) float64 {
	var sum, weight float64
	for _, g := range grades {
		sum += g.Score * g.Weight
		weight += g.Weight
	}
	if weight == 0 {
		return 0
	}
	return math.Round(sum/weight*100) / 100
}

// ChecklistProgress is the percentage of checked items, rounded to the
// nearest integer. An empty list is 0.
func ChecklistProgress(items []ChecklistItem) int {
	if len(items) == 0 {
		return 0
	}
	checked := 0
	for _, it := range items {
		if it.Checked {
			checked++
		}
	}
	return int(math.Round(float64(checked) / float64(len(items)) * 100))
}

// ChecklistFilter selects a checklist tab.
type ChecklistFilter string

const (
	ChecklistAll       ChecklistFilter = "all"
	ChecklistUpcoming  ChecklistFilter = "upcoming"
	ChecklistCompleted ChecklistFilter = "completed"
)

// FilterChecklists keeps the lists for the given tab. Upcoming lists have a
// target date no earlier than today; completed lists have items and all of
// them are checked.
func FilterChecklists(lists []Checklist, filter ChecklistFilter, now time.Time) []Checklist {
	var match func(Checklist) bool
	switch filter {
	case ChecklistUpcoming:
		today := startOfDay(now)
		match = func(c Checklist) bool { return !c.Date.IsZero() && !c.Date.Before(today) }
	case ChecklistCompleted:
		match = func(c Checklist) bool { return len(c.Items) > 0 && allChecked(c.Items) }
	default:
		return slices.Clone(lists)
	}

	var out []Checklist
	for _, c := range lists {
		if match(c) {
			out = append(out, c)
		}
	}
	return out
}

func allChecked(items []ChecklistItem) bool {
	for _, it := range items {
		if !it.Checked {
			return false
		}
	}
	return true
}

// FormatFileSize renders a byte count as B, KB or MB.
func FormatFileSize(size int64) string {
	switch {
	case size < 1024:
		return fmt.Sprintf("%d B", size)
	case size < 1024*1024:
		return fmt.Sprintf("%.1f KB", float64(size)/1024)
	default:
		return fmt.Sprintf("%.1f MB", float64(size)/(1024*1024))
	}
}
