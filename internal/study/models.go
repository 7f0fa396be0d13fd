package study

import "time"

// Category classifies a calendar event.
type Category string

const (
	CategoryExam       Category = "exam"
	CategoryAssignment Category = "assignment"
	CategoryReminder   Category = "reminder"
	CategoryStudy      Category = "study"

	// CategoryAll is a filter value that matches every category.
	CategoryAll Category = "all"
)

// Categories returns the event categories in display order.
func Categories() []Category {
	return []Category{CategoryExam, CategoryAssignment, CategoryReminder, CategoryStudy}
}

// Event is a dated calendar entry. Notified is set once by the
// notification scan and never cleared.
type Event struct {
	ID          string    `json:"id"`
	Date        time.Time `json:"date"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    Category  `json:"category"`
	Notified    bool      `json:"notified,omitempty"`
}

func (e Event) EntityID() string { return e.ID }

func (e Event) WithID(id string) Event {
	e.ID = id
	return e
}

// RootFolderID identifies the sentinel folder every tree hangs from.
const RootFolderID = "root"

// Folder is a node in the file tree. ParentID is empty only for the root.
type Folder struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ParentID string `json:"parentId,omitempty"`
}

func (f Folder) EntityID() string { return f.ID }

func (f Folder) WithID(id string) Folder {
	f.ID = id
	return f
}

// RootFolder returns the sentinel root folder.
func RootFolder() Folder {
	return Folder{ID: RootFolderID, Name: "Root"}
}

// File is an uploaded document. Content holds the payload as a data URL
// so it can be handed back without touching anything but the store.
type File struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	MediaType    string    `json:"type"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"lastModified"`
	FolderID     string    `json:"folderId"`
	Content      string    `json:"content"`
	Starred      bool      `json:"starred,omitempty"`
}

func (f File) EntityID() string { return f.ID }

func (f File) WithID(id string) File {
	f.ID = id
	return f
}

// Grade is a single weighted score for a subject.
type Grade struct {
	ID      string    `json:"id"`
	Subject string    `json:"subject"`
	Score   float64   `json:"score"`
	Weight  float64   `json:"weight"`
	Date    time.Time `json:"date"`
}

func (g Grade) EntityID() string { return g.ID }

func (g Grade) WithID(id string) Grade {
	g.ID = id
	return g
}

// Checklist is a list of topics to review before a target date.
// A zero Date means no target date was set.
type Checklist struct {
	ID    string          `json:"id"`
	Title string          `json:"title"`
	Date  time.Time       `json:"date"`
	Items []ChecklistItem `json:"items"`
}

func (c Checklist) EntityID() string { return c.ID }

func (c Checklist) WithID(id string) Checklist {
	c.ID = id
	return c
}

type ChecklistItem struct {
	ID      string `json:"id"`
	Content string `json:"content"`
	Checked bool   `json:"checked"`
}

// Theme is the persisted UI preference.
type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)
