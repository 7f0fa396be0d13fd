package study

import (
	"errors"
	"math"
	"mime"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	maxTitleLength       = 200
	maxDescriptionLength = 2000
	maxNameLength        = 255
	maxScore             = 10.0
)

// EventDraft is an event under construction. Category defaults to reminder.
type EventDraft struct {
	Date        *time.Time
	Title       string
	Description string
	Category    Category
}

// Build validates the draft and converts it into an Event without an ID.
func (d EventDraft) Build() (Event, error) {
	d.Title = strings.TrimSpace(d.Title)
	d.Description = strings.TrimSpace(d.Description)
	if d.Category == "" {
		d.Category = CategoryReminder
	}

	err := validation.ValidateStruct(&d,
		validation.Field(&d.Date, validation.Required),
		validation.Field(&d.Title,
			validation.Required,
			validation.Length(1, maxTitleLength),
		),
		validation.Field(&d.Description, validation.Length(0, maxDescriptionLength)),
		validation.Field(&d.Category, validation.Required, validation.In(anyCategories()...)),
	)
	if err != nil {
		return Event{}, invalid("event", err)
	}

	return Event{
		Date:        *d.Date,
		Title:       d.Title,
		Description: d.Description,
		Category:    d.Category,
	}, nil
}

// EventPatch holds the fields to change on an existing event.
// Nil fields are left untouched. The notified flag is never reset.
type EventPatch struct {
	Date        *time.Time
	Title       *string
	Description *string
	Category    *Category
}

// Apply returns e with the patch applied, or a validation error.
func (p EventPatch) Apply(e Event) (Event, error) {
	d := EventDraft{
		Date:        &e.Date,
		Title:       e.Title,
		Description: e.Description,
		Category:    e.Category,
	}
	if p.Date != nil {
		d.Date = p.Date
	}
	if p.Title != nil {
		d.Title = *p.Title
	}
	if p.Description != nil {
		d.Description = *p.Description
	}
	if p.Category != nil {
		d.Category = *p.Category
	}

	next, err := d.Build()
	if err != nil {
		return e, err
	}
	next.ID = e.ID
	next.Notified = e.Notified
	return next, nil
}

func anyCategories() []any {
	cats := Categories()
	out := make([]any, len(cats))
	for i, c := range cats {
		out[i] = c
	}
	return out
}

// GradeDraft is a grade under construction. Weight defaults to 1 and Date
// to the time of submission.
type GradeDraft struct {
	Subject string
	Score   *float64
	Weight  *float64
	Date    *time.Time
}

// Build validates the draft and converts it into a Grade without an ID.
func (d GradeDraft) Build(now time.Time) (Grade, error) {
	d.Subject = strings.Join(strings.Fields(d.Subject), " ")

	err := validation.ValidateStruct(&d,
		validation.Field(&d.Subject,
			validation.Required,
			validation.Length(1, maxNameLength),
		),
		validation.Field(&d.Score,
			validation.NotNil,
			validation.By(finite),
			validation.Min(0.0),
			validation.Max(maxScore),
		),
		validation.Field(&d.Weight, validation.By(finite), validation.By(positive)),
	)
	if err != nil {
		return Grade{}, invalid("grade", err)
	}

	g := Grade{
		Subject: d.Subject,
		Score:   *d.Score,
		Weight:  1,
		Date:    now,
	}
	if d.Weight != nil {
		g.Weight = *d.Weight
	}
	if d.Date != nil && !d.Date.IsZero() {
		g.Date = *d.Date
	}
	return g, nil
}

// finite rejects NaN and infinities, which cannot be stored as JSON.
// A nil pointer passes.
func finite(value any) error {
	v, isNil := validation.Indirect(value)
	if isNil {
		return nil
	}
	f, err := validation.ToFloat(v)
	if err != nil {
		return err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return errors.New("must be a finite number")
	}
	return nil
}

// positive rejects numbers that are zero or negative. A nil pointer passes.
func positive(value any) error {
	v, isNil := validation.Indirect(value)
	if isNil {
		return nil
	}
	f, err := validation.ToFloat(v)
	if err != nil {
		return err
	}
	if !(f > 0) {
		return errors.New("must be greater than 0")
	}
	return nil
}

// FolderDraft is a folder under construction. An empty ParentID means root.
type FolderDraft struct {
	Name     string
	ParentID string
}

// Build validates the draft and converts it into a Folder without an ID.
func (d FolderDraft) Build() (Folder, error) {
	d.Name = strings.TrimSpace(d.Name)
	if d.ParentID == "" {
		d.ParentID = RootFolderID
	}

	err := validation.ValidateStruct(&d,
		validation.Field(&d.Name,
			validation.Required,
			validation.Length(1, maxNameLength),
		),
	)
	if err != nil {
		return Folder{}, invalid("folder", err)
	}
	return Folder{Name: d.Name, ParentID: d.ParentID}, nil
}

// ChecklistDraft is a checklist under construction. The date is optional.
type ChecklistDraft struct {
	Title string
	Date  *time.Time
}

// Build validates the draft and converts it into an empty Checklist without an ID.
func (d ChecklistDraft) Build() (Checklist, error) {
	d.Title = strings.TrimSpace(d.Title)

	err := validation.ValidateStruct(&d,
		validation.Field(&d.Title,
			validation.Required,
			validation.Length(1, maxTitleLength),
		),
	)
	if err != nil {
		return Checklist{}, invalid("checklist", err)
	}

	c := Checklist{Title: d.Title, Items: []ChecklistItem{}}
	if d.Date != nil {
		c.Date = *d.Date
	}
	return c, nil
}

func buildChecklistItem(content string) (ChecklistItem, error) {
	content = strings.TrimSpace(content)
	err := validation.Validate(content,
		validation.Required,
		validation.Length(1, maxTitleLength),
	)
	if err != nil {
		return ChecklistItem{}, invalid("checklist item", validation.Errors{"content": err})
	}
	return ChecklistItem{Content: content}, nil
}

// FileUpload is a file handed over by the picker. MediaType is detected
// from the payload when empty; LastModified defaults to the upload time.
type FileUpload struct {
	Name         string
	MediaType    string
	LastModified time.Time
	FolderID     string
	Payload      []byte
}

// Build validates the upload and converts it into a File without an ID.
// The payload is retained as a data URL.
func (u FileUpload) Build(now time.Time) (File, error) {
	u.Name = strings.TrimSpace(u.Name)
	if u.FolderID == "" {
		u.FolderID = RootFolderID
	}

	err := validation.ValidateStruct(&u,
		validation.Field(&u.Name,
			validation.Required,
			validation.Length(1, maxNameLength),
		),
	)
	if err != nil {
		return File{}, invalid("file", err)
	}

	mediaType := u.MediaType
	if mediaType == "" {
		mediaType = mimetype.Detect(u.Payload).String()
	}
	if base, _, err := mime.ParseMediaType(mediaType); err == nil {
		mediaType = base
	} else {
		return File{}, invalid("file", validation.Errors{"MediaType": err})
	}

	modified := u.LastModified
	if modified.IsZero() {
		modified = now
	}

	return File{
		Name:         u.Name,
		MediaType:    mediaType,
		Size:         int64(len(u.Payload)),
		LastModified: modified,
		FolderID:     u.FolderID,
		Content:      EncodeDataURL(mediaType, u.Payload),
	}, nil
}
