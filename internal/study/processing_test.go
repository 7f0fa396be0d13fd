package study_test

import (
	"context"
	"errors"
	"testing"

	"study-go/internal/study"
)

func TestParseConversionKind(t *testing.T) {
	for _, s := range []string{"image-to-pdf", "slides-to-notes"} {
		if k, err := study.ParseConversionKind(s); err != nil || string(k) != s {
			t.Errorf("ParseConversionKind(%q) = %q, %v", s, k, err)
		}
	}
	if _, err := study.ParseConversionKind("docx"); err == nil {
		t.Error("ParseConversionKind(docx) expected error")
	}
}

func TestStudyService_RecognizeText(t *testing.T) {
	f := newFixture(t)
	f.proc.Text = "Chapter 1\nLimits"
	ctx := context.Background()

	if _, err := f.svc.RecognizeText(ctx, nil); !errors.Is(err, study.ErrNoPayload) {
		t.Errorf("RecognizeText(nil) error = %v, want ErrNoPayload", err)
	}

	text, err := f.svc.RecognizeText(ctx, []byte("\x89PNG"))
	if err != nil {
		t.Fatalf("RecognizeText() error = %v", err)
	}
	if text != f.proc.Text {
		t.Errorf("RecognizeText() = %q", text)
	}

	saved, err := f.svc.SaveRecognizedText(text, "")
	if err != nil {
		t.Fatalf("SaveRecognizedText() error = %v", err)
	}
	if saved.Name != study.RecognizedTextName || saved.MediaType != "text/plain" || saved.FolderID != study.RootFolderID {
		t.Errorf("saved file = %+v", saved)
	}

	boom := errors.New("engine crashed")
	f.proc.Err = boom
	if _, err := f.svc.RecognizeText(ctx, []byte("x")); !errors.Is(err, boom) {
		t.Errorf("RecognizeText() error = %v, want wrapped %v", err, boom)
	}
}

func TestStudyService_Convert(t *testing.T) {
	ctx := context.Background()
	stamp := "1705314600000"

	tests := []struct {
		name     string
		kind     study.ConversionKind
		doc      study.ConvertedDocument
		wantName string
	}{
		{
			name:     "image to pdf",
			kind:     study.ConvertImageToPDF,
			doc:      study.ConvertedDocument{MediaType: "application/pdf", Payload: []byte("%PDF-1.4\n")},
			wantName: "converted_" + stamp + ".pdf",
		},
		{
			name:     "slides to notes",
			kind:     study.ConvertSlidesToNotes,
			doc:      study.ConvertedDocument{MediaType: "text/plain", Payload: []byte("notes")},
			wantName: "notes_" + stamp + ".txt",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.proc.Document = tt.doc

			got, err := f.svc.Convert(ctx, tt.kind, [][]byte{[]byte("a"), []byte("b")}, "")
			if err != nil {
				t.Fatalf("Convert() error = %v", err)
			}
			if got.Name != tt.wantName || got.MediaType != tt.doc.MediaType {
				t.Errorf("Convert() = %q (%s), want %q (%s)", got.Name, got.MediaType, tt.wantName, tt.doc.MediaType)
			}
			if files := f.svc.ListFiles("", "", study.FileKindAll); len(files) != 1 {
				t.Errorf("root holds %d files, want 1", len(files))
			}
		})
	}

	t.Run("empty input", func(t *testing.T) {
		f := newFixture(t)
		for _, inputs := range [][][]byte{nil, {[]byte("a"), nil}} {
			if _, err := f.svc.Convert(ctx, study.ConvertImageToPDF, inputs, ""); !errors.Is(err, study.ErrNoPayload) {
				t.Errorf("Convert(%d inputs) error = %v, want ErrNoPayload", len(inputs), err)
			}
		}
	})

	t.Run("unknown folder", func(t *testing.T) {
		f := newFixture(t)
		f.proc.Document = study.ConvertedDocument{MediaType: "text/plain", Payload: []byte("n")}
		if _, err := f.svc.Convert(ctx, study.ConvertSlidesToNotes, [][]byte{[]byte("a")}, "missing"); !errors.Is(err, study.ErrUnknownFolder) {
			t.Errorf("Convert() error = %v, want ErrUnknownFolder", err)
		}
	})
}
