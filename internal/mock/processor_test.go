package mock

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"study-go/internal/study"
)

func TestProcessor_ExtractText(t *testing.T) {
	p := NewProcessor(0, 0)

	text, err := p.ExtractText(context.Background(), []byte("png"))
	if err != nil {
		t.Fatalf("ExtractText() error = %v", err)
	}
	if text != RecognizedText {
		t.Errorf("ExtractText() = %q, want the canned text", text)
	}
}

func TestProcessor_Convert(t *testing.T) {
	p := NewProcessor(0, 0)

	tests := []struct {
		kind      study.ConversionKind
		mediaType string
		prefix    []byte
	}{
		{kind: study.ConvertImageToPDF, mediaType: "application/pdf", prefix: []byte("%PDF-")},
		{kind: study.ConvertSlidesToNotes, mediaType: "text/plain", prefix: []byte("Study notes")},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			doc, err := p.Convert(context.Background(), tt.kind, [][]byte{[]byte("a"), []byte("b")})
			if err != nil {
				t.Fatalf("Convert() error = %v", err)
			}
			if doc.MediaType != tt.mediaType {
				t.Errorf("MediaType = %q, want %q", doc.MediaType, tt.mediaType)
			}
			if !bytes.HasPrefix(doc.Payload, tt.prefix) {
				t.Errorf("Payload starts %q, want %q", doc.Payload[:min(len(doc.Payload), 16)], tt.prefix)
			}
		})
	}

	if _, err := p.Convert(context.Background(), "audio-to-text", nil); err == nil {
		t.Error("Convert() expected error for unknown kind")
	}
}

func TestProcessor_PDFMentionsImageCount(t *testing.T) {
	doc, err := NewProcessor(0, 0).Convert(context.Background(), study.ConvertImageToPDF, [][]byte{{1}, {2}, {3}})
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(doc.Payload, []byte("Converted from 3 image(s)")) {
		t.Errorf("PDF does not mention image count: %s", doc.Payload)
	}
	if !bytes.HasSuffix(bytes.TrimSpace(doc.Payload), []byte("%%EOF")) {
		t.Errorf("PDF missing trailer: %s", doc.Payload)
	}
}

func TestProcessor_Delay(t *testing.T) {
	p := NewProcessor(20*time.Millisecond, 20*time.Millisecond)

	start := time.Now()
	if _, err := p.ExtractText(context.Background(), []byte("x")); err != nil {
		t.Fatal(err)
	}
	if elapsed := time.Since(start); elapsed < 20*time.Millisecond {
		t.Errorf("ExtractText() returned after %v, want at least 20ms", elapsed)
	}
}

func TestProcessor_Cancelled(t *testing.T) {
	p := NewProcessor(time.Hour, time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := p.ExtractText(ctx, []byte("x")); !errors.Is(err, context.Canceled) {
		t.Errorf("ExtractText() error = %v, want context.Canceled", err)
	}
	if _, err := p.Convert(ctx, study.ConvertSlidesToNotes, [][]byte{{1}}); !errors.Is(err, context.Canceled) {
		t.Errorf("Convert() error = %v, want context.Canceled", err)
	}
}
