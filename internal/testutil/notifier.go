package testutil

import (
	"context"
	"sync"

	"study-go/internal/study"
)

// RecordingNotifier keeps every notification it receives.
type RecordingNotifier struct {
	mu   sync.Mutex
	sent []study.Notification
}

func NewRecordingNotifier() *RecordingNotifier {
	return &RecordingNotifier{}
}

func (n *RecordingNotifier) Notify(note study.Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, note)
}

// Sent returns a copy of the notifications received so far.
func (n *RecordingNotifier) Sent() []study.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]study.Notification(nil), n.sent...)
}

// StubProcessor returns fixed results without delay.
type StubProcessor struct {
	Text     string
	Document study.ConvertedDocument
	Err      error
}

func (p *StubProcessor) ExtractText(ctx context.Context, image []byte) (string, error) {
	if p.Err != nil {
		return "", p.Err
	}
	return p.Text, nil
}

func (p *StubProcessor) Convert(ctx context.Context, kind study.ConversionKind, inputs [][]byte) (study.ConvertedDocument, error) {
	if p.Err != nil {
		return study.ConvertedDocument{}, p.Err
	}
	return p.Document, nil
}
