package study_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"study-go/internal/study"
)

type countingScanner struct {
	calls atomic.Int32
	first chan struct{}
}

func (s *countingScanner) ScanNotifications() []study.Event {
	if s.calls.Add(1) == 1 {
		close(s.first)
	}
	return nil
}

func TestWatcher_Run(t *testing.T) {
	scanner := &countingScanner{first: make(chan struct{})}
	w := study.NewWatcher(scanner, time.Millisecond, study.NewNopLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	select {
	case <-scanner.first:
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not scan")
	}

	deadline := time.Now().Add(5 * time.Second)
	for scanner.calls.Load() < 3 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	if n := scanner.calls.Load(); n < 3 {
		t.Errorf("scanned %d times, want at least 3", n)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run() did not return after cancel")
	}
}

func TestWatcher_ScansBeforeFirstTick(t *testing.T) {
	scanner := &countingScanner{first: make(chan struct{})}
	w := study.NewWatcher(scanner, time.Hour, study.NewNopLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	select {
	case <-scanner.first:
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not scan on start")
	}
	cancel()
	<-done

	if n := scanner.calls.Load(); n != 1 {
		t.Errorf("scanned %d times, want 1", n)
	}
}
