package study

import (
	"context"
	"time"
)

// Scanner runs one notification scan.
type Scanner interface {
	ScanNotifications() []Event
}

// Watcher polls a Scanner on a fixed interval.
type Watcher struct {
	scanner  Scanner
	interval time.Duration
	logger   Logger
}

func NewWatcher(scanner Scanner, interval time.Duration, logger Logger) *Watcher {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Watcher{scanner: scanner, interval: interval, logger: logger}
}

// Run scans once immediately and then on every tick until ctx is done.
func (w *Watcher) Run(ctx context.Context) error {
	w.scan()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("notification watcher stopped")
			return nil
		case <-ticker.C:
			w.scan()
		}
	}
}

func (w *Watcher) scan() {
	fired := w.scanner.ScanNotifications()
	if len(fired) > 0 {
		w.logger.Info("reminders sent", "count", len(fired))
	}
}
