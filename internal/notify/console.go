// Package notify presents reminders to the user.
package notify

import (
	"fmt"
	"io"
	"sync"

	"study-go/internal/study"
)

// ConsoleNotifier prints each notification as a two-line block.
type ConsoleNotifier struct {
	mu sync.Mutex
	w  io.Writer
}

var _ study.Notifier = (*ConsoleNotifier)(nil)

func NewConsoleNotifier(w io.Writer) *ConsoleNotifier {
	return &ConsoleNotifier{w: w}
}

// Notify writes n. Write errors are ignored; delivery is best effort.
func (c *ConsoleNotifier) Notify(n study.Notification) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.w, "🔔 %s\n   %s\n", n.Title, n.Body)
}
