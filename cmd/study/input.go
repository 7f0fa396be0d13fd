package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"golang.org/x/term"
)

// readPassword is swapped out in tests to avoid touching the terminal.
var readPassword = term.ReadPassword

// dateLayouts are tried in order; all are read in local time.
var dateLayouts = []string{
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	"2006-01-02",
}

// parseDate reads a date or date-time given on the command line.
// "today" and "tomorrow" are accepted relative to now.
func parseDate(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "today":
		return startOfDay(now), nil
	case "tomorrow":
		return startOfDay(now).AddDate(0, 0, 1), nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, now.Location()); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD or \"YYYY-MM-DD HH:MM\")", s)
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// promptPassphrase reads a passphrase without echo. With confirm set it is
// asked for twice and both entries must match.
func promptPassphrase(w io.Writer, confirm bool) (string, error) {
	pw, err := readSecret(w, "Passphrase: ")
	if err != nil {
		return "", err
	}
	if len(pw) == 0 {
		return "", errors.New("empty passphrase")
	}
	if confirm {
		again, err := readSecret(w, "Confirm passphrase: ")
		if err != nil {
			return "", err
		}
		if pw != again {
			return "", errors.New("passphrases do not match")
		}
	}
	return pw, nil
}

func readSecret(w io.Writer, prompt string) (string, error) {
	if _, err := fmt.Fprint(w, prompt); err != nil {
		return "", err
	}
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return "", fmt.Errorf("reading passphrase: %w", err)
	}
	return string(pw), nil
}
