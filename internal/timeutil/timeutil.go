// Package timeutil formats and parses journal publication timestamps.
package timeutil

import (
	"fmt"
	"time"
)

// Layout is the pubdate format written into new entries, e.g.
// "2025-08-23 14:07:31.250 +0200".
const Layout = "2006-01-02 15:04:05.000 -0700"

// Now returns the current local time.
func Now() time.Time {
	return time.Now()
}

// Format renders t in the pubdate layout.
func Format(t time.Time) string {
	return t.Format(Layout)
}

// Parse reads a pubdate string back into a time.
func Parse(s string) (time.Time, error) {
	t, err := time.Parse(Layout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("timeutil: parse %q: %w", s, err)
	}
	return t, nil
}
