// Package testutil provides shared test helpers for setting up journals.
package testutil

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/starford/dagaz/internal/journal"
)

// QuietLogger returns a logger that only reports errors, keeping test
// output readable.
func QuietLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// TestJournal creates a temporary journal directory with a Service.
func TestJournal(t *testing.T) (string, *journal.Service) {
	t.Helper()
	dir := t.TempDir()
	return dir, journal.NewService(dir, QuietLogger())
}

// WriteEntry writes an entry file under root, creating parent
// directories as needed, and returns its absolute path.
func WriteEntry(t *testing.T, root, name, content string) string {
	t.Helper()
	path := filepath.Join(root, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}
