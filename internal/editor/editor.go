// Package editor opens journal entries in the user's interactive editor.
package editor

import (
	"context"
	"fmt"
	"os"
	"os/exec"
)

// DefaultEditor is used when $EDITOR is unset.
const DefaultEditor = "nvim"

// Resolve returns the editor binary to invoke: $EDITOR when set,
// otherwise DefaultEditor.
func Resolve() string {
	if v := os.Getenv("EDITOR"); v != "" {
		return v
	}
	return DefaultEditor
}

// Open runs the resolved editor on path, attached to the caller's
// terminal, and blocks until the editor exits.
func Open(ctx context.Context, path string) error {
	bin := Resolve()
	cmd := exec.CommandContext(ctx, bin, path)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("editor: run %s: %w", bin, err)
	}
	return nil
}
