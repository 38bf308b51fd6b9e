// Package testutil provides testing utilities.
package testutil

import (
	"os"
	"testing"

	"github.com/atotto/clipboard"
)

// SkipClipboardTests skips the test unless RUN_CLIPBOARD_TESTS is set and
// the platform has a clipboard. Headless CI usually has neither.
//
// Run them with: RUN_CLIPBOARD_TESTS=1 go test ./...
func SkipClipboardTests(t *testing.T) {
	t.Helper()
	if os.Getenv("RUN_CLIPBOARD_TESTS") == "" {
		t.Skip("Skipping clipboard test (set RUN_CLIPBOARD_TESTS=1 to run)")
	}
	if clipboard.Unsupported {
		t.Skip("Skipping clipboard test (no clipboard utility found)")
	}
}
