package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// runPresets executes the presets command with the given flags.
func runPresets(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var buf bytes.Buffer
	cmd := NewPresetsCmd()
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

// TestPresetsCmd tests preset listing.
func TestPresetsCmd(t *testing.T) {
	t.Parallel()

	t.Run("lists presets with filters", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), ".coursecrawl")
		content := `
presets:
  math:
    keyword: 数学
    institution: ug
    semesters: [S1, S2]
  empty: {}
`
		if err := os.WriteFile(path, []byte(content), 0600); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		out, err := runPresets(t, "-c", path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(out, "math") || !strings.Contains(out, "keyword:     数学") {
			t.Errorf("expected the math preset described, got %q", out)
		}
		if !strings.Contains(out, "semesters:   S1, S2") {
			t.Errorf("expected the semester filter, got %q", out)
		}
		if !strings.Contains(out, "(no filters)") {
			t.Errorf("expected the empty preset marked, got %q", out)
		}
	})

	t.Run("empty presets file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), ".coursecrawl")
		if err := os.WriteFile(path, []byte("presets: {}\n"), 0600); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		out, err := runPresets(t, "-c", path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(out, "No presets defined") {
			t.Errorf("expected an empty listing, got %q", out)
		}
	})

	t.Run("explicit missing file", func(t *testing.T) {
		t.Parallel()

		if _, err := runPresets(t, "-c", filepath.Join(t.TempDir(), "absent")); err == nil {
			t.Error("expected an error for a missing presets file")
		}
	})
}
