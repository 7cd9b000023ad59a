package main

import (
	"bytes"
	"strings"
	"testing"
)

// runLookup executes the lookup command with the given flags.
func runLookup(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var buf bytes.Buffer
	cmd := NewLookupCmd()
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

// TestLookupCmdOffline tests database-backed lookups.
func TestLookupCmdOffline(t *testing.T) {
	t.Parallel()

	t.Run("prints the stored record", func(t *testing.T) {
		t.Parallel()

		dir := seedDatabase(t, storedOutcome())
		out, err := runLookup(t, "--offline", "--db-dir", dir, "30001")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(out, "線形代数1") {
			t.Errorf("expected the stored title, got %q", out)
		}
		if !strings.HasPrefix(strings.TrimSpace(out), "{") {
			t.Errorf("expected JSON output, got %q", out)
		}
	})

	t.Run("unknown code", func(t *testing.T) {
		t.Parallel()

		dir := seedDatabase(t, storedOutcome())
		if _, err := runLookup(t, "--offline", "--db-dir", dir, "99999"); err == nil {
			t.Error("expected an error for an unknown code")
		}
	})

	t.Run("missing database", func(t *testing.T) {
		t.Parallel()

		if _, err := runLookup(t, "--offline", "--db-dir", t.TempDir(), "30001"); err == nil {
			t.Error("expected an error without a database")
		}
	})
}
