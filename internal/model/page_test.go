package model

import (
	"testing"
	"time"
)

// TestSearchPage tests page predicates.
func TestSearchPage(t *testing.T) {
	t.Parallel()

	t.Run("empty page", func(t *testing.T) {
		t.Parallel()

		var p SearchPage
		if !p.IsEmpty() {
			t.Error("zero page should be empty")
		}
	})

	t.Run("last page detection", func(t *testing.T) {
		t.Parallel()

		p := SearchPage{PageNumber: 3, TotalPages: 3, TotalCount: 25}
		if !p.IsLast() {
			t.Error("page 3 of 3 should be last")
		}
		p.PageNumber = 2
		if p.IsLast() {
			t.Error("page 2 of 3 should not be last")
		}
	})
}

// TestOutcome tests completeness accounting.
func TestOutcome(t *testing.T) {
	t.Parallel()

	start := time.Now()
	o := Outcome{
		Details:       make([]Detail, 23),
		TotalExpected: 25,
		FailedDetails: 2,
		StartedAt:     start,
		FinishedAt:    start.Add(time.Minute),
	}
	if o.Complete() {
		t.Error("outcome with dropped details must not be complete")
	}
	if o.Duration() != time.Minute {
		t.Errorf("expected 1m duration, got %v", o.Duration())
	}

	o.Details = make([]Detail, 25)
	o.FailedDetails = 0
	if !o.Complete() {
		t.Error("outcome with all records must be complete")
	}
}
