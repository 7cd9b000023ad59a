package database

import (
	"context"
	"testing"
	"time"

	"github.com/utcatalog/coursecrawl/internal/model"
)

// openTestDB opens a CrawlDB in a temporary directory.
func openTestDB(t *testing.T) *CrawlDB {
	t.Helper()

	cdb, err := Open(t.TempDir(), DefaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	t.Cleanup(func() {
		if err := cdb.Close(); err != nil {
			t.Errorf("failed to close database: %v", err)
		}
	})
	return cdb
}

// testOutcome builds an outcome with two course records.
func testOutcome(runID string, startedAt time.Time) *model.Outcome {
	return &model.Outcome{
		RunID:         runID,
		QueryID:       "q-math",
		TotalExpected: 3,
		FailedPages:   0,
		FailedDetails: 1,
		StartedAt:     startedAt,
		FinishedAt:    startedAt.Add(time.Minute),
		Details: []model.Detail{
			{
				Item: model.Item{
					TimetableCode: "30001",
					CommonCode:    model.CommonCode("FEN-CO2123L1"),
					Title:         "線形代数",
					Lecturer:      "山田太郎",
					Semesters:     []model.Semester{model.SemesterS1},
					Slots:         []model.TimeSlot{{Weekday: model.Monday, Period: 3}},
				},
				Credits: 2.0,
				Faculty: model.FacultyEngineering,
			},
			{
				Item: model.Item{
					TimetableCode: "30002",
					CommonCode:    model.CommonCode("FEN-CO2124L1"),
					Title:         "微分積分",
				},
				Credits: 2.0,
				Faculty: model.FacultyEngineering,
			},
		},
	}
}

// TestOpen tests database opening behavior.
func TestOpen(t *testing.T) {
	t.Parallel()

	t.Run("creates the database by default", func(t *testing.T) {
		t.Parallel()

		cdb := openTestDB(t)
		if cdb == nil {
			t.Fatal("expected a database handle")
		}
	})

	t.Run("refuses a missing database when creation is off", func(t *testing.T) {
		t.Parallel()

		opts := Options{CreateIfNotExists: false, EnableWAL: true}
		if _, err := Open(t.TempDir(), opts); err == nil {
			t.Error("expected an error for a missing database")
		}
	})
}

// TestSaveOutcome tests outcome persistence and retrieval.
func TestSaveOutcome(t *testing.T) {
	t.Parallel()

	t.Run("round-trips a run and its courses", func(t *testing.T) {
		t.Parallel()

		cdb := openTestDB(t)
		ctx := context.Background()
		outcome := testOutcome("run-1", time.Date(2023, 4, 1, 9, 0, 0, 0, time.UTC))

		if err := cdb.SaveOutcome(ctx, outcome); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		runs, err := cdb.Runs(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(runs) != 1 {
			t.Fatalf("expected 1 run, got %d", len(runs))
		}
		run := runs[0]
		if run.RunID != "run-1" || run.QueryID != "q-math" {
			t.Errorf("unexpected run identity: %+v", run)
		}
		if run.TotalExpected != 3 || run.FailedDetails != 1 {
			t.Errorf("unexpected run counters: %+v", run)
		}
		if run.CourseCount != 2 {
			t.Errorf("expected 2 courses, got %d", run.CourseCount)
		}
		if !run.StartedAt.Equal(outcome.StartedAt) {
			t.Errorf("expected start %v, got %v", outcome.StartedAt, run.StartedAt)
		}

		courses, err := cdb.CoursesByRun(ctx, "run-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(courses) != 2 {
			t.Fatalf("expected 2 courses, got %d", len(courses))
		}
		if courses[0].TimetableCode != "30001" || courses[0].Title != "線形代数" {
			t.Errorf("unexpected first course: %+v", courses[0])
		}
		if len(courses[0].Slots) != 1 || courses[0].Slots[0].Weekday != model.Monday {
			t.Errorf("expected slots to survive the round trip, got %+v", courses[0].Slots)
		}
	})

	t.Run("duplicate run identifiers are rejected", func(t *testing.T) {
		t.Parallel()

		cdb := openTestDB(t)
		ctx := context.Background()
		outcome := testOutcome("run-1", time.Now().UTC())

		if err := cdb.SaveOutcome(ctx, outcome); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := cdb.SaveOutcome(ctx, outcome); err == nil {
			t.Error("expected an error on a duplicate run ID")
		}
	})

	t.Run("runs are listed most recent first", func(t *testing.T) {
		t.Parallel()

		cdb := openTestDB(t)
		ctx := context.Background()
		base := time.Date(2023, 4, 1, 9, 0, 0, 0, time.UTC)

		if err := cdb.SaveOutcome(ctx, testOutcome("run-old", base)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := cdb.SaveOutcome(ctx, testOutcome("run-new", base.Add(time.Hour))); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		runs, err := cdb.Runs(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(runs) != 2 || runs[0].RunID != "run-new" || runs[1].RunID != "run-old" {
			t.Errorf("unexpected run order: %+v", runs)
		}
	})
}

// TestLatestRunForQuery tests per-query run lookup.
func TestLatestRunForQuery(t *testing.T) {
	t.Parallel()

	cdb := openTestDB(t)
	ctx := context.Background()
	base := time.Date(2023, 4, 1, 9, 0, 0, 0, time.UTC)

	if err := cdb.SaveOutcome(ctx, testOutcome("run-old", base)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := cdb.SaveOutcome(ctx, testOutcome("run-new", base.Add(time.Hour))); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	run, err := cdb.LatestRunForQuery(ctx, "q-math")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if run == nil || run.RunID != "run-new" {
		t.Errorf("expected run-new, got %+v", run)
	}

	missing, err := cdb.LatestRunForQuery(ctx, "q-unknown")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if missing != nil {
		t.Errorf("expected nil for an uncrawled query, got %+v", missing)
	}
}

// TestCourseByCode tests cross-run course lookup.
func TestCourseByCode(t *testing.T) {
	t.Parallel()

	cdb := openTestDB(t)
	ctx := context.Background()
	base := time.Date(2023, 4, 1, 9, 0, 0, 0, time.UTC)

	older := testOutcome("run-old", base)
	older.Details[0].Title = "線形代数(旧)"
	if err := cdb.SaveOutcome(ctx, older); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := cdb.SaveOutcome(ctx, testOutcome("run-new", base.Add(time.Hour))); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	detail, err := cdb.CourseByCode(ctx, "30001")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if detail == nil || detail.Title != "線形代数" {
		t.Errorf("expected the newest record, got %+v", detail)
	}

	missing, err := cdb.CourseByCode(ctx, "99999")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if missing != nil {
		t.Errorf("expected nil for an unknown code, got %+v", missing)
	}
}
