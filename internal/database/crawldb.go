package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/utcatalog/coursecrawl/internal/model"
)

// dbFileName is the SQLite file created inside the data directory.
const dbFileName = "coursecrawl.db"

// CrawlDB provides SQLite-based storage for crawl runs and the course
// records they fetched.
//
// Design decision: One database file holds every run rather than one file
// per run. This keeps run comparison a single query and makes backup a
// single file copy.
type CrawlDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures CrawlDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better concurrent performance.
	// This is recommended for most use cases.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a CrawlDB inside the given directory.
// If CreateIfNotExists is true, the directory and database file are created.
// If CreateIfNotExists is false and the database doesn't exist, an error is returned.
func Open(dbDir string, opts Options) (*CrawlDB, error) {
	dbPath := filepath.Join(dbDir, dbFileName)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s (use CreateIfNotExists option to create)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// modernc.org/sqlite connection strings: mode=rw prevents creating new
	// files, mode=rwc allows creation.
	var dsn string
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	} else {
		dsn = dbPath + "?mode=rw"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite supports only one writer; a single connection avoids
	// SQLITE_BUSY during the post-crawl bulk insert.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	cdb := &CrawlDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := cdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return cdb, nil
}

// Close closes the database connection.
func (cdb *CrawlDB) Close() error {
	return cdb.db.Close()
}

// createTables creates the database schema if it doesn't exist.
func (cdb *CrawlDB) createTables() error {
	schema := `
	-- Crawl runs store one row per executed crawl
	CREATE TABLE IF NOT EXISTS crawl_runs (
		run_id TEXT PRIMARY KEY,
		query_id TEXT NOT NULL,
		total_expected INTEGER NOT NULL,
		failed_pages INTEGER NOT NULL,
		failed_details INTEGER NOT NULL,
		started_at DATETIME NOT NULL,
		finished_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_query ON crawl_runs(query_id);
	CREATE INDEX IF NOT EXISTS idx_runs_started ON crawl_runs(started_at);

	-- Courses store the detail records fetched by a run. The full record
	-- is kept as JSON; the extracted columns exist for filtering.
	CREATE TABLE IF NOT EXISTS courses (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL,
		timetable_code TEXT NOT NULL,
		common_code TEXT NOT NULL,
		title TEXT NOT NULL,
		lecturer TEXT,
		faculty INTEGER,
		credits REAL,
		detail_json TEXT NOT NULL,
		UNIQUE(run_id, timetable_code),
		FOREIGN KEY(run_id) REFERENCES crawl_runs(run_id)
	);

	CREATE INDEX IF NOT EXISTS idx_courses_run ON courses(run_id);
	CREATE INDEX IF NOT EXISTS idx_courses_timetable ON courses(timetable_code);
	CREATE INDEX IF NOT EXISTS idx_courses_common ON courses(common_code);
	`

	_, err := cdb.db.ExecContext(context.Background(), schema)
	return err
}

// SaveOutcome persists one crawl outcome: its run row and every fetched
// course. The write is transactional; a failed save leaves no partial run.
// Re-saving a run's courses upserts on (run_id, timetable_code).
func (cdb *CrawlDB) SaveOutcome(ctx context.Context, outcome *model.Outcome) error {
	tx, err := cdb.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	runQuery := `
	INSERT INTO crawl_runs (run_id, query_id, total_expected, failed_pages, failed_details, started_at, finished_at)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	if _, err := tx.ExecContext(ctx, runQuery,
		outcome.RunID,
		outcome.QueryID,
		outcome.TotalExpected,
		outcome.FailedPages,
		outcome.FailedDetails,
		outcome.StartedAt.UTC().Format(time.RFC3339Nano),
		outcome.FinishedAt.UTC().Format(time.RFC3339Nano),
	); err != nil {
		return fmt.Errorf("failed to insert crawl run: %w", err)
	}

	courseQuery := `
	INSERT INTO courses (run_id, timetable_code, common_code, title, lecturer, faculty, credits, detail_json)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(run_id, timetable_code) DO UPDATE SET
		common_code = excluded.common_code,
		title = excluded.title,
		lecturer = excluded.lecturer,
		faculty = excluded.faculty,
		credits = excluded.credits,
		detail_json = excluded.detail_json
	`
	for i := range outcome.Details {
		detail := &outcome.Details[i]
		detailJSON, err := json.Marshal(detail)
		if err != nil {
			return fmt.Errorf("failed to serialize course %s: %w", detail.TimetableCode, err)
		}

		if _, err := tx.ExecContext(ctx, courseQuery,
			outcome.RunID,
			detail.TimetableCode,
			string(detail.CommonCode),
			detail.Title,
			detail.Lecturer,
			int(detail.Faculty),
			detail.Credits,
			string(detailJSON),
		); err != nil {
			return fmt.Errorf("failed to insert course %s: %w", detail.TimetableCode, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit outcome: %w", err)
	}
	return nil
}

// RunRecord is one stored crawl run, with its course count attached.
type RunRecord struct {
	// RunID identifies the run.
	RunID string

	// QueryID is the content-derived identifier of the crawled query.
	QueryID string

	// TotalExpected is the result-set size the run's first page reported.
	TotalExpected int

	// FailedPages and FailedDetails are the run's loss counters.
	FailedPages   int
	FailedDetails int

	// StartedAt and FinishedAt bound the run.
	StartedAt  time.Time
	FinishedAt time.Time

	// CourseCount is the number of course records the run persisted.
	CourseCount int
}

// Runs lists every stored crawl run, most recent first.
func (cdb *CrawlDB) Runs(ctx context.Context) ([]RunRecord, error) {
	query := `
	SELECT r.run_id, r.query_id, r.total_expected, r.failed_pages, r.failed_details,
	       r.started_at, r.finished_at, COUNT(c.id)
	FROM crawl_runs r
	LEFT JOIN courses c ON c.run_id = r.run_id
	GROUP BY r.run_id
	ORDER BY r.started_at DESC
	`

	rows, err := cdb.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var results []RunRecord
	for rows.Next() {
		var rec RunRecord
		var startedAt, finishedAt string

		if err := rows.Scan(
			&rec.RunID,
			&rec.QueryID,
			&rec.TotalExpected,
			&rec.FailedPages,
			&rec.FailedDetails,
			&startedAt,
			&finishedAt,
			&rec.CourseCount,
		); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}

		rec.StartedAt = parseTimestamp(startedAt)
		rec.FinishedAt = parseTimestamp(finishedAt)
		results = append(results, rec)
	}

	return results, rows.Err()
}

// LatestRunForQuery returns the most recent run for a query, or nil when
// the query was never crawled.
func (cdb *CrawlDB) LatestRunForQuery(ctx context.Context, queryID string) (*RunRecord, error) {
	query := `
	SELECT r.run_id, r.query_id, r.total_expected, r.failed_pages, r.failed_details,
	       r.started_at, r.finished_at, COUNT(c.id)
	FROM crawl_runs r
	LEFT JOIN courses c ON c.run_id = r.run_id
	WHERE r.query_id = ?
	GROUP BY r.run_id
	ORDER BY r.started_at DESC
	LIMIT 1
	`

	var rec RunRecord
	var startedAt, finishedAt string
	err := cdb.db.QueryRowContext(ctx, query, queryID).Scan(
		&rec.RunID,
		&rec.QueryID,
		&rec.TotalExpected,
		&rec.FailedPages,
		&rec.FailedDetails,
		&startedAt,
		&finishedAt,
		&rec.CourseCount,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest run: %w", err)
	}

	rec.StartedAt = parseTimestamp(startedAt)
	rec.FinishedAt = parseTimestamp(finishedAt)
	return &rec, nil
}

// CoursesByRun returns every course record a run persisted, in insertion
// order.
func (cdb *CrawlDB) CoursesByRun(ctx context.Context, runID string) ([]model.Detail, error) {
	query := `
	SELECT detail_json FROM courses
	WHERE run_id = ?
	ORDER BY id
	`

	rows, err := cdb.db.QueryContext(ctx, query, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query courses: %w", err)
	}
	defer rows.Close()

	var details []model.Detail
	for rows.Next() {
		var detailJSON string
		if err := rows.Scan(&detailJSON); err != nil {
			return nil, fmt.Errorf("failed to scan course: %w", err)
		}

		var detail model.Detail
		if err := json.Unmarshal([]byte(detailJSON), &detail); err != nil {
			return nil, fmt.Errorf("failed to parse course: %w", err)
		}
		details = append(details, detail)
	}

	return details, rows.Err()
}

// CourseByCode returns the most recently stored record for a timetable
// code across all runs, or nil when the code was never fetched.
func (cdb *CrawlDB) CourseByCode(ctx context.Context, timetableCode string) (*model.Detail, error) {
	query := `
	SELECT c.detail_json
	FROM courses c
	JOIN crawl_runs r ON r.run_id = c.run_id
	WHERE c.timetable_code = ?
	ORDER BY r.started_at DESC
	LIMIT 1
	`

	var detailJSON string
	err := cdb.db.QueryRowContext(ctx, query, timetableCode).Scan(&detailJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get course: %w", err)
	}

	var detail model.Detail
	if err := json.Unmarshal([]byte(detailJSON), &detail); err != nil {
		return nil, fmt.Errorf("failed to parse course: %w", err)
	}
	return &detail, nil
}

// timestampFormats contains the timestamp formats that SQLite may return.
// The order matters: more specific formats should come first.
var timestampFormats = []string{
	time.RFC3339Nano,          // Our own storage format
	time.RFC3339,              // Full RFC3339 format
	"2006-01-02 15:04:05",     // SQLite default datetime format
	"2006-01-02T15:04:05Z",    // ISO 8601 with Z suffix
	"2006-01-02T15:04:05",     // ISO 8601 without timezone
	"2006-01-02 15:04:05.999", // SQLite with milliseconds
}

// parseTimestamp attempts to parse a timestamp string using multiple formats.
// SQLite may return timestamps in different formats depending on configuration.
// If parsing fails with all formats, returns zero time.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
