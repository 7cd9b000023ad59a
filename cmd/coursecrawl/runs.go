package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/utcatalog/coursecrawl/internal/config"
	"github.com/utcatalog/coursecrawl/internal/database"
)

// NewRunsCmd creates the runs command.
// This command inspects crawl history stored in the database.
func NewRunsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List stored crawl runs and their results",
		Long: `Runs lists the crawl runs saved in the local database.

Every crawl is stored with its run identifier, the query it executed,
and the course records it fetched. Use this command to find a run and
then inspect its courses.

Examples:
  # List all stored runs
  coursecrawl runs

  # Show the courses one run fetched
  coursecrawl runs --courses 2f9d1c3a-...

  # Show the most recent run for a query
  coursecrawl runs --query 8c6a...

  # Output as JSON
  coursecrawl runs --json`,
		Args: cobra.NoArgs,
		RunE: runRunsCmd,
	}

	cmd.Flags().StringP("courses", "C", "",
		"Show the course records fetched by the given run ID")
	cmd.Flags().StringP("query", "q", "",
		"Show the most recent run for the given query ID")
	cmd.Flags().BoolP("json", "j", false,
		"Output in JSON format")
	cmd.Flags().String("db-dir", "",
		"Database directory (default: XDG data directory)")

	return cmd
}

// runRunsCmd executes the runs command.
func runRunsCmd(cmd *cobra.Command, _ []string) error {
	dbDir, err := cmd.Flags().GetString("db-dir")
	if err != nil {
		return err
	}
	if dbDir == "" {
		dbDir = config.XDGDataDir()
	}

	jsonOutput, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}
	runID, err := cmd.Flags().GetString("courses")
	if err != nil {
		return err
	}
	queryID, err := cmd.Flags().GetString("query")
	if err != nil {
		return err
	}

	db, err := database.Open(dbDir, database.Options{EnableWAL: true})
	if err != nil {
		return errors.New("no local database found (run 'coursecrawl crawl' first)")
	}
	defer db.Close()

	ctx := context.Background()

	if runID != "" {
		return listRunCourses(ctx, cmd, db, runID, jsonOutput)
	}
	if queryID != "" {
		return showLatestRun(ctx, cmd, db, queryID, jsonOutput)
	}
	return listRuns(ctx, cmd, db, jsonOutput)
}

// listRuns lists every stored crawl run.
func listRuns(ctx context.Context, cmd *cobra.Command, db *database.CrawlDB, jsonOutput bool) error {
	runs, err := db.Runs(ctx)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	if jsonOutput {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(runs)
	}

	if len(runs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No stored crawl runs.")
		fmt.Fprintln(cmd.OutOrStdout(), "\nUse 'coursecrawl crawl' to run a crawl.")
		return nil
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Stored crawl runs (%d):\n\n", len(runs))
	fmt.Fprintf(out, "  %-36s  %-19s  %8s  %8s  %7s\n", "Run ID", "Started", "Courses", "Expected", "Dropped")
	fmt.Fprintln(out, "  "+strings.Repeat("-", 86))

	for _, run := range runs {
		fmt.Fprintf(out, "  %-36s  %-19s  %8d  %8d  %7d\n",
			run.RunID,
			run.StartedAt.Format("2006-01-02 15:04:05"),
			run.CourseCount,
			run.TotalExpected,
			run.FailedPages+run.FailedDetails,
		)
	}

	fmt.Fprintln(out, "\nUse 'coursecrawl runs --courses <run-id>' to see what a run fetched.")
	return nil
}

// listRunCourses lists the course records a run persisted.
func listRunCourses(ctx context.Context, cmd *cobra.Command, db *database.CrawlDB, runID string, jsonOutput bool) error {
	courses, err := db.CoursesByRun(ctx, runID)
	if err != nil {
		return fmt.Errorf("failed to get courses: %w", err)
	}

	if jsonOutput {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(courses)
	}

	out := cmd.OutOrStdout()
	if len(courses) == 0 {
		fmt.Fprintf(out, "No courses stored for run %s\n", runID)
		return nil
	}

	fmt.Fprintf(out, "Courses fetched by run %s (%d):\n\n", runID, len(courses))
	fmt.Fprintf(out, "  %-8s  %-14s  %-7s  %s\n", "Code", "Common Code", "Credits", "Title")
	fmt.Fprintln(out, "  "+strings.Repeat("-", 70))
	for _, course := range courses {
		fmt.Fprintf(out, "  %-8s  %-14s  %7.1f  %s\n",
			course.TimetableCode,
			course.CommonCode,
			course.Credits,
			course.Title,
		)
	}
	return nil
}

// showLatestRun shows the most recent run for a query.
func showLatestRun(ctx context.Context, cmd *cobra.Command, db *database.CrawlDB, queryID string, jsonOutput bool) error {
	run, err := db.LatestRunForQuery(ctx, queryID)
	if err != nil {
		return fmt.Errorf("failed to get latest run: %w", err)
	}
	if run == nil {
		return fmt.Errorf("no stored run for query %s", queryID)
	}

	if jsonOutput {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(run)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Latest run for query %s:\n\n", queryID)
	fmt.Fprintf(out, "  run ID:    %s\n", run.RunID)
	fmt.Fprintf(out, "  started:   %s\n", run.StartedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(out, "  finished:  %s\n", run.FinishedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(out, "  courses:   %d of %d expected\n", run.CourseCount, run.TotalExpected)
	fmt.Fprintf(out, "  dropped:   %d pages, %d details\n", run.FailedPages, run.FailedDetails)
	return nil
}
