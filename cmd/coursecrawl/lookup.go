package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/utcatalog/coursecrawl/internal/config"
	"github.com/utcatalog/coursecrawl/internal/database"
	"github.com/utcatalog/coursecrawl/internal/log"
	"github.com/utcatalog/coursecrawl/internal/model"
)

// NewLookupCmd creates the lookup command.
func NewLookupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lookup <code>",
		Short: "Resolve a course code and optionally fetch its record",
		Long: `Lookup resolves between the two code systems the catalogue uses: the
5-digit timetable code and the 12-character common course code
(e.g. FEN-CO2123L1). The kind of code is detected from its shape.

Examples:
  # Resolve a timetable code to its common course code
  coursecrawl lookup 30001

  # Resolve a common course code to its timetable code
  coursecrawl lookup FEN-CO2123L1

  # Also fetch the course's full detail record
  coursecrawl lookup 30001 --detail

  # Read the record from the local database instead of the site
  coursecrawl lookup 30001 --offline`,
		Args: cobra.ExactArgs(1),
		RunE: runLookupCmd,
	}

	cmd.Flags().BoolP("detail", "d", false,
		"Fetch and print the course's full detail record as JSON")
	cmd.Flags().Bool("offline", false,
		"Look the record up in the local database instead of fetching")
	cmd.Flags().IntP("year", "y", 0,
		"Academic year for the detail page (default: current year)")
	cmd.Flags().DurationP("interval", "i", config.DefaultMinInterval,
		"Minimum spacing between any two requests")
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"Connection timeout for each request")
	cmd.Flags().String("base-url", config.DefaultBaseURL,
		"Catalogue base URL (mainly for mirrors and tests)")
	cmd.Flags().String("db-dir", "",
		"Database directory (default: XDG data directory)")

	return cmd
}

// runLookupCmd executes the lookup command.
func runLookupCmd(cmd *cobra.Command, args []string) error {
	logger := log.NewLogger(os.Stderr, getVerboseFlag(cmd))

	cfg := config.NewConfig()
	var err error
	cfg.MinInterval, err = cmd.Flags().GetDuration("interval")
	if err != nil {
		return err
	}
	cfg.Timeout, err = cmd.Flags().GetDuration("timeout")
	if err != nil {
		return err
	}
	cfg.BaseURL, err = cmd.Flags().GetString("base-url")
	if err != nil {
		return err
	}
	cfg.Year, err = cmd.Flags().GetInt("year")
	if err != nil {
		return err
	}

	offline, err := cmd.Flags().GetBool("offline")
	if err != nil {
		return err
	}
	wantDetail, err := cmd.Flags().GetBool("detail")
	if err != nil {
		return err
	}
	dbDir, err := cmd.Flags().GetString("db-dir")
	if err != nil {
		return err
	}
	if dbDir == "" {
		dbDir = config.XDGDataDir()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	code := args[0]

	if offline {
		return lookupOffline(ctx, cmd, dbDir, code)
	}

	fetcher, err := newFetcher(cfg, logger)
	if err != nil {
		return err
	}

	// The code's shape decides the direction of the resolution.
	timetableCode := code
	if common := model.CommonCode(code); common.Validate() == nil {
		timetableCode, err = fetcher.LookupTimetableCode(ctx, common)
		if err != nil {
			return fmt.Errorf("failed to resolve %s: %w", code, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "common code    %s\ntimetable code %s\n", code, timetableCode)
	} else {
		commonCode, err := fetcher.LookupCommonCode(ctx, code)
		if err != nil {
			return fmt.Errorf("failed to resolve %s: %w", code, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "timetable code %s\ncommon code    %s\n", code, commonCode)
	}

	if !wantDetail {
		return nil
	}

	detail, err := fetcher.FetchDetail(ctx, timetableCode, cfg.EffectiveYear())
	if err != nil {
		return fmt.Errorf("failed to fetch detail for %s: %w", timetableCode, err)
	}
	return printDetailJSON(cmd, detail)
}

// lookupOffline reads the most recent stored record for a timetable code.
func lookupOffline(ctx context.Context, cmd *cobra.Command, dbDir, code string) error {
	db, err := database.Open(dbDir, database.Options{EnableWAL: true})
	if err != nil {
		return errors.New("no local database found (run 'coursecrawl crawl' first)")
	}
	defer db.Close()

	detail, err := db.CourseByCode(ctx, code)
	if err != nil {
		return fmt.Errorf("failed to look up %s: %w", code, err)
	}
	if detail == nil {
		return fmt.Errorf("no stored record for timetable code %s", code)
	}
	return printDetailJSON(cmd, *detail)
}

// printDetailJSON prints one course record as pretty JSON.
func printDetailJSON(cmd *cobra.Command, detail model.Detail) error {
	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(detail)
}
