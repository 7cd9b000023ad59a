package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/utcatalog/coursecrawl/internal/catalog"
	"github.com/utcatalog/coursecrawl/internal/config"
	"github.com/utcatalog/coursecrawl/internal/crawler"
	"github.com/utcatalog/coursecrawl/internal/database"
	"github.com/utcatalog/coursecrawl/internal/export"
	"github.com/utcatalog/coursecrawl/internal/log"
	"github.com/utcatalog/coursecrawl/internal/model"
	"github.com/utcatalog/coursecrawl/internal/ratelimit"
	"github.com/utcatalog/coursecrawl/internal/retry"
)

// progressBufferSize is the event buffer between the crawl workers and the
// terminal progress printer. Workers never block on it; a full buffer drops
// events and only the display skips ahead.
const progressBufferSize = 256

// NewCrawlCmd creates the crawl command.
func NewCrawlCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "crawl [keyword]",
		Short: "Crawl the catalogue for every course matching a search",
		Long: `Crawl runs one full catalogue search: it paginates through the result
pages, fetches the detail record of every listed course, and reports
what was fetched and what was dropped.

Filters combine as AND conditions, matching the catalogue's own facet
search. A search that matches nothing is a successful, empty crawl.

Examples:
  # Crawl everything matching a keyword
  coursecrawl crawl 線形代数

  # Restrict to senior division engineering courses on Monday
  coursecrawl crawl --institution ug --faculty 3 --weekday 月

  # Use a named preset from the .coursecrawl presets file
  coursecrawl crawl --preset math

  # Export the outcome as pretty-printed JSON to a file
  coursecrawl crawl 微分 --json -o outcome.json

Presets file (.coursecrawl) example:
  presets:
    math:
      keyword: 数学
      institution: ug
      semesters: [S1, S2]`,
		Args: cobra.MaximumNArgs(1),
		RunE: runCrawlCmd,
	}

	// Search filter flags
	cmd.Flags().StringP("preset", "P", "",
		"Named preset from the presets file to start from")
	cmd.Flags().StringP("institution", "I", "",
		"Institution filter: jd, ug, g, or all")
	cmd.Flags().IntP("faculty", "f", 0,
		"Faculty ID filter (e.g. 3 for Engineering)")
	cmd.Flags().IntSlice("grade", nil,
		"Student grade filter (repeatable)")
	cmd.Flags().StringSlice("semester", nil,
		"Semester filter: S1, S2, A1, A2, W (repeatable)")
	cmd.Flags().StringSlice("weekday", nil,
		"Weekday filter as the kanji day character (repeatable)")
	cmd.Flags().IntSlice("period", nil,
		"Class period filter, 1-based (repeatable)")
	cmd.Flags().StringSlice("language", nil,
		"Course language filter (repeatable)")

	// Crawl behavior flags
	cmd.Flags().IntP("year", "y", 0,
		"Academic year for detail pages (default: current year)")
	cmd.Flags().DurationP("interval", "i", config.DefaultMinInterval,
		"Minimum spacing between any two requests")
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"Connection timeout for each request")
	cmd.Flags().IntP("concurrency", "n", config.DefaultDetailConcurrency,
		"Maximum number of concurrent detail fetches")
	cmd.Flags().IntP("retries", "r", config.DefaultRetryAttempts,
		"Attempts per page before it is dropped")
	cmd.Flags().String("base-url", config.DefaultBaseURL,
		"Catalogue base URL (mainly for mirrors and tests)")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Presets file path (default: .coursecrawl in current or home directory)")

	// Export flags
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON (mutually exclusive with --csv and --markdown)")
	cmd.Flags().Bool("csv", false,
		"Output CSV (mutually exclusive with --json and --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown (mutually exclusive with --json and --csv)")
	cmd.Flags().StringP("output", "o", "",
		"Write the export to specified file path (creates directories if needed)")

	// Database flags
	cmd.Flags().Bool("no-save", false,
		"Do not save the outcome to the local database")
	cmd.Flags().String("db-dir", "",
		"Database directory (default: XDG data directory)")

	return cmd
}

// runCrawlCmd executes the crawl command.
func runCrawlCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildCrawlConfig(cmd)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	query, err := buildQuery(cmd, cfg, args)
	if err != nil {
		return err
	}

	// Set up structured logging
	logger := log.NewLogger(os.Stderr, cfg.Verbose)
	slog.SetDefault(logger)

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return runCrawl(ctx, cfg, query, logger)
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildCrawlConfig creates a Config from cobra command flags.
func buildCrawlConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()
	cfg.Verbose = getVerboseFlag(cmd)

	var err error

	cfg.Year, err = cmd.Flags().GetInt("year")
	if err != nil {
		return nil, err
	}

	cfg.MinInterval, err = cmd.Flags().GetDuration("interval")
	if err != nil {
		return nil, err
	}

	cfg.Timeout, err = cmd.Flags().GetDuration("timeout")
	if err != nil {
		return nil, err
	}

	cfg.DetailConcurrency, err = cmd.Flags().GetInt("concurrency")
	if err != nil {
		return nil, err
	}

	cfg.RetryAttempts, err = cmd.Flags().GetInt("retries")
	if err != nil {
		return nil, err
	}

	cfg.BaseURL, err = cmd.Flags().GetString("base-url")
	if err != nil {
		return nil, err
	}

	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// Load presets from the presets file.
	// If user explicitly specified a presets file path, error if not found.
	// If no path specified, silently use an empty set if no file found.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	if configPath != "" {
		cfg.Presets, err = config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load presets file %s: %w", configPath, err)
		}
	} else if explicitConfigPath {
		return nil, fmt.Errorf("presets file not found: %s", cfg.ConfigFilePath)
	} else {
		cfg.Presets = &config.File{
			Presets: make(map[string]config.Preset),
		}
	}

	cfg.JSONExport, err = cmd.Flags().GetBool("json")
	if err != nil {
		return nil, err
	}

	cfg.CSVExport, err = cmd.Flags().GetBool("csv")
	if err != nil {
		return nil, err
	}

	cfg.MarkdownExport, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, err
	}

	cfg.OutputFile, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}

	noSave, err := cmd.Flags().GetBool("no-save")
	if err != nil {
		return nil, err
	}
	cfg.SaveToDB = !noSave

	cfg.DBDir, err = cmd.Flags().GetString("db-dir")
	if err != nil {
		return nil, err
	}
	if cfg.DBDir == "" {
		cfg.DBDir = config.XDGDataDir()
	}

	return cfg, nil
}

// buildQuery assembles the search query from the preset flag and the
// individual filter flags. Flags override what the preset sets.
func buildQuery(cmd *cobra.Command, cfg *config.Config, args []string) (model.SearchQuery, error) {
	var preset config.Preset

	presetName, err := cmd.Flags().GetString("preset")
	if err != nil {
		return model.SearchQuery{}, err
	}
	if presetName != "" {
		var ok bool
		preset, ok = cfg.Presets.GetPreset(presetName)
		if !ok {
			return model.SearchQuery{}, fmt.Errorf("unknown preset %q (defined: %v)",
				presetName, cfg.Presets.PresetNames())
		}
	}

	if len(args) > 0 {
		preset.Keyword = args[0]
	}

	if institution, err := cmd.Flags().GetString("institution"); err != nil {
		return model.SearchQuery{}, err
	} else if institution != "" {
		preset.Institution = institution
	}

	if faculty, err := cmd.Flags().GetInt("faculty"); err != nil {
		return model.SearchQuery{}, err
	} else if faculty != 0 {
		preset.Faculty = faculty
	}

	if grades, err := cmd.Flags().GetIntSlice("grade"); err != nil {
		return model.SearchQuery{}, err
	} else if len(grades) > 0 {
		preset.Grades = grades
	}

	if semesters, err := cmd.Flags().GetStringSlice("semester"); err != nil {
		return model.SearchQuery{}, err
	} else if len(semesters) > 0 {
		preset.Semesters = semesters
	}

	if weekdays, err := cmd.Flags().GetStringSlice("weekday"); err != nil {
		return model.SearchQuery{}, err
	} else if len(weekdays) > 0 {
		preset.Weekdays = weekdays
	}

	if periods, err := cmd.Flags().GetIntSlice("period"); err != nil {
		return model.SearchQuery{}, err
	} else if len(periods) > 0 {
		preset.Periods = periods
	}

	if languages, err := cmd.Flags().GetStringSlice("language"); err != nil {
		return model.SearchQuery{}, err
	} else if len(languages) > 0 {
		preset.Languages = languages
	}

	return preset.ToQuery()
}

// newFetcher wires the transport stack: rate limiter, HTTP session, and
// page fetcher.
func newFetcher(cfg *config.Config, logger *slog.Logger) (*catalog.PageFetcher, error) {
	limiter, err := ratelimit.New(cfg.MinInterval)
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limiter: %w", err)
	}

	client := &http.Client{Timeout: cfg.Timeout}
	session := catalog.NewSession(client, limiter,
		catalog.WithBaseURL(cfg.BaseURL),
		catalog.WithUserAgent(cfg.UserAgent),
		catalog.WithMaxBodySize(cfg.MaxBodySize),
		catalog.WithSessionLogger(logger),
	)

	return catalog.NewPageFetcher(session, catalog.WithFetcherLogger(logger)), nil
}

// runCrawl executes the crawl.
func runCrawl(ctx context.Context, cfg *config.Config, query model.SearchQuery, logger *slog.Logger) error {
	logger.Info("starting crawl",
		"queryID", query.ID(),
		"interval", cfg.MinInterval,
		"concurrency", cfg.DetailConcurrency,
		"saveToDB", cfg.SaveToDB,
	)

	// Open database connection if saving is enabled
	var db *database.CrawlDB
	if cfg.SaveToDB {
		var err error
		db, err = database.Open(cfg.DBDir, database.DefaultOptions())
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()
		logger.Info("database opened", "dir", cfg.DBDir)
	}

	fetcher, err := newFetcher(cfg, logger)
	if err != nil {
		return err
	}

	spec := retry.Default()
	spec.MaxAttempts = cfg.RetryAttempts
	spec.MaxElapsed = cfg.RetryMaxElapsed

	sink := crawler.NewChannelSink(progressBufferSize)
	sched := crawler.NewScheduler(fetcher,
		crawler.WithRetrySpec(spec),
		crawler.WithDetailConcurrency(cfg.DetailConcurrency),
		crawler.WithYear(cfg.EffectiveYear()),
		crawler.WithProgressSink(sink),
		crawler.WithSchedulerLogger(logger),
	)

	fmt.Fprintf(os.Stderr, "Crawling the catalogue (request interval %s)...\n", cfg.MinInterval)
	startTime := time.Now()

	done := consumeProgress(sink)
	outcome, crawlErr := sched.Crawl(ctx, query)
	sink.Close()
	<-done

	if crawlErr != nil && len(outcome.Details) == 0 {
		return fmt.Errorf("crawl failed: %w", crawlErr)
	}
	if crawlErr != nil {
		fmt.Fprintf(os.Stderr, "Crawl interrupted, keeping the partial outcome: %v\n", crawlErr)
	} else {
		fmt.Fprintf(os.Stderr, "Crawl completed in %s\n\n", time.Since(startTime).Round(time.Millisecond))
	}

	if err := outputOutcome(cfg, outcome); err != nil {
		logger.Error("export failed", "error", err)
		return err
	}

	// The partial outcome of a cancelled run is still worth keeping, so the
	// save does not inherit the cancellation.
	if err := saveOutcome(context.WithoutCancel(ctx), db, outcome, logger); err != nil {
		logger.Error("failed to save outcome", "error", err)
	}

	return crawlErr
}

// consumeProgress prints crawl progress to stderr as events arrive. The
// returned channel closes once the sink's channel is drained.
func consumeProgress(sink *crawler.ChannelSink) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)

		var total, fetched int
		for ev := range sink.Events() {
			switch ev.Kind {
			case crawler.EventFirstPage:
				total = ev.Page.TotalCount
				fmt.Fprintf(os.Stderr, "Matched %d courses across %d pages\n",
					ev.Page.TotalCount, ev.Page.TotalPages)
			case crawler.EventDetail:
				fetched++
				fmt.Fprintf(os.Stderr, "\r[%d/%d] %s", fetched, total, ev.Detail.TimetableCode)
			}
		}
		if fetched > 0 {
			fmt.Fprintln(os.Stderr)
		}
	}()
	return done
}

// outputOutcome writes the outcome in the requested format.
func outputOutcome(cfg *config.Config, outcome *model.Outcome) error {
	var output *os.File
	if cfg.OutputFile != "" {
		// Create directories if they don't exist
		dir := filepath.Dir(cfg.OutputFile)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		f, err := os.OpenFile(cfg.OutputFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		output = f
	} else {
		output = os.Stdout
	}

	writer := newExportWriter(cfg, output)
	if writer != nil {
		_, err := writer.Write(outcome)
		return err
	}

	// Short text summary (default)
	printSummary(output, outcome)
	return nil
}

// newExportWriter selects the export writer for the configured format.
// A nil return means the default text summary.
func newExportWriter(cfg *config.Config, output io.Writer) export.Writer {
	switch {
	case cfg.JSONExport:
		return export.NewFullJSONWriter(output, getVersion(), export.WithPrettyPrint())
	case cfg.CSVExport:
		return export.NewCSVWriter(output)
	case cfg.MarkdownExport:
		return export.NewMarkdownWriter(output)
	default:
		return nil
	}
}

// printSummary prints a short human-readable summary of the outcome.
func printSummary(w io.Writer, outcome *model.Outcome) {
	fmt.Fprintf(w, "Run %s\n", outcome.RunID)
	fmt.Fprintf(w, "  courses fetched: %d of %d expected\n", len(outcome.Details), outcome.TotalExpected)
	if outcome.FailedPages > 0 {
		fmt.Fprintf(w, "  result pages dropped: %d (up to %d courses missing)\n",
			outcome.FailedPages, outcome.FailedPages*model.PageSize)
	}
	if outcome.FailedDetails > 0 {
		fmt.Fprintf(w, "  detail fetches dropped: %d\n", outcome.FailedDetails)
	}
	fmt.Fprintf(w, "  elapsed: %s\n", outcome.Duration().Round(time.Millisecond))
	if outcome.Complete() {
		fmt.Fprintln(w, "  status: complete")
	} else {
		fmt.Fprintln(w, "  status: incomplete")
	}
}

// saveOutcome saves the outcome to the database if enabled.
// If db is nil, this function is a no-op.
func saveOutcome(ctx context.Context, db *database.CrawlDB, outcome *model.Outcome, logger *slog.Logger) error {
	if db == nil {
		return nil
	}

	if err := db.SaveOutcome(ctx, outcome); err != nil {
		return fmt.Errorf("failed to save outcome: %w", err)
	}

	logger.Info("outcome saved to database", "runID", outcome.RunID, "courses", len(outcome.Details))
	return nil
}
