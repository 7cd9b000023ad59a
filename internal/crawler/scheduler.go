package crawler

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/utcatalog/coursecrawl/internal/catalog"
	"github.com/utcatalog/coursecrawl/internal/model"
	"github.com/utcatalog/coursecrawl/internal/retry"
)

// DefaultDetailConcurrency bounds how many course fetches run at once.
// Ten matches one result page of courses in flight.
const DefaultDetailConcurrency = 10

// Phase names the stage a crawl run is in.
type Phase int

// Crawl phases, in order.
const (
	PhaseNotStarted Phase = iota
	PhaseFirstPage
	PhaseRemainingPages
	PhaseDetails
	PhaseDone
)

// String returns the phase name used in logs.
func (p Phase) String() string {
	switch p {
	case PhaseNotStarted:
		return "not_started"
	case PhaseFirstPage:
		return "first_page"
	case PhaseRemainingPages:
		return "remaining_pages"
	case PhaseDetails:
		return "details"
	case PhaseDone:
		return "done"
	default:
		return "unknown"
	}
}

// Fetcher is the fetch surface the scheduler drives. catalog.PageFetcher
// implements it; tests substitute fakes.
type Fetcher interface {
	FetchPage(ctx context.Context, query model.SearchQuery, page int) (*model.SearchPage, error)
	FetchDetail(ctx context.Context, timetableCode string, year int) (model.Detail, error)
}

// Scheduler runs one crawl at a time over a Fetcher: first page, remaining
// pages, then a bounded fan-out over every listed course's detail page.
//
// Design decision: The first page is fetched alone, before any concurrency,
// because:
//  1. Its total count fixes how many pages exist at all
//  2. Its failure means the query itself is broken, so the run aborts
//  3. An empty first page ends the run without further requests
type Scheduler struct {
	fetcher Fetcher

	// retrySpec wraps every page and detail fetch after the first page.
	retrySpec retry.Spec

	// detailConcurrency bounds concurrent detail fetches.
	detailConcurrency int64

	// year selects the academic year on detail requests.
	year int

	sink   ProgressSink
	logger *slog.Logger

	// mu guards phase.
	mu    sync.Mutex
	phase Phase
}

// SchedulerOption configures a Scheduler.
type SchedulerOption func(*Scheduler)

// WithRetrySpec sets the retry policy for page and detail fetches.
// The scheduler's permanent-error classification is applied on top.
func WithRetrySpec(spec retry.Spec) SchedulerOption {
	return func(s *Scheduler) {
		s.retrySpec = spec
	}
}

// WithDetailConcurrency sets the maximum number of concurrent detail
// fetches. Values below 1 keep the default.
func WithDetailConcurrency(n int) SchedulerOption {
	return func(s *Scheduler) {
		if n > 0 {
			s.detailConcurrency = int64(n)
		}
	}
}

// WithYear sets the academic year for detail requests.
func WithYear(year int) SchedulerOption {
	return func(s *Scheduler) {
		s.year = year
	}
}

// WithProgressSink sets the progress sink.
func WithProgressSink(sink ProgressSink) SchedulerOption {
	return func(s *Scheduler) {
		s.sink = sink
	}
}

// WithSchedulerLogger sets the scheduler's logger.
func WithSchedulerLogger(logger *slog.Logger) SchedulerOption {
	return func(s *Scheduler) {
		s.logger = logger
	}
}

// NewScheduler creates a Scheduler over the given fetcher.
func NewScheduler(fetcher Fetcher, opts ...SchedulerOption) *Scheduler {
	s := &Scheduler{
		fetcher:           fetcher,
		retrySpec:         retry.Default(),
		detailConcurrency: DefaultDetailConcurrency,
		year:              time.Now().Year(),
		sink:              NopSink{},
		phase:             PhaseNotStarted,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = slog.Default()
	}

	// Structural mismatches are deterministic: the pagination math of a
	// drifted layout contradicts itself on every fetch, so retrying only
	// repeats the failure. Parse errors stay retryable; a truncated or
	// half-rendered response parses fine on the next attempt.
	base := s.retrySpec.RetryIf
	s.retrySpec.RetryIf = func(err error) bool {
		if errors.Is(err, catalog.ErrStructuralMismatch) {
			return false
		}
		if base != nil {
			return base(err)
		}
		return true
	}

	return s
}

// Phase returns the stage the current run is in.
func (s *Scheduler) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// setPhase advances the run to the given phase.
func (s *Scheduler) setPhase(p Phase) {
	s.mu.Lock()
	s.phase = p
	s.mu.Unlock()
	s.logger.Info("crawl phase changed", "phase", p.String())
}

// Crawl runs one full crawl for the query and returns its Outcome.
//
// A first-page failure aborts the run. Later page and detail failures are
// retried, then dropped and counted in the Outcome; the run continues.
// On cancellation the partial Outcome gathered so far is returned together
// with the context's error.
func (s *Scheduler) Crawl(ctx context.Context, query model.SearchQuery) (*model.Outcome, error) {
	outcome := &model.Outcome{
		RunID:     uuid.NewString(),
		QueryID:   query.ID(),
		StartedAt: time.Now(),
	}
	logger := s.logger.With("run_id", outcome.RunID, "query_id", outcome.QueryID)

	logger.Info("starting crawl",
		"detail_concurrency", s.detailConcurrency,
		"year", s.year,
	)

	s.setPhase(PhaseFirstPage)
	first, err := retry.Do(ctx, s.retrySpec, logger, func(ctx context.Context) (*model.SearchPage, error) {
		return s.fetcher.FetchPage(ctx, query, 1)
	})
	if err != nil {
		outcome.FinishedAt = time.Now()
		s.setPhase(PhaseDone)
		return outcome, err
	}

	outcome.TotalExpected = first.TotalCount
	s.sink.OnFirstPage(first)

	if first.IsEmpty() {
		logger.Info("query matched nothing")
		outcome.FinishedAt = time.Now()
		s.setPhase(PhaseDone)
		return outcome, nil
	}

	items, err := s.fetchRemainingPages(ctx, logger, query, first, outcome)
	if err != nil {
		outcome.FinishedAt = time.Now()
		s.setPhase(PhaseDone)
		return outcome, err
	}

	err = s.fetchDetails(ctx, logger, items, outcome)
	outcome.FinishedAt = time.Now()
	s.setPhase(PhaseDone)

	logger.Info("crawl finished",
		"details", len(outcome.Details),
		"expected", outcome.TotalExpected,
		"failed_pages", outcome.FailedPages,
		"failed_details", outcome.FailedDetails,
		"elapsed", outcome.Duration(),
	)
	return outcome, err
}

// fetchRemainingPages fetches pages 2..N concurrently and returns all items
// in page order. Pages dropped after retry exhaustion are counted on the
// outcome, not returned as errors.
func (s *Scheduler) fetchRemainingPages(
	ctx context.Context,
	logger *slog.Logger,
	query model.SearchQuery,
	first *model.SearchPage,
	outcome *model.Outcome,
) ([]model.Item, error) {
	s.setPhase(PhaseRemainingPages)

	// Index 0 holds the first page's items; workers fill the rest, so
	// items stay in page order regardless of completion order.
	pageItems := make([][]model.Item, first.TotalPages)
	pageItems[0] = first.Items

	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(int(s.detailConcurrency))

	for page := 2; page <= first.TotalPages; page++ {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			result, err := retry.Do(ctx, s.retrySpec, logger, func(ctx context.Context) (*model.SearchPage, error) {
				return s.fetcher.FetchPage(ctx, query, page)
			})
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				logger.Warn("dropping result page",
					"page", page,
					"error", err,
				)
				mu.Lock()
				outcome.FailedPages++
				mu.Unlock()
				return nil
			}

			mu.Lock()
			pageItems[page-1] = result.Items
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	items := make([]model.Item, 0, first.TotalCount)
	for _, pi := range pageItems {
		items = append(items, pi...)
	}
	return items, nil
}

// fetchDetails fans out over the items and fetches each course's detail
// record, at most detailConcurrency at a time. Successes land on the
// outcome in completion order; exhausted fetches are counted and dropped.
func (s *Scheduler) fetchDetails(
	ctx context.Context,
	logger *slog.Logger,
	items []model.Item,
	outcome *model.Outcome,
) error {
	s.setPhase(PhaseDetails)

	sem := semaphore.NewWeighted(s.detailConcurrency)
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	for _, item := range items {
		g.Go(func() error {
			if err := sem.Acquire(ctx, 1); err != nil {
				return err
			}
			defer sem.Release(1)

			detail, err := retry.Do(ctx, s.retrySpec, logger, func(ctx context.Context) (model.Detail, error) {
				return s.fetcher.FetchDetail(ctx, item.TimetableCode, s.year)
			})
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				logger.Warn("dropping course detail",
					"timetable_code", item.TimetableCode,
					"error", err,
				)
				mu.Lock()
				outcome.FailedDetails++
				mu.Unlock()
				return nil
			}

			mu.Lock()
			outcome.Details = append(outcome.Details, detail)
			mu.Unlock()
			s.sink.OnDetail(detail)
			return nil
		})
	}

	return g.Wait()
}
