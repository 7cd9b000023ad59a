package catalog

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/utcatalog/coursecrawl/internal/model"
)

// PageFetcher fetches and validates catalogue pages. It owns no concurrency
// and no retry policy; the crawl scheduler layers those on top.
type PageFetcher struct {
	getter  Getter
	pages   PageParser
	details DetailParser
	logger  *slog.Logger
}

// FetcherOption configures a PageFetcher.
type FetcherOption func(*PageFetcher)

// WithPageParser substitutes the page parser. The default is the HTML
// parser for the current site layout.
func WithPageParser(p PageParser) FetcherOption {
	return func(f *PageFetcher) {
		f.pages = p
	}
}

// WithDetailParser substitutes the detail parser.
func WithDetailParser(p DetailParser) FetcherOption {
	return func(f *PageFetcher) {
		f.details = p
	}
}

// WithFetcherLogger sets the fetcher's logger.
func WithFetcherLogger(logger *slog.Logger) FetcherOption {
	return func(f *PageFetcher) {
		f.logger = logger
	}
}

// NewPageFetcher creates a PageFetcher over the given transport.
func NewPageFetcher(getter Getter, opts ...FetcherOption) *PageFetcher {
	f := &PageFetcher{
		getter:  getter,
		pages:   HTMLPageParser{},
		details: HTMLDetailParser{},
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.logger == nil {
		f.logger = slog.Default()
	}
	return f
}

// FetchPage fetches one page of search results and validates it against its
// own pagination metadata.
//
// A query that matches nothing returns an empty page, not an error. A page
// whose parsed content contradicts its reported metadata returns
// ErrStructuralMismatch: the catalogue offers no integrity signal beyond
// index arithmetic, so these checks are what detects layout drift and
// truncated responses.
func (f *PageFetcher) FetchPage(ctx context.Context, query model.SearchQuery, page int) (*model.SearchPage, error) {
	values, err := searchValues(query, page)
	if err != nil {
		return nil, err
	}

	body, err := f.getter.Get(ctx, searchPath, values)
	if err != nil {
		return nil, err
	}

	parsed, err := f.pages.ParsePage(bytes.NewReader(body))
	if errors.Is(err, ErrNoResults) {
		f.logger.Debug("query matched nothing", "page", page)
		return &model.SearchPage{}, nil
	}
	if err != nil {
		return nil, err
	}

	return f.validatePage(parsed, page)
}

// validatePage enforces the structural invariants and assembles the page.
func (f *PageFetcher) validatePage(parsed *ParsedPage, page int) (*model.SearchPage, error) {
	summary := parsed.Summary
	currentCount := summary.LastIndex - summary.FirstIndex + 1
	totalPages := (summary.TotalCount + model.PageSize - 1) / model.PageSize

	// Every page but the last must be full, and the parsed card count must
	// agree with the index range the page reports.
	if page != totalPages {
		if len(parsed.Items) != model.PageSize {
			return nil, fmt.Errorf("%w: page %d of %d has %d items, want %d",
				ErrStructuralMismatch, page, totalPages, len(parsed.Items), model.PageSize)
		}
		if len(parsed.Items) != currentCount {
			return nil, fmt.Errorf("%w: page %d has %d items but reports indexes %d-%d",
				ErrStructuralMismatch, page, len(parsed.Items), summary.FirstIndex, summary.LastIndex)
		}
	}

	// The page we asked for must be the page we got.
	if impliedPage := summary.FirstIndex/model.PageSize + 1; page != impliedPage {
		return nil, fmt.Errorf("%w: requested page %d but first index %d implies page %d",
			ErrStructuralMismatch, page, summary.FirstIndex, impliedPage)
	}

	return &model.SearchPage{
		Items:        parsed.Items,
		FirstIndex:   summary.FirstIndex,
		LastIndex:    summary.LastIndex,
		CurrentCount: currentCount,
		TotalCount:   summary.TotalCount,
		PageNumber:   page,
		TotalPages:   totalPages,
	}, nil
}

// FetchDetail fetches the full record for one course.
func (f *PageFetcher) FetchDetail(ctx context.Context, timetableCode string, year int) (model.Detail, error) {
	body, err := f.getter.Get(ctx, detailPath, detailValues(timetableCode, year))
	if err != nil {
		return model.Detail{}, err
	}
	return f.details.ParseDetail(bytes.NewReader(body))
}

// LookupCommonCode resolves a timetable code to its common course code by
// searching for it. Returns ErrNotFound when the search matches nothing.
func (f *PageFetcher) LookupCommonCode(ctx context.Context, timetableCode string) (model.CommonCode, error) {
	page, err := f.FetchPage(ctx, model.SearchQuery{Keyword: timetableCode}, 1)
	if err != nil {
		return "", err
	}
	if len(page.Items) == 0 {
		return "", fmt.Errorf("%w: timetable code %q", ErrNotFound, timetableCode)
	}
	return page.Items[0].CommonCode, nil
}

// LookupTimetableCode resolves a common course code to its timetable code.
// Returns ErrNotFound when the search matches nothing.
func (f *PageFetcher) LookupTimetableCode(ctx context.Context, commonCode model.CommonCode) (string, error) {
	page, err := f.FetchPage(ctx, model.SearchQuery{Keyword: string(commonCode)}, 1)
	if err != nil {
		return "", err
	}
	if len(page.Items) == 0 {
		return "", fmt.Errorf("%w: common code %q", ErrNotFound, commonCode)
	}
	return page.Items[0].TimetableCode, nil
}
