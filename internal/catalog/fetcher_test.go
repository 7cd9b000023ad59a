package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"testing"

	"github.com/utcatalog/coursecrawl/internal/model"
)

// fakeGetter serves canned bodies and records the requests it saw.
type fakeGetter struct {
	body []byte
	err  error

	paths   []string
	queries []url.Values
}

func (g *fakeGetter) Get(_ context.Context, path string, query url.Values) ([]byte, error) {
	g.paths = append(g.paths, path)
	g.queries = append(g.queries, query)
	if g.err != nil {
		return nil, g.err
	}
	return g.body, nil
}

// fakePageParser returns a fixed parse result regardless of input.
type fakePageParser struct {
	parsed *ParsedPage
	err    error
}

func (p fakePageParser) ParsePage(io.Reader) (*ParsedPage, error) {
	return p.parsed, p.err
}

// fullItems builds n placeholder items.
func fullItems(n int) []model.Item {
	items := make([]model.Item, n)
	for i := range items {
		items[i] = model.Item{
			TimetableCode: fmt.Sprintf("300%02d", i+1),
			CommonCode:    model.CommonCode("FEN-CO2123L1"),
			Title:         "線形代数",
		}
	}
	return items
}

// TestPageFetcher_FetchPage tests page fetching and structural validation.
func TestPageFetcher_FetchPage(t *testing.T) {
	t.Parallel()

	t.Run("valid full page", func(t *testing.T) {
		t.Parallel()

		fetcher := NewPageFetcher(&fakeGetter{}, WithPageParser(fakePageParser{
			parsed: &ParsedPage{
				Summary: PageSummary{FirstIndex: 11, LastIndex: 20, TotalCount: 25},
				Items:   fullItems(10),
			},
		}))

		page, err := fetcher.FetchPage(context.Background(), model.SearchQuery{}, 2)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if page.PageNumber != 2 || page.TotalPages != 3 {
			t.Errorf("expected page 2 of 3, got %d of %d", page.PageNumber, page.TotalPages)
		}
		if page.CurrentCount != 10 || page.TotalCount != 25 {
			t.Errorf("unexpected counts: %+v", page)
		}
		if page.IsLast() {
			t.Error("page 2 of 3 must not be last")
		}
	})

	t.Run("valid short last page", func(t *testing.T) {
		t.Parallel()

		fetcher := NewPageFetcher(&fakeGetter{}, WithPageParser(fakePageParser{
			parsed: &ParsedPage{
				Summary: PageSummary{FirstIndex: 21, LastIndex: 25, TotalCount: 25},
				Items:   fullItems(5),
			},
		}))

		page, err := fetcher.FetchPage(context.Background(), model.SearchQuery{}, 3)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !page.IsLast() {
			t.Error("page 3 of 3 must be last")
		}
	})

	t.Run("short non-last page is a structural mismatch", func(t *testing.T) {
		t.Parallel()

		fetcher := NewPageFetcher(&fakeGetter{}, WithPageParser(fakePageParser{
			parsed: &ParsedPage{
				Summary: PageSummary{FirstIndex: 11, LastIndex: 20, TotalCount: 25},
				Items:   fullItems(9),
			},
		}))

		_, err := fetcher.FetchPage(context.Background(), model.SearchQuery{}, 2)
		if !errors.Is(err, ErrStructuralMismatch) {
			t.Errorf("expected ErrStructuralMismatch, got %v", err)
		}
	})

	t.Run("page number disagreeing with first index is a structural mismatch", func(t *testing.T) {
		t.Parallel()

		// First index 11 implies page 2, but page 3 was requested.
		fetcher := NewPageFetcher(&fakeGetter{}, WithPageParser(fakePageParser{
			parsed: &ParsedPage{
				Summary: PageSummary{FirstIndex: 11, LastIndex: 20, TotalCount: 45},
				Items:   fullItems(10),
			},
		}))

		_, err := fetcher.FetchPage(context.Background(), model.SearchQuery{}, 3)
		if !errors.Is(err, ErrStructuralMismatch) {
			t.Errorf("expected ErrStructuralMismatch, got %v", err)
		}
	})

	t.Run("no results yields an empty page", func(t *testing.T) {
		t.Parallel()

		fetcher := NewPageFetcher(&fakeGetter{}, WithPageParser(fakePageParser{err: ErrNoResults}))

		page, err := fetcher.FetchPage(context.Background(), model.SearchQuery{}, 1)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !page.IsEmpty() {
			t.Errorf("expected an empty page, got %+v", page)
		}
	})

	t.Run("transport errors pass through", func(t *testing.T) {
		t.Parallel()

		wantErr := errors.New("connection reset")
		fetcher := NewPageFetcher(&fakeGetter{err: wantErr})

		_, err := fetcher.FetchPage(context.Background(), model.SearchQuery{}, 1)
		if !errors.Is(err, wantErr) {
			t.Errorf("expected transport error, got %v", err)
		}
	})

	t.Run("requests the search endpoint", func(t *testing.T) {
		t.Parallel()

		getter := &fakeGetter{}
		fetcher := NewPageFetcher(getter, WithPageParser(fakePageParser{
			parsed: &ParsedPage{
				Summary: PageSummary{FirstIndex: 1, LastIndex: 1, TotalCount: 1},
				Items:   fullItems(1),
			},
		}))

		if _, err := fetcher.FetchPage(context.Background(), model.SearchQuery{Keyword: "数学"}, 1); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(getter.paths) != 1 || getter.paths[0] != searchPath {
			t.Errorf("expected one request to %q, got %v", searchPath, getter.paths)
		}
		if got := getter.queries[0].Get("q"); got != "数学" {
			t.Errorf("expected keyword to be forwarded, got %q", got)
		}
	})
}

// TestPageFetcher_FetchDetail tests detail fetching.
func TestPageFetcher_FetchDetail(t *testing.T) {
	t.Parallel()

	getter := &fakeGetter{body: []byte(detailPage())}
	fetcher := NewPageFetcher(getter)

	detail, err := fetcher.FetchDetail(context.Background(), "30001", 2023)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if detail.TimetableCode != "30001" {
		t.Errorf("unexpected timetable code %q", detail.TimetableCode)
	}
	if len(getter.paths) != 1 || getter.paths[0] != detailPath {
		t.Errorf("expected one request to %q, got %v", detailPath, getter.paths)
	}
	if got := getter.queries[0].Get("year"); got != "2023" {
		t.Errorf("expected year 2023, got %q", got)
	}
}

// TestPageFetcher_Lookups tests code resolution in both directions.
func TestPageFetcher_Lookups(t *testing.T) {
	t.Parallel()

	t.Run("resolves codes via search", func(t *testing.T) {
		t.Parallel()

		fetcher := NewPageFetcher(&fakeGetter{}, WithPageParser(fakePageParser{
			parsed: &ParsedPage{
				Summary: PageSummary{FirstIndex: 1, LastIndex: 1, TotalCount: 1},
				Items: []model.Item{{
					TimetableCode: "30001",
					CommonCode:    model.CommonCode("FEN-CO2123L1"),
				}},
			},
		}))

		common, err := fetcher.LookupCommonCode(context.Background(), "30001")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if common != model.CommonCode("FEN-CO2123L1") {
			t.Errorf("unexpected common code %q", common)
		}

		timetable, err := fetcher.LookupTimetableCode(context.Background(), "FEN-CO2123L1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if timetable != "30001" {
			t.Errorf("unexpected timetable code %q", timetable)
		}
	})

	t.Run("no match is ErrNotFound", func(t *testing.T) {
		t.Parallel()

		fetcher := NewPageFetcher(&fakeGetter{}, WithPageParser(fakePageParser{err: ErrNoResults}))

		if _, err := fetcher.LookupCommonCode(context.Background(), "99999"); !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
		if _, err := fetcher.LookupTimetableCode(context.Background(), "XXX-XX0000X0"); !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}
