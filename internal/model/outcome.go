package model

import "time"

// Outcome is the aggregated result of one crawl: every successfully fetched
// detail in arrival order, plus counts of what was lost along the way.
//
// A crawl that loses pages or details still produces a non-error Outcome;
// failures are counted here, never merged as partial records. Callers
// needing strict completeness compare len(Details) against TotalExpected.
type Outcome struct {
	// RunID identifies this crawl run in logs and persisted rows.
	RunID string `json:"run_id"`

	// QueryID is the content-derived identifier of the query that was
	// crawled (SearchQuery.ID).
	QueryID string `json:"query_id"`

	// Details are the fetched records in completion order. Completion
	// order is not item order: concurrent fetches finish when they finish.
	Details []Detail `json:"details"`

	// TotalExpected is the result-set size the first page reported.
	TotalExpected int `json:"total_expected"`

	// FailedPages counts result pages dropped after retry exhaustion.
	// Each dropped page loses up to PageSize items silently.
	FailedPages int `json:"failed_pages"`

	// FailedDetails counts detail fetches dropped after retry exhaustion.
	FailedDetails int `json:"failed_details"`

	// StartedAt and FinishedAt bound the crawl.
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}

// Complete reports whether every expected record was fetched.
func (o Outcome) Complete() bool {
	return o.FailedPages == 0 && o.FailedDetails == 0 && len(o.Details) == o.TotalExpected
}

// Duration returns the wall-clock length of the crawl.
func (o Outcome) Duration() time.Duration {
	return o.FinishedAt.Sub(o.StartedAt)
}
