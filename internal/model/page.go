package model

// PageSize is the fixed number of results per search page. The catalogue
// offers no page-size parameter; every page except the last carries exactly
// this many items, which is what makes the structural checks possible.
const PageSize = 10

// SearchPage is one paginated slice of search results together with the
// pagination metadata the page reports about itself. Indexes are 1-based
// as printed in the results summary.
type SearchPage struct {
	// Items are the result rows on this page, in display order.
	Items []Item `json:"items"`

	// FirstIndex is the 1-based index of the first item on this page
	// within the whole result set.
	FirstIndex int `json:"first_index"`

	// LastIndex is the 1-based index of the last item on this page.
	LastIndex int `json:"last_index"`

	// CurrentCount is LastIndex - FirstIndex + 1.
	CurrentCount int `json:"current_count"`

	// TotalCount is the size of the whole result set.
	TotalCount int `json:"total_count"`

	// PageNumber is the 1-based number of this page.
	PageNumber int `json:"page_number"`

	// TotalPages is ceil(TotalCount / PageSize).
	TotalPages int `json:"total_pages"`
}

// IsEmpty reports whether the query matched nothing. An empty page carries
// all-zero metadata and no items.
func (p SearchPage) IsEmpty() bool {
	return p.TotalCount == 0 && len(p.Items) == 0
}

// IsLast reports whether this is the final page of the result set.
func (p SearchPage) IsLast() bool {
	return p.PageNumber >= p.TotalPages
}
