package catalog

import "errors"

// Catalogue fetching and parsing errors.
//
// Design decision: ErrParse and ErrStructuralMismatch are distinct because
// they fail differently. A parse failure may be a momentarily malformed
// response and is worth retrying; a structural mismatch is the pagination
// arithmetic contradicting the parsed content, which a retry cannot fix.
var (
	// ErrParse is returned when an expected structural anchor is absent
	// from a page body.
	ErrParse = errors.New("page body does not match expected structure")

	// ErrNoResults signals that the results-summary region is absent,
	// i.e. the query matched nothing. PageFetcher maps it to an empty
	// page; it never escapes to callers of FetchPage.
	ErrNoResults = errors.New("no results region on page")

	// ErrStructuralMismatch is returned when a page's reported pagination
	// metadata contradicts its parsed content. It is the primary sentinel
	// for "the site format changed".
	ErrStructuralMismatch = errors.New("pagination metadata contradicts parsed content")

	// ErrUnexpectedStatus is returned when the catalogue answers with a
	// non-200 status code.
	ErrUnexpectedStatus = errors.New("unexpected HTTP status")

	// ErrNotFound is returned by the code lookups when a search matched
	// no course.
	ErrNotFound = errors.New("no course matched")
)
