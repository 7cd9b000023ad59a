// Package catalog talks to the course catalogue website and turns its
// server-rendered pages into model values.
//
// The catalogue exposes no API: search results and course details exist only
// as HTML whose layout this package interprets. Because of that, fetching is
// paired with consistency checks. A results page reports its own index range
// and total count, and PageFetcher cross-checks the parsed item count and
// the requested page number against that arithmetic. A contradiction means
// the site layout drifted from our assumptions (or the server returned a
// truncated page) and surfaces as ErrStructuralMismatch rather than as
// silently wrong data.
//
// # Components
//
//   - Session: one shared HTTP session; every request passes the rate limiter
//   - PageParser / DetailParser: pure HTML-to-record mappings
//   - PageFetcher: fetch + parse + structural validation for one page or
//     one course detail
//
// Design decision: We parse with golang.org/x/net/html rather than regex
// because:
//  1. It correctly handles the malformed HTML real sites serve
//  2. Class-based anchor lookup survives cosmetic markup changes
//  3. Missing anchors become precise ErrParse values instead of empty matches
package catalog
