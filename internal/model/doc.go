// Package model defines the core data structures used throughout coursecrawl.
//
// This package contains the following main types:
//   - Item: A search-result row, the summary of one course
//   - Detail: The full record for one course
//   - SearchPage: One paginated slice of search results with its metadata
//   - SearchQuery: Immutable query parameters with a content-derived identity
//   - Outcome: The aggregated, failure-filtered result of one crawl
//
// It also carries the catalogue's vocabulary (semesters, weekdays, faculties,
// common-code decoding, scoring-method keywords), which the parsers and the
// export layer share.
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. Multiple packages (catalog, crawler, export, database) need
// these types, so centralizing them prevents import cycles.
//
// The models are designed to be serializable to JSON for export and
// database storage.
package model
