// Package export renders crawl outcomes in output formats.
//
// # Formats
//
//   - JSON: for tool integration and programmatic processing
//   - CSV: one row per course, for spreadsheets and dataframe loading
//   - Markdown: a human-readable run report with summary tables
//
// All formats render the same Outcome; pick by destination. MultiWriter
// fans one outcome out to several formats at once, for example compact
// JSON to a file and Markdown to the terminal.
package export
