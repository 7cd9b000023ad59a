// Package log provides logging utilities for coursecrawl, built on top of
// the standard slog package.
//
// This package extends slog to provide:
//   - Automatic truncation of oversized attribute values
//   - Configurable log levels with verbose mode support
//   - Consistent log formatting across the application
//
// # Truncation
//
// Crawl errors routinely embed fragments of fetched HTML and long Japanese
// course descriptions. The TruncateHandler caps string attributes at a
// fixed length so a single malformed page cannot flood the log output.
//
// # Usage
//
//	// Create a logger writing to stderr
//	logger := log.NewLogger(os.Stderr, true) // verbose=true
//
//	// Use as a standard slog.Logger
//	logger.Warn("dropping result page",
//	    "page", 3,
//	    "error", err, // truncated if the message embeds page content
//	)
//
//	// Set as default logger
//	slog.SetDefault(logger)
package log
