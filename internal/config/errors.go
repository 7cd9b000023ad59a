package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages.
var (
	// ErrInvalidTimeout is returned when the timeout is not positive.
	// A timeout of zero or negative would cause immediate request failures.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidInterval is returned when the request interval is negative.
	// A negative interval is invalid; use 0 for unthrottled requests.
	ErrInvalidInterval = errors.New("invalid request interval: must be non-negative")

	// ErrInvalidConcurrency is returned when the detail concurrency is not
	// positive. Zero concurrency would mean no detail fetching at all.
	ErrInvalidConcurrency = errors.New("invalid detail concurrency: must be positive")

	// ErrInvalidRetryAttempts is returned when the retry attempt count is
	// not positive. At least one attempt is needed to fetch anything.
	ErrInvalidRetryAttempts = errors.New("invalid retry attempts: must be positive")

	// ErrConflictingExportFormats is returned when more than one of --json,
	// --csv, and --markdown is specified.
	ErrConflictingExportFormats = errors.New("conflicting export formats: use only one of --json, --csv, --markdown")

	// ErrInvalidMaxBodySize is returned when the max body size is negative.
	// A negative body size is invalid; use 0 to use the default limit.
	ErrInvalidMaxBodySize = errors.New("invalid max body size: must be non-negative")

	// ErrInvalidYear is returned when the academic year is negative.
	ErrInvalidYear = errors.New("invalid academic year: must be non-negative")
)
