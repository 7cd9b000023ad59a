package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
// These mirror what the catalogue tolerates in practice: conservative
// request spacing with a modest fan-out for detail pages.
const (
	// DefaultBaseURL is the course catalogue's public address.
	DefaultBaseURL = "https://catalog.he.u-tokyo.ac.jp"

	// DefaultTimeout is the per-request HTTP timeout. The catalogue is a
	// server-rendered site; 30 seconds covers even its slow result pages.
	DefaultTimeout = 30 * time.Second

	// DefaultMinInterval is the minimum spacing between requests.
	// 1 second is a politeness setting: the catalogue serves students,
	// and a crawler should stay invisible in its load profile.
	DefaultMinInterval = 1 * time.Second

	// DefaultDetailConcurrency of 10 concurrent detail fetches matches one
	// result page of courses in flight. Request spacing is enforced by the
	// rate limiter regardless, so this bounds memory and socket use, not
	// request rate.
	DefaultDetailConcurrency = 10

	// DefaultRetryAttempts is the number of attempts per page before the
	// page is dropped.
	DefaultRetryAttempts = 3

	// DefaultRetryMaxElapsed bounds the total time spent retrying one page.
	DefaultRetryMaxElapsed = 10 * time.Second

	// AppName is the application name used for XDG directory paths.
	AppName = "coursecrawl"

	// DefaultUserAgent identifies coursecrawl in HTTP requests.
	// Using a descriptive User-Agent is good practice and allows operators
	// to identify crawler traffic in their logs.
	DefaultUserAgent = "coursecrawl/1.0 (+https://github.com/utcatalog/coursecrawl)"

	// DefaultMaxBodySize limits the maximum response body size to read.
	// 5MB is sufficient for catalogue pages while preventing memory
	// exhaustion from unexpectedly large responses.
	DefaultMaxBodySize = 5 * 1024 * 1024 // 5MB
)

// Config holds all configuration options for coursecrawl.
// This struct is designed to be populated from CLI flags and passed through
// the application via dependency injection rather than global state.
//
// Design decision: We use a single flat struct instead of nested structs
// (e.g., CrawlConfig, ExportConfig) for simplicity. The number of options
// is manageable, and nesting would add complexity without significant benefit.
type Config struct {
	// BaseURL is the catalogue address. Overridable mainly for tests and
	// mirrors.
	BaseURL string

	// Timeout is the HTTP timeout for each request.
	Timeout time.Duration

	// MinInterval is the minimum spacing between any two requests.
	// Zero disables throttling.
	MinInterval time.Duration

	// DetailConcurrency is the maximum number of concurrent detail fetches.
	DetailConcurrency int

	// Year is the academic year for detail requests.
	// Zero means the current year.
	Year int

	// RetryAttempts is the number of attempts per fetch before dropping it.
	RetryAttempts int

	// RetryMaxElapsed bounds the total time spent retrying one fetch.
	RetryMaxElapsed time.Duration

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// ConfigFilePath is the path to the presets file.
	// If empty, the tool searches for .coursecrawl in the current directory
	// and then in the user's home directory.
	ConfigFilePath string

	// Presets holds named search presets loaded from the presets file.
	Presets *File

	// JSONExport, CSVExport, and MarkdownExport select the output format.
	// At most one may be set; none means a short text summary.
	JSONExport     bool
	CSVExport      bool
	MarkdownExport bool

	// OutputFile is the output file path for the export.
	// When set, the export is written to this file instead of stdout.
	OutputFile string

	// DBDir is the directory path for storing the SQLite database.
	// When set, crawl results are saved for historical comparison.
	// Defaults to the XDG data directory.
	DBDir string

	// SaveToDB indicates whether to save crawl results to the database.
	SaveToDB bool

	// UserAgent is the User-Agent header sent with HTTP requests.
	UserAgent string

	// MaxBodySize is the maximum response body size in bytes to read.
	// Set to 0 to use the default (5MB).
	MaxBodySize int64
}

// NewConfig creates a new Config with default values.
// All fields are set to safe, sensible defaults that work for most use cases.
// Users can override specific values after creation.
//
// Design decision: We use a constructor function instead of relying on
// zero values because many defaults are non-zero (e.g., timeout, interval).
// This also serves as documentation of what the defaults are.
func NewConfig() *Config {
	return &Config{
		BaseURL:           DefaultBaseURL,
		Timeout:           DefaultTimeout,
		MinInterval:       DefaultMinInterval,
		DetailConcurrency: DefaultDetailConcurrency,
		RetryAttempts:     DefaultRetryAttempts,
		RetryMaxElapsed:   DefaultRetryMaxElapsed,
		UserAgent:         DefaultUserAgent,
		MaxBodySize:       DefaultMaxBodySize,
	}
}

// EffectiveYear returns the academic year to crawl, defaulting to the
// current year.
func (c *Config) EffectiveYear() int {
	if c.Year > 0 {
		return c.Year
	}
	return time.Now().Year()
}

// XDGDataDir returns the XDG data directory for coursecrawl.
// This follows the XDG Base Directory Specification.
// On Linux: ~/.local/share/coursecrawl
// On macOS: ~/Library/Application Support/coursecrawl
// On Windows: %LOCALAPPDATA%\coursecrawl
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for coursecrawl.
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// XDGCacheDir returns the XDG cache directory for coursecrawl.
func XDGCacheDir() string {
	return filepath.Join(xdg.CacheHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns a specific error describing what is invalid.
//
// Design decision: We validate at the config level rather than at each
// point of use to fail fast and provide clear error messages upfront.
// This is called once after CLI parsing, before any crawling begins.
//
// We chose to return the first error found rather than collecting all errors
// because fixing one error often makes others irrelevant.
func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.MinInterval < 0 {
		return ErrInvalidInterval
	}
	if c.DetailConcurrency <= 0 {
		return ErrInvalidConcurrency
	}
	if c.RetryAttempts <= 0 {
		return ErrInvalidRetryAttempts
	}

	// The export formats are mutually exclusive
	formats := 0
	for _, set := range []bool{c.JSONExport, c.CSVExport, c.MarkdownExport} {
		if set {
			formats++
		}
	}
	if formats > 1 {
		return ErrConflictingExportFormats
	}

	if c.MaxBodySize < 0 {
		return ErrInvalidMaxBodySize
	}
	if c.Year < 0 {
		return ErrInvalidYear
	}

	return nil
}
