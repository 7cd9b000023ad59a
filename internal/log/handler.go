package log

import (
	"context"
	"io"
	"log/slog"
)

// DefaultMaxAttrLen is the length at which string attribute values are cut.
// 512 runes keeps even a verbose parse error on one screen.
const DefaultMaxAttrLen = 512

// truncationSuffix marks values that were cut.
const truncationSuffix = "...(truncated)"

// TruncateHandler wraps an slog.Handler to cap string attribute values.
// It intercepts log records and truncates oversized values before passing
// them to the underlying handler.
//
// Design decision: We use a handler wrapper rather than a custom logger
// because:
//  1. It integrates seamlessly with standard slog APIs
//  2. It works with any underlying handler (text, JSON, etc.)
//  3. Every component that takes a *slog.Logger gets truncation for free
type TruncateHandler struct {
	// handler is the underlying slog handler that receives capped records.
	handler slog.Handler

	// maxLen is the maximum string attribute length in runes.
	maxLen int
}

// NewTruncateHandler creates a TruncateHandler wrapping the given handler.
// String attributes longer than maxLen runes are cut before being passed on.
// If handler is nil, the returned TruncateHandler uses slog.Default().Handler().
// A maxLen below 1 uses DefaultMaxAttrLen.
func NewTruncateHandler(handler slog.Handler, maxLen int) *TruncateHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	if maxLen < 1 {
		maxLen = DefaultMaxAttrLen
	}
	return &TruncateHandler{handler: handler, maxLen: maxLen}
}

// Enabled reports whether the handler handles records at the given level.
// It delegates to the underlying handler.
func (h *TruncateHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle truncates the record's attributes and passes it to the underlying handler.
func (h *TruncateHandler) Handle(ctx context.Context, r slog.Record) error {
	capped := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)

	r.Attrs(func(a slog.Attr) bool {
		capped.AddAttrs(h.truncateAttr(a))
		return true
	})

	return h.handler.Handle(ctx, capped)
}

// WithAttrs returns a new handler with the given attributes added.
// Attributes are truncated before being added.
func (h *TruncateHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	capped := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		capped[i] = h.truncateAttr(a)
	}
	return &TruncateHandler{handler: h.handler.WithAttrs(capped), maxLen: h.maxLen}
}

// WithGroup returns a new handler with the given group name.
func (h *TruncateHandler) WithGroup(name string) slog.Handler {
	return &TruncateHandler{handler: h.handler.WithGroup(name), maxLen: h.maxLen}
}

// truncateAttr caps a single attribute, recursively handling groups.
// Non-string kinds pass through untouched, except errors and Stringers,
// whose resolved text is where page content tends to hide.
func (h *TruncateHandler) truncateAttr(a slog.Attr) slog.Attr {
	a.Value = a.Value.Resolve()

	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		capped := make([]slog.Attr, len(attrs))
		for i, groupAttr := range attrs {
			capped[i] = h.truncateAttr(groupAttr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(capped...)}
	}

	if a.Value.Kind() == slog.KindAny {
		if err, ok := a.Value.Any().(error); ok {
			return slog.String(a.Key, h.truncate(err.Error()))
		}
		return a
	}

	if a.Value.Kind() == slog.KindString {
		return slog.String(a.Key, h.truncate(a.Value.String()))
	}

	return a
}

// truncate cuts s to the handler's maximum length in runes.
func (h *TruncateHandler) truncate(s string) string {
	runes := []rune(s)
	if len(runes) <= h.maxLen {
		return s
	}
	return string(runes[:h.maxLen]) + truncationSuffix
}

// NewLogger creates a new slog.Logger with attribute truncation.
//
// Parameters:
//   - w: The io.Writer to write log output to (typically os.Stderr)
//   - verbose: If true, sets log level to Debug; otherwise Warn
//
// Returns a *slog.Logger that can be used with slog.SetDefault() or passed
// to components that accept *slog.Logger.
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	textHandler := slog.NewTextHandler(w, opts)
	return slog.New(NewTruncateHandler(textHandler, DefaultMaxAttrLen))
}

// NewJSONLogger creates a new slog.Logger with attribute truncation that
// outputs JSON format. Useful for structured log aggregation.
//
// Parameters:
//   - w: The io.Writer to write log output to
//   - verbose: If true, sets log level to Debug; otherwise Warn
//
// Returns a *slog.Logger configured for JSON output with truncation.
func NewJSONLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	jsonHandler := slog.NewJSONHandler(w, opts)
	return slog.New(NewTruncateHandler(jsonHandler, DefaultMaxAttrLen))
}
