package export

import (
	"encoding/json"
	"io"

	"github.com/utcatalog/coursecrawl/internal/model"
)

// JSONWriter outputs outcomes in JSON format.
// This format is designed for tool integration and programmatic processing.
type JSONWriter struct {
	baseWriter

	// indent enables pretty-printed JSON output.
	// When false, output is compact (no extra whitespace).
	indent bool

	// indentPrefix is the prefix for each line in indented output.
	indentPrefix string

	// indentString is the indentation string (typically "  " or "\t").
	indentString string
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithIndent enables pretty-printed JSON output.
// The prefix is prepended to each line, and indent is used for each level.
func WithIndent(prefix, indent string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
		w.indentPrefix = prefix
		w.indentString = indent
	}
}

// WithPrettyPrint enables pretty-printed JSON with default indentation.
// This is a convenience wrapper for WithIndent("", "  ").
func WithPrettyPrint() JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
		w.indentPrefix = ""
		w.indentString = "  "
	}
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the outcome in JSON format.
func (w *JSONWriter) Write(outcome *model.Outcome) (int, error) {
	return w.writeJSON(outcome)
}

// writeJSON marshals the given value to JSON and writes it to the output.
func (w *JSONWriter) writeJSON(v any) (int, error) {
	var data []byte
	var err error

	if w.indent {
		data, err = json.MarshalIndent(v, w.indentPrefix, w.indentString)
	} else {
		data, err = json.Marshal(v)
	}

	if err != nil {
		return 0, err
	}

	// Add trailing newline for better terminal output
	data = append(data, '\n')

	return w.output.Write(data)
}

// JSONExport wraps an outcome with generator metadata.
//
// Design decision: We wrap the outcome rather than adding a version field
// to Outcome because this keeps output-specific concerns out of the core
// data structure.
type JSONExport struct {
	// Version is the coursecrawl version that generated this export.
	Version string `json:"version"`

	// Outcome is the full crawl outcome.
	Outcome *model.Outcome `json:"outcome"`
}

// FullJSONWriter outputs outcomes wrapped with generator metadata.
type FullJSONWriter struct {
	*JSONWriter

	// version is the coursecrawl version string.
	version string
}

// NewFullJSONWriter creates a writer for outcomes with metadata.
func NewFullJSONWriter(output io.Writer, version string, opts ...JSONWriterOption) *FullJSONWriter {
	return &FullJSONWriter{
		JSONWriter: NewJSONWriter(output, opts...),
		version:    version,
	}
}

// Write outputs the outcome wrapped with metadata.
func (w *FullJSONWriter) Write(outcome *model.Outcome) (int, error) {
	return w.writeJSON(&JSONExport{Version: w.version, Outcome: outcome})
}
