package report

import (
	"encoding/json"
	"io"

	"github.com/toyinlola/pdfsentry/pkg/interfaces"
)

const defaultJSONIndent = "  "

// JSONFormatter writes reports as JSON.
type JSONFormatter struct {
	indent string
}

// JSONOption configures the JSONFormatter.
type JSONOption func(*JSONFormatter)

// WithIndent sets the indent string. An empty indent writes compact JSON.
func WithIndent(indent string) JSONOption {
	return func(f *JSONFormatter) {
		f.indent = indent
	}
}

// NewJSONFormatter creates a JSON report formatter, indented by default.
func NewJSONFormatter(opts ...JSONOption) *JSONFormatter {
	f := &JSONFormatter{indent: defaultJSONIndent}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Format writes a single report as one JSON document.
func (f *JSONFormatter) Format(w io.Writer, report *interfaces.Report) error {
	return f.encode(w, report)
}

// FormatBatch writes reports as one JSON array. A nil batch is written as [].
func (f *JSONFormatter) FormatBatch(w io.Writer, reports []*interfaces.Report) error {
	if reports == nil {
		reports = []*interfaces.Report{}
	}
	return f.encode(w, reports)
}

func (f *JSONFormatter) encode(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	if f.indent != "" {
		enc.SetIndent("", f.indent)
	}
	return enc.Encode(v)
}
