// Package audit writes one JSON line per completed scan.
package audit

import (
	"encoding/json"
	"io"
	"os"
	"sync"
	"time"

	"github.com/toyinlola/pdfsentry/pkg/interfaces"
)

// Entry represents a single audit log entry.
type Entry struct {
	Timestamp time.Time            `json:"timestamp"`
	ReportID  string               `json:"report_id"`
	Source    string               `json:"source"` // "cli", "ci" or "http"
	FileName  string               `json:"file_name"`
	FileSize  int64                `json:"file_size"`
	SHA256    string               `json:"sha256"`
	Score     int                  `json:"risk_score"`
	Level     interfaces.RiskLevel `json:"risk_level"`
	Remote    string               `json:"remote,omitempty"`
	ToolsOK   int                  `json:"tools_ok"`
	ToolsRun  int                  `json:"tools_run"`
}

// EntryFromReport builds an entry from a finished report.
func EntryFromReport(rpt *interfaces.Report, source string) Entry {
	ok := 0
	for _, t := range rpt.Tools {
		if t.OK {
			ok++
		}
	}
	return Entry{
		Timestamp: rpt.Timestamp.UTC(),
		ReportID:  rpt.ID,
		Source:    source,
		FileName:  rpt.FileName,
		FileSize:  rpt.FileSize,
		SHA256:    rpt.SHA256,
		Score:     rpt.Score,
		Level:     rpt.Level,
		ToolsOK:   ok,
		ToolsRun:  len(rpt.Tools),
	}
}

// Logger writes JSON-line audit log entries.
type Logger struct {
	mu     sync.Mutex
	closer io.Closer
	enc    *json.Encoder
}

// NewLogger creates a new audit logger writing to the given writer.
func NewLogger(w io.Writer) *Logger {
	return &Logger{enc: json.NewEncoder(w)}
}

// NewFileLogger creates a logger that writes to a file at the given path.
// Creates the file if it doesn't exist, appends if it does.
func NewFileLogger(path string) (*Logger, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, err
	}
	l := NewLogger(f)
	l.closer = f
	return l, nil
}

// Log writes a single audit entry as a JSON line.
func (l *Logger) Log(entry Entry) error {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.enc.Encode(entry)
}

// Close closes the underlying file, if the logger owns one.
func (l *Logger) Close() error {
	if l.closer == nil {
		return nil
	}
	return l.closer.Close()
}

// NopLogger returns a logger that discards all entries.
func NopLogger() *Logger {
	return NewLogger(io.Discard)
}
