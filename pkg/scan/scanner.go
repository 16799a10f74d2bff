// Package scan runs the full PDF scan: stage the file, run the external
// tools, parse PDFiD output, score it, and assemble the report.
package scan

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/toyinlola/pdfsentry/pkg/interfaces"
	"github.com/toyinlola/pdfsentry/pkg/pdfid"
	"github.com/toyinlola/pdfsentry/pkg/report"
	"github.com/toyinlola/pdfsentry/pkg/tools"
)

// Staged file and rebuilt-copy naming.
const (
	tempDirPattern = "pdfsentry_*"
	inputFileName  = "input.pdf"
	rebuiltPrefix  = "pdfsentry_rebuilt_"
)

// Scanner implements interfaces.Scanner.
type Scanner struct {
	engine     *tools.Engine
	parser     interfaces.KeywordParser
	assessor   interfaces.Assessor
	generator  *report.Generator
	rebuiltDir string
	maxBytes   int64
}

// Option configures the Scanner.
type Option func(*Scanner)

// WithParser overrides the PDFiD output parser.
func WithParser(p interfaces.KeywordParser) Option {
	return func(s *Scanner) {
		s.parser = p
	}
}

// WithGenerator overrides the report generator.
func WithGenerator(g *report.Generator) Option {
	return func(s *Scanner) {
		s.generator = g
	}
}

// WithRebuiltDir sets where qpdf-rebuilt copies are persisted.
// Defaults to os.TempDir(). An empty dir disables persistence.
func WithRebuiltDir(dir string) Option {
	return func(s *Scanner) {
		s.rebuiltDir = dir
	}
}

// WithMaxBytes rejects inputs larger than n bytes. Zero means no limit.
func WithMaxBytes(n int64) Option {
	return func(s *Scanner) {
		s.maxBytes = n
	}
}

// New creates a Scanner that runs engine and scores with assessor.
func New(engine *tools.Engine, assessor interfaces.Assessor, opts ...Option) *Scanner {
	s := &Scanner{
		engine:     engine,
		parser:     pdfid.NewParser(),
		assessor:   assessor,
		generator:  report.NewGenerator(),
		rebuiltDir: os.TempDir(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ErrTooLarge is returned when the input exceeds the configured size limit.
var ErrTooLarge = errors.New("scan: input exceeds size limit")

// ScanFile scans the PDF at path.
func (s *Scanner) ScanFile(ctx context.Context, path string) (*interfaces.Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("scan: opening %s: %w", path, err)
	}
	defer f.Close()

	return s.Scan(ctx, filepath.Base(path), f)
}

// Scan stages r in a private temp directory and scans it.
// Tool failures never fail the scan; they show up in the report and, for
// PDFiD, as empty keyword counts.
func (s *Scanner) Scan(ctx context.Context, name string, r io.Reader) (*interfaces.Report, error) {
	started := time.Now()

	dir, err := os.MkdirTemp("", tempDirPattern)
	if err != nil {
		return nil, fmt.Errorf("scan: creating temp dir: %w", err)
	}
	defer func() {
		if rmErr := os.RemoveAll(dir); rmErr != nil {
			slog.Warn("scan: removing temp dir", "dir", dir, "error", rmErr)
		}
	}()

	target := &tools.Target{Path: filepath.Join(dir, inputFileName), Dir: dir}
	info, err := s.stage(r, target.Path)
	if err != nil {
		return nil, err
	}
	info.Name = name

	slog.Info("scanning pdf", "name", name, "size", info.Size, "sha256", info.SHA256)

	results, err := s.engine.Run(ctx, target)
	if err != nil {
		return nil, fmt.Errorf("scan: running tools: %w", err)
	}

	counts := s.keywordCounts(results)
	assessment := s.assessor.Assess(counts)

	slog.Info("assessment complete", "name", name, "score", assessment.Score, "level", assessment.Level)

	return s.generator.Generate(report.Input{
		File:           info,
		Counts:         counts,
		Assessment:     assessment,
		Tools:          results,
		RebuiltPDFPath: s.persistRebuilt(target, name),
		Started:        started,
	}), nil
}

// stage copies r to path while measuring size and SHA-256.
func (s *Scanner) stage(r io.Reader, path string) (interfaces.FileInfo, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o600)
	if err != nil {
		return interfaces.FileInfo{}, fmt.Errorf("scan: staging input: %w", err)
	}
	defer f.Close()

	src := r
	if s.maxBytes > 0 {
		src = io.LimitReader(r, s.maxBytes+1)
	}

	h := sha256.New()
	n, err := io.Copy(io.MultiWriter(f, h), src)
	if err != nil {
		return interfaces.FileInfo{}, fmt.Errorf("scan: staging input: %w", err)
	}
	if s.maxBytes > 0 && n > s.maxBytes {
		return interfaces.FileInfo{}, ErrTooLarge
	}
	if err := f.Close(); err != nil {
		return interfaces.FileInfo{}, fmt.Errorf("scan: staging input: %w", err)
	}

	return interfaces.FileInfo{Size: n, SHA256: hex.EncodeToString(h.Sum(nil))}, nil
}

// keywordCounts parses the PDFiD result, or returns empty counts when PDFiD
// did not run successfully.
func (s *Scanner) keywordCounts(results []interfaces.ToolResult) interfaces.KeywordCounts {
	for _, r := range results {
		if r.Name != tools.PDFiDScript {
			continue
		}
		if !r.OK {
			slog.Warn("pdfid did not succeed; scoring with empty counts", "rc", r.ReturnCode)
			break
		}
		return s.parser.Parse(r.Stdout)
	}
	return interfaces.KeywordCounts{}
}

// persistRebuilt copies a qpdf-rebuilt file out of the scan's temp dir so it
// outlives the scan. Returns "" when there is nothing to keep.
func (s *Scanner) persistRebuilt(target *tools.Target, name string) string {
	if s.rebuiltDir == "" {
		return ""
	}

	rebuilt := filepath.Join(target.Dir, tools.RebuiltFileName)
	data, err := os.ReadFile(rebuilt)
	if err != nil {
		return ""
	}

	dest := filepath.Join(s.rebuiltDir, rebuiltPrefix+safeName(name))
	if err := os.WriteFile(dest, data, 0o600); err != nil {
		slog.Warn("scan: persisting rebuilt pdf", "path", dest, "error", err)
		return ""
	}
	return dest
}

// safeName reduces an untrusted upload name to a single path element.
func safeName(name string) string {
	base := filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	switch base {
	case ".", "..", "/", "":
		return inputFileName
	}
	return base
}
