package interfaces

import (
	"context"
	"io"
)

// KeywordParser extracts keyword counts from raw indexing-tool output.
type KeywordParser interface {
	// Parse converts tool output into KeywordCounts. Unrecognized lines are skipped.
	Parse(out string) KeywordCounts
}

// Assessor maps keyword counts to a risk assessment.
type Assessor interface {
	Assess(counts KeywordCounts) RiskAssessment
}

// Scanner runs the full scan workflow for a single PDF.
// It coordinates the tool engine, parser, scorer, and report generator.
type Scanner interface {
	// Scan reads the PDF from r, names it name in the report, and returns a report.
	Scan(ctx context.Context, name string, r io.Reader) (*Report, error)

	// ScanFile scans a PDF on disk.
	ScanFile(ctx context.Context, path string) (*Report, error)
}
