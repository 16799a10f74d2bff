// Package interfaces defines the shared types and contracts for all PDF Sentry modules.
// This package has ZERO dependencies on any other pkg/ package.
// All cross-module communication goes through types and interfaces defined here.
package interfaces

import "time"

// KeywordCounts maps a PDF structural keyword (e.g. "/JavaScript") to the
// number of times an indexing tool reported it. Missing keys mean zero.
type KeywordCounts map[string]int

// Get returns the count for keyword, or 0 when it was not reported.
func (kc KeywordCounts) Get(keyword string) int {
	return kc[keyword]
}

// KeywordWeight is one entry of the ordered weight table.
type KeywordWeight struct {
	Keyword string `json:"keyword"`
	Weight  int    `json:"weight"`
}

// RiskLevel is the discrete bucket derived from a risk score.
type RiskLevel string

const (
	RiskLow      RiskLevel = "LOW"
	RiskMedium   RiskLevel = "MEDIUM"
	RiskHigh     RiskLevel = "HIGH"
	RiskCritical RiskLevel = "CRITICAL" // Not produced by the default thresholds
)

// Rank orders levels from least to most severe. Unknown levels rank lowest.
func (l RiskLevel) Rank() int {
	switch l {
	case RiskMedium:
		return 1
	case RiskHigh:
		return 2
	case RiskCritical:
		return 3
	default:
		return 0
	}
}

// KeywordContribution records how much one keyword added to the raw total.
type KeywordContribution struct {
	Keyword      string `json:"keyword"`
	Count        int    `json:"count"`
	Weight       int    `json:"weight"`
	Contribution int    `json:"contribution"`
}

// RiskAssessment is the output of the scoring engine.
type RiskAssessment struct {
	Score      int                   `json:"risk_score"` // 0-100
	Level      RiskLevel             `json:"risk_level"`
	Highlights []string              `json:"highlights"`
	Breakdown  []KeywordContribution `json:"breakdown,omitempty"`
}

// ToolResult captures one invocation of an external scanner.
type ToolResult struct {
	Name       string        `json:"name"`
	OK         bool          `json:"ok"`
	ReturnCode int           `json:"returncode"`
	Stdout     string        `json:"stdout"`
	Stderr     string        `json:"stderr"`
	Note       string        `json:"note,omitempty"`
	Duration   time.Duration `json:"duration"`
}

// Report is the final output of a PDF Sentry scan.
type Report struct {
	ID          string        `json:"id"`
	Timestamp   time.Time     `json:"timestamp"`
	FileName    string        `json:"file_name"`
	FileSize    int64         `json:"file_size"`
	SHA256      string        `json:"sha256"`
	PDFiDCounts KeywordCounts `json:"pdfid_counts"`
	RiskAssessment
	Summary        string        `json:"summary"`
	Tools          []ToolResult  `json:"tools"`
	RebuiltPDFPath string        `json:"rebuilt_pdf_path,omitempty"`
	Duration       time.Duration `json:"duration"`
}

// FileInfo describes the scanned input file.
type FileInfo struct {
	Name   string
	Size   int64
	SHA256 string
}
