// Package report generates scan reports from tool results and risk assessments.
package report

import (
	"crypto/rand"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/toyinlola/pdfsentry/pkg/interfaces"
)

// Generator builds reports from scan outputs.
type Generator struct {
	now func() time.Time
}

// Option configures the Generator.
type Option func(*Generator)

// WithClock overrides the time source, for deterministic reports in tests.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		g.now = now
	}
}

// NewGenerator creates a report generator.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{now: time.Now}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Input gathers everything a scan produced.
type Input struct {
	File           interfaces.FileInfo
	Counts         interfaces.KeywordCounts
	Assessment     interfaces.RiskAssessment
	Tools          []interfaces.ToolResult
	RebuiltPDFPath string
	Started        time.Time
}

// Generate produces a Report from a scan's outputs.
func (g *Generator) Generate(in Input) *interfaces.Report {
	now := g.now()

	counts := in.Counts
	if counts == nil {
		counts = interfaces.KeywordCounts{}
	}
	tools := in.Tools
	if tools == nil {
		tools = []interfaces.ToolResult{}
	}

	var elapsed time.Duration
	if !in.Started.IsZero() {
		elapsed = now.Sub(in.Started)
	}

	return &interfaces.Report{
		ID:             generateID(now),
		Timestamp:      now,
		FileName:       in.File.Name,
		FileSize:       in.File.Size,
		SHA256:         in.File.SHA256,
		PDFiDCounts:    counts,
		RiskAssessment: in.Assessment,
		Summary:        buildSummary(in.Assessment, tools),
		Tools:          tools,
		RebuiltPDFPath: in.RebuiltPDFPath,
		Duration:       elapsed,
	}
}

// buildSummary creates a one-line summary of the assessment and tool health.
func buildSummary(ra interfaces.RiskAssessment, tools []interfaces.ToolResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Risk Score: %d/100 [%s]", ra.Score, ra.Level)

	if n := len(ra.Breakdown); n > 0 {
		fmt.Fprintf(&b, " — %d risky keyword(s)", n)
	} else {
		b.WriteString(" — no risky keywords")
	}

	failed := 0
	for _, t := range tools {
		if !t.OK {
			failed++
		}
	}
	if len(tools) > 0 {
		fmt.Fprintf(&b, " (%d/%d tools ok)", len(tools)-failed, len(tools))
	}
	return b.String()
}

// generateID creates a sortable unique report identifier.
func generateID(t time.Time) string {
	id := ulid.MustNew(ulid.Timestamp(t), rand.Reader)
	return "rpt-" + strings.ToLower(id.String())
}
