package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/toyinlola/pdfsentry/pkg/interfaces"
)

// MarkdownFormatter writes a report as Markdown suitable for tickets and PR comments.
type MarkdownFormatter struct{}

// NewMarkdownFormatter creates a Markdown report formatter.
func NewMarkdownFormatter() *MarkdownFormatter {
	return &MarkdownFormatter{}
}

// Format writes the report as Markdown to the given writer.
func (f *MarkdownFormatter) Format(w io.Writer, report *interfaces.Report) error {
	f.writeHeader(w, report)
	f.writeSummaryTable(w, report)
	f.writeHighlights(w, report)
	f.writeKeywords(w, report)
	f.writeTools(w, report)
	f.writeFooter(w, report)
	return nil
}

func (f *MarkdownFormatter) writeHeader(w io.Writer, report *interfaces.Report) {
	fmt.Fprintf(w, "# PDF Sentry Scan Report %s\n\n", levelBadge(report.Level))
}

func (f *MarkdownFormatter) writeSummaryTable(w io.Writer, report *interfaces.Report) {
	fmt.Fprintln(w, "| Metric | Value |")
	fmt.Fprintln(w, "|--------|-------|")
	fmt.Fprintf(w, "| **File** | `%s` |\n", report.FileName)
	fmt.Fprintf(w, "| **Risk Score** | %d/100 %s |\n", report.Score, levelBadge(report.Level))
	fmt.Fprintf(w, "| **Risk Level** | %s |\n", report.Level)
	fmt.Fprintf(w, "| **File Size** | %d bytes |\n", report.FileSize)
	fmt.Fprintf(w, "| **SHA-256** | `%s` |\n", report.SHA256)
	fmt.Fprintln(w)
}

func (f *MarkdownFormatter) writeHighlights(w io.Writer, report *interfaces.Report) {
	fmt.Fprintln(w, "## Security Highlights")
	fmt.Fprintln(w)

	if len(report.Highlights) == 0 {
		fmt.Fprintf(w, "> %s\n\n", NoHighlightsMessage)
		return
	}
	for _, h := range report.Highlights {
		fmt.Fprintf(w, "- %s\n", h)
	}
	fmt.Fprintln(w)
}

func (f *MarkdownFormatter) writeKeywords(w io.Writer, report *interfaces.Report) {
	if len(report.PDFiDCounts) == 0 {
		return
	}

	fmt.Fprintln(w, "## PDFiD Keywords")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "| Keyword | Count | Contribution |")
	fmt.Fprintln(w, "|---------|-------|--------------|")

	contrib := contributionsByKeyword(report.Breakdown)
	for _, kw := range sortedKeywords(report.PDFiDCounts) {
		c := "-"
		if v, ok := contrib[kw]; ok {
			c = fmt.Sprintf("+%d", v)
		}
		fmt.Fprintf(w, "| `%s` | %d | %s |\n", kw, report.PDFiDCounts[kw], c)
	}
	fmt.Fprintln(w)
}

func (f *MarkdownFormatter) writeTools(w io.Writer, report *interfaces.Report) {
	if len(report.Tools) == 0 {
		return
	}

	fmt.Fprintln(w, "## Tool Output")
	fmt.Fprintln(w)

	for _, t := range report.Tools {
		fmt.Fprintf(w, "<details>\n")
		fmt.Fprintf(w, "<summary>%s <strong>%s</strong> — %s</summary>\n\n", toolMark(t), t.Name, t.Note)

		stdout := strings.TrimSpace(t.Stdout)
		stderr := strings.TrimSpace(t.Stderr)
		if stderr != "" {
			fmt.Fprintf(w, "**Standard Error:**\n\n```text\n%s\n```\n\n", stderr)
		}
		if stdout != "" {
			fmt.Fprintf(w, "**Standard Output:**\n\n```text\n%s\n```\n\n", stdout)
		}
		if stdout == "" && stderr == "" {
			fmt.Fprintln(w, "*No output generated*")
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w, "</details>")
		fmt.Fprintln(w)
	}
}

func (f *MarkdownFormatter) writeFooter(w io.Writer, report *interfaces.Report) {
	fmt.Fprintln(w, "---")
	if report.RebuiltPDFPath != "" {
		fmt.Fprintf(w, "*qpdf-rebuilt copy: `%s` (rewrite can break some malicious tricks, but is not a safety guarantee)*\n\n",
			report.RebuiltPDFPath)
	}
	fmt.Fprintf(w, "*Report ID: %s | Generated: %s*\n",
		report.ID, report.Timestamp.Format("2006-01-02 15:04:05"))
}

// levelBadge returns a text badge based on the risk level.
func levelBadge(level interfaces.RiskLevel) string {
	switch level {
	case interfaces.RiskCritical, interfaces.RiskHigh:
		return "🔴"
	case interfaces.RiskMedium:
		return "🟡"
	case interfaces.RiskLow:
		return "🟢"
	default:
		return "⚪"
	}
}

// toolMark returns ✓ or ✗ for a tool run.
func toolMark(t interfaces.ToolResult) string {
	if t.OK {
		return "✓"
	}
	return "✗"
}
