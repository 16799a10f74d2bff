package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/toyinlola/pdfsentry/pkg/interfaces"
)

// ANSI color codes for terminal output.
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
	colorBold   = "\033[1m"
	colorDim    = "\033[2m"
)

// TerminalFormatter writes a color-coded report to a terminal.
type TerminalFormatter struct {
	color bool
}

// TerminalOption configures the TerminalFormatter.
type TerminalOption func(*TerminalFormatter)

// WithColor turns ANSI colors on or off.
func WithColor(enabled bool) TerminalOption {
	return func(f *TerminalFormatter) {
		f.color = enabled
	}
}

// NewTerminalFormatter creates a terminal report formatter. Colors are on by default.
func NewTerminalFormatter(opts ...TerminalOption) *TerminalFormatter {
	f := &TerminalFormatter{color: true}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Format writes the report to the given writer using ANSI colors.
func (f *TerminalFormatter) Format(w io.Writer, report *interfaces.Report) error {
	f.writeHeader(w, report)
	f.writeSummary(w, report)
	f.writeHighlights(w, report)
	f.writeKeywords(w, report)
	f.writeTools(w, report)
	f.writeFooter(w, report)
	return nil
}

// c returns code when colors are enabled.
func (f *TerminalFormatter) c(code string) string {
	if !f.color {
		return ""
	}
	return code
}

func (f *TerminalFormatter) writeHeader(w io.Writer, _ *interfaces.Report) {
	bold, cyan, reset := f.c(colorBold), f.c(colorCyan), f.c(colorReset)
	fmt.Fprintf(w, "\n%s%s══════════════════════════════════════════%s\n", bold, cyan, reset)
	fmt.Fprintf(w, "%s%s  PDF Sentry Scan Report%s\n", bold, cyan, reset)
	fmt.Fprintf(w, "%s%s══════════════════════════════════════════%s\n\n", bold, cyan, reset)
}

func (f *TerminalFormatter) writeSummary(w io.Writer, report *interfaces.Report) {
	color := f.c(levelColor(report.Level))
	bold, dim, reset := f.c(colorBold), f.c(colorDim), f.c(colorReset)

	fmt.Fprintf(w, "  %s%sRisk Score: %d/100 [%s]%s\n", bold, color, report.Score, report.Level, reset)
	fmt.Fprintf(w, "  %sFile: %s | %d bytes | sha256 %s%s\n\n", dim, report.FileName, report.FileSize, shortHash(report.SHA256), reset)
}

func (f *TerminalFormatter) writeHighlights(w io.Writer, report *interfaces.Report) {
	if len(report.Highlights) == 0 {
		fmt.Fprintf(w, "  %s%s%s\n\n", f.c(colorGreen), NoHighlightsMessage, f.c(colorReset))
		return
	}

	color := f.c(levelColor(report.Level))
	bold, reset := f.c(colorBold), f.c(colorReset)
	fmt.Fprintf(w, "  %s%s── HIGHLIGHTS (%d) ──%s\n", bold, color, len(report.Highlights), reset)
	for _, h := range report.Highlights {
		fmt.Fprintf(w, "    %s!%s %s\n", color, reset, h)
	}
	fmt.Fprintln(w)
}

func (f *TerminalFormatter) writeKeywords(w io.Writer, report *interfaces.Report) {
	if len(report.PDFiDCounts) == 0 {
		return
	}

	bold, dim, cyan, reset := f.c(colorBold), f.c(colorDim), f.c(colorCyan), f.c(colorReset)
	fmt.Fprintf(w, "  %s── PDFID KEYWORDS ──%s\n", bold, reset)

	contrib := contributionsByKeyword(report.Breakdown)
	for _, kw := range sortedKeywords(report.PDFiDCounts) {
		count := report.PDFiDCounts[kw]
		if v, ok := contrib[kw]; ok {
			fmt.Fprintf(w, "    %-16s %5d  %s+%d%s\n", kw, count, cyan, v, reset)
			continue
		}
		fmt.Fprintf(w, "    %s%-16s %5d%s\n", dim, kw, count, reset)
	}
	fmt.Fprintln(w)
}

func (f *TerminalFormatter) writeTools(w io.Writer, report *interfaces.Report) {
	if len(report.Tools) == 0 {
		return
	}

	bold, dim, reset := f.c(colorBold), f.c(colorDim), f.c(colorReset)
	fmt.Fprintf(w, "  %s── TOOLS ──%s\n", bold, reset)
	for _, t := range report.Tools {
		color := f.c(colorGreen)
		if !t.OK {
			color = f.c(colorRed)
		}
		fmt.Fprintf(w, "    %s%s%s %s %s(rc=%d) %s%s\n", color, toolMark(t), reset, t.Name, dim, t.ReturnCode, t.Note, reset)
	}
	fmt.Fprintln(w)
}

func (f *TerminalFormatter) writeFooter(w io.Writer, report *interfaces.Report) {
	dim, cyan, reset := f.c(colorDim), f.c(colorCyan), f.c(colorReset)
	fmt.Fprintf(w, "  %s%s──────────────────────────────────────────%s\n", dim, cyan, reset)
	if report.RebuiltPDFPath != "" {
		fmt.Fprintf(w, "  %sRebuilt PDF: %s%s\n", dim, report.RebuiltPDFPath, reset)
	}
	fmt.Fprintf(w, "  %sReport: %s | Generated: %s%s\n\n",
		dim, report.ID, report.Timestamp.Format("2006-01-02 15:04:05"), reset)
}

// levelColor returns the ANSI color for a risk level.
func levelColor(l interfaces.RiskLevel) string {
	switch l {
	case interfaces.RiskCritical, interfaces.RiskHigh:
		return colorRed
	case interfaces.RiskMedium:
		return colorYellow
	case interfaces.RiskLow:
		return colorGreen
	default:
		return colorReset
	}
}

// shortHash abbreviates a hex digest for display.
func shortHash(h string) string {
	if len(h) <= 16 {
		return h
	}
	return strings.ToLower(h[:16]) + "…"
}
