package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyinlola/pdfsentry/pkg/interfaces"
)

var fixedNow = time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

func sampleReport(t *testing.T) *interfaces.Report {
	t.Helper()
	gen := NewGenerator(WithClock(func() time.Time { return fixedNow }))
	return gen.Generate(Input{
		File: interfaces.FileInfo{
			Name:   "invoice.pdf",
			Size:   2048,
			SHA256: "9f86d081884c7d659a2feaa0c55ad015a3bf4f1b2b0b822cd15d6c15b0f00a08",
		},
		Counts: interfaces.KeywordCounts{"/OpenAction": 1, "/JavaScript": 1, "/Page": 2},
		Assessment: interfaces.RiskAssessment{
			Score: 50,
			Level: interfaces.RiskMedium,
			Highlights: []string{
				"/JavaScript present (1)",
				"/OpenAction present (1)",
				"Auto-trigger actions detected (OpenAction/AA). Treat as high risk.",
				"JavaScript indicators present.",
			},
			Breakdown: []interfaces.KeywordContribution{
				{Keyword: "/JavaScript", Count: 1, Weight: 25, Contribution: 25},
				{Keyword: "/OpenAction", Count: 1, Weight: 25, Contribution: 25},
			},
		},
		Tools: []interfaces.ToolResult{
			{Name: "pdfid.py", OK: true, Stdout: "/JavaScript 1", Note: "Fast keyword indicator scan"},
			{Name: "qpdf", ReturnCode: 127, Note: "qpdf not installed or not in PATH"},
		},
		Started: fixedNow.Add(-1500 * time.Millisecond),
	})
}

func TestGenerator_Generate(t *testing.T) {
	rpt := sampleReport(t)

	assert.True(t, strings.HasPrefix(rpt.ID, "rpt-"), rpt.ID)
	assert.Equal(t, fixedNow, rpt.Timestamp)
	assert.Equal(t, "invoice.pdf", rpt.FileName)
	assert.Equal(t, 50, rpt.Score)
	assert.Equal(t, interfaces.RiskMedium, rpt.Level)
	assert.Equal(t, 1500*time.Millisecond, rpt.Duration)
	assert.Equal(t, "Risk Score: 50/100 [MEDIUM] — 2 risky keyword(s) (1/2 tools ok)", rpt.Summary)
}

func TestGenerator_UniqueIDs(t *testing.T) {
	gen := NewGenerator()
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := gen.Generate(Input{}).ID
		require.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestGenerator_EmptyInputIsSerializable(t *testing.T) {
	rpt := NewGenerator().Generate(Input{})
	assert.NotNil(t, rpt.PDFiDCounts)
	assert.NotNil(t, rpt.Tools)
	assert.Equal(t, "Risk Score: 0/100 [] — no risky keywords", rpt.Summary)
}

func TestJSONFormatter_FlatRiskFields(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONFormatter().Format(&buf, sampleReport(t)))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	assert.EqualValues(t, 50, decoded["risk_score"])
	assert.Equal(t, "MEDIUM", decoded["risk_level"])
	assert.Len(t, decoded["highlights"], 4)
	assert.Equal(t, "invoice.pdf", decoded["file_name"])
	assert.Contains(t, decoded, "pdfid_counts")
	assert.Contains(t, decoded, "tools")
	assert.NotContains(t, decoded, "rebuilt_pdf_path")
}

func TestMarkdownFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewMarkdownFormatter().Format(&buf, sampleReport(t)))
	out := buf.String()

	assert.Contains(t, out, "# PDF Sentry Scan Report 🟡")
	assert.Contains(t, out, "| **Risk Score** | 50/100 🟡 |")
	assert.Contains(t, out, "- /OpenAction present (1)")
	assert.Contains(t, out, "| `/JavaScript` | 1 | +25 |")
	assert.Contains(t, out, "| `/Page` | 2 | - |")
	assert.Contains(t, out, "✗ <strong>qpdf</strong>")
	assert.Contains(t, out, "*No output generated*")
}

func TestMarkdownFormatter_NoHighlights(t *testing.T) {
	rpt := NewGenerator().Generate(Input{Assessment: interfaces.RiskAssessment{Level: interfaces.RiskLow}})

	var buf bytes.Buffer
	require.NoError(t, NewMarkdownFormatter().Format(&buf, rpt))
	assert.Contains(t, buf.String(), NoHighlightsMessage)
}

func TestTerminalFormatter_NoColor(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewTerminalFormatter(WithColor(false)).Format(&buf, sampleReport(t)))
	out := buf.String()

	assert.NotContains(t, out, "\033[")
	assert.Contains(t, out, "Risk Score: 50/100 [MEDIUM]")
	assert.Contains(t, out, "sha256 9f86d081884c7d65…")
	assert.Contains(t, out, "── HIGHLIGHTS (4) ──")
	assert.Contains(t, out, "✗ qpdf (rc=127)")
}

func TestTerminalFormatter_ColorByLevel(t *testing.T) {
	rpt := sampleReport(t)
	rpt.Level = interfaces.RiskHigh

	var buf bytes.Buffer
	require.NoError(t, NewTerminalFormatter().Format(&buf, rpt))
	assert.Contains(t, buf.String(), colorRed+"Risk Score")
}

func TestTerminalFormatter_NoHighlights(t *testing.T) {
	rpt := NewGenerator().Generate(Input{Assessment: interfaces.RiskAssessment{Level: interfaces.RiskLow}})

	var buf bytes.Buffer
	require.NoError(t, NewTerminalFormatter(WithColor(false)).Format(&buf, rpt))
	assert.Contains(t, buf.String(), NoHighlightsMessage)
}

func TestJSONFormatter_Batch(t *testing.T) {
	var buf bytes.Buffer
	rpt := sampleReport(t)
	require.NoError(t, NewJSONFormatter().FormatBatch(&buf, []*interfaces.Report{rpt, rpt}))

	var got []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "invoice.pdf", got[1]["file_name"])
}

func TestJSONFormatter_EmptyBatch(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONFormatter().FormatBatch(&buf, nil))
	assert.Equal(t, "[]\n", buf.String())
}

func TestJSONFormatter_Compact(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONFormatter(WithIndent("")).Format(&buf, sampleReport(t)))

	out := strings.TrimSuffix(buf.String(), "\n")
	assert.NotContains(t, out, "\n")
	assert.True(t, json.Valid(buf.Bytes()))
}
