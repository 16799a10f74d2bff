package tools

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/toyinlola/pdfsentry/pkg/interfaces"
)

// DidierStevensSuite script names.
const (
	PDFiDScript     = "pdfid.py"
	PDFParserScript = "pdf-parser.py"
)

// DefaultSuiteDir is looked up relative to the working directory when no
// suite path is configured.
const DefaultSuiteDir = "DidierStevensSuite"

// DefaultSearchKeywords are the keywords pdf-parser.py is asked to locate.
var DefaultSearchKeywords = []string{
	"/JavaScript",
	"/OpenAction",
	"/AA",
	"/Launch",
	"/EmbeddedFile",
	"/XFA",
	"/RichMedia",
}

// FindScript returns the path of script inside suiteDir, falling back to
// ./DidierStevensSuite. It returns "" when neither exists.
func FindScript(suiteDir, script string) string {
	if suiteDir != "" {
		p := filepath.Join(suiteDir, script)
		if fileExists(p) {
			return p
		}
	}
	if wd, err := os.Getwd(); err == nil {
		p := filepath.Join(wd, DefaultSuiteDir, script)
		if fileExists(p) {
			return p
		}
	}
	return ""
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// PDFiDTool runs pdfid.py, whose output is parsed into keyword counts.
type PDFiDTool struct {
	runner  CommandRunner
	python  string
	script  string
	timeout time.Duration
}

// NewPDFiDTool creates a tool running script with the python interpreter.
func NewPDFiDTool(runner CommandRunner, python, script string, timeout time.Duration) *PDFiDTool {
	return &PDFiDTool{runner: runner, python: python, script: script, timeout: timeout}
}

// Name implements Tool.
func (t *PDFiDTool) Name() string {
	return PDFiDScript
}

// Run implements Tool.
func (t *PDFiDTool) Run(ctx context.Context, target *Target) (*interfaces.ToolResult, error) {
	out := t.runner.Run(ctx, t.timeout, t.python, t.script, target.Path)
	return resultFrom(t.Name(), out, "Fast keyword indicator scan"), nil
}

// PDFParserSearchTool runs "pdf-parser.py -s <keyword>".
type PDFParserSearchTool struct {
	runner  CommandRunner
	python  string
	script  string
	keyword string
	timeout time.Duration
}

// NewPDFParserSearchTool creates a search for a single keyword.
func NewPDFParserSearchTool(runner CommandRunner, python, script, keyword string, timeout time.Duration) *PDFParserSearchTool {
	return &PDFParserSearchTool{runner: runner, python: python, script: script, keyword: keyword, timeout: timeout}
}

// Name implements Tool.
func (t *PDFParserSearchTool) Name() string {
	return fmt.Sprintf("%s -s %s", PDFParserScript, t.keyword)
}

// Run implements Tool.
func (t *PDFParserSearchTool) Run(ctx context.Context, target *Target) (*interfaces.ToolResult, error) {
	out := t.runner.Run(ctx, t.timeout, t.python, t.script, "-s", t.keyword, target.Path)
	return resultFrom(t.Name(), out, "Object keyword search"), nil
}

// resultFrom converts command output into a ToolResult.
func resultFrom(name string, out CommandOutput, note string) *interfaces.ToolResult {
	return &interfaces.ToolResult{
		Name:       name,
		OK:         out.OK(),
		ReturnCode: out.ReturnCode,
		Stdout:     out.Stdout,
		Stderr:     out.Stderr,
		Note:       note,
	}
}
