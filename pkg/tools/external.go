package tools

import (
	"context"
	"path/filepath"
	"time"

	"github.com/toyinlola/pdfsentry/pkg/interfaces"
)

// RebuiltFileName is where the qpdf rewrite lands inside Target.Dir.
const RebuiltFileName = "rebuilt.pdf"

// QPDFCheckTool runs "qpdf --check" for structural validation.
type QPDFCheckTool struct {
	runner  CommandRunner
	binary  string
	timeout time.Duration
}

// NewQPDFCheckTool creates a qpdf structural check.
func NewQPDFCheckTool(runner CommandRunner, binary string, timeout time.Duration) *QPDFCheckTool {
	return &QPDFCheckTool{runner: runner, binary: binary, timeout: timeout}
}

// Name implements Tool.
func (t *QPDFCheckTool) Name() string {
	return "qpdf --check"
}

// Run implements Tool.
func (t *QPDFCheckTool) Run(ctx context.Context, target *Target) (*interfaces.ToolResult, error) {
	out := t.runner.Run(ctx, t.timeout, t.binary, "--check", target.Path)
	return resultFrom(t.Name(), out, "Structural validation"), nil
}

// QPDFRewriteTool rewrites the PDF into Target.Dir/rebuilt.pdf.
type QPDFRewriteTool struct {
	runner  CommandRunner
	binary  string
	timeout time.Duration
}

// NewQPDFRewriteTool creates a qpdf rewrite step.
func NewQPDFRewriteTool(runner CommandRunner, binary string, timeout time.Duration) *QPDFRewriteTool {
	return &QPDFRewriteTool{runner: runner, binary: binary, timeout: timeout}
}

// Name implements Tool.
func (t *QPDFRewriteTool) Name() string {
	return "qpdf rewrite"
}

// Run implements Tool.
func (t *QPDFRewriteTool) Run(ctx context.Context, target *Target) (*interfaces.ToolResult, error) {
	rebuilt := filepath.Join(target.Dir, RebuiltFileName)
	out := t.runner.Run(ctx, t.timeout, t.binary, target.Path, rebuilt)
	return resultFrom(t.Name(), out, "Rewrite/rebuild attempt"), nil
}

// ClamScanTool runs ClamAV as a signature-based second opinion.
type ClamScanTool struct {
	runner  CommandRunner
	binary  string
	timeout time.Duration
}

// NewClamScanTool creates a clamscan step.
func NewClamScanTool(runner CommandRunner, binary string, timeout time.Duration) *ClamScanTool {
	return &ClamScanTool{runner: runner, binary: binary, timeout: timeout}
}

// Name implements Tool.
func (t *ClamScanTool) Name() string {
	return "clamscan"
}

// Run implements Tool.
func (t *ClamScanTool) Run(ctx context.Context, target *Target) (*interfaces.ToolResult, error) {
	out := t.runner.Run(ctx, t.timeout, t.binary, "--no-summary", target.Path)
	return resultFrom(t.Name(), out, "Signature scan (second opinion)"), nil
}

// UnavailableTool stands in for a tool that could not be located, so the
// report still says why it did not run.
type UnavailableTool struct {
	name string
	note string
}

// NewUnavailableTool creates a placeholder that always reports ExitNotFound.
func NewUnavailableTool(name, note string) *UnavailableTool {
	return &UnavailableTool{name: name, note: note}
}

// Name implements Tool.
func (t *UnavailableTool) Name() string {
	return t.name
}

// Run implements Tool.
func (t *UnavailableTool) Run(_ context.Context, _ *Target) (*interfaces.ToolResult, error) {
	return &interfaces.ToolResult{
		Name:       t.name,
		ReturnCode: ExitNotFound,
		Note:       t.note,
	}, nil
}
