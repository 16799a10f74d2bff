package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/toyinlola/pdfsentry/pkg/audit"
	"github.com/toyinlola/pdfsentry/pkg/cli"
	"github.com/toyinlola/pdfsentry/pkg/interfaces"
	"github.com/toyinlola/pdfsentry/pkg/report"
	"github.com/toyinlola/pdfsentry/pkg/scan"
	"github.com/toyinlola/pdfsentry/pkg/scorer"
	"github.com/toyinlola/pdfsentry/pkg/terminal"
	"github.com/toyinlola/pdfsentry/pkg/tools"
)

// formatter writes a structured report to a writer.
type formatter interface {
	Format(w io.Writer, report *interfaces.Report) error
}

// newCalculator builds the scorer from the configured thresholds.
func newCalculator(cfg *cli.Config) *scorer.Calculator {
	return scorer.NewCalculator(
		scorer.WithThresholds(cfg.Thresholds.High, cfg.Thresholds.Medium),
	)
}

// newScanner wires the tool registry, engine and scorer from cfg.
func newScanner(cfg *cli.Config, runner tools.CommandRunner, opts ...scan.Option) (*scan.Scanner, error) {
	registry := tools.NewRegistry()
	if err := tools.RegisterDefaults(registry, runner, cfg.ToolOptions()); err != nil {
		return nil, fmt.Errorf("registering tools: %w", err)
	}
	slog.Debug("tools registered", "tools", registry.List())

	engine := tools.NewEngine(registry)
	return scan.New(engine, newCalculator(cfg), opts...), nil
}

// openAudit returns the configured audit logger, or a no-op logger.
func openAudit(cfg *cli.Config) (*audit.Logger, error) {
	if cfg.Audit.Path == "" {
		return audit.NopLogger(), nil
	}
	l, err := audit.NewFileLogger(cfg.Audit.Path)
	if err != nil {
		return nil, fmt.Errorf("opening audit log: %w", err)
	}
	slog.Debug("audit log enabled", "path", cfg.Audit.Path)
	return l, nil
}

// selectFormatter returns the report formatter for the given format name.
// Color is only considered for terminal output written to out.
func selectFormatter(name string, color terminal.ColorMode, out *os.File) formatter {
	switch name {
	case "json":
		return report.NewJSONFormatter()
	case "markdown":
		return report.NewMarkdownFormatter()
	default:
		return report.NewTerminalFormatter(report.WithColor(terminal.UseColor(color, out)))
	}
}

// writeReports renders reports to --output or stdout. Multiple JSON reports
// are written as a single array.
func writeReports(cfg *cli.Config, reports []*interfaces.Report) error {
	out := os.Stdout
	if output != "" {
		file, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer file.Close() // best-effort cleanup
		out = file
	}

	if cfg.Output.Format == "json" && len(reports) != 1 {
		if err := report.NewJSONFormatter().FormatBatch(out, reports); err != nil {
			return fmt.Errorf("writing reports: %w", err)
		}
		return nil
	}

	f := selectFormatter(cfg.Output.Format, terminal.ColorMode(cfg.Output.Color), out)
	for _, rpt := range reports {
		if err := f.Format(out, rpt); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
	}
	return nil
}
