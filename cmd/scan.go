package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/toyinlola/pdfsentry/pkg/audit"
	"github.com/toyinlola/pdfsentry/pkg/interfaces"
	"github.com/toyinlola/pdfsentry/pkg/tools"
)

var scanCmd = &cobra.Command{
	Use:   "scan <file.pdf>",
	Short: "Scan a PDF and report its risk score",
	Long: `Scan copies the PDF into a private temp directory, runs the enabled
external scanners against it, scores the keyword counts reported by pdfid.py
and prints a report.

  pdfsentry scan ./invoice.pdf
  pdfsentry scan --format json -o report.json ./invoice.pdf

Exits 1 when the risk level reaches ci.fail_on (default: high).`,
	Args: cobra.ExactArgs(1),
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("scan: %w", err)
	}

	scanner, err := newScanner(cfg, tools.NewExecRunner())
	if err != nil {
		return fmt.Errorf("scan: %w", err)
	}

	auditLogger, err := openAudit(cfg)
	if err != nil {
		return fmt.Errorf("scan: %w", err)
	}
	defer auditLogger.Close()

	rpt, err := scanner.ScanFile(ctx, args[0])
	if err != nil {
		return err
	}

	if err := auditLogger.Log(audit.EntryFromReport(rpt, "cli")); err != nil {
		slog.Warn("scan: writing audit log", "error", err)
	}

	if err := writeReports(cfg, []*interfaces.Report{rpt}); err != nil {
		return fmt.Errorf("scan: %w", err)
	}

	if cfg.ShouldFail(rpt.Level) {
		return ErrThresholdExceeded
	}
	return nil
}
