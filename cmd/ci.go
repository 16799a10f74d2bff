package cmd

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/toyinlola/pdfsentry/pkg/audit"
	"github.com/toyinlola/pdfsentry/pkg/cli"
	"github.com/toyinlola/pdfsentry/pkg/interfaces"
	"github.com/toyinlola/pdfsentry/pkg/tools"
)

var ciCmd = &cobra.Command{
	Use:   "ci <path>...",
	Short: "Scan a batch of PDFs and fail on risky files",
	Long: `CI mode scans every PDF given on the command line. Directories are
searched recursively for *.pdf files.

Every report is printed; the process exits 1 when any file reaches the
ci.fail_on level:
  fail_on: "high"     -> exit 1 on HIGH (default)
  fail_on: "medium"   -> exit 1 on MEDIUM or HIGH
  fail_on: "critical" -> exit 1 on CRITICAL only
  fail_on: "never"    -> always exit 0 unless a scan errors`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCI,
}

func init() {
	rootCmd.AddCommand(ciCmd)
}

// batchScanner is the subset of scan.Scanner that CI mode needs.
type batchScanner interface {
	ScanFile(ctx context.Context, path string) (*interfaces.Report, error)
}

// ciResult summarises one CI batch.
type ciResult struct {
	Reports []*interfaces.Report
	Failed  []string // paths whose scan returned an error
	Flagged []string // paths at or above fail_on
}

func runCI(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("ci: %w", err)
	}

	paths, err := collectPDFs(args)
	if err != nil {
		return fmt.Errorf("ci: %w", err)
	}
	if len(paths) == 0 {
		return fmt.Errorf("ci: no PDF files found in %s", strings.Join(args, ", "))
	}
	slog.Info("ci: scanning", "files", len(paths), "fail_on", cfg.CI.FailOn)

	scanner, err := newScanner(cfg, tools.NewExecRunner())
	if err != nil {
		return fmt.Errorf("ci: %w", err)
	}

	auditLogger, err := openAudit(cfg)
	if err != nil {
		return fmt.Errorf("ci: %w", err)
	}
	defer auditLogger.Close()

	res, err := runBatch(ctx, cfg, scanner, auditLogger, paths)
	if err != nil {
		return fmt.Errorf("ci: %w", err)
	}

	if err := writeReports(cfg, res.Reports); err != nil {
		return fmt.Errorf("ci: %w", err)
	}

	slog.Info("ci: done",
		"scanned", len(res.Reports),
		"errors", len(res.Failed),
		"flagged", len(res.Flagged),
	)

	if len(res.Failed) > 0 {
		return fmt.Errorf("ci: %d file(s) could not be scanned: %s", len(res.Failed), strings.Join(res.Failed, ", "))
	}
	if len(res.Flagged) > 0 {
		return ErrThresholdExceeded
	}
	return nil
}

// runBatch scans paths in order. Per-file scan errors are collected rather
// than aborting the batch; context cancellation aborts it.
func runBatch(ctx context.Context, cfg *cli.Config, scanner batchScanner, auditLogger *audit.Logger, paths []string) (*ciResult, error) {
	res := &ciResult{}

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		rpt, err := scanner.ScanFile(ctx, path)
		if err != nil {
			slog.Error("ci: scan failed", "path", path, "error", err)
			res.Failed = append(res.Failed, path)
			continue
		}

		if err := auditLogger.Log(audit.EntryFromReport(rpt, "ci")); err != nil {
			slog.Warn("ci: writing audit log", "error", err)
		}

		res.Reports = append(res.Reports, rpt)
		if cfg.ShouldFail(rpt.Level) {
			res.Flagged = append(res.Flagged, path)
		}
	}

	return res, nil
}

// collectPDFs expands directories into the *.pdf files beneath them.
// Explicit file arguments are kept whatever their extension.
func collectPDFs(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			paths = append(paths, arg)
			continue
		}

		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ".pdf") {
				paths = append(paths, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walking %s: %w", arg, err)
		}
	}
	return paths, nil
}
