// Package cmd implements the PDF Sentry CLI commands using Cobra.
package cmd

import (
	"errors"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/toyinlola/pdfsentry/pkg/cli"
)

var (
	cfgFile  string
	verbose  bool
	format   string
	output   string
	auditLog string
)

// ErrThresholdExceeded is returned when a scanned PDF reaches the configured
// ci.fail_on level. The process exits 1 without printing it as an error.
var ErrThresholdExceeded = errors.New("risk level reached fail_on threshold")

var rootCmd = &cobra.Command{
	Use:   "pdfsentry",
	Short: "Heuristic risk triage for untrusted PDF files",
	Long: `PDF Sentry inspects an untrusted PDF with external scanners
(DidierStevensSuite pdfid.py and pdf-parser.py, qpdf, optionally ClamAV),
scores the risky structural keywords it finds, and reports a 0-100 risk
score with a LOW, MEDIUM or HIGH level.

The score is a triage signal only. It is not proof that a file is safe.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		setupLogging(verbose)
		return nil
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and returns any error.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path (default: .pdfsentry.yml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&format, "format", "f", "terminal", "output format (terminal|json|markdown)")
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "", "write output to file instead of stdout")
	rootCmd.PersistentFlags().StringVar(&auditLog, "audit-log", "", "append one JSON line per scan to this file")
}

func setupLogging(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
}

// loadConfig reads the config file and lets explicit flags override it.
func loadConfig(cmd *cobra.Command) (*cli.Config, error) {
	cfg, err := cli.LoadConfig(cfgFile)
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("format") {
		cfg.Output.Format = format
	}
	if auditLog != "" {
		cfg.Audit.Path = auditLog
	}
	if cfg.Output.Verbose && !verbose {
		setupLogging(true)
	}

	slog.Debug("config loaded",
		"thresholds.high", cfg.Thresholds.High,
		"thresholds.medium", cfg.Thresholds.Medium,
		"format", cfg.Output.Format,
		"fail_on", cfg.CI.FailOn,
	)
	return cfg, nil
}
