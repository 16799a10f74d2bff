package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/toyinlola/pdfsentry/pkg/cli"
	"github.com/toyinlola/pdfsentry/pkg/interfaces"
	"github.com/toyinlola/pdfsentry/pkg/pdfid"
	"github.com/toyinlola/pdfsentry/pkg/report"
)

var scoreCmd = &cobra.Command{
	Use:   "score [pdfid-output.txt]",
	Short: "Score saved pdfid.py output without running any tools",
	Long: `Score reads text produced by pdfid.py from a file, or from stdin when no
file (or "-") is given, and prints the resulting risk assessment.

  python3 pdfid.py suspicious.pdf | pdfsentry score
  pdfsentry score --format json pdfid.txt`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScore,
}

func init() {
	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("score: %w", err)
	}

	name := "-"
	if len(args) > 0 {
		name = args[0]
	}

	var in io.Reader = cmd.InOrStdin()
	if name != "-" {
		f, err := os.Open(name)
		if err != nil {
			return fmt.Errorf("score: opening %s: %w", name, err)
		}
		defer f.Close()
		in = f
	}

	rpt, err := scoreReport(cfg, name, in)
	if err != nil {
		return fmt.Errorf("score: %w", err)
	}
	return writeReports(cfg, []*interfaces.Report{rpt})
}

// scoreReport builds a tool-less report from PDFiD text.
func scoreReport(cfg *cli.Config, name string, in io.Reader) (*interfaces.Report, error) {
	started := time.Now()

	counts, err := pdfid.ParseReader(in)
	if err != nil {
		return nil, err
	}

	return report.NewGenerator().Generate(report.Input{
		File:       interfaces.FileInfo{Name: name},
		Counts:     counts,
		Assessment: newCalculator(cfg).Assess(counts),
		Started:    started,
	}), nil
}
