package cli

import (
	"github.com/toyinlola/pdfsentry/pkg/interfaces"
	"github.com/toyinlola/pdfsentry/pkg/tools"
)

// ToolOptions converts the tools section into tools.Options.
func (c *Config) ToolOptions() tools.Options {
	t := c.Tools
	return tools.Options{
		SuiteDir: t.DidierPath,
		Python:   t.Python,

		PDFiD:            t.PDFiD.IsEnabled(true),
		PDFiDTimeout:     t.PDFiD.TimeoutDuration(),
		PDFParser:        t.PDFParser.IsEnabled(true),
		PDFParserTimeout: t.PDFParser.TimeoutDuration(),
		SearchKeywords:   t.PDFParser.Keywords,

		QPDF:             t.QPDF.IsEnabled(true),
		QPDFBinary:       t.QPDF.Binary,
		QPDFCheckTimeout: min(t.QPDF.TimeoutDuration(), tools.DefaultQPDFCheckTimeout),
		QPDFTimeout:      t.QPDF.TimeoutDuration(),

		ClamAV:        t.ClamAV.IsEnabled(false),
		ClamAVBinary:  t.ClamAV.Binary,
		ClamAVTimeout: t.ClamAV.TimeoutDuration(),
	}
}

// FailOnLevel returns the lowest risk level that should fail a CI run,
// or "" when ci.fail_on is "never".
func (c *Config) FailOnLevel() interfaces.RiskLevel {
	switch c.CI.FailOn {
	case "medium":
		return interfaces.RiskMedium
	case "critical":
		return interfaces.RiskCritical
	case "never":
		return ""
	default:
		return interfaces.RiskHigh
	}
}

// ShouldFail reports whether level meets the configured fail_on level.
func (c *Config) ShouldFail(level interfaces.RiskLevel) bool {
	threshold := c.FailOnLevel()
	if threshold == "" {
		return false
	}
	return level.Rank() >= threshold.Rank()
}
