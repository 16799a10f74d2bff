package tools

import (
	"log/slog"
	"time"
)

// Default per-tool timeouts.
const (
	DefaultPDFiDTimeout     = 20 * time.Second
	DefaultPDFParserTimeout = 30 * time.Second
	DefaultQPDFCheckTimeout = 30 * time.Second
	DefaultQPDFTimeout      = 60 * time.Second
	DefaultClamAVTimeout    = 60 * time.Second
)

// Options selects and configures the default tool set.
type Options struct {
	SuiteDir string
	Python   string

	PDFiD            bool
	PDFiDTimeout     time.Duration
	PDFParser        bool
	PDFParserTimeout time.Duration
	SearchKeywords   []string

	QPDF             bool
	QPDFBinary       string
	QPDFCheckTimeout time.Duration
	QPDFTimeout      time.Duration

	ClamAV        bool
	ClamAVBinary  string
	ClamAVTimeout time.Duration
}

// DefaultOptions mirrors the stock scan: DidierStevensSuite and qpdf on,
// ClamAV off.
func DefaultOptions() Options {
	return Options{
		Python:           "python3",
		PDFiD:            true,
		PDFiDTimeout:     DefaultPDFiDTimeout,
		PDFParser:        true,
		PDFParserTimeout: DefaultPDFParserTimeout,
		SearchKeywords:   DefaultSearchKeywords,
		QPDF:             true,
		QPDFBinary:       "qpdf",
		QPDFCheckTimeout: DefaultQPDFCheckTimeout,
		QPDFTimeout:      DefaultQPDFTimeout,
		ClamAV:           false,
		ClamAVBinary:     "clamscan",
		ClamAVTimeout:    DefaultClamAVTimeout,
	}
}

// RegisterDefaults adds the configured tools to registry. Tools that cannot be
// located are registered as UnavailableTool so the report records why.
func RegisterDefaults(registry *Registry, runner CommandRunner, opts Options) error {
	if opts.PDFiD {
		if script := FindScript(opts.SuiteDir, PDFiDScript); script != "" {
			if err := registry.Register(NewPDFiDTool(runner, opts.Python, script, opts.PDFiDTimeout)); err != nil {
				return err
			}
		} else {
			slog.Warn("pdfid.py not found", "suite_dir", opts.SuiteDir)
			if err := registry.Register(NewUnavailableTool(PDFiDScript,
				"DidierStevensSuite not found. Clone it next to this repo or set tools.didier_path.")); err != nil {
				return err
			}
		}
	}

	if opts.PDFParser {
		if script := FindScript(opts.SuiteDir, PDFParserScript); script != "" {
			for _, kw := range opts.SearchKeywords {
				if err := registry.Register(NewPDFParserSearchTool(runner, opts.Python, script, kw, opts.PDFParserTimeout)); err != nil {
					return err
				}
			}
		} else {
			if err := registry.Register(NewUnavailableTool(PDFParserScript,
				"pdf-parser.py not found (DidierStevensSuite missing).")); err != nil {
				return err
			}
		}
	}

	if opts.QPDF {
		if _, err := runner.LookPath(opts.QPDFBinary); err == nil {
			if err := registry.Register(NewQPDFCheckTool(runner, opts.QPDFBinary, opts.QPDFCheckTimeout)); err != nil {
				return err
			}
			if err := registry.Register(NewQPDFRewriteTool(runner, opts.QPDFBinary, opts.QPDFTimeout)); err != nil {
				return err
			}
		} else {
			if err := registry.Register(NewUnavailableTool("qpdf", "qpdf not installed or not in PATH")); err != nil {
				return err
			}
		}
	}

	if opts.ClamAV {
		if _, err := runner.LookPath(opts.ClamAVBinary); err == nil {
			if err := registry.Register(NewClamScanTool(runner, opts.ClamAVBinary, opts.ClamAVTimeout)); err != nil {
				return err
			}
		} else {
			if err := registry.Register(NewUnavailableTool("clamscan", "ClamAV not installed or not in PATH")); err != nil {
				return err
			}
		}
	}

	return nil
}
