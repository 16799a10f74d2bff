// Package cli provides CLI-specific logic including configuration loading.
package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is looked up in the working directory when --config is not given.
const DefaultConfigFile = ".pdfsentry.yml"

// Config represents the .pdfsentry.yml (or .toml) configuration file.
type Config struct {
	Version    string          `yaml:"version" toml:"version"`
	Thresholds ThresholdConfig `yaml:"thresholds" toml:"thresholds"`
	Tools      ToolsConfig     `yaml:"tools" toml:"tools"`
	Output     OutputConfig    `yaml:"output" toml:"output"`
	CI         CIConfig        `yaml:"ci" toml:"ci"`
	Server     ServerConfig    `yaml:"server" toml:"server"`
	Audit      AuditConfig     `yaml:"audit" toml:"audit"`
}

// ThresholdConfig holds the risk level thresholds.
type ThresholdConfig struct {
	High   int `yaml:"high" toml:"high"`
	Medium int `yaml:"medium" toml:"medium"`
}

// ToolsConfig configures the external scanners.
type ToolsConfig struct {
	DidierPath string          `yaml:"didier_path" toml:"didier_path"`
	Python     string          `yaml:"python" toml:"python"`
	PDFiD      ToolConfig      `yaml:"pdfid" toml:"pdfid"`
	PDFParser  PDFParserConfig `yaml:"pdf_parser" toml:"pdf_parser"`
	QPDF       ToolConfig      `yaml:"qpdf" toml:"qpdf"`
	ClamAV     ToolConfig      `yaml:"clamav" toml:"clamav"`
}

// ToolConfig configures a single external tool.
type ToolConfig struct {
	Enabled *bool  `yaml:"enabled" toml:"enabled"`
	Binary  string `yaml:"binary,omitempty" toml:"binary,omitempty"`
	Timeout int    `yaml:"timeout,omitempty" toml:"timeout,omitempty"` // seconds
}

// PDFParserConfig configures the pdf-parser.py keyword searches.
type PDFParserConfig struct {
	ToolConfig `yaml:",inline"`
	Keywords   []string `yaml:"keywords,omitempty" toml:"keywords,omitempty"`
}

// IsEnabled reports whether this tool is enabled, falling back to def when unset.
func (t ToolConfig) IsEnabled(def bool) bool {
	if t.Enabled == nil {
		return def
	}
	return *t.Enabled
}

// TimeoutDuration returns the configured timeout as a duration.
func (t ToolConfig) TimeoutDuration() time.Duration {
	return time.Duration(t.Timeout) * time.Second
}

// OutputConfig controls report output settings.
type OutputConfig struct {
	Format  string `yaml:"format" toml:"format"`
	Verbose bool   `yaml:"verbose" toml:"verbose"`
	Color   string `yaml:"color" toml:"color"` // auto|always|never
}

// CIConfig controls batch/CI behavior.
type CIConfig struct {
	FailOn string `yaml:"fail_on" toml:"fail_on"`
}

// ServerConfig controls the HTTP upload server.
type ServerConfig struct {
	Listen      string `yaml:"listen" toml:"listen"`
	MaxUploadMB int64  `yaml:"max_upload_mb" toml:"max_upload_mb"`
}

// AuditConfig controls the JSON-lines scan audit log.
type AuditConfig struct {
	Path string `yaml:"path" toml:"path"`
}

// LoadConfig reads and parses a configuration file.
// If path is empty, it looks for .pdfsentry.yml in the current directory.
// If the default config file is not found, sensible defaults are returned.
// If an explicitly specified config file is not found, an error is returned.
// Files ending in .toml are decoded as TOML, everything else as YAML.
func LoadConfig(path string) (*Config, error) {
	useDefault := path == ""
	if useDefault {
		path = DefaultConfigFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && useDefault {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("cli: reading config %s: %w", path, err)
	}

	cfg := &Config{}
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		err = toml.Unmarshal(data, cfg)
	} else {
		err = yaml.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("cli: parsing config %s: %w", path, err)
	}

	applyDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("cli: invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// DefaultConfig returns a Config with sensible defaults matching the documented
// .pdfsentry.yml schema.
func DefaultConfig() *Config {
	cfg := &Config{Version: "1"}
	applyDefaults(cfg)
	return cfg
}

// Validate checks values that defaults cannot repair.
func (c *Config) Validate() error {
	if c.Thresholds.Medium > c.Thresholds.High {
		return fmt.Errorf("thresholds.medium (%d) must not exceed thresholds.high (%d)",
			c.Thresholds.Medium, c.Thresholds.High)
	}
	switch c.CI.FailOn {
	case "medium", "high", "critical", "never":
	default:
		return fmt.Errorf("ci.fail_on must be one of medium|high|critical|never, got %q", c.CI.FailOn)
	}
	switch c.Output.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("output.color must be one of auto|always|never, got %q", c.Output.Color)
	}
	if c.Server.MaxUploadMB < 0 {
		return fmt.Errorf("server.max_upload_mb must not be negative, got %d", c.Server.MaxUploadMB)
	}
	timeouts := []struct {
		name    string
		seconds int
	}{
		{"tools.pdfid.timeout", c.Tools.PDFiD.Timeout},
		{"tools.pdf_parser.timeout", c.Tools.PDFParser.Timeout},
		{"tools.qpdf.timeout", c.Tools.QPDF.Timeout},
		{"tools.clamav.timeout", c.Tools.ClamAV.Timeout},
	}
	for _, t := range timeouts {
		if t.seconds < 0 {
			return fmt.Errorf("%s must not be negative, got %d", t.name, t.seconds)
		}
	}
	return nil
}

// applyDefaults fills in zero-value fields with sensible defaults.
func applyDefaults(cfg *Config) {
	if cfg.Thresholds.High == 0 {
		cfg.Thresholds.High = 70
	}
	if cfg.Thresholds.Medium == 0 {
		cfg.Thresholds.Medium = 35
	}
	if cfg.Tools.Python == "" {
		cfg.Tools.Python = "python3"
	}
	if cfg.Tools.PDFiD.Timeout == 0 {
		cfg.Tools.PDFiD.Timeout = 20
	}
	if cfg.Tools.PDFParser.Timeout == 0 {
		cfg.Tools.PDFParser.Timeout = 30
	}
	if len(cfg.Tools.PDFParser.Keywords) == 0 {
		cfg.Tools.PDFParser.Keywords = []string{
			"/JavaScript", "/OpenAction", "/AA", "/Launch", "/EmbeddedFile", "/XFA", "/RichMedia",
		}
	}
	if cfg.Tools.QPDF.Binary == "" {
		cfg.Tools.QPDF.Binary = "qpdf"
	}
	if cfg.Tools.QPDF.Timeout == 0 {
		cfg.Tools.QPDF.Timeout = 60
	}
	if cfg.Tools.ClamAV.Binary == "" {
		cfg.Tools.ClamAV.Binary = "clamscan"
	}
	if cfg.Tools.ClamAV.Timeout == 0 {
		cfg.Tools.ClamAV.Timeout = 60
	}
	if cfg.Output.Format == "" {
		cfg.Output.Format = "terminal"
	}
	if cfg.Output.Color == "" {
		cfg.Output.Color = "auto"
	}
	if cfg.CI.FailOn == "" {
		cfg.CI.FailOn = "high"
	}
	if cfg.Server.Listen == "" {
		cfg.Server.Listen = ":8080"
	}
	if cfg.Server.MaxUploadMB == 0 {
		cfg.Server.MaxUploadMB = 50
	}
}
