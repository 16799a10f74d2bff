// Package pdfid extracts keyword counts from PDFiD-style indexing output.
//
// Parsing is permissive: lines that do not look like "<keyword> <count>"
// are skipped, because the upstream tool's banner and layout vary across
// versions.
package pdfid

import (
	"errors"
	"fmt"
	"io"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/toyinlola/pdfsentry/pkg/interfaces"
)

// keywordLine matches a keyword token followed by a decimal count.
// Anything after the count is ignored. \w and \d are ASCII-only in RE2, so
// keywords spelled with non-ASCII letters are skipped.
var keywordLine = regexp.MustCompile(`^\s*(/\w+)\s+(\d+)`)

// Parser implements interfaces.KeywordParser.
type Parser struct{}

// NewParser creates a PDFiD output parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse converts tool output into KeywordCounts.
func (p *Parser) Parse(out string) interfaces.KeywordCounts {
	return ParseOutput(out)
}

// ParseOutput converts PDFiD text into KeywordCounts.
// A keyword reported on several lines keeps its last count.
func ParseOutput(out string) interfaces.KeywordCounts {
	counts := make(interfaces.KeywordCounts)
	for _, line := range strings.Split(out, "\n") {
		keyword, count, ok := parseLine(line)
		if !ok {
			continue
		}
		counts[keyword] = count
	}
	return counts
}

// ParseReader reads r to EOF and parses the result with ParseOutput.
// Lines of any length are accepted.
func ParseReader(r io.Reader) (interfaces.KeywordCounts, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("pdfid: reading output: %w", err)
	}
	return ParseOutput(string(data)), nil
}

func parseLine(line string) (string, int, bool) {
	m := keywordLine.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return "", 0, false
	}
	n, err := strconv.Atoi(m[2])
	if errors.Is(err, strconv.ErrRange) {
		// Too many digits for int; saturate so the keyword still scores.
		n = math.MaxInt
	} else if err != nil {
		return "", 0, false
	}
	return m[1], n, true
}
