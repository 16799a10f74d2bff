package scorer

import (
	"fmt"

	"github.com/toyinlola/pdfsentry/pkg/interfaces"
)

// Supplementary highlight texts, appended after the per-keyword ones.
const (
	HighlightAutoTrigger  = "Auto-trigger actions detected (OpenAction/AA). Treat as high risk."
	HighlightLaunch       = "Launch actions can attempt external launching."
	HighlightEmbeddedFile = "Embedded file indicators present (possible attached payloads)."
	HighlightJavaScript   = "JavaScript indicators present."
	HighlightObjStm       = "Object streams present (often benign, but reduces visibility)."
)

// supplementaryCheck fires its message when any of its keywords has a positive count.
type supplementaryCheck struct {
	keywords []string
	message  string
}

var supplementaryChecks = [...]supplementaryCheck{
	{keywords: []string{KeywordOpenAction, KeywordAA}, message: HighlightAutoTrigger},
	{keywords: []string{KeywordLaunch}, message: HighlightLaunch},
	{keywords: []string{KeywordEmbeddedFile, KeywordFilespec}, message: HighlightEmbeddedFile},
	{keywords: []string{KeywordJavaScript, KeywordJS}, message: HighlightJavaScript},
	{keywords: []string{KeywordObjStm}, message: HighlightObjStm},
}

// keywordHighlight formats the per-keyword highlight, e.g. "/JS present (2)".
func keywordHighlight(keyword string, count int) string {
	return fmt.Sprintf("%s present (%d)", keyword, count)
}

// supplementaryHighlights returns the fixed follow-up messages that apply to counts.
func supplementaryHighlights(counts interfaces.KeywordCounts) []string {
	var out []string
	for _, check := range supplementaryChecks {
		for _, kw := range check.keywords {
			if counts.Get(kw) > 0 {
				out = append(out, check.message)
				break
			}
		}
	}
	return out
}
