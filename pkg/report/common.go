package report

import (
	"sort"

	"github.com/toyinlola/pdfsentry/pkg/interfaces"
)

// NoHighlightsMessage is shown when the keyword scan found nothing notable.
const NoHighlightsMessage = "No high-signal risky features detected by keyword scan (not proof of safety)."

// sortedKeywords returns the keys of counts in lexical order.
func sortedKeywords(counts interfaces.KeywordCounts) []string {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func contributionsByKeyword(breakdown []interfaces.KeywordContribution) map[string]int {
	out := make(map[string]int, len(breakdown))
	for _, c := range breakdown {
		out[c.Keyword] = c.Contribution
	}
	return out
}
