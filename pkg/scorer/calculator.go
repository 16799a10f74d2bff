package scorer

import "github.com/toyinlola/pdfsentry/pkg/interfaces"

// Calculator computes risk assessments from keyword counts.
type Calculator struct {
	highThreshold   int
	mediumThreshold int
}

// Option configures the Calculator.
type Option func(*Calculator)

// WithThresholds overrides the default HIGH/MEDIUM thresholds.
func WithThresholds(high, medium int) Option {
	return func(c *Calculator) {
		c.highThreshold = high
		c.mediumThreshold = medium
	}
}

// NewCalculator creates a scorer with optional configuration.
func NewCalculator(opts ...Option) *Calculator {
	c := &Calculator{
		highThreshold:   DefaultHighThreshold,
		mediumThreshold: DefaultMediumThreshold,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var defaultCalculator = NewCalculator()

// Assess scores counts with the default thresholds.
func Assess(counts interfaces.KeywordCounts) interfaces.RiskAssessment {
	return defaultCalculator.Assess(counts)
}

// Assess computes a RiskAssessment from keyword counts.
// Walk the weight table in order, add each present keyword's tiered
// contribution, clamp to [0, 100], then derive the level from the clamped
// score. Supplementary highlights depend only on the raw counts.
// Assess is defined for every input, including nil.
func (c *Calculator) Assess(counts interfaces.KeywordCounts) interfaces.RiskAssessment {
	total := 0
	highlights := []string{}
	var breakdown []interfaces.KeywordContribution

	for _, kw := range weightTable {
		count := counts.Get(kw.Keyword)
		if count <= 0 {
			continue
		}

		contribution := Contribution(kw.Weight, count)
		total += contribution

		highlights = append(highlights, keywordHighlight(kw.Keyword, count))
		breakdown = append(breakdown, interfaces.KeywordContribution{
			Keyword:      kw.Keyword,
			Count:        count,
			Weight:       kw.Weight,
			Contribution: contribution,
		})
	}

	score := clamp(total, MinScore, MaxScore)
	level := LevelFromScore(score, c.highThreshold, c.mediumThreshold)

	highlights = append(highlights, supplementaryHighlights(counts)...)

	return interfaces.RiskAssessment{
		Score:      score,
		Level:      level,
		Highlights: highlights,
		Breakdown:  breakdown,
	}
}

func clamp(n, lo, hi int) int {
	return max(lo, min(hi, n))
}
