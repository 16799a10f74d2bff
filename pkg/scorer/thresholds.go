package scorer

import "github.com/toyinlola/pdfsentry/pkg/interfaces"

// Default threshold values.
const (
	DefaultHighThreshold   = 70
	DefaultMediumThreshold = 35
)

// LevelFromScore returns the risk level for a given score based on thresholds.
// HIGH: score >= highThreshold
// MEDIUM: score >= mediumThreshold
// LOW: score < mediumThreshold
//
// CRITICAL is never returned; see DESIGN.md.
func LevelFromScore(score int, highThreshold int, mediumThreshold int) interfaces.RiskLevel {
	switch {
	case score >= highThreshold:
		return interfaces.RiskHigh
	case score >= mediumThreshold:
		return interfaces.RiskMedium
	default:
		return interfaces.RiskLow
	}
}
