// Package scorer calculates PDF risk assessments from keyword counts.
package scorer

import "github.com/toyinlola/pdfsentry/pkg/interfaces"

// Per-keyword base weights. Each is the contribution of a single occurrence.
const (
	WeightLaunch       = 30
	WeightEmbeddedFile = 25
	WeightFilespec     = 15
	WeightJavaScript   = 25
	WeightJS           = 10
	WeightOpenAction   = 25
	WeightAA           = 20
	WeightXFA          = 15
	WeightAcroForm     = 10
	WeightRichMedia    = 20
	WeightObjStm       = 8
)

// Keyword tokens as reported by PDFiD.
const (
	KeywordLaunch       = "/Launch"
	KeywordEmbeddedFile = "/EmbeddedFile"
	KeywordFilespec     = "/Filespec"
	KeywordJavaScript   = "/JavaScript"
	KeywordJS           = "/JS"
	KeywordOpenAction   = "/OpenAction"
	KeywordAA           = "/AA"
	KeywordXFA          = "/XFA"
	KeywordAcroForm     = "/AcroForm"
	KeywordRichMedia    = "/RichMedia"
	KeywordObjStm       = "/ObjStm"
)

// Score bounds.
const (
	MinScore = 0
	MaxScore = 100
)

// MaxTierBonus caps the count multiplier at 1+MaxTierBonus.
const MaxTierBonus = 3

// weightTable is iterated in declaration order; highlight order depends on it.
var weightTable = [...]interfaces.KeywordWeight{
	{Keyword: KeywordLaunch, Weight: WeightLaunch},
	{Keyword: KeywordEmbeddedFile, Weight: WeightEmbeddedFile},
	{Keyword: KeywordFilespec, Weight: WeightFilespec},
	{Keyword: KeywordJavaScript, Weight: WeightJavaScript},
	{Keyword: KeywordJS, Weight: WeightJS},
	{Keyword: KeywordOpenAction, Weight: WeightOpenAction},
	{Keyword: KeywordAA, Weight: WeightAA},
	{Keyword: KeywordXFA, Weight: WeightXFA},
	{Keyword: KeywordAcroForm, Weight: WeightAcroForm},
	{Keyword: KeywordRichMedia, Weight: WeightRichMedia},
	{Keyword: KeywordObjStm, Weight: WeightObjStm},
}

// WeightTable returns a copy of the weight table in declaration order.
func WeightTable() []interfaces.KeywordWeight {
	out := make([]interfaces.KeywordWeight, len(weightTable))
	copy(out, weightTable[:])
	return out
}

// Keywords returns the scored keyword vocabulary in table order.
func Keywords() []string {
	out := make([]string, len(weightTable))
	for i, kw := range weightTable {
		out[i] = kw.Keyword
	}
	return out
}

// WeightOf returns the base weight for keyword, or 0 if it is not scored.
func WeightOf(keyword string) int {
	for _, kw := range weightTable {
		if kw.Keyword == keyword {
			return kw.Weight
		}
	}
	return 0
}

// Contribution returns what count occurrences of a keyword with the given
// weight add to the raw total: 1 -> w, 2-3 -> 2w, 4-5 -> 3w, 6+ -> 4w.
func Contribution(weight, count int) int {
	switch {
	case count <= 0:
		return 0
	case count == 1:
		return weight
	default:
		return weight * (1 + min(MaxTierBonus, count/2))
	}
}
