package search

import (
	"strings"
	"unicode/utf8"
)

const (
	termWeightDivisor = 10.0
	coverageBonus     = 0.3
	phraseMultiplier  = 2.0
)

// Score rates content against terms. Zero means no match.
func Score(content string, terms TermSet) float64 {
	if strings.TrimSpace(content) == "" || terms.IsEmpty() {
		return 0
	}

	lower := strings.ToLower(content)
	var score float64
	matched := 0
	for _, term := range terms {
		n := strings.Count(lower, term)
		if n == 0 {
			continue
		}
		score += float64(n) * (float64(utf8.RuneCountInString(term)) / termWeightDivisor)
		matched++
	}

	if matched > 1 {
		score *= 1.0 + float64(matched-1)*coverageBonus
	}

	if len(terms) > 1 && strings.Contains(lower, terms.Phrase()) {
		score *= phraseMultiplier
	}

	return score
}
