package search

import (
	"strings"
	"unicode/utf8"
)

// MinTermLength is the shortest token, in runes, that becomes a search term.
const MinTermLength = 3

// TermSet is a deduplicated list of lower-cased query terms.
// Order follows first occurrence in the query and determines the phrase
// used for the exact-match bonus.
type TermSet []string

// ExtractTerms lower-cases the query, splits it on whitespace and keeps each
// distinct token of at least MinTermLength runes.
func ExtractTerms(query string) TermSet {
	fields := strings.Fields(strings.ToLower(query))
	terms := make(TermSet, 0, len(fields))
	seen := make(map[string]bool, len(fields))
	for _, f := range fields {
		if utf8.RuneCountInString(f) < MinTermLength || seen[f] {
			continue
		}
		seen[f] = true
		terms = append(terms, f)
	}
	return terms
}

// IsEmpty reports whether no terms survived extraction.
func (t TermSet) IsEmpty() bool {
	return len(t) == 0
}

// Phrase joins the terms with single spaces.
func (t TermSet) Phrase() string {
	return strings.Join(t, " ")
}

// Contains reports whether term is in the set.
func (t TermSet) Contains(term string) bool {
	for _, s := range t {
		if s == term {
			return true
		}
	}
	return false
}
