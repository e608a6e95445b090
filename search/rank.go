package search

import (
	"slices"

	"github.com/poiesic/sift/core"
)

// Results is a fully ordered result sequence.
type Results struct {
	Items []*core.SearchResult
	Total int
}

// Top returns at most n leading results.
func (r Results) Top(n int) []*core.SearchResult {
	if n < 0 || n >= len(r.Items) {
		return r.Items
	}
	return r.Items[:n]
}

// IsEmpty reports whether the search found nothing.
func (r Results) IsEmpty() bool {
	return r.Total == 0
}

// Rank orders results by relevance descending, breaking ties with the most
// recent message first. The input slice is sorted in place.
func Rank(results []*core.SearchResult) Results {
	slices.SortStableFunc(results, func(a, b *core.SearchResult) int {
		switch {
		case a.RelevanceScore() > b.RelevanceScore():
			return -1
		case a.RelevanceScore() < b.RelevanceScore():
			return 1
		}
		return b.Timestamp().Compare(a.Timestamp())
	})
	return Results{Items: results, Total: len(results)}
}

// RankByRecency orders results newest first, ignoring relevance.
func RankByRecency(results []*core.SearchResult) Results {
	slices.SortStableFunc(results, func(a, b *core.SearchResult) int {
		return b.Timestamp().Compare(a.Timestamp())
	})
	return Results{Items: results, Total: len(results)}
}
