package ai

import (
	"context"

	"github.com/poiesic/sift/core"
)

// Assistant performs the language-model tasks of the bot.
// Every call is made with the requesting guild's own API key.
// Implementations must be thread-safe for concurrent use.
//
// The text methods never return an empty string: when the provider fails,
// the returned text is a user-presentable fallback and err describes the
// cause. Callers may show the text either way.
type Assistant interface {
	// EnhanceSearchResults summarizes the contents of the top search results
	// in the light of the query.
	EnhanceSearchResults(ctx context.Context, key core.APIKey, contents []string, query string) (string, error)

	// SummarizeContent returns a short summary of content.
	SummarizeContent(ctx context.Context, key core.APIKey, content string) (string, error)

	// ExplainQuery answers and explains a free-text query.
	ExplainQuery(ctx context.Context, key core.APIKey, query string) (string, error)

	// ValidateAPIKey reports whether the provider accepts the key.
	ValidateAPIKey(ctx context.Context, key core.APIKey) bool
}
