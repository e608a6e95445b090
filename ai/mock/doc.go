// Package mock provides a test double implementation of ai.Assistant.
//
// The mock lets tests run without a language-model provider and makes its
// behavior deterministic.
//
// # Usage in Tests
//
//	// Basic usage with default behavior
//	assistant := mock.NewMockAssistant()
//	text, err := assistant.ExplainQuery(ctx, key, "test")
//
//	// Custom behavior injection
//	assistant.ValidateAPIKeyFunc = func(ctx context.Context, key core.APIKey) bool {
//	    return false
//	}
//
//	// Check call counts
//	count := assistant.CallCount()
//
// # Default Behavior
//
//   - EnhanceSearchResults: "Summary of N results for "query""
//   - SummarizeContent: "Summary: " plus the first 40 characters
//   - ExplainQuery: "Explanation of "query""
//   - ValidateAPIKey: true for any non-zero key
package mock
