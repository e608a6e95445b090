package mock

import (
	"context"
	"fmt"
	"sync"

	"github.com/poiesic/sift/ai"
	"github.com/poiesic/sift/core"
)

// MockAssistant is a test double for ai.Assistant.
// It allows custom behavior injection via function fields.
type MockAssistant struct {
	// EnhanceSearchResultsFunc is called by EnhanceSearchResults if set.
	EnhanceSearchResultsFunc func(ctx context.Context, key core.APIKey, contents []string, query string) (string, error)

	// SummarizeContentFunc is called by SummarizeContent if set.
	SummarizeContentFunc func(ctx context.Context, key core.APIKey, content string) (string, error)

	// ExplainQueryFunc is called by ExplainQuery if set.
	ExplainQueryFunc func(ctx context.Context, key core.APIKey, query string) (string, error)

	// ValidateAPIKeyFunc is called by ValidateAPIKey if set.
	ValidateAPIKeyFunc func(ctx context.Context, key core.APIKey) bool

	mu        sync.Mutex
	callCount int
	calls     map[string]int
}

var _ ai.Assistant = (*MockAssistant)(nil)

// NewMockAssistant creates a mock assistant with default deterministic behavior.
func NewMockAssistant() *MockAssistant {
	return &MockAssistant{calls: make(map[string]int)}
}

func (m *MockAssistant) record(method string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callCount++
	if m.calls == nil {
		m.calls = make(map[string]int)
	}
	m.calls[method]++
}

func (m *MockAssistant) EnhanceSearchResults(ctx context.Context, key core.APIKey, contents []string, query string) (string, error) {
	m.record("EnhanceSearchResults")
	if m.EnhanceSearchResultsFunc != nil {
		return m.EnhanceSearchResultsFunc(ctx, key, contents, query)
	}
	return fmt.Sprintf("Summary of %d results for %q", len(contents), query), nil
}

func (m *MockAssistant) SummarizeContent(ctx context.Context, key core.APIKey, content string) (string, error) {
	m.record("SummarizeContent")
	if m.SummarizeContentFunc != nil {
		return m.SummarizeContentFunc(ctx, key, content)
	}
	if len(content) > 40 {
		content = content[:40]
	}
	return "Summary: " + content, nil
}

func (m *MockAssistant) ExplainQuery(ctx context.Context, key core.APIKey, query string) (string, error) {
	m.record("ExplainQuery")
	if m.ExplainQueryFunc != nil {
		return m.ExplainQueryFunc(ctx, key, query)
	}
	return fmt.Sprintf("Explanation of %q", query), nil
}

func (m *MockAssistant) ValidateAPIKey(ctx context.Context, key core.APIKey) bool {
	m.record("ValidateAPIKey")
	if m.ValidateAPIKeyFunc != nil {
		return m.ValidateAPIKeyFunc(ctx, key)
	}
	return !key.IsZero()
}

// CallCount returns the total number of calls across all methods.
func (m *MockAssistant) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

// Calls returns how many times method was called.
func (m *MockAssistant) Calls(method string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[method]
}

// Reset clears the call counters.
func (m *MockAssistant) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callCount = 0
	m.calls = make(map[string]int)
}
