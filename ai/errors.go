package ai

import "errors"

// Fallback texts returned when the provider cannot answer.
const (
	FallbackEnhancement = "Unable to enhance search results at this time."
	FallbackSummary     = "Unable to summarize content at this time."
)

var (
	// ErrAPIKeyRequired is returned when a call is made without a key.
	ErrAPIKeyRequired = errors.New("API key required")

	// ErrEmptyResponse is returned when the model answers with no text.
	ErrEmptyResponse = errors.New("empty response from model")

	// ErrGenerationFailed wraps provider failures.
	ErrGenerationFailed = errors.New("generation failed")
)
