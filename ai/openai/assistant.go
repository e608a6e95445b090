package openai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/poiesic/sift/ai"
	"github.com/poiesic/sift/core"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// ModelFactory builds a model client authenticated with key.
type ModelFactory func(key core.APIKey) (llms.Model, error)

// Assistant implements ai.Assistant using OpenAI-compatible chat APIs.
type Assistant struct {
	config   *ai.Config
	newModel ModelFactory
	logger   *slog.Logger
}

var _ ai.Assistant = (*Assistant)(nil)

// Option configures an Assistant.
type Option func(*Assistant) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(a *Assistant) error {
		if logger == nil {
			logger = slog.Default()
		}
		a.logger = logger.With("component", "openai-assistant")
		return nil
	}
}

// WithModelFactory replaces how model clients are built.
func WithModelFactory(factory ModelFactory) Option {
	return func(a *Assistant) error {
		if factory == nil {
			return errors.New("openai: model factory cannot be nil")
		}
		a.newModel = factory
		return nil
	}
}

// newAssistant is an internal constructor that returns the concrete type.
func newAssistant(config *ai.Config, opts ...Option) (*Assistant, error) {
	if config == nil {
		config = ai.DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	a := &Assistant{
		config: config,
		logger: slog.Default().With("component", "openai-assistant"),
	}
	a.newModel = a.defaultModel

	for _, opt := range opts {
		if err := opt(a); err != nil {
			return nil, err
		}
	}
	return a, nil
}

// NewAssistant creates an assistant using the provided configuration.
//
// Returns ai.Assistant interface to enforce abstraction.
func NewAssistant(config *ai.Config, opts ...Option) (ai.Assistant, error) {
	return newAssistant(config, opts...)
}

func (a *Assistant) defaultModel(key core.APIKey) (llms.Model, error) {
	opts := []openai.Option{
		openai.WithToken(key.Value()),
		openai.WithModel(a.config.Model),
	}
	if a.config.Host != "" {
		opts = append(opts, openai.WithBaseURL(a.config.Host))
	}
	return openai.New(opts...)
}

// EnhanceSearchResults summarizes up to MaxContents result contents.
func (a *Assistant) EnhanceSearchResults(ctx context.Context, key core.APIKey, contents []string, query string) (string, error) {
	if len(contents) > a.config.MaxContents {
		contents = contents[:a.config.MaxContents]
	}
	text, err := a.generate(ctx, key, buildEnhancePrompt(query, contents))
	if err != nil {
		a.logger.Error("error enhancing search results", "key", key.Fingerprint(), "results", len(contents), "err", err)
		return ai.FallbackEnhancement, err
	}
	return text, nil
}

// SummarizeContent summarizes arbitrary content.
func (a *Assistant) SummarizeContent(ctx context.Context, key core.APIKey, content string) (string, error) {
	text, err := a.generate(ctx, key, buildSummarizePrompt(content))
	if err != nil {
		a.logger.Error("error summarizing content", "key", key.Fingerprint(), "err", err)
		return ai.FallbackSummary, err
	}
	return text, nil
}

// ExplainQuery answers and explains a query.
func (a *Assistant) ExplainQuery(ctx context.Context, key core.APIKey, query string) (string, error) {
	text, err := a.generate(ctx, key, buildExplainPrompt(query))
	if err != nil {
		a.logger.Error("error explaining query", "key", key.Fingerprint(), "err", err)
		return ai.FallbackEnhancement, err
	}
	return text, nil
}

// ValidateAPIKey sends a minimal request with the key.
func (a *Assistant) ValidateAPIKey(ctx context.Context, key core.APIKey) bool {
	if key.IsZero() {
		return false
	}
	model, err := a.newModel(key)
	if err != nil {
		a.logger.Warn("API key validation failed", "key", key.Fingerprint(), "err", err)
		return false
	}
	if _, err := llms.GenerateFromSinglePrompt(ctx, model, validationPrompt, llms.WithMaxTokens(5)); err != nil {
		a.logger.Warn("API key validation failed", "key", key.Fingerprint(), "err", err)
		return false
	}
	return true
}

func (a *Assistant) generate(ctx context.Context, key core.APIKey, prompt string) (string, error) {
	if key.IsZero() {
		return "", ai.ErrAPIKeyRequired
	}
	model, err := a.newModel(key)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ai.ErrGenerationFailed, err)
	}

	callOpts := []llms.CallOption{llms.WithTemperature(a.config.Temperature)}
	if a.config.MaxTokens > 0 {
		callOpts = append(callOpts, llms.WithMaxTokens(a.config.MaxTokens))
	}

	text, err := llms.GenerateFromSinglePrompt(ctx, model, prompt, callOpts...)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ai.ErrGenerationFailed, err)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ai.ErrEmptyResponse
	}
	return text, nil
}
