// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ai

import (
	"errors"
	"strings"
)

// Config holds configuration for the language-model assistant.
// The API key is not part of it; each guild brings its own.
type Config struct {
	// Host is the base URL of an OpenAI-compatible API.
	// Empty means the official OpenAI endpoint.
	// Example: "http://localhost:11434/v1" for a local server
	Host string

	// Model is the chat model identifier.
	// Example: "gpt-3.5-turbo", "gpt-4o-mini"
	Model string

	// Temperature is the sampling temperature, between 0 and 2.
	// Default: 0.3
	Temperature float64

	// MaxTokens caps the length of a generated answer. Zero leaves it to the provider.
	// Default: 800
	MaxTokens int

	// MaxContents is how many search results are sent for enhancement.
	// Default: 10
	MaxContents int
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithHost sets the API base URL.
func WithHost(host string) ConfigOption {
	return func(c *Config) {
		c.Host = host
	}
}

// WithModel sets the chat model identifier.
func WithModel(model string) ConfigOption {
	return func(c *Config) {
		c.Model = model
	}
}

// WithTemperature sets the sampling temperature.
func WithTemperature(t float64) ConfigOption {
	return func(c *Config) {
		c.Temperature = t
	}
}

// WithMaxTokens sets the answer length cap.
func WithMaxTokens(n int) ConfigOption {
	return func(c *Config) {
		c.MaxTokens = n
	}
}

// WithMaxContents sets how many results are sent for enhancement.
func WithMaxContents(n int) ConfigOption {
	return func(c *Config) {
		c.MaxContents = n
	}
}

// DefaultConfig returns a Config targeting the official OpenAI API.
func DefaultConfig() *Config {
	return &Config{
		Host:        "",
		Model:       "gpt-3.5-turbo",
		Temperature: 0.3,
		MaxTokens:   800,
		MaxContents: 10,
	}
}

// NewConfig creates a Config with the default values and applies the provided options.
//
// Example:
//
//	cfg := NewConfig(
//	    WithHost("http://localhost:11434/v1"),
//	    WithModel("qwen2.5:3b"),
//	)
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Normalize ensures the configuration is in a canonical form.
// A custom Host gets the /v1 suffix OpenAI-compatible servers expect.
func (c *Config) Normalize() {
	c.Host = strings.TrimSpace(c.Host)
	if c.Host != "" && !strings.HasSuffix(c.Host, "/v1") {
		c.Host = strings.TrimSuffix(c.Host, "/") + "/v1"
	}
	c.Model = strings.TrimSpace(c.Model)
}

// Validate checks that the configuration is valid and complete.
// It automatically normalizes the configuration before validation.
func (c *Config) Validate() error {
	c.Normalize()

	if c.Model == "" {
		return errors.New("ai config: Model is required")
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return errors.New("ai config: Temperature must be between 0 and 2")
	}
	if c.MaxTokens < 0 {
		return errors.New("ai config: MaxTokens cannot be negative")
	}
	if c.MaxContents < 1 {
		return errors.New("ai config: MaxContents must be at least 1")
	}
	return nil
}
