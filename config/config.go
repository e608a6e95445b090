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

// Package config loads the bot's process configuration.
//
// Settings come from a YAML file, with defaults for anything left out.
// The bot token may instead be supplied through the DISCORD_BOT_TOKEN
// environment variable, which also takes precedence over the file. A .env
// file in the working directory is loaded into the environment first.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/poiesic/sift/ai"
	"github.com/poiesic/sift/core"
	"gopkg.in/yaml.v3"
)

// TokenEnv names the environment variable holding the bot token.
const TokenEnv = "DISCORD_BOT_TOKEN"

var (
	// ErrTokenRequired is returned when no bot token is configured.
	ErrTokenRequired = errors.New("discord bot token required: set " + TokenEnv + " or discord.token")

	// ErrInvalidConfig is returned when a setting is out of range.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// DiscordConfig configures the chat connection.
type DiscordConfig struct {
	Token          string `yaml:"token"`
	Prefix         string `yaml:"prefix"`
	CommandTimeout int    `yaml:"command_timeout_secs"`
}

// StorageConfig configures the guild store.
type StorageConfig struct {
	Path     string `yaml:"path"`
	InMemory bool   `yaml:"in_memory"`
}

// SearchConfig configures channel scanning.
type SearchConfig struct {
	HistoryWindow int     `yaml:"history_window"`
	Workers       int     `yaml:"workers"`
	RequestRate   float64 `yaml:"requests_per_second"`
	RequestBurst  int     `yaml:"request_burst"`
}

// AIConfig configures the language model.
type AIConfig struct {
	Host        string  `yaml:"host"`
	Model       string  `yaml:"model"`
	Temperature float64 `yaml:"temperature"`
	MaxTokens   int     `yaml:"max_tokens"`
	MaxContents int     `yaml:"max_contents"`
}

// Config is the root configuration.
type Config struct {
	Discord DiscordConfig `yaml:"discord"`
	Storage StorageConfig `yaml:"storage"`
	Search  SearchConfig  `yaml:"search"`
	AI      AIConfig      `yaml:"ai"`
}

// Default returns the built-in configuration.
func Default() *Config {
	aiDefaults := ai.DefaultConfig()
	return &Config{
		Discord: DiscordConfig{Prefix: "!", CommandTimeout: 120},
		Storage: StorageConfig{Path: "sift.db"},
		Search: SearchConfig{
			HistoryWindow: core.HistoryWindow,
			RequestRate:   40,
			RequestBurst:  10,
		},
		AI: AIConfig{
			Host:        aiDefaults.Host,
			Model:       aiDefaults.Model,
			Temperature: aiDefaults.Temperature,
			MaxTokens:   aiDefaults.MaxTokens,
			MaxContents: aiDefaults.MaxContents,
		},
	}
}

// Load reads path, falling back to defaults when the file does not exist.
// An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config %s: %w", path, err)
			}
		}
	}
	cfg.applyDefaults()
	cfg.ApplyEnv()
	return cfg, nil
}

// LoadDotEnv loads a .env file into the environment without overriding
// variables that are already set. A missing file is not an error.
func LoadDotEnv(path string) error {
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// ApplyEnv applies environment overrides.
func (c *Config) ApplyEnv() {
	if token := strings.TrimSpace(os.Getenv(TokenEnv)); token != "" {
		c.Discord.Token = token
	}
}

// applyDefaults fills zero values that a partial file leaves behind.
func (c *Config) applyDefaults() {
	d := Default()
	if c.Discord.Prefix == "" {
		c.Discord.Prefix = d.Discord.Prefix
	}
	if c.Discord.CommandTimeout == 0 {
		c.Discord.CommandTimeout = d.Discord.CommandTimeout
	}
	if c.Storage.Path == "" && !c.Storage.InMemory {
		c.Storage.Path = d.Storage.Path
	}
	if c.Search.HistoryWindow == 0 {
		c.Search.HistoryWindow = d.Search.HistoryWindow
	}
	if c.Search.RequestRate == 0 {
		c.Search.RequestRate = d.Search.RequestRate
	}
	if c.Search.RequestBurst == 0 {
		c.Search.RequestBurst = d.Search.RequestBurst
	}
	if c.AI.Model == "" {
		c.AI.Model = d.AI.Model
	}
	if c.AI.MaxTokens == 0 {
		c.AI.MaxTokens = d.AI.MaxTokens
	}
	if c.AI.MaxContents == 0 {
		c.AI.MaxContents = d.AI.MaxContents
	}
}

// Validate checks everything except the token, which only the bot
// itself needs. See ValidateToken.
func (c *Config) Validate() error {
	if c.Search.HistoryWindow < 1 {
		return fmt.Errorf("%w: search.history_window must be at least 1", ErrInvalidConfig)
	}
	if c.Search.Workers < 0 {
		return fmt.Errorf("%w: search.workers cannot be negative", ErrInvalidConfig)
	}
	if c.Search.RequestRate <= 0 || c.Search.RequestBurst < 1 {
		return fmt.Errorf("%w: search request rate and burst must be positive", ErrInvalidConfig)
	}
	if c.Discord.CommandTimeout < 1 {
		return fmt.Errorf("%w: discord.command_timeout_secs must be at least 1", ErrInvalidConfig)
	}
	if !c.Storage.InMemory && c.Storage.Path == "" {
		return fmt.Errorf("%w: storage.path is required", ErrInvalidConfig)
	}
	if err := c.AIConfig().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// ValidateToken checks that a bot token is present.
func (c *Config) ValidateToken() error {
	if strings.TrimSpace(c.Discord.Token) == "" {
		return ErrTokenRequired
	}
	return nil
}

// AIConfig converts the AI section into an ai.Config.
func (c *Config) AIConfig() *ai.Config {
	return ai.NewConfig(
		ai.WithHost(c.AI.Host),
		ai.WithModel(c.AI.Model),
		ai.WithTemperature(c.AI.Temperature),
		ai.WithMaxTokens(c.AI.MaxTokens),
		ai.WithMaxContents(c.AI.MaxContents),
	)
}

// Save writes the config to path, creating directories as needed.
// The token is never written.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	out := *cfg
	out.Discord.Token = ""
	data, err := yaml.Marshal(&out)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// CommandTimeout returns how long a single chat command may run.
func (c *Config) CommandTimeout() time.Duration {
	return time.Duration(c.Discord.CommandTimeout) * time.Second
}
