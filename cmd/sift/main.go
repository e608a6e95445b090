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

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/poiesic/sift"
	"github.com/poiesic/sift/config"
	"github.com/poiesic/sift/core"
	"github.com/poiesic/sift/handler"
	"github.com/poiesic/sift/search"
	"github.com/poiesic/sift/storage/badger"
	"github.com/urfave/cli/v2"
)

// logLevel is set by setupLogger and handed to the Discord session.
var logLevel = slog.LevelInfo

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "sift",
		Usage: "Discord bot for searching guild message history",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to YAML config file",
				Value:   "sift.yaml",
			},
			&cli.StringFlag{
				Name:  "env-file",
				Usage: "Path to .env file loaded before the config",
				Value: ".env",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "run",
				Usage:  "Connect to Discord and serve commands",
				Action: runCommand,
			},
			{
				Name:      "search",
				Usage:     "Search a guild's recent messages from the terminal",
				ArgsUsage: "<query>",
				Action:    searchCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "guild",
						Aliases:  []string{"g"},
						Usage:    "Guild ID to search",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "channel",
						Usage: "Restrict the search to one channel ID",
					},
					&cli.StringFlag{
						Name:  "author",
						Usage: "Restrict the search to one author ID",
					},
					&cli.BoolFlag{
						Name:  "ai",
						Usage: "Summarize results with the guild's stored API key",
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Number of results to print",
						Value: 10,
					},
				},
			},
			{
				Name:   "guilds",
				Usage:  "List registered guilds",
				Action: guildsCommand,
			},
			{
				Name:   "init",
				Usage:  "Write a default config file",
				Action: initCommand,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "force",
						Usage: "Overwrite an existing file",
					},
				},
			},
		},
	}
}

func loadConfig(c *cli.Context) (*config.Config, error) {
	if err := config.LoadDotEnv(c.String("env-file")); err != nil {
		return nil, err
	}
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func runCommand(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	bot, err := sift.NewBot(cfg, sift.WithSessionLogLevel(logLevel))
	if err != nil {
		return fmt.Errorf("failed to create bot: %w", err)
	}
	defer bot.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return bot.Run(ctx)
}

func searchCommand(c *cli.Context) error {
	q, err := parseSearchQuery(c)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	bot, err := sift.NewBot(cfg,
		sift.WithSessionLogLevel(logLevel),
		sift.WithSearchMonitor(search.NewLoggingMonitor(slog.Default())),
	)
	if err != nil {
		return fmt.Errorf("failed to create bot: %w", err)
	}
	defer bot.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	resp, err := bot.Dispatcher().Dispatch(ctx, handler.SearchMessages{SearchQuery: q})
	if err != nil {
		return err
	}
	res := resp.(handler.SearchMessagesResult)
	printResults(os.Stdout, res, c.Int("limit"))
	if !res.Success {
		return errors.New(res.ErrorMessage)
	}
	return nil
}

func parseSearchQuery(c *cli.Context) (core.SearchQuery, error) {
	guildID, err := core.ParseGuildID(c.String("guild"))
	if err != nil {
		return core.SearchQuery{}, fmt.Errorf("--guild: %w", err)
	}
	q := core.SearchQuery{
		GuildID:          guildID,
		Query:            strings.Join(c.Args().Slice(), " "),
		UseAIEnhancement: c.Bool("ai"),
	}
	if s := c.String("channel"); s != "" {
		if q.ChannelID, err = core.ParseChannelID(s); err != nil {
			return core.SearchQuery{}, fmt.Errorf("--channel: %w", err)
		}
	}
	if s := c.String("author"); s != "" {
		if q.AuthorID, err = core.ParseUserID(s); err != nil {
			return core.SearchQuery{}, fmt.Errorf("--author: %w", err)
		}
	}
	if err := core.ValidateSearchQuery(q); err != nil {
		return core.SearchQuery{}, err
	}
	return q, nil
}

func printResults(w io.Writer, res handler.SearchMessagesResult, limit int) {
	fmt.Fprintf(w, "Found %d hits\n", res.Results.Total)
	if res.AISummary != "" {
		fmt.Fprintf(w, "\nSummary: %s\n\n", res.AISummary)
	}
	for i, hit := range res.Results.Top(limit) {
		fmt.Fprintf(w, "%d: #%s %s [%0.3f] %s\n   %s\n",
			i+1, hit.ChannelName(), hit.AuthorName(), hit.RelevanceScore(),
			hit.Timestamp().Format("2006-01-02 15:04"), hit.Content())
		fmt.Fprintf(w, "   %s\n", hit.MessageURL())
	}
}

func guildsCommand(c *cli.Context) error {
	ctx := context.Background()

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	backend, err := badger.OpenBackend(cfg.Storage.Path, cfg.Storage.InMemory)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer backend.Close()

	repo, err := badger.NewGuildRepository(backend)
	if err != nil {
		return fmt.Errorf("failed to create repository: %w", err)
	}
	defer repo.Close()

	guilds, err := repo.ListActiveGuilds(ctx)
	if err != nil {
		return err
	}
	printGuilds(os.Stdout, guilds)
	return nil
}

func printGuilds(w io.Writer, guilds []*core.Guild) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tAI KEY\tREGISTERED")
	for _, g := range guilds {
		key := "-"
		if g.HasValidAPIKey() {
			key = g.APIKey.String()
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", g.ID, g.Name, key, g.CreatedAt.Format("2006-01-02"))
	}
	tw.Flush()
}

func initCommand(c *cli.Context) error {
	path := c.String("config")
	if _, err := os.Stat(path); err == nil && !c.Bool("force") {
		return fmt.Errorf("%s already exists, use --force to overwrite", path)
	}
	if err := config.Save(path, config.Default()); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Wrote %s\n", path)
	return nil
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
	logLevel = level

	return nil
}
