// Package sift wires the bot together: guild storage, the chat gateway,
// the searcher, the language-model assistant, the request dispatcher and
// the command router.
package sift

import (
	"context"
	"errors"
	"log/slog"

	"github.com/bwmarrin/discordgo"
	"github.com/poiesic/sift/ai"
	"github.com/poiesic/sift/ai/openai"
	"github.com/poiesic/sift/command"
	"github.com/poiesic/sift/config"
	"github.com/poiesic/sift/gateway"
	"github.com/poiesic/sift/gateway/discord"
	"github.com/poiesic/sift/handler"
	"github.com/poiesic/sift/search"
	"github.com/poiesic/sift/storage"
	"github.com/poiesic/sift/storage/badger"
	"golang.org/x/time/rate"
)

// Intents the bot subscribes to.
const Intents = discordgo.IntentGuilds | discordgo.IntentGuildMessages | discordgo.IntentMessageContent

var (
	// ErrConfigRequired is returned when no configuration is provided.
	ErrConfigRequired = errors.New("config required")

	// ErrNoSession is returned by Run when the bot has no chat session.
	ErrNoSession = errors.New("bot has no chat session")
)

type Bot struct {
	cfg        *config.Config
	backend    *badger.Backend
	guilds     *badger.GuildRepository
	session    *discordgo.Session
	gateway    gateway.Gateway
	assistant  ai.Assistant
	searcher   *search.Searcher
	dispatcher *handler.Dispatcher
	router     *command.Router
	logger     *slog.Logger
}

// BotOption configures a Bot.
type BotOption func(*botOptions)

type botOptions struct {
	gateway   gateway.Gateway
	assistant ai.Assistant
	monitor   search.SearchMonitor
	logger    *slog.Logger
	logLevel  slog.Level
}

// WithGateway replaces the Discord gateway. The bot then has no session
// and cannot Run.
func WithGateway(gw gateway.Gateway) BotOption {
	return func(o *botOptions) {
		o.gateway = gw
	}
}

// WithAssistant replaces the OpenAI assistant.
func WithAssistant(a ai.Assistant) BotOption {
	return func(o *botOptions) {
		o.assistant = a
	}
}

// WithSearchMonitor installs a search monitor.
func WithSearchMonitor(m search.SearchMonitor) BotOption {
	return func(o *botOptions) {
		o.monitor = m
	}
}

// WithLogger sets the logger every component derives from.
func WithLogger(logger *slog.Logger) BotOption {
	return func(o *botOptions) {
		o.logger = logger
	}
}

// WithSessionLogLevel sets how verbose the Discord session logs are.
// Default is slog.LevelWarn.
func WithSessionLogLevel(level slog.Level) BotOption {
	return func(o *botOptions) {
		o.logLevel = level
	}
}

// NewBot builds a bot from cfg. Without WithGateway a Discord session is
// created from the configured token but not connected until Run.
func NewBot(cfg *config.Config, opts ...BotOption) (*Bot, error) {
	if cfg == nil {
		return nil, ErrConfigRequired
	}
	options := &botOptions{logger: slog.Default(), logLevel: slog.LevelWarn}
	for _, opt := range opts {
		opt(options)
	}
	if options.logger == nil {
		options.logger = slog.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	b := &Bot{cfg: cfg, logger: options.logger.With("component", "bot")}
	if err := b.build(options); err != nil {
		b.Close()
		return nil, err
	}
	return b, nil
}

func (b *Bot) build(options *botOptions) error {
	var err error
	b.backend, err = badger.OpenBackend(b.cfg.Storage.Path, b.cfg.Storage.InMemory,
		badger.WithBackendLogger(options.logger))
	if err != nil {
		return err
	}
	b.guilds, err = badger.NewGuildRepository(b.backend)
	if err != nil {
		return err
	}

	b.assistant = options.assistant
	if b.assistant == nil {
		b.assistant, err = openai.NewAssistant(b.cfg.AIConfig(), openai.WithLogger(options.logger))
		if err != nil {
			return err
		}
	}

	b.gateway = options.gateway
	if b.gateway == nil {
		if err := b.cfg.ValidateToken(); err != nil {
			return err
		}
		b.session, err = discordgo.New("Bot " + b.cfg.Discord.Token)
		if err != nil {
			return err
		}
		b.session.Identify.Intents = Intents
		b.session.LogLevel = discord.SessionLogLevel(options.logLevel)
		discord.BridgeLogs(options.logger)
		b.gateway, err = discord.NewSessionGateway(b.session,
			discord.WithLogger(options.logger),
			discord.WithRateLimit(rate.Limit(b.cfg.Search.RequestRate), b.cfg.Search.RequestBurst),
		)
		if err != nil {
			return err
		}
	}

	searchOpts := []search.Option{
		search.WithLogger(options.logger),
		search.WithHistoryWindow(b.cfg.Search.HistoryWindow),
		search.WithMonitor(options.monitor),
	}
	if b.cfg.Search.Workers > 0 {
		searchOpts = append(searchOpts, search.WithPoolSize(b.cfg.Search.Workers))
	}
	b.searcher, err = search.NewSearcher(b.gateway, searchOpts...)
	if err != nil {
		return err
	}

	b.dispatcher, err = handler.NewDispatcher(b.guilds, b.searcher, b.gateway, b.assistant,
		handler.WithLogger(options.logger),
		handler.WithMaxContents(b.cfg.AI.MaxContents),
	)
	if err != nil {
		return err
	}

	if b.session != nil {
		b.router, err = command.NewRouter(b.session, b.dispatcher,
			command.WithLogger(options.logger),
			command.WithPrefix(b.cfg.Discord.Prefix),
			command.WithTimeout(b.cfg.CommandTimeout()),
		)
		if err != nil {
			return err
		}
	}
	return nil
}

// Run connects to Discord and serves commands until ctx is done.
func (b *Bot) Run(ctx context.Context) error {
	if b.session == nil || b.router == nil {
		return ErrNoSession
	}

	removeHandler := b.session.AddHandler(b.router.HandleMessageCreate)
	defer removeHandler()
	removeReady := b.session.AddHandler(func(_ *discordgo.Session, r *discordgo.Ready) {
		b.logger.Info("connected", "user", r.User.Username, "guilds", len(r.Guilds))
	})
	defer removeReady()

	if err := b.session.Open(); err != nil {
		return err
	}
	defer func() {
		if err := b.session.Close(); err != nil {
			b.logger.Error("error closing session", "err", err)
		}
	}()

	<-ctx.Done()
	b.logger.Info("shutting down")
	return nil
}

// Close releases the searcher and storage.
func (b *Bot) Close() error {
	if b.searcher != nil {
		b.searcher.Release()
	}
	if b.guilds != nil {
		if err := b.guilds.Close(); err != nil {
			b.logger.Error("error closing guild repository", "err", err)
			return err
		}
	}
	if b.backend != nil {
		if err := b.backend.Close(); err != nil {
			b.logger.Error("error closing backend storage", "err", err)
			return err
		}
	}
	return nil
}

func (b *Bot) GuildRepository() storage.GuildRepository {
	return b.guilds
}

func (b *Bot) Searcher() *search.Searcher {
	return b.searcher
}

func (b *Bot) Dispatcher() *handler.Dispatcher {
	return b.dispatcher
}
