package discord

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/poiesic/sift/core"
	"github.com/poiesic/sift/gateway"
	"golang.org/x/time/rate"
)

// PageSize is the most messages a single history request returns.
const PageSize = 100

const (
	defaultMaxAttempts = 3
	defaultBaseDelay   = 500 * time.Millisecond
	defaultRate        = rate.Limit(40)
	defaultBurst       = 10
)

// ErrSessionRequired is returned when no session is provided.
var ErrSessionRequired = errors.New("discord session required")

// Gateway reads guilds, channels and history through discordgo.
type Gateway struct {
	session     Session
	state       *discordgo.State
	limiter     *rate.Limiter
	maxAttempts int
	baseDelay   time.Duration
	logger      *slog.Logger

	selfMu sync.Mutex
	selfID string
}

var _ gateway.Gateway = (*Gateway)(nil)

// Option configures a Gateway.
type Option func(*Gateway) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(g *Gateway) error {
		if logger == nil {
			logger = slog.Default()
		}
		g.logger = logger
		return nil
	}
}

// WithState sets the state cache consulted before REST calls.
func WithState(state *discordgo.State) Option {
	return func(g *Gateway) error {
		g.state = state
		return nil
	}
}

// WithRateLimit sets the sustained request rate and burst.
func WithRateLimit(limit rate.Limit, burst int) Option {
	return func(g *Gateway) error {
		if limit <= 0 || burst <= 0 {
			return fmt.Errorf("rate limit and burst must be positive, got %v/%d", limit, burst)
		}
		g.limiter = rate.NewLimiter(limit, burst)
		return nil
	}
}

// WithRetry sets how REST calls are retried.
func WithRetry(maxAttempts int, baseDelay time.Duration) Option {
	return func(g *Gateway) error {
		if maxAttempts <= 0 {
			return gateway.ErrInvalidMaxAttempts
		}
		g.maxAttempts = maxAttempts
		g.baseDelay = baseDelay
		return nil
	}
}

// NewGateway creates a gateway over session.
func NewGateway(session Session, opts ...Option) (*Gateway, error) {
	if session == nil {
		return nil, ErrSessionRequired
	}
	g := &Gateway{
		session:     session,
		limiter:     rate.NewLimiter(defaultRate, defaultBurst),
		maxAttempts: defaultMaxAttempts,
		baseDelay:   defaultBaseDelay,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(g); err != nil {
			return nil, err
		}
	}
	g.logger = g.logger.With("component", "discord-gateway")
	return g, nil
}

// NewSessionGateway creates a gateway over a live session, using its state cache.
func NewSessionGateway(s *discordgo.Session, opts ...Option) (*Gateway, error) {
	if s == nil {
		return nil, ErrSessionRequired
	}
	return NewGateway(s, append([]Option{WithState(s.State)}, opts...)...)
}

// call waits for the limiter and retries op with backoff. Client errors
// other than rate limiting are not retried.
func (g *Gateway) call(ctx context.Context, op func() error) error {
	return gateway.RetryWithBackoff(ctx, func() error {
		if err := g.limiter.Wait(ctx); err != nil {
			return gateway.Permanent(err)
		}
		err := op()
		if isClientError(err) {
			return gateway.Permanent(err)
		}
		return err
	}, g.maxAttempts, g.baseDelay)
}

func (g *Gateway) GetGuild(ctx context.Context, id core.GuildID) (*core.GuildInfo, error) {
	if g.state != nil {
		if cached, err := g.state.Guild(id.String()); err == nil {
			return toGuildInfo(cached)
		}
	}

	var guild *discordgo.Guild
	err := g.call(ctx, func() error {
		var err error
		guild, err = g.session.Guild(id.String())
		return err
	})
	if isNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: guild %s: %w", gateway.ErrUnavailable, id, err)
	}
	return toGuildInfo(guild)
}

func (g *Gateway) GetChannel(ctx context.Context, id core.ChannelID) (*core.Channel, error) {
	if g.state != nil {
		if cached, err := g.state.Channel(id.String()); err == nil {
			return toChannel(cached)
		}
	}

	var channel *discordgo.Channel
	err := g.call(ctx, func() error {
		var err error
		channel, err = g.session.Channel(id.String())
		return err
	})
	if isNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: channel %s: %w", gateway.ErrUnavailable, id, err)
	}
	return toChannel(channel)
}

func (g *Gateway) ListTextChannels(ctx context.Context, guild *core.GuildInfo) ([]*core.Channel, error) {
	var raw []*discordgo.Channel
	err := g.call(ctx, func() error {
		var err error
		raw, err = g.session.GuildChannels(guild.ID.String())
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("%w: channels of guild %s: %w", gateway.ErrUnavailable, guild.ID, err)
	}

	channels := make([]*core.Channel, 0, len(raw))
	for _, c := range raw {
		channel, err := toChannel(c)
		if err != nil {
			g.logger.Warn("skipping malformed channel", "channelID", c.ID, "err", err)
			continue
		}
		if channel != nil {
			channels = append(channels, channel)
		}
	}
	return channels, nil
}

// FetchRecentMessages pages backwards from the newest message until limit
// messages are collected or the history runs out.
func (g *Gateway) FetchRecentMessages(ctx context.Context, channel *core.Channel, limit int) ([]*core.Message, error) {
	if limit <= 0 {
		return nil, nil
	}
	out := make([]*core.Message, 0, min(limit, core.HistoryWindow))
	before := ""

	for len(out) < limit {
		want := min(PageSize, limit-len(out))

		var page []*discordgo.Message
		err := g.call(ctx, func() error {
			var err error
			page, err = g.session.ChannelMessages(channel.ID.String(), want, before, "", "")
			return err
		})
		if err != nil {
			return nil, fmt.Errorf("fetching history of channel %s: %w", channel.ID, err)
		}

		for _, m := range page {
			msg, err := toMessage(channel.ID, m)
			if err != nil {
				g.logger.Warn("skipping malformed message", "channelID", channel.ID, "err", err)
				continue
			}
			out = append(out, msg)
		}

		if len(page) < want {
			break
		}
		before = page[len(page)-1].ID
	}

	g.logger.Debug("fetched history", "channelID", channel.ID, "count", len(out))
	return out, nil
}

func (g *Gateway) HasReadHistoryPermission(ctx context.Context, channel *core.Channel) (bool, error) {
	self, err := g.self(ctx)
	if err != nil {
		return false, err
	}

	if g.state != nil {
		if perms, err := g.state.UserChannelPermissions(self, channel.ID.String()); err == nil {
			return perms&discordgo.PermissionReadMessageHistory != 0, nil
		}
	}

	var perms int64
	err = g.call(ctx, func() error {
		var err error
		perms, err = g.session.UserChannelPermissions(self, channel.ID.String())
		return err
	})
	if err != nil {
		return false, fmt.Errorf("permissions for channel %s: %w", channel.ID, err)
	}
	return perms&discordgo.PermissionReadMessageHistory != 0, nil
}

// self resolves the bot's own user ID, caching it once known.
func (g *Gateway) self(ctx context.Context) (string, error) {
	g.selfMu.Lock()
	defer g.selfMu.Unlock()
	if g.selfID != "" {
		return g.selfID, nil
	}
	if g.state != nil && g.state.User != nil {
		g.selfID = g.state.User.ID
		return g.selfID, nil
	}

	var user *discordgo.User
	err := g.call(ctx, func() error {
		var err error
		user, err = g.session.User("@me")
		return err
	})
	if err != nil {
		return "", fmt.Errorf("%w: resolving bot user: %w", gateway.ErrUnavailable, err)
	}
	g.selfID = user.ID
	return g.selfID, nil
}

func statusCode(err error) int {
	var restErr *discordgo.RESTError
	if errors.As(err, &restErr) && restErr.Response != nil {
		return restErr.Response.StatusCode
	}
	return 0
}

func isNotFound(err error) bool {
	return statusCode(err) == http.StatusNotFound
}

func isClientError(err error) bool {
	code := statusCode(err)
	return code >= 400 && code < 500 && code != http.StatusTooManyRequests
}
