package search

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/sift/core"
	"github.com/poiesic/sift/gateway"
)

// Searcher runs keyword searches across a guild's channels.
type Searcher struct {
	gateway gateway.Gateway
	scanner *Scanner
	pool    *ants.Pool
	window  int
	monitor SearchMonitor
	logger  *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// WithPoolSize sets how many channels are scanned concurrently.
// Default is runtime.NumCPU(), with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(s *Searcher) error {
		if size < 1 {
			size = 1
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		if s.pool != nil {
			s.pool.Release()
		}
		s.pool = pool
		return nil
	}
}

// WithMonitor installs a SearchMonitor. Nil restores the no-op monitor.
func WithMonitor(monitor SearchMonitor) Option {
	return func(s *Searcher) error {
		if monitor == nil {
			monitor = &noopMonitor{}
		}
		s.monitor = monitor
		return nil
	}
}

// WithHistoryWindow sets how many recent messages are read per channel.
// Default is core.HistoryWindow.
func WithHistoryWindow(n int) Option {
	return func(s *Searcher) error {
		if n > 0 {
			s.window = n
		}
		return nil
	}
}

// NewSearcher creates a searcher reading through gw.
// Call Release when done to stop the worker pool.
func NewSearcher(gw gateway.Gateway, opts ...Option) (*Searcher, error) {
	if gw == nil {
		return nil, ErrGatewayRequired
	}

	s := &Searcher{
		gateway: gw,
		window:  core.HistoryWindow,
		monitor: &noopMonitor{},
		logger:  slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			s.Release()
			return nil, err
		}
	}

	if s.pool == nil {
		pool, err := ants.NewPool(max(runtime.NumCPU(), 1))
		if err != nil {
			return nil, err
		}
		s.pool = pool
	}

	s.logger = s.logger.With("component", "searcher")
	scanner, err := NewScanner(gw, s.window, s.monitor, s.logger)
	if err != nil {
		s.Release()
		return nil, err
	}
	s.scanner = scanner

	return s, nil
}

// Release stops the worker pool.
func (s *Searcher) Release() {
	if s.pool != nil {
		s.pool.Release()
	}
}

// Search dispatches on the query's restrictions. A channel restriction wins
// over an author restriction; with neither the whole guild is searched.
func (s *Searcher) Search(ctx context.Context, q core.SearchQuery) (Results, error) {
	switch {
	case q.ChannelID != 0:
		return s.SearchChannel(ctx, q.ChannelID, q.Query)
	case q.AuthorID != 0:
		return s.SearchByAuthor(ctx, q.GuildID, q.AuthorID, q.Query)
	default:
		return s.SearchGuild(ctx, q.GuildID, q.Query)
	}
}

// SearchGuild scans every readable text channel of the guild and ranks the
// matches by relevance. An unknown guild yields empty results.
func (s *Searcher) SearchGuild(ctx context.Context, guildID core.GuildID, query string) (Results, error) {
	terms := ExtractTerms(query)
	s.monitor.Start(ModeGuild, query, terms)

	channels, err := s.guildChannels(ctx, guildID)
	if err != nil {
		return Results{}, err
	}

	found, err := s.scanAll(ctx, channels, terms, ScanFilter{})
	if err != nil {
		return Results{}, err
	}

	results := Rank(found)
	s.monitor.Finish(results)
	return results, nil
}

// SearchChannel scans a single channel. No permission pre-check is made;
// a failed fetch yields empty results.
func (s *Searcher) SearchChannel(ctx context.Context, channelID core.ChannelID, query string) (Results, error) {
	terms := ExtractTerms(query)
	s.monitor.Start(ModeChannel, query, terms)

	channel, err := s.gateway.GetChannel(ctx, channelID)
	if err != nil {
		s.logger.Error("error resolving channel", "channelID", channelID, "err", err)
		return Results{}, fmt.Errorf("%w: %w", gateway.ErrUnavailable, err)
	}
	if channel == nil {
		s.logger.Debug("channel not found", "channelID", channelID)
		results := Rank(nil)
		s.monitor.Finish(results)
		return results, nil
	}

	found, err := s.scanner.ScanChannel(ctx, channel, terms, ScanFilter{})
	if err != nil {
		s.logger.Warn("error searching channel", "channelID", channel.ID, "err", err)
		s.monitor.ChannelFailed(channel, err)
		found = nil
	}

	results := Rank(found)
	s.monitor.Finish(results)
	return results, nil
}

// SearchByAuthor scans every readable channel for one author's messages,
// newest first. With a blank query every message of the author is listed
// at score 1.0; otherwise only scoring messages are kept.
func (s *Searcher) SearchByAuthor(ctx context.Context, guildID core.GuildID, authorID core.UserID, query string) (Results, error) {
	terms := ExtractTerms(query)
	s.monitor.Start(ModeAuthor, query, terms)

	channels, err := s.guildChannels(ctx, guildID)
	if err != nil {
		return Results{}, err
	}

	filter := ScanFilter{
		AuthorID: authorID,
		ListAll:  strings.TrimSpace(query) == "",
	}
	found, err := s.scanAll(ctx, channels, terms, filter)
	if err != nil {
		return Results{}, err
	}

	results := RankByRecency(found)
	s.monitor.Finish(results)
	return results, nil
}

// guildChannels resolves the guild and lists its text channels.
// Returns nil, nil for an unknown guild.
func (s *Searcher) guildChannels(ctx context.Context, guildID core.GuildID) ([]*core.Channel, error) {
	guild, err := s.gateway.GetGuild(ctx, guildID)
	if err != nil {
		s.logger.Error("error resolving guild", "guildID", guildID, "err", err)
		return nil, fmt.Errorf("%w: %w", gateway.ErrUnavailable, err)
	}
	if guild == nil {
		s.logger.Debug("guild not found", "guildID", guildID)
		return nil, nil
	}

	channels, err := s.gateway.ListTextChannels(ctx, guild)
	if err != nil {
		s.logger.Error("error listing channels", "guildID", guildID, "err", err)
		return nil, fmt.Errorf("%w: %w", gateway.ErrUnavailable, err)
	}
	return channels, nil
}

// scanAll scans the channels on the worker pool. Results arrive in no
// particular order; callers rank them.
func (s *Searcher) scanAll(ctx context.Context, channels []*core.Channel, terms TermSet, filter ScanFilter) ([]*core.SearchResult, error) {
	var (
		mu        sync.Mutex
		collected []*core.SearchResult
		wg        sync.WaitGroup
	)

	for _, channel := range channels {
		if ctx.Err() != nil {
			s.logger.Debug("search cancelled before all channels were scheduled")
			break
		}
		wg.Add(1)
		err := s.pool.Submit(func() {
			defer wg.Done()
			found := s.scanPermitted(ctx, channel, terms, filter)
			if len(found) == 0 {
				return
			}
			mu.Lock()
			collected = append(collected, found...)
			mu.Unlock()
		})
		if err != nil {
			wg.Done()
			wg.Wait()
			return nil, fmt.Errorf("%w: %w", ErrSearcherClosed, err)
		}
	}

	wg.Wait()
	return collected, nil
}

// scanPermitted scans the channel if the bot may read its history.
// Every failure is logged and yields no results.
func (s *Searcher) scanPermitted(ctx context.Context, channel *core.Channel, terms TermSet, filter ScanFilter) []*core.SearchResult {
	allowed, err := s.gateway.HasReadHistoryPermission(ctx, channel)
	if err != nil {
		s.logger.Warn("error checking channel permissions", "channelID", channel.ID, "err", err)
		s.monitor.ChannelSkipped(channel, "permission check failed")
		return nil
	}
	if !allowed {
		s.monitor.ChannelSkipped(channel, "missing read history permission")
		return nil
	}

	found, err := s.scanner.ScanChannel(ctx, channel, terms, filter)
	if err != nil {
		s.logger.Warn("error searching channel", "channelID", channel.ID, "guildID", channel.GuildID, "err", err)
		s.monitor.ChannelFailed(channel, err)
		return nil
	}
	return found
}
