package search

import (
	"context"
	"log/slog"

	"github.com/poiesic/sift/core"
	"github.com/poiesic/sift/gateway"
)

// ScanFilter narrows a channel scan.
type ScanFilter struct {
	// AuthorID keeps only this author's messages, bot accounts included.
	// When zero, every non-bot message is considered.
	AuthorID core.UserID

	// ListAll keeps every message that passes the author filter at a fixed
	// score of 1.0 instead of scoring it. Only meaningful with AuthorID.
	ListAll bool
}

func (f ScanFilter) byAuthor() bool {
	return f.AuthorID != 0
}

// Scanner scores the recent history of a single channel.
type Scanner struct {
	gateway gateway.Gateway
	window  int
	monitor SearchMonitor
	logger  *slog.Logger
}

// NewScanner creates a scanner reading window messages per channel.
// A nil monitor or logger falls back to the defaults.
func NewScanner(gw gateway.Gateway, window int, monitor SearchMonitor, logger *slog.Logger) (*Scanner, error) {
	if gw == nil {
		return nil, ErrGatewayRequired
	}
	if window <= 0 {
		window = core.HistoryWindow
	}
	if monitor == nil {
		monitor = &noopMonitor{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Scanner{
		gateway: gw,
		window:  window,
		monitor: monitor,
		logger:  logger,
	}, nil
}

// ScanChannel fetches the channel's recent messages and returns those that
// match. Messages are visited newest first; once ctx is cancelled the scan
// stops and returns what it has so far without an error.
// The only errors are a missing channel and a failed history fetch.
func (s *Scanner) ScanChannel(ctx context.Context, channel *core.Channel, terms TermSet, filter ScanFilter) ([]*core.SearchResult, error) {
	if channel == nil {
		return nil, ErrChannelRequired
	}

	msgs, err := s.gateway.FetchRecentMessages(ctx, channel, s.window)
	if err != nil {
		return nil, err
	}

	results := make([]*core.SearchResult, 0)
	scanned := 0
	for _, msg := range msgs {
		if ctx.Err() != nil {
			s.logger.Debug("scan cancelled", "channelID", channel.ID, "scanned", scanned, "hits", len(results))
			break
		}
		if r := s.consider(msg, channel, terms, filter); r != nil {
			results = append(results, r)
		}
		scanned++
		s.monitor.MessageScanned(channel, scanned)
	}

	s.monitor.ChannelScanned(channel, len(msgs), len(results))
	return results, nil
}

// consider returns a result for msg, or nil if it does not qualify.
func (s *Scanner) consider(msg *core.Message, channel *core.Channel, terms TermSet, filter ScanFilter) *core.SearchResult {
	if msg == nil {
		return nil
	}
	if filter.byAuthor() {
		if msg.AuthorID != filter.AuthorID {
			return nil
		}
	} else if msg.IsBot {
		return nil
	}

	score := 1.0
	if !(filter.byAuthor() && filter.ListAll) {
		score = Score(msg.Content, terms)
		if score == 0 {
			return nil
		}
	}

	r, err := core.NewSearchResult(msg, channel, score)
	if err != nil {
		s.logger.Warn("dropping malformed message", "channelID", channel.ID, "messageID", msg.ID, "err", err)
		return nil
	}
	return r
}
