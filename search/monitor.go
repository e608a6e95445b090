package search

import (
	"log/slog"

	"github.com/poiesic/sift/core"
)

// Mode identifies which entry point a search went through.
type Mode string

const (
	ModeGuild   Mode = "guild"
	ModeChannel Mode = "channel"
	ModeAuthor  Mode = "author"
)

// SearchMonitor provides hooks to observe the search process.
// Channel hooks are called from worker goroutines and must be safe for
// concurrent use.
type SearchMonitor interface {
	Start(mode Mode, query string, terms TermSet)
	ChannelSkipped(channel *core.Channel, reason string)
	ChannelFailed(channel *core.Channel, err error)
	MessageScanned(channel *core.Channel, scanned int)
	ChannelScanned(channel *core.Channel, fetched, hits int)
	Finish(results Results)
}

// noopMonitor is a no-op implementation of SearchMonitor
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ Mode, _ string, _ TermSet)        {}
func (n *noopMonitor) ChannelSkipped(_ *core.Channel, _ string) {}
func (n *noopMonitor) ChannelFailed(_ *core.Channel, _ error)   {}
func (n *noopMonitor) MessageScanned(_ *core.Channel, _ int)    {}
func (n *noopMonitor) ChannelScanned(_ *core.Channel, _, _ int) {}
func (n *noopMonitor) Finish(_ Results)                         {}

// LoggingMonitor reports search progress through slog at debug level.
type LoggingMonitor struct {
	Logger *slog.Logger
}

var _ SearchMonitor = (*LoggingMonitor)(nil)

// NewLoggingMonitor creates a monitor writing to logger, or slog.Default() if nil.
func NewLoggingMonitor(logger *slog.Logger) *LoggingMonitor {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoggingMonitor{Logger: logger.With("component", "search-monitor")}
}

func (m *LoggingMonitor) Start(mode Mode, query string, terms TermSet) {
	m.Logger.Debug("search started", "mode", mode, "query", query, "terms", []string(terms))
}

func (m *LoggingMonitor) ChannelSkipped(channel *core.Channel, reason string) {
	m.Logger.Debug("channel skipped", "channel", channel.Name, "channelID", channel.ID, "reason", reason)
}

func (m *LoggingMonitor) ChannelFailed(channel *core.Channel, err error) {
	m.Logger.Debug("channel failed", "channel", channel.Name, "channelID", channel.ID, "err", err)
}

func (m *LoggingMonitor) MessageScanned(_ *core.Channel, _ int) {}

func (m *LoggingMonitor) ChannelScanned(channel *core.Channel, fetched, hits int) {
	m.Logger.Debug("channel scanned", "channel", channel.Name, "channelID", channel.ID, "fetched", fetched, "hits", hits)
}

func (m *LoggingMonitor) Finish(results Results) {
	m.Logger.Debug("search finished", "total", results.Total)
}
