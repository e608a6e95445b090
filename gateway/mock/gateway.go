package mock

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/poiesic/sift/core"
)

// Gateway is a test double for gateway.Gateway.
// It is safe for concurrent use.
type Gateway struct {
	// FetchRecentMessagesFunc replaces the default message lookup if set.
	FetchRecentMessagesFunc func(ctx context.Context, channel *core.Channel, limit int) ([]*core.Message, error)

	// HasReadHistoryPermissionFunc replaces the default permission lookup if set.
	HasReadHistoryPermissionFunc func(ctx context.Context, channel *core.Channel) (bool, error)

	// ListTextChannelsFunc replaces the default channel listing if set.
	ListTextChannelsFunc func(ctx context.Context, guild *core.GuildInfo) ([]*core.Channel, error)

	mu       sync.RWMutex
	guilds   map[core.GuildID]*core.GuildInfo
	channels map[core.ChannelID]*core.Channel
	messages map[core.ChannelID][]*core.Message
	denied   map[core.ChannelID]bool
	failures map[core.ChannelID]error

	fetches atomic.Int64
}

// NewGateway creates an empty mock gateway.
func NewGateway() *Gateway {
	return &Gateway{
		guilds:   make(map[core.GuildID]*core.GuildInfo),
		channels: make(map[core.ChannelID]*core.Channel),
		messages: make(map[core.ChannelID][]*core.Message),
		denied:   make(map[core.ChannelID]bool),
		failures: make(map[core.ChannelID]error),
	}
}

// AddGuild registers a guild.
func (g *Gateway) AddGuild(guild *core.GuildInfo) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.guilds[guild.ID] = guild
}

// AddChannel registers a text channel.
func (g *Gateway) AddChannel(channel *core.Channel) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.channels[channel.ID] = channel
}

// AddMessages appends messages to a channel's history.
func (g *Gateway) AddMessages(channelID core.ChannelID, msgs ...*core.Message) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.messages[channelID] = append(g.messages[channelID], msgs...)
}

// Deny revokes read-history permission on a channel.
func (g *Gateway) Deny(channelID core.ChannelID) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.denied[channelID] = true
}

// Fail makes every fetch from the channel return err.
func (g *Gateway) Fail(channelID core.ChannelID, err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.failures[channelID] = err
}

// FetchCount returns how many times FetchRecentMessages was called.
func (g *Gateway) FetchCount() int {
	return int(g.fetches.Load())
}

func (g *Gateway) GetGuild(ctx context.Context, id core.GuildID) (*core.GuildInfo, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	guild, ok := g.guilds[id]
	if !ok {
		return nil, nil
	}
	return guild, nil
}

func (g *Gateway) GetChannel(ctx context.Context, id core.ChannelID) (*core.Channel, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	channel, ok := g.channels[id]
	if !ok {
		return nil, nil
	}
	return channel, nil
}

// ListTextChannels returns the guild's channels ordered by ID.
func (g *Gateway) ListTextChannels(ctx context.Context, guild *core.GuildInfo) ([]*core.Channel, error) {
	if g.ListTextChannelsFunc != nil {
		return g.ListTextChannelsFunc(ctx, guild)
	}
	g.mu.RLock()
	defer g.mu.RUnlock()
	var out []*core.Channel
	for _, c := range g.channels {
		if c.GuildID == guild.ID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// FetchRecentMessages returns the newest limit messages, newest first.
func (g *Gateway) FetchRecentMessages(ctx context.Context, channel *core.Channel, limit int) ([]*core.Message, error) {
	g.fetches.Add(1)
	if g.FetchRecentMessagesFunc != nil {
		return g.FetchRecentMessagesFunc(ctx, channel, limit)
	}
	g.mu.RLock()
	if err := g.failures[channel.ID]; err != nil {
		g.mu.RUnlock()
		return nil, err
	}
	msgs := append([]*core.Message(nil), g.messages[channel.ID]...)
	g.mu.RUnlock()

	sort.SliceStable(msgs, func(i, j int) bool { return msgs[i].Timestamp.After(msgs[j].Timestamp) })
	if limit >= 0 && len(msgs) > limit {
		msgs = msgs[:limit]
	}
	return msgs, nil
}

func (g *Gateway) HasReadHistoryPermission(ctx context.Context, channel *core.Channel) (bool, error) {
	if g.HasReadHistoryPermissionFunc != nil {
		return g.HasReadHistoryPermissionFunc(ctx, channel)
	}
	g.mu.RLock()
	defer g.mu.RUnlock()
	return !g.denied[channel.ID], nil
}
