package gateway

import (
	"context"

	"github.com/poiesic/sift/core"
)

// Gateway is the read-side view of the chat platform.
// Implementations must be safe for concurrent use; search fans channel
// scans out across goroutines.
type Gateway interface {
	// GetGuild resolves a guild by ID.
	// Returns nil, nil if the bot cannot see the guild.
	GetGuild(ctx context.Context, id core.GuildID) (*core.GuildInfo, error)

	// GetChannel resolves a single text channel by ID.
	// Returns nil, nil if the channel does not exist or is not a text channel.
	GetChannel(ctx context.Context, id core.ChannelID) (*core.Channel, error)

	// ListTextChannels returns every text channel of a guild.
	ListTextChannels(ctx context.Context, guild *core.GuildInfo) ([]*core.Channel, error)

	// FetchRecentMessages returns up to limit of the most recent messages in
	// the channel, newest first.
	FetchRecentMessages(ctx context.Context, channel *core.Channel, limit int) ([]*core.Message, error)

	// HasReadHistoryPermission reports whether the bot may read the channel's history.
	HasReadHistoryPermission(ctx context.Context, channel *core.Channel) (bool, error)
}
