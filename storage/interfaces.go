package storage

import (
	"context"

	"github.com/poiesic/sift/core"
)

// GuildRepository persists guild records.
// Implementations must be thread-safe and support concurrent access.
type GuildRepository interface {
	// GetGuild retrieves a guild by ID.
	// Returns ErrNotFound if the guild doesn't exist.
	GetGuild(ctx context.Context, id core.GuildID) (*core.Guild, error)

	// AddGuild stores a new guild.
	// Returns ErrDuplicateKey if a guild with the same ID exists.
	AddGuild(ctx context.Context, guild *core.Guild) error

	// UpdateGuild replaces an existing guild and refreshes UpdatedAt.
	// Returns ErrNotFound if the guild doesn't exist.
	UpdateGuild(ctx context.Context, guild *core.Guild) error

	// DeleteGuild removes a guild.
	// Returns ErrNotFound if the guild doesn't exist.
	DeleteGuild(ctx context.Context, id core.GuildID) error

	// ListActiveGuilds returns every active guild ordered by ID.
	ListActiveGuilds(ctx context.Context) ([]*core.Guild, error)

	// Close releases repository resources. It does not close the backend.
	Close() error
}
