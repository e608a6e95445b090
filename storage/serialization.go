package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/poiesic/sift/core"
)

// guildRecord is the stored shape of a core.Guild.
type guildRecord struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	APIKey    string    `json:"api_key,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MarshalGuild serializes a Guild to bytes.
func MarshalGuild(guild *core.Guild) ([]byte, error) {
	if guild == nil {
		return nil, fmt.Errorf("%w: nil guild", ErrSerializationFailed)
	}
	data, err := json.Marshal(guildRecord{
		ID:        guild.ID.Uint64(),
		Name:      guild.Name,
		APIKey:    guild.APIKey.Value(),
		IsActive:  guild.IsActive,
		CreatedAt: guild.CreatedAt.UTC(),
		UpdatedAt: guild.UpdatedAt.UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return data, nil
}

// UnmarshalGuild deserializes a Guild from bytes.
// A stored API key that no longer passes validation is an error.
func UnmarshalGuild(data []byte) (*core.Guild, error) {
	var rec guildRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	if rec.ID == 0 {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, core.ErrInvalidID)
	}

	guild := &core.Guild{
		ID:        core.GuildID(rec.ID),
		Name:      rec.Name,
		IsActive:  rec.IsActive,
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	}
	if rec.APIKey != "" {
		key, err := core.NewAPIKey(rec.APIKey)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
		}
		guild.APIKey = key
	}
	return guild, nil
}
