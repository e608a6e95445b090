package core

import (
	"fmt"
	"strconv"
)

// Platform identifiers are 64-bit snowflakes. Each kind of identifier gets its
// own type so a channel id can never be passed where a guild id is expected.
// Conversions to and from the underlying integer are always explicit.

// GuildID identifies a guild (server).
type GuildID uint64

// ChannelID identifies a text channel.
type ChannelID uint64

// UserID identifies a user or bot account.
type UserID uint64

// MessageID identifies a single message.
type MessageID uint64

// ParseGuildID parses a decimal snowflake into a GuildID.
func ParseGuildID(s string) (GuildID, error) {
	v, err := parseSnowflake(s)
	return GuildID(v), err
}

// ParseChannelID parses a decimal snowflake into a ChannelID.
func ParseChannelID(s string) (ChannelID, error) {
	v, err := parseSnowflake(s)
	return ChannelID(v), err
}

// ParseUserID parses a decimal snowflake into a UserID.
func ParseUserID(s string) (UserID, error) {
	v, err := parseSnowflake(s)
	return UserID(v), err
}

// ParseMessageID parses a decimal snowflake into a MessageID.
func ParseMessageID(s string) (MessageID, error) {
	v, err := parseSnowflake(s)
	return MessageID(v), err
}

func parseSnowflake(s string) (uint64, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidID, s)
	}
	if v == 0 {
		return 0, fmt.Errorf("%w: zero", ErrInvalidID)
	}
	return v, nil
}

func (id GuildID) Uint64() uint64   { return uint64(id) }
func (id ChannelID) Uint64() uint64 { return uint64(id) }
func (id UserID) Uint64() uint64    { return uint64(id) }
func (id MessageID) Uint64() uint64 { return uint64(id) }

func (id GuildID) String() string   { return strconv.FormatUint(uint64(id), 10) }
func (id ChannelID) String() string { return strconv.FormatUint(uint64(id), 10) }
func (id UserID) String() string    { return strconv.FormatUint(uint64(id), 10) }
func (id MessageID) String() string { return strconv.FormatUint(uint64(id), 10) }
