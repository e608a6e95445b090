package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIDs(t *testing.T) {
	t.Run("valid snowflake", func(t *testing.T) {
		id, err := ParseGuildID("1147203893451587624")
		require.NoError(t, err)
		assert.Equal(t, GuildID(1147203893451587624), id)
		assert.Equal(t, "1147203893451587624", id.String())
		assert.Equal(t, uint64(1147203893451587624), id.Uint64())
	})

	t.Run("each kind parses independently", func(t *testing.T) {
		c, err := ParseChannelID("42")
		require.NoError(t, err)
		u, err := ParseUserID("43")
		require.NoError(t, err)
		m, err := ParseMessageID("44")
		require.NoError(t, err)

		assert.Equal(t, ChannelID(42), c)
		assert.Equal(t, UserID(43), u)
		assert.Equal(t, MessageID(44), m)
	})

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := ParseChannelID("<#123>")
		assert.ErrorIs(t, err, ErrInvalidID)
	})

	t.Run("rejects zero", func(t *testing.T) {
		_, err := ParseUserID("0")
		assert.ErrorIs(t, err, ErrInvalidID)
	})

	t.Run("rejects empty", func(t *testing.T) {
		_, err := ParseMessageID("")
		assert.ErrorIs(t, err, ErrInvalidID)
	})
}

func TestMessageURL(t *testing.T) {
	got := MessageURL(GuildID(1), ChannelID(2), MessageID(3))
	assert.Equal(t, "https://discord.com/channels/1/2/3", got)
}
