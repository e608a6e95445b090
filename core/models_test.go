package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGuild(t *testing.T) {
	t.Run("valid guild is active", func(t *testing.T) {
		g, err := NewGuild(GuildID(10), "Test Server")
		require.NoError(t, err)
		assert.Equal(t, GuildID(10), g.ID)
		assert.Equal(t, "Test Server", g.Name)
		assert.True(t, g.IsActive)
		assert.False(t, g.CreatedAt.IsZero())
		assert.True(t, g.UpdatedAt.IsZero())
		assert.False(t, g.HasValidAPIKey())
	})

	t.Run("blank name becomes Unknown", func(t *testing.T) {
		g, err := NewGuild(GuildID(10), "  ")
		require.NoError(t, err)
		assert.Equal(t, UnknownGuildName, g.Name)
	})

	t.Run("zero id rejected", func(t *testing.T) {
		_, err := NewGuild(0, "x")
		assert.ErrorIs(t, err, ErrInvalidGuild)
		assert.ErrorIs(t, err, ErrInvalidID)
	})
}

func TestGuild_Mutations(t *testing.T) {
	g, err := NewGuild(GuildID(10), "Test Server")
	require.NoError(t, err)

	key, err := NewAPIKey("sk-test-key-1234")
	require.NoError(t, err)

	g.SetAPIKey(key)
	assert.True(t, g.HasValidAPIKey())
	assert.False(t, g.UpdatedAt.IsZero())

	g.ClearAPIKey()
	assert.False(t, g.HasValidAPIKey())

	g.Deactivate()
	assert.False(t, g.IsActive)
	g.Activate()
	assert.True(t, g.IsActive)

	g.Rename("Renamed")
	assert.Equal(t, "Renamed", g.Name)
	g.Rename("")
	assert.Equal(t, "Renamed", g.Name)
}

func TestSearchQuery_HasQueryText(t *testing.T) {
	assert.True(t, SearchQuery{Query: "deploy"}.HasQueryText())
	assert.False(t, SearchQuery{Query: "   "}.HasQueryText())
	assert.False(t, SearchQuery{}.HasQueryText())
}

func TestNewSearchResult(t *testing.T) {
	ts := time.Date(2025, 3, 4, 10, 0, 0, 0, time.UTC)
	msg := &Message{
		ID:         MessageID(300),
		ChannelID:  ChannelID(200),
		AuthorID:   UserID(400),
		AuthorName: "alice",
		Content:    "hello world",
		Timestamp:  ts,
	}
	channel := &Channel{ID: ChannelID(200), GuildID: GuildID(100), Name: "general"}

	t.Run("valid result", func(t *testing.T) {
		r, err := NewSearchResult(msg, channel, 1.5)
		require.NoError(t, err)
		assert.Equal(t, MessageID(300), r.MessageID())
		assert.Equal(t, ChannelID(200), r.ChannelID())
		assert.Equal(t, UserID(400), r.AuthorID())
		assert.Equal(t, "alice", r.AuthorName())
		assert.Equal(t, "general", r.ChannelName())
		assert.Equal(t, "https://discord.com/channels/100/200/300", r.MessageURL())
		assert.Equal(t, ts, r.Timestamp())
		assert.Equal(t, "hello world", r.Content())
		assert.Equal(t, 1.5, r.RelevanceScore())
	})

	t.Run("negative score rejected", func(t *testing.T) {
		_, err := NewSearchResult(msg, channel, -0.1)
		assert.ErrorIs(t, err, ErrNegativeScore)
	})

	t.Run("nil inputs rejected", func(t *testing.T) {
		_, err := NewSearchResult(nil, channel, 1)
		assert.ErrorIs(t, err, ErrInvalidSearchResult)
		_, err = NewSearchResult(msg, nil, 1)
		assert.ErrorIs(t, err, ErrInvalidSearchResult)
	})

	t.Run("summary set once", func(t *testing.T) {
		r, err := NewSearchResult(msg, channel, 1)
		require.NoError(t, err)

		_, ok := r.Summary()
		assert.False(t, ok)

		require.NoError(t, r.SetSummary("first"))
		assert.ErrorIs(t, r.SetSummary("second"), ErrSummaryAlreadySet)

		summary, ok := r.Summary()
		assert.True(t, ok)
		assert.Equal(t, "first", summary)
	})
}
