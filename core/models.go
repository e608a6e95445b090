package core

import (
	"fmt"
	"strings"
	"time"
)

// HistoryWindow is the number of most recent messages fetched per channel scan.
const HistoryWindow = 1000

// messageLinkBase is the host used to build message deep links.
const messageLinkBase = "https://discord.com/channels"

// GuildInfo is the platform's view of a guild, as reported by the gateway.
type GuildInfo struct {
	ID   GuildID
	Name string
}

// Channel is a text channel within a guild.
type Channel struct {
	ID      ChannelID
	GuildID GuildID
	Name    string
}

// Message is a single message fetched from channel history.
type Message struct {
	ID         MessageID
	ChannelID  ChannelID
	AuthorID   UserID
	AuthorName string
	IsBot      bool
	Content    string
	Timestamp  time.Time
}

// MessageURL builds the deep link to a message.
func MessageURL(guildID GuildID, channelID ChannelID, messageID MessageID) string {
	return fmt.Sprintf("%s/%d/%d/%d", messageLinkBase, guildID, channelID, messageID)
}

// Guild is the persisted record of a guild the bot serves.
type Guild struct {
	ID        GuildID
	Name      string
	APIKey    APIKey
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time // zero until the first modification
}

// NewGuild creates an active guild record.
// Blank names are recorded as "Unknown".
func NewGuild(id GuildID, name string) (*Guild, error) {
	if id == 0 {
		return nil, fmt.Errorf("%w: %w", ErrInvalidGuild, ErrInvalidID)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = UnknownGuildName
	}
	return &Guild{
		ID:        id,
		Name:      name,
		IsActive:  true,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// UnknownGuildName is used when the platform cannot tell us a guild's name.
const UnknownGuildName = "Unknown"

// SetAPIKey stores the key for the guild.
func (g *Guild) SetAPIKey(key APIKey) {
	g.APIKey = key
	g.touch()
}

// ClearAPIKey removes any stored key.
func (g *Guild) ClearAPIKey() {
	g.APIKey = APIKey{}
	g.touch()
}

// Rename updates the display name. Blank names are ignored.
func (g *Guild) Rename(name string) {
	name = strings.TrimSpace(name)
	if name == "" || name == g.Name {
		return
	}
	g.Name = name
	g.touch()
}

func (g *Guild) Activate() {
	g.IsActive = true
	g.touch()
}

func (g *Guild) Deactivate() {
	g.IsActive = false
	g.touch()
}

// HasValidAPIKey reports whether AI features can be used for the guild.
func (g *Guild) HasValidAPIKey() bool {
	return !g.APIKey.IsZero()
}

func (g *Guild) touch() {
	g.UpdatedAt = time.Now().UTC()
}

// SearchQuery is the context of one search request.
// ChannelID and AuthorID are optional restrictions; zero means unset.
type SearchQuery struct {
	GuildID          GuildID
	Query            string
	ChannelID        ChannelID
	AuthorID         UserID
	UseAIEnhancement bool
}

// HasQueryText reports whether the query carries any non-blank text.
func (q SearchQuery) HasQueryText() bool {
	return strings.TrimSpace(q.Query) != ""
}
