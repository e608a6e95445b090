package discord

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/poiesic/sift/core"
)

func toGuildInfo(g *discordgo.Guild) (*core.GuildInfo, error) {
	id, err := core.ParseGuildID(g.ID)
	if err != nil {
		return nil, err
	}
	return &core.GuildInfo{ID: id, Name: g.Name}, nil
}

// toChannel converts a text channel. Other channel kinds return nil.
func toChannel(c *discordgo.Channel) (*core.Channel, error) {
	if c.Type != discordgo.ChannelTypeGuildText {
		return nil, nil
	}
	id, err := core.ParseChannelID(c.ID)
	if err != nil {
		return nil, err
	}
	guildID, err := core.ParseGuildID(c.GuildID)
	if err != nil {
		return nil, fmt.Errorf("channel %s: %w", c.ID, err)
	}
	return &core.Channel{ID: id, GuildID: guildID, Name: c.Name}, nil
}

func toMessage(channelID core.ChannelID, m *discordgo.Message) (*core.Message, error) {
	id, err := core.ParseMessageID(m.ID)
	if err != nil {
		return nil, err
	}
	msg := &core.Message{
		ID:        id,
		ChannelID: channelID,
		Content:   m.Content,
		Timestamp: m.Timestamp,
	}
	if m.Author != nil {
		authorID, err := core.ParseUserID(m.Author.ID)
		if err != nil {
			return nil, fmt.Errorf("message %s: %w", m.ID, err)
		}
		msg.AuthorID = authorID
		msg.AuthorName = displayName(m.Author)
		msg.IsBot = m.Author.Bot
	}
	return msg, nil
}

func displayName(u *discordgo.User) string {
	if u.GlobalName != "" {
		return u.GlobalName
	}
	return u.Username
}
