package command

import (
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/poiesic/sift/core"
	"github.com/poiesic/sift/handler"
)

const (
	// MaxShownResults is how many results a search reply lists.
	MaxShownResults = 5

	previewRunes  = 200
	maxFieldRunes = 1024
	ellipsis      = "..."
)

// Embed colors.
const (
	colorBlue   = 0x3498DB
	colorGold   = 0xF1C40F
	colorPurple = 0x9B59B6
	colorGreen  = 0x2ECC71
	colorRed    = 0xE74C3C
)

// Scope describes what a search covered, for titles and empty replies.
type Scope struct {
	Query     string
	ChannelID core.ChannelID
	AuthorID  core.UserID
}

// Renderer builds reply embeds.
type Renderer struct {
	prefix string
	now    func() time.Time
}

// NewRenderer creates a renderer that shows commands with prefix.
func NewRenderer(prefix string) *Renderer {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Renderer{prefix: prefix, now: time.Now}
}

func (r *Renderer) timestamp() string {
	return r.now().Format(time.RFC3339)
}

// SearchResults lists the top results with their previews and links.
func (r *Renderer) SearchResults(scope Scope, res handler.SearchMessagesResult) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:     searchTitle(scope, res),
		Color:     colorBlue,
		Timestamp: r.timestamp(),
	}

	if res.AISummary != "" {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "🤖 AI Summary",
			Value: truncate(res.AISummary, maxFieldRunes),
		})
	}

	for _, result := range res.Results.Top(MaxShownResults) {
		name := "#" + result.ChannelName() + " - " + result.AuthorName()
		if scope.ChannelID != 0 {
			name = result.AuthorName() + " - " + result.Timestamp().Format("Jan 02, 2006")
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  name,
			Value: fmt.Sprintf("%s\n[Jump to message](%s)", preview(result.Content()), result.MessageURL()),
		})
	}

	if res.Results.Total > MaxShownResults {
		embed.Footer = &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Showing %d of %d results", MaxShownResults, res.Results.Total),
		}
	}
	return embed
}

func searchTitle(scope Scope, res handler.SearchMessagesResult) string {
	var first *core.SearchResult
	if len(res.Results.Items) > 0 {
		first = res.Results.Items[0]
	}
	switch {
	case scope.ChannelID != 0 && first != nil:
		return "🔍 Search Results in #" + first.ChannelName()
	case scope.AuthorID != 0 && first != nil:
		return "🔍 Messages from " + first.AuthorName()
	}
	return "🔍 Search Results for: " + scope.Query
}

// NoResults is the plain reply for an empty search.
func (r *Renderer) NoResults(scope Scope) string {
	where := "across all channels"
	switch {
	case scope.ChannelID != 0:
		where = "in <#" + scope.ChannelID.String() + ">"
	case scope.AuthorID != 0:
		where = "from <@" + scope.AuthorID.String() + ">"
	}
	return fmt.Sprintf("❌ No results found %s for: `%s`", where, scope.Query)
}

// Explanation shows the model's answer to a query.
func (r *Renderer) Explanation(query, text string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "🧠 Explanation for: " + query,
		Description: truncate(text, maxFieldRunes),
		Color:       colorGreen,
		Timestamp:   r.timestamp(),
	}
}

// APIKeyResult reports the outcome of setting a key.
func (r *Renderer) APIKeyResult(res handler.APIKeyResult) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Description: res.Message,
		Timestamp:   r.timestamp(),
	}
	if res.Success {
		embed.Title = "✅ API Key Set Successfully"
		embed.Color = colorGreen
	} else {
		embed.Title = "❌ Failed to Set API Key"
		embed.Color = colorRed
	}
	return embed
}

// Error reports a failed command.
func (r *Renderer) Error(message string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "❌ Command Error",
		Description: message,
		Color:       colorRed,
		Timestamp:   r.timestamp(),
	}
}

// Help lists the commands.
func (r *Renderer) Help() *discordgo.MessageEmbed {
	p := r.prefix
	return &discordgo.MessageEmbed{
		Title:       "🤖 Sift",
		Description: "Search and analyze your server's messages with optional AI enhancement.",
		Color:       colorGold,
		Timestamp:   r.timestamp(),
		Fields: []*discordgo.MessageEmbedField{
			{
				Name: "📊 **Search Commands**",
				Value: fmt.Sprintf("`%[1]ssearch <query>` - Search across all channels\n"+
					"`%[1]ssearch ai <query>` - Search with AI summary (requires API key)\n"+
					"`%[1]ssearch user @user [query]` - Search messages from specific user\n"+
					"`%[1]ssearch channel #channel <query>` - Search within specific channel\n"+
					"`%[1]sexplain <query>` - Ask AI to explain something (requires API key)", p),
			},
			{
				Name: "⚙️ **Configuration Commands** (Admin Only)",
				Value: fmt.Sprintf("`%[1]ssetapikey <api-key>` - Set OpenAI API key for AI features\n"+
					"`%[1]sremoveapikey` - Remove stored API key", p),
			},
			{
				Name: "ℹ️ **Other Commands**",
				Value: fmt.Sprintf("`%[1]shelp` - Show this help message\n"+
					"`%[1]sabout` - Bot information", p),
			},
			{
				Name: "🔑 **Getting an OpenAI API Key**",
				Value: "1. Visit [OpenAI Platform](https://platform.openai.com/api-keys)\n" +
					"2. Create an account and generate an API key\n" +
					fmt.Sprintf("3. Use `%ssetapikey sk-your-key-here` to enable AI features", p),
			},
		},
		Footer: &discordgo.MessageEmbedFooter{
			Text: "💡 Tip: AI features provide enhanced summaries and insights from your search results!",
		},
	}
}

// About describes the bot.
func (r *Renderer) About() *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "🤖 Sift",
		Description: "A bot that helps you search and analyze server messages.",
		Color:       colorPurple,
		Timestamp:   r.timestamp(),
		Fields: []*discordgo.MessageEmbedField{
			{
				Name: "✨ **Features**",
				Value: "• Keyword search across all channels\n" +
					"• User and channel-specific searches\n" +
					"• AI-powered result summaries\n" +
					"• Relevance scoring and ranking",
			},
			{
				Name: "🛠️ **Built With**",
				Value: "• Go\n" +
					"• discordgo\n" +
					"• langchaingo\n" +
					"• BadgerDB",
			},
			{
				Name: "🔒 **Privacy & Security**",
				Value: "• Only API keys and guild names are stored\n" +
					"• Bot only reads channels it has permission to read\n" +
					"• Message content is never stored\n" +
					"• API key commands are deleted automatically",
			},
		},
	}
}

// preview keeps the first 200 runes of a message.
func preview(s string) string {
	runes := []rune(s)
	if len(runes) <= previewRunes {
		return s
	}
	return string(runes[:previewRunes]) + ellipsis
}

// truncate fits s into max runes, ending clipped text with "...".
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-len(ellipsis)]) + ellipsis
}
