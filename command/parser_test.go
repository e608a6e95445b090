package command

import (
	"testing"

	"github.com/poiesic/sift/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	p := NewParser("")

	tests := []struct {
		name  string
		input string
		want  *Command
	}{
		{"plain search", "!search deployment failed", &Command{Kind: KindSearch, Query: "deployment failed"}},
		{"ai search", "!search ai what broke", &Command{Kind: KindSearch, Query: "what broke", UseAI: true}},
		{"user search with query", "!search user <@123> deploy", &Command{Kind: KindSearch, AuthorID: 123, Query: "deploy"}},
		{"user search nickname mention", "!search user <@!123>", &Command{Kind: KindSearch, AuthorID: 123}},
		{"channel search", "!search channel <#456> release notes", &Command{Kind: KindSearch, ChannelID: 456, Query: "release notes"}},
		{"explain", "!explain what is a goroutine", &Command{Kind: KindExplain, Query: "what is a goroutine"}},
		{"set key", "!setapikey sk-abc", &Command{Kind: KindSetAPIKey, APIKey: "sk-abc"}},
		{"remove key", "!removeapikey", &Command{Kind: KindRemoveAPIKey}},
		{"help", "!help", &Command{Kind: KindHelp}},
		{"about", "  !about  ", &Command{Kind: KindAbout}},
		{"case insensitive name", "!SEARCH Thing", &Command{Kind: KindSearch, Query: "Thing"}},
		{"word starting with ai", "!search aim higher", &Command{Kind: KindSearch, Query: "aim higher"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := p.Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseErrors(t *testing.T) {
	p := NewParser("!")

	t.Run("not a command", func(t *testing.T) {
		_, err := p.Parse("hello there")
		assert.ErrorIs(t, err, ErrNotCommand)
	})

	t.Run("unknown command", func(t *testing.T) {
		_, err := p.Parse("!dance")
		assert.ErrorIs(t, err, ErrUnknownCommand)
	})

	usage := []string{
		"!search",
		"!search ai",
		"!search user bob",
		"!search channel general stuff",
		"!search channel <#456>",
		"!explain",
		"!setapikey",
	}
	for _, input := range usage {
		t.Run(input, func(t *testing.T) {
			_, err := p.Parse(input)
			var u *UsageError
			require.ErrorAs(t, err, &u)
			assert.NotEmpty(t, u.Message)
		})
	}
}

func TestCustomPrefix(t *testing.T) {
	p := NewParser("?")
	assert.Equal(t, "?", p.Prefix())

	cmd, err := p.Parse("?search cats")
	require.NoError(t, err)
	assert.Equal(t, "cats", cmd.Query)

	_, err = p.Parse("!search cats")
	assert.ErrorIs(t, err, ErrNotCommand)
}

func TestKind(t *testing.T) {
	assert.True(t, KindSetAPIKey.IsAdmin())
	assert.True(t, KindRemoveAPIKey.IsAdmin())
	assert.False(t, KindSearch.IsAdmin())
	assert.Equal(t, "explain", KindExplain.String())
	assert.Equal(t, core.UserID(0), (&Command{}).AuthorID)
}
