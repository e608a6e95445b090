package command

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/poiesic/sift/core"
	"github.com/poiesic/sift/handler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSession struct {
	mu        sync.Mutex
	texts     []string
	embeds    []*discordgo.MessageEmbed
	deleted   []string
	added     []string
	removed   []string
	perms     int64
	deletions chan string
}

func (f *fakeSession) ChannelMessageSend(channelID, content string, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.texts = append(f.texts, content)
	return &discordgo.Message{ID: "reply", ChannelID: channelID}, nil
}

func (f *fakeSession) ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.embeds = append(f.embeds, embed)
	return &discordgo.Message{ID: "reply", ChannelID: channelID}, nil
}

func (f *fakeSession) ChannelMessageDelete(channelID, messageID string, options ...discordgo.RequestOption) error {
	f.mu.Lock()
	f.deleted = append(f.deleted, messageID)
	f.mu.Unlock()
	if f.deletions != nil {
		f.deletions <- messageID
	}
	return nil
}

func (f *fakeSession) MessageReactionAdd(channelID, messageID, emojiID string, options ...discordgo.RequestOption) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.added = append(f.added, emojiID)
	return nil
}

func (f *fakeSession) MessageReactionRemove(channelID, messageID, emojiID, userID string, options ...discordgo.RequestOption) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.removed = append(f.removed, emojiID)
	return nil
}

func (f *fakeSession) UserChannelPermissions(userID, channelID string, fetchOptions ...discordgo.RequestOption) (int64, error) {
	return f.perms, nil
}

type fakeDispatcher struct {
	requests     []handler.Request
	DispatchFunc func(ctx context.Context, req handler.Request) (handler.Response, error)
}

func (f *fakeDispatcher) Dispatch(ctx context.Context, req handler.Request) (handler.Response, error) {
	f.requests = append(f.requests, req)
	if f.DispatchFunc != nil {
		return f.DispatchFunc(ctx, req)
	}
	return nil, errors.New("unexpected dispatch")
}

func message(content string) *discordgo.Message {
	return &discordgo.Message{
		ID:        "100",
		ChannelID: "2",
		GuildID:   "1",
		Content:   content,
		Author:    &discordgo.User{ID: "7", Username: "alice"},
	}
}

func newTestRouter(t *testing.T, s *fakeSession, d *fakeDispatcher, opts ...Option) *Router {
	t.Helper()
	r, err := NewRouter(s, d, opts...)
	require.NoError(t, err)
	return r
}

func TestNewRouter(t *testing.T) {
	_, err := NewRouter(nil, &fakeDispatcher{})
	assert.ErrorIs(t, err, ErrSessionRequired)

	_, err = NewRouter(&fakeSession{}, nil)
	assert.ErrorIs(t, err, ErrDispatcherRequired)

	_, err = NewRouter(&fakeSession{}, &fakeDispatcher{}, WithPrefix(""))
	assert.Error(t, err)

	_, err = NewRouter(&fakeSession{}, &fakeDispatcher{}, WithTimeout(0))
	assert.Error(t, err)
}

func TestRouterIgnores(t *testing.T) {
	ctx := context.Background()
	s := &fakeSession{}
	d := &fakeDispatcher{}
	r := newTestRouter(t, s, d)

	bot := message("!search x")
	bot.Author.Bot = true
	dm := message("!search x")
	dm.GuildID = ""

	for _, m := range []*discordgo.Message{bot, dm, message("hello"), message("!dance")} {
		require.NoError(t, r.Handle(ctx, m))
	}
	assert.Empty(t, d.requests)
	assert.Empty(t, s.texts)
	assert.Empty(t, s.embeds)
}

func TestRouterSearch(t *testing.T) {
	ctx := context.Background()

	t.Run("results", func(t *testing.T) {
		s := &fakeSession{}
		d := &fakeDispatcher{DispatchFunc: func(ctx context.Context, req handler.Request) (handler.Response, error) {
			return handler.SearchMessagesResult{Success: true, Results: makeResults(t, 3, "deploy")}, nil
		}}
		r := newTestRouter(t, s, d)

		require.NoError(t, r.Handle(ctx, message("!search ai deploy")))

		require.Len(t, d.requests, 1)
		assert.Equal(t, handler.SearchMessages{SearchQuery: core.SearchQuery{GuildID: 1, Query: "deploy", UseAIEnhancement: true}}, d.requests[0])
		require.Len(t, s.embeds, 1)
		assert.Len(t, s.embeds[0].Fields, 3)
		assert.Equal(t, []string{ReactionWorking, ReactionDone}, s.added)
		assert.Equal(t, []string{ReactionWorking}, s.removed)
	})

	t.Run("no results", func(t *testing.T) {
		s := &fakeSession{}
		d := &fakeDispatcher{DispatchFunc: func(ctx context.Context, req handler.Request) (handler.Response, error) {
			return handler.SearchMessagesResult{Success: true}, nil
		}}
		r := newTestRouter(t, s, d)

		require.NoError(t, r.Handle(ctx, message("!search cats")))
		assert.Equal(t, []string{"❌ No results found across all channels for: `cats`"}, s.texts)
		assert.Empty(t, s.embeds)
	})

	t.Run("failure keeps results", func(t *testing.T) {
		s := &fakeSession{}
		d := &fakeDispatcher{DispatchFunc: func(ctx context.Context, req handler.Request) (handler.Response, error) {
			return handler.SearchMessagesResult{Results: makeResults(t, 1, "x"), ErrorMessage: handler.MsgAIKeyRequired}, nil
		}}
		r := newTestRouter(t, s, d)

		require.NoError(t, r.Handle(ctx, message("!search ai x")))
		assert.Equal(t, []string{"❌ " + handler.MsgAIKeyRequired}, s.texts)
		assert.Len(t, s.embeds, 1)
		assert.Equal(t, []string{ReactionWorking, ReactionFailed}, s.added)
	})

	t.Run("usage error", func(t *testing.T) {
		s := &fakeSession{}
		d := &fakeDispatcher{}
		r := newTestRouter(t, s, d)

		require.NoError(t, r.Handle(ctx, message("!search")))
		assert.Equal(t, []string{"❌ Please provide a search query."}, s.texts)
		assert.Empty(t, d.requests)
	})

	t.Run("dispatch error", func(t *testing.T) {
		s := &fakeSession{}
		r := newTestRouter(t, s, &fakeDispatcher{})

		assert.Error(t, r.Handle(ctx, message("!search x")))
		assert.Equal(t, []string{ReactionWorking, ReactionFailed}, s.added)
	})
}

func TestRouterExplain(t *testing.T) {
	ctx := context.Background()
	s := &fakeSession{}
	d := &fakeDispatcher{DispatchFunc: func(ctx context.Context, req handler.Request) (handler.Response, error) {
		return handler.ExplainQueryResult{Success: true, Explanation: "because"}, nil
	}}
	r := newTestRouter(t, s, d)

	require.NoError(t, r.Handle(ctx, message("!explain why")))
	assert.Equal(t, handler.ExplainQuery{GuildID: 1, Query: "why"}, d.requests[0])
	require.Len(t, s.embeds, 1)
	assert.Equal(t, "because", s.embeds[0].Description)
	assert.Equal(t, []string{ReactionThinking, ReactionDone}, s.added)
	assert.Equal(t, []string{ReactionThinking}, s.removed)
}

func TestRouterAPIKey(t *testing.T) {
	ctx := context.Background()

	t.Run("requires manage server", func(t *testing.T) {
		s := &fakeSession{perms: discordgo.PermissionSendMessages}
		d := &fakeDispatcher{}
		r := newTestRouter(t, s, d)

		require.NoError(t, r.Handle(ctx, message("!setapikey sk-secret")))
		assert.Empty(t, d.requests)
		assert.Equal(t, []string{"100"}, s.deleted)
		require.Len(t, s.embeds, 1)
		assert.Equal(t, "❌ Command Error", s.embeds[0].Title)
	})

	t.Run("set deletes command and reply", func(t *testing.T) {
		s := &fakeSession{perms: discordgo.PermissionManageGuild, deletions: make(chan string, 2)}
		d := &fakeDispatcher{DispatchFunc: func(ctx context.Context, req handler.Request) (handler.Response, error) {
			return handler.APIKeyResult{Success: true, Message: handler.MsgKeySet}, nil
		}}
		r := newTestRouter(t, s, d, WithKeyReplyTTL(10*time.Millisecond))

		require.NoError(t, r.Handle(ctx, message("!setapikey sk-secret")))
		assert.Equal(t, handler.SetAPIKey{GuildID: 1, APIKey: "sk-secret"}, d.requests[0])
		require.Len(t, s.embeds, 1)
		assert.Equal(t, handler.MsgKeySet, s.embeds[0].Description)

		assert.Equal(t, "100", <-s.deletions)
		select {
		case id := <-s.deletions:
			assert.Equal(t, "reply", id)
		case <-time.After(time.Second):
			t.Fatal("reply was not deleted")
		}
	})

	t.Run("remove", func(t *testing.T) {
		s := &fakeSession{perms: discordgo.PermissionAdministrator}
		d := &fakeDispatcher{DispatchFunc: func(ctx context.Context, req handler.Request) (handler.Response, error) {
			return handler.APIKeyResult{Success: true, Message: handler.MsgKeyRemoved}, nil
		}}
		r := newTestRouter(t, s, d)

		require.NoError(t, r.Handle(ctx, message("!removeapikey")))
		assert.Equal(t, handler.RemoveAPIKey{GuildID: 1}, d.requests[0])
		assert.Equal(t, []string{"✅ " + handler.MsgKeyRemoved}, s.texts)
	})
}

func TestRouterHelpAbout(t *testing.T) {
	ctx := context.Background()
	s := &fakeSession{}
	r := newTestRouter(t, s, &fakeDispatcher{}, WithPrefix("?"))

	require.NoError(t, r.Handle(ctx, message("?help")))
	require.NoError(t, r.Handle(ctx, message("?about")))
	require.NoError(t, r.Handle(ctx, message("!help")))
	require.Len(t, s.embeds, 2)
	assert.Contains(t, s.embeds[0].Fields[0].Value, "?search")
}
