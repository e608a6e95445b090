package command

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/poiesic/sift/core"
	"github.com/poiesic/sift/handler"
)

// Reactions marking command progress.
const (
	ReactionWorking  = "🔍"
	ReactionThinking = "🧠"
	ReactionDone     = "✅"
	ReactionFailed   = "❌"
)

const (
	defaultTimeout     = 2 * time.Minute
	defaultKeyReplyTTL = 30 * time.Second
)

// Session is the subset of *discordgo.Session the router replies through.
type Session interface {
	ChannelMessageSend(channelID, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageDelete(channelID, messageID string, options ...discordgo.RequestOption) error
	MessageReactionAdd(channelID, messageID, emojiID string, options ...discordgo.RequestOption) error
	MessageReactionRemove(channelID, messageID, emojiID, userID string, options ...discordgo.RequestOption) error
	UserChannelPermissions(userID, channelID string, fetchOptions ...discordgo.RequestOption) (int64, error)
}

var _ Session = (*discordgo.Session)(nil)

// Dispatcher executes handler requests.
type Dispatcher interface {
	Dispatch(ctx context.Context, req handler.Request) (handler.Response, error)
}

// Router executes chat commands.
type Router struct {
	session     Session
	dispatcher  Dispatcher
	parser      *Parser
	renderer    *Renderer
	timeout     time.Duration
	keyReplyTTL time.Duration
	logger      *slog.Logger
}

// Option configures a Router.
type Option func(*Router) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Router) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// WithPrefix sets the command prefix.
// Default is "!".
func WithPrefix(prefix string) Option {
	return func(r *Router) error {
		if prefix == "" {
			return errors.New("command prefix cannot be empty")
		}
		r.parser = NewParser(prefix)
		r.renderer = NewRenderer(prefix)
		return nil
	}
}

// WithTimeout bounds how long one command may run.
// Default is 2 minutes.
func WithTimeout(d time.Duration) Option {
	return func(r *Router) error {
		if d <= 0 {
			return fmt.Errorf("timeout must be positive, got %v", d)
		}
		r.timeout = d
		return nil
	}
}

// WithKeyReplyTTL sets how long the reply to a key change stays visible.
// Default is 30 seconds.
func WithKeyReplyTTL(d time.Duration) Option {
	return func(r *Router) error {
		r.keyReplyTTL = d
		return nil
	}
}

// NewRouter creates a router.
func NewRouter(session Session, dispatcher Dispatcher, opts ...Option) (*Router, error) {
	if session == nil {
		return nil, ErrSessionRequired
	}
	if dispatcher == nil {
		return nil, ErrDispatcherRequired
	}
	r := &Router{
		session:     session,
		dispatcher:  dispatcher,
		parser:      NewParser(DefaultPrefix),
		renderer:    NewRenderer(DefaultPrefix),
		timeout:     defaultTimeout,
		keyReplyTTL: defaultKeyReplyTTL,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}
	r.logger = r.logger.With("component", "router")
	return r, nil
}

// HandleMessageCreate is a discordgo event handler.
func (r *Router) HandleMessageCreate(_ *discordgo.Session, m *discordgo.MessageCreate) {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()
	if err := r.Handle(ctx, m.Message); err != nil {
		r.logger.Error("error handling command", "channelID", m.ChannelID, "err", err)
	}
}

// Handle executes the command in m, if any. Bot authors and direct
// messages are ignored.
func (r *Router) Handle(ctx context.Context, m *discordgo.Message) error {
	if m == nil || m.Author == nil || m.Author.Bot || m.GuildID == "" {
		return nil
	}

	cmd, err := r.parser.Parse(m.Content)
	if errors.Is(err, ErrNotCommand) || errors.Is(err, ErrUnknownCommand) {
		return nil
	}
	var usage *UsageError
	if errors.As(err, &usage) {
		_, err := r.session.ChannelMessageSend(m.ChannelID, "❌ "+usage.Message)
		return err
	}
	if err != nil {
		return err
	}

	guildID, err := core.ParseGuildID(m.GuildID)
	if err != nil {
		return err
	}

	log := r.logger.With("command", cmd.Kind, "guildID", guildID)
	log.Debug("executing command")

	if cmd.Kind.IsAdmin() {
		ok, err := r.isAdmin(m)
		if err != nil {
			return err
		}
		if !ok {
			if cmd.Kind == KindSetAPIKey {
				r.deleteQuietly(log, m.ChannelID, m.ID)
			}
			_, err := r.session.ChannelMessageSendEmbed(m.ChannelID, r.renderer.Error("You need the Manage Server permission to use this command."))
			return err
		}
	}

	switch cmd.Kind {
	case KindSearch:
		return r.search(ctx, log, m, guildID, cmd)
	case KindExplain:
		return r.explain(ctx, log, m, guildID, cmd)
	case KindSetAPIKey:
		return r.setAPIKey(ctx, log, m, guildID, cmd)
	case KindRemoveAPIKey:
		return r.removeAPIKey(ctx, m, guildID)
	case KindHelp:
		_, err := r.session.ChannelMessageSendEmbed(m.ChannelID, r.renderer.Help())
		return err
	case KindAbout:
		_, err := r.session.ChannelMessageSendEmbed(m.ChannelID, r.renderer.About())
		return err
	}
	return fmt.Errorf("%w: %v", ErrUnknownCommand, cmd.Kind)
}

func (r *Router) isAdmin(m *discordgo.Message) (bool, error) {
	perms, err := r.session.UserChannelPermissions(m.Author.ID, m.ChannelID)
	if err != nil {
		return false, fmt.Errorf("checking permissions: %w", err)
	}
	return perms&(discordgo.PermissionManageGuild|discordgo.PermissionAdministrator) != 0, nil
}

func (r *Router) search(ctx context.Context, log *slog.Logger, m *discordgo.Message, guildID core.GuildID, cmd *Command) error {
	scope := Scope{Query: cmd.Query, ChannelID: cmd.ChannelID, AuthorID: cmd.AuthorID}
	r.react(log, m, ReactionWorking)

	resp, err := r.dispatcher.Dispatch(ctx, handler.SearchMessages{SearchQuery: core.SearchQuery{
		GuildID:          guildID,
		Query:            cmd.Query,
		ChannelID:        cmd.ChannelID,
		AuthorID:         cmd.AuthorID,
		UseAIEnhancement: cmd.UseAI,
	}})
	if err != nil {
		r.finish(log, m, ReactionWorking, false)
		return err
	}
	res, ok := resp.(handler.SearchMessagesResult)
	if !ok {
		r.finish(log, m, ReactionWorking, false)
		return fmt.Errorf("unexpected response %T", resp)
	}

	if !res.Success {
		if _, err := r.session.ChannelMessageSend(m.ChannelID, "❌ "+res.ErrorMessage); err != nil {
			return err
		}
		if res.Results.IsEmpty() {
			r.finish(log, m, ReactionWorking, false)
			return nil
		}
	}

	if res.Results.IsEmpty() {
		_, err := r.session.ChannelMessageSend(m.ChannelID, r.renderer.NoResults(scope))
		r.finish(log, m, ReactionWorking, true)
		return err
	}

	_, err = r.session.ChannelMessageSendEmbed(m.ChannelID, r.renderer.SearchResults(scope, res))
	r.finish(log, m, ReactionWorking, err == nil && res.Success)
	return err
}

func (r *Router) explain(ctx context.Context, log *slog.Logger, m *discordgo.Message, guildID core.GuildID, cmd *Command) error {
	r.react(log, m, ReactionThinking)

	resp, err := r.dispatcher.Dispatch(ctx, handler.ExplainQuery{GuildID: guildID, Query: cmd.Query})
	if err != nil {
		r.finish(log, m, ReactionThinking, false)
		return err
	}
	res, ok := resp.(handler.ExplainQueryResult)
	if !ok {
		r.finish(log, m, ReactionThinking, false)
		return fmt.Errorf("unexpected response %T", resp)
	}

	switch {
	case !res.Success:
		_, err = r.session.ChannelMessageSend(m.ChannelID, "❌ "+res.ErrorMessage)
	case res.Explanation == "":
		_, err = r.session.ChannelMessageSend(m.ChannelID, "❌ AI could not generate an explanation. Try rephrasing your query.")
	default:
		_, err = r.session.ChannelMessageSendEmbed(m.ChannelID, r.renderer.Explanation(cmd.Query, res.Explanation))
	}
	r.finish(log, m, ReactionThinking, err == nil && res.Success && res.Explanation != "")
	return err
}

// setAPIKey removes the command message so the key does not linger in chat,
// and removes its own reply after keyReplyTTL.
func (r *Router) setAPIKey(ctx context.Context, log *slog.Logger, m *discordgo.Message, guildID core.GuildID, cmd *Command) error {
	r.deleteQuietly(log, m.ChannelID, m.ID)

	resp, err := r.dispatcher.Dispatch(ctx, handler.SetAPIKey{GuildID: guildID, APIKey: cmd.APIKey})
	if err != nil {
		return err
	}
	res, ok := resp.(handler.APIKeyResult)
	if !ok {
		return fmt.Errorf("unexpected response %T", resp)
	}

	reply, err := r.session.ChannelMessageSendEmbed(m.ChannelID, r.renderer.APIKeyResult(res))
	if err != nil {
		return err
	}
	if r.keyReplyTTL > 0 && reply != nil {
		time.AfterFunc(r.keyReplyTTL, func() {
			r.deleteQuietly(log, reply.ChannelID, reply.ID)
		})
	}
	return nil
}

func (r *Router) removeAPIKey(ctx context.Context, m *discordgo.Message, guildID core.GuildID) error {
	resp, err := r.dispatcher.Dispatch(ctx, handler.RemoveAPIKey{GuildID: guildID})
	if err != nil {
		return err
	}
	mark := "✅ "
	if !resp.Succeeded() {
		mark = "❌ "
	}
	res, _ := resp.(handler.APIKeyResult)
	_, err = r.session.ChannelMessageSend(m.ChannelID, mark+res.Message)
	return err
}

func (r *Router) react(log *slog.Logger, m *discordgo.Message, emoji string) {
	if err := r.session.MessageReactionAdd(m.ChannelID, m.ID, emoji); err != nil {
		log.Debug("error adding reaction", "emoji", emoji, "err", err)
	}
}

// finish swaps the progress reaction for the outcome.
func (r *Router) finish(log *slog.Logger, m *discordgo.Message, progress string, ok bool) {
	if err := r.session.MessageReactionRemove(m.ChannelID, m.ID, progress, "@me"); err != nil {
		log.Debug("error removing reaction", "emoji", progress, "err", err)
	}
	if ok {
		r.react(log, m, ReactionDone)
	} else {
		r.react(log, m, ReactionFailed)
	}
}

func (r *Router) deleteQuietly(log *slog.Logger, channelID, messageID string) {
	if err := r.session.ChannelMessageDelete(channelID, messageID); err != nil {
		log.Warn("error deleting message", "messageID", messageID, "err", err)
	}
}
