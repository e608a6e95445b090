package command

import (
	"regexp"
	"strings"

	"github.com/poiesic/sift/core"
)

// DefaultPrefix starts every command.
const DefaultPrefix = "!"

// Kind identifies a command.
type Kind int

const (
	KindSearch Kind = iota
	KindExplain
	KindSetAPIKey
	KindRemoveAPIKey
	KindHelp
	KindAbout
)

var kindNames = map[Kind]string{
	KindSearch:       "search",
	KindExplain:      "explain",
	KindSetAPIKey:    "setapikey",
	KindRemoveAPIKey: "removeapikey",
	KindHelp:         "help",
	KindAbout:        "about",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// IsAdmin reports whether the command needs the Manage Server permission.
func (k Kind) IsAdmin() bool {
	return k == KindSetAPIKey || k == KindRemoveAPIKey
}

// Command is a parsed chat command.
type Command struct {
	Kind      Kind
	Query     string
	UseAI     bool
	ChannelID core.ChannelID
	AuthorID  core.UserID
	APIKey    string
}

var (
	userMention    = regexp.MustCompile(`^<@!?(\d+)>$`)
	channelMention = regexp.MustCompile(`^<#(\d+)>$`)
)

// Parser recognizes prefixed commands.
type Parser struct {
	prefix string
}

// NewParser creates a parser. An empty prefix means DefaultPrefix.
func NewParser(prefix string) *Parser {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Parser{prefix: prefix}
}

// Prefix returns the command prefix.
func (p *Parser) Prefix() string {
	return p.prefix
}

// Parse parses a message. Returns ErrNotCommand when the prefix is missing,
// ErrUnknownCommand for unknown names, and *UsageError for bad arguments.
func (p *Parser) Parse(content string) (*Command, error) {
	content = strings.TrimSpace(content)
	if !strings.HasPrefix(content, p.prefix) {
		return nil, ErrNotCommand
	}
	name, rest := splitWord(strings.TrimPrefix(content, p.prefix))

	switch strings.ToLower(name) {
	case "search":
		return p.parseSearch(rest)
	case "explain":
		if rest == "" {
			return nil, &UsageError{Message: "Please provide a query to explain."}
		}
		return &Command{Kind: KindExplain, Query: rest}, nil
	case "setapikey":
		if rest == "" {
			return nil, &UsageError{Message: "Please provide an OpenAI API key. Usage: `" + p.prefix + "setapikey sk-your-api-key-here`"}
		}
		return &Command{Kind: KindSetAPIKey, APIKey: rest}, nil
	case "removeapikey":
		return &Command{Kind: KindRemoveAPIKey}, nil
	case "help":
		return &Command{Kind: KindHelp}, nil
	case "about":
		return &Command{Kind: KindAbout}, nil
	}
	return nil, ErrUnknownCommand
}

func (p *Parser) parseSearch(args string) (*Command, error) {
	sub, rest := splitWord(args)

	switch strings.ToLower(sub) {
	case "ai":
		if rest == "" {
			return nil, &UsageError{Message: "Please provide a search query."}
		}
		return &Command{Kind: KindSearch, Query: rest, UseAI: true}, nil

	case "user":
		mention, query := splitWord(rest)
		m := userMention.FindStringSubmatch(mention)
		if m == nil {
			return nil, &UsageError{Message: "Usage: `" + p.prefix + "search user @user [query]`"}
		}
		id, err := core.ParseUserID(m[1])
		if err != nil {
			return nil, &UsageError{Message: "Invalid user mention."}
		}
		return &Command{Kind: KindSearch, AuthorID: id, Query: query}, nil

	case "channel":
		mention, query := splitWord(rest)
		m := channelMention.FindStringSubmatch(mention)
		if m == nil {
			return nil, &UsageError{Message: "Usage: `" + p.prefix + "search channel #channel <query>`"}
		}
		id, err := core.ParseChannelID(m[1])
		if err != nil {
			return nil, &UsageError{Message: "Invalid channel mention."}
		}
		if query == "" {
			return nil, &UsageError{Message: "Please provide a search query."}
		}
		return &Command{Kind: KindSearch, ChannelID: id, Query: query}, nil
	}

	if args == "" {
		return nil, &UsageError{Message: "Please provide a search query."}
	}
	return &Command{Kind: KindSearch, Query: args}, nil
}

// splitWord splits off the first whitespace-delimited word.
func splitWord(s string) (string, string) {
	s = strings.TrimSpace(s)
	i := strings.IndexFunc(s, isSpace)
	if i < 0 {
		return s, ""
	}
	return s[:i], strings.TrimSpace(s[i:])
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}
