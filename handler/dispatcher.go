package handler

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/poiesic/sift/ai"
	"github.com/poiesic/sift/core"
	"github.com/poiesic/sift/gateway"
	"github.com/poiesic/sift/search"
	"github.com/poiesic/sift/storage"
)

// Searcher runs a search query.
type Searcher interface {
	Search(ctx context.Context, q core.SearchQuery) (search.Results, error)
}

// Dispatcher routes requests to their handlers.
type Dispatcher struct {
	guilds      storage.GuildRepository
	searcher    Searcher
	gateway     gateway.Gateway
	assistant   ai.Assistant
	maxContents int
	logger      *slog.Logger
}

// Option configures a Dispatcher.
type Option func(*Dispatcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(d *Dispatcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		d.logger = logger
		return nil
	}
}

// WithMaxContents sets how many top results are sent for AI enhancement.
// Default is 10.
func WithMaxContents(n int) Option {
	return func(d *Dispatcher) error {
		if n < 1 {
			return fmt.Errorf("max contents must be at least 1, got %d", n)
		}
		d.maxContents = n
		return nil
	}
}

// NewDispatcher creates a dispatcher.
func NewDispatcher(
	guilds storage.GuildRepository,
	searcher Searcher,
	gw gateway.Gateway,
	assistant ai.Assistant,
	opts ...Option,
) (*Dispatcher, error) {
	if guilds == nil {
		return nil, ErrGuildRepositoryRequired
	}
	if searcher == nil {
		return nil, ErrSearcherRequired
	}
	if gw == nil {
		return nil, ErrGatewayRequired
	}
	if assistant == nil {
		return nil, ErrAssistantRequired
	}

	d := &Dispatcher{
		guilds:      guilds,
		searcher:    searcher,
		gateway:     gw,
		assistant:   assistant,
		maxContents: ai.DefaultConfig().MaxContents,
		logger:      slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(d); err != nil {
			return nil, err
		}
	}
	d.logger = d.logger.With("component", "dispatcher")

	return d, nil
}

// Dispatch runs the handler for req.
func (d *Dispatcher) Dispatch(ctx context.Context, req Request) (Response, error) {
	switch r := req.(type) {
	case SearchMessages:
		return d.HandleSearch(ctx, r), nil
	case *SearchMessages:
		return d.HandleSearch(ctx, *r), nil
	case ExplainQuery:
		return d.HandleExplain(ctx, r), nil
	case *ExplainQuery:
		return d.HandleExplain(ctx, *r), nil
	case SetAPIKey:
		return d.HandleSetAPIKey(ctx, r), nil
	case *SetAPIKey:
		return d.HandleSetAPIKey(ctx, *r), nil
	case RemoveAPIKey:
		return d.HandleRemoveAPIKey(ctx, r), nil
	case *RemoveAPIKey:
		return d.HandleRemoveAPIKey(ctx, *r), nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnknownRequest, req)
	}
}

// requestLogger tags every log line of one request with a fresh ID.
func (d *Dispatcher) requestLogger(kind string, guildID core.GuildID) *slog.Logger {
	return d.logger.With("request", kind, "requestID", uuid.NewString(), "guildID", guildID)
}
