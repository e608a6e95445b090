package handler

import (
	"github.com/poiesic/sift/core"
	"github.com/poiesic/sift/search"
)

// Request is one of SearchMessages, ExplainQuery, SetAPIKey or RemoveAPIKey.
type Request interface {
	request()
}

// Response is the result of a dispatched Request.
type Response interface {
	Succeeded() bool
}

// SearchMessages asks for a keyword search, optionally summarized by AI.
type SearchMessages struct {
	core.SearchQuery
}

// ExplainQuery asks the model to answer and explain a query.
type ExplainQuery struct {
	GuildID core.GuildID
	Query   string
}

// SetAPIKey stores a guild's API key after checking it with the provider.
type SetAPIKey struct {
	GuildID core.GuildID
	APIKey  string
}

// RemoveAPIKey clears a guild's API key.
type RemoveAPIKey struct {
	GuildID core.GuildID
}

func (SearchMessages) request() {}
func (ExplainQuery) request()   {}
func (SetAPIKey) request()      {}
func (RemoveAPIKey) request()   {}

// SearchMessagesResult carries ranked results and the optional AI summary.
// Results may be present even when Success is false.
type SearchMessagesResult struct {
	Success      bool
	Results      search.Results
	AISummary    string
	ErrorMessage string
}

// ExplainQueryResult carries the model's explanation.
type ExplainQueryResult struct {
	Success      bool
	Explanation  string
	ErrorMessage string
}

// APIKeyResult reports the outcome of setting or removing a key.
type APIKeyResult struct {
	Success bool
	Message string
}

func (r SearchMessagesResult) Succeeded() bool { return r.Success }
func (r ExplainQueryResult) Succeeded() bool   { return r.Success }
func (r APIKeyResult) Succeeded() bool         { return r.Success }
