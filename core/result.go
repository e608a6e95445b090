package core

import (
	"fmt"
	"time"
)

// SearchResult is a single scored message returned from a search.
// All fields are fixed at construction except the summary, which may be
// attached exactly once.
type SearchResult struct {
	messageID   MessageID
	channelID   ChannelID
	authorID    UserID
	authorName  string
	channelName string
	messageURL  string
	timestamp   time.Time
	content     string
	score       float64
	summary     string
	summarySet  bool
}

// NewSearchResult builds a result for a message found in a channel.
func NewSearchResult(msg *Message, channel *Channel, score float64) (*SearchResult, error) {
	if msg == nil || channel == nil {
		return nil, fmt.Errorf("%w: message and channel are required", ErrInvalidSearchResult)
	}
	if msg.ID == 0 || channel.ID == 0 || channel.GuildID == 0 {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSearchResult, ErrInvalidID)
	}
	if score < 0 {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSearchResult, ErrNegativeScore)
	}
	return &SearchResult{
		messageID:   msg.ID,
		channelID:   channel.ID,
		authorID:    msg.AuthorID,
		authorName:  msg.AuthorName,
		channelName: channel.Name,
		messageURL:  MessageURL(channel.GuildID, channel.ID, msg.ID),
		timestamp:   msg.Timestamp,
		content:     msg.Content,
		score:       score,
	}, nil
}

func (r *SearchResult) MessageID() MessageID    { return r.messageID }
func (r *SearchResult) ChannelID() ChannelID    { return r.channelID }
func (r *SearchResult) AuthorID() UserID        { return r.authorID }
func (r *SearchResult) AuthorName() string      { return r.authorName }
func (r *SearchResult) ChannelName() string     { return r.channelName }
func (r *SearchResult) MessageURL() string      { return r.messageURL }
func (r *SearchResult) Timestamp() time.Time    { return r.timestamp }
func (r *SearchResult) Content() string         { return r.content }
func (r *SearchResult) RelevanceScore() float64 { return r.score }

// Summary returns the attached summary and whether one was set.
func (r *SearchResult) Summary() (string, bool) {
	return r.summary, r.summarySet
}

// SetSummary attaches an AI summary to the result.
// Returns ErrSummaryAlreadySet on a second call.
func (r *SearchResult) SetSummary(summary string) error {
	if r.summarySet {
		return ErrSummaryAlreadySet
	}
	r.summary = summary
	r.summarySet = true
	return nil
}
