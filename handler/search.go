package handler

import (
	"context"

	"github.com/poiesic/sift/core"
)

// HandleSearch runs a search and, when asked, summarizes the top results.
func (d *Dispatcher) HandleSearch(ctx context.Context, req SearchMessages) SearchMessagesResult {
	log := d.requestLogger("search", req.GuildID)

	if err := core.ValidateSearchQuery(req.SearchQuery); err != nil {
		log.Debug("rejecting search", "err", err)
		return SearchMessagesResult{ErrorMessage: MsgQueryRequired}
	}

	guild, err := d.ensureGuild(ctx, log, req.GuildID)
	if err != nil {
		log.Error("error loading guild", "err", err)
		return SearchMessagesResult{ErrorMessage: MsgSearchFailed}
	}

	results, err := d.searcher.Search(ctx, req.SearchQuery)
	if err != nil {
		log.Error("error searching messages", "query", req.Query, "err", err)
		return SearchMessagesResult{ErrorMessage: MsgSearchFailed}
	}
	log.Debug("search complete", "query", req.Query, "total", results.Total)

	out := SearchMessagesResult{Success: true, Results: results}
	if !req.UseAIEnhancement {
		return out
	}
	if !guild.HasValidAPIKey() {
		out.Success = false
		out.ErrorMessage = MsgAIKeyRequired
		return out
	}

	top := results.Top(d.maxContents)
	if len(top) == 0 {
		return out
	}
	contents := make([]string, 0, len(top))
	for _, r := range top {
		contents = append(contents, r.Content())
	}

	summary, err := d.assistant.EnhanceSearchResults(ctx, guild.APIKey, contents, req.Query)
	if err != nil {
		log.Warn("AI enhancement failed", "key", guild.APIKey.Fingerprint(), "err", err)
	}
	out.AISummary = summary
	if summary != "" {
		if err := top[0].SetSummary(summary); err != nil {
			log.Debug("top result already summarized", "err", err)
		}
	}
	return out
}
