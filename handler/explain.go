package handler

import (
	"context"
	"strings"
)

// HandleExplain asks the model to explain the query with the guild's key.
func (d *Dispatcher) HandleExplain(ctx context.Context, req ExplainQuery) ExplainQueryResult {
	log := d.requestLogger("explain", req.GuildID)

	if strings.TrimSpace(req.Query) == "" {
		return ExplainQueryResult{ErrorMessage: MsgExplainRequired}
	}

	guild, err := d.ensureGuild(ctx, log, req.GuildID)
	if err != nil {
		log.Error("error loading guild", "err", err)
		return ExplainQueryResult{ErrorMessage: MsgSearchFailed}
	}
	if !guild.HasValidAPIKey() {
		return ExplainQueryResult{ErrorMessage: MsgAIKeyRequired}
	}

	text, err := d.assistant.ExplainQuery(ctx, guild.APIKey, req.Query)
	if err != nil {
		log.Warn("explanation failed", "key", guild.APIKey.Fingerprint(), "err", err)
	}
	return ExplainQueryResult{Success: true, Explanation: text}
}
