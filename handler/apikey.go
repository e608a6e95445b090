package handler

import (
	"context"
	"errors"

	"github.com/poiesic/sift/core"
	"github.com/poiesic/sift/storage"
)

// HandleSetAPIKey checks the key's format, has the provider accept it and
// stores it on the guild.
func (d *Dispatcher) HandleSetAPIKey(ctx context.Context, req SetAPIKey) APIKeyResult {
	log := d.requestLogger("setapikey", req.GuildID)

	key, err := core.NewAPIKey(req.APIKey)
	if err != nil {
		log.Warn("invalid API key format", "err", err)
		return APIKeyResult{Message: MsgInvalidKeyFormat}
	}
	log = log.With("key", key.Fingerprint())

	if !d.assistant.ValidateAPIKey(ctx, key) {
		log.Info("API key rejected by provider")
		return APIKeyResult{Message: MsgKeyRejected}
	}

	guild, err := d.ensureGuild(ctx, log, req.GuildID)
	if err != nil {
		log.Error("error loading guild", "err", err)
		return APIKeyResult{Message: MsgKeySetFailed}
	}

	guild.SetAPIKey(key)
	if err := d.guilds.UpdateGuild(ctx, guild); err != nil {
		log.Error("error storing API key", "err", err)
		return APIKeyResult{Message: MsgKeySetFailed}
	}

	log.Info("API key set")
	return APIKeyResult{Success: true, Message: MsgKeySet}
}

// HandleRemoveAPIKey clears the guild's key. A guild that was never
// registered has nothing to remove.
func (d *Dispatcher) HandleRemoveAPIKey(ctx context.Context, req RemoveAPIKey) APIKeyResult {
	log := d.requestLogger("removeapikey", req.GuildID)

	guild, err := d.guilds.GetGuild(ctx, req.GuildID)
	if errors.Is(err, storage.ErrNotFound) {
		return APIKeyResult{Success: true, Message: MsgKeyRemoved}
	}
	if err != nil {
		log.Error("error loading guild", "err", err)
		return APIKeyResult{Message: MsgKeyRemoveFailed}
	}

	if !guild.HasValidAPIKey() {
		return APIKeyResult{Success: true, Message: MsgKeyRemoved}
	}

	guild.ClearAPIKey()
	if err := d.guilds.UpdateGuild(ctx, guild); err != nil {
		log.Error("error removing API key", "err", err)
		return APIKeyResult{Message: MsgKeyRemoveFailed}
	}

	log.Info("API key removed")
	return APIKeyResult{Success: true, Message: MsgKeyRemoved}
}
