package handler

import (
	"context"
	"errors"
	"log/slog"

	"github.com/poiesic/sift/core"
	"github.com/poiesic/sift/storage"
)

// ensureGuild loads the guild record, registering it on first use.
func (d *Dispatcher) ensureGuild(ctx context.Context, log *slog.Logger, id core.GuildID) (*core.Guild, error) {
	guild, err := d.guilds.GetGuild(ctx, id)
	if err == nil {
		d.refreshName(ctx, log, guild)
		return guild, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return nil, err
	}

	guild, err = core.NewGuild(id, d.platformName(ctx, log, id))
	if err != nil {
		return nil, err
	}
	if err := d.guilds.AddGuild(ctx, guild); err != nil {
		if errors.Is(err, storage.ErrDuplicateKey) {
			// Registered concurrently by another request.
			return d.guilds.GetGuild(ctx, id)
		}
		return nil, err
	}
	log.Info("registered guild", "name", guild.Name)
	return guild, nil
}

// refreshName replaces a placeholder name once the platform knows better.
func (d *Dispatcher) refreshName(ctx context.Context, log *slog.Logger, guild *core.Guild) {
	if guild.Name != core.UnknownGuildName {
		return
	}
	name := d.platformName(ctx, log, guild.ID)
	if name == "" || name == core.UnknownGuildName {
		return
	}
	guild.Rename(name)
	if err := d.guilds.UpdateGuild(ctx, guild); err != nil {
		log.Warn("error updating guild name", "err", err)
	}
}

// platformName asks the gateway for the guild's name. Empty if unknown.
func (d *Dispatcher) platformName(ctx context.Context, log *slog.Logger, id core.GuildID) string {
	info, err := d.gateway.GetGuild(ctx, id)
	if err != nil {
		log.Warn("error resolving guild name", "err", err)
		return ""
	}
	if info == nil {
		return ""
	}
	return info.Name
}
