package badger

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/sift/core"
	"github.com/poiesic/sift/storage"
)

// GuildRepository implements storage.GuildRepository for BadgerDB.
type GuildRepository struct {
	backend *Backend
}

var _ storage.GuildRepository = (*GuildRepository)(nil)

// NewGuildRepository creates a new GuildRepository.
func NewGuildRepository(backend *Backend) (*GuildRepository, error) {
	if backend == nil {
		return nil, storage.ErrBackendRequired
	}
	return &GuildRepository{backend: backend}, nil
}

// Close is a no-op; the backend is closed by its owner.
func (r *GuildRepository) Close() error {
	return nil
}

// GetGuild retrieves a guild by ID.
func (r *GuildRepository) GetGuild(ctx context.Context, id core.GuildID) (*core.Guild, error) {
	var guild *core.Guild
	err := r.backend.View(ctx, func(tx *badger.Txn) error {
		var err error
		guild, err = readGuild(tx, id)
		if err != nil {
			return err
		}
		if guild == nil {
			return storage.ErrNotFound
		}
		return nil
	})
	return guild, err
}

// AddGuild stores a new guild.
func (r *GuildRepository) AddGuild(ctx context.Context, guild *core.Guild) error {
	if err := core.ValidateGuild(guild); err != nil {
		return err
	}
	return r.backend.Update(ctx, func(tx *badger.Txn) error {
		existing, err := readGuild(tx, guild.ID)
		if err != nil {
			return err
		}
		if existing != nil {
			return fmt.Errorf("%w: guild %s", storage.ErrDuplicateKey, guild.ID)
		}
		return writeGuild(tx, guild)
	})
}

// UpdateGuild replaces an existing guild.
func (r *GuildRepository) UpdateGuild(ctx context.Context, guild *core.Guild) error {
	if err := core.ValidateGuild(guild); err != nil {
		return err
	}
	return r.backend.Update(ctx, func(tx *badger.Txn) error {
		existing, err := readGuild(tx, guild.ID)
		if err != nil {
			return err
		}
		if existing == nil {
			return storage.ErrNotFound
		}
		guild.UpdatedAt = time.Now().UTC()
		return writeGuild(tx, guild)
	})
}

// DeleteGuild removes a guild and its index entry.
func (r *GuildRepository) DeleteGuild(ctx context.Context, id core.GuildID) error {
	return r.backend.Update(ctx, func(tx *badger.Txn) error {
		existing, err := readGuild(tx, id)
		if err != nil {
			return err
		}
		if existing == nil {
			return storage.ErrNotFound
		}
		if err := tx.Delete(makeActiveGuildKey(id)); err != nil {
			return err
		}
		return tx.Delete(makeGuildKey(id))
	})
}

// ListActiveGuilds returns every active guild ordered by ID.
func (r *GuildRepository) ListActiveGuilds(ctx context.Context) ([]*core.Guild, error) {
	var guilds []*core.Guild
	err := r.backend.View(ctx, func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = activeGuildScanPrefix()
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			id, ok := parseActiveGuildKey(iter.Item().Key())
			if !ok {
				r.backend.logger.Warn("skipping malformed index key", "key", string(iter.Item().Key()))
				continue
			}
			guild, err := readGuild(tx, id)
			if err != nil {
				return err
			}
			// Index entries without a record are stale; skip them.
			if guild == nil || !guild.IsActive {
				continue
			}
			guilds = append(guilds, guild)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.SortFunc(guilds, func(a, b *core.Guild) int {
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		}
		return 0
	})
	return guilds, nil
}

// readGuild loads a guild inside a transaction.
// Returns nil, nil if the guild doesn't exist.
func readGuild(tx *badger.Txn, id core.GuildID) (*core.Guild, error) {
	item, err := tx.Get(makeGuildKey(id))
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var guild *core.Guild
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		guild, unmarshalErr = storage.UnmarshalGuild(val)
		return unmarshalErr
	})
	return guild, err
}

// writeGuild stores the record and keeps the active index in step.
func writeGuild(tx *badger.Txn, guild *core.Guild) error {
	value, err := storage.MarshalGuild(guild)
	if err != nil {
		return err
	}
	if err := tx.Set(makeGuildKey(guild.ID), value); err != nil {
		return err
	}
	if guild.IsActive {
		return tx.Set(makeActiveGuildKey(guild.ID), []byte{})
	}
	return tx.Delete(makeActiveGuildKey(guild.ID))
}
