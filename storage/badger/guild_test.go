package badger

import (
	"context"
	"testing"

	"github.com/poiesic/sift/core"
	"github.com/poiesic/sift/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepo(t *testing.T) *GuildRepository {
	t.Helper()
	repo, backend, err := NewMemoryRepository()
	require.NoError(t, err)
	t.Cleanup(func() {
		repo.Close()
		backend.Close()
	})
	return repo
}

func mustGuild(t *testing.T, id core.GuildID, name string) *core.Guild {
	t.Helper()
	g, err := core.NewGuild(id, name)
	require.NoError(t, err)
	return g
}

func TestNewGuildRepository(t *testing.T) {
	_, err := NewGuildRepository(nil)
	assert.ErrorIs(t, err, storage.ErrBackendRequired)
}

func TestGuildRepository_AddGet(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)

	guild := mustGuild(t, 1, "ops")
	key, err := core.NewAPIKey("sk-abcdef")
	require.NoError(t, err)
	guild.SetAPIKey(key)

	require.NoError(t, repo.AddGuild(ctx, guild))

	got, err := repo.GetGuild(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "ops", got.Name)
	assert.Equal(t, "sk-abcdef", got.APIKey.Value())
	assert.True(t, got.IsActive)

	t.Run("duplicate", func(t *testing.T) {
		err := repo.AddGuild(ctx, mustGuild(t, 1, "again"))
		assert.ErrorIs(t, err, storage.ErrDuplicateKey)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := repo.GetGuild(ctx, 2)
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("invalid", func(t *testing.T) {
		err := repo.AddGuild(ctx, &core.Guild{ID: 3})
		assert.ErrorIs(t, err, core.ErrInvalidGuild)
	})
}

func TestGuildRepository_Update(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)

	guild := mustGuild(t, 1, "ops")
	require.NoError(t, repo.AddGuild(ctx, guild))

	guild.ClearAPIKey()
	guild.Rename("operations")
	require.NoError(t, repo.UpdateGuild(ctx, guild))
	assert.False(t, guild.UpdatedAt.IsZero())

	got, err := repo.GetGuild(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "operations", got.Name)
	assert.True(t, got.APIKey.IsZero())
	assert.True(t, guild.UpdatedAt.Equal(got.UpdatedAt))

	t.Run("missing", func(t *testing.T) {
		err := repo.UpdateGuild(ctx, mustGuild(t, 9, "ghost"))
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}

func TestGuildRepository_Delete(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)

	require.NoError(t, repo.AddGuild(ctx, mustGuild(t, 1, "ops")))
	require.NoError(t, repo.DeleteGuild(ctx, 1))

	_, err := repo.GetGuild(ctx, 1)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	active, err := repo.ListActiveGuilds(ctx)
	require.NoError(t, err)
	assert.Empty(t, active)

	assert.ErrorIs(t, repo.DeleteGuild(ctx, 1), storage.ErrNotFound)
}

func TestGuildRepository_ListActiveGuilds(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)

	for _, g := range []*core.Guild{
		mustGuild(t, 30, "c"),
		mustGuild(t, 4, "a"),
		mustGuild(t, 200, "b"),
	} {
		require.NoError(t, repo.AddGuild(ctx, g))
	}

	dormant := mustGuild(t, 5, "dormant")
	dormant.Deactivate()
	require.NoError(t, repo.AddGuild(ctx, dormant))

	active, err := repo.ListActiveGuilds(ctx)
	require.NoError(t, err)
	ids := make([]core.GuildID, 0, len(active))
	for _, g := range active {
		ids = append(ids, g.ID)
	}
	assert.Equal(t, []core.GuildID{4, 30, 200}, ids)

	t.Run("deactivation removes from index", func(t *testing.T) {
		g, err := repo.GetGuild(ctx, 30)
		require.NoError(t, err)
		g.Deactivate()
		require.NoError(t, repo.UpdateGuild(ctx, g))

		active, err := repo.ListActiveGuilds(ctx)
		require.NoError(t, err)
		assert.Len(t, active, 2)
	})

	t.Run("reactivation restores it", func(t *testing.T) {
		dormant.Activate()
		require.NoError(t, repo.UpdateGuild(ctx, dormant))

		active, err := repo.ListActiveGuilds(ctx)
		require.NoError(t, err)
		assert.Len(t, active, 3)
	})
}
