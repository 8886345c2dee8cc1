package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nnazuaff/LaporanKeuangan/internal/balance"
	"github.com/nnazuaff/LaporanKeuangan/internal/balance/store"
	"github.com/nnazuaff/LaporanKeuangan/internal/storage"
)

func newStore(t *testing.T) (*store.Store, *storage.Store) {
	t.Helper()

	snapshots, err := storage.New(t.TempDir())
	require.NoError(t, err)

	s, err := store.New(snapshots)
	require.NoError(t, err)

	return s, snapshots
}

func TestStore_CreateAndFindByName(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	src := &balance.Source{Name: "Kas", Amount: 100000000}
	require.NoError(t, s.Create(ctx, src))
	assert.NotZero(t, src.ID)
	assert.False(t, src.CreatedAt.IsZero())
	assert.Equal(t, src.CreatedAt, src.UpdatedAt)

	// Lookup is case-insensitive.
	found, err := s.FindByName(ctx, "kAs")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, src.ID, found.ID)

	missing, err := s.FindByName(ctx, "Bank")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestStore_UpdateAmountRefreshesTimestamp(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	src := &balance.Source{Name: "Kas", Amount: 100}
	require.NoError(t, s.Create(ctx, src))

	updated, err := s.UpdateAmount(ctx, src.ID, 500)
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, int64(500), updated.Amount)
	assert.False(t, updated.UpdatedAt.Before(updated.CreatedAt))

	// Exactly one record for the name, with the new amount.
	sources, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, sources, 1)
	assert.Equal(t, int64(500), sources[0].Amount)
}

func TestStore_RemoveByID(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	src := &balance.Source{Name: "Kas", Amount: 100}
	require.NoError(t, s.Create(ctx, src))
	require.NoError(t, s.RemoveByID(ctx, src.ID))

	sources, err := s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, sources)

	assert.NoError(t, s.RemoveByID(ctx, 999))
}

func TestStore_RoundTripThroughSnapshot(t *testing.T) {
	s, snapshots := newStore(t)
	ctx := context.Background()

	require.NoError(t, s.Create(ctx, &balance.Source{Name: "Kas", Amount: 100000000}))
	require.NoError(t, s.Create(ctx, &balance.Source{Name: "Bank", Amount: 250000000}))

	reloaded, err := store.New(snapshots)
	require.NoError(t, err)

	sources, err := reloaded.List(ctx)
	require.NoError(t, err)
	require.Len(t, sources, 2)
	assert.Equal(t, "Kas", sources[0].Name)
	assert.Equal(t, int64(350000000), balance.Total(sources))
}

func TestStore_Wipe(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	require.NoError(t, s.Create(ctx, &balance.Source{Name: "Kas", Amount: 100}))
	require.NoError(t, s.Wipe(ctx))

	sources, err := s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, sources)
}
