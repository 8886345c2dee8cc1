package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nnazuaff/LaporanKeuangan/internal/auth/store"
	"github.com/nnazuaff/LaporanKeuangan/internal/storage"
)

func TestStore_PINLifecycle(t *testing.T) {
	snapshots, err := storage.New(t.TempDir())
	require.NoError(t, err)

	s := store.New(snapshots)
	ctx := context.Background()

	// Absence signals first run.
	pin, err := s.LoadPIN(ctx)
	require.NoError(t, err)
	assert.Empty(t, pin)

	require.NoError(t, s.SavePIN(ctx, "1234"))

	pin, err = s.LoadPIN(ctx)
	require.NoError(t, err)
	assert.Equal(t, "1234", pin)

	require.NoError(t, s.DeletePIN(ctx))

	pin, err = s.LoadPIN(ctx)
	require.NoError(t, err)
	assert.Empty(t, pin)
}
