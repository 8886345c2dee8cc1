package view

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nnazuaff/LaporanKeuangan/internal/balance"
	balanceStore "github.com/nnazuaff/LaporanKeuangan/internal/balance/store"
	"github.com/nnazuaff/LaporanKeuangan/internal/storage"
	"github.com/nnazuaff/LaporanKeuangan/internal/transaction"
	txStore "github.com/nnazuaff/LaporanKeuangan/internal/transaction/store"
)

func newTransactions(t *testing.T) TransactionsModel {
	t.Helper()

	snapshots, err := storage.New(t.TempDir())
	require.NoError(t, err)

	txRepo, err := txStore.New(snapshots)
	require.NoError(t, err)

	balRepo, err := balanceStore.New(snapshots)
	require.NoError(t, err)

	return NewTransactionsModel(transaction.NewService(txRepo), balance.NewService(balRepo))
}

func TestTableHeightClampsOnShortTerminals(t *testing.T) {
	tests := []struct {
		name   string
		height int
		want   int
	}{
		{name: "roomy terminal", height: 40, want: 28},
		{name: "exactly chrome height", height: 12, want: 1},
		{name: "tiny terminal", height: 5, want: 1},
		{name: "zero height", height: 0, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tableHeight(tt.height))
		})
	}
}

func TestTransactionsSurvivesTinyResize(t *testing.T) {
	m := newTransactions(t)

	model, _ := m.Update(tea.WindowSizeMsg{Width: 20, Height: 3})
	resized := model.(TransactionsModel)
	assert.Equal(t, 3, resized.Height)
	assert.NotPanics(t, func() { resized.View() })
}
