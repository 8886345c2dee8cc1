package backup_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nnazuaff/LaporanKeuangan/internal/backup"
	"github.com/nnazuaff/LaporanKeuangan/internal/dateutil"
	"github.com/nnazuaff/LaporanKeuangan/internal/storage"
	"github.com/nnazuaff/LaporanKeuangan/internal/transaction"
	"github.com/nnazuaff/LaporanKeuangan/internal/transaction/store"
)

func newService(t *testing.T) (*backup.Service, *store.Store) {
	t.Helper()

	snapshots, err := storage.New(t.TempDir())
	require.NoError(t, err)

	repo, err := store.New(snapshots)
	require.NoError(t, err)

	return backup.NewService(repo), repo
}

func TestFileName(t *testing.T) {
	day := dateutil.MustParseDay("2024-01-15")
	assert.Equal(t, "laporan-keuangan-2024-01-15.json", backup.FileName(day))
}

func TestExportEmptyLedger(t *testing.T) {
	svc, _ := newService(t)

	var buf bytes.Buffer
	require.NoError(t, svc.Export(context.Background(), &buf))

	assert.Equal(t, "[]", buf.String())
}

func TestImportThenExportRoundTrip(t *testing.T) {
	svc, repo := newService(t)
	ctx := context.Background()

	input := `[
	  {"id":1,"date":"2024-01-15","description":"Gaji bulanan","amount":50000000,"kind":"income","category":"Gaji"},
	  {"id":2,"date":"2024-01-16","description":"Belanja mingguan","amount":7500000,"kind":"expense","category":"Belanja"},
	  {"id":3,"date":"2024-01-17","description":"Tagihan listrik","amount":3500000,"kind":"expense","category":"Tagihan"}
	]`

	n, err := svc.Import(ctx, bytes.NewBufferString(input))
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	txs, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, txs, 3)
	assert.Equal(t, "Gaji bulanan", txs[0].Description)
	assert.Equal(t, int64(50000000), txs[0].Amount)
	assert.Equal(t, transaction.KindIncome, txs[0].Kind)

	var buf bytes.Buffer
	require.NoError(t, svc.Export(ctx, &buf))

	var exported []*transaction.Transaction
	require.NoError(t, json.Unmarshal(buf.Bytes(), &exported))
	require.Len(t, exported, 3)
	assert.Equal(t, txs[0].ID, exported[0].ID)
	assert.Equal(t, "Tagihan listrik", exported[2].Description)
}

func TestImportReplacesExistingLedger(t *testing.T) {
	svc, repo := newService(t)
	ctx := context.Background()

	require.NoError(t, repo.Append(ctx, &transaction.Transaction{
		Date:        dateutil.MustParseDay("2024-01-10"),
		Description: "Lama",
		Amount:      100,
		Kind:        transaction.KindExpense,
		Category:    "Lainnya",
	}))

	n, err := svc.Import(ctx, bytes.NewBufferString(`[{"id":9,"date":"2024-02-01","description":"Baru","amount":200,"kind":"income","category":"Gaji"}]`))
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	txs, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, "Baru", txs[0].Description)
}

func TestImportRejectsNonArray(t *testing.T) {
	svc, repo := newService(t)
	ctx := context.Background()

	require.NoError(t, repo.Append(ctx, &transaction.Transaction{
		Date:        dateutil.MustParseDay("2024-01-10"),
		Description: "Tetap ada",
		Amount:      100,
		Kind:        transaction.KindExpense,
		Category:    "Lainnya",
	}))

	tests := []struct {
		name  string
		input string
	}{
		{name: "object", input: `{"transactions":[]}`},
		{name: "scalar", input: `42`},
		{name: "empty", input: ``},
		{name: "whitespace only", input: "  \n\t"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Import(ctx, bytes.NewBufferString(tt.input))
			require.ErrorIs(t, err, backup.ErrNotArray)
		})
	}

	txs, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, txs, 1, "failed imports must not touch the ledger")
}

func TestImportRejectsMalformedJSON(t *testing.T) {
	svc, repo := newService(t)
	ctx := context.Background()

	_, err := svc.Import(ctx, bytes.NewBufferString(`[{"id":1,`))
	require.Error(t, err)
	assert.NotErrorIs(t, err, backup.ErrNotArray)

	txs, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, txs)
}

func TestImportEmptyArrayClearsLedger(t *testing.T) {
	svc, repo := newService(t)
	ctx := context.Background()

	require.NoError(t, repo.Append(ctx, &transaction.Transaction{
		Date:        dateutil.MustParseDay("2024-01-10"),
		Description: "Hapus saya",
		Amount:      100,
		Kind:        transaction.KindExpense,
		Category:    "Lainnya",
	}))

	n, err := svc.Import(ctx, bytes.NewBufferString(`[]`))
	require.NoError(t, err)
	assert.Zero(t, n)

	txs, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, txs)
}

func TestImportWithUTF8BOM(t *testing.T) {
	svc, _ := newService(t)

	input := append([]byte{0xEF, 0xBB, 0xBF}, `[{"id":1,"date":"2024-01-15","description":"Kafe","amount":2500000,"kind":"expense","category":"Makan"}]`...)

	n, err := svc.Import(context.Background(), bytes.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestExportToFile(t *testing.T) {
	svc, repo := newService(t)
	ctx := context.Background()

	require.NoError(t, repo.Append(ctx, &transaction.Transaction{
		Date:        dateutil.MustParseDay("2024-01-15"),
		Description: "Gaji bulanan",
		Amount:      50000000,
		Kind:        transaction.KindIncome,
		Category:    "Gaji",
	}))

	dir := filepath.Join(t.TempDir(), "exports")
	today := dateutil.MustParseDay("2024-01-20")

	path, err := svc.ExportToFile(ctx, dir, today)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "laporan-keuangan-2024-01-20.json"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Gaji bulanan")
}
