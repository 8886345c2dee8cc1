package report_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nnazuaff/LaporanKeuangan/internal/balance"
	"github.com/nnazuaff/LaporanKeuangan/internal/dateutil"
	"github.com/nnazuaff/LaporanKeuangan/internal/report"
	"github.com/nnazuaff/LaporanKeuangan/internal/transaction"
)

// Income 500000, expense 150000, manual balance 1000000: the final balance
// must come out at 1350000.
func TestSummarize(t *testing.T) {
	txs := []*transaction.Transaction{
		{ID: 1, Date: dateutil.MustParseDay("2024-01-10"), Description: "Salary", Amount: 50000000, Kind: transaction.KindIncome},
		{ID: 2, Date: dateutil.MustParseDay("2024-01-10"), Description: "Groceries", Amount: 15000000, Kind: transaction.KindExpense},
	}
	sources := []*balance.Source{
		{ID: 3, Name: "Cash", Amount: 100000000},
	}

	got := report.Summarize(txs, sources)

	assert.Equal(t, int64(50000000), got.Income)
	assert.Equal(t, int64(15000000), got.Expense)
	assert.Equal(t, int64(135000000), got.Balance)
}

// Summary totals always cover the full list, whatever the active filter
// shows.
func TestSummarize_IgnoresFilter(t *testing.T) {
	txs := []*transaction.Transaction{
		{ID: 1, Date: dateutil.MustParseDay("2023-12-20"), Amount: 100, Kind: transaction.KindExpense},
		{ID: 2, Date: dateutil.MustParseDay("2024-01-05"), Amount: 200, Kind: transaction.KindIncome},
	}

	view := transaction.FilterView(txs, transaction.Filter{Period: transaction.PeriodThisMonth}, dateutil.MustParseDay("2024-01-15"))
	require.Len(t, view, 1)

	got := report.Summarize(txs, nil)
	assert.Equal(t, int64(200), got.Income)
	assert.Equal(t, int64(100), got.Expense)
	assert.Equal(t, int64(100), got.Balance)
}

func TestSummarize_Empty(t *testing.T) {
	got := report.Summarize(nil, nil)
	assert.Zero(t, got.Income)
	assert.Zero(t, got.Expense)
	assert.Zero(t, got.Balance)
}

func TestMarkdown_Generate(t *testing.T) {
	txs := []*transaction.Transaction{
		{ID: 1, Date: dateutil.MustParseDay("2024-01-10"), Description: "Gaji", Category: "Gaji", Amount: 50000000, Kind: transaction.KindIncome},
		{ID: 2, Date: dateutil.MustParseDay("2024-01-10"), Description: "Belanja", Category: "Belanja", Amount: 15000000, Kind: transaction.KindExpense},
	}
	sources := []*balance.Source{{ID: 3, Name: "Kas", Amount: 100000000}}

	in := report.Input{
		View:    txs,
		Summary: report.Summarize(txs, sources),
		Sources: sources,
	}

	out, err := report.Markdown{}.Generate(context.Background(), in)
	require.NoError(t, err)

	doc := string(out)
	assert.Contains(t, doc, "# Laporan Keuangan")
	assert.Contains(t, doc, "Periode: Semua")
	assert.Contains(t, doc, "| Total Pemasukan | Rp500.000,00 |")
	assert.Contains(t, doc, "| Saldo Akhir | Rp1.350.000,00 |")
	assert.Contains(t, doc, "* Kas: Rp1.000.000,00")
	assert.Contains(t, doc, "* Gaji | Gaji | +Rp500.000,00")
	assert.Contains(t, doc, "* Belanja | Belanja | -Rp150.000,00")
}

func TestMarkdown_GenerateEmptyView(t *testing.T) {
	out, err := report.Markdown{}.Generate(context.Background(), report.Input{})
	require.NoError(t, err)
	assert.Contains(t, string(out), "Tidak ada transaksi.")
}
