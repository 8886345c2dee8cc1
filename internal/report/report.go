// Package report derives summary totals and renders shareable reports from
// the ledger.
package report

import (
	"context"

	"github.com/nnazuaff/LaporanKeuangan/internal/balance"
	"github.com/nnazuaff/LaporanKeuangan/internal/transaction"
)

// Summary holds the aggregate totals shown above the ledger. Amounts are in
// cents.
type Summary struct {
	Income  int64
	Expense int64
	Balance int64
}

// Summarize computes totals over the FULL transaction list. The active view
// filter never feeds into this: filtering changes what is listed, not what
// is counted.
func Summarize(txs []*transaction.Transaction, sources []*balance.Source) Summary {
	income, expense := transaction.Sums(txs)

	return Summary{
		Income:  income,
		Expense: expense,
		Balance: balance.Total(sources) + income - expense,
	}
}

// Input is everything a report renderer needs. View may be filtered;
// Summary always reflects the unfiltered totals, so the two are internally
// consistent by construction.
type Input struct {
	View    []*transaction.Transaction
	Summary Summary
	Sources []*balance.Source
	Filter  transaction.Filter
}

// Generator renders a report document from ledger data. Implementations own
// the document format (markdown, PDF, ...); they never reach back into the
// stores.
type Generator interface {
	Generate(ctx context.Context, in Input) ([]byte, error)
}
