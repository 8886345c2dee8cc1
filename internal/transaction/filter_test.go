package transaction_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nnazuaff/LaporanKeuangan/internal/dateutil"
	"github.com/nnazuaff/LaporanKeuangan/internal/transaction"
)

func tx(id int64, day string, kind transaction.Kind, amount int64) *transaction.Transaction {
	return &transaction.Transaction{
		ID:     id,
		Date:   dateutil.MustParseDay(day),
		Kind:   kind,
		Amount: amount,
	}
}

func ids(txs []*transaction.Transaction) []int64 {
	out := make([]int64, len(txs))
	for i, t := range txs {
		out[i] = t.ID
	}

	return out
}

func TestFilterView_KindFilter(t *testing.T) {
	today := dateutil.MustParseDay("2024-01-15")
	list := []*transaction.Transaction{
		tx(1, "2024-01-10", transaction.KindIncome, 100),
		tx(2, "2024-01-10", transaction.KindExpense, 200),
		tx(3, "2024-01-12", transaction.KindIncome, 300),
	}

	income := transaction.KindIncome
	view := transaction.FilterView(list, transaction.Filter{Kind: &income}, today)
	assert.Equal(t, []int64{3, 1}, ids(view))

	view = transaction.FilterView(list, transaction.Filter{}, today)
	assert.Equal(t, []int64{3, 1, 2}, ids(view))
}

func TestFilterView_Today(t *testing.T) {
	today := dateutil.MustParseDay("2024-01-15")
	list := []*transaction.Transaction{
		tx(1, "2024-01-14", transaction.KindExpense, 100),
		tx(2, "2024-01-15", transaction.KindExpense, 200),
		// Future-dated: "today" means exact calendar-day equality.
		tx(3, "2024-01-16", transaction.KindExpense, 300),
	}

	view := transaction.FilterView(list, transaction.Filter{Period: transaction.PeriodToday}, today)
	assert.Equal(t, []int64{2}, ids(view))
}

func TestFilterView_ThisWeek(t *testing.T) {
	// 2024-01-17 is a Wednesday; the week started Sunday 2024-01-14.
	today := dateutil.MustParseDay("2024-01-17")
	list := []*transaction.Transaction{
		tx(1, "2024-01-13", transaction.KindExpense, 100), // Saturday before
		tx(2, "2024-01-14", transaction.KindExpense, 200), // week start
		tx(3, "2024-01-17", transaction.KindExpense, 300),
		tx(4, "2024-01-25", transaction.KindExpense, 400), // future, still matches
	}

	view := transaction.FilterView(list, transaction.Filter{Period: transaction.PeriodThisWeek}, today)
	assert.Equal(t, []int64{4, 3, 2}, ids(view))
}

func TestFilterView_ThisMonth(t *testing.T) {
	today := dateutil.MustParseDay("2024-01-15")
	list := []*transaction.Transaction{
		tx(1, "2023-12-20", transaction.KindExpense, 100),
		tx(2, "2024-01-05", transaction.KindIncome, 200),
	}

	view := transaction.FilterView(list, transaction.Filter{Period: transaction.PeriodThisMonth}, today)
	assert.Equal(t, []int64{2}, ids(view))
}

func TestFilterView_CustomRange(t *testing.T) {
	today := dateutil.MustParseDay("2024-02-01")
	list := []*transaction.Transaction{
		tx(1, "2024-01-09", transaction.KindExpense, 100),
		tx(2, "2024-01-10", transaction.KindExpense, 200),
		tx(3, "2024-01-15", transaction.KindExpense, 300),
		tx(4, "2024-01-20", transaction.KindExpense, 400),
		tx(5, "2024-01-21", transaction.KindExpense, 500),
	}

	start := dateutil.MustParseDay("2024-01-10")
	end := dateutil.MustParseDay("2024-01-20")

	// Both bounds are inclusive.
	view := transaction.FilterView(list, transaction.Filter{
		Period: transaction.PeriodCustom,
		Start:  &start,
		End:    &end,
	}, today)
	assert.Equal(t, []int64{4, 3, 2}, ids(view))

	// A missing bound disables the period filter entirely.
	view = transaction.FilterView(list, transaction.Filter{
		Period: transaction.PeriodCustom,
		Start:  &start,
	}, today)
	assert.Len(t, view, 5)
}

func TestFilterView_SortedDescendingStable(t *testing.T) {
	today := dateutil.MustParseDay("2024-01-15")
	list := []*transaction.Transaction{
		tx(1, "2024-01-10", transaction.KindExpense, 100),
		tx(2, "2024-01-12", transaction.KindExpense, 200),
		tx(3, "2024-01-10", transaction.KindExpense, 300),
		tx(4, "2024-01-12", transaction.KindExpense, 400),
	}

	view := transaction.FilterView(list, transaction.Filter{}, today)

	// Date descending, same-date records keep insertion order.
	assert.Equal(t, []int64{2, 4, 1, 3}, ids(view))

	for i := 1; i < len(view); i++ {
		assert.LessOrEqual(t, view[i].Date.Compare(view[i-1].Date), 0)
	}
}

// The filtered view is always a subsequence of the input: no records are
// invented and the input is left untouched.
func TestFilterView_Subsequence(t *testing.T) {
	today := dateutil.MustParseDay("2024-01-15")
	list := []*transaction.Transaction{
		tx(1, "2024-01-10", transaction.KindIncome, 100),
		tx(2, "2024-01-11", transaction.KindExpense, 200),
		tx(3, "2024-01-12", transaction.KindIncome, 300),
	}

	expense := transaction.KindExpense
	view := transaction.FilterView(list, transaction.Filter{Kind: &expense, Period: transaction.PeriodThisMonth}, today)

	seen := map[int64]bool{1: true, 2: true, 3: true}
	for _, v := range view {
		assert.True(t, seen[v.ID])
	}

	assert.Equal(t, []int64{1, 2, 3}, ids(list))
}

func TestSums(t *testing.T) {
	list := []*transaction.Transaction{
		tx(1, "2024-01-10", transaction.KindIncome, 50000000),
		tx(2, "2024-01-10", transaction.KindExpense, 15000000),
		tx(3, "2024-01-11", transaction.KindIncome, 1000),
	}

	income, expense := transaction.Sums(list)
	assert.Equal(t, int64(50001000), income)
	assert.Equal(t, int64(15000000), expense)

	income, expense = transaction.Sums(nil)
	assert.Zero(t, income)
	assert.Zero(t, expense)
}

func TestGroupByDay(t *testing.T) {
	today := dateutil.MustParseDay("2024-01-15")
	list := []*transaction.Transaction{
		tx(1, "2024-01-10", transaction.KindExpense, 100),
		tx(2, "2024-01-12", transaction.KindExpense, 200),
		tx(3, "2024-01-10", transaction.KindExpense, 300),
	}

	view := transaction.FilterView(list, transaction.Filter{}, today)
	groups := transaction.GroupByDay(view)

	require.Len(t, groups, 2)
	assert.Equal(t, dateutil.MustParseDay("2024-01-12"), groups[0].Day)
	assert.Equal(t, []int64{2}, ids(groups[0].Transactions))
	assert.Equal(t, dateutil.MustParseDay("2024-01-10"), groups[1].Day)
	assert.Equal(t, []int64{1, 3}, ids(groups[1].Transactions))
}

func TestGroupByDay_Empty(t *testing.T) {
	assert.Empty(t, transaction.GroupByDay(nil))
}
