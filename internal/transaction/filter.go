package transaction

import (
	"slices"

	"github.com/nnazuaff/LaporanKeuangan/internal/dateutil"
)

// Period restricts transactions to a date window relative to today.
type Period int

const (
	PeriodAll Period = iota
	PeriodToday
	PeriodThisWeek
	PeriodThisMonth
	PeriodCustom
)

func (p Period) String() string {
	switch p {
	case PeriodAll:
		return "Semua"
	case PeriodToday:
		return "Hari Ini"
	case PeriodThisWeek:
		return "Minggu Ini"
	case PeriodThisMonth:
		return "Bulan Ini"
	case PeriodCustom:
		return "Rentang Tanggal"
	}

	return "Unknown"
}

// Filter selects a view of the transaction list. A nil Kind passes every
// kind. Start/End apply only to PeriodCustom and are inclusive on both ends;
// when either bound is nil the period filter is skipped entirely.
type Filter struct {
	Kind   *Kind
	Period Period
	Start  *dateutil.Day
	End    *dateutil.Day
}

// FilterView applies the filter and returns the visible list sorted by date
// descending. The sort is stable: same-date records keep their input order.
// Filtering never affects summary totals, which are always computed over the
// full list.
func FilterView(txs []*Transaction, f Filter, today dateutil.Day) []*Transaction {
	view := make([]*Transaction, 0, len(txs))

	for _, tx := range txs {
		if f.Kind != nil && tx.Kind != *f.Kind {
			continue
		}

		if !matchesPeriod(tx.Date, f, today) {
			continue
		}

		view = append(view, tx)
	}

	slices.SortStableFunc(view, func(a, b *Transaction) int {
		return b.Date.Compare(a.Date)
	})

	return view
}

func matchesPeriod(d dateutil.Day, f Filter, today dateutil.Day) bool {
	switch f.Period {
	case PeriodToday:
		return d.Equal(today)
	case PeriodThisWeek:
		// No upper bound: future-dated records stay visible under this
		// filter.
		return !d.Before(today.StartOfWeek())
	case PeriodThisMonth:
		return d.SameMonth(today)
	case PeriodCustom:
		if f.Start == nil || f.End == nil {
			return true
		}

		return !d.Before(*f.Start) && !d.After(*f.End)
	default:
		return true
	}
}

// Sums totals income and expense amounts over the given list.
func Sums(txs []*Transaction) (income, expense int64) {
	for _, tx := range txs {
		switch tx.Kind {
		case KindIncome:
			income += tx.Amount
		case KindExpense:
			expense += tx.Amount
		}
	}

	return income, expense
}

// DayGroup is one calendar day of the visible list.
type DayGroup struct {
	Day          dateutil.Day
	Transactions []*Transaction
}

// GroupByDay splits an already-filtered view into per-day groups. The
// date-descending order established by FilterView is preserved, as is the
// within-day order; nothing is re-sorted here.
func GroupByDay(view []*Transaction) []DayGroup {
	var groups []DayGroup

	for _, tx := range view {
		if n := len(groups); n > 0 && groups[n-1].Day.Equal(tx.Date) {
			groups[n-1].Transactions = append(groups[n-1].Transactions, tx)
			continue
		}

		groups = append(groups, DayGroup{Day: tx.Date, Transactions: []*Transaction{tx}})
	}

	return groups
}
