package view

import (
	"context"
	"time"

	"github.com/nnazuaff/LaporanKeuangan/internal/dateutil"
	"github.com/nnazuaff/LaporanKeuangan/internal/money"
)

const storeTimeout = 5 * time.Second

// FormatAmount formats an amount stored as cents into a rupiah string.
func FormatAmount(cents int64) string {
	return money.Format(cents)
}

// FormatDay formats a day into its short Indonesian form.
func FormatDay(d dateutil.Day) string {
	return dateutil.FormatShort(d)
}

// StoreCtx returns a context with a standard timeout for store operations.
func StoreCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), storeTimeout)
}
