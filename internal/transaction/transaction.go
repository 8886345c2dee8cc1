package transaction

import (
	"time"

	"github.com/nnazuaff/LaporanKeuangan/internal/dateutil"
)

// Kind is the polarity of a transaction (income or expense).
type Kind string

const (
	KindIncome  Kind = "income"
	KindExpense Kind = "expense"
)

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	return k == KindIncome || k == KindExpense
}

// Label is the Indonesian display name of the kind.
func (k Kind) Label() string {
	if k == KindIncome {
		return "Pemasukan"
	}

	return "Pengeluaran"
}

// Transaction is a single ledger entry. Records are never edited in place:
// they are created once and removed by ID.
type Transaction struct {
	ID          int64        `json:"id"`
	Date        dateutil.Day `json:"date"`
	Description string       `json:"description"`
	Amount      int64        `json:"amount"` // Amount in cents
	Kind        Kind         `json:"kind"`
	Category    string       `json:"category"`
	CreatedAt   time.Time    `json:"createdAt"`
}
