// Package balance manages manual balance sources: user-declared balances
// for named accounts (cash, bank, e-wallet), tracked independently of the
// transaction flow.
package balance

import "time"

// Source is one named manual balance. Names are unique case-insensitively;
// re-adding a name updates the existing record instead of duplicating it.
type Source struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Amount    int64     `json:"amount"` // Amount in cents, never negative
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Total sums all source amounts. Zero for an empty list.
func Total(sources []*Source) int64 {
	var total int64
	for _, src := range sources {
		total += src.Amount
	}

	return total
}
