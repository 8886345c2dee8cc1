// Package money converts between rupiah display strings and amounts stored
// as int64 cents.
package money

import (
	"errors"
	"fmt"
	"strings"

	gomoney "github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

var ErrEmpty = errors.New("empty amount")

// Parse parses a rupiah amount string into cents.
// The input uses "." for grouping and "," for decimals: "1.234,56" -> 123456,
// "500000" -> 50000000. A leading "Rp" marker is tolerated so formatted
// values parse back.
func Parse(s string) (int64, error) {
	clean := strings.TrimSpace(s)
	clean = strings.TrimPrefix(clean, "Rp")
	clean = strings.TrimSpace(clean)

	if clean == "" {
		return 0, ErrEmpty
	}

	clean = strings.ReplaceAll(clean, ".", "")
	clean = strings.ReplaceAll(clean, ",", ".")

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}

	return d.Mul(decimal.NewFromInt(100)).Round(0).IntPart(), nil
}

// Format renders cents as rupiah: grouping dots, comma decimals, "Rp" marker.
func Format(cents int64) string {
	return gomoney.New(cents, gomoney.IDR).Display()
}

// FormatSigned renders cents with an explicit flow sign: "+" for income,
// "-" for expense.
func FormatSigned(cents int64, income bool) string {
	if income {
		return "+" + Format(cents)
	}

	return "-" + Format(cents)
}
