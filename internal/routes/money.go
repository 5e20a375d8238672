package routes

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/corebank/corebank/internal/account"
)

// maxMinorUnits guards the decimal-to-int64 conversion; IntPart silently
// truncates out-of-range values.
var maxMinorUnits = decimal.NewFromInt(1<<62 - 1)

// parseAmount converts a decimal money string ("50.00") into minor units.
// Amounts must be strictly positive and carry no sub-cent precision.
func parseAmount(s string) (int64, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return 0, account.ErrInvalidAmount
	}
	cents := d.Shift(2)
	if !cents.IsInteger() || cents.Cmp(maxMinorUnits) > 0 {
		return 0, account.ErrInvalidAmount
	}
	v := cents.IntPart()
	if v <= 0 {
		return 0, account.ErrInvalidAmount
	}
	return v, nil
}

// renderAmount formats minor units as a fixed two-digit decimal string.
func renderAmount(minor int64) string {
	return decimal.New(minor, -2).StringFixed(2)
}
