package witness

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ParseAmount converts a human-entered decimal amount string (e.g. a
// fixture loader's "123.456" column) into the integer base-unit amount the
// circuit's fixed-point AmountBits fields expect, at the given number of
// decimal places — exact decimal arithmetic throughout, so no floating
// point rounding ever touches an order's signed amounts.
func ParseAmount(s string, decimals int32) (uint64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("parsing amount %q: %w", s, err)
	}
	scaled := d.Shift(decimals)
	if !scaled.IsInteger() {
		return 0, fmt.Errorf("amount %q has more than %d decimal places", s, decimals)
	}
	if scaled.IsNegative() {
		return 0, fmt.Errorf("amount %q is negative", s)
	}
	return scaled.BigInt().Uint64(), nil
}
