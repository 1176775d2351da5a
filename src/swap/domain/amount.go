package domain

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
)

var ErrInvalidAmount = errors.New("failed to parse amount")

// ToBaseUnits converts a human-unit decimal string to the integer base-unit
// form used in on-chain calls, scaled by 10^decimals. Fractional digits beyond
// the token's precision are rejected rather than silently truncated.
func ToBaseUnits(amount string, decimals int) (*big.Int, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAmount, amount)
	}
	if d.IsNegative() {
		return nil, fmt.Errorf("%w: negative amount %q", ErrInvalidAmount, amount)
	}
	shifted := d.Shift(int32(decimals))
	if !shifted.IsInteger() {
		return nil, fmt.Errorf("%w: %q has more than %d fractional digits", ErrInvalidAmount, amount, decimals)
	}
	return shifted.BigInt(), nil
}

// FromBaseUnits converts an integer base-unit string back to a human-unit
// decimal string. Trailing zeros are trimmed.
func FromBaseUnits(raw string, decimals int) (string, error) {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidAmount, raw)
	}
	if !d.IsInteger() {
		return "", fmt.Errorf("%w: base-unit amount %q is not an integer", ErrInvalidAmount, raw)
	}
	return d.Shift(int32(-decimals)).String(), nil
}

// PositiveAmount parses a human-unit amount and reports whether it is a
// positive finite decimal.
func PositiveAmount(amount string) (decimal.Decimal, bool) {
	d, err := decimal.NewFromString(amount)
	if err != nil || !d.IsPositive() {
		return decimal.Zero, false
	}
	return d, true
}
