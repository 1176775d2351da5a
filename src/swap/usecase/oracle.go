package usecase

import (
	"github.com/shopspring/decimal"
	"github.com/unikron/swapd/src/swap/domain"
)

// PriceOracle resolves a token's reference fiat price. It is only ever a
// fallback-calculator input, never an execution price.
type PriceOracle struct{}

func NewPriceOracle() *PriceOracle {
	return &PriceOracle{}
}

// ReferencePrice returns the token's carried price when present and positive.
// Unpriced tokens resolve to 1.0, so the rate calculator never divides by
// zero and an unpriced pair degrades to a 1:1 estimate.
func (o *PriceOracle) ReferencePrice(t domain.Token) decimal.Decimal {
	if t.Price > 0 {
		return decimal.NewFromFloat(t.Price)
	}
	return decimal.NewFromInt(1)
}
