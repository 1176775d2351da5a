package usecase

import (
	"github.com/shopspring/decimal"
	"github.com/unikron/swapd/src/swap/domain"
)

// fallbackOutputDecimals is used when the destination token does not declare
// a precision.
const fallbackOutputDecimals = 6

// RateCalculator computes an indicative output amount from reference prices.
// The result is a same-order-of-magnitude display value only and must never
// authorize an actual trade amount.
type RateCalculator struct {
	oracle *PriceOracle
}

func NewRateCalculator(oracle *PriceOracle) *RateCalculator {
	return &RateCalculator{oracle: oracle}
}

// EstimateOutput converts amountIn through the two tokens' reference prices.
// An empty, zero, negative or unparsable amount yields "", meaning no
// estimate is available, distinct from a zero output. The result is fixed-point
// with exactly the to-token's precision.
func (c *RateCalculator) EstimateOutput(from, to domain.Token, amountIn string) string {
	if amountIn == "" {
		return ""
	}
	amt, err := decimal.NewFromString(amountIn)
	if err != nil || amt.Sign() <= 0 {
		return ""
	}

	usdValue := amt.Mul(c.oracle.ReferencePrice(from))
	out := usdValue.DivRound(c.oracle.ReferencePrice(to), 32)

	decimals := to.Decimals
	if decimals <= 0 {
		decimals = fallbackOutputDecimals
	}
	return out.StringFixed(int32(decimals))
}
