package usecase

import (
	"context"

	"github.com/unikron/swapd/src/logger"
	"github.com/unikron/swapd/src/swap/domain"
)

// QuoteService obtains an output-amount quote for a prospective swap. It
// prefers the aggregator's authoritative quote and falls back to the rate
// calculator on any failure, tagging the result so callers can tell which
// tier produced it.
type QuoteService struct {
	agg    domain.Aggregator
	rate   *RateCalculator
	logger *logger.Logger
}

func NewQuoteService(agg domain.Aggregator, rate *RateCalculator, logg *logger.Logger) *QuoteService {
	return &QuoteService{agg: agg, rate: rate, logger: logg}
}

// GetQuote always resolves to a Quote, even with the remote endpoint entirely
// unreachable. The output amount is empty only when the fallback cannot
// compute one either.
func (s *QuoteService) GetQuote(ctx context.Context, from, to domain.Token, amountIn, walletAddress string, testnet bool) domain.Quote {
	if _, ok := domain.PositiveAmount(amountIn); !ok {
		return domain.Quote{OutputAmount: "", Source: domain.QuoteSourceCalculated}
	}

	if walletAddress != "" {
		q, err := s.remoteQuote(ctx, from, to, amountIn, walletAddress, testnet)
		if err == nil {
			return *q
		}
		s.logger.Warnf("remote quote %s -> %s failed, falling back to calculated rate: %v",
			from.Symbol, to.Symbol, err)
	}

	return domain.Quote{
		OutputAmount: s.rate.EstimateOutput(from, to, amountIn),
		Source:       domain.QuoteSourceCalculated,
	}
}

func (s *QuoteService) remoteQuote(ctx context.Context, from, to domain.Token, amountIn, walletAddress string, testnet bool) (*domain.Quote, error) {
	baseUnits, err := domain.ToBaseUnits(amountIn, from.Decimals)
	if err != nil {
		return nil, err
	}

	remote, err := s.agg.Quote(ctx, domain.AggregatorParams{
		FromToken:   from,
		ToToken:     to,
		AmountIn:    baseUnits.String(),
		SlippagePct: domain.DefaultSlippagePct,
		Sender:      walletAddress,
		Recipient:   walletAddress,
		Testnet:     testnet,
	})
	if err != nil {
		return nil, err
	}

	decimals := remote.AmountOut.TokenDecimals
	if decimals == 0 {
		decimals = to.Decimals
	}
	out, err := domain.FromBaseUnits(remote.AmountOut.Amount, decimals)
	if err != nil {
		return nil, err
	}

	return &domain.Quote{
		OutputAmount: out,
		Source:       domain.QuoteSourceRemote,
		PriceImpact:  remote.PriceImpact,
		FeeUSD:       remote.FeeUSD,
	}, nil
}
