package usecase

import (
	"context"

	"github.com/unikron/swapd/src/logger"
	"github.com/unikron/swapd/src/swap/domain"
)

// Majors the aggregator is known to route broadly; kept because the remote
// capability endpoint has returned 404 for otherwise-valid pairs.
var supportedMajors = map[string]bool{
	"ETH": true, "WETH": true, "USDT": true, "USDC": true,
	"DAI": true, "WBTC": true, "SIS": true, "BNB": true, "MATIC": true,
}

// Known-good same-chain pairs, checked in both orders.
var knownGoodPairs = [][2]string{
	{"ETH", "USDT"},
	{"ETH", "DAI"},
	{"ETH", "USDC"},
	{"BNB", "ETH"},
	{"WETH", "USDT"},
	{"WETH", "USDC"},
	{"WBTC", "ETH"},
	{"MATIC", "ETH"},
	{"SIS", "ETH"},
	{"USDC", "USDT"},
}

// PairSupportService decides whether the aggregator can route a swap between
// two tokens. The static tiers run before the remote capability query on
// purpose: the remote endpoint is unreliable, and blocking a valid swap on a
// flaky 404 is worse than answering from out-of-band knowledge.
type PairSupportService struct {
	agg    domain.Aggregator
	logger *logger.Logger
}

func NewPairSupportService(agg domain.Aggregator, logg *logger.Logger) *PairSupportService {
	return &PairSupportService{agg: agg, logger: logg}
}

// IsSupported never errors; any internal failure resolves to false. Decision
// tiers, first match wins:
//  1. unidentifiable token -> false
//  2. testnet -> true (permissive for demo environments)
//  3. cross-chain -> true (the aggregator's specialty)
//  4. both symbols in the majors allow-list -> true
//  5. known-good pair, order-independent -> true
//  6. remote route query; at least one route -> true, any failure -> false
func (s *PairSupportService) IsSupported(ctx context.Context, from, to domain.Token, testnet bool) bool {
	fromChain := from.ResolveChainID()
	toChain := to.ResolveChainID()
	if from.Address == "" || to.Address == "" || fromChain == 0 || toChain == 0 {
		s.logger.Debugf("pair support: %s/%s not identifiable", from.Symbol, to.Symbol)
		return false
	}

	if testnet {
		return true
	}

	if fromChain != toChain {
		s.logger.Debugf("pair support: cross-chain %d -> %d", fromChain, toChain)
		return true
	}

	if supportedMajors[from.Symbol] && supportedMajors[to.Symbol] {
		return true
	}

	for _, p := range knownGoodPairs {
		if (p[0] == from.Symbol && p[1] == to.Symbol) || (p[1] == from.Symbol && p[0] == to.Symbol) {
			return true
		}
	}

	routes, err := s.agg.Routes(ctx, fromChain, toChain, testnet)
	if err != nil {
		s.logger.Warnf("pair support: route query %d -> %d failed: %v", fromChain, toChain, err)
		return false
	}
	return routes > 0
}
