package usecase

import (
	"context"
	"strings"

	"github.com/unikron/swapd/src/Infrastructure/symbiosis"
	"github.com/unikron/swapd/src/logger"
	"github.com/unikron/swapd/src/swap/domain"
)

// Service resolves the selectable token list per network, with USD reference
// prices attached. The remote token list is best effort; the static defaults
// answer when it is unavailable, so the selector is never empty for a known
// network.
type Service struct {
	client *symbiosis.Client
	logger *logger.Logger
}

func NewService(client *symbiosis.Client, logg *logger.Logger) *Service {
	return &Service{client: client, logger: logg}
}

// ListTokens returns the tokens selectable on one network. Unknown network
// identifiers yield an empty list.
func (s *Service) ListTokens(ctx context.Context, networkID string) []domain.Token {
	network, ok := domain.NetworkByID(networkID)
	if !ok {
		s.logger.Debugf("token list: unknown network %q", networkID)
		return nil
	}

	remote, err := s.client.Tokens(ctx, network.ChainID)
	if err != nil || len(remote) == 0 {
		if err != nil {
			s.logger.Warnf("token list for %s failed, serving defaults: %v", networkID, err)
		}
		return domain.DefaultTokens[networkID]
	}

	prices := s.fetchPrices(ctx, network.ChainID, remote)

	tokens := make([]domain.Token, 0, len(remote))
	for _, t := range remote {
		tokens = append(tokens, domain.Token{
			Symbol:   t.Symbol,
			Name:     t.Name,
			Decimals: t.Decimals,
			Network:  networkID,
			Address:  t.Address,
			ChainID:  t.ChainID,
			Price:    prices[strings.ToLower(t.Address)],
		})
	}
	return tokens
}

// Networks returns the static network table. The aggregator's live network
// list can be broader than what this service routes, so the static table is
// authoritative for the selector.
func (s *Service) Networks() []domain.Network {
	return domain.Networks
}

// fetchPrices is best effort; tokens without a price entry keep zero, which
// downstream pricing treats as "no reference available".
func (s *Service) fetchPrices(ctx context.Context, chainID int64, tokens []symbiosis.TokenInfo) map[string]float64 {
	addresses := make([]string, 0, len(tokens))
	for _, t := range tokens {
		addresses = append(addresses, t.Address)
	}

	priced, err := s.client.Prices(ctx, chainID, addresses)
	if err != nil {
		s.logger.Warnf("price fetch for chain %d failed: %v", chainID, err)
		return map[string]float64{}
	}

	out := make(map[string]float64, len(priced))
	for addr, p := range priced {
		out[strings.ToLower(addr)] = p.USD
	}
	return out
}
