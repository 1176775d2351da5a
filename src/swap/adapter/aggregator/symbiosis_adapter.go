package aggregator

import (
	"context"
	"time"

	"github.com/unikron/swapd/src/Infrastructure/symbiosis"
	"github.com/unikron/swapd/src/swap/domain"
)

var _ domain.Aggregator = (*SymbiosisPort)(nil)

// SymbiosisPort adapts the symbiosis HTTP client to the domain Aggregator
// port. It holds one client per environment and selects by the Testnet flag
// on each call, so a single process can serve both.
type SymbiosisPort struct {
	mainnet      *symbiosis.Client
	testnet      *symbiosis.Client
	routeTimeout time.Duration
}

func NewSymbiosisPort(mainnet, testnet *symbiosis.Client, routeTimeout time.Duration) *SymbiosisPort {
	return &SymbiosisPort{mainnet: mainnet, testnet: testnet, routeTimeout: routeTimeout}
}

func (p *SymbiosisPort) client(testnet bool) *symbiosis.Client {
	if testnet {
		return p.testnet
	}
	return p.mainnet
}

func (p *SymbiosisPort) Quote(ctx context.Context, params domain.AggregatorParams) (*domain.RemoteQuote, error) {
	resp, err := p.client(params.Testnet).SwapQuote(ctx, swapRequest(params))
	if err != nil {
		return nil, err
	}
	return &domain.RemoteQuote{
		AmountOut:   tokenAmount(resp.AmountOut),
		PriceImpact: resp.PriceImpact,
		FeeUSD:      resp.FeeUSD,
	}, nil
}

func (p *SymbiosisPort) BuildSwap(ctx context.Context, params domain.AggregatorParams) (*domain.SwapBuild, error) {
	resp, err := p.client(params.Testnet).SwapExecute(ctx, swapRequest(params))
	if err != nil {
		return nil, err
	}
	return &domain.SwapBuild{
		AmountOut: tokenAmount(resp.AmountOut),
		Tx: domain.TxPayload{
			To:       resp.Tx.To,
			Data:     resp.Tx.Data,
			Value:    resp.Tx.Value,
			GasLimit: resp.Tx.GasLimit,
		},
	}, nil
}

// Routes runs under its own short timeout: it backs a support check that must
// answer quickly and is allowed to fail.
func (p *SymbiosisPort) Routes(ctx context.Context, fromChainID, toChainID int64, testnet bool) (int, error) {
	if p.routeTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.routeTimeout)
		defer cancel()
	}
	routes, err := p.client(testnet).TokenRoutes(ctx, fromChainID, toChainID)
	if err != nil {
		return 0, err
	}
	return len(routes), nil
}

func swapRequest(params domain.AggregatorParams) symbiosis.SwapRequest {
	return symbiosis.SwapRequest{
		FromTokenAddress: params.FromToken.Address,
		ToTokenAddress:   params.ToToken.Address,
		FromTokenChainID: params.FromToken.ResolveChainID(),
		ToTokenChainID:   params.ToToken.ResolveChainID(),
		FromAmount:       params.AmountIn,
		Slippage:         params.SlippagePct,
		Sender:           params.Sender,
		Recipient:        params.Recipient,
	}
}

func tokenAmount(a symbiosis.TokenAmount) domain.RemoteAmount {
	return domain.RemoteAmount{
		Amount:        a.Amount,
		TokenAddress:  a.TokenAddress,
		TokenSymbol:   a.TokenSymbol,
		TokenDecimals: a.TokenDecimals,
	}
}
