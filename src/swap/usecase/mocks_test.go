package usecase

import (
	"context"
	"errors"
	"math/big"

	"github.com/shopspring/decimal"

	"github.com/unikron/swapd/src/logger"
	"github.com/unikron/swapd/src/swap/domain"
)

func testLogger() *logger.Logger { return logger.New("test") }

// ---------- AGGREGATOR FAKE ----------

type fakeAggregator struct {
	quote    *domain.RemoteQuote
	quoteErr error

	build    *domain.SwapBuild
	buildErr error

	routes    int
	routesErr error

	quoteCalls int
	buildCalls int
	routeCalls int

	lastParams domain.AggregatorParams
}

var _ domain.Aggregator = (*fakeAggregator)(nil)

func (f *fakeAggregator) Quote(_ context.Context, p domain.AggregatorParams) (*domain.RemoteQuote, error) {
	f.quoteCalls++
	f.lastParams = p
	if f.quoteErr != nil {
		return nil, f.quoteErr
	}
	return f.quote, nil
}

func (f *fakeAggregator) BuildSwap(_ context.Context, p domain.AggregatorParams) (*domain.SwapBuild, error) {
	f.buildCalls++
	f.lastParams = p
	if f.buildErr != nil {
		return nil, f.buildErr
	}
	return f.build, nil
}

func (f *fakeAggregator) Routes(_ context.Context, _, _ int64, _ bool) (int, error) {
	f.routeCalls++
	if f.routesErr != nil {
		return 0, f.routesErr
	}
	return f.routes, nil
}

// ---------- WALLET FAKE ----------

type fakeWallet struct {
	address string

	balance    decimal.Decimal
	balanceErr error

	approveHash string
	approveErr  error

	sendHash string
	sendErr  error

	receipt   *domain.Receipt
	minedErr  error
	stateCh   chan struct{}

	balanceCalls int
	approveCalls int
	sendCalls    int
	minedCalls   int

	lastPayload domain.TxPayload
	lastSpender string
	lastAmount  *big.Int
}

var _ domain.Wallet = (*fakeWallet)(nil)

func newFakeWallet() *fakeWallet {
	return &fakeWallet{
		address:     "0x1111111111111111111111111111111111111111",
		balance:     decimal.NewFromInt(1000),
		approveHash: "0xapprove",
		sendHash:    "0xswap",
		receipt:     &domain.Receipt{TxHash: "0xswap", Success: true},
		stateCh:     make(chan struct{}, 1),
	}
}

func (f *fakeWallet) Address() string { return f.address }

func (f *fakeWallet) ChainID(context.Context) (int64, error) { return 1, nil }

func (f *fakeWallet) Balance(_ context.Context, _ domain.Token, _ string) (decimal.Decimal, error) {
	f.balanceCalls++
	if f.balanceErr != nil {
		return decimal.Zero, f.balanceErr
	}
	return f.balance, nil
}

func (f *fakeWallet) Approve(_ context.Context, _ domain.Token, spender string, amount *big.Int) (string, error) {
	f.approveCalls++
	f.lastSpender = spender
	f.lastAmount = amount
	if f.approveErr != nil {
		return "", f.approveErr
	}
	return f.approveHash, nil
}

func (f *fakeWallet) SendTransaction(_ context.Context, payload domain.TxPayload) (string, error) {
	f.sendCalls++
	f.lastPayload = payload
	if f.sendErr != nil {
		return "", f.sendErr
	}
	return f.sendHash, nil
}

func (f *fakeWallet) WaitMined(_ context.Context, _ string, _ domain.Token) (*domain.Receipt, error) {
	f.minedCalls++
	if f.minedErr != nil {
		return nil, f.minedErr
	}
	return f.receipt, nil
}

func (f *fakeWallet) StateChanges() <-chan struct{} { return f.stateCh }

// ---------- REPOSITORY FAKE ----------

type fakeTxRepo struct {
	saved   []domain.Transaction
	updated []domain.Transaction
	saveErr error
}

var _ domain.TransactionRepository = (*fakeTxRepo)(nil)

func (f *fakeTxRepo) Save(_ context.Context, tx *domain.Transaction) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = append(f.saved, *tx)
	return nil
}

func (f *fakeTxRepo) Update(_ context.Context, tx *domain.Transaction) error {
	f.updated = append(f.updated, *tx)
	return nil
}

func (f *fakeTxRepo) ListRecent(_ context.Context, limit int) ([]domain.Transaction, error) {
	if limit > len(f.saved) {
		limit = len(f.saved)
	}
	return f.saved[:limit], nil
}

// ---------- SHARED FIXTURES ----------

var errBoom = errors.New("boom")

func ethToken() domain.Token {
	return domain.Token{
		Symbol: "ETH", Name: "Ethereum", Decimals: 18,
		Network: "ethereum", Address: "0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2",
		ChainID: 1, Price: 3500,
	}
}

func usdtToken() domain.Token {
	return domain.Token{
		Symbol: "USDT", Name: "Tether USD", Decimals: 6,
		Network: "ethereum", Address: "0xdAC17F958D2ee523a2206206994597C13D831ec7",
		ChainID: 1, Price: 1,
	}
}

func arbToken() domain.Token {
	return domain.Token{
		Symbol: "ARB", Name: "Arbitrum", Decimals: 18,
		Network: "arbitrum", Address: "0x912CE59144191C1204E64559FE8253a0e49E6548",
		ChainID: 42161, Price: 1.2,
	}
}

func nativeEth() domain.Token {
	return domain.Token{
		Symbol: "ETH", Name: "Ether", Decimals: 18,
		Network: "ethereum", Address: domain.NativeTokenAddress,
		ChainID: 1, Price: 3500,
	}
}
