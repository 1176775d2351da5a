package domain

import (
	"context"
	"math/big"

	"github.com/shopspring/decimal"
)

// AggregatorParams is the input of a remote quote or swap-build call. AmountIn
// is already converted to the from-token's base units.
type AggregatorParams struct {
	FromToken   Token
	ToToken     Token
	AmountIn    string
	SlippagePct float64
	Sender      string
	Recipient   string
	Testnet     bool
}

// Aggregator is the port to the remote cross-chain swap routing API.
type Aggregator interface {
	// Quote returns an authoritative output-amount quote.
	Quote(ctx context.Context, p AggregatorParams) (*RemoteQuote, error)

	// BuildSwap returns the quoted output plus a chain-ready transaction
	// payload to be broadcast verbatim.
	BuildSwap(ctx context.Context, p AggregatorParams) (*SwapBuild, error)

	// Routes returns the number of viable routes between two chains.
	Routes(ctx context.Context, fromChainID, toChainID int64, testnet bool) (int, error)
}

// Wallet is the capability interface over whatever signer is active. The core
// depends only on this port, never on a concrete provider.
type Wallet interface {
	// Address returns the active account, or "" when none is connected.
	Address() string

	ChainID(ctx context.Context) (int64, error)

	// Balance returns the address's holdings of token, in human units.
	Balance(ctx context.Context, token Token, address string) (decimal.Decimal, error)

	// Approve grants spender an allowance of at least amount base units and
	// waits for the approval to be mined.
	Approve(ctx context.Context, token Token, spender string, amount *big.Int) (txHash string, err error)

	// SendTransaction signs and broadcasts the payload as given, returning
	// the transaction hash. The payload fields are not reinterpreted.
	SendTransaction(ctx context.Context, payload TxPayload) (txHash string, err error)

	// WaitMined blocks until the transaction has a receipt.
	WaitMined(ctx context.Context, txHash string, outputToken Token) (*Receipt, error)

	// StateChanges delivers a signal whenever the account or chain switches;
	// the core treats it as "wallet state invalidated, return to idle".
	StateChanges() <-chan struct{}
}

// TransactionRepository persists the bounded transaction-history view. The
// swap core stays correct without it; persistence failures are never fatal.
type TransactionRepository interface {
	Save(ctx context.Context, tx *Transaction) error
	Update(ctx context.Context, tx *Transaction) error
	ListRecent(ctx context.Context, limit int) ([]Transaction, error)
}
