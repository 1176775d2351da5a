package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// NativeTokenAddress is the conventional pseudo-address aggregators use for a
// chain's native asset. Tokens carrying it (or no address at all) need no
// ERC-20 allowance before a swap.
const NativeTokenAddress = "0xEeeeeEeeeEeEeeEeEeEeeEEEeeeeEeeeeeeeEEeE"

// Token identifies a fungible asset. Immutable once constructed; amount
// strings must be parsed and rendered with exactly Decimals precision.
type Token struct {
	Symbol   string  `json:"symbol"`
	Name     string  `json:"name"`
	Decimals int     `json:"decimals"`
	Network  string  `json:"network"`
	Address  string  `json:"address,omitempty"`
	ChainID  int64   `json:"chain_id,omitempty"`
	Price    float64 `json:"price,omitempty"` // reference fiat price, may be stale or zero
}

// IsNative reports whether the token is its network's native asset.
func (t Token) IsNative() bool {
	return t.Address == "" || strings.EqualFold(t.Address, NativeTokenAddress)
}

// ResolveChainID returns the token's chain identifier, falling back to the
// static network table when the token does not carry one. Zero means the
// token cannot be placed on any known chain.
func (t Token) ResolveChainID() int64 {
	if t.ChainID != 0 {
		return t.ChainID
	}
	if n, ok := NetworkByID(t.Network); ok {
		return n.ChainID
	}
	return 0
}

// SameAsset reports whether two tokens are the same asset, by address and
// network identity.
func (t Token) SameAsset(other Token) bool {
	return strings.EqualFold(t.Address, other.Address) && t.Network == other.Network
}

// Network identifies a blockchain environment. Mainnet/testnet behavior is
// selected by a flag carried alongside, not encoded here.
type Network struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	ChainID int64  `json:"chain_id"`
}

// SwapRequest is the ephemeral input of a single swap attempt.
type SwapRequest struct {
	FromToken     Token
	ToToken       Token
	AmountIn      string // human-unit decimal string
	SlippagePct   float64
	WalletAddress string
}

type QuoteSource string

const (
	QuoteSourceRemote     QuoteSource = "remote"
	QuoteSourceCalculated QuoteSource = "calculated"
)

// Quote is an indicative output amount for a prospective swap. Recomputed on
// every material input change, never persisted.
type Quote struct {
	OutputAmount string      `json:"output_amount"` // scaled to the to-token's precision
	Source       QuoteSource `json:"source"`
	PriceImpact  string      `json:"price_impact,omitempty"`
	FeeUSD       string      `json:"fee_usd,omitempty"`
}

type TxStatus string

const (
	TxPending TxStatus = "pending"
	TxSuccess TxStatus = "success"
	TxError   TxStatus = "error"
)

// Terminal reports whether the status can no longer change.
func (s TxStatus) Terminal() bool {
	return s == TxSuccess || s == TxError
}

// Transaction is the tracked lifecycle record of one swap attempt. ID is a
// locally-generated placeholder; Hash is filled once the wallet broadcasts.
type Transaction struct {
	ID           string      `json:"id"`
	Hash         string      `json:"hash,omitempty"`
	Status       TxStatus    `json:"status"`
	Timestamp    time.Time   `json:"timestamp"`
	Request      SwapRequest `json:"-"`
	FromSymbol   string      `json:"from_symbol"`
	ToSymbol     string      `json:"to_symbol"`
	AmountIn     string      `json:"amount_in"`
	OutputAmount string      `json:"output_amount,omitempty"`
	FailReason   string      `json:"fail_reason,omitempty"`
}

// SwapResult is the successful outcome of SwapExecutor.Execute.
type SwapResult struct {
	TxHash       string
	OutputAmount string
}

// TxPayload is a chain-ready transaction built by the aggregator. The fields
// are opaque and must be passed to the wallet verbatim.
type TxPayload struct {
	To       string `json:"to"`
	Data     string `json:"data"`
	Value    string `json:"value"`
	GasLimit string `json:"gasLimit"`
}

// Receipt is the on-chain confirmation record of a broadcast transaction.
// OutputAmount is decoded from the receipt's transfer logs when available.
type Receipt struct {
	TxHash       string
	Success      bool
	OutputAmount *decimal.Decimal
}

// RemoteAmount is an aggregator-reported amount in base units.
type RemoteAmount struct {
	Amount        string
	TokenAddress  string
	TokenSymbol   string
	TokenDecimals int
}

// RemoteQuote is an authoritative aggregator quote.
type RemoteQuote struct {
	AmountOut   RemoteAmount
	PriceImpact string
	FeeUSD      string
}

// SwapBuild is the aggregator's executable swap: the quoted output plus the
// opaque transaction payload to broadcast.
type SwapBuild struct {
	AmountOut RemoteAmount
	Tx        TxPayload
}
