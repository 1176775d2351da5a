// Package http provides HTTP handlers for swap operations
//
// Schemes: http
// Host: localhost:8080
// BasePath: /api/v1
// Version: 1.0.0
//
// Consumes:
// - application/json
//
// Produces:
// - application/json
//
// swagger:meta
package http

import (
	"time"

	"github.com/unikron/swapd/src/swap/domain"
)

// TokenDTO identifies one side of a swap
// swagger:model TokenDTO
type TokenDTO struct {
	Symbol   string  `json:"symbol" example:"ETH"`
	Name     string  `json:"name,omitempty" example:"Ethereum"`
	Decimals int     `json:"decimals" example:"18"`
	Network  string  `json:"network" example:"ethereum"`
	Address  string  `json:"address,omitempty" example:"0xC02a..."`
	ChainID  int64   `json:"chain_id,omitempty" example:"1"`
	Price    float64 `json:"price,omitempty" example:"3500"`
}

func (t TokenDTO) ToToken() domain.Token {
	return domain.Token{
		Symbol:   t.Symbol,
		Name:     t.Name,
		Decimals: t.Decimals,
		Network:  t.Network,
		Address:  t.Address,
		ChainID:  t.ChainID,
		Price:    t.Price,
	}
}

func fromToken(t domain.Token) TokenDTO {
	return TokenDTO{
		Symbol:   t.Symbol,
		Name:     t.Name,
		Decimals: t.Decimals,
		Network:  t.Network,
		Address:  t.Address,
		ChainID:  t.ChainID,
		Price:    t.Price,
	}
}

// QuoteRequestBody is the payload to request an output-amount quote
// swagger:model QuoteRequestBody
type QuoteRequestBody struct {
	FromToken     TokenDTO `json:"from_token"`
	ToToken       TokenDTO `json:"to_token"`
	AmountIn      string   `json:"amount_in" example:"2"`
	WalletAddress string   `json:"wallet_address,omitempty" example:"0xabc..."`
}

// QuoteResponseBody returns a quote
// swagger:model QuoteResponseBody
type QuoteResponseBody struct {
	OutputAmount string `json:"output_amount" example:"7000.000000"`
	Source       string `json:"source" example:"remote"`
	PriceImpact  string `json:"price_impact,omitempty" example:"0.01"`
	FeeUSD       string `json:"fee_usd,omitempty" example:"1.2"`
}

func fromQuote(q domain.Quote) QuoteResponseBody {
	return QuoteResponseBody{
		OutputAmount: q.OutputAmount,
		Source:       string(q.Source),
		PriceImpact:  q.PriceImpact,
		FeeUSD:       q.FeeUSD,
	}
}

// PairCheckRequestBody is the payload to check pair support
// swagger:model PairCheckRequestBody
type PairCheckRequestBody struct {
	FromToken TokenDTO `json:"from_token"`
	ToToken   TokenDTO `json:"to_token"`
}

// PairCheckResponseBody reports pair support
// swagger:model PairCheckResponseBody
type PairCheckResponseBody struct {
	Supported bool `json:"supported"`
}

// ExecuteRequestBody is the payload to execute a swap
// swagger:model ExecuteRequestBody
type ExecuteRequestBody struct {
	FromToken     TokenDTO `json:"from_token"`
	ToToken       TokenDTO `json:"to_token"`
	AmountIn      string   `json:"amount_in" example:"2"`
	SlippagePct   float64  `json:"slippage_pct" example:"0.5"`
	WalletAddress string   `json:"wallet_address" example:"0xabc..."`
}

func (r ExecuteRequestBody) ToSwapRequest() domain.SwapRequest {
	slippage := r.SlippagePct
	if slippage <= 0 {
		slippage = domain.DefaultSlippagePct
	}
	return domain.SwapRequest{
		FromToken:     r.FromToken.ToToken(),
		ToToken:       r.ToToken.ToToken(),
		AmountIn:      r.AmountIn,
		SlippagePct:   slippage,
		WalletAddress: r.WalletAddress,
	}
}

// ExecuteResponseBody returns the confirmed swap
// swagger:model ExecuteResponseBody
type ExecuteResponseBody struct {
	TxHash       string `json:"tx_hash" example:"0xdef..."`
	OutputAmount string `json:"output_amount" example:"6998.13"`
	ExplorerURL  string `json:"explorer_url,omitempty"`
}

// TransactionDTO is one tracked swap attempt
// swagger:model TransactionDTO
type TransactionDTO struct {
	ID           string    `json:"id"`
	Hash         string    `json:"hash,omitempty"`
	Status       string    `json:"status" example:"pending"`
	Timestamp    time.Time `json:"timestamp"`
	FromSymbol   string    `json:"from_symbol" example:"ETH"`
	ToSymbol     string    `json:"to_symbol" example:"USDT"`
	AmountIn     string    `json:"amount_in" example:"2"`
	OutputAmount string    `json:"output_amount,omitempty"`
	FailReason   string    `json:"fail_reason,omitempty"`
	ExplorerURL  string    `json:"explorer_url,omitempty"`
}

func fromTransaction(tx domain.Transaction, explorerURL string) TransactionDTO {
	return TransactionDTO{
		ID:           tx.ID,
		Hash:         tx.Hash,
		Status:       string(tx.Status),
		Timestamp:    tx.Timestamp,
		FromSymbol:   tx.FromSymbol,
		ToSymbol:     tx.ToSymbol,
		AmountIn:     tx.AmountIn,
		OutputAmount: tx.OutputAmount,
		FailReason:   tx.FailReason,
		ExplorerURL:  explorerURL,
	}
}

// TransactionsResponseBody lists tracked transactions
// swagger:model TransactionsResponseBody
type TransactionsResponseBody struct {
	Transactions []TransactionDTO `json:"transactions"`
}
