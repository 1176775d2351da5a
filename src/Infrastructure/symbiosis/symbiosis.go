// Package symbiosis implements a typed HTTP client for the Symbiosis
// cross-chain aggregator REST API.
//
// Coverage: swap quoting and building (/v1/swap/quote, /v1/swap/execute),
// route discovery (/v1/tokens/routes), token listings (/v1/tokens), token
// prices (/v1/prices) and supported networks (/v1/networks).
//
// Notes:
//   - Successful responses are plain JSON documents, no envelope.
//   - Non-2xx responses carry {"message": "..."}; the client surfaces them
//     as *APIError with the HTTP status attached.
//   - All calls honor the passed context; the underlying http.Client carries
//     an overall timeout as a backstop.
package symbiosis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// API base URLs from the aggregator's public deployment.
const (
	MainnetBaseURL = "https://api-v2.symbiosis.finance/crosschain"
	TestnetBaseURL = "https://api.testnet.symbiosis.finance/crosschain"
)

var DefaultHTTPClient = &http.Client{Timeout: 15 * time.Second}

// APIError is a non-2xx response from the aggregator.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("symbiosis api error: status=%d message=%s", e.StatusCode, e.Message)
}

// NotFound reports whether the API answered 404. The routes endpoint is known
// to 404 for pairs it can in fact route, so callers treat this case specially.
func (e *APIError) NotFound() bool { return e.StatusCode == http.StatusNotFound }

type Client struct {
	BaseURL   *url.URL
	HTTP      *http.Client
	UserAgent string
	Logger    zerolog.Logger
}

// Option functional options.
type Option func(*Client)

func WithHTTPClient(h *http.Client) Option { return func(c *Client) { c.HTTP = h } }
func WithUserAgent(ua string) Option       { return func(c *Client) { c.UserAgent = ua } }
func WithLogger(l zerolog.Logger) Option   { return func(c *Client) { c.Logger = l } }

// WithTimeout replaces the HTTP client with one carrying an overall timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.HTTP = &http.Client{Timeout: d} }
}

// NewClient constructs a client for base, e.g. MainnetBaseURL.
func NewClient(base string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(base, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	c := &Client{
		BaseURL:   u,
		HTTP:      DefaultHTTPClient,
		UserAgent: "swapd/1.0",
		Logger:    log.Logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// --- Core HTTP execution with logging ---

func (c *Client) do(ctx context.Context, method, p string, q url.Values, body, out any) error {
	u := *c.BaseURL
	u.Path = path.Join(u.Path, p)
	u.RawQuery = q.Encode()

	var r io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal body: %w", err)
		}
		r = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), r)
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("http do: %w", err)
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}

	c.Logger.Info().
		Str("method", method).
		Str("url", u.String()).
		Int("status", resp.StatusCode).
		Str("duration", time.Since(start).String()).
		Msg("symbiosis response")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return apiError(resp.StatusCode, b)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(b, out); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}
	return nil
}

// apiError extracts the message field from an error body, falling back to the
// raw text when the body is not JSON.
func apiError(status int, body []byte) error {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || payload.Message == "" {
		payload.Message = truncateString(string(body), 512)
	}
	if payload.Message == "" {
		payload.Message = http.StatusText(status)
	}
	return &APIError{StatusCode: status, Message: payload.Message}
}

func truncateString(s string, max int) string {
	if len(s) > max {
		return s[:max]
	}
	return s
}

// --- Swap quoting & building ---

// SwapRequest is the shared body of the quote and execute endpoints. Amounts
// are base-unit integer strings; Slippage is a percentage (0.5 means 0.5%).
type SwapRequest struct {
	FromTokenAddress string  `json:"fromTokenAddress"`
	ToTokenAddress   string  `json:"toTokenAddress"`
	FromTokenChainID int64   `json:"fromTokenChainId"`
	ToTokenChainID   int64   `json:"toTokenChainId"`
	FromAmount       string  `json:"fromAmount"`
	Slippage         float64 `json:"slippage"`
	Sender           string  `json:"sender"`
	Recipient        string  `json:"recipient"`
}

// TokenAmount is an amount bound to the token it is denominated in.
type TokenAmount struct {
	Amount        string `json:"amount"`
	TokenAddress  string `json:"tokenAddress"`
	TokenSymbol   string `json:"tokenSymbol"`
	TokenDecimals int    `json:"tokenDecimals"`
}

type QuoteResponse struct {
	AmountOut   TokenAmount `json:"amountOut"`
	PriceImpact string      `json:"priceImpact"`
	FeeUSD      string      `json:"feeUsd,omitempty"`
	SwapID      string      `json:"swapId,omitempty"`
}

// TxData is the chain-ready transaction the execute endpoint returns. Opaque;
// broadcast as-is.
type TxData struct {
	To       string `json:"to"`
	Data     string `json:"data"`
	Value    string `json:"value"`
	GasLimit string `json:"gasLimit"`
}

type SwapResponse struct {
	AmountOut   TokenAmount `json:"amountOut"`
	PriceImpact string      `json:"priceImpact"`
	SwapID      string      `json:"swapId,omitempty"`
	Tx          TxData      `json:"tx"`
}

// SwapQuote asks for an output-amount quote without building a transaction.
func (c *Client) SwapQuote(ctx context.Context, in SwapRequest) (*QuoteResponse, error) {
	var out QuoteResponse
	if err := c.do(ctx, http.MethodPost, "/v1/swap/quote", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SwapExecute builds an executable swap: the quote plus a signed-ready
// transaction payload.
func (c *Client) SwapExecute(ctx context.Context, in SwapRequest) (*SwapResponse, error) {
	var out SwapResponse
	if err := c.do(ctx, http.MethodPost, "/v1/swap/execute", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// --- Routes ---

type Route struct {
	OriginChainID      int64  `json:"originChainId"`
	DestinationChainID int64  `json:"destinationChainId"`
	Type               string `json:"type,omitempty"`
}

// TokenRoutes lists viable routes between two chains. A 404 means the
// endpoint cannot answer for the pair, not that no route exists; callers
// decide how to treat it.
func (c *Client) TokenRoutes(ctx context.Context, fromChainID, toChainID int64) ([]Route, error) {
	q := url.Values{
		"fromChainId": {fmt.Sprint(fromChainID)},
		"toChainId":   {fmt.Sprint(toChainID)},
	}
	var out []Route
	if err := c.do(ctx, http.MethodGet, "/v1/tokens/routes", q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// --- Tokens & prices ---

type TokenInfo struct {
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Address  string `json:"address"`
	Decimals int    `json:"decimals"`
	ChainID  int64  `json:"chainId"`
	Icon     string `json:"icon,omitempty"`
	LogoURI  string `json:"logoURI,omitempty"`
}

// Tokens lists the tokens the aggregator knows on one chain.
func (c *Client) Tokens(ctx context.Context, chainID int64) ([]TokenInfo, error) {
	q := url.Values{"chainId": {fmt.Sprint(chainID)}}
	var out []TokenInfo
	if err := c.do(ctx, http.MethodGet, "/v1/tokens", q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// TokenPrice is a USD reference price.
type TokenPrice struct {
	USD float64 `json:"usd"`
}

// Prices returns USD prices keyed by lowercase token address.
func (c *Client) Prices(ctx context.Context, chainID int64, addresses []string) (map[string]TokenPrice, error) {
	if len(addresses) == 0 {
		return map[string]TokenPrice{}, nil
	}
	q := url.Values{
		"chainId":   {fmt.Sprint(chainID)},
		"addresses": {strings.Join(addresses, ",")},
	}
	var out map[string]TokenPrice
	if err := c.do(ctx, http.MethodGet, "/v1/prices", q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// --- Networks ---

type NetworkInfo struct {
	ChainID int64  `json:"chainId"`
	Name    string `json:"name"`
}

// Networks lists the chains the aggregator currently serves.
func (c *Client) Networks(ctx context.Context) ([]NetworkInfo, error) {
	var out []NetworkInfo
	if err := c.do(ctx, http.MethodGet, "/v1/networks", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
