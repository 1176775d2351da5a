package symbiosis

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := NewClient(srv.URL)
	require.NoError(t, err)
	return c
}

func TestSwapQuote(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/swap/quote", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req SwapRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "2000000000000000000", req.FromAmount)
		require.Equal(t, 0.5, req.Slippage)

		json.NewEncoder(w).Encode(QuoteResponse{
			AmountOut:   TokenAmount{Amount: "6998130000", TokenSymbol: "USDT", TokenDecimals: 6},
			PriceImpact: "0.01",
		})
	})

	resp, err := c.SwapQuote(context.Background(), SwapRequest{
		FromTokenAddress: "0xfrom",
		ToTokenAddress:   "0xto",
		FromTokenChainID: 1,
		ToTokenChainID:   1,
		FromAmount:       "2000000000000000000",
		Slippage:         0.5,
		Sender:           "0xwallet",
		Recipient:        "0xwallet",
	})
	require.NoError(t, err)
	require.Equal(t, "6998130000", resp.AmountOut.Amount)
	require.Equal(t, 6, resp.AmountOut.TokenDecimals)
	require.Equal(t, "0.01", resp.PriceImpact)
}

func TestSwapExecuteReturnsTxPayload(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/swap/execute", r.URL.Path)
		json.NewEncoder(w).Encode(SwapResponse{
			AmountOut: TokenAmount{Amount: "6998130000", TokenDecimals: 6},
			Tx: TxData{
				To:       "0xrouter",
				Data:     "0xcafebabe",
				Value:    "0",
				GasLimit: "450000",
			},
		})
	})

	resp, err := c.SwapExecute(context.Background(), SwapRequest{})
	require.NoError(t, err)
	require.Equal(t, "0xrouter", resp.Tx.To)
	require.Equal(t, "0xcafebabe", resp.Tx.Data)
	require.Equal(t, "450000", resp.Tx.GasLimit)
}

func TestErrorBodyMessageSurfaced(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"message": "route not found"})
	})

	_, err := c.SwapQuote(context.Background(), SwapRequest{})
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.True(t, apiErr.NotFound())
	require.Equal(t, "route not found", apiErr.Message)
}

func TestErrorNonJSONBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream exploded"))
	})

	_, err := c.TokenRoutes(context.Background(), 1, 1)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	require.Equal(t, "upstream exploded", apiErr.Message)
}

func TestTokenRoutesQuery(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/tokens/routes", r.URL.Path)
		require.Equal(t, "1", r.URL.Query().Get("fromChainId"))
		require.Equal(t, "42161", r.URL.Query().Get("toChainId"))
		json.NewEncoder(w).Encode([]Route{
			{OriginChainID: 1, DestinationChainID: 42161},
			{OriginChainID: 1, DestinationChainID: 42161, Type: "v2"},
		})
	})

	routes, err := c.TokenRoutes(context.Background(), 1, 42161)
	require.NoError(t, err)
	require.Len(t, routes, 2)
}

func TestTokensAndPrices(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/tokens":
			require.Equal(t, "1", r.URL.Query().Get("chainId"))
			json.NewEncoder(w).Encode([]TokenInfo{
				{Symbol: "USDT", Name: "Tether USD", Address: "0xdac1", Decimals: 6, ChainID: 1},
			})
		case "/v1/prices":
			require.Equal(t, "0xdac1", r.URL.Query().Get("addresses"))
			json.NewEncoder(w).Encode(map[string]TokenPrice{"0xdac1": {USD: 1.0}})
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	})

	tokens, err := c.Tokens(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, tokens, 1)
	require.Equal(t, "USDT", tokens[0].Symbol)

	prices, err := c.Prices(context.Background(), 1, []string{"0xdac1"})
	require.NoError(t, err)
	require.Equal(t, 1.0, prices["0xdac1"].USD)
}

func TestPricesEmptyAddressListSkipsCall(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	})

	prices, err := c.Prices(context.Background(), 1, nil)
	require.NoError(t, err)
	require.Empty(t, prices)
}

func TestInvalidBaseURL(t *testing.T) {
	_, err := NewClient("://bad")
	require.Error(t, err)
}
