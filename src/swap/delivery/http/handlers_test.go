package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/unikron/swapd/src/logger"
	"github.com/unikron/swapd/src/swap/domain"
	"github.com/unikron/swapd/src/swap/usecase"
)

type stubAggregator struct {
	quote  *domain.RemoteQuote
	err    error
	routes int
}

func (s *stubAggregator) Quote(context.Context, domain.AggregatorParams) (*domain.RemoteQuote, error) {
	return s.quote, s.err
}

func (s *stubAggregator) BuildSwap(context.Context, domain.AggregatorParams) (*domain.SwapBuild, error) {
	return nil, s.err
}

func (s *stubAggregator) Routes(context.Context, int64, int64, bool) (int, error) {
	return s.routes, s.err
}

func newTestRouter(agg domain.Aggregator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logg := logger.New("test")

	rate := usecase.NewRateCalculator(usecase.NewPriceOracle())
	quotes := usecase.NewQuoteService(agg, rate, logg)
	pairs := usecase.NewPairSupportService(agg, logg)
	tracker := usecase.NewTracker(nil, logg)
	handler := NewHandler(quotes, pairs, nil, tracker, logg, false)

	r := gin.New()
	handler.RegisterRoutes(r.Group("/api/v1"))
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func ethDTO() TokenDTO {
	return TokenDTO{Symbol: "ETH", Decimals: 18, Network: "ethereum", Address: "0xC02a", ChainID: 1, Price: 3500}
}

func usdtDTO() TokenDTO {
	return TokenDTO{Symbol: "USDT", Decimals: 6, Network: "ethereum", Address: "0xdAC1", ChainID: 1, Price: 1}
}

func TestGetQuoteEndpoint(t *testing.T) {
	r := newTestRouter(&stubAggregator{
		quote: &domain.RemoteQuote{
			AmountOut:   domain.RemoteAmount{Amount: "6998130000", TokenDecimals: 6},
			PriceImpact: "0.01",
		},
	})

	w := postJSON(t, r, "/api/v1/swap/quote", QuoteRequestBody{
		FromToken:     ethDTO(),
		ToToken:       usdtDTO(),
		AmountIn:      "2",
		WalletAddress: "0xwallet",
	})

	require.Equal(t, http.StatusOK, w.Code)

	var resp QuoteResponseBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "6998.13", resp.OutputAmount)
	require.Equal(t, "remote", resp.Source)
}

func TestGetQuoteEndpointFallback(t *testing.T) {
	r := newTestRouter(&stubAggregator{err: context.DeadlineExceeded})

	w := postJSON(t, r, "/api/v1/swap/quote", QuoteRequestBody{
		FromToken:     ethDTO(),
		ToToken:       usdtDTO(),
		AmountIn:      "2",
		WalletAddress: "0xwallet",
	})

	require.Equal(t, http.StatusOK, w.Code)

	var resp QuoteResponseBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "calculated", resp.Source)
	require.Equal(t, "7000.000000", resp.OutputAmount)
}

func TestGetQuoteEndpointBadBody(t *testing.T) {
	r := newTestRouter(&stubAggregator{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/swap/quote", bytes.NewReader([]byte("{")))
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCheckPairEndpoint(t *testing.T) {
	r := newTestRouter(&stubAggregator{})

	w := postJSON(t, r, "/api/v1/swap/pair-check", PairCheckRequestBody{
		FromToken: ethDTO(),
		ToToken:   usdtDTO(),
	})

	require.Equal(t, http.StatusOK, w.Code)

	var resp PairCheckResponseBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.True(t, resp.Supported)
}

func TestCurrentTransactionEmpty(t *testing.T) {
	r := newTestRouter(&stubAggregator{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/swap/transactions/current", nil)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestListTransactionsEmpty(t *testing.T) {
	r := newTestRouter(&stubAggregator{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/swap/transactions", nil)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp TransactionsResponseBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Empty(t, resp.Transactions)
}

func TestStatusForError(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{domain.ErrValidation, http.StatusBadRequest},
		{domain.ErrInsufficientBalance, http.StatusBadRequest},
		{domain.ErrUnsupportedPair, http.StatusUnprocessableEntity},
		{domain.ErrExecutionInFlight, http.StatusConflict},
		{domain.ErrRemoteQuote, http.StatusBadGateway},
		{domain.ErrWalletRejected, http.StatusInternalServerError},
		{domain.ErrSwapReverted, http.StatusInternalServerError},
		{context.DeadlineExceeded, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, statusForError(tt.err), "error %v", tt.err)
	}
}
