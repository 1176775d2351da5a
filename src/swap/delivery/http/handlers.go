package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/unikron/swapd/src/explorer"
	"github.com/unikron/swapd/src/logger"
	"github.com/unikron/swapd/src/swap/domain"
	"github.com/unikron/swapd/src/swap/usecase"
)

// Handler binds usecases + logger
type Handler struct {
	quotes   *usecase.QuoteService
	pairs    *usecase.PairSupportService
	executor *usecase.ExecutorService
	tracker  *usecase.Tracker
	logger   *logger.Logger
	testnet  bool
}

func NewHandler(
	quotes *usecase.QuoteService,
	pairs *usecase.PairSupportService,
	executor *usecase.ExecutorService,
	tracker *usecase.Tracker,
	l *logger.Logger,
	testnet bool,
) *Handler {
	return &Handler{
		quotes:   quotes,
		pairs:    pairs,
		executor: executor,
		tracker:  tracker,
		logger:   l,
		testnet:  testnet,
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/swap/quote", h.GetQuote)
	r.POST("/swap/pair-check", h.CheckPair)
	r.POST("/swap/execute", h.ExecuteSwap)
	r.GET("/swap/transactions", h.ListTransactions)
	r.GET("/swap/transactions/current", h.CurrentTransaction)
}

// GetQuote godoc
//
//	@Summary		Quote a swap
//	@Description	Resolve an output-amount quote, remote when possible with a calculated fallback
//	@Tags			swap
//	@Accept			json
//	@Produce		json
//	@Param			request	body		QuoteRequestBody	true	"Request body"
//	@Success		200	{object}	QuoteResponseBody
//	@Failure		400	{object}	object{error=string}
//	@Router			/swap/quote [post]
func (h *Handler) GetQuote(c *gin.Context) {
	ctx := c.Request.Context()
	var req QuoteRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Errorf("GetQuote err: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	quote := h.quotes.GetQuote(ctx, req.FromToken.ToToken(), req.ToToken.ToToken(), req.AmountIn, req.WalletAddress, h.testnet)
	c.JSON(http.StatusOK, fromQuote(quote))
}

// CheckPair godoc
//
//	@Summary		Check pair support
//	@Description	Report whether a token pair is swappable
//	@Tags			swap
//	@Accept			json
//	@Produce		json
//	@Param			request	body		PairCheckRequestBody	true	"Request body"
//	@Success		200	{object}	PairCheckResponseBody
//	@Failure		400	{object}	object{error=string}
//	@Router			/swap/pair-check [post]
func (h *Handler) CheckPair(c *gin.Context) {
	ctx := c.Request.Context()
	var req PairCheckRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Errorf("CheckPair err: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	supported := h.pairs.IsSupported(ctx, req.FromToken.ToToken(), req.ToToken.ToToken(), h.testnet)
	c.JSON(http.StatusOK, PairCheckResponseBody{Supported: supported})
}

// ExecuteSwap godoc
//
//	@Summary		Execute a swap
//	@Description	Run one swap attempt end to end and wait for on-chain confirmation
//	@Tags			swap
//	@Accept			json
//	@Produce		json
//	@Param			request	body		ExecuteRequestBody	true	"Request body"
//	@Success		200	{object}	ExecuteResponseBody
//	@Failure		400	{object}	object{error=string}
//	@Failure		409	{object}	object{error=string}
//	@Failure		422	{object}	object{error=string}
//	@Failure		502	{object}	object{error=string}
//	@Router			/swap/execute [post]
func (h *Handler) ExecuteSwap(c *gin.Context) {
	ctx := c.Request.Context()
	var req ExecuteRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Errorf("ExecuteSwap err: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	swapReq := req.ToSwapRequest()
	result, err := h.executor.Execute(ctx, swapReq)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, ExecuteResponseBody{
		TxHash:       result.TxHash,
		OutputAmount: result.OutputAmount,
		ExplorerURL:  explorer.TxURL(swapReq.FromToken.ResolveChainID(), result.TxHash, h.testnet),
	})
}

// ListTransactions godoc
//
//	@Summary		List tracked transactions
//	@Description	Bounded most-recent-first history of swap attempts
//	@Tags			swap
//	@Produce		json
//	@Success		200	{object}	TransactionsResponseBody
//	@Router			/swap/transactions [get]
func (h *Handler) ListTransactions(c *gin.Context) {
	history := h.tracker.History()
	out := make([]TransactionDTO, 0, len(history))
	for _, tx := range history {
		out = append(out, fromTransaction(tx, h.txExplorerURL(tx)))
	}
	c.JSON(http.StatusOK, TransactionsResponseBody{Transactions: out})
}

// CurrentTransaction godoc
//
//	@Summary		Current tracked transaction
//	@Description	The single currently tracked swap attempt, if any
//	@Tags			swap
//	@Produce		json
//	@Success		200	{object}	TransactionDTO
//	@Failure		404	{object}	object{error=string}
//	@Router			/swap/transactions/current [get]
func (h *Handler) CurrentTransaction(c *gin.Context) {
	tx := h.tracker.Current()
	if tx == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no tracked transaction"})
		return
	}
	c.JSON(http.StatusOK, fromTransaction(*tx, h.txExplorerURL(*tx)))
}

func (h *Handler) txExplorerURL(tx domain.Transaction) string {
	if tx.Hash == "" {
		return ""
	}
	return explorer.TxURL(tx.Request.FromToken.ResolveChainID(), tx.Hash, h.testnet)
}

// statusForError maps domain sentinels onto HTTP statuses.
func statusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInsufficientBalance):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUnsupportedPair):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrExecutionInFlight):
		return http.StatusConflict
	case errors.Is(err, domain.ErrRemoteQuote):
		return http.StatusBadGateway
	case errors.Is(err, domain.ErrWalletRejected),
		errors.Is(err, domain.ErrApprovalFailed),
		errors.Is(err, domain.ErrSwapReverted):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
