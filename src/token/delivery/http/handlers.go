// Package http provides HTTP handlers for token discovery.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/unikron/swapd/src/logger"
	"github.com/unikron/swapd/src/swap/domain"
	"github.com/unikron/swapd/src/token/usecase"
)

// Handler binds usecase + logger
type Handler struct {
	service *usecase.Service
	logger  *logger.Logger
}

func NewHandler(s *usecase.Service, l *logger.Logger) *Handler {
	return &Handler{service: s, logger: l}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/tokens", h.ListTokens)
	r.GET("/networks", h.ListNetworks)
}

// TokensResponseBody lists selectable tokens
// swagger:model TokensResponseBody
type TokensResponseBody struct {
	Tokens []domain.Token `json:"tokens"`
}

// NetworksResponseBody lists known networks
// swagger:model NetworksResponseBody
type NetworksResponseBody struct {
	Networks        []domain.Network `json:"networks"`
	DefaultSlippage float64          `json:"default_slippage"`
	SlippageOptions []float64        `json:"slippage_options"`
}

// ListTokens godoc
//
//	@Summary		List tokens
//	@Description	Tokens selectable on a network, with USD reference prices
//	@Tags			token
//	@Produce		json
//	@Param			network	query		string	true	"Network identifier"	example(ethereum)
//	@Success		200	{object}	TokensResponseBody
//	@Failure		400	{object}	object{error=string}
//	@Router			/tokens [get]
func (h *Handler) ListTokens(c *gin.Context) {
	ctx := c.Request.Context()
	network := c.Query("network")
	if network == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "network is required"})
		return
	}

	tokens := h.service.ListTokens(ctx, network)
	if tokens == nil {
		tokens = []domain.Token{}
	}
	c.JSON(http.StatusOK, TokensResponseBody{Tokens: tokens})
}

// ListNetworks godoc
//
//	@Summary		List networks
//	@Description	Known networks plus the slippage defaults clients should offer
//	@Tags			token
//	@Produce		json
//	@Success		200	{object}	NetworksResponseBody
//	@Router			/networks [get]
func (h *Handler) ListNetworks(c *gin.Context) {
	c.JSON(http.StatusOK, NetworksResponseBody{
		Networks:        h.service.Networks(),
		DefaultSlippage: domain.DefaultSlippagePct,
		SlippageOptions: domain.SlippageOptions,
	})
}
