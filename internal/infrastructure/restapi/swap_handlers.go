package restapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"swap_desk/internal/app/service"
	"swap_desk/internal/domain/entity"
	"swap_desk/internal/infrastructure/wallet"

	"github.com/gin-gonic/gin"
)

// SwapController is the slice of the swap service the handlers drive.
type SwapController interface {
	Snapshot() entity.SwapIntent
	SelectToken(role entity.Role, name string) error
	InvertDirection()
	SetAmountPreset(preset entity.AmountPreset) error
	FilterTokens(term string) []entity.Token
	ConnectWallet(ctx context.Context) (string, error)
	ExecuteAggregation(ctx context.Context, amount string) (entity.RouteResult, error)
}

// SwapHandler serves the swap form state over HTTP.
type SwapHandler struct {
	controller SwapController
	startedAt  time.Time
}

// NewSwapHandler creates a new SwapHandler.
func NewSwapHandler(controller SwapController) *SwapHandler {
	return &SwapHandler{controller: controller, startedAt: time.Now()}
}

func ok(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

func fail(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "error": message})
}

// HealthHandler handles GET /api/health.
func (h *SwapHandler) HealthHandler(c *gin.Context) {
	ok(c, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UnixMilli(),
		"uptimeSec": int64(time.Since(h.startedAt).Seconds()),
	})
}

// StatusHandler handles GET /api/status.
func (h *SwapHandler) StatusHandler(c *gin.Context) {
	intent := h.controller.Snapshot()
	ok(c, gin.H{
		"walletConnected": intent.WalletAddress != "",
		"inRoute":         intent.InRoute,
		"routeState":      intent.Route.Kind,
	})
}

// TokensHandler handles GET /api/tokens with an optional search filter.
func (h *SwapHandler) TokensHandler(c *gin.Context) {
	tokens := h.controller.FilterTokens(c.Query("search"))
	ok(c, gin.H{"tokens": tokens})
}

// SwapStateHandler handles GET /api/swap.
func (h *SwapHandler) SwapStateHandler(c *gin.Context) {
	ok(c, h.controller.Snapshot())
}

type selectTokenRequest struct {
	Role string `json:"role" binding:"required"`
	Name string `json:"name" binding:"required"`
}

// SelectTokenHandler handles POST /api/swap/select.
func (h *SwapHandler) SelectTokenHandler(c *gin.Context) {
	var req selectTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "role and name are required")
		return
	}
	if err := h.controller.SelectToken(entity.Role(req.Role), req.Name); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	ok(c, h.controller.Snapshot())
}

// InvertHandler handles POST /api/swap/invert.
func (h *SwapHandler) InvertHandler(c *gin.Context) {
	h.controller.InvertDirection()
	ok(c, h.controller.Snapshot())
}

type presetRequest struct {
	Preset int `json:"preset" binding:"required"`
}

// PresetHandler handles POST /api/swap/preset.
func (h *SwapHandler) PresetHandler(c *gin.Context) {
	var req presetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "preset is required")
		return
	}
	if err := h.controller.SetAmountPreset(entity.AmountPreset(req.Preset)); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	ok(c, h.controller.Snapshot())
}

// ConnectWalletHandler handles POST /api/wallet/connect. A missing wallet
// is the one failure surfaced as a blocking notice.
func (h *SwapHandler) ConnectWalletHandler(c *gin.Context) {
	address, err := h.controller.ConnectWallet(c.Request.Context())
	if err != nil {
		if errors.Is(err, wallet.ErrNoWalletFound) {
			fail(c, http.StatusServiceUnavailable, "No wallet found. Please configure a signing key.")
			return
		}
		fail(c, http.StatusBadGateway, err.Error())
		return
	}
	ok(c, gin.H{"address": address, "swap": h.controller.Snapshot()})
}

type aggregateRequest struct {
	Amount string `json:"amount"`
}

// AggregateHandler handles POST /api/aggregate.
func (h *SwapHandler) AggregateHandler(c *gin.Context) {
	var req aggregateRequest
	// Body is optional: with no explicit amount the preset derivation applies.
	_ = c.ShouldBindJSON(&req)

	route, err := h.controller.ExecuteAggregation(c.Request.Context(), req.Amount)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSameToken), errors.Is(err, service.ErrNoAmount), errors.Is(err, service.ErrNotConnected):
			fail(c, http.StatusBadRequest, err.Error())
		default:
			fail(c, http.StatusBadGateway, err.Error())
		}
		return
	}
	ok(c, gin.H{"route": route})
}
