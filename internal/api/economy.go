package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/HoseaCodes/soldiers-of-wealth/internal/constants"
	"github.com/HoseaCodes/soldiers-of-wealth/internal/engine"
	"github.com/HoseaCodes/soldiers-of-wealth/internal/game"
	"github.com/HoseaCodes/soldiers-of-wealth/internal/service"

	"github.com/gin-gonic/gin"
)

// GetEconomy returns the game's current cycle and per-market returns.
func (h *GameHandler) GetEconomy(c *gin.Context) {
	g := h.gameFromCode(c)
	if g == nil {
		return
	}
	view, err := service.GetEconomy(h.repo, g.ID, h.opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedLoadEconomy})
		return
	}
	c.JSON(http.StatusOK, view)
}

// GetEconomyHistory returns the per-week snapshots recorded for the game.
func (h *GameHandler) GetEconomyHistory(c *gin.Context) {
	g := h.gameFromCode(c)
	if g == nil {
		return
	}
	snaps, err := h.repo.GetEconomySnapshots(g.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedLoadEconomy})
		return
	}
	c.JSON(http.StatusOK, snaps)
}

type SetCyclePayload struct {
	Cycle string `json:"cycle"`
}

// SetCycle forces the game's economic cycle. Host only.
func (h *GameHandler) SetCycle(c *gin.Context) {
	g := h.gameFromCode(c)
	if g == nil {
		return
	}
	email := sessionEmail(c)
	if email == "" {
		return
	}
	var req SetCyclePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}

	view, err := service.SetCycle(h.repo, g.ID, email, game.CycleName(req.Cycle), h.opts)
	if err != nil {
		var cycleErr *engine.InvalidCycleError
		switch {
		case errors.As(err, &cycleErr):
			c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: err.Error()})
		case errors.Is(err, service.ErrNotHost):
			c.JSON(http.StatusForbidden, gin.H{constants.JSONKeyError: constants.ErrOnlyHostMayDoThis})
		case errors.Is(err, service.ErrGameNotFound):
			c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrGameNotFound})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedUpdateGame})
		}
		return
	}
	c.JSON(http.StatusOK, view)
}

// TriggerRandomEvent rolls a new cycle using the configured weights. Host
// only.
func (h *GameHandler) TriggerRandomEvent(c *gin.Context) {
	g := h.gameFromCode(c)
	if g == nil {
		return
	}
	email := sessionEmail(c)
	if email == "" {
		return
	}
	view, err := service.TriggerRandomEvent(h.repo, g.ID, email, h.opts)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotHost):
			c.JSON(http.StatusForbidden, gin.H{constants.JSONKeyError: constants.ErrOnlyHostMayDoThis})
		case errors.Is(err, service.ErrGameNotFound):
			c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrGameNotFound})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedUpdateGame})
		}
		return
	}
	c.JSON(http.StatusOK, view)
}

// ToggleAutoSimulation flips the automatic weekly cycle roll for the game.
// Host only.
func (h *GameHandler) ToggleAutoSimulation(c *gin.Context) {
	g := h.gameFromCode(c)
	if g == nil {
		return
	}
	email := sessionEmail(c)
	if email == "" {
		return
	}
	enabled, err := service.ToggleAutoSimulation(h.repo, g.ID, email)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotHost):
			c.JSON(http.StatusForbidden, gin.H{constants.JSONKeyError: constants.ErrOnlyHostMayDoThis})
		case errors.Is(err, service.ErrGameNotFound):
			c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrGameNotFound})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedUpdateGame})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"auto_simulate": enabled})
}

// PreviewReturns computes what an investment of ?amount=N would pay out in
// each market under the current cycle.
func (h *GameHandler) PreviewReturns(c *gin.Context) {
	g := h.gameFromCode(c)
	if g == nil {
		return
	}
	amount, err := strconv.Atoi(c.Query("amount"))
	if err != nil || amount <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	returns, err := service.PreviewReturns(h.repo, g.ID, amount, h.opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedLoadEconomy})
		return
	}
	c.JSON(http.StatusOK, gin.H{"amount": amount, "returns": returns})
}

// LiveFeed upgrades the connection to a websocket subscribed to the game's
// event stream.
func (h *GameHandler) LiveFeed(c *gin.Context) {
	if h.hub == nil {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: "live feed disabled"})
		return
	}
	g := h.gameFromCode(c)
	if g == nil {
		return
	}
	h.hub.ServeWS(g.ID, c.Writer, c.Request)
}
