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

// SubmitMoves stores (or replaces) a player's move bundle for the current
// week. When the last standing player submits, the week resolves before the
// response is written.
func (h *GameHandler) SubmitMoves(c *gin.Context) {
	g := h.gameFromCode(c)
	if g == nil {
		return
	}
	email := sessionEmail(c)
	if email == "" {
		return
	}

	var bundle game.ActionBundle
	if err := c.ShouldBindJSON(&bundle); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}

	g2, resolved, err := service.SubmitMoves(h.repo, g.ID, email, &bundle, h.opts)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrGameNotFound):
			c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrGameNotFound})
		case errors.Is(err, service.ErrGameNotInProgress):
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrGameNotInProgress})
		case errors.Is(err, service.ErrMovesLocked):
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrMovesLockedResolving})
		case errors.Is(err, service.ErrPlayerNotInGame):
			c.JSON(http.StatusForbidden, gin.H{constants.JSONKeyError: constants.ErrPlayerNotInThisGame})
		case errors.Is(err, service.ErrPlayerEliminated):
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: err.Error()})
		case isValidationError(err):
			c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedStoreMoves})
		}
		return
	}

	if resolved {
		c.JSON(http.StatusOK, gin.H{"message": "Week resolved", "week": g2.Week})
	} else {
		c.JSON(http.StatusOK, gin.H{"message": "Moves stored. Waiting for the other commanders."})
	}
}

// GetWeekMoves returns the effective (latest) submission per player for the
// requested week, defaulting to the current one. Emails never leave the
// server; records are keyed by player name.
func (h *GameHandler) GetWeekMoves(c *gin.Context) {
	g := h.gameFromCode(c)
	if g == nil {
		return
	}
	week := g.Week
	if s := c.Query("week"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			week = n
		}
	}
	records, err := h.repo.LatestActionRecords(g.ID, week)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchGames})
		return
	}
	out, err := MarshalForContext(c, records)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedEncodeGames})
		return
	}
	c.JSON(http.StatusOK, gin.H{"week": week, "moves": out})
}

// isValidationError reports whether err came from move validation and is
// safe to echo back to the client verbatim.
func isValidationError(err error) bool {
	var amountErr *engine.InvalidAmountError
	var resErr *engine.InsufficientResourcesError
	var forcesErr *engine.InsufficientForcesError
	switch {
	case errors.Is(err, engine.ErrMissingAction),
		errors.Is(err, engine.ErrMissingMarket),
		errors.Is(err, engine.ErrMissingOperationType),
		errors.Is(err, engine.ErrMissingTarget),
		errors.Is(err, engine.ErrInvalidStructure):
		return true
	case errors.As(err, &amountErr), errors.As(err, &resErr), errors.As(err, &forcesErr):
		return true
	}
	return false
}
