package api

import (
	"net/http"

	"github.com/HoseaCodes/soldiers-of-wealth/internal/constants"
	"github.com/HoseaCodes/soldiers-of-wealth/internal/game"
	"github.com/HoseaCodes/soldiers-of-wealth/internal/live"
	"github.com/HoseaCodes/soldiers-of-wealth/internal/service"
	"github.com/HoseaCodes/soldiers-of-wealth/internal/storage"
	"github.com/gin-gonic/gin"
)

// GameHandler groups all game-related HTTP handlers.
type GameHandler struct {
	repo storage.Repository
	opts service.Options
	hub  *live.Hub
}

// NewGameHandler creates a new GameHandler with the given repository, the
// shared game options and an optional live hub (nil disables the live feed).
func NewGameHandler(repo storage.Repository, opts service.Options, hub *live.Hub) *GameHandler {
	return &GameHandler{repo: repo, opts: opts, hub: hub}
}

// gameFromCode resolves the :gameCode path parameter to a fully loaded game.
// On failure it writes the error response and returns nil.
func (h *GameHandler) gameFromCode(c *gin.Context) *game.Game {
	code := normalizeJoinCode(c.Param("gameCode"))
	if code == "" || !joinCodeRegex.MatchString(code) {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidGameID})
		return nil
	}
	short, err := h.repo.FindGameByJoinCode(code)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrGameNotFound})
		return nil
	}
	g, err := h.repo.GetGameByID(short.ID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrGameNotFound})
		return nil
	}
	return g
}

// sessionEmail returns the authenticated email or writes a 401 and returns "".
func sessionEmail(c *gin.Context) string {
	v, _ := c.Get("userEmail")
	email, _ := v.(string)
	if email == "" {
		c.JSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrAuthRequired})
	}
	return email
}
