package api

import (
	"errors"
	"net/http"
	"unicode/utf8"

	"github.com/HoseaCodes/soldiers-of-wealth/internal/constants"
	"github.com/HoseaCodes/soldiers-of-wealth/internal/game"
	"github.com/HoseaCodes/soldiers-of-wealth/internal/service"

	"github.com/gin-gonic/gin"
)

type CreateGamePayload struct {
	PlayerName  string `json:"player_name"`
	PlayerEmail string `json:"player_email"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Private     bool   `json:"private"`
}

// CreateGame creates a new game and returns IDs and join code. The creator
// becomes the first player and host.
func (h *GameHandler) CreateGame(c *gin.Context) {
	var req CreateGamePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	// Derive identity from session
	if v, ok := c.Get("userEmail"); ok {
		req.PlayerEmail, _ = v.(string)
	}
	if v, ok := c.Get("userName"); ok && req.PlayerName == "" {
		req.PlayerName, _ = v.(string)
	}

	joinCode := generateJoinCode()

	// Validate lengths
	if utf8.RuneCountInString(req.Name) > 32 {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrGameNameExceeds})
		return
	}
	if utf8.RuneCountInString(req.Description) > 256 {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrDescriptionExceeds})
		return
	}

	newGame := game.Game{
		Name:        req.Name,
		Description: req.Description,
		Private:     req.Private,
		Status:      game.StatusWaitingForPlayers,
		JoinCode:    joinCode,
		TotalWeeks:  h.opts.TotalWeeks,
		Players: []game.Player{
			{PlayerUUID: newPlayerUUID(), PlayerName: req.PlayerName, PlayerEmail: req.PlayerEmail},
		},
		Message: "Game created. Waiting for more commanders.",
	}

	// Upsert user profile (name/email)
	_ = h.repo.UpsertUser(req.PlayerEmail, req.PlayerName)

	if err := h.repo.CreateGame(&newGame); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedCreateGame})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"game_id":   newGame.ID,
		"join_code": joinCode,
	})
}

type JoinGamePayload struct {
	JoinCode    string `json:"join_code"`
	PlayerName  string `json:"player_name"`
	PlayerEmail string `json:"player_email"`
}

// JoinGame adds a player to a game via join code.
func (h *GameHandler) JoinGame(c *gin.Context) {
	var req JoinGamePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	if v, ok := c.Get("userEmail"); ok {
		req.PlayerEmail, _ = v.(string)
	}
	if v, ok := c.Get("userName"); ok && req.PlayerName == "" {
		req.PlayerName, _ = v.(string)
	}

	code := normalizeJoinCode(req.JoinCode)
	if code == "" || !joinCodeRegex.MatchString(code) {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidGameID})
		return
	}
	g, err := h.repo.FindGameByJoinCode(code)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrGameNotFound})
		return
	}

	if g.Status != game.StatusWaitingForPlayers {
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrGameAlreadyStarted})
		return
	}
	// Re-joining with the same email is a no-op.
	if g.FindPlayerByEmail(req.PlayerEmail) == nil {
		g.Players = append(g.Players, game.Player{PlayerUUID: newPlayerUUID(), PlayerName: req.PlayerName, PlayerEmail: req.PlayerEmail})
	}
	g.Message = req.PlayerName + " joined. Waiting for the host to start."

	// Upsert user profile (name/email)
	_ = h.repo.UpsertUser(req.PlayerEmail, req.PlayerName)

	if err := h.repo.UpdateGame(g); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedUpdateGame})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"game_id":   g.ID,
		"join_code": g.JoinCode,
		"message":   "Successfully joined game",
	})
}

// StartGame moves a waiting game into week one. Host only.
func (h *GameHandler) StartGame(c *gin.Context) {
	g := h.gameFromCode(c)
	if g == nil {
		return
	}
	email := sessionEmail(c)
	if email == "" {
		return
	}

	started, err := service.StartGame(h.repo, g.ID, email, h.opts)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrGameNotFound):
			c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrGameNotFound})
		case errors.Is(err, service.ErrNotHost):
			c.JSON(http.StatusForbidden, gin.H{constants.JSONKeyError: constants.ErrOnlyHostMayDoThis})
		case errors.Is(err, service.ErrNotEnoughPlayers):
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrNotEnoughPlayers})
		case errors.Is(err, service.ErrAlreadyStarted):
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrGameAlreadyStarted})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedUpdateGame})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Game started", "week": started.Week})
}

type LeaveGamePayload struct {
	// body intentionally empty; caller identity is derived from session
}

type EndGamePayload struct {
	PlayerEmail string `json:"player_email"`
}

// LeaveGame removes a player from a waiting room.
func (h *GameHandler) LeaveGame(c *gin.Context) {
	code := normalizeJoinCode(c.Param("gameCode"))
	if code == "" || !joinCodeRegex.MatchString(code) {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidGameID})
		return
	}
	var req LeaveGamePayload
	// Body is optional; derive leaving player from authenticated session
	_ = c.ShouldBindJSON(&req)
	g, err := h.repo.FindGameByJoinCode(code)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrGameNotFound})
		return
	}
	if g.Status != game.StatusWaitingForPlayers {
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrCannotLeaveAfterStart})
		return
	}
	email := sessionEmail(c)
	if email == "" {
		return
	}
	// Remove player by their email (derived from session)
	if err := h.repo.RemovePlayerByEmail(g.ID, email); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedRemovePlayer})
		return
	}
	// Reflect removal in the in-memory model to avoid re-attaching via
	// FullSaveAssociations.
	filtered := make([]game.Player, 0, len(g.Players))
	for _, p := range g.Players {
		if p.PlayerEmail != email {
			filtered = append(filtered, p)
		}
	}
	g.Players = filtered
	g.Message = "A commander left. Waiting for a new participant."
	if err := h.repo.UpdateGame(g); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedUpdateGame})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Player removed"})
}

// EndGame lets a participant resign and finishes the match for everyone.
// Resignations only increment the quitter's resignation stat; no one is
// awarded a win.
func (h *GameHandler) EndGame(c *gin.Context) {
	g := h.gameFromCode(c)
	if g == nil {
		return
	}
	email := sessionEmail(c)
	if email == "" {
		return
	}

	var req EndGamePayload
	_ = c.ShouldBindJSON(&req) // optional body; ignore errors

	loser := g.FindPlayerByEmail(email)
	if loser == nil {
		c.JSON(http.StatusForbidden, gin.H{constants.JSONKeyError: constants.ErrPlayerNotInThisGame})
		return
	}

	g.Status = game.StatusFinished
	g.Phase = game.PhaseResolved
	g.Winner = ""
	g.Message = "Commander resigned: " + loser.PlayerName

	if !g.StatsCounted {
		_ = h.repo.UpdateStatsOnGameEnd(g, loser.PlayerEmail)
		g.StatsCounted = true
	}
	if err := h.repo.UpdateGame(g); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedEndGame})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Game ended"})
}
