package service

import (
	"errors"
	"math/rand"
	"time"

	"github.com/HoseaCodes/soldiers-of-wealth/internal/game"
)

var (
	ErrGameNotFound      = errors.New("game not found")
	ErrGameNotInProgress = errors.New("game is not in progress")
	ErrMovesLocked       = errors.New("moves are locked; resolving current week")
	ErrPlayerNotInGame   = errors.New("player not in game")
	ErrPlayerEliminated  = errors.New("your army has been eliminated")
	ErrNotEnoughPlayers  = errors.New("need at least two players to start")
	ErrNotHost           = errors.New("only the host may do this")
	ErrAlreadyStarted    = errors.New("game already started")
)

// GameRepo is the narrow slice of the storage repository the game services
// need. Tests supply small mocks.
type GameRepo interface {
	GetGameByID(id uint) (*game.Game, error)
	UpdateGame(g *game.Game) error
	AppendActionRecord(rec *game.ActionRecord) error
	SaveEconomySnapshot(snap *game.EconomySnapshot) error
	UpdateStatsOnGameEnd(g *game.Game, resignedEmail string) error
}

// NotifyFunc pushes a game event to live subscribers (websocket hub). May be
// nil when no live feed is attached.
type NotifyFunc func(gameID uint, event string, payload any)

// Options carries the configuration shared by the game services: the market
// catalog, the optional event-weight override, per-week timing, and the
// injectable random source.
type Options struct {
	Markets      []game.Market
	EventWeights map[game.CycleName]float64
	MovesTimeout time.Duration

	StartingSoldiers int
	TotalWeeks       int

	// Draw supplies uniform [0,1) values for cycle events and combat rolls.
	// Nil selects math/rand.
	Draw   func() float64
	Notify NotifyFunc
}

func (o Options) draw() func() float64 {
	if o.Draw != nil {
		return o.Draw
	}
	return rand.Float64
}

func (o Options) notify(gameID uint, event string, payload any) {
	if o.Notify != nil {
		o.Notify(gameID, event, payload)
	}
}
