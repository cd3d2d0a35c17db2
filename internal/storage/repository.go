package storage

import (
	"time"

	"github.com/HoseaCodes/soldiers-of-wealth/internal/game"
)

type Repository interface {
	GetPublicGames() ([]game.Game, error)
	CreateGame(g *game.Game) error
	GetGameByID(id uint) (*game.Game, error)
	FindGameByJoinCode(code string) (*game.Game, error)
	UpdateGame(g *game.Game) error
	RemovePlayerByEmail(gameID uint, email string) error

	// AppendActionRecord appends one row to the weekly submission log.
	// Rows are immutable; edit-moves appends a replacement instead of
	// updating in place.
	AppendActionRecord(rec *game.ActionRecord) error
	// LatestActionRecords returns the effective (most recent) record per
	// player for the given game week.
	LatestActionRecords(gameID uint, week int) ([]game.ActionRecord, error)

	SaveEconomySnapshot(snap *game.EconomySnapshot) error
	GetEconomySnapshots(gameID uint) ([]game.EconomySnapshot, error)

	UpsertUser(email, name string) error
	GetStatsByEmail(email string) (*game.User, error)
	SaveUser(u *game.User) error
	UpdateStatsOnGameEnd(g *game.Game, resignedEmail string) error
	// Leaderboard
	GetTopPlayers(limit int) ([]game.User, error)

	// FindTimedOutGames returns games that are currently in-progress, in the
	// planning phase and whose moves deadline is at or before the provided
	// time. The caller decides how to resolve them (auto-submitting holds
	// for absent players).
	FindTimedOutGames(now time.Time) ([]game.Game, error)
	// FindAutoSimGames returns in-progress games with auto-simulation
	// enabled whose last cycle update is older than the week duration.
	FindAutoSimGames(now time.Time, weekDuration time.Duration) ([]game.Game, error)
}
