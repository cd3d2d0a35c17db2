package service

import (
	"fmt"
	"time"

	"github.com/HoseaCodes/soldiers-of-wealth/internal/dedupe"
	"github.com/HoseaCodes/soldiers-of-wealth/internal/engine"
	"github.com/HoseaCodes/soldiers-of-wealth/internal/game"
	"github.com/HoseaCodes/soldiers-of-wealth/internal/logging"
)

// SubmitMoves validates and stores a player's bundle for the current week
// and resolves the week once every standing player has submitted. Returns
// the updated game and whether the week was resolved.
//
// Re-submitting before the deadline replaces the pending bundle ("edit
// moves"); the append-only weekly action log keeps every revision.
func SubmitMoves(repo GameRepo, gameID uint, playerEmail string, bundle *game.ActionBundle, opts Options) (*game.Game, bool, error) {
	g, err := repo.GetGameByID(gameID)
	if err != nil || g == nil {
		return nil, false, ErrGameNotFound
	}
	if g.Status != game.StatusInProgress {
		return nil, false, ErrGameNotInProgress
	}
	if g.Phase != game.PhasePlanning {
		return nil, false, ErrMovesLocked
	}

	current := g.FindPlayerByEmail(playerEmail)
	if current == nil {
		return nil, false, ErrPlayerNotInGame
	}
	if current.Eliminated {
		return nil, false, ErrPlayerEliminated
	}

	// Validation failures pass through untouched so the handler can render
	// the message; nothing is stored and no resources move.
	cleaned, err := engine.ValidateAction(bundle, current.Soldiers)
	if err != nil {
		return nil, false, err
	}

	current.PendingMoves = *cleaned
	current.HasSubmittedMoves = true

	if err := repo.AppendActionRecord(&game.ActionRecord{
		GameID:      g.ID,
		Week:        g.Week,
		PlayerEmail: current.PlayerEmail,
		PlayerName:  current.PlayerName,
		Bundle:      *cleaned,
	}); err != nil {
		return nil, false, err
	}
	if err := repo.UpdateGame(g); err != nil {
		return nil, false, err
	}

	if !allStandingSubmitted(g) {
		return g, false, nil
	}

	resolved, err := ResolveWeekNow(repo, g.ID, opts)
	if err != nil {
		return nil, false, err
	}
	return resolved, true, nil
}

func allStandingSubmitted(g *game.Game) bool {
	for i := range g.Players {
		p := &g.Players[i]
		if p.Eliminated {
			continue
		}
		if !p.HasSubmittedMoves {
			return false
		}
	}
	return true
}

// ResolveWeekNow runs the weekly resolution for a game exactly once even
// when multiple triggers race (last submitter, timeout scanner). Callers
// that lose the race receive the state produced by the winner.
func ResolveWeekNow(repo GameRepo, gameID uint, opts Options) (*game.Game, error) {
	v, err, _ := dedupe.ResolveGroup.Do(fmt.Sprintf("game:%d", gameID), func() (any, error) {
		g, err := repo.GetGameByID(gameID)
		if err != nil || g == nil {
			return nil, ErrGameNotFound
		}
		if g.Status != game.StatusInProgress || g.Phase != game.PhasePlanning {
			// Another trigger already resolved this week.
			return g, nil
		}

		econ, err := engine.ResumeCycle(opts.Markets, g.CurrentCycle, g.CycleLastUpdate, opts.draw())
		if err != nil {
			return nil, err
		}
		econ.SetEventWeights(opts.EventWeights)
		econ.SetShifts(g.ReturnShifts)

		engine.ResolveWeek(g, econ, opts.draw())

		if g.Status == game.StatusFinished {
			if !g.StatsCounted {
				_ = repo.UpdateStatsOnGameEnd(g, "")
				g.StatsCounted = true
			}
			g.MovesDeadline = time.Time{}
		} else {
			g.MovesDeadline = time.Now().Add(opts.MovesTimeout)
		}

		if err := repo.UpdateGame(g); err != nil {
			return nil, err
		}

		snap := econ.Snapshot()
		if err := repo.SaveEconomySnapshot(&game.EconomySnapshot{
			GameID:  g.ID,
			Week:    g.Week,
			Cycle:   snap.Cycle,
			Returns: allocationFromReturns(snap.Returns),
		}); err != nil {
			logging.Error("failed to persist economy snapshot", err, logging.Fields{"game_id": g.ID, "week": g.Week})
		}

		opts.notify(g.ID, "week_resolved", g)
		return g, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*game.Game), nil
}
