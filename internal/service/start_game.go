package service

import (
	"time"

	"github.com/HoseaCodes/soldiers-of-wealth/internal/engine"
	"github.com/HoseaCodes/soldiers-of-wealth/internal/game"
)

// StartGame moves a lobby into week 1. Every player is outfitted with the
// configured starting pool and a Moderate defense; the economy opens in the
// stable cycle and the opening snapshot is persisted so the history chart
// has a week-zero point.
func StartGame(repo GameRepo, gameID uint, hostEmail string, opts Options) (*game.Game, error) {
	g, err := repo.GetGameByID(gameID)
	if err != nil || g == nil {
		return nil, ErrGameNotFound
	}
	if g.Status == game.StatusInProgress {
		return nil, ErrAlreadyStarted
	}
	if g.Status != game.StatusWaitingForPlayers {
		return nil, ErrGameNotInProgress
	}
	if g.HostEmail() != hostEmail {
		return nil, ErrNotHost
	}
	if len(g.Players) < 2 {
		return nil, ErrNotEnoughPlayers
	}

	econ := engine.NewCycleState(opts.Markets, opts.draw())
	econ.SetEventWeights(opts.EventWeights)

	g.Status = game.StatusInProgress
	g.Phase = game.PhasePlanning
	g.Week = 1
	g.TotalWeeks = opts.TotalWeeks
	g.CurrentCycle = econ.Current
	g.CycleLastUpdate = econ.LastUpdate
	g.MovesDeadline = time.Now().Add(opts.MovesTimeout)
	g.Message = "Week 1: plan your moves."

	for i := range g.Players {
		p := &g.Players[i]
		p.Soldiers = opts.StartingSoldiers
		p.Defense = game.DefenseModerate
		p.Investments = game.Allocation{}
		p.HasSubmittedMoves = false
		p.PendingMoves = game.ActionBundle{}
		p.Eliminated = false
	}

	if err := repo.UpdateGame(g); err != nil {
		return nil, err
	}

	snap := econ.Snapshot()
	_ = repo.SaveEconomySnapshot(&game.EconomySnapshot{
		GameID:  g.ID,
		Week:    g.Week,
		Cycle:   snap.Cycle,
		Returns: allocationFromReturns(snap.Returns),
	})

	opts.notify(g.ID, "game_started", g)
	return g, nil
}

func allocationFromReturns(returns map[game.MarketKey]int) game.Allocation {
	out := make(game.Allocation, len(returns))
	for k, v := range returns {
		out[k] = v
	}
	return out
}
