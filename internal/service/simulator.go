package service

import (
	"time"

	"github.com/HoseaCodes/soldiers-of-wealth/internal/engine"
	"github.com/HoseaCodes/soldiers-of-wealth/internal/game"
	"github.com/HoseaCodes/soldiers-of-wealth/internal/logging"
	"github.com/HoseaCodes/soldiers-of-wealth/internal/storage"
)

// StartBackgroundScanners launches the two periodic loops that keep games
// moving without player input: the deadline scanner (auto-holds absent
// players and resolves the week) and the auto-simulation ticker (rolls a
// random cycle event for games that enabled it, one per simulated week).
// Both loops run for the life of the process.
func StartBackgroundScanners(repo storage.Repository, opts Options, weekDuration time.Duration, scanEvery time.Duration) {
	go func() {
		ticker := time.NewTicker(scanEvery)
		defer ticker.Stop()
		for range ticker.C {
			scanTimedOut(repo, opts)
			scanAutoSim(repo, opts, weekDuration)
		}
	}()
}

func scanTimedOut(repo storage.Repository, opts Options) {
	games, err := repo.FindTimedOutGames(time.Now())
	if err != nil {
		logging.Error("timeout scanner failed", err, nil)
		return
	}
	for i := range games {
		gg, err := repo.GetGameByID(games[i].ID)
		if err != nil {
			continue
		}
		if err := HandleTimedOutGame(repo, gg, opts); err != nil {
			logging.Error("failed to resolve timed-out game", err, logging.Fields{"game_id": gg.ID})
		}
	}
}

// scanAutoSim fires one random cycle event per elapsed simulated week for
// every game with auto-simulation enabled. The event only moves the economy;
// player moves still settle at week resolution.
func scanAutoSim(repo storage.Repository, opts Options, weekDuration time.Duration) {
	games, err := repo.FindAutoSimGames(time.Now(), weekDuration)
	if err != nil {
		logging.Error("auto-sim scanner failed", err, nil)
		return
	}
	for i := range games {
		g, err := repo.GetGameByID(games[i].ID)
		if err != nil {
			continue
		}
		econ, err := engine.ResumeCycle(opts.Markets, g.CurrentCycle, g.CycleLastUpdate, opts.draw())
		if err != nil {
			logging.Error("auto-sim failed to resume cycle", err, logging.Fields{"game_id": g.ID})
			continue
		}
		econ.SetEventWeights(opts.EventWeights)
		econ.SetShifts(g.ReturnShifts)

		cycle := econ.GenerateRandomEvent()
		g.CurrentCycle = econ.Current
		g.CycleLastUpdate = econ.LastUpdate
		if err := repo.UpdateGame(g); err != nil {
			logging.Error("auto-sim failed to store cycle", err, logging.Fields{"game_id": g.ID})
			continue
		}

		snap := econ.Snapshot()
		_ = repo.SaveEconomySnapshot(&game.EconomySnapshot{
			GameID:  g.ID,
			Week:    g.Week,
			Cycle:   snap.Cycle,
			Returns: allocationFromReturns(snap.Returns),
		})

		logging.Info("auto-sim cycle event", logging.Fields{"game_id": g.ID, "cycle": string(cycle)})
		opts.notify(g.ID, "cycle_changed", snap)
	}
}
