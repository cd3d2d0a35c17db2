package service

import (
	"time"

	"github.com/HoseaCodes/soldiers-of-wealth/internal/engine"
	"github.com/HoseaCodes/soldiers-of-wealth/internal/game"
)

// EconomyView is the current economy state returned to clients: the cycle
// plus the full catalog with derived returns.
type EconomyView struct {
	Cycle        game.CycleName `json:"cycle"`
	LastUpdate   string         `json:"last_update"`
	AutoSimulate bool           `json:"auto_simulate"`
	Markets      []game.Market  `json:"markets"`
}

// GetEconomy rebuilds the cycle state persisted on the game row.
func GetEconomy(repo GameRepo, gameID uint, opts Options) (*EconomyView, error) {
	g, err := repo.GetGameByID(gameID)
	if err != nil || g == nil {
		return nil, ErrGameNotFound
	}
	econ, err := engine.ResumeCycle(opts.Markets, g.CurrentCycle, g.CycleLastUpdate, opts.draw())
	if err != nil {
		return nil, err
	}
	econ.SetShifts(g.ReturnShifts)
	return &EconomyView{
		Cycle:        econ.Current,
		LastUpdate:   econ.LastUpdate.UTC().Format(time.RFC3339),
		AutoSimulate: g.AutoSimulate,
		Markets:      econ.Markets(),
	}, nil
}

// SetCycle applies an explicit (host-selected) cycle transition. An unknown
// cycle name is rejected by the engine with an InvalidCycleError and nothing
// is persisted.
func SetCycle(repo GameRepo, gameID uint, hostEmail string, cycle game.CycleName, opts Options) (*EconomyView, error) {
	return applyCycleChange(repo, gameID, hostEmail, opts, func(econ *engine.CycleState) error {
		return econ.SetCycle(cycle)
	})
}

// TriggerRandomEvent rolls the weighted cycle event on demand (host action).
func TriggerRandomEvent(repo GameRepo, gameID uint, hostEmail string, opts Options) (*EconomyView, error) {
	return applyCycleChange(repo, gameID, hostEmail, opts, func(econ *engine.CycleState) error {
		econ.GenerateRandomEvent()
		return nil
	})
}

func applyCycleChange(repo GameRepo, gameID uint, hostEmail string, opts Options, mutate func(*engine.CycleState) error) (*EconomyView, error) {
	g, err := repo.GetGameByID(gameID)
	if err != nil || g == nil {
		return nil, ErrGameNotFound
	}
	if g.Status != game.StatusInProgress {
		return nil, ErrGameNotInProgress
	}
	if g.HostEmail() != hostEmail {
		return nil, ErrNotHost
	}

	econ, err := engine.ResumeCycle(opts.Markets, g.CurrentCycle, g.CycleLastUpdate, opts.draw())
	if err != nil {
		return nil, err
	}
	econ.SetEventWeights(opts.EventWeights)
	econ.SetShifts(g.ReturnShifts)

	if err := mutate(econ); err != nil {
		return nil, err
	}

	g.CurrentCycle = econ.Current
	g.CycleLastUpdate = econ.LastUpdate
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
	opts.notify(g.ID, "cycle_changed", snap)

	return &EconomyView{
		Cycle:        econ.Current,
		LastUpdate:   econ.LastUpdate.UTC().Format(time.RFC3339),
		AutoSimulate: g.AutoSimulate,
		Markets:      econ.Markets(),
	}, nil
}

// ToggleAutoSimulation flips the per-game auto-simulation flag and returns
// the new value. The background ticker picks the game up on its next pass.
func ToggleAutoSimulation(repo GameRepo, gameID uint, hostEmail string) (bool, error) {
	g, err := repo.GetGameByID(gameID)
	if err != nil || g == nil {
		return false, ErrGameNotFound
	}
	if g.Status != game.StatusInProgress {
		return false, ErrGameNotInProgress
	}
	if g.HostEmail() != hostEmail {
		return false, ErrNotHost
	}
	g.AutoSimulate = !g.AutoSimulate
	if err := repo.UpdateGame(g); err != nil {
		return false, err
	}
	return g.AutoSimulate, nil
}

// PreviewReturns computes the projected outcome of committing amount to each
// market under the current cycle. Pure read; used by the deployment screen.
func PreviewReturns(repo GameRepo, gameID uint, amount int, opts Options) (map[game.MarketKey]int, error) {
	g, err := repo.GetGameByID(gameID)
	if err != nil || g == nil {
		return nil, ErrGameNotFound
	}
	econ, err := engine.ResumeCycle(opts.Markets, g.CurrentCycle, g.CycleLastUpdate, opts.draw())
	if err != nil {
		return nil, err
	}
	econ.SetShifts(g.ReturnShifts)
	out := make(map[game.MarketKey]int)
	for _, m := range econ.Markets() {
		out[m.Key] = engine.PotentialReturn(amount, m.CurrentReturn)
	}
	return out, nil
}
