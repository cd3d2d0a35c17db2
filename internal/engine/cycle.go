package engine

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/HoseaCodes/soldiers-of-wealth/internal/game"
)

// InvalidCycleError reports an unrecognized cycle name passed to SetCycle.
type InvalidCycleError struct {
	Name game.CycleName
}

func (e *InvalidCycleError) Error() string {
	return fmt.Sprintf("unknown economic cycle %q", string(e.Name))
}

type cycleWeight struct {
	cycle  game.CycleName
	weight float64
}

// cycleWeights is the fixed discrete distribution used by random events.
// The values sum to 1.0 and must not be rebalanced without retuning the
// market modifier tables with them.
var cycleWeights = []cycleWeight{
	{game.CycleBoom, 0.20},
	{game.CycleStable, 0.40},
	{game.CycleDownturn, 0.30},
	{game.CycleCrisis, 0.10},
}

// CycleState owns the current economic cycle and the derived return figures
// for all markets. It is an explicitly-owned object: only its own operations
// mutate it, and calculators take derived values as plain parameters instead
// of reaching into it.
//
// CycleState is not safe for concurrent use; callers serialize access per
// game (the service layer operates on one game at a time).
type CycleState struct {
	Current    game.CycleName
	LastUpdate time.Time

	markets map[game.MarketKey]*game.Market
	order   []game.MarketKey

	// shifts are manipulation drags layered on the cycle-derived returns.
	// They survive cycle transitions; only SetShifts replaces them.
	shifts map[game.MarketKey]int

	autoSimulate bool

	weights []cycleWeight
	draw    func() float64
	now     func() time.Time
}

// NewCycleState builds the session economy from a market catalog. The
// initial cycle is stable and every market's current return is computed for
// it. The draw func is the injectable uniform-[0,1) source used by
// GenerateRandomEvent; pass nil to use math/rand.
func NewCycleState(catalog []game.Market, draw func() float64) *CycleState {
	if draw == nil {
		draw = rand.Float64
	}
	s := &CycleState{
		Current: game.CycleStable,
		markets: make(map[game.MarketKey]*game.Market, len(catalog)),
		order:   make([]game.MarketKey, 0, len(catalog)),
		weights: cycleWeights,
		draw:    draw,
		now:     time.Now,
	}
	for _, m := range catalog {
		mm := m.Clone()
		s.markets[mm.Key] = &mm
		s.order = append(s.order, mm.Key)
	}
	s.recompute(s.Current)
	s.LastUpdate = s.now()
	return s
}

// ResumeCycle restores a cycle state persisted on a game row.
func ResumeCycle(catalog []game.Market, current game.CycleName, lastUpdate time.Time, draw func() float64) (*CycleState, error) {
	s := NewCycleState(catalog, draw)
	if current != "" {
		if err := s.SetCycle(current); err != nil {
			return nil, err
		}
	}
	if !lastUpdate.IsZero() {
		s.LastUpdate = lastUpdate
	}
	return s, nil
}

// SetCycle transitions to the named cycle and recomputes every market's
// current return in the same step. An unknown name leaves the state fully
// unchanged and returns an InvalidCycleError; the recomputation never
// applies partially because validation happens before any mutation.
func (s *CycleState) SetCycle(name game.CycleName) error {
	if !name.Valid() {
		return &InvalidCycleError{Name: name}
	}
	s.Current = name
	s.LastUpdate = s.now()
	s.recompute(name)
	return nil
}

func (s *CycleState) recompute(cycle game.CycleName) {
	for k, m := range s.markets {
		m.CurrentReturn = m.BaseReturn.Max + m.Modifiers[cycle] + s.shifts[k]
	}
}

// SetShifts replaces the per-market return shifts (market manipulation
// drags persisted on the game row) and recomputes every market so the
// derived returns include them. A nil or empty map clears all shifts.
func (s *CycleState) SetShifts(shifts map[game.MarketKey]int) {
	s.shifts = make(map[game.MarketKey]int, len(shifts))
	for k, v := range shifts {
		if s.markets[k] != nil && v != 0 {
			s.shifts[k] = v
		}
	}
	s.recompute(s.Current)
}

// GenerateRandomEvent draws the next cycle from the fixed distribution
// (boom 0.20, stable 0.40, downturn 0.30, crisis 0.10) using one uniform
// draw against cumulative weights, then applies it via SetCycle. Returns the
// chosen cycle. Safe to trigger externally at any time; each invocation runs
// to completion before another can observe the state.
func (s *CycleState) GenerateRandomEvent() game.CycleName {
	u := s.draw()
	cumulative := 0.0
	chosen := s.weights[len(s.weights)-1].cycle
	for _, cw := range s.weights {
		cumulative += cw.weight
		if u <= cumulative {
			chosen = cw.cycle
			break
		}
	}
	// chosen is always valid, SetCycle cannot fail here
	_ = s.SetCycle(chosen)
	return chosen
}

// SetEventWeights replaces the random-event distribution (config override).
// The map must cover every cycle and sum to 1.0; the config loader validates
// that before it gets here. Table order follows game.AllCycles so cumulative
// sampling stays deterministic.
func (s *CycleState) SetEventWeights(weights map[game.CycleName]float64) {
	if len(weights) == 0 {
		return
	}
	table := make([]cycleWeight, 0, len(game.AllCycles))
	for _, cycle := range game.AllCycles {
		table = append(table, cycleWeight{cycle: cycle, weight: weights[cycle]})
	}
	s.weights = table
}

// ToggleAutoSimulation flips the auto-simulation flag and returns the new
// value. Scheduling the periodic GenerateRandomEvent firing is the service
// layer's concern; the flag only records intent.
func (s *CycleState) ToggleAutoSimulation() bool {
	s.autoSimulate = !s.autoSimulate
	return s.autoSimulate
}

// AutoSimulating reports whether auto-simulation is enabled.
func (s *CycleState) AutoSimulating() bool { return s.autoSimulate }

// Market returns the catalog entry for the key, or nil.
func (s *CycleState) Market(key game.MarketKey) *game.Market {
	return s.markets[key]
}

// Markets returns the catalog in its configured order.
func (s *CycleState) Markets() []game.Market {
	out := make([]game.Market, 0, len(s.order))
	for _, k := range s.order {
		out = append(out, *s.markets[k])
	}
	return out
}

// Returns maps every market key to its current return percentage.
func (s *CycleState) Returns() map[game.MarketKey]int {
	out := make(map[game.MarketKey]int, len(s.markets))
	for k, m := range s.markets {
		out[k] = m.CurrentReturn
	}
	return out
}

// Snapshot captures the derived economy state for persistence.
func (s *CycleState) Snapshot() game.EconomySnapshotData {
	return game.EconomySnapshotData{
		Cycle:      s.Current,
		Returns:    s.Returns(),
		LastUpdate: s.LastUpdate,
	}
}
