package engine

import (
	"errors"
	"testing"

	"github.com/HoseaCodes/soldiers-of-wealth/internal/game"
)

func TestSetCycle_RecomputesAllMarkets(t *testing.T) {
	s := NewCycleState(DefaultMarkets(), nil)
	for _, cycle := range game.AllCycles {
		if err := s.SetCycle(cycle); err != nil {
			t.Fatalf("SetCycle(%s): unexpected error: %v", cycle, err)
		}
		for _, m := range s.Markets() {
			want := m.BaseReturn.Max + m.Modifiers[cycle]
			if m.CurrentReturn != want {
				t.Fatalf("cycle %s market %s: current return %d, want %d", cycle, m.Key, m.CurrentReturn, want)
			}
		}
	}
}

func TestSetCycle_InvalidNameLeavesStateUntouched(t *testing.T) {
	s := NewCycleState(DefaultMarkets(), nil)
	if err := s.SetCycle(game.CycleBoom); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	before := s.Returns()
	err := s.SetCycle("nonsense")
	if err == nil {
		t.Fatalf("expected error for unknown cycle name")
	}
	var ice *InvalidCycleError
	if !errors.As(err, &ice) {
		t.Fatalf("expected InvalidCycleError, got %T", err)
	}
	if s.Current != game.CycleBoom {
		t.Fatalf("current cycle changed to %s after rejected transition", s.Current)
	}
	for k, v := range s.Returns() {
		if before[k] != v {
			t.Fatalf("market %s return changed from %d to %d after rejected transition", k, before[k], v)
		}
	}
}

func fixedDraw(v float64) func() float64 {
	return func() float64 { return v }
}

func TestGenerateRandomEvent_CumulativeWeights(t *testing.T) {
	cases := []struct {
		draw float64
		want game.CycleName
	}{
		{0.15, game.CycleBoom},
		{0.20, game.CycleBoom},
		{0.50, game.CycleStable},
		{0.60, game.CycleStable},
		{0.75, game.CycleDownturn},
		{0.90, game.CycleDownturn},
		{0.95, game.CycleCrisis},
	}
	for _, tc := range cases {
		s := NewCycleState(DefaultMarkets(), fixedDraw(tc.draw))
		got := s.GenerateRandomEvent()
		if got != tc.want {
			t.Fatalf("draw %.2f: got %s, want %s", tc.draw, got, tc.want)
		}
		if s.Current != tc.want {
			t.Fatalf("draw %.2f: state holds %s, want %s", tc.draw, s.Current, tc.want)
		}
		// Derived returns must match the freshly applied cycle.
		for _, m := range s.Markets() {
			want := m.BaseReturn.Max + m.Modifiers[tc.want]
			if m.CurrentReturn != want {
				t.Fatalf("draw %.2f market %s: return %d, want %d", tc.draw, m.Key, m.CurrentReturn, want)
			}
		}
	}
}

func TestToggleAutoSimulation(t *testing.T) {
	s := NewCycleState(DefaultMarkets(), nil)
	if s.AutoSimulating() {
		t.Fatalf("auto-simulation should start disabled")
	}
	if !s.ToggleAutoSimulation() {
		t.Fatalf("first toggle should enable auto-simulation")
	}
	if s.ToggleAutoSimulation() {
		t.Fatalf("second toggle should disable auto-simulation")
	}
}

func TestResumeCycle_RestoresPersistedState(t *testing.T) {
	s := NewCycleState(DefaultMarkets(), nil)
	if err := s.SetCycle(game.CycleCrisis); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	resumed, err := ResumeCycle(DefaultMarkets(), s.Current, s.LastUpdate, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resumed.Current != game.CycleCrisis {
		t.Fatalf("resumed cycle %s, want crisis", resumed.Current)
	}
	if !resumed.LastUpdate.Equal(s.LastUpdate) {
		t.Fatalf("resumed last update %v, want %v", resumed.LastUpdate, s.LastUpdate)
	}
	for k, v := range resumed.Returns() {
		if v != s.Returns()[k] {
			t.Fatalf("resumed market %s return %d, want %d", k, v, s.Returns()[k])
		}
	}
}
