package service

import (
	"errors"
	"testing"

	"github.com/HoseaCodes/soldiers-of-wealth/internal/engine"
	"github.com/HoseaCodes/soldiers-of-wealth/internal/game"
)

func TestSetCycle_HostOnlyAndPersists(t *testing.T) {
	mr, g := inProgressGame(31)
	opts := testOptions(0.50)

	if _, err := SetCycle(mr, 31, "bob@example.com", game.CycleBoom, opts); !errors.Is(err, ErrNotHost) {
		t.Fatalf("non-host: got %v, want ErrNotHost", err)
	}

	view, err := SetCycle(mr, 31, "ada@example.com", game.CycleBoom, opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.Cycle != game.CycleBoom {
		t.Fatalf("view cycle = %s, want boom", view.Cycle)
	}
	if g.CurrentCycle != game.CycleBoom {
		t.Fatalf("game row should persist the new cycle, got %s", g.CurrentCycle)
	}
	if len(mr.snapshots) != 1 {
		t.Fatalf("expected a snapshot per transition, got %d", len(mr.snapshots))
	}
	// Derived returns in the view must match boom modifiers.
	for _, m := range view.Markets {
		want := m.BaseReturn.Max + m.Modifiers[game.CycleBoom]
		if m.CurrentReturn != want {
			t.Fatalf("market %s return %d, want %d", m.Key, m.CurrentReturn, want)
		}
	}
}

func TestSetCycle_InvalidNamePersistsNothing(t *testing.T) {
	mr, g := inProgressGame(32)
	opts := testOptions(0.50)

	_, err := SetCycle(mr, 32, "ada@example.com", "hyperinflation", opts)
	var ice *engine.InvalidCycleError
	if !errors.As(err, &ice) {
		t.Fatalf("expected InvalidCycleError, got %v", err)
	}
	if g.CurrentCycle != "" {
		t.Fatalf("rejected transition must not persist a cycle, got %s", g.CurrentCycle)
	}
	if len(mr.snapshots) != 0 {
		t.Fatalf("rejected transition must not snapshot")
	}
}

func TestToggleAutoSimulation_Roundtrip(t *testing.T) {
	mr, g := inProgressGame(33)

	on, err := ToggleAutoSimulation(mr, 33, "ada@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !on || !g.AutoSimulate {
		t.Fatalf("first toggle should enable auto-simulation")
	}
	off, err := ToggleAutoSimulation(mr, 33, "ada@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if off || g.AutoSimulate {
		t.Fatalf("second toggle should disable auto-simulation")
	}
}

func TestPreviewReturns_UsesCurrentCycle(t *testing.T) {
	mr, g := inProgressGame(34)
	g.CurrentCycle = game.CycleCrisis
	opts := testOptions(0.50)

	out, err := PreviewReturns(mr, 34, 100, opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Crisis stocks: 15 + (-30) = -15 -> 100 invested returns 85.
	if out[game.MarketStocks] != 85 {
		t.Fatalf("stocks preview = %d, want 85", out[game.MarketStocks])
	}
}

func TestStartGame_OutfitsRoster(t *testing.T) {
	mr, g := inProgressGame(35)
	g.Status = game.StatusWaitingForPlayers
	g.Phase = ""
	g.Week = 0
	opts := testOptions(0.50)

	if _, err := StartGame(mr, 35, "bob@example.com", opts); !errors.Is(err, ErrNotHost) {
		t.Fatalf("non-host start: got %v, want ErrNotHost", err)
	}

	started, err := StartGame(mr, 35, "ada@example.com", opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if started.Status != game.StatusInProgress || started.Week != 1 {
		t.Fatalf("start should enter week 1 in progress, got %s week %d", started.Status, started.Week)
	}
	if started.CurrentCycle != game.CycleStable {
		t.Fatalf("economy should open stable, got %s", started.CurrentCycle)
	}
	for i := range started.Players {
		p := &started.Players[i]
		if p.Soldiers != opts.StartingSoldiers || p.Defense != game.DefenseModerate {
			t.Fatalf("player %s not outfitted: %d soldiers, %s defense", p.PlayerName, p.Soldiers, p.Defense)
		}
	}
}
