package service

import (
	"testing"

	"github.com/HoseaCodes/soldiers-of-wealth/internal/game"
)

func TestHandleTimedOutGame_HoldsAbsentPlayersAndResolves(t *testing.T) {
	mr, g := inProgressGame(21)
	opts := testOptions(0.50)

	// Ada submitted in time; Bob did not.
	invest := &game.ActionBundle{Investment: &game.InvestmentAction{Amount: 30, Market: game.MarketRealEstate}}
	if _, _, err := SubmitMoves(mr, 21, "ada@example.com", invest, opts); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := HandleTimedOutGame(mr, g, opts); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if g.Week != 2 {
		t.Fatalf("expected week to resolve to 2, got %d", g.Week)
	}
	// Bob's auto-hold appended a log row alongside Ada's submission.
	if len(mr.records) != 2 {
		t.Fatalf("expected 2 log rows, got %d", len(mr.records))
	}
	if !mr.records[1].Bundle.Empty() {
		t.Fatalf("auto-hold should log an empty bundle, got %+v", mr.records[1].Bundle)
	}
	// Holding position never costs soldiers.
	if g.Players[1].Soldiers != 100 {
		t.Fatalf("absent player's pool should be untouched, got %d", g.Players[1].Soldiers)
	}
}

func TestHandleTimedOutGame_IgnoresResolvedGames(t *testing.T) {
	mr, g := inProgressGame(22)
	g.Phase = game.PhaseResolved
	opts := testOptions(0.50)

	if err := HandleTimedOutGame(mr, g, opts); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(mr.records) != 0 {
		t.Fatalf("resolved game should not receive auto-holds")
	}
	if g.Week != 1 {
		t.Fatalf("resolved game should not advance, week=%d", g.Week)
	}
}
