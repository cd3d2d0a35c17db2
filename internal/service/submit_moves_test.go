package service

import (
	"errors"
	"testing"
	"time"

	"github.com/HoseaCodes/soldiers-of-wealth/internal/engine"
	"github.com/HoseaCodes/soldiers-of-wealth/internal/game"
)

type mockRepo struct {
	games       map[uint]*game.Game
	records     []game.ActionRecord
	snapshots   []game.EconomySnapshot
	statsCalled bool
}

func (m *mockRepo) GetGameByID(id uint) (*game.Game, error) {
	if g, ok := m.games[id]; ok {
		return g, nil
	}
	return nil, ErrGameNotFound
}

func (m *mockRepo) UpdateGame(g *game.Game) error { return nil }

func (m *mockRepo) AppendActionRecord(rec *game.ActionRecord) error {
	m.records = append(m.records, *rec)
	return nil
}

func (m *mockRepo) SaveEconomySnapshot(snap *game.EconomySnapshot) error {
	m.snapshots = append(m.snapshots, *snap)
	return nil
}

func (m *mockRepo) UpdateStatsOnGameEnd(g *game.Game, resignedEmail string) error {
	m.statsCalled = true
	return nil
}

func testOptions(draws ...float64) Options {
	i := 0
	return Options{
		Markets:          engine.DefaultMarkets(),
		MovesTimeout:     1 * time.Hour,
		StartingSoldiers: 100,
		TotalWeeks:       12,
		Draw: func() float64 {
			v := draws[i]
			if i < len(draws)-1 {
				i++
			}
			return v
		},
	}
}

func inProgressGame(id uint) (*mockRepo, *game.Game) {
	g := &game.Game{
		Status:     game.StatusInProgress,
		Phase:      game.PhasePlanning,
		Week:       1,
		TotalWeeks: 12,
		Players: []game.Player{
			{PlayerUUID: "p1", PlayerName: "Ada", PlayerEmail: "ada@example.com", Soldiers: 100, Defense: game.DefenseModerate},
			{PlayerUUID: "p2", PlayerName: "Bob", PlayerEmail: "bob@example.com", Soldiers: 100, Defense: game.DefenseModerate},
		},
	}
	g.ID = id
	return &mockRepo{games: map[uint]*game.Game{id: g}}, g
}

func TestSubmitMoves_ResolvesWhenAllSubmitted(t *testing.T) {
	mr, _ := inProgressGame(7)
	opts := testOptions(0.50, 0.50)

	invest := &game.ActionBundle{Investment: &game.InvestmentAction{Amount: 50, Market: game.MarketStocks}}
	_, resolved, err := SubmitMoves(mr, 7, "ada@example.com", invest, opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resolved {
		t.Fatalf("week should not resolve after one submission")
	}

	hold := &game.ActionBundle{Investment: &game.InvestmentAction{Type: game.InvestHold, Amount: 10, Market: game.MarketStocks}}
	g2, resolved, err := SubmitMoves(mr, 7, "bob@example.com", hold, opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !resolved {
		t.Fatalf("expected week to resolve after both submissions")
	}
	if g2.Week != 2 {
		t.Fatalf("expected week 2 after resolution, got %d", g2.Week)
	}
	if len(mr.records) != 2 {
		t.Fatalf("expected 2 action records, got %d", len(mr.records))
	}
	if len(mr.snapshots) != 1 {
		t.Fatalf("expected 1 economy snapshot, got %d", len(mr.snapshots))
	}
	if mr.snapshots[0].Cycle != g2.CurrentCycle {
		t.Fatalf("snapshot cycle %s does not match game cycle %s", mr.snapshots[0].Cycle, g2.CurrentCycle)
	}
}

func TestSubmitMoves_ValidationFailureStoresNothing(t *testing.T) {
	mr, g := inProgressGame(8)
	opts := testOptions(0.50)

	overspend := &game.ActionBundle{Investment: &game.InvestmentAction{Amount: 500, Market: game.MarketStocks}}
	_, _, err := SubmitMoves(mr, 8, "ada@example.com", overspend, opts)
	var ire *engine.InsufficientResourcesError
	if !errors.As(err, &ire) {
		t.Fatalf("expected InsufficientResourcesError, got %v", err)
	}
	if g.Players[0].HasSubmittedMoves {
		t.Fatalf("failed validation must not mark moves as submitted")
	}
	if len(mr.records) != 0 {
		t.Fatalf("failed validation must not append a record")
	}
	if g.Players[0].Soldiers != 100 {
		t.Fatalf("validation alone must never debit soldiers, got %d", g.Players[0].Soldiers)
	}
}

func TestSubmitMoves_EditReplacesPendingBundle(t *testing.T) {
	mr, g := inProgressGame(9)
	opts := testOptions(0.50)

	first := &game.ActionBundle{Investment: &game.InvestmentAction{Amount: 20, Market: game.MarketStocks}}
	if _, _, err := SubmitMoves(mr, 9, "ada@example.com", first, opts); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second := &game.ActionBundle{Investment: &game.InvestmentAction{Amount: 60, Market: game.MarketCrypto}}
	if _, _, err := SubmitMoves(mr, 9, "ada@example.com", second, opts); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := g.Players[0].PendingMoves.Investment.Amount; got != 60 {
		t.Fatalf("pending bundle should be the replacement, amount=%d", got)
	}
	// Both revisions stay in the append-only log.
	if len(mr.records) != 2 {
		t.Fatalf("expected 2 log rows after edit, got %d", len(mr.records))
	}
}

func TestSubmitMoves_RejectsWrongPhaseAndStrangers(t *testing.T) {
	mr, g := inProgressGame(10)
	opts := testOptions(0.50)
	bundle := &game.ActionBundle{Investment: &game.InvestmentAction{Amount: 10, Market: game.MarketStocks}}

	if _, _, err := SubmitMoves(mr, 10, "mallory@example.com", bundle, opts); !errors.Is(err, ErrPlayerNotInGame) {
		t.Fatalf("stranger: got %v, want ErrPlayerNotInGame", err)
	}

	g.Phase = game.PhaseResolved
	if _, _, err := SubmitMoves(mr, 10, "ada@example.com", bundle, opts); !errors.Is(err, ErrMovesLocked) {
		t.Fatalf("resolved phase: got %v, want ErrMovesLocked", err)
	}

	g.Status = game.StatusFinished
	if _, _, err := SubmitMoves(mr, 10, "ada@example.com", bundle, opts); !errors.Is(err, ErrGameNotInProgress) {
		t.Fatalf("finished game: got %v, want ErrGameNotInProgress", err)
	}
}

func TestSubmitMoves_ManipulationDragReachesEconomyView(t *testing.T) {
	mr, _ := inProgressGame(12)
	// Cycle roll 0.50 keeps the economy stable; 0.10 lands the manipulation.
	opts := testOptions(0.50, 0.10)

	manip := &game.ActionBundle{
		Offensive: &game.OffensiveAction{Type: game.OffensiveManipulate, TargetPlayer: "p2", TargetName: "Bob", Market: game.MarketCrypto},
	}
	if _, _, err := SubmitMoves(mr, 12, "ada@example.com", manip, opts); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	hold := &game.ActionBundle{Investment: &game.InvestmentAction{Type: game.InvestHold, Amount: 10, Market: game.MarketStocks}}
	g2, resolved, err := SubmitMoves(mr, 12, "bob@example.com", hold, opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !resolved {
		t.Fatalf("expected the week to resolve")
	}
	if got := g2.ReturnShifts[game.MarketCrypto]; got != engine.ManipulateShift {
		t.Fatalf("game row should persist a %d crypto shift, got %d", engine.ManipulateShift, got)
	}

	// The economy endpoint rebuilds state from the row; it must report the
	// same crypto return the resolution snapshotted.
	view, err := GetEconomy(mr, 12, opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	snapReturn, ok := mr.snapshots[0].Returns[game.MarketCrypto]
	if !ok {
		t.Fatalf("snapshot should record a crypto return")
	}
	for _, m := range view.Markets {
		if m.Key != game.MarketCrypto {
			continue
		}
		if m.CurrentReturn != snapReturn {
			t.Fatalf("economy view crypto return %d disagrees with snapshot %d", m.CurrentReturn, snapReturn)
		}
		return
	}
	t.Fatalf("economy view is missing the crypto market")
}
