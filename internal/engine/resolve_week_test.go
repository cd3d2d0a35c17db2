package engine

import (
	"strings"
	"testing"

	"github.com/HoseaCodes/soldiers-of-wealth/internal/game"
)

// sequenceDraw returns draws from the slice in order, then repeats the last.
func sequenceDraw(vals ...float64) func() float64 {
	i := 0
	return func() float64 {
		v := vals[i]
		if i < len(vals)-1 {
			i++
		}
		return v
	}
}

func twoPlayerGame() *game.Game {
	return &game.Game{
		Status:     game.StatusInProgress,
		Phase:      game.PhasePlanning,
		Week:       1,
		TotalWeeks: 12,
		Players: []game.Player{
			{PlayerUUID: "p1", PlayerName: "Ada", Soldiers: 100, Defense: game.DefenseModerate},
			{PlayerUUID: "p2", PlayerName: "Bob", Soldiers: 100, Defense: game.DefenseModerate},
		},
	}
}

func TestResolveWeek_InvestmentSettlement(t *testing.T) {
	g := twoPlayerGame()
	g.Players[0].PendingMoves = game.ActionBundle{
		Investment: &game.InvestmentAction{Type: game.InvestInvest, Amount: 50, Market: game.MarketStocks},
	}
	g.Players[0].HasSubmittedMoves = true
	g.Players[1].HasSubmittedMoves = true

	// First draw 0.95 forces a crisis cycle: stocks return = 15 + (-30) = -15.
	econ := NewCycleState(DefaultMarkets(), sequenceDraw(0.95))
	ResolveWeek(g, econ, sequenceDraw(0.99))

	if g.CurrentCycle != game.CycleCrisis {
		t.Fatalf("expected crisis cycle, got %s", g.CurrentCycle)
	}
	// 100 - 50 + round(50*0.85)=43 -> 93
	if got := g.Players[0].Soldiers; got != 93 {
		t.Fatalf("expected 93 soldiers after crisis investment, got %d", got)
	}
	if g.Week != 2 {
		t.Fatalf("expected week to advance to 2, got %d", g.Week)
	}
	if g.Players[0].HasSubmittedMoves {
		t.Fatalf("submission flags should reset after resolution")
	}
}

func TestResolveWeek_AttackPlunderAndInsurance(t *testing.T) {
	g := twoPlayerGame()
	g.Players[0].Soldiers = 200
	g.Players[1].Soldiers = 50
	g.Players[1].Defense = game.DefenseWeak
	g.Players[0].PendingMoves = game.ActionBundle{
		Offensive: &game.OffensiveAction{Type: game.OffensiveAttack, TargetPlayer: "p2", TargetName: "Bob"},
	}
	g.Players[1].PendingMoves = game.ActionBundle{
		Defensive: &game.DefensiveAction{Type: game.DefensiveInsurance},
	}

	econ := NewCycleState(DefaultMarkets(), sequenceDraw(0.50))
	// Combat roll 0.10 -> 10 < 90% success chance.
	ResolveWeek(g, econ, sequenceDraw(0.10))

	// Plunder 20% of 50 = 10, halved by insurance to 5.
	if got := g.Players[1].Soldiers; got != 45 {
		t.Fatalf("defender should keep 45 soldiers, got %d", got)
	}
	if got := g.Players[0].Soldiers; got != 205 {
		t.Fatalf("attacker should hold 205 soldiers, got %d", got)
	}
	if !strings.Contains(g.LastWeekSummary, "insurance") {
		t.Fatalf("summary should mention insurance: %q", g.LastWeekSummary)
	}
}

func TestResolveWeek_FailedAttackHitsCounter(t *testing.T) {
	g := twoPlayerGame()
	g.Players[0].Soldiers = 30
	g.Players[1].Soldiers = 100
	g.Players[1].Defense = game.DefenseVeryStrong
	g.Players[0].PendingMoves = game.ActionBundle{
		Offensive: &game.OffensiveAction{Type: game.OffensiveAttack, TargetPlayer: "p2", TargetName: "Bob"},
	}
	g.Players[1].PendingMoves = game.ActionBundle{
		Defensive: &game.DefensiveAction{Type: game.DefensiveCounter},
	}

	econ := NewCycleState(DefaultMarkets(), sequenceDraw(0.50))
	// Chance = round(30/(100*0.9)*100) = 33; roll 0.99 -> 99 fails.
	ResolveWeek(g, econ, sequenceDraw(0.99))

	// Counter costs the attacker 10% of 30 = 3.
	if got := g.Players[0].Soldiers; got != 27 {
		t.Fatalf("attacker should lose 3 soldiers to the counter, got %d", got)
	}
	if got := g.Players[1].Soldiers; got != 100 {
		t.Fatalf("defender pool should be untouched, got %d", got)
	}
}

func TestResolveWeek_SpyCostAndReport(t *testing.T) {
	g := twoPlayerGame()
	g.Players[0].PendingMoves = game.ActionBundle{
		Offensive: &game.OffensiveAction{Type: game.OffensiveSpy, TargetPlayer: "p2", TargetName: "Bob"},
	}

	econ := NewCycleState(DefaultMarkets(), sequenceDraw(0.50))
	ResolveWeek(g, econ, sequenceDraw(0.99))

	if got := g.Players[0].Soldiers; got != 100-SpyCost {
		t.Fatalf("spy should cost %d soldiers, got pool %d", SpyCost, got)
	}
	if !strings.Contains(g.LastWeekSummary, "spy reports") {
		t.Fatalf("summary should carry the spy report: %q", g.LastWeekSummary)
	}
}

func TestResolveWeek_ManipulateDragsMarket(t *testing.T) {
	g := twoPlayerGame()
	g.Players[0].PendingMoves = game.ActionBundle{
		Offensive: &game.OffensiveAction{Type: game.OffensiveManipulate, TargetPlayer: "p2", TargetName: "Bob", Market: game.MarketCrypto},
	}

	econ := NewCycleState(DefaultMarkets(), sequenceDraw(0.50))
	// Roll 0.10 -> 10 < 50 succeeds.
	ResolveWeek(g, econ, sequenceDraw(0.10))

	if got := g.ReturnShifts[game.MarketCrypto]; got != ManipulateShift {
		t.Fatalf("game row should carry a %d shift for crypto, got %d", ManipulateShift, got)
	}
	// Stable crypto return 25 + 0, dragged by -5.
	if got := econ.Market(game.MarketCrypto).CurrentReturn; got != 20 {
		t.Fatalf("crypto return should be dragged to 20, got %d", got)
	}
	if !strings.Contains(g.LastWeekSummary, "dragged by -5") {
		t.Fatalf("summary should report the drag: %q", g.LastWeekSummary)
	}
}

func TestResolveWeek_ManipulationDragSurvivesRebuild(t *testing.T) {
	g := twoPlayerGame()
	g.Players[0].PendingMoves = game.ActionBundle{
		Offensive: &game.OffensiveAction{Type: game.OffensiveManipulate, TargetPlayer: "p2", TargetName: "Bob", Market: game.MarketCrypto},
	}

	econ := NewCycleState(DefaultMarkets(), sequenceDraw(0.50))
	ResolveWeek(g, econ, sequenceDraw(0.10))
	resolved := econ.Market(game.MarketCrypto).CurrentReturn

	// A state rebuilt from the persisted row, the way every read path does
	// it, must agree with the one the resolution left behind.
	rebuilt, err := ResumeCycle(DefaultMarkets(), g.CurrentCycle, g.CycleLastUpdate, sequenceDraw(0.50))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rebuilt.SetShifts(g.ReturnShifts)
	if got := rebuilt.Market(game.MarketCrypto).CurrentReturn; got != resolved {
		t.Fatalf("rebuilt crypto return %d disagrees with resolved return %d", got, resolved)
	}
}

func TestResolveWeek_ManipulationDragExpiresAfterOneWeek(t *testing.T) {
	g := twoPlayerGame()
	g.Players[0].PendingMoves = game.ActionBundle{
		Offensive: &game.OffensiveAction{Type: game.OffensiveManipulate, TargetPlayer: "p2", TargetName: "Bob", Market: game.MarketCrypto},
	}

	econ := NewCycleState(DefaultMarkets(), sequenceDraw(0.50))
	ResolveWeek(g, econ, sequenceDraw(0.10))

	// Nobody manipulates in the second week, so the drag lapses.
	ResolveWeek(g, econ, sequenceDraw(0.99))

	if len(g.ReturnShifts) != 0 {
		t.Fatalf("shifts should clear after a week without manipulation, got %v", g.ReturnShifts)
	}
	if got := econ.Market(game.MarketCrypto).CurrentReturn; got != 25 {
		t.Fatalf("crypto should recover its stable return of 25, got %d", got)
	}
}

func TestResolveWeek_AllocationSharesCommittedPool(t *testing.T) {
	g := twoPlayerGame()
	g.Players[0].PendingMoves = game.ActionBundle{
		Investment: &game.InvestmentAction{Type: game.InvestInvest, Amount: 50, Market: game.MarketStocks},
	}

	econ := NewCycleState(DefaultMarkets(), sequenceDraw(0.50))
	ResolveWeek(g, econ, sequenceDraw(0.99))

	// The share is measured against the pool the commitment came from, not
	// the pool after the payout landed.
	if got := g.Players[0].Investments[game.MarketStocks]; got != 50 {
		t.Fatalf("expected a 50%% stocks allocation, got %d%%", got)
	}
}

func TestResolveWeek_LastArmyStandingWins(t *testing.T) {
	g := twoPlayerGame()
	g.Players[0].Soldiers = 500
	g.Players[1].Soldiers = 5
	g.Players[1].Defense = game.DefenseWeak
	g.Players[1].Eliminated = false
	g.Players[1].Soldiers = 0

	econ := NewCycleState(DefaultMarkets(), sequenceDraw(0.50))
	ResolveWeek(g, econ, sequenceDraw(0.99))

	if g.Status != game.StatusFinished {
		t.Fatalf("game should finish when one army stands, status=%s", g.Status)
	}
	if g.Winner != "Ada" {
		t.Fatalf("expected Ada to win, got %q", g.Winner)
	}
	if !g.Players[1].Eliminated {
		t.Fatalf("player with no soldiers should be eliminated")
	}
}

func TestResolveWeek_FinalWeekLargestArmyWins(t *testing.T) {
	g := twoPlayerGame()
	g.Week = 12
	g.TotalWeeks = 12

	econ := NewCycleState(DefaultMarkets(), sequenceDraw(0.50))
	g.Players[0].Soldiers = 120
	ResolveWeek(g, econ, sequenceDraw(0.99))

	if g.Status != game.StatusFinished {
		t.Fatalf("game should finish after the final week, status=%s", g.Status)
	}
	if g.Winner != "Ada" {
		t.Fatalf("largest army should win, got %q", g.Winner)
	}
}
