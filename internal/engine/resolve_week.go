package engine

import (
	"fmt"
	"sort"
	"strings"

	"github.com/HoseaCodes/soldiers-of-wealth/internal/game"
)

// Resolution tuning. Frozen alongside the cycle weights.
const (
	// PlunderPercent of the defender's soldiers transfers on a successful attack.
	PlunderPercent = 20
	// CounterLossPercent of the attacker's soldiers is lost when a failed
	// attack hits a prepared counter.
	CounterLossPercent = 10
	// SpyCost is deducted from the spy's pool whether or not the target has
	// anything worth seeing.
	SpyCost = 10
	// ManipulateChance is the flat success probability for market manipulation.
	ManipulateChance = 50
	// ManipulateShift is the return-point drag a successful manipulation
	// applies to the target market for the following week.
	ManipulateShift = -5
)

// weekContext accumulates the state of one resolution pass.
type weekContext struct {
	g       *game.Game
	econ    *CycleState
	draw    func() float64
	summary []string
	// nextShifts collects successful manipulations; they land on the game
	// row at the end of the pass and drag returns through the next week.
	nextShifts map[game.MarketKey]int
}

func (wc *weekContext) add(msg string) { wc.summary = append(wc.summary, msg) }

// ResolveWeek advances the game by one week: it rolls the economic cycle,
// settles every player's pending moves against the new returns, resolves
// offensive operations, and produces a human-readable summary. Resource
// movement happens only here; validation alone never debited anything.
//
// The draw func supplies uniform [0,1) rolls for combat and manipulation so
// tests can pin outcomes. Pass the same source used by the cycle state for a
// fully deterministic week.
func ResolveWeek(g *game.Game, econ *CycleState, draw func() float64) {
	wc := &weekContext{
		g:          g,
		econ:       econ,
		draw:       draw,
		summary:    make([]string, 0, 16),
		nextShifts: make(map[game.MarketKey]int),
	}

	cycle := econ.GenerateRandomEvent()
	g.CurrentCycle = econ.Current
	g.CycleLastUpdate = econ.LastUpdate
	wc.add(fmt.Sprintf("The economy entered a %s cycle.", cycle))

	wc.applyDefensivePrep()
	wc.settleInvestments()
	wc.resolveOffensives()
	wc.applyEliminations()

	g.Week++
	for i := range g.Players {
		p := &g.Players[i]
		p.HasSubmittedMoves = false
		p.PendingMoves = game.ActionBundle{}
	}

	// This week's drags expire; the ones rolled just now take their place.
	// Reapplying them to the cycle state keeps the snapshot the caller
	// persists consistent with what the next week will settle against.
	g.ReturnShifts = game.Allocation(wc.nextShifts)
	econ.SetShifts(wc.nextShifts)

	if done, winner := wc.finished(); done {
		g.Status = game.StatusFinished
		g.Phase = game.PhaseResolved
		g.Winner = winner
		if winner != "" {
			g.Message = winner + " controls the wealth of nations."
		} else {
			g.Message = "The campaign ended with no victor."
		}
	} else {
		g.Phase = game.PhasePlanning
		g.Message = fmt.Sprintf("Week %d: plan your moves.", g.Week)
	}

	g.LastWeekSummary = strings.Join(wc.summary, " ")
}

// applyDefensivePrep runs before anything else so investments and attacks in
// the same week see the prepared posture.
func (wc *weekContext) applyDefensivePrep() {
	for i := range wc.g.Players {
		p := &wc.g.Players[i]
		p.InsuranceActive = false
		p.CounterActive = false
		def := p.PendingMoves.Defensive
		if def == nil || p.Eliminated {
			continue
		}
		switch def.Type {
		case game.DefensiveDefense:
			p.Defense = p.Defense.Stronger()
			wc.add(fmt.Sprintf("%s fortified defenses (%s).", p.PlayerName, p.Defense))
		case game.DefensiveInsurance:
			p.InsuranceActive = true
			wc.add(fmt.Sprintf("%s took out insurance.", p.PlayerName))
		case game.DefensiveCounter:
			p.CounterActive = true
			wc.add(fmt.Sprintf("%s prepared a counter-strike.", p.PlayerName))
		}
	}
}

func (wc *weekContext) settleInvestments() {
	for i := range wc.g.Players {
		p := &wc.g.Players[i]
		inv := p.PendingMoves.Investment
		if inv == nil || p.Eliminated {
			continue
		}
		switch inv.Type {
		case game.InvestHold:
			wc.add(fmt.Sprintf("%s held reserves.", p.PlayerName))
		case game.InvestDiversify:
			wc.settleDiversified(p, inv.Amount)
		default:
			wc.settleSingle(p, inv)
		}
	}
}

func (wc *weekContext) settleSingle(p *game.Player, inv *game.InvestmentAction) {
	m := wc.econ.Market(inv.Market)
	if m == nil {
		return
	}
	amount := inv.Amount
	if amount > p.Soldiers {
		// Pool shrank since validation (e.g. a spy fee); commit what remains.
		amount = p.Soldiers
	}
	payout := PotentialReturn(amount, m.CurrentReturn)
	// Allocation is a share of the pool the commitment came from, so record
	// it before the pool moves.
	wc.recordAllocation(p, inv.Market, amount)
	p.Soldiers = p.Soldiers - amount + payout
	wc.add(fmt.Sprintf("%s invested %d in %s and recovered %d (%+d%%).",
		p.PlayerName, amount, m.Name, payout, m.CurrentReturn))
}

// settleDiversified splits the amount evenly across the catalog; the
// remainder of the division goes to the first market.
func (wc *weekContext) settleDiversified(p *game.Player, amount int) {
	markets := wc.econ.Markets()
	if len(markets) == 0 {
		return
	}
	if amount > p.Soldiers {
		amount = p.Soldiers
	}
	share := amount / len(markets)
	extra := amount % len(markets)
	total := 0
	for i := range markets {
		part := share
		if i == 0 {
			part += extra
		}
		if part == 0 {
			continue
		}
		total += PotentialReturn(part, markets[i].CurrentReturn)
		wc.recordAllocation(p, markets[i].Key, part)
	}
	p.Soldiers = p.Soldiers - amount + total
	wc.add(fmt.Sprintf("%s diversified %d across all markets and recovered %d.",
		p.PlayerName, amount, total))
}

// recordAllocation updates the display-only percentage breakdown.
func (wc *weekContext) recordAllocation(p *game.Player, key game.MarketKey, amount int) {
	if p.Investments == nil {
		p.Investments = game.Allocation{}
	}
	if p.Soldiers <= 0 {
		return
	}
	p.Investments[key] = amount * 100 / p.Soldiers
}

// resolveOffensives runs in descending soldier order so the stronger force
// strikes first; ties keep roster order.
func (wc *weekContext) resolveOffensives() {
	idx := make([]int, 0, len(wc.g.Players))
	for i := range wc.g.Players {
		if wc.g.Players[i].PendingMoves.Offensive != nil && !wc.g.Players[i].Eliminated {
			idx = append(idx, i)
		}
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return wc.g.Players[idx[a]].Soldiers > wc.g.Players[idx[b]].Soldiers
	})

	for _, i := range idx {
		attacker := &wc.g.Players[i]
		off := attacker.PendingMoves.Offensive
		target := findPlayerByUUID(wc.g, off.TargetPlayer)
		switch off.Type {
		case game.OffensiveAttack:
			wc.resolveAttack(attacker, target, off)
		case game.OffensiveSpy:
			wc.resolveSpy(attacker, target, off)
		case game.OffensiveManipulate:
			wc.resolveManipulate(attacker, off)
		}
	}
}

func (wc *weekContext) resolveAttack(attacker, defender *game.Player, off *game.OffensiveAction) {
	if defender == nil || defender.Eliminated {
		wc.add(fmt.Sprintf("%s marched on %s, but found no army to fight.", attacker.PlayerName, off.TargetName))
		return
	}
	chance := SuccessChance(attacker.Soldiers, defender.Soldiers, defender.Defense)
	roll := int(wc.draw() * 100)
	if roll < chance {
		plunder := defender.Soldiers * PlunderPercent / 100
		if defender.InsuranceActive {
			plunder /= 2
		}
		defender.Soldiers -= plunder
		attacker.Soldiers += plunder
		if defender.InsuranceActive {
			wc.add(fmt.Sprintf("%s raided %s and seized %d soldiers (%d%% odds; insurance halved the loss).",
				attacker.PlayerName, defender.PlayerName, plunder, chance))
		} else {
			wc.add(fmt.Sprintf("%s raided %s and seized %d soldiers (%d%% odds).",
				attacker.PlayerName, defender.PlayerName, plunder, chance))
		}
		return
	}
	if defender.CounterActive {
		loss := attacker.Soldiers * CounterLossPercent / 100
		attacker.Soldiers -= loss
		wc.add(fmt.Sprintf("%s's raid on %s failed (%d%% odds) and the counter-strike cost them %d soldiers.",
			attacker.PlayerName, defender.PlayerName, chance, loss))
		return
	}
	wc.add(fmt.Sprintf("%s's raid on %s was repelled (%d%% odds).",
		attacker.PlayerName, defender.PlayerName, chance))
}

func (wc *weekContext) resolveSpy(attacker, target *game.Player, off *game.OffensiveAction) {
	if attacker.Soldiers < SpyCost {
		wc.add(fmt.Sprintf("%s could no longer fund a spy.", attacker.PlayerName))
		return
	}
	attacker.Soldiers -= SpyCost
	if target == nil {
		wc.add(fmt.Sprintf("%s's spy found no trace of %s.", attacker.PlayerName, off.TargetName))
		return
	}
	wc.add(fmt.Sprintf("%s's spy reports: %s fields %d soldiers with %s defenses.",
		attacker.PlayerName, target.PlayerName, target.Soldiers, target.Defense))
}

func (wc *weekContext) resolveManipulate(attacker *game.Player, off *game.OffensiveAction) {
	key := off.Market
	if key == "" || wc.econ.Market(key) == nil {
		wc.add(fmt.Sprintf("%s's market scheme had no market to move.", attacker.PlayerName))
		return
	}
	roll := int(wc.draw() * 100)
	if roll < ManipulateChance {
		m := wc.econ.Market(key)
		wc.nextShifts[key] += ManipulateShift
		wc.add(fmt.Sprintf("%s manipulated %s: next week's returns dragged by %d%%.",
			attacker.PlayerName, m.Name, wc.nextShifts[key]))
		return
	}
	wc.add(fmt.Sprintf("%s's attempt to manipulate the market fizzled.", attacker.PlayerName))
}

func (wc *weekContext) applyEliminations() {
	for i := range wc.g.Players {
		p := &wc.g.Players[i]
		if p.Soldiers < 0 {
			p.Soldiers = 0
		}
		if p.Soldiers == 0 && !p.Eliminated {
			p.Eliminated = true
			wc.add(fmt.Sprintf("%s's army has been wiped out.", p.PlayerName))
		}
	}
}

// finished reports whether the game is over after this week and who won.
// The campaign ends when only one army stands or the configured number of
// weeks has elapsed; in the latter case the largest army wins.
func (wc *weekContext) finished() (bool, string) {
	standing := make([]*game.Player, 0, len(wc.g.Players))
	for i := range wc.g.Players {
		if !wc.g.Players[i].Eliminated {
			standing = append(standing, &wc.g.Players[i])
		}
	}
	if len(standing) <= 1 && len(wc.g.Players) > 1 {
		if len(standing) == 1 {
			return true, standing[0].PlayerName
		}
		return true, ""
	}
	if wc.g.TotalWeeks > 0 && wc.g.Week > wc.g.TotalWeeks {
		best := standing[0]
		tied := false
		for _, p := range standing[1:] {
			if p.Soldiers > best.Soldiers {
				best = p
				tied = false
			} else if p.Soldiers == best.Soldiers && p != best {
				tied = true
			}
		}
		if tied {
			return true, ""
		}
		return true, best.PlayerName
	}
	return false, ""
}

func findPlayerByUUID(g *game.Game, uuid string) *game.Player {
	for i := range g.Players {
		if g.Players[i].PlayerUUID == uuid {
			return &g.Players[i]
		}
	}
	return nil
}
