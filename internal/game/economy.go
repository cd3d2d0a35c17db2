package game

import "time"

// CycleName identifies one of the four macroeconomic regimes that drive
// market returns. Using a dedicated type instead of plain string makes code
// safer and self-documenting.
type CycleName string

const (
	CycleBoom     CycleName = "boom"
	CycleStable   CycleName = "stable"
	CycleDownturn CycleName = "downturn"
	CycleCrisis   CycleName = "crisis"
)

// AllCycles lists every valid cycle in weight-table order.
var AllCycles = []CycleName{CycleBoom, CycleStable, CycleDownturn, CycleCrisis}

// Valid reports whether the cycle name is one of the four known regimes.
func (c CycleName) Valid() bool {
	switch c {
	case CycleBoom, CycleStable, CycleDownturn, CycleCrisis:
		return true
	}
	return false
}

// MarketKey identifies one of the four investment channels.
type MarketKey string

const (
	MarketStocks     MarketKey = "stocks"
	MarketRealEstate MarketKey = "realEstate"
	MarketCrypto     MarketKey = "crypto"
	MarketBusiness   MarketKey = "business"
)

// AllMarkets lists every valid market key in catalog order.
var AllMarkets = []MarketKey{MarketStocks, MarketRealEstate, MarketCrypto, MarketBusiness}

// Valid reports whether the key names a known market.
func (k MarketKey) Valid() bool {
	switch k {
	case MarketStocks, MarketRealEstate, MarketCrypto, MarketBusiness:
		return true
	}
	return false
}

// ReturnRange bounds a market's base return percentage.
type ReturnRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Market is one investment channel from the catalog. Markets are configured
// via the server config (soldiers_config.json) and are not persisted in the
// database; the per-game economy snapshot stores the derived returns instead.
//
// CurrentReturn must always be consistent with the active cycle: it is
// recomputed as BaseReturn.Max + Modifiers[cycle] on every transition and is
// never read stale across one.
type Market struct {
	Key        MarketKey         `json:"key"`
	Name       string            `json:"name"`
	BaseReturn ReturnRange       `json:"base_return"`
	Modifiers  map[CycleName]int `json:"modifiers"`

	CurrentReturn int `json:"current_return"`

	// Risk and Sensitivity are descriptive labels shown to players; they
	// have no numeric effect on any calculation.
	Risk        string `json:"risk"`
	Sensitivity string `json:"sensitivity"`

	// RequiresStartupCost is set for the business market only. It carries no
	// enforced effect in the rules; the client uses it for display.
	RequiresStartupCost bool `json:"requires_startup_cost"`
}

// Clone returns a deep copy so cycle state can own its catalog without
// sharing modifier maps with the config.
func (m Market) Clone() Market {
	mods := make(map[CycleName]int, len(m.Modifiers))
	for k, v := range m.Modifiers {
		mods[k] = v
	}
	m.Modifiers = mods
	return m
}

// DefenseLabel is a player's categorical defensive posture. Each label maps
// to a fixed numeric rating used in combat-odds computation.
type DefenseLabel string

const (
	DefenseWeak       DefenseLabel = "Weak"
	DefenseModerate   DefenseLabel = "Moderate"
	DefenseStrong     DefenseLabel = "Strong"
	DefenseVeryStrong DefenseLabel = "Very Strong"
)

// Rating returns the numeric multiplier for the label. Unknown labels fall
// back to Moderate so a missing profile field never breaks odds computation.
func (d DefenseLabel) Rating() float64 {
	switch d {
	case DefenseWeak:
		return 0.25
	case DefenseModerate:
		return 0.5
	case DefenseStrong:
		return 0.75
	case DefenseVeryStrong:
		return 0.9
	}
	return 0.5
}

// Stronger returns the label one step up (defensive prep for a week).
func (d DefenseLabel) Stronger() DefenseLabel {
	switch d {
	case DefenseWeak:
		return DefenseModerate
	case DefenseModerate:
		return DefenseStrong
	default:
		return DefenseVeryStrong
	}
}

// EconomySnapshotData is the derived state captured per game and week.
type EconomySnapshotData struct {
	Cycle      CycleName         `json:"cycle"`
	Returns    map[MarketKey]int `json:"returns"`
	LastUpdate time.Time         `json:"last_update"`
}
