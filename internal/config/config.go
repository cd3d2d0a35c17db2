package config

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"github.com/HoseaCodes/soldiers-of-wealth/internal/game"
)

type marketEntry struct {
	Key                 string           `json:"key"`
	Name                string           `json:"name"`
	BaseReturn          game.ReturnRange `json:"base_return"`
	Modifiers           map[string]int   `json:"modifiers"`
	Risk                string           `json:"risk"`
	Sensitivity         string           `json:"sensitivity"`
	RequiresStartupCost bool             `json:"requires_startup_cost"`
}

type rawConfig struct {
	MarketList []marketEntry `json:"market_list"`
	Server     *struct {
		Address string `json:"address"`
	} `json:"server"`
	// Optional override for the random-event distribution. Keys are cycle
	// names, values are probabilities that must sum to 1.0. Omit to use the
	// built-in boom/stable/downturn/crisis weights.
	EventWeights map[string]float64 `json:"event_weights"`

	StartingSoldiers    int `json:"starting_soldiers"`
	TotalWeeks          int `json:"total_weeks"`
	MovesTimeoutSeconds int `json:"moves_timeout_seconds"`
	WeekDurationSeconds int `json:"week_duration_seconds"`
}

// LoadedConfig contains the market catalog and server settings.
type LoadedConfig struct {
	Markets       []game.Market
	ServerAddress string
	EventWeights  map[game.CycleName]float64

	StartingSoldiers int
	TotalWeeks       int
	// MovesTimeout is how long players have to submit weekly moves before
	// the timeout scanner auto-submits a hold for them.
	MovesTimeout time.Duration
	// WeekDuration is the auto-simulation period (one simulated week).
	WeekDuration time.Duration
}

// LoadConfig reads the configuration file at path. It requires the key
// `market_list` (snake_case) covering exactly the four known markets, each
// with a modifier for every cycle.
func LoadConfig(path string) (*LoadedConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	var rc rawConfig
	if err := json.Unmarshal(b, &rc); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	markets, err := parseMarkets(path, rc.MarketList)
	if err != nil {
		return nil, err
	}

	weights, err := parseEventWeights(path, rc.EventWeights)
	if err != nil {
		return nil, err
	}

	out := &LoadedConfig{
		Markets:          markets,
		ServerAddress:    ":8080",
		EventWeights:     weights,
		StartingSoldiers: 100,
		TotalWeeks:       12,
		MovesTimeout:     24 * time.Hour,
		WeekDuration:     7 * 24 * time.Hour,
	}
	if rc.Server != nil && rc.Server.Address != "" {
		out.ServerAddress = rc.Server.Address
	}
	if rc.StartingSoldiers > 0 {
		out.StartingSoldiers = rc.StartingSoldiers
	}
	if rc.TotalWeeks > 0 {
		out.TotalWeeks = rc.TotalWeeks
	}
	if rc.MovesTimeoutSeconds > 0 {
		out.MovesTimeout = time.Duration(rc.MovesTimeoutSeconds) * time.Second
	}
	if rc.WeekDurationSeconds > 0 {
		out.WeekDuration = time.Duration(rc.WeekDurationSeconds) * time.Second
	}
	return out, nil
}

func parseMarkets(path string, entries []marketEntry) ([]game.Market, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("config file %s: market_list is empty (provide a 'market_list' array)", path)
	}

	keySet := make(map[game.MarketKey]struct{}, len(entries))
	out := make([]game.Market, 0, len(entries))
	for _, e := range entries {
		key := game.MarketKey(strings.TrimSpace(e.Key))
		if !key.Valid() {
			return nil, fmt.Errorf("config file %s: unknown market key '%s'", path, e.Key)
		}
		if _, exists := keySet[key]; exists {
			return nil, fmt.Errorf("config file %s: duplicate market key '%s'", path, e.Key)
		}
		keySet[key] = struct{}{}
		if e.Name == "" {
			return nil, fmt.Errorf("config file %s: market '%s' missing 'name'", path, e.Key)
		}
		if e.BaseReturn.Min > e.BaseReturn.Max {
			return nil, fmt.Errorf("config file %s: market '%s' base_return min exceeds max", path, e.Key)
		}
		mods := make(map[game.CycleName]int, len(e.Modifiers))
		for _, cycle := range game.AllCycles {
			v, ok := e.Modifiers[string(cycle)]
			if !ok {
				return nil, fmt.Errorf("config file %s: market '%s' missing modifier for cycle '%s'", path, e.Key, cycle)
			}
			mods[cycle] = v
		}
		out = append(out, game.Market{
			Key:                 key,
			Name:                e.Name,
			BaseReturn:          e.BaseReturn,
			Modifiers:           mods,
			Risk:                e.Risk,
			Sensitivity:         e.Sensitivity,
			RequiresStartupCost: e.RequiresStartupCost,
		})
	}
	for _, key := range game.AllMarkets {
		if _, ok := keySet[key]; !ok {
			return nil, fmt.Errorf("config file %s: market_list missing market '%s'", path, key)
		}
	}
	return out, nil
}

func parseEventWeights(path string, raw map[string]float64) (map[game.CycleName]float64, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	out := make(map[game.CycleName]float64, len(raw))
	sum := 0.0
	for name, w := range raw {
		cycle := game.CycleName(name)
		if !cycle.Valid() {
			return nil, fmt.Errorf("config file %s: event_weights has unknown cycle '%s'", path, name)
		}
		if w < 0 {
			return nil, fmt.Errorf("config file %s: event_weights for '%s' is negative", path, name)
		}
		out[cycle] = w
		sum += w
	}
	for _, cycle := range game.AllCycles {
		if _, ok := out[cycle]; !ok {
			return nil, fmt.Errorf("config file %s: event_weights missing cycle '%s'", path, cycle)
		}
	}
	if math.Abs(sum-1.0) > 1e-9 {
		return nil, fmt.Errorf("config file %s: event_weights must sum to 1.0 (got %.4f)", path, sum)
	}
	return out, nil
}
