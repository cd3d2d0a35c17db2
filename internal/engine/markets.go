package engine

import "github.com/HoseaCodes/soldiers-of-wealth/internal/game"

// DefaultMarkets returns the built-in market catalog. The server config may
// override these values; the keys and the shape (modifier per cycle) are
// fixed.
func DefaultMarkets() []game.Market {
	return []game.Market{
		{
			Key:        game.MarketStocks,
			Name:       "Stock Market",
			BaseReturn: game.ReturnRange{Min: 5, Max: 15},
			Modifiers: map[game.CycleName]int{
				game.CycleBoom:     10,
				game.CycleStable:   0,
				game.CycleDownturn: -15,
				game.CycleCrisis:   -30,
			},
			Risk:        "Medium",
			Sensitivity: "High",
		},
		{
			Key:        game.MarketRealEstate,
			Name:       "Real Estate",
			BaseReturn: game.ReturnRange{Min: 3, Max: 8},
			Modifiers: map[game.CycleName]int{
				game.CycleBoom:     5,
				game.CycleStable:   0,
				game.CycleDownturn: -8,
				game.CycleCrisis:   -20,
			},
			Risk:        "Low",
			Sensitivity: "Medium",
		},
		{
			Key:        game.MarketCrypto,
			Name:       "Crypto",
			BaseReturn: game.ReturnRange{Min: 10, Max: 25},
			Modifiers: map[game.CycleName]int{
				game.CycleBoom:     25,
				game.CycleStable:   0,
				game.CycleDownturn: -30,
				game.CycleCrisis:   -50,
			},
			Risk:        "Very High",
			Sensitivity: "Very High",
		},
		{
			Key:        game.MarketBusiness,
			Name:       "Business Ventures",
			BaseReturn: game.ReturnRange{Min: 8, Max: 20},
			Modifiers: map[game.CycleName]int{
				game.CycleBoom:     15,
				game.CycleStable:   0,
				game.CycleDownturn: -12,
				game.CycleCrisis:   -25,
			},
			Risk:                "High",
			Sensitivity:         "Medium",
			RequiresStartupCost: true,
		},
	}
}
