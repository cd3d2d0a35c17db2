package engine

import (
	"math"

	"github.com/HoseaCodes/soldiers-of-wealth/internal/game"
)

// MaxSuccessChance caps combat odds; an attack is never guaranteed.
const MaxSuccessChance = 90

// SuccessChance computes the percentage chance that an attack succeeds:
// round(attacker / (defender * rating) * 100), hard-capped at 90. No floor
// is applied, so a hopeless attack can round down to 0.
func SuccessChance(attackerSoldiers, defenderSoldiers int, defense game.DefenseLabel) int {
	effective := float64(defenderSoldiers) * defense.Rating()
	if effective <= 0 {
		// No defenders to overcome; the cap still applies.
		return MaxSuccessChance
	}
	chance := int(math.Floor(float64(attackerSoldiers)/effective*100 + 0.5))
	if chance > MaxSuccessChance {
		return MaxSuccessChance
	}
	return chance
}
