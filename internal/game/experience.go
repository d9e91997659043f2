package game

import "math"

// NextLevelExp returns the experience needed to advance past level. The
// requirement grows by half again with every level.
func NextLevelExp(level int) int {
	if level < 1 {
		level = 1
	}
	return int(math.Floor(100 * math.Pow(1.5, float64(level-1))))
}

// Level-up bonuses.
const (
	levelHealthBonus     = 10
	levelMagicBonus      = 5
	levelAttackBonus     = 2
	levelDefenseBonus    = 1
	levelMagicPowerBonus = 2
)
