package combat

import "math/rand/v2"

// Roller is the source of randomness for combat and maze carving.
type Roller interface {
	// Float64 returns a number in [0, 1).
	Float64() float64
	// IntN returns a number in [0, n).
	IntN(n int) int
}

type globalRoller struct{}

func (globalRoller) Float64() float64 { return rand.Float64() }
func (globalRoller) IntN(n int) int   { return rand.IntN(n) }

// Dice draws from the process-wide generator.
var Dice Roller = globalRoller{}

// Seeded returns a deterministic Roller.
func Seeded(seed uint64) Roller {
	return rand.New(rand.NewPCG(seed, seed>>1|1))
}

// Percent reports whether a roll on [0, 100) lands below chance.
func Percent(r Roller, chance float64) bool {
	return r.Float64()*100 < chance
}

// Pick returns a uniformly chosen element of s. s must not be empty.
func Pick[T any](r Roller, s []T) T {
	return s[r.IntN(len(s))]
}
