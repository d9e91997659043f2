package combat

import (
	"maps"
	"math"
	"slices"
)

// Critical describes how often and how hard a combatant lands critical hits.
type Critical struct {
	Chance     float64 `json:"criticalChance"`
	Multiplier float64 `json:"criticalMultiplier"`
}

// Hit is the outcome of a damage roll.
type Hit struct {
	Damage   int
	Critical bool
}

// Roll computes outgoing damage: base modified by every effect in id order,
// then multiplied on a critical roll. The result is floored.
func Roll(base int, effects map[string]StatusEffect, crit Critical, r Roller) Hit {
	dmg := float64(base)
	for _, id := range slices.Sorted(maps.Keys(effects)) {
		dmg = effects[id].ModifyDamage(dmg)
	}

	hit := Hit{}
	if Percent(r, crit.Chance) {
		dmg *= crit.Multiplier
		hit.Critical = true
	}
	hit.Damage = max(int(math.Floor(dmg)), 0)
	return hit
}

// Mitigate applies defense to an incoming amount. At least one point always
// gets through.
func Mitigate(amount, defense int) int {
	return max(1, amount-defense)
}

var damageMessages = []struct {
	maxDamage int
	verb2nd   string
	verb3rd   string
}{
	{0, "miss", "misses"},
	{2, "barely scratch", "barely scratches"},
	{4, "graze", "grazes"},
	{8, "hit", "hits"},
	{14, "strike", "hits hard"},
	{20, "pummel", "pummels"},
	{30, "maul", "mauls"},
	{45, "devastate", "devastates"},
}

// DamageVerb returns the 3rd person verb for a damage amount.
func DamageVerb(damage int) string {
	for _, msg := range damageMessages {
		if damage <= msg.maxDamage {
			return msg.verb3rd
		}
	}
	return "obliterates"
}

// PlayerVerb returns the 2nd person verb for a damage amount.
func PlayerVerb(damage int) string {
	for _, msg := range damageMessages {
		if damage <= msg.maxDamage {
			return msg.verb2nd
		}
	}
	return "obliterate"
}
