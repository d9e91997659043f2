package combat

import (
	"log/slog"
	"maps"
	"slices"
)

// StatusKind is the closed set of status effect behaviours. Kinds outside
// the set decode fine and are carried along, but have no effect.
type StatusKind string

const (
	DamageMultiplier StatusKind = "damage_multiplier"
	DamageBonus      StatusKind = "damage_bonus"
	Poison           StatusKind = "poison"
	Regeneration     StatusKind = "regeneration"
	Stun             StatusKind = "stun"
)

func (k StatusKind) Known() bool {
	switch k {
	case DamageMultiplier, DamageBonus, Poison, Regeneration, Stun:
		return true
	}
	return false
}

// StatusEffect is a timed modifier on a combatant.
type StatusEffect struct {
	Id       string     `json:"id"`
	Kind     StatusKind `json:"type"`
	Value    float64    `json:"value,omitempty"`
	Duration int        `json:"duration"`
}

// ModifyDamage adjusts outgoing damage.
func (e StatusEffect) ModifyDamage(dmg float64) float64 {
	switch e.Kind {
	case DamageMultiplier:
		return dmg * e.Value
	case DamageBonus:
		return dmg + e.Value
	}
	return dmg
}

// HealthDelta is the change in health the effect causes each turn.
func (e StatusEffect) HealthDelta() int {
	switch e.Kind {
	case Poison:
		return -int(e.Value)
	case Regeneration:
		return int(e.Value)
	}
	return 0
}

func (e StatusEffect) Stuns() bool {
	return e.Kind == Stun
}

// Affected is anything status effects can tick against.
type Affected interface {
	AdjustHealth(delta int)
}

// TickEffects applies one turn of every effect to target, decrements the
// durations and drops the effects that expired. Effects run in id order.
// It reports whether any remaining effect stuns.
func TickEffects(effects map[string]StatusEffect, target Affected) bool {
	stunned := false
	for _, id := range slices.Sorted(maps.Keys(effects)) {
		e := effects[id]
		if !e.Kind.Known() {
			slog.Debug("ignoring unknown status effect", "id", id, "type", e.Kind)
		}
		if d := e.HealthDelta(); d != 0 {
			target.AdjustHealth(d)
		}

		e.Duration--
		if e.Duration <= 0 {
			delete(effects, id)
			continue
		}
		effects[id] = e
		stunned = stunned || e.Stuns()
	}
	return stunned
}
