package combat

import (
	"encoding/json"
	"fmt"
	"slices"
)

// Behavior selects which ability an enemy uses. The set is closed.
type Behavior string

const (
	Aggressive Behavior = "aggressive"
	Defensive  Behavior = "defensive"
	Tactical   Behavior = "tactical"
)

func ParseBehavior(s string) (Behavior, error) {
	switch b := Behavior(s); b {
	case "":
		return Aggressive, nil
	case Aggressive, Defensive, Tactical:
		return b, nil
	}
	return "", fmt.Errorf("unknown behavior %q", s)
}

func (b *Behavior) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	v, err := ParseBehavior(s)
	if err != nil {
		return err
	}
	*b = v
	return nil
}

type policy func(available []Ability, health, maxHealth int, r Roller) (Ability, bool)

var policies = map[Behavior]policy{
	Aggressive: func(available []Ability, _, _ int, r Roller) (Ability, bool) {
		return pickType(available, r, AbilityDamage)
	},
	Defensive: func(available []Ability, health, maxHealth int, r Roller) (Ability, bool) {
		if float64(health) < float64(maxHealth)*0.3 {
			return first(available, AbilityHeal, AbilityDefense)
		}
		return Ability{}, false
	},
	Tactical: func(available []Ability, health, maxHealth int, r Roller) (Ability, bool) {
		if float64(health) < float64(maxHealth)*0.5 {
			return first(available, AbilityHeal)
		}
		return Ability{}, false
	},
}

// Choose picks one of the available abilities. When the behaviour has no
// preference the pick is uniform. It returns false only when nothing is
// available.
func (b Behavior) Choose(available []Ability, health, maxHealth int, r Roller) (Ability, bool) {
	if len(available) == 0 {
		return Ability{}, false
	}

	p, ok := policies[b]
	if !ok {
		p = policies[Aggressive]
	}
	if a, ok := p(available, health, maxHealth, r); ok {
		return a, true
	}
	return Pick(r, available), true
}

func first(available []Ability, types ...AbilityType) (Ability, bool) {
	i := slices.IndexFunc(available, func(a Ability) bool {
		return slices.Contains(types, a.Type)
	})
	if i < 0 {
		return Ability{}, false
	}
	return available[i], true
}

func pickType(available []Ability, r Roller, t AbilityType) (Ability, bool) {
	var matching []Ability
	for _, a := range available {
		if a.Type == t {
			matching = append(matching, a)
		}
	}
	if len(matching) == 0 {
		return Ability{}, false
	}
	return Pick(r, matching), true
}
