package combat

import (
	"fmt"
	"slices"
)

type AbilityType string

const (
	AbilityDamage  AbilityType = "damage"
	AbilityHeal    AbilityType = "heal"
	AbilityDefense AbilityType = "defense"
)

// Ability is a special move an enemy can use instead of a plain attack.
type Ability struct {
	Id              string        `json:"id"`
	Name            string        `json:"name"`
	Type            AbilityType   `json:"type"`
	Power           int           `json:"power"`
	Cooldown        int           `json:"cooldown,omitempty"`
	CurrentCooldown int           `json:"currentCooldown,omitempty"`
	Effect          *StatusEffect `json:"effect,omitempty"`
}

func (a Ability) Validate() error {
	if a.Id == "" {
		return fmt.Errorf("ability id must be set")
	}
	if a.Cooldown < 0 || a.Power < 0 {
		return fmt.Errorf("ability %s: power and cooldown must not be negative", a.Id)
	}
	return nil
}

// Ready reports whether the ability is off cooldown.
func (a Ability) Ready() bool {
	return a.Cooldown == 0 || a.CurrentCooldown == 0
}

// Available returns the abilities that are off cooldown.
func Available(abilities []Ability) []Ability {
	return slices.DeleteFunc(slices.Clone(abilities), func(a Ability) bool {
		return !a.Ready()
	})
}
