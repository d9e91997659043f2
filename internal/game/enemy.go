package game

import (
	"fmt"
	"maps"
	"slices"

	"github.com/pixil98/go-adventure/internal/combat"
	"github.com/pixil98/go-errors"
)

// Combat stat defaults for enemies that leave them unset.
const (
	defaultAccuracy           = 80
	defaultCriticalChance     = 10
	defaultCriticalMultiplier = 1.5
	defaultEvasion            = 5
)

// CombatStats are the percentages that drive hit, dodge and critical rolls.
type CombatStats struct {
	Accuracy           float64 `json:"accuracy,omitempty"`
	CriticalChance     float64 `json:"criticalChance,omitempty"`
	CriticalMultiplier float64 `json:"criticalMultiplier,omitempty"`
	Evasion            float64 `json:"evasion,omitempty"`
}

func (c CombatStats) withDefaults() CombatStats {
	if c.Accuracy == 0 {
		c.Accuracy = defaultAccuracy
	}
	if c.CriticalChance == 0 {
		c.CriticalChance = defaultCriticalChance
	}
	if c.CriticalMultiplier == 0 {
		c.CriticalMultiplier = defaultCriticalMultiplier
	}
	if c.Evasion == 0 {
		c.Evasion = defaultEvasion
	}
	return c
}

// Enemy defines a foe.
type Enemy struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Health      int              `json:"health"`
	Attack      int              `json:"attack"`
	Defense     int              `json:"defense"`
	Level       int              `json:"level,omitempty"`
	Stats       CombatStats      `json:"stats"`
	Loot        []string         `json:"loot,omitempty"`
	Experience  int              `json:"experience"`
	Behavior    combat.Behavior  `json:"behavior,omitempty"`
	Abilities   []combat.Ability `json:"abilities,omitempty"`
}

// Validate satisfies storage.ValidatingSpec.
func (e *Enemy) Validate() error {
	el := errors.NewErrorList()

	if e.Name == "" {
		el.Add(fmt.Errorf("enemy name is required"))
	}
	if e.Health < 1 {
		el.Add(fmt.Errorf("enemy health must be positive"))
	}
	if e.Attack < 0 || e.Defense < 0 || e.Experience < 0 {
		el.Add(fmt.Errorf("attack, defense and experience must not be negative"))
	}
	for _, a := range e.Abilities {
		el.Add(a.Validate())
	}

	return el.Err()
}

// EnemyInstance is the live state of an Enemy definition.
type EnemyInstance struct {
	Id    string
	Enemy *Enemy

	Health    int
	MaxHealth int
	Stats     CombatStats
	Behavior  combat.Behavior
	Abilities []combat.Ability
	Effects   map[string]combat.StatusEffect
	Stunned   bool
	Defeated  bool
}

func NewEnemyInstance(id string, def *Enemy) *EnemyInstance {
	ei := &EnemyInstance{Id: id, Enemy: def}
	ei.Reset()
	return ei
}

// Reset is the only way a defeated enemy comes back.
func (ei *EnemyInstance) Reset() {
	def := ei.Enemy
	ei.Health = def.Health
	ei.MaxHealth = def.Health
	ei.Stats = def.Stats.withDefaults()
	ei.Behavior = def.Behavior
	if ei.Behavior == "" {
		ei.Behavior = combat.Aggressive
	}
	ei.Abilities = slices.Clone(def.Abilities)
	for i := range ei.Abilities {
		ei.Abilities[i].CurrentCooldown = 0
	}
	ei.Effects = map[string]combat.StatusEffect{}
	ei.Stunned = false
	ei.Defeated = false
}

func (ei *EnemyInstance) Name() string {
	return ei.Enemy.Name
}

func (ei *EnemyInstance) Level() int {
	return max(ei.Enemy.Level, 1)
}

// CalculateDamage rolls the enemy's outgoing damage.
func (ei *EnemyInstance) CalculateDamage(r combat.Roller) combat.Hit {
	crit := combat.Critical{Chance: ei.Stats.CriticalChance, Multiplier: ei.Stats.CriticalMultiplier}
	return combat.Roll(ei.Enemy.Attack, ei.Effects, crit, r)
}

// TakeDamage applies an incoming hit after defense and returns the damage
// dealt. At least one point always lands.
func (ei *EnemyInstance) TakeDamage(amount int) int {
	dmg := combat.Mitigate(amount, ei.Enemy.Defense)
	ei.AdjustHealth(-dmg)
	return dmg
}

// AdjustHealth changes health within [0, MaxHealth]. Reaching zero defeats
// the enemy for good.
func (ei *EnemyInstance) AdjustHealth(delta int) {
	ei.Health = min(max(ei.Health+delta, 0), ei.MaxHealth)
	if ei.Health == 0 {
		ei.Defeated = true
	}
}

// Heal restores up to amount health and returns how much was restored.
func (ei *EnemyInstance) Heal(amount int) int {
	if ei.Defeated {
		return 0
	}
	healed := min(max(amount, 0), ei.MaxHealth-ei.Health)
	ei.Health += healed
	return healed
}

func (ei *EnemyInstance) CanAct() bool {
	return !ei.Stunned && !ei.Defeated
}

// ChooseAbility picks an off-cooldown ability according to the enemy's
// behaviour without using it.
func (ei *EnemyInstance) ChooseAbility(r combat.Roller) (combat.Ability, bool) {
	return ei.Behavior.Choose(combat.Available(ei.Abilities), ei.Health, ei.MaxHealth, r)
}

// UseAbility chooses an ability and starts its cooldown. It returns false
// when the enemy cannot act or nothing is ready.
func (ei *EnemyInstance) UseAbility(r combat.Roller) (combat.Ability, bool) {
	if !ei.CanAct() {
		return combat.Ability{}, false
	}

	a, ok := ei.ChooseAbility(r)
	if !ok {
		return combat.Ability{}, false
	}

	i := slices.IndexFunc(ei.Abilities, func(x combat.Ability) bool { return x.Id == a.Id })
	if i >= 0 && ei.Abilities[i].Cooldown > 0 {
		ei.Abilities[i].CurrentCooldown = ei.Abilities[i].Cooldown
	}
	return a, true
}

// TickCooldowns counts every cooling ability down by one, except the
// ability with id except, which was used this turn.
func (ei *EnemyInstance) TickCooldowns(except string) {
	for i := range ei.Abilities {
		if ei.Abilities[i].Id != except && ei.Abilities[i].CurrentCooldown > 0 {
			ei.Abilities[i].CurrentCooldown--
		}
	}
}

func (ei *EnemyInstance) ApplyStatusEffect(e combat.StatusEffect) {
	ei.Effects[e.Id] = e
	if e.Stuns() {
		ei.Stunned = true
	}
}

func (ei *EnemyInstance) RemoveStatusEffect(id string) bool {
	if _, ok := ei.Effects[id]; !ok {
		return false
	}
	delete(ei.Effects, id)
	ei.Stunned = ei.anyStun()
	return true
}

// UpdateStatusEffects runs one turn of every active effect.
func (ei *EnemyInstance) UpdateStatusEffects() {
	ei.Stunned = combat.TickEffects(ei.Effects, ei)
}

func (ei *EnemyInstance) anyStun() bool {
	for _, e := range ei.Effects {
		if e.Stuns() {
			return true
		}
	}
	return false
}

// EffectIds returns the active effect ids, sorted.
func (ei *EnemyInstance) EffectIds() []string {
	return slices.Sorted(maps.Keys(ei.Effects))
}
