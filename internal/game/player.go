package game

import (
	"fmt"
	"maps"
	"slices"

	"github.com/pixil98/go-adventure/internal/combat"
	"github.com/pixil98/go-adventure/internal/storage"
	"github.com/pixil98/go-errors"
)

// Equipment slots. An item's type names the slot it fits.
const (
	SlotWeapon    = "weapon"
	SlotArmor     = "armor"
	SlotAccessory = "accessory"
)

// Stat names every player starts with.
const (
	StatAttack     = "attack"
	StatDefense    = "defense"
	StatMagicPower = "magicPower"
)

// Slots lists the equipment slots in display order.
var Slots = []string{SlotWeapon, SlotArmor, SlotAccessory}

// Player is the adventurer. It is owned by the World, never by the registry.
type Player struct {
	Health     int                            `json:"health"`
	MaxHealth  int                            `json:"maxHealth"`
	Magic      int                            `json:"magic"`
	MaxMagic   int                            `json:"maxMagic"`
	Level      int                            `json:"level"`
	Experience int                            `json:"experience"`
	Inventory  []string                       `json:"inventory"`
	Equipment  map[string]string              `json:"equipment"`
	Stats      map[string]int                 `json:"stats"`
	Conditions map[string]combat.StatusEffect `json:"conditions,omitempty"`
}

// NewPlayer returns a level one player with the baseline stats.
func NewPlayer() *Player {
	return &Player{
		Health:    100,
		MaxHealth: 100,
		Magic:     50,
		MaxMagic:  50,
		Level:     1,
		Inventory: []string{},
		Equipment: map[string]string{SlotWeapon: "", SlotArmor: "", SlotAccessory: ""},
		Stats: map[string]int{
			StatAttack:     10,
			StatDefense:    5,
			StatMagicPower: 8,
		},
	}
}

// Validate checks the invariants a restored player must satisfy.
func (p *Player) Validate() error {
	el := errors.NewErrorList()

	if p.Level < 1 {
		el.Add(fmt.Errorf("level must be at least 1"))
	}
	if p.MaxHealth < 1 || p.Health < 0 || p.Health > p.MaxHealth {
		el.Add(fmt.Errorf("health %d out of range [0, %d]", p.Health, p.MaxHealth))
	}
	if p.MaxMagic < 0 || p.Magic < 0 || p.Magic > p.MaxMagic {
		el.Add(fmt.Errorf("magic %d out of range [0, %d]", p.Magic, p.MaxMagic))
	}
	if p.Experience < 0 || p.Experience >= p.NextLevelExp() {
		el.Add(fmt.Errorf("experience %d out of range [0, %d)", p.Experience, p.NextLevelExp()))
	}
	for slot := range p.Equipment {
		if !slices.Contains(Slots, slot) {
			el.Add(fmt.Errorf("unknown equipment slot %q", slot))
		}
	}

	return el.Err()
}

// Clone returns a deep copy.
func (p *Player) Clone() *Player {
	c := *p
	c.Inventory = slices.Clone(p.Inventory)
	c.Equipment = maps.Clone(p.Equipment)
	c.Stats = maps.Clone(p.Stats)
	c.Conditions = maps.Clone(p.Conditions)
	if c.Inventory == nil {
		c.Inventory = []string{}
	}
	if c.Equipment == nil {
		c.Equipment = map[string]string{}
	}
	if c.Stats == nil {
		c.Stats = map[string]int{}
	}
	return &c
}

func (p *Player) NextLevelExp() int {
	return NextLevelExp(p.Level)
}

func (p *Player) Alive() bool {
	return p.Health > 0
}

// GainExperience adds experience and levels up for as long as the threshold
// is reached. It returns the number of levels gained.
func (p *Player) GainExperience(amount int) int {
	p.Experience += max(amount, 0)

	levels := 0
	for p.Experience >= p.NextLevelExp() {
		p.levelUp()
		levels++
	}
	return levels
}

func (p *Player) levelUp() {
	p.Experience -= p.NextLevelExp()
	p.Level++

	p.MaxHealth += levelHealthBonus
	p.MaxMagic += levelMagicBonus
	p.Health = p.MaxHealth
	p.Magic = p.MaxMagic

	p.Stats[StatAttack] += levelAttackBonus
	p.Stats[StatDefense] += levelDefenseBonus
	p.Stats[StatMagicPower] += levelMagicPowerBonus
}

// TakeDamage applies an incoming hit after defense and returns the damage
// actually dealt.
func (p *Player) TakeDamage(amount int) int {
	dmg := combat.Mitigate(amount, p.Stats[StatDefense])
	p.Health = max(p.Health-dmg, 0)
	return dmg
}

// Heal restores up to amount health and returns how much was restored.
func (p *Player) Heal(amount int) int {
	healed := min(max(amount, 0), p.MaxHealth-p.Health)
	p.Health += healed
	return healed
}

// RestoreMagic restores up to amount magic and returns how much was restored.
func (p *Player) RestoreMagic(amount int) int {
	restored := min(max(amount, 0), p.MaxMagic-p.Magic)
	p.Magic += restored
	return restored
}

// UseMagic spends cost magic. It spends nothing and returns false when the
// player has too little.
func (p *Player) UseMagic(cost int) bool {
	if p.Magic < cost {
		return false
	}
	p.Magic -= cost
	return true
}

// AdjustHealth applies a raw change from a condition, clamped to range.
func (p *Player) AdjustHealth(delta int) {
	p.Health = min(max(p.Health+delta, 0), p.MaxHealth)
}

func (p *Player) AddItem(id string) {
	p.Inventory = append(p.Inventory, id)
}

// RemoveItem removes the first occurrence of id.
func (p *Player) RemoveItem(id string) bool {
	i := slices.Index(p.Inventory, id)
	if i < 0 {
		return false
	}
	p.Inventory = slices.Delete(p.Inventory, i, i+1)
	return true
}

func (p *Player) HasItem(id string) bool {
	return slices.Contains(p.Inventory, id)
}

// ApplyEffects applies item effects. Negative health goes through
// TakeDamage, negative magic through UseMagic, and stat deltas only touch
// stats the player already has.
func (p *Player) ApplyEffects(e *Effects) {
	if e == nil {
		return
	}

	switch {
	case e.Health > 0:
		p.Heal(e.Health)
	case e.Health < 0:
		p.TakeDamage(-e.Health)
	}

	switch {
	case e.Magic > 0:
		p.RestoreMagic(e.Magic)
	case e.Magic < 0:
		p.UseMagic(-e.Magic)
	}

	p.addStats(e.Stats, 1)

	for _, s := range e.Status {
		if p.Conditions == nil {
			p.Conditions = map[string]combat.StatusEffect{}
		}
		p.Conditions[s.Id] = s
	}
}

func (p *Player) addStats(delta map[string]int, sign int) {
	for stat, v := range delta {
		if _, ok := p.Stats[stat]; ok {
			p.Stats[stat] += sign * v
		}
	}
}

// TickConditions runs one turn of the player's conditions.
func (p *Player) TickConditions() {
	if len(p.Conditions) == 0 {
		return
	}
	combat.TickEffects(p.Conditions, p)
}

// Equip moves item from the inventory into the slot named by its type,
// unequipping whatever was there. lookup resolves the modifiers of the
// item being replaced.
func (p *Player) Equip(item *ItemInstance, lookup storage.Getter[*ItemInstance]) error {
	slot := item.Item.Type
	if !slices.Contains(Slots, slot) {
		return fmt.Errorf("%s: %w", item.Item.Name, ErrNotEquippable)
	}
	if !p.HasItem(item.Id) {
		return fmt.Errorf("%s is not in the inventory", item.Id)
	}

	if p.Equipment[slot] != "" {
		if err := p.Unequip(slot, lookup); err != nil {
			return err
		}
	}

	p.RemoveItem(item.Id)
	if p.Equipment == nil {
		p.Equipment = map[string]string{}
	}
	p.Equipment[slot] = item.Id
	p.addStats(item.Item.Stats, 1)
	return nil
}

// Unequip returns the item in slot to the inventory and removes its
// modifiers. A slot holding an unknown item is still emptied.
func (p *Player) Unequip(slot string, lookup storage.Getter[*ItemInstance]) error {
	id := p.Equipment[slot]
	if id == "" {
		return fmt.Errorf("%s: %w", slot, ErrSlotEmpty)
	}

	if item, ok := lookup.Get(id); ok {
		p.addStats(item.Item.Stats, -1)
	}
	p.Equipment[slot] = ""
	p.AddItem(id)
	return nil
}
