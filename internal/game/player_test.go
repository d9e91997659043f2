package game

import (
	"strings"
	"testing"

	"github.com/pixil98/go-adventure/internal/combat"
	"github.com/pixil98/go-testutil"
)

func TestNextLevelExp(t *testing.T) {
	tests := map[string]struct {
		level int
		exp   int
	}{
		"level one":   {level: 1, exp: 100},
		"level two":   {level: 2, exp: 150},
		"level three": {level: 3, exp: 225},
		"level four":  {level: 4, exp: 337},
		"below one":   {level: 0, exp: 100},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			testutil.AssertEqual(t, "exp", NextLevelExp(tt.level), tt.exp)
		})
	}
}

func TestPlayerGainExperience(t *testing.T) {
	tests := map[string]struct {
		gain      int
		expLevels int
		expLevel  int
		expExp    int
		expMaxHP  int
		expAttack int
	}{
		"below threshold": {
			gain: 50, expLevel: 1, expExp: 50, expMaxHP: 100, expAttack: 10,
		},
		"exactly one level": {
			gain: 100, expLevels: 1, expLevel: 2, expExp: 0, expMaxHP: 110, expAttack: 12,
		},
		"two levels at once": {
			gain: 250, expLevels: 2, expLevel: 3, expExp: 0, expMaxHP: 120, expAttack: 14,
		},
		"negative ignored": {
			gain: -10, expLevel: 1, expExp: 0, expMaxHP: 100, expAttack: 10,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			p := NewPlayer()
			p.Health = 40

			testutil.AssertEqual(t, "levels", p.GainExperience(tt.gain), tt.expLevels)
			testutil.AssertEqual(t, "level", p.Level, tt.expLevel)
			testutil.AssertEqual(t, "experience", p.Experience, tt.expExp)
			testutil.AssertEqual(t, "max health", p.MaxHealth, tt.expMaxHP)
			testutil.AssertEqual(t, "attack", p.Stats[StatAttack], tt.expAttack)
			if tt.expLevels > 0 {
				testutil.AssertEqual(t, "health refilled", p.Health, p.MaxHealth)
			}
		})
	}
}

func TestPlayerTakeDamage(t *testing.T) {
	tests := map[string]struct {
		health    int
		amount    int
		expDealt  int
		expHealth int
	}{
		"defense absorbs part": {health: 100, amount: 20, expDealt: 15, expHealth: 85},
		"minimum one point":    {health: 100, amount: 3, expDealt: 1, expHealth: 99},
		"health stops at zero": {health: 4, amount: 50, expDealt: 45, expHealth: 0},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			p := NewPlayer()
			p.Health = tt.health
			testutil.AssertEqual(t, "dealt", p.TakeDamage(tt.amount), tt.expDealt)
			testutil.AssertEqual(t, "health", p.Health, tt.expHealth)
		})
	}
}

func TestPlayerRestore(t *testing.T) {
	p := NewPlayer()
	p.Health = 90
	p.Magic = 10

	testutil.AssertEqual(t, "healed", p.Heal(20), 10)
	testutil.AssertEqual(t, "health", p.Health, 100)
	testutil.AssertEqual(t, "restored", p.RestoreMagic(15), 15)
	testutil.AssertEqual(t, "magic", p.Magic, 25)
	testutil.AssertEqual(t, "spend too much", p.UseMagic(30), false)
	testutil.AssertEqual(t, "spend", p.UseMagic(25), true)
	testutil.AssertEqual(t, "magic spent", p.Magic, 0)
}

func TestPlayerApplyEffects(t *testing.T) {
	tests := map[string]struct {
		effects   *Effects
		expHealth int
		expMagic  int
		expAttack int
		expConds  int
	}{
		"nil effects": {
			expHealth: 50, expMagic: 20, expAttack: 10,
		},
		"heal and restore": {
			effects:   &Effects{Health: 20, Magic: 100},
			expHealth: 70, expMagic: 50, expAttack: 10,
		},
		"harmful": {
			effects:   &Effects{Health: -20, Magic: -5},
			expHealth: 35, expMagic: 15, expAttack: 10,
		},
		"unknown stats ignored": {
			effects:   &Effects{Stats: map[string]int{StatAttack: 3, "luck": 7}},
			expHealth: 50, expMagic: 20, expAttack: 13,
		},
		"status becomes a condition": {
			effects:   &Effects{Status: []combat.StatusEffect{{Id: "regen", Kind: combat.Regeneration, Value: 2, Duration: 3}}},
			expHealth: 50, expMagic: 20, expAttack: 10, expConds: 1,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			p := NewPlayer()
			p.Health = 50
			p.Magic = 20
			p.ApplyEffects(tt.effects)

			testutil.AssertEqual(t, "health", p.Health, tt.expHealth)
			testutil.AssertEqual(t, "magic", p.Magic, tt.expMagic)
			testutil.AssertEqual(t, "attack", p.Stats[StatAttack], tt.expAttack)
			testutil.AssertEqual(t, "luck present", p.Stats["luck"], 0)
			testutil.AssertEqual(t, "conditions", len(p.Conditions), tt.expConds)
		})
	}
}

func TestPlayerTickConditions(t *testing.T) {
	p := NewPlayer()
	p.Health = 50
	p.Conditions = map[string]combat.StatusEffect{
		"poison": {Id: "poison", Kind: combat.Poison, Value: 4, Duration: 2},
	}

	p.TickConditions()
	testutil.AssertEqual(t, "first tick", p.Health, 46)
	p.TickConditions()
	testutil.AssertEqual(t, "second tick", p.Health, 42)
	testutil.AssertEqual(t, "expired", len(p.Conditions), 0)
	p.TickConditions()
	testutil.AssertEqual(t, "no more ticks", p.Health, 42)
}

func TestPlayerRemoveItem(t *testing.T) {
	p := NewPlayer()
	p.AddItem("potion")
	p.AddItem("key")
	p.AddItem("potion")

	testutil.AssertEqual(t, "removed", p.RemoveItem("potion"), true)
	testutil.AssertEqual(t, "inventory", strings.Join(p.Inventory, ","), "key,potion")
	testutil.AssertEqual(t, "missing", p.RemoveItem("map"), false)
}

func TestPlayerEquip(t *testing.T) {
	reg := newCollection[*ItemInstance]()
	reg.Register("sword", NewItemInstance("sword", &Item{Name: "Sword", Type: SlotWeapon, Stats: map[string]int{StatAttack: 4}}))
	reg.Register("axe", NewItemInstance("axe", &Item{Name: "Axe", Type: SlotWeapon, Stats: map[string]int{StatAttack: 6}}))
	reg.Register("rock", NewItemInstance("rock", &Item{Name: "Rock", Type: "junk"}))

	tests := map[string]struct {
		inventory []string
		equip     []string
		expErr    string
		expWeapon string
		expAttack int
		expInv    string
	}{
		"equip weapon": {
			inventory: []string{"sword"},
			equip:     []string{"sword"},
			expWeapon: "sword",
			expAttack: 14,
		},
		"swap weapon": {
			inventory: []string{"sword", "axe"},
			equip:     []string{"sword", "axe"},
			expWeapon: "axe",
			expAttack: 16,
			expInv:    "sword",
		},
		"not equippable": {
			inventory: []string{"rock"},
			equip:     []string{"rock"},
			expErr:    "cannot be equipped",
			expAttack: 10,
			expInv:    "rock",
		},
		"not carried": {
			equip:     []string{"sword"},
			expErr:    "not in the inventory",
			expAttack: 10,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			p := NewPlayer()
			p.Inventory = append(p.Inventory, tt.inventory...)

			var err error
			for _, id := range tt.equip {
				item, _ := reg.Get(id)
				err = p.Equip(item, reg)
			}

			if tt.expErr != "" {
				testutil.AssertErrorContains(t, err, tt.expErr)
			} else if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			testutil.AssertEqual(t, "weapon", p.Equipment[SlotWeapon], tt.expWeapon)
			testutil.AssertEqual(t, "attack", p.Stats[StatAttack], tt.expAttack)
			testutil.AssertEqual(t, "inventory", strings.Join(p.Inventory, ","), tt.expInv)
		})
	}
}

func TestPlayerUnequip(t *testing.T) {
	reg := newCollection[*ItemInstance]()
	reg.Register("mail", NewItemInstance("mail", &Item{Name: "Mail", Type: SlotArmor, Stats: map[string]int{StatDefense: 3}}))

	p := NewPlayer()
	p.AddItem("mail")
	mail, _ := reg.Get("mail")
	if err := p.Equip(mail, reg); err != nil {
		t.Fatalf("equip: %v", err)
	}
	testutil.AssertEqual(t, "defense equipped", p.Stats[StatDefense], 8)

	if err := p.Unequip(SlotArmor, reg); err != nil {
		t.Fatalf("unequip: %v", err)
	}
	testutil.AssertEqual(t, "defense removed", p.Stats[StatDefense], 5)
	testutil.AssertEqual(t, "inventory", strings.Join(p.Inventory, ","), "mail")

	testutil.AssertErrorContains(t, p.Unequip(SlotArmor, reg), "slot is empty")
}

func TestPlayerValidate(t *testing.T) {
	tests := map[string]struct {
		mutate func(p *Player)
		expErr string
	}{
		"fresh player": {
			mutate: func(p *Player) {},
		},
		"health above max": {
			mutate: func(p *Player) { p.Health = 150 },
			expErr: "health 150 out of range",
		},
		"level zero": {
			mutate: func(p *Player) { p.Level = 0 },
			expErr: "level must be at least 1",
		},
		"experience past threshold": {
			mutate: func(p *Player) { p.Experience = 100 },
			expErr: "experience 100 out of range",
		},
		"unknown slot": {
			mutate: func(p *Player) { p.Equipment["hat"] = "" },
			expErr: "unknown equipment slot",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			p := NewPlayer()
			tt.mutate(p)
			err := p.Validate()
			if tt.expErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			testutil.AssertErrorContains(t, err, tt.expErr)
		})
	}
}

func TestPlayerClone(t *testing.T) {
	p := NewPlayer()
	p.AddItem("key")
	c := p.Clone()
	c.AddItem("map")
	c.Stats[StatAttack] = 99

	testutil.AssertEqual(t, "inventory", len(p.Inventory), 1)
	testutil.AssertEqual(t, "attack", p.Stats[StatAttack], 10)
}
