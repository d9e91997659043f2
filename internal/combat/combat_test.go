package combat

import (
	"testing"

	"github.com/pixil98/go-testutil"
)

// fixedRoller always returns the same values.
type fixedRoller struct {
	f float64
	n int
}

func (r fixedRoller) Float64() float64 { return r.f }
func (r fixedRoller) IntN(n int) int   { return min(r.n, n-1) }

func TestRoll(t *testing.T) {
	crit := Critical{Chance: 10, Multiplier: 1.5}

	tests := map[string]struct {
		base    int
		effects map[string]StatusEffect
		roll    float64
		expDmg  int
		expCrit bool
	}{
		"plain hit": {
			base: 10, roll: 0.5, expDmg: 10,
		},
		"critical floors": {
			base: 11, roll: 0.05, expDmg: 16, expCrit: true,
		},
		"roll above chance is not critical": {
			base: 10, roll: 0.2, expDmg: 10,
		},
		"effects in id order": {
			base: 10,
			roll: 0.9,
			effects: map[string]StatusEffect{
				"b_rage":  {Id: "b_rage", Kind: DamageMultiplier, Value: 2},
				"a_edge":  {Id: "a_edge", Kind: DamageBonus, Value: 3},
				"c_blank": {Id: "c_blank", Kind: "glitter", Value: 100},
			},
			expDmg: 26,
		},
		"weakened below zero clamps": {
			base:    2,
			roll:    0.9,
			effects: map[string]StatusEffect{"w": {Kind: DamageBonus, Value: -5}},
			expDmg:  0,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			hit := Roll(tt.base, tt.effects, crit, fixedRoller{f: tt.roll})
			testutil.AssertEqual(t, "damage", hit.Damage, tt.expDmg)
			testutil.AssertEqual(t, "critical", hit.Critical, tt.expCrit)
		})
	}
}

func TestMitigate(t *testing.T) {
	tests := map[string]struct {
		amount, defense, exp int
	}{
		"above defense": {amount: 20, defense: 5, exp: 15},
		"equal":         {amount: 5, defense: 5, exp: 1},
		"below":         {amount: 2, defense: 10, exp: 1},
		"zero":          {amount: 0, defense: 0, exp: 1},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			testutil.AssertEqual(t, "damage", Mitigate(tt.amount, tt.defense), tt.exp)
		})
	}
}

type healthBar struct{ hp int }

func (h *healthBar) AdjustHealth(d int) { h.hp += d }

func TestTickEffects(t *testing.T) {
	effects := map[string]StatusEffect{
		"poison": {Id: "poison", Kind: Poison, Value: 4, Duration: 2},
		"regen":  {Id: "regen", Kind: Regeneration, Value: 1, Duration: 1},
		"daze":   {Id: "daze", Kind: Stun, Duration: 2},
		"odd":    {Id: "odd", Kind: "sparkle", Duration: 1},
	}
	target := &healthBar{hp: 20}

	stunned := TickEffects(effects, target)
	testutil.AssertEqual(t, "hp after first", target.hp, 17)
	testutil.AssertEqual(t, "stunned", stunned, true)
	testutil.AssertEqual(t, "remaining", len(effects), 2)
	testutil.AssertEqual(t, "poison left", effects["poison"].Duration, 1)

	stunned = TickEffects(effects, target)
	testutil.AssertEqual(t, "hp after second", target.hp, 13)
	testutil.AssertEqual(t, "stunned", stunned, false)
	testutil.AssertEqual(t, "remaining", len(effects), 0)
}

func TestAvailable(t *testing.T) {
	abilities := []Ability{
		{Id: "slash", Type: AbilityDamage},
		{Id: "bash", Type: AbilityDamage, Cooldown: 2, CurrentCooldown: 1},
		{Id: "mend", Type: AbilityHeal, Cooldown: 3},
	}

	got := Available(abilities)
	testutil.AssertEqual(t, "count", len(got), 2)
	testutil.AssertEqual(t, "first", got[0].Id, "slash")
	testutil.AssertEqual(t, "second", got[1].Id, "mend")
	testutil.AssertEqual(t, "source untouched", len(abilities), 3)
}

func TestBehavior_Choose(t *testing.T) {
	abilities := []Ability{
		{Id: "slash", Type: AbilityDamage},
		{Id: "guard", Type: AbilityDefense},
		{Id: "mend", Type: AbilityHeal},
		{Id: "smash", Type: AbilityDamage},
	}

	tests := map[string]struct {
		behavior  Behavior
		available []Ability
		health    int
		pick      int
		expId     string
		expOk     bool
	}{
		"aggressive picks among damage": {
			behavior: Aggressive, available: abilities, health: 100, pick: 1, expId: "smash", expOk: true,
		},
		"defensive low health prefers first heal or defense": {
			behavior: Defensive, available: abilities, health: 29, expId: "guard", expOk: true,
		},
		"defensive healthy picks uniformly": {
			behavior: Defensive, available: abilities, health: 30, pick: 2, expId: "mend", expOk: true,
		},
		"tactical below half heals": {
			behavior: Tactical, available: abilities, health: 49, expId: "mend", expOk: true,
		},
		"tactical at half picks uniformly": {
			behavior: Tactical, available: abilities, health: 50, pick: 0, expId: "slash", expOk: true,
		},
		"aggressive without damage abilities": {
			behavior:  Aggressive,
			available: []Ability{{Id: "mend", Type: AbilityHeal}},
			health:    100,
			expId:     "mend",
			expOk:     true,
		},
		"nothing available": {
			behavior: Tactical, health: 10,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			a, ok := tt.behavior.Choose(tt.available, tt.health, 100, fixedRoller{n: tt.pick})
			testutil.AssertEqual(t, "ok", ok, tt.expOk)
			testutil.AssertEqual(t, "ability", a.Id, tt.expId)
		})
	}
}

func TestParseBehavior(t *testing.T) {
	tests := map[string]struct {
		in     string
		exp    Behavior
		expErr bool
	}{
		"empty defaults": {in: "", exp: Aggressive},
		"tactical":       {in: "tactical", exp: Tactical},
		"unknown":        {in: "cowardly", expErr: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			b, err := ParseBehavior(tt.in)
			if tt.expErr {
				testutil.AssertErrorContains(t, err, "unknown behavior")
				return
			}
			testutil.AssertEqual(t, "behavior", b, tt.exp)
		})
	}
}

func TestSeeded_Deterministic(t *testing.T) {
	a, b := Seeded(7), Seeded(7)
	for range 5 {
		testutil.AssertEqual(t, "roll", a.IntN(100), b.IntN(100))
	}
}

func TestDamageVerbs(t *testing.T) {
	tests := map[string]struct {
		damage int
		exp3rd string
		exp2nd string
	}{
		"nothing":     {damage: 0, exp3rd: "misses", exp2nd: "miss"},
		"scratch":     {damage: 2, exp3rd: "barely scratches", exp2nd: "barely scratch"},
		"solid":       {damage: 10, exp3rd: "hits hard", exp2nd: "strike"},
		"off the top": {damage: 99, exp3rd: "obliterates", exp2nd: "obliterate"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			testutil.AssertEqual(t, "3rd person", DamageVerb(tt.damage), tt.exp3rd)
			testutil.AssertEqual(t, "2nd person", PlayerVerb(tt.damage), tt.exp2nd)
		})
	}
}
