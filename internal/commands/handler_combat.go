package commands

import (
	"context"
	"log/slog"

	"github.com/pixil98/go-adventure/internal/combat"
	"github.com/pixil98/go-adventure/internal/game"
)

type hitReport struct {
	Name     string
	Verb     string
	Damage   int
	Critical bool
}

// attack fights one round against the first live enemy in the room. The
// player strikes first; a surviving enemy answers.
func attack(_ context.Context, s *Session, _ string) error {
	room, ok := s.world.Room()
	if !ok {
		return game.ErrRoomNotFound
	}

	foes := s.enemies(room.Enemies)
	if len(foes) == 0 {
		return narrateError(msgNothingToFight, nil)
	}
	foe := foes[0]
	p := s.world.Player

	if combat.Percent(s.dice, foe.Stats.Evasion) {
		s.message(narrate(msgPlayerMissed, named{Name: foe.Name()}))
	} else {
		dmg := foe.TakeDamage(p.Stats[game.StatAttack])
		s.message(narrate(msgPlayerHit, hitReport{
			Name:   foe.Name(),
			Verb:   combat.PlayerVerb(dmg),
			Damage: dmg,
		}))
	}

	if foe.Defeated {
		s.defeat(room, foe)
		return nil
	}

	s.enemyTurn(foe)
	p.TickConditions()
	if !p.Alive() {
		s.message(narrate(msgDefeatedPlayer, nil))
	}
	s.publishStats()
	return nil
}

// defeat clears a beaten enemy out of the room, drops its loot and pays
// its experience.
func (s *Session) defeat(room *game.RoomInstance, foe *game.EnemyInstance) {
	room.RemoveEnemy(foe.Id)
	for _, id := range foe.Enemy.Loot {
		if _, ok := s.world.Registry.Items.Get(id); !ok {
			slog.Warn("enemy drops an unknown item", "enemy", foe.Id, "item", id)
			continue
		}
		room.AddItem(id)
	}

	s.message(narrate(msgEnemyDefeated, named{Name: foe.Name()}))
	s.publishRoom(room)
	if foe.Enemy.Experience > 0 {
		s.gainExperience(foe.Enemy.Experience)
	}

	s.progress(game.ObjectiveDefeat, foe.Id)
}

// enemyTurn lets foe act once and then ages its cooldowns and effects.
func (s *Session) enemyTurn(foe *game.EnemyInstance) {
	p := s.world.Player
	used := ""

	switch {
	case !foe.CanAct():
		s.message(narrate(msgEnemyStunned, named{Name: foe.Name()}))
	default:
		ability, ok := foe.UseAbility(s.dice)
		if ok {
			used = ability.Id
		}
		switch {
		case ok && ability.Type == combat.AbilityHeal:
			healed := foe.Heal(ability.Power)
			s.message(narrate(msgEnemyHeals, struct {
				Name, Ability string
				Amount        int
			}{foe.Name(), ability.Name, healed}))
		case ok && ability.Type == combat.AbilityDefense:
			if ability.Effect != nil {
				foe.ApplyStatusEffect(*ability.Effect)
			}
			s.message(narrate(msgEnemyGuards, struct{ Name, Ability string }{foe.Name(), ability.Name}))
		case !combat.Percent(s.dice, foe.Stats.Accuracy):
			s.message(narrate(msgEnemyMissed, named{Name: foe.Name()}))
		default:
			hit := foe.CalculateDamage(s.dice)
			if ok && ability.Type == combat.AbilityDamage {
				hit = combat.Hit{Damage: ability.Power}
			}
			dmg := p.TakeDamage(hit.Damage)
			s.message(narrate(msgEnemyHit, hitReport{
				Name:     foe.Name(),
				Verb:     combat.DamageVerb(dmg),
				Damage:   dmg,
				Critical: hit.Critical,
			}))
		}
	}

	foe.TickCooldowns(used)
	foe.UpdateStatusEffects()
}
