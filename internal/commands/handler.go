package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/pixil98/go-adventure/internal/combat"
	"github.com/pixil98/go-adventure/internal/event"
	"github.com/pixil98/go-adventure/internal/game"
	"github.com/pixil98/go-adventure/internal/save"
)

// HandlerFunc carries out one intent. Returning a UserError tells the
// player why nothing happened; any other error is a failure of the game
// itself.
type HandlerFunc func(ctx context.Context, s *Session, arg string) error

// Session applies intents to a world and publishes what changed. It runs
// one intent at a time: an intent submitted from inside an event handler
// is queued and runs once the current one has finished. A Session is not
// safe for concurrent use; see driver.Driver.
type Session struct {
	world *game.World
	bus   *event.Bus
	saves *save.Manager
	dice  combat.Roller
	now   func() time.Time

	handlers map[Kind]HandlerFunc
	queue    []Intent
	running  bool
}

type SessionOpt func(*Session)

// WithSaves enables the save, load, autosave and delete intents.
func WithSaves(m *save.Manager) SessionOpt {
	return func(s *Session) {
		s.saves = m
	}
}

// WithRoller replaces combat.Dice.
func WithRoller(r combat.Roller) SessionOpt {
	return func(s *Session) {
		s.dice = r
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) SessionOpt {
	return func(s *Session) {
		s.now = now
	}
}

func NewSession(world *game.World, bus *event.Bus, opts ...SessionOpt) *Session {
	s := &Session{
		world: world,
		bus:   bus,
		dice:  combat.Dice,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.handlers = map[Kind]HandlerFunc{
		KindNewGame:  startNewGame,
		KindMove:     move,
		KindLook:     look,
		KindTake:     take,
		KindUse:      use,
		KindTalk:     talk,
		KindAttack:   attack,
		KindEquip:    equip,
		KindMap:      showMap,
		KindSave:     saveGame,
		KindLoad:     loadGame,
		KindAutosave: autosave,
		KindDelete:   deleteSave,
	}
	return s
}

// World returns the world the session drives.
func (s *Session) World() *game.World {
	return s.world
}

// Exec runs in and every intent queued while it runs.
func (s *Session) Exec(ctx context.Context, in Intent) {
	s.queue = append(s.queue, in)
	if s.running {
		return
	}

	s.running = true
	defer func() { s.running = false }()

	for len(s.queue) > 0 {
		next := s.queue[0]
		s.queue = s.queue[1:]
		s.run(ctx, next)
	}
}

func (s *Session) run(ctx context.Context, in Intent) {
	h, ok := s.handlers[in.Kind]
	if !ok {
		s.message(narrate(msgUnknownCommand, in.String()))
		return
	}
	if err := in.Validate(); err != nil {
		s.message(narrate(msgUnknownCommand, in.String()))
		return
	}
	if in.Kind.needsGame() && !s.world.Started() {
		s.message(narrate(msgNoGame, nil))
		return
	}
	if in.Kind.needsLiving() && !s.world.Player.Alive() {
		s.message(narrate(msgDefeatedPlayer, nil))
		return
	}

	err := h(ctx, s, in.Arg)

	var ue *UserError
	switch {
	case errors.As(err, &ue):
		s.message(ue.Message)
	case err != nil:
		slog.Error("intent failed", "intent", in.String(), "error", err)
		event.Publish(s.bus, event.Error, event.Text{Text: err.Error()})
	}
}

// StartNewGame begins a fresh game in the start room.
func (s *Session) StartNewGame(ctx context.Context) {
	s.Exec(ctx, Intent{Kind: KindNewGame})
}

// Move walks the player one step in direction.
func (s *Session) Move(ctx context.Context, direction string) {
	s.Exec(ctx, Intent{Kind: KindMove, Arg: direction})
}

// PerformAction runs one of Actions.
func (s *Session) PerformAction(ctx context.Context, kind Kind) {
	s.Exec(ctx, Intent{Kind: kind})
}

// Save writes the game to the manual slot.
func (s *Session) Save(ctx context.Context) {
	s.Exec(ctx, Intent{Kind: KindSave})
}

// Load restores the game from the manual slot or the autosave slot.
func (s *Session) Load(ctx context.Context, fromAutosave bool) {
	slot := save.SlotSave
	if fromAutosave {
		slot = save.SlotAutosave
	}
	s.Exec(ctx, Intent{Kind: KindLoad, Arg: slot})
}

// Autosave quietly writes the game to the autosave slot.
func (s *Session) Autosave(ctx context.Context) {
	s.Exec(ctx, Intent{Kind: KindAutosave})
}

// DeleteSave empties slot.
func (s *Session) DeleteSave(ctx context.Context, slot string) {
	s.Exec(ctx, Intent{Kind: KindDelete, Arg: slot})
}

// AnnounceData publishes how many entities of each kind are loaded.
func (s *Session) AnnounceData() {
	c := s.world.Registry.Counts()
	event.Publish(s.bus, event.DataLoaded, event.DataCounts{
		Rooms:   c.Rooms,
		Items:   c.Items,
		Enemies: c.Enemies,
		Quests:  c.Quests,
		Mazes:   c.Mazes,
	})
}
