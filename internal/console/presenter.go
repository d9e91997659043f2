package console

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/pixil98/go-adventure/internal/display"
	"github.com/pixil98/go-adventure/internal/event"
	"github.com/pixil98/go-adventure/internal/save"
)

// Presenter renders game events as text. Events arrive on the game
// goroutine while the frontend prompts on its own, so every write goes
// through one lock.
type Presenter struct {
	mu    sync.Mutex
	out   io.Writer
	width int

	bus     *event.Bus
	subs    []event.Subscription
	playing atomic.Bool
}

func NewPresenter(out io.Writer, width int) *Presenter {
	return &Presenter{out: out, width: width}
}

// Write makes the presenter the one writer for its output.
func (p *Presenter) Write(b []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.out.Write(b)
}

// Playing reports whether a game has been started or loaded.
func (p *Presenter) Playing() bool {
	return p.playing.Load()
}

func (p *Presenter) println(text string) {
	fmt.Fprintln(p, display.WrapWidth(text, p.width))
}

// Attach subscribes to every topic the game publishes.
func (p *Presenter) Attach(bus *event.Bus) {
	p.bus = bus
	p.subs = append(p.subs,
		event.Subscribe(bus, event.GameStarted, p.gameStarted),
		event.Subscribe(bus, event.GameLoaded, p.gameLoaded),
		event.Subscribe(bus, event.GameSaved, p.gameSaved),
		event.Subscribe(bus, event.SaveDeleted, p.saveDeleted),
		event.Subscribe(bus, event.RoomEntered, p.roomEntered),
		event.Subscribe(bus, event.Message, p.message),
		event.Subscribe(bus, event.StatsUpdated, p.statsUpdated),
		event.Subscribe(bus, event.InventoryUpdated, p.inventoryUpdated),
		event.Subscribe(bus, event.MapUpdated, p.mapUpdated),
		event.Subscribe(bus, event.DataLoaded, p.dataLoaded),
		event.Subscribe(bus, event.QuestUpdated, p.questUpdated),
		event.Subscribe(bus, event.Error, p.failed),
	)
}

// Detach removes every subscription made by Attach.
func (p *Presenter) Detach() {
	for _, s := range p.subs {
		p.bus.Unsubscribe(s)
	}
	p.subs = nil
}

func (p *Presenter) gameStarted(event.Session) error {
	p.playing.Store(true)
	p.println("A new adventure begins.")
	return nil
}

func (p *Presenter) gameLoaded(event.Session) error {
	p.playing.Store(true)
	return nil
}

// gameSaved stays quiet: manual saves are narrated and autosaves are not
// worth interrupting the player for.
func (p *Presenter) gameSaved(event.Slot) error {
	return nil
}

func (p *Presenter) saveDeleted(event.Slot) error {
	return nil
}

func (p *Presenter) roomEntered(r event.RoomView) error {
	var b strings.Builder
	fmt.Fprintf(&b, "\n== %s ==\n%s", display.Title(r.Title), r.Description)
	if len(r.Exits) > 0 {
		fmt.Fprintf(&b, "\nExits: %s", strings.Join(r.Exits, ", "))
	} else {
		b.WriteString("\nExits: none")
	}
	if len(r.ItemNames) > 0 {
		names := make([]string, 0, len(r.ItemNames))
		for _, i := range r.ItemNames {
			names = append(names, i.Name)
		}
		fmt.Fprintf(&b, "\nItems: %s", strings.Join(names, ", "))
	}
	if len(r.EnemyNames) > 0 {
		fmt.Fprintf(&b, "\nEnemies: %s", strings.Join(r.EnemyNames, ", "))
	}
	p.println(b.String())
	return nil
}

func (p *Presenter) message(m event.Text) error {
	p.println(m.Text)
	return nil
}

func (p *Presenter) statsUpdated(s event.Stats) error {
	p.println(StatusLine(s))
	return nil
}

// StatusLine summarises the player's stats on one line.
func StatusLine(s event.Stats) string {
	return fmt.Sprintf("[HP %d/%d | MP %d/%d | Level %d | XP %d/%d]",
		s.Health, s.MaxHealth, s.Magic, s.MaxMagic, s.Level, s.Experience, s.NextLevelExp)
}

func (p *Presenter) inventoryUpdated(inv event.Inventory) error {
	if len(inv.Items) == 0 {
		p.println("Inventory: empty")
		return nil
	}
	names := make([]string, 0, len(inv.Items))
	for _, i := range inv.Items {
		names = append(names, i.Name)
	}
	p.println("Inventory: " + strings.Join(names, ", "))
	return nil
}

// mapUpdated has nothing to add: the map action narrates its own listing.
func (p *Presenter) mapUpdated(event.MapView) error {
	return nil
}

func (p *Presenter) dataLoaded(c event.DataCounts) error {
	p.println(fmt.Sprintf("Loaded %d rooms, %d items, %d enemies, %d quests and %d mazes.",
		c.Rooms, c.Items, c.Enemies, c.Quests, c.Mazes))
	return nil
}

func (p *Presenter) questUpdated(q event.Quest) error {
	if q.State != "active" {
		return nil
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Quest: %s", q.Title)
	for _, o := range q.Objectives {
		mark := " "
		if o.Completed {
			mark = "x"
		}
		fmt.Fprintf(&b, "\n  [%s] %s (%d/%d)", mark, o.Description, o.Progress, o.Quantity)
	}
	p.println(b.String())
	return nil
}

func (p *Presenter) failed(e event.Text) error {
	p.println("Error: " + display.Capitalize(e.Text))
	return nil
}

// SlotList describes the occupied save slots.
func SlotList(infos []save.Info) string {
	if len(infos) == 0 {
		return "No saved games."
	}
	lines := make([]string, 0, len(infos))
	for _, i := range infos {
		lines = append(lines, fmt.Sprintf("%s: level %d in %s, %s ago", i.Slot, i.Level, i.Room, i.Age))
	}
	return strings.Join(lines, "\n")
}
