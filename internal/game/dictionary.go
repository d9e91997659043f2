package game

import (
	"log/slog"

	"github.com/pixil98/go-adventure/internal/storage"
)

// Dictionary holds all game definition stores. The registry is built from
// it once at load time.
type Dictionary struct {
	Rooms   storage.Storer[*Room]
	Items   storage.Storer[*Item]
	Enemies storage.Storer[*Enemy]
	Quests  storage.Storer[*Quest]
	Mazes   storage.Storer[*Maze]
}

// EmptyDictionary returns a dictionary of empty in-memory stores.
func EmptyDictionary() *Dictionary {
	return &Dictionary{
		Rooms:   storage.NewMemoryStore[*Room](nil),
		Items:   storage.NewMemoryStore[*Item](nil),
		Enemies: storage.NewMemoryStore[*Enemy](nil),
		Quests:  storage.NewMemoryStore[*Quest](nil),
		Mazes:   storage.NewMemoryStore[*Maze](nil),
	}
}

// CheckReferences logs every identifier in the definitions that names
// nothing. Dangling ids are tolerated at runtime, so they are never fatal.
// It returns the number found.
func (d *Dictionary) CheckReferences() int {
	rooms := d.Rooms.GetAll()
	items := d.Items.GetAll()
	enemies := d.Enemies.GetAll()
	quests := d.Quests.GetAll()
	mazes := d.Mazes.GetAll()

	dangling := 0
	report := func(kind, owner, ref string) {
		dangling++
		slog.Warn("dangling reference", "kind", kind, "owner", owner, "ref", ref)
	}

	for id, r := range rooms {
		for _, exit := range r.Exits {
			if _, ok := rooms[exit.Id()]; !exit.IsZero() && !ok {
				report("room", id, exit.Id())
			}
		}
		for _, i := range r.Items {
			if _, ok := items[i]; !ok {
				report("item", id, i)
			}
		}
		for _, e := range r.Enemies {
			if _, ok := enemies[e]; !ok {
				report("enemy", id, e)
			}
		}
		if m := r.Maze; !m.IsZero() {
			if _, ok := mazes[m.Id()]; !ok {
				report("maze", id, m.Id())
			}
		}
	}

	for id, e := range enemies {
		for _, l := range e.Loot {
			if _, ok := items[l]; !ok {
				report("item", id, l)
			}
		}
	}

	for id, q := range quests {
		for _, p := range q.Prerequisites {
			if _, ok := quests[p]; !ok {
				report("quest", id, p)
			}
		}
		for _, i := range q.Rewards.Items {
			if _, ok := items[i]; !ok {
				report("item", id, i)
			}
		}
	}

	return dangling
}
