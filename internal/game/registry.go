package game

import (
	"log/slog"
	"maps"
	"slices"

	"github.com/pixil98/go-adventure/internal/combat"
)

type resetter interface {
	Reset()
}

// Collection maps identifiers to the instances of one kind of entity.
type Collection[T resetter] struct {
	items map[string]T
}

func newCollection[T resetter]() *Collection[T] {
	return &Collection[T]{items: map[string]T{}}
}

// Register adds or replaces the entity stored under id.
func (c *Collection[T]) Register(id string, v T) {
	c.items[id] = v
}

// Get returns the entity for id. A missing id is not an error.
func (c *Collection[T]) Get(id string) (T, bool) {
	v, ok := c.items[id]
	return v, ok
}

// Ids returns every registered id, sorted.
func (c *Collection[T]) Ids() []string {
	return slices.Sorted(maps.Keys(c.items))
}

// All returns every entity ordered by id.
func (c *Collection[T]) All() []T {
	out := make([]T, 0, len(c.items))
	for _, id := range c.Ids() {
		out = append(out, c.items[id])
	}
	return out
}

func (c *Collection[T]) Len() int {
	return len(c.items)
}

func (c *Collection[T]) reset() {
	for _, v := range c.items {
		v.Reset()
	}
}

// Registry owns every entity instance in the world.
type Registry struct {
	Rooms   *Collection[*RoomInstance]
	Items   *Collection[*ItemInstance]
	Enemies *Collection[*EnemyInstance]
	Quests  *Collection[*QuestInstance]
	Mazes   *Collection[*MazeInstance]
}

// NewRegistry builds instances from the definitions. Each kind left empty
// by the dictionary gets exactly one default entity. r generates layouts
// for mazes that do not define one.
func NewRegistry(dict *Dictionary, r combat.Roller) *Registry {
	reg := &Registry{
		Rooms:   newCollection[*RoomInstance](),
		Items:   newCollection[*ItemInstance](),
		Enemies: newCollection[*EnemyInstance](),
		Quests:  newCollection[*QuestInstance](),
		Mazes:   newCollection[*MazeInstance](),
	}

	register(reg.Rooms, dict.Rooms.GetAll(), "room", DefaultRoomId, defaultRoom, NewRoomInstance)
	register(reg.Items, dict.Items.GetAll(), "item", DefaultItemId, defaultItem, NewItemInstance)
	register(reg.Enemies, dict.Enemies.GetAll(), "enemy", DefaultEnemyId, defaultEnemy, NewEnemyInstance)
	register(reg.Quests, dict.Quests.GetAll(), "quest", DefaultQuestId, defaultQuest, NewQuestInstance)
	register(reg.Mazes, dict.Mazes.GetAll(), "maze", DefaultMazeId, defaultMaze, func(id string, m *Maze) *MazeInstance {
		return NewMazeInstance(id, m, r)
	})

	for _, m := range reg.Mazes.All() {
		if !m.Solvable() {
			slog.Warn("maze end is unreachable from its start", "maze", m.Id)
		}
	}

	return reg
}

func register[D any, T resetter](c *Collection[T], defs map[string]D, kind, fallbackId string, fallback func() D, build func(string, D) T) {
	if len(defs) == 0 {
		slog.Info("no definitions loaded, using default", "kind", kind, "id", fallbackId)
		defs = map[string]D{fallbackId: fallback()}
	}
	for id, def := range defs {
		c.Register(id, build(id, def))
	}
}

// Reset returns every entity to its defined state.
func (r *Registry) Reset() {
	r.Rooms.reset()
	r.Items.reset()
	r.Enemies.reset()
	r.Quests.reset()
	r.Mazes.reset()
}

// Counts reports how many entities of each kind are registered.
type Counts struct {
	Rooms, Items, Enemies, Quests, Mazes int
}

func (r *Registry) Counts() Counts {
	return Counts{
		Rooms:   r.Rooms.Len(),
		Items:   r.Items.Len(),
		Enemies: r.Enemies.Len(),
		Quests:  r.Quests.Len(),
		Mazes:   r.Mazes.Len(),
	}
}
