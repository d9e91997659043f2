package game

import (
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/pixil98/go-adventure/internal/combat"
	"github.com/pixil98/go-errors"
)

// Snapshot is the saved form of a game in progress.
type Snapshot struct {
	Player        *Player      `json:"player"`
	CurrentRoom   string       `json:"currentRoom"`
	ExploredRooms []RoomState  `json:"exploredRooms"`
	Quests        []QuestSave  `json:"quests"`
	Enemies       []EnemyState `json:"enemies,omitempty"`
	Items         []ItemState  `json:"items,omitempty"`
	Mazes         []MazeState  `json:"mazes,omitempty"`
}

type RoomState struct {
	Id             string            `json:"id"`
	Items          []string          `json:"items"`
	Enemies        []string          `json:"enemies"`
	State          map[string]string `json:"state,omitempty"`
	Visited        bool              `json:"visited,omitempty"`
	HiddenFeatures []string          `json:"hiddenFeatures,omitempty"`
}

type QuestSave struct {
	Id            string              `json:"id"`
	State         QuestState          `json:"state"`
	Objectives    []ObjectiveProgress `json:"objectives"`
	Stage         int                 `json:"currentStage"`
	Hidden        bool                `json:"hidden,omitempty"`
	StartedAt     time.Time           `json:"timeStarted,omitzero"`
	CompletedAt   time.Time           `json:"timeCompleted,omitzero"`
	FailureReason string              `json:"failureReason,omitempty"`
}

type EnemyState struct {
	Id        string                         `json:"id"`
	Health    int                            `json:"health"`
	Stunned   bool                           `json:"isStunned,omitempty"`
	Defeated  bool                           `json:"isDefeated,omitempty"`
	Effects   map[string]combat.StatusEffect `json:"statusEffects,omitempty"`
	Cooldowns map[string]int                 `json:"cooldowns,omitempty"`
}

type ItemState struct {
	Id         string `json:"id"`
	Durability int    `json:"durability"`
}

type MazeState struct {
	Id       string      `json:"id"`
	Layout   [][]Cell    `json:"layout,omitempty"`
	Position Point       `json:"currentPosition"`
	Explored []Point     `json:"explored"`
	Solved   bool        `json:"solved,omitempty"`
	Items    []Placement `json:"items,omitempty"`
	Enemies  []Placement `json:"enemies,omitempty"`
}

// Validate checks the snapshot can be applied without consulting a world.
func (s *Snapshot) Validate() error {
	el := errors.NewErrorList()

	if s.Player == nil {
		el.Add(fmt.Errorf("player is missing"))
	} else if err := s.Player.Validate(); err != nil {
		el.Add(fmt.Errorf("player: %w", err))
	}
	if s.CurrentRoom == "" {
		el.Add(fmt.Errorf("current room is missing"))
	}
	for _, q := range s.Quests {
		switch q.State {
		case QuestInactive, QuestActive, QuestCompleted, QuestFailed:
		default:
			el.Add(fmt.Errorf("quest %s: unknown state %q", q.Id, q.State))
		}
	}

	return el.Err()
}

// Snapshot captures the current game.
func (w *World) Snapshot() (*Snapshot, error) {
	if !w.Started() {
		return nil, ErrNotStarted
	}
	reg := w.Registry

	s := &Snapshot{
		Player:      w.Player.Clone(),
		CurrentRoom: w.CurrentRoom,
	}

	for _, r := range reg.Rooms.All() {
		if !r.Explored {
			continue
		}
		s.ExploredRooms = append(s.ExploredRooms, RoomState{
			Id:             r.Id,
			Items:          slices.Clone(r.Items),
			Enemies:        slices.Clone(r.Enemies),
			State:          maps.Clone(r.State),
			Visited:        r.Visited,
			HiddenFeatures: r.HiddenFeatures(),
		})
	}

	for _, q := range reg.Quests.All() {
		s.Quests = append(s.Quests, QuestSave{
			Id:            q.Id,
			State:         q.State,
			Objectives:    slices.Clone(q.Objectives),
			Stage:         q.Stage,
			Hidden:        q.Hidden,
			StartedAt:     q.StartedAt,
			CompletedAt:   q.CompletedAt,
			FailureReason: q.FailureReason,
		})
	}

	for _, e := range reg.Enemies.All() {
		cd := map[string]int{}
		for _, a := range e.Abilities {
			if a.CurrentCooldown > 0 {
				cd[a.Id] = a.CurrentCooldown
			}
		}
		s.Enemies = append(s.Enemies, EnemyState{
			Id:        e.Id,
			Health:    e.Health,
			Stunned:   e.Stunned,
			Defeated:  e.Defeated,
			Effects:   maps.Clone(e.Effects),
			Cooldowns: cd,
		})
	}

	for _, i := range reg.Items.All() {
		if i.Wears() {
			s.Items = append(s.Items, ItemState{Id: i.Id, Durability: i.Durability})
		}
	}

	for _, m := range reg.Mazes.All() {
		s.Mazes = append(s.Mazes, MazeState{
			Id:       m.Id,
			Layout:   m.Layout,
			Position: m.Position,
			Explored: m.ExploredCells(),
			Solved:   m.Solved,
			Items:    m.itemPlacements(),
			Enemies:  m.enemyPlacements(),
		})
	}

	return s, nil
}

func (mi *MazeInstance) itemPlacements() []Placement {
	var out []Placement
	for _, p := range slices.SortedFunc(maps.Keys(mi.Items), comparePoints) {
		for _, id := range mi.Items[p] {
			out = append(out, Placement{Point: p, Id: id})
		}
	}
	return out
}

func (mi *MazeInstance) enemyPlacements() []Placement {
	var out []Placement
	for _, p := range slices.SortedFunc(maps.Keys(mi.Enemies), comparePoints) {
		out = append(out, Placement{Point: p, Id: mi.Enemies[p]})
	}
	return out
}

// Restore replaces the current game with s. The snapshot is validated
// against the registry first, so a rejected snapshot leaves the world as
// it was. Entities the snapshot does not mention keep their reset state
// and ids the registry does not know are skipped.
func (w *World) Restore(s *Snapshot) error {
	if err := s.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSnapshot, err)
	}
	reg := w.Registry
	if _, ok := reg.Rooms.Get(s.CurrentRoom); !ok {
		return fmt.Errorf("%w: %s: %w", ErrInvalidSnapshot, s.CurrentRoom, ErrRoomNotFound)
	}

	reg.Reset()
	w.Player = s.Player.Clone()
	w.CurrentRoom = s.CurrentRoom

	for _, rs := range s.ExploredRooms {
		r, ok := reg.Rooms.Get(rs.Id)
		if !ok {
			continue
		}
		r.Explored = true
		r.Visited = rs.Visited
		r.Items = slices.Clone(rs.Items)
		r.Enemies = slices.Clone(rs.Enemies)
		for k, v := range rs.State {
			r.UpdateState(k, v)
		}
		for id := range r.Hidden {
			r.Hidden[id] = slices.Contains(rs.HiddenFeatures, id)
		}
	}

	for _, qs := range s.Quests {
		q, ok := reg.Quests.Get(qs.Id)
		if !ok {
			continue
		}
		q.State = qs.State
		q.Stage = qs.Stage
		q.Hidden = qs.Hidden
		q.StartedAt = qs.StartedAt
		q.CompletedAt = qs.CompletedAt
		q.FailureReason = qs.FailureReason
		if len(qs.Objectives) > 0 {
			q.Objectives = slices.Clone(qs.Objectives)
		}
	}

	for _, es := range s.Enemies {
		e, ok := reg.Enemies.Get(es.Id)
		if !ok {
			continue
		}
		e.Health = min(max(es.Health, 0), e.MaxHealth)
		e.Defeated = es.Defeated || e.Health == 0
		e.Stunned = es.Stunned
		e.Effects = maps.Clone(es.Effects)
		if e.Effects == nil {
			e.Effects = map[string]combat.StatusEffect{}
		}
		for i := range e.Abilities {
			e.Abilities[i].CurrentCooldown = es.Cooldowns[e.Abilities[i].Id]
		}
	}

	for _, is := range s.Items {
		if i, ok := reg.Items.Get(is.Id); ok && i.Wears() {
			i.Durability = min(max(is.Durability, 0), i.Item.Durability)
		}
	}

	for _, ms := range s.Mazes {
		m, ok := reg.Mazes.Get(ms.Id)
		if !ok {
			continue
		}
		if m.fits(ms.Layout) {
			m.Layout = make([][]Cell, len(ms.Layout))
			for y, row := range ms.Layout {
				m.Layout[y] = slices.Clone(row)
			}
		}
		if m.IsValidMove(ms.Position) {
			m.Position = ms.Position
		}
		m.Explored = map[Point]bool{m.Maze.Start: true}
		for _, p := range ms.Explored {
			m.Explored[p] = true
		}
		m.Solved = ms.Solved
		m.Items = map[Point][]string{}
		for _, p := range ms.Items {
			m.AddItem(p.Point, p.Id)
		}
		m.Enemies = map[Point]string{}
		for _, p := range ms.Enemies {
			m.AddEnemy(p.Point, p.Id)
		}
	}

	return nil
}
