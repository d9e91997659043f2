package game

import (
	"fmt"
	"time"
)

// World is the state of one game session: the registry plus the player and
// where they stand. Before a game starts Player is nil and CurrentRoom empty.
type World struct {
	Registry    *Registry
	Player      *Player
	CurrentRoom string
	StartRoom   string
}

func NewWorld(reg *Registry, startRoom string) *World {
	if startRoom == "" {
		startRoom = DefaultRoomId
	}
	return &World{Registry: reg, StartRoom: startRoom}
}

// Started reports whether a game is in progress.
func (w *World) Started() bool {
	return w.Player != nil && w.CurrentRoom != ""
}

// Room returns the room the player is in.
func (w *World) Room() (*RoomInstance, bool) {
	return w.Registry.Rooms.Get(w.CurrentRoom)
}

// NewGame resets every entity and puts a fresh player in the start room,
// which it returns. Nothing changes if the start room does not exist.
func (w *World) NewGame() (*RoomInstance, error) {
	start, ok := w.Registry.Rooms.Get(w.StartRoom)
	if !ok {
		return nil, fmt.Errorf("%s: %w", w.StartRoom, ErrNoStartRoom)
	}

	w.Registry.Reset()
	w.Player = NewPlayer()
	w.Enter(start)
	return start, nil
}

// Enter moves the player into room and marks it explored and visited. It
// reports whether this was the first visit since the last reset.
func (w *World) Enter(room *RoomInstance) bool {
	first := !room.Visited
	w.CurrentRoom = room.Id
	room.Explore()
	room.Visit()
	return first
}

// ExploredRooms lists the ids of explored rooms, sorted.
func (w *World) ExploredRooms() []string {
	var out []string
	for _, r := range w.Registry.Rooms.All() {
		if r.Explored {
			out = append(out, r.Id)
		}
	}
	return out
}

// QuestCompleted reports whether the quest exists and is completed.
func (w *World) QuestCompleted(id string) bool {
	q, ok := w.Registry.Quests.Get(id)
	return ok && q.Completed()
}

// HasItem, EnemyDefeated and CurrentRoomId let a World serve as the
// FailureContext for quests.
func (w *World) HasItem(id string) bool {
	if w.Player == nil {
		return false
	}
	if w.Player.HasItem(id) {
		return true
	}
	for _, eq := range w.Player.Equipment {
		if eq == id {
			return true
		}
	}
	return false
}

func (w *World) EnemyDefeated(id string) bool {
	e, ok := w.Registry.Enemies.Get(id)
	return ok && e.Defeated
}

func (w *World) CurrentRoomId() string {
	return w.CurrentRoom
}

// QuestEvent describes a quest changing state.
type QuestEvent struct {
	Quest    *QuestInstance
	Previous QuestState
	Stage    int
}

// Changed reports whether the quest state or stage moved.
func (e QuestEvent) Changed() bool {
	return e.Previous != e.Quest.State || e.Stage != e.Quest.Stage
}

// StartEligibleQuests starts every auto-start quest whose prerequisites
// are met and returns the quests it started.
func (w *World) StartEligibleQuests(now time.Time) []*QuestInstance {
	var started []*QuestInstance
	for _, q := range w.Registry.Quests.All() {
		if q.Quest.AutoStart && q.CanStart(w.QuestCompleted) && q.Start(now) {
			started = append(started, q)
		}
	}
	return started
}

// RecordProgress advances every active quest with a matching objective and
// then checks failure conditions. It returns the quests whose progress,
// stage or state changed, ordered by id.
func (w *World) RecordProgress(kind, target string, amount int, now time.Time) []QuestEvent {
	var out []QuestEvent
	for _, q := range w.Registry.Quests.All() {
		ev := QuestEvent{Quest: q, Previous: q.State, Stage: q.Stage}
		progressed := kind != "" && q.UpdateObjective(kind, target, amount, now)
		failed := q.CheckFailure(w, now)
		if progressed || failed {
			out = append(out, ev)
		}
	}
	return out
}
