package commands

import (
	"log/slog"
	"maps"

	"github.com/pixil98/go-adventure/internal/event"
	"github.com/pixil98/go-adventure/internal/game"
)

func (s *Session) message(text string) {
	event.Publish(s.bus, event.Message, event.Text{Text: text})
}

// itemNames resolves ids to names, dropping ids that name nothing.
func (s *Session) itemNames(ids []string) []event.ItemName {
	out := make([]event.ItemName, 0, len(ids))
	for _, id := range ids {
		item, ok := s.world.Registry.Items.Get(id)
		if !ok {
			slog.Warn("unknown item id", "item", id)
			continue
		}
		out = append(out, event.ItemName{Id: id, Name: item.Name(), Description: item.FullDescription()})
	}
	return out
}

// enemies resolves ids to live enemies, dropping ids that name nothing.
func (s *Session) enemies(ids []string) []*game.EnemyInstance {
	var out []*game.EnemyInstance
	for _, id := range ids {
		e, ok := s.world.Registry.Enemies.Get(id)
		if !ok {
			slog.Warn("unknown enemy id", "enemy", id)
			continue
		}
		if !e.Defeated {
			out = append(out, e)
		}
	}
	return out
}

func names[T interface{ Name() string }](vals []T) []string {
	out := make([]string, 0, len(vals))
	for _, v := range vals {
		out = append(out, v.Name())
	}
	return out
}

func (s *Session) publishRoom(room *game.RoomInstance) {
	event.Publish(s.bus, event.RoomEntered, event.RoomView{
		Id:          room.Id,
		Title:       room.Title(),
		Description: room.Description(),
		Exits:       s.exits(room),
		ItemNames:   s.itemNames(room.Items),
		EnemyNames:  names(s.enemies(room.Enemies)),
	})
}

// exits lists the directions the player can take from room. Inside an
// unsolved maze the maze decides.
func (s *Session) exits(room *game.RoomInstance) []string {
	if maze, ok := s.activeMaze(room); ok {
		return maze.AvailableMoves()
	}
	return room.Exits()
}

func (s *Session) publishStats() {
	p := s.world.Player
	event.Publish(s.bus, event.StatsUpdated, event.Stats{
		Health:       p.Health,
		MaxHealth:    p.MaxHealth,
		Magic:        p.Magic,
		MaxMagic:     p.MaxMagic,
		Level:        p.Level,
		Experience:   p.Experience,
		NextLevelExp: p.NextLevelExp(),
		Stats:        maps.Clone(p.Stats),
	})
}

func (s *Session) publishInventory() {
	p := s.world.Player
	event.Publish(s.bus, event.InventoryUpdated, event.Inventory{
		Inventory: append([]string{}, p.Inventory...),
		Items:     s.itemNames(p.Inventory),
	})
}

func (s *Session) publishMap() {
	event.Publish(s.bus, event.MapUpdated, event.MapView{
		CurrentRoom:   s.world.CurrentRoom,
		ExploredRooms: s.world.ExploredRooms(),
	})
}

func (s *Session) publishQuest(q *game.QuestInstance) {
	view := event.Quest{
		Id:    q.Id,
		Title: q.Title(),
		State: string(q.State),
		Stage: q.Stage,
	}
	for _, o := range q.Objectives {
		view.Objectives = append(view.Objectives, event.Objective{
			Description: o.String(),
			Progress:    o.Progress,
			Quantity:    o.Quantity,
			Completed:   o.Completed,
		})
	}
	event.Publish(s.bus, event.QuestUpdated, view)
}

// publishSession sends the full picture of a freshly started or loaded game.
func (s *Session) publishSession(topic event.Topic[event.Session], room *game.RoomInstance) {
	event.Publish(s.bus, topic, event.Session{RoomId: room.Id, Level: s.world.Player.Level})
	s.publishRoom(room)
	s.publishStats()
}
