package commands

import (
	"context"
	"strings"

	"github.com/pixil98/go-adventure/internal/game"
)

func look(_ context.Context, s *Session, _ string) error {
	room, ok := s.world.Room()
	if !ok {
		return game.ErrRoomNotFound
	}

	var items []string
	for _, n := range s.itemNames(room.Items) {
		items = append(items, n.Name)
	}

	s.message(narrate(msgLook, struct {
		Description string
		Items       []string
		Enemies     []string
	}{
		Description: room.Description(),
		Items:       items,
		Enemies:     names(s.enemies(room.Enemies)),
	}))
	if maze, ok := s.activeMaze(room); ok {
		s.message(strings.Join(maze.RenderArea(1), "\n"))
	}
	return nil
}

// talk has nobody to talk to yet; no entity holds dialogue.
func talk(_ context.Context, _ *Session, _ string) error {
	return narrateError(msgNoOne, nil)
}

// showMap lists the explored rooms, or draws the maze while the player is
// inside one.
func showMap(_ context.Context, s *Session, _ string) error {
	room, ok := s.world.Room()
	if !ok {
		return game.ErrRoomNotFound
	}

	if maze, ok := s.activeMaze(room); ok {
		s.message(strings.Join(maze.Render(), "\n"))
		return nil
	}

	var titles []string
	for _, id := range s.world.ExploredRooms() {
		if r, ok := s.world.Registry.Rooms.Get(id); ok {
			titles = append(titles, r.Title())
		}
	}
	s.message(narrate(msgExplored, struct{ Rooms []string }{titles}))
	s.publishMap()
	return nil
}
