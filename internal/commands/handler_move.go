package commands

import (
	"context"
	"log/slog"
	"slices"

	"github.com/pixil98/go-adventure/internal/game"
)

func move(_ context.Context, s *Session, dir string) error {
	here, ok := s.world.Room()
	if !ok {
		return game.ErrRoomNotFound
	}

	if maze, ok := s.activeMaze(here); ok {
		return s.moveInMaze(here, maze, dir)
	}

	if !slices.Contains(game.Directions, dir) {
		return narrateError(msgNoExit, nil)
	}
	targetId, ok := here.Exit(dir)
	if !ok {
		return narrateError(msgNoExit, nil)
	}
	target, ok := s.world.Registry.Rooms.Get(targetId)
	if !ok {
		slog.Warn("exit leads to an unknown room", "room", here.Id, "direction", dir, "target", targetId)
		return narrateError(msgNoExit, nil)
	}
	if err := s.checkRequirements(target); err != nil {
		return err
	}

	first := s.world.Enter(target)
	s.publishRoom(target)
	s.publishMap()

	p := s.world.Player
	if len(p.Conditions) > 0 {
		p.TickConditions()
		s.publishStats()
	}

	if first {
		s.roomEvent(target, game.EnterEvent)
	}
	if maze, ok := s.activeMaze(target); ok {
		s.message(narrate(msgMazeEnter, maze.Maze))
		s.message(narrate(msgMazeMoves, struct{ Moves []string }{maze.AvailableMoves()}))
	}

	s.progress(game.ObjectiveVisit, target.Id)
	return nil
}

// checkRequirements refuses entry to a room whose item or quest
// requirement the player has not met.
func (s *Session) checkRequirements(room *game.RoomInstance) error {
	req := room.Room.Requirements
	if req == nil {
		return nil
	}

	if !req.Item.IsZero() && !s.world.HasItem(req.Item.Id()) {
		name := req.Item.Id()
		if item, ok := req.Item.Resolve(s.world.Registry.Items); ok {
			name = item.Name()
		}
		return narrateError(msgNeedItem, named{Name: name})
	}

	if !req.Quest.IsZero() && !s.world.QuestCompleted(req.Quest.Id()) {
		title := req.Quest.Id()
		if q, ok := req.Quest.Resolve(s.world.Registry.Quests); ok {
			title = q.Title()
		}
		return narrateError(msgNeedQuest, struct{ Title string }{title})
	}
	return nil
}

// activeMaze returns the unsolved maze the room holds, if any.
func (s *Session) activeMaze(room *game.RoomInstance) (*game.MazeInstance, bool) {
	ref := room.Room.Maze
	if ref.IsZero() {
		return nil, false
	}
	maze, ok := ref.Resolve(s.world.Registry.Mazes)
	if !ok {
		slog.Warn("room names an unknown maze", "room", room.Id, "maze", ref.Id())
		return nil, false
	}
	return maze, !maze.Solved
}

// moveInMaze steps through the maze. Items on the new cell are picked up
// and enemies on it come out into the room to be fought.
func (s *Session) moveInMaze(room *game.RoomInstance, maze *game.MazeInstance, dir string) error {
	if !maze.Move(dir) {
		return narrateError(msgMazeBlocked, nil)
	}
	here := maze.Position

	var found []string
	for _, id := range slices.Clone(maze.ItemsHere()) {
		maze.RemoveItem(here, id)
		item, ok := s.world.Registry.Items.Get(id)
		if !ok {
			slog.Warn("maze holds an unknown item", "maze", maze.Id, "item", id)
			continue
		}
		s.world.Player.AddItem(id)
		s.message(narrate(msgMazeFound, named{Name: item.Name()}))
		found = append(found, id)
	}
	if len(found) > 0 {
		s.publishInventory()
	}

	if id, ok := maze.EnemyHere(); ok {
		maze.RemoveEnemy(here)
		if e, ok := s.world.Registry.Enemies.Get(id); ok && !e.Defeated {
			room.AddEnemy(id)
			s.message(narrate(msgMazeEnemy, named{Name: e.Name()}))
		}
	}

	if maze.Solved {
		s.message(narrate(msgMazeSolved, maze.Maze))
	} else {
		s.message(narrate(msgMazeMoves, struct{ Moves []string }{maze.AvailableMoves()}))
	}
	s.publishRoom(room)

	for _, id := range found {
		s.progress(game.ObjectiveCollect, id)
	}
	if maze.Solved {
		s.progress(game.ObjectiveSolve, maze.Id)
	}
	return nil
}
