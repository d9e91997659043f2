package commands

import (
	"context"
	"fmt"

	"github.com/pixil98/go-adventure/internal/event"
	"github.com/pixil98/go-adventure/internal/game"
)

// startNewGame throws away whatever game was running and starts over in
// the start room. A missing start room leaves the previous game intact.
func startNewGame(_ context.Context, s *Session, _ string) error {
	room, err := s.world.NewGame()
	if err != nil {
		return fmt.Errorf("starting game: %w", err)
	}

	s.publishSession(event.GameStarted, room)
	s.publishMap()

	s.roomEvent(room, game.EnterEvent)
	s.progress(game.ObjectiveVisit, room.Id)
	return nil
}

// roomEvent fires a room event and narrates it. The room is republished
// when the event changed anything worth showing.
func (s *Session) roomEvent(room *game.RoomInstance, name string) {
	msgs, ok := room.TriggerEvent(name)
	if !ok {
		return
	}
	for _, m := range msgs {
		s.message(m)
	}
	s.publishRoom(room)
}
