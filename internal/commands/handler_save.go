package commands

import (
	"context"
	"errors"
	"log/slog"
	"slices"

	"github.com/pixil98/go-adventure/internal/event"
	"github.com/pixil98/go-adventure/internal/save"
)

func saveGame(_ context.Context, s *Session, _ string) error {
	if err := s.writeSlot(save.SlotSave); err != nil {
		slog.Error("saving game", "error", err)
		return narrateError(msgSaveFailed, nil)
	}
	s.message(narrate(msgSaved, nil))
	return nil
}

// autosave writes the autosave slot without a word to the player. Only
// the gameSaved event tells anyone it happened.
func autosave(_ context.Context, s *Session, _ string) error {
	if !s.world.Started() {
		return nil
	}
	if err := s.writeSlot(save.SlotAutosave); err != nil {
		slog.Warn("autosave failed", "error", err)
	}
	return nil
}

func (s *Session) writeSlot(slot string) error {
	if s.saves == nil {
		return errors.New("saving is not configured")
	}

	snap, err := s.world.Snapshot()
	if err != nil {
		return err
	}
	if _, err := s.saves.Save(slot, snap); err != nil {
		return err
	}

	event.Publish(s.bus, event.GameSaved, event.Slot{Name: slot})
	return nil
}

// loadGame replaces the running game with the one saved in slot. A save
// that fails to restore leaves the running game untouched.
func loadGame(_ context.Context, s *Session, slot string) error {
	if s.saves == nil {
		slog.Error("loading game", "error", "saving is not configured")
		return narrateError(msgLoadFailed, nil)
	}

	rec, stale, err := s.saves.Load(slot)
	switch {
	case errors.Is(err, save.ErrNoSave):
		return narrateError(msgNoSave, nil)
	case err != nil:
		slog.Error("loading game", "slot", slot, "error", err)
		return narrateError(msgLoadFailed, nil)
	}

	if err := s.world.Restore(rec.State); err != nil {
		slog.Error("restoring game", "slot", slot, "error", err)
		return narrateError(msgLoadFailed, nil)
	}

	if stale {
		s.message(narrate(msgStaleSave, nil))
	}

	room, _ := s.world.Room()
	s.publishSession(event.GameLoaded, room)
	s.publishInventory()
	s.publishMap()
	s.message(narrate(msgLoaded, nil))
	return nil
}

func deleteSave(_ context.Context, s *Session, slot string) error {
	if !slices.Contains(save.Slots, slot) {
		return narrateError(msgUnknownCommand, Intent{Kind: KindDelete, Arg: slot}.String())
	}
	if s.saves == nil || !s.saves.Has(slot) {
		return narrateError(msgNoSave, nil)
	}
	if err := s.saves.Delete(slot); err != nil {
		return err
	}

	event.Publish(s.bus, event.SaveDeleted, event.Slot{Name: slot})
	s.message(narrate(msgDeleted, struct{ Slot string }{slot}))
	return nil
}
