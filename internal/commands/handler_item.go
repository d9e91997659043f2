package commands

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/pixil98/go-adventure/internal/game"
)

// take picks up the first item in the room that exists.
func take(_ context.Context, s *Session, _ string) error {
	room, ok := s.world.Room()
	if !ok {
		return game.ErrRoomNotFound
	}

	var item *game.ItemInstance
	for _, id := range room.Items {
		if i, ok := s.world.Registry.Items.Get(id); ok {
			item = i
			break
		}
		slog.Warn("room holds an unknown item", "room", room.Id, "item", id)
	}
	if item == nil {
		return narrateError(msgNothingToTake, nil)
	}

	room.RemoveItem(item.Id)
	s.world.Player.AddItem(item.Id)

	s.message(narrate(msgTook, named{Name: item.Name()}))
	s.publishInventory()
	s.publishRoom(room)

	s.progress(game.ObjectiveCollect, item.Id)
	return nil
}

// use applies the first item in the inventory and uses it up.
func use(_ context.Context, s *Session, _ string) error {
	p := s.world.Player
	if len(p.Inventory) == 0 {
		return narrateError(msgNoItems, nil)
	}

	id := p.Inventory[0]
	item, ok := s.world.Registry.Items.Get(id)
	if !ok {
		slog.Warn("inventory holds an unknown item", "item", id)
		return narrateError(msgCantUse, named{Name: id})
	}
	if !item.CanUse(p, s.world.Registry.Quests) {
		return narrateError(msgCantUse, named{Name: item.Name()})
	}
	if item.Item.Effects.Empty() {
		return narrateError(msgNoEffect, named{Name: item.Name()})
	}

	p.ApplyEffects(item.Item.Effects)
	item.Wear()
	p.RemoveItem(id)

	s.message(narrate(msgUsed, named{Name: item.Name()}))
	s.publishStats()
	s.publishInventory()

	s.progress(game.ObjectiveUse, id)
	return nil
}

// equip wears the first inventory item that fits an equipment slot.
func equip(_ context.Context, s *Session, _ string) error {
	p := s.world.Player
	items := s.world.Registry.Items

	i := slices.IndexFunc(p.Inventory, func(id string) bool {
		item, ok := items.Get(id)
		return ok && slices.ContainsFunc(game.Slots, func(slot string) bool {
			return item.Matches(game.ItemCriteria{Type: slot})
		})
	})
	if i < 0 {
		return narrateError(msgNothingToEquip, nil)
	}

	item, _ := items.Get(p.Inventory[i])
	if err := p.Equip(item, items); err != nil {
		return fmt.Errorf("equipping %s: %w", item.Id, err)
	}

	s.message(narrate(msgEquipped, named{Name: item.Name()}))
	s.publishStats()
	s.publishInventory()
	return nil
}
