package save

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/pixil98/go-adventure/internal/game"
	"github.com/pixil98/go-adventure/internal/storage"
)

var (
	ErrNoSave      = errors.New("no saved game found")
	ErrUnknownSlot = errors.New("unknown save slot")
)

// Store is the persistence a Manager needs.
type Store interface {
	storage.Storer[*Record]
	storage.Deleter
}

// Manager keeps saved games in named slots.
type Manager struct {
	store Store
	now   func() time.Time
}

type ManagerOpt func(*Manager)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) ManagerOpt {
	return func(m *Manager) {
		m.now = now
	}
}

func NewManager(store Store, opts ...ManagerOpt) *Manager {
	m := &Manager{store: store, now: time.Now}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func checkSlot(slot string) error {
	if !slices.Contains(Slots, slot) {
		return fmt.Errorf("%q: %w", slot, ErrUnknownSlot)
	}
	return nil
}

// Save writes snap to slot, replacing what was there.
func (m *Manager) Save(slot string, snap *game.Snapshot) (*Record, error) {
	if err := checkSlot(slot); err != nil {
		return nil, err
	}

	rec := &Record{Slot: slot, Timestamp: m.now().UTC(), State: snap}
	if err := m.store.Save(slot, rec); err != nil {
		return nil, fmt.Errorf("saving %s: %w", slot, err)
	}
	return rec, nil
}

// Load returns the record in slot and whether it is stale.
func (m *Manager) Load(slot string) (*Record, bool, error) {
	if err := checkSlot(slot); err != nil {
		return nil, false, err
	}

	rec := m.store.Get(slot)
	if rec == nil {
		return nil, false, fmt.Errorf("%s: %w", slot, ErrNoSave)
	}
	return rec, rec.Stale(m.now()), nil
}

// Delete removes the record in slot. An empty slot is not an error.
func (m *Manager) Delete(slot string) error {
	if err := checkSlot(slot); err != nil {
		return err
	}
	if err := m.store.Delete(slot); err != nil {
		return fmt.Errorf("deleting %s: %w", slot, err)
	}
	return nil
}

// Has reports whether slot holds a record.
func (m *Manager) Has(slot string) bool {
	return m.store.Get(slot) != nil
}

// Info summarises a slot for display.
type Info struct {
	Slot      string
	Timestamp time.Time
	Level     int
	Room      string
	Age       string
}

// Info describes the record in slot.
func (m *Manager) Info(slot string) (Info, bool) {
	rec := m.store.Get(slot)
	if rec == nil || rec.State == nil {
		return Info{}, false
	}

	info := Info{
		Slot:      slot,
		Timestamp: rec.Timestamp,
		Room:      rec.State.CurrentRoom,
		Age:       Age(m.now().Sub(rec.Timestamp)),
	}
	if rec.State.Player != nil {
		info.Level = rec.State.Player.Level
	}
	return info, true
}

// List describes every occupied slot in slot order.
func (m *Manager) List() []Info {
	var out []Info
	for _, slot := range Slots {
		if info, ok := m.Info(slot); ok {
			out = append(out, info)
		}
	}
	return out
}

// Selector offers the occupied slots as a numbered menu.
func (m *Manager) Selector() *storage.SelectableStorer[*Record] {
	return storage.NewSelectableStorer[*Record](m.store)
}

// Age renders how long ago a record was written.
func Age(d time.Duration) string {
	minutes := int(d / time.Minute)
	if minutes < 60 {
		return fmt.Sprintf("%d minutes", minutes)
	}

	hours := minutes / 60
	if hours < 24 {
		return fmt.Sprintf("%dh %dm", hours, minutes%60)
	}

	return fmt.Sprintf("%dd %dh %dm", hours/24, hours%24, minutes%60)
}
