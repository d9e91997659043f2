package save

import (
	"fmt"
	"time"

	"github.com/pixil98/go-adventure/internal/game"
	"github.com/pixil98/go-errors"
)

// Slot names.
const (
	SlotSave     = "save"
	SlotAutosave = "autosave"
)

// Slots lists every slot, manual save first.
var Slots = []string{SlotSave, SlotAutosave}

// StaleAfter is the age past which loading a record warns the player.
const StaleAfter = 24 * time.Hour

// Record is one saved game.
type Record struct {
	Slot      string         `json:"slot"`
	Timestamp time.Time      `json:"timestamp"`
	State     *game.Snapshot `json:"state"`
}

// Validate satisfies storage.ValidatingSpec.
func (r *Record) Validate() error {
	el := errors.NewErrorList()

	if r.Timestamp.IsZero() {
		el.Add(fmt.Errorf("timestamp must be set"))
	}
	if r.State == nil {
		el.Add(fmt.Errorf("state must be set"))
	} else {
		el.Add(r.State.Validate())
	}

	return el.Err()
}

// Selector is the menu label for the record.
func (r *Record) Selector() string {
	return fmt.Sprintf("%s (%s)", r.Slot, r.Timestamp.UTC().Format("2006-01-02 15:04 MST"))
}

// Stale reports whether the record is older than StaleAfter at now.
func (r *Record) Stale(now time.Time) bool {
	return now.Sub(r.Timestamp) > StaleAfter
}
