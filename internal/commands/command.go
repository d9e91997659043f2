package commands

import "fmt"

// Kind names what an intent asks the session to do.
type Kind string

const (
	KindNewGame  Kind = "new"
	KindMove     Kind = "move"
	KindLook     Kind = "look"
	KindTake     Kind = "take"
	KindUse      Kind = "use"
	KindTalk     Kind = "talk"
	KindAttack   Kind = "attack"
	KindEquip    Kind = "equip"
	KindMap      Kind = "map"
	KindSave     Kind = "save"
	KindLoad     Kind = "load"
	KindAutosave Kind = "autosave"
	KindDelete   Kind = "delete"
)

// Actions are the kinds accepted by PerformAction.
var Actions = []Kind{KindLook, KindTake, KindUse, KindTalk, KindAttack, KindEquip, KindMap}

// Intent is one request from the player or the autosave timer. Arg holds
// the direction for move and the slot for load and delete. An unknown
// direction is refused by the move handler like a missing exit.
type Intent struct {
	Kind Kind   `json:"kind"`
	Arg  string `json:"arg,omitempty"`
}

// Validate checks the argument an intent carries.
func (i Intent) Validate() error {
	switch i.Kind {
	case KindLoad, KindDelete:
		if i.Arg == "" {
			return fmt.Errorf("%s needs a slot", i.Kind)
		}
	}
	return nil
}

func (i Intent) String() string {
	if i.Arg == "" {
		return string(i.Kind)
	}
	return fmt.Sprintf("%s %s", i.Kind, i.Arg)
}

// needsGame reports whether the intent only makes sense with a game in
// progress.
func (k Kind) needsGame() bool {
	switch k {
	case KindNewGame, KindLoad, KindDelete, KindAutosave:
		return false
	}
	return true
}

// needsLiving reports whether a defeated player is barred from it.
func (k Kind) needsLiving() bool {
	switch k {
	case KindMove, KindTake, KindUse, KindTalk, KindAttack, KindEquip:
		return true
	}
	return false
}
