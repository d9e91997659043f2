package game

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/pixil98/go-adventure/internal/combat"
	"github.com/pixil98/go-adventure/internal/storage"
	"github.com/pixil98/go-errors"
)

// Effects is what an item does to the player when used. Keys this program
// does not understand are kept in Extra and written back out unchanged.
type Effects struct {
	Health int                   `json:"health,omitempty"`
	Magic  int                   `json:"magic,omitempty"`
	Stats  map[string]int        `json:"stats,omitempty"`
	Status []combat.StatusEffect `json:"status,omitempty"`

	Extra storage.ExtensionState `json:"-"`
}

var effectKeys = []string{"health", "magic", "stats", "status"}

func (e *Effects) UnmarshalJSON(data []byte) error {
	type plain Effects
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}

	extra, err := storage.SplitKnown(data, effectKeys...)
	if err != nil {
		return err
	}

	*e = Effects(p)
	e.Extra = extra
	return nil
}

func (e Effects) MarshalJSON() ([]byte, error) {
	type plain Effects
	known, err := json.Marshal(plain(e))
	if err != nil {
		return nil, err
	}
	if len(e.Extra) == 0 {
		return known, nil
	}

	merged := map[string]json.RawMessage{}
	for k, v := range e.Extra {
		merged[k] = v
	}
	if err := json.Unmarshal(known, &merged); err != nil {
		return nil, err
	}
	return json.Marshal(merged)
}

// Empty reports whether using the item would change nothing.
func (e *Effects) Empty() bool {
	return e == nil || (e.Health == 0 && e.Magic == 0 && len(e.Stats) == 0 && len(e.Status) == 0)
}

// ItemRequirements gate use of an item.
type ItemRequirements struct {
	Level int            `json:"level,omitempty"`
	Stats map[string]int `json:"stats,omitempty"`
	Quest string         `json:"quest,omitempty"`
}

// Item defines a kind of object the player can carry.
type Item struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Type        string            `json:"type"`
	Effects     *Effects          `json:"effects,omitempty"`
	Usable      bool              `json:"usable,omitempty"`
	Consumable  bool              `json:"consumable,omitempty"`
	QuestItem   bool              `json:"questItem,omitempty"`
	Value       int               `json:"value,omitempty"`
	Rarity      string            `json:"rarity,omitempty"`
	Durability  int               `json:"durability,omitempty"` // zero means the item never wears out
	Requires    *ItemRequirements `json:"requirements,omitempty"`
	Stats       map[string]int    `json:"stats,omitempty"` // modifiers while equipped
	Tags        []string          `json:"tags,omitempty"`
}

// Validate satisfies storage.ValidatingSpec.
func (i *Item) Validate() error {
	el := errors.NewErrorList()

	if i.Name == "" {
		el.Add(fmt.Errorf("item name is required"))
	}
	if i.Durability < 0 {
		el.Add(fmt.Errorf("durability must not be negative"))
	}
	if i.Effects != nil {
		for _, s := range i.Effects.Status {
			if s.Id == "" {
				el.Add(fmt.Errorf("status effect id is required"))
			}
		}
	}

	return el.Err()
}

func (i *Item) rarity() string {
	if i.Rarity == "" {
		return "common"
	}
	return i.Rarity
}

// ItemInstance is the live copy of an Item definition.
type ItemInstance struct {
	Id         string
	Item       *Item
	Durability int
}

func NewItemInstance(id string, def *Item) *ItemInstance {
	ii := &ItemInstance{Id: id, Item: def}
	ii.Reset()
	return ii
}

func (ii *ItemInstance) Reset() {
	ii.Durability = ii.Item.Durability
}

func (ii *ItemInstance) Name() string {
	return ii.Item.Name
}

// Wears reports whether the item has durability at all.
func (ii *ItemInstance) Wears() bool {
	return ii.Item.Durability > 0
}

// CanUse reports whether p may use the item right now.
func (ii *ItemInstance) CanUse(p *Player, quests storage.Getter[*QuestInstance]) bool {
	if !ii.Item.Usable {
		return false
	}
	if ii.Wears() && ii.Durability <= 0 {
		return false
	}
	return ii.meetsRequirements(p, quests)
}

func (ii *ItemInstance) meetsRequirements(p *Player, quests storage.Getter[*QuestInstance]) bool {
	req := ii.Item.Requires
	if req == nil {
		return true
	}

	if req.Level > 0 && p.Level < req.Level {
		return false
	}
	for stat, v := range req.Stats {
		if p.Stats[stat] < v {
			return false
		}
	}
	if req.Quest != "" {
		q, ok := quests.Get(req.Quest)
		if !ok || !q.Completed() {
			return false
		}
	}
	return true
}

// Wear uses up one point of durability.
func (ii *ItemInstance) Wear() {
	if ii.Wears() && ii.Durability > 0 {
		ii.Durability--
	}
}

// Repair restores up to amount durability and returns how much was restored.
func (ii *ItemInstance) Repair(amount int) int {
	if !ii.Wears() {
		return 0
	}
	restored := min(max(amount, 0), ii.Item.Durability-ii.Durability)
	ii.Durability += restored
	return restored
}

// ItemCriteria filters items. Zero fields match anything.
type ItemCriteria struct {
	Type     string
	Rarity   string
	MinValue int
	Tags     []string
}

func (ii *ItemInstance) Matches(c ItemCriteria) bool {
	def := ii.Item
	if c.Type != "" && def.Type != c.Type {
		return false
	}
	if c.Rarity != "" && def.rarity() != c.Rarity {
		return false
	}
	if c.MinValue > 0 && def.Value < c.MinValue {
		return false
	}
	for _, t := range c.Tags {
		if !slices.Contains(def.Tags, t) {
			return false
		}
	}
	return true
}

// FullDescription describes the item along with its stats, effects,
// requirements and wear.
func (ii *ItemInstance) FullDescription() string {
	def := ii.Item
	var b strings.Builder
	b.WriteString(def.Description)

	if len(def.Stats) > 0 {
		b.WriteString("\n\nStats:")
		for _, stat := range slices.Sorted(maps.Keys(def.Stats)) {
			fmt.Fprintf(&b, "\n%s: %+d", stat, def.Stats[stat])
		}
	}

	if e := def.Effects; !e.Empty() {
		b.WriteString("\n\nEffects:")
		if e.Health != 0 {
			fmt.Fprintf(&b, "\nRestore %d Health", e.Health)
		}
		if e.Magic != 0 {
			fmt.Fprintf(&b, "\nRestore %d Magic", e.Magic)
		}
		for _, s := range e.Status {
			fmt.Fprintf(&b, "\n%s for %d turns", s.Id, s.Duration)
		}
	}

	if req := def.Requires; req != nil && (req.Level > 0 || len(req.Stats) > 0) {
		b.WriteString("\n\nRequirements:")
		if req.Level > 0 {
			fmt.Fprintf(&b, "\nLevel %d", req.Level)
		}
		for _, stat := range slices.Sorted(maps.Keys(req.Stats)) {
			fmt.Fprintf(&b, "\n%s: %d", stat, req.Stats[stat])
		}
	}

	if ii.Wears() {
		fmt.Fprintf(&b, "\n\nDurability: %d/%d", ii.Durability, def.Durability)
	}

	return b.String()
}
