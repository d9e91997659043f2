package game

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/pixil98/go-adventure/internal/storage"
	"github.com/pixil98/go-errors"
)

// Directions a room exit may use.
var Directions = []string{"north", "south", "east", "west"}

// RoomRequirements must be met before the player may enter a room.
type RoomRequirements struct {
	Item  storage.Ref[*ItemInstance]  `json:"item"`
	Quest storage.Ref[*QuestInstance] `json:"quest"`
}

// Feature is a described fixture of a room that can be hidden or revealed.
type Feature struct {
	Id          string `json:"id"`
	Description string `json:"description"`
	Hidden      bool   `json:"hidden,omitempty"`
}

// RoomEvent reacts to a trigger: it rewrites room state, reveals or hides
// features and may chain to further events. Descriptions map a value of
// the room state key with the same name to extra description text.
type RoomEvent struct {
	Descriptions map[string]string `json:"descriptions,omitempty"`
	StateChanges map[string]string `json:"stateChanges,omitempty"`
	Reveal       []string          `json:"reveal,omitempty"`
	Hide         []string          `json:"hide,omitempty"`
	Message      string            `json:"message,omitempty"`
	Triggers     []string          `json:"triggers,omitempty"`
}

// EnterEvent is triggered the first time the player enters a room.
const EnterEvent = "enter"

// Room represents a location in the world.
type Room struct {
	Title        string                                `json:"title"`
	Description  string                                `json:"description"`
	Exits        map[string]storage.Ref[*RoomInstance] `json:"exits"`
	Items        []string                              `json:"items,omitempty"`
	Enemies      []string                              `json:"enemies,omitempty"`
	Requirements *RoomRequirements                     `json:"requirements,omitempty"`
	Maze         storage.Ref[*MazeInstance]            `json:"maze"`
	Features     []Feature                             `json:"features,omitempty"`
	InitialState map[string]string                     `json:"initialState,omitempty"`
	Events       map[string]RoomEvent                  `json:"events,omitempty"`
}

// Validate satisfies storage.ValidatingSpec. Exits naming rooms that do not
// exist are caught when the registry is built, not here.
func (r *Room) Validate() error {
	el := errors.NewErrorList()

	if r.Title == "" {
		el.Add(fmt.Errorf("room title is required"))
	}
	for dir, exit := range r.Exits {
		if !slices.Contains(Directions, dir) {
			el.Add(fmt.Errorf("exit %s: unknown direction", dir))
		}
		if !exit.IsZero() {
			el.Add(exit.Validate())
		}
	}
	seen := map[string]bool{}
	for _, f := range r.Features {
		if f.Id == "" {
			el.Add(fmt.Errorf("feature id is required"))
		}
		if seen[f.Id] {
			el.Add(fmt.Errorf("duplicate feature %s", f.Id))
		}
		seen[f.Id] = true
	}
	for id, ev := range r.Events {
		for _, t := range ev.Triggers {
			if _, ok := r.Events[t]; !ok {
				el.Add(fmt.Errorf("event %s: triggers unknown event %s", id, t))
			}
		}
	}

	return el.Err()
}

// RoomInstance is the live state of a Room definition.
type RoomInstance struct {
	Id   string
	Room *Room

	Items    []string
	Enemies  []string
	State    map[string]string
	Hidden   map[string]bool
	Explored bool
	Visited  bool
}

func NewRoomInstance(id string, def *Room) *RoomInstance {
	ri := &RoomInstance{Id: id, Room: def}
	ri.Reset()
	return ri
}

// Reset restores the room as defined and forgets the player was here.
func (ri *RoomInstance) Reset() {
	ri.Items = nil
	for _, id := range ri.Room.Items {
		ri.AddItem(id)
	}
	ri.Enemies = nil
	for _, id := range ri.Room.Enemies {
		ri.AddEnemy(id)
	}

	ri.State = maps.Clone(ri.Room.InitialState)
	if ri.State == nil {
		ri.State = map[string]string{}
	}

	ri.Hidden = map[string]bool{}
	for _, f := range ri.Room.Features {
		ri.Hidden[f.Id] = f.Hidden
	}

	ri.Explored = false
	ri.Visited = false
}

func (ri *RoomInstance) Title() string {
	return ri.Room.Title
}

// Description is the base description followed by visible features and
// any state-dependent text, separated by blank lines.
func (ri *RoomInstance) Description() string {
	parts := []string{ri.Room.Description}

	if f := ri.featureDescriptions(); f != "" {
		parts = append(parts, f)
	}
	if s := ri.stateDescriptions(); s != "" {
		parts = append(parts, s)
	}

	return strings.Join(parts, "\n\n")
}

func (ri *RoomInstance) featureDescriptions() string {
	var lines []string
	for _, f := range ri.Room.Features {
		if !ri.Hidden[f.Id] {
			lines = append(lines, f.Description)
		}
	}
	return strings.Join(lines, "\n")
}

func (ri *RoomInstance) stateDescriptions() string {
	var lines []string
	for _, key := range slices.Sorted(maps.Keys(ri.State)) {
		ev, ok := ri.Room.Events[key]
		if !ok {
			continue
		}
		if d := ev.Descriptions[ri.State[key]]; d != "" {
			lines = append(lines, d)
		}
	}
	return strings.Join(lines, "\n")
}

// AddItem adds id unless it is already present.
func (ri *RoomInstance) AddItem(id string) bool {
	if slices.Contains(ri.Items, id) {
		return false
	}
	ri.Items = append(ri.Items, id)
	return true
}

func (ri *RoomInstance) RemoveItem(id string) bool {
	i := slices.Index(ri.Items, id)
	if i < 0 {
		return false
	}
	ri.Items = slices.Delete(ri.Items, i, i+1)
	return true
}

// AddEnemy adds id unless it is already present.
func (ri *RoomInstance) AddEnemy(id string) bool {
	if slices.Contains(ri.Enemies, id) {
		return false
	}
	ri.Enemies = append(ri.Enemies, id)
	return true
}

func (ri *RoomInstance) RemoveEnemy(id string) bool {
	i := slices.Index(ri.Enemies, id)
	if i < 0 {
		return false
	}
	ri.Enemies = slices.Delete(ri.Enemies, i, i+1)
	return true
}

// Exit returns the room id reached by going dir.
func (ri *RoomInstance) Exit(dir string) (string, bool) {
	ref, ok := ri.Room.Exits[dir]
	if !ok || ref.IsZero() {
		return "", false
	}
	return ref.Id(), true
}

// Exits lists the usable directions in a fixed order.
func (ri *RoomInstance) Exits() []string {
	var out []string
	for _, dir := range Directions {
		if _, ok := ri.Exit(dir); ok {
			out = append(out, dir)
		}
	}
	return out
}

// UpdateState changes an existing state key. Unknown keys are refused.
func (ri *RoomInstance) UpdateState(key, value string) bool {
	if _, ok := ri.State[key]; !ok {
		return false
	}
	ri.State[key] = value
	return true
}

func (ri *RoomInstance) HideFeature(id string) bool {
	return ri.setHidden(id, true)
}

func (ri *RoomInstance) ShowFeature(id string) bool {
	return ri.setHidden(id, false)
}

func (ri *RoomInstance) setHidden(id string, hidden bool) bool {
	if _, ok := ri.Hidden[id]; !ok {
		return false
	}
	ri.Hidden[id] = hidden
	return true
}

// TriggerEvent fires the named event and every event it chains to, each at
// most once. It returns the messages produced in firing order, and false
// when the room has no such event.
func (ri *RoomInstance) TriggerEvent(name string) ([]string, bool) {
	if _, ok := ri.Room.Events[name]; !ok {
		return nil, false
	}

	var msgs []string
	fired := map[string]bool{}
	queue := []string{name}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if fired[cur] {
			continue
		}
		fired[cur] = true

		ev, ok := ri.Room.Events[cur]
		if !ok {
			continue
		}
		for _, k := range slices.Sorted(maps.Keys(ev.StateChanges)) {
			ri.UpdateState(k, ev.StateChanges[k])
		}
		for _, f := range ev.Reveal {
			ri.ShowFeature(f)
		}
		for _, f := range ev.Hide {
			ri.HideFeature(f)
		}
		if ev.Message != "" {
			msgs = append(msgs, ev.Message)
		}
		queue = append(queue, ev.Triggers...)
	}
	return msgs, true
}

func (ri *RoomInstance) Explore() {
	ri.Explored = true
}

func (ri *RoomInstance) Visit() {
	ri.Visited = true
}

// HiddenFeatures lists the ids of currently hidden features, sorted.
func (ri *RoomInstance) HiddenFeatures() []string {
	var out []string
	for id, h := range ri.Hidden {
		if h {
			out = append(out, id)
		}
	}
	slices.Sort(out)
	return out
}
