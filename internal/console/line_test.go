package console

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/pixil98/go-adventure/internal/commands"
	"github.com/pixil98/go-adventure/internal/event"
	"github.com/pixil98/go-adventure/internal/game"
	"github.com/pixil98/go-adventure/internal/save"
	"github.com/pixil98/go-adventure/internal/storage"
	"github.com/pixil98/go-testutil"
)

var testTime = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type lineHarness struct {
	out     bytes.Buffer
	bus     *event.Bus
	intents []string
	quits   int
	line    *Line
}

func newLineHarness(input string, saves *save.Manager) *lineHarness {
	h := &lineHarness{bus: event.NewBus()}
	p := NewPresenter(&h.out, 0)
	p.Attach(h.bus)
	submit := func(_ context.Context, in commands.Intent) error {
		h.intents = append(h.intents, in.String())
		return nil
	}
	h.line = NewLine(strings.NewReader(input), p, submit, saves, func() { h.quits++ })
	return h
}

func (h *lineHarness) run(t *testing.T) {
	t.Helper()
	if err := h.line.Start(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func newSaves(t *testing.T, slots ...string) *save.Manager {
	t.Helper()
	m := save.NewManager(storage.NewMemoryStore[*save.Record](nil), save.WithClock(func() time.Time { return testTime }))
	for _, slot := range slots {
		if _, err := m.Save(slot, &game.Snapshot{CurrentRoom: "hall"}); err != nil {
			t.Fatalf("saving %s: %v", slot, err)
		}
	}
	return m
}

func TestLine(t *testing.T) {
	tests := map[string]struct {
		input      string
		slots      []string
		expIntents string
		expOutput  string
	}{
		"commands": {
			input:      "n\nlook\ngo east\n",
			expIntents: "move north,look,move east",
		},
		"blank lines": {
			input:      "\n   \ntake\n",
			expIntents: "take",
		},
		"unknown words": {
			input:     "dance\n",
			expOutput: `I don't understand "dance".`,
		},
		"quit stops reading": {
			input:     "quit\nlook\n",
			expOutput: "Goodbye!",
		},
		"help": {
			input:     "help\n",
			expOutput: "Commands:",
		},
		"slots when empty": {
			input:     "slots\n",
			expOutput: "No saved games.",
		},
		"slots": {
			input:     "slots\n",
			slots:     []string{save.SlotSave},
			expOutput: "save: level 0 in hall, 0 minutes ago",
		},
		"load names a slot": {
			input:      "load autosave\n",
			expIntents: "load autosave",
		},
		"load with no saves": {
			input:      "load\n",
			expIntents: "load save",
		},
		"load the only save": {
			input:      "load\n",
			slots:      []string{save.SlotAutosave},
			expIntents: "load autosave",
		},
		"load picks from menu": {
			input:      "load\n2\n",
			slots:      []string{save.SlotSave, save.SlotAutosave},
			expIntents: "load save",
			expOutput:  "Load which game?",
		},
		"delete picks from menu": {
			input:      "delete\n1\n",
			slots:      []string{save.SlotSave, save.SlotAutosave},
			expIntents: "delete autosave",
			expOutput:  "Delete which game?",
		},
		"bad selections give up": {
			input:      "load\n9\nx\n0\nlook\n",
			slots:      []string{save.SlotSave, save.SlotAutosave},
			expIntents: "look",
			expOutput:  "too many tries",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			h := newLineHarness(tt.input, newSaves(t, tt.slots...))
			h.run(t)

			testutil.AssertEqual(t, "intents", strings.Join(h.intents, ","), tt.expIntents)
			testutil.AssertEqual(t, "quits", h.quits, 1)
			if !strings.Contains(h.out.String(), tt.expOutput) {
				t.Errorf("output %q does not contain %q", h.out.String(), tt.expOutput)
			}
		})
	}
}

func TestLineConfirmsNewGame(t *testing.T) {
	tests := map[string]struct {
		playing    bool
		input      string
		expIntents string
	}{
		"no game yet":     {input: "new\n", expIntents: "new"},
		"declined":        {playing: true, input: "new\nno\n"},
		"accepted":        {playing: true, input: "new\ny\n", expIntents: "new"},
		"asks until sure": {playing: true, input: "new\nmaybe\nyes\n", expIntents: "new"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			h := newLineHarness(tt.input, nil)
			if tt.playing {
				event.Publish(h.bus, event.GameStarted, event.Session{RoomId: "hall", Level: 1})
			}
			h.run(t)

			testutil.AssertEqual(t, "intents", strings.Join(h.intents, ","), tt.expIntents)
		})
	}
}

func TestLineCancelled(t *testing.T) {
	h := newLineHarness("", nil)
	pr, pw := io.Pipe()
	t.Cleanup(func() { pw.Close() })
	h.line.in = pr
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := h.line.Start(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "quits", h.quits, 0)
}

