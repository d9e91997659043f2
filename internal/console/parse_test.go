package console

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/pixil98/go-testutil"
)

func TestParse(t *testing.T) {
	tests := map[string]struct {
		line     string
		expOk    bool
		expIn    string
		expLocal string
	}{
		"short direction":   {line: "n", expOk: true, expIn: "move north"},
		"long direction":    {line: "West", expOk: true, expIn: "move west"},
		"go":                {line: "go east", expOk: true, expIn: "move east"},
		"go short":          {line: "go s", expOk: true, expIn: "move south"},
		"go anywhere":       {line: "go up", expOk: true, expIn: "move up"},
		"go nowhere":        {line: "go"},
		"look":              {line: "look", expOk: true, expIn: "look"},
		"get alias":         {line: "get", expOk: true, expIn: "take"},
		"fight alias":       {line: "fight", expOk: true, expIn: "attack"},
		"new game":          {line: "new", expOk: true, expIn: "new"},
		"load with slot":    {line: "load autosave", expOk: true, expIn: "load autosave"},
		"load without slot": {line: "load", expOk: true, expIn: "load"},
		"delete":            {line: "delete save", expOk: true, expIn: "delete save"},
		"quit":              {line: "quit", expOk: true, expLocal: LocalQuit},
		"help":              {line: "?", expOk: true, expLocal: LocalHelp},
		"slots":             {line: "saves", expOk: true, expLocal: LocalSlots},
		"blank":             {line: "   "},
		"nonsense":          {line: "dance wildly"},
		"direction args":    {line: "n please"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			cmd, ok := Parse(tt.line)
			testutil.AssertEqual(t, "ok", ok, tt.expOk)
			if !ok {
				return
			}
			testutil.AssertEqual(t, "local", cmd.Local, tt.expLocal)
			if tt.expLocal == "" {
				testutil.AssertEqual(t, "intent", cmd.Intent.String(), tt.expIn)
			}
		})
	}
}

func TestKeyIntent(t *testing.T) {
	tests := map[string]struct {
		key     tcell.Key
		r       rune
		expOk   bool
		expQuit bool
		expIn   string
	}{
		"w":            {key: tcell.KeyRune, r: 'w', expOk: true, expIn: "move north"},
		"a":            {key: tcell.KeyRune, r: 'a', expOk: true, expIn: "move west"},
		"arrow":        {key: tcell.KeyDown, expOk: true, expIn: "move south"},
		"right":        {key: tcell.KeyRight, expOk: true, expIn: "move east"},
		"look":         {key: tcell.KeyRune, r: 'l', expOk: true, expIn: "look"},
		"talk":         {key: tcell.KeyRune, r: 'k', expOk: true, expIn: "talk"},
		"attack":       {key: tcell.KeyRune, r: 'f', expOk: true, expIn: "attack"},
		"new":          {key: tcell.KeyRune, r: 'n', expOk: true, expIn: "new"},
		"save":         {key: tcell.KeyF5, expOk: true, expIn: "save"},
		"load":         {key: tcell.KeyF9, expOk: true, expIn: "load save"},
		"escape":       {key: tcell.KeyEscape, expOk: true, expQuit: true},
		"q":            {key: tcell.KeyRune, r: 'q', expOk: true, expQuit: true},
		"unbound rune": {key: tcell.KeyRune, r: 'z'},
		"unbound key":  {key: tcell.KeyF1},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			in, quit, ok := KeyIntent(tt.key, tt.r)
			testutil.AssertEqual(t, "ok", ok, tt.expOk)
			testutil.AssertEqual(t, "quit", quit, tt.expQuit)
			if tt.expIn != "" {
				testutil.AssertEqual(t, "intent", in.String(), tt.expIn)
			}
		})
	}
}
