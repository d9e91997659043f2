package console

import (
	"strings"

	"github.com/pixil98/go-adventure/internal/commands"
)

// Command is one parsed line of input: an intent for the game or one of
// the commands the console handles itself.
type Command struct {
	Intent commands.Intent
	Local  string
}

// Console-only commands.
const (
	LocalHelp  = "help"
	LocalQuit  = "quit"
	LocalSlots = "slots"
)

var directionAliases = map[string]string{
	"n":     "north",
	"s":     "south",
	"e":     "east",
	"w":     "west",
	"north": "north",
	"south": "south",
	"east":  "east",
	"west":  "west",
}

var actionAliases = map[string]commands.Kind{
	"look":   commands.KindLook,
	"l":      commands.KindLook,
	"take":   commands.KindTake,
	"get":    commands.KindTake,
	"use":    commands.KindUse,
	"talk":   commands.KindTalk,
	"attack": commands.KindAttack,
	"fight":  commands.KindAttack,
	"equip":  commands.KindEquip,
	"map":    commands.KindMap,
	"save":   commands.KindSave,
}

// Parse turns a line into a command. It reports false for blank lines and
// words it does not know.
func Parse(line string) (Command, bool) {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return Command{}, false
	}
	verb, args := fields[0], fields[1:]
	arg := strings.Join(args, " ")

	if dir, ok := directionAliases[verb]; ok && len(args) == 0 {
		return Command{Intent: commands.Intent{Kind: commands.KindMove, Arg: dir}}, true
	}
	if kind, ok := actionAliases[verb]; ok {
		return Command{Intent: commands.Intent{Kind: kind}}, true
	}

	switch verb {
	case "go", "move":
		if len(args) != 1 {
			return Command{}, false
		}
		dir, ok := directionAliases[args[0]]
		if !ok {
			// Unknown directions still reach the game so it can refuse them.
			dir = args[0]
		}
		return Command{Intent: commands.Intent{Kind: commands.KindMove, Arg: dir}}, true
	case "new":
		return Command{Intent: commands.Intent{Kind: commands.KindNewGame}}, true
	case "load":
		return Command{Intent: commands.Intent{Kind: commands.KindLoad, Arg: arg}}, true
	case "delete":
		return Command{Intent: commands.Intent{Kind: commands.KindDelete, Arg: arg}}, true
	case "help", "?":
		return Command{Local: LocalHelp}, true
	case "quit", "exit", "q":
		return Command{Local: LocalQuit}, true
	case "slots", "saves":
		return Command{Local: LocalSlots}, true
	}
	return Command{}, false
}

const helpText = `Commands:
  n, s, e, w or go <direction>   move
  look, take, use, talk          act on the room
  attack, equip, map             fight, gear up, review explored rooms
  new                            start a new game
  save, load [slot]              save or restore (slots: save, autosave)
  delete [slot], slots           manage saved games
  quit                           leave`
