package commands

import (
	"bytes"
	"fmt"
	"log/slog"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

// templateFuncs provides utility functions for templates.
var templateFuncs = sprig.TxtFuncMap()

// ExpandTemplate expands a template string using the provided data.
// The data can be any struct - templates access fields via {{ .FieldName }}.
func ExpandTemplate(tmplStr string, data any) (string, error) {
	tmpl, err := template.New("").Funcs(templateFuncs).Parse(tmplStr)
	if err != nil {
		return "", fmt.Errorf("parsing template: %w", err)
	}

	var buf bytes.Buffer
	err = tmpl.Execute(&buf, data)
	if err != nil {
		return "", fmt.Errorf("executing template: %w", err)
	}

	return buf.String(), nil
}

// Narration keys.
const (
	msgNoExit         = "noExit"
	msgNeedItem       = "needItem"
	msgNeedQuest      = "needQuest"
	msgLook           = "look"
	msgNothingToTake  = "nothingToTake"
	msgTook           = "took"
	msgNoItems        = "noItems"
	msgCantUse        = "cantUse"
	msgNoEffect       = "noEffect"
	msgUsed           = "used"
	msgNoOne          = "noOne"
	msgNoGame         = "noGame"
	msgDefeatedPlayer = "playerDefeated"
	msgNothingToFight = "nothingToFight"
	msgNothingToEquip = "nothingToEquip"
	msgEquipped       = "equipped"
	msgExplored       = "explored"
	msgMazeEnter      = "mazeEnter"
	msgMazeBlocked    = "mazeBlocked"
	msgMazeMoves      = "mazeMoves"
	msgMazeSolved     = "mazeSolved"
	msgMazeFound      = "mazeFound"
	msgMazeEnemy      = "mazeEnemy"
	msgQuestStarted   = "questStarted"
	msgQuestStage     = "questStage"
	msgQuestCompleted = "questCompleted"
	msgQuestFailed    = "questFailed"
	msgQuestReward    = "questReward"
	msgLevelUp        = "levelUp"
	msgPlayerHit      = "playerHit"
	msgPlayerMissed   = "playerMissed"
	msgEnemyHit       = "enemyHit"
	msgEnemyMissed    = "enemyMissed"
	msgEnemyHeals     = "enemyHeals"
	msgEnemyGuards    = "enemyGuards"
	msgEnemyStunned   = "enemyStunned"
	msgEnemyDefeated  = "enemyDefeated"
	msgExperience     = "experience"
	msgSaved          = "saved"
	msgSaveFailed     = "saveFailed"
	msgNoSave         = "noSave"
	msgStaleSave      = "staleSave"
	msgLoaded         = "loaded"
	msgLoadFailed     = "loadFailed"
	msgDeleted        = "deleted"
	msgUnknownCommand = "unknownCommand"
	msgStartFailed    = "startFailed"
)

var narration = map[string]string{
	msgNoExit:         "You can't go that way.",
	msgNeedItem:       "You need {{ .Name }} to enter this room.",
	msgNeedQuest:      `You must complete "{{ .Title }}" to enter this room.`,
	msgLook:           "{{ .Description }}{{ with .Items }}\nYou see: {{ join \", \" . }}{{ end }}{{ with .Enemies }}\nEnemies present: {{ join \", \" . }}{{ end }}",
	msgNothingToTake:  "There's nothing here to take.",
	msgTook:           "You took the {{ .Name }}.",
	msgNoItems:        "You don't have any items to use.",
	msgCantUse:        "You can't use the {{ .Name }}.",
	msgNoEffect:       "The {{ .Name }} has no effect.",
	msgUsed:           "You used the {{ .Name }}.",
	msgNoOne:          "There's no one here to talk to.",
	msgNoGame:         "Start a new game first.",
	msgDefeatedPlayer: "You have been defeated. Start a new game or load a save.",
	msgNothingToFight: "There's nothing here to fight.",
	msgNothingToEquip: "You have nothing to equip.",
	msgEquipped:       "You equip the {{ .Name }}.",
	msgExplored:       "Explored rooms: {{ join \", \" .Rooms }}",
	msgMazeEnter:      "You enter {{ .Name }}. {{ .Description }}",
	msgMazeBlocked:    "You can't move in that direction.",
	msgMazeMoves:      "{{ if .Moves }}You can go: {{ join \", \" .Moves }}.{{ else }}There is nowhere to go.{{ end }}",
	msgMazeSolved:     "You found the way out of {{ .Name }}!",
	msgMazeFound:      "You found the {{ .Name }}.",
	msgMazeEnemy:      "A {{ .Name }} blocks your path!",
	msgQuestStarted:   `New quest: "{{ .Title }}"`,
	msgQuestStage:     `Quest "{{ .Title }}": {{ .Stage }}`,
	msgQuestCompleted: `Quest completed: "{{ .Title }}"`,
	msgQuestFailed:    `Quest failed: "{{ .Title }}"{{ with .Reason }} {{ . }}{{ end }}`,
	msgQuestReward:    "You received: {{ join \", \" .Items }}.",
	msgLevelUp:        "You reached level {{ .Level }}!",
	msgPlayerHit:      "You {{ .Verb }} the {{ .Name }} for {{ .Damage }} damage.{{ if .Critical }} Critical hit!{{ end }}",
	msgPlayerMissed:   "The {{ .Name }} dodges your attack.",
	msgEnemyHit:       "The {{ .Name }} {{ .Verb }} you for {{ .Damage }} damage.{{ if .Critical }} Critical hit!{{ end }}",
	msgEnemyMissed:    "The {{ .Name }} misses you.",
	msgEnemyHeals:     "The {{ .Name }} uses {{ .Ability }} and recovers {{ .Amount }} health.",
	msgEnemyGuards:    "The {{ .Name }} uses {{ .Ability }}.",
	msgEnemyStunned:   "The {{ .Name }} is stunned.",
	msgEnemyDefeated:  "You defeated the {{ .Name }}!",
	msgExperience:     "You gain {{ .Amount }} experience.",
	msgSaved:          "Game saved successfully.",
	msgSaveFailed:     "Failed to save game.",
	msgNoSave:         "No saved game found.",
	msgStaleSave:      "Warning: This save is more than 24 hours old.",
	msgLoaded:         "Game loaded successfully.",
	msgLoadFailed:     "Failed to load game.",
	msgDeleted:        "Deleted the {{ .Slot }} slot.",
	msgUnknownCommand: "Unknown command: {{ . }}",
	msgStartFailed:    "Failed to start game: {{ . }}",
}

// narrate renders the named narration with data. A template that fails
// to render is logged and its raw text returned.
func narrate(name string, data any) string {
	tmpl, ok := narration[name]
	if !ok {
		slog.Error("unknown narration", "name", name)
		return name
	}

	out, err := ExpandTemplate(tmpl, data)
	if err != nil {
		slog.Error("rendering narration", "name", name, "error", err)
		return tmpl
	}
	return out
}

// named is the template data for narrations that only need a name.
type named struct {
	Name string
}
