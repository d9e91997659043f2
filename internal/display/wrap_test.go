package display

import (
	"testing"

	"github.com/pixil98/go-testutil"
)

func TestWrapWidth(t *testing.T) {
	tests := map[string]struct {
		text  string
		width int
		exp   string
	}{
		"fits":        {text: "a short line", width: 20, exp: "a short line"},
		"wraps":       {text: "the quick brown fox", width: 10, exp: "the quick\nbrown fox"},
		"no wrapping": {text: "the quick brown fox", width: 0, exp: "the quick brown fox"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			testutil.AssertEqual(t, "text", WrapWidth(tt.text, tt.width), tt.exp)
		})
	}
}

func TestTitle(t *testing.T) {
	tests := map[string]struct {
		in  string
		exp string
	}{
		"words":     {in: "great hall", exp: "Great Hall"},
		"empty":     {in: "", exp: ""},
		"uppercase": {in: "GAME SAVED", exp: "Game Saved"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			testutil.AssertEqual(t, "title", Title(tt.in), tt.exp)
		})
	}
}

func TestCapitalize(t *testing.T) {
	testutil.AssertEqual(t, "word", Capitalize("north"), "North")
	testutil.AssertEqual(t, "empty", Capitalize(""), "")
}
