package internal

import (
	"bufio"
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/pixil98/go-testutil"
)

type terminal struct {
	*bufio.Reader
	out bytes.Buffer
}

func newTerminal(input string) *terminal {
	return &terminal{Reader: bufio.NewReader(strings.NewReader(input))}
}

func (t *terminal) Write(p []byte) (int, error) {
	return t.out.Write(p)
}

func TestPrompt(t *testing.T) {
	tests := map[string]struct {
		input  string
		opts   []promptOption
		exp    string
		expOut string
		expErr string
	}{
		"plain line": {
			input:  "hello\n",
			exp:    "hello",
			expOut: "> ",
		},
		"windows line ending": {
			input:  "hello\r\n",
			exp:    "hello",
			expOut: "> ",
		},
		"no trailing newline": {
			input:  "hello",
			exp:    "hello",
			expOut: "> ",
		},
		"retries until valid": {
			input:  "x\nok\n",
			opts:   []promptOption{WithValidator(func(s string) (bool, string) { return s == "ok", "again\n" })},
			exp:    "ok",
			expOut: "> again\n> ",
		},
		"gives up": {
			input:  "x\ny\n",
			opts:   []promptOption{WithMaxTries(2), WithValidator(func(string) (bool, string) { return false, "no\n" })},
			expOut: "> no\n> no\ntoo many tries\n",
			expErr: "too many tries",
		},
		"end of input": {
			expOut: "> ",
			expErr: io.EOF.Error(),
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			term := newTerminal(tt.input)
			got, err := Prompt(term, "> ", tt.opts...)
			if tt.expErr != "" {
				testutil.AssertErrorContains(t, err, tt.expErr)
			} else if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			testutil.AssertEqual(t, "input", got, tt.exp)
			testutil.AssertEqual(t, "output", term.out.String(), tt.expOut)
		})
	}
}

func TestPromptKeepsBufferedInput(t *testing.T) {
	term := newTerminal("first\nsecond\n")

	first, err := Prompt(term, "")
	if err != nil {
		t.Fatalf("first prompt: %v", err)
	}
	second, err := Prompt(term, "")
	if err != nil {
		t.Fatalf("second prompt: %v", err)
	}

	testutil.AssertEqual(t, "first", first, "first")
	testutil.AssertEqual(t, "second", second, "second")
}

func TestPromptYN(t *testing.T) {
	tests := map[string]struct {
		input string
		exp   bool
	}{
		"yes":         {input: "yes\n", exp: true},
		"y uppercase": {input: "Y\n", exp: true},
		"no":          {input: "n\n", exp: false},
		"retry":       {input: "maybe\ny\n", exp: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := PromptYN(newTerminal(tt.input), "? ")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			testutil.AssertEqual(t, "answer", got, tt.exp)
		})
	}
}
