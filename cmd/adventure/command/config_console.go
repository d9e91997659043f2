package command

import (
	"fmt"

	"github.com/pixil98/go-adventure/internal/display"
	"github.com/pixil98/go-errors"
)

type ConsoleMode int

const (
	ConsoleModeLine ConsoleMode = iota
	ConsoleModeKeys
)

func (m *ConsoleMode) UnmarshalText(text []byte) error {
	switch string(text) {
	case "", "line":
		*m = ConsoleModeLine
	case "keys":
		*m = ConsoleModeKeys
	default:
		return fmt.Errorf("unknown console mode: %s", text)
	}
	return nil
}

type ConsoleConfig struct {
	Mode ConsoleMode `json:"mode"`
	// Width wraps line mode output; 0 means display.DefaultWidth and a
	// negative width turns wrapping off.
	Width int `json:"width"`
}

func (c *ConsoleConfig) validate() error {
	el := errors.NewErrorList()

	if c.Mode != ConsoleModeLine && c.Mode != ConsoleModeKeys {
		el.Add(fmt.Errorf("unknown console mode: %d", c.Mode))
	}

	return el.Err()
}

func (c *ConsoleConfig) width() int {
	if c.Width == 0 {
		return display.DefaultWidth
	}
	return c.Width
}
