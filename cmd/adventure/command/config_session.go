package command

import (
	"fmt"
	"time"

	"github.com/pixil98/go-adventure/internal/driver"
	"github.com/pixil98/go-errors"
)

type SessionConfig struct {
	StartRoom string `json:"start_room"`
	// AutosaveInterval is a duration such as "5m". "0" turns autosave off.
	AutosaveInterval string `json:"autosave_interval"`
}

func (c *SessionConfig) validate() error {
	el := errors.NewErrorList()

	if c.AutosaveInterval != "" {
		d, err := time.ParseDuration(c.AutosaveInterval)
		if err != nil {
			el.Add(fmt.Errorf("parsing autosave_interval: %w", err))
		} else if d < 0 {
			el.Add(fmt.Errorf("autosave_interval must not be negative"))
		}
	}

	return el.Err()
}

func (c *SessionConfig) autosaveInterval() (time.Duration, error) {
	if c.AutosaveInterval == "" {
		return driver.DefaultAutosaveInterval, nil
	}
	d, err := time.ParseDuration(c.AutosaveInterval)
	if err != nil {
		return 0, fmt.Errorf("parsing autosave_interval: %w", err)
	}
	return d, nil
}
