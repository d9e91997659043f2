package command

import (
	"github.com/pixil98/go-errors"
)

type Config struct {
	Storage StorageConfig `json:"storage"`
	Saves   SavesConfig   `json:"saves"`
	Session SessionConfig `json:"session"`
	Console ConsoleConfig `json:"console"`
	Nats    NatsConfig    `json:"nats"`
}

func (c *Config) Validate() error {
	el := errors.NewErrorList()

	el.Add(c.Storage.validate())
	el.Add(c.Saves.validate())
	el.Add(c.Session.validate())
	el.Add(c.Console.validate())
	el.Add(c.Nats.validate())

	return el.Err()
}
