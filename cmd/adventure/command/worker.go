package command

import (
	"fmt"
	"io"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/pixil98/go-adventure/internal/combat"
	"github.com/pixil98/go-adventure/internal/commands"
	"github.com/pixil98/go-adventure/internal/console"
	"github.com/pixil98/go-adventure/internal/driver"
	"github.com/pixil98/go-adventure/internal/event"
	"github.com/pixil98/go-adventure/internal/game"
	"github.com/pixil98/go-adventure/internal/messaging"
	"github.com/pixil98/go-service"
)

// WorkerBuilder returns the service builder. quit is called when the
// player leaves the game from the console.
func WorkerBuilder(quit func()) func(config interface{}) (service.WorkerList, error) {
	return func(config interface{}) (service.WorkerList, error) {
		cfg, ok := config.(*Config)
		if !ok {
			return nil, fmt.Errorf("unable to cast config")
		}
		return buildWorkers(cfg, os.Stdin, os.Stdout, quit)
	}
}

func buildWorkers(cfg *Config, in io.Reader, out io.Writer, quit func()) (service.WorkerList, error) {
	dict, err := cfg.Storage.BuildDictionary()
	if err != nil {
		return nil, fmt.Errorf("building dictionary: %w", err)
	}

	saves, err := cfg.Saves.BuildManager()
	if err != nil {
		return nil, err
	}

	interval, err := cfg.Session.autosaveInterval()
	if err != nil {
		return nil, err
	}

	bus := event.NewBus()
	world := game.NewWorld(game.NewRegistry(dict, combat.Dice), cfg.Session.StartRoom)

	var opts []commands.SessionOpt
	if saves != nil {
		opts = append(opts, commands.WithSaves(saves))
	}
	session := commands.NewSession(world, bus, opts...)

	// Setup the adventure driver
	d := driver.NewDriver(session, driver.WithAutosaveInterval(interval))

	workers := service.WorkerList{
		"driver": d,
	}

	switch cfg.Console.Mode {
	case ConsoleModeKeys:
		screen, err := tcell.NewScreen()
		if err != nil {
			return nil, fmt.Errorf("creating screen: %w", err)
		}
		keys := console.NewKeys(screen, d.Submit, quit)
		console.NewPresenter(keys.Output(), 0).Attach(bus)
		workers["console"] = keys
	default:
		presenter := console.NewPresenter(out, cfg.Console.width())
		presenter.Attach(bus)
		workers["console"] = console.NewLine(in, presenter, d.Submit, saves, quit)
	}

	if cfg.Nats.Enabled {
		server, err := cfg.Nats.buildNatsServer()
		if err != nil {
			return nil, fmt.Errorf("creating nats server: %w", err)
		}
		workers["nats"] = server
		workers["bridge"] = messaging.NewBridge(server, bus, d.Submit, cfg.Nats.prefix())
	}

	session.AnnounceData()

	return workers, nil
}

