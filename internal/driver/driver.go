package driver

import (
	"context"
	"time"

	"github.com/pixil98/go-adventure/internal/commands"
)

const (
	DefaultAutosaveInterval = time.Minute * 5
	DefaultQueueLength      = 16
)

// Executor runs one intent to completion.
type Executor interface {
	Exec(context.Context, commands.Intent)
}

// Driver owns the game goroutine. Intents from the frontends and the
// autosave timer all pass through it, so the executor only ever sees one
// at a time.
type Driver struct {
	autosaveInterval time.Duration
	queueLength      int
	exec             Executor
	intents          chan commands.Intent
}

func NewDriver(exec Executor, opts ...DriverOpt) *Driver {
	d := &Driver{
		autosaveInterval: DefaultAutosaveInterval,
		queueLength:      DefaultQueueLength,
		exec:             exec,
	}

	for _, opt := range opts {
		opt(d)
	}
	d.intents = make(chan commands.Intent, d.queueLength)

	return d
}

// Submit hands an intent to the game goroutine. It blocks while the queue
// is full.
func (d *Driver) Submit(ctx context.Context, in commands.Intent) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case d.intents <- in:
		return nil
	}
}

// Start runs intents until ctx is cancelled. An autosave interval of zero
// disables autosaving.
func (d *Driver) Start(ctx context.Context) error {
	var tick <-chan time.Time
	if d.autosaveInterval > 0 {
		ticker := time.NewTicker(d.autosaveInterval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case in := <-d.intents:
			d.exec.Exec(ctx, in)
		case <-tick:
			d.exec.Exec(ctx, commands.Intent{Kind: commands.KindAutosave})
		}
	}
}
