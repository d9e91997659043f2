package driver

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/pixil98/go-adventure/internal/commands"
	"github.com/pixil98/go-testutil"
)

// recordingExecutor keeps the first want intents and ignores the rest.
type recordingExecutor struct {
	mu   sync.Mutex
	seen []string
	done chan struct{}
	want int
}

func (e *recordingExecutor) Exec(_ context.Context, in commands.Intent) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.seen) == e.want {
		return
	}
	e.seen = append(e.seen, in.String())
	if len(e.seen) == e.want {
		close(e.done)
	}
}

func (e *recordingExecutor) intents() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return strings.Join(e.seen, ",")
}

func run(t *testing.T, d *Driver) (context.CancelFunc, <-chan error) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	errs := make(chan error, 1)
	go func() {
		errs <- d.Start(ctx)
	}()
	return cancel, errs
}

func wait(t *testing.T, done <-chan struct{}) {
	t.Helper()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for intents")
	}
}

func TestDriverRunsIntentsInOrder(t *testing.T) {
	exec := &recordingExecutor{done: make(chan struct{}), want: 3}
	d := NewDriver(exec, WithAutosaveInterval(0))
	cancel, errs := run(t, d)

	ctx := context.Background()
	for _, in := range []commands.Intent{
		{Kind: commands.KindNewGame},
		{Kind: commands.KindMove, Arg: "north"},
		{Kind: commands.KindLook},
	} {
		if err := d.Submit(ctx, in); err != nil {
			t.Fatalf("submitting %s: %v", in, err)
		}
	}
	wait(t, exec.done)

	cancel()
	if err := <-errs; err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "intents", exec.intents(), "new,move north,look")
}

func TestDriverAutosaves(t *testing.T) {
	exec := &recordingExecutor{done: make(chan struct{}), want: 2}
	d := NewDriver(exec, WithAutosaveInterval(time.Millisecond))
	cancel, errs := run(t, d)
	defer func() {
		cancel()
		<-errs
	}()

	wait(t, exec.done)
	testutil.AssertEqual(t, "intents", exec.intents(), "autosave,autosave")
}

func TestDriverSubmitCancelled(t *testing.T) {
	d := NewDriver(&recordingExecutor{done: make(chan struct{})}, WithQueueLength(0))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := d.Submit(ctx, commands.Intent{Kind: commands.KindLook})
	testutil.AssertErrorContains(t, err, "context canceled")
}
