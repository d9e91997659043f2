package console

import (
	"context"
	"io"
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/pixil98/go-adventure/internal/commands"
	"github.com/pixil98/go-adventure/internal/save"
)

const scrollback = 500

// KeyIntent maps a key press to an intent. quit is true for the keys that
// leave the game; ok is false for keys with no binding.
func KeyIntent(key tcell.Key, r rune) (in commands.Intent, quit bool, ok bool) {
	move := func(dir string) (commands.Intent, bool, bool) {
		return commands.Intent{Kind: commands.KindMove, Arg: dir}, false, true
	}
	act := func(kind commands.Kind) (commands.Intent, bool, bool) {
		return commands.Intent{Kind: kind}, false, true
	}

	switch key {
	case tcell.KeyUp:
		return move("north")
	case tcell.KeyDown:
		return move("south")
	case tcell.KeyRight:
		return move("east")
	case tcell.KeyLeft:
		return move("west")
	case tcell.KeyF5:
		return act(commands.KindSave)
	case tcell.KeyF9:
		return commands.Intent{Kind: commands.KindLoad, Arg: save.SlotSave}, false, true
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return commands.Intent{}, true, true
	case tcell.KeyRune:
	default:
		return commands.Intent{}, false, false
	}

	switch r {
	case 'w':
		return move("north")
	case 's':
		return move("south")
	case 'd':
		return move("east")
	case 'a':
		return move("west")
	case 'l':
		return act(commands.KindLook)
	case 't':
		return act(commands.KindTake)
	case 'u':
		return act(commands.KindUse)
	case 'k':
		return act(commands.KindTalk)
	case 'f':
		return act(commands.KindAttack)
	case 'e':
		return act(commands.KindEquip)
	case 'm':
		return act(commands.KindMap)
	case 'n':
		return act(commands.KindNewGame)
	case 'q':
		return commands.Intent{}, true, true
	}
	return commands.Intent{}, false, false
}

// screenLog collects presenter output and draws the newest lines that fit
// on the screen.
type screenLog struct {
	mu      sync.Mutex
	screen  tcell.Screen
	active  bool
	lines   []string
	partial string
}

func (s *screenLog) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	text := s.partial + string(p)
	parts := strings.Split(text, "\n")
	s.partial = parts[len(parts)-1]
	s.lines = append(s.lines, parts[:len(parts)-1]...)
	if over := len(s.lines) - scrollback; over > 0 {
		s.lines = s.lines[over:]
	}

	s.draw()
	return len(p), nil
}

// draw must be called with mu held. Nothing is drawn while the screen is
// not initialised.
func (s *screenLog) draw() {
	if !s.active {
		return
	}
	s.screen.Clear()
	width, height := s.screen.Size()

	start := max(len(s.lines)-height, 0)
	for y, line := range s.lines[start:] {
		x := 0
		for _, r := range line {
			if x >= width {
				break
			}
			s.screen.SetContent(x, y, r, nil, tcell.StyleDefault)
			x++
		}
	}
	s.screen.Show()
}

func (s *screenLog) setActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = active
	s.draw()
}

func (s *screenLog) redraw() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draw()
}

// Lines returns everything written so far, one entry per line.
func (s *screenLog) Lines() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string{}, s.lines...)
}

// Keys is the single-key frontend drawn with tcell.
type Keys struct {
	screen tcell.Screen
	log    *screenLog
	submit Submitter
	quit   func()
}

// NewKeys returns the frontend. Its presenter must write to Output.
func NewKeys(screen tcell.Screen, submit Submitter, quit func()) *Keys {
	return &Keys{
		screen: screen,
		log:    &screenLog{screen: screen},
		submit: submit,
		quit:   quit,
	}
}

// Output is where the presenter writes.
func (k *Keys) Output() io.Writer {
	return k.log
}

// Start takes over the screen and turns key presses into intents until
// ctx is cancelled or the player quits.
func (k *Keys) Start(ctx context.Context) error {
	if err := k.screen.Init(); err != nil {
		return err
	}
	k.log.setActive(true)
	defer func() {
		k.log.setActive(false)
		k.screen.Fini()
	}()

	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := k.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			stop, err := k.handle(ctx, ev)
			if err != nil {
				return err
			}
			if stop {
				if k.quit != nil {
					k.quit()
				}
				return nil
			}
		}
	}
}

func (k *Keys) handle(ctx context.Context, ev tcell.Event) (bool, error) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		k.screen.Sync()
		k.log.redraw()
	case *tcell.EventKey:
		in, quit, ok := KeyIntent(ev.Key(), ev.Rune())
		if !ok {
			return false, nil
		}
		if quit {
			return true, nil
		}
		return false, k.submit(ctx, in)
	}
	return false, nil
}
