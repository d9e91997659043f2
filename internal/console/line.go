package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/pixil98/go-adventure/internal"
	"github.com/pixil98/go-adventure/internal/commands"
	"github.com/pixil98/go-adventure/internal/save"
	"github.com/pixil98/go-adventure/internal/storage"
)

// Submitter queues an intent for the game goroutine.
type Submitter func(context.Context, commands.Intent) error

// Line is the line-oriented frontend: one command per line of input.
type Line struct {
	in        io.Reader
	presenter *Presenter
	submit    Submitter
	saves     *save.Manager
	quit      func()
}

func NewLine(in io.Reader, presenter *Presenter, submit Submitter, saves *save.Manager, quit func()) *Line {
	return &Line{in: in, presenter: presenter, submit: submit, saves: saves, quit: quit}
}

// Start reads commands until the input ends, the player quits or ctx is
// cancelled.
func (l *Line) Start(ctx context.Context) error {
	term := newTerminal(ctx, l.in, l.presenter)
	l.presenter.println("Type 'help' for a list of commands.")

	for {
		line, err := term.ReadString('\n')
		switch {
		case errors.Is(err, io.EOF):
			l.stop()
			return nil
		case ctx.Err() != nil:
			return nil
		case err != nil:
			return fmt.Errorf("reading input: %w", err)
		}

		quit, err := l.handle(ctx, term, line)
		if err != nil {
			return err
		}
		if quit {
			l.presenter.println("Goodbye!")
			l.stop()
			return nil
		}
	}
}

func (l *Line) stop() {
	if l.quit != nil {
		l.quit()
	}
}

// handle runs one line of input. It reports whether the player quit.
func (l *Line) handle(ctx context.Context, term *terminal, line string) (bool, error) {
	if strings.TrimSpace(line) == "" {
		return false, nil
	}
	cmd, ok := Parse(line)
	if !ok {
		l.presenter.println(fmt.Sprintf("I don't understand %q. Type 'help' for a list of commands.", strings.TrimSpace(line)))
		return false, nil
	}

	switch cmd.Local {
	case LocalQuit:
		return true, nil
	case LocalHelp:
		l.presenter.println(helpText)
		return false, nil
	case LocalSlots:
		if l.saves == nil {
			l.presenter.println(SlotList(nil))
		} else {
			l.presenter.println(SlotList(l.saves.List()))
		}
		return false, nil
	}

	in := cmd.Intent
	switch in.Kind {
	case commands.KindNewGame:
		if l.presenter.Playing() {
			ok, err := internal.PromptYN(term, "Abandon the current game and start a new one (y/n)? ")
			if err != nil {
				return false, promptErr(err)
			}
			if !ok {
				return false, nil
			}
		}
	case commands.KindLoad, commands.KindDelete:
		if in.Arg == "" {
			slot, err := l.chooseSlot(term, in.Kind)
			if err != nil {
				return false, promptErr(err)
			}
			in.Arg = slot
		}
	}

	return false, l.submit(ctx, in)
}

// chooseSlot asks which save to use when more than one slot is occupied.
func (l *Line) chooseSlot(term *terminal, kind commands.Kind) (string, error) {
	if l.saves == nil {
		return save.SlotSave, nil
	}

	sel := l.saves.Selector()
	switch sel.Len() {
	case 0:
		return save.SlotSave, nil
	case 1:
		return sel.Select(1), nil
	}

	verb := "Load"
	if kind == commands.KindDelete {
		verb = "Delete"
	}
	return sel.Prompt(term, fmt.Sprintf("%s which game?", verb))
}

// promptErr keeps a failed prompt from ending the console: only the end
// of input or cancellation does.
func promptErr(err error) error {
	if errors.Is(err, internal.ErrTooManyTries) || errors.Is(err, storage.ErrNothingToSelect) {
		return nil
	}
	if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
