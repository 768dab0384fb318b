// Package terminal presents a session in a text terminal using termbox.
// Two display rows share one character cell by using half block characters.
package terminal

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/nsf/termbox-go"
	"github.com/retroenv/retrochip8/internal/display"
	"github.com/retroenv/retrochip8/internal/keymap"
	"github.com/retroenv/retrochip8/internal/machine"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/session"
	"github.com/retroenv/retrogolib/log"
	"golang.org/x/term"
)

// Compile-time check to ensure Frontend implements session.Frontend.
var _ session.Frontend = (*Frontend)(nil)

const (
	columns   = machine.Width
	rows      = machine.Height / 2
	statusRow = rows
	help      = "ESC quit  F1 reload  keys 1-4 Q-R A-F Z-V"
)

var (
	errNoTerminal        = errors.New("standard output is not a terminal")
	errTerminalTooSmall  = errors.New("terminal is too small")
	errTerminalInput     = errors.New("reading terminal input")
)

// Frontend renders the display with termbox and maps keyboard input to the keypad.
type Frontend struct {
	logger *log.Logger
	opts   options.Program
	keys   heldKeys
}

// New returns a new terminal frontend.
func New(logger *log.Logger, opts options.Program) *Frontend {
	return &Frontend{
		logger: logger,
		opts:   opts,
	}
}

// Run executes the session until it is cancelled, escape is pressed or the
// execution stops with an error.
func (f *Frontend) Run(ctx context.Context, s *session.Session) error {
	if err := checkTerminal(int(os.Stdout.Fd())); err != nil {
		return err
	}

	if err := termbox.Init(); err != nil {
		return fmt.Errorf("initializing terminal: %w", err)
	}
	defer termbox.Close()
	termbox.SetInputMode(termbox.InputEsc)
	termbox.HideCursor()

	done := make(chan struct{})
	defer close(done)
	events := pollEvents(done)

	ticker := time.NewTicker(session.FrameDuration)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev := <-events:
			quit, err := f.handleEvent(s, ev)
			if err != nil || quit {
				return err
			}

		case now := <-ticker.C:
			f.keys.apply(s.Machine(), now)
			if err := s.Frame(); err != nil {
				return fmt.Errorf("running frame: %w", err)
			}
			if err := render(s); err != nil {
				return err
			}
		}
	}
}

func checkTerminal(fd int) error {
	if !term.IsTerminal(fd) {
		return errNoTerminal
	}
	width, height, err := term.GetSize(fd)
	if err != nil {
		return fmt.Errorf("getting terminal size: %w", err)
	}
	if width < columns || height < rows+1 {
		return fmt.Errorf("%w: %dx%d, need %dx%d", errTerminalTooSmall, width, height, columns, rows+1)
	}
	return nil
}

// pollEvents forwards termbox events until done is closed. The goroutine stays
// blocked in PollEvent after the terminal is closed until the process exits.
func pollEvents(done <-chan struct{}) <-chan termbox.Event {
	events := make(chan termbox.Event, 16)
	go func() {
		for {
			ev := termbox.PollEvent()
			if ev.Type == termbox.EventInterrupt {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()
	return events
}

// handleEvent processes a terminal event and returns whether to quit.
func (f *Frontend) handleEvent(s *session.Session, ev termbox.Event) (bool, error) {
	switch ev.Type {
	case termbox.EventError:
		return true, fmt.Errorf("%w: %w", errTerminalInput, ev.Err)

	case termbox.EventResize:
		s.Machine().MarkRedraw()
		return false, termbox.Clear(termbox.ColorDefault, termbox.ColorDefault)

	case termbox.EventKey:
		switch ev.Key {
		case termbox.KeyEsc, termbox.KeyCtrlC:
			return true, nil
		case termbox.KeyF1:
			f.keys.reset()
			if err := s.Reload(); err != nil {
				return true, fmt.Errorf("reloading: %w", err)
			}
			return false, nil
		}
		if key, ok := keymap.Key(ev.Ch); ok {
			f.keys.press(key, time.Now())
		}
	}
	return false, nil
}

func render(s *session.Session) error {
	fb, changed := s.TakeFrame()
	if changed {
		for y := range rows {
			for x := range columns {
				ch := display.HalfBlocks(fb[2*y][x], fb[2*y+1][x])
				termbox.SetCell(x, y, ch, termbox.ColorWhite, termbox.ColorBlack)
			}
		}
	}

	status := []rune(help)
	if s.Machine().SoundActive() {
		status = append(status, []rune("  ♪")...)
	}
	for x := range columns {
		ch := ' '
		if x < len(status) {
			ch = status[x]
		}
		termbox.SetCell(x, statusRow, ch, termbox.ColorDefault, termbox.ColorDefault)
	}

	if err := termbox.Flush(); err != nil {
		return fmt.Errorf("flushing terminal: %w", err)
	}
	return nil
}
