// Package gui presents a session in a desktop window using ebiten.
package gui

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/retroenv/retrochip8/internal/display"
	"github.com/retroenv/retrochip8/internal/machine"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/session"
	"github.com/retroenv/retrogolib/log"
)

// Compile-time check to ensure Frontend implements session.Frontend.
var _ session.Frontend = (*Frontend)(nil)

// keypadKeys is indexed by keypad key.
var keypadKeys = [machine.KeyCount]ebiten.Key{
	ebiten.KeyX, ebiten.Key1, ebiten.Key2, ebiten.Key3,
	ebiten.KeyQ, ebiten.KeyW, ebiten.KeyE, ebiten.KeyA,
	ebiten.KeyS, ebiten.KeyD, ebiten.KeyZ, ebiten.KeyC,
	ebiten.Key4, ebiten.KeyR, ebiten.KeyF, ebiten.KeyV,
}

// Frontend renders the display into a window scaled by the configured factor.
type Frontend struct {
	logger *log.Logger
	opts   options.Program
}

// New returns a new window frontend.
func New(logger *log.Logger, opts options.Program) *Frontend {
	return &Frontend{
		logger: logger,
		opts:   opts,
	}
}

// Run opens the window and executes the session in the ebiten update loop
// until the window is closed, escape is pressed or the context is cancelled.
// It has to be called from the main goroutine.
func (f *Frontend) Run(ctx context.Context, s *session.Session) error {
	g := &game{
		ctx:     ctx,
		logger:  f.logger,
		session: s,
		title:   "retrochip8 - " + filepath.Base(f.opts.Input),
		pixels:  display.Image(machine.Framebuffer{}, display.DefaultPalette).Pix,
	}

	ebiten.SetWindowSize(machine.Width*f.opts.Scale, machine.Height*f.opts.Scale)
	ebiten.SetWindowTitle(g.title)
	ebiten.SetTPS(session.FrameRate)

	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("running window: %w", err)
	}
	return g.err
}

// game implements ebiten.Game, every update executes one frame.
type game struct {
	ctx     context.Context
	logger  *log.Logger
	session *session.Session
	title   string
	pixels  []byte
	sound   bool
	err     error
}

func (g *game) Update() error {
	if g.ctx.Err() != nil || ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		if err := g.session.Reload(); err != nil {
			g.err = fmt.Errorf("reloading: %w", err)
			return ebiten.Termination
		}
	}

	m := g.session.Machine()
	if ebiten.IsFocused() {
		for key, ebitenKey := range keypadKeys {
			m.SetKey(byte(key), ebiten.IsKeyPressed(ebitenKey))
		}
	} else {
		m.ReleaseKeys()
	}

	if err := g.session.Frame(); err != nil {
		g.err = fmt.Errorf("running frame: %w", err)
		return ebiten.Termination
	}

	if fb, changed := g.session.TakeFrame(); changed {
		g.pixels = display.Image(fb, display.DefaultPalette).Pix
	}

	if sound := m.SoundActive(); sound != g.sound {
		g.sound = sound
		title := g.title
		if sound {
			title += " ♪"
		}
		ebiten.SetWindowTitle(title)
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.WritePixels(g.pixels)
}

func (g *game) Layout(_, _ int) (int, int) {
	return machine.Width, machine.Height
}
