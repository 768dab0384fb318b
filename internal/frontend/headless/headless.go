// Package headless runs a session without any display or input, for scripted
// runs and tests.
package headless

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/retroenv/retrochip8/internal/display"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/session"
	"github.com/retroenv/retrogolib/log"
)

// Compile-time check to ensure Frontend implements session.Frontend.
var _ session.Frontend = (*Frontend)(nil)

// Frontend executes a fixed number of frames as fast as possible, or paced at
// 60 Hz until cancelled if no frame count is set. The last frame is printed
// as text unless running quietly.
type Frontend struct {
	logger *log.Logger
	opts   options.Program
	output io.Writer
}

// New returns a new headless frontend writing the final frame to output.
func New(logger *log.Logger, opts options.Program, output io.Writer) *Frontend {
	return &Frontend{
		logger: logger,
		opts:   opts,
		output: output,
	}
}

// Run executes the session.
func (f *Frontend) Run(ctx context.Context, s *session.Session) error {
	start := time.Now()

	var err error
	if f.opts.Frames > 0 {
		err = f.runFrames(ctx, s)
	} else {
		err = f.runPaced(ctx, s)
	}
	if err != nil {
		return err
	}

	f.logger.Info("Headless run finished",
		log.Int("frames", int(s.Frames())),
		log.Int("unknown_opcodes", int(s.UnknownOpcodes())),
		log.String("duration", time.Since(start).String()))

	return f.finish(s)
}

func (f *Frontend) runFrames(ctx context.Context, s *session.Session) error {
	for range f.opts.Frames {
		if ctx.Err() != nil {
			return nil
		}
		if err := s.Frame(); err != nil {
			return fmt.Errorf("running frame: %w", err)
		}
	}
	return nil
}

func (f *Frontend) runPaced(ctx context.Context, s *session.Session) error {
	ticker := time.NewTicker(session.FrameDuration)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := s.Frame(); err != nil {
				return fmt.Errorf("running frame: %w", err)
			}
		}
	}
}

// finish prints the final frame.
func (f *Frontend) finish(s *session.Session) error {
	if f.opts.Quiet {
		return nil
	}
	if _, err := io.WriteString(f.output, display.Text(s.Machine().Framebuffer())); err != nil {
		return fmt.Errorf("writing frame: %w", err)
	}
	return nil
}
