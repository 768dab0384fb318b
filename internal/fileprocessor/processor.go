// Package fileprocessor handles the ROM file workflow: loading the image and
// either listing it or running it in the selected frontend.
package fileprocessor

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/retroenv/retrochip8/internal/config"
	"github.com/retroenv/retrochip8/internal/disasm"
	"github.com/retroenv/retrochip8/internal/display"
	"github.com/retroenv/retrochip8/internal/loader"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/session"
	"github.com/retroenv/retrochip8/internal/statsview"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
)

// ProcessFile handles the complete file processing workflow.
// The ROM is loaded before any emulation starts, load errors are returned
// without opening a frontend.
func ProcessFile(ctx context.Context, logger *log.Logger, opts options.Program) error {
	rom, err := loader.New().Load(opts.Input)
	if err != nil {
		return fmt.Errorf("loading ROM: %w", err)
	}
	logger.Debug("ROM loaded", log.String("file", opts.Input), log.Int("size", len(rom)))

	if opts.Disasm {
		return WriteListing(os.Stdout, rom)
	}

	frontend, err := config.CreateFrontend(logger, opts)
	if err != nil {
		return fmt.Errorf("creating frontend: %w", err)
	}

	s, err := session.New(logger, opts, rom)
	if err != nil {
		return fmt.Errorf("creating session: %w", err)
	}

	if opts.Statsview {
		statsview.Launch(logger)
	}

	logger.Info("Starting emulation",
		log.String("frontend", opts.Frontend),
		log.Int("instructions_per_frame", opts.InstructionsPerFrame()))

	if err := frontend.Run(ctx, s); err != nil {
		return fmt.Errorf("running %s frontend: %w", opts.Frontend, err)
	}

	if opts.Screenshot != "" {
		return saveScreenshot(logger, opts, s)
	}
	return nil
}

// WriteListing writes the disassembly listing of a ROM image.
func WriteListing(w io.Writer, rom []byte) error {
	if err := disasm.Listing(w, rom, disasm.Options{HexComments: true}); err != nil {
		return fmt.Errorf("writing listing: %w", err)
	}
	return nil
}

func saveScreenshot(logger *log.Logger, opts options.Program, s *session.Session) error {
	fb := s.Machine().Framebuffer()
	if err := display.SavePNG(opts.Screenshot, fb, display.DefaultPalette, opts.Scale); err != nil {
		return fmt.Errorf("saving screenshot: %w", err)
	}
	logger.Info("Screenshot saved", log.String("file", opts.Screenshot))
	return nil
}

// PrintBanner prints application version information
func PrintBanner(logger *log.Logger, opts options.Program, version, commit, date string) {
	if opts.Quiet {
		return
	}

	if len(commit) > 7 {
		commit = commit[:7]
	}
	if strings.Contains(date, "unknown") {
		date = ""
	}
	logger.Info("retrochip8", log.String("version", buildinfo.Version(version, commit, date)))
}
