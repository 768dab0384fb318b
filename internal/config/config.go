// Package config handles application configuration and setup
package config

import (
	"fmt"
	"os"

	"github.com/retroenv/retrochip8/internal/frontend/gui"
	"github.com/retroenv/retrochip8/internal/frontend/headless"
	"github.com/retroenv/retrochip8/internal/frontend/terminal"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/session"
	"github.com/retroenv/retrogolib/log"
)

// CreateLogger creates a logger for the program options.
// Instruction traces are logged at debug level, so tracing enables it.
func CreateLogger(opts options.Program) *log.Logger {
	cfg := log.DefaultConfig()
	switch {
	case opts.Debug, opts.Trace:
		cfg.Level = log.DebugLevel
	case opts.Quiet, opts.Frontend == options.FrontendTerminal:
		// the terminal frontend owns the screen, only errors are worth
		// corrupting it for
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// CreateFrontend creates the frontend selected in the program options.
func CreateFrontend(logger *log.Logger, opts options.Program) (session.Frontend, error) {
	switch opts.Frontend {
	case options.FrontendGUI:
		return gui.New(logger, opts), nil
	case options.FrontendTerminal:
		return terminal.New(logger, opts), nil
	case options.FrontendHeadless:
		return headless.New(logger, opts, os.Stdout), nil
	default:
		return nil, fmt.Errorf("unsupported frontend '%s'", opts.Frontend)
	}
}
