// Package cli handles command line interface logic
package cli

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/statsview"
)

var frontends = []string{options.FrontendGUI, options.FrontendTerminal, options.FrontendHeadless}

// ParseFlags parses command line flags and returns the program options.
func ParseFlags() (options.Program, error) {
	flags := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	var opts options.Program
	readOptionFlags(flags, &opts)

	err := flags.Parse(os.Args[1:])
	args := flags.Args()
	if err != nil || len(args) == 0 {
		return opts, &UsageError{flags: flags}
	}

	if err := validateArgs(flags, args); err != nil {
		return opts, err
	}

	if err := normalizeOptions(&opts); err != nil {
		return opts, err
	}

	opts.Input = args[0]
	return opts, nil
}

// UsageError represents an error that should show usage information.
// An empty message means that no ROM file was passed.
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

// ShowUsage prints the usage information and all flag defaults.
func (e *UsageError) ShowUsage() {
	fmt.Printf("usage: retrochip8 [options] <ROM file>\n\n")
	if e.flags != nil {
		e.flags.PrintDefaults()
	}
	fmt.Println()
}

// validateArgs checks if arguments are in correct order
func validateArgs(flags *flag.FlagSet, args []string) error {
	for i, arg := range args {
		if i > 0 && arg != "" && arg[0] == '-' {
			return &UsageError{
				flags: flags,
				msg:   fmt.Sprintf("Potential argument %s found after ROM file, please pass the ROM file as last argument", arg),
			}
		}
	}
	if len(args) > 1 {
		return &UsageError{
			flags: flags,
			msg:   fmt.Sprintf("only one ROM file can be run, got %d", len(args)),
		}
	}
	return nil
}

// normalizeOptions normalizes and validates option values
func normalizeOptions(opts *options.Program) error {
	opts.Frontend = strings.ToLower(opts.Frontend)
	if opts.Frontend == "tui" {
		opts.Frontend = options.FrontendTerminal
	}

	switch {
	case opts.Speed <= 0:
		return fmt.Errorf("invalid speed %d, must be positive", opts.Speed)
	case opts.Scale <= 0:
		return fmt.Errorf("invalid scale %d, must be positive", opts.Scale)
	case opts.Frames < 0:
		return fmt.Errorf("invalid frame count %d, must not be negative", opts.Frames)
	}

	for _, valid := range frontends {
		if opts.Frontend == valid {
			return nil
		}
	}

	return fmt.Errorf("unsupported frontend: %s. Valid options: %s",
		opts.Frontend, strings.Join(frontends, ", "))
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.StringVar(&opts.Frontend, "f", options.FrontendGUI, "frontend to run the ROM with (gui/terminal/headless)")
	flags.StringVar(&opts.Screenshot, "screenshot", "", "name of a .png file to write the last frame to on exit")
	flags.IntVar(&opts.Speed, "speed", options.DefaultSpeed, "instructions executed per second")
	flags.IntVar(&opts.Frames, "frames", options.DefaultFrames, "number of 60 Hz frames to run in headless mode, 0 runs until interrupted")
	flags.IntVar(&opts.Scale, "scale", options.DefaultScale, "pixel scale factor of the window and screenshot")
	flags.BoolVar(&opts.Disasm, "disasm", false, "print a disassembly listing of the ROM and exit")
	flags.BoolVar(&opts.Trace, "trace", false, "log every executed instruction")
	flags.BoolVar(&opts.Statsview, "statsview", false, "serve runtime statistics on "+statsview.Address)
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
}
