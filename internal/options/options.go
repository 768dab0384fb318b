// Package options contains the program options.
package options

// Frontend names.
const (
	FrontendGUI      = "gui"
	FrontendTerminal = "terminal"
	FrontendHeadless = "headless"
)

// Defaults for the emulation options.
const (
	DefaultSpeed  = 700
	DefaultFrames = 600
	DefaultScale  = 10
)

// Parameters contains file path options.
type Parameters struct {
	Input      string // ROM file to run
	Screenshot string // PNG file to write the last frame to
}

// Flags contains behavior options.
type Flags struct {
	Frontend  string // gui, terminal or headless
	Speed     int    // instructions per second
	Frames    int    // frames to run in headless mode, 0 runs until cancelled
	Scale     int    // pixel scale of window and screenshot
	Disasm    bool   // print a listing of the ROM and exit
	Trace     bool   // log every executed instruction
	Statsview bool   // serve runtime statistics
	Debug     bool
	Quiet     bool
}

// Program options of the emulator.
type Program struct {
	Parameters
	Flags
}

// InstructionsPerFrame returns the number of instructions to execute per 60 Hz frame.
func (p Program) InstructionsPerFrame() int {
	return max(1, p.Speed/60)
}
