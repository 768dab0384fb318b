// Package session drives the interpreter: it owns the machine state, executes
// instructions in 60 Hz frames, decrements the timers and reports display
// updates to the frontend.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/retroenv/retrochip8/internal/disasm"
	"github.com/retroenv/retrochip8/internal/interpreter"
	"github.com/retroenv/retrochip8/internal/machine"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/log"
)

// FrameRate is the rate in Hz that timers are decremented and frames are presented at.
const FrameRate = 60

// FrameDuration is the wall clock duration of a single frame.
const FrameDuration = time.Second / FrameRate

// Frontend presents a running session and feeds its keypad.
type Frontend interface {
	Run(ctx context.Context, s *Session) error
}

// Session is a single emulation session of a loaded ROM.
// It is not safe for concurrent use, frontends have to call it from one goroutine.
type Session struct {
	logger      *log.Logger
	opts        options.Program
	machine     *machine.Machine
	interpreter *interpreter.Interpreter
	rom         []byte

	frames         uint64
	unknownOpcodes uint64
}

// New creates a new session and loads the ROM image into a freshly reset machine.
func New(logger *log.Logger, opts options.Program, rom []byte, interpreterOptions ...interpreter.Option) (*Session, error) {
	s := &Session{
		logger:      logger,
		opts:        opts,
		machine:     machine.New(),
		interpreter: interpreter.New(interpreterOptions...),
		rom:         rom,
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload resets the machine and loads the ROM image again.
func (s *Session) Reload() error {
	if err := s.load(); err != nil {
		return err
	}
	s.logger.Info("ROM reloaded", log.String("file", s.opts.Input))
	return nil
}

func (s *Session) load() error {
	s.machine.Reset()
	s.machine.LoadFont()
	if err := s.machine.LoadProgram(s.rom); err != nil {
		return fmt.Errorf("loading program: %w", err)
	}
	// the first frame always presents the cleared display
	s.machine.MarkRedraw()
	return nil
}

// Machine returns the machine state for keypad input and display output.
func (s *Session) Machine() *machine.Machine {
	return s.machine
}

// Frames returns the number of frames executed since the session was created.
func (s *Session) Frames() uint64 {
	return s.frames
}

// UnknownOpcodes returns the number of unknown opcodes that were skipped.
func (s *Session) UnknownOpcodes() uint64 {
	return s.unknownOpcodes
}

// Frame executes the instructions of one 60 Hz frame and decrements the timers.
// Unknown opcodes are logged and skipped, call stack errors end the session
// and are returned.
func (s *Session) Frame() error {
	for range s.opts.InstructionsPerFrame() {
		if err := s.step(); err != nil {
			return err
		}
	}
	s.machine.DecrementTimers()
	s.frames++
	return nil
}

// TakeFrame returns the display content and true if it changed since the last call.
func (s *Session) TakeFrame() (machine.Framebuffer, bool) {
	if !s.machine.TakeRedraw() {
		return machine.Framebuffer{}, false
	}
	return s.machine.Framebuffer(), true
}

func (s *Session) step() error {
	if s.opts.Trace {
		ins := interpreter.Fetch(s.machine)
		s.logger.Debug("Executing instruction",
			log.Hex("address", s.machine.PC),
			log.Hex("opcode", ins.Opcode),
			log.String("code", disasm.Format(ins.Opcode)))
	}

	err := s.interpreter.Step(s.machine)
	if err == nil {
		return nil
	}

	var execErr *interpreter.ExecError
	if !errors.As(err, &execErr) {
		return fmt.Errorf("executing instruction: %w", err)
	}

	if errors.Is(err, interpreter.ErrUnknownOpcode) {
		s.unknownOpcodes++
		s.logger.Warn("Skipping unknown opcode",
			log.Hex("address", execErr.Address),
			log.Hex("opcode", execErr.Opcode),
			log.String("code", disasm.Format(execErr.Opcode)))
		return nil
	}

	s.logger.Error("Execution stopped",
		log.Hex("address", execErr.Address),
		log.Hex("opcode", execErr.Opcode),
		log.Int("stack_depth", s.machine.StackPointer()),
		log.Err(execErr.Err))
	return fmt.Errorf("executing instruction: %w", err)
}
