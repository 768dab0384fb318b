package session

import (
	"errors"
	"testing"

	"github.com/retroenv/retrochip8/internal/interpreter"
	"github.com/retroenv/retrochip8/internal/machine"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func program(opcodes ...uint16) []byte {
	rom := make([]byte, 0, len(opcodes)*2)
	for _, op := range opcodes {
		rom = append(rom, byte(op>>8), byte(op))
	}
	return rom
}

func newSession(t *testing.T, speed int, rom []byte) *Session {
	t.Helper()
	opts := options.Program{
		Parameters: options.Parameters{Input: "test.ch8"},
		Flags:      options.Flags{Speed: speed, Trace: true},
	}
	s, err := New(log.NewTestLogger(t), opts, rom)
	assert.NoError(t, err)
	return s
}

func TestNew(t *testing.T) {
	s := newSession(t, 600, program(0x6042))
	m := s.Machine()

	assert.Equal(t, uint16(machine.ProgramStart), m.PC)
	assert.Equal(t, uint16(0x6042), m.ReadWord(machine.ProgramStart))
	assert.Equal(t, byte(0xF0), m.ReadByte(0)) // font glyph 0
	assert.True(t, m.NeedsRedraw())
}

func TestNewTooLarge(t *testing.T) {
	_, err := New(log.NewTestLogger(t), options.Program{}, make([]byte, machine.MaxProgramSize+1))
	assert.True(t, errors.Is(err, machine.ErrRomTooLarge))
}

func TestFrame(t *testing.T) {
	// V0++ in an endless loop, 2 instructions per frame
	s := newSession(t, 120, program(0x7001, 0x1200))
	m := s.Machine()
	m.DelayTimer = 5

	assert.NoError(t, s.Frame())
	assert.Equal(t, byte(1), m.V[0])
	assert.Equal(t, uint16(machine.ProgramStart), m.PC)
	assert.Equal(t, byte(4), m.DelayTimer)

	for range 9 {
		assert.NoError(t, s.Frame())
	}
	assert.Equal(t, byte(10), m.V[0])
	assert.Equal(t, byte(0), m.DelayTimer)
	assert.Equal(t, uint64(10), s.Frames())
}

func TestFrameSkipsUnknownOpcode(t *testing.T) {
	s := newSession(t, 120, program(0xFFFF, 0x6042))

	assert.NoError(t, s.Frame())
	assert.Equal(t, byte(0x42), s.Machine().V[0])
	assert.Equal(t, uint64(1), s.UnknownOpcodes())
}

func TestFrameStopsOnStackError(t *testing.T) {
	s := newSession(t, 120, program(0x00EE, 0x6042))

	err := s.Frame()
	assert.True(t, errors.Is(err, machine.ErrStackUnderflow))

	var execErr *interpreter.ExecError
	assert.True(t, errors.As(err, &execErr))
	assert.Equal(t, uint16(machine.ProgramStart), execErr.Address)
	assert.Equal(t, byte(0), s.Machine().V[0])
	assert.Equal(t, uint64(0), s.Frames())
}

func TestTakeFrame(t *testing.T) {
	s := newSession(t, 60, program(
		0xA000, // I = glyph 0
		0xD005,
		0x1204,
	))

	// the initial frame is always presented
	_, ok := s.TakeFrame()
	assert.True(t, ok)
	_, ok = s.TakeFrame()
	assert.False(t, ok)

	assert.NoError(t, s.Frame())
	_, ok = s.TakeFrame()
	assert.False(t, ok)

	assert.NoError(t, s.Frame())
	fb, ok := s.TakeFrame()
	assert.True(t, ok)
	assert.Equal(t, 14, fb.Count())
}

func TestReload(t *testing.T) {
	s := newSession(t, 60, program(0x6042, 0x1202))
	assert.NoError(t, s.Frame())

	m := s.Machine()
	assert.Equal(t, byte(0x42), m.V[0])
	m.SetKey(3, true)
	m.Display().Toggle(1, 1)
	m.TakeRedraw()

	assert.NoError(t, s.Reload())
	assert.Equal(t, byte(0), m.V[0])
	assert.Equal(t, uint16(machine.ProgramStart), m.PC)
	assert.False(t, m.KeyPressed(3))
	assert.Equal(t, 0, m.Display().Count())
	assert.Equal(t, uint16(0x6042), m.ReadWord(machine.ProgramStart))
	assert.True(t, m.NeedsRedraw())
}
