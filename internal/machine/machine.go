// Package machine contains the CHIP-8 machine state: memory, registers,
// call stack, timers, framebuffer and keypad.
//
// The state has no behavior beyond bounds checking. All instruction
// semantics live in the interpreter package, the keypad and timers are driven
// by the caller.
package machine

import (
	"errors"
	"fmt"
)

// CHIP-8 memory layout constants.
//
//	0x000-0x1FF: Interpreter area, font glyphs at 0x000
//	0x200-0xFFF: Program and work RAM (3584 bytes)
const (
	// MemorySize is the size of the addressable memory in bytes.
	MemorySize = 0x1000
	// AddressMask masks any address into the 4KB address space.
	AddressMask = MemorySize - 1
	// ProgramStart is the address the program is loaded to and the reset value of the program counter.
	ProgramStart = 0x200
	// MaxProgramSize is the largest ROM image that fits between ProgramStart and the end of memory.
	MaxProgramSize = MemorySize - ProgramStart

	// RegisterCount is the number of general purpose V registers.
	RegisterCount = 16
	// FlagRegister is the index of VF, written by carry, borrow, shift and collision results.
	FlagRegister = 0xF

	// StackDepth is the maximum subroutine nesting.
	StackDepth = 16
	// KeyCount is the number of keys on the hexadecimal keypad.
	KeyCount = 16
)

var (
	// ErrRomTooLarge is returned when a program does not fit into memory.
	ErrRomTooLarge = errors.New("rom too large")
	// ErrStackOverflow is returned when a call exceeds the stack depth.
	ErrStackOverflow = errors.New("call stack overflow")
	// ErrStackUnderflow is returned when a return is executed with an empty stack.
	ErrStackUnderflow = errors.New("call stack underflow")
)

// Machine is the complete state of a CHIP-8 virtual machine.
// A single instance is owned by the caller and passed to every interpreter call.
type Machine struct {
	memory [MemorySize]byte

	// V holds the general purpose registers V0-VF.
	V [RegisterCount]byte
	// I is the index register used as memory pointer.
	I uint16
	// PC is the address of the next instruction to fetch.
	PC uint16

	stack [StackDepth]uint16
	sp    int

	// DelayTimer and SoundTimer count down at 60 Hz while non zero,
	// see DecrementTimers.
	DelayTimer byte
	SoundTimer byte

	framebuffer Framebuffer
	redraw      bool

	keys [KeyCount]bool
}

// New returns a machine in reset state.
func New() *Machine {
	m := &Machine{}
	m.Reset()
	return m
}

// Reset zeroes all state and sets the program counter to ProgramStart.
func (m *Machine) Reset() {
	*m = Machine{}
	m.PC = ProgramStart
}

// LoadProgram copies the program image into memory starting at ProgramStart.
// The machine is not modified if the image is larger than MaxProgramSize.
func (m *Machine) LoadProgram(rom []byte) error {
	if len(rom) > MaxProgramSize {
		return fmt.Errorf("%w: %d bytes, maximum is %d", ErrRomTooLarge, len(rom), MaxProgramSize)
	}
	copy(m.memory[ProgramStart:], rom)
	return nil
}

// ReadByte returns the memory byte at the masked address.
func (m *Machine) ReadByte(address uint16) byte {
	return m.memory[address&AddressMask]
}

// WriteByte writes the memory byte at the masked address.
func (m *Machine) WriteByte(address uint16, value byte) {
	m.memory[address&AddressMask] = value
}

// ReadWord returns the big endian 16 bit word at the address.
// Both byte addresses are masked separately, a word at 0xFFF wraps to 0x000.
func (m *Machine) ReadWord(address uint16) uint16 {
	return uint16(m.ReadByte(address))<<8 | uint16(m.ReadByte(address+1))
}

// Push stores a return address on the call stack.
func (m *Machine) Push(address uint16) error {
	if m.sp >= StackDepth {
		return ErrStackOverflow
	}
	m.stack[m.sp] = address
	m.sp++
	return nil
}

// Pop removes and returns the most recent return address from the call stack.
func (m *Machine) Pop() (uint16, error) {
	if m.sp == 0 {
		return 0, ErrStackUnderflow
	}
	m.sp--
	return m.stack[m.sp], nil
}

// StackPointer returns the number of return addresses on the call stack.
func (m *Machine) StackPointer() int {
	return m.sp
}

// DecrementTimers decrements the delay and sound timers if they are non zero.
// The caller is expected to call it at 60 Hz.
func (m *Machine) DecrementTimers() {
	if m.DelayTimer > 0 {
		m.DelayTimer--
	}
	if m.SoundTimer > 0 {
		m.SoundTimer--
	}
}

// SoundActive returns whether the sound timer is running.
func (m *Machine) SoundActive() bool {
	return m.SoundTimer > 0
}
