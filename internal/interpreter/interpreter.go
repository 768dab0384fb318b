// Package interpreter implements the CHIP-8 fetch, decode and execute cycle.
//
// The interpreter is a state transition function over a machine.Machine: it
// performs no I/O, does not decrement timers and never blocks. Every call to
// Step executes exactly one instruction.
package interpreter

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/retroenv/retrochip8/internal/machine"
)

// opcodeSize is the size of CHIP-8 instructions in bytes.
const opcodeSize = 2

// ErrUnknownOpcode is returned for opcodes that are not part of the instruction set.
// The program counter has already been advanced past the opcode, so execution
// can continue with the next instruction.
var ErrUnknownOpcode = errors.New("unknown opcode")

// ExecError describes a failed instruction.
type ExecError struct {
	Address uint16 // address the opcode was fetched from
	Opcode  uint16
	Err     error
}

func (e *ExecError) Error() string {
	return fmt.Sprintf("executing opcode %04X at $%03X: %v", e.Opcode, e.Address, e.Err)
}

func (e *ExecError) Unwrap() error {
	return e.Err
}

// Option configures an interpreter.
type Option func(*Interpreter)

// WithRandom sets the random byte source used by the CXNN instruction.
func WithRandom(random func() byte) Option {
	return func(ip *Interpreter) {
		ip.random = random
	}
}

// Interpreter executes CHIP-8 instructions.
type Interpreter struct {
	random func() byte
}

// New returns a new interpreter.
func New(opts ...Option) *Interpreter {
	ip := &Interpreter{
		random: func() byte {
			return byte(rand.UintN(256))
		},
	}
	for _, opt := range opts {
		opt(ip)
	}
	return ip
}

// Step executes a single instruction cycle on the machine.
// The returned error is an *ExecError wrapping ErrUnknownOpcode,
// machine.ErrStackOverflow or machine.ErrStackUnderflow.
func (ip *Interpreter) Step(m *machine.Machine) error {
	address := m.PC
	ins := Decode(m.ReadWord(address))
	m.PC = (address + opcodeSize) & machine.AddressMask

	if err := families[ins.Family](ip, m, ins); err != nil {
		return &ExecError{
			Address: address,
			Opcode:  ins.Opcode,
			Err:     err,
		}
	}
	return nil
}

// Fetch returns the decoded instruction at the program counter without executing it.
func Fetch(m *machine.Machine) Instruction {
	return Decode(m.ReadWord(m.PC))
}
