package interpreter

import "github.com/retroenv/retrochip8/internal/machine"

// handler executes a decoded instruction. The program counter already points
// to the following instruction when a handler is called.
type handler func(ip *Interpreter, m *machine.Machine, ins Instruction) error

// families is the first level dispatch table indexed by the high nibble.
// Families that share a high nibble dispatch a second time on the low byte
// or the low nibble, every encoding missing from those tables is unknown.
var families = [16]handler{
	0x0: byLowByte(map[byte]handler{
		0xE0: clearScreen,
		0xEE: returnFromSubroutine,
	}),
	0x1: jump,
	0x2: call,
	0x3: skipIfEqualImmediate,
	0x4: skipIfNotEqualImmediate,
	0x5: byLowNibble(map[byte]handler{
		0x0: skipIfEqualRegister,
	}),
	0x6: loadImmediate,
	0x7: addImmediate,
	0x8: byLowNibble(map[byte]handler{
		0x0: loadRegister,
		0x1: or,
		0x2: and,
		0x3: xor,
		0x4: addRegister,
		0x5: subtract,
		0x6: shiftRight,
		0x7: subtractReverse,
		0xE: shiftLeft,
	}),
	0x9: byLowNibble(map[byte]handler{
		0x0: skipIfNotEqualRegister,
	}),
	0xA: loadIndex,
	0xB: jumpOffset,
	0xC: random,
	0xD: draw,
	0xE: byLowByte(map[byte]handler{
		0x9E: skipIfKeyPressed,
		0xA1: skipIfKeyNotPressed,
	}),
	0xF: byLowByte(map[byte]handler{
		0x07: loadDelayTimer,
		0x0A: waitForKey,
		0x15: setDelayTimer,
		0x18: setSoundTimer,
		0x1E: addIndex,
		0x29: loadGlyph,
		0x33: storeBCD,
		0x55: storeRegisters,
		0x65: loadRegisters,
	}),
}

func byLowByte(ops map[byte]handler) handler {
	return func(ip *Interpreter, m *machine.Machine, ins Instruction) error {
		op, ok := ops[ins.NN]
		if !ok {
			return ErrUnknownOpcode
		}
		return op(ip, m, ins)
	}
}

func byLowNibble(ops map[byte]handler) handler {
	return func(ip *Interpreter, m *machine.Machine, ins Instruction) error {
		op, ok := ops[ins.N]
		if !ok {
			return ErrUnknownOpcode
		}
		return op(ip, m, ins)
	}
}
