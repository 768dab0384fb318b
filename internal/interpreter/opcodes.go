package interpreter

import "github.com/retroenv/retrochip8/internal/machine"

const flag = machine.FlagRegister

func skip(m *machine.Machine) {
	m.PC = (m.PC + opcodeSize) & machine.AddressMask
}

func boolToFlag(b bool) byte {
	if b {
		return 1
	}
	return 0
}

// 00E0
func clearScreen(_ *Interpreter, m *machine.Machine, _ Instruction) error {
	m.Display().Clear()
	m.MarkRedraw()
	return nil
}

// 00EE
func returnFromSubroutine(_ *Interpreter, m *machine.Machine, _ Instruction) error {
	address, err := m.Pop()
	if err != nil {
		return err
	}
	m.PC = address
	return nil
}

// 1NNN
func jump(_ *Interpreter, m *machine.Machine, ins Instruction) error {
	m.PC = ins.NNN
	return nil
}

// 2NNN
func call(_ *Interpreter, m *machine.Machine, ins Instruction) error {
	if err := m.Push(m.PC); err != nil {
		return err
	}
	m.PC = ins.NNN
	return nil
}

// 3XNN
func skipIfEqualImmediate(_ *Interpreter, m *machine.Machine, ins Instruction) error {
	if m.V[ins.X] == ins.NN {
		skip(m)
	}
	return nil
}

// 4XNN
func skipIfNotEqualImmediate(_ *Interpreter, m *machine.Machine, ins Instruction) error {
	if m.V[ins.X] != ins.NN {
		skip(m)
	}
	return nil
}

// 5XY0
func skipIfEqualRegister(_ *Interpreter, m *machine.Machine, ins Instruction) error {
	if m.V[ins.X] == m.V[ins.Y] {
		skip(m)
	}
	return nil
}

// 9XY0
func skipIfNotEqualRegister(_ *Interpreter, m *machine.Machine, ins Instruction) error {
	if m.V[ins.X] != m.V[ins.Y] {
		skip(m)
	}
	return nil
}

// 6XNN
func loadImmediate(_ *Interpreter, m *machine.Machine, ins Instruction) error {
	m.V[ins.X] = ins.NN
	return nil
}

// 7XNN, wraps without touching VF
func addImmediate(_ *Interpreter, m *machine.Machine, ins Instruction) error {
	m.V[ins.X] += ins.NN
	return nil
}

// 8XY0
func loadRegister(_ *Interpreter, m *machine.Machine, ins Instruction) error {
	m.V[ins.X] = m.V[ins.Y]
	return nil
}

// 8XY1
func or(_ *Interpreter, m *machine.Machine, ins Instruction) error {
	m.V[ins.X] |= m.V[ins.Y]
	return nil
}

// 8XY2
func and(_ *Interpreter, m *machine.Machine, ins Instruction) error {
	m.V[ins.X] &= m.V[ins.Y]
	return nil
}

// 8XY3
func xor(_ *Interpreter, m *machine.Machine, ins Instruction) error {
	m.V[ins.X] ^= m.V[ins.Y]
	return nil
}

// The 8XY4-8XYE handlers write VF before the result register, in that order.
// With X = F the result overwrites the flag, and the subtract and shift
// variants read their operands after VF has been written.

// 8XY4
func addRegister(_ *Interpreter, m *machine.Machine, ins Instruction) error {
	sum := uint16(m.V[ins.X]) + uint16(m.V[ins.Y])
	m.V[flag] = boolToFlag(sum > 0xFF)
	m.V[ins.X] = byte(sum)
	return nil
}

// 8XY5, VF is 1 only if VX is strictly greater than VY.
func subtract(_ *Interpreter, m *machine.Machine, ins Instruction) error {
	m.V[flag] = boolToFlag(m.V[ins.X] > m.V[ins.Y])
	m.V[ins.X] -= m.V[ins.Y]
	return nil
}

// 8XY6
func shiftRight(_ *Interpreter, m *machine.Machine, ins Instruction) error {
	m.V[flag] = m.V[ins.X] & 1
	m.V[ins.X] >>= 1
	return nil
}

// 8XY7, VF is 1 only if VY is strictly greater than VX.
func subtractReverse(_ *Interpreter, m *machine.Machine, ins Instruction) error {
	m.V[flag] = boolToFlag(m.V[ins.Y] > m.V[ins.X])
	m.V[ins.X] = m.V[ins.Y] - m.V[ins.X]
	return nil
}

// 8XYE
func shiftLeft(_ *Interpreter, m *machine.Machine, ins Instruction) error {
	m.V[flag] = m.V[ins.X] >> 7
	m.V[ins.X] <<= 1
	return nil
}

// ANNN
func loadIndex(_ *Interpreter, m *machine.Machine, ins Instruction) error {
	m.I = ins.NNN
	return nil
}

// BNNN
func jumpOffset(_ *Interpreter, m *machine.Machine, ins Instruction) error {
	m.PC = (ins.NNN + uint16(m.V[0])) & machine.AddressMask
	return nil
}

// CXNN
func random(ip *Interpreter, m *machine.Machine, ins Instruction) error {
	m.V[ins.X] = ip.random() & ins.NN
	return nil
}

// DXYN draws an 8xN sprite read from memory at I. Set bits are XORed onto the
// display, both axes wrap around. VF is set if any pixel was switched off.
func draw(_ *Interpreter, m *machine.Machine, ins Instruction) error {
	x := int(m.V[ins.X])
	y := int(m.V[ins.Y])
	display := m.Display()

	m.V[flag] = 0
	for row := range int(ins.N) {
		sprite := m.ReadByte(m.I + uint16(row))
		for col := range 8 {
			if sprite&(0x80>>col) == 0 {
				continue
			}
			if display.Toggle(x+col, y+row) {
				m.V[flag] = 1
			}
		}
	}
	m.MarkRedraw()
	return nil
}

// EX9E
func skipIfKeyPressed(_ *Interpreter, m *machine.Machine, ins Instruction) error {
	if m.KeyPressed(m.V[ins.X]) {
		skip(m)
	}
	return nil
}

// EXA1
func skipIfKeyNotPressed(_ *Interpreter, m *machine.Machine, ins Instruction) error {
	if !m.KeyPressed(m.V[ins.X]) {
		skip(m)
	}
	return nil
}

// FX07
func loadDelayTimer(_ *Interpreter, m *machine.Machine, ins Instruction) error {
	m.V[ins.X] = m.DelayTimer
	return nil
}

// FX0A rewinds the program counter while no key is pressed, so waiting
// spans multiple steps instead of blocking.
func waitForKey(_ *Interpreter, m *machine.Machine, ins Instruction) error {
	key, ok := m.FirstPressedKey()
	if !ok {
		m.PC = (m.PC - opcodeSize) & machine.AddressMask
		return nil
	}
	m.V[ins.X] = key
	return nil
}

// FX15
func setDelayTimer(_ *Interpreter, m *machine.Machine, ins Instruction) error {
	m.DelayTimer = m.V[ins.X]
	return nil
}

// FX18
func setSoundTimer(_ *Interpreter, m *machine.Machine, ins Instruction) error {
	m.SoundTimer = m.V[ins.X]
	return nil
}

// FX1E, no overflow flag
func addIndex(_ *Interpreter, m *machine.Machine, ins Instruction) error {
	m.I += uint16(m.V[ins.X])
	return nil
}

// FX29
func loadGlyph(_ *Interpreter, m *machine.Machine, ins Instruction) error {
	m.I = uint16(m.V[ins.X]) * machine.GlyphSize
	return nil
}

// FX33
func storeBCD(_ *Interpreter, m *machine.Machine, ins Instruction) error {
	value := m.V[ins.X]
	m.WriteByte(m.I, value/100)
	m.WriteByte(m.I+1, value/10%10)
	m.WriteByte(m.I+2, value%10)
	return nil
}

// FX55, I is left unchanged.
func storeRegisters(_ *Interpreter, m *machine.Machine, ins Instruction) error {
	for i := range uint16(ins.X) + 1 {
		m.WriteByte(m.I+i, m.V[i])
	}
	return nil
}

// FX65, I is left unchanged.
func loadRegisters(_ *Interpreter, m *machine.Machine, ins Instruction) error {
	for i := range uint16(ins.X) + 1 {
		m.V[i] = m.ReadByte(m.I + i)
	}
	return nil
}
