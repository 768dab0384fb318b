package interpreter

import "fmt"

// Instruction is a decoded CHIP-8 opcode with all operand fields extracted.
// Which fields are meaningful depends on the instruction family.
type Instruction struct {
	Opcode uint16
	Family byte   // bits 12-15
	X      byte   // bits 8-11
	Y      byte   // bits 4-7
	N      byte   // bits 0-3
	NN     byte   // bits 0-7
	NNN    uint16 // bits 0-11
}

// Decode extracts the operand fields of an opcode.
func Decode(opcode uint16) Instruction {
	return Instruction{
		Opcode: opcode,
		Family: byte(opcode >> 12),
		X:      byte(opcode>>8) & 0xF,
		Y:      byte(opcode>>4) & 0xF,
		N:      byte(opcode) & 0xF,
		NN:     byte(opcode),
		NNN:    opcode & 0x0FFF,
	}
}

// String returns the opcode as 4 digit hex value.
func (i Instruction) String() string {
	return fmt.Sprintf("%04X", i.Opcode)
}
