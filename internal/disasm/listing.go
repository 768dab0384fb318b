package disasm

import (
	"fmt"
	"io"

	"github.com/retroenv/retrochip8/internal/machine"
	"github.com/retroenv/retrogolib/set"
)

const (
	funcNaming  = "_func_%04x"
	labelNaming = "_label_%04x"
)

// Options controls the listing output.
type Options struct {
	HexComments bool // output address and opcode bytes as comment
	ZeroBytes   bool // output trailing zero bytes
}

// Listing writes a linear disassembly of a ROM image in retroasm syntax.
// Jump and call destinations inside the image get labels, words that do not
// decode to an instruction are written as data.
func Listing(w io.Writer, rom []byte, opts Options) error {
	lst := &listing{
		w:         w,
		rom:       rom,
		opts:      opts,
		jumps:     set.New[uint16](),
		functions: set.New[uint16](),
	}
	lst.collectBranchDestinations()
	return lst.write()
}

type listing struct {
	w    io.Writer
	rom  []byte
	opts Options

	jumps     set.Set[uint16]
	functions set.Set[uint16]
}

// collectBranchDestinations records all JP and CALL targets that point to an
// instruction start inside the image.
func (l *listing) collectBranchDestinations() {
	for i := 0; i+1 < len(l.rom); i += 2 {
		opcode := uint16(l.rom[i])<<8 | uint16(l.rom[i+1])
		if !IsBranch(opcode) {
			continue
		}

		target := opcode & 0x0FFF
		if !l.isInstructionStart(target) {
			continue
		}
		if opcode&0xF000 == 0x2000 {
			l.functions.Add(target)
		} else {
			l.jumps.Add(target)
		}
	}
}

func (l *listing) isInstructionStart(address uint16) bool {
	if address < machine.ProgramStart {
		return false
	}
	offset := int(address - machine.ProgramStart)
	return offset%2 == 0 && offset < len(l.rom)
}

// label returns the label name for an address or an empty string.
func (l *listing) label(address uint16) string {
	switch {
	case l.functions.Contains(address):
		return fmt.Sprintf(funcNaming, address)
	case l.jumps.Contains(address):
		return fmt.Sprintf(labelNaming, address)
	default:
		return ""
	}
}

func (l *listing) write() error {
	if _, err := fmt.Fprintf(l.w, "; CHIP-8 ROM Disassembly\n"); err != nil {
		return fmt.Errorf("writing header comment: %w", err)
	}
	if _, err := fmt.Fprintf(l.w, "; Program starts at $%03X in CHIP-8 memory space\n\n", machine.ProgramStart); err != nil {
		return fmt.Errorf("writing memory space comment: %w", err)
	}
	if _, err := fmt.Fprintf(l.w, ".org $%03X\n\n", machine.ProgramStart); err != nil {
		return fmt.Errorf("writing org directive: %w", err)
	}

	end := l.endIndex()
	for i := 0; i < end; i += 2 {
		address := uint16(machine.ProgramStart + i)

		if name := l.label(address); name != "" {
			if _, err := fmt.Fprintf(l.w, "%s:\n", name); err != nil {
				return fmt.Errorf("writing label %s: %w", name, err)
			}
		}

		data := l.rom[i:min(i+2, end)]
		if err := l.writeOffset(address, data); err != nil {
			return fmt.Errorf("writing offset $%03X: %w", address, err)
		}
	}
	return nil
}

// writeOffset writes either an instruction or the raw data bytes.
func (l *listing) writeOffset(address uint16, data []byte) error {
	line := "    " + l.code(data)

	if !l.opts.HexComments {
		_, err := fmt.Fprintf(l.w, "%s\n", line)
		return err
	}

	comment := fmt.Sprintf("$%03X: %02X", address, data[0])
	if len(data) > 1 {
		comment += fmt.Sprintf(" %02X", data[1])
	}
	_, err := fmt.Fprintf(l.w, "%-32s ; %s\n", line, comment)
	return err
}

func (l *listing) code(data []byte) string {
	if len(data) < 2 {
		return fmt.Sprintf(".byte $%02X", data[0])
	}

	opcode := uint16(data[0])<<8 | uint16(data[1])
	op, ok := Lookup(opcode)
	if !ok {
		return fmt.Sprintf(".byte $%02X, $%02X", data[0], data[1])
	}

	if IsBranch(opcode) {
		if name := l.label(opcode & 0x0FFF); name != "" {
			return fmt.Sprintf("%s %s", op.Instruction.Name, name)
		}
	}
	return Format(opcode)
}

// endIndex returns the length of the image without trailing zero bytes.
func (l *listing) endIndex() int {
	if l.opts.ZeroBytes {
		return len(l.rom)
	}

	end := len(l.rom)
	for end > 0 && l.rom[end-1] == 0 {
		end--
	}

	if end%2 == 1 && end < len(l.rom) {
		end++ // do not split an instruction
	}

	// keep labelled trailing addresses
	for _, destinations := range []set.Set[uint16]{l.jumps, l.functions} {
		for target := range destinations {
			offset := int(target-machine.ProgramStart) + 2
			end = max(end, min(offset, len(l.rom)))
		}
	}
	return end
}
