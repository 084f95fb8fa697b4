package mir

import (
	"fmt"

	"github.com/ezrec/apmos/mos"
)

// OperandKind is the location kind of one instruction operand.
type OperandKind int

//go:generate go tool stringer -linecomment -type=OperandKind
const (
	OPERAND_NONE  = OperandKind(0) // none
	OPERAND_REG   = OperandKind(1) // reg
	OPERAND_IMM   = OperandKind(2) // imm
	OPERAND_FRAME = OperandKind(3) // frame
	OPERAND_ADDR  = OperandKind(4) // addr
	OPERAND_LABEL = OperandKind(5) // label
)

// Operand is one instruction operand. Register, immediate and absolute
// operands carry their concrete binding; frame operands stay symbolic until
// the expand pass resolves them through the frame layout collaborator.
type Operand struct {
	Kind  OperandKind
	Role  mos.Role
	Width mos.Width

	Reg   mos.Reg // OPERAND_REG
	Imm   int64   // OPERAND_IMM
	Slot  int     // OPERAND_FRAME: frame slot id
	Off   int     // OPERAND_FRAME: byte offset within the slot
	Addr  uint16  // OPERAND_ADDR
	Label string  // OPERAND_LABEL
}

// MakeReg creates a register operand; width follows the register class.
func MakeReg(reg mos.Reg) Operand {
	return Operand{Kind: OPERAND_REG, Reg: reg, Width: reg.Width()}
}

// MakeImm creates an immediate operand of the given width.
func MakeImm(width mos.Width, value int64) Operand {
	return Operand{Kind: OPERAND_IMM, Width: width, Imm: value}
}

// MakeFrame creates a symbolic frame reference operand.
func MakeFrame(slot, off int) Operand {
	return Operand{Kind: OPERAND_FRAME, Slot: slot, Off: off}
}

// MakeAddr creates an absolute address operand.
func MakeAddr(addr uint16) Operand {
	return Operand{Kind: OPERAND_ADDR, Width: mos.WIDTH_16, Addr: addr}
}

// MakeLabel creates a block label operand.
func MakeLabel(label string) Operand {
	return Operand{Kind: OPERAND_LABEL, Label: label}
}

// IsDef returns true if the operand is written by its instruction.
func (o Operand) IsDef() bool {
	return o.Role == mos.ROLE_DEF || o.Role == mos.ROLE_TIED || o.Role == mos.ROLE_SCRATCH
}

// String returns the assembly form of the operand.
func (o Operand) String() string {
	switch o.Kind {
	case OPERAND_REG:
		return o.Reg.String()
	case OPERAND_IMM:
		if o.Width == mos.WIDTH_16 {
			return fmt.Sprintf("#$%04x", uint16(o.Imm))
		}
		return fmt.Sprintf("#$%02x", uint8(o.Imm))
	case OPERAND_FRAME:
		if o.Off != 0 {
			return fmt.Sprintf("[f%d+%d]", o.Slot, o.Off)
		}
		return fmt.Sprintf("[f%d]", o.Slot)
	case OPERAND_ADDR:
		return fmt.Sprintf("$%04x", o.Addr)
	case OPERAND_LABEL:
		return "@" + o.Label
	}
	return "?"
}
