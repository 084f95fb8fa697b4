package mos

import (
	"fmt"
	"strconv"
	"strings"
)

// Reg identifies a machine register location.
type Reg int

const (
	REG_NONE = Reg(0)
	REG_A    = Reg(1) // accumulator
	REG_X    = Reg(2) // index register x
	REG_Y    = Reg(3) // index register y
	REG_C    = Reg(4) // carry flag, addressable as a 1-bit destination

	reg_rc0 = Reg(8)  // first imaginary byte register
	reg_rs0 = Reg(48) // first imaginary pointer register
)

const (
	NUM_RC = 32 // imaginary byte registers rc0..rc31
	NUM_RS = 16 // imaginary pointer registers rs0..rs15
)

// Soft-stack register assignments. REG_SP is the frame base pointer of the
// emulated stack; REG_SCRATCH is the pointer reserved for far frame access.
const (
	REG_SP      = reg_rs0      // rs0
	REG_SCRATCH = reg_rs0 + 15 // rs15
)

// RC returns the imaginary byte register rc<n>.
func RC(n int) Reg {
	return reg_rc0 + Reg(n)
}

// RS returns the imaginary pointer register rs<n>.
func RS(n int) Reg {
	return reg_rs0 + Reg(n)
}

// RegClass partitions the register file by how instructions may address it.
type RegClass int

//go:generate go tool stringer -linecomment -type=RegClass
const (
	CLASS_NONE   = RegClass(0) // none
	CLASS_GPR    = RegClass(1) // gpr
	CLASS_FLAG   = RegClass(2) // flag
	CLASS_IMAG8  = RegClass(3) // imag8
	CLASS_IMAG16 = RegClass(4) // imag16
)

// Class returns the register class of reg.
func (reg Reg) Class() RegClass {
	switch {
	case reg >= REG_A && reg <= REG_Y:
		return CLASS_GPR
	case reg == REG_C:
		return CLASS_FLAG
	case reg >= reg_rc0 && reg < reg_rc0+NUM_RC:
		return CLASS_IMAG8
	case reg >= reg_rs0 && reg < reg_rs0+NUM_RS:
		return CLASS_IMAG16
	}
	return CLASS_NONE
}

// Width returns the register width in bits.
func (reg Reg) Width() Width {
	switch reg.Class() {
	case CLASS_FLAG:
		return WIDTH_1
	case CLASS_GPR, CLASS_IMAG8:
		return WIDTH_8
	case CLASS_IMAG16:
		return WIDTH_16
	}
	return WIDTH_NONE
}

// IsImag returns true if reg lives in the imaginary zero-page bank.
func (reg Reg) IsImag() bool {
	class := reg.Class()
	return class == CLASS_IMAG8 || class == CLASS_IMAG16
}

// IsIndex returns true if reg can serve as a hardware index register.
func (reg Reg) IsIndex() bool {
	return reg == REG_X || reg == REG_Y
}

// Lo returns the low byte register of an imaginary pointer pair.
func (reg Reg) Lo() Reg {
	if reg.Class() != CLASS_IMAG16 {
		return REG_NONE
	}
	return reg_rc0 + 2*(reg-reg_rs0)
}

// Hi returns the high byte register of an imaginary pointer pair.
func (reg Reg) Hi() Reg {
	if reg.Class() != CLASS_IMAG16 {
		return REG_NONE
	}
	return reg_rc0 + 2*(reg-reg_rs0) + 1
}

// ZeroPage returns the zero-page address backing an imaginary register.
// Pointer pairs answer the address of their low byte.
func (reg Reg) ZeroPage() uint8 {
	switch reg.Class() {
	case CLASS_IMAG8:
		return uint8(reg - reg_rc0)
	case CLASS_IMAG16:
		return uint8(2 * (reg - reg_rs0))
	}
	return 0
}

// String returns the assembly name of reg.
func (reg Reg) String() string {
	switch reg.Class() {
	case CLASS_GPR:
		return [...]string{"a", "x", "y"}[reg-REG_A]
	case CLASS_FLAG:
		return "c"
	case CLASS_IMAG8:
		return fmt.Sprintf("rc%d", int(reg-reg_rc0))
	case CLASS_IMAG16:
		return fmt.Sprintf("rs%d", int(reg-reg_rs0))
	}
	return fmt.Sprintf("Reg(%d)", int(reg))
}

// RegByName looks up a register by its assembly name.
func RegByName(name string) (reg Reg, ok bool) {
	switch name {
	case "a":
		return REG_A, true
	case "x":
		return REG_X, true
	case "y":
		return REG_Y, true
	case "c":
		return REG_C, true
	}

	var base Reg
	var limit int
	switch {
	case strings.HasPrefix(name, "rc"):
		base, limit = reg_rc0, NUM_RC
	case strings.HasPrefix(name, "rs"):
		base, limit = reg_rs0, NUM_RS
	default:
		return REG_NONE, false
	}

	n, err := strconv.Atoi(name[2:])
	if err != nil || n < 0 || n >= limit {
		return REG_NONE, false
	}

	return base + Reg(n), true
}
