package expand

import (
	"github.com/ezrec/apmos/mir"
	"github.com/ezrec/apmos/mos"
)

// Short constructors for the concrete sequences the expanders emit.

func impl(op mos.Op) mir.Inst {
	return mir.MakeInst(op, mos.MODE_IMPL)
}

func implA(op mos.Op) mir.Inst {
	return mir.MakeInst(op, mos.MODE_IMPL, mir.MakeReg(mos.REG_A))
}

func imm(op mos.Op, value uint8) mir.Inst {
	return mir.MakeInst(op, mos.MODE_IMM, mir.MakeImm(mos.WIDTH_8, int64(value)))
}

// mem addresses an imaginary register (zero page) or an absolute location.
func mem(op mos.Op, o mir.Operand) mir.Inst {
	mode := mos.MODE_ABS
	if o.Kind == mir.OPERAND_REG {
		mode = mos.MODE_ZP
	}
	return mir.MakeInst(op, mode, o)
}

func zp(op mos.Op, reg mos.Reg) mir.Inst {
	return mir.MakeInst(op, mos.MODE_ZP, mir.MakeReg(reg))
}

func abs(op mos.Op, addr uint16) mir.Inst {
	return mir.MakeInst(op, mos.MODE_ABS, mir.MakeAddr(addr))
}

func idx(op mos.Op, addr uint16, index mos.Reg) mir.Inst {
	mode := mos.MODE_ABSX
	if index == mos.REG_Y {
		mode = mos.MODE_ABSY
	}
	return mir.MakeInst(op, mode, mir.MakeAddr(addr))
}

func indy(op mos.Op, ptr mos.Reg) mir.Inst {
	return mir.MakeInst(op, mos.MODE_INDY, mir.MakeReg(ptr))
}

func rel(op mos.Op, taken, not string) mir.Inst {
	return mir.MakeInst(op, mos.MODE_REL, mir.MakeLabel(taken), mir.MakeLabel(not))
}

func jmp(label string) mir.Inst {
	return mir.MakeInst(mos.OP_JMP, mos.MODE_ABS, mir.MakeLabel(label))
}

// loadReg loads an 8-bit immediate into a hardware register.
func loadReg(reg mos.Reg, value uint8) mir.Inst {
	switch reg {
	case mos.REG_X:
		return imm(mos.OP_LDX, value)
	case mos.REG_Y:
		return imm(mos.OP_LDY, value)
	}
	return imm(mos.OP_LDA, value)
}

// storeReg stores a hardware register to an imaginary register.
func storeReg(reg mos.Reg, dst mos.Reg) mir.Inst {
	switch reg {
	case mos.REG_X:
		return zp(mos.OP_STX, dst)
	case mos.REG_Y:
		return zp(mos.OP_STY, dst)
	}
	return zp(mos.OP_STA, dst)
}

// loadA yields the instructions bringing an 8-bit operand's value into the
// accumulator.
func loadA(o mir.Operand) (seq []mir.Inst, err error) {
	switch o.Kind {
	case mir.OPERAND_IMM:
		seq = append(seq, imm(mos.OP_LDA, uint8(o.Imm)))
	case mir.OPERAND_ADDR:
		seq = append(seq, abs(mos.OP_LDA, o.Addr))
	case mir.OPERAND_REG:
		switch {
		case o.Reg == mos.REG_A:
			// Already in place.
		case o.Reg == mos.REG_X:
			seq = append(seq, impl(mos.OP_TXA))
		case o.Reg == mos.REG_Y:
			seq = append(seq, impl(mos.OP_TYA))
		case o.Reg.Class() == mos.CLASS_IMAG8:
			seq = append(seq, zp(mos.OP_LDA, o.Reg))
		default:
			err = ErrNoForm
		}
	default:
		err = ErrNoForm
	}
	return
}

// storeA yields the instructions moving the accumulator into an 8-bit
// destination register.
func storeA(reg mos.Reg) (seq []mir.Inst, err error) {
	switch {
	case reg == mos.REG_A:
		// Already in place.
	case reg == mos.REG_X:
		seq = append(seq, impl(mos.OP_TAX))
	case reg == mos.REG_Y:
		seq = append(seq, impl(mos.OP_TAY))
	case reg.Class() == mos.CLASS_IMAG8:
		seq = append(seq, zp(mos.OP_STA, reg))
	default:
		err = ErrNoForm
	}
	return
}
