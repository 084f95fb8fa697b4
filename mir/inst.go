package mir

import (
	"strings"

	"github.com/ezrec/apmos/mos"
)

// Inst is one machine or pseudo instruction.
type Inst struct {
	Op   mos.Op
	Mode mos.Mode
	Args []Operand
}

// MakeInst creates an instruction.
func MakeInst(op mos.Op, mode mos.Mode, args ...Operand) Inst {
	return Inst{Op: op, Mode: mode, Args: args}
}

// IsPseudo returns true for post-allocation pseudo instructions.
func (in *Inst) IsPseudo() bool {
	return in.Op.IsPseudo()
}

// IsTerm returns true if the instruction ends its basic block.
func (in *Inst) IsTerm() bool {
	return in.Op.IsTerm()
}

// Defines returns the flags the instruction may define. Pseudo instructions
// answer their declared contract.
func (in *Inst) Defines() mos.Flag {
	if in.IsPseudo() {
		attr, _ := in.Op.Pseudo()
		return attr.Def
	}
	attr, _ := in.Op.Attr()
	return attr.Def
}

// UsesFlag returns the flags the instruction consumes.
func (in *Inst) UsesFlag() mos.Flag {
	if in.IsPseudo() {
		attr, _ := in.Op.Pseudo()
		return attr.Use
	}
	attr, _ := in.Op.Attr()
	return attr.Use
}

// DefRegs returns the registers the instruction writes.
func (in *Inst) DefRegs() (defs []mos.Reg) {
	if in.IsPseudo() {
		for _, o := range in.Args {
			if o.Kind == OPERAND_REG && o.IsDef() {
				defs = append(defs, o.Reg)
			}
		}
		return
	}

	switch in.Op {
	case mos.OP_LDA, mos.OP_TXA, mos.OP_TYA, mos.OP_ADC, mos.OP_SBC, mos.OP_PLA, mos.OP_INA, mos.OP_DEA:
		defs = append(defs, mos.REG_A)
	case mos.OP_LDX, mos.OP_TAX, mos.OP_INX, mos.OP_DEX:
		defs = append(defs, mos.REG_X)
	case mos.OP_LDY, mos.OP_TAY, mos.OP_INY, mos.OP_DEY:
		defs = append(defs, mos.REG_Y)
	case mos.OP_LSR, mos.OP_ROL:
		if in.Mode == mos.MODE_IMPL {
			defs = append(defs, mos.REG_A)
		} else if len(in.Args) > 0 && in.Args[0].Kind == OPERAND_REG {
			defs = append(defs, in.Args[0].Reg)
		}
	case mos.OP_STA, mos.OP_STX, mos.OP_STY, mos.OP_STZ, mos.OP_INC, mos.OP_DEC, mos.OP_DCP:
		// An indirect store writes through the pointer, not to a register.
		if in.Mode != mos.MODE_INDY && len(in.Args) > 0 && in.Args[0].Kind == OPERAND_REG {
			defs = append(defs, in.Args[0].Reg)
		}
	}

	return
}

// Succs returns the labels a terminator may transfer control to.
func (in *Inst) Succs() (labels []string) {
	if !in.IsTerm() {
		return
	}
	for _, o := range in.Args {
		if o.Kind == OPERAND_LABEL {
			labels = append(labels, o.Label)
		}
	}
	return
}

// String returns the assembly form of the instruction.
func (in *Inst) String() string {
	name := in.Op.String()

	if in.IsPseudo() || in.Op.IsBranch() || in.Op == mos.OP_BRA {
		// Flat comma-separated operand list.
		if len(in.Args) == 0 {
			return name
		}
		var parts []string
		for _, o := range in.Args {
			parts = append(parts, o.String())
		}
		return name + " " + strings.Join(parts, ", ")
	}

	switch in.Mode {
	case mos.MODE_IMPL:
		if len(in.Args) == 1 && in.Args[0].Kind == OPERAND_REG {
			return name + " " + in.Args[0].String() // lsr a
		}
		return name
	case mos.MODE_IMM:
		return name + " " + in.Args[0].String()
	case mos.MODE_ZP, mos.MODE_ABS:
		return name + " " + in.Args[0].String()
	case mos.MODE_ZPX, mos.MODE_ABSX:
		return name + " " + in.Args[0].String() + ",x"
	case mos.MODE_ZPY, mos.MODE_ABSY:
		return name + " " + in.Args[0].String() + ",y"
	case mos.MODE_INDY:
		return name + " (" + in.Args[0].String() + "),y"
	}

	return name
}
