// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package expand

import (
	"github.com/ezrec/apmos/mir"
	"github.com/ezrec/apmos/mos"
)

// cmpOperand forms the comparison against the right-hand operand.
func cmpOperand(op mos.Op, o mir.Operand) (mir.Inst, error) {
	switch o.Kind {
	case mir.OPERAND_IMM:
		return imm(op, uint8(o.Imm)), nil
	case mir.OPERAND_ADDR:
		return abs(op, o.Addr), nil
	case mir.OPERAND_REG:
		if o.Reg.Class() == mos.CLASS_IMAG8 {
			return zp(op, o.Reg), nil
		}
	}
	return mir.Inst{}, ErrNoForm
}

// cmpTerm expands a compare whose flags feed the block's conditional
// terminator. The comparison lands last in the sequence, keeping it
// structurally adjacent to the consuming branch; any routing loads come
// first. A compare with no adjacent flag-consuming terminator is malformed.
func (p *pass) cmpTerm(b *mir.Block, ii int) (seq []mir.Inst, err error) {
	in := &b.Insts[ii]

	if ii+1 >= len(b.Insts) {
		return nil, ErrFusion
	}
	next := &b.Insts[ii+1]
	if !next.Op.IsBranch() || next.UsesFlag()&^(mos.FLAG_C|mos.FLAG_Z|mos.FLAG_N) != mos.FLAG_NONE {
		return nil, ErrFusion
	}

	lhs, rhs := in.Args[0], in.Args[1]
	if lhs.Kind != mir.OPERAND_REG {
		return nil, ErrNoForm
	}

	var cmp mir.Inst
	switch {
	case lhs.Reg == mos.REG_A:
		cmp, err = cmpOperand(mos.OP_CMP, rhs)
	case lhs.Reg == mos.REG_X:
		cmp, err = cmpOperand(mos.OP_CPX, rhs)
	case lhs.Reg == mos.REG_Y:
		cmp, err = cmpOperand(mos.OP_CPY, rhs)
	case lhs.Reg.Class() == mos.CLASS_IMAG8:
		seq = append(seq, zp(mos.OP_LDA, lhs.Reg))
		cmp, err = cmpOperand(mos.OP_CMP, rhs)
	default:
		err = ErrNoForm
	}
	if err != nil {
		return nil, err
	}

	seq = append(seq, cmp)

	return
}

// gbr expands a generic boolean branch: branch to the taken label when the
// value is nonzero, else fall to the not-taken label. Carry branches
// directly; anything else tests against zero first.
func (p *pass) gbr(in *mir.Inst) (seq []mir.Inst, err error) {
	val, taken, not := in.Args[0], in.Args[1], in.Args[2]
	if taken.Kind != mir.OPERAND_LABEL || not.Kind != mir.OPERAND_LABEL {
		return nil, ErrNoForm
	}
	if val.Kind != mir.OPERAND_REG {
		return nil, ErrNoForm
	}

	switch {
	case val.Reg == mos.REG_C:
		seq = append(seq, rel(mos.OP_BCS, taken.Label, not.Label))
	case val.Reg == mos.REG_A:
		seq = append(seq, imm(mos.OP_CMP, 0), rel(mos.OP_BNE, taken.Label, not.Label))
	case val.Reg == mos.REG_X:
		seq = append(seq, imm(mos.OP_CPX, 0), rel(mos.OP_BNE, taken.Label, not.Label))
	case val.Reg == mos.REG_Y:
		seq = append(seq, imm(mos.OP_CPY, 0), rel(mos.OP_BNE, taken.Label, not.Label))
	case val.Reg.Class() == mos.CLASS_IMAG8:
		seq = append(seq, zp(mos.OP_LDA, val.Reg), rel(mos.OP_BNE, taken.Label, not.Label))
	default:
		err = ErrNoForm
	}

	return
}
