// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package expand

import (
	"github.com/ezrec/apmos/mir"
	"github.com/ezrec/apmos/mos"
)

// expandSelect lowers a two-way select into a branch diamond. The block
// splits after the pseudo: the head keeps the leading instructions and
// gains a conditional terminator, two fresh arms each materialize one
// immediate into the destination and jump to the join, and the join block
// inherits the head's original terminator and successor edges. Every
// original predecessor and successor edge survives exactly once.
func (p *pass) expandSelect(b *mir.Block, ii int) error {
	fn := p.fn
	in := b.Insts[ii]

	dst, cond := in.Args[0], in.Args[1]
	tval := uint8(in.Args[2].Imm)
	fval := uint8(in.Args[3].Imm)

	if dst.Kind != mir.OPERAND_REG || cond.Kind != mir.OPERAND_REG {
		return p.contract(b, &in, ErrNoForm)
	}

	join := fn.SplitAt(b, ii+1, fn.NewLabel(b.Label))
	b.Insts = b.Insts[:ii]

	tl := fn.NewLabel(b.Label)
	fl := fn.NewLabel(b.Label)

	// Head terminator: carry branches directly, all else tests nonzero.
	switch {
	case cond.Reg == mos.REG_C:
		b.Append(rel(mos.OP_BCS, tl, fl))
	case cond.Reg == mos.REG_A:
		b.Append(imm(mos.OP_CMP, 0), rel(mos.OP_BNE, tl, fl))
	case cond.Reg == mos.REG_X:
		b.Append(imm(mos.OP_CPX, 0), rel(mos.OP_BNE, tl, fl))
	case cond.Reg == mos.REG_Y:
		b.Append(imm(mos.OP_CPY, 0), rel(mos.OP_BNE, tl, fl))
	case cond.Reg.Class() == mos.CLASS_IMAG8:
		b.Append(zp(mos.OP_LDA, cond.Reg), rel(mos.OP_BNE, tl, fl))
	default:
		return p.contract(b, &in, ErrNoForm)
	}

	arm := func(label string, value uint8) (*mir.Block, error) {
		body, err := p.ldImmReg(dst.Reg, value)
		if err != nil {
			return nil, err
		}
		blk := &mir.Block{Label: label, Preds: []string{b.Label}}
		blk.Append(body...)
		blk.Append(jmp(join.Label))
		return blk, nil
	}

	bt, err := arm(tl, tval)
	if err != nil {
		return p.contract(b, &in, err)
	}
	bf, err := arm(fl, fval)
	if err != nil {
		return p.contract(b, &in, err)
	}

	fn.InsertAfter(b, bt, bf)
	join.Preds = []string{tl, fl}

	return nil
}
