// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package expand

import (
	"github.com/ezrec/apmos/mir"
	"github.com/ezrec/apmos/mos"
)

// incDecMB expands a variable-width increment or decrement over a list of
// byte operands, least significant first. Each byte consumes the carry or
// borrow of the previous one and produces one for the next; the final
// carry-out is discarded. A combined decrement-and-compare opcode may
// replace the default form for a single byte where its predicate holds,
// never for the whole chain, and only for the chain's first byte since the
// combined form does not consume an incoming borrow.
func (p *pass) incDecMB(b *mir.Block, ii int) (seq []mir.Inst, err error) {
	in := &b.Insts[ii]
	dec := in.Op == mos.P_DECMB

	if len(in.Args) == 0 {
		return nil, ErrNoForm
	}
	for _, o := range in.Args {
		memory := o.Kind == mir.OPERAND_ADDR ||
			(o.Kind == mir.OPERAND_REG && o.Reg.Class() == mos.CLASS_IMAG8)
		if !memory {
			return nil, ErrNoForm
		}
	}

	attr, _ := in.Op.Pseudo()
	live := liveFlagsAfter(b, ii)

	for n, o := range in.Args {
		first := n == 0

		if first && dec {
			cand, serr := p.Target.Select(attr.Candidates, live)
			if serr != nil {
				return nil, serr
			}
			if cand.Name == mos.CAND_DCP {
				// A = $FE: the comparison leaves carry clear exactly when
				// the decremented byte wrapped to $FF, which is the borrow.
				seq = append(seq, imm(mos.OP_LDA, 0xFE), mem(mos.OP_DCP, o))
				continue
			}
		}

		step := uint8(0)
		if first {
			if dec {
				seq = append(seq, impl(mos.OP_SEC))
			} else {
				seq = append(seq, impl(mos.OP_CLC))
			}
			step = 1
		}

		op := mos.OP_ADC
		if dec {
			op = mos.OP_SBC
		}

		seq = append(seq, mem(mos.OP_LDA, o), imm(op, step), mem(mos.OP_STA, o))
	}

	return
}
