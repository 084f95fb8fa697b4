// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package expand

import (
	"slices"

	"github.com/ezrec/apmos/mir"
	"github.com/ezrec/apmos/mos"
)

// Addressing and operand resolution: each expander returns an ordered,
// non-empty concrete sequence equivalent to its pseudo. No legal sequence
// means the upstream contract was violated, and the expansion aborts.

// ldImm1 materializes a boolean immediate into a flag bit or the low bit of
// a register, using the cheapest set/clear idiom for the destination kind.
func (p *pass) ldImm1(in *mir.Inst) (seq []mir.Inst, err error) {
	dst := in.Args[0]
	value := uint8(in.Args[1].Imm) & 1

	if dst.Kind != mir.OPERAND_REG {
		return nil, ErrNoForm
	}

	if dst.Reg == mos.REG_C {
		if value != 0 {
			return []mir.Inst{impl(mos.OP_SEC)}, nil
		}
		return []mir.Inst{impl(mos.OP_CLC)}, nil
	}

	return p.ldImmReg(dst.Reg, value)
}

// ldImm8 materializes an 8-bit immediate into a register.
func (p *pass) ldImm8(in *mir.Inst) (seq []mir.Inst, err error) {
	dst := in.Args[0]
	if dst.Kind != mir.OPERAND_REG {
		return nil, ErrNoForm
	}
	return p.ldImmReg(dst.Reg, uint8(in.Args[1].Imm))
}

func (p *pass) ldImmReg(dst mos.Reg, value uint8) (seq []mir.Inst, err error) {
	switch dst.Class() {
	case mos.CLASS_GPR:
		seq = append(seq, loadReg(dst, value))

	case mos.CLASS_IMAG8:
		if value == 0 {
			// A store-zero form skips the accumulator entirely.
			if ok, herr := p.Target.Has(mos.OP_STZ); herr != nil {
				return nil, herr
			} else if ok {
				return []mir.Inst{zp(mos.OP_STZ, dst)}, nil
			}
		}
		seq = append(seq, imm(mos.OP_LDA, value), zp(mos.OP_STA, dst))

	default:
		err = ErrNoForm
	}

	return
}

// ldImm16 splits a 16-bit immediate into two 8-bit loads through a staging
// register: the caller-supplied scratch when present, otherwise one
// reserved transiently from the register scavenger. This variant is never
// rematerialized by duplication; that eligibility is fixed upstream.
func (p *pass) ldImm16(b *mir.Block, ii int) (seq []mir.Inst, err error) {
	in := &b.Insts[ii]

	dst := in.Args[0]
	if dst.Kind != mir.OPERAND_REG || dst.Reg.Class() != mos.CLASS_IMAG16 {
		return nil, ErrWidth
	}
	value := uint16(in.Args[1].Imm)

	var scratch mos.Reg
	if len(in.Args) > 2 {
		scratch = in.Args[2].Reg
	} else {
		scratch, err = p.Scav.Reserve(mos.CLASS_GPR, Span{Block: b.Label, First: ii, Last: ii})
		if err != nil {
			return nil, &ErrScavenge{Func: p.fn.Name, Inst: in.String(), Err: err}
		}
		p.extra = append(p.extra, scratch)
	}

	seq = append(seq,
		loadReg(scratch, uint8(value)),
		storeReg(scratch, dst.Reg.Lo()),
		loadReg(scratch, uint8(value>>8)),
		storeReg(scratch, dst.Reg.Hi()),
	)

	return
}

// mov copies between registers, routing through the accumulator when the
// pairing has no direct transfer.
func (p *pass) mov(in *mir.Inst) (seq []mir.Inst, err error) {
	dst, src := in.Args[0], in.Args[1]
	if dst.Kind != mir.OPERAND_REG || src.Kind != mir.OPERAND_REG {
		return nil, ErrNoForm
	}
	if dst.Width != src.Width {
		return nil, ErrWidth
	}

	if dst.Reg == src.Reg {
		return []mir.Inst{impl(mos.OP_NOP)}, nil
	}

	if dst.Width == mos.WIDTH_16 {
		return []mir.Inst{
			zp(mos.OP_LDA, src.Reg.Lo()),
			zp(mos.OP_STA, dst.Reg.Lo()),
			zp(mos.OP_LDA, src.Reg.Hi()),
			zp(mos.OP_STA, dst.Reg.Hi()),
		}, nil
	}

	// Direct transfers first.
	direct := map[[2]mos.Reg]mos.Op{
		{mos.REG_X, mos.REG_A}: mos.OP_TAX,
		{mos.REG_Y, mos.REG_A}: mos.OP_TAY,
		{mos.REG_A, mos.REG_X}: mos.OP_TXA,
		{mos.REG_A, mos.REG_Y}: mos.OP_TYA,
	}
	if op, ok := direct[[2]mos.Reg{dst.Reg, src.Reg}]; ok {
		return []mir.Inst{impl(op)}, nil
	}

	if src.Reg.Class() == mos.CLASS_IMAG8 && dst.Reg.Class() == mos.CLASS_GPR {
		op := map[mos.Reg]mos.Op{mos.REG_A: mos.OP_LDA, mos.REG_X: mos.OP_LDX, mos.REG_Y: mos.OP_LDY}[dst.Reg]
		return []mir.Inst{zp(op, src.Reg)}, nil
	}

	if src.Reg.Class() == mos.CLASS_GPR && dst.Reg.Class() == mos.CLASS_IMAG8 {
		op := map[mos.Reg]mos.Op{mos.REG_A: mos.OP_STA, mos.REG_X: mos.OP_STX, mos.REG_Y: mos.OP_STY}[src.Reg]
		return []mir.Inst{zp(op, dst.Reg)}, nil
	}

	// Anything else goes through the accumulator.
	load, err := loadA(src)
	if err != nil {
		return nil, err
	}
	store, err := storeA(dst.Reg)
	if err != nil {
		return nil, err
	}
	seq = append(load, store...)
	if len(seq) == 0 {
		seq = append(seq, impl(mos.OP_NOP))
	}

	return
}

// ldIdx expands an indexed load. When the destination and index registers
// have no direct hardware form, the load routes through the accumulator.
func (p *pass) ldIdx(in *mir.Inst) (seq []mir.Inst, err error) {
	dst, base, index := in.Args[0], in.Args[1], in.Args[2]

	if base.Kind != mir.OPERAND_ADDR || index.Kind != mir.OPERAND_REG || !index.Reg.IsIndex() {
		return nil, ErrNoForm
	}

	switch {
	case dst.Reg == mos.REG_A:
		seq = append(seq, idx(mos.OP_LDA, base.Addr, index.Reg))

	case dst.Reg == mos.REG_X && index.Reg == mos.REG_Y:
		seq = append(seq, idx(mos.OP_LDX, base.Addr, index.Reg))

	case dst.Reg == mos.REG_Y && index.Reg == mos.REG_X:
		seq = append(seq, idx(mos.OP_LDY, base.Addr, index.Reg))

	case dst.Reg == mos.REG_X: // no "ldx abs,x"
		seq = append(seq, idx(mos.OP_LDA, base.Addr, index.Reg), impl(mos.OP_TAX))

	case dst.Reg == mos.REG_Y: // no "ldy abs,y"
		seq = append(seq, idx(mos.OP_LDA, base.Addr, index.Reg), impl(mos.OP_TAY))

	case dst.Reg.Class() == mos.CLASS_IMAG8:
		seq = append(seq, idx(mos.OP_LDA, base.Addr, index.Reg), zp(mos.OP_STA, dst.Reg))

	default:
		err = ErrNoForm
	}

	return
}

// stIdx expands an indexed store. Only the accumulator stores indexed, so
// every other source routes through it.
func (p *pass) stIdx(in *mir.Inst) (seq []mir.Inst, err error) {
	src, base, index := in.Args[0], in.Args[1], in.Args[2]

	if base.Kind != mir.OPERAND_ADDR || index.Kind != mir.OPERAND_REG || !index.Reg.IsIndex() {
		return nil, ErrNoForm
	}

	seq, err = loadA(src)
	if err != nil {
		return nil, err
	}
	seq = append(seq, idx(mos.OP_STA, base.Addr, index.Reg))

	return
}

// ldAbs expands an absolute load.
func (p *pass) ldAbs(in *mir.Inst) (seq []mir.Inst, err error) {
	dst, base := in.Args[0], in.Args[1]
	if base.Kind != mir.OPERAND_ADDR {
		return nil, ErrNoForm
	}

	switch {
	case dst.Reg == mos.REG_A:
		seq = append(seq, abs(mos.OP_LDA, base.Addr))
	case dst.Reg == mos.REG_X:
		seq = append(seq, abs(mos.OP_LDX, base.Addr))
	case dst.Reg == mos.REG_Y:
		seq = append(seq, abs(mos.OP_LDY, base.Addr))
	case dst.Reg.Class() == mos.CLASS_IMAG8:
		seq = append(seq, abs(mos.OP_LDA, base.Addr), zp(mos.OP_STA, dst.Reg))
	default:
		err = ErrNoForm
	}

	return
}

// stAbs expands an absolute store.
func (p *pass) stAbs(in *mir.Inst) (seq []mir.Inst, err error) {
	src, base := in.Args[0], in.Args[1]
	if base.Kind != mir.OPERAND_ADDR {
		return nil, ErrNoForm
	}

	switch {
	case src.Reg == mos.REG_A:
		seq = append(seq, abs(mos.OP_STA, base.Addr))
	case src.Reg == mos.REG_X:
		seq = append(seq, abs(mos.OP_STX, base.Addr))
	case src.Reg == mos.REG_Y:
		seq = append(seq, abs(mos.OP_STY, base.Addr))
	case src.Reg.Class() == mos.CLASS_IMAG8:
		seq = append(seq, zp(mos.OP_LDA, src.Reg), abs(mos.OP_STA, base.Addr))
	default:
		err = ErrNoForm
	}

	return
}

// dedicatedIncDec returns the flag-free increment/decrement opcode for the
// register, or OP_ILLEGAL when the register has none.
func dedicatedIncDec(reg mos.Reg, dec bool) mos.Op {
	switch {
	case reg == mos.REG_A:
		if dec {
			return mos.OP_DEA
		}
		return mos.OP_INA
	case reg == mos.REG_X:
		if dec {
			return mos.OP_DEX
		}
		return mos.OP_INX
	case reg == mos.REG_Y:
		if dec {
			return mos.OP_DEY
		}
		return mos.OP_INY
	case reg.Class() == mos.CLASS_IMAG8:
		if dec {
			return mos.OP_DEC
		}
		return mos.OP_INC
	}
	return mos.OP_ILLEGAL
}

// incDec8 expands an 8-bit increment or decrement. The default add-by-one
// form defines carry and overflow; a flag-free dedicated opcode wins when
// the capability set and the local flag liveness admit it.
func (p *pass) incDec8(b *mir.Block, ii int) (seq []mir.Inst, err error) {
	in := &b.Insts[ii]
	dec := in.Op == mos.P_DEC8
	dst := in.Args[0]

	if dst.Kind != mir.OPERAND_REG || dst.Width != mos.WIDTH_8 {
		return nil, ErrWidth
	}

	ded := dedicatedIncDec(dst.Reg, dec)
	if ded == mos.OP_ILLEGAL {
		return nil, ErrNoForm
	}
	dedAttr, _ := ded.Attr()

	attr, _ := in.Op.Pseudo()
	cands := slices.Clone(attr.Candidates)
	for n := range cands {
		// The dedicated form is gated by its opcode's own predicate.
		if cands[n].Name == mos.CAND_DEDICATED {
			cands[n].Pred = dedAttr.Pred
		}
	}

	cand, err := p.Target.Select(cands, liveFlagsAfter(b, ii))
	if err != nil {
		return nil, err
	}

	switch cand.Name {
	case mos.CAND_DEDICATED:
		if dst.Reg.Class() == mos.CLASS_IMAG8 {
			seq = append(seq, zp(ded, dst.Reg))
		} else {
			seq = append(seq, impl(ded))
		}

	case mos.CAND_ADDSUB:
		load, lerr := loadA(dst)
		if lerr != nil {
			return nil, lerr
		}
		store, serr := storeA(dst.Reg)
		if serr != nil {
			return nil, serr
		}
		seq = append(seq, load...)
		if dec {
			seq = append(seq, impl(mos.OP_SEC), imm(mos.OP_SBC, 1))
		} else {
			seq = append(seq, impl(mos.OP_CLC), imm(mos.OP_ADC, 1))
		}
		seq = append(seq, store...)

	default:
		err = ErrNoForm
	}

	return
}

// incDecPtr expands a 16-bit pointer increment or decrement. The high
// byte's carry-consuming step stays immediately after the low byte's step;
// the accumulator stages the carry as an early-clobber scratch.
func (p *pass) incDecPtr(in *mir.Inst) (seq []mir.Inst, err error) {
	dst := in.Args[0]
	if dst.Kind != mir.OPERAND_REG || dst.Reg.Class() != mos.CLASS_IMAG16 {
		return nil, ErrWidth
	}

	if in.Op == mos.P_DECPTR {
		return []mir.Inst{
			impl(mos.OP_SEC),
			zp(mos.OP_LDA, dst.Reg.Lo()),
			imm(mos.OP_SBC, 1),
			zp(mos.OP_STA, dst.Reg.Lo()),
			zp(mos.OP_LDA, dst.Reg.Hi()),
			imm(mos.OP_SBC, 0),
			zp(mos.OP_STA, dst.Reg.Hi()),
		}, nil
	}

	return []mir.Inst{
		impl(mos.OP_CLC),
		zp(mos.OP_LDA, dst.Reg.Lo()),
		imm(mos.OP_ADC, 1),
		zp(mos.OP_STA, dst.Reg.Lo()),
		zp(mos.OP_LDA, dst.Reg.Hi()),
		imm(mos.OP_ADC, 0),
		zp(mos.OP_STA, dst.Reg.Hi()),
	}, nil
}
