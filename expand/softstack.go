// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package expand

import (
	"github.com/ezrec/apmos/mir"
	"github.com/ezrec/apmos/mos"
)

// Soft-stack frame access. Slots resolve through the Layout collaborator to
// a (base pointer, offset) pair. Offsets within the target's index range
// use the base pointer directly with a Y displacement; anything further
// forms the full address in a reserved scratch pointer first. A scratch
// pointer is reserved for every access, near or far, and released only once
// the access is fully emitted.

// frameAddr resolves a frame operand to its base pointer and byte offset,
// checking that nb bytes fit inside the slot.
func (p *pass) frameAddr(o mir.Operand, nb int) (base mos.Reg, off int, err error) {
	if o.Kind != mir.OPERAND_FRAME {
		return mos.REG_NONE, 0, ErrNoForm
	}

	base, off, size, err := p.Layout.Resolve(o.Slot)
	if err != nil {
		return mos.REG_NONE, 0, err
	}

	if o.Off < 0 || o.Off+nb > size {
		return mos.REG_NONE, 0, ErrSlotRange
	}

	return base, off + o.Off, nil
}

// farPointer emits the 16-bit add forming base+off in the scratch pointer.
// The carry chain stays byte-adjacent; the accumulator stages each byte.
func farPointer(base, ptr mos.Reg, off int) []mir.Inst {
	return []mir.Inst{
		impl(mos.OP_CLC),
		zp(mos.OP_LDA, base.Lo()),
		imm(mos.OP_ADC, uint8(off)),
		zp(mos.OP_STA, ptr.Lo()),
		zp(mos.OP_LDA, base.Hi()),
		imm(mos.OP_ADC, uint8(off>>8)),
		zp(mos.OP_STA, ptr.Hi()),
	}
}

// ldStk expands a frame slot load.
func (p *pass) ldStk(in *mir.Inst) (seq []mir.Inst, err error) {
	dst, src := in.Args[0], in.Args[1]

	nb := 1
	if dst.Width == mos.WIDTH_16 {
		nb = 2
	}

	base, off, err := p.frameAddr(src, nb)
	if err != nil {
		return nil, err
	}

	ptr, err := p.reservePtr()
	if err != nil {
		return nil, err
	}
	defer p.releasePtr(ptr)

	near := off+nb-1 <= p.Target.IndexRange
	if near {
		seq = append(seq, imm(mos.OP_LDY, uint8(off)))
	} else {
		seq = append(seq, farPointer(base, ptr, off)...)
		seq = append(seq, imm(mos.OP_LDY, 0))
		base = ptr
	}

	switch {
	case dst.Width == mos.WIDTH_16:
		if dst.Reg.Class() != mos.CLASS_IMAG16 {
			return nil, ErrWidth
		}
		seq = append(seq,
			indy(mos.OP_LDA, base),
			zp(mos.OP_STA, dst.Reg.Lo()),
			impl(mos.OP_INY),
			indy(mos.OP_LDA, base),
			zp(mos.OP_STA, dst.Reg.Hi()),
		)

	case dst.Reg == mos.REG_C:
		// Bit zero of the stored byte shifts out into carry.
		seq = append(seq, indy(mos.OP_LDA, base), implA(mos.OP_LSR))

	default:
		store, serr := storeA(dst.Reg)
		if serr != nil {
			return nil, serr
		}
		seq = append(seq, indy(mos.OP_LDA, base))
		seq = append(seq, store...)
	}

	return
}

// stStk expands a frame slot store.
func (p *pass) stStk(in *mir.Inst) (seq []mir.Inst, err error) {
	src, dst := in.Args[0], in.Args[1]

	nb := 1
	if src.Width == mos.WIDTH_16 {
		nb = 2
	}

	base, off, err := p.frameAddr(dst, nb)
	if err != nil {
		return nil, err
	}

	ptr, err := p.reservePtr()
	if err != nil {
		return nil, err
	}
	defer p.releasePtr(ptr)

	near := off+nb-1 <= p.Target.IndexRange
	if !near {
		seq = append(seq, farPointer(base, ptr, off)...)
		base = ptr
		off = 0
	}

	switch {
	case src.Width == mos.WIDTH_16:
		if src.Kind != mir.OPERAND_REG || src.Reg.Class() != mos.CLASS_IMAG16 {
			return nil, ErrWidth
		}
		seq = append(seq,
			zp(mos.OP_LDA, src.Reg.Lo()),
			imm(mos.OP_LDY, uint8(off)),
			indy(mos.OP_STA, base),
			zp(mos.OP_LDA, src.Reg.Hi()),
			impl(mos.OP_INY),
			indy(mos.OP_STA, base),
		)

	case src.Kind == mir.OPERAND_REG && src.Reg == mos.REG_C:
		// A = 0 rotated left through carry leaves A = 0 or 1.
		seq = append(seq,
			imm(mos.OP_LDA, 0),
			implA(mos.OP_ROL),
			imm(mos.OP_LDY, uint8(off)),
			indy(mos.OP_STA, base),
		)

	default:
		load, lerr := loadA(src)
		if lerr != nil {
			return nil, lerr
		}
		seq = append(seq, load...)
		seq = append(seq, imm(mos.OP_LDY, uint8(off)), indy(mos.OP_STA, base))
	}

	return
}

// addrStk materializes the address of a frame slot into a pointer pair.
func (p *pass) addrStk(in *mir.Inst) (seq []mir.Inst, err error) {
	dst, src := in.Args[0], in.Args[1]
	if dst.Kind != mir.OPERAND_REG || dst.Reg.Class() != mos.CLASS_IMAG16 {
		return nil, ErrWidth
	}

	base, off, err := p.frameAddr(src, 1)
	if err != nil {
		return nil, err
	}

	if off == 0 {
		return []mir.Inst{
			zp(mos.OP_LDA, base.Lo()),
			zp(mos.OP_STA, dst.Reg.Lo()),
			zp(mos.OP_LDA, base.Hi()),
			zp(mos.OP_STA, dst.Reg.Hi()),
		}, nil
	}

	return farPointer(base, dst.Reg, off), nil
}
