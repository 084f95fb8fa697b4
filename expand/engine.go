// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package expand

import (
	"errors"
	"log"
	"slices"

	"github.com/ezrec/apmos/mir"
	"github.com/ezrec/apmos/mos"
)

// Engine expands the pseudo instructions of one function at a time. An
// Engine holds no per-function state; independent engines may process
// independent functions in parallel.
type Engine struct {
	Verbose bool

	Target *mos.Target
	Scav   Scavenger
	Layout Layout
}

// New creates an expansion engine for the given target and collaborators.
func New(target *mos.Target, scav Scavenger, layout Layout) *Engine {
	return &Engine{
		Target: target,
		Scav:   scav,
		Layout: layout,
	}
}

// pass is the per-function expansion state.
type pass struct {
	*Engine
	fn *mir.Function

	ptrFree []mos.Reg // scratch pointers not held by a pending far access
	extra   []mos.Reg // registers reserved while expanding one pseudo
}

// Expand rewrites fn in place until only concrete instructions remain. The
// call-frame aggregation runs first over the whole function; a single
// in-order walk then expands each pseudo. Once run, no pseudo instances
// remain, so a second run is a no-op.
func (e *Engine) Expand(fn *mir.Function) error {
	p := &pass{
		Engine:  e,
		fn:      fn,
		ptrFree: []mos.Reg{mos.REG_SCRATCH, mos.RS(14), mos.RS(13)},
	}

	if err := p.aggregateFrames(); err != nil {
		return err
	}

	for bi := 0; bi < len(fn.Blocks); bi++ {
		b := fn.Blocks[bi]

		for ii := 0; ii < len(b.Insts); ii++ {
			if !b.Insts[ii].IsPseudo() {
				continue
			}

			// Copy out the pseudo; splicing invalidates the slot.
			ps := b.Insts[ii]

			if e.Verbose {
				log.Printf("%v/%v: expand %v", fn.Name, b.Label, ps.String())
			}

			attr, ok := ps.Op.Pseudo()
			if !ok {
				return p.contract(b, &ps, ErrPseudoUnknown)
			}

			if avail, err := e.Target.Eval(attr.Pred); err != nil {
				return p.contract(b, &ps, err)
			} else if !avail {
				return p.contract(b, &ps, ErrCapability)
			}

			if attr.MultiBlock {
				if err := p.expandSelect(b, ii); err != nil {
					return err
				}
				break // the tail blocks are visited in program order
			}

			p.extra = nil
			seq, err := p.expandInst(b, ii)
			if err != nil {
				var scav *ErrScavenge
				if errors.As(err, &scav) {
					return err
				}
				return p.contract(b, &ps, err)
			}

			if err := p.checkContract(&ps, seq); err != nil {
				return p.contract(b, &ps, err)
			}

			b.Splice(ii, seq)
			ii += len(seq) - 1
		}
	}

	return Verify(fn)
}

// expandInst dispatches one single-block pseudo to its expander.
func (p *pass) expandInst(b *mir.Block, ii int) ([]mir.Inst, error) {
	in := &b.Insts[ii]

	switch in.Op {
	case mos.P_LDIMM1:
		return p.ldImm1(in)
	case mos.P_LDIMM8:
		return p.ldImm8(in)
	case mos.P_LDIMM16:
		return p.ldImm16(b, ii)
	case mos.P_MOV:
		return p.mov(in)
	case mos.P_LDIDX:
		return p.ldIdx(in)
	case mos.P_STIDX:
		return p.stIdx(in)
	case mos.P_LDABS:
		return p.ldAbs(in)
	case mos.P_STABS:
		return p.stAbs(in)
	case mos.P_INC8, mos.P_DEC8:
		return p.incDec8(b, ii)
	case mos.P_INCPTR, mos.P_DECPTR:
		return p.incDecPtr(in)
	case mos.P_INCMB, mos.P_DECMB:
		return p.incDecMB(b, ii)
	case mos.P_LDSTK:
		return p.ldStk(in)
	case mos.P_STSTK:
		return p.stStk(in)
	case mos.P_ADDRSTK:
		return p.addrStk(in)
	case mos.P_CMPTERM:
		return p.cmpTerm(b, ii)
	case mos.P_GBR:
		return p.gbr(in)
	case mos.P_FRAMESETUP, mos.P_FRAMEDESTROY:
		// The aggregation pass consumes every marker before the walk.
		return nil, ErrFrameMarker
	}

	return nil, ErrPseudoUnknown
}

// contract wraps a fatal contract violation with its location.
func (p *pass) contract(b *mir.Block, in *mir.Inst, err error) error {
	return ErrContract{
		Func:  p.fn.Name,
		Block: b.Label,
		Inst:  in.String(),
		Err:   err,
	}
}

// liveFlagsAfter returns the flags read below index i in the block before
// being redefined. Flags are not live out of a terminator.
func liveFlagsAfter(b *mir.Block, i int) (live mos.Flag) {
	var dead mos.Flag

	for j := i + 1; j < len(b.Insts); j++ {
		in := &b.Insts[j]
		live |= in.UsesFlag() &^ dead
		dead |= in.Defines()
	}

	return
}

// reservePtr takes a scratch pointer for the duration of one far frame
// access. Pointers held by a pending access are never handed out again.
func (p *pass) reservePtr() (reg mos.Reg, err error) {
	if len(p.ptrFree) == 0 {
		return mos.REG_NONE, ErrScratchBusy
	}

	reg = p.ptrFree[0]
	p.ptrFree = p.ptrFree[1:]
	p.extra = append(p.extra, reg)

	return
}

// releasePtr returns a scratch pointer once its access is fully emitted.
func (p *pass) releasePtr(reg mos.Reg) {
	p.ptrFree = append([]mos.Reg{reg}, p.ptrFree...)
}

// checkContract verifies that an expansion's defined registers and flags
// stay within the pseudo's declared contract.
func (p *pass) checkContract(ps *mir.Inst, seq []mir.Inst) error {
	attr, _ := ps.Op.Pseudo()

	allowed := slices.Clone(attr.Clobbers)
	allowed = append(allowed, p.extra...)
	for _, o := range ps.Args {
		if o.Kind == mir.OPERAND_REG && o.IsDef() {
			allowed = append(allowed, o.Reg)
		}
	}

	var flags mos.Flag
	for n := range seq {
		in := &seq[n]
		flags |= in.Defines()
		for _, reg := range in.DefRegs() {
			if !regCovered(allowed, reg) {
				return ErrContractDef
			}
		}
	}

	if flags&^attr.Def != mos.FLAG_NONE {
		return ErrContractDef
	}

	return nil
}

// regCovered returns true if reg is one of the allowed registers, or a byte
// half of an allowed pointer pair.
func regCovered(allowed []mos.Reg, reg mos.Reg) bool {
	for _, a := range allowed {
		if reg == a {
			return true
		}
		if a.Class() == mos.CLASS_IMAG16 && (reg == a.Lo() || reg == a.Hi()) {
			return true
		}
	}
	return false
}
