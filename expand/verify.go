// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package expand

import (
	"github.com/ezrec/apmos/mir"
	"github.com/ezrec/apmos/mos"
)

// Verify checks the structural invariants an expanded function must hold:
// only concrete instructions, one trailing terminator per block, the flags
// feeding a conditional branch defined immediately before it, and
// predecessor/successor edges that agree exactly once in each direction.
func Verify(fn *mir.Function) error {
	for _, b := range fn.Blocks {
		if err := verifyBlock(fn, b); err != nil {
			return err
		}
	}
	return nil
}

func verifyBlock(fn *mir.Function, b *mir.Block) error {
	fail := func(in *mir.Inst, err error) error {
		text := ""
		if in != nil {
			text = in.String()
		}
		return ErrContract{Func: fn.Name, Block: b.Label, Inst: text, Err: err}
	}

	if len(b.Insts) == 0 {
		return fail(nil, ErrTermShape)
	}

	for n := range b.Insts {
		in := &b.Insts[n]
		if in.IsPseudo() {
			return fail(in, ErrPseudoRemains)
		}
		if in.IsTerm() != (n == len(b.Insts)-1) {
			return fail(in, ErrTermShape)
		}
	}

	term := b.Term()
	if used := term.UsesFlag(); used != mos.FLAG_NONE {
		// The last definer of a consumed flag, if any, sits right before
		// the branch.
		for n := len(b.Insts) - 2; n >= 0; n-- {
			if b.Insts[n].Defines()&used == mos.FLAG_NONE {
				continue
			}
			if n != len(b.Insts)-2 {
				return fail(&b.Insts[n], ErrFusion)
			}
			break
		}
	}

	for _, succ := range b.Succs() {
		sb := fn.Block(succ)
		if sb == nil {
			return fail(term, ErrEdge)
		}
		if count(sb.Preds, b.Label) != 1 {
			return fail(term, ErrEdge)
		}
	}

	for _, pred := range b.Preds {
		pb := fn.Block(pred)
		if pb == nil {
			return fail(nil, ErrEdge)
		}
		if count(pb.Succs(), b.Label) != 1 {
			return fail(nil, ErrEdge)
		}
	}

	return nil
}

func count(names []string, name string) (n int) {
	for _, have := range names {
		if have == name {
			n++
		}
	}
	return
}
