// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package mir

import (
	"fmt"
	"iter"
	"slices"
	"strings"

	"github.com/ezrec/apmos/internal"
	"github.com/ezrec/apmos/mos"
)

// Function is one function body: ordered basic blocks plus the frame-slot
// table fixed by the upstream layout stage. The expand pass records its
// call-frame decision in StaticStack and CallFrameSize.
type Function struct {
	Name   string
	Blocks []*Block
	Slots  []int // frame slot sizes in bytes, indexed by slot id

	NoRecurse     bool // proven unable to reach itself through calls
	StaticStack   bool // call-frame region statically reserved
	CallFrameSize int  // aggregated maximum call-frame bytes

	labelSeq int
}

// Block returns the block with the given label, or nil.
func (fn *Function) Block(label string) *Block {
	for _, b := range fn.Blocks {
		if b.Label == label {
			return b
		}
	}
	return nil
}

// Entry returns the function entry block.
func (fn *Function) Entry() *Block {
	if len(fn.Blocks) == 0 {
		return nil
	}
	return fn.Blocks[0]
}

// NewLabel mints a fresh block label derived from base.
func (fn *Function) NewLabel(base string) string {
	for {
		fn.labelSeq++
		label := fmt.Sprintf("%v.%d", base, fn.labelSeq)
		if fn.Block(label) == nil {
			return label
		}
	}
}

// InsertAfter places blocks immediately after the given block in program
// order.
func (fn *Function) InsertAfter(after *Block, blocks ...*Block) {
	at := slices.Index(fn.Blocks, after)
	if at < 0 {
		at = len(fn.Blocks) - 1
	}
	fn.Blocks = slices.Insert(fn.Blocks, at+1, blocks...)
}

// SplitAt splits block b before instruction index i. Instructions from i
// onward move to a new block labelled label, inserted right after b. The
// terminator moves with the tail, and each successor's predecessor edge is
// rewired from b to the tail exactly once. The tail starts with b as its
// only predecessor; callers that reterminate b must fix both edges.
func (fn *Function) SplitAt(b *Block, i int, label string) (tail *Block) {
	tail = &Block{
		Label: label,
		Insts: append([]Inst{}, b.Insts[i:]...),
		Preds: []string{b.Label},
	}
	b.Insts = b.Insts[:i]

	for _, succ := range tail.Succs() {
		sb := fn.Block(succ)
		if sb == nil {
			continue
		}
		if n := slices.Index(sb.Preds, b.Label); n >= 0 {
			sb.Preds[n] = tail.Label
		}
	}

	fn.InsertAfter(b, tail)

	return
}

// RecalcPreds rebuilds every block's predecessor list from the terminators.
func (fn *Function) RecalcPreds() {
	for _, b := range fn.Blocks {
		b.Preds = nil
	}
	for _, b := range fn.Blocks {
		for _, succ := range b.Succs() {
			if sb := fn.Block(succ); sb != nil {
				sb.Preds = append(sb.Preds, b.Label)
			}
		}
	}
}

// Insts iterates every instruction in program order, yielding the label of
// the containing block.
func (fn *Function) Insts() iter.Seq2[string, *Inst] {
	seqs := make([]iter.Seq2[string, *Inst], 0, len(fn.Blocks))
	for _, b := range fn.Blocks {
		seqs = append(seqs, func(yield func(string, *Inst) bool) {
			for n := range b.Insts {
				if !yield(b.Label, &b.Insts[n]) {
					return
				}
			}
		})
	}
	return internal.IterSeq2Concat(seqs...)
}

// Callees returns the unique called function names, in call order.
func (fn *Function) Callees() (names []string) {
	for _, in := range fn.Insts() {
		if in.Op != mos.OP_JSR {
			continue
		}
		for _, o := range in.Args {
			if o.Kind == OPERAND_LABEL && !slices.Contains(names, o.Label) {
				names = append(names, o.Label)
			}
		}
	}
	return
}

// HasPseudo returns true if any pseudo instruction remains.
func (fn *Function) HasPseudo() bool {
	for _, in := range fn.Insts() {
		if in.IsPseudo() {
			return true
		}
	}
	return false
}

// String returns the textual form of the function, parseable by Parse.
func (fn *Function) String() string {
	var sb strings.Builder

	sb.WriteString("func @" + fn.Name)
	if fn.NoRecurse {
		sb.WriteString(" norecurse")
	}
	sb.WriteString("\n")

	for slot, size := range fn.Slots {
		fmt.Fprintf(&sb, "slot f%d %d\n", slot, size)
	}

	for _, b := range fn.Blocks {
		sb.WriteString(b.String())
	}

	return sb.String()
}
