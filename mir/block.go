package mir

import (
	"slices"
	"strings"
)

// Block is a basic block: a label, ordered instructions of which the last
// is the block's single terminator, and the labels of its predecessors.
type Block struct {
	Label string
	Insts []Inst
	Preds []string
}

// Term returns the block terminator, or nil for an empty block.
func (b *Block) Term() *Inst {
	if len(b.Insts) == 0 {
		return nil
	}
	return &b.Insts[len(b.Insts)-1]
}

// Succs returns the successor labels of the block.
func (b *Block) Succs() []string {
	term := b.Term()
	if term == nil {
		return nil
	}
	return term.Succs()
}

// Append adds instructions to the end of the block.
func (b *Block) Append(ins ...Inst) {
	b.Insts = append(b.Insts, ins...)
}

// Splice replaces the instruction at index i with seq.
func (b *Block) Splice(i int, seq []Inst) {
	out := make([]Inst, 0, len(b.Insts)+len(seq)-1)
	out = append(out, b.Insts[:i]...)
	out = append(out, seq...)
	out = append(out, b.Insts[i+1:]...)
	b.Insts = out
}

// Remove deletes the instruction at index i.
func (b *Block) Remove(i int) {
	b.Insts = slices.Delete(b.Insts, i, i+1)
}

func (b *Block) String() string {
	var sb strings.Builder

	sb.WriteString(b.Label + ":\n")
	for n := range b.Insts {
		sb.WriteString("\t" + b.Insts[n].String() + "\n")
	}

	return sb.String()
}
