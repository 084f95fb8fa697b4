// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package mos

// Role describes how a pseudo instruction treats one of its operands.
type Role int

//go:generate go tool stringer -linecomment -type=Role
const (
	ROLE_NONE    = Role(0) // none
	ROLE_DEF     = Role(1) // def
	ROLE_USE     = Role(2) // use
	ROLE_TIED    = Role(3) // tied
	ROLE_SCRATCH = Role(4) // scratch
)

// Width is an operand width in bits.
type Width int

const (
	WIDTH_NONE = Width(0)
	WIDTH_1    = Width(1)
	WIDTH_8    = Width(8)
	WIDTH_16   = Width(16)
)

// Shape is the declared form of one pseudo operand. WIDTH_NONE accepts any
// width; the expand pass checks the concrete width against the binding.
type Shape struct {
	Role     Role
	Width    Width
	Optional bool // operand may be omitted; only legal in trailing position
	Variadic bool // operand repeats one or more times; must be last
}

// Candidate is one concrete realization of a pseudo, competing on declared
// priority. Higher priority wins; equal priority resolves first-declared.
type Candidate struct {
	Name string
	Pred string // capability predicate; empty is always admissible
	Def  Flag   // flags this form clobbers
	Prio int
}

// PseudoAttr is the declared contract of a pseudo instruction: operand
// shapes, the flag and register effects an expansion may have, capability
// gating, and the candidate forms the resolver chooses among.
type PseudoAttr struct {
	Shapes     []Shape
	Def        Flag  // flags an expansion may define
	Use        Flag  // flags an expansion may consume
	Clobbers   []Reg // registers an expansion may define beyond its operands
	Pred       string
	Remat      bool // safe to recompute at point of use; fixed upstream
	MultiBlock bool // expansion introduces new basic blocks
	Term       bool // pseudo occupies the block terminator slot
	Candidates []Candidate
}

// Candidate names for increment/decrement selection.
const (
	CAND_DEDICATED = "dedicated" // flag-free inc/dec opcode
	CAND_ADDSUB    = "addsub"    // add/subtract via the accumulator
	CAND_DCP       = "dcp"       // combined decrement-and-compare
)

var incDecCandidates = []Candidate{
	// Fewer flag clobbers beats fewer bytes.
	{Name: CAND_DEDICATED, Def: FLAG_Z | FLAG_N, Prio: 2},
	{Name: CAND_ADDSUB, Def: FLAG_ALL, Prio: 1},
}

var decMBCandidates = []Candidate{
	{Name: CAND_DCP, Pred: "tier >= undoc and dcp", Def: FLAG_C | FLAG_Z | FLAG_N, Prio: 2},
	{Name: CAND_ADDSUB, Def: FLAG_ALL, Prio: 1},
}

var pseudoAttr = map[Op]PseudoAttr{
	P_LDIMM1: {
		Shapes:   []Shape{{Role: ROLE_DEF, Width: WIDTH_1}, {Role: ROLE_USE, Width: WIDTH_1}},
		Def:      FLAG_C | FLAG_Z | FLAG_N,
		Clobbers: []Reg{REG_A},
		Remat:    true,
	},
	P_LDIMM8: {
		Shapes:   []Shape{{Role: ROLE_DEF, Width: WIDTH_8}, {Role: ROLE_USE, Width: WIDTH_8}},
		Def:      FLAG_Z | FLAG_N,
		Clobbers: []Reg{REG_A},
		Remat:    true,
	},
	P_LDIMM16: {
		// The scratch stages each immediate byte on its way to the pair;
		// omitted, the expansion asks the register scavenger for one.
		Shapes: []Shape{
			{Role: ROLE_DEF, Width: WIDTH_16},
			{Role: ROLE_USE, Width: WIDTH_16},
			{Role: ROLE_SCRATCH, Width: WIDTH_8, Optional: true},
		},
		Def: FLAG_Z | FLAG_N,
	},
	P_MOV: {
		Shapes:   []Shape{{Role: ROLE_DEF}, {Role: ROLE_USE}},
		Def:      FLAG_Z | FLAG_N,
		Clobbers: []Reg{REG_A},
	},
	P_LDIDX: {
		Shapes:   []Shape{{Role: ROLE_DEF, Width: WIDTH_8}, {Role: ROLE_USE, Width: WIDTH_16}, {Role: ROLE_USE, Width: WIDTH_8}},
		Def:      FLAG_Z | FLAG_N,
		Clobbers: []Reg{REG_A},
	},
	P_STIDX: {
		Shapes:   []Shape{{Role: ROLE_USE, Width: WIDTH_8}, {Role: ROLE_USE, Width: WIDTH_16}, {Role: ROLE_USE, Width: WIDTH_8}},
		Def:      FLAG_Z | FLAG_N,
		Clobbers: []Reg{REG_A},
	},
	P_LDABS: {
		Shapes:   []Shape{{Role: ROLE_DEF, Width: WIDTH_8}, {Role: ROLE_USE, Width: WIDTH_16}},
		Def:      FLAG_Z | FLAG_N,
		Clobbers: []Reg{REG_A},
	},
	P_STABS: {
		Shapes:   []Shape{{Role: ROLE_USE, Width: WIDTH_8}, {Role: ROLE_USE, Width: WIDTH_16}},
		Def:      FLAG_Z | FLAG_N,
		Clobbers: []Reg{REG_A},
	},
	P_INC8: {
		Shapes:     []Shape{{Role: ROLE_TIED, Width: WIDTH_8}},
		Def:        FLAG_ALL,
		Clobbers:   []Reg{REG_A},
		Candidates: incDecCandidates,
	},
	P_DEC8: {
		Shapes:     []Shape{{Role: ROLE_TIED, Width: WIDTH_8}},
		Def:        FLAG_ALL,
		Clobbers:   []Reg{REG_A},
		Candidates: incDecCandidates,
	},
	P_INCPTR: {
		Shapes:   []Shape{{Role: ROLE_TIED, Width: WIDTH_16}},
		Def:      FLAG_ALL,
		Clobbers: []Reg{REG_A}, // early-clobber carry staging
	},
	P_DECPTR: {
		Shapes:   []Shape{{Role: ROLE_TIED, Width: WIDTH_16}},
		Def:      FLAG_ALL,
		Clobbers: []Reg{REG_A},
	},
	P_INCMB: {
		Shapes:   []Shape{{Role: ROLE_TIED, Width: WIDTH_8, Variadic: true}},
		Def:      FLAG_ALL,
		Clobbers: []Reg{REG_A},
	},
	P_DECMB: {
		Shapes:     []Shape{{Role: ROLE_TIED, Width: WIDTH_8, Variadic: true}},
		Def:        FLAG_ALL,
		Clobbers:   []Reg{REG_A},
		Candidates: decMBCandidates,
	},
	P_LDSTK: {
		Shapes:   []Shape{{Role: ROLE_DEF}, {Role: ROLE_USE}},
		Def:      FLAG_C | FLAG_Z | FLAG_V | FLAG_N,
		Clobbers: []Reg{REG_A, REG_Y, REG_SCRATCH},
	},
	P_STSTK: {
		Shapes:   []Shape{{Role: ROLE_USE}, {Role: ROLE_USE}},
		Def:      FLAG_C | FLAG_Z | FLAG_V | FLAG_N,
		Clobbers: []Reg{REG_A, REG_Y, REG_SCRATCH},
	},
	P_ADDRSTK: {
		Shapes:   []Shape{{Role: ROLE_DEF, Width: WIDTH_16}, {Role: ROLE_USE}},
		Def:      FLAG_ALL,
		Clobbers: []Reg{REG_A},
	},
	P_CMPTERM: {
		Shapes:   []Shape{{Role: ROLE_USE, Width: WIDTH_8}, {Role: ROLE_USE, Width: WIDTH_8}},
		Def:      FLAG_C | FLAG_Z | FLAG_N,
		Clobbers: []Reg{REG_A},
	},
	P_GBR: {
		Shapes: []Shape{
			{Role: ROLE_USE},
			{Role: ROLE_USE}, // taken label
			{Role: ROLE_USE}, // not-taken label
		},
		Def:      FLAG_C | FLAG_Z | FLAG_N,
		Clobbers: []Reg{REG_A},
		Term:     true,
	},
	P_SELECT: {
		Shapes: []Shape{
			{Role: ROLE_DEF, Width: WIDTH_8},
			{Role: ROLE_USE},
			{Role: ROLE_USE, Width: WIDTH_8},
			{Role: ROLE_USE, Width: WIDTH_8},
		},
		Def:        FLAG_C | FLAG_Z | FLAG_N,
		Clobbers:   []Reg{REG_A},
		MultiBlock: true,
	},
	P_FRAMESETUP: {
		Shapes:   []Shape{{Role: ROLE_USE, Width: WIDTH_16}, {Role: ROLE_USE, Width: WIDTH_16}},
		Def:      FLAG_ALL,
		Clobbers: []Reg{REG_A, REG_SP},
	},
	P_FRAMEDESTROY: {
		Def:      FLAG_ALL,
		Clobbers: []Reg{REG_A, REG_SP},
	},
}

// Pseudo returns the declared contract of a pseudo opcode.
func (op Op) Pseudo() (attr PseudoAttr, ok bool) {
	attr, ok = pseudoAttr[op]
	return
}
