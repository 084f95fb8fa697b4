// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package mos

import (
	"fmt"
	"slices"
)

// Mode is an instruction addressing mode.
type Mode int

//go:generate go tool stringer -linecomment -type=Mode
const (
	MODE_NONE = Mode(0)  // none
	MODE_IMPL = Mode(1)  // impl
	MODE_IMM  = Mode(2)  // imm
	MODE_ZP   = Mode(3)  // zp
	MODE_ZPX  = Mode(4)  // zp,x
	MODE_ZPY  = Mode(5)  // zp,y
	MODE_ABS  = Mode(6)  // abs
	MODE_ABSX = Mode(7)  // abs,x
	MODE_ABSY = Mode(8)  // abs,y
	MODE_INDY = Mode(9)  // (zp),y
	MODE_REL  = Mode(10) // rel
)

// Op is an instruction opcode. The space covers both the concrete machine
// instruction set and the post-allocation pseudo instructions; pseudo kinds
// sort after pseudoBase and are removed from a function by the expand pass.
type Op int

const (
	OP_ILLEGAL Op = iota

	OP_LDA
	OP_LDX
	OP_LDY
	OP_STA
	OP_STX
	OP_STY
	OP_STZ
	OP_TAX
	OP_TXA
	OP_TAY
	OP_TYA
	OP_CLC
	OP_SEC
	OP_ADC
	OP_SBC
	OP_INC
	OP_DEC
	OP_INX
	OP_INY
	OP_DEX
	OP_DEY
	OP_INA
	OP_DEA
	OP_CMP
	OP_CPX
	OP_CPY
	OP_DCP
	OP_LSR
	OP_ROL
	OP_BEQ
	OP_BNE
	OP_BCC
	OP_BCS
	OP_BMI
	OP_BPL
	OP_BRA
	OP_JMP
	OP_JSR
	OP_RTS
	OP_PHA
	OP_PLA
	OP_NOP

	pseudoBase

	P_LDIMM1
	P_LDIMM8
	P_LDIMM16
	P_MOV
	P_LDIDX
	P_STIDX
	P_LDABS
	P_STABS
	P_INC8
	P_DEC8
	P_INCPTR
	P_DECPTR
	P_INCMB
	P_DECMB
	P_LDSTK
	P_STSTK
	P_ADDRSTK
	P_CMPTERM
	P_GBR
	P_SELECT
	P_FRAMESETUP
	P_FRAMEDESTROY

	numOps
)

var opNames = [numOps]string{
	OP_ILLEGAL: "???",

	OP_LDA: "lda",
	OP_LDX: "ldx",
	OP_LDY: "ldy",
	OP_STA: "sta",
	OP_STX: "stx",
	OP_STY: "sty",
	OP_STZ: "stz",
	OP_TAX: "tax",
	OP_TXA: "txa",
	OP_TAY: "tay",
	OP_TYA: "tya",
	OP_CLC: "clc",
	OP_SEC: "sec",
	OP_ADC: "adc",
	OP_SBC: "sbc",
	OP_INC: "inc",
	OP_DEC: "dec",
	OP_INX: "inx",
	OP_INY: "iny",
	OP_DEX: "dex",
	OP_DEY: "dey",
	OP_INA: "ina",
	OP_DEA: "dea",
	OP_CMP: "cmp",
	OP_CPX: "cpx",
	OP_CPY: "cpy",
	OP_DCP: "dcp",
	OP_LSR: "lsr",
	OP_ROL: "rol",
	OP_BEQ: "beq",
	OP_BNE: "bne",
	OP_BCC: "bcc",
	OP_BCS: "bcs",
	OP_BMI: "bmi",
	OP_BPL: "bpl",
	OP_BRA: "bra",
	OP_JMP: "jmp",
	OP_JSR: "jsr",
	OP_RTS: "rts",
	OP_PHA: "pha",
	OP_PLA: "pla",
	OP_NOP: "nop",

	P_LDIMM1:       "p.ldimm1",
	P_LDIMM8:       "p.ldimm8",
	P_LDIMM16:      "p.ldimm16",
	P_MOV:          "p.mov",
	P_LDIDX:        "p.ldidx",
	P_STIDX:        "p.stidx",
	P_LDABS:        "p.ldabs",
	P_STABS:        "p.stabs",
	P_INC8:         "p.inc8",
	P_DEC8:         "p.dec8",
	P_INCPTR:       "p.incptr",
	P_DECPTR:       "p.decptr",
	P_INCMB:        "p.incmb",
	P_DECMB:        "p.decmb",
	P_LDSTK:        "p.ldstk",
	P_STSTK:        "p.ststk",
	P_ADDRSTK:      "p.addrstk",
	P_CMPTERM:      "p.cmpterm",
	P_GBR:          "p.gbr",
	P_SELECT:       "p.select",
	P_FRAMESETUP:   "p.framesetup",
	P_FRAMEDESTROY: "p.framedestroy",
}

var opByName = map[string]Op{}

func init() {
	for op, name := range opNames {
		if name != "" {
			opByName[name] = Op(op)
		}
	}
}

// String returns the assembly mnemonic of op.
func (op Op) String() string {
	if op < 0 || op >= numOps || opNames[op] == "" {
		return fmt.Sprintf("Op(%d)", int(op))
	}
	return opNames[op]
}

// OpByName looks up an opcode by its assembly mnemonic.
func OpByName(name string) (op Op, ok bool) {
	op, ok = opByName[name]
	return
}

// IsPseudo returns true if op is a post-allocation pseudo instruction.
func (op Op) IsPseudo() bool {
	return op > pseudoBase && op < numOps
}

// OpAttr is the declared contract of a concrete opcode.
type OpAttr struct {
	Modes []Mode // legal addressing modes
	Def   Flag   // flags defined
	Use   Flag   // flags used
	Pred  string // capability predicate; empty is always available
	Term  bool   // block terminator
}

var rwModes = []Mode{MODE_ZP, MODE_ZPX, MODE_ABS, MODE_ABSX}
var aluModes = []Mode{MODE_IMM, MODE_ZP, MODE_ZPX, MODE_ABS, MODE_ABSX, MODE_ABSY, MODE_INDY}

var opAttr = map[Op]OpAttr{
	OP_LDA: {Modes: aluModes, Def: FLAG_Z | FLAG_N},
	OP_LDX: {Modes: []Mode{MODE_IMM, MODE_ZP, MODE_ZPY, MODE_ABS, MODE_ABSY}, Def: FLAG_Z | FLAG_N},
	OP_LDY: {Modes: []Mode{MODE_IMM, MODE_ZP, MODE_ZPX, MODE_ABS, MODE_ABSX}, Def: FLAG_Z | FLAG_N},
	OP_STA: {Modes: []Mode{MODE_ZP, MODE_ZPX, MODE_ABS, MODE_ABSX, MODE_ABSY, MODE_INDY}},
	OP_STX: {Modes: []Mode{MODE_ZP, MODE_ZPY, MODE_ABS}},
	OP_STY: {Modes: []Mode{MODE_ZP, MODE_ZPX, MODE_ABS}},
	OP_STZ: {Modes: rwModes, Pred: "tier >= cmos"},
	OP_TAX: {Modes: []Mode{MODE_IMPL}, Def: FLAG_Z | FLAG_N},
	OP_TXA: {Modes: []Mode{MODE_IMPL}, Def: FLAG_Z | FLAG_N},
	OP_TAY: {Modes: []Mode{MODE_IMPL}, Def: FLAG_Z | FLAG_N},
	OP_TYA: {Modes: []Mode{MODE_IMPL}, Def: FLAG_Z | FLAG_N},
	OP_CLC: {Modes: []Mode{MODE_IMPL}, Def: FLAG_C},
	OP_SEC: {Modes: []Mode{MODE_IMPL}, Def: FLAG_C},
	OP_ADC: {Modes: aluModes, Def: FLAG_ALL, Use: FLAG_C},
	OP_SBC: {Modes: aluModes, Def: FLAG_ALL, Use: FLAG_C},
	OP_INC: {Modes: rwModes, Def: FLAG_Z | FLAG_N},
	OP_DEC: {Modes: rwModes, Def: FLAG_Z | FLAG_N},
	OP_INX: {Modes: []Mode{MODE_IMPL}, Def: FLAG_Z | FLAG_N},
	OP_INY: {Modes: []Mode{MODE_IMPL}, Def: FLAG_Z | FLAG_N},
	OP_DEX: {Modes: []Mode{MODE_IMPL}, Def: FLAG_Z | FLAG_N},
	OP_DEY: {Modes: []Mode{MODE_IMPL}, Def: FLAG_Z | FLAG_N},
	OP_INA: {Modes: []Mode{MODE_IMPL}, Def: FLAG_Z | FLAG_N, Pred: "tier >= cmos"},
	OP_DEA: {Modes: []Mode{MODE_IMPL}, Def: FLAG_Z | FLAG_N, Pred: "tier >= cmos"},
	OP_CMP: {Modes: aluModes, Def: FLAG_C | FLAG_Z | FLAG_N},
	OP_CPX: {Modes: []Mode{MODE_IMM, MODE_ZP, MODE_ABS}, Def: FLAG_C | FLAG_Z | FLAG_N},
	OP_CPY: {Modes: []Mode{MODE_IMM, MODE_ZP, MODE_ABS}, Def: FLAG_C | FLAG_Z | FLAG_N},

	// Undocumented read-modify-write: decrements memory, then compares the
	// accumulator against the result.
	OP_DCP: {Modes: []Mode{MODE_ZP, MODE_ZPX, MODE_ABS, MODE_ABSX, MODE_ABSY}, Def: FLAG_C | FLAG_Z | FLAG_N, Pred: "tier >= undoc and dcp"},

	OP_LSR: {Modes: []Mode{MODE_IMPL, MODE_ZP, MODE_ABS}, Def: FLAG_C | FLAG_Z | FLAG_N},
	OP_ROL: {Modes: []Mode{MODE_IMPL, MODE_ZP, MODE_ABS}, Def: FLAG_C | FLAG_Z | FLAG_N, Use: FLAG_C},

	OP_BEQ: {Modes: []Mode{MODE_REL}, Use: FLAG_Z, Term: true},
	OP_BNE: {Modes: []Mode{MODE_REL}, Use: FLAG_Z, Term: true},
	OP_BCC: {Modes: []Mode{MODE_REL}, Use: FLAG_C, Term: true},
	OP_BCS: {Modes: []Mode{MODE_REL}, Use: FLAG_C, Term: true},
	OP_BMI: {Modes: []Mode{MODE_REL}, Use: FLAG_N, Term: true},
	OP_BPL: {Modes: []Mode{MODE_REL}, Use: FLAG_N, Term: true},
	OP_BRA: {Modes: []Mode{MODE_REL}, Pred: "tier >= cmos", Term: true},
	OP_JMP: {Modes: []Mode{MODE_ABS}, Term: true},
	OP_JSR: {Modes: []Mode{MODE_ABS}},
	OP_RTS: {Modes: []Mode{MODE_IMPL}, Term: true},
	OP_PHA: {Modes: []Mode{MODE_IMPL}},
	OP_PLA: {Modes: []Mode{MODE_IMPL}, Def: FLAG_Z | FLAG_N},
	OP_NOP: {Modes: []Mode{MODE_IMPL}},
}

// Attr returns the declared contract of a concrete opcode.
func (op Op) Attr() (attr OpAttr, ok bool) {
	attr, ok = opAttr[op]
	return
}

// Legal returns true if op accepts the addressing mode.
func (op Op) Legal(mode Mode) bool {
	attr, ok := opAttr[op]
	return ok && slices.Contains(attr.Modes, mode)
}

// IsTerm returns true if op ends a basic block.
func (op Op) IsTerm() bool {
	if op.IsPseudo() {
		attr, ok := op.Pseudo()
		return ok && attr.Term
	}
	return opAttr[op].Term
}

// IsBranch returns true if op is a conditional branch terminator.
func (op Op) IsBranch() bool {
	attr, ok := opAttr[op]
	return ok && attr.Term && attr.Use != FLAG_NONE
}
