package mos

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOp_Names(t *testing.T) {
	assert := assert.New(t)

	// Every opcode round-trips through its mnemonic.
	for op := Op(1); op < numOps; op++ {
		if op == pseudoBase {
			continue
		}

		name := op.String()
		assert.NotEmpty(name)

		back, ok := OpByName(name)
		assert.True(ok, "name %v", name)
		assert.Equal(op, back)
	}

	_, ok := OpByName("xyzzy")
	assert.False(ok)
}

func TestOp_IsPseudo(t *testing.T) {
	assert := assert.New(t)

	assert.False(OP_LDA.IsPseudo())
	assert.False(OP_NOP.IsPseudo())
	assert.True(P_LDIMM8.IsPseudo())
	assert.True(P_FRAMEDESTROY.IsPseudo())
	assert.False(pseudoBase.IsPseudo())
	assert.False(numOps.IsPseudo())
}

func TestOp_Attr(t *testing.T) {
	assert := assert.New(t)

	// Every concrete opcode declares its contract; every pseudo its shape.
	for op := Op(1); op < pseudoBase; op++ {
		attr, ok := op.Attr()
		assert.True(ok, "op %v", op)
		assert.NotEmpty(attr.Modes, "op %v", op)
	}

	for op := pseudoBase + 1; op < numOps; op++ {
		_, ok := op.Pseudo()
		assert.True(ok, "op %v", op)
	}
}

func TestOp_Legal(t *testing.T) {
	assert := assert.New(t)

	assert.True(OP_LDA.Legal(MODE_IMM))
	assert.True(OP_LDA.Legal(MODE_INDY))
	assert.False(OP_LDA.Legal(MODE_IMPL))
	assert.False(OP_LDX.Legal(MODE_ABSX))
	assert.True(OP_LDX.Legal(MODE_ABSY))
	assert.True(OP_RTS.Legal(MODE_IMPL))
	assert.False(OP_STA.Legal(MODE_IMM))
}

func TestOp_Term(t *testing.T) {
	assert := assert.New(t)

	terms := []Op{OP_BEQ, OP_BNE, OP_BCC, OP_BCS, OP_BMI, OP_BPL, OP_BRA, OP_JMP, OP_RTS}
	for _, op := range terms {
		assert.True(op.IsTerm(), "op %v", op)
	}

	// A call returns; it does not end its block.
	assert.False(OP_JSR.IsTerm())
	assert.False(OP_LDA.IsTerm())

	assert.True(OP_BEQ.IsBranch())
	assert.True(OP_BCS.IsBranch())
	assert.False(OP_BRA.IsBranch()) // unconditional
	assert.False(OP_JMP.IsBranch())
	assert.False(OP_RTS.IsBranch())
}

func TestOp_PseudoContracts(t *testing.T) {
	assert := assert.New(t)

	// Terminator pseudos and only those mark Term.
	for op := pseudoBase + 1; op < numOps; op++ {
		attr, _ := op.Pseudo()
		assert.Equal(op == P_GBR, attr.Term, "op %v", op)
		assert.Equal(op == P_SELECT, attr.MultiBlock, "op %v", op)
	}

	attr, _ := P_DECMB.Pseudo()
	assert.Equal(2, len(attr.Candidates))
	assert.Equal(CAND_DCP, attr.Candidates[0].Name)

	attr, _ = P_LDIMM16.Pseudo()
	assert.True(attr.Shapes[2].Optional)
	assert.False(attr.Remat)
}

func TestMode_String(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("impl", MODE_IMPL.String())
	assert.Equal("(zp),y", MODE_INDY.String())
	assert.Equal("abs,x", MODE_ABSX.String())
	assert.Equal("rel", MODE_REL.String())
}
