package expand

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/apmos/mir"
	"github.com/ezrec/apmos/mos"
)

func verifyFn(t *testing.T, lines ...string) error {
	t.Helper()

	fns := parseFns(t, lines...)
	if len(fns) != 1 {
		t.Fatalf("parsed %d functions", len(fns))
	}
	return Verify(fns[0])
}

func TestVerify(t *testing.T) {
	assert := assert.New(t)

	assert.NoError(verifyFn(t,
		"func @good",
		"entry:",
		"\tlda #$01",
		"\tcmp #$02",
		"\tbeq @same, @diff",
		"same:",
		"\trts",
		"diff:",
		"\trts",
	))
}

func TestVerify_PseudoRemains(t *testing.T) {
	assert := assert.New(t)

	err := verifyFn(t,
		"func @leftover",
		"entry:",
		"\tp.ldimm8 a, #1",
		"\trts",
	)
	assert.ErrorIs(err, ErrPseudoRemains)
}

func TestVerify_TermShape(t *testing.T) {
	assert := assert.New(t)

	// No terminator at the end of the block.
	err := verifyFn(t,
		"func @unterminated",
		"entry:",
		"\tlda #$01",
	)
	assert.ErrorIs(err, ErrTermShape)

	// A terminator in the middle of the block.
	fns := parseFns(t,
		"func @early",
		"entry:",
		"\trts",
	)
	fns[0].Entry().Append(mir.MakeInst(mos.OP_NOP, mos.MODE_IMPL))
	assert.ErrorIs(Verify(fns[0]), ErrTermShape)

	// An empty block.
	fns[0].Blocks = append(fns[0].Blocks, &mir.Block{Label: "void"})
	fns[0].Entry().Insts = nil
	assert.ErrorIs(Verify(fns[0]), ErrTermShape)
}

func TestVerify_FlagAdjacency(t *testing.T) {
	assert := assert.New(t)

	// The carry definer is separated from the branch that consumes it.
	err := verifyFn(t,
		"func @clobbered",
		"entry:",
		"\tsec",
		"\tlda #$01",
		"\tbcs @t, @f",
		"t:",
		"\trts",
		"f:",
		"\trts",
	)
	assert.ErrorIs(err, ErrFusion)

	// Directly adjacent is fine; lda does not touch carry.
	assert.NoError(verifyFn(t,
		"func @adjacent",
		"entry:",
		"\tlda #$01",
		"\tsec",
		"\tbcs @t, @f",
		"t:",
		"\trts",
		"f:",
		"\trts",
	))
}

func TestVerify_Edges(t *testing.T) {
	assert := assert.New(t)

	fns := parseFns(t,
		"func @edges",
		"entry:",
		"\tjmp @out",
		"out:",
		"\trts",
	)

	fn := fns[0]
	assert.NoError(Verify(fn))

	// A duplicated predecessor edge is inconsistent.
	out := fn.Block("out")
	out.Preds = append(out.Preds, "entry")
	assert.ErrorIs(Verify(fn), ErrEdge)

	// So is a dropped one.
	out.Preds = nil
	assert.ErrorIs(Verify(fn), ErrEdge)

	// And a jump to nowhere.
	fn.RecalcPreds()
	fn.Entry().Insts[0] = mir.MakeInst(mos.OP_JMP, mos.MODE_ABS, mir.MakeLabel("gone"))
	assert.ErrorIs(Verify(fn), ErrEdge)
}
