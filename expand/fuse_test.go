package expand

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/apmos/mos"
)

func TestExpand_CmpTerm(t *testing.T) {
	assert := assert.New(t)

	base := mos.NewTarget(mos.TIER_BASE)

	body := func(cmp string) []string {
		return []string{
			"func @cmp",
			"entry:",
			"\t" + cmp,
			"\tbeq @yes, @no",
			"yes:",
			"\trts",
			"no:",
			"\trts",
		}
	}

	fn := expandOne(t, base, nil, body("p.cmpterm x, #3")...)
	assert.Equal([]string{
		"cpx #$03",
		"beq @yes, @no",
		"rts",
		"rts",
	}, asm(fn))

	fn = expandOne(t, base, nil, body("p.cmpterm a, rc4")...)
	assert.Equal("cmp rc4", asm(fn)[0])

	fn = expandOne(t, base, nil, body("p.cmpterm y, $0400")...)
	assert.Equal("cpy $0400", asm(fn)[0])

	// A memory left-hand side routes through the accumulator, with the
	// compare kept adjacent to the branch.
	fn = expandOne(t, base, nil, body("p.cmpterm rc2, #9")...)
	assert.Equal([]string{"lda rc2", "cmp #$09"}, asm(fn)[:2])
}

func TestExpand_CmpTerm_NotAdjacent(t *testing.T) {
	assert := assert.New(t)

	fns := parseFns(t,
		"func @detached",
		"entry:",
		"\tp.cmpterm a, #1",
		"\tnop",
		"\tjmp @out",
		"out:",
		"\trts",
	)

	err := testEngine(mos.NewTarget(mos.TIER_BASE), nil).Expand(fns[0])
	assert.ErrorIs(err, ErrFusion)
}

func TestExpand_Gbr(t *testing.T) {
	assert := assert.New(t)

	base := mos.NewTarget(mos.TIER_BASE)

	body := func(gbr string) []string {
		return []string{
			"func @branch",
			"entry:",
			"\t" + gbr,
			"t:",
			"\trts",
			"f:",
			"\trts",
		}
	}

	fn := expandOne(t, base, nil, body("p.gbr c, @t, @f")...)
	assert.Equal("bcs @t, @f", asm(fn)[0])

	fn = expandOne(t, base, nil, body("p.gbr a, @t, @f")...)
	assert.Equal([]string{"cmp #$00", "bne @t, @f"}, asm(fn)[:2])

	fn = expandOne(t, base, nil, body("p.gbr x, @t, @f")...)
	assert.Equal([]string{"cpx #$00", "bne @t, @f"}, asm(fn)[:2])

	fn = expandOne(t, base, nil, body("p.gbr rc5, @t, @f")...)
	assert.Equal([]string{"lda rc5", "bne @t, @f"}, asm(fn)[:2])

	// Expansion keeps both outgoing edges intact.
	assert.Equal([]string{"entry"}, fn.Block("t").Preds)
	assert.Equal([]string{"entry"}, fn.Block("f").Preds)
}
