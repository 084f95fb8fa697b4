package expand

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/apmos/mos"
)

// expandAsm expands one single-block function body ending in rts and
// returns the concrete instruction strings.
func expandAsm(t *testing.T, tg *mos.Target, body ...string) []string {
	t.Helper()

	lines := []string{"func @t", "entry:"}
	lines = append(lines, body...)
	lines = append(lines, "\trts")

	return asm(expandOne(t, tg, nil, lines...))
}

func TestExpand_LdImm1(t *testing.T) {
	assert := assert.New(t)

	base := mos.NewTarget(mos.TIER_BASE)

	assert.Equal([]string{"sec", "rts"},
		expandAsm(t, base, "\tp.ldimm1 c, #1"))
	assert.Equal([]string{"clc", "rts"},
		expandAsm(t, base, "\tp.ldimm1 c, #0"))
	assert.Equal([]string{"lda #$01", "rts"},
		expandAsm(t, base, "\tp.ldimm1 a, #1"))
}

func TestExpand_LdImm8(t *testing.T) {
	assert := assert.New(t)

	base := mos.NewTarget(mos.TIER_BASE)
	cmos := mos.NewTarget(mos.TIER_CMOS)

	assert.Equal([]string{"lda #$2a", "rts"},
		expandAsm(t, base, "\tp.ldimm8 a, #$2a"))
	assert.Equal([]string{"ldx #$2a", "rts"},
		expandAsm(t, base, "\tp.ldimm8 x, #$2a"))
	assert.Equal([]string{"ldy #$2a", "rts"},
		expandAsm(t, base, "\tp.ldimm8 y, #$2a"))

	assert.Equal([]string{"lda #$2a", "sta rc7", "rts"},
		expandAsm(t, base, "\tp.ldimm8 rc7, #$2a"))

	// Zero stores skip the accumulator where the tier allows.
	assert.Equal([]string{"lda #$00", "sta rc7", "rts"},
		expandAsm(t, base, "\tp.ldimm8 rc7, #0"))
	assert.Equal([]string{"stz rc7", "rts"},
		expandAsm(t, cmos, "\tp.ldimm8 rc7, #0"))
}

func TestExpand_LdImm16(t *testing.T) {
	assert := assert.New(t)

	base := mos.NewTarget(mos.TIER_BASE)

	// The scavenged register stages both immediate bytes, low first.
	assert.Equal([]string{
		"ldx #$34",
		"stx rc4",
		"ldx #$12",
		"stx rc5",
		"rts",
	}, expandAsm(t, base, "\tp.ldimm16 rs2, #$1234"))

	// An explicit scratch operand skips the scavenger.
	assert.Equal([]string{
		"ldy #$34",
		"sty rc4",
		"ldy #$12",
		"sty rc5",
		"rts",
	}, expandAsm(t, base, "\tp.ldimm16 rs2, #$1234, y"))
}

func TestExpand_Mov(t *testing.T) {
	assert := assert.New(t)

	base := mos.NewTarget(mos.TIER_BASE)

	for body, expect := range map[string][]string{
		"p.mov x, a":     {"tax"},
		"p.mov a, x":     {"txa"},
		"p.mov y, a":     {"tay"},
		"p.mov a, y":     {"tya"},
		"p.mov y, x":     {"txa", "tay"},
		"p.mov x, y":     {"tya", "tax"},
		"p.mov a, a":     {"nop"},
		"p.mov rc2, a":   {"sta rc2"},
		"p.mov a, rc2":   {"lda rc2"},
		"p.mov x, rc2":   {"ldx rc2"},
		"p.mov rc2, y":   {"sty rc2"},
		"p.mov rc3, rc2": {"lda rc2", "sta rc3"},
	} {
		want := append(expect, "rts")
		assert.Equal(want, expandAsm(t, base, "\t"+body), body)
	}
}

func TestExpand_Mov16(t *testing.T) {
	assert := assert.New(t)

	base := mos.NewTarget(mos.TIER_BASE)

	assert.Equal([]string{
		"lda rc6",
		"sta rc4",
		"lda rc7",
		"sta rc5",
		"rts",
	}, expandAsm(t, base, "\tp.mov rs2, rs3"))
}

func TestExpand_LdIdx(t *testing.T) {
	assert := assert.New(t)

	base := mos.NewTarget(mos.TIER_BASE)

	for body, expect := range map[string][]string{
		"p.ldidx a, $1234, y":   {"lda $1234,y"},
		"p.ldidx a, $1234, x":   {"lda $1234,x"},
		"p.ldidx x, $1234, y":   {"ldx $1234,y"},
		"p.ldidx y, $1234, x":   {"ldy $1234,x"},
		"p.ldidx x, $1234, x":   {"lda $1234,x", "tax"},
		"p.ldidx y, $1234, y":   {"lda $1234,y", "tay"},
		"p.ldidx rc2, $1234, y": {"lda $1234,y", "sta rc2"},
	} {
		want := append(expect, "rts")
		assert.Equal(want, expandAsm(t, base, "\t"+body), body)
	}
}

func TestExpand_StIdx(t *testing.T) {
	assert := assert.New(t)

	base := mos.NewTarget(mos.TIER_BASE)

	for body, expect := range map[string][]string{
		"p.stidx a, $1234, y":   {"sta $1234,y"},
		"p.stidx x, $1234, y":   {"txa", "sta $1234,y"},
		"p.stidx rc2, $1234, x": {"lda rc2", "sta $1234,x"},
	} {
		want := append(expect, "rts")
		assert.Equal(want, expandAsm(t, base, "\t"+body), body)
	}
}

func TestExpand_LdStAbs(t *testing.T) {
	assert := assert.New(t)

	base := mos.NewTarget(mos.TIER_BASE)

	for body, expect := range map[string][]string{
		"p.ldabs a, $0400":   {"lda $0400"},
		"p.ldabs x, $0400":   {"ldx $0400"},
		"p.ldabs rc2, $0400": {"lda $0400", "sta rc2"},
		"p.stabs y, $0400":   {"sty $0400"},
		"p.stabs rc2, $0400": {"lda rc2", "sta $0400"},
	} {
		want := append(expect, "rts")
		assert.Equal(want, expandAsm(t, base, "\t"+body), body)
	}
}

func TestExpand_IncDec8(t *testing.T) {
	assert := assert.New(t)

	base := mos.NewTarget(mos.TIER_BASE)
	cmos := mos.NewTarget(mos.TIER_CMOS)

	assert.Equal([]string{"inx", "rts"}, expandAsm(t, base, "\tp.inc8 x"))
	assert.Equal([]string{"dey", "rts"}, expandAsm(t, base, "\tp.dec8 y"))
	assert.Equal([]string{"inc rc9", "rts"}, expandAsm(t, base, "\tp.inc8 rc9"))
	assert.Equal([]string{"dec rc9", "rts"}, expandAsm(t, base, "\tp.dec8 rc9"))

	// The accumulator has no dedicated form on the base tier.
	assert.Equal([]string{"clc", "adc #$01", "rts"}, expandAsm(t, base, "\tp.inc8 a"))
	assert.Equal([]string{"sec", "sbc #$01", "rts"}, expandAsm(t, base, "\tp.dec8 a"))
	assert.Equal([]string{"ina", "rts"}, expandAsm(t, cmos, "\tp.inc8 a"))
	assert.Equal([]string{"dea", "rts"}, expandAsm(t, cmos, "\tp.dec8 a"))
}

func TestExpand_IncDecPtr(t *testing.T) {
	assert := assert.New(t)

	base := mos.NewTarget(mos.TIER_BASE)

	assert.Equal([]string{
		"clc",
		"lda rc6",
		"adc #$01",
		"sta rc6",
		"lda rc7",
		"adc #$00",
		"sta rc7",
		"rts",
	}, expandAsm(t, base, "\tp.incptr rs3"))

	assert.Equal([]string{
		"sec",
		"lda rc6",
		"sbc #$01",
		"sta rc6",
		"lda rc7",
		"sbc #$00",
		"sta rc7",
		"rts",
	}, expandAsm(t, base, "\tp.decptr rs3"))
}
