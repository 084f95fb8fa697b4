package expand

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/apmos/mos"
)

func TestExpand_LdStk_Near(t *testing.T) {
	assert := assert.New(t)

	base := mos.NewTarget(mos.TIER_BASE)

	fn := expandOne(t, base, []int{2, 4},
		"func @near",
		"slot f0 2",
		"slot f1 4",
		"entry:",
		"\tp.ldstk a, [f1+1]",
		"\trts",
	)

	// Slot f1 begins after f0's two bytes.
	assert.Equal([]string{
		"ldy #$03",
		"lda (rs1),y",
		"rts",
	}, asm(fn))
}

func TestExpand_LdStk_Wide(t *testing.T) {
	assert := assert.New(t)

	base := mos.NewTarget(mos.TIER_BASE)

	fn := expandOne(t, base, []int{2},
		"func @wide",
		"slot f0 2",
		"entry:",
		"\tp.ldstk rs2, [f0]",
		"\trts",
	)

	assert.Equal([]string{
		"ldy #$00",
		"lda (rs1),y",
		"sta rc4",
		"iny",
		"lda (rs1),y",
		"sta rc5",
		"rts",
	}, asm(fn))
}

func TestExpand_LdStk_Far(t *testing.T) {
	assert := assert.New(t)

	tg := mos.NewTarget(mos.TIER_BASE)
	tg.IndexRange = 0

	fn := expandOne(t, tg, []int{4},
		"func @far",
		"slot f0 4",
		"entry:",
		"\tp.ldstk a, [f0+3]",
		"\trts",
	)

	// The scratch pointer materializes base+3 before the access, with the
	// carry step adjacent to the low-byte add.
	assert.Equal([]string{
		"clc",
		"lda rc2",
		"adc #$03",
		"sta rc30",
		"lda rc3",
		"adc #$00",
		"sta rc31",
		"ldy #$00",
		"lda (rs15),y",
		"rts",
	}, asm(fn))
}

func TestExpand_LdStk_Carry(t *testing.T) {
	assert := assert.New(t)

	base := mos.NewTarget(mos.TIER_BASE)

	fn := expandOne(t, base, []int{1},
		"func @bit",
		"slot f0 1",
		"entry:",
		"\tp.ldstk c, [f0]",
		"\trts",
	)

	assert.Equal([]string{
		"ldy #$00",
		"lda (rs1),y",
		"lsr a",
		"rts",
	}, asm(fn))
}

func TestExpand_StStk(t *testing.T) {
	assert := assert.New(t)

	base := mos.NewTarget(mos.TIER_BASE)

	fn := expandOne(t, base, []int{2},
		"func @store",
		"slot f0 2",
		"entry:",
		"\tp.ststk rc6, [f0+1]",
		"\trts",
	)

	assert.Equal([]string{
		"lda rc6",
		"ldy #$01",
		"sta (rs1),y",
		"rts",
	}, asm(fn))
}

func TestExpand_StStk_Wide(t *testing.T) {
	assert := assert.New(t)

	base := mos.NewTarget(mos.TIER_BASE)

	fn := expandOne(t, base, []int{2},
		"func @store16",
		"slot f0 2",
		"entry:",
		"\tp.ststk rs3, [f0]",
		"\trts",
	)

	assert.Equal([]string{
		"lda rc6",
		"ldy #$00",
		"sta (rs1),y",
		"lda rc7",
		"iny",
		"sta (rs1),y",
		"rts",
	}, asm(fn))
}

func TestExpand_StStk_Carry(t *testing.T) {
	assert := assert.New(t)

	base := mos.NewTarget(mos.TIER_BASE)

	fn := expandOne(t, base, []int{1},
		"func @storebit",
		"slot f0 1",
		"entry:",
		"\tp.ststk c, [f0]",
		"\trts",
	)

	assert.Equal([]string{
		"lda #$00",
		"rol a",
		"ldy #$00",
		"sta (rs1),y",
		"rts",
	}, asm(fn))
}

func TestExpand_AddrStk(t *testing.T) {
	assert := assert.New(t)

	base := mos.NewTarget(mos.TIER_BASE)

	fn := expandOne(t, base, []int{4},
		"func @addr0",
		"slot f0 4",
		"entry:",
		"\tp.addrstk rs2, [f0]",
		"\trts",
	)

	assert.Equal([]string{
		"lda rc2",
		"sta rc4",
		"lda rc3",
		"sta rc5",
		"rts",
	}, asm(fn))

	fn = expandOne(t, base, []int{4},
		"func @addr3",
		"slot f0 4",
		"entry:",
		"\tp.addrstk rs2, [f0+3]",
		"\trts",
	)

	assert.Equal([]string{
		"clc",
		"lda rc2",
		"adc #$03",
		"sta rc4",
		"lda rc3",
		"adc #$00",
		"sta rc5",
		"rts",
	}, asm(fn))
}

func TestExpand_LdStk_SlotRange(t *testing.T) {
	assert := assert.New(t)

	base := mos.NewTarget(mos.TIER_BASE)

	fns := parseFns(t,
		"func @over",
		"slot f0 1",
		"entry:",
		"\tp.ldstk rs2, [f0]",
		"\trts",
	)

	// A 16-bit read does not fit a 1-byte slot.
	err := testEngine(base, []int{1}).Expand(fns[0])
	assert.ErrorIs(err, ErrSlotRange)
}

func TestPass_ReservePtr(t *testing.T) {
	assert := assert.New(t)

	p := &pass{ptrFree: []mos.Reg{mos.REG_SCRATCH, mos.RS(14)}}

	a, err := p.reservePtr()
	assert.NoError(err)
	assert.Equal(mos.REG_SCRATCH, a)

	b, err := p.reservePtr()
	assert.NoError(err)
	assert.Equal(mos.RS(14), b)

	// A pointer still held by a pending access is never handed out again.
	_, err = p.reservePtr()
	assert.ErrorIs(err, ErrScratchBusy)

	p.releasePtr(a)
	c, err := p.reservePtr()
	assert.NoError(err)
	assert.Equal(a, c)
}
