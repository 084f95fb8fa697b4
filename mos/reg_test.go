package mos

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReg_Class(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(CLASS_NONE, REG_NONE.Class())
	assert.Equal(CLASS_GPR, REG_A.Class())
	assert.Equal(CLASS_GPR, REG_X.Class())
	assert.Equal(CLASS_GPR, REG_Y.Class())
	assert.Equal(CLASS_FLAG, REG_C.Class())
	assert.Equal(CLASS_IMAG8, RC(0).Class())
	assert.Equal(CLASS_IMAG8, RC(31).Class())
	assert.Equal(CLASS_IMAG16, RS(0).Class())
	assert.Equal(CLASS_IMAG16, RS(15).Class())
}

func TestReg_Width(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(WIDTH_8, REG_A.Width())
	assert.Equal(WIDTH_1, REG_C.Width())
	assert.Equal(WIDTH_8, RC(5).Width())
	assert.Equal(WIDTH_16, RS(5).Width())
}

func TestReg_Pair(t *testing.T) {
	assert := assert.New(t)

	// Pointer pairs overlay the byte registers two to one.
	for n := range NUM_RS {
		rs := RS(n)
		assert.Equal(RC(2*n), rs.Lo())
		assert.Equal(RC(2*n+1), rs.Hi())
	}

	assert.Equal(REG_SP, RS(0))
	assert.Equal(REG_SCRATCH, RS(15))
}

func TestReg_String(t *testing.T) {
	assert := assert.New(t)

	names := map[Reg]string{
		REG_A:  "a",
		REG_X:  "x",
		REG_Y:  "y",
		REG_C:  "c",
		RC(0):  "rc0",
		RC(31): "rc31",
		RS(0):  "rs0",
		RS(15): "rs15",
	}

	for reg, name := range names {
		assert.Equal(name, reg.String())

		back, ok := RegByName(name)
		assert.True(ok)
		assert.Equal(reg, back)
	}

	_, ok := RegByName("rc32")
	assert.False(ok)
	_, ok = RegByName("bogus")
	assert.False(ok)
}

func TestReg_IsIndex(t *testing.T) {
	assert := assert.New(t)

	assert.True(REG_X.IsIndex())
	assert.True(REG_Y.IsIndex())
	assert.False(REG_A.IsIndex())
	assert.False(RC(0).IsIndex())
}

func TestFlag_String(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("-", FLAG_NONE.String())
	assert.Equal("c", FLAG_C.String())
	assert.Equal("czvn", FLAG_ALL.String())
	assert.Equal("zn", (FLAG_Z | FLAG_N).String())

	assert.True(FLAG_ALL.Has(FLAG_V))
	assert.False((FLAG_Z | FLAG_N).Has(FLAG_C))
}
