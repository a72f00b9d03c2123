package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAdd8SetsHalfCarryAndCarry(t *testing.T) {
	r := NewRegisters()
	result := add8(r, 0x0F, 0x01)
	assert.Equal(t, byte(0x10), result)
	assert.True(t, r.FlagH())
	assert.False(t, r.FlagC())
	assert.False(t, r.FlagZ())
	assert.False(t, r.FlagN())

	result = add8(r, 0xFF, 0x01)
	assert.Equal(t, byte(0x00), result)
	assert.True(t, r.FlagZ())
	assert.True(t, r.FlagC())
	assert.True(t, r.FlagH())
}

func TestSub8SetsBorrowFlags(t *testing.T) {
	r := NewRegisters()
	result := sub8(r, 0x10, 0x01)
	assert.Equal(t, byte(0x0F), result)
	assert.True(t, r.FlagH())
	assert.False(t, r.FlagC())
	assert.True(t, r.FlagN())

	result = sub8(r, 0x00, 0x01)
	assert.Equal(t, byte(0xFF), result)
	assert.True(t, r.FlagC())
}

func TestCp8LeavesOperandUnchanged(t *testing.T) {
	r := NewRegisters()
	a := cp8(r, 0x05, 0x05)
	assert.Equal(t, byte(0x05), a)
	assert.True(t, r.FlagZ())
}

func TestInc8HalfCarryAtNibbleBoundary(t *testing.T) {
	r := NewRegisters()
	result := inc8(r, 0x0F)
	assert.Equal(t, byte(0x10), result)
	assert.True(t, r.FlagH())
	assert.False(t, r.FlagN())
}

func TestDec8HalfCarryAtNibbleBoundary(t *testing.T) {
	r := NewRegisters()
	result := dec8(r, 0x10)
	assert.Equal(t, byte(0x0F), result)
	assert.True(t, r.FlagH())
	assert.True(t, r.FlagN())
}

func TestDaaAfterBCDAddition(t *testing.T) {
	r := NewRegisters()
	// 0x45 + 0x38 = 0x7D in binary, which should adjust to 0x83 in BCD.
	sum := add8(r, 0x45, 0x38)
	assert.Equal(t, byte(0x7D), sum)

	adjusted := daa(r, sum)
	assert.Equal(t, byte(0x83), adjusted)
	assert.False(t, r.FlagC())
}

func TestDaaAfterBCDAdditionWithCarry(t *testing.T) {
	r := NewRegisters()
	sum := add8(r, 0x99, 0x01)
	assert.Equal(t, byte(0x9A), sum)

	adjusted := daa(r, sum)
	assert.Equal(t, byte(0x00), adjusted)
	assert.True(t, r.FlagZ())
	assert.True(t, r.FlagC())
}

func TestAnd8AlwaysSetsHalfCarry(t *testing.T) {
	r := NewRegisters()
	result := and8(r, 0xFF, 0x00)
	assert.Equal(t, byte(0x00), result)
	assert.True(t, r.FlagH())
	assert.False(t, r.FlagC())
	assert.True(t, r.FlagZ())
}

func TestAdd16HalfCarryAndCarryOn12And16BitBoundary(t *testing.T) {
	r := NewRegisters()
	result := add16(r, 0x0FFF, 0x0001)
	assert.Equal(t, uint16(0x1000), result)
	assert.True(t, r.FlagH())
	assert.False(t, r.FlagC())

	result = add16(r, 0xFFFF, 0x0001)
	assert.Equal(t, uint16(0x0000), result)
	assert.True(t, r.FlagC())
}

func TestAddSPE8NegativeOffset(t *testing.T) {
	r := NewRegisters()
	result := addSPE8(r, 0x0005, 0xFF) // -1
	assert.Equal(t, uint16(0x0004), result)
	assert.False(t, r.FlagZ())
	assert.False(t, r.FlagN())
}

func TestRotateAQuirkForcesZClear(t *testing.T) {
	r := NewRegisters()
	result := rotateAQuirk(r, rlc(r, 0x00))
	assert.Equal(t, byte(0x00), result)
	assert.False(t, r.FlagZ())
}

func TestSraPreservesSignBit(t *testing.T) {
	r := NewRegisters()
	result := sra(r, 0x81)
	assert.Equal(t, byte(0xC0), result)
	assert.True(t, r.FlagC())
}

func TestSrlClearsSignBit(t *testing.T) {
	r := NewRegisters()
	result := srl(r, 0x81)
	assert.Equal(t, byte(0x40), result)
	assert.True(t, r.FlagC())
}

func TestSwapNibbles(t *testing.T) {
	r := NewRegisters()
	result := swap(r, 0xA5)
	assert.Equal(t, byte(0x5A), result)
	assert.False(t, r.FlagC())
}

func TestBitSetsZOnlyWhenClear(t *testing.T) {
	r := NewRegisters()
	bit(r, 3, 0x08)
	assert.False(t, r.FlagZ())
	assert.True(t, r.FlagH())

	bit(r, 3, 0xF7)
	assert.True(t, r.FlagZ())
}

func TestResAndSet(t *testing.T) {
	assert.Equal(t, byte(0xF7), res(3, 0xFF))
	assert.Equal(t, byte(0x08), set(3, 0x00))
}
