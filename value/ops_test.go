// ==============================================================================================
// FILE: value/ops_test.go
// ==============================================================================================
// PURPOSE: Coverage of the free-function operator table in ops.go —
//          arithmetic widening rules, the List-index vs List-remove
//          asymmetry, the 1-based zero-forbidden '?' convention, and the
//          normalized 1-or-0 logical/comparison results.
// ==============================================================================================

package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eloq/position"
)

func TestAddIntPlusIntStaysInt(t *testing.T) {
	res, err := Add(NewInt(2), NewInt(3))
	require.Nil(t, err)
	n := res.(*Number)
	assert.False(t, n.IsFloat)
	assert.EqualValues(t, 5, n.Int)
}

func TestAddIntPlusFloatWidensToFloat(t *testing.T) {
	res, err := Add(NewInt(2), NewFloat(1.5))
	require.Nil(t, err)
	n := res.(*Number)
	assert.True(t, n.IsFloat)
	assert.InDelta(t, 3.5, n.Flt, 1e-9)
}

func TestAddStringsConcatenates(t *testing.T) {
	res, err := Add(NewString("ab"), NewString("cd"))
	require.Nil(t, err)
	assert.Equal(t, "abcd", res.(*String).Val)
}

func TestAddListsConcatenates(t *testing.T) {
	a := NewList([]Value{NewInt(1)})
	b := NewList([]Value{NewInt(2)})
	res, err := Add(a, b)
	require.Nil(t, err)
	assert.Len(t, res.(*List).Elements, 2)
}

func TestAddMismatchedKindsIsIllegalOperation(t *testing.T) {
	_, err := Add(NewInt(1), NewString("x"))
	require.NotNil(t, err)
	assert.Equal(t, "Illegal Operation", err.Details)
}

// Subtract on List uses the RAW index (no 1-based adjustment), which is
// an intentional asymmetry with the '?' operator below.
func TestSubtractListRemovesByRawIndex(t *testing.T) {
	l := NewList([]Value{NewInt(10), NewInt(20), NewInt(30)})
	res, err := Subtract(l, NewInt(1))
	require.Nil(t, err)
	remaining := res.(*List).Elements
	require.Len(t, remaining, 2)
	assert.EqualValues(t, 10, remaining[0].(*Number).Int)
	assert.EqualValues(t, 30, remaining[1].(*Number).Int)
}

func TestSubtractListOutOfRangeFails(t *testing.T) {
	l := NewList([]Value{NewInt(1)})
	_, err := Subtract(l, NewInt(5))
	require.NotNil(t, err)
	assert.Equal(t, "List index out of range", err.Details)
}

func TestMultiplyStringRepeats(t *testing.T) {
	res, err := Multiply(NewString("ab"), NewInt(3))
	require.Nil(t, err)
	assert.Equal(t, "ababab", res.(*String).Val)
}

func TestMultiplyNegativeCountYieldsEmpty(t *testing.T) {
	res, err := Multiply(NewString("ab"), NewInt(-1))
	require.Nil(t, err)
	assert.Equal(t, "", res.(*String).Val)
}

func TestDivideAlwaysWidensToFloat(t *testing.T) {
	res, err := Divide(NewInt(4), NewInt(2))
	require.Nil(t, err)
	n := res.(*Number)
	assert.True(t, n.IsFloat)
	assert.InDelta(t, 2.0, n.Flt, 1e-9)
}

func TestDivideByZeroFails(t *testing.T) {
	_, err := Divide(NewInt(1), NewInt(0))
	require.NotNil(t, err)
	assert.Equal(t, "Division By Zero", err.Details)
}

func TestFloorDivideKeepsIntWhenBothOperandsInt(t *testing.T) {
	res, err := FloorDivide(NewInt(7), NewInt(2))
	require.Nil(t, err)
	n := res.(*Number)
	assert.False(t, n.IsFloat)
	assert.EqualValues(t, 3, n.Int)
}

// Floor division of mismatched-sign operands rounds toward negative
// infinity (Python semantics), not truncation.
func TestFloorDivideRoundsTowardNegativeInfinity(t *testing.T) {
	res, err := FloorDivide(NewInt(-7), NewInt(2))
	require.Nil(t, err)
	assert.EqualValues(t, -4, res.(*Number).Int)
}

func TestModuloByZeroFails(t *testing.T) {
	_, err := Modulo(NewInt(1), NewInt(0))
	require.NotNil(t, err)
	assert.Equal(t, "Modulo By Zero", err.Details)
}

func TestModuloSignFollowsDivisor(t *testing.T) {
	res, err := Modulo(NewInt(-7), NewInt(3))
	require.Nil(t, err)
	assert.EqualValues(t, 2, res.(*Number).Int)
}

func TestPowerIntegerPathForNonNegativeExponent(t *testing.T) {
	res, err := Power(NewInt(2), NewInt(10))
	require.Nil(t, err)
	n := res.(*Number)
	assert.False(t, n.IsFloat)
	assert.EqualValues(t, 1024, n.Int)
}

func TestPowerNegativeExponentWidensToFloat(t *testing.T) {
	res, err := Power(NewInt(2), NewInt(-1))
	require.Nil(t, err)
	n := res.(*Number)
	assert.True(t, n.IsFloat)
	assert.InDelta(t, 0.5, n.Flt, 1e-9)
}

func TestComparisonsNormalizeToOneOrZero(t *testing.T) {
	truthy, err := Lt(NewInt(1), NewInt(2))
	require.Nil(t, err)
	assert.EqualValues(t, 1, truthy.(*Number).Int)

	falsy, err := Lt(NewInt(2), NewInt(1))
	require.Nil(t, err)
	assert.EqualValues(t, 0, falsy.(*Number).Int)
}

// and/or normalize to 1-or-0 rather than passing either operand through,
// diverging deliberately from a truthy-pass-through language.
func TestAndOrNormalizeResult(t *testing.T) {
	res, err := And(NewInt(5), NewInt(7))
	require.Nil(t, err)
	assert.EqualValues(t, 1, res.(*Number).Int)

	res, err = Or(NewInt(0), NewInt(0))
	require.Nil(t, err)
	assert.EqualValues(t, 0, res.(*Number).Int)
}

func TestNotInvertsTruthiness(t *testing.T) {
	res, err := Not(NewInt(0))
	require.Nil(t, err)
	assert.EqualValues(t, 1, res.(*Number).Int)
}

func TestIndexStringOneBased(t *testing.T) {
	s := NewString("hello")
	res, err := Index(s, NewInt(1))
	require.Nil(t, err)
	assert.Equal(t, "h", res.(*String).Val)
}

func TestIndexZeroIsDomainError(t *testing.T) {
	s := NewString("hello")
	_, err := Index(s, NewInt(0))
	require.NotNil(t, err)
	assert.Equal(t, "String index out of range", err.Details)
}

func TestIndexNegativeCountsFromEnd(t *testing.T) {
	s := NewString("hello")
	res, err := Index(s, NewInt(-1))
	require.Nil(t, err)
	assert.Equal(t, "o", res.(*String).Val)
}

// Indexing a List with a Number returns a freshly allocated Number copy
// for numeric elements, not the original element — a known quirk
// preserved from the distilled-from interpreter.
func TestIndexListReturnsFreshCopyOfNumericElement(t *testing.T) {
	elem := NewInt(42)
	l := NewList([]Value{elem})
	res, err := Index(l, NewInt(1))
	require.Nil(t, err)
	got := res.(*Number)
	assert.EqualValues(t, 42, got.Int)
	assert.NotSame(t, elem, got)
}

func TestIndexListWithListOfIndices(t *testing.T) {
	l := NewList([]Value{NewInt(10), NewInt(20), NewInt(30)})
	idxList := NewList([]Value{NewInt(1), NewInt(3)})
	res, err := Index(l, idxList)
	require.Nil(t, err)
	out := res.(*List).Elements
	require.Len(t, out, 2)
	assert.EqualValues(t, 10, out[0].(*Number).Int)
	assert.EqualValues(t, 30, out[1].(*Number).Int)
}

func TestIllegalOperationFallsBackToLeftSpanWhenOtherNil(t *testing.T) {
	left := NewInt(1)
	left.SetSpan(position.NewSpan(position.Position{Index: 3}, position.Position{Index: 4}))
	err := IllegalOperation(left, nil)
	require.NotNil(t, err)
	assert.Equal(t, "Illegal Operation", err.Details)
	assert.Equal(t, 3, err.Start.Index)
	assert.Equal(t, 4, err.End.Index)
}
