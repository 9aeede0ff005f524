// ==============================================================================================
// FILE: evaluator/evaluator_test.go
// ==============================================================================================
// PURPOSE: End-to-end evaluator coverage: lex -> parse -> Eval against a
//          root context carrying the built-ins, covering variable scoping,
//          control flow, closures, recursion depth, and the traceback a
//          runtime diagnostic carries.
// ==============================================================================================

package evaluator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eloq/builtins"
	"eloq/context"
	"eloq/evaluator"
	"eloq/lexer"
	"eloq/parser"
	"eloq/value"
)

func run(t *testing.T, src string) (value.Value, *evalErr) {
	t.Helper()
	tokens, lexErr := lexer.Tokenize("test", src)
	require.Nil(t, lexErr)
	tree, parseErr := parser.Parse(tokens)
	require.Nil(t, parseErr)

	rootCtx := context.New("<program>")
	rootCtx.Symbols = context.NewSymbolTable(nil)
	builtins.Register(rootCtx)

	result, err := evaluator.Eval(tree, rootCtx)
	if err != nil {
		return nil, &evalErr{err.Details}
	}
	return result, nil
}

// evalErr is a thin local stand-in so tests don't need to import the diag
// package just to read the Details string.
type evalErr struct {
	Details string
}

func lastOf(t *testing.T, v value.Value) value.Value {
	t.Helper()
	list, ok := v.(*value.List)
	require.True(t, ok, "top-level result must be a List of statement results")
	require.NotEmpty(t, list.Elements)
	return list.Elements[len(list.Elements)-1]
}

func TestEvalArithmeticPrecedence(t *testing.T) {
	result, err := run(t, "2 + 3 * 4")
	require.Nil(t, err)
	got := lastOf(t, result).(*value.Number)
	assert.EqualValues(t, 14, got.Int)
}

func TestEvalVarAssignAndAccess(t *testing.T) {
	result, err := run(t, "take x = 10\nx + 5")
	require.Nil(t, err)
	got := lastOf(t, result).(*value.Number)
	assert.EqualValues(t, 15, got.Int)
}

func TestEvalUndefinedVariableIsRuntimeError(t *testing.T) {
	_, err := run(t, "missing + 1")
	require.NotNil(t, err)
	assert.Equal(t, "'missing' is not defined", err.Details)
}

func TestEvalIfReturnsBranchValue(t *testing.T) {
	result, err := run(t, `whether 0 { 1 } ifnot { 2 }`)
	require.Nil(t, err)
	got := lastOf(t, result).(*value.Number)
	assert.EqualValues(t, 2, got.Int)
}

func TestEvalForLoopAccumulatesResultsUnlessDiscarded(t *testing.T) {
	result, err := run(t, `StartCycle i = 1 : 3 { i * 2 }`)
	require.Nil(t, err)
	got := lastOf(t, result).(*value.List)
	require.Len(t, got.Elements, 3)
	assert.EqualValues(t, 2, got.Elements[0].(*value.Number).Int)
	assert.EqualValues(t, 6, got.Elements[2].(*value.Number).Int)

	discarded, err := run(t, "StartCycle i = 1 : 3 {\n\ti * 2\n}")
	require.Nil(t, err)
	null := lastOf(t, discarded).(*value.Number)
	assert.EqualValues(t, 0, null.Int)
}

func TestEvalForLoopRejectsZeroStep(t *testing.T) {
	_, err := run(t, `StartCycle i = 1 : 3 : 0 { i }`)
	require.NotNil(t, err)
	assert.Equal(t, "Step must not be zero", err.Details)
}

func TestEvalWhileLoop(t *testing.T) {
	result, err := run(t, `take i = 0
take out = 0
AsLongAs (i < 3) {
	take out = out + i
	take i = i + 1
}
out`)
	require.Nil(t, err)
	got := lastOf(t, result).(*value.Number)
	assert.EqualValues(t, 3, got.Int)
}

func TestEvalFuncDefAndCall(t *testing.T) {
	result, err := run(t, `Method add(a, b) { a + b }
add(2, 3)`)
	require.Nil(t, err)
	got := lastOf(t, result).(*value.Number)
	assert.EqualValues(t, 5, got.Int)
}

// A function closes over the scope it was defined in, not the caller's.
func TestEvalClosureCapturesDefiningScope(t *testing.T) {
	result, err := run(t, `take base = 100
Method addBase(n) { n + base }
addBase(1)`)
	require.Nil(t, err)
	got := lastOf(t, result).(*value.Number)
	assert.EqualValues(t, 101, got.Int)
}

// The factory pattern: adder is defined inside makeAdder's call frame, then
// pulled out by VarAssign and invoked from a third, unrelated scope. Only
// correct lexical closure (parenting the call on the function's defining
// context, not on wherever the function value was last looked up) makes
// this resolve base to 5 instead of raising "'base' is not defined".
func TestEvalClosureSurvivesBeingCalledFromADifferentScope(t *testing.T) {
	result, err := run(t, `Method makeAdder(base) { Method adder(n) { n + base } }
take add5 = makeAdder(5)
Method wrapper() { add5(3) }
wrapper()`)
	require.Nil(t, err)
	got := lastOf(t, result).(*value.Number)
	assert.EqualValues(t, 8, got.Int)
}

func TestEvalCallArgumentCountMismatch(t *testing.T) {
	_, err := run(t, `Method add(a, b) { a + b }
add(1)`)
	require.NotNil(t, err)
	assert.Contains(t, err.Details, "less arguments are passed into")
}

func TestEvalCallExcessArguments(t *testing.T) {
	_, err := run(t, `Method add(a, b) { a + b }
add(1, 2, 3)`)
	require.NotNil(t, err)
	assert.Contains(t, err.Details, "excess arguments are passed into")
}

// Unbounded recursion fails with a diagnostic instead of overflowing the
// Go goroutine stack (SPEC_FULL.md §3).
func TestEvalRunawayRecursionHitsDepthLimit(t *testing.T) {
	_, err := run(t, `Method loop(n) { loop(n + 1) }
loop(0)`)
	require.NotNil(t, err)
	assert.Equal(t, "Maximum recursion depth exceeded", err.Details)
}

func TestEvalBuiltinAppendMutatesList(t *testing.T) {
	result, err := run(t, `take l = [1, 2]
Append(l, 3)
l`)
	require.Nil(t, err)
	got := lastOf(t, result).(*value.List)
	require.Len(t, got.Elements, 3)
}

// Range's trailing step is optional; calling the documented 2-arg form
// through the real call protocol (not builtins_test.go's hand-bound
// simpleCall) must type-check instead of raising an arg-count mismatch.
func TestEvalRangeTwoArgFormThroughCallProtocol(t *testing.T) {
	result, err := run(t, "Range(1, 3)")
	require.Nil(t, err)
	got := lastOf(t, result).(*value.List)
	require.Len(t, got.Elements, 3)
	assert.EqualValues(t, 1, got.Elements[0].(*value.Number).Int)
	assert.EqualValues(t, 3, got.Elements[2].(*value.Number).Int)
}

func TestEvalDivisionByZero(t *testing.T) {
	_, err := run(t, "1 / 0")
	require.NotNil(t, err)
	assert.Equal(t, "Division By Zero", err.Details)
}

func TestEvalIndexOperator(t *testing.T) {
	result, err := run(t, `take l = [10, 20, 30]
l ? 2`)
	require.Nil(t, err)
	got := lastOf(t, result).(*value.Number)
	assert.EqualValues(t, 20, got.Int)
}
