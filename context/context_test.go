// ==============================================================================================
// FILE: context/context_test.go
// ==============================================================================================
// PURPOSE: Covers the call-chain Context (Depth, Parent/CallSite as a
//          diag.Frame) and the lexically nested SymbolTable (shadowing,
//          ancestor lookup, scope-local Set).
// ==============================================================================================

package context

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eloq/position"
)

func TestNewRootHasDepthOne(t *testing.T) {
	root := New("<program>")
	assert.Equal(t, 1, root.Depth())
	assert.Nil(t, root.Parent())
}

func TestNewChildIncrementsDepth(t *testing.T) {
	root := New("<program>")
	root.Symbols = NewSymbolTable(nil)
	child := NewChild("fn", root, position.Position{Line: 3})
	assert.Equal(t, 2, child.Depth())
	require.NotNil(t, child.Parent())
	assert.Equal(t, "<program>", child.Parent().Name())
}

func TestNewChildSymbolTableParentsToCaller(t *testing.T) {
	root := New("<program>")
	root.Symbols = NewSymbolTable(nil)
	root.Symbols.Set("shared", 42)

	child := NewChild("fn", root, position.Position{})
	v, ok := child.Symbols.Get("shared")
	require.True(t, ok)
	assert.Equal(t, 42, v)
}

func TestSymbolTableSetOnlyAffectsCurrentScope(t *testing.T) {
	parent := NewSymbolTable(nil)
	parent.Set("x", 1)
	child := NewSymbolTable(parent)
	child.Set("x", 2)

	childVal, _ := child.Get("x")
	parentVal, _ := parent.Get("x")
	assert.Equal(t, 2, childVal)
	assert.Equal(t, 1, parentVal)
}

func TestSymbolTableGetWalksAncestors(t *testing.T) {
	parent := NewSymbolTable(nil)
	parent.Set("found", "yes")
	child := NewSymbolTable(parent)

	v, ok := child.Get("found")
	require.True(t, ok)
	assert.Equal(t, "yes", v)
}

func TestSymbolTableGetMissingReturnsFalse(t *testing.T) {
	table := NewSymbolTable(nil)
	_, ok := table.Get("nope")
	assert.False(t, ok)
}

func TestSymbolTableRemoveDeletesFromCurrentScopeOnly(t *testing.T) {
	table := NewSymbolTable(nil)
	table.Set("x", 1)
	table.Remove("x")
	_, ok := table.Get("x")
	assert.False(t, ok)

	parent := NewSymbolTable(nil)
	parent.Set("y", 1)
	child := NewSymbolTable(parent)
	child.Set("y", 2)
	child.Remove("y")
	v, ok := child.Get("y")
	require.True(t, ok)
	assert.Equal(t, 1, v)
}

func TestDepthChainOfThree(t *testing.T) {
	root := New("<program>")
	root.Symbols = NewSymbolTable(nil)
	a := NewChild("a", root, position.Position{})
	b := NewChild("b", a, position.Position{})
	assert.Equal(t, 3, b.Depth())
}
