// Package context implements the call-chain Context and the lexically
// nested SymbolTable it carries. A Context is a call-frame descriptor: a
// display name, an optional parent, the position of the call site in the
// parent, and the symbol table active in this frame.
//
// SymbolTable stores values as `any` rather than the evaluator's own Value
// interface. That is not a style preference: Function values hold a
// reference to their defining *Context (to support closures), so the
// value package must be free to import this package. If this package
// stored value.Value directly it would have to import the value package
// back, forming a cycle. Storing `any` breaks the cycle; callers type-
// assert back to value.Value at the point of use.
package context

import (
	"eloq/diag"
	"eloq/position"
)

// Context is a node in the call chain, rooted at the program context
// "<program>". Functions capture the Context active at their definition
// site; calling a Function builds a fresh child Context for the
// invocation.
type Context struct {
	DisplayName string
	ParentCtx   *Context
	ParentPos   position.Position
	Symbols     *SymbolTable
}

// New creates a context with no parent — used once, for the program root.
func New(displayName string) *Context {
	return &Context{DisplayName: displayName}
}

// NewChild creates a context representing a call made from parent at
// callSite, with its own symbol table parented to parent's.
func NewChild(displayName string, parent *Context, callSite position.Position) *Context {
	return &Context{
		DisplayName: displayName,
		ParentCtx:   parent,
		ParentPos:   callSite,
		Symbols:     NewSymbolTable(parent.Symbols),
	}
}

// Name implements diag.Frame.
func (c *Context) Name() string { return c.DisplayName }

// Parent implements diag.Frame. A context with no parent yields a nil
// diag.Frame so traceback rendering stops cleanly at the program root.
func (c *Context) Parent() diag.Frame {
	if c.ParentCtx == nil {
		return nil
	}
	return c.ParentCtx
}

// CallSite implements diag.Frame.
func (c *Context) CallSite() position.Position { return c.ParentPos }

// Depth walks the parent chain and counts frames, the program root being
// depth 1. Used by the evaluator's recursion guard (SPEC_FULL.md §3).
func (c *Context) Depth() int {
	n := 0
	for cur := c; cur != nil; cur = cur.ParentCtx {
		n++
	}
	return n
}

// SymbolTable is a string-keyed mapping with an optional parent pointer,
// forming a lexical scope chain. Lookup walks the parent chain; Set always
// writes to the current scope.
type SymbolTable struct {
	store  map[string]any
	parent *SymbolTable
}

func NewSymbolTable(parent *SymbolTable) *SymbolTable {
	return &SymbolTable{store: make(map[string]any), parent: parent}
}

// Get looks up name in this table, then its ancestors. The bool reports
// whether the name was found anywhere in the chain.
func (s *SymbolTable) Get(name string) (any, bool) {
	for t := s; t != nil; t = t.parent {
		if v, ok := t.store[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// Set writes to the current scope only — it never reaches into an
// ancestor table, even when name already exists there. This is what makes
// an assignment inside a function body shadow rather than mutate an
// outer binding of the same name.
func (s *SymbolTable) Set(name string, value any) {
	s.store[name] = value
}

// Remove deletes name from the current scope. Present for parity with the
// distilled-from implementation; nothing in the language currently
// exercises it.
func (s *SymbolTable) Remove(name string) {
	delete(s.store, name)
}
