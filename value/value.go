// Package value implements the runtime value algebra: Number, String,
// List, Dictionary, Function, and BuiltIn, plus the operator entry points
// (Add, Subtract, Index, ...) the evaluator dispatches to by AST operator
// kind.
//
// Per-kind virtual tables are deliberately avoided. Values do not carry
// Add/Subtract/... methods that dispatch polymorphically on `other`;
// instead each operator is a free function in this package (see ops.go)
// that type-switches on the concrete pair of operands. The evaluator picks
// which free function to call based on the AST operator token; the free
// function itself picks the behavior based on the operand types. That
// split keeps the "what operator" decision and the "what operand shapes"
// decision each in one place instead of smeared across per-type methods.
package value

import (
	"eloq/context"
	"eloq/diag"
	"eloq/position"
)

// Value is the tagged-variant runtime value. Every concrete type embeds
// base, which carries the span and owning-context back-reference used
// only for diagnostics — set in place by SetSpan/SetContext as evaluation
// threads a value through the tree, mirroring the distilled-from
// interpreter's set_pos/set_context.
type Value interface {
	Type() string
	Span() position.Span
	SetSpan(span position.Span)
	Context() *context.Context
	SetContext(ctx *context.Context)
	IsTrue() bool
	Copy() Value
	String() string
}

type base struct {
	span position.Span
	ctx  *context.Context
}

func (b *base) Span() position.Span          { return b.span }
func (b *base) SetSpan(span position.Span)   { b.span = span }
func (b *base) Context() *context.Context    { return b.ctx }
func (b *base) SetContext(c *context.Context) { b.ctx = c }

// IllegalOperation builds the RunTimeError the distilled-from
// interpreter's Value.illegal_operation raises when an operator is applied
// to operand kinds it does not support. When other is nil the span covers
// left alone, matching the original's `other = other or self` fallback.
func IllegalOperation(left, other Value) *diag.Diagnostic {
	if other == nil {
		other = left
	}
	return diag.NewRuntime(left.Span().Start, other.Span().End, "Illegal Operation", left.Context())
}
