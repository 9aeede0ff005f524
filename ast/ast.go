// Package ast defines the AST node variants the parser produces and the
// evaluator walks: Number, String, List, Dictionary, VarAccess, VarAssign,
// BinaryOp, UnaryOp, If, For, While, FuncDef, and Call. Every node carries
// a span derived from its constituents.
package ast

import (
	"strconv"
	"strings"

	"eloq/position"
	"eloq/token"
)

// Node is the tagged-variant interface every AST node implements.
type Node interface {
	Span() position.Span
	String() string
}

// Number wraps a single INT or FLOAT token.
type Number struct {
	Tok  token.Token
	span position.Span
}

func NewNumber(tok token.Token) *Number {
	return &Number{Tok: tok, span: position.NewSpan(tok.Start, tok.End)}
}

func (n *Number) Span() position.Span { return n.span }
func (n *Number) String() string {
	if n.Tok.Literal.Kind == token.LitFloat {
		return strconv.FormatFloat(n.Tok.Literal.Flt, 'g', -1, 64)
	}
	return strconv.FormatInt(n.Tok.Literal.Int, 10)
}

// StringLit is a string literal node.
type StringLit struct {
	Tok  token.Token
	span position.Span
}

func NewString(tok token.Token) *StringLit {
	return &StringLit{Tok: tok, span: position.NewSpan(tok.Start, tok.End)}
}

func (s *StringLit) Span() position.Span { return s.span }
func (s *StringLit) String() string      { return `"` + s.Tok.Literal.Str + `"` }

// List is a list-literal expression. It is also reused, per spec.md §6, as
// the top-level "statements" wrapper: the driver's result is structurally
// a List of the results of all top-level expressions.
type List struct {
	Elements []Node
	span     position.Span
}

func NewList(elements []Node, span position.Span) *List {
	return &List{Elements: elements, span: span}
}

func (l *List) Span() position.Span { return l.span }
func (l *List) String() string {
	parts := make([]string, len(l.Elements))
	for i, e := range l.Elements {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Dictionary carries two parallel ordered sequences of equal length.
type Dictionary struct {
	Keys   []Node
	Values []Node
	span   position.Span
}

func NewDictionary(keys, values []Node, span position.Span) *Dictionary {
	return &Dictionary{Keys: keys, Values: values, span: span}
}

func (d *Dictionary) Span() position.Span { return d.span }
func (d *Dictionary) String() string {
	parts := make([]string, len(d.Keys))
	for i := range d.Keys {
		parts[i] = d.Keys[i].String() + ":" + d.Values[i].String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// VarAccess reads an identifier's current binding.
type VarAccess struct {
	NameTok token.Token
	span    position.Span
}

func NewVarAccess(nameTok token.Token) *VarAccess {
	return &VarAccess{NameTok: nameTok, span: position.NewSpan(nameTok.Start, nameTok.End)}
}

func (v *VarAccess) Span() position.Span { return v.span }
func (v *VarAccess) String() string      { return v.NameTok.Literal.Str }

// VarAssign binds NameTok to the value of Value in the current scope.
type VarAssign struct {
	NameTok token.Token
	Value   Node
	span    position.Span
}

func NewVarAssign(nameTok token.Token, value Node) *VarAssign {
	return &VarAssign{NameTok: nameTok, Value: value, span: position.NewSpan(nameTok.Start, value.Span().End)}
}

func (v *VarAssign) Span() position.Span { return v.span }
func (v *VarAssign) String() string {
	return v.NameTok.Literal.Str + " take " + v.Value.String()
}

// BinaryOp applies Op to Left and Right.
type BinaryOp struct {
	Left  Node
	Op    token.Token
	Right Node
	span  position.Span
}

func NewBinaryOp(left Node, op token.Token, right Node) *BinaryOp {
	return &BinaryOp{Left: left, Op: op, Right: right, span: position.NewSpan(left.Span().Start, right.Span().End)}
}

func (b *BinaryOp) Span() position.Span { return b.span }
func (b *BinaryOp) String() string {
	return "(" + b.Left.String() + " " + b.Op.String() + " " + b.Right.String() + ")"
}

// UnaryOp applies Op to Right.
type UnaryOp struct {
	Op    token.Token
	Right Node
	span  position.Span
}

func NewUnaryOp(op token.Token, right Node) *UnaryOp {
	return &UnaryOp{Op: op, Right: right, span: position.NewSpan(op.Start, right.Span().End)}
}

func (u *UnaryOp) Span() position.Span { return u.span }
func (u *UnaryOp) String() string      { return "(" + u.Op.String() + " " + u.Right.String() + ")" }

// IfCase is a single whether/further clause: a condition, a body, and
// whether that body is the discard-result block form.
type IfCase struct {
	Condition   Node
	Body        Node
	DiscardBody bool
}

// If holds an ordered sequence of clauses plus an optional else body.
type If struct {
	Cases       []IfCase
	ElseBody    Node
	DiscardElse bool
	HasElse     bool
	span        position.Span
}

func NewIf(cases []IfCase, elseBody Node, discardElse, hasElse bool, span position.Span) *If {
	return &If{Cases: cases, ElseBody: elseBody, DiscardElse: discardElse, HasElse: hasElse, span: span}
}

func (i *If) Span() position.Span { return i.span }
func (i *If) String() string {
	var b strings.Builder
	for idx, c := range i.Cases {
		if idx == 0 {
			b.WriteString("whether ")
		} else {
			b.WriteString(" further ")
		}
		b.WriteString(c.Condition.String())
		b.WriteString(" { ")
		b.WriteString(c.Body.String())
		b.WriteString(" }")
	}
	if i.HasElse {
		b.WriteString(" ifnot { ")
		b.WriteString(i.ElseBody.String())
		b.WriteString(" }")
	}
	return b.String()
}

// For holds a loop-variable token, start/end/optional-step expressions, a
// body, and the discard-result flag.
type For struct {
	VarTok        token.Token
	Start         Node
	End           Node
	Step          Node // nil when absent; defaults to 1 at evaluation time
	Body          Node
	DiscardResult bool
	span          position.Span
}

func NewFor(varTok token.Token, start, end, step, body Node, discard bool, span position.Span) *For {
	return &For{VarTok: varTok, Start: start, End: end, Step: step, Body: body, DiscardResult: discard, span: span}
}

func (f *For) Span() position.Span { return f.span }
func (f *For) String() string {
	return "StartCycle " + f.VarTok.Literal.Str + " = " + f.Start.String() + " : " + f.End.String() + " { " + f.Body.String() + " }"
}

// While holds a condition, body, and discard-result flag.
type While struct {
	Condition     Node
	Body          Node
	DiscardResult bool
	span          position.Span
}

func NewWhile(condition, body Node, discard bool, span position.Span) *While {
	return &While{Condition: condition, Body: body, DiscardResult: discard, span: span}
}

func (w *While) Span() position.Span { return w.span }
func (w *While) String() string {
	return "AsLongAs (" + w.Condition.String() + ") { " + w.Body.String() + " }"
}

// FuncDef carries an optional name token, an ordered parameter-name token
// list, a body, and discard_result.
type FuncDef struct {
	NameTok       *token.Token
	Params        []token.Token
	Body          Node
	DiscardResult bool
	span          position.Span
}

func NewFuncDef(nameTok *token.Token, params []token.Token, body Node, discard bool, span position.Span) *FuncDef {
	return &FuncDef{NameTok: nameTok, Params: params, Body: body, DiscardResult: discard, span: span}
}

func (f *FuncDef) Span() position.Span { return f.span }
func (f *FuncDef) String() string {
	name := "<anonymous>"
	if f.NameTok != nil {
		name = f.NameTok.Literal.Str
	}
	names := make([]string, len(f.Params))
	for i, p := range f.Params {
		names[i] = p.Literal.Str
	}
	return "Method " + name + "(" + strings.Join(names, ", ") + ") { " + f.Body.String() + " }"
}

// Call carries a callee expression and an ordered argument list.
type Call struct {
	Callee Node
	Args   []Node
	span   position.Span
}

func NewCall(callee Node, args []Node, span position.Span) *Call {
	return &Call{Callee: callee, Args: args, span: span}
}

func (c *Call) Span() position.Span { return c.span }
func (c *Call) String() string {
	parts := make([]string, len(c.Args))
	for i, a := range c.Args {
		parts[i] = a.String()
	}
	return c.Callee.String() + "(" + strings.Join(parts, ", ") + ")"
}
