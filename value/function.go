package value

import (
	"eloq/ast"
	"eloq/context"
	"eloq/diag"
)

// Callable is implemented by both Function and BuiltIn so the evaluator's
// call protocol (arg-count check, arg binding, invocation) can be written
// once against a common shape instead of twice.
type Callable interface {
	Value
	FuncName() string
	ParamNames() []string
	// MinParams is the fewest arguments a call may supply; params beyond it
	// up to len(ParamNames()) are optional and left unbound in the call's
	// context when omitted. User Functions always require every parameter;
	// BuiltIns may relax this (Range's trailing step, for example).
	MinParams() int
}

// Function is a user-defined, closure-capturing callable: a name (or
// "<anonymous>"), its body, its parameter names, the discard-result flag
// carried over from the FuncDef node, and the context it was defined in.
// Calling it is the evaluator's job (value can't import evaluator without
// creating a cycle) — see evaluator.call.
type Function struct {
	base
	Name          string
	Body          ast.Node
	Params        []string
	DiscardResult bool
	// Closure is the context active when the FuncDef was evaluated. A
	// call builds a fresh child context parented to Closure, which is
	// what lets the function see bindings from its defining scope at
	// call time (closure capture) rather than from the caller's scope.
	Closure *context.Context
}

func NewFunction(name string, body ast.Node, params []string, discard bool, closure *context.Context) *Function {
	if name == "" {
		name = "<anonymous>"
	}
	return &Function{Name: name, Body: body, Params: params, DiscardResult: discard, Closure: closure}
}

func (f *Function) Type() string         { return "FUNCTION" }
func (f *Function) IsTrue() bool         { return true }
func (f *Function) FuncName() string     { return f.Name }
func (f *Function) ParamNames() []string { return f.Params }
func (f *Function) MinParams() int       { return len(f.Params) }
func (f *Function) String() string       { return "<function>" + f.Name }

func (f *Function) Copy() Value {
	cp := *f
	return &cp
}

// BuiltIn is a named, fixed-parameter-list callable implemented in Go.
// Fn receives the fresh call context (with arguments already bound under
// ParamNames) and returns the call's result.
type BuiltIn struct {
	base
	Name string
	// Params is the full parameter list, required ones first. Required
	// is how many of those must be supplied by the caller; trailing
	// params beyond it are optional and simply left unbound when the
	// call omits them. MinParams returns Required as stored; a zero
	// Required is not defaulted to len(Params), so every constructor must
	// set it (builtins.builtin sets it to len(Params)).
	Params   []string
	Required int
	Fn       func(ctx *context.Context) (Value, *diag.Diagnostic)
}

func (b *BuiltIn) Type() string         { return "BUILTIN" }
func (b *BuiltIn) IsTrue() bool         { return true }
func (b *BuiltIn) FuncName() string     { return b.Name }
func (b *BuiltIn) ParamNames() []string { return b.Params }
func (b *BuiltIn) MinParams() int       { return b.Required }
func (b *BuiltIn) String() string       { return "<built-in function" + b.Name + ">" }

func (b *BuiltIn) Copy() Value {
	cp := *b
	return &cp
}
