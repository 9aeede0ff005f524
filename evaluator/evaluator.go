// ==============================================================================================
// FILE: evaluator/evaluator.go
// ==============================================================================================
// PACKAGE: evaluator
// PURPOSE: Tree-walking evaluator. Eval dispatches on the concrete AST node
//          type (spec.md §4.4); binary/unary operators dispatch further into
//          the value package's free functions by operator kind.
// ==============================================================================================

package evaluator

import (
	"strconv"

	"eloq/ast"
	"eloq/context"
	"eloq/diag"
	"eloq/position"
	"eloq/token"
	"eloq/value"
)

// MaxCallDepth bounds the call-context chain so unbounded recursion (e.g.
// fib with no base case) fails with a diagnostic instead of exhausting the
// Go stack — a safety net the distilled-from interpreter's own recursion
// limit closes (SPEC_FULL.md §3).
const MaxCallDepth = 1000

// Eval walks node, threading ctx through as the current lexical scope.
func Eval(node ast.Node, ctx *context.Context) (value.Value, *diag.Diagnostic) {
	switch n := node.(type) {
	case *ast.Number:
		return evalNumber(n, ctx)
	case *ast.StringLit:
		return evalString(n, ctx)
	case *ast.List:
		return evalList(n, ctx)
	case *ast.Dictionary:
		return evalDictionary(n, ctx)
	case *ast.VarAccess:
		return evalVarAccess(n, ctx)
	case *ast.VarAssign:
		return evalVarAssign(n, ctx)
	case *ast.BinaryOp:
		return evalBinaryOp(n, ctx)
	case *ast.UnaryOp:
		return evalUnaryOp(n, ctx)
	case *ast.If:
		return evalIf(n, ctx)
	case *ast.For:
		return evalFor(n, ctx)
	case *ast.While:
		return evalWhile(n, ctx)
	case *ast.FuncDef:
		return evalFuncDef(n, ctx)
	case *ast.Call:
		return evalCall(n, ctx)
	}
	return nil, diag.NewRuntime(node.Span().Start, node.Span().End,
		"No visit method defined for this node", ctx)
}

func evalNumber(n *ast.Number, ctx *context.Context) (value.Value, *diag.Diagnostic) {
	var num *value.Number
	if n.Tok.Literal.Kind == token.LitFloat {
		num = value.NewFloat(n.Tok.Literal.Flt)
	} else {
		num = value.NewInt(n.Tok.Literal.Int)
	}
	num.SetContext(ctx)
	num.SetSpan(n.Span())
	return num, nil
}

func evalString(n *ast.StringLit, ctx *context.Context) (value.Value, *diag.Diagnostic) {
	s := value.NewString(n.Tok.Literal.Str)
	s.SetContext(ctx)
	s.SetSpan(n.Span())
	return s, nil
}

func evalList(n *ast.List, ctx *context.Context) (value.Value, *diag.Diagnostic) {
	elements := make([]value.Value, 0, len(n.Elements))
	for _, elemNode := range n.Elements {
		elem, err := Eval(elemNode, ctx)
		if err != nil {
			return nil, err
		}
		elements = append(elements, elem)
	}
	list := value.NewList(elements)
	list.SetContext(ctx)
	list.SetSpan(n.Span())
	return list, nil
}

func evalDictionary(n *ast.Dictionary, ctx *context.Context) (value.Value, *diag.Diagnostic) {
	keys := make([]value.Value, 0, len(n.Keys))
	for _, keyNode := range n.Keys {
		k, err := Eval(keyNode, ctx)
		if err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	values := make([]value.Value, 0, len(n.Values))
	for _, valNode := range n.Values {
		v, err := Eval(valNode, ctx)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	dict := value.NewDictionary(keys, values)
	dict.SetContext(ctx)
	dict.SetSpan(n.Span())
	return dict, nil
}

func evalVarAccess(n *ast.VarAccess, ctx *context.Context) (value.Value, *diag.Diagnostic) {
	name := n.NameTok.Literal.Str
	raw, ok := ctx.Symbols.Get(name)
	if !ok {
		return nil, diag.NewRuntime(n.Span().Start, n.Span().End, "'"+name+"' is not defined", ctx)
	}
	v := raw.(value.Value).Copy()
	v.SetSpan(n.Span())
	v.SetContext(ctx)
	return v, nil
}

func evalVarAssign(n *ast.VarAssign, ctx *context.Context) (value.Value, *diag.Diagnostic) {
	name := n.NameTok.Literal.Str
	v, err := Eval(n.Value, ctx)
	if err != nil {
		return nil, err
	}
	ctx.Symbols.Set(name, v)
	return v, nil
}

func evalBinaryOp(n *ast.BinaryOp, ctx *context.Context) (value.Value, *diag.Diagnostic) {
	left, err := Eval(n.Left, ctx)
	if err != nil {
		return nil, err
	}
	right, err := Eval(n.Right, ctx)
	if err != nil {
		return nil, err
	}

	var result value.Value
	var opErr *diag.Diagnostic

	switch {
	case n.Op.Is(token.PLUS):
		result, opErr = value.Add(left, right)
	case n.Op.Is(token.MINUS):
		result, opErr = value.Subtract(left, right)
	case n.Op.Is(token.MULTIPLY):
		result, opErr = value.Multiply(left, right)
	case n.Op.Is(token.DIVIDE):
		result, opErr = value.Divide(left, right)
	case n.Op.Is(token.FLOORDIVIDE):
		result, opErr = value.FloorDivide(left, right)
	case n.Op.Is(token.MODULO):
		result, opErr = value.Modulo(left, right)
	case n.Op.Is(token.INDEX):
		result, opErr = value.Index(left, right)
	case n.Op.Is(token.POWER):
		result, opErr = value.Power(left, right)
	case n.Op.Is(token.EE):
		result, opErr = value.Eq(left, right)
	case n.Op.Is(token.NE):
		result, opErr = value.Ne(left, right)
	case n.Op.Is(token.LT):
		result, opErr = value.Lt(left, right)
	case n.Op.Is(token.LTE):
		result, opErr = value.Lte(left, right)
	case n.Op.Is(token.GT):
		result, opErr = value.Gt(left, right)
	case n.Op.Is(token.GTE):
		result, opErr = value.Gte(left, right)
	case n.Op.IsKeyword("and"):
		result, opErr = value.And(left, right)
	case n.Op.IsKeyword("or"):
		result, opErr = value.Or(left, right)
	default:
		opErr = value.IllegalOperation(left, right)
	}

	if opErr != nil {
		return nil, opErr
	}
	result.SetSpan(n.Span())
	return result, nil
}

func evalUnaryOp(n *ast.UnaryOp, ctx *context.Context) (value.Value, *diag.Diagnostic) {
	operand, err := Eval(n.Right, ctx)
	if err != nil {
		return nil, err
	}

	var result value.Value
	var opErr *diag.Diagnostic

	switch {
	case n.Op.Is(token.MINUS):
		negOne := value.NewInt(-1)
		negOne.SetContext(ctx)
		result, opErr = value.Multiply(operand, negOne)
	case n.Op.IsKeyword("not"):
		result, opErr = value.Not(operand)
	default:
		result = operand
	}

	if opErr != nil {
		return nil, opErr
	}
	result.SetSpan(n.Span())
	return result, nil
}

func evalIf(n *ast.If, ctx *context.Context) (value.Value, *diag.Diagnostic) {
	for _, c := range n.Cases {
		condValue, err := Eval(c.Condition, ctx)
		if err != nil {
			return nil, err
		}
		if condValue.IsTrue() {
			bodyValue, err := Eval(c.Body, ctx)
			if err != nil {
				return nil, err
			}
			if c.DiscardBody {
				return nullValue(ctx), nil
			}
			return bodyValue, nil
		}
	}

	if n.HasElse {
		elseValue, err := Eval(n.ElseBody, ctx)
		if err != nil {
			return nil, err
		}
		if n.DiscardElse {
			return nullValue(ctx), nil
		}
		return elseValue, nil
	}

	return nullValue(ctx), nil
}

func evalFor(n *ast.For, ctx *context.Context) (value.Value, *diag.Diagnostic) {
	startValue, err := Eval(n.Start, ctx)
	if err != nil {
		return nil, err
	}
	endValue, err := Eval(n.End, ctx)
	if err != nil {
		return nil, err
	}
	startNum, ok := startValue.(*value.Number)
	if !ok {
		return nil, value.IllegalOperation(startValue, nil)
	}
	endNum, ok := endValue.(*value.Number)
	if !ok {
		return nil, value.IllegalOperation(endValue, nil)
	}

	stepNum := value.NewInt(1)
	if n.Step != nil {
		stepValue, err := Eval(n.Step, ctx)
		if err != nil {
			return nil, err
		}
		sv, ok := stepValue.(*value.Number)
		if !ok {
			return nil, value.IllegalOperation(stepValue, nil)
		}
		stepNum = sv
	}
	if stepNum.Float64() == 0 {
		return nil, diag.NewRuntime(n.Span().Start, n.Span().End, "Step must not be zero", ctx)
	}

	varName := n.VarTok.Literal.Str
	i := startNum.Float64()
	end := endNum.Float64()
	step := stepNum.Float64()

	var elements []value.Value
	for {
		if step >= 0 {
			if !(i <= end) {
				break
			}
		} else {
			if !(i >= end) {
				break
			}
		}

		loopVar := numberFromFloat(i, startNum.IsFloat || stepNum.IsFloat)
		loopVar.SetContext(ctx)
		ctx.Symbols.Set(varName, loopVar)
		i += step

		bodyValue, err := Eval(n.Body, ctx)
		if err != nil {
			return nil, err
		}
		elements = append(elements, bodyValue)
	}

	if n.DiscardResult {
		return nullValue(ctx), nil
	}
	list := value.NewList(elements)
	list.SetContext(ctx)
	list.SetSpan(n.Span())
	return list, nil
}

// numberFromFloat reconstructs a Number for a for-loop counter, preserving
// the integer representation when start and step were both integers.
func numberFromFloat(f float64, isFloat bool) *value.Number {
	if isFloat {
		return value.NewFloat(f)
	}
	return value.NewInt(int64(f))
}

func evalWhile(n *ast.While, ctx *context.Context) (value.Value, *diag.Diagnostic) {
	var elements []value.Value
	for {
		condValue, err := Eval(n.Condition, ctx)
		if err != nil {
			return nil, err
		}
		if !condValue.IsTrue() {
			break
		}

		bodyValue, err := Eval(n.Body, ctx)
		if err != nil {
			return nil, err
		}
		elements = append(elements, bodyValue)
	}

	if n.DiscardResult {
		return nullValue(ctx), nil
	}
	list := value.NewList(elements)
	list.SetContext(ctx)
	list.SetSpan(n.Span())
	return list, nil
}

func evalFuncDef(n *ast.FuncDef, ctx *context.Context) (value.Value, *diag.Diagnostic) {
	name := ""
	if n.NameTok != nil {
		name = n.NameTok.Literal.Str
	}
	params := make([]string, len(n.Params))
	for i, p := range n.Params {
		params[i] = p.Literal.Str
	}

	fn := value.NewFunction(name, n.Body, params, n.DiscardResult, ctx)
	fn.SetContext(ctx)
	fn.SetSpan(n.Span())

	if n.NameTok != nil {
		ctx.Symbols.Set(name, value.Value(fn))
	}
	return fn, nil
}

func evalCall(n *ast.Call, ctx *context.Context) (value.Value, *diag.Diagnostic) {
	calleeValue, err := Eval(n.Callee, ctx)
	if err != nil {
		return nil, err
	}
	callee, ok := calleeValue.(value.Callable)
	if !ok {
		return nil, value.IllegalOperation(calleeValue, nil)
	}
	callee = callee.Copy().(value.Callable)
	callee.SetSpan(n.Span())

	args := make([]value.Value, 0, len(n.Args))
	for _, argNode := range n.Args {
		argValue, err := Eval(argNode, ctx)
		if err != nil {
			return nil, err
		}
		args = append(args, argValue)
	}

	result, err := call(callee, args, n.Span())
	if err != nil {
		return nil, err
	}
	result = result.Copy()
	result.SetSpan(n.Span())
	result.SetContext(ctx)
	return result, nil
}

// call implements the distilled-from source's BaseFunction protocol:
// build a fresh call context, check and bind arguments, then run the
// callable's body (user Function) or its Go implementation (BuiltIn).
func call(callee value.Callable, args []value.Value, callSite position.Span) (value.Value, *diag.Diagnostic) {
	parentCtx := callee.Context()
	if fn, ok := callee.(*value.Function); ok {
		parentCtx = fn.Closure
	}
	execCtx := context.NewChild(callee.FuncName(), parentCtx, callSite.Start)

	if execCtx.Depth() > MaxCallDepth {
		return nil, diag.NewRuntime(callSite.Start, callSite.End, "Maximum recursion depth exceeded", execCtx)
	}

	if err := checkAndPopulateArgs(callee, callee.ParamNames(), args, execCtx); err != nil {
		return nil, err
	}

	switch fn := callee.(type) {
	case *value.Function:
		result, err := Eval(fn.Body, execCtx)
		if err != nil {
			return nil, err
		}
		if fn.DiscardResult {
			return nullValue(execCtx), nil
		}
		return result, nil
	case *value.BuiltIn:
		return fn.Fn(execCtx)
	}
	return nil, value.IllegalOperation(callee, nil)
}

func checkAndPopulateArgs(callee value.Callable, paramNames []string, args []value.Value, execCtx *context.Context) *diag.Diagnostic {
	span := callee.Span()
	if len(args) > len(paramNames) {
		n := len(args) - len(paramNames)
		return diag.NewRuntime(span.Start, span.End,
			strconv.Itoa(n)+" excess arguments are passed into '"+callee.String()+"'", callee.Context())
	}
	if min := callee.MinParams(); len(args) < min {
		n := min - len(args)
		return diag.NewRuntime(span.Start, span.End,
			strconv.Itoa(n)+" less arguments are passed into '"+callee.String()+"'", callee.Context())
	}
	for i, name := range paramNames {
		if i >= len(args) {
			break
		}
		args[i].SetContext(execCtx)
		execCtx.Symbols.Set(name, args[i])
	}
	return nil
}

func nullValue(ctx *context.Context) value.Value {
	n := value.NewNull()
	n.SetContext(ctx)
	return n
}
