// ==============================================================================================
// FILE: builtins/builtins.go
// ==============================================================================================
// PACKAGE: builtins
// PURPOSE: Registers the language's native functions into a root symbol
//          table: the spec.md §6 set (Print, Input, Append, ...) plus the
//          supplemental stdlib surface grounded in the teacher's own
//          object/builtins.go and in original_source/.
// ==============================================================================================

package builtins

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"eloq/context"
	"eloq/diag"
	"eloq/value"
)

// Register binds Null, True, False, and every native function into ctx's
// symbol table. Called once on the root context before evaluation starts.
func Register(ctx *context.Context) {
	ctx.Symbols.Set("Null", value.Value(value.NewNull()))
	ctx.Symbols.Set("True", value.Value(value.NewTrue()))
	ctx.Symbols.Set("False", value.Value(value.NewFalse()))

	for _, b := range all(ctx) {
		ctx.Symbols.Set(b.FuncName(), value.Value(b))
	}
}

func all(ctx *context.Context) []*value.BuiltIn {
	builtins := []*value.BuiltIn{
		builtin("Print", []string{"value"}, execPrint),
		builtin("Input", nil, execInput),
		builtin("Input_Int", nil, execInputInt),
		builtin("Is_number", []string{"value"}, execIsNumber),
		builtin("Is_string", []string{"value"}, execIsString),
		builtin("Is_list", []string{"value"}, execIsList),
		builtin("Is_dict", []string{"value"}, execIsDict),
		builtin("Append", []string{"list", "value"}, execAppend),
		builtin("Pop", []string{"list", "index"}, execPop),
		builtin("Extend", []string{"listA", "listB"}, execExtend),
		builtin("Len", []string{"value"}, execLen),
		builtin("Upper", []string{"value"}, execUpper),
		builtin("Lower", []string{"value"}, execLower),
		builtin("Split", []string{"value", "separator"}, execSplit),
		builtin("Join", []string{"list", "separator"}, execJoin),
		builtin("Str", []string{"value"}, execStr),
		builtin("Keys", []string{"dict"}, execKeys),
		builtin("Values", []string{"dict"}, execValues),
		optionalBuiltin("Range", []string{"start", "end", "step"}, 2, execRange),
	}
	for _, b := range builtins {
		b.SetContext(ctx)
	}
	return builtins
}

func builtin(name string, params []string, fn func(ctx *context.Context) (value.Value, *diag.Diagnostic)) *value.BuiltIn {
	return &value.BuiltIn{Name: name, Params: params, Required: len(params), Fn: fn}
}

// optionalBuiltin registers a builtin whose trailing params (beyond the
// first required) may be omitted at the call site, e.g. Range(a, b[, step]).
func optionalBuiltin(name string, params []string, required int, fn func(ctx *context.Context) (value.Value, *diag.Diagnostic)) *value.BuiltIn {
	return &value.BuiltIn{Name: name, Params: params, Required: required, Fn: fn}
}

func arg(ctx *context.Context, name string) value.Value {
	v, _ := ctx.Symbols.Get(name)
	if v == nil {
		return nil
	}
	return v.(value.Value)
}

func execPrint(ctx *context.Context) (value.Value, *diag.Diagnostic) {
	fmt.Println(arg(ctx, "value").String())
	return nullFor(ctx), nil
}

func execInput(ctx *context.Context) (value.Value, *diag.Diagnostic) {
	text := readLine()
	res := value.NewString(text)
	res.SetContext(ctx)
	return res, nil
}

// execInputInt retries until the user types a parseable integer, matching
// the distilled-from source's loop-until-valid behavior.
func execInputInt(ctx *context.Context) (value.Value, *diag.Diagnostic) {
	for {
		text := readLine()
		n, err := strconv.ParseInt(strings.TrimSpace(text), 10, 64)
		if err == nil {
			res := value.NewInt(n)
			res.SetContext(ctx)
			return res, nil
		}
		fmt.Printf("'%s' must be an integer\n", text)
	}
}

func readLine() string {
	reader := bufio.NewReader(os.Stdin)
	text, _ := reader.ReadString('\n')
	return strings.TrimRight(text, "\r\n")
}

func execIsNumber(ctx *context.Context) (value.Value, *diag.Diagnostic) {
	_, ok := arg(ctx, "value").(*value.Number)
	return boolResult(ctx, ok), nil
}

func execIsString(ctx *context.Context) (value.Value, *diag.Diagnostic) {
	_, ok := arg(ctx, "value").(*value.String)
	return boolResult(ctx, ok), nil
}

func execIsList(ctx *context.Context) (value.Value, *diag.Diagnostic) {
	_, ok := arg(ctx, "value").(*value.List)
	return boolResult(ctx, ok), nil
}

func execIsDict(ctx *context.Context) (value.Value, *diag.Diagnostic) {
	_, ok := arg(ctx, "value").(*value.Dictionary)
	return boolResult(ctx, ok), nil
}

func execAppend(ctx *context.Context) (value.Value, *diag.Diagnostic) {
	list, v := arg(ctx, "list"), arg(ctx, "value")
	l, ok := list.(*value.List)
	if !ok {
		return nil, diag.NewRuntime(list.Span().Start, list.Span().End, "First argument must be a list", ctx)
	}
	l.Elements = append(l.Elements, v)
	return nullFor(ctx), nil
}

func execPop(ctx *context.Context) (value.Value, *diag.Diagnostic) {
	list, index := arg(ctx, "list"), arg(ctx, "index")
	l, ok := list.(*value.List)
	if !ok {
		return nil, diag.NewRuntime(list.Span().Start, list.Span().End, "First argument must be a list", ctx)
	}
	n, ok := index.(*value.Number)
	if !ok {
		return nil, diag.NewRuntime(index.Span().Start, index.Span().End, "Second argument must be an integer", ctx)
	}
	idx := int(n.Int)
	if idx > 0 {
		idx--
	}
	if idx < 0 || idx >= len(l.Elements) {
		return nil, diag.NewRuntime(index.Span().Start, index.Span().End, "List index out of range", ctx)
	}
	elem := l.Elements[idx]
	l.Elements = append(l.Elements[:idx], l.Elements[idx+1:]...)
	return elem, nil
}

func execExtend(ctx *context.Context) (value.Value, *diag.Diagnostic) {
	listA, listB := arg(ctx, "listA"), arg(ctx, "listB")
	a, ok := listA.(*value.List)
	if !ok {
		return nil, diag.NewRuntime(listA.Span().Start, listA.Span().End, "First argument must be a list", ctx)
	}
	b, ok := listB.(*value.List)
	if !ok {
		return nil, diag.NewRuntime(listB.Span().Start, listB.Span().End, "Second argument must be a list", ctx)
	}
	a.Elements = append(a.Elements, b.Elements...)
	return nullFor(ctx), nil
}

func execLen(ctx *context.Context) (value.Value, *diag.Diagnostic) {
	v := arg(ctx, "value")
	var n int
	switch vv := v.(type) {
	case *value.String:
		n = len([]rune(vv.Val))
	case *value.List:
		n = len(vv.Elements)
	default:
		return nil, diag.NewRuntime(v.Span().Start, v.Span().End, "Argument must be a string or list", ctx)
	}
	res := value.NewInt(int64(n))
	res.SetContext(ctx)
	return res, nil
}

func execUpper(ctx *context.Context) (value.Value, *diag.Diagnostic) {
	v := arg(ctx, "value")
	s, ok := v.(*value.String)
	if !ok {
		return nil, diag.NewRuntime(v.Span().Start, v.Span().End, "Argument must be a string", ctx)
	}
	res := value.NewString(strings.ToUpper(s.Val))
	res.SetContext(ctx)
	return res, nil
}

func execLower(ctx *context.Context) (value.Value, *diag.Diagnostic) {
	v := arg(ctx, "value")
	s, ok := v.(*value.String)
	if !ok {
		return nil, diag.NewRuntime(v.Span().Start, v.Span().End, "Argument must be a string", ctx)
	}
	res := value.NewString(strings.ToLower(s.Val))
	res.SetContext(ctx)
	return res, nil
}

func execSplit(ctx *context.Context) (value.Value, *diag.Diagnostic) {
	v, sep := arg(ctx, "value"), arg(ctx, "separator")
	s, ok1 := v.(*value.String)
	d, ok2 := sep.(*value.String)
	if !ok1 || !ok2 {
		return nil, diag.NewRuntime(v.Span().Start, v.Span().End, "Split requires (string, separator)", ctx)
	}
	parts := strings.Split(s.Val, d.Val)
	elems := make([]value.Value, len(parts))
	for i, p := range parts {
		sv := value.NewString(p)
		sv.SetContext(ctx)
		elems[i] = sv
	}
	res := value.NewList(elems)
	res.SetContext(ctx)
	return res, nil
}

func execJoin(ctx *context.Context) (value.Value, *diag.Diagnostic) {
	list, sep := arg(ctx, "list"), arg(ctx, "separator")
	l, ok1 := list.(*value.List)
	d, ok2 := sep.(*value.String)
	if !ok1 || !ok2 {
		return nil, diag.NewRuntime(list.Span().Start, list.Span().End, "Join requires (list, separator)", ctx)
	}
	parts := make([]string, len(l.Elements))
	for i, e := range l.Elements {
		parts[i] = e.String()
	}
	res := value.NewString(strings.Join(parts, d.Val))
	res.SetContext(ctx)
	return res, nil
}

func execStr(ctx *context.Context) (value.Value, *diag.Diagnostic) {
	v := arg(ctx, "value")
	res := value.NewString(v.String())
	res.SetContext(ctx)
	return res, nil
}

func execKeys(ctx *context.Context) (value.Value, *diag.Diagnostic) {
	v := arg(ctx, "dict")
	d, ok := v.(*value.Dictionary)
	if !ok {
		return nil, diag.NewRuntime(v.Span().Start, v.Span().End, "Argument must be a dictionary", ctx)
	}
	res := value.NewList(append([]value.Value{}, d.Keys...))
	res.SetContext(ctx)
	return res, nil
}

func execValues(ctx *context.Context) (value.Value, *diag.Diagnostic) {
	v := arg(ctx, "dict")
	d, ok := v.(*value.Dictionary)
	if !ok {
		return nil, diag.NewRuntime(v.Span().Start, v.Span().End, "Argument must be a dictionary", ctx)
	}
	res := value.NewList(append([]value.Value{}, d.Values...))
	res.SetContext(ctx)
	return res, nil
}

// execRange mirrors StartCycle's own stepping rule (step>=0 walks up while
// i<=end, else walks down while i>=end), letting guest code build an index
// list without writing a loop.
func execRange(ctx *context.Context) (value.Value, *diag.Diagnostic) {
	startArg, endArg := arg(ctx, "start"), arg(ctx, "end")
	start, ok1 := startArg.(*value.Number)
	end, ok2 := endArg.(*value.Number)
	if !ok1 || !ok2 {
		return nil, diag.NewRuntime(startArg.Span().Start, endArg.Span().End, "Range requires numeric start and end", ctx)
	}
	step := int64(1)
	if sv, ok := arg(ctx, "step").(*value.Number); ok {
		step = sv.Int
	}
	if step == 0 {
		return nil, diag.NewRuntime(start.Span().Start, end.Span().End, "Range step must not be zero", ctx)
	}

	var elems []value.Value
	for i := start.Int; (step >= 0 && i <= end.Int) || (step < 0 && i >= end.Int); i += step {
		n := value.NewInt(i)
		n.SetContext(ctx)
		elems = append(elems, n)
	}
	res := value.NewList(elems)
	res.SetContext(ctx)
	return res, nil
}

func nullFor(ctx *context.Context) value.Value {
	n := value.NewNull()
	n.SetContext(ctx)
	return n
}

func boolResult(ctx *context.Context, truth bool) value.Value {
	var n *value.Number
	if truth {
		n = value.NewTrue()
	} else {
		n = value.NewFalse()
	}
	n.SetContext(ctx)
	return n
}
