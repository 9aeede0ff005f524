package value

import (
	"math"

	"eloq/diag"
)

// Add implements the '+' operator: Number+Number, String+String,
// List+List, and Dictionary+List[2] (append a (key, value) pair).
func Add(l, r Value) (Value, *diag.Diagnostic) {
	switch lv := l.(type) {
	case *Number:
		if rv, ok := r.(*Number); ok {
			return numArith(lv, rv, func(a, b float64) float64 { return a + b }, func(a, b int64) int64 { return a + b })
		}
	case *String:
		if rv, ok := r.(*String); ok {
			res := NewString(lv.Val + rv.Val)
			res.SetContext(lv.Context())
			return res, nil
		}
	case *List:
		if rv, ok := r.(*List); ok {
			elems := make([]Value, 0, len(lv.Elements)+len(rv.Elements))
			elems = append(elems, lv.Elements...)
			elems = append(elems, rv.Elements...)
			res := NewList(elems)
			res.SetContext(lv.Context())
			return res, nil
		}
	case *Dictionary:
		if rv, ok := r.(*List); ok && len(rv.Elements) == 2 {
			keys := append(append([]Value{}, lv.Keys...), rv.Elements[0])
			values := append(append([]Value{}, lv.Values...), rv.Elements[1])
			res := NewDictionary(keys, values)
			res.SetContext(lv.Context())
			return res, nil
		}
	}
	return nil, IllegalOperation(l, r)
}

// Subtract implements the '-' operator: Number-Number is arithmetic
// subtraction; List-Number removes the element at the given RAW
// (unadjusted) index — unlike the 1-based '?' operator, this index is not
// decremented, an intentional asymmetry preserved from the distilled-from
// interpreter.
func Subtract(l, r Value) (Value, *diag.Diagnostic) {
	switch lv := l.(type) {
	case *Number:
		if rv, ok := r.(*Number); ok {
			return numArith(lv, rv, func(a, b float64) float64 { return a - b }, func(a, b int64) int64 { return a - b })
		}
	case *List:
		if rv, ok := r.(*Number); ok {
			idx := int(rv.Int)
			if rv.IsFloat {
				idx = int(rv.Flt)
			}
			if idx < 0 {
				idx += len(lv.Elements)
			}
			if idx < 0 || idx >= len(lv.Elements) {
				return nil, diag.NewRuntime(rv.Span().Start, rv.Span().End, "List index out of range", lv.Context())
			}
			elems := append([]Value{}, lv.Elements...)
			elems = append(elems[:idx], elems[idx+1:]...)
			res := NewList(elems)
			res.SetSpan(lv.Span())
			res.SetContext(lv.Context())
			return res, nil
		}
	}
	return nil, IllegalOperation(l, r)
}

// Multiply implements the '*' operator: Number*Number, String*Number
// (repeat), List*Number (repeat).
func Multiply(l, r Value) (Value, *diag.Diagnostic) {
	switch lv := l.(type) {
	case *Number:
		if rv, ok := r.(*Number); ok {
			return numArith(lv, rv, func(a, b float64) float64 { return a * b }, func(a, b int64) int64 { return a * b })
		}
	case *String:
		if rv, ok := r.(*Number); ok {
			n := int(rv.Int)
			if n < 0 {
				n = 0
			}
			res := NewString(repeatString(lv.Val, n))
			res.SetContext(lv.Context())
			return res, nil
		}
	case *List:
		if rv, ok := r.(*Number); ok {
			n := int(rv.Int)
			if n < 0 {
				n = 0
			}
			elems := make([]Value, 0, len(lv.Elements)*n)
			for i := 0; i < n; i++ {
				elems = append(elems, lv.Elements...)
			}
			res := NewList(elems)
			res.SetContext(lv.Context())
			return res, nil
		}
	}
	return nil, IllegalOperation(l, r)
}

// Divide implements '/': always true division, widening to float, per
// spec.md §4.3 ("integer `/` yields float"). A zero divisor fails
// "Division By Zero".
func Divide(l, r Value) (Value, *diag.Diagnostic) {
	lv, ok1 := l.(*Number)
	rv, ok2 := r.(*Number)
	if !ok1 || !ok2 {
		return nil, IllegalOperation(l, r)
	}
	if rv.Float64() == 0 {
		return nil, diag.NewRuntime(rv.Span().Start, rv.Span().End, "Division By Zero", lv.Context())
	}
	res := NewFloat(lv.Float64() / rv.Float64())
	res.SetContext(lv.Context())
	return res, nil
}

// FloorDivide implements '//'. A zero divisor fails "Division By Zero".
// Result stays integer when both operands are integer, else float floor
// division.
func FloorDivide(l, r Value) (Value, *diag.Diagnostic) {
	lv, ok1 := l.(*Number)
	rv, ok2 := r.(*Number)
	if !ok1 || !ok2 {
		return nil, IllegalOperation(l, r)
	}
	if rv.Float64() == 0 {
		return nil, diag.NewRuntime(rv.Span().Start, rv.Span().End, "Division By Zero", lv.Context())
	}
	var res *Number
	if !lv.IsFloat && !rv.IsFloat {
		q := lv.Int / rv.Int
		if (lv.Int%rv.Int != 0) && ((lv.Int < 0) != (rv.Int < 0)) {
			q--
		}
		res = NewInt(q)
	} else {
		res = NewFloat(floorDiv(lv.Float64(), rv.Float64()))
	}
	res.SetContext(lv.Context())
	return res, nil
}

// Modulo implements '%'. A zero divisor fails "Modulo By Zero".
func Modulo(l, r Value) (Value, *diag.Diagnostic) {
	lv, ok1 := l.(*Number)
	rv, ok2 := r.(*Number)
	if !ok1 || !ok2 {
		return nil, IllegalOperation(l, r)
	}
	if rv.Float64() == 0 {
		return nil, diag.NewRuntime(rv.Span().Start, rv.Span().End, "Modulo By Zero", lv.Context())
	}
	var res *Number
	if !lv.IsFloat && !rv.IsFloat {
		m := lv.Int % rv.Int
		if m != 0 && ((m < 0) != (rv.Int < 0)) {
			m += rv.Int
		}
		res = NewInt(m)
	} else {
		a, b := lv.Float64(), rv.Float64()
		m := floorMod(a, b)
		res = NewFloat(m)
	}
	res.SetContext(lv.Context())
	return res, nil
}

// Power implements '^', exponentiation.
func Power(l, r Value) (Value, *diag.Diagnostic) {
	lv, ok1 := l.(*Number)
	rv, ok2 := r.(*Number)
	if !ok1 || !ok2 {
		return nil, IllegalOperation(l, r)
	}
	if !lv.IsFloat && !rv.IsFloat && rv.Int >= 0 {
		res := NewInt(intPow(lv.Int, rv.Int))
		res.SetContext(lv.Context())
		return res, nil
	}
	res := NewFloat(floatPow(lv.Float64(), rv.Float64()))
	res.SetContext(lv.Context())
	return res, nil
}

// Eq, Ne, Lt, Lte, Gt, Gte implement the comparison operators. Only
// Number-Number is defined; every comparison yields a 1-or-0 Number.
func Eq(l, r Value) (Value, *diag.Diagnostic) {
	return numCompare(l, r, func(a, b float64) bool { return a == b })
}
func Ne(l, r Value) (Value, *diag.Diagnostic) {
	return numCompare(l, r, func(a, b float64) bool { return a != b })
}
func Lt(l, r Value) (Value, *diag.Diagnostic) {
	return numCompare(l, r, func(a, b float64) bool { return a < b })
}
func Lte(l, r Value) (Value, *diag.Diagnostic) {
	return numCompare(l, r, func(a, b float64) bool { return a <= b })
}
func Gt(l, r Value) (Value, *diag.Diagnostic) {
	return numCompare(l, r, func(a, b float64) bool { return a > b })
}
func Gte(l, r Value) (Value, *diag.Diagnostic) {
	return numCompare(l, r, func(a, b float64) bool { return a >= b })
}

// And and Or implement the logical operators. Truthiness is `value != 0`
// on Numbers; the result is always a normalized 1-or-0 Number (not a
// truthy pass-through of either operand).
func And(l, r Value) (Value, *diag.Diagnostic) {
	lv, ok1 := l.(*Number)
	rv, ok2 := r.(*Number)
	if !ok1 || !ok2 {
		return nil, IllegalOperation(l, r)
	}
	return boolNumber(lv.IsTrue() && rv.IsTrue(), lv), nil
}

func Or(l, r Value) (Value, *diag.Diagnostic) {
	lv, ok1 := l.(*Number)
	rv, ok2 := r.(*Number)
	if !ok1 || !ok2 {
		return nil, IllegalOperation(l, r)
	}
	return boolNumber(lv.IsTrue() || rv.IsTrue(), lv), nil
}

// Not implements unary `not`: 1 if the operand is falsy, else 0.
func Not(v Value) (Value, *diag.Diagnostic) {
	nv, ok := v.(*Number)
	if !ok {
		return nil, IllegalOperation(v, nil)
	}
	return boolNumber(!nv.IsTrue(), nv), nil
}

// Index implements the '?' operator: 1-based indexing with zero-forbidden,
// over String or List, by a Number or by a List of Numbers.
func Index(l, r Value) (Value, *diag.Diagnostic) {
	switch lv := l.(type) {
	case *String:
		switch rv := r.(type) {
		case *Number:
			idx, err := resolveStringIndex(lv, rv)
			if err != nil {
				return nil, err
			}
			res := NewString(string([]rune(lv.Val)[idx]))
			res.SetContext(lv.Context())
			return res, nil
		case *List:
			runes := []rune(lv.Val)
			var out []rune
			for _, e := range rv.Elements {
				n, ok := e.(*Number)
				if !ok {
					return nil, IllegalOperation(l, r)
				}
				idx, err := resolveIndex(n, len(runes), "String index out of range", lv)
				if err != nil {
					return nil, err
				}
				out = append(out, runes[idx])
			}
			res := NewString(string(out))
			res.SetContext(lv.Context())
			return res, nil
		}
	case *List:
		switch rv := r.(type) {
		case *Number:
			idx, err := resolveIndex(rv, len(lv.Elements), "List index out of range", lv)
			if err != nil {
				return nil, err
			}
			elem := lv.Elements[idx]
			// Known quirk (spec.md §9): indexing a List with a Number
			// returns a freshly allocated copy for numeric elements
			// rather than the element itself.
			if n, ok := elem.(*Number); ok {
				cp := *n
				cp.SetContext(lv.Context())
				return &cp, nil
			}
			return elem, nil
		case *List:
			var out []Value
			for _, e := range rv.Elements {
				n, ok := e.(*Number)
				if !ok {
					return nil, IllegalOperation(l, r)
				}
				idx, err := resolveIndex(n, len(lv.Elements), "List index out of range", lv)
				if err != nil {
					return nil, err
				}
				out = append(out, lv.Elements[idx])
			}
			res := NewList(out)
			res.SetContext(lv.Context())
			return res, nil
		}
	}
	return nil, IllegalOperation(l, r)
}

func resolveStringIndex(s *String, n *Number) (int, *diag.Diagnostic) {
	return resolveIndex(n, len([]rune(s.Val)), "String index out of range", s)
}

// resolveIndex applies the 1-based, zero-forbidden convention: index 0 is
// a domain error, a positive index is decremented to become 0-based, and a
// negative index passes through unchanged (counting from the end, as a
// normal Go/Python negative slice index would). Out-of-range in either
// direction fails with errMsg.
func resolveIndex(n *Number, length int, errMsg string, owner Value) (int, *diag.Diagnostic) {
	idx := int(n.Int)
	if n.IsFloat {
		idx = int(n.Flt)
	}
	if idx == 0 {
		return 0, diag.NewRuntime(n.Span().Start, n.Span().End, errMsg, owner.Context())
	}
	if idx > 0 {
		idx--
	}
	if idx < 0 {
		idx += length
	}
	if idx < 0 || idx >= length {
		return 0, diag.NewRuntime(n.Span().Start, n.Span().End, errMsg, owner.Context())
	}
	return idx, nil
}

// numArith applies a Number+Number binary operation, widening to float
// when either operand is float and keeping the integer path otherwise.
func numArith(l, r *Number, floatOp func(a, b float64) float64, intOp func(a, b int64) int64) (Value, *diag.Diagnostic) {
	var res *Number
	if l.IsFloat || r.IsFloat {
		res = NewFloat(floatOp(l.Float64(), r.Float64()))
	} else {
		res = NewInt(intOp(l.Int, r.Int))
	}
	res.SetContext(l.Context())
	return res, nil
}

// numCompare applies a Number-Number comparison, yielding the spec's
// normalized 1-or-0 Number result.
func numCompare(l, r Value, cmp func(a, b float64) bool) (Value, *diag.Diagnostic) {
	lv, ok1 := l.(*Number)
	rv, ok2 := r.(*Number)
	if !ok1 || !ok2 {
		return nil, IllegalOperation(l, r)
	}
	return boolNumber(cmp(lv.Float64(), rv.Float64()), lv), nil
}

func repeatString(s string, n int) string {
	out := make([]byte, 0, len(s)*n)
	for i := 0; i < n; i++ {
		out = append(out, s...)
	}
	return string(out)
}

// floorDiv and floorMod implement Python-style floor division/modulo for
// the float path (result takes the sign of the divisor), matching the
// distilled-from interpreter's `//` and `%` on floats.
func floorDiv(a, b float64) float64 {
	return math.Floor(a / b)
}

func floorMod(a, b float64) float64 {
	return a - math.Floor(a/b)*b
}

func intPow(base, exp int64) int64 {
	return int64(math.Pow(float64(base), float64(exp)))
}

func floatPow(base, exp float64) float64 {
	return math.Pow(base, exp)
}
