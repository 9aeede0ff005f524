package value

import "strings"

// List is an ordered, owned sequence of Value.
type List struct {
	base
	Elements []Value
}

func NewList(elements []Value) *List { return &List{Elements: elements} }

func (l *List) Type() string { return "LIST" }
func (l *List) IsTrue() bool { return len(l.Elements) > 0 }

func (l *List) Copy() Value {
	cp := *l
	// A shallow copy of the slice header aliases the same backing array as
	// the distilled-from interpreter's list.copy() (`List(self.elements)`,
	// not a deep element copy) — intentional, since the Subtract/remove
	// path in ops.go makes its own copy of the slice before mutating.
	return &cp
}

func (l *List) String() string {
	parts := make([]string, len(l.Elements))
	for i, e := range l.Elements {
		parts[i] = e.String()
	}
	return strings.Join(parts, ", ")
}
