package expr

import (
	"fmt"
	"strings"

	"github.com/componolit/rflx-verify/ident"
)

// Number is an integer literal, keeping the base it was written in for
// faithful re-printing.
type Number struct {
	base
	Value int64
	Base  int // 0 means "print in decimal"; 2, 8, 16 are also legal.
}

// NewNumber constructs a decimal-base Number with no location, the form
// most internal rewrites (e.g. merge's prefixing) need.
func NewNumber(value int64) *Number { return &Number{Value: value} }

// NewNumberAt constructs a Number carrying a source location and base.
func NewNumberAt(loc *ident.Location, value int64, numBase int) *Number {
	return &Number{base: base{loc: loc}, Value: value, Base: numBase}
}

func (n *Number) Children() []Expr { return nil }

func (n *Number) WithChildren(children ...Expr) (Expr, error) {
	if len(children) != 0 {
		return nil, &wrongChildCount{"Number", 0, len(children)}
	}
	return n, nil
}

func (n *Number) String() string {
	switch n.Base {
	case 2:
		return fmt.Sprintf("2#%b#", n.Value)
	case 8:
		return fmt.Sprintf("8#%o#", n.Value)
	case 16:
		return fmt.Sprintf("16#%x#", n.Value)
	default:
		return fmt.Sprintf("%d", n.Value)
	}
}

// Aggregate is a literal list of Numbers, e.g. an opaque byte-string
// constant.
type Aggregate struct {
	base
	Elements []*Number
}

func NewAggregate(elements ...*Number) *Aggregate { return &Aggregate{Elements: elements} }

func (a *Aggregate) Children() []Expr {
	out := make([]Expr, len(a.Elements))
	for i, e := range a.Elements {
		out[i] = e
	}
	return out
}

func (a *Aggregate) WithChildren(children ...Expr) (Expr, error) {
	if len(children) != len(a.Elements) {
		return nil, &wrongChildCount{"Aggregate", len(a.Elements), len(children)}
	}
	elems := make([]*Number, len(children))
	for i, c := range children {
		n, ok := c.(*Number)
		if !ok {
			return nil, fmt.Errorf("Aggregate: child %d is not a Number", i)
		}
		elems[i] = n
	}
	return &Aggregate{base: a.base, Elements: elems}, nil
}

func (a *Aggregate) String() string {
	parts := make([]string, len(a.Elements))
	for i, e := range a.Elements {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// StringLiteral is a literal string constant.
type StringLiteral struct {
	base
	Value string
}

func NewStringLiteral(value string) *StringLiteral { return &StringLiteral{Value: value} }

func (s *StringLiteral) Children() []Expr { return nil }

func (s *StringLiteral) WithChildren(children ...Expr) (Expr, error) {
	if len(children) != 0 {
		return nil, &wrongChildCount{"StringLiteral", 0, len(children)}
	}
	return s, nil
}

func (s *StringLiteral) String() string { return fmt.Sprintf("%q", s.Value) }

// boolLiteral backs both True and False.
type boolLiteral struct {
	base
	value bool
}

func (b *boolLiteral) Children() []Expr { return nil }

func (b *boolLiteral) WithChildren(children ...Expr) (Expr, error) {
	if len(children) != 0 {
		return nil, &wrongChildCount{"bool literal", 0, len(children)}
	}
	return b, nil
}

func (b *boolLiteral) String() string {
	if b.value {
		return "True"
	}
	return "False"
}

// True is the Boolean literal constant.
type True struct{ boolLiteral }

// NewTrue constructs the True literal.
func NewTrue() *True { return &True{boolLiteral{value: true}} }

// False is the Boolean literal constant.
type False struct{ boolLiteral }

// NewFalse constructs the False literal.
func NewFalse() *False { return &False{boolLiteral{value: false}} }

// Undefined is the sentinel meaning "derive" for a Link's size/first
// aspects: size and first default to the UNDEFINED sentinel.
type Undefined struct{ base }

var undefinedSingleton = &Undefined{}

// NewUndefined returns the UNDEFINED sentinel.
func NewUndefined() *Undefined { return undefinedSingleton }

func (u *Undefined) Children() []Expr { return nil }

func (u *Undefined) WithChildren(children ...Expr) (Expr, error) {
	if len(children) != 0 {
		return nil, &wrongChildCount{"Undefined", 0, len(children)}
	}
	return u, nil
}

func (u *Undefined) String() string { return "<>" }

// IsUndefined reports whether e is the UNDEFINED sentinel.
func IsUndefined(e Expr) bool {
	_, ok := e.(*Undefined)
	return ok
}
