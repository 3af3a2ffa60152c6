package expr

import "fmt"

// Equal is the relational equality operator.
type Equal struct{ binary }

func NewEqual(left, right Expr) *Equal { return &Equal{binary{Left: left, Right: right}} }
func (e *Equal) WithChildren(c ...Expr) (Expr, error) {
	return withTwoChildren("Equal", c, func(l, r Expr) Expr { return &Equal{binary{Left: l, Right: r}} })
}
func (e *Equal) String() string { return fmt.Sprintf("(%s = %s)", e.Left, e.Right) }

// NotEqual is the relational inequality operator.
type NotEqual struct{ binary }

func NewNotEqual(left, right Expr) *NotEqual { return &NotEqual{binary{Left: left, Right: right}} }
func (e *NotEqual) WithChildren(c ...Expr) (Expr, error) {
	return withTwoChildren("NotEqual", c, func(l, r Expr) Expr { return &NotEqual{binary{Left: l, Right: r}} })
}
func (e *NotEqual) String() string { return fmt.Sprintf("(%s /= %s)", e.Left, e.Right) }

// Less is the strict less-than operator.
type Less struct{ binary }

func NewLess(left, right Expr) *Less { return &Less{binary{Left: left, Right: right}} }
func (e *Less) WithChildren(c ...Expr) (Expr, error) {
	return withTwoChildren("Less", c, func(l, r Expr) Expr { return &Less{binary{Left: l, Right: r}} })
}
func (e *Less) String() string { return fmt.Sprintf("(%s < %s)", e.Left, e.Right) }

// LessEqual is the non-strict less-than-or-equal operator.
type LessEqual struct{ binary }

func NewLessEqual(left, right Expr) *LessEqual { return &LessEqual{binary{Left: left, Right: right}} }
func (e *LessEqual) WithChildren(c ...Expr) (Expr, error) {
	return withTwoChildren("LessEqual", c, func(l, r Expr) Expr { return &LessEqual{binary{Left: l, Right: r}} })
}
func (e *LessEqual) String() string { return fmt.Sprintf("(%s <= %s)", e.Left, e.Right) }

// Greater is the strict greater-than operator.
type Greater struct{ binary }

func NewGreater(left, right Expr) *Greater { return &Greater{binary{Left: left, Right: right}} }
func (e *Greater) WithChildren(c ...Expr) (Expr, error) {
	return withTwoChildren("Greater", c, func(l, r Expr) Expr { return &Greater{binary{Left: l, Right: r}} })
}
func (e *Greater) String() string { return fmt.Sprintf("(%s > %s)", e.Left, e.Right) }

// GreaterEqual is the non-strict greater-than-or-equal operator.
type GreaterEqual struct{ binary }

func NewGreaterEqual(left, right Expr) *GreaterEqual {
	return &GreaterEqual{binary{Left: left, Right: right}}
}
func (e *GreaterEqual) WithChildren(c ...Expr) (Expr, error) {
	return withTwoChildren("GreaterEqual", c, func(l, r Expr) Expr { return &GreaterEqual{binary{Left: l, Right: r}} })
}
func (e *GreaterEqual) String() string { return fmt.Sprintf("(%s >= %s)", e.Left, e.Right) }
