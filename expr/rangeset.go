package expr

import (
	"fmt"
)

// ValueRange is a closed numeric range lo..hi, used as the right-hand
// side of In/NotIn and as the domain of a RangeInteger type.
type ValueRange struct {
	base
	Lo, Hi Expr
}

func NewValueRange(lo, hi Expr) *ValueRange { return &ValueRange{Lo: lo, Hi: hi} }

func (v *ValueRange) Children() []Expr { return []Expr{v.Lo, v.Hi} }

func (v *ValueRange) WithChildren(children ...Expr) (Expr, error) {
	return withTwoChildren("ValueRange", children, func(l, r Expr) Expr { return &ValueRange{Lo: l, Hi: r} })
}

func (v *ValueRange) String() string { return fmt.Sprintf("%s .. %s", v.Lo, v.Hi) }

// setMembership is embedded by In and NotIn.
type setMembership struct {
	base
	Elem Expr
	Set  Expr
}

func (s *setMembership) Children() []Expr { return []Expr{s.Elem, s.Set} }

// In is set/range membership.
type In struct{ setMembership }

func NewIn(elem, set Expr) *In { return &In{setMembership{Elem: elem, Set: set}} }

func (i *In) WithChildren(children ...Expr) (Expr, error) {
	return withTwoChildren("In", children, func(l, r Expr) Expr { return &In{setMembership{Elem: l, Set: r}} })
}

func (i *In) String() string { return fmt.Sprintf("(%s in %s)", i.Elem, i.Set) }

// NotIn is set/range non-membership.
type NotIn struct{ setMembership }

func NewNotIn(elem, set Expr) *NotIn { return &NotIn{setMembership{Elem: elem, Set: set}} }

func (i *NotIn) WithChildren(children ...Expr) (Expr, error) {
	return withTwoChildren("NotIn", children, func(l, r Expr) Expr { return &NotIn{setMembership{Elem: l, Set: r}} })
}

func (i *NotIn) String() string { return fmt.Sprintf("(%s not in %s)", i.Elem, i.Set) }
