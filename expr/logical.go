package expr

import "strings"

// nary is embedded by And and Or: flattening associative operators is
// most naturally modeled with a variadic term list rather than a fixed
// binary tree (a nested (a And (b And c)) would otherwise need repeated
// re-flattening on every simplify pass).
type nary struct {
	base
	Terms []Expr
}

func (n *nary) Children() []Expr { return n.Terms }

func termStrings(terms []Expr) []string {
	out := make([]string, len(terms))
	for i, t := range terms {
		out[i] = t.String()
	}
	return out
}

// And is the n-ary Boolean conjunction.
type And struct{ nary }

// NewAnd builds a conjunction of two or more terms.
func NewAnd(terms ...Expr) *And { return &And{nary{Terms: terms}} }

func (a *And) WithChildren(children ...Expr) (Expr, error) {
	if len(children) != len(a.Terms) {
		return nil, &wrongChildCount{"And", len(a.Terms), len(children)}
	}
	return &And{nary{base: a.base, Terms: children}}, nil
}

func (a *And) String() string { return "(" + strings.Join(termStrings(a.Terms), " and ") + ")" }

// Or is the n-ary Boolean disjunction.
type Or struct{ nary }

// NewOr builds a disjunction of two or more terms.
func NewOr(terms ...Expr) *Or { return &Or{nary{Terms: terms}} }

func (o *Or) WithChildren(children ...Expr) (Expr, error) {
	if len(children) != len(o.Terms) {
		return nil, &wrongChildCount{"Or", len(o.Terms), len(children)}
	}
	return &Or{nary{base: o.base, Terms: children}}, nil
}

func (o *Or) String() string { return "(" + strings.Join(termStrings(o.Terms), " or ") + ")" }

// Not is Boolean negation.
type Not struct {
	base
	Operand Expr
}

func NewNot(operand Expr) *Not { return &Not{Operand: operand} }

func (n *Not) Children() []Expr { return []Expr{n.Operand} }

func (n *Not) WithChildren(children ...Expr) (Expr, error) {
	if len(children) != 1 {
		return nil, &wrongChildCount{"Not", 1, len(children)}
	}
	return &Not{base: n.base, Operand: children[0]}, nil
}

func (n *Not) String() string { return "(not " + n.Operand.String() + ")" }
