// Package expr implements the expression algebra: a closed sum type
// over arithmetic, relational, Boolean, aggregate, and
// attribute-reference nodes, with a uniform substitute/simplify/find
// interface. Expr is a closed interface, and every traversal — Walk,
// Substitute, Simplify, CheckType — is a free function operating
// through Children/WithChildren rather than a per-node virtual method,
// since that lets a new operation touch every variant uniformly.
package expr

import (
	"strconv"

	"github.com/componolit/rflx-verify/ident"
)

// Expr is implemented by every variant in the closed set. Each variant
// carries an optional *ident.Location.
type Expr interface {
	// Location returns the source position this node was parsed from, or
	// nil for a synthesized node (e.g. one inserted by normalization).
	Location() *ident.Location
	// Children returns the direct subexpressions in declaration order.
	Children() []Expr
	// WithChildren returns a copy of the receiver with its children
	// replaced; len(children) must equal len(Children()). Used by Walk's
	// callers and by Substitute/Simplify to rebuild rewritten trees.
	WithChildren(children ...Expr) (Expr, error)
	// String renders the expression for diagnostics.
	String() string
}

// base is embedded by every variant to carry the common Location field
// and its accessor, the usual small-value-type pattern for expression
// nodes that share behavior through a common embedded sub-struct.
type base struct {
	loc *ident.Location
}

func (b base) Location() *ident.Location { return b.loc }

// wrongChildCount is returned by WithChildren implementations when the
// caller passes an unexpected arity; it is a programmer error (internal
// rewrite bug), not a user-facing diagnostic, so it is a plain error
// rather than an *rferrors.Kind.
type wrongChildCount struct {
	expr     string
	expected int
	got      int
}

func (e *wrongChildCount) Error() string {
	return e.expr + ": expected " + strconv.Itoa(e.expected) + " children, got " + strconv.Itoa(e.got)
}
