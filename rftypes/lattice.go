// Package rftypes implements the scalar and composite type model
// (ModularInteger, RangeInteger, Enumeration, Opaque, Sequence, Message)
// and the lightweight type lattice expr.CheckType uses (Any, Universal
// Integer, Bounded Integer, Enumeration(id), Opaque, Aggregate).
package rftypes

import "github.com/componolit/rflx-verify/ident"

// LatticeKind names one node of the small type lattice check_type
// structurally matches against; it is not the declared scalar/composite
// Type itself (see type.go), only the coarser classification expression
// type-checking needs.
type LatticeKind int

const (
	// Any matches every expression; used as the expected type for a
	// bare Boolean condition that must type-check against Any.
	Any LatticeKind = iota
	UniversalInteger
	BoundedInteger
	EnumerationKind
	OpaqueKind
	AggregateKind
)

func (k LatticeKind) String() string {
	switch k {
	case Any:
		return "Any"
	case UniversalInteger:
		return "Universal Integer"
	case BoundedInteger:
		return "Bounded Integer"
	case EnumerationKind:
		return "Enumeration"
	case OpaqueKind:
		return "Opaque"
	case AggregateKind:
		return "Aggregate"
	default:
		return "<unknown>"
	}
}

// Lattice is a lattice value: a LatticeKind plus, for Enumeration, the
// identifier of the specific enumeration it ranges over (so
// Enumeration(Tag) is distinguishable from Enumeration(Kind)).
type Lattice struct {
	Kind       LatticeKind
	Enum       ident.ID
	LowerBound int64 // meaningful only for BoundedInteger
	UpperBound int64
}

// AnyLattice is the universal acceptor.
func AnyLattice() Lattice { return Lattice{Kind: Any} }

// UniversalIntegerLattice classifies an integer literal before it is
// known which scalar type will consume it.
func UniversalIntegerLattice() Lattice { return Lattice{Kind: UniversalInteger} }

// BoundedIntegerLattice classifies an integer expression known to lie in
// [lo, hi].
func BoundedIntegerLattice(lo, hi int64) Lattice {
	return Lattice{Kind: BoundedInteger, LowerBound: lo, UpperBound: hi}
}

// EnumerationLattice classifies an expression of the named enumeration
// type.
func EnumerationLattice(name ident.ID) Lattice { return Lattice{Kind: EnumerationKind, Enum: name} }

// OpaqueLattice classifies an opaque byte-sequence expression.
func OpaqueLattice() Lattice { return Lattice{Kind: OpaqueKind} }

// AggregateLattice classifies an aggregate (byte-string literal)
// expression.
func AggregateLattice() Lattice { return Lattice{Kind: AggregateKind} }

// Accepts reports whether a value of lattice got may be used where l is
// expected. Any accepts everything; a BoundedInteger is accepted wherever
// a UniversalInteger or a wider BoundedInteger is expected; an
// Enumeration(id) is only accepted by Any or the identical Enumeration(id).
func (l Lattice) Accepts(got Lattice) bool {
	if l.Kind == Any {
		return true
	}
	if l.Kind != got.Kind {
		// A UniversalInteger literal is accepted wherever a
		// BoundedInteger is wanted, and vice versa: integer literals are
		// not yet committed to a specific scalar range.
		if (l.Kind == BoundedInteger && got.Kind == UniversalInteger) ||
			(l.Kind == UniversalInteger && got.Kind == BoundedInteger) {
			return true
		}
		return false
	}
	if l.Kind == EnumerationKind {
		return l.Enum.Equal(got.Enum)
	}
	if l.Kind == BoundedInteger {
		return got.LowerBound >= l.LowerBound && got.UpperBound <= l.UpperBound
	}
	return true
}

func (l Lattice) String() string {
	if l.Kind == EnumerationKind {
		return "Enumeration(" + l.Enum.String() + ")"
	}
	return l.Kind.String()
}
