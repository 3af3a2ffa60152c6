package rftypes

import (
	"github.com/componolit/rflx-verify/diag"
	"github.com/componolit/rflx-verify/ident"
)

// Kind tags the closed variant set: ModularInteger, RangeInteger,
// Enumeration, Opaque, Sequence, Message.
type Kind int

const (
	ModularIntegerKind Kind = iota
	RangeIntegerKind
	EnumerationKindTag
	OpaqueKindTag
	SequenceKindTag
	MessageKindTag
)

// Type is the tagged variant of a declared type. Each carries its
// identifier, location, and an attached diagnostic buffer; the
// constructors in this file validate nothing and never write to it.
type Type struct {
	Kind Kind
	ID   ident.ID
	Loc  *ident.Location
	Diag diag.Buffer

	// ModularInteger
	Modulus int64

	// RangeInteger
	RangeFirst, RangeLast int64
	RangeSize             int64 // bits

	// Enumeration
	Literals    map[string]int64
	EnumSize    int64 // bits
	AlwaysValid bool

	// Sequence
	Element *Type

	// Message: types referencing a Message carry only the identifier;
	// the full graph lives in package model to avoid an import cycle
	// between rftypes and model. MessageRef is resolved by the model
	// package's field-type map.
	MessageRef ident.ID
}

// NewModularInteger constructs a ModularInteger{modulus} type. modulus
// must be a power of two in [2, 2^62]; callers validate this externally,
// since the core receives pre-typed input.
func NewModularInteger(id ident.ID, loc *ident.Location, modulus int64) *Type {
	return &Type{Kind: ModularIntegerKind, ID: id, Loc: loc, Modulus: modulus}
}

// NewRangeInteger constructs a RangeInteger{first, last, size} type.
func NewRangeInteger(id ident.ID, loc *ident.Location, first, last, size int64) *Type {
	return &Type{Kind: RangeIntegerKind, ID: id, Loc: loc, RangeFirst: first, RangeLast: last, RangeSize: size}
}

// NewEnumeration constructs an Enumeration{literal->value, size,
// always_valid} type.
func NewEnumeration(id ident.ID, loc *ident.Location, literals map[string]int64, size int64, alwaysValid bool) *Type {
	return &Type{Kind: EnumerationKindTag, ID: id, Loc: loc, Literals: literals, EnumSize: size, AlwaysValid: alwaysValid}
}

// NewOpaque constructs the Opaque type.
func NewOpaque(id ident.ID, loc *ident.Location) *Type {
	return &Type{Kind: OpaqueKindTag, ID: id, Loc: loc}
}

// NewSequence constructs a Sequence{element_type} type.
func NewSequence(id ident.ID, loc *ident.Location, element *Type) *Type {
	return &Type{Kind: SequenceKindTag, ID: id, Loc: loc, Element: element}
}

// NewMessageRef constructs a placeholder Type tagging a field as holding
// a nested message, identified by name; package model resolves it.
func NewMessageRef(ref ident.ID) *Type {
	return &Type{Kind: MessageKindTag, MessageRef: ref}
}

// IsScalar reports whether t is one of ModularInteger, RangeInteger, or
// Enumeration — the three types allowed for a parameter field.
func (t *Type) IsScalar() bool {
	switch t.Kind {
	case ModularIntegerKind, RangeIntegerKind, EnumerationKindTag:
		return true
	default:
		return false
	}
}

// IsComposite reports whether t is Opaque or Sequence.
func (t *Type) IsComposite() bool {
	return t.Kind == OpaqueKindTag || t.Kind == SequenceKindTag
}

// IsMessage reports whether t references a nested message type.
func (t *Type) IsMessage() bool { return t.Kind == MessageKindTag }

// FixedSize reports the type's fixed bit size and true, or (0, false) if
// the type has no statically known size (a Sequence of unbounded length,
// or Opaque).
func (t *Type) FixedSize() (int64, bool) {
	switch t.Kind {
	case ModularIntegerKind:
		return bitsForModulus(t.Modulus), true
	case RangeIntegerKind:
		return t.RangeSize, true
	case EnumerationKindTag:
		return t.EnumSize, true
	default:
		return 0, false
	}
}

// bitsForModulus returns the smallest bit width n (at least 1) with
// 2^n >= modulus, i.e. enough bits to represent [0, modulus).
func bitsForModulus(modulus int64) int64 {
	bits := int64(0)
	cap := int64(1)
	for cap < modulus {
		cap *= 2
		bits++
	}
	if bits == 0 {
		bits = 1
	}
	return bits
}

// Lattice returns the type's coarse check_type classification.
func (t *Type) Lattice() Lattice {
	switch t.Kind {
	case ModularIntegerKind:
		return BoundedIntegerLattice(0, t.Modulus-1)
	case RangeIntegerKind:
		return BoundedIntegerLattice(t.RangeFirst, t.RangeLast)
	case EnumerationKindTag:
		return EnumerationLattice(t.ID)
	case OpaqueKindTag, SequenceKindTag:
		return OpaqueLattice()
	default:
		return AnyLattice()
	}
}
