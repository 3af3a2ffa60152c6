// Package rferrors declares the error kinds (not exception types) used
// across the verification engine, grouped by category: Structural,
// Naming, Expression, Proof, and Merge. The verifier's phases,
// normalization and the merger raise these kinds, so collaborators can
// distinguish failure categories with Kind.Is; refinement validation and
// the model's own graph and size queries return plain errors instead.
package rferrors

import "gopkg.in/src-d/go-errors.v1"

// Structural errors: malformed identifiers, missing types, ambiguous
// first field, duplicate links, unreachable fields, cycles.
var (
	ErrMalformedIdentifier  = errors.NewKind("malformed identifier %q")
	ErrMissingType          = errors.NewKind("no type declared for field %q")
	ErrUnknownEndpoint      = errors.NewKind("link endpoint %q is neither INITIAL, FINAL, nor a declared field")
	ErrAmbiguousFirst       = errors.NewKind("ambiguous first field")
	ErrDuplicateLink        = errors.NewKind("duplicate link %s -> %s")
	ErrUnreachableField     = errors.NewKind("unreachable field %q")
	ErrFieldWithoutPath     = errors.NewKind("field %q has no path to FINAL")
	ErrCycle                = errors.NewKind("structure contains cycle")
	ErrAmbiguousImplicitSize = errors.NewKind("ambiguous implicit size of %q: the field is not always followed directly by FINAL")
	ErrInvalidParameter     = errors.NewKind("parameter %q must have scalar, non-always-valid type")
)

// Naming errors: field/literal collisions, illegal redefinitions of
// built-ins, reserved-word use.
var (
	ErrFieldLiteralCollision = errors.NewKind("field %q collides with enumeration literal %q")
	ErrReservedWord          = errors.NewKind("identifier %q uses a reserved word")
	ErrNameConflict          = errors.NewKind("field %q conflicts with inlined field %q")
)

// Expression errors: invalid attribute use, unsupported variable in
// exponent, aggregate length mismatch, type mismatch.
var (
	ErrInvalidAttributeUse  = errors.NewKind("%s attribute is not valid on %q")
	ErrInvalidFirstValue    = errors.NewKind("first aspect must be a First(...) attribute, got %s")
	ErrSizeOnFixedSize      = errors.NewKind("size aspect given for fixed-size field %q")
	ErrMissingSize          = errors.NewKind("unconstrained composite field %q requires a size aspect")
	ErrSizeOnFinalLink      = errors.NewKind("size aspect is not allowed on a link into FINAL")
	ErrVariableInExponent   = errors.NewKind("variable %q is not allowed in an exponent")
	ErrAggregateLength      = errors.NewKind("aggregate length %d does not match expected length %d")
	ErrTypeMismatch         = errors.NewKind("expected type %s, got %s")
)

// Proof errors: conflicting conditions, unreachable path, contradicting
// condition, uncovered bit range, negative size/start, opaque alignment,
// size not a multiple of 8.
var (
	ErrConflictingConditions  = errors.NewKind("conflicting conditions on outgoing links of %q")
	ErrUnreachablePath        = errors.NewKind("no satisfiable path from %q to FINAL")
	ErrContradictingCondition = errors.NewKind("contradicting condition on link %s -> %s")
	ErrUncoveredBits          = errors.NewKind("bit range is not covered exactly once on path ending at %q")
	ErrNegativeSize           = errors.NewKind("size of %q may be negative")
	ErrNegativeFirst          = errors.NewKind("first of %q may be before First(Message)")
	ErrOpaqueAlignment        = errors.NewKind("opaque field %q is not byte-aligned or its size is not a multiple of 8")
	ErrSizeNotByteMultiple    = errors.NewKind("Size(Message) is not a multiple of 8 on at least one path")
	ErrSolverUnknown          = errors.NewKind("obligation %s yielded UNKNOWN (solver timeout)")
	ErrOverlayMismatch        = errors.NewKind("overlay at %q does not end where %q ends")
)

// Merge errors: message attribute in non-final position, name conflict on
// inline, empty result.
var (
	ErrMergeMessageRefNotLast = errors.NewKind("messages with reference to \"Message\" may only be used for last fields")
	ErrMergeNameConflict      = errors.NewKind("inlining %q introduces a name conflict with %q")
	ErrMergeEmptyResult       = errors.NewKind("merge of %q produced an empty message")
	ErrMergeUnresolvedField   = errors.NewKind("field %q has no resolvable message type")
	ErrDerivedFromDerived     = errors.NewKind("message %q cannot be derived: its base %q is itself derived")
)
