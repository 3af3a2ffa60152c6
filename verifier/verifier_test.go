package verifier_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/componolit/rflx-verify/ident"
	"github.com/componolit/rflx-verify/model"
	"github.com/componolit/rflx-verify/rftypes"
	"github.com/componolit/rflx-verify/smt"
	"github.com/componolit/rflx-verify/verifier"
)

func newVerifier() *verifier.Verifier {
	return verifier.New(&smt.Fake{}, 4, 0)
}

func twoFieldModular() *model.Message {
	byteType := rftypes.NewModularInteger(ident.New("Byte"), nil, 256)
	a := &model.Field{Name: ident.New("A"), Type: byteType}
	b := &model.Field{Name: ident.New("B"), Type: byteType}
	types := map[string]*rftypes.Type{"A": byteType, "B": byteType}
	structure := []*model.Link{
		model.NewLink(model.INITIAL, a),
		model.NewLink(a, b),
		model.NewLink(b, model.FINAL),
	}
	return model.New(ident.New("Msg"), nil, structure, types)
}

// singleOpaqueField builds a message whose one field carries no scalar
// type constraint and no resolvable size — so the obligations the
// Fake backend faces reduce purely to the literal path condition (True)
// and it can actually discharge them, unlike a message with typed scalar
// fields (smt.Fake can only decide a formula that simplifies to a
// constant; it cannot reason about a free BoundedInteger variable).
func singleOpaqueField() *model.Message {
	opaque := rftypes.NewOpaque(ident.New("Payload"), nil)
	payload := &model.Field{Name: ident.New("Payload"), Type: opaque}
	structure := []*model.Link{
		model.NewLink(model.INITIAL, payload),
		model.NewLink(payload, model.FINAL),
	}
	return model.New(ident.New("Msg"), nil, structure, map[string]*rftypes.Type{"Payload": opaque})
}

func TestVerifyProvesMessageWhoseObligationsReduceToLiterals(t *testing.T) {
	r := require.New(t)
	m := singleOpaqueField()
	buf := verifier.Verify(context.Background(), newVerifier(), m)
	r.False(buf.HasErrors())
	r.True(m.Proven)
}

func TestVerifyReportsSolverUnknownWhenFactsAreNotGroundTerms(t *testing.T) {
	r := require.New(t)
	// A scalar field's type-range fact ("A >= 0 and A <= 255") mentions a
	// free variable the Fake backend cannot decide, so the reachability
	// obligation for this otherwise entirely unconditional message comes
	// back UNKNOWN rather than SAT.
	m := twoFieldModular()
	buf := verifier.Verify(context.Background(), newVerifier(), m)
	r.True(buf.HasErrors())
	r.False(m.Proven)
}

func TestVerifyFailsSyntaxWhenFieldHasNoDeclaredType(t *testing.T) {
	r := require.New(t)
	a := &model.Field{Name: ident.New("A")} // no Type
	structure := []*model.Link{
		model.NewLink(model.INITIAL, a),
		model.NewLink(a, model.FINAL),
	}
	m := model.New(ident.New("Msg"), nil, structure, map[string]*rftypes.Type{})
	buf := verifier.Verify(context.Background(), newVerifier(), m)
	r.True(buf.HasErrors())
	r.False(m.Proven)
}

func TestVerifyFlagsUnreachableField(t *testing.T) {
	r := require.New(t)
	byteType := rftypes.NewModularInteger(ident.New("Byte"), nil, 256)
	a := &model.Field{Name: ident.New("A"), Type: byteType}
	orphan := &model.Field{Name: ident.New("Orphan"), Type: byteType}
	types := map[string]*rftypes.Type{"A": byteType, "Orphan": byteType}
	structure := []*model.Link{
		model.NewLink(model.INITIAL, a),
		model.NewLink(a, model.FINAL),
		// Orphan has an outgoing link but nothing ever links into it.
		model.NewLink(orphan, model.FINAL),
	}
	m := model.New(ident.New("Msg"), nil, structure, types)
	buf := verifier.Verify(context.Background(), newVerifier(), m)
	r.True(buf.HasErrors())
}

func TestVerifyFlagsCycleAsFatalSyntaxError(t *testing.T) {
	r := require.New(t)
	byteType := rftypes.NewModularInteger(ident.New("Byte"), nil, 256)
	a := &model.Field{Name: ident.New("A"), Type: byteType}
	b := &model.Field{Name: ident.New("B"), Type: byteType}
	types := map[string]*rftypes.Type{"A": byteType, "B": byteType}
	structure := []*model.Link{
		model.NewLink(model.INITIAL, a),
		model.NewLink(a, b),
		model.NewLink(b, a),
	}
	m := model.New(ident.New("Msg"), nil, structure, types)
	buf := verifier.Verify(context.Background(), newVerifier(), m)
	r.True(buf.HasErrors())
	r.False(m.Proven)
}

func TestVerifyFlagsConflictingOutgoingConditions(t *testing.T) {
	r := require.New(t)
	byteType := rftypes.NewModularInteger(ident.New("Byte"), nil, 256)
	tag := &model.Field{Name: ident.New("Tag"), Type: byteType}
	b := &model.Field{Name: ident.New("B"), Type: byteType}
	c := &model.Field{Name: ident.New("C"), Type: byteType}
	types := map[string]*rftypes.Type{"Tag": byteType, "B": byteType, "C": byteType}

	// Both outgoing links from Tag share the identical always-true
	// condition, so they necessarily conflict: more than one branch can
	// always be taken simultaneously. This obligation's Formula carries no
	// Assumptions, so the Fake backend can decide it outright.
	toB := model.NewLink(tag, b)
	toC := model.NewLink(tag, c)
	structure := []*model.Link{
		model.NewLink(model.INITIAL, tag),
		toB,
		toC,
		model.NewLink(b, model.FINAL),
		model.NewLink(c, model.FINAL),
	}
	m := model.New(ident.New("Msg"), nil, structure, types)
	buf := verifier.Verify(context.Background(), newVerifier(), m)
	r.True(buf.HasErrors())
}

func TestValidateRefinementRejectsUnknownField(t *testing.T) {
	r := require.New(t)
	outer := twoFieldModular()
	inner := twoFieldModular()
	ref := model.NewRefinement(ident.New("NoSuchField"), inner)
	buf := verifier.ValidateRefinement(context.Background(), newVerifier(), outer, ref)
	r.True(buf.HasErrors())
}

func TestValidateRefinementRejectsNonCompositeField(t *testing.T) {
	r := require.New(t)
	outer := twoFieldModular()
	inner := twoFieldModular()
	inner.Proven = true
	ref := model.NewRefinement(ident.New("A"), inner) // A is Modular, not composite
	buf := verifier.ValidateRefinement(context.Background(), newVerifier(), outer, ref)
	r.True(buf.HasErrors())
}

func TestValidateRefinementRejectsUnprovenInnerMessage(t *testing.T) {
	r := require.New(t)
	opaque := rftypes.NewOpaque(ident.New("Payload"), nil)
	payload := &model.Field{Name: ident.New("Payload"), Type: opaque}
	outer := model.New(ident.New("Outer"), nil, []*model.Link{
		model.NewLink(model.INITIAL, payload),
		model.NewLink(payload, model.FINAL),
	}, map[string]*rftypes.Type{"Payload": opaque})

	inner := twoFieldModular() // never run through Verify, so Proven is false
	ref := model.NewRefinement(ident.New("Payload"), inner)
	buf := verifier.ValidateRefinement(context.Background(), newVerifier(), outer, ref)
	r.True(buf.HasErrors())
}

func TestValidateRefinementAcceptsProvenCompositeRefinement(t *testing.T) {
	r := require.New(t)
	opaque := rftypes.NewOpaque(ident.New("Payload"), nil)
	payload := &model.Field{Name: ident.New("Payload"), Type: opaque}
	outer := model.New(ident.New("Outer"), nil, []*model.Link{
		model.NewLink(model.INITIAL, payload),
		model.NewLink(payload, model.FINAL),
	}, map[string]*rftypes.Type{"Payload": opaque})

	inner := singleOpaqueField()
	inner.Proven = true
	ref := model.NewRefinement(ident.New("Payload"), inner)
	buf := verifier.ValidateRefinement(context.Background(), newVerifier(), outer, ref)
	r.False(buf.HasErrors())
}
