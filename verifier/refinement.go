package verifier

import (
	"context"
	"fmt"

	"github.com/componolit/rflx-verify/diag"
	"github.com/componolit/rflx-verify/model"
)

func unknownRefinementField(name string) error {
	return fmt.Errorf("refinement: field %q does not exist on the outer message", name)
}

func nonOpaqueRefinementField(name string) error {
	return fmt.Errorf("refinement: field %q is not a composite field and cannot be refined", name)
}

func unprovenRefinementTarget(name string) error {
	return fmt.Errorf("refinement: message %q has not been proven", name)
}

// ValidateRefinement checks a Refinement independently of Verify
// (SPEC_FULL.md §3 supplement): the refined field must exist on the
// outer message, must be a composite field (Opaque or Sequence; scalar
// fields cannot be reinterpreted as a nested message), and the refining
// message must
// itself already be Proven.
func ValidateRefinement(ctx context.Context, v *Verifier, outer *model.Message, r *model.Refinement) *diag.Buffer {
	buf := &diag.Buffer{}
	field := fieldNamed(outer, r.Field.String())
	if field == nil {
		buf.Errorf("verifier.refinement", nil, unknownRefinementField(r.Field.String()))
		return buf
	}
	if field.Type == nil || !field.Type.IsComposite() {
		buf.Errorf("verifier.refinement", nil, nonOpaqueRefinementField(r.Field.String()))
		return buf
	}
	if !r.Message.Proven {
		buf.Errorf("verifier.refinement", nil, unprovenRefinementTarget(r.Message.ID.String()))
	}
	return buf
}
