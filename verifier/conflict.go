package verifier

import (
	"context"

	"github.com/componolit/rflx-verify/diag"
	"github.com/componolit/rflx-verify/expr"
	"github.com/componolit/rflx-verify/model"
	"github.com/componolit/rflx-verify/obligation"
)

// applyConflict proves that no field has two outgoing links whose
// conditions can hold simultaneously (ErrConflictingConditions): for
// every field with more than one outgoing link, the pairwise
// conjunction of any two conditions must be UNSAT.
func applyConflict(ctx context.Context, v *Verifier, m *model.Message, buf *diag.Buffer) bool {
	var obs []*obligation.Obligation
	for _, f := range append(m.Fields(), model.INITIAL) {
		out := m.Outgoing(f)
		if len(out) < 2 {
			continue
		}
		var pairs []expr.Expr
		for i := 0; i < len(out); i++ {
			for j := i + 1; j < len(out); j++ {
				pairs = append(pairs, expr.NewAnd(out[i].Condition, out[j].Condition))
			}
		}
		obs = append(obs, &obligation.Obligation{
			Origin:   "conflict",
			Path:     []string{f.Name.String()},
			Formula:  expr.NewOr(pairs...),
			Expected: obligation.ExpectUnsat,
		})
	}
	v.runObligations(ctx, obs, buf)
	return false
}
