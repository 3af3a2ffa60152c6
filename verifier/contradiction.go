package verifier

import (
	"context"

	"github.com/componolit/rflx-verify/diag"
	"github.com/componolit/rflx-verify/expr"
	"github.com/componolit/rflx-verify/model"
	"github.com/componolit/rflx-verify/obligation"
)

// applyContradiction proves that every link's own condition is
// consistent with the facts accumulated along the path leading to it
// (ErrContradictingCondition): a link whose condition always
// contradicts its prefix's facts can never be traversed, distinct from
// applyReachability's whole-path check in that it isolates exactly
// which link in an otherwise-reachable path is responsible.
func applyContradiction(ctx context.Context, v *Verifier, m *model.Message, buf *diag.Buffer) bool {
	builder := obligation.NewBuilder(m)
	var obs []*obligation.Obligation
	for _, f := range append(m.Fields(), model.INITIAL) {
		for _, l := range m.Outgoing(f) {
			prefix := prefixPath(m, f)
			obs = append(obs, &obligation.Obligation{
				Origin:      "contradiction",
				Path:        append(pathNames(prefix), l.Target.Name.String()),
				Assumptions: builder.Facts(prefix),
				Formula:     expr.NewAnd(model.PathCondition(prefix), l.Condition),
				Expected:    obligation.ExpectSat,
			})
		}
	}
	v.runObligations(ctx, obs, buf)
	return false
}

// prefixPath returns an arbitrary INITIAL-to-f path, used as context for
// checking one of f's outgoing links in isolation.
func prefixPath(m *model.Message, f *model.Field) []*model.Link {
	paths := m.Paths(f)
	if len(paths) == 0 {
		return nil
	}
	return paths[0]
}
