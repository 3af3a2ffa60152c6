package verifier

import (
	"context"

	"github.com/componolit/rflx-verify/diag"
	"github.com/componolit/rflx-verify/model"
	"github.com/componolit/rflx-verify/obligation"
)

// applyReachability proves that every path from INITIAL to FINAL is
// satisfiable under its own conditions and facts (ErrUnreachablePath):
// a path whose condition is UNSAT describes a layout no input can ever
// take.
func applyReachability(ctx context.Context, v *Verifier, m *model.Message, buf *diag.Buffer) bool {
	builder := obligation.NewBuilder(m)
	var obs []*obligation.Obligation
	for _, path := range m.Paths(model.FINAL) {
		obs = append(obs, &obligation.Obligation{
			Origin:      "reachability",
			Path:        pathNames(path),
			Assumptions: builder.Facts(path),
			Formula:     model.PathCondition(path),
			Expected:    obligation.ExpectSat,
		})
	}
	v.runObligations(ctx, obs, buf)
	return false
}

func pathNames(path []*model.Link) []string {
	out := make([]string, 0, len(path)+1)
	out = append(out, "INITIAL")
	for _, l := range path {
		out = append(out, l.Target.Name.String())
	}
	return out
}
