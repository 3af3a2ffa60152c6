package verifier

import (
	"context"

	"github.com/componolit/rflx-verify/diag"
	"github.com/componolit/rflx-verify/expr"
	"github.com/componolit/rflx-verify/ident"
	"github.com/componolit/rflx-verify/model"
	"github.com/componolit/rflx-verify/obligation"
)

var messageIdent = ident.New("Message")

// applyCoverage proves that every path's fields account for exactly
// Size(Message) bits with nothing left over and nothing double-counted
// (ErrUncoveredBits): the sum of each link's resolved size along the
// path must equal the message's own Size(Message) attribute.
func applyCoverage(ctx context.Context, v *Verifier, m *model.Message, buf *diag.Buffer) bool {
	builder := obligation.NewBuilder(m)
	var obs []*obligation.Obligation
	for _, path := range m.Paths(model.FINAL) {
		sum := sumOfSizes(m, path)
		if sum == nil {
			continue
		}
		obs = append(obs, &obligation.Obligation{
			Origin:      "coverage",
			Path:        pathNames(path),
			Assumptions: builder.Facts(path),
			Formula:     expr.NewEqual(expr.NewSize(expr.NewVariable(messageIdent)), sum),
			Expected:    obligation.ExpectSat,
		})
	}
	v.runObligations(ctx, obs, buf)
	return false
}

func sumOfSizes(m *model.Message, path []*model.Link) expr.Expr {
	var total expr.Expr
	for _, l := range path {
		if l.Target == model.FINAL {
			continue
		}
		size, err := m.LinkSize(l)
		if err != nil {
			return nil
		}
		if total == nil {
			total = size
		} else {
			total = expr.NewAdd(total, size)
		}
	}
	if total == nil {
		return expr.NewNumber(0)
	}
	return total
}
