package verifier

import (
	"context"

	"github.com/componolit/rflx-verify/diag"
	"github.com/componolit/rflx-verify/expr"
	"github.com/componolit/rflx-verify/model"
	"github.com/componolit/rflx-verify/obligation"
)

// applyOverlay proves that every checksum field's First position lines
// up with the end of the last field it covers (ErrOverlayMismatch): a
// checksum computed over the wrong byte range is a silent correctness
// bug a naive size check would miss.
func applyOverlay(ctx context.Context, v *Verifier, m *model.Message, buf *diag.Buffer) bool {
	builder := obligation.NewBuilder(m)
	var obs []*obligation.Obligation
	for name, covered := range m.Checksums {
		if len(covered) == 0 {
			continue
		}
		checksumField := fieldNamed(m, name)
		if checksumField == nil {
			continue
		}
		for _, path := range m.Paths(checksumField) {
			lastCovered := lastCoveredField(path, covered)
			if lastCovered == nil {
				continue
			}
			obs = append(obs, &obligation.Obligation{
				Origin:      "overlay",
				Path:        pathNames(path),
				Assumptions: builder.Facts(path),
				Formula: expr.NewEqual(
					expr.NewFirst(expr.NewVariable(checksumField.Name)),
					expr.NewAdd(expr.NewFirst(expr.NewVariable(lastCovered.Name)), mustSize(m, path, lastCovered)),
				),
				Expected: obligation.ExpectSat,
			})
		}
	}
	v.runObligations(ctx, obs, buf)
	return false
}

func fieldNamed(m *model.Message, name string) *model.Field {
	for _, f := range m.Fields() {
		if f.Name.String() == name {
			return f
		}
	}
	return nil
}

func lastCoveredField(path []*model.Link, covered []expr.Expr) *model.Field {
	names := map[string]bool{}
	for _, c := range covered {
		for _, n := range expr.Variables(c) {
			names[n.String()] = true
		}
	}
	var last *model.Field
	for _, l := range path {
		if names[l.Target.Name.String()] {
			last = l.Target
		}
	}
	return last
}

func mustSize(m *model.Message, path []*model.Link, f *model.Field) expr.Expr {
	for _, l := range path {
		if l.Target == f {
			if size, err := m.LinkSize(l); err == nil {
				return size
			}
		}
	}
	return expr.NewNumber(0)
}
