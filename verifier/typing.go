package verifier

import (
	"context"

	"github.com/componolit/rflx-verify/diag"
	"github.com/componolit/rflx-verify/expr"
	"github.com/componolit/rflx-verify/model"
	"github.com/componolit/rflx-verify/rferrors"
	"github.com/componolit/rflx-verify/rftypes"
)

// applyTyping runs expr.CheckType over every link's condition, size,
// and first expression, plus every checksum's covered references,
// demanding each one type-checks. A typing failure is fatal: later
// phases assume every expression already resolves to a lattice.
func applyTyping(ctx context.Context, v *Verifier, m *model.Message, buf *diag.Buffer) bool {
	env := m.TypeEnv()
	fatal := false
	check := func(e expr.Expr, want rftypes.Lattice) {
		if e == nil || expr.IsUndefined(e) {
			return
		}
		got, err := expr.CheckType(e, env)
		if err != nil {
			buf.Errorf("verifier.typing", nil, rferrors.ErrTypeMismatch.New(want.String(), err.Error()))
			fatal = true
			return
		}
		if !want.Accepts(got) {
			buf.Errorf("verifier.typing", nil, rferrors.ErrTypeMismatch.New(want.String(), got.String()))
			fatal = true
		}
	}
	for _, l := range m.Structure {
		check(l.Condition, rftypes.AnyLattice())
		check(l.Size, rftypes.UniversalIntegerLattice())
		check(l.First, rftypes.UniversalIntegerLattice())
	}
	for _, covered := range m.Checksums {
		for _, c := range covered {
			check(c, rftypes.AnyLattice())
		}
	}
	return fatal
}
