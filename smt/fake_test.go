package smt_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/componolit/rflx-verify/expr"
	"github.com/componolit/rflx-verify/ident"
	"github.com/componolit/rflx-verify/smt"
)

func TestFakeSolvesConstantTrueAndFalse(t *testing.T) {
	r := require.New(t)
	f := &smt.Fake{}

	res, err := f.Solve(context.Background(), expr.NewTrue())
	r.NoError(err)
	r.Equal(smt.Sat, res)

	res, err = f.Solve(context.Background(), expr.NewFalse())
	r.NoError(err)
	r.Equal(smt.Unsat, res)
}

func TestFakeReturnsUnknownForUnresolvedFormula(t *testing.T) {
	r := require.New(t)
	f := &smt.Fake{}
	res, err := f.Solve(context.Background(), expr.NewVariable(ident.New("X")))
	r.NoError(err)
	r.Equal(smt.Unknown, res)
}

func TestFakeOverrideTakesPriorityOverSimplification(t *testing.T) {
	r := require.New(t)
	formula := expr.NewTrue()
	f := &smt.Fake{Override: map[string]smt.Result{formula.String(): smt.Unsat}}
	res, err := f.Solve(context.Background(), formula)
	r.NoError(err)
	r.Equal(smt.Unsat, res)
}

func TestFakeRespectsContextCancellation(t *testing.T) {
	r := require.New(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	f := &smt.Fake{}
	_, err := f.Solve(ctx, expr.NewTrue())
	r.Error(err)
}
