package proof_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/componolit/rflx-verify/diag"
	"github.com/componolit/rflx-verify/expr"
	"github.com/componolit/rflx-verify/obligation"
	"github.com/componolit/rflx-verify/proof"
	"github.com/componolit/rflx-verify/smt"
)

func TestRunReportsNoDiagnosticWhenVerdictMatchesExpected(t *testing.T) {
	r := require.New(t)
	d := &proof.Driver{Backend: &smt.Fake{}, Workers: 2}
	obs := []*obligation.Obligation{
		{Origin: "reachability", Formula: expr.NewTrue(), Expected: obligation.ExpectSat},
		{Origin: "conflict", Formula: expr.NewFalse(), Expected: obligation.ExpectUnsat},
	}
	buf := &diag.Buffer{}
	d.Run(context.Background(), obs, buf)
	r.False(buf.HasErrors())
}

func TestRunReportsDiagnosticOnVerdictMismatch(t *testing.T) {
	r := require.New(t)
	d := &proof.Driver{Backend: &smt.Fake{}, Workers: 2}
	obs := []*obligation.Obligation{
		{Origin: "reachability", Path: []string{"A"}, Formula: expr.NewFalse(), Expected: obligation.ExpectSat},
	}
	buf := &diag.Buffer{}
	d.Run(context.Background(), obs, buf)
	r.True(buf.HasErrors())
}

func TestRunReportsSolverUnknownAsDiagnostic(t *testing.T) {
	r := require.New(t)
	d := &proof.Driver{Backend: &smt.Fake{}, Workers: 1}
	unresolved := &obligation.Obligation{
		Origin:   "reachability",
		Path:     []string{"A"},
		Formula:  expr.NewAdd(expr.NewNumber(1), expr.NewNumber(1)),
		Expected: obligation.ExpectSat,
	}
	buf := &diag.Buffer{}
	d.Run(context.Background(), []*obligation.Obligation{unresolved}, buf)
	r.True(buf.HasErrors())
}

func TestRunPreservesSubmissionOrderRegardlessOfCompletionOrder(t *testing.T) {
	r := require.New(t)
	d := &proof.Driver{Backend: &smt.Fake{}, Workers: 8}
	obs := make([]*obligation.Obligation, 0, 20)
	for i := 0; i < 20; i++ {
		obs = append(obs, &obligation.Obligation{
			Origin:   "reachability",
			Path:     []string{fmt.Sprintf("F%d", i)},
			Formula:  expr.NewFalse(),
			Expected: obligation.ExpectSat,
		})
	}
	buf := &diag.Buffer{}
	d.Run(context.Background(), obs, buf)
	entries := buf.Entries()
	r.Len(entries, 20)
	for i, e := range entries {
		r.Contains(e.Message, fmt.Sprintf("%q", fmt.Sprintf("F%d", i)))
	}
}

func TestRunDefaultsToOneWorkerWhenUnset(t *testing.T) {
	r := require.New(t)
	d := &proof.Driver{Backend: &smt.Fake{}}
	obs := []*obligation.Obligation{
		{Origin: "conflict", Formula: expr.NewFalse(), Expected: obligation.ExpectUnsat},
	}
	buf := &diag.Buffer{}
	r.NotPanics(func() { d.Run(context.Background(), obs, buf) })
	r.False(buf.HasErrors())
}
