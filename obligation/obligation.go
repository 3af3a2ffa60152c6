// Package obligation builds proof obligations: one Formula per (path,
// property) pair, carrying the assumptions a solver needs along with
// the expected SAT/UNSAT verdict.
package obligation

import (
	"fmt"

	"github.com/componolit/rflx-verify/expr"
)

// Expected is the verdict a solver must return for the obligation to be
// considered discharged.
type Expected int

const (
	// ExpectUnsat means "Formula (with Assumptions) must be
	// unsatisfiable" — the usual shape for invariants like "this path's
	// conditions never contradict" proven by negating the invariant and
	// checking UNSAT.
	ExpectUnsat Expected = iota
	// ExpectSat means "Formula must be satisfiable" — used for
	// reachability obligations ("some input reaches this path").
	ExpectSat
)

func (e Expected) String() string {
	if e == ExpectSat {
		return "SAT"
	}
	return "UNSAT"
}

// Obligation is one formula to discharge against the SMT backend.
type Obligation struct {
	// Origin names the verifier phase and field/path that produced this
	// obligation, surfaced back in diagnostics on failure.
	Origin string
	// Path is the field-reference path this obligation concerns, for
	// diagnostic context, e.g. "on path A -> B -> C".
	Path []string
	// Assumptions are conjoined with Formula before handing off to the
	// solver.
	Assumptions []expr.Expr
	// Formula is negated before solving only when Negate is set, which
	// callers do for a property that must always hold, paired with
	// ExpectUnsat (the standard "prove P by showing not-P is UNSAT"
	// pattern).
	Formula  expr.Expr
	Negate   bool
	Expected Expected
}

// Query returns the actual expression to hand the solver: Formula,
// negated if Negate, conjoined with every Assumption.
func (o *Obligation) Query() expr.Expr {
	f := o.Formula
	if o.Negate {
		f = expr.NewNot(f)
	}
	terms := append([]expr.Expr{f}, o.Assumptions...)
	return expr.Simplify(expr.NewAnd(terms...))
}

func (o *Obligation) String() string {
	return fmt.Sprintf("%s[%v] expect %s: %s", o.Origin, o.Path, o.Expected, o.Query())
}
