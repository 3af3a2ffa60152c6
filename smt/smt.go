// Package smt defines the solver-facing boundary: a narrow Backend
// interface so the proof driver never depends on a concrete solver
// binding, plus a deterministic fake backend used by tests.
package smt

import (
	"context"

	"github.com/componolit/rflx-verify/expr"
)

// Result is a solver's verdict for one query.
type Result int

const (
	Unknown Result = iota
	Sat
	Unsat
)

func (r Result) String() string {
	switch r {
	case Sat:
		return "SAT"
	case Unsat:
		return "UNSAT"
	default:
		return "UNKNOWN"
	}
}

// Backend decides the satisfiability of a single formula, with ctx
// governing cancellation and per-query timeout: a solver invocation
// that does not return within its timeout yields UNKNOWN, not an error.
type Backend interface {
	Solve(ctx context.Context, formula expr.Expr) (Result, error)
}
