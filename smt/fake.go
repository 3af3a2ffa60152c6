package smt

import (
	"context"

	"github.com/componolit/rflx-verify/expr"
)

// Fake is a deterministic, solver-free Backend for tests: it evaluates a
// formula that has already been reduced to a constant True/False by
// expr.Simplify, and reports Unknown for anything else (standing in for
// "the real solver would need to reason about this"). It never blocks.
// Once ctx is done it returns Unknown: with a nil error when ctx's
// deadline has passed, as Backend specifies for a timeout, and with
// ctx's error when ctx was cancelled.
type Fake struct {
	// Override lets a test force a specific verdict for a query matching
	// a given rendered form, for scenarios expr.Simplify alone can't
	// resolve.
	Override map[string]Result
}

func (f *Fake) Solve(ctx context.Context, formula expr.Expr) (Result, error) {
	select {
	case <-ctx.Done():
		if ctx.Err() == context.DeadlineExceeded {
			return Unknown, nil
		}
		return Unknown, ctx.Err()
	default:
	}
	rendered := formula.String()
	if f.Override != nil {
		if r, ok := f.Override[rendered]; ok {
			return r, nil
		}
	}
	switch expr.Simplify(formula).(type) {
	case *expr.True:
		return Sat, nil
	case *expr.False:
		return Unsat, nil
	default:
		return Unknown, nil
	}
}
