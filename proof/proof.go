// Package proof implements the parallel proof driver: a bounded worker
// pool that discharges a batch of obligations against an smt.Backend
// concurrently, then folds results back in deterministic submission
// order, hand-rolling the same sync.WaitGroup/buffered-channel shape
// used elsewhere for bounded concurrency rather than reaching for a
// worker-pool package.
package proof

import (
	"context"
	"sync"
	"time"

	"github.com/componolit/rflx-verify/diag"
	"github.com/componolit/rflx-verify/obligation"
	"github.com/componolit/rflx-verify/rferrors"
	"github.com/componolit/rflx-verify/smt"
)

// Driver discharges batches of obligations with bounded parallelism.
type Driver struct {
	Backend smt.Backend
	Workers int           // defaults to 1 if <= 0
	Timeout time.Duration // per-obligation solver timeout; 0 means no timeout
}

// outcome pairs a submission index with its obligation's result, so
// results can be folded back in the order they were submitted
// regardless of completion order: diagnostics must be emitted in the
// order obligations were submitted, not the order workers finished.
type outcome struct {
	index int
	ob    *obligation.Obligation
	res   smt.Result
	err   error
}

// Run discharges every obligation in obs against d.Backend, appending a
// diagnostic to buf for each one whose result doesn't match its
// Expected verdict (ErrSolverUnknown for a timed-out/UNKNOWN result).
func (d *Driver) Run(ctx context.Context, obs []*obligation.Obligation, buf *diag.Buffer) {
	workers := d.Workers
	if workers <= 0 {
		workers = 1
	}
	jobs := make(chan int, len(obs))
	results := make([]outcome, len(obs))

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				results[idx] = d.solveOne(ctx, idx, obs[idx])
			}
		}()
	}
	for i := range obs {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	for _, o := range results {
		d.report(o, buf)
	}
}

func (d *Driver) solveOne(ctx context.Context, idx int, ob *obligation.Obligation) outcome {
	solveCtx := ctx
	var cancel context.CancelFunc
	if d.Timeout > 0 {
		solveCtx, cancel = context.WithTimeout(ctx, d.Timeout)
		defer cancel()
	}
	res, err := d.Backend.Solve(solveCtx, ob.Query())
	return outcome{index: idx, ob: ob, res: res, err: err}
}

func (d *Driver) report(o outcome, buf *diag.Buffer) {
	if o.err != nil {
		buf.Errorf("proof", nil, o.err)
		return
	}
	if o.res == smt.Unknown {
		buf.Errorf("proof", nil, rferrors.ErrSolverUnknown.New(o.ob.String()))
		return
	}
	want := smt.Unsat
	if o.ob.Expected == obligation.ExpectSat {
		want = smt.Sat
	}
	if o.res != want {
		buf.Errorf("proof", nil, proofFailure(o.ob))
	}
}

func proofFailure(ob *obligation.Obligation) error {
	switch ob.Origin {
	case "reachability":
		return rferrors.ErrUnreachablePath.New(pathTail(ob.Path))
	case "conflict":
		return rferrors.ErrConflictingConditions.New(pathTail(ob.Path))
	case "contradiction":
		source := "<initial>"
		if len(ob.Path) >= 2 {
			source = ob.Path[len(ob.Path)-2]
		}
		return rferrors.ErrContradictingCondition.New(source, pathTail(ob.Path))
	case "coverage":
		return rferrors.ErrUncoveredBits.New(pathTail(ob.Path))
	default:
		return rferrors.ErrNegativeSize.New(pathTail(ob.Path))
	}
}

func pathTail(path []string) string {
	if len(path) == 0 {
		return "<initial>"
	}
	return path[len(path)-1]
}
