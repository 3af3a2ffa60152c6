// Package verifier implements the seven-phase verification pipeline:
// typing, syntax, conflict, reachability, contradiction, coverage, and
// overlay. Phases run as an ordered rule batch: each Phase is a
// {Name, Apply} pair, and Phases lists them in the fixed execution
// order.
package verifier

import (
	"context"
	"time"

	"github.com/componolit/rflx-verify/diag"
	"github.com/componolit/rflx-verify/model"
	"github.com/componolit/rflx-verify/obligation"
	"github.com/componolit/rflx-verify/proof"
	"github.com/componolit/rflx-verify/smt"
)

// Phase is one stage of the verification pipeline. Apply returns true
// if the phase found a fatal problem that should stop later phases from
// running: typing and syntax errors are structural preconditions later
// phases assume hold, while phases 3-7 always all run regardless of
// each other's findings.
type Phase struct {
	Name  string
	Apply func(ctx context.Context, v *Verifier, m *model.Message, buf *diag.Buffer) (fatal bool)
}

// Phases lists the seven phases in their fixed execution order.
var Phases = []Phase{
	{Name: "typing", Apply: applyTyping},
	{Name: "syntax", Apply: applySyntax},
	{Name: "conflict", Apply: applyConflict},
	{Name: "reachability", Apply: applyReachability},
	{Name: "contradiction", Apply: applyContradiction},
	{Name: "coverage", Apply: applyCoverage},
	{Name: "overlay", Apply: applyOverlay},
}

// Verifier runs Phases against a Message, backed by a parallel proof
// Driver for the phases that need a solver (conflict, reachability,
// contradiction, coverage, overlay).
type Verifier struct {
	Backend smt.Backend
	Workers int
	Timeout time.Duration
}

// New builds a Verifier using backend with the given worker count and
// per-obligation solver timeout.
func New(backend smt.Backend, workers int, timeout time.Duration) *Verifier {
	return &Verifier{Backend: backend, Workers: workers, Timeout: timeout}
}

func (v *Verifier) driver() *proof.Driver {
	return &proof.Driver{Backend: v.Backend, Workers: v.Workers, Timeout: v.Timeout}
}

// Verify runs the full pipeline against m, returning the accumulated
// diagnostics. m is marked Proven if no ERROR diagnostic was raised.
func Verify(ctx context.Context, v *Verifier, m *model.Message) *diag.Buffer {
	buf := &diag.Buffer{}
	for _, phase := range Phases {
		fatal := phase.Apply(ctx, v, m, buf)
		if fatal {
			break
		}
	}
	m.Proven = !buf.HasErrors()
	return buf
}

// runObligations discharges obs through v's proof Driver, folding
// results into buf.
func (v *Verifier) runObligations(ctx context.Context, obs []*obligation.Obligation, buf *diag.Buffer) {
	if len(obs) == 0 {
		return
	}
	v.driver().Run(ctx, obs, buf)
}
