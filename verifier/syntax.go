package verifier

import (
	"context"

	"github.com/componolit/rflx-verify/diag"
	"github.com/componolit/rflx-verify/model"
	"github.com/componolit/rflx-verify/rferrors"
)

// applySyntax checks the structural invariants: every field has a
// declared type, no two links are structurally identical, the
// structure graph is acyclic, every field is reachable from INITIAL,
// and every field has a path to FINAL. A failure here is fatal: every
// later phase assumes an acyclic graph with every field on some
// INITIAL-to-FINAL path.
func applySyntax(ctx context.Context, v *Verifier, m *model.Message, buf *diag.Buffer) bool {
	fatal := false

	for _, f := range m.Fields() {
		if f.Type == nil {
			buf.Errorf("verifier.syntax", nil, rferrors.ErrMissingType.New(f.Name.String()))
			fatal = true
		}
	}

	seen := map[uint64]bool{}
	for _, l := range m.Structure {
		h := l.Hash()
		if seen[h] {
			buf.Errorf("verifier.syntax", nil, rferrors.ErrDuplicateLink.New(l.Source.Name.String(), l.Target.Name.String()))
			fatal = true
		}
		seen[h] = true
	}

	if _, err := m.TopologicalOrder(); err != nil {
		buf.Errorf("verifier.syntax", nil, rferrors.ErrCycle.New())
		return true
	}

	reachable := map[string]bool{model.INITIAL.Name.String(): true}
	for _, f := range m.Fields() {
		if len(m.Incoming(f)) > 0 {
			reachable[f.Name.String()] = true
		}
	}
	for _, f := range m.Fields() {
		if !reachable[f.Name.String()] {
			buf.Errorf("verifier.syntax", nil, rferrors.ErrUnreachableField.New(f.Name.String()))
			fatal = true
		}
	}

	onPathToFinal := map[string]bool{}
	for _, path := range m.Paths(model.FINAL) {
		for _, l := range path {
			onPathToFinal[l.Source.Name.String()] = true
			onPathToFinal[l.Target.Name.String()] = true
		}
	}
	for _, f := range m.Fields() {
		if !onPathToFinal[f.Name.String()] {
			buf.Errorf("verifier.syntax", nil, rferrors.ErrFieldWithoutPath.New(f.Name.String()))
			fatal = true
		}
	}

	return fatal
}
