// Package merge implements the message merger: inlining a message-typed
// field's referenced message into its outer message, producing a new
// unproven message for the caller to re-verify. Follows a
// transform-to-fixpoint idiom: rewrite rules re-run in a loop until no
// further rewrite occurs.
package merge

import (
	"github.com/componolit/rflx-verify/expr"
	"github.com/componolit/rflx-verify/ident"
	"github.com/componolit/rflx-verify/model"
	"github.com/componolit/rflx-verify/rferrors"
	"github.com/componolit/rflx-verify/rftypes"
)

// Resolver looks up the Message a field's MessageRef type names.
type Resolver func(ident.ID) (*model.Message, error)

// Merge repeatedly inlines the first message-typed field of outer (in
// Fields() order) until none remain, returning a new unproven message.
// Termination is guaranteed: each iteration strictly decreases the
// count of message-typed fields.
func Merge(outer *model.Message, resolve Resolver) (*model.Message, error) {
	current := outer
	for {
		field := firstMessageField(current)
		if field == nil {
			return current, nil
		}
		inner, err := resolve(field.Type.MessageRef)
		if err != nil {
			return nil, err
		}
		current, err = mergeOne(current, field, inner)
		if err != nil {
			return nil, err
		}
	}
}

func firstMessageField(m *model.Message) *model.Field {
	for _, f := range m.Fields() {
		if f.Type != nil && f.Type.IsMessage() {
			return f
		}
	}
	return nil
}

// mergeOne inlines inner at outer's field f.
func mergeOne(outer *model.Message, f *model.Field, inner *model.Message) (*model.Message, error) {
	if err := checkLegalInlining(outer, f, inner); err != nil {
		return nil, err
	}

	prefixed, firstField := prefixFields(inner, f.Name.String()+"_")
	rewriteAttributeReferences(prefixed, firstField)

	if err := checkNameConflicts(outer, f, prefixed); err != nil {
		return nil, err
	}

	structure := rewireLinks(outer, f, prefixed, firstField)

	types := make(map[string]*rftypes.Type, len(outer.Types)+len(prefixed.Types))
	for k, v := range outer.Types {
		if k != f.Name.String() {
			types[k] = v
		}
	}
	for k, v := range prefixed.Types {
		types[k] = v
	}

	merged := model.New(outer.ID, outer.Loc, structure, types)
	merged.ByteOrder = outer.ByteOrder
	merged.Checksums = outer.Checksums

	pruneDangling(merged)

	if len(merged.Fields()) == 0 {
		return nil, rferrors.ErrMergeEmptyResult.New(outer.ID.String())
	}
	return merged, nil
}

// checkLegalInlining rejects inlining a message with a "Message"
// attribute reference or an implicit-size link anywhere but the last
// field.
func checkLegalInlining(outer *model.Message, f *model.Field, inner *model.Message) error {
	isLastField := true
	for _, out := range outer.Outgoing(f) {
		if out.Target != model.FINAL {
			isLastField = false
			break
		}
	}
	if isLastField {
		return nil
	}
	for _, l := range inner.Structure {
		if len(expr.FindAll(l.Condition, isMessageRef)) > 0 || l.HasImplicitSize() {
			return rferrors.ErrMergeMessageRefNotLast.New()
		}
	}
	return nil
}

func isMessageRef(e expr.Expr) bool {
	v, ok := e.(*expr.Variable)
	return ok && v.Name.String() == "Message"
}

func checkNameConflicts(outer *model.Message, f *model.Field, prefixed *model.Message) error {
	outerNames := map[string]bool{}
	for _, of := range outer.Fields() {
		if of == f {
			continue
		}
		outerNames[of.Name.String()] = true
	}
	for _, inf := range prefixed.Fields() {
		if outerNames[inf.Name.String()] {
			return rferrors.ErrMergeNameConflict.New(inf.Name.String(), inf.Name.String())
		}
	}
	return nil
}

func pruneDangling(m *model.Message) {
	for {
		changed := false
		reachable := map[string]bool{model.INITIAL.Name.String(): true}
		for _, l := range m.Structure {
			if len(m.Incoming(l.Source)) > 0 || l.Source == model.INITIAL {
				reachable[l.Source.Name.String()] = true
			}
		}
		var kept []*model.Link
		for _, l := range m.Structure {
			if l.Source == model.INITIAL || reachable[l.Source.Name.String()] {
				kept = append(kept, l)
			} else {
				changed = true
			}
		}
		m.Structure = kept
		m.InvalidateCaches()
		if !changed {
			return
		}
	}
}
