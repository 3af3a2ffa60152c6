package merge

import (
	"github.com/componolit/rflx-verify/expr"
	"github.com/componolit/rflx-verify/ident"
	"github.com/componolit/rflx-verify/model"
	"github.com/componolit/rflx-verify/rftypes"
)

// prefixFields returns a copy of inner whose non-sentinel fields and
// every internal reference to them carry prefix, along with the field
// inner's INITIAL link targets (its "first field").
func prefixFields(inner *model.Message, prefix string) (*model.Message, *model.Field) {
	rename := func(name ident.ID) ident.ID { return name.WithPrefix(prefix) }

	renameExpr := func(e expr.Expr) expr.Expr {
		if e == nil {
			return nil
		}
		return expr.Substitute(e, func(n expr.Expr) (expr.Expr, bool) {
			v, ok := n.(*expr.Variable)
			if !ok || v.Name.String() == "Message" {
				return nil, false
			}
			if _, isField := inner.Types[v.Name.String()]; !isField {
				return nil, false
			}
			return expr.NewVariable(rename(v.Name)), true
		})
	}

	types := make(map[string]*rftypes.Type, len(inner.Types))
	for name, t := range inner.Types {
		newID := rename(ident.New(name))
		renamed := *t
		renamed.ID = newID
		types[newID.String()] = &renamed
	}

	structure := make([]*model.Link, len(inner.Structure))
	for i, l := range inner.Structure {
		nl := &model.Link{
			Source:    renameField(l.Source, rename),
			Target:    renameField(l.Target, rename),
			Condition: renameExpr(l.Condition),
			Size:      renameExpr(l.Size),
			First:     renameExpr(l.First),
		}
		structure[i] = nl
	}

	prefixed := model.New(inner.ID, inner.Loc, structure, types)
	prefixed.ByteOrder = inner.ByteOrder

	var firstField *model.Field
	for _, l := range structure {
		if l.Source == model.INITIAL {
			firstField = l.Target
			break
		}
	}
	return prefixed, firstField
}

func renameField(f *model.Field, rename func(ident.ID) ident.ID) *model.Field {
	if f.IsSentinel() {
		return f
	}
	newID := rename(f.Name)
	return &model.Field{Name: newID, Type: f.Type}
}

// rewriteAttributeReferences rewrites the inlined message's own
// whole-message attribute references: First(Message) becomes
// First(firstField), Size(Message) becomes Last(Message) - Last(INITIAL),
// and Last(Message) is left unchanged since it still denotes the outer
// message's end once rewired.
func rewriteAttributeReferences(m *model.Message, firstField *model.Field) {
	rewrite := func(e expr.Expr) expr.Expr {
		if e == nil {
			return nil
		}
		return expr.Substitute(e, func(n expr.Expr) (expr.Expr, bool) {
			switch attr := n.(type) {
			case *expr.First:
				if isMessageRef(attr.Prefix) {
					return expr.NewFirst(expr.NewVariable(firstField.Name)), true
				}
			case *expr.Size:
				if isMessageRef(attr.Prefix) {
					return expr.NewSub(
						expr.NewLast(expr.NewVariable(messageIdent)),
						expr.NewLast(expr.NewVariable(initialIdent)),
					), true
				}
			}
			return nil, false
		})
	}
	for _, l := range m.Structure {
		l.Condition = rewrite(l.Condition)
		l.Size = rewrite(l.Size)
		l.First = rewrite(l.First)
	}
}

var messageIdent = ident.New("Message")
var initialIdent = ident.New("INITIAL")

// rewireLinks rewires outer links into f to inner's first field, and
// produces outer links out of f once per inner link into FINAL.
func rewireLinks(outer *model.Message, f *model.Field, inner *model.Message, firstField *model.Field) []*model.Link {
	innerEntry := soleEntryLink(inner)
	var out []*model.Link
	for _, l := range outer.Structure {
		switch {
		case l.Target == f:
			condition := l.Condition
			size := l.Size
			if innerEntry != nil {
				condition = expr.Simplify(expr.NewAnd(l.Condition, innerEntry.Condition))
				size = innerEntry.Size
			}
			out = append(out, &model.Link{
				Source:    l.Source,
				Target:    firstField,
				Condition: condition,
				Size:      size,
				First:     l.First,
			})
		case l.Source == f:
			for _, innerLast := range inner.Incoming(model.FINAL) {
				out = append(out, &model.Link{
					Source:    innerLast.Source,
					Target:    l.Target,
					Condition: expr.Simplify(expr.NewAnd(l.Condition, innerLast.Condition)),
					Size:      substituteLastOfF(l.Size, f, innerLast.Source),
					First:     l.First,
				})
			}
		default:
			out = append(out, l)
		}
	}
	out = append(out, nonFinalInnerLinks(inner)...)
	return out
}

// soleEntryLink returns inner's single INITIAL-outgoing link, the one
// declaring its first field's own size/condition: f's replacement link
// inherits this entry link's size and condition, while keeping the
// outer link's own First.
func soleEntryLink(inner *model.Message) *model.Link {
	entries := inner.Outgoing(model.INITIAL)
	if len(entries) == 0 {
		return nil
	}
	return entries[0]
}

func nonFinalInnerLinks(inner *model.Message) []*model.Link {
	var out []*model.Link
	for _, l := range inner.Structure {
		if l.Source == model.INITIAL || l.Target == model.FINAL {
			continue
		}
		out = append(out, l)
	}
	return out
}

// substituteLastOfF replaces Last(F) in size with Last(innerLastSource):
// Last(F) in the outer size becomes Last(inner's final-link source).
func substituteLastOfF(size expr.Expr, f *model.Field, innerLastSource *model.Field) expr.Expr {
	if size == nil {
		return nil
	}
	return expr.Substitute(size, func(n expr.Expr) (expr.Expr, bool) {
		last, ok := n.(*expr.Last)
		if !ok {
			return nil, false
		}
		v, ok := last.Prefix.(*expr.Variable)
		if !ok || v.Name.String() != f.Name.String() {
			return nil, false
		}
		return expr.NewLast(expr.NewVariable(innerLastSource.Name)), true
	})
}
