package expr

// Substitute rewrites every node of e for which fn returns (replacement,
// true), top-down: fn sees a node before its children, and a replaced
// node's subtree is neither visited nor re-entered: substitution is
// simultaneous, with no re-substitution of results, and order
// independent. fn is only ever asked about the original tree, so two
// mapping entries can never interact with each other's output.
func Substitute(e Expr, fn func(Expr) (Expr, bool)) Expr {
	if e == nil {
		return nil
	}
	if repl, ok := fn(e); ok {
		return repl
	}
	children := e.Children()
	if len(children) == 0 {
		return e
	}
	newChildren := make([]Expr, len(children))
	changed := false
	for i, c := range children {
		nc := Substitute(c, fn)
		newChildren[i] = nc
		if nc != c {
			changed = true
		}
	}
	if !changed {
		return e
	}
	out, err := e.WithChildren(newChildren...)
	if err != nil {
		// WithChildren only fails on arity mismatches, which Substitute
		// never introduces (it always passes back len(children)
		// elements); a failure here means a WithChildren implementation
		// is broken, which is a programming error worth surfacing loudly
		// rather than silently dropping the rewrite.
		panic(err)
	}
	return out
}

// SubstituteVariables replaces every Variable whose name is a key of
// mapping with the corresponding expression. Mapping keys are names —
// here, the String() form of an ident.ID — and the replacement is
// simultaneous.
func SubstituteVariables(e Expr, mapping map[string]Expr) Expr {
	return Substitute(e, func(n Expr) (Expr, bool) {
		v, ok := n.(*Variable)
		if !ok {
			return nil, false
		}
		repl, ok := mapping[v.Name.String()]
		return repl, ok
	})
}
