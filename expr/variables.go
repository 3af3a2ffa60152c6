package expr

import "github.com/componolit/rflx-verify/ident"

// Variables returns the set of free Variable names appearing in e,
// deduplicated, in first-occurrence order.
func Variables(e Expr) []ident.ID {
	var out []ident.ID
	seen := map[string]bool{}
	Inspect(e, func(n Expr) bool {
		if v, ok := n.(*Variable); ok {
			key := v.Name.String()
			if !seen[key] {
				seen[key] = true
				out = append(out, v.Name)
			}
		}
		return true
	})
	return out
}

// FindAll returns every subexpression of e (including e itself)
// satisfying pred, in pre-order.
func FindAll(e Expr, pred func(Expr) bool) []Expr {
	var out []Expr
	Inspect(e, func(n Expr) bool {
		if pred(n) {
			out = append(out, n)
		}
		return true
	})
	return out
}
