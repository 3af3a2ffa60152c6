package model

import (
	"github.com/componolit/rflx-verify/expr"
	"github.com/componolit/rflx-verify/ident"
)

// Refinement declares that Field of some outer message, when Condition
// holds, should be reinterpreted as an instance of Message. Refinements
// are validated independently of Verify, not folded into the outer
// message's own proof run.
type Refinement struct {
	Field     ident.ID
	Message   *Message
	Condition expr.Expr
}

// NewRefinement builds a Refinement with a True condition by default.
func NewRefinement(field ident.ID, message *Message) *Refinement {
	return &Refinement{Field: field, Message: message, Condition: expr.NewTrue()}
}
