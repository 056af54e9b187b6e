package sema

import (
	"github.com/suru-lang/suru/lang/diag"
	"github.com/suru-lang/suru/lang/token"
	"github.com/suru-lang/suru/lang/types"
)

// solve is phase 2: unify every collected constraint in emission order,
// composing substitutions as it goes. A unification failure is recorded
// as a diagnostic at the constraint's source position; analysis continues
// with whatever substitution was built so far (spec.md §4.6 step 2).
func (a *Analyzer) solve() types.Substitution {
	sub := types.Substitution{}
	for _, c := range a.constraints {
		next, err := types.Unify(a.reg, sub, c.A, c.B)
		if err != nil {
			pos := token.MakePos(c.Line, c.Column)
			if ue, ok := err.(*types.UnifyError); ok && ue.Infinite {
				a.diags.Add(diag.InfiniteType, pos, ue.Msg)
			} else {
				a.diags.Add(diag.TypeMismatch, pos, err.Error())
			}
			continue
		}
		sub = next
	}
	return sub
}
