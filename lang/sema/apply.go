package sema

import (
	"github.com/suru-lang/suru/lang/types"
)

// apply is phase 3: walk node_types, resolving every recorded type
// through the final substitution to a fixed point (spec.md §4.6 step 3).
// Var ids never get mutated in place in the registry — Resolve just
// follows the chain — so this only rewrites the Analyzer's own node→type
// map, which is the one thing external callers observe.
func (a *Analyzer) apply(sub types.Substitution) {
	for id, t := range a.nodeTypes {
		a.nodeTypes[id] = resolveFixedPoint(a.reg, sub, t)
	}
}

// resolveFixedPoint repeatedly resolves t through sub until the result
// stops changing, so a chain of variable-to-variable bindings collapses
// to its final concrete (or still-unbound) type.
func resolveFixedPoint(r *types.Registry, sub types.Substitution, t types.ID) types.ID {
	for {
		next := sub.Resolve(r, t)
		if next == t {
			return next
		}
		t = next
	}
}
