// Package sema implements suru's semantic analyzer: the three-phase walk
// & collect / solve / apply algorithm of spec.md §4.6, built directly on
// lang/ast's flat tree, lang/scope's scope stack and lang/types' type
// registry and unifier. There is no teacher equivalent for this package —
// the teacher's resolver only does name resolution, with no constraint
// collection or unification — so it is grounded on spec.md §4.6 plus the
// scope-stack idiom already adapted into lang/scope.
package sema

import (
	"github.com/suru-lang/suru/lang/ast"
	"github.com/suru-lang/suru/lang/diag"
	"github.com/suru-lang/suru/lang/scope"
	"github.com/suru-lang/suru/lang/token"
	"github.com/suru-lang/suru/lang/types"
)

// Result is analyze's successful-or-partial output: the annotated node
// types plus whatever diagnostics were recorded along the way (spec.md §6:
// `analyze(source) → (AST, [Diagnostic]) | [Diagnostic]`; a parse that
// reached the analyzer always has an AST, so Result always carries one).
type Result struct {
	Tree        *ast.Tree
	Registry    *types.Registry
	NodeTypes   map[ast.NodeID]types.ID
	Diagnostics []diag.Diagnostic
}

// Analyzer holds every collection the three phases share, all owned by a
// single invocation and released together at the end (spec.md §5).
type Analyzer struct {
	tree   *ast.Tree
	reg    *types.Registry
	scopes *scope.Stack
	diags  diag.Bag

	nodeTypes   map[ast.NodeID]types.ID
	constraints []types.Constraint

	returnStack []*returnFrame
	thisStack   []types.ID

	moduleDeclared bool
}

// Analyze runs the full pipeline over tree and returns the annotated
// result. tree is assumed to come from a successful (or partially
// recovered) parse; an AST that never finished parsing should not be
// passed in (spec.md §6).
func Analyze(tree *ast.Tree) *Result {
	a := &Analyzer{
		tree:      tree,
		reg:       types.NewRegistry(),
		scopes:    scope.NewStack(),
		nodeTypes: make(map[ast.NodeID]types.ID),
	}

	a.collect()
	sub := a.solve()
	a.apply(sub)

	return &Result{
		Tree:        tree,
		Registry:    a.reg,
		NodeTypes:   a.nodeTypes,
		Diagnostics: a.diags.All(),
	}
}

// collect is phase 1: a depth-first walk over the program's top-level
// statements, dispatched by node tag.
func (a *Analyzer) collect() {
	for _, id := range a.tree.Children(a.tree.Root()) {
		a.walkStmt(id)
	}
}

// constrain records an equality obligation to be solved in phase 2, in
// emission order (spec.md §5).
func (a *Analyzer) constrain(x, y types.ID, pos token.Pos) {
	if x == types.NoType || y == types.NoType {
		return
	}
	line, col := pos.LineCol()
	a.constraints = append(a.constraints, types.Constraint{A: x, B: y, Line: line, Column: col})
}

// recordType stashes the inferred type for an AST node, keyed for phase 3.
func (a *Analyzer) recordType(id ast.NodeID, t types.ID) types.ID {
	a.nodeTypes[id] = t
	return t
}

// node is a convenience so walkStmt bodies read the node once.
func (a *Analyzer) node(id ast.NodeID) ast.Node { return a.tree.Node(id) }

// identText returns the interned text of an Identifier/TypeAnnotation/etc
// terminal node.
func (a *Analyzer) identText(id ast.NodeID) string {
	return a.tree.Value(id).Raw
}

// resolveTypeRef resolves a TypeAnnotation node to a registry id: first the
// pseudo-builtin Void, then the builtin primitives, then user `type`
// declarations already registered; anything else is UndefinedTypeRef
// (spec.md §4.6.1: "reject unknown type references").
func (a *Analyzer) resolveTypeRef(id ast.NodeID) types.ID {
	name := a.identText(id)
	if name == "Void" {
		return a.reg.VoidID()
	}
	if tid, ok := a.reg.ResolveBuiltin(name); ok {
		return tid
	}
	if tid, ok := a.reg.LookupNamed(name); ok {
		return tid
	}
	a.diags.Addf(diag.UndefinedTypeRef, a.node(id).Pos, "undefined type %q", name)
	return a.reg.UnknownID()
}
