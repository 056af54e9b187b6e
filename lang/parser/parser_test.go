package parser_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/suru-lang/suru/lang/ast"
	"github.com/suru-lang/suru/lang/intern"
	"github.com/suru-lang/suru/lang/parser"
)

func mustParse(t *testing.T, src string) *ast.Tree {
	t.Helper()
	tree, err := parser.Parse("t.suru", []byte(src), intern.New(8), 0)
	require.NoError(t, err)
	return tree
}

func child(tr *ast.Tree, id ast.NodeID, n int) ast.NodeID {
	c, ok := tr.NthChild(id, n)
	if !ok {
		panic("no such child")
	}
	return c
}

// Scenario 1 (spec.md §8): `x: 42` -> Program[VarDecl[Identifier("x"),
// LiteralNumber("42")]]; no diagnostics.
func TestVarDeclNoAnnotation(t *testing.T) {
	tr := mustParse(t, "x: 42")

	require.Equal(t, 1, tr.ChildCount(tr.Root()))
	decl := child(tr, tr.Root(), 0)
	require.Equal(t, ast.VarDecl, tr.Node(decl).Tag)
	require.Equal(t, 2, tr.ChildCount(decl))

	name := child(tr, decl, 0)
	require.Equal(t, ast.Identifier, tr.Node(name).Tag)
	require.Equal(t, "x", tr.Value(name).Raw)

	val := child(tr, decl, 1)
	require.Equal(t, ast.LiteralNumber, tr.Node(val).Tag)
	require.Equal(t, int64(42), tr.Value(val).Int)
}

// Scenario 5 (spec.md §8): `flag Bool: 42 and true` carries an inline type
// annotation, so VarDecl gets a middle TypeAnnotation child.
func TestVarDeclWithAnnotation(t *testing.T) {
	tr := mustParse(t, "flag Bool: 42 and true")

	decl := child(tr, tr.Root(), 0)
	require.Equal(t, ast.VarDecl, tr.Node(decl).Tag)
	require.Equal(t, 3, tr.ChildCount(decl))

	ann := child(tr, decl, 1)
	require.Equal(t, ast.TypeAnnotation, tr.Node(ann).Tag)
	require.Equal(t, "Bool", tr.Value(ann).Raw)

	body := child(tr, decl, 2)
	require.Equal(t, ast.And, tr.Node(body).Tag)
}

// Scenario 2 (spec.md §8): a function declaration with a declared return
// type produces a 4-child FunctionDecl.
func TestFunctionDeclWithReturnType(t *testing.T) {
	tr := mustParse(t, "add: (a Number, b Number) Number { return a }")

	decl := child(tr, tr.Root(), 0)
	require.Equal(t, ast.FunctionDecl, tr.Node(decl).Tag)
	require.Equal(t, 4, tr.ChildCount(decl))

	params := child(tr, decl, 1)
	require.Equal(t, ast.ParamList, tr.Node(params).Tag)
	require.Equal(t, 2, tr.ChildCount(params))

	p0 := child(tr, params, 0)
	require.Equal(t, ast.Param, tr.Node(p0).Tag)
	require.Equal(t, 2, tr.ChildCount(p0))
	require.Equal(t, "a", tr.Value(child(tr, p0, 0)).Raw)
	require.Equal(t, "Number", tr.Value(child(tr, p0, 1)).Raw)

	ret := child(tr, decl, 2)
	require.Equal(t, ast.TypeAnnotation, tr.Node(ret).Tag)
	require.Equal(t, "Number", tr.Value(ret).Raw)

	body := child(tr, decl, 3)
	require.Equal(t, ast.Block, tr.Node(body).Tag)
	require.Equal(t, 1, tr.ChildCount(body))
	require.Equal(t, ast.ReturnStmt, tr.Node(child(tr, body, 0)).Tag)
}

// A function declaration with no declared return type collapses to 3
// children: name, params, body.
func TestFunctionDeclNoReturnType(t *testing.T) {
	tr := mustParse(t, "noop: () { return }")

	decl := child(tr, tr.Root(), 0)
	require.Equal(t, ast.FunctionDecl, tr.Node(decl).Tag)
	require.Equal(t, 3, tr.ChildCount(decl))
	require.Equal(t, ast.Block, tr.Node(child(tr, decl, 2)).Tag)
}

// Scenario 2 (spec.md §8) continued: a call expression at statement
// position is an ExprStmt wrapping a FunctionCall.
func TestCallExprStmt(t *testing.T) {
	tr := mustParse(t, "add(1, 2)")

	stmt := child(tr, tr.Root(), 0)
	require.Equal(t, ast.ExprStmt, tr.Node(stmt).Tag)
	call := child(tr, stmt, 0)
	require.Equal(t, ast.FunctionCall, tr.Node(call).Tag)
	args := child(tr, call, 1)
	require.Equal(t, ast.ArgList, tr.Node(args).Tag)
	require.Equal(t, 2, tr.ChildCount(args))
}

func TestAssignStmt(t *testing.T) {
	tr := mustParse(t, "x = 5")

	stmt := child(tr, tr.Root(), 0)
	require.Equal(t, ast.Assign, tr.Node(stmt).Tag)
	require.Equal(t, "x", tr.Value(child(tr, stmt, 0)).Raw)
}

func TestMethodCallChain(t *testing.T) {
	tr := mustParse(t, "a.b(1).c")

	stmt := child(tr, tr.Root(), 0)
	prop := child(tr, stmt, 0)
	require.Equal(t, ast.PropertyAccess, tr.Node(prop).Tag)
	method := child(tr, prop, 0)
	require.Equal(t, ast.MethodCall, tr.Node(method).Tag)
}

func TestMatchStatement(t *testing.T) {
	tr := mustParse(t, `match x {
  1 : return
  _ : return
}`)

	stmt := child(tr, tr.Root(), 0)
	require.Equal(t, ast.Match, tr.Node(stmt).Tag)
	require.Equal(t, 2, tr.ChildCount(stmt))

	arms := child(tr, stmt, 1)
	require.Equal(t, ast.MatchArms, tr.Node(arms).Tag)
	require.Equal(t, 2, tr.ChildCount(arms))

	arm0 := child(tr, arms, 0)
	require.Equal(t, ast.MatchArm, tr.Node(arm0).Tag)
	pat := child(tr, arm0, 0)
	require.Equal(t, ast.MatchPattern, tr.Node(pat).Tag)
}

func TestModuleDecl(t *testing.T) {
	tr := mustParse(t, "module A\nmodule .sub")

	require.Equal(t, 2, tr.ChildCount(tr.Root()))
	m0 := child(tr, tr.Root(), 0)
	require.Equal(t, ast.ModuleDecl, tr.Node(m0).Tag)
	path0 := child(tr, m0, 0)
	require.Equal(t, "A", tr.Value(path0).Raw)
	require.False(t, tr.HasFlag(path0, ast.IsSubmodule))

	m1 := child(tr, tr.Root(), 1)
	path1 := child(tr, m1, 0)
	require.Equal(t, "sub", tr.Value(path1).Raw)
	require.True(t, tr.HasFlag(path1, ast.IsSubmodule))
}

// Scenario 6 (spec.md §8): `type Point: { x Number, y Number }`.
func TestTypeDeclStruct(t *testing.T) {
	tr := mustParse(t, "type Point: { x Number, y Number }")

	decl := child(tr, tr.Root(), 0)
	require.Equal(t, ast.TypeDecl, tr.Node(decl).Tag)

	name := child(tr, decl, 0)
	require.Equal(t, ast.TypeName, tr.Node(name).Tag)
	require.Equal(t, "Point", tr.Value(child(tr, name, 0)).Raw)

	body := child(tr, decl, 1)
	require.Equal(t, ast.StructBody, tr.Node(body).Tag)
	require.Equal(t, 2, tr.ChildCount(body))

	f0 := child(tr, body, 0)
	require.Equal(t, ast.StructField, tr.Node(f0).Tag)
	require.Equal(t, "x", tr.Value(child(tr, f0, 0)).Raw)
	require.Equal(t, "Number", tr.Value(child(tr, f0, 1)).Raw)
}

func TestTypeDeclStructMethod(t *testing.T) {
	tr := mustParse(t, "type Greeter: { greet: (name Text) Text }")

	decl := child(tr, tr.Root(), 0)
	body := child(tr, decl, 1)
	method := child(tr, body, 0)
	require.Equal(t, ast.StructMethod, tr.Node(method).Tag)
	require.Equal(t, 3, tr.ChildCount(method))
}

func TestTypeDeclAlias(t *testing.T) {
	tr := mustParse(t, "type Meters: Number")

	decl := child(tr, tr.Root(), 0)
	body := child(tr, decl, 1)
	require.Equal(t, ast.TypeAnnotation, tr.Node(body).Tag)
	require.Equal(t, "Number", tr.Value(body).Raw)
}

func TestTypeDeclUnion(t *testing.T) {
	tr := mustParse(t, "type Result: Ok, Err")

	decl := child(tr, tr.Root(), 0)
	body := child(tr, decl, 1)
	require.Equal(t, ast.UnionTypeList, tr.Node(body).Tag)
	require.Equal(t, 2, tr.ChildCount(body))
}

func TestTypeDeclIntersection(t *testing.T) {
	tr := mustParse(t, "type Combo: A + B")

	decl := child(tr, tr.Root(), 0)
	body := child(tr, decl, 1)
	require.Equal(t, ast.IntersectionType, tr.Node(body).Tag)
	require.Equal(t, 2, tr.ChildCount(body))
}

func TestTypeDeclFunctionType(t *testing.T) {
	tr := mustParse(t, "type Adder: (Number, Number) Number")

	decl := child(tr, tr.Root(), 0)
	body := child(tr, decl, 1)
	require.Equal(t, ast.FunctionType, tr.Node(body).Tag)
	params := child(tr, body, 0)
	require.Equal(t, ast.FunctionTypeParams, tr.Node(params).Tag)
	require.Equal(t, 2, tr.ChildCount(params))
}

func TestTypeDeclUnit(t *testing.T) {
	tr := mustParse(t, "type Unit:\nx: 1")

	decl := child(tr, tr.Root(), 0)
	body := child(tr, decl, 1)
	require.Equal(t, ast.TypeBody, tr.Node(body).Tag)
	require.Equal(t, 0, tr.ChildCount(body))
}

func TestTypeDeclGenerics(t *testing.T) {
	tr := mustParse(t, "type Box<T: Number>: { value T }")

	decl := child(tr, tr.Root(), 0)
	name := child(tr, decl, 0)
	require.Equal(t, 2, tr.ChildCount(name))

	params := child(tr, name, 1)
	require.Equal(t, ast.TypeParams, tr.Node(params).Tag)
	tp := child(tr, params, 0)
	require.Equal(t, ast.TypeParam, tr.Node(tp).Tag)
	require.Equal(t, 2, tr.ChildCount(tp))
	constraint := child(tr, tp, 1)
	require.Equal(t, ast.TypeConstraint, tr.Node(constraint).Tag)
}

// Scenario 7 (spec.md §8): a leading `_` marks a struct-init member
// private.
func TestStructInitPrivateField(t *testing.T) {
	tr := mustParse(t, `user: { _ password: "s" }`)

	decl := child(tr, tr.Root(), 0)
	init := child(tr, decl, 1)
	require.Equal(t, ast.StructInit, tr.Node(init).Tag)
	field := child(tr, init, 0)
	require.Equal(t, ast.StructInitField, tr.Node(field).Tag)
	require.True(t, tr.HasFlag(field, ast.IsPrivate))
}

func TestInterpolatedStringWithExpr(t *testing.T) {
	tr := mustParse(t, "msg: `hi {name}`")

	decl := child(tr, tr.Root(), 0)
	str := child(tr, decl, 1)
	require.Equal(t, ast.LiteralString, tr.Node(str).Tag)
	require.Equal(t, 2, tr.ChildCount(str))
	require.Equal(t, ast.Identifier, tr.Node(child(tr, str, 1)).Tag)
}

func TestInterpolatedStringPlain(t *testing.T) {
	tr := mustParse(t, "msg: `hello`")

	decl := child(tr, tr.Root(), 0)
	str := child(tr, decl, 1)
	require.Equal(t, ast.LiteralString, tr.Node(str).Tag)
	require.Equal(t, 0, tr.ChildCount(str))
	require.Equal(t, "hello", tr.Value(str).String)
}

func TestImportPlain(t *testing.T) {
	tr := mustParse(t, "import http")

	imp := child(tr, tr.Root(), 0)
	require.Equal(t, ast.Import, tr.Node(imp).Tag)
	require.Equal(t, 1, tr.ChildCount(imp))
}

func TestImportSelective(t *testing.T) {
	tr := mustParse(t, "import { get, post }")

	imp := child(tr, tr.Root(), 0)
	require.Equal(t, ast.Import, tr.Node(imp).Tag)
	sel := child(tr, imp, 0)
	require.Equal(t, ast.ImportSelective, tr.Node(sel).Tag)
	list := child(tr, sel, 0)
	require.Equal(t, 2, tr.ChildCount(list))
}

func TestExportList(t *testing.T) {
	tr := mustParse(t, "export add, sub")

	exp := child(tr, tr.Root(), 0)
	require.Equal(t, ast.Export, tr.Node(exp).Tag)
	list := child(tr, exp, 0)
	require.Equal(t, ast.ExportList, tr.Node(list).Tag)
	require.Equal(t, 2, tr.ChildCount(list))
}

// A fatal syntactic mismatch aborts the current statement only: parsing
// resynchronizes at the next newline and keeps going (spec.md §4.3).
func TestPanicModeRecoversAtNextStatement(t *testing.T) {
	tree, err := parser.Parse("t.suru", []byte("x: (\ny: 2"), intern.New(8), 0)
	require.Error(t, err)
	require.Equal(t, 1, tree.ChildCount(tree.Root()))

	decl := child(tree, tree.Root(), 0)
	require.Equal(t, ast.VarDecl, tree.Node(decl).Tag)
	require.Equal(t, "y", tree.Value(child(tree, decl, 0)).Raw)
}

func TestMaxDepthExceeded(t *testing.T) {
	src := "x: "
	for i := 0; i < 30; i++ {
		src += "not "
	}
	src += "true"

	_, err := parser.Parse("t.suru", []byte(src), intern.New(8), 8)
	require.Error(t, err)
}
