package sema

import (
	"github.com/suru-lang/suru/lang/ast"
	"github.com/suru-lang/suru/lang/diag"
	"github.com/suru-lang/suru/lang/scope"
	"github.com/suru-lang/suru/lang/types"
)

// walkStmt dispatches one top-level or block-level statement. It mirrors
// parser.parseStmt's tag set exactly.
func (a *Analyzer) walkStmt(id ast.NodeID) {
	n := a.node(id)
	switch n.Tag {
	case ast.ModuleDecl:
		a.walkModuleDecl(id)
	case ast.Import, ast.Export:
		// No cross-translation-unit resolution is specified (spec.md §5:
		// one analyzer instance per translation unit); the names are
		// already anchored in the AST for a future linker to consume.
	case ast.TypeDecl:
		a.walkTypeDecl(id)
	case ast.FunctionDecl:
		a.walkFunctionDecl(id)
	case ast.VarDecl:
		a.walkVarDecl(id)
	case ast.Assign:
		a.walkAssign(id)
	case ast.ReturnStmt:
		a.walkReturnStmt(id)
	case ast.Match:
		a.walkMatch(id, false)
	case ast.ExprStmt:
		children := a.tree.Children(id)
		a.walkExpr(children[0])
	default:
		// A bare expression used directly as a statement (parser's default
		// case in parseStmt wraps these in ExprStmt already, but a stray
		// expression tag reaching here is walked defensively rather than
		// panicking).
		a.walkExpr(id)
	}
}

func (a *Analyzer) walkModuleDecl(id ast.NodeID) {
	pathID := a.tree.Children(id)[0]
	name := a.identText(pathID)

	if a.moduleDeclared {
		a.diags.Add(diag.MultipleModules, a.node(id).Pos, "only one module declaration is permitted per translation unit")
	}
	a.moduleDeclared = true

	a.scopes.Declare(name, scope.Symbol{Name: name, Kind: scope.ModuleSymbol, Decl: id})
	a.scopes.Enter(scope.Module)
}

// walkTypeDecl processes a `type Name: Body` declaration per spec.md
// §4.6.1: register via the type registry, reject unknown references
// inside the body, and declare a symbol in scope so a repeat `type`
// declaration in an immutable scope is caught.
func (a *Analyzer) walkTypeDecl(id ast.NodeID) {
	children := a.tree.Children(id)
	nameNode, bodyNode := children[0], children[1]

	nameIdentID := a.tree.Children(nameNode)[0]
	name := a.identText(nameIdentID)

	tid := a.buildType(bodyNode)
	a.reg.Register(name, tid)

	if ok := a.scopes.Declare(name, scope.Symbol{Name: name, Kind: scope.TypeSymbol, Type: tid, Decl: id}); !ok {
		a.diags.Addf(diag.DuplicateDeclaration, a.node(id).Pos, "type %q already declared", name)
	}
}

// buildType turns a type-body node (TypeBody/TypeAnnotation/UnionTypeList/
// StructBody/IntersectionType/FunctionType) into an interned types.ID.
func (a *Analyzer) buildType(bodyNode ast.NodeID) types.ID {
	switch a.node(bodyNode).Tag {
	case ast.TypeBody:
		return a.reg.VoidID() // unit
	case ast.TypeAnnotation:
		return a.resolveTypeRef(bodyNode) // alias
	case ast.UnionTypeList:
		var operands []types.ID
		for _, c := range a.tree.Children(bodyNode) {
			operands = append(operands, a.resolveTypeRef(c))
		}
		return a.reg.Intern(types.Type{Kind: types.KindUnion, Operands: operands})
	case ast.StructBody:
		return a.buildStructType(bodyNode)
	case ast.IntersectionType:
		var operands []types.ID
		for _, c := range a.tree.Children(bodyNode) {
			if a.node(c).Tag == ast.StructBody {
				operands = append(operands, a.buildStructType(c))
			} else {
				operands = append(operands, a.resolveTypeRef(c))
			}
		}
		return a.reg.Intern(types.Type{Kind: types.KindIntersection, Operands: operands})
	case ast.FunctionType:
		children := a.tree.Children(bodyNode)
		paramsNode, retNode := children[0], children[1]
		var params []types.ID
		for _, p := range a.tree.Children(paramsNode) {
			params = append(params, a.resolveTypeRef(p))
		}
		ret := a.resolveTypeRef(retNode)
		return a.reg.Intern(types.Type{Kind: types.KindFunction, Params: params, Return: ret})
	default:
		return a.reg.UnknownID()
	}
}

// buildStructType builds a Struct Type from a StructBody node's
// StructField/StructMethod children. Privacy is never set here — type
// *declarations* never carry privacy (spec.md §4.6.1); only struct
// *initializers* do (§4.6.4, handled in walkStructInit).
func (a *Analyzer) buildStructType(structBody ast.NodeID) types.ID {
	var fields []types.Field
	var methods []types.Method
	for _, m := range a.tree.Children(structBody) {
		mc := a.tree.Children(m)
		name := a.identText(mc[0])
		switch a.node(m).Tag {
		case ast.StructField:
			fields = append(fields, types.Field{Name: name, Type: a.resolveTypeRef(mc[1])})
		case ast.StructMethod:
			methods = append(methods, types.Method{Name: name, Type: a.buildFunctionTypeSignature(mc[1:])})
		}
	}
	return a.reg.Intern(types.Type{Kind: types.KindStruct, Fields: fields, Methods: methods})
}

// buildFunctionTypeSignature builds the Function Type for a
// params[, returnType] child slice, as found on a StructMethod (no body)
// or used as the signature half of a FunctionDecl/StructInitMethod (with
// a body that is walked separately).
func (a *Analyzer) buildFunctionTypeSignature(rest []ast.NodeID) types.ID {
	paramsNode := rest[0]
	var retNode ast.NodeID = ast.NoNode
	if len(rest) > 1 {
		retNode = rest[1]
	}

	_, params := a.paramTypes(paramsNode)
	ret := a.reg.UnknownID()
	if retNode != ast.NoNode {
		ret = a.resolveTypeRef(retNode)
	}
	return a.reg.Intern(types.Type{Kind: types.KindFunction, Params: params, Return: ret})
}

// funcShape is the decoded shape of a FunctionDecl or StructInitMethod
// node: name, param list, optional declared return type, body.
type funcShape struct {
	nameID  ast.NodeID
	params  ast.NodeID
	retNode ast.NodeID // ast.NoNode if undeclared
	body    ast.NodeID
}

func (a *Analyzer) decodeFuncShape(id ast.NodeID) funcShape {
	c := a.tree.Children(id)
	if len(c) == 4 {
		return funcShape{nameID: c[0], params: c[1], retNode: c[2], body: c[3]}
	}
	return funcShape{nameID: c[0], params: c[1], retNode: ast.NoNode, body: c[2]}
}

// walkFunctionDecl implements spec.md §4.6.1's function-declaration rule.
func (a *Analyzer) walkFunctionDecl(id ast.NodeID) {
	shape := a.decodeFuncShape(id)
	name := a.identText(shape.nameID)

	paramIDs, paramTypes := a.paramTypes(shape.params)

	hasDeclaredReturn := shape.retNode != ast.NoNode
	var retType types.ID
	if hasDeclaredReturn {
		retType = a.resolveTypeRef(shape.retNode)
	} else {
		retType = a.reg.FreshVar()
	}

	fnType := a.reg.Intern(types.Type{Kind: types.KindFunction, Params: paramTypes, Return: retType})
	a.recordType(id, fnType)

	a.scopes.Enter(scope.Function)
	if ok := a.scopes.DeclareEnclosing(name, scope.Symbol{Name: name, Kind: scope.FuncSymbol, Type: fnType, Decl: id}); !ok {
		a.diags.Addf(diag.DuplicateDeclaration, a.node(id).Pos, "function %q already declared", name)
	}

	for i, pid := range paramIDs {
		pname := a.identText(a.tree.Children(pid)[0])
		a.scopes.Declare(pname, scope.Symbol{Name: pname, Kind: scope.VarSymbol, Type: paramTypes[i], Decl: pid})
	}

	a.pushReturnFrame(retType, hasDeclaredReturn, a.node(id).Pos)
	for _, stmt := range a.tree.Children(shape.body) {
		a.walkStmt(stmt)
	}
	a.popReturnFrame()
	a.scopes.Exit()
}

// paramTypes resolves a ParamList node's Param children to (ids, types),
// minting a fresh variable for every unannotated parameter (spec.md
// §4.6.1: "unannotated parameters... become Unknown and get fresh
// variables during body analysis").
func (a *Analyzer) paramTypes(paramList ast.NodeID) (ids []ast.NodeID, types_ []types.ID) {
	for _, p := range a.tree.Children(paramList) {
		ids = append(ids, p)
		pc := a.tree.Children(p)
		if len(pc) > 1 {
			types_ = append(types_, a.resolveTypeRef(pc[1]))
		} else {
			types_ = append(types_, a.reg.FreshVar())
		}
	}
	return ids, types_
}

// walkVarDecl implements spec.md §4.6.1's variable-declaration rule,
// including the mutable-scope rebind-must-unify / immutable-scope
// constant rule of §4.4.
func (a *Analyzer) walkVarDecl(id ast.NodeID) {
	children := a.tree.Children(id)
	nameID := children[0]
	name := a.identText(nameID)

	var typeAnnID ast.NodeID = ast.NoNode
	var valueNode ast.NodeID
	if len(children) == 3 {
		typeAnnID, valueNode = children[1], children[2]
	} else {
		valueNode = children[1]
	}

	valType := a.walkExpr(valueNode)

	recorded := valType
	if typeAnnID != ast.NoNode {
		declType := a.resolveTypeRef(typeAnnID)
		// declType is the expected side: for a Struct this is what drives
		// unifyStructs' directionality (spec.md §4.6.5 — the expected
		// side's members must all have an actual-side counterpart).
		a.constrain(declType, valType, a.node(valueNode).Pos)
		recorded = declType
	}

	sym := scope.Symbol{Name: name, Kind: scope.VarSymbol, Type: recorded, Decl: id}

	if a.scopes.IsInMutableScope() {
		if existing, ok := a.scopes.DeclaredInCurrent(name); ok {
			a.constrain(existing.Type, recorded, a.node(id).Pos)
		}
		a.scopes.Declare(name, sym)
		return
	}

	if ok := a.scopes.Declare(name, sym); !ok {
		a.diags.Addf(diag.DuplicateDeclaration, a.node(id).Pos, "%q already declared in this scope", name)
	}
}

func (a *Analyzer) walkAssign(id ast.NodeID) {
	children := a.tree.Children(id)
	lhs, rhs := children[0], children[1]

	rhsType := a.walkExpr(rhs)

	if a.node(lhs).Tag == ast.Identifier {
		name := a.identText(lhs)
		if sym, ok := a.scopes.Resolve(name); ok {
			a.recordType(lhs, sym.Type)
			a.constrain(sym.Type, rhsType, a.node(id).Pos)
			return
		}
		a.diags.Addf(diag.UndefinedVariable, a.node(lhs).Pos, "undefined variable %q", name)
		return
	}
	a.walkExpr(lhs)
}

func (a *Analyzer) walkReturnStmt(id ast.NodeID) {
	children := a.tree.Children(id)
	pos := a.node(id).Pos
	if len(children) == 0 {
		a.recordReturn(pos, types.NoType, true)
		return
	}
	t := a.walkExpr(children[0])
	a.recordReturn(pos, t, false)
}

// walkMatch implements spec.md §4.6.2's match rule. asExpr selects
// whether arm results are expressions (constrained equal, producing a
// value) or statements (walked for their own effects only).
func (a *Analyzer) walkMatch(id ast.NodeID, asExpr bool) types.ID {
	children := a.tree.Children(id)
	subjWrapper, armsWrapper := children[0], children[1]
	subjExpr := a.tree.Children(subjWrapper)[0]
	subjType := a.walkExpr(subjExpr)

	var resultTypes []types.ID
	for _, arm := range a.tree.Children(armsWrapper) {
		ac := a.tree.Children(arm)
		patternNode, resultNode := ac[0], ac[1]

		patChildren := a.tree.Children(patternNode)
		if len(patChildren) > 0 && a.node(patChildren[0]).Tag != ast.Placeholder {
			patType := a.walkExpr(patChildren[0])
			a.constrain(patType, subjType, a.node(patternNode).Pos)
		}

		if asExpr {
			resultTypes = append(resultTypes, a.walkExpr(resultNode))
		} else {
			a.walkStmt(resultNode)
		}
	}

	result := subjType
	if asExpr {
		if len(resultTypes) == 0 {
			result = a.reg.FreshVar()
		} else {
			result = resultTypes[0]
			for _, rt := range resultTypes[1:] {
				a.constrain(result, rt, a.node(id).Pos)
			}
		}
	}
	return a.recordType(id, result)
}

// walkExpr infers id's type, recording it, and dispatches by tag over the
// table in spec.md §4.6.2.
func (a *Analyzer) walkExpr(id ast.NodeID) types.ID {
	n := a.node(id)
	switch n.Tag {
	case ast.LiteralNumber:
		val := a.tree.Value(id)
		if val.Suffix != "" {
			if tid, ok := a.reg.ResolveBuiltin(val.Suffix); ok {
				return a.recordType(id, tid)
			}
		}
		tid, _ := a.reg.ResolveBuiltin(string(types.Number))
		return a.recordType(id, tid)

	case ast.LiteralString:
		tid, _ := a.reg.ResolveBuiltin(string(types.String))
		return a.recordType(id, tid)

	case ast.LiteralBoolean:
		tid, _ := a.reg.ResolveBuiltin(string(types.Bool))
		return a.recordType(id, tid)

	case ast.Identifier:
		name := a.identText(id)
		if sym, ok := a.scopes.Resolve(name); ok {
			return a.recordType(id, sym.Type)
		}
		a.diags.Addf(diag.UndefinedVariable, n.Pos, "undefined variable %q", name)
		return a.recordType(id, a.reg.UnknownID())

	case ast.This:
		if len(a.thisStack) == 0 {
			return a.recordType(id, a.reg.UnknownID())
		}
		return a.recordType(id, a.thisStack[len(a.thisStack)-1])

	case ast.Placeholder:
		return a.recordType(id, a.reg.FreshVar())

	case ast.List:
		return a.walkList(id)

	case ast.And, ast.Or:
		children := a.tree.Children(id)
		boolID, _ := a.reg.ResolveBuiltin(string(types.Bool))
		l := a.walkExpr(children[0])
		r := a.walkExpr(children[1])
		a.constrain(l, boolID, n.Pos)
		a.constrain(r, boolID, n.Pos)
		return a.recordType(id, boolID)

	case ast.Not:
		children := a.tree.Children(id)
		boolID, _ := a.reg.ResolveBuiltin(string(types.Bool))
		operand := a.walkExpr(children[0])
		a.constrain(operand, boolID, n.Pos)
		return a.recordType(id, boolID)

	case ast.Negate:
		children := a.tree.Children(id)
		numID, _ := a.reg.ResolveBuiltin(string(types.Number))
		operand := a.walkExpr(children[0])
		a.constrain(operand, numID, n.Pos)
		return a.recordType(id, numID)

	case ast.FunctionCall:
		return a.walkFunctionCall(id)

	case ast.MethodCall:
		return a.walkMethodCall(id)

	case ast.PropertyAccess:
		return a.walkPropertyAccess(id)

	case ast.Pipe:
		return a.walkPipe(id)

	case ast.Compose:
		return a.walkCompose(id)

	case ast.Partial:
		return a.walkPartial(id)

	case ast.Try:
		return a.walkTry(id)

	case ast.Match:
		return a.walkMatch(id, true)

	case ast.StructInit:
		return a.walkStructInit(id)

	default:
		return a.recordType(id, a.reg.UnknownID())
	}
}

func (a *Analyzer) walkList(id ast.NodeID) types.ID {
	elems := a.tree.Children(id)
	if len(elems) == 0 {
		elem := a.reg.FreshVar()
		return a.recordType(id, a.reg.Intern(types.Type{Kind: types.KindArray, Elem: elem}))
	}
	first := a.walkExpr(elems[0])
	for _, e := range elems[1:] {
		t := a.walkExpr(e)
		a.constrain(first, t, a.node(e).Pos)
	}
	return a.recordType(id, a.reg.Intern(types.Type{Kind: types.KindArray, Elem: first}))
}

// callArgs resolves an ArgList node's children to their inferred types.
func (a *Analyzer) callArgs(argList ast.NodeID) []types.ID {
	var out []types.ID
	for _, arg := range a.tree.Children(argList) {
		out = append(out, a.walkExpr(arg))
	}
	return out
}

func (a *Analyzer) walkFunctionCall(id ast.NodeID) types.ID {
	children := a.tree.Children(id)
	calleeNode, argListNode := children[0], children[1]
	pos := a.node(id).Pos

	calleeType := a.walkExpr(calleeNode)
	argTypes := a.callArgs(argListNode)

	label := callLabel(a, calleeNode)
	ct := a.reg.Get(calleeType)

	switch ct.Kind {
	case types.KindUnknown, types.KindVar:
		return a.recordType(id, a.reg.FreshVar())
	case types.KindFunction:
		if len(argTypes) != len(ct.Params) {
			a.diags.Addf(diag.ArityMismatch, pos, "Function '%s' expects %d argument(s) but got %d", label, len(ct.Params), len(argTypes))
		} else {
			for i, at := range argTypes {
				a.constrain(at, ct.Params[i], pos)
			}
		}
		return a.recordType(id, ct.Return)
	default:
		a.diags.Addf(diag.NotAFunction, pos, "%q is not a function", label)
		return a.recordType(id, a.reg.UnknownID())
	}
}

func (a *Analyzer) walkMethodCall(id ast.NodeID) types.ID {
	children := a.tree.Children(id)
	objNode, memberNode, argListNode := children[0], children[1], children[2]
	pos := a.node(id).Pos

	objType := a.walkExpr(objNode)
	argTypes := a.callArgs(argListNode)
	name := a.identText(memberNode)

	ot := a.reg.Get(objType)
	if ot.Kind != types.KindStruct {
		return a.recordType(id, a.reg.UnknownID())
	}

	for _, m := range ot.Methods {
		if m.Name != name {
			continue
		}
		if m.Private && !a.accessingThis(objNode, objType) {
			a.diags.Addf(diag.PrivateMethodAccess, pos, "method %q is private", name)
		}
		mt := a.reg.Get(m.Type)
		if len(argTypes) != len(mt.Params) {
			a.diags.Addf(diag.ArityMismatch, pos, "Function '%s' expects %d argument(s) but got %d", name, len(mt.Params), len(argTypes))
		} else {
			for i, at := range argTypes {
				a.constrain(at, mt.Params[i], pos)
			}
		}
		return a.recordType(id, mt.Return)
	}
	a.diags.Addf(diag.UndefinedFunction, pos, "undefined method %q", name)
	return a.recordType(id, a.reg.UnknownID())
}

func (a *Analyzer) walkPropertyAccess(id ast.NodeID) types.ID {
	children := a.tree.Children(id)
	objNode, memberNode := children[0], children[1]
	pos := a.node(id).Pos

	objType := a.walkExpr(objNode)
	name := a.identText(memberNode)

	ot := a.reg.Get(objType)
	if ot.Kind != types.KindStruct {
		return a.recordType(id, a.reg.UnknownID())
	}

	for _, f := range ot.Fields {
		if f.Name != name {
			continue
		}
		if f.Private && !a.accessingThis(objNode, objType) {
			a.diags.Addf(diag.PrivateFieldAccess, pos, "field %q is private", name)
		}
		return a.recordType(id, f.Type)
	}
	for _, m := range ot.Methods {
		if m.Name != name {
			continue
		}
		if m.Private && !a.accessingThis(objNode, objType) {
			a.diags.Addf(diag.PrivateMethodAccess, pos, "method %q is private", name)
		}
		return a.recordType(id, m.Type)
	}
	a.diags.Addf(diag.UndefinedVariable, pos, "undefined member %q", name)
	return a.recordType(id, a.reg.UnknownID())
}

// accessingThis reports whether objNode is the `this` expression referring
// to the struct currently under construction (spec.md §4.6.4: "Access via
// this inside a method of the same struct is always permitted").
func (a *Analyzer) accessingThis(objNode ast.NodeID, objType types.ID) bool {
	if a.node(objNode).Tag != ast.This {
		return false
	}
	for _, t := range a.thisStack {
		if t == objType {
			return true
		}
	}
	return false
}

// callLabel names a call's callee for diagnostic messages: the identifier
// text if it is a bare name, else a generic placeholder.
func callLabel(a *Analyzer, calleeNode ast.NodeID) string {
	if a.node(calleeNode).Tag == ast.Identifier {
		return a.identText(calleeNode)
	}
	return "<expr>"
}

// walkPipe implements `x | f` (spec.md §4.6.2): equivalent to f(x), with x
// threaded in as the implicit first argument, prepended to any args f
// already carries if the right-hand side is itself a call.
func (a *Analyzer) walkPipe(id ast.NodeID) types.ID {
	children := a.tree.Children(id)
	lhs, rhs := children[0], children[1]
	pos := a.node(id).Pos

	xType := a.walkExpr(lhs)

	var calleeType types.ID
	var label string
	var argTypes []types.ID

	if a.node(rhs).Tag == ast.FunctionCall {
		rc := a.tree.Children(rhs)
		calleeType = a.walkExpr(rc[0])
		label = callLabel(a, rc[0])
		argTypes = append([]types.ID{xType}, a.callArgs(rc[1])...)
	} else {
		calleeType = a.walkExpr(rhs)
		label = callLabel(a, rhs)
		argTypes = []types.ID{xType}
	}

	ct := a.reg.Get(calleeType)
	switch ct.Kind {
	case types.KindUnknown, types.KindVar:
		return a.recordType(id, a.reg.FreshVar())
	case types.KindFunction:
		if len(argTypes) != len(ct.Params) {
			a.diags.Addf(diag.ArityMismatch, pos, "Function '%s' expects %d argument(s) but got %d", label, len(ct.Params), len(argTypes))
		} else {
			for i, at := range argTypes {
				a.constrain(at, ct.Params[i], pos)
			}
		}
		return a.recordType(id, ct.Return)
	default:
		a.diags.Addf(diag.NotAFunction, pos, "%q is not a function", label)
		return a.recordType(id, a.reg.UnknownID())
	}
}

// walkCompose implements `+` (spec.md §9 open question 3): structural
// intersection-merge when both operands are struct-shaped; otherwise a
// TypeMismatch, since the core gives `+` no arithmetic semantics.
func (a *Analyzer) walkCompose(id ast.NodeID) types.ID {
	children := a.tree.Children(id)
	pos := a.node(id).Pos
	l := a.walkExpr(children[0])
	r := a.walkExpr(children[1])

	lt, rt := a.reg.Get(l), a.reg.Get(r)
	if lt.Kind == types.KindStruct && rt.Kind == types.KindStruct {
		return a.recordType(id, a.reg.Intern(types.Type{Kind: types.KindIntersection, Operands: []types.ID{l, r}}))
	}
	a.diags.Add(diag.TypeMismatch, pos, "cannot compose non-struct types with +")
	return a.recordType(id, a.reg.UnknownID())
}

// walkPartial implements `partial e`. The inference table of spec.md
// §4.6.2 does not cover Partial; this treats a partial application of a
// function call (some arguments given, a Placeholder standing in for the
// rest) as producing a Function whose remaining params are the
// placeholders' fresh types and whose return is the original call's
// result.
func (a *Analyzer) walkPartial(id ast.NodeID) types.ID {
	children := a.tree.Children(id)
	operand := children[0]

	if a.node(operand).Tag != ast.FunctionCall {
		return a.recordType(id, a.walkExpr(operand))
	}

	oc := a.tree.Children(operand)
	calleeType := a.walkExpr(oc[0])
	var remaining []types.ID
	for _, arg := range a.tree.Children(oc[1]) {
		if a.node(arg).Tag == ast.Placeholder {
			remaining = append(remaining, a.walkExpr(arg))
		} else {
			a.walkExpr(arg)
		}
	}

	ct := a.reg.Get(calleeType)
	if ct.Kind != types.KindFunction {
		return a.recordType(id, a.reg.UnknownID())
	}
	return a.recordType(id, a.reg.Intern(types.Type{Kind: types.KindFunction, Params: remaining, Return: ct.Return}))
}

// walkTry implements `try e` (spec.md §4.6.2, §9 open question 2): e must
// be a two-variant Union; result is the first variant; if the enclosing
// function has a concrete two-variant Union return type, its second
// variant is constrained against e's second variant.
func (a *Analyzer) walkTry(id ast.NodeID) types.ID {
	children := a.tree.Children(id)
	pos := a.node(id).Pos
	operand := a.walkExpr(children[0])

	ot := a.reg.Get(operand)
	if ot.Kind != types.KindUnion || len(ot.Operands) != 2 {
		a.diags.Add(diag.TryOnNonBinaryUnion, pos, "try requires an operand with a two-variant union type")
		return a.recordType(id, a.reg.UnknownID())
	}
	success, failure := ot.Operands[0], ot.Operands[1]

	if len(a.returnStack) > 0 {
		frame := a.returnStack[len(a.returnStack)-1]
		if frame.hasDeclared {
			rt := a.reg.Get(frame.declared)
			if rt.Kind == types.KindUnion && len(rt.Operands) == 2 {
				a.constrain(rt.Operands[1], failure, pos)
			} else {
				a.diags.Add(diag.TryReturnIncompatible, pos, "enclosing function's return type is not a compatible two-variant union")
			}
		}
	}
	return a.recordType(id, success)
}

// walkStructInit builds a Struct Type from a struct literal (spec.md
// §4.6.4): fields get their type from their value expression; methods get
// a Function type from their signature, with bodies walked afterward so
// `this` resolves to the now-complete struct type.
func (a *Analyzer) walkStructInit(id ast.NodeID) types.ID {
	var fields []types.Field
	var methods []types.Method
	var methodBodies []ast.NodeID

	for _, m := range a.tree.Children(id) {
		mc := a.tree.Children(m)
		name := a.identText(mc[0])
		private := a.tree.HasFlag(m, ast.IsPrivate)

		switch a.node(m).Tag {
		case ast.StructInitField:
			ft := a.walkExpr(mc[1])
			fields = append(fields, types.Field{Name: name, Type: ft, Private: private})
		case ast.StructInitMethod:
			sig := a.buildFunctionTypeSignature(mc[1 : len(mc)-1])
			methods = append(methods, types.Method{Name: name, Type: sig, Private: private})
			methodBodies = append(methodBodies, m)
		}
	}

	structID := a.reg.Intern(types.Type{Kind: types.KindStruct, Fields: fields, Methods: methods})
	a.recordType(id, structID)

	for _, m := range methodBodies {
		a.walkStructInitMethodBody(m, structID)
	}
	return structID
}

func (a *Analyzer) walkStructInitMethodBody(id ast.NodeID, structID types.ID) {
	shape := a.decodeFuncShape(id)
	_, paramTypes := a.paramTypes(shape.params)
	paramIDs := a.tree.Children(shape.params)

	hasDeclaredReturn := shape.retNode != ast.NoNode
	var retType types.ID
	if hasDeclaredReturn {
		retType = a.resolveTypeRef(shape.retNode)
	} else {
		retType = a.reg.FreshVar()
	}

	a.scopes.Enter(scope.Function)
	a.thisStack = append(a.thisStack, structID)
	for i, pid := range paramIDs {
		pname := a.identText(a.tree.Children(pid)[0])
		a.scopes.Declare(pname, scope.Symbol{Name: pname, Kind: scope.VarSymbol, Type: paramTypes[i], Decl: pid})
	}

	a.pushReturnFrame(retType, hasDeclaredReturn, a.node(id).Pos)
	for _, stmt := range a.tree.Children(shape.body) {
		a.walkStmt(stmt)
	}
	a.popReturnFrame()

	a.thisStack = a.thisStack[:len(a.thisStack)-1]
	a.scopes.Exit()
}
