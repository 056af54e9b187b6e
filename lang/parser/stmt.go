package parser

import (
	"github.com/suru-lang/suru/lang/ast"
	"github.com/suru-lang/suru/lang/diag"
	"github.com/suru-lang/suru/lang/token"
)

// parseProgram parses a whole translation unit: a sequence of top-level
// statements separated by newlines, then wires them as the tree's root
// (always index 0, see ast.NewTree).
func (p *parser) parseProgram() {
	var stmts []ast.NodeID
	p.skipNewlines()
	for p.tok != token.EOF {
		if id := p.parseStmtRecovering(); id != ast.NoNode {
			stmts = append(stmts, id)
		}
		p.skipNewlines()
	}
	p.tree.SetChildren(p.tree.Root(), stmts...)
}

// parseStmtRecovering parses one statement, recovering from panic-mode
// errors by resynchronizing at the next newline or EOF (spec.md §4.3: "on
// a fatal syntactic mismatch it aborts the current production").
func (p *parser) parseStmtRecovering() (id ast.NodeID) {
	defer func() {
		if r := recover(); r != nil {
			if r != errPanicMode {
				panic(r)
			}
			for p.tok != token.NEWLINE && p.tok != token.EOF {
				p.advance()
			}
			id = ast.NoNode
		}
	}()
	return p.parseStmt()
}

// parseBlock parses `{` stmt* `}`, used for function/method bodies.
func (p *parser) parseBlock() ast.NodeID {
	pos := p.expect(token.LBRACE)
	var stmts []ast.NodeID
	p.skipNewlines()
	for p.tok != token.RBRACE && p.tok != token.EOF {
		if id := p.parseStmtRecovering(); id != ast.NoNode {
			stmts = append(stmts, id)
		}
		p.skipNewlines()
	}
	p.expect(token.RBRACE)
	return p.tree.AddNode(ast.Block, pos, stmts...)
}

// parseStmt dispatches on the current (and, where needed, next) token per
// spec.md §4.3's statement disambiguation rule.
func (p *parser) parseStmt() ast.NodeID {
	p.enter()
	defer p.exit()

	switch p.tok {
	case token.MODULE:
		return p.parseModuleDecl()
	case token.IMPORT:
		return p.parseImport()
	case token.EXPORT:
		return p.parseExport()
	case token.TYPE:
		return p.parseTypeDecl()
	case token.RETURN:
		return p.parseReturnStmt()
	case token.MATCH:
		return p.parseMatch(true)
	case token.IDENT:
		return p.parseIdentStmt()
	default:
		expr := p.parseExpr()
		return p.tree.AddNode(ast.ExprStmt, p.tree.Node(expr).Pos, expr)
	}
}

// parseIdentStmt disambiguates the three statement forms that begin with
// an identifier: a declaration head (identifier followed by an optional
// type annotation and ':'), an assignment (identifier '='), or a plain
// expression-statement (call, property access, ...).
func (p *parser) parseIdentStmt() ast.NodeID {
	if p.declHeadAhead() {
		return p.parseDeclStmt()
	}

	expr := p.parseExpr()
	if p.tok == token.EQ {
		p.advance()
		rhs := p.parseExpr()
		return p.tree.AddNode(ast.Assign, p.tree.Node(expr).Pos, expr, rhs)
	}
	return p.tree.AddNode(ast.ExprStmt, p.tree.Node(expr).Pos, expr)
}

// declHeadAhead reports whether the upcoming tokens form a declaration
// head: IDENT [IDENT] ':' (an optional inline type annotation between the
// name and the colon), using the parser's token-lookahead buffer rather
// than consuming input (spec.md §4.3's two-token statement lookahead).
func (p *parser) declHeadAhead() bool {
	if p.tok != token.IDENT {
		return false
	}
	switch p.peek(1) {
	case token.COLON:
		return true
	case token.IDENT:
		return p.peek(2) == token.COLON
	default:
		return false
	}
}

// parseDeclStmt parses a declaration head (identifier, optional inline
// type annotation, ':') and then dispatches to a function or variable
// declaration depending on what follows the colon (spec.md §4.3).
func (p *parser) parseDeclStmt() ast.NodeID {
	namePos := p.val.Pos
	name := p.expectIdentText()
	nameID := p.identNode(namePos, name)

	var typeAnn ast.NodeID = ast.NoNode
	if p.tok != token.COLON {
		typeAnn = p.parseTypeAnnotation()
	}
	p.expect(token.COLON)

	if p.tok == token.LPAREN {
		params := p.parseParamList()
		ret := p.maybeParseReturnType()
		body := p.parseBlock()
		return p.tree.AddNode(ast.FunctionDecl, namePos, withOptional(nameID, params, ret, body)...)
	}

	value := p.parseExpr()
	return p.tree.AddNode(ast.VarDecl, namePos, withOptional(nameID, typeAnn, value)...)
}

// parseTypeAnnotation parses a single inline type reference: an
// identifier naming a builtin or user type. The full compound-type
// grammar (union lists, struct bodies, intersections, function types) is
// reserved for `type Name: ...` declarations (typedecl.go); inline
// positions (parameters, variable/return annotations) only ever name a
// single type.
func (p *parser) parseTypeAnnotation() ast.NodeID {
	pos := p.val.Pos
	name := p.expectIdentText()
	id := p.tree.AddNode(ast.TypeAnnotation, pos)
	p.tree.SetValue(id, token.Value{Pos: pos, Raw: name})
	return id
}

// maybeParseReturnType parses an optional return type annotation between a
// parameter list and a block: present whenever the next token starts a
// type reference rather than '{'.
func (p *parser) maybeParseReturnType() ast.NodeID {
	if p.tok != token.IDENT {
		return ast.NoNode
	}
	return p.parseTypeAnnotation()
}

// parseParamList parses `(` (param (`,` param)*)? `)`, where a param is
// `identifier TypeName?` (an unannotated parameter's type is Unknown and
// gets a fresh type variable during analysis, spec.md §4.6.1).
func (p *parser) parseParamList() ast.NodeID {
	pos := p.expect(token.LPAREN)
	var params []ast.NodeID
	for p.tok != token.RPAREN && p.tok != token.EOF {
		params = append(params, p.parseParam())
		if p.tok == token.COMMA {
			p.advance()
		} else {
			break
		}
	}
	p.expect(token.RPAREN)
	return p.tree.AddNode(ast.ParamList, pos, params...)
}

func (p *parser) parseParam() ast.NodeID {
	namePos := p.val.Pos
	name := p.expectIdentText()
	nameID := p.identNode(namePos, name)

	var typeAnn ast.NodeID = ast.NoNode
	if p.tok == token.IDENT {
		typeAnn = p.parseTypeAnnotation()
	}
	return p.tree.AddNode(ast.Param, namePos, withOptional(nameID, typeAnn)...)
}

func (p *parser) parseReturnStmt() ast.NodeID {
	pos := p.expect(token.RETURN)
	if p.tok == token.NEWLINE || p.tok == token.EOF || p.tok == token.RBRACE {
		return p.tree.AddNode(ast.ReturnStmt, pos)
	}
	value := p.parseExpr()
	return p.tree.AddNode(ast.ReturnStmt, pos, value)
}

// parseMatch parses `match <subject> { (<pattern> : <result>)+ }`. When
// used as a statement (isStmtContext), each arm's result is a statement;
// otherwise it is an expression, as spec.md §4.3 requires.
func (p *parser) parseMatch(isStmtContext bool) ast.NodeID {
	pos := p.expect(token.MATCH)
	subjExpr := p.parseExpr()
	subj := p.tree.AddNode(ast.MatchSubject, p.tree.Node(subjExpr).Pos, subjExpr)

	p.expect(token.LBRACE)
	p.skipNewlines()

	var arms []ast.NodeID
	for p.tok != token.RBRACE && p.tok != token.EOF {
		arms = append(arms, p.parseMatchArm(isStmtContext))
		if p.tok == token.COMMA {
			p.advance()
		}
		p.skipNewlines()
	}
	if len(arms) == 0 {
		p.error(diag.UnexpectedToken, p.val.Pos, "match requires at least one arm")
	}
	p.expect(token.RBRACE)

	armsNode := p.tree.AddNode(ast.MatchArms, pos, arms...)
	return p.tree.AddNode(ast.Match, pos, subj, armsNode)
}

func (p *parser) parseMatchArm(isStmtContext bool) ast.NodeID {
	pos := p.val.Pos
	pattern := p.parseMatchPattern()
	p.expect(token.COLON)

	var result ast.NodeID
	if isStmtContext {
		result = p.parseStmt()
	} else {
		result = p.parseExpr()
	}
	return p.tree.AddNode(ast.MatchArm, pos, pattern, result)
}

// parseMatchPattern parses a match pattern: an identifier (type/tag name),
// a literal, or `_` (wildcard) — spec.md §4.3.
func (p *parser) parseMatchPattern() ast.NodeID {
	pos := p.val.Pos
	switch p.tok {
	case token.UNDERSCORE:
		p.advance()
		pat := p.tree.AddNode(ast.Placeholder, pos)
		return p.tree.AddNode(ast.MatchPattern, pos, pat)
	case token.IDENT, token.INT, token.FLOAT, token.STRING, token.TRUE, token.FALSE:
		pat := p.parsePrimary()
		return p.tree.AddNode(ast.MatchPattern, pos, pat)
	default:
		p.errorExpected(pos, "match pattern")
		panic(errPanicMode)
	}
}

// parseModuleDecl parses `module Name` or `module .sub`.
func (p *parser) parseModuleDecl() ast.NodeID {
	pos := p.expect(token.MODULE)
	dotted := false
	if p.tok == token.DOT {
		dotted = true
		p.advance()
	}
	namePos := p.val.Pos
	name := p.expectIdentText()
	pathID := p.tree.AddNode(ast.ModulePath, namePos)
	v := token.Value{Pos: namePos, Raw: name}
	p.tree.SetValue(pathID, v)
	if dotted {
		p.tree.SetFlags(pathID, ast.IsSubmodule)
	}
	return p.tree.AddNode(ast.ModuleDecl, pos, pathID)
}

// parseImport parses an import declaration: a module path, optionally
// renamed with `as`-style aliasing or narrowed to a selective member list.
// spec.md names the node tags (Import, ImportList, ImportItem, ImportAlias,
// ImportSelective, ImportSelector) but leaves the concrete surface syntax
// unspecified; this grammar is this parser's own interpretation of that
// tag set (see DESIGN.md).
func (p *parser) parseImport() ast.NodeID {
	pos := p.expect(token.IMPORT)

	if p.tok == token.LBRACE {
		return p.parseImportSelective(pos)
	}

	namePos := p.val.Pos
	name := p.expectIdentText()
	pathID := p.identNode(namePos, name)

	if p.tok == token.IDENT && p.val.Raw == "as" {
		p.advance()
		aliasPos := p.val.Pos
		alias := p.expectIdentText()
		aliasID := p.identNode(aliasPos, alias)
		aliasNode := p.tree.AddNode(ast.ImportAlias, pos, pathID, aliasID)
		return p.tree.AddNode(ast.Import, pos, aliasNode)
	}
	return p.tree.AddNode(ast.Import, pos, pathID)
}

func (p *parser) parseImportSelective(pos token.Pos) ast.NodeID {
	p.expect(token.LBRACE)
	var items []ast.NodeID
	p.skipNewlines()
	for p.tok != token.RBRACE && p.tok != token.EOF {
		itemPos := p.val.Pos
		name := p.expectIdentText()
		sel := p.tree.AddNode(ast.ImportSelector, itemPos)
		p.tree.SetValue(sel, token.Value{Pos: itemPos, Raw: name})
		items = append(items, p.tree.AddNode(ast.ImportItem, itemPos, sel))
		if p.tok == token.COMMA {
			p.advance()
		} else {
			break
		}
		p.skipNewlines()
	}
	p.expect(token.RBRACE)
	list := p.tree.AddNode(ast.ImportList, pos, items...)
	sel := p.tree.AddNode(ast.ImportSelective, pos, list)
	return p.tree.AddNode(ast.Import, pos, sel)
}

// parseExport parses an export declaration: `export name (, name)*`.
func (p *parser) parseExport() ast.NodeID {
	pos := p.expect(token.EXPORT)
	var items []ast.NodeID
	for {
		namePos := p.val.Pos
		name := p.expectIdentText()
		items = append(items, p.identNode(namePos, name))
		if p.tok == token.COMMA {
			p.advance()
			continue
		}
		break
	}
	list := p.tree.AddNode(ast.ExportList, pos, items...)
	return p.tree.AddNode(ast.Export, pos, list)
}
