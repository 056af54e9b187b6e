package parser

import (
	"strings"

	"github.com/suru-lang/suru/lang/ast"
	"github.com/suru-lang/suru/lang/token"
)

// precedence table (spec.md §4.3), lowest to highest: level 1 (or, |, +),
// level 2 (and). Levels 3 and 4 are handled directly in parseUnary and
// parsePostfix since they are prefix/postfix, not binary.
var binPrecedence = map[token.Token]int{
	token.OR:   1,
	token.PIPE: 1,
	token.PLUS: 1,
	token.AND:  2,
}

func (p *parser) parseExpr() ast.Expr { return p.parseBinExpr(1) }

// parseBinExpr implements precedence climbing over the level 1/2 binary
// operators; unary and postfix operators bind tighter and are parsed by
// parseUnary.
func (p *parser) parseBinExpr(minPrec int) ast.Expr {
	p.enter()
	defer p.exit()

	left := p.parseUnary()

	for {
		prec, ok := binPrecedence[p.tok]
		if !ok || prec < minPrec {
			break
		}
		op, pos := p.tok, p.val.Pos
		p.advance()
		right := p.parseBinExpr(prec + 1)

		var tag ast.Tag
		switch op {
		case token.OR:
			tag = ast.Or
		case token.PIPE:
			tag = ast.Pipe
		case token.PLUS:
			tag = ast.Compose
		case token.AND:
			tag = ast.And
		}
		left = p.tree.AddNode(tag, pos, left, right)
	}
	return left
}

// parseUnary handles the precedence level 3 prefix operators: not, try,
// partial, unary minus. They are right-associative, which a recursive
// call into parseUnary itself naturally provides.
func (p *parser) parseUnary() ast.Expr {
	p.enter()
	defer p.exit()

	var tag ast.Tag
	switch p.tok {
	case token.NOT:
		tag = ast.Not
	case token.TRY:
		tag = ast.Try
	case token.PARTIAL:
		tag = ast.Partial
	case token.MINUS:
		tag = ast.Negate
	default:
		return p.parsePostfix()
	}

	pos := p.val.Pos
	p.advance()
	operand := p.parseUnary()
	return p.tree.AddNode(tag, pos, operand)
}

// parsePostfix handles the precedence level 4 postfix operators: property
// access, method calls and function calls.
func (p *parser) parsePostfix() ast.Expr {
	p.enter()
	defer p.exit()

	left := p.parsePrimary()

	for {
		switch p.tok {
		case token.DOT:
			p.advance()
			namePos := p.val.Pos
			name := p.expectIdentText()
			member := p.tree.AddNode(ast.Identifier, namePos)
			p.tree.SetValue(member, token.Value{Pos: namePos, Raw: name})

			if p.tok == token.LPAREN {
				args := p.parseArgList()
				left = p.tree.AddNode(ast.MethodCall, namePos, left, member, args)
			} else {
				left = p.tree.AddNode(ast.PropertyAccess, namePos, left, member)
			}

		case token.LPAREN:
			args := p.parseArgList()
			left = p.tree.AddNode(ast.FunctionCall, p.tree.Node(left).Pos, left, args)

		default:
			return left
		}
	}
}

// expectIdentText requires the current token to be IDENT, returning its
// text and advancing past it.
func (p *parser) expectIdentText() string {
	if p.tok != token.IDENT {
		p.errorExpected(p.val.Pos, token.IDENT.GoString())
		panic(errPanicMode)
	}
	name := p.intern(p.val.Raw)
	p.advance()
	return name
}

func (p *parser) parseArgList() ast.NodeID {
	pos := p.expect(token.LPAREN)
	var args []ast.NodeID
	for p.tok != token.RPAREN && p.tok != token.EOF {
		args = append(args, p.parseExpr())
		if p.tok == token.COMMA {
			p.advance()
		} else {
			break
		}
	}
	p.expect(token.RPAREN)
	return p.tree.AddNode(ast.ArgList, pos, args...)
}

func (p *parser) parsePrimary() ast.Expr {
	p.enter()
	defer p.exit()

	pos := p.val.Pos
	switch p.tok {
	case token.IDENT:
		name := p.val.Raw
		p.advance()
		id := p.tree.AddNode(ast.Identifier, pos)
		p.tree.SetValue(id, token.Value{Pos: pos, Raw: p.intern(name)})
		return id

	case token.UNDERSCORE:
		p.advance()
		return p.tree.AddNode(ast.Placeholder, pos)

	case token.THIS:
		p.advance()
		return p.tree.AddNode(ast.This, pos)

	case token.TRUE, token.FALSE:
		raw := p.val.Raw
		if raw == "" {
			raw = p.tok.String()
		}
		tok := p.tok
		p.advance()
		id := p.tree.AddNode(ast.LiteralBoolean, pos)
		v := token.Value{Pos: pos, Raw: raw}
		if tok == token.TRUE {
			v.Int = 1
		}
		p.tree.SetValue(id, v)
		return id

	case token.INT, token.FLOAT:
		val := p.val
		p.advance()
		id := p.tree.AddNode(ast.LiteralNumber, pos)
		p.tree.SetValue(id, val)
		return id

	case token.STRING:
		val := p.val
		p.advance()
		id := p.tree.AddNode(ast.LiteralString, pos)
		p.tree.SetValue(id, val)
		return id

	case token.INTERP_START:
		return p.parseInterpString()

	case token.LPAREN:
		p.advance()
		inner := p.parseExpr()
		p.expect(token.RPAREN)
		return inner

	case token.LBRACK:
		return p.parseList()

	case token.LBRACE:
		return p.parseStructInit()

	case token.MATCH:
		return p.parseMatch(false)

	default:
		p.errorExpected(pos, "expression")
		panic(errPanicMode)
	}
}

// parseInterpString desugars a backtick-interpolated string into a
// LiteralString node. When the string carries no embedded expression, it
// is a plain terminal node with the decoded text in Value.String; when it
// does, its children alternate literal-segment LiteralString nodes and the
// embedded expression nodes, in source order (spec.md's closed node-tag
// set has no dedicated interpolation tag, so embedding is expressed this
// way rather than introducing one).
func (p *parser) parseInterpString() ast.Expr {
	startPos := p.val.Pos
	p.advance() // consume INTERP_START

	var children []ast.NodeID
	var plain strings.Builder
	hasExpr := false

	for {
		switch p.tok {
		case token.INTERP_INNER:
			segPos, seg := p.val.Pos, p.val.String
			p.advance()
			plain.WriteString(seg)
			children = append(children, p.literalStringNode(segPos, seg))

		case token.INTERP_EXPR_OPEN:
			hasExpr = true
			p.advance()
			children = append(children, p.parseExpr())
			p.expect(token.INTERP_EXPR_CLOSE)

		case token.INTERP_END:
			p.advance()
			if !hasExpr {
				id := p.tree.AddNode(ast.LiteralString, startPos)
				p.tree.SetValue(id, token.Value{Pos: startPos, String: plain.String()})
				return id
			}
			return p.tree.AddNode(ast.LiteralString, startPos, children...)

		case token.EOF:
			p.errorExpected(p.val.Pos, "end of interpolated string")
			panic(errPanicMode)

		default:
			p.errorExpected(p.val.Pos, "interpolated string segment")
			panic(errPanicMode)
		}
	}
}

func (p *parser) literalStringNode(pos token.Pos, s string) ast.NodeID {
	id := p.tree.AddNode(ast.LiteralString, pos)
	p.tree.SetValue(id, token.Value{Pos: pos, String: s})
	return id
}

func (p *parser) parseList() ast.Expr {
	pos := p.expect(token.LBRACK)
	var elems []ast.NodeID
	for p.tok != token.RBRACK && p.tok != token.EOF {
		elems = append(elems, p.parseExpr())
		if p.tok == token.COMMA {
			p.advance()
		} else {
			break
		}
	}
	p.expect(token.RBRACK)
	return p.tree.AddNode(ast.List, pos, elems...)
}

// parseStructInit parses a struct literal: `{` (member (`,`|newline))* `}`
// where a member is `ident : expr` (field) or
// `ident : (params) ReturnType? block` (method), optionally preceded by a
// leading `_` marker flagging the member IS_PRIVATE.
func (p *parser) parseStructInit() ast.Expr {
	pos := p.expect(token.LBRACE)
	var members []ast.NodeID

	for p.tok != token.RBRACE && p.tok != token.EOF {
		p.skipNewlines()
		if p.tok == token.RBRACE {
			break
		}

		private := false
		if p.tok == token.UNDERSCORE {
			private = true
			p.advance()
		}

		namePos := p.val.Pos
		name := p.expectIdentText()
		p.expect(token.COLON)

		var member ast.NodeID
		if p.tok == token.LPAREN {
			params := p.parseParamList()
			ret := p.maybeParseReturnType()
			body := p.parseBlock()
			nameID := p.identNode(namePos, name)
			member = p.tree.AddNode(ast.StructInitMethod, namePos, withOptional(nameID, params, ret, body)...)
		} else {
			val := p.parseExpr()
			nameID := p.identNode(namePos, name)
			member = p.tree.AddNode(ast.StructInitField, namePos, nameID, val)
		}
		if private {
			p.tree.SetFlags(member, ast.IsPrivate)
		}
		members = append(members, member)

		if p.tok == token.COMMA {
			p.advance()
		}
		p.skipNewlines()
	}
	p.expect(token.RBRACE)
	return p.tree.AddNode(ast.StructInit, pos, members...)
}

func (p *parser) identNode(pos token.Pos, name string) ast.NodeID {
	id := p.tree.AddNode(ast.Identifier, pos)
	p.tree.SetValue(id, token.Value{Pos: pos, Raw: name})
	return id
}

// withOptional filters out ast.NoNode placeholders from an ordered list of
// optional children, preserving the order of those actually present.
func withOptional(ids ...ast.NodeID) []ast.NodeID {
	out := make([]ast.NodeID, 0, len(ids))
	for _, id := range ids {
		if id != ast.NoNode {
			out = append(out, id)
		}
	}
	return out
}
