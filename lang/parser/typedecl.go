package parser

import (
	"github.com/suru-lang/suru/lang/ast"
	"github.com/suru-lang/suru/lang/token"
)

// parseTypeDecl parses one of the seven `type Name: Body` forms (spec.md
// §4.3): `type TypeName ':' TypeBody`, where TypeBody is unit, alias,
// union, struct, intersection or function-type.
func (p *parser) parseTypeDecl() ast.NodeID {
	pos := p.expect(token.TYPE)
	name := p.parseTypeName()
	p.expect(token.COLON)
	body := p.parseTypeBody()
	return p.tree.AddNode(ast.TypeDecl, pos, name, body)
}

// parseTypeName parses an identifier plus an optional `<T, U: Constraint>`
// generic parameter list.
func (p *parser) parseTypeName() ast.NodeID {
	pos := p.val.Pos
	name := p.expectIdentText()
	nameID := p.identNode(pos, name)

	var params ast.NodeID = ast.NoNode
	if p.tok == token.LT {
		params = p.parseTypeParams()
	}
	return p.tree.AddNode(ast.TypeName, pos, withOptional(nameID, params)...)
}

func (p *parser) parseTypeParams() ast.NodeID {
	pos := p.expect(token.LT)
	var params []ast.NodeID
	for p.tok != token.GT && p.tok != token.EOF {
		params = append(params, p.parseTypeParam())
		if p.tok == token.COMMA {
			p.advance()
		} else {
			break
		}
	}
	p.expect(token.GT)
	return p.tree.AddNode(ast.TypeParams, pos, params...)
}

// parseTypeParam parses one generic parameter: `T` or `T: Constraint`.
func (p *parser) parseTypeParam() ast.NodeID {
	pos := p.val.Pos
	name := p.expectIdentText()
	nameID := p.identNode(pos, name)

	var constraint ast.NodeID = ast.NoNode
	if p.tok == token.COLON {
		p.advance()
		ref := p.parseTypeAnnotation()
		constraint = p.tree.AddNode(ast.TypeConstraint, pos, ref)
	}
	return p.tree.AddNode(ast.TypeParam, pos, withOptional(nameID, constraint)...)
}

// parseTypeBody parses the body that follows a type declaration's ':'. Its
// shape is unwrapped where the grammar already disambiguates it: unit and
// alias reduce to an empty TypeBody or a bare TypeAnnotation, while union,
// struct, intersection and function-type bodies are returned as their own
// node directly (no extra wrapper around them).
func (p *parser) parseTypeBody() ast.NodeID {
	pos := p.val.Pos

	switch p.tok {
	case token.NEWLINE, token.EOF, token.RBRACE:
		return p.tree.AddNode(ast.TypeBody, pos)

	case token.LBRACE:
		first := p.parseStructBody()
		if p.tok == token.PLUS {
			return p.parseIntersectionType(pos, first)
		}
		return first

	case token.LPAREN:
		return p.parseFunctionType()

	case token.IDENT:
		first := p.parseTypeOperand()
		switch p.tok {
		case token.PLUS:
			return p.parseIntersectionType(pos, first)
		case token.COMMA:
			return p.parseUnionTypeList(pos, first)
		default:
			return first
		}

	default:
		p.errorExpected(pos, "type body")
		panic(errPanicMode)
	}
}

// parseTypeOperand parses one operand of an intersection type: a type
// reference or a struct body (spec.md §4.3).
func (p *parser) parseTypeOperand() ast.NodeID {
	if p.tok == token.LBRACE {
		return p.parseStructBody()
	}
	return p.parseTypeAnnotation()
}

func (p *parser) parseIntersectionType(pos token.Pos, first ast.NodeID) ast.NodeID {
	operands := []ast.NodeID{first}
	for p.tok == token.PLUS {
		p.advance()
		operands = append(operands, p.parseTypeOperand())
	}
	return p.tree.AddNode(ast.IntersectionType, pos, operands...)
}

func (p *parser) parseUnionTypeList(pos token.Pos, first ast.NodeID) ast.NodeID {
	refs := []ast.NodeID{first}
	for p.tok == token.COMMA {
		p.advance()
		refs = append(refs, p.parseTypeAnnotation())
	}
	return p.tree.AddNode(ast.UnionTypeList, pos, refs...)
}

// parseStructBody parses `{` (field|method (','|newline))* `}`. A field is
// `identifier TypeName`; a method is `identifier ':' (params) ReturnType?`
// — the colon is what disambiguates a method from a field.
func (p *parser) parseStructBody() ast.NodeID {
	pos := p.expect(token.LBRACE)
	var members []ast.NodeID

	p.skipNewlines()
	for p.tok != token.RBRACE && p.tok != token.EOF {
		memberPos := p.val.Pos
		name := p.expectIdentText()
		nameID := p.identNode(memberPos, name)

		var member ast.NodeID
		if p.tok == token.COLON {
			p.advance()
			params := p.parseParamList()
			ret := p.maybeParseReturnType()
			member = p.tree.AddNode(ast.StructMethod, memberPos, withOptional(nameID, params, ret)...)
		} else {
			typeAnn := p.parseTypeAnnotation()
			member = p.tree.AddNode(ast.StructField, memberPos, nameID, typeAnn)
		}
		members = append(members, member)

		if p.tok == token.COMMA {
			p.advance()
		}
		p.skipNewlines()
	}
	p.expect(token.RBRACE)
	return p.tree.AddNode(ast.StructBody, pos, members...)
}

// parseFunctionType parses `(types) ReturnType`: a function type, whose
// parameters name only types (FunctionTypeParams), unlike a FunctionDecl's
// named ParamList.
func (p *parser) parseFunctionType() ast.NodeID {
	pos := p.expect(token.LPAREN)
	var params []ast.NodeID
	for p.tok != token.RPAREN && p.tok != token.EOF {
		params = append(params, p.parseTypeAnnotation())
		if p.tok == token.COMMA {
			p.advance()
		} else {
			break
		}
	}
	p.expect(token.RPAREN)
	paramsNode := p.tree.AddNode(ast.FunctionTypeParams, pos, params...)
	ret := p.parseTypeAnnotation()
	return p.tree.AddNode(ast.FunctionType, pos, paramsNode, ret)
}
