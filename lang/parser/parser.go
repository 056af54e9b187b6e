// Package parser implements suru's recursive-descent parser: it consumes
// the scanner's token stream and emits a flat ast.Tree, enforcing a
// configurable maximum recursion depth (spec.md §4.3).
package parser

import (
	"errors"

	"github.com/suru-lang/suru/lang/ast"
	"github.com/suru-lang/suru/lang/diag"
	"github.com/suru-lang/suru/lang/intern"
	"github.com/suru-lang/suru/lang/scanner"
	"github.com/suru-lang/suru/lang/token"
)

// DefaultMaxDepth is the default recursion depth limit (spec.md §4.3).
const DefaultMaxDepth = 256

// Parse parses src as a single translation unit named filename and returns
// its AST. A non-nil error is always a *diag.Bag; it is non-empty whenever
// any diagnostic (lexer or parser) was recorded, even if an AST was also
// produced. If a fatal syntactic mismatch aborts parsing, the returned
// tree may be partial.
func Parse(filename string, src []byte, pool *intern.Pool, maxDepth int) (*ast.Tree, error) {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}

	var p parser
	p.maxDepth = maxDepth
	p.pool = pool
	p.tree = ast.NewTree(filename)
	p.sc.Init(src, pool, p.errors.Add)
	p.advance()

	p.parseProgram()
	return p.tree, p.errors.Err()
}

type parser struct {
	sc       scanner.Scanner
	errors   diag.Bag
	tree     *ast.Tree
	pool     *intern.Pool
	maxDepth int
	depth    int

	tok token.Token
	val token.Value

	// peekBuf holds tokens already pulled from the scanner but not yet
	// made current, used by the two-token statement-disambiguation
	// lookahead (spec.md §4.3). The scanner itself has no backtracking.
	peekBuf []lookahead
}

type lookahead struct {
	tok token.Token
	val token.Value
}

// errPanicMode is recovered at statement boundaries: the parser
// abandons the current production and resynchronizes (spec.md §4.3:
// "it does not attempt deep recovery — on a fatal syntactic mismatch it
// aborts the current production").
var errPanicMode = errors.New("parser: panic mode")

// scanFiltered pulls the next token directly from the scanner, skipping
// COMMENT/DOC tokens, which carry no grammatical meaning.
func (p *parser) scanFiltered() lookahead {
	var val token.Value
	tok := p.sc.Scan(&val)
	for tok == token.COMMENT || tok == token.DOC {
		tok = p.sc.Scan(&val)
	}
	return lookahead{tok, val}
}

func (p *parser) advance() {
	if len(p.peekBuf) > 0 {
		la := p.peekBuf[0]
		p.peekBuf = p.peekBuf[1:]
		p.tok, p.val = la.tok, la.val
		return
	}
	la := p.scanFiltered()
	p.tok, p.val = la.tok, la.val
}

// peek returns the token n positions past the current one (n=1 is the
// token immediately following) without consuming it.
func (p *parser) peek(n int) token.Token {
	for len(p.peekBuf) < n {
		p.peekBuf = append(p.peekBuf, p.scanFiltered())
	}
	return p.peekBuf[n-1].tok
}

// skipNewlines consumes any run of NEWLINE tokens; blank lines carry no
// grammatical meaning outside of statement separation.
func (p *parser) skipNewlines() {
	for p.tok == token.NEWLINE {
		p.advance()
	}
}

func (p *parser) enter() {
	p.depth++
	if p.depth > p.maxDepth {
		p.error(diag.MaxDepthExceeded, p.val.Pos, "maximum parser recursion depth exceeded")
		panic(errPanicMode)
	}
}

func (p *parser) exit() { p.depth-- }

func (p *parser) error(kind diag.Kind, pos token.Pos, msg string) {
	p.errors.Add(kind, pos, msg)
}

func (p *parser) errorExpected(pos token.Pos, what string) {
	msg := "expected " + what
	if pos == p.val.Pos {
		if lit := p.tok.Literal(p.val); lit != "" {
			msg += ", found " + lit
		} else {
			msg += ", found " + p.tok.GoString()
		}
	}
	p.error(diag.UnexpectedToken, pos, msg)
}

// expect consumes the current token and returns its position if it is one
// of toks; otherwise it records UnexpectedToken and aborts the current
// production via errPanicMode.
func (p *parser) expect(toks ...token.Token) token.Pos {
	pos := p.val.Pos
	for _, tok := range toks {
		if p.tok == tok {
			p.advance()
			return pos
		}
	}

	what := toks[0].GoString()
	for _, tok := range toks[1:] {
		what += " or " + tok.GoString()
	}
	p.errorExpected(pos, what)
	panic(errPanicMode)
}

func (p *parser) at(toks ...token.Token) bool {
	for _, tok := range toks {
		if p.tok == tok {
			return true
		}
	}
	return false
}

// intern canonicalizes s through the parser's string pool, if any.
func (p *parser) intern(s string) string {
	if p.pool != nil {
		return p.pool.Intern(s).String()
	}
	return s
}
