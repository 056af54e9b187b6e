// Package scanner implements the suru tokenizer: a context-sensitive lexer
// that additionally tracks backtick-interpolated string state (see
// interp.go). The byte-walking discipline (advance/peek, the digit and
// escape-sequence helpers in number.go/string.go) is adapted from the
// teacher's own scanner, which in turn credits the Go standard library's
// go/scanner.
package scanner

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/suru-lang/suru/lang/diag"
	"github.com/suru-lang/suru/lang/intern"
	"github.com/suru-lang/suru/lang/token"
)

// ErrorHandler is called for every lexical error encountered; the scanner
// never stops on an error, it reports and keeps going (spec.md §4.2).
type ErrorHandler func(kind diag.Kind, pos token.Pos, msg string)

// Scanner tokenizes a single translation unit.
type Scanner struct {
	src  []byte
	pool *intern.Pool
	err  ErrorHandler

	sb strings.Builder

	cur       rune
	off, roff int
	line, col int

	invalidByte byte

	interp interpStack
}

// Init prepares s to scan src. errHandler, if non-nil, is invoked for every
// lexical diagnostic; pool, if non-nil, is used to intern identifier text.
func (s *Scanner) Init(src []byte, pool *intern.Pool, errHandler ErrorHandler) {
	s.src = src
	s.pool = pool
	s.err = errHandler
	s.sb.Reset()
	s.invalidByte = 0
	s.interp = s.interp[:0]

	s.cur = ' '
	s.off, s.roff = 0, 0
	s.line, s.col = 1, 0
	s.advance()
}

func (s *Scanner) pos() token.Pos { return token.MakePos(s.line, s.col) }

func (s *Scanner) error(kind diag.Kind, pos token.Pos, msg string) {
	if s.err != nil {
		s.err(kind, pos, msg)
	}
}

func (s *Scanner) errorAt(kind diag.Kind, msg string) { s.error(kind, s.pos(), msg) }

func (s *Scanner) peek() byte {
	if s.roff < len(s.src) {
		return s.src[s.roff]
	}
	return 0
}

// peekRunLen counts the run of byte b starting at the current character
// (inclusive) without consuming any input.
func (s *Scanner) peekRunLen(b byte) int {
	if s.cur != rune(b) {
		return 0
	}
	n := 1
	for s.off+n < len(s.src) && s.src[s.off+n] == b {
		n++
	}
	return n
}

// advance reads the next rune into s.cur; s.cur < 0 means end of input.
func (s *Scanner) advance() {
	if s.cur == '\n' {
		s.line++
		s.col = 0
	}
	if s.roff >= len(s.src) {
		s.off = len(s.src)
		s.cur = -1
		return
	}

	s.off = s.roff
	s.invalidByte = 0
	r, w := rune(s.src[s.roff]), 1
	if r >= utf8.RuneSelf {
		r, w = utf8.DecodeRune(s.src[s.roff:])
		if r == utf8.RuneError && w == 1 {
			s.errorAt(diag.UnexpectedByte, "illegal UTF-8 encoding")
			s.invalidByte = s.src[s.roff]
		}
	}
	s.roff += w
	s.cur = r
	s.col++
}

// advanceIf advances and returns true if the current char is one of matches.
func (s *Scanner) advanceIf(matches ...byte) bool {
	for _, m := range matches {
		if s.cur == rune(m) {
			s.advance()
			return true
		}
	}
	return false
}

// countRun advances past a maximal run of ch and returns its length.
func (s *Scanner) countRun(ch rune) int {
	n := 0
	for s.cur == ch {
		s.advance()
		n++
	}
	return n
}

func isLetter(r rune) bool {
	return 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z' || r == '_'
}

func isDigit(r rune) bool { return '0' <= r && r <= '9' }

func isWhitespace(r rune) bool { return r == ' ' || r == '\t' || r == '\r' }

// Scan returns the next token. When the scanner is positioned inside the
// literal body of an interpolated string, Scan dispatches to the
// interpolation sub-machine (interp.go) instead of the normal tokenizer.
func (s *Scanner) Scan(val *token.Value) token.Token {
	if fr := s.interp.top(); fr != nil && !fr.inExpr {
		return s.scanInterpSegment(val)
	}
	return s.scanNormal(val)
}

func (s *Scanner) scanNormal(val *token.Value) token.Token {
	s.skipWhitespace()

	pos := s.pos()
	*val = token.Value{Pos: pos}

	switch cur := s.cur; {
	case isLetter(cur):
		lit := s.ident()
		if lit == "_" {
			return token.UNDERSCORE
		}
		if s.pool != nil {
			lit = s.pool.Intern(lit).String()
		}
		val.Raw = lit
		return token.LookupKw(lit)

	case isDigit(cur) || (cur == '.' && isDigit(rune(s.peek()))):
		return s.number(val)

	case cur == '\n':
		s.advance()
		return token.NEWLINE

	case cur == -1:
		return token.EOF
	}

	switch cur := s.cur; cur {
	case '"', '\'':
		s.advance()
		lit, decoded := s.shortString(cur)
		val.Raw, val.String = lit, decoded
		return token.STRING

	case '`':
		n := s.countRun('`')
		val.Depth = n
		val.Raw = strings.Repeat("`", n)
		s.interp.push(n)
		return token.INTERP_START

	case '(':
		s.advance()
		return token.LPAREN
	case ')':
		s.advance()
		return token.RPAREN
	case '[':
		s.advance()
		return token.LBRACK
	case ']':
		s.advance()
		return token.RBRACK
	case ',':
		s.advance()
		return token.COMMA
	case '.':
		s.advance()
		return token.DOT
	case '|':
		s.advance()
		return token.PIPE
	case '+':
		s.advance()
		return token.PLUS
	case '-':
		s.advance()
		return token.MINUS
	case '<':
		s.advance()
		return token.LT
	case '>':
		s.advance()
		return token.GT
	case '=':
		if n := s.peekRunLen('='); n >= 4 {
			lit, body := s.docBlock(n)
			val.Raw, val.String = lit, body
			return token.DOC
		}
		s.advance()
		return token.EQ
	case '/':
		if s.peek() == '/' {
			s.advance()
			s.advance()
			lit := s.lineComment()
			val.Raw, val.String = lit, lit
			return token.COMMENT
		}
		s.errorAt(diag.UnexpectedByte, "unexpected byte '/'")
		s.advance()
		return token.ILLEGAL
	case ':':
		s.advance()
		return token.COLON

	case '{':
		return s.openBrace()
	case '}':
		return s.closeBrace(val)

	default:
		if cur == utf8.RuneError && s.invalidByte > 0 {
			cur = rune(s.invalidByte)
			s.invalidByte = 0
		}
		s.errorAt(diag.UnexpectedByte, "unexpected byte "+quoteRune(cur))
		s.advance()
		return token.ILLEGAL
	}
}

// openBrace handles '{'. Inside the expression portion of an
// interpolation, braces must be counted (brace_depth) so that a later run
// of '}' can be correctly judged against the interpolation's own closing
// marker rather than against a nested struct/map literal.
func (s *Scanner) openBrace() token.Token {
	s.advance()
	if fr := s.interp.top(); fr != nil && fr.inExpr {
		fr.braceDepth++
	}
	return token.LBRACE
}

func (s *Scanner) closeBrace(val *token.Value) token.Token {
	fr := s.interp.top()
	if fr == nil || !fr.inExpr || fr.braceDepth > 0 {
		if fr != nil && fr.inExpr && fr.braceDepth > 0 {
			fr.braceDepth--
		}
		s.advance()
		return token.RBRACE
	}

	n := s.countRun('}')
	if n == fr.depth {
		fr.inExpr = false
		val.Depth = n
		val.Raw = strings.Repeat("}", n)
		return token.INTERP_EXPR_CLOSE
	}
	s.errorAt(diag.UnexpectedByte, "interpolation expression close run does not match open run")
	return token.ILLEGAL
}

func (s *Scanner) skipWhitespace() {
	for isWhitespace(s.cur) {
		s.advance()
	}
}

func (s *Scanner) ident() string {
	start := s.off
	for isLetter(s.cur) || isDigit(s.cur) {
		s.advance()
	}
	return string(s.src[start:s.off])
}

func quoteRune(r rune) string {
	if r < 0 {
		return "EOF"
	}
	if !unicode.IsPrint(r) {
		return "<control>"
	}
	return "'" + string(r) + "'"
}
