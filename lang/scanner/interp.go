package scanner

import (
	"strings"

	"github.com/suru-lang/suru/lang/diag"
	"github.com/suru-lang/suru/lang/token"
)

// interpFrame tracks one active backtick-interpolated string. Per spec.md's
// design notes, the interpolation machine is isolated behind a two-counter
// discipline: depth is the backtick run length N that opened this string
// (and therefore also the brace-run length that toggles embedded
// expressions); braceDepth counts ordinary '{'/'}' pairs opened while
// inExpr, so that a run of '}' is only interpreted as the interpolation's
// own closing marker when no such pair is still open.
type interpFrame struct {
	depth      int
	braceDepth int
	inExpr     bool
}

// interpStack is a stack of active interpolation frames; nesting occurs
// when an embedded expression itself contains another interpolated string.
type interpStack []*interpFrame

func (st *interpStack) push(depth int) {
	*st = append(*st, &interpFrame{depth: depth})
}

func (st *interpStack) pop() {
	if n := len(*st); n > 0 {
		*st = (*st)[:n-1]
	}
}

func (st interpStack) top() *interpFrame {
	if len(st) == 0 {
		return nil
	}
	return st[len(st)-1]
}

// scanInterpSegment scans the string-body portion of an interpolated
// string: a literal segment up to (but not including) either the closing
// delimiter or the opening of an embedded expression, both of which are
// runs of exactly fr.depth of '`' or '{' respectively.
func (s *Scanner) scanInterpSegment(val *token.Value) token.Token {
	fr := s.interp.top()
	pos := s.pos()
	s.sb.Reset()

	for s.cur != -1 {
		if n := s.peekRunLen('`'); n == fr.depth {
			break
		}
		if n := s.peekRunLen('{'); n == fr.depth {
			break
		}
		s.sb.WriteRune(s.cur)
		s.advance()
	}

	if s.sb.Len() > 0 {
		*val = token.Value{Pos: pos, Raw: s.sb.String(), String: s.sb.String()}
		return token.INTERP_INNER
	}

	if s.cur == -1 {
		s.error(diag.UnterminatedString, pos, "interpolated string not terminated")
		s.interp.pop()
		*val = token.Value{Pos: pos}
		return token.INTERP_END
	}

	if n := s.peekRunLen('`'); n == fr.depth {
		for i := 0; i < n; i++ {
			s.advance()
		}
		s.interp.pop()
		*val = token.Value{Pos: pos, Depth: n, Raw: strings.Repeat("`", n)}
		return token.INTERP_END
	}

	n := s.peekRunLen('{')
	for i := 0; i < n; i++ {
		s.advance()
	}
	fr.inExpr = true
	fr.braceDepth = 0
	*val = token.Value{Pos: pos, Depth: n, Raw: strings.Repeat("{", n)}
	return token.INTERP_EXPR_OPEN
}
