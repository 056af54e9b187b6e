package scanner

import (
	"unicode/utf8"

	"github.com/suru-lang/suru/lang/diag"
)

var simpleEscapes = map[rune]rune{
	'b':  '\b',
	'e':  '\x1b',
	'n':  '\n',
	'r':  '\r',
	't':  '\t',
	'\\': '\\',
	'"':  '"',
	'\'': '\'',
	'`':  '`',
}

// shortString scans a plain string literal delimited by opening (" or ');
// the opening quote has already been consumed. It returns the raw source
// text (quotes included) and the decoded value.
func (s *Scanner) shortString(opening rune) (raw, decoded string) {
	start := s.off - 1 // opening quote already consumed
	s.sb.Reset()

	for {
		cur := s.cur
		if cur == -1 || cur == '\n' {
			s.errorAt(diag.UnterminatedString, "string literal not terminated")
			break
		}
		if cur == opening {
			s.advance()
			break
		}
		if cur == '\\' {
			s.advance()
			s.escape()
			continue
		}
		s.sb.WriteRune(cur)
		s.advance()
	}
	return string(s.src[start:s.off]), s.sb.String()
}

// escape parses one escape sequence, with the leading backslash already
// consumed, and writes its decoded rune(s) to s.sb.
func (s *Scanner) escape() {
	cur := s.cur
	if r, ok := simpleEscapes[cur]; ok {
		s.sb.WriteRune(r)
		s.advance()
		return
	}

	switch {
	case isOctalDigit(cur):
		var v int
		for i := 0; i < 3; i++ {
			if !isOctalDigit(s.cur) {
				s.errorAt(diag.BadEscape, "octal escape sequence requires exactly 3 digits")
				return
			}
			v = v*8 + int(s.cur-'0')
			s.advance()
		}
		s.sb.WriteByte(byte(v))

	case cur == 'x':
		s.advance()
		v, ok := s.hexDigits(2)
		if !ok {
			s.errorAt(diag.BadEscape, "\\x escape sequence requires exactly 2 hex digits")
			return
		}
		s.sb.WriteByte(byte(v))

	case cur == 'u':
		s.advance()
		v, ok := s.hexDigits(4)
		if !ok {
			s.errorAt(diag.BadEscape, "\\u escape sequence requires exactly 4 hex digits")
			return
		}
		s.writeEscapedRune(rune(v))

	case cur == 'U':
		s.advance()
		v, ok := s.hexDigits(8)
		if !ok {
			s.errorAt(diag.BadEscape, "\\U escape sequence requires exactly 8 hex digits")
			return
		}
		s.writeEscapedRune(rune(v))

	case cur == -1:
		s.errorAt(diag.BadEscape, "escape sequence not terminated")

	default:
		s.errorAt(diag.BadEscape, "unknown escape sequence '\\"+string(cur)+"'")
		s.advance()
	}
}

func (s *Scanner) writeEscapedRune(r rune) {
	if r > utf8.MaxRune || (r >= 0xD800 && r <= 0xDFFF) {
		s.errorAt(diag.BadEscape, "escape sequence is not a valid Unicode code point")
		s.sb.WriteRune(utf8.RuneError)
		return
	}
	s.sb.WriteRune(r)
}

func (s *Scanner) hexDigits(n int) (v uint32, ok bool) {
	for i := 0; i < n; i++ {
		if !isHexadecimal(s.cur) {
			return 0, false
		}
		v = v*16 + uint32(hexVal(s.cur))
		s.advance()
	}
	return v, true
}

func isOctalDigit(r rune) bool { return '0' <= r && r <= '7' }

func hexVal(r rune) int {
	switch {
	case '0' <= r && r <= '9':
		return int(r - '0')
	case 'a' <= r && r <= 'f':
		return int(r-'a') + 10
	case 'A' <= r && r <= 'F':
		return int(r-'A') + 10
	}
	return 0
}
