package scanner

import (
	"strconv"
	"strings"

	"github.com/suru-lang/suru/lang/diag"
	"github.com/suru-lang/suru/lang/token"
)

// number scans an INT or FLOAT literal: an optional 0b/0o/0x base prefix
// (decimal otherwise), digits with optional '_' separators, an optional
// fractional part and/or exponent, and an optional width suffix from
// token.WidthSuffixes (e.g. "42i32", "1.5f64").
func (s *Scanner) number(val *token.Value) token.Token {
	start := s.off
	tok := token.INT
	base := 10
	prefix := rune(0)
	digsep := 0
	invalid := -1

	if s.cur != '.' {
		if s.cur == '0' {
			s.advance()
			switch lower(s.cur) {
			case 'x':
				s.advance()
				base, prefix = 16, 'x'
			case 'o':
				s.advance()
				base, prefix = 8, 'o'
			case 'b':
				s.advance()
				base, prefix = 2, 'b'
			}
		}
		digsep |= s.digits(base, &invalid)
	}

	if s.cur == '.' {
		tok = token.FLOAT
		if prefix == 'o' || prefix == 'b' {
			s.errorAt(diag.BadNumberSuffix, "invalid radix point in "+litname(prefix))
		}
		s.advance()
		digsep |= s.digits(base, &invalid)
	}

	if digsep&1 == 0 {
		s.errorAt(diag.BadNumberSuffix, litname(prefix)+" has no digits")
	}

	if e := lower(s.cur); e == 'e' && prefix == 0 {
		s.advance()
		tok = token.FLOAT
		if s.cur == '+' || s.cur == '-' {
			s.advance()
		}
		ds := s.digits(10, nil)
		if ds&1 == 0 {
			s.errorAt(diag.BadNumberSuffix, "exponent has no digits")
		}
	}

	lit := string(s.src[start:s.off])
	if tok == token.INT && invalid >= 0 {
		s.errorAt(diag.BadNumberSuffix, "invalid digit in "+litname(prefix))
	}
	if digsep&2 != 0 {
		if i := invalidSep(lit); i >= 0 {
			s.errorAt(diag.BadNumberSuffix, "'_' must separate successive digits")
		}
	}

	suffix := s.widthSuffix()

	val.Raw = lit + suffix
	val.Base = base
	val.Suffix = suffix
	if tok == token.INT {
		v, err := numberToInt(lit, base)
		if err != nil {
			s.errorAt(diag.BadNumberSuffix, "integer literal value out of range")
		}
		val.Int = v
	} else {
		v, err := numberToFloat(lit)
		if err != nil {
			s.errorAt(diag.BadNumberSuffix, "float literal value out of range")
		}
		val.Float = v
	}
	return tok
}

// widthSuffix consumes an immediately-following width suffix such as "i32"
// or "f64" if the text following the number matches one recognized in
// token.WidthSuffixes; otherwise it consumes nothing.
func (s *Scanner) widthSuffix() string {
	if !isLetter(s.cur) {
		return ""
	}
	start := s.off
	for isLetter(s.cur) || isDigit(s.cur) {
		s.advance()
	}
	cand := string(s.src[start:s.off])
	if token.WidthSuffixes[cand] {
		return cand
	}
	s.errorAt(diag.BadNumberSuffix, "invalid number width suffix "+strconv.Quote(cand))
	return cand
}

func isHexadecimal(r rune) bool {
	return isDigit(r) || 'a' <= r && r <= 'f' || 'A' <= r && r <= 'F'
}

// digits accepts the sequence { digit | '_' }. Bit 0 of the result is set
// if any digit was seen, bit 1 if any '_' separator was seen. If base <= 10
// and a digit >= base is found, its offset is recorded in *invalid (once).
func (s *Scanner) digits(base int, invalid *int) (digsep int) {
	if base <= 10 {
		max := rune('0' + base)
		for isDigit(s.cur) || s.cur == '_' {
			ds := 1
			if s.cur == '_' {
				ds = 2
			} else if s.cur >= max && invalid != nil && *invalid < 0 {
				*invalid = s.off
			}
			digsep |= ds
			s.advance()
		}
	} else {
		for isHexadecimal(s.cur) || s.cur == '_' {
			ds := 1
			if s.cur == '_' {
				ds = 2
			}
			digsep |= ds
			s.advance()
		}
	}
	return digsep
}

// invalidSep returns the index of the first invalid '_' separator in x, or
// -1 if all separators sit strictly between two digits.
func invalidSep(x string) int {
	x1 := ' '
	d := '.'
	i := 0

	if len(x) >= 2 && x[0] == '0' {
		x1 = lower(rune(x[1]))
		if x1 == 'x' || x1 == 'o' || x1 == 'b' {
			d = '0'
			i = 2
		}
	}

	for ; i < len(x); i++ {
		p := d
		d = rune(x[i])
		switch {
		case d == '_':
			if p != '0' {
				return i
			}
		case isDigit(d) || x1 == 'x' && isHexadecimal(d):
			d = '0'
		default:
			if p == '_' {
				return i - 1
			}
			d = '.'
		}
	}
	if d == '_' {
		return len(x) - 1
	}
	return -1
}

func litname(prefix rune) string {
	switch prefix {
	case 'x':
		return "hexadecimal literal"
	case 'o':
		return "octal literal"
	case 'b':
		return "binary literal"
	}
	return "decimal literal"
}

func lower(ch rune) rune { return ('a' - 'A') | ch }

func numberToInt(lit string, base int) (int64, error) {
	if base != 10 {
		lit = lit[2:]
	}
	return strconv.ParseInt(strings.ReplaceAll(lit, "_", ""), base, 64)
}

func numberToFloat(lit string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(lit, "_", ""), 64)
}
