package token

// Value carries the payload associated with a scanned token: its position,
// raw source text, and — for literal tokens — the decoded value.
type Value struct {
	Pos Pos    // position of the first byte of the token
	Raw string // exact source text, unescaped

	// Numbers
	Int    int64
	Float  float64
	Base   int    // 2, 8, 10 or 16; meaningful for INT/FLOAT only
	Suffix string // width suffix (e.g. "i32"), empty if none

	// Strings
	String string // decoded value, meaningful for STRING/INTERP_* tokens
	Depth  int    // backtick run length N, meaningful for INTERP_* tokens
}

// Literal returns a human-readable rendering of the token's value, suitable
// for inclusion in "expected X, found Y" diagnostics.
func (tok Token) Literal(val Value) string {
	switch tok {
	case IDENT, UNDERSCORE:
		return val.Raw
	case STRING:
		return `"` + val.String + `"`
	case COMMENT, DOC:
		return val.String
	case INT, FLOAT:
		return val.Raw
	case ILLEGAL:
		return ""
	default:
		return ""
	}
}
