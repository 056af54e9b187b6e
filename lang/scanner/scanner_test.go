package scanner_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/suru-lang/suru/lang/diag"
	"github.com/suru-lang/suru/lang/intern"
	"github.com/suru-lang/suru/lang/scanner"
	"github.com/suru-lang/suru/lang/token"
)

type scanResult struct {
	tok token.Token
	val token.Value
}

func scanAll(t *testing.T, src string) ([]scanResult, []string) {
	t.Helper()

	var errs []string
	var s scanner.Scanner
	pool := intern.New(8)
	s.Init([]byte(src), pool, func(kind diag.Kind, pos token.Pos, msg string) {
		errs = append(errs, msg)
	})

	var out []scanResult
	for {
		var val token.Value
		tok := s.Scan(&val)
		out = append(out, scanResult{tok, val})
		if tok == token.EOF {
			break
		}
	}
	return out, errs
}

func toks(results []scanResult) []token.Token {
	out := make([]token.Token, len(results))
	for i, r := range results {
		out[i] = r.tok
	}
	return out
}

func TestScanIdentifiersAndKeywords(t *testing.T) {
	results, errs := scanAll(t, "module import x _ return")
	require.Empty(t, errs)
	require.Equal(t, []token.Token{
		token.MODULE, token.IMPORT, token.IDENT, token.UNDERSCORE, token.RETURN, token.EOF,
	}, toks(results))
	require.Equal(t, "x", results[2].val.Raw)
}

func TestScanNewlineAndEOF(t *testing.T) {
	results, errs := scanAll(t, "x\ny")
	require.Empty(t, errs)
	require.Equal(t, []token.Token{token.IDENT, token.NEWLINE, token.IDENT, token.EOF}, toks(results))
}

func TestScanIntegers(t *testing.T) {
	results, errs := scanAll(t, "42 0x2A 0o52 0b101010 1_000")
	require.Empty(t, errs)
	for i, want := range []int64{42, 42, 42, 42, 1000} {
		require.Equal(t, token.INT, results[i].tok)
		require.Equal(t, want, results[i].val.Int)
	}
}

func TestScanFloats(t *testing.T) {
	results, errs := scanAll(t, "1.5 2.0e3 .5")
	require.Empty(t, errs)
	require.Equal(t, token.FLOAT, results[0].tok)
	require.InDelta(t, 1.5, results[0].val.Float, 0)
	require.Equal(t, token.FLOAT, results[1].tok)
	require.InDelta(t, 2000.0, results[1].val.Float, 0)
	require.Equal(t, token.FLOAT, results[2].tok)
	require.InDelta(t, 0.5, results[2].val.Float, 0)
}

func TestScanNumberWidthSuffix(t *testing.T) {
	results, errs := scanAll(t, "42i32 1.5f64")
	require.Empty(t, errs)
	require.Equal(t, "i32", results[0].val.Suffix)
	require.Equal(t, "f64", results[1].val.Suffix)
}

func TestScanInvalidWidthSuffix(t *testing.T) {
	_, errs := scanAll(t, "42q9")
	require.NotEmpty(t, errs)
}

func TestScanPlainString(t *testing.T) {
	results, errs := scanAll(t, `"hello\nworld"`)
	require.Empty(t, errs)
	require.Equal(t, token.STRING, results[0].tok)
	require.Equal(t, "hello\nworld", results[0].val.String)
}

func TestScanStringEscapes(t *testing.T) {
	results, errs := scanAll(t, `"\b\e\t\\\"\'\x41B\U00000043\101"`)
	require.Empty(t, errs)
	require.Equal(t, "\b\x1b\t\\\"'ABCA", results[0].val.String)
}

func TestScanStringUnterminated(t *testing.T) {
	_, errs := scanAll(t, `"abc`)
	require.NotEmpty(t, errs)
}

func TestScanLineComment(t *testing.T) {
	results, errs := scanAll(t, "// hello\nx")
	require.Empty(t, errs)
	require.Equal(t, token.COMMENT, results[0].tok)
	require.Equal(t, " hello", results[0].val.Raw)
}

func TestScanDocBlock(t *testing.T) {
	results, errs := scanAll(t, "====\nhello\n====\nx")
	require.Empty(t, errs)
	require.Equal(t, token.DOC, results[0].tok)
	require.Equal(t, "\nhello\n", results[0].val.String)
}

func TestScanInterpolationSimple(t *testing.T) {
	results, errs := scanAll(t, "`hi {x} bye`")
	require.Empty(t, errs)
	require.Equal(t, []token.Token{
		token.INTERP_START, token.INTERP_INNER, token.INTERP_EXPR_OPEN,
		token.IDENT, token.INTERP_EXPR_CLOSE, token.INTERP_INNER, token.INTERP_END, token.EOF,
	}, toks(results))
}

func TestScanInterpolationNestedBraces(t *testing.T) {
	results, errs := scanAll(t, "`{ {a: 1} }`")
	require.Empty(t, errs)
	require.Equal(t, []token.Token{
		token.INTERP_START, token.INTERP_EXPR_OPEN,
		token.LBRACE, token.IDENT, token.COLON, token.INT, token.RBRACE,
		token.INTERP_EXPR_CLOSE, token.INTERP_END, token.EOF,
	}, toks(results))
}

func TestScanInterpolationDeepDelimiter(t *testing.T) {
	results, errs := scanAll(t, "``text with ` single backtick``")
	require.Empty(t, errs)
	require.Equal(t, token.INTERP_START, results[0].tok)
	require.Equal(t, 2, results[0].val.Depth)
	require.Equal(t, token.INTERP_END, results[len(results)-2].tok)
}

func TestScanIllegalByte(t *testing.T) {
	_, errs := scanAll(t, "!")
	require.NotEmpty(t, errs)
}

func TestScanPunctuation(t *testing.T) {
	results, errs := scanAll(t, "( ) [ ] { } , . | + - < > = :")
	require.Empty(t, errs)
	require.Equal(t, []token.Token{
		token.LPAREN, token.RPAREN, token.LBRACK, token.RBRACK,
		token.LBRACE, token.RBRACE, token.COMMA, token.DOT, token.PIPE,
		token.PLUS, token.MINUS, token.LT, token.GT, token.EQ, token.COLON, token.EOF,
	}, toks(results))
}
