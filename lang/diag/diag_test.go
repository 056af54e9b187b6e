package diag_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/suru-lang/suru/lang/diag"
	"github.com/suru-lang/suru/lang/token"
)

func TestBagAccumulatesInDetectionOrder(t *testing.T) {
	var b diag.Bag
	b.Add(diag.UndefinedVariable, token.MakePos(3, 1), "undefined: x")
	b.Add(diag.TypeMismatch, token.MakePos(1, 1), "expected Bool")

	require.Equal(t, 2, b.Len())
	all := b.All()
	require.Equal(t, diag.UndefinedVariable, all[0].Kind)
	require.Equal(t, diag.TypeMismatch, all[1].Kind)
}

func TestBagErrNilWhenEmpty(t *testing.T) {
	var b diag.Bag
	require.NoError(t, b.Err())
}

func TestBagErrNonNilAfterAdd(t *testing.T) {
	var b diag.Bag
	b.Add(diag.UnexpectedByte, token.MakePos(1, 1), "unexpected byte '!'")
	require.Error(t, b.Err())
}

func TestBagSortOrdersByPosition(t *testing.T) {
	var b diag.Bag
	b.Add(diag.TypeMismatch, token.MakePos(5, 1), "later")
	b.Add(diag.TypeMismatch, token.MakePos(1, 1), "earlier")
	b.Sort()

	all := b.All()
	require.Equal(t, "earlier", all[0].Message)
	require.Equal(t, "later", all[1].Message)
}

func TestAddfFormatsMessage(t *testing.T) {
	var b diag.Bag
	b.Addf(diag.BadNumberSuffix, token.MakePos(1, 1), "invalid suffix %q", "q9")
	require.Equal(t, `invalid suffix "q9"`, b.All()[0].Message)
}
