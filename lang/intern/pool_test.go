package intern

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInternStability(t *testing.T) {
	p := New(0)
	a := p.Intern("foo")
	b := p.Intern("foo")
	require.True(t, a == b, "interning the same text twice must return the same handle")
	require.Equal(t, "foo", a.String())

	c := p.Intern("bar")
	require.False(t, a == c)
	require.Equal(t, 2, p.Len())
}

func TestInternNilHandle(t *testing.T) {
	var h *Handle
	require.Equal(t, "", h.String())
}
