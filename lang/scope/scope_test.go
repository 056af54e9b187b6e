package scope_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suru-lang/suru/lang/scope"
	"github.com/suru-lang/suru/lang/types"
)

func TestGlobalScopeRejectsDuplicateFunction(t *testing.T) {
	s := scope.NewStack()
	ok := s.Declare("foo", scope.Symbol{Name: "foo", Kind: scope.FuncSymbol, Type: types.NoType})
	require.True(t, ok)

	ok = s.Declare("foo", scope.Symbol{Name: "foo", Kind: scope.FuncSymbol, Type: types.NoType})
	assert.False(t, ok)
}

func TestGlobalScopeRejectsVariableRebind(t *testing.T) {
	s := scope.NewStack()
	require.True(t, s.Declare("x", scope.Symbol{Name: "x", Kind: scope.VarSymbol}))
	assert.False(t, s.Declare("x", scope.Symbol{Name: "x", Kind: scope.VarSymbol}))
}

func TestBlockScopeAllowsRebind(t *testing.T) {
	s := scope.NewStack()
	s.Enter(scope.Function)
	s.Enter(scope.Block)
	require.True(t, s.Declare("x", scope.Symbol{Name: "x", Kind: scope.VarSymbol}))
	assert.True(t, s.Declare("x", scope.Symbol{Name: "x", Kind: scope.VarSymbol}))
}

func TestResolveWalksParentChain(t *testing.T) {
	s := scope.NewStack()
	require.True(t, s.Declare("outer", scope.Symbol{Name: "outer", Kind: scope.VarSymbol}))

	s.Enter(scope.Function)
	s.Enter(scope.Block)
	require.True(t, s.Declare("inner", scope.Symbol{Name: "inner", Kind: scope.VarSymbol}))

	sym, ok := s.Resolve("outer")
	require.True(t, ok)
	assert.Equal(t, "outer", sym.Name)

	sym, ok = s.Resolve("inner")
	require.True(t, ok)
	assert.Equal(t, "inner", sym.Name)

	s.Exit()
	_, ok = s.Resolve("inner")
	assert.False(t, ok, "inner should be unreachable once its block scope has exited")

	_, ok = s.Resolve("outer")
	assert.True(t, ok, "outer survives exiting the nested block scope")
}

func TestResolveUndefined(t *testing.T) {
	s := scope.NewStack()
	_, ok := s.Resolve("nope")
	assert.False(t, ok)
}

func TestIsInMutableScope(t *testing.T) {
	s := scope.NewStack()
	assert.False(t, s.IsInMutableScope(), "Global is immutable")

	s.Enter(scope.Module)
	assert.False(t, s.IsInMutableScope())

	s.Enter(scope.Function)
	assert.True(t, s.IsInMutableScope())

	s.Enter(scope.Block)
	assert.True(t, s.IsInMutableScope())
}

func TestDeclareEnclosingPlacesFunctionNameForRecursion(t *testing.T) {
	s := scope.NewStack()
	s.Enter(scope.Function)

	ok := s.DeclareEnclosing("recurse", scope.Symbol{Name: "recurse", Kind: scope.FuncSymbol})
	require.True(t, ok)

	sym, ok := s.Resolve("recurse")
	require.True(t, ok)
	assert.Equal(t, scope.FuncSymbol, sym.Kind)
}
