package types_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suru-lang/suru/lang/types"
)

func TestUnifyIdenticalPrimitivesSucceeds(t *testing.T) {
	r := types.NewRegistry()
	num, _ := r.ResolveBuiltin("Number")

	_, err := types.Unify(r, types.Substitution{}, num, num)
	assert.NoError(t, err)
}

func TestUnifyMismatchedPrimitivesFails(t *testing.T) {
	r := types.NewRegistry()
	num, _ := r.ResolveBuiltin("Number")
	str, _ := r.ResolveBuiltin("String")

	_, err := types.Unify(r, types.Substitution{}, num, str)
	require.Error(t, err)
	ue, ok := err.(*types.UnifyError)
	require.True(t, ok)
	assert.False(t, ue.Infinite)
}

func TestUnifyBindsFreshVarToConcreteType(t *testing.T) {
	r := types.NewRegistry()
	num, _ := r.ResolveBuiltin("Number")
	v := r.FreshVar()

	sub, err := types.Unify(r, types.Substitution{}, v, num)
	require.NoError(t, err)
	assert.Equal(t, num, sub.Resolve(r, v))
}

func TestUnifyOccursCheckDetectsInfiniteType(t *testing.T) {
	r := types.NewRegistry()
	v := r.FreshVar()
	arr := r.Intern(types.Type{Kind: types.KindArray, Elem: v})

	_, err := types.Unify(r, types.Substitution{}, v, arr)
	require.Error(t, err)
	ue, ok := err.(*types.UnifyError)
	require.True(t, ok)
	assert.True(t, ue.Infinite)
}

func TestUnifyStructsAllowsExtraActualFields(t *testing.T) {
	r := types.NewRegistry()
	num, _ := r.ResolveBuiltin("Number")

	expected := r.Intern(types.Type{Kind: types.KindStruct, Fields: []types.Field{
		{Name: "x", Type: num},
	}})
	actual := r.Intern(types.Type{Kind: types.KindStruct, Fields: []types.Field{
		{Name: "x", Type: num},
		{Name: "y", Type: num},
	}})

	_, err := types.Unify(r, types.Substitution{}, expected, actual)
	assert.NoError(t, err)
}

func TestUnifyStructsFailsOnMissingExpectedField(t *testing.T) {
	r := types.NewRegistry()
	num, _ := r.ResolveBuiltin("Number")

	expected := r.Intern(types.Type{Kind: types.KindStruct, Fields: []types.Field{
		{Name: "x", Type: num},
		{Name: "y", Type: num},
	}})
	actual := r.Intern(types.Type{Kind: types.KindStruct, Fields: []types.Field{
		{Name: "x", Type: num},
	}})

	_, err := types.Unify(r, types.Substitution{}, expected, actual)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "y")
}

func TestUnifyArraysRecursesOnElement(t *testing.T) {
	r := types.NewRegistry()
	num, _ := r.ResolveBuiltin("Number")
	str, _ := r.ResolveBuiltin("String")

	a := r.Intern(types.Type{Kind: types.KindArray, Elem: num})
	b := r.Intern(types.Type{Kind: types.KindArray, Elem: str})

	_, err := types.Unify(r, types.Substitution{}, a, b)
	assert.Error(t, err)
}

func TestUnifyFunctionsRequireMatchingArity(t *testing.T) {
	r := types.NewRegistry()
	num, _ := r.ResolveBuiltin("Number")

	f1 := r.Intern(types.Type{Kind: types.KindFunction, Params: []types.ID{num}, Return: num})
	f2 := r.Intern(types.Type{Kind: types.KindFunction, Params: []types.ID{num, num}, Return: num})

	_, err := types.Unify(r, types.Substitution{}, f1, f2)
	assert.Error(t, err)
}

func TestUnifyUnknownIsCompatibleWithAnything(t *testing.T) {
	r := types.NewRegistry()
	num, _ := r.ResolveBuiltin("Number")

	_, err := types.Unify(r, types.Substitution{}, r.UnknownID(), num)
	assert.NoError(t, err)
}
