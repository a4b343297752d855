package curry_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/typedef-go/typedef/catalog"
	"github.com/typedef-go/typedef/curry"
	"github.com/typedef-go/typedef/render"
	"github.com/typedef-go/typedef/solve"
	"github.com/typedef-go/typedef/types"
)

func dispatch(t *testing.T, name string, sig []*types.Type, impl any) *curry.Callable {
	t.Helper()
	info := &types.TypeInfo{Name: name, Types: sig}
	stringer := func(ti *types.TypeInfo) string { return render.Signature(ti.Name, ti) }
	renderErr := func(ti *types.TypeInfo, d *solve.Diagnostic) string { return render.Diagnostic(ti.Name, ti, catalog.Env, d) }
	return curry.Dispatch(catalog.Env, info, impl, true, stringer, renderErr)
}

func TestCurriedPartialApplication(t *testing.T) {
	add := dispatch(t, "add", []*types.Type{catalog.Number, catalog.Number, catalog.Number}, func(a, b float64) float64 { return a + b })

	partial, err := add.Call(1.0)
	require.NoError(t, err)
	next, ok := partial.(*curry.Callable)
	require.True(t, ok)

	result, err := next.Call(2.0)
	require.NoError(t, err)
	assert.Equal(t, 3.0, result)
}

func TestPlaceholderLeavesSlotOpen(t *testing.T) {
	add := dispatch(t, "add", []*types.Type{catalog.Number, catalog.Number, catalog.Number}, func(a, b float64) float64 { return a + b })

	partial, err := add.Call(curry.Placeholder, 2.0)
	require.NoError(t, err)
	next := partial.(*curry.Callable)

	result, err := next.Call(5.0)
	require.NoError(t, err)
	assert.Equal(t, 7.0, result)
}

func TestInvalidArgumentRaisesTypeError(t *testing.T) {
	add := dispatch(t, "add", []*types.Type{catalog.Number, catalog.Number, catalog.Number}, func(a, b float64) float64 { return a + b })

	_, err := add.Call("not a number")
	require.Error(t, err)
	var ce *curry.Error
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, solve.InvalidValue, ce.Diagnostic.Kind)
}

func TestOverApplicationRaisesWrongArity(t *testing.T) {
	id := dispatch(t, "id", []*types.Type{catalog.Number, catalog.Number}, func(a float64) float64 { return a })

	_, err := id.Call(1.0, 2.0)
	require.Error(t, err)
	var ce *curry.Error
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, solve.WrongArity, ce.Diagnostic.Kind)
	assert.Equal(t, 1, ce.Diagnostic.Expected)
}

func TestWrappedFunctionArgumentValidatesInnerCall(t *testing.T) {
	mapOne := dispatch(t, "mapOne",
		[]*types.Type{
			types.FunctionType([]*types.Type{catalog.Number, catalog.Number}),
			catalog.Number,
			catalog.Number,
		},
		func(f func(float64) float64, x float64) float64 { return f(x) },
	)

	result, err := mapOne.Call(func(x float64) float64 { return x * 2 }, 3.0)
	require.NoError(t, err)
	assert.Equal(t, 6.0, result)
}

func TestClonedCallablesHaveIndependentFrames(t *testing.T) {
	add := dispatch(t, "add", []*types.Type{catalog.Number, catalog.Number, catalog.Number}, func(a, b float64) float64 { return a + b })

	left, err := add.Call(1.0)
	require.NoError(t, err)
	right, err := add.Call(2.0)
	require.NoError(t, err)

	leftResult, err := left.(*curry.Callable).Call(10.0)
	require.NoError(t, err)
	rightResult, err := right.(*curry.Callable).Call(20.0)
	require.NoError(t, err)

	assert.Equal(t, 11.0, leftResult)
	assert.Equal(t, 22.0, rightResult)
}
