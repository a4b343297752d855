package typedef_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/typedef-go/typedef"
	"github.com/typedef-go/typedef/typeclass"
	"github.com/typedef-go/typedef/types"
)

// Scenario 1: add(2,2) -> 4, over-application raises wrong arity.
func TestAddAppliesAndRejectsOverApplication(t *testing.T) {
	add, err := typedef.Def("add", nil,
		[]*types.Type{typedef.Number, typedef.Number, typedef.Number},
		func(x, y float64) float64 { return x + y },
	)
	require.NoError(t, err)

	result, err := add.Call(2.0, 2.0)
	require.NoError(t, err)
	assert.Equal(t, 4.0, result)

	_, err = add.Call(2.0, 2.0, 2.0)
	require.Error(t, err)
	assert.True(t, typedef.IsCode(err, typedef.WrongArity))
}

// Scenario 2: add("2", "2") raises invalid-value on the first Number slot.
func TestAddRejectsWrongValueType(t *testing.T) {
	add, err := typedef.Def("add", nil,
		[]*types.Type{typedef.Number, typedef.Number, typedef.Number},
		func(x, y float64) float64 { return x + y },
	)
	require.NoError(t, err)

	_, err = add.Call("2", "2")
	require.Error(t, err)
	assert.True(t, typedef.IsCode(err, typedef.InvalidValue))
	assert.Contains(t, err.Error(), `"2" :: String`)
}

// Scenario 3: id(42) -> 42, id(null) -> null.
func TestIdentityAcceptsAnyValue(t *testing.T) {
	a := types.TypeVariable("a")
	id, err := typedef.Def("id", nil, []*types.Type{a, a}, func(x any) any { return x })
	require.NoError(t, err)

	result, err := id.Call(42.0)
	require.NoError(t, err)
	assert.Equal(t, 42.0, result)

	result, err = id.Call(nil)
	require.NoError(t, err)
	assert.Nil(t, result)
}

// Scenario 4: cmp(0, "1") raises a type-variable violation underlining
// both occurrences of a. This is the scenario that depends on Any
// never joining the default environment's narrowing candidates.
func TestCmpRejectsMismatchedTypeVariableOccurrences(t *testing.T) {
	a := types.TypeVariable("a")
	cmp, err := typedef.Def("cmp", nil,
		[]*types.Type{a, a, typedef.Number},
		func(x, y any) float64 { return 0 },
	)
	require.NoError(t, err)

	partial, err := cmp.Call(0.0)
	require.NoError(t, err)
	next := partial.(*typedef.Callable)

	_, err = next.Call("1")
	require.Error(t, err)
	assert.True(t, typedef.IsCode(err, typedef.TypeVarViolation))
}

// Scenario 5: concat via a user Semigroup. Arrays concatenate; plain
// objects without a "concat" key violate the constraint.
func TestConcatEnforcesSemigroupConstraint(t *testing.T) {
	a := types.TypeVariable("a")
	concat, err := typedef.Def("concat",
		map[string][]types.TypeClass{"a": {typeclass.Semigroup}},
		[]*types.Type{a, a, a},
		func(x, y any) any {
			xs := x.([]any)
			ys := y.([]any)
			return append(append([]any{}, xs...), ys...)
		},
	)
	require.NoError(t, err)

	result, err := concat.Call([]any{1.0, 2.0}, []any{3.0, 4.0})
	require.NoError(t, err)
	assert.Equal(t, []any{1.0, 2.0, 3.0, 4.0}, result)

	_, err = concat.Call(map[string]any{}, map[string]any{})
	require.Error(t, err)
	assert.True(t, typedef.IsCode(err, typedef.TypeClassViolation))
	assert.Contains(t, err.Error(), "Semigroup")
}

// Scenario 6: map via a Functor constraint. Arrays qualify out of the
// box; a string does not.
func TestMapEnforcesFunctorConstraint(t *testing.T) {
	a := types.TypeVariable("a")
	b := types.TypeVariable("b")
	fOfA := types.UnaryTypeVariable("f", a)
	fOfB := types.UnaryTypeVariable("f", b)

	mapFn, err := typedef.Def("map",
		map[string][]types.TypeClass{"f": {typeclass.Functor}},
		[]*types.Type{types.FunctionType([]*types.Type{a, b}), fOfA, fOfB},
		func(f func(float64) float64, xs any) any {
			arr := xs.([]any)
			out := make([]any, len(arr))
			for i, v := range arr {
				out[i] = f(v.(float64))
			}
			return out
		},
	)
	require.NoError(t, err)

	plusOne := func(x float64) float64 { return x + 1 }

	result, err := mapFn.Call(plusOne, []any{1.0, 2.0, 3.0})
	require.NoError(t, err)
	assert.Equal(t, []any{2.0, 3.0, 4.0}, result)

	_, err = mapFn.Call(plusOne, "abc")
	require.Error(t, err)
	assert.True(t, typedef.IsCode(err, typedef.TypeClassViolation))
	assert.Contains(t, err.Error(), "Functor")
}

// Scenario 7: rem(42,5) -> 2; rem(0.5,3) rejects the first slot;
// rem(42,0) rejects the second slot.
func TestRemValidatesEachSlotIndependently(t *testing.T) {
	rem, err := typedef.Def("rem", nil,
		[]*types.Type{typedef.Integer, typedef.NonZeroInteger, typedef.Integer},
		func(x, y float64) float64 { return math.Mod(x, y) },
	)
	require.NoError(t, err)

	result, err := rem.Call(42.0, 5.0)
	require.NoError(t, err)
	assert.Equal(t, 2.0, result)

	_, err = rem.Call(0.5, 3.0)
	require.Error(t, err)
	assert.True(t, typedef.IsCode(err, typedef.InvalidValue))

	_, err = rem.Call(42.0, 0.0)
	require.Error(t, err)
	assert.True(t, typedef.IsCode(err, typedef.InvalidValue))
}

func TestDefRejectsArityAboveMax(t *testing.T) {
	sig := make([]*types.Type, typedef.MaxArity+2)
	for i := range sig {
		sig[i] = typedef.Number
	}
	_, err := typedef.Def("tooMany", nil, sig, func() float64 { return 0 })
	require.Error(t, err)
	assert.True(t, typedef.IsCode(err, typedef.RangeError))
}

func TestCreateSharesEnvironmentAcrossDefinitions(t *testing.T) {
	def := typedef.Create(typedef.Options{CheckTypes: true})
	double, err := def("double", nil, []*types.Type{typedef.Number, typedef.Number}, func(x float64) float64 { return x * 2 })
	require.NoError(t, err)

	result, err := double.Call(21.0)
	require.NoError(t, err)
	assert.Equal(t, 42.0, result)
}

func TestTestPredicateMatchesMembership(t *testing.T) {
	assert.True(t, typedef.Test(typedef.Env, typedef.Number, 1.0))
	assert.False(t, typedef.Test(typedef.Env, typedef.Number, "1"))
}

func TestRecordTypeBuildsFromFieldMap(t *testing.T) {
	rt, err := typedef.RecordType(map[string]any{"x": typedef.Number})
	require.NoError(t, err)
	assert.NotNil(t, rt)
}

func TestRecordTypeRejectsMalformedField(t *testing.T) {
	_, err := typedef.RecordType(map[string]any{"x": "not a type"})
	require.Error(t, err)
	assert.True(t, typedef.IsCode(err, typedef.MalformedType))
}

func TestPlaceholderSkipsArgumentUntilSupplied(t *testing.T) {
	add, err := typedef.Def("add", nil,
		[]*types.Type{typedef.Number, typedef.Number, typedef.Number},
		func(x, y float64) float64 { return x + y },
	)
	require.NoError(t, err)

	partial, err := add.Call(typedef.Placeholder, 2.0)
	require.NoError(t, err)
	next := partial.(*typedef.Callable)

	result, err := next.Call(5.0)
	require.NoError(t, err)
	assert.Equal(t, 7.0, result)
	assert.True(t, typedef.IsPlaceholder(typedef.Placeholder))
}
