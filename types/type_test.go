package types_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/typedef-go/typedef/types"
)

func numberType() *types.Type {
	return types.NullaryType("Number", func(v any) bool {
		_, ok := v.(float64)
		return ok
	})
}

func arrayOf(a *types.Type) *types.Type {
	build := types.UnaryType("Array", func(v any) bool {
		_, ok := v.([]any)
		return ok
	}, func(v any) []any {
		seq, _ := v.([]any)
		return seq
	})
	return build(a)
}

func TestNullaryTypeFormat(t *testing.T) {
	number := numberType()
	assert.Equal(t, "Number", number.String())
}

func TestUnaryTypeFormatSelfWraps(t *testing.T) {
	arr := arrayOf(numberType())
	assert.Equal(t, "(Array Number)", arr.Format(nil, nil))
	assert.Equal(t, "Array Number", arr.String())
}

func TestValidateDescendsIntoChildren(t *testing.T) {
	arr := arrayOf(numberType())
	v, err := arr.Validate([]any{1.0, 2.0})
	require.Nil(t, err)
	assert.Equal(t, []any{1.0, 2.0}, v)

	_, err = arr.Validate([]any{1.0, "nope"})
	require.NotNil(t, err)
	assert.Equal(t, types.PropPath{"$1"}, err.Path)
	assert.Equal(t, "nope", err.Value)
}

func TestRebuild1PreservesConstructor(t *testing.T) {
	build := types.UnaryType("Array", func(v any) bool {
		_, ok := v.([]any)
		return ok
	}, func(v any) []any {
		seq, _ := v.([]any)
		return seq
	})
	unknownArray := build(types.UnknownType)
	rebuilt := unknownArray.Rebuild1(numberType())
	assert.Equal(t, "Array Number", rebuilt.String())
}

func TestStripOuterParensOnlyStripsBalancedWrapper(t *testing.T) {
	assert.Equal(t, "Number", types.StripOuterParens("(Number)"))
	assert.Equal(t, "(a) -> (b)", types.StripOuterParens("(a) -> (b)"))
}

func TestFunctionFormatSelfWraps(t *testing.T) {
	number := numberType()
	fn := types.FunctionType([]*types.Type{number, number})
	assert.Equal(t, "(Number -> Number)", fn.Format(nil, nil))
}

func TestRecordTypeRejectsNonType(t *testing.T) {
	_, err := types.RecordType(map[string]any{"x": "not a type"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `field "x"`)
}

func TestRecordTypeRecognizesPresentKeys(t *testing.T) {
	number := numberType()
	rec, err := types.RecordType(map[string]any{"x": number, "y": number})
	require.NoError(t, err)

	assert.True(t, rec.Recognize(map[string]any{"x": 1.0, "y": 2.0}))
	assert.False(t, rec.Recognize(map[string]any{"x": 1.0}))
	assert.False(t, rec.Recognize(nil))
}

func TestEnumTypeMembership(t *testing.T) {
	enum := types.EnumType([]any{"a", "b", float64(1)})
	assert.True(t, enum.Recognize("a"))
	assert.True(t, enum.Recognize(float64(1)))
	assert.False(t, enum.Recognize("c"))
}

func TestUnaryTypeVariableRendersCallerSuppliedInnerName(t *testing.T) {
	a := types.TypeVariable("a")
	fOfA := types.UnaryTypeVariable("f", a)
	assert.Equal(t, "f a", fOfA.String())
}

func TestBinaryTypeVariableRendersCallerSuppliedNames(t *testing.T) {
	k := types.TypeVariable("k")
	v := types.TypeVariable("v")
	mOfKV := types.BinaryTypeVariable("m", k, v)
	assert.Equal(t, "m k v", mOfKV.String())
}
