package typedef_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/typedef-go/typedef"
	"github.com/typedef-go/typedef/types"
)

func TestErrCodeStringNames(t *testing.T) {
	assert.Equal(t, "InvalidValue", typedef.InvalidValue.String())
	assert.Equal(t, "TypeClassViolation", typedef.TypeClassViolation.String())
	assert.Equal(t, "TypeVarViolation", typedef.TypeVarViolation.String())
	assert.Equal(t, "WrongArity", typedef.WrongArity.String())
	assert.Equal(t, "RangeError", typedef.RangeError.String())
	assert.Equal(t, "MalformedType", typedef.MalformedType.String())
	assert.Equal(t, "Unknown", typedef.ErrCode(99).String())
}

func TestIsCodeMatchesOnlyTheDeclaredCode(t *testing.T) {
	add, err := typedef.Def("add", nil,
		[]*types.Type{typedef.Number, typedef.Number, typedef.Number},
		func(x, y float64) float64 { return x + y },
	)
	require.NoError(t, err)

	_, callErr := add.Call("nope", 1.0)
	require.Error(t, callErr)

	assert.True(t, typedef.IsCode(callErr, typedef.InvalidValue))
	assert.False(t, typedef.IsCode(callErr, typedef.WrongArity))
	assert.False(t, typedef.IsCode(callErr, typedef.TypeClassViolation))
}

func TestIsCodeFalseForUnrelatedError(t *testing.T) {
	assert.False(t, typedef.IsCode(assert.AnError, typedef.InvalidValue))
	assert.False(t, typedef.IsCode(nil, typedef.InvalidValue))
}

func TestTypeErrorMessageIsRenderedDiagnostic(t *testing.T) {
	add, err := typedef.Def("add", nil,
		[]*types.Type{typedef.Number, typedef.Number, typedef.Number},
		func(x, y float64) float64 { return x + y },
	)
	require.NoError(t, err)

	_, callErr := add.Call("nope", 1.0)
	require.Error(t, callErr)
	assert.Contains(t, callErr.Error(), "add ::")
}
