package catalog_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/typedef-go/typedef/catalog"
)

func TestIntegerExcludesFractional(t *testing.T) {
	assert.True(t, catalog.Integer.Recognize(42.0))
	assert.False(t, catalog.Integer.Recognize(0.5))
}

func TestNonZeroIntegerExcludesZero(t *testing.T) {
	assert.True(t, catalog.NonZeroInteger.Recognize(42.0))
	assert.False(t, catalog.NonZeroInteger.Recognize(0.0))
}

func TestFiniteNumberExcludesInfAndNaN(t *testing.T) {
	assert.True(t, catalog.FiniteNumber.Recognize(1.0))
	assert.False(t, catalog.FiniteNumber.Recognize(math.NaN()))
	assert.False(t, catalog.FiniteNumber.Recognize(math.Inf(1)))
}

func TestArrayRecognizesOnlySlices(t *testing.T) {
	arr := catalog.Array(catalog.Number)
	assert.True(t, arr.Recognize([]any{1.0, 2.0}))
	assert.False(t, arr.Recognize("not an array"))
}

func TestArrayValidatesElements(t *testing.T) {
	arr := catalog.Array(catalog.Number)
	_, err := arr.Validate([]any{1.0, "nope"})
	assert.NotNil(t, err)
}

func TestNullableAcceptsNilAndMember(t *testing.T) {
	nullable := catalog.Nullable(catalog.Number)
	_, err := nullable.Validate(nil)
	assert.Nil(t, err)

	_, err = nullable.Validate(3.0)
	assert.Nil(t, err)

	_, err = nullable.Validate("nope")
	assert.NotNil(t, err)
}

func TestEnvExcludesAny(t *testing.T) {
	for _, t2 := range catalog.Env {
		assert.NotEqual(t, "Any", t2.Name)
	}
}
