package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTypeResolvesBareCatalogName(t *testing.T) {
	cat := builtinCatalog()
	typ, err := parseType("Number", cat)
	require.NoError(t, err)
	assert.Same(t, cat["Number"], typ)
}

func TestParseTypeResolvesNestedWrapper(t *testing.T) {
	cat := builtinCatalog()
	typ, err := parseType("Array(Nullable(Number))", cat)
	require.NoError(t, err)
	require.NotNil(t, typ)
}

func TestParseTypeRejectsUnknownName(t *testing.T) {
	cat := builtinCatalog()
	_, err := parseType("Bogus", cat)
	assert.Error(t, err)
}

func TestParseTypeRejectsUnknownWrapper(t *testing.T) {
	cat := builtinCatalog()
	_, err := parseType("Frobnicate(Number)", cat)
	assert.Error(t, err)
}

func TestConvertValueNormalisesIntegersAndContainers(t *testing.T) {
	got := convertValue(map[string]any{
		"n":   2,
		"xs":  []any{1, 2, 3},
		"str": "kept",
	})
	want := map[string]any{
		"n":   2.0,
		"xs":  []any{1.0, 2.0, 3.0},
		"str": "kept",
	}
	assert.Equal(t, want, got)
}
