// Package catalog ships the pre-built nullary and unary types §1
// leaves out of scope as a deliverable but leans on throughout its
// own scenarios — Number, Integer, Array(a), and the rest of the
// everyday vocabulary a signature is written against — plus the
// default environment those types populate.
package catalog

import (
	"math"

	"github.com/typedef-go/typedef/internal/value"
	"github.com/typedef-go/typedef/types"
)

// Any recognizes every value without exception.
var Any = types.NullaryType("Any", func(value.Value) bool { return true })

// Unknown2 is the Unknown sentinel re-exported under the catalog so
// that environments built from this package can reference it like any
// other entry without importing package types directly.
var Unknown2 = types.UnknownType

// Boolean recognizes Go bool values.
var Boolean = types.NullaryType("Boolean", func(v value.Value) bool {
	_, ok := v.(bool)
	return ok
})

// String recognizes Go string values.
var String = types.NullaryType("String", func(v value.Value) bool {
	_, ok := v.(string)
	return ok
})

// Number recognizes any finite or non-finite float64 — the widest
// numeric type in the catalog; ValidNumber and FiniteNumber narrow it
// further.
var Number = types.NullaryType("Number", func(v value.Value) bool {
	_, ok := v.(float64)
	return ok
})

// Integer recognizes float64 values with no fractional part, per §8
// scenario 7 (rem(0.5, 3) is rejected on this slot).
var Integer = types.NullaryType("Integer", func(v value.Value) bool {
	f, ok := v.(float64)
	return ok && f == math.Trunc(f)
})

// NonZeroInteger narrows Integer by excluding zero, per §8 scenario 7
// (rem(42, 0) is rejected on this slot).
var NonZeroInteger = types.NullaryType("NonZeroInteger", func(v value.Value) bool {
	f, ok := v.(float64)
	return ok && f == math.Trunc(f) && f != 0
})

// FiniteNumber excludes NaN, +Inf, and -Inf.
var FiniteNumber = types.NullaryType("FiniteNumber", func(v value.Value) bool {
	f, ok := v.(float64)
	return ok && !math.IsInf(f, 0) && !math.IsNaN(f)
})

// ValidNumber excludes only NaN.
var ValidNumber = types.NullaryType("ValidNumber", func(v value.Value) bool {
	f, ok := v.(float64)
	return ok && !math.IsNaN(f)
})

// Undefined recognizes a nil value: Go has no separate
// "undefined" primitive distinct from nil, so Undefined and Null both
// key off the same observation and differ only in display name.
var Undefined = types.NullaryType("Undefined", func(v value.Value) bool {
	return v == nil
})

// Null recognizes a nil value.
var Null = types.NullaryType("Null", func(v value.Value) bool {
	return v == nil
})

// Object recognizes any record value (a non-nil map[string]any),
// without constraining its field set the way RecordType does.
var Object = types.NullaryType("Object", func(v value.Value) bool {
	_, ok := v.(map[string]any)
	return ok
})

// FunctionType recognizes any callable value without constraining its
// arity or parameter types, the catalog's untyped counterpart to
// types.FunctionType(params).
var FunctionType = types.NullaryType("Function", func(v value.Value) bool {
	return value.IsCallable(v)
})

func arrayExtract(v value.Value) []value.Value {
	seq, ok := v.([]any)
	if !ok {
		return nil
	}
	return seq
}

// arrayBuild is the UnaryType factory for Array(a): recognizes any
// []any value.
var arrayBuild = types.UnaryType("Array", func(v value.Value) bool {
	_, ok := v.([]any)
	return ok
}, arrayExtract)

// Array builds the parameterised array type Array(a) for sub-type a.
func Array(a *types.Type) *types.Type {
	return arrayBuild(a)
}

func nullableExtract(v value.Value) []value.Value {
	if v == nil {
		return nil
	}
	return []value.Value{v}
}

// nullableBuild is the UnaryType factory for Nullable(a). Its
// recognize predicate is trivially true: nullableExtract yields no
// children for nil (so the $1 descent never runs, and nil validates
// vacuously) and yields [v] otherwise (so the normal Unary descent
// into a does the actual membership check). §4.3 excludes this type
// by name from candidate-type inference because it would otherwise
// dominate every other candidate — every value either is nil or,
// trivially, "a nullable a".
var nullableBuild = types.UnaryType("Nullable", func(value.Value) bool {
	return true
}, nullableExtract)

// Nullable builds Nullable(a): recognizes nil outright, defers to a
// for everything else via the ordinary Unary descent.
func Nullable(a *types.Type) *types.Type {
	return nullableBuild(a)
}

// Env is the default environment §6 refers to as "the default
// environment": every catalog nullary type, plus Array(Unknown) and
// Nullable(Unknown) so that candidate-type inference (§4.3) has an
// Array/Nullable shape to specialise against observed values. Any is
// deliberately left out: it recognizes every value unconditionally,
// so a narrowing pass that included it could never discover a
// TypeVarViolation (§8 scenario 4's cmp(0, "1") relies on Number and
// String being the only candidates on the table). Any stays available
// as a catalog type a signature can name explicitly; it just never
// joins the inference universe on its own.
var Env = []*types.Type{
	Boolean,
	String,
	Number,
	Integer,
	NonZeroInteger,
	FiniteNumber,
	ValidNumber,
	Object,
	FunctionType,
	Undefined,
	Null,
	Array(types.UnknownType),
	Nullable(types.UnknownType),
}
