package solve

import (
	"github.com/typedef-go/typedef/internal/value"
	"github.com/typedef-go/typedef/types"
)

// Kind distinguishes the four error shapes §4.6/§7 render.
type Kind int

const (
	InvalidValue Kind = iota
	TypeClassViolation
	TypeVarViolation
	WrongArity
)

// Diagnostic carries the raw context a failure was discovered with.
// It is deliberately a plain struct, not yet formatted text — only
// the diagnostic that survives combinator choice is ever rendered
// (§4.4 "errors are deferred as thunks").
type Diagnostic struct {
	Kind Kind

	// InvalidValue
	ExpectedType *types.Type
	Value        value.Value
	Path         types.PropPath

	// TypeClassViolation
	VarName string
	Class   types.TypeClass

	// TypeVarViolation
	ValuesByPath map[string][]value.Value

	// WrongArity
	Expected     int
	Received     int
	ReceivedArgs []value.Value
	// Path is set for WrongArity only when the mis-application happened
	// inside a wrapped callback argument, identifying which outer
	// parameter slot the callback occupies; empty for a top-level
	// over-application, which has no single slot to underline.
}

// Deferred is a zero-argument constructor materialising a Diagnostic
// only if it escapes, so the solver can prefer one report over
// another without paying formatting cost for every candidate.
type Deferred func() *Diagnostic

func deferInvalidValue(t *types.Type, v value.Value, path types.PropPath) Deferred {
	return func() *Diagnostic {
		return &Diagnostic{Kind: InvalidValue, ExpectedType: t, Value: v, Path: path}
	}
}

func deferTypeClassViolation(varName string, class types.TypeClass, v value.Value, path types.PropPath) Deferred {
	return func() *Diagnostic {
		return &Diagnostic{Kind: TypeClassViolation, VarName: varName, Class: class, Value: v, Path: path}
	}
}

func deferTypeVarViolation(varName string, valuesByPath map[string][]value.Value) Deferred {
	return func() *Diagnostic {
		return &Diagnostic{Kind: TypeVarViolation, VarName: varName, ValuesByPath: valuesByPath}
	}
}

// DeferWrongArity is exported: curry builds this diagnostic directly,
// without going through Walk. path is the callback slot's path when
// the mis-application happened inside a wrapped function argument, or
// nil for a top-level over-application. received is the actual
// argument list supplied, kept for the renderer's supplementary body.
func DeferWrongArity(path types.PropPath, expected int, received []value.Value) Deferred {
	return func() *Diagnostic {
		return &Diagnostic{Kind: WrongArity, Path: path, Expected: expected, Received: len(received), ReceivedArgs: received}
	}
}
