// Package types implements the type representation and constructors
// the rest of the engine is built on: a uniform record describing any
// type (§3 of the design), and the factories that build one.
package types

import (
	"fmt"
	"strings"

	"github.com/typedef-go/typedef/internal/value"
)

// Variant distinguishes the nine shapes a Type can take.
type Variant int

const (
	Unknown Variant = iota
	Inconsistent
	Variable
	Nullary
	Unary
	Binary
	Enum
	Record
	Function
)

func (v Variant) String() string {
	switch v {
	case Unknown:
		return "Unknown"
	case Inconsistent:
		return "Inconsistent"
	case Variable:
		return "Variable"
	case Nullary:
		return "Nullary"
	case Unary:
		return "Unary"
	case Binary:
		return "Binary"
	case Enum:
		return "Enum"
	case Record:
		return "Record"
	case Function:
		return "Function"
	default:
		return "?"
	}
}

// Extractor returns the child values a container holds at a given
// slot. Function slots always extract the empty sequence: functions
// are opaque to structural recursion.
type Extractor func(v value.Value) []value.Value

// Child pairs an extractor with the sub-type expected at that slot.
type Child struct {
	Extractor Extractor
	SubType   *Type
}

// Styler renders a piece of literal signature syntax; Inner styles
// the text belonging to the k-th child. Both are used by Format and
// by the diagnostic renderer, which substitutes carets/labels for the
// identity stylers used by plain printing.
type Styler func(s string) string
type Inner func(key string, s string) string

// Type is the uniform record every variant shares (§3).
type Type struct {
	Variant     Variant
	Name        string
	Keys        []string
	Children    map[string]Child
	RecognizeFn func(value.Value) bool
	FormatFn    func(outer Styler, inner Inner) string

	// rebuild1/rebuild2 let candidate-type inference and the solver
	// re-lift a specialised child into a fresh instance of the same
	// outer constructor (UnaryType.from / the binary equivalent)
	// without the caller needing to remember which factory built t.
	rebuild1 func(sub *Type) *Type
	rebuild2 func(a, b *Type) *Type
}

// PropPath is an ordered path of slot keys into a type tree.
type PropPath []string

func (p PropPath) String() string {
	parts := make([]string, len(p))
	for i, k := range p {
		parts[i] = k
	}
	return strings.Join(parts, ".")
}

// Append returns a new path with key appended, leaving p untouched.
func (p PropPath) Append(key string) PropPath {
	out := make(PropPath, len(p)+1)
	copy(out, p)
	out[len(p)] = key
	return out
}

// Extend returns a new path with tail's components appended after
// p's, leaving both untouched.
func (p PropPath) Extend(tail PropPath) PropPath {
	out := make(PropPath, 0, len(p)+len(tail))
	out = append(out, p...)
	out = append(out, tail...)
	return out
}

// Recognize is the shallow membership predicate (§3).
func (t *Type) Recognize(v value.Value) bool {
	if t.RecognizeFn == nil {
		return true
	}
	return t.RecognizeFn(v)
}

// ValidationError is returned by Validate: the first offending value
// found during the recursive descent, and the path to it.
type ValidationError struct {
	Value value.Value
	Path  PropPath
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s is not a valid value at %s", value.ToString(e.Value), e.Path)
}

// Validate runs the recursive membership check described in §3:
// recognize, then every extracted child through its declared
// sub-type, returning the first failure and its path.
func (t *Type) Validate(v value.Value) (value.Value, *ValidationError) {
	if !t.Recognize(v) {
		return nil, &ValidationError{Value: v, Path: nil}
	}
	for _, key := range t.Keys {
		child := t.Children[key]
		if child.SubType == nil {
			continue
		}
		for _, kid := range child.Extractor(v) {
			if _, err := child.SubType.Validate(kid); err != nil {
				return nil, &ValidationError{Value: err.Value, Path: append(PropPath{key}, err.Path...)}
			}
		}
	}
	return v, nil
}

// Rebuild1 re-lifts sub through the same Unary constructor that built
// t (UnaryType.from(T) in §4.3/§4.4). Panics if t is not Unary; this
// is engine-internal plumbing, never reachable from user input.
func (t *Type) Rebuild1(sub *Type) *Type {
	if t.rebuild1 == nil {
		panic(fmt.Sprintf("Rebuild1 called on non-unary type %s", t.Name))
	}
	return t.rebuild1(sub)
}

// Rebuild2 re-lifts a,b through the same Binary constructor that
// built t.
func (t *Type) Rebuild2(a, b *Type) *Type {
	if t.rebuild2 == nil {
		panic(fmt.Sprintf("Rebuild2 called on non-binary type %s", t.Name))
	}
	return t.rebuild2(a, b)
}

// IsUnaryWithUnknownChild reports whether t is Unary and its $1 slot
// is still the Unknown sentinel — the signal that candidate-type
// inference and variable narrowing should descend into it rather
// than keep it as-is.
func (t *Type) IsUnaryWithUnknownChild() bool {
	if t.Variant != Unary {
		return false
	}
	child, ok := t.Children["$1"]
	return ok && child.SubType != nil && child.SubType.Variant == Unknown
}

// LastKeyExtractor returns the extractor for the highest-numbered
// positional slot ($1 for Unary, $2 for Binary) — the "last-keyed
// extractor" §4.4 uses when narrowing a unary/binary type variable's
// inner type argument.
func (t *Type) LastKeyExtractor() (Extractor, bool) {
	if len(t.Keys) == 0 {
		return nil, false
	}
	key := t.Keys[len(t.Keys)-1]
	child, ok := t.Children[key]
	if !ok {
		return nil, false
	}
	return child.Extractor, true
}

// Format renders t as text (§4.1/§4.6). outer styles literal syntax
// characters; inner styles the k-th child's rendered text.
func (t *Type) Format(outer Styler, inner Inner) string {
	if outer == nil {
		outer = identity
	}
	if inner == nil {
		inner = func(_ string, s string) string { return s }
	}
	if t.FormatFn != nil {
		return t.FormatFn(outer, inner)
	}
	return t.Name
}

func (t *Type) String() string {
	return StripOuterParens(t.Format(nil, nil))
}

func identity(s string) string { return s }
