package types

import "github.com/typedef-go/typedef/internal/value"

// TypeClass is the external type-class abstraction consumed per §6:
// a name and a predicate. Declared here (not in package typeclass) so
// that TypeInfo.Constraints can reference it without an import cycle;
// package typeclass just re-exports this type for callers.
type TypeClass interface {
	Name() string
	Test(v value.Value) bool
}

// TypeInfo describes one curried signature: its curried parameter
// list (Types), with the last element the return type, plus the
// type-class constraints declared on its type variables.
type TypeInfo struct {
	Name        string
	Constraints map[string][]TypeClass
	Types       []*Type
}

// Last returns the return type of the signature.
func (ti *TypeInfo) Last() *Type {
	return ti.Types[len(ti.Types)-1]
}

// Arity is the number of positional parameters (Types minus the
// return slot).
func (ti *TypeInfo) Arity() int {
	return len(ti.Types) - 1
}
