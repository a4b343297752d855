// Package typeclass holds the external type-class abstraction
// consumed by the solver (§6) and a small built-in registry exercised
// by the catalog and the worked examples in §8.
package typeclass

import (
	"github.com/typedef-go/typedef/internal/value"
	"github.com/typedef-go/typedef/types"
)

// TypeClass is a name paired with a membership predicate. It is a
// type alias for types.TypeClass so that signatures built from
// either package are interchangeable.
type TypeClass = types.TypeClass

// named is the minimal TypeClass implementation the built-ins and
// user code can both reach for without declaring their own struct.
type named struct {
	name string
	test func(value.Value) bool
}

func (n named) Name() string            { return n.name }
func (n named) Test(v value.Value) bool { return n.test(v) }

// New builds a TypeClass from a name and predicate — the constructor
// library authors reach for when they do not need a custom type.
func New(name string, test func(value.Value) bool) TypeClass {
	return named{name: name, test: test}
}

// Semigroup is the instance §8 scenario 5 uses: a value is a Semigroup
// member if it is a record exposing a callable "concat" key, an
// array, or a string; nil and every other value are not.
var Semigroup = New("Semigroup", func(v value.Value) bool {
	if v == nil {
		return false
	}
	if m, ok := v.(map[string]any); ok {
		return value.IsCallable(m["concat"])
	}
	// arrays and strings are concatenable via the value algebra's
	// own Concat/append laws, independently of any "concat" key.
	switch v.(type) {
	case []any, string:
		return true
	default:
		return false
	}
})

// functorMaps registers the per-constructor Map implementation a
// Functor instance needs; keyed by the constructor's type name so
// that map :: Functor f => (a -> b) -> f a -> f b can dispatch on the
// concrete f it was called with.
var functorMaps = map[string]func(value.Value, func(value.Value) value.Value) value.Value{
	"Array": value.MapSlice,
}

// RegisterFunctor lets a library author extend Functor to a new
// container type, the way a user-defined Functor instance does in
// §8 scenario 6.
func RegisterFunctor(typeName string, mapFn func(value.Value, func(value.Value) value.Value) value.Value) {
	functorMaps[typeName] = mapFn
}

// MapWith looks up the registered Map implementation for typeName,
// if any.
func MapWith(typeName string, v value.Value, f func(value.Value) value.Value) (value.Value, bool) {
	mapFn, ok := functorMaps[typeName]
	if !ok {
		return nil, false
	}
	return mapFn(v, f), true
}

// Functor matches §8 scenario 6: a value is a Functor member if its
// dynamic shape is one for which a Map implementation has been
// registered. Arrays qualify out of the box; strings famously do
// not, which is exactly the violation scenario 6 exercises.
var Functor = New("Functor", func(v value.Value) bool {
	switch v.(type) {
	case []any:
		return true
	default:
		if opaque, ok := v.(value.Opaque); ok {
			_, registered := functorMaps[opaque.Tag]
			return registered
		}
		return false
	}
})
