// Package value implements the thin external value algebra the type
// algebra is built on: deep equality, diagnostic-friendly string
// rendering, and the handful of container operations (map, chain,
// reduce) that extractors and type-class instances rely on.
package value

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// Value is any member of the dynamic value universe the engine
// type-checks: nil, bool, float64, string, []any, map[string]any, a
// callable, or an Opaque wrapping a host value the catalog's
// predicates recognize without the engine looking inside it.
type Value = any

// Opaque tags a host value with a name so that a NullaryType's
// predicate can recognize it by tag without the engine needing to
// know its underlying representation.
type Opaque struct {
	Tag   string
	Inner any
}

// DeepEqual implements the equality law EnumType membership is built
// on: structural equality over slices and maps, identity-free.
func DeepEqual(a, b Value) bool {
	switch av := a.(type) {
	case []any:
		bv, ok := b.([]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !DeepEqual(av[i], bv[i]) {
				return false
			}
		}
		return true
	case map[string]any:
		bv, ok := b.(map[string]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for k, v := range av {
			other, present := bv[k]
			if !present || !DeepEqual(v, other) {
				return false
			}
		}
		return true
	case Opaque:
		bv, ok := b.(Opaque)
		return ok && av.Tag == bv.Tag && DeepEqual(av.Inner, bv.Inner)
	default:
		return reflect.DeepEqual(a, b)
	}
}

// ToString renders v the way diagnostics print observed values:
// strings are quoted, nil reads as "null", containers recurse.
func ToString(v Value) string {
	switch vv := v.(type) {
	case nil:
		return "null"
	case string:
		return strconv.Quote(vv)
	case []any:
		parts := make([]string, len(vv))
		for i, e := range vv {
			parts[i] = ToString(e)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case map[string]any:
		keys := make([]string, 0, len(vv))
		for k := range vv {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = fmt.Sprintf("%s: %s", k, ToString(vv[k]))
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case Opaque:
		return fmt.Sprintf("%s(%s)", vv.Tag, ToString(vv.Inner))
	default:
		if IsCallable(v) {
			return "<function>"
		}
		return fmt.Sprintf("%v", vv)
	}
}

// IsCallable reports whether v is a Go func value, the host
// representation of a Function-typed value.
func IsCallable(v Value) bool {
	if v == nil {
		return false
	}
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Func
}

// NumArgs returns the arity of a callable value, or -1 if v is not
// callable.
func NumArgs(v Value) int {
	if !IsCallable(v) {
		return -1
	}
	return reflect.TypeOf(v).NumIn()
}

// Call invokes a callable value with args, recovering a panicking
// implementation into an error the way dispatch needs to in order to
// keep a curried definition usable after a failing call. A panic
// value that is already an error is returned as is.
func Call(fn Value, args []Value) (result Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = e
				return
			}
			err = fmt.Errorf("panic calling function value: %v", r)
		}
	}()
	rv := reflect.ValueOf(fn)
	if rv.Kind() != reflect.Func {
		return nil, fmt.Errorf("value of kind %s is not callable", rv.Kind())
	}
	in := make([]reflect.Value, len(args))
	t := rv.Type()
	for i, a := range args {
		if i < t.NumIn() {
			in[i] = coerce(a, t.In(i))
		} else {
			in[i] = reflect.ValueOf(a)
		}
	}
	out := rv.Call(in)
	switch len(out) {
	case 0:
		return nil, nil
	case 1:
		return out[0].Interface(), nil
	default:
		results := make([]any, len(out))
		for i, o := range out {
			results[i] = o.Interface()
		}
		return results, nil
	}
}

func coerce(a Value, want reflect.Type) reflect.Value {
	if a == nil {
		return reflect.Zero(want)
	}
	rv := reflect.ValueOf(a)
	if rv.Type().AssignableTo(want) {
		return rv
	}
	if rv.Type().ConvertibleTo(want) {
		return rv.Convert(want)
	}
	return rv
}

// MapSlice applies f to every element of v if v is a sequence,
// returning a new sequence; non-sequence values are returned
// unchanged, matching the "collaborator" map law consumed by the
// Functor type-class instances in the catalog.
func MapSlice(v Value, f func(Value) Value) Value {
	seq, ok := v.([]any)
	if !ok {
		return v
	}
	out := make([]any, len(seq))
	for i, e := range seq {
		out[i] = f(e)
	}
	return out
}

// Concat chains several sequences of values into one, the law
// extractors rely on when a container holds its children across more
// than one underlying slice.
func Concat(seqs ...[]Value) []Value {
	total := 0
	for _, s := range seqs {
		total += len(s)
	}
	out := make([]Value, 0, total)
	for _, s := range seqs {
		out = append(out, s...)
	}
	return out
}

// Reduce folds f over vs starting from init.
func Reduce[T any](vs []Value, init T, f func(T, Value) T) T {
	acc := init
	for _, v := range vs {
		acc = f(acc, v)
	}
	return acc
}

// IdentityKey returns a key suitable for identity-based (not
// equality-based) cycle detection: the underlying pointer for the
// reference kinds that can form cycles, and ok=false for everything
// else (primitives cannot participate in a cycle).
func IdentityKey(v Value) (key uintptr, ok bool) {
	if v == nil {
		return 0, false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Map, reflect.Ptr, reflect.Chan, reflect.Func:
		if rv.IsNil() {
			return 0, false
		}
		return rv.Pointer(), true
	default:
		return 0, false
	}
}
