package curry

import (
	"reflect"

	"github.com/typedef-go/typedef/internal/value"
	"github.com/typedef-go/typedef/solve"
	"github.com/typedef-go/typedef/types"
)

// wrapIfFunction implements the function-argument wrapper of §4.5
// step 4: if t is a Function type, v is replaced by a wrapper that,
// on every invocation, validates argument count and every argument
// against the declared parameter types, then the return value
// against the declared return type — all threaded through frame's
// shared VarMap, so a type variable bound in an outer argument
// constrains the same variable observed inside the callback (§5).
// Non-Function parameters pass through unchanged.
func wrapIfFunction(t *types.Type, v value.Value, frame *Callable, outerPath types.PropPath) value.Value {
	if t.Variant != types.Function || !frame.checkTypes {
		return v
	}
	if !value.IsCallable(v) {
		return v
	}
	paramKeys := t.Keys[:len(t.Keys)-1]
	retKey := t.Keys[len(t.Keys)-1]

	fnType := reflect.TypeOf(v)
	wrapped := reflect.MakeFunc(fnType, func(args []reflect.Value) []reflect.Value {
		argVals := make([]value.Value, len(args))
		for i, a := range args {
			argVals[i] = a.Interface()
		}
		if len(args) != len(paramKeys) {
			panic(frame.wrapError(solve.DeferWrongArity(outerPath, len(paramKeys), argVals)()))
		}
		for i, key := range paramKeys {
			sub := t.Children[key].SubType
			newVM, def := solve.Walk(frame.env, frame.info.Constraints, sub, []value.Value{argVals[i]}, outerPath.Extend(types.PropPath{key}), frame.varMap)
			if def != nil {
				panic(frame.wrapError(def()))
			}
			frame.varMap = newVM
		}

		result, err := value.Call(v, argVals)
		if err != nil {
			panic(err)
		}

		retSub := t.Children[retKey].SubType
		newVM, def := solve.Walk(frame.env, frame.info.Constraints, retSub, []value.Value{result}, outerPath.Extend(types.PropPath{retKey}), frame.varMap)
		if def != nil {
			panic(frame.wrapError(def()))
		}
		frame.varMap = newVM

		return []reflect.Value{coerceResult(result, fnType.Out(0))}
	})
	return wrapped.Interface()
}

func coerceResult(result value.Value, want reflect.Type) reflect.Value {
	if result == nil {
		return reflect.Zero(want)
	}
	rv := reflect.ValueOf(result)
	if rv.Type().AssignableTo(want) {
		return rv
	}
	if rv.Type().ConvertibleTo(want) {
		return rv.Convert(want)
	}
	return rv
}
