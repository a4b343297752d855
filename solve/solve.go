// Package solve implements the constraint solver (§4.4): walking an
// expected type against observed values while threading a TypeVarMap
// that narrows each type variable's surviving candidates.
package solve

import (
	"github.com/typedef-go/typedef/infer"
	"github.com/typedef-go/typedef/internal/log"
	"github.com/typedef-go/typedef/internal/value"
	"github.com/typedef-go/typedef/types"
)

var logger = log.DefaultLogger.With("section", "solve")

// Walk validates values against t, threading vm forward. On success
// it returns the refined VarMap and a nil Deferred; on failure it
// returns a Deferred describing the first failure found. env is the
// universe candidate-type inference and variable narrowing draw
// candidates from; constraints is the signature's declared
// type-class constraints, keyed by variable name.
func Walk(
	env []*types.Type,
	constraints map[string][]types.TypeClass,
	t *types.Type,
	vs []value.Value,
	path types.PropPath,
	vm *VarMap,
) (*VarMap, Deferred) {
	return walk(env, constraints, t, vs, path, vm, newVisitGuard())
}

func walk(
	env []*types.Type,
	constraints map[string][]types.TypeClass,
	t *types.Type,
	vs []value.Value,
	path types.PropPath,
	vm *VarMap,
	guard *visitGuard,
) (*VarMap, Deferred) {
	if !guard.enter(t, path) {
		return vm, deferInvalidValue(t, firstOrNil(vs), path)
	}
	defer guard.exit()

	switch t.Variant {
	case types.Nullary, types.Enum, types.Function:
		for _, v := range vs {
			if _, err := t.Validate(v); err != nil {
				return vm, deferInvalidValue(t, err.Value, path.Extend(err.Path))
			}
		}
		return vm, nil

	case types.Record:
		for _, v := range vs {
			if !t.Recognize(v) {
				return vm, deferInvalidValue(t, v, path)
			}
		}
		for _, key := range t.Keys {
			child := t.Children[key]
			kids := extractFrom(child.Extractor, vs)
			var def Deferred
			vm, def = walk(env, constraints, child.SubType, kids, path.Append(key), vm, guard)
			if def != nil {
				return vm, def
			}
		}
		return vm, nil

	case types.Unary:
		for _, v := range vs {
			if !t.Recognize(v) {
				return vm, deferInvalidValue(t, v, path)
			}
		}
		kids := extractFrom(t.Children["$1"].Extractor, vs)
		return walk(env, constraints, t.Children["$1"].SubType, kids, path.Append("$1"), vm, guard)

	case types.Binary:
		for _, v := range vs {
			if !t.Recognize(v) {
				return vm, deferInvalidValue(t, v, path)
			}
		}
		kids1 := extractFrom(t.Children["$1"].Extractor, vs)
		var def Deferred
		vm, def = walk(env, constraints, t.Children["$1"].SubType, kids1, path.Append("$1"), vm, guard)
		if def != nil {
			return vm, def
		}
		kids2 := extractFrom(t.Children["$2"].Extractor, vs)
		return walk(env, constraints, t.Children["$2"].SubType, kids2, path.Append("$2"), vm, guard)

	case types.Variable:
		if classes, ok := constraints[t.Name]; ok {
			for _, v := range vs {
				for _, c := range classes {
					if !c.Test(v) {
						return vm, deferTypeClassViolation(t.Name, c, v, path)
					}
				}
			}
		}
		return updateTypeVarMap(env, vm, t, path, vs)

	default:
		return vm, nil
	}
}

func firstOrNil(vs []value.Value) value.Value {
	if len(vs) == 0 {
		return nil
	}
	return vs[0]
}

func extractFrom(extract types.Extractor, vs []value.Value) []value.Value {
	var out []value.Value
	for _, v := range vs {
		out = append(out, extract(v)...)
	}
	return out
}

// updateTypeVarMap refines the candidate list for tv.Name against vs
// (§4.4). New entries start from a snapshot of env. Each observed
// value filters out any candidate whose full membership check
// (Validate) rejects it; a
// surviving Unary/Binary candidate whose inner slot is still Unknown
// is refined against the value's extracted children via strict
// inference, so observing [1, 2] narrows "Array ???" to
// "Array Number". If a unary/binary type variable is itself
// constrained to an inner type, every surviving candidate's
// last-keyed extraction is checked against that inner type too
// (deferred if the inner type is itself a variable).
func updateTypeVarMap(env []*types.Type, vm *VarMap, tv *types.Type, path types.PropPath, vs []value.Value) (*VarMap, Deferred) {
	entry, ok := vm.Get(tv.Name)
	if !ok {
		entry = VarEntry{
			Candidates:   append([]*types.Type{}, env...),
			ValuesByPath: map[string][]value.Value{},
		}
	} else {
		entry = entry.clone()
	}

	pathKey := SerializePath(path)
	for _, v := range vs {
		entry.ValuesByPath[pathKey] = append(entry.ValuesByPath[pathKey], v)
		entry.Candidates = refineCandidates(env, entry.Candidates, v)
	}

	logger.Debug("narrowed type variable", "name", tv.Name, "path", path.String(), "frame", vm.FrameID(), "candidates", len(entry.Candidates))

	if len(entry.Candidates) == 0 && len(vs) > 0 {
		return vm, deferTypeVarViolation(tv.Name, entry.ValuesByPath)
	}

	newVM := vm.With(tv.Name, entry)

	if len(tv.Keys) > 0 {
		if def := checkInnerShape(tv, entry.Candidates, vs); def != nil {
			return newVM, def
		}
	}

	return newVM, nil
}

func refineCandidates(env []*types.Type, candidates []*types.Type, v value.Value) []*types.Type {
	var survivors []*types.Type
	for _, cand := range candidates {
		// Full membership, not just the shallow recognizer: an
		// already-specialized Unary/Binary candidate (e.g.
		// Nullable(Number) after a prior observation) must still
		// reject a value whose children don't match, or it survives
		// every later observation regardless of type (§4.4's
		// test(env, T, v), not just T.recognize(v)).
		if _, err := cand.Validate(v); err != nil {
			continue
		}
		if cand.IsUnaryWithUnknownChild() {
			extract := cand.Children["$1"].Extractor
			inner := infer.Candidates(env, extract(v), true)
			if len(inner) == 0 {
				continue
			}
			for _, ic := range inner {
				survivors = append(survivors, cand.Rebuild1(ic))
			}
			continue
		}
		if cand.Variant == types.Binary && (cand.Children["$1"].SubType.Variant == types.Unknown || cand.Children["$2"].SubType.Variant == types.Unknown) {
			slots := [2][]*types.Type{{cand.Children["$1"].SubType}, {cand.Children["$2"].SubType}}
			for i, key := range []string{"$1", "$2"} {
				if child := cand.Children[key]; child.SubType.Variant == types.Unknown {
					slots[i] = infer.Candidates(env, child.Extractor(v), true)
				}
			}
			for _, a := range slots[0] {
				for _, b := range slots[1] {
					survivors = append(survivors, cand.Rebuild2(a, b))
				}
			}
			continue
		}
		survivors = append(survivors, cand)
	}
	return dedupeTypes(survivors)
}

// checkInnerShape implements the unary/binary type-variable narrowing
// of §4.4: for each surviving candidate T, the values reachable via
// T's last-keyed extractor must be members of tv's declared inner
// type, unless that inner type is itself a variable (deferred, not
// yet resolvable).
func checkInnerShape(tv *types.Type, candidates []*types.Type, vs []value.Value) Deferred {
	innerKey := tv.Keys[len(tv.Keys)-1]
	innerExpected := tv.Children[innerKey].SubType
	if innerExpected == nil || innerExpected.Variant == types.Variable {
		return nil
	}
	for _, cand := range candidates {
		extract, ok := cand.LastKeyExtractor()
		if !ok {
			continue
		}
		for _, v := range vs {
			for _, kid := range extract(v) {
				if _, err := innerExpected.Validate(kid); err != nil {
					return deferInvalidValue(innerExpected, err.Value, types.PropPath{innerKey}.Extend(err.Path))
				}
			}
		}
	}
	return nil
}

func dedupeTypes(ts []*types.Type) []*types.Type {
	seen := make(map[string]bool, len(ts))
	out := make([]*types.Type, 0, len(ts))
	for _, t := range ts {
		key := t.String()
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, t)
	}
	return out
}
