// Package infer implements candidate-type inference (§4.3): the
// dynamic reverse lookup from a value back to the environment types
// of which it is a member.
package infer

import (
	"github.com/benbjohnson/immutable"

	"github.com/typedef-go/typedef/internal/log"
	"github.com/typedef-go/typedef/internal/value"
	"github.com/typedef-go/typedef/types"
)

var logger = log.DefaultLogger.With("section", "infer")

// pointerHasher gives immutable.Set identity semantics over values
// that can form cycles (slices, maps, pointers); it is how the
// "seen-objects" cycle guard in §4.3 is implemented, grounded on the
// teacher's util/hset identity-keyed set.
type pointerHasher struct{}

func (pointerHasher) Hash(v value.Value) uint32 {
	key, ok := value.IdentityKey(v)
	if !ok {
		return 0
	}
	h := uint32(key)
	h ^= uint32(key >> 32)
	return h
}

func (pointerHasher) Equal(a, b value.Value) bool {
	ka, oka := value.IdentityKey(a)
	kb, okb := value.IdentityKey(b)
	return oka && okb && ka == kb
}

var hasher = pointerHasher{}

func emptySeen() immutable.Set[value.Value] {
	return immutable.NewSet[value.Value](hasher)
}

// nullableTypeName is excluded from candidate inference per §4.3: a
// Nullable(a) would otherwise recognize everything a also recognizes
// plus nil, dominating inference and starving more specific
// candidates.
const nullableTypeName = "Nullable"

// Candidates returns the environment types of which every value in
// vs is a member, descending into parameterised types and detecting
// value cycles. strict selects strict vs loose inference (§4.3): in
// loose mode an otherwise-empty result collapses to
// [types.InconsistentType]; in strict mode it stays empty.
func Candidates(env []*types.Type, vs []value.Value, strict bool) []*types.Type {
	out := dedupe(filterSentinels(candidates(env, vs, strict, emptySeen())))
	logger.Debug("inferred candidates", "numValues", len(vs), "strict", strict, "numCandidates", len(out))
	return out
}

// CandidatesOf is the single-value convenience form used by most
// call sites.
func CandidatesOf(env []*types.Type, v value.Value, strict bool) []*types.Type {
	return Candidates(env, []value.Value{v}, strict)
}

func candidates(env []*types.Type, vs []value.Value, strict bool, seen immutable.Set[value.Value]) []*types.Type {
	if len(vs) == 0 {
		return []*types.Type{types.UnknownType}
	}

	var out []*types.Type
	for _, t := range env {
		if t.Name == nullableTypeName {
			continue
		}
		if !recognizesAll(t, vs) {
			continue
		}
		switch t.Variant {
		case types.Unary:
			if !t.IsUnaryWithUnknownChild() {
				out = append(out, t)
				continue
			}
			kids, newSeen, cyclic := extractAll(t.Children["$1"].Extractor, vs, seen)
			if cyclic && len(kids) == 0 {
				continue
			}
			for _, innerCand := range candidates(env, kids, strict, newSeen) {
				out = append(out, t.Rebuild1(innerCand))
			}
		case types.Binary:
			kids1, seen1, cyclic1 := extractAll(t.Children["$1"].Extractor, vs, seen)
			kids2, seen2, cyclic2 := extractAll(t.Children["$2"].Extractor, vs, seen1)
			if (cyclic1 && len(kids1) == 0) || (cyclic2 && len(kids2) == 0) {
				continue
			}
			firstCands := candidates(env, kids1, strict, seen2)
			secondCands := candidates(env, kids2, strict, seen2)
			for _, a := range firstCands {
				for _, b := range secondCands {
					out = append(out, t.Rebuild2(a, b))
				}
			}
		default:
			out = append(out, t)
		}
	}

	if len(out) == 0 {
		if strict {
			return nil
		}
		return []*types.Type{types.InconsistentType}
	}
	return out
}

func recognizesAll(t *types.Type, vs []value.Value) bool {
	for _, v := range vs {
		if !t.Recognize(v) {
			return false
		}
	}
	return true
}

// extractAll extracts every value's children through extract,
// threading the identity-seen set so that a value revisited anywhere
// in the descent contributes nothing further (cyclic=true once that
// has happened at least once).
func extractAll(extract types.Extractor, vs []value.Value, seen immutable.Set[value.Value]) (kids []value.Value, newSeen immutable.Set[value.Value], cyclic bool) {
	newSeen = seen
	for _, v := range vs {
		if key, ok := value.IdentityKey(v); ok {
			_ = key
			if newSeen.Has(v) {
				cyclic = true
				continue
			}
			newSeen = newSeen.Add(v)
		}
		kids = append(kids, extract(v)...)
	}
	return kids, newSeen, cyclic
}

// filterSentinels drops Unknown and Inconsistent from a list that is
// about to be returned to a caller outside this package (§4.3's
// final pass); they remain meaningful only as internal recursion
// results.
func filterSentinels(ts []*types.Type) []*types.Type {
	out := make([]*types.Type, 0, len(ts))
	for _, t := range ts {
		if t.Variant == types.Unknown || t.Variant == types.Inconsistent {
			continue
		}
		out = append(out, t)
	}
	return out
}

func dedupe(ts []*types.Type) []*types.Type {
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
