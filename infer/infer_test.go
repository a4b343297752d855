package infer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/typedef-go/typedef/catalog"
	"github.com/typedef-go/typedef/infer"
	"github.com/typedef-go/typedef/types"
)

func TestCandidatesOfNarrowsArrayElement(t *testing.T) {
	cands := infer.Candidates(catalog.Env, []any{[]any{1.0, 2.0}}, true)
	names := make([]string, len(cands))
	for i, c := range cands {
		names[i] = c.String()
	}
	assert.Contains(t, names, "Array Number")
}

func TestCandidatesStrictEmptyOnNoMatch(t *testing.T) {
	cands := infer.Candidates(catalog.Env, []any{make(chan int)}, true)
	assert.Len(t, cands, 0)
}

func TestCandidatesLooseCollapsesToInconsistent(t *testing.T) {
	env := []*types.Type{catalog.String}
	cands := infer.Candidates(env, []any{1.0, "x"}, false)
	assert.Len(t, cands, 0, "InconsistentType is filtered out of the public result")
}

func TestCandidatesExcludesNullableByName(t *testing.T) {
	cands := infer.CandidatesOf(catalog.Env, nil, true)
	for _, c := range cands {
		assert.NotEqual(t, "Nullable", c.Name)
	}
}

func TestCandidatesCycleSafe(t *testing.T) {
	cyclic := make([]any, 1)
	cyclic[0] = cyclic
	assert.NotPanics(t, func() {
		infer.Candidates(catalog.Env, []any{cyclic}, true)
	})
}
