package curry_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/traefik/yaegi/interp"

	"github.com/typedef-go/typedef/catalog"
	"github.com/typedef-go/typedef/curry"
	"github.com/typedef-go/typedef/render"
	"github.com/typedef-go/typedef/solve"
	"github.com/typedef-go/typedef/types"

	"github.com/stretchr/testify/assert"
)

// TestYaegiInterpretedImplementation exercises Dispatch against an
// implementation compiled at test time from source text rather than a
// Go literal, the same way endtoend_test.go in the teacher interprets
// transpiled source — closer to the load-time, dynamically-assembled
// nature of the spec's value universe than a closure written directly
// in this file.
func TestYaegiInterpretedImplementation(t *testing.T) {
	i := interp.New(interp.Options{})
	v, err := i.Eval(`func(a float64, b float64) float64 { return a + b }`)
	require.NoError(t, err)

	impl := v.Interface()

	info := &types.TypeInfo{Name: "add", Types: []*types.Type{catalog.Number, catalog.Number, catalog.Number}}
	stringer := func(ti *types.TypeInfo) string { return render.Signature(ti.Name, ti) }
	renderErr := func(ti *types.TypeInfo, d *solve.Diagnostic) string { return render.Diagnostic(ti.Name, ti, catalog.Env, d) }
	add := curry.Dispatch(catalog.Env, info, impl, true, stringer, renderErr)

	result, err := add.Call(1.0, 2.0)
	require.NoError(t, err)
	assert.Equal(t, 3.0, result)
}
