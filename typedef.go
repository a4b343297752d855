// Package typedef is the public surface of the engine: Create builds
// a family of curried, runtime-checked definitions against a shared
// environment, Def builds one in isolation against the default
// environment, and Test offers the underlying membership check as a
// standalone predicate. The catalog of pre-built types and the
// default environment are re-exported here so that a caller never has
// to reach into an internal package to write an everyday signature.
package typedef

import (
	"fmt"

	"github.com/typedef-go/typedef/catalog"
	"github.com/typedef-go/typedef/curry"
	"github.com/typedef-go/typedef/internal/log"
	"github.com/typedef-go/typedef/internal/value"
	"github.com/typedef-go/typedef/render"
	"github.com/typedef-go/typedef/solve"
	"github.com/typedef-go/typedef/types"
)

var logger = log.DefaultLogger.With("section", "typedef")

// MaxArity is the largest number of positional parameters a
// definition may declare (§7's RangeError boundary).
const MaxArity = 9

// Options configures a family of definitions built by Create.
type Options struct {
	// CheckTypes disables type checking entirely when false, so a
	// definition behaves as a plain curried wrapper around impl with
	// no validation cost — §6's escape hatch for hot paths already
	// covered by tests elsewhere.
	CheckTypes bool
	// Env is the universe candidate-type inference and type-variable
	// narrowing draw candidates from. Defaults to catalog.Env.
	Env []*types.Type
}

// Callable is a curried, runtime-checked definition. Calling it with
// fewer than its remaining arity returns a further Callable; supplying
// the last argument runs the implementation and validates its result.
// Any type-check failure, including one raised inside a wrapped
// callback argument, surfaces as a *TypeError, never a bare
// curry/solve type; a panic raised by the implementation itself is
// returned as an ordinary error.
type Callable struct {
	inner *curry.Callable
}

// String returns the stable signature text a definition prints as,
// e.g. "map :: Functor f => (a -> b) -> f a -> f b".
func (c *Callable) String() string {
	return c.inner.String()
}

// Call supplies positional arguments, exactly as curry.Callable.Call
// does, translating any failure into a *TypeError. Under-application
// returns a further *Callable, never the internal curry type, so a
// caller never needs to import package curry to keep applying.
func (c *Callable) Call(args ...value.Value) (value.Value, error) {
	result, err := c.inner.Call(args...)
	if err != nil {
		return nil, wrapCurryError(err)
	}
	if next, ok := result.(*curry.Callable); ok {
		return &Callable{inner: next}, nil
	}
	return result, nil
}

func wrapCurryError(err error) error {
	ce, ok := err.(*curry.Error)
	if !ok {
		return err
	}
	d := ce.Diagnostic
	return newTypeError(codeForKind(d.Kind), ce.Error(), d)
}

// Create returns a def factory sharing opts.Env and opts.CheckTypes
// across every definition it builds — §6's "a family of definitions
// checked against a common environment", the shape a library author
// reaches for once they are defining more than one function against
// their own catalog of domain types.
func Create(opts Options) func(name string, constraints map[string][]types.TypeClass, sig []*types.Type, impl value.Value) (*Callable, error) {
	env := opts.Env
	if env == nil {
		env = catalog.Env
	}
	return func(name string, constraints map[string][]types.TypeClass, sig []*types.Type, impl value.Value) (*Callable, error) {
		return build(env, opts.CheckTypes, name, constraints, sig, impl)
	}
}

// Def builds a single definition against the default environment with
// type checking enabled — the common case, and the form every
// scenario in §8 uses directly.
func Def(name string, constraints map[string][]types.TypeClass, sig []*types.Type, impl value.Value) (*Callable, error) {
	return build(catalog.Env, true, name, constraints, sig, impl)
}

func build(
	env []*types.Type,
	checkTypes bool,
	name string,
	constraints map[string][]types.TypeClass,
	sig []*types.Type,
	impl value.Value,
) (*Callable, error) {
	arity := len(sig) - 1
	if arity < 0 {
		return nil, rangeError(fmt.Sprintf("typedef: %s declares no return type", name))
	}
	if arity > MaxArity {
		return nil, rangeError(fmt.Sprintf("typedef: %s declares %d parameters, the maximum is %d", name, arity, MaxArity))
	}
	info := &types.TypeInfo{Name: name, Constraints: constraints, Types: sig}
	stringer := func(ti *types.TypeInfo) string { return render.Signature(ti.Name, ti) }
	renderErr := func(ti *types.TypeInfo, d *solve.Diagnostic) string { return render.Diagnostic(ti.Name, ti, env, d) }
	logger.Debug("building definition", "name", name, "arity", arity, "checkTypes", checkTypes)
	return &Callable{inner: curry.Dispatch(env, info, impl, checkTypes, stringer, renderErr)}, nil
}

// Test reports whether v belongs to t, drawing on env for any
// candidate-type inference the check needs along the way (e.g. a
// type-variable slot inside t). It is the membership primitive §6
// describes as a convenience for building derived predicates outside
// of a curried definition.
func Test(env []*types.Type, t *types.Type, v value.Value) bool {
	_, def := solve.Walk(env, nil, t, []value.Value{v}, nil, solve.NewVarMap())
	return def == nil
}

// RecordType builds a record type from a field map, translating a
// malformed field into a *TypeError instead of a bare error.
func RecordType(fields map[string]any) (*types.Type, error) {
	t, err := types.RecordType(fields)
	if err != nil {
		return nil, malformedTypeError(err)
	}
	return t, nil
}

// Placeholder is the sentinel a caller passes in place of an argument
// to leave that slot open for partial application.
var Placeholder = curry.Placeholder

// IsPlaceholder reports whether v is the placeholder sentinel.
func IsPlaceholder(v value.Value) bool {
	return curry.IsPlaceholder(v)
}

// Env is the default environment every Def-built definition checks
// against.
var Env = catalog.Env

// The following re-export the catalog's everyday nullary and
// parameterised types so a caller writing a signature never needs to
// import package catalog directly.
var (
	Any            = catalog.Any
	UnknownT       = catalog.Unknown2
	Boolean        = catalog.Boolean
	String         = catalog.String
	Number         = catalog.Number
	Integer        = catalog.Integer
	NonZeroInteger = catalog.NonZeroInteger
	FiniteNumber   = catalog.FiniteNumber
	ValidNumber    = catalog.ValidNumber
	Undefined      = catalog.Undefined
	Null           = catalog.Null
	Object         = catalog.Object
	FunctionType   = catalog.FunctionType
)

// Array builds the parameterised array type Array(a).
func Array(a *types.Type) *types.Type { return catalog.Array(a) }

// Nullable builds the parameterised type Nullable(a): nil or a member
// of a.
func Nullable(a *types.Type) *types.Type { return catalog.Nullable(a) }
