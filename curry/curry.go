// Package curry implements curried dispatch (§4.5): turning a typed
// signature plus an implementation into a curried callable that
// validates each argument as it arrives and, on completion, the
// value the implementation returns.
package curry

import (
	"fmt"

	"github.com/typedef-go/typedef/internal/log"
	"github.com/typedef-go/typedef/internal/value"
	"github.com/typedef-go/typedef/solve"
	"github.com/typedef-go/typedef/types"
)

var logger = log.DefaultLogger.With("section", "curry")

// placeholderType is the distinguished sentinel partial application
// recognizes as "this slot is still open" (§6).
type placeholderType struct{}

// Placeholder is the exported sentinel value.
var Placeholder value.Value = placeholderType{}

// IsPlaceholder reports whether v is the placeholder sentinel.
func IsPlaceholder(v value.Value) bool {
	_, ok := v.(placeholderType)
	return ok
}

// Error is the error type dispatch raises. It is deliberately thin:
// the rendering package turns a *solve.Diagnostic into the multi-line
// banner that becomes its Error() string; curry only needs to carry
// the diagnostic across the package boundary.
type Error struct {
	Diagnostic *solve.Diagnostic
	Render     func(*solve.Diagnostic) string
}

func (e *Error) Error() string {
	if e.Render != nil {
		return e.Render(e.Diagnostic)
	}
	return fmt.Sprintf("typedef: type error (%v)", e.Diagnostic.Kind)
}

// Callable is a curried, partially-applied signature. Calling it with
// the remaining positional arguments (or fewer, or with Placeholder
// in any slot) returns either the final result or a further
// Callable.
type Callable struct {
	env         []*types.Type
	info        *types.TypeInfo
	impl        value.Value
	stringer    func(*types.TypeInfo) string
	renderErr   func(*types.TypeInfo, *solve.Diagnostic) string
	checkTypes  bool
	values      []value.Value // len(info.Types)-1, entries nil until filled
	filled      []bool
	varMap      *solve.VarMap
	remaining   int
}

// Dispatch builds the initial curried Callable for info/impl.
func Dispatch(
	env []*types.Type,
	info *types.TypeInfo,
	impl value.Value,
	checkTypes bool,
	stringer func(*types.TypeInfo) string,
	renderErr func(*types.TypeInfo, *solve.Diagnostic) string,
) *Callable {
	arity := info.Arity()
	logger.Debug("dispatching callable", "name", info.Name, "arity", arity, "checkTypes", checkTypes)
	return &Callable{
		env:        env,
		info:       info,
		impl:       impl,
		stringer:   stringer,
		renderErr:  renderErr,
		checkTypes: checkTypes,
		values:     make([]value.Value, arity),
		filled:     make([]bool, arity),
		varMap:     solve.NewVarMap(),
		remaining:  arity,
	}
}

// String returns the callable's stable printed signature (§4.5).
func (c *Callable) String() string {
	if c.stringer == nil {
		return c.info.Name
	}
	return c.stringer(c.info)
}

func (c *Callable) wrapError(d *solve.Diagnostic) *Error {
	return &Error{
		Diagnostic: d,
		Render: func(dd *solve.Diagnostic) string {
			if c.renderErr == nil {
				return fmt.Sprintf("typedef: type error (%v)", dd.Kind)
			}
			return c.renderErr(c.info, dd)
		},
	}
}

// Call supplies positional arguments. Over-application (more
// arguments than open slots) is a wrong-arity error. Under-
// application returns a fresh Callable carrying the updated state;
// supplying exactly the remaining arguments (and none left open)
// applies the implementation and validates its return value.
func (c *Callable) Call(args ...value.Value) (value.Value, error) {
	openSlots := c.openSlotIndexes()
	if len(args) > len(openSlots) {
		return nil, c.wrapError(solve.DeferWrongArity(nil, len(openSlots), args)())
	}

	next := c.clone()
	for i, arg := range args {
		slot := openSlots[i]
		if IsPlaceholder(arg) {
			continue
		}
		if !next.checkTypes {
			next.values[slot] = arg
			next.filled[slot] = true
			next.remaining--
			continue
		}
		newVM, def := solve.Walk(next.env, next.info.Constraints, next.info.Types[slot], []value.Value{arg}, types.PropPath{argKey(slot)}, next.varMap)
		if def != nil {
			return nil, c.wrapError(def())
		}
		next.varMap = newVM
		next.values[slot] = wrapIfFunction(next.info.Types[slot], arg, next, types.PropPath{argKey(slot)})
		next.filled[slot] = true
		next.remaining--
	}

	if next.remaining > 0 {
		logger.Debug("curry frame built", "name", next.info.Name, "frame", next.varMap.FrameID(), "remaining", next.remaining)
		return next, nil
	}
	return next.apply()
}

func (c *Callable) apply() (value.Value, error) {
	result, err := value.Call(c.impl, c.values)
	if err != nil {
		return nil, err
	}
	if !c.checkTypes {
		return result, nil
	}
	retType := c.info.Last()
	_, def := solve.Walk(c.env, c.info.Constraints, retType, []value.Value{result}, types.PropPath{"$return"}, c.varMap)
	if def != nil {
		return nil, c.wrapError(def())
	}
	return result, nil
}

func (c *Callable) clone() *Callable {
	next := &Callable{
		env:        c.env,
		info:       c.info,
		impl:       c.impl,
		stringer:   c.stringer,
		renderErr:  c.renderErr,
		checkTypes: c.checkTypes,
		values:     append([]value.Value{}, c.values...),
		filled:     append([]bool{}, c.filled...),
		varMap:     c.varMap.Clone(),
		remaining:  c.remaining,
	}
	return next
}

func (c *Callable) openSlotIndexes() []int {
	var out []int
	for i, filled := range c.filled {
		if !filled {
			out = append(out, i)
		}
	}
	return out
}

func argKey(slot int) string {
	return fmt.Sprintf("$%d", slot+1)
}
