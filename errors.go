package typedef

import (
	"github.com/pkg/errors"

	"github.com/typedef-go/typedef/solve"
)

// ErrCode classifies a TypeError the way §7 distinguishes the six
// failure shapes a definition can raise.
type ErrCode int

const (
	// InvalidValue: an argument or return value did not belong to its
	// declared type.
	InvalidValue ErrCode = iota
	// TypeClassViolation: a value bound to a constrained type variable
	// failed one of its declared type-class tests.
	TypeClassViolation
	// TypeVarViolation: the observations for one type variable are
	// jointly inconsistent with every candidate in the environment.
	TypeVarViolation
	// WrongArity: a callable (top-level or a wrapped callback argument)
	// was applied with the wrong number of arguments.
	WrongArity
	// RangeError: a definition declared more parameters than the
	// engine supports.
	RangeError
	// MalformedType: a type constructor (RecordType, most commonly)
	// was built from malformed input.
	MalformedType
)

func (c ErrCode) String() string {
	switch c {
	case InvalidValue:
		return "InvalidValue"
	case TypeClassViolation:
		return "TypeClassViolation"
	case TypeVarViolation:
		return "TypeVarViolation"
	case WrongArity:
		return "WrongArity"
	case RangeError:
		return "RangeError"
	case MalformedType:
		return "MalformedType"
	default:
		return "Unknown"
	}
}

// TypeError is the error type a Callable's Call returns for every
// type-check failure: dispatch failures inside curry/solve carry
// a *solve.Diagnostic privately, and are translated here into a value
// whose Error() is the rendered banner and whose Code is stable enough
// for a caller to switch on with errors.As.
type TypeError struct {
	Code       ErrCode
	message    string
	Diagnostic *solve.Diagnostic
}

func (e *TypeError) Error() string {
	return e.message
}

// newTypeError stamps message (the banner already rendered for d) on
// a fresh TypeError of the appropriate code.
func newTypeError(code ErrCode, message string, d *solve.Diagnostic) *TypeError {
	return &TypeError{Code: code, message: message, Diagnostic: d}
}

func codeForKind(k solve.Kind) ErrCode {
	switch k {
	case solve.InvalidValue:
		return InvalidValue
	case solve.TypeClassViolation:
		return TypeClassViolation
	case solve.TypeVarViolation:
		return TypeVarViolation
	case solve.WrongArity:
		return WrongArity
	default:
		return InvalidValue
	}
}

// IsCode reports whether err is a *TypeError (at any wrapping depth)
// carrying code.
func IsCode(err error, code ErrCode) bool {
	var te *TypeError
	if !errors.As(err, &te) {
		return false
	}
	return te.Code == code
}

// rangeError builds the RangeError a definition with too many
// parameters is rejected with.
func rangeError(message string) *TypeError {
	return &TypeError{Code: RangeError, message: message}
}

// malformedTypeError wraps a constructor failure (RecordType's
// non-Type field check, most commonly) as a MalformedType TypeError,
// preserving the originating stack captured by pkg/errors.
func malformedTypeError(err error) *TypeError {
	return &TypeError{Code: MalformedType, message: errors.WithStack(err).Error()}
}
