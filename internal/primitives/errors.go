package primitives

import (
	"errors"
	"fmt"
)

// ErrSpecification is matched by every *SpecError.
var ErrSpecification = errors.New("specification error")

// ErrorKind classifies a specification error.
type ErrorKind string

const (
	KindEmpty                 ErrorKind = "empty specification"
	KindVersion               ErrorKind = "unsupported version"
	KindInvalidEvents         ErrorKind = "invalid event set"
	KindInvalidName           ErrorKind = "invalid name"
	KindDuplicateState        ErrorKind = "duplicate state name"
	KindDuplicateName         ErrorKind = "duplicate entity name"
	KindUnknownEvent          ErrorKind = "unknown event"
	KindUnknownTarget         ErrorKind = "unknown target state"
	KindDuplicateTransition   ErrorKind = "duplicate transition"
	KindDuplicateDefault      ErrorKind = "more than one default transition"
	KindNoInitialState        ErrorKind = "no initial state"
	KindMultipleInitialStates ErrorKind = "more than one initial state"
	KindMissingInitializerKey ErrorKind = "missing required initializer key"
	KindUnresolvedEntity      ErrorKind = "unresolved entity"
	KindExpression            ErrorKind = "expression error"
	KindAttach                ErrorKind = "attach failed"
	KindLifecycle             ErrorKind = "lifecycle error"
)

// SpecError is a construction-time failure. It always aborts machine assembly.
type SpecError struct {
	Kind   ErrorKind
	Entity string
	Msg    string
	Err    error
}

func (e *SpecError) Error() string {
	s := "specification: " + string(e.Kind)
	if e.Entity != "" {
		s += fmt.Sprintf(" %q", e.Entity)
	}
	if e.Msg != "" {
		s += ": " + e.Msg
	}
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

func (e *SpecError) Unwrap() error { return e.Err }

func (e *SpecError) Is(target error) bool { return target == ErrSpecification }

// NewSpecError builds a SpecError around an underlying cause.
func NewSpecError(kind ErrorKind, entity string, err error) *SpecError {
	return &SpecError{Kind: kind, Entity: entity, Err: err}
}

// SpecErrorf builds a SpecError with a formatted message.
func SpecErrorf(kind ErrorKind, entity, format string, args ...any) *SpecError {
	return &SpecError{Kind: kind, Entity: entity, Msg: fmt.Sprintf(format, args...)}
}

// IsKind reports whether err is a *SpecError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var e *SpecError
	return errors.As(err, &e) && e.Kind == kind
}
