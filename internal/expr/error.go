package expr

import (
	"errors"
	"fmt"
)

// Error is a parse or evaluation failure at a position in the expression source.
type Error struct {
	Source string
	Pos    int
	Msg    string
}

func (e *Error) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("position %d: %s", e.Pos, e.Msg)
	}
	return fmt.Sprintf("expression %q: position %d: %s", e.Source, e.Pos, e.Msg)
}

func errorf(pos int, format string, args ...any) *Error {
	return &Error{Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

// withSource stamps src on err if it is an *Error without one.
func withSource(err error, src string) error {
	var e *Error
	if errors.As(err, &e) && e.Source == "" {
		e.Source = src
	}
	return err
}
