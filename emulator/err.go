package emulator

import (
	"errors"

	"github.com/ezrec/bunny/translate"
)

var f = translate.From

var (
	ErrTickLimit       = errors.New(f("tick limit exceeded"))
	ErrWatch           = errors.New(f("watch condition met"))
	ErrRegisterInvalid = errors.New(f("register invalid"))
)

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	LineNo int
	Err    error
}

func (err *ErrRuntime) Error() string {
	return f("line %d %v", err.LineNo, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}

// ErrWatchExpression is a watch expression that could not be compiled.
type ErrWatchExpression string

func (err ErrWatchExpression) Error() string {
	return f("watch %v is not a valid expression", string(err))
}
