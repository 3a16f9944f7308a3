package emulator

import (
	"errors"

	"github.com/ezrec/rdp9/translate"
)

var f = translate.From

var (
	ErrCycleLimit  = errors.New(f("cycle limit reached"))
	ErrCoreRange   = errors.New(f("core address out of range"))
	ErrReadInEmpty = errors.New(f("read-in found no binary words"))
	ErrNotHalted   = errors.New(f("processor is not halted"))
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

// ErrImageSyntax is a malformed line of an octal core image.
type ErrImageSyntax struct {
	LineNo int
	Line   string
}

func (err *ErrImageSyntax) Error() string {
	return f("core image line %d '%v' malformed", err.LineNo, err.Line)
}
