package cpu

import (
	"errors"

	"github.com/ezrec/rdp9/translate"
)

var f = translate.From

var (
	// Bus protocol errors
	ErrBusMultipleAssert = errors.New(f("multiple assert"))
	ErrBusFloating       = errors.New(f("floating bus"))

	// Microcode errors
	ErrNotImplemented = errors.New(f("not implemented"))

	// Assembler errors
	ErrEquateSyntax       = errors.New(f(".equ syntax"))
	ErrEquateDuplicate    = errors.New(f(".equ duplicated"))
	ErrOrgSyntax          = errors.New(f(".org syntax"))
	ErrLabelDuplicate     = errors.New(f("label duplicated"))
	ErrMacroSyntax        = errors.New(f(".macro syntax"))
	ErrMacroNesting       = errors.New(f(".macro in .macro prohibited"))
	ErrMacroDuplicate     = errors.New(f(".macro duplicated"))
	ErrMacroLonely        = errors.New(f(".macro without .endm"))
	ErrMacroLonelyEndm    = errors.New(f(".endm without .macro"))
	ErrOpcodeExtraArgs    = errors.New(f("excessive arguments"))
	ErrOpcodeValueMissing = errors.New(f("value missing"))
	ErrAddressRange       = errors.New(f("address out of range"))
	ErrOperateConflict    = errors.New(f("operate and memory reference combined"))
)

// ProtocolError is a bus discipline violation.
type ProtocolError struct {
	Bus string
	Err error
}

func (err *ProtocolError) Error() string {
	return f("%v bus: %v", err.Bus, err.Err)
}

func (err *ProtocolError) Unwrap() error {
	return err.Err
}

// ErrDecode reports a microcode input with no decode table entry.
type ErrDecode Input

func (err ErrDecode) Error() string {
	in := Input(err)
	return f("decode %v input %05o: %v", in.State(), uint16(in), ErrNotImplemented)
}

func (err ErrDecode) Unwrap() error {
	return ErrNotImplemented
}

type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseSymbol string

func (err ErrParseSymbol) Error() string {
	return f("'%v' is not a symbol or value", string(err))
}

type ErrParseCharacter string

func (err ErrParseCharacter) Error() string {
	return f("'%v' is not a character", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

type ErrMacro struct {
	Macro string
	Line  int
	Err   error
}

func (err ErrMacro) Error() string {
	return f("macro %v line %v %v", err.Macro, err.Line, err.Err.Error())
}

func (err ErrMacro) Unwrap() error {
	return err.Err
}
