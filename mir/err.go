package mir

import (
	"errors"

	"github.com/ezrec/apmos/translate"
)

var f = translate.From

var (
	// Parser errors
	ErrFuncSyntax     = errors.New(f("func syntax"))
	ErrFuncMissing    = errors.New(f("statement outside func"))
	ErrSlotSyntax     = errors.New(f("slot syntax"))
	ErrLabelDuplicate = errors.New(f("label duplicated"))
	ErrTermMissing    = errors.New(f("block missing terminator"))
)

type ErrOpcodeInvalid string

func (err ErrOpcodeInvalid) Error() string {
	return f("'%v' is not an opcode", string(err))
}

type ErrOperandInvalid string

func (err ErrOperandInvalid) Error() string {
	return f("'%v' is not an operand", string(err))
}

type ErrModeIllegal struct {
	Op   string
	Mode string
}

func (err ErrModeIllegal) Error() string {
	return f("%v does not accept %v addressing", err.Op, err.Mode)
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
