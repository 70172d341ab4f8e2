package cpu

import (
	"errors"

	"github.com/ezrec/chip8/translate"
)

var f = translate.From

var (
	// Cpu errors
	ErrStackOverflow    = errors.New(f("stack overflow"))
	ErrStackUnderflow   = errors.New(f("stack underflow"))
	ErrIndexOutOfBounds = errors.New(f("index out of bounds"))

	// Instruction encode errors
	ErrArgument      = errors.New(f("argument out of range"))
	ErrArgumentCount = errors.New(f("argument count"))

	// Assembler errors
	ErrEquateSyntax     = errors.New(f(".equ syntax"))
	ErrEquateDuplicate  = errors.New(f(".equ duplicated"))
	ErrLabelDuplicate   = errors.New(f("label duplicated"))
	ErrByteSyntax       = errors.New(f(".byte syntax"))
	ErrOpcodeExtraArgs  = errors.New(f("excessive arguments"))
	ErrOpcodeMissing    = errors.New(f("missing arguments"))
	ErrOperandInvalid   = errors.New(f("operand invalid"))
	ErrProgramTooLarge  = errors.New(f("program exceeds memory"))
	ErrDirectiveUnknown = errors.New(f("directive unknown"))

	// Macro errors
	ErrMacroSyntax     = errors.New(f(".macro syntax"))
	ErrMacroNesting    = errors.New(f(".macro in .macro prohibited"))
	ErrMacroDuplicate  = errors.New(f(".macro duplicated"))
	ErrMacroLonely     = errors.New(f(".macro without .endm"))
	ErrMacroLonelyEndm = errors.New(f(".endm without .macro"))
)

// ErrUnknownInstruction is returned for words that match no instruction.
type ErrUnknownInstruction uint16

func (eu ErrUnknownInstruction) Error() string {
	return f("unknown instruction 0x%04x", uint16(eu))
}

// Is matches any ErrUnknownInstruction.
func (eu ErrUnknownInstruction) Is(err error) (ok bool) {
	_, ok = err.(ErrUnknownInstruction)
	return
}

// ErrNotImplemented is returned for instructions that need a missing peripheral.
type ErrNotImplemented string

func (en ErrNotImplemented) Error() string {
	return f("%v not implemented", string(en))
}

// Is matches any ErrNotImplemented.
func (en ErrNotImplemented) Is(err error) (ok bool) {
	_, ok = err.(ErrNotImplemented)
	return
}

type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

type ErrMnemonic string

func (em ErrMnemonic) Error() string {
	return f("'%v' is not a mnemonic", string(em))
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

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}
