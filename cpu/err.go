package cpu

import (
	"errors"

	"github.com/davren/ls8/translate"
)

var f = translate.From

var (
	// Execution errors
	ErrIllegalInstruction = errors.New(f("illegal instruction"))
	ErrAddressFault       = errors.New(f("address fault"))
	ErrAluUnsupported     = errors.New(f("unsupported alu operation"))
	ErrStackFault         = errors.New(f("stack fault"))
	ErrStackOverflow      = errors.New(f("stack overflow"))
	ErrStackUnderflow     = errors.New(f("stack underflow"))
	ErrImageTooLarge      = errors.New(f("image too large"))

	// Assembler errors
	ErrEquateSyntax    = errors.New(f(".equ syntax"))
	ErrEquateDuplicate = errors.New(f(".equ duplicated"))
	ErrLabelDuplicate  = errors.New(f("label duplicated"))
	ErrOperandMissing  = errors.New(f("operand missing"))
	ErrOperandExtra    = errors.New(f("excessive operands"))
	ErrMnemonicInvalid = errors.New(f("mnemonic invalid"))
	ErrRegisterInvalid = errors.New(f("register invalid"))
)

// ErrOpcode reports the opcode byte an execution error occurred on.
type ErrOpcode Opcode

func (eo ErrOpcode) Error() string {
	return f("opcode 0x%02x %v", byte(eo), Opcode(eo).String())
}

func (eo ErrOpcode) Is(err error) (ok bool) {
	_, ok = err.(ErrOpcode)
	return
}

// ErrAddress reports an out-of-range memory address.
type ErrAddress int

func (ea ErrAddress) Error() string {
	return f("address %#02x out of range", int(ea))
}

// ErrRegister reports an out-of-range register index.
type ErrRegister byte

func (er ErrRegister) Error() string {
	return f("register %d out of range", byte(er))
}

type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

// ErrLabelRange reports a label defined past the end of memory.
type ErrLabelRange struct {
	Label string
	Addr  int
}

func (el ErrLabelRange) Error() string {
	return f("label %v address %#02x out of range", el.Label, el.Addr)
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

type ErrParseCharacter string

func (err ErrParseCharacter) Error() string {
	return f("'%v' is not a character", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}
