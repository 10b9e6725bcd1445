package cpu

import (
	"errors"

	"github.com/ezrec/ls8/translate"
)

var f = translate.From

var (
	// Machine faults
	ErrHalted             = errors.New(f("halted"))
	ErrIllegalInstruction = errors.New(f("illegal instruction"))
	ErrInvalidRegister    = errors.New(f("invalid register"))
	ErrOutOfBounds        = errors.New(f("out of bounds"))
	ErrRunawayProgram     = errors.New(f("runaway program"))
	ErrStackOverflow      = errors.New(f("stack overflow"))
	ErrStackUnderflow     = errors.New(f("stack underflow"))
	ErrOutputMissing      = errors.New(f("no output device"))

	// Assembler errors
	ErrEquateSyntax       = errors.New(f(".equ syntax"))
	ErrEquateDuplicate    = errors.New(f(".equ duplicated"))
	ErrLabelDuplicate     = errors.New(f("label duplicated"))
	ErrLabelSyntax        = errors.New(f("label syntax"))
	ErrMacroSyntax        = errors.New(f(".macro syntax"))
	ErrMacroNesting       = errors.New(f(".macro in .macro prohibited"))
	ErrMacroDuplicate     = errors.New(f(".macro duplicated"))
	ErrMacroLonely        = errors.New(f(".macro without .endm"))
	ErrMacroLonelyEndm    = errors.New(f(".endm without .macro"))
	ErrOpcodeExtraArgs    = errors.New(f("excessive arguments"))
	ErrOpcodeValueMissing = errors.New(f("value missing"))
	ErrInstructionInvalid = errors.New(f("instruction invalid"))
	ErrProgramTooLarge    = errors.New(f("program too large"))
	ErrValueRange         = errors.New(f("value out of byte range"))
)

// ErrOpcode is an opcode with no handler, fetched at Pc.
type ErrOpcode struct {
	Pc     uint16
	Opcode Opcode
}

func (eo ErrOpcode) Error() string {
	return f("illegal opcode 0x%02X at 0x%02X", byte(eo.Opcode), eo.Pc)
}

func (eo ErrOpcode) Is(err error) bool {
	return err == ErrIllegalInstruction
}

// ErrRegister is a register index outside of the register file.
type ErrRegister byte

func (er ErrRegister) Error() string {
	return f("register index %d invalid", byte(er))
}

func (er ErrRegister) Is(err error) bool {
	return err == ErrInvalidRegister
}

// ErrAddress is a memory address outside of memory.
type ErrAddress int

func (ea ErrAddress) Error() string {
	return f("address 0x%02X out of bounds", int(ea))
}

func (ea ErrAddress) Is(err error) bool {
	return err == ErrOutOfBounds
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

type ErrParseRegister string

func (err ErrParseRegister) Error() string {
	return f("'%v' is not a register", string(err))
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
