package emulator

import (
	"errors"

	"github.com/ezrec/ls8/cpu"
	"github.com/ezrec/ls8/translate"
)

var f = translate.From

var (
	ErrStepLimit = errors.New(f("step limit reached"))
	ErrConfig    = errors.New(f("invalid configuration"))
	ErrSnapshot  = errors.New(f("invalid snapshot"))
	ErrFault     = errors.New(f("machine fault"))
)

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	Pc      uint16
	Opcode  cpu.Opcode
	Fetched bool // Set if Opcode was read from memory at Pc.
	LineNo  int  // Source line, if known.
	Err     error
}

func (err *ErrRuntime) Error() string {
	where := f("pc 0x%02X", err.Pc)
	if err.Fetched {
		where = f("pc 0x%02X (%v)", err.Pc, err.Opcode)
	}

	if err.LineNo > 0 {
		return f("line %d %v %v", err.LineNo, where, err.Err)
	}
	return f("%v %v", where, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
