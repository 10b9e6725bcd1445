package emulator

import (
	"errors"

	"github.com/ezrec/ls8/cpu"
)

// Halt is the reason the machine stopped.
type Halt int

const (
	HALT_NORMAL              = Halt(iota) // halted
	HALT_ILLEGAL_INSTRUCTION              // illegal instruction
	HALT_INVALID_REGISTER                 // invalid register
	HALT_OUT_OF_BOUNDS                    // out of bounds
	HALT_RUNAWAY_PROGRAM                  // runaway program
	HALT_STEP_LIMIT                       // step limit
	HALT_FAULT                            // fault
)

var haltNames = [...]string{
	HALT_NORMAL:              "halted",
	HALT_ILLEGAL_INSTRUCTION: "illegal instruction",
	HALT_INVALID_REGISTER:    "invalid register",
	HALT_OUT_OF_BOUNDS:       "out of bounds",
	HALT_RUNAWAY_PROGRAM:     "runaway program",
	HALT_STEP_LIMIT:          "step limit",
	HALT_FAULT:               "fault",
}

// haltStatus is the process exit status for each halt reason.
// Status 2 is left for command line usage errors.
var haltStatus = [...]int{
	HALT_NORMAL:              0,
	HALT_FAULT:               1,
	HALT_ILLEGAL_INSTRUCTION: 3,
	HALT_INVALID_REGISTER:    4,
	HALT_OUT_OF_BOUNDS:       5,
	HALT_RUNAWAY_PROGRAM:     6,
	HALT_STEP_LIMIT:          7,
}

// haltErr is the sentinel error restored for each halt reason.
var haltErr = [...]error{
	HALT_NORMAL:              nil,
	HALT_ILLEGAL_INSTRUCTION: cpu.ErrIllegalInstruction,
	HALT_INVALID_REGISTER:    cpu.ErrInvalidRegister,
	HALT_OUT_OF_BOUNDS:       cpu.ErrOutOfBounds,
	HALT_RUNAWAY_PROGRAM:     cpu.ErrRunawayProgram,
	HALT_STEP_LIMIT:          ErrStepLimit,
	HALT_FAULT:               ErrFault,
}

// Valid returns true for a known halt reason.
func (h Halt) Valid() bool {
	return h >= 0 && int(h) < len(haltNames)
}

// Status returns the process exit status for the halt reason.
func (h Halt) Status() int {
	if !h.Valid() {
		return haltStatus[HALT_FAULT]
	}
	return haltStatus[h]
}

// Err returns the sentinel error for the halt reason, which Reason maps
// back to the same halt reason. HALT_NORMAL has no error.
func (h Halt) Err() error {
	if !h.Valid() {
		return ErrFault
	}
	return haltErr[h]
}

func (h Halt) String() string {
	if !h.Valid() {
		return f("halt(%d)", int(h))
	}
	return haltNames[h]
}

// Reason decides why the machine stopped, given the error returned by
// Run or Tick. A nil error is a normal halt; errors outside of the
// machine fault taxonomy, such as console write failures, are HALT_FAULT.
func Reason(err error) Halt {
	switch {
	case err == nil:
		return HALT_NORMAL
	case errors.Is(err, ErrStepLimit):
		return HALT_STEP_LIMIT
	case errors.Is(err, cpu.ErrRunawayProgram):
		return HALT_RUNAWAY_PROGRAM
	case errors.Is(err, cpu.ErrIllegalInstruction):
		return HALT_ILLEGAL_INSTRUCTION
	case errors.Is(err, cpu.ErrInvalidRegister):
		return HALT_INVALID_REGISTER
	case errors.Is(err, cpu.ErrOutOfBounds):
		return HALT_OUT_OF_BOUNDS
	default:
		return HALT_FAULT
	}
}
