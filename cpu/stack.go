package cpu

import (
	"errors"
)

const (
	STACK_POINTER_INIT = 0xF4 // Initial value of SP after reset.
)

// Push decrements the stack pointer, then writes value to the new top
// of the stack. SP is only updated if the write succeeds.
func (cpu *Cpu) Push(value byte) (err error) {
	sp := int(cpu.Register[SP]) - 1
	if sp < 0 {
		err = errors.Join(ErrStackOverflow, ErrAddress(sp))
		return
	}

	err = cpu.Memory.Write(sp, value)
	if err != nil {
		err = errors.Join(ErrStackOverflow, err)
		return
	}

	cpu.Register[SP] = byte(sp)
	return
}

// Pop reads the top of the stack, then increments the stack pointer.
func (cpu *Cpu) Pop() (value byte, err error) {
	value, err = cpu.Peek()
	if err != nil {
		return
	}

	sp := int(cpu.Register[SP]) + 1
	if sp > 0xff {
		err = errors.Join(ErrStackUnderflow, ErrAddress(sp))
		return
	}

	cpu.Register[SP] = byte(sp)
	return
}

// Peek reads the top of the stack without moving the stack pointer.
func (cpu *Cpu) Peek() (value byte, err error) {
	value, err = cpu.Memory.Read(int(cpu.Register[SP]))
	if err != nil {
		err = errors.Join(ErrStackUnderflow, err)
	}
	return
}

// Depth returns the number of bytes between SP and its reset value.
// Negative after more pops than pushes.
func (cpu *Cpu) Depth() int {
	return int(cpu.StackBase) - int(cpu.Register[SP])
}
