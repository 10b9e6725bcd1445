// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"errors"
	"fmt"
	"iter"
	"log"
	"maps"
	"strings"

	"github.com/ezrec/ls8/io"
)

// Output is the console device written by PRN.
type Output io.Output

const (
	REGISTER_COUNT = 8 // Size of the register file.
)

var _cpu_defines = map[string]string{
	"SP_INIT":    fmt.Sprintf("0x%02x", STACK_POINTER_INIT),
	"FL_EQUAL":   fmt.Sprintf("0x%02x", FL_EQUAL),
	"FL_GREATER": fmt.Sprintf("0x%02x", FL_GREATER),
	"FL_LESS":    fmt.Sprintf("0x%02x", FL_LESS),
}

// Cpu is the simulation context for the LS-8 processor.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Memory    Memory               // Main memory, shared with the stack.
	Register  [REGISTER_COUNT]byte // Register bank. Register SP is the stack pointer.
	Pc        uint16               // Program counter.
	Flags     byte                 // Flags set by CMP, 00000LGE.
	Halted    bool                 // Set once the CPU has halted.
	Fault     error                // Error that halted the CPU, nil after HLT.
	StackBase byte                 // Value of SP after reset.

	Output Output // PRN console device.

	Ticks int // Instructions executed since reset.
}

// NewCpu creates a new CPU with a specifically sized memory.
// Sizes above MEMORY_SIZE are clamped.
func NewCpu(size uint) (cpu *Cpu) {
	size = min(size, MEMORY_SIZE)

	cpu = &Cpu{
		Memory:    make(Memory, size),
		StackBase: STACK_POINTER_INIT,
	}

	cpu.Reset()

	return
}

// Defines for the cpu
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}

// Reset the CPU state.
// - Clears memory, registers, and flags.
// - Sets SP to the stack base.
// - Zeros the tick counter.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	clear(cpu.Memory)
	clear(cpu.Register[:])
	cpu.Register[SP] = cpu.StackBase
	cpu.Pc = 0
	cpu.Flags = 0
	cpu.Halted = false
	cpu.Fault = nil
	cpu.Ticks = 0
}

// Load places data into memory starting at address 0, stopping at the
// end of data or of memory. Returns the number of bytes placed.
func (cpu *Cpu) Load(data []byte) (count int) {
	count = copy(cpu.Memory, data)

	if cpu.Verbose && count < len(data) {
		log.Printf("cpu: load truncated %d of %d bytes", len(data)-count, len(data))
	}

	return
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	regs := []string{
		"pc",
		"fl",
		"r0", "r1", "r2", "r3", "r4", "r5", "r6", "sp",
		"stack",
	}
	for _, reg := range regs {
		var strval string
		switch reg {
		case "pc":
			strval = fmt.Sprintf("%02X", cpu.Pc)
		case "fl":
			strval = fmt.Sprintf("%08b", cpu.Flags)
		case "r0", "r1", "r2", "r3", "r4", "r5", "r6":
			strval = fmt.Sprintf("%02X", cpu.Register[reg[1]-'0'])
		case "sp":
			strval = fmt.Sprintf("%02X", cpu.Register[SP])
		case "stack":
			val, err := cpu.Peek()
			if err == nil && cpu.Depth() > 0 {
				strval = fmt.Sprintf("%02X", val)
			} else {
				strval = "--"
			}
		}
		text += fmt.Sprintf("% 5s: %v\n", reg, strval)
	}

	return
}

// Trace returns a single line of the CPU state: pc, flags, the three
// bytes at pc, and the register bank. Bytes past the end of memory
// read as zero.
func (cpu *Cpu) Trace() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "TRACE: %02X %02X |", cpu.Pc, cpu.Flags)
	for n := range 3 {
		value, _ := cpu.Memory.Read(int(cpu.Pc) + n)
		fmt.Fprintf(&sb, " %02X", value)
	}
	sb.WriteString(" |")
	for _, value := range cpu.Register {
		fmt.Fprintf(&sb, " %02X", value)
	}

	return sb.String()
}

// Fetch fetches and decodes the instruction at the program counter.
func (cpu *Cpu) Fetch() (ins Instruction, err error) {
	if int(cpu.Pc) >= len(cpu.Memory) {
		err = ErrRunawayProgram
		return
	}

	ins, err = Decode(cpu.Memory, int(cpu.Pc))
	if err != nil {
		return
	}

	if !ins.Opcode.Valid() {
		err = ErrOpcode{Pc: cpu.Pc, Opcode: ins.Opcode}
		return
	}

	return
}

// Tick executes a single CPU instruction cycle.
// Any error halts the CPU. Once halted, Tick returns the fault that
// halted it, or ErrHalted after a HLT.
func (cpu *Cpu) Tick() (err error) {
	if cpu.Halted {
		err = cpu.Fault
		if err == nil {
			err = ErrHalted
		}
		return
	}

	defer func() {
		if err != nil {
			cpu.Halted = true
			if !errors.Is(err, ErrHalted) {
				cpu.Fault = err
			}
		}
	}()

	ins, err := cpu.Fetch()
	if err != nil {
		return
	}

	cpu.Ticks++

	err = cpu.Execute(ins)

	return
}

// register returns the register addressed by an operand.
func (cpu *Cpu) register(index byte) (reg *byte, err error) {
	if int(index) >= len(cpu.Register) {
		err = ErrRegister(index)
		return
	}

	reg = &cpu.Register[index]
	return
}

// registers returns the registers addressed by the first two operands.
func (cpu *Cpu) registers(ins Instruction) (a, b *byte, err error) {
	a, err = cpu.register(ins.Operands[0])
	if err != nil {
		return
	}

	b, err = cpu.register(ins.Operands[1])
	return
}

// Execute executes a single decoded instruction at the program counter.
// Every instruction sets the next program counter itself; on error the
// program counter is left at the faulting instruction.
func (cpu *Cpu) Execute(ins Instruction) (err error) {
	if cpu.Verbose {
		log.Printf("%02x: %v", cpu.Pc, ins)
	}

	if len(ins.Operands) != ins.Opcode.Operands() {
		err = errors.Join(ErrOpcode{Pc: cpu.Pc, Opcode: ins.Opcode}, ErrOpcodeValueMissing)
		return
	}

	var next_pc uint16

	switch ins.Opcode {
	case OP_NOP:
		next_pc = cpu.Pc + 1
	case OP_HLT:
		cpu.Halted = true
		err = ErrHalted
		return
	case OP_RET:
		var value byte
		value, err = cpu.Pop()
		if err != nil {
			return
		}
		next_pc = uint16(value)
	case OP_PUSH:
		var reg *byte
		reg, err = cpu.register(ins.Operands[0])
		if err != nil {
			return
		}
		err = cpu.Push(*reg)
		if err != nil {
			return
		}
		next_pc = cpu.Pc + 2
	case OP_POP:
		var reg *byte
		reg, err = cpu.register(ins.Operands[0])
		if err != nil {
			return
		}
		var value byte
		value, err = cpu.Pop()
		if err != nil {
			return
		}
		*reg = value
		next_pc = cpu.Pc + 2
	case OP_PRN:
		var reg *byte
		reg, err = cpu.register(ins.Operands[0])
		if err != nil {
			return
		}
		if cpu.Output == nil {
			err = ErrOutputMissing
			return
		}
		err = cpu.Output.Print(*reg)
		if err != nil {
			return
		}
		next_pc = cpu.Pc + 2
	case OP_CALL:
		var reg *byte
		reg, err = cpu.register(ins.Operands[0])
		if err != nil {
			return
		}
		ret := int(cpu.Pc) + 2
		if ret > 0xff {
			err = ErrAddress(ret)
			return
		}
		err = cpu.Push(byte(ret))
		if err != nil {
			return
		}
		next_pc = uint16(*reg)
	case OP_JMP, OP_JEQ, OP_JNE:
		var reg *byte
		reg, err = cpu.register(ins.Operands[0])
		if err != nil {
			return
		}
		equal := (cpu.Flags & FL_EQUAL) != 0
		switch {
		case ins.Opcode == OP_JEQ && !equal:
			next_pc = cpu.Pc + 2
		case ins.Opcode == OP_JNE && equal:
			next_pc = cpu.Pc + 2
		default:
			next_pc = uint16(*reg)
		}
	case OP_LDI:
		var reg *byte
		reg, err = cpu.register(ins.Operands[0])
		if err != nil {
			return
		}
		*reg = ins.Operands[1]
		next_pc = cpu.Pc + 3
	case OP_ADD, OP_MUL, OP_CMP:
		var a, b *byte
		a, b, err = cpu.registers(ins)
		if err != nil {
			return
		}
		cpu.doAlu(ins.Opcode, a, *b)
		next_pc = cpu.Pc + 3
	default:
		err = ErrOpcode{Pc: cpu.Pc, Opcode: ins.Opcode}
		return
	}

	cpu.Pc = next_pc

	return
}

// doAlu performs the requested ALU action. Byte arithmetic wraps modulo 256.
func (cpu *Cpu) doAlu(op Opcode, a *byte, b byte) {
	switch op {
	case OP_ADD:
		*a += b
	case OP_MUL:
		*a *= b
	case OP_CMP:
		switch {
		case *a == b:
			cpu.Flags = FL_EQUAL
		case *a < b:
			cpu.Flags = FL_LESS
		default:
			cpu.Flags = FL_GREATER
		}
	}
}
