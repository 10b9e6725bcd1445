package cpu

import (
	"fmt"
	"iter"
	"slices"
	"strings"
)

// Opcode is the leading byte of an instruction.
// The upper 2 bits encode the number of operand bytes that follow.
type Opcode byte

const (
	OP_NOP  = Opcode(0b0000_0000) // NOP
	OP_HLT  = Opcode(0b0000_0001) // HLT
	OP_RET  = Opcode(0b0001_0001) // RET
	OP_PUSH = Opcode(0b0100_0101) // PUSH
	OP_POP  = Opcode(0b0100_0110) // POP
	OP_PRN  = Opcode(0b0100_0111) // PRN
	OP_CALL = Opcode(0b0101_0000) // CALL
	OP_JMP  = Opcode(0b0101_0100) // JMP
	OP_JEQ  = Opcode(0b0101_0101) // JEQ
	OP_JNE  = Opcode(0b0101_0110) // JNE
	OP_LDI  = Opcode(0b1000_0010) // LDI
	OP_ADD  = Opcode(0b1010_0000) // ADD
	OP_MUL  = Opcode(0b1010_0010) // MUL
	OP_CMP  = Opcode(0b1010_0111) // CMP
)

const (
	OPERANDS_SHIFT = 6    // Shift of the operand count field.
	OPERANDS_MASK  = 0b11 // Mask of the operand count field.
	OPERANDS_MAX   = 2    // Largest legal operand count.
)

// mnemonics is indexed by opcode; empty entries are illegal opcodes.
var mnemonics = [256]string{
	OP_NOP:  "NOP",
	OP_HLT:  "HLT",
	OP_RET:  "RET",
	OP_PUSH: "PUSH",
	OP_POP:  "POP",
	OP_PRN:  "PRN",
	OP_CALL: "CALL",
	OP_JMP:  "JMP",
	OP_JEQ:  "JEQ",
	OP_JNE:  "JNE",
	OP_LDI:  "LDI",
	OP_ADD:  "ADD",
	OP_MUL:  "MUL",
	OP_CMP:  "CMP",
}

// LookupOpcode returns the opcode for a mnemonic, ignoring case.
func LookupOpcode(mnemonic string) (op Opcode, ok bool) {
	mnemonic = strings.ToUpper(mnemonic)
	for n, name := range mnemonics {
		if len(name) != 0 && name == mnemonic {
			return Opcode(n), true
		}
	}
	return
}

// Valid returns true if the opcode is part of the instruction set.
func (op Opcode) Valid() bool {
	return len(mnemonics[op]) != 0
}

// Operands returns the number of operand bytes following the opcode.
func (op Opcode) Operands() int {
	return int(op>>OPERANDS_SHIFT) & OPERANDS_MASK
}

// Len returns the encoded length of the instruction in bytes.
func (op Opcode) Len() int {
	return 1 + op.Operands()
}

// Immediate returns true if operand n is an immediate value
// rather than a register index.
func (op Opcode) Immediate(n int) bool {
	return op == OP_LDI && n == 1
}

func (op Opcode) String() string {
	if op.Valid() {
		return mnemonics[op]
	}
	return fmt.Sprintf("0x%02X", byte(op))
}

// Register file indexes.
const (
	R0 = byte(iota)
	R1
	R2
	R3
	R4
	R5
	R6
	R7

	SP = R7 // Stack pointer.
)

// Flag bits, set by CMP. Layout is 00000LGE.
const (
	FL_EQUAL   = byte(1 << 0)
	FL_GREATER = byte(1 << 1)
	FL_LESS    = byte(1 << 2)
)

// Instruction is a decoded opcode and its operand bytes.
type Instruction struct {
	Opcode   Opcode
	Operands []byte
}

// MakeInstruction creates an instruction.
func MakeInstruction(op Opcode, operands ...byte) Instruction {
	return Instruction{Opcode: op, Operands: operands}
}

// Decode decodes the instruction at address. Illegal opcodes
// decode without operands.
func Decode(mem Memory, address int) (ins Instruction, err error) {
	value, err := mem.Read(address)
	if err != nil {
		return
	}

	ins.Opcode = Opcode(value)
	if !ins.Opcode.Valid() {
		return
	}

	for n := range ins.Opcode.Operands() {
		var operand byte
		operand, err = mem.Read(address + 1 + n)
		if err != nil {
			return
		}
		ins.Operands = append(ins.Operands, operand)
	}

	return
}

// Bytes returns the encoded instruction.
func (ins Instruction) Bytes() []byte {
	return append([]byte{byte(ins.Opcode)}, ins.Operands...)
}

// String returns the assembly language representation of this instruction.
func (ins Instruction) String() string {
	args := make([]string, len(ins.Operands))
	for n, operand := range ins.Operands {
		switch {
		case !ins.Opcode.Valid():
			args[n] = fmt.Sprintf("0x%02X", operand)
		case ins.Opcode.Immediate(n):
			args[n] = fmt.Sprintf("%d", operand)
		default:
			args[n] = fmt.Sprintf("R%d", operand)
		}
	}

	if len(args) == 0 {
		return ins.Opcode.String()
	}

	return ins.Opcode.String() + " " + strings.Join(args, ",")
}

// Disassemble returns an iterator over the addresses and instructions
// in memory. Illegal opcodes occupy a single byte. A final instruction
// truncated by the end of memory is yielded with the operands present.
func Disassemble(mem Memory) iter.Seq2[int, Instruction] {
	return func(yield func(address int, ins Instruction) bool) {
		address := 0
		for address < len(mem) {
			ins, err := Decode(mem, address)
			if err != nil {
				ins.Operands = slices.Clone(mem[address+1:])
				yield(address, ins)
				return
			}
			if !yield(address, ins) {
				return
			}
			address += len(ins.Bytes())
		}
	}
}
