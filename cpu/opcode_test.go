package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOpcode(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		op       Opcode
		mnemonic string
		operands int
	}){
		{OP_NOP, "NOP", 0},
		{OP_HLT, "HLT", 0},
		{OP_RET, "RET", 0},
		{OP_PUSH, "PUSH", 1},
		{OP_POP, "POP", 1},
		{OP_PRN, "PRN", 1},
		{OP_CALL, "CALL", 1},
		{OP_JMP, "JMP", 1},
		{OP_JEQ, "JEQ", 1},
		{OP_JNE, "JNE", 1},
		{OP_LDI, "LDI", 2},
		{OP_ADD, "ADD", 2},
		{OP_MUL, "MUL", 2},
		{OP_CMP, "CMP", 2},
	}

	for _, entry := range table {
		assert.True(entry.op.Valid(), entry.mnemonic)
		assert.Equal(entry.mnemonic, entry.op.String())
		assert.Equal(entry.operands, entry.op.Operands(), entry.mnemonic)
		assert.Equal(entry.operands+1, entry.op.Len(), entry.mnemonic)

		op, ok := LookupOpcode(entry.mnemonic)
		assert.True(ok)
		assert.Equal(entry.op, op)
	}

	legal := 0
	for n := range 256 {
		if Opcode(n).Valid() {
			legal++
		}
	}
	assert.Equal(len(table), legal)

	op, ok := LookupOpcode("ldi")
	assert.True(ok)
	assert.Equal(OP_LDI, op)

	_, ok = LookupOpcode("DIV")
	assert.False(ok)

	assert.False(Opcode(0xFF).Valid())
	assert.Equal("0xFF", Opcode(0xFF).String())

	assert.True(OP_LDI.Immediate(1))
	assert.False(OP_LDI.Immediate(0))
	assert.False(OP_ADD.Immediate(1))
}

func TestInstruction(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		ins  Instruction
		text string
	}){
		{MakeInstruction(OP_HLT), "HLT"},
		{MakeInstruction(OP_PRN, 3), "PRN R3"},
		{MakeInstruction(OP_LDI, 0, 8), "LDI R0,8"},
		{MakeInstruction(OP_CMP, 1, 7), "CMP R1,R7"},
		{MakeInstruction(Opcode(0xFF)), "0xFF"},
		{MakeInstruction(Opcode(0xC3), 0x10, 0x20, 0x30), "0xC3 0x10,0x20,0x30"},
	}

	for _, entry := range table {
		assert.Equal(entry.text, entry.ins.String())
	}

	assert.Equal([]byte{0x82, 0, 8}, MakeInstruction(OP_LDI, 0, 8).Bytes())
}

func TestDecode(t *testing.T) {
	assert := assert.New(t)

	mem := Memory{0x82, 1, 0x2A, 0xFF, 0x47}

	ins, err := Decode(mem, 0)
	assert.NoError(err)
	assert.Equal(MakeInstruction(OP_LDI, 1, 0x2A), ins)

	ins, err = Decode(mem, 3)
	assert.NoError(err)
	assert.Equal(Opcode(0xFF), ins.Opcode)
	assert.Empty(ins.Operands)

	_, err = Decode(mem, 4)
	assert.ErrorIs(err, ErrOutOfBounds)

	_, err = Decode(mem, 5)
	assert.ErrorIs(err, ErrOutOfBounds)
}

func TestDisassemble(t *testing.T) {
	assert := assert.New(t)

	mem := Memory{
		0x82, 0, 8,
		0x47, 0,
		0xFF,
		0x01,
		0xA0, 1,
	}

	var addresses []int
	var texts []string
	for address, ins := range Disassemble(mem) {
		addresses = append(addresses, address)
		texts = append(texts, ins.String())
	}

	assert.Equal([]int{0, 3, 5, 6, 7}, addresses)
	assert.Equal([]string{"LDI R0,8", "PRN R0", "0xFF", "HLT", "ADD R1"}, texts)

	count := 0
	for range Disassemble(mem) {
		count++
		break
	}
	assert.Equal(1, count)
}
