package cpu

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func assemble(text string) (*Program, error) {
	asm := &Assembler{}
	return asm.Parse(strings.NewReader(text))
}

func TestAssembler_Program(t *testing.T) {
	assert := assert.New(t)

	prog, err := assemble(`
; print 8 + 9
.equ A 8
start:
    LDI R0,A
    LDI R1,9
    ADD R0,R1       # sum
    PRN R0
    LDI R2,done
    JMP R2
    DB 0xFF
done:
    HLT
`)
	assert.NoError(err)
	if err != nil {
		return
	}

	assert.Equal([]byte{
		0x82, 0x00, 0x08,
		0x82, 0x01, 0x09,
		0xA0, 0x00, 0x01,
		0x47, 0x00,
		0x82, 0x02, 0x11,
		0x54, 0x02,
		0xFF,
		0x01,
	}, prog.Binary())
}

func TestAssembler_Run(t *testing.T) {
	assert := assert.New(t)

	prog, err := assemble(`
    LDI R0,10
    LDI R1,20
    LDI R2,less
    CMP R0,R1
    JEQ R2
    LDI R3,1
less:
    PRN R3
    HLT
`)
	assert.NoError(err)
	if err != nil {
		return
	}

	_, output, err := runProgram(t, prog.Binary())
	assert.NoError(err)
	assert.Equal("1\n", output)
}

func TestAssembler_Values(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		text  string
		value byte
	}){
		{"LDI R0,0x2A", 0x2A},
		{"LDI R0,0b101", 5},
		{"LDI R0,-1", 0xFF},
		{"LDI R0,~0", 0xFF},
		{"LDI R0,'A'", 'A'},
		{"LDI R0,'\\n'", '\n'},
		{"LDI R0,$(3*4+1)", 13},
		{"ldi r0,7", 7},
		{".equ N 6\nLDI R0,$(N*2)", 12},
		{"LDI R0,SP_INIT", STACK_POINTER_INIT},
		{"LDI R0,FL_LESS", FL_LESS},
		{"\n\nLDI R0,LINENO", 3},
	}

	for _, entry := range table {
		prog, err := assemble(entry.text)
		assert.NoError(err, entry.text)
		if err != nil {
			continue
		}
		assert.Equal([]byte{0x82, 0, entry.value}, prog.Binary(), entry.text)
	}
}

func TestAssembler_Registers(t *testing.T) {
	assert := assert.New(t)

	prog, err := assemble("PUSH SP\nPOP r7\nADD R6,R5")
	assert.NoError(err)
	if err != nil {
		return
	}
	assert.Equal([]byte{0x45, 7, 0x46, 7, 0xA0, 6, 5}, prog.Binary())
}

func TestAssembler_Data(t *testing.T) {
	assert := assert.New(t)

	prog, err := assemble("DB 1,2,3\n.byte 'x' 0x10")
	assert.NoError(err)
	if err != nil {
		return
	}
	assert.Equal([]byte{1, 2, 3, 'x', 0x10}, prog.Binary())
	assert.True(prog.Statements[0].Data)
}

func TestAssembler_Predefine(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	asm.Predefine("MEMORY_SIZE", "16")
	asm.Predefine("LIMIT", "9")

	prog, err := asm.Parse(strings.NewReader("DB MEMORY_SIZE LIMIT"))
	assert.NoError(err)
	if err != nil {
		return
	}
	assert.Equal([]byte{16, 9}, prog.Binary())
}

func TestAssembler_Macro(t *testing.T) {
	assert := assert.New(t)

	prog, err := assemble(`
.macro PRINT reg value
    LDI reg,value
    PRN reg
.endm
    PRINT R0,65
    PRINT R1 66
    HLT
`)
	assert.NoError(err)
	if err != nil {
		return
	}
	assert.Equal([]byte{
		0x82, 0, 65, 0x47, 0,
		0x82, 1, 66, 0x47, 1,
		0x01,
	}, prog.Binary())
}

func TestAssembler_MacroLocalLabel(t *testing.T) {
	assert := assert.New(t)

	prog, err := assemble(`
.macro SKIP
    LDI R3,@end
    JMP R3
@end:
.endm
    SKIP
    SKIP
    HLT
`)
	assert.NoError(err)
	if err != nil {
		return
	}
	assert.Equal([]byte{
		0x82, 3, 5, 0x54, 3,
		0x82, 3, 10, 0x54, 3,
		0x01,
	}, prog.Binary())
}

func TestAssembler_Errors(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name   string
		text   string
		err    error
		lineno int
	}){
		{"invalid", "HLT\nFOO R0", ErrInstructionInvalid, 2},
		{"missing", "LDI R0", ErrOpcodeValueMissing, 1},
		{"extra", "PRN R0,R1", ErrOpcodeExtraArgs, 1},
		{"register", "PRN R9", ErrParseRegister("R9"), 1},
		{"range", "LDI R0,300", ErrValueRange, 1},
		{"number", "DB 12z", ErrParseNumber("12z"), 1},
		{"label_missing", "LDI R0,nowhere\nHLT", ErrLabelMissing("nowhere"), 1},
		{"label_duplicate", "a:\nHLT\na:", ErrLabelDuplicate, 3},
		{"label_syntax", "9a: HLT", ErrLabelSyntax, 1},
		{"equ_duplicate", ".equ A 1\n.equ A 2", ErrEquateDuplicate, 2},
		{"equ_syntax", ".equ A", ErrEquateSyntax, 1},
		{"data_missing", "DB", ErrOpcodeValueMissing, 1},
		{"macro_lonely", ".macro M\nHLT", ErrMacroLonely, 2},
		{"macro_endm", ".endm", ErrMacroLonelyEndm, 1},
		{"macro_nesting", ".macro M\n.macro N", ErrMacroNesting, 2},
		{"macro_duplicate", ".macro M\n.endm\n.macro M\n.endm", ErrMacroDuplicate, 3},
		{"macro_syntax", ".macro", ErrMacroSyntax, 1},
		{"macro_args", ".macro M a\n.endm\nM", ErrMacroSyntax, 3},
		{"macro_body", ".macro M\nFOO\n.endm\nM", ErrInstructionInvalid, 4},
		{"too_large", strings.Repeat("LDI R0,1\n", 86), ErrProgramTooLarge, 86},
	}

	for _, entry := range table {
		_, err := assemble(entry.text)
		assert.ErrorIs(err, entry.err, entry.name)

		var se *ErrSyntax
		if assert.True(errors.As(err, &se), entry.name) {
			assert.Equal(entry.lineno, se.LineNo, entry.name)
		}
	}
}

func TestAssembler_MacroError(t *testing.T) {
	assert := assert.New(t)

	_, err := assemble(".macro M\nFOO\n.endm\nM")

	var me *ErrMacro
	if assert.True(errors.As(err, &me)) {
		assert.Equal("M", me.Macro)
		assert.Equal(2, me.Line)
	}
}

func TestAssembler_Expression(t *testing.T) {
	assert := assert.New(t)

	_, err := assemble("LDI R0,$(1 +)")
	assert.Error(err)

	_, err = assemble("LDI R0,$(\"x\")")
	assert.ErrorIs(err, ErrParseExpression("\"x\""))
}
