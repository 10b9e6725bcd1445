// Package cpu implements the processor and assembler for the LS-8 system.
//
// The CPU consists of a program counter (PC), eight 8-bit general-purpose
// registers (R0-R7), and a flags register set by comparisons. Register R7
// doubles as the stack pointer (SP) of a downward growing stack held in the
// same 256 byte memory as the program.
//
// Instructions are one opcode byte followed by zero to two operand bytes;
// the upper two bits of the opcode give the operand count.
//
// The assembler provides a small assembly language for the LS-8 instruction
// set, supporting macros, labels, equates, and compile-time expression
// evaluation.
package cpu
