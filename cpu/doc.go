// Package cpu implements the LS-8 microprocessor and its assembler.
//
// The CPU consists of 256 bytes of memory, eight 8-bit general-purpose
// registers (r0-r7, with r7 reserved as the stack pointer), an ALU, a
// program counter, and three comparison flags. Instructions are one
// opcode byte followed by zero, one, or two operand bytes; the operand
// count is encoded in the top two bits of the opcode.
//
// The assembler provides a small assembly language for the LS-8
// instruction set, supporting labels, equates, character literals, and
// compile-time expression evaluation.
package cpu
