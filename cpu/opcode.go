package cpu

import (
	"fmt"
)

// Opcode is a single LS-8 instruction byte.
//
// Layout: bits 7-6 are the operand count, bit 5 marks instructions
// handled by the ALU, and bits 4-0 are the instruction identifier.
type Opcode byte

const (
	OP_HLT  = Opcode(0b00000001) // hlt
	OP_RET  = Opcode(0b00010001) // ret
	OP_PUSH = Opcode(0b01000101) // push
	OP_POP  = Opcode(0b01000110) // pop
	OP_PRN  = Opcode(0b01000111) // prn
	OP_PRA  = Opcode(0b01001000) // pra
	OP_CALL = Opcode(0b01010000) // call
	OP_JMP  = Opcode(0b01010100) // jmp
	OP_JEQ  = Opcode(0b01010101) // jeq
	OP_JNE  = Opcode(0b01010110) // jne
	OP_INC  = Opcode(0b01100101) // inc
	OP_DEC  = Opcode(0b01100110) // dec
	OP_LDI  = Opcode(0b10000010) // ldi
	OP_ST   = Opcode(0b10000100) // st
	OP_ADD  = Opcode(0b10100000) // add
	OP_MUL  = Opcode(0b10100010) // mul
	OP_CMP  = Opcode(0b10100111) // cmp
)

// opcodeName maps each opcode of the instruction set to its mnemonic.
var opcodeName = map[Opcode]string{
	OP_HLT:  "HLT",
	OP_RET:  "RET",
	OP_PUSH: "PUSH",
	OP_POP:  "POP",
	OP_PRN:  "PRN",
	OP_PRA:  "PRA",
	OP_CALL: "CALL",
	OP_JMP:  "JMP",
	OP_JEQ:  "JEQ",
	OP_JNE:  "JNE",
	OP_INC:  "INC",
	OP_DEC:  "DEC",
	OP_LDI:  "LDI",
	OP_ST:   "ST",
	OP_ADD:  "ADD",
	OP_MUL:  "MUL",
	OP_CMP:  "CMP",
}

// mnemonicOp is the reverse of opcodeName, used by the assembler.
var mnemonicOp = map[string]Opcode{}

func init() {
	for op, name := range opcodeName {
		mnemonicOp[name] = op
	}
}

// OpcodeOf returns the opcode for a mnemonic.
func OpcodeOf(mnemonic string) (op Opcode, ok bool) {
	op, ok = mnemonicOp[mnemonic]
	return
}

// Operands returns the number of operand bytes that follow the opcode.
func (op Opcode) Operands() int {
	return int(op >> 6)
}

// Alu returns true if the instruction is handled by the ALU.
func (op Opcode) Alu() bool {
	return (op & 0b00100000) != 0
}

// Ident returns the instruction identifier bits.
func (op Opcode) Ident() byte {
	return byte(op & 0b00011111)
}

// Valid returns true if the opcode is part of the instruction set.
func (op Opcode) Valid() bool {
	_, ok := opcodeName[op]
	return ok
}

// String returns the mnemonic for the opcode.
func (op Opcode) String() string {
	name, ok := opcodeName[op]
	if !ok {
		return fmt.Sprintf("0x%02x", byte(op))
	}
	return name
}
