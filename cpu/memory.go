package cpu

import (
	"errors"
)

const (
	MEMORY_SIZE   = 256  // Bytes of addressable memory
	NUM_REGISTERS = 8    // General-purpose registers
	REG_SP        = 7    // Register reserved as the stack pointer
	STACK_EMPTY   = 0xF4 // Stack pointer value when the stack is empty
)

// Memory is the 256-cell address space shared by code and stack data.
type Memory [MEMORY_SIZE]byte

// Read returns the byte at the given address.
func (m *Memory) Read(address int) (value byte, err error) {
	if address < 0 || address >= MEMORY_SIZE {
		err = errors.Join(ErrAddressFault, ErrAddress(address))
		return
	}

	value = m[address]
	return
}

// Write stores a byte at the given address.
func (m *Memory) Write(address int, value byte) (err error) {
	if address < 0 || address >= MEMORY_SIZE {
		err = errors.Join(ErrAddressFault, ErrAddress(address))
		return
	}

	m[address] = value
	return
}

// RegRead returns the value of a register.
func (cpu *Cpu) RegRead(index byte) (value byte, err error) {
	if int(index) >= NUM_REGISTERS {
		err = errors.Join(ErrAddressFault, ErrRegister(index))
		return
	}

	value = cpu.Reg[index]
	return
}

// RegWrite sets the value of a register. Values wrap modulo 256 by
// byte arithmetic; a register write never overflows.
func (cpu *Cpu) RegWrite(index byte, value byte) (err error) {
	if int(index) >= NUM_REGISTERS {
		err = errors.Join(ErrAddressFault, ErrRegister(index))
		return
	}

	cpu.Reg[index] = value
	return
}
