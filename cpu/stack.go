package cpu

import (
	"errors"
)

// The stack lives in memory below STACK_EMPTY and grows toward address
// zero. Register r7 holds the address of the current top of the stack.

// push decrements the stack pointer and stores a value at the new top.
func (cpu *Cpu) push(value byte) (err error) {
	sp := cpu.Reg[REG_SP]
	if sp == 0 {
		err = errors.Join(ErrStackFault, ErrStackOverflow)
		return
	}

	sp--
	err = cpu.Ram.Write(int(sp), value)
	if err != nil {
		return
	}

	cpu.Reg[REG_SP] = sp
	return
}

// pop reads the value at the top of the stack and increments the stack
// pointer. Popping with the stack pointer at or above STACK_EMPTY is a
// read past the initial top, and faults.
func (cpu *Cpu) pop() (value byte, err error) {
	sp := cpu.Reg[REG_SP]
	if sp >= STACK_EMPTY {
		err = errors.Join(ErrStackFault, ErrStackUnderflow)
		return
	}

	value, err = cpu.Ram.Read(int(sp))
	if err != nil {
		return
	}

	cpu.Reg[REG_SP] = sp + 1
	return
}
