package cpu

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
)

// Flags holds the comparison flags. Only the CMP instruction mutates
// them, and exactly one flag is set after any compare.
type Flags struct {
	Equal   bool // Last compare was equal.
	Less    bool // Last compare was less-than.
	Greater bool // Last compare was greater-than.
}

// Cpu is the simulation context for the LS-8 machine.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Ram     Memory              // Memory shared by code and stack.
	Reg     [NUM_REGISTERS]byte // Register bank. r7 is the stack pointer.
	Pc      int                 // Address of the next instruction to fetch.
	Flags   Flags               // Comparison flags.
	Running bool                // True while the engine should keep fetching.

	Output io.Writer // Console output for PRN and PRA.
}

// NewCpu creates a new CPU with zeroed memory and registers, the stack
// pointer seeded to its empty position, and console output directed to
// stdout.
func NewCpu() (cpu *Cpu) {
	cpu = &Cpu{
		Output: os.Stdout,
	}
	cpu.Reg[REG_SP] = STACK_EMPTY

	return
}

// Reset clears memory, registers, and flags, reseeds the stack pointer,
// and returns the program counter to address zero.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	clear(cpu.Ram[:])
	clear(cpu.Reg[:])
	cpu.Reg[REG_SP] = STACK_EMPTY
	cpu.Pc = 0
	cpu.Flags = Flags{}
	cpu.Running = false
}

// Load resets the CPU and copies a program image into memory starting
// at address zero.
func (cpu *Cpu) Load(image []byte) (err error) {
	if len(image) > MEMORY_SIZE {
		err = errors.Join(ErrImageTooLarge, ErrAddress(len(image)))
		return
	}

	cpu.Reset()
	copy(cpu.Ram[:], image)

	return
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	var sb strings.Builder

	fmt.Fprintf(&sb, "   pc: %02X\n", cpu.Pc)

	flag := "-"
	switch {
	case cpu.Flags.Equal:
		flag = "E"
	case cpu.Flags.Less:
		flag = "L"
	case cpu.Flags.Greater:
		flag = "G"
	}
	fmt.Fprintf(&sb, "   fl: %v\n", flag)

	for n, val := range cpu.Reg {
		fmt.Fprintf(&sb, "   r%d: %02X\n", n, val)
	}

	return sb.String()
}

// Trace returns the fixed-format debug trace line: the program counter,
// the three bytes at PC, PC+1, and PC+2, and all eight registers, in
// hexadecimal. Bytes beyond the end of memory render as zero.
func (cpu *Cpu) Trace() (text string) {
	var sb strings.Builder

	fmt.Fprintf(&sb, "TRACE: %02X |", cpu.Pc)
	for n := range 3 {
		value, _ := cpu.Ram.Read(cpu.Pc + n)
		fmt.Fprintf(&sb, " %02X", value)
	}
	sb.WriteString(" |")
	for _, value := range cpu.Reg {
		fmt.Fprintf(&sb, " %02X", value)
	}

	return sb.String()
}

// Step fetches, decodes, and executes a single instruction.
//
// The next program counter defaults to PC plus the instruction width;
// control-transfer instructions overwrite it. Any error aborts the
// instruction with the program counter unchanged.
func (cpu *Cpu) Step() (err error) {
	fetched, err := cpu.Ram.Read(cpu.Pc)
	if err != nil {
		return
	}
	op := Opcode(fetched)

	defer func() {
		if err != nil {
			err = errors.Join(ErrOpcode(op), err)
		}
	}()

	width := op.Operands()

	var a, b byte
	if width >= 1 {
		a, err = cpu.Ram.Read(cpu.Pc + 1)
		if err != nil {
			return
		}
	}
	if width >= 2 {
		b, err = cpu.Ram.Read(cpu.Pc + 2)
		if err != nil {
			return
		}
	}

	if cpu.Verbose {
		log.Printf("%02x: %v", cpu.Pc, op)
	}

	next := cpu.Pc + 1 + width

	switch op {
	case OP_HLT:
		cpu.Running = false
	case OP_LDI:
		err = cpu.RegWrite(a, b)
	case OP_PRN:
		var value byte
		value, err = cpu.RegRead(a)
		if err != nil {
			return
		}
		fmt.Fprintf(cpu.Output, "%d\n", value)
	case OP_PRA:
		var value byte
		value, err = cpu.RegRead(a)
		if err != nil {
			return
		}
		fmt.Fprintf(cpu.Output, "%c", value)
	case OP_ADD:
		err = cpu.alu(ALU_OP_ADD, a, b)
	case OP_MUL:
		err = cpu.alu(ALU_OP_MUL, a, b)
	case OP_INC:
		err = cpu.alu(ALU_OP_INC, a, b)
	case OP_DEC:
		err = cpu.alu(ALU_OP_DEC, a, b)
	case OP_CMP:
		err = cpu.alu(ALU_OP_CMP, a, b)
	case OP_PUSH:
		var value byte
		value, err = cpu.RegRead(a)
		if err != nil {
			return
		}
		err = cpu.push(value)
	case OP_POP:
		var value byte
		value, err = cpu.pop()
		if err != nil {
			return
		}
		err = cpu.RegWrite(a, value)
	case OP_CALL:
		var target byte
		target, err = cpu.RegRead(a)
		if err != nil {
			return
		}
		// Push the address of the instruction directly after CALL.
		// A return address past the end of memory can never be
		// fetched, so it faults here instead of wrapping.
		if next >= MEMORY_SIZE {
			err = errors.Join(ErrAddressFault, ErrAddress(next))
			return
		}
		err = cpu.push(byte(next))
		if err != nil {
			return
		}
		next = int(target)
	case OP_RET:
		var target byte
		target, err = cpu.pop()
		if err != nil {
			return
		}
		next = int(target)
	case OP_JMP:
		var target byte
		target, err = cpu.RegRead(a)
		if err != nil {
			return
		}
		next = int(target)
	case OP_JEQ:
		var target byte
		target, err = cpu.RegRead(a)
		if err != nil {
			return
		}
		if cpu.Flags.Equal {
			next = int(target)
		}
	case OP_JNE:
		var target byte
		target, err = cpu.RegRead(a)
		if err != nil {
			return
		}
		if !cpu.Flags.Equal {
			next = int(target)
		}
	case OP_ST:
		var address, value byte
		address, err = cpu.RegRead(a)
		if err != nil {
			return
		}
		value, err = cpu.RegRead(b)
		if err != nil {
			return
		}
		err = cpu.Ram.Write(int(address), value)
	default:
		err = ErrIllegalInstruction
		return
	}
	if err != nil {
		return
	}

	cpu.Pc = next

	return
}

// Run executes instructions until a HLT clears the running flag or a
// fatal error aborts the instruction stream.
func (cpu *Cpu) Run() (err error) {
	cpu.Running = true

	for cpu.Running {
		err = cpu.Step()
		if err != nil {
			cpu.Running = false
			return
		}
	}

	return
}
