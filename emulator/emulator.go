// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"fmt"
	"io"

	"github.com/davren/ls8/cpu"
	"github.com/davren/ls8/loader"
)

// Emulator wires a CPU to a program image, console output, and the
// optional debug trace.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Listing of the running program, if assembled here.

	Trace io.Writer // If set, receives a trace line before every step.
}

// NewEmulator creates a new emulator.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Cpu: cpu.NewCpu(),
	}

	return
}

// Load resets the CPU and installs a program image.
func (emu *Emulator) Load(image []byte) (err error) {
	return emu.Cpu.Load(image)
}

// LoadFile reads a textual program image from the named file and
// installs it. On a load failure the CPU memory is left unpopulated
// and execution must not begin.
func (emu *Emulator) LoadFile(name string) (err error) {
	image, err := loader.ReadFile(name)
	if err != nil {
		return
	}

	return emu.Cpu.Load(image)
}

// LineNo returns the source line number for the current program
// counter, when a program listing is attached.
func (emu *Emulator) LineNo() int {
	if emu.Program == nil {
		return 0
	}

	return emu.Program.LineNo(emu.Cpu.Pc)
}

// Step executes a single instruction, emitting a trace line first when
// a trace writer is attached. Errors are decorated with the faulting
// address and source line.
func (emu *Emulator) Step() (err error) {
	addr := emu.Cpu.Pc
	lineno := emu.LineNo()
	defer func() {
		if err != nil {
			err = &ErrRuntime{Addr: addr, LineNo: lineno, Err: err}
		}
	}()

	if emu.Trace != nil {
		fmt.Fprintln(emu.Trace, emu.Cpu.Trace())
	}

	return emu.Cpu.Step()
}

// Run executes the loaded program until it halts or faults.
func (emu *Emulator) Run() (err error) {
	emu.Cpu.Verbose = emu.Verbose
	emu.Cpu.Running = true

	for emu.Cpu.Running {
		err = emu.Step()
		if err != nil {
			emu.Cpu.Running = false
			return
		}
	}

	return
}
