// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"log"
	"os"

	"github.com/davren/ls8/cpu"
	"github.com/davren/ls8/emulator"
)

func main() {
	var compile string
	var save bool
	var output string
	var trace bool
	var verbose bool

	flag.StringVar(&compile, "c", "", ".asm file to assemble")
	flag.BoolVar(&save, "s", false, "Save assembled image, do not execute")
	flag.StringVar(&output, "o", "-", "Image output")
	flag.BoolVar(&trace, "t", false, "Trace each instruction to stderr")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	var prog *cpu.Program

	// Assemble a new program image.
	if len(compile) != 0 {
		inf, err := os.Open(compile)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
		defer inf.Close()

		asm := &cpu.Assembler{Verbose: verbose}
		prog, err = asm.Parse(inf)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
	}

	if save {
		if prog == nil {
			log.Fatalf("%v: nothing assembled to save", os.Args[0])
		}

		ouf := os.Stdout
		if output != "-" {
			var err error
			ouf, err = os.Create(output)
			if err != nil {
				log.Fatalf("%v: %v", output, err)
			}
			defer ouf.Close()
		}

		ouf.WriteString(prog.Text())
		return
	}

	emu := emulator.NewEmulator()
	emu.Verbose = verbose
	if trace {
		emu.Trace = os.Stderr
	}

	if prog != nil {
		emu.Program = prog
		if err := emu.Load(prog.Binary()); err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
	} else {
		if flag.NArg() != 1 {
			log.Fatalf("usage: %v [-v] [-t] file.ls8 | -c file.asm [-s [-o out.ls8]]", os.Args[0])
		}
		if err := emu.LoadFile(flag.Arg(0)); err != nil {
			log.Fatalf("%v: %v", flag.Arg(0), err)
		}
	}

	if err := emu.Run(); err != nil {
		log.Fatal(err)
	}
}
