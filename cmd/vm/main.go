// Command vm assembles and runs a RISC-V-subset assembly source file
// against the register VM.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/arashvm/riscsub/config"
	"github.com/arashvm/riscsub/decode"
	"github.com/arashvm/riscsub/loader"
	"github.com/arashvm/riscsub/parser"
)

func main() {
	verbose := flag.Bool("verbose", false, "print a state dump after every step")
	flag.Parse()

	// The flag package stops at the first positional argument, so a
	// --verbose given after the file or entry point is picked out here.
	var args []string
	for _, a := range flag.Args() {
		if a == "--verbose" || a == "-verbose" {
			*verbose = true
			continue
		}
		args = append(args, a)
	}

	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "usage: vm <asm-file> [entry-point] [--verbose]")
		os.Exit(1)
	}
	asmFile := args[0]

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error loading config: %v\n", err)
		os.Exit(1)
	}

	entry := cfg.VM.DefaultEntry
	if len(args) > 1 {
		entry = args[1]
	}

	f, err := os.Open(asmFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	program, err := parser.Assemble(f, asmFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "assembly error: %v\n", err)
		os.Exit(1)
	}

	machine, err := loader.Load(program, cfg.VM.MemorySize, cfg.VM.MaxSteps)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load error: %v\n", err)
		os.Exit(1)
	}

	if *verbose || cfg.Trace.Verbose {
		machine.Trace = func(line string) {
			fmt.Fprintln(os.Stderr, line)
		}
	}

	spBefore := machine.Regs.Get(decode.RegSP)

	if err := machine.CallFunction(entry); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		fmt.Fprintf(os.Stderr, "state: %s\n", machine.String())
		os.Exit(1)
	}

	if spBefore != machine.Regs.Get(decode.RegSP) {
		fmt.Fprintf(os.Stderr, "warning: stack pointer unbalanced after call to %q\n", entry)
	}
}
