// Command assembler assembles a RISC-V-subset source file and dumps its
// resulting program image: labels, decoded instructions, and data
// segment bytes.
package main

import (
	"fmt"
	"os"

	"github.com/arashvm/riscsub/decode"
	"github.com/arashvm/riscsub/parser"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: assembler <src-file>")
		os.Exit(1)
	}

	f, err := os.Open(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	program, err := parser.Assemble(f, os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "assembly error: %v\n", err)
		os.Exit(1)
	}

	instructions, err := decode.Decode(program)
	if err != nil {
		fmt.Fprintf(os.Stderr, "decode error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("labels:")
	for name, idx := range program.Labels.CodeEntries() {
		fmt.Printf("  %s -> code[%d]\n", name, idx)
	}

	fmt.Println("code:")
	for i, ins := range instructions {
		fmt.Printf("  %4d: kind=%d rd=%d rs1=%d rs2=%d imm=%d target=%d\n",
			i, ins.Kind, ins.Rd, ins.Rs1, ins.Rs2, ins.Imm, ins.Target)
	}

	fmt.Printf("data: %d bytes\n", len(program.Data))
	for i := 0; i < len(program.Data); i += 16 {
		end := i + 16
		if end > len(program.Data) {
			end = len(program.Data)
		}
		fmt.Printf("  %4d: % x\n", i, program.Data[i:end])
	}
}
