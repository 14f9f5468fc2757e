// Command mathlang compiles a mathlang source file into assembler
// source text.
package main

import (
	"fmt"
	"os"

	"github.com/arashvm/riscsub/mathlang"
)

func main() {
	if len(os.Args) != 3 {
		fmt.Fprintln(os.Stderr, "usage: mathlang <source_file> <output_file>")
		os.Exit(1)
	}

	src, err := os.Open(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	defer src.Close()

	stmts, err := mathlang.Parse(src)
	if err != nil {
		fmt.Fprintf(os.Stderr, "parse error: %v\n", err)
		os.Exit(1)
	}

	for i, stmt := range stmts {
		fmt.Printf("%d: \t%s = %s\n", i, stmt.LHS, stmt.RHS)
	}

	asm, err := mathlang.Compile(stmts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "compile error: %v\n", err)
		os.Exit(1)
	}

	if err := os.WriteFile(os.Args[2], []byte(asm), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "error writing output: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Assembly output written to %s\n", os.Args[2])
}
