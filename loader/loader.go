// Package loader binds an assembled parser.Program to a runnable
// *vm.VM: decoding its code vector and materializing its data segment
// into memory, exactly once per program, as the specification's
// lifecycle requires.
package loader

import (
	"github.com/arashvm/riscsub/decode"
	"github.com/arashvm/riscsub/parser"
	"github.com/arashvm/riscsub/vm"
)

// Load decodes program's code vector, allocates a memory image of
// memSize bytes, materializes the data segment at vm.DataBase, and
// returns a VM ready to be driven with CallFunction. memSize must be
// large enough to hold the data segment plus the initial stack.
// maxSteps bounds the number of instructions any single CallFunction may
// execute before faulting; zero means unbounded.
func Load(program *parser.Program, memSize int, maxSteps uint64) (*vm.VM, error) {
	code, err := decode.Decode(program)
	if err != nil {
		return nil, err
	}

	mem := vm.NewMemory(memSize)
	if len(program.Data) > 0 {
		if err := mem.LoadBytes(vm.DataBase, program.Data); err != nil {
			return nil, err
		}
	}

	labels := make(map[string]int)
	for name, idx := range program.Labels.CodeEntries() {
		labels[name] = idx
	}

	machine := vm.New(mem, code, labels)
	machine.MaxSteps = maxSteps
	return machine, nil
}
