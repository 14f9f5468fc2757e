// Package vm implements the register-level execution engine: a fetch
// step over a vector of decode.Instruction, a flat byte-addressable
// memory, and the six named registers plus the implied link register.
package vm

import "github.com/arashvm/riscsub/decode"

// HaltedPC is the sentinel program-counter value meaning "no instruction
// to execute". The only way into this state from a running program is to
// jump to it, typically via "jalr zero, ra" after CallFunction prepared
// ra with this value.
const HaltedPC uint32 = 0xFFFFFFFF

// VM is one machine: a register file, a memory image, and a decoded code
// vector. A VM is loaded once (see the loader package) and may then be
// invoked repeatedly through CallFunction, each invocation running to
// completion or fatal error.
type VM struct {
	Regs Registers
	Mem  *Memory
	Code []decode.Instruction

	PC uint32

	// Labels maps global code labels to code indices, for CallFunction.
	Labels map[string]int

	// Trace, when non-nil, receives a line of text after every step
	// commits (i.e. after the instruction's effects, including PC, have
	// taken hold) and for every debug-dump pseudo-instruction.
	Trace func(string)

	// MaxSteps, when non-zero, bounds the number of instructions Run
	// will execute before faulting with FaultStepBudget. Zero means
	// unbounded.
	MaxSteps uint64

	Steps uint64
}

// New constructs a VM around an already-decoded program image. The
// memory is expected to already have its data segment materialized (see
// the loader package); New only sets the initial stack pointer and
// halted PC.
func New(mem *Memory, code []decode.Instruction, labels map[string]int) *VM {
	v := &VM{Mem: mem, Code: code, Labels: labels, PC: HaltedPC}
	v.Regs.Set(decode.RegSP, uint32(mem.Size()-16))
	return v
}

// Halted reports whether the VM is in the sentinel, no-instruction
// state.
func (v *VM) Halted() bool {
	return v.PC == HaltedPC
}

// CallFunction resolves name to a code index, requires the VM to be
// halted, writes the current (sentinel) PC into ra, and transfers
// control there. The callee is expected to end with "jalr zero, ra",
// which restores PC to the sentinel and halts the VM again.
func (v *VM) CallFunction(name string) error {
	if !v.Halted() {
		return newFaultf(FaultNotHalted, "call_function(%q) invoked while running", name)
	}
	target, ok := v.Labels[name]
	if !ok {
		return newFaultf(FaultUndefinedLabel, "call_function: undefined label %q", name)
	}
	v.Regs.Set(decode.RegRA, HaltedPC)
	v.PC = uint32(target)
	return v.Run()
}

// Run steps the VM until it halts or faults. The step count, and with it
// the MaxSteps budget, starts afresh on every call.
func (v *VM) Run() error {
	v.Steps = 0
	for !v.Halted() {
		if err := v.Step(); err != nil {
			return err
		}
	}
	return nil
}

// Step dispatches the single instruction at PC. If the VM is already
// halted, Step is a no-op that returns nil, matching the specification's
// "step() on a halted VM returns halted" behavior without needing a
// separate status return.
func (v *VM) Step() error {
	if v.Halted() {
		return nil
	}
	if v.MaxSteps != 0 && v.Steps >= v.MaxSteps {
		return newFaultf(FaultStepBudget, "exceeded step budget of %d", v.MaxSteps)
	}
	if int(v.PC) >= len(v.Code) {
		return newFault(FaultPCOutOfBounds, v.PC)
	}
	ins := v.Code[v.PC]
	v.Steps++
	if err := v.execute(ins); err != nil {
		return err
	}
	if v.Trace != nil {
		v.Trace(v.String())
	}
	return nil
}
