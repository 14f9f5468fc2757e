package vm

import (
	"fmt"

	"github.com/arashvm/riscsub/decode"
)

var dumpOrder = []struct {
	name string
	idx  int
}{
	{"zero", decode.RegZero},
	{"ra", decode.RegRA},
	{"sp", decode.RegSP},
	{"a0", decode.RegA0},
	{"a1", decode.RegA1},
	{"a2", decode.RegA2},
	{"a3", decode.RegA3},
}

// String renders the register file and program counter, in the same
// register order used by dump, for use in fatal-error reporting.
func (v *VM) String() string {
	s := fmt.Sprintf("pc=0x%08X", v.PC)
	for _, r := range dumpOrder {
		s += fmt.Sprintf(" %s=0x%08X", r.name, v.Regs.Get(r.idx))
	}
	return s
}

// dump implements the "xor zero, zero, zero" debug pseudo-instruction:
// it writes the full register state to Trace (or, if Trace is unset, to
// Out) so a program can introspect itself without a separate debugger
// protocol.
func (v *VM) dump() {
	line := v.String()
	if v.Trace != nil {
		v.Trace(line)
		return
	}
	fmt.Fprintln(Out, line)
}
