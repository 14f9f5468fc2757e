package vm

import "github.com/arashvm/riscsub/decode"

// Registers is the machine's register file: the six named registers plus
// the implied ra. Register zero is hard-wired: reads always return 0 and
// writes are discarded, so it is simplest to store it like any other slot
// and enforce the wiring at the accessor.
type Registers [decode.NumRegisters]uint32

// Get returns the value of register idx, returning 0 for zero regardless
// of what was last stored there.
func (r *Registers) Get(idx int) uint32 {
	if idx == decode.RegZero {
		return 0
	}
	return r[idx]
}

// Set stores value into register idx; writes to zero are silently
// discarded.
func (r *Registers) Set(idx int, value uint32) {
	if idx == decode.RegZero {
		return
	}
	r[idx] = value
}
