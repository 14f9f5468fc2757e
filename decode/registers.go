// Package decode turns a parser.Program's raw code vector into a vector of
// fully-bound, dispatchable instructions: one decode pass per assembled
// program, after which the vm package never re-parses operand text.
package decode

// Register indices. zero is hard-wired to read 0 and discard writes; ra
// is the implied seventh register the specification requires for
// jal/jalr/CallFunction even though it is not among the six named ones.
const (
	RegZero = iota
	RegRA
	RegSP
	RegA0
	RegA1
	RegA2
	RegA3
	NumRegisters
)

var registerNames = map[string]int{
	"zero": RegZero,
	"ra":   RegRA,
	"sp":   RegSP,
	"a0":   RegA0,
	"a1":   RegA1,
	"a2":   RegA2,
	"a3":   RegA3,
}

// RegisterIndex resolves a register name to its index, or reports that
// it is not one of the machine's recognized registers.
func RegisterIndex(name string) (int, bool) {
	idx, ok := registerNames[name]
	return idx, ok
}
