package vm

import (
	"strings"
	"testing"

	"github.com/arashvm/riscsub/decode"
)

func newTestVM(code []decode.Instruction) *VM {
	return New(NewMemory(DefaultMemorySize), code, map[string]int{})
}

// haltInstruction jumps to the halted sentinel, ending Run cleanly
// instead of letting PC run off the end of the code vector.
var haltInstruction = decode.Instruction{Kind: decode.Jal, Rd: decode.RegZero, Target: HaltedPC}

func TestSrliLogicalShift(t *testing.T) {
	v := newTestVM([]decode.Instruction{
		{Kind: decode.Addi, Rd: decode.RegA0, Rs1: decode.RegZero, Imm: -1},
		{Kind: decode.Srli, Rd: decode.RegA1, Rs1: decode.RegA0, Imm: 1},
		haltInstruction,
	})
	v.PC = 0
	if err := v.Run(); err != nil {
		t.Fatalf("unexpected fault: %v", err)
	}
	if got := v.Regs.Get(decode.RegA1); got != 0x7FFFFFFF {
		t.Errorf("srli result = 0x%08X, want 0x7FFFFFFF", got)
	}
}

func TestSraiArithmeticShift(t *testing.T) {
	v := newTestVM([]decode.Instruction{
		{Kind: decode.Addi, Rd: decode.RegA0, Rs1: decode.RegZero, Imm: -1},
		{Kind: decode.Srai, Rd: decode.RegA1, Rs1: decode.RegA0, Imm: 1},
		haltInstruction,
	})
	v.PC = 0
	if err := v.Run(); err != nil {
		t.Fatalf("unexpected fault: %v", err)
	}
	if got := v.Regs.Get(decode.RegA1); got != 0xFFFFFFFF {
		t.Errorf("srai result = 0x%08X, want 0xFFFFFFFF", got)
	}
}

func TestSltuUnsignedComparison(t *testing.T) {
	v := newTestVM([]decode.Instruction{
		{Kind: decode.Addi, Rd: decode.RegA0, Rs1: decode.RegZero, Imm: -1},
		{Kind: decode.Sltu, Rd: decode.RegA1, Rs1: decode.RegA0, Rs2: decode.RegZero},
		haltInstruction,
	})
	v.PC = 0
	if err := v.Run(); err != nil {
		t.Fatalf("unexpected fault: %v", err)
	}
	if got := v.Regs.Get(decode.RegA1); got != 0 {
		t.Errorf("sltu result = %d, want 0 (0xFFFFFFFF is not < 0 unsigned)", got)
	}
}

func TestDivByZeroQuirk(t *testing.T) {
	v := newTestVM([]decode.Instruction{
		{Kind: decode.Addi, Rd: decode.RegA0, Rs1: decode.RegZero, Imm: 1},
		{Kind: decode.Addi, Rd: decode.RegA1, Rs1: decode.RegZero, Imm: 0},
		{Kind: decode.Div, Rd: decode.RegA2, Rs1: decode.RegA0, Rs2: decode.RegA1},
		haltInstruction,
	})
	v.PC = 0
	if err := v.Run(); err != nil {
		t.Fatalf("unexpected fault: %v", err)
	}
	if got := v.Regs.Get(decode.RegA2); got != 0xFFFFFFFF {
		t.Errorf("div by zero = 0x%08X, want 0xFFFFFFFF", got)
	}
}

func TestZeroRegisterWritesDiscarded(t *testing.T) {
	v := newTestVM([]decode.Instruction{
		{Kind: decode.Addi, Rd: decode.RegZero, Rs1: decode.RegZero, Imm: 42},
		haltInstruction,
	})
	v.PC = 0
	if err := v.Run(); err != nil {
		t.Fatalf("unexpected fault: %v", err)
	}
	if got := v.Regs.Get(decode.RegZero); got != 0 {
		t.Errorf("zero register = %d, want 0", got)
	}
}

func TestCallFunctionRequiresHalted(t *testing.T) {
	v := newTestVM([]decode.Instruction{{Kind: decode.Nop}})
	v.PC = 0
	err := v.CallFunction("main")
	if err == nil {
		t.Fatal("expected error calling into a running VM")
	}
}

func TestCallFunctionRoundTrip(t *testing.T) {
	code := []decode.Instruction{
		{Kind: decode.Addi, Rd: decode.RegA0, Rs1: decode.RegZero, Imm: 7},
		{Kind: decode.Jalr, Rd: decode.RegZero, Rs1: decode.RegRA},
	}
	v := New(NewMemory(DefaultMemorySize), code, map[string]int{"main": 0})
	if err := v.CallFunction("main"); err != nil {
		t.Fatalf("unexpected fault: %v", err)
	}
	if !v.Halted() {
		t.Fatal("expected VM to be halted after call_function returns")
	}
	if got := v.Regs.Get(decode.RegA0); got != 7 {
		t.Errorf("a0 = %d, want 7", got)
	}
}

func TestSbSkipsAlignmentSh(t *testing.T) {
	v := newTestVM(nil)
	if err := v.Mem.WriteByte(257, 0xAB); err != nil {
		t.Fatalf("sb at odd address should not fault: %v", err)
	}
	if err := v.Mem.WriteHalfword(257, 0xABCD); err == nil {
		t.Fatal("sh at odd address should fault")
	}
}

func TestMemoryOutOfBoundsFaults(t *testing.T) {
	m := NewMemory(16)
	if _, err := m.ReadWord(16); err == nil {
		t.Fatal("expected out-of-bounds fault")
	}
}

func TestStepBudgetExceeded(t *testing.T) {
	code := []decode.Instruction{
		{Kind: decode.Jal, Rd: decode.RegZero, Target: 0}, // infinite loop
	}
	v := New(NewMemory(DefaultMemorySize), code, map[string]int{})
	v.MaxSteps = 3
	v.PC = 0
	err := v.Run()
	if err == nil {
		t.Fatal("expected step budget fault")
	}
	if f, ok := err.(*Fault); !ok || f.Kind != FaultStepBudget {
		t.Fatalf("err = %v, want FaultStepBudget", err)
	}
}

func TestTraceReceivesLineAfterEachStepCommits(t *testing.T) {
	code := []decode.Instruction{
		{Kind: decode.Addi, Rd: decode.RegA0, Rs1: decode.RegZero, Imm: 9},
		{Kind: decode.Jalr, Rd: decode.RegZero, Rs1: decode.RegRA},
	}
	v := New(NewMemory(DefaultMemorySize), code, map[string]int{"main": 0})

	var lines []string
	v.Trace = func(line string) { lines = append(lines, line) }

	if err := v.CallFunction("main"); err != nil {
		t.Fatalf("unexpected fault: %v", err)
	}
	if len(lines) != 2 {
		t.Fatalf("got %d trace lines, want 2", len(lines))
	}
	if !strings.Contains(lines[0], "a0=0x00000009") {
		t.Fatalf("first trace line = %q, want it to reflect the committed addi", lines[0])
	}
}
