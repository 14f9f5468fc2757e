package decode

import (
	"strings"
	"testing"

	"github.com/arashvm/riscsub/parser"
)

func assembleAndDecode(t *testing.T, src string) []Instruction {
	t.Helper()
	prog, err := parser.Assemble(strings.NewReader(src), "test.s")
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	ins, err := Decode(prog)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	return ins
}

func TestDecodeArithmeticAndBranch(t *testing.T) {
	ins := assembleAndDecode(t, `
.text
main:
  addi a0, zero, 5
  beq a0, zero, done
  addi a0, a0, 1
done:
  jalr zero, ra
`)
	if ins[0].Kind != Addi || ins[0].Rd != RegA0 || ins[0].Imm != 5 {
		t.Fatalf("unexpected decode of addi: %+v", ins[0])
	}
	if ins[1].Kind != Beq || ins[1].Target != 3 {
		t.Fatalf("beq target = %d, want 3", ins[1].Target)
	}
}

func TestDecodeDebugDumpPseudoInstruction(t *testing.T) {
	ins := assembleAndDecode(t, `
.text
main:
  xor zero, zero, zero
  jalr zero, ra
`)
	if ins[0].Kind != DebugDump {
		t.Fatalf("Kind = %v, want DebugDump", ins[0].Kind)
	}
}

func TestDecodeRealXorIsNotDebugDump(t *testing.T) {
	ins := assembleAndDecode(t, `
.text
main:
  xor a0, a1, a2
  jalr zero, ra
`)
	if ins[0].Kind != Xor {
		t.Fatalf("Kind = %v, want Xor", ins[0].Kind)
	}
}

func TestDecodeMemoryOperand(t *testing.T) {
	ins := assembleAndDecode(t, `
.text
main:
  lw a0, -4(sp)
  sw 8(sp), a0
  jalr zero, ra
`)
	if ins[0].Kind != Lw || ins[0].MemOffset != -4 || ins[0].MemBase != RegSP {
		t.Fatalf("unexpected decode of lw: %+v", ins[0])
	}
	if ins[1].Kind != Sw || ins[1].MemOffset != 8 || ins[1].Rs1 != RegA0 {
		t.Fatalf("unexpected decode of sw: %+v", ins[1])
	}
}

func TestDecodeLaResolvesDataAddress(t *testing.T) {
	prog, err := parser.Assemble(strings.NewReader(`
.data
msg:
  .string "Hi"
.text
main:
  la a0, msg
  jalr zero, ra
`), "test.s")
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	ins, err := Decode(prog)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if ins[0].Kind != La || ins[0].Target != dataBase {
		t.Fatalf("la target = %d, want %d", ins[0].Target, dataBase)
	}
}

func TestDecodeUndefinedLabelIsFatal(t *testing.T) {
	prog, err := parser.Assemble(strings.NewReader(`
.text
main:
  jal ra, nowhere
`), "test.s")
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if _, err := Decode(prog); err == nil {
		t.Fatal("expected undefined label error")
	}
}

func TestDecodeUnknownMnemonicIsFatal(t *testing.T) {
	prog, err := parser.Assemble(strings.NewReader(`
.text
main:
  frobnicate a0
`), "test.s")
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if _, err := Decode(prog); err == nil {
		t.Fatal("expected unknown mnemonic error")
	}
}

func TestDecodeBareDigitLabelRequiresDirection(t *testing.T) {
	prog, err := parser.Assemble(strings.NewReader(`
.text
1:
  nop
  beq zero, zero, 1
`), "test.s")
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if _, err := Decode(prog); err == nil {
		t.Fatal("expected error for bare digit label without direction suffix")
	}
}
