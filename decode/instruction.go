package decode

// Kind identifies the operation an Instruction performs. Using a tagged
// sum dispatched in a switch (rather than a heap-allocated closure per
// instruction, as the reference interpreter does) keeps decode errors
// exhaustive and avoids a closure allocation per instruction.
type Kind int

const (
	Nop Kind = iota
	Printc
	DebugDump

	Lw
	Sw
	Lh
	Sh
	Lhu
	Lb
	Sb
	Lbu
	La

	Add
	Sub
	And
	Or
	Xor
	Addi
	Andi
	Ori
	Xori
	Subi

	Sll
	Srl
	Sra
	Slli
	Srli
	Srai

	Slt
	Slti
	Sltu
	Sltui

	Beq
	Bne
	Blt
	Bge
	Bltu
	Bgeu

	Jal
	Jalr

	Mul
	Mulh
	Mulhu
	Div
	Rem
	Divu
	Remu
)

// Instruction is a single decoded operation: every operand it needs has
// already been parsed and every label reference already resolved to a
// code index or data address, so the execution engine never touches
// source text.
type Instruction struct {
	Kind Kind

	Rd, Rs1, Rs2 int   // register operands, when applicable
	Imm          int32 // immediate operand, when applicable
	MemOffset    int32 // memory operand offset
	MemBase      int   // memory operand base register

	Target uint32 // resolved code index (branches/jal/jalr has no target) or data address (la)

	Line int // source line, for run-time error reporting
}
