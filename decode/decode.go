package decode

import (
	"github.com/arashvm/riscsub/parser"
)

const dataBase = 256

// mnemonic -> kind for instructions whose shape is shared (rd, rs1, rs2
// or rd, rs1, imm); branches, loads/stores, jumps and la are dispatched
// separately because their operand shapes differ.
var rrrKinds = map[string]Kind{
	"add": Add, "sub": Sub, "and": And, "or": Or, "xor": Xor,
	"slt": Slt, "sltu": Sltu,
	"sll": Sll, "srl": Srl, "sra": Sra,
	"mul": Mul, "mulh": Mulh, "mulhu": Mulhu,
	"div": Div, "rem": Rem, "divu": Divu, "remu": Remu,
}

var rriKinds = map[string]Kind{
	"addi": Addi, "andi": Andi, "ori": Ori, "xori": Xori, "subi": Subi,
	"slli": Slli, "srli": Srli, "srai": Srai,
	"slti": Slti, "sltui": Sltui,
}

var branchKinds = map[string]Kind{
	"beq": Beq, "bne": Bne, "blt": Blt, "bge": Bge, "bltu": Bltu, "bgeu": Bgeu,
}

var loadKinds = map[string]Kind{
	"lw": Lw, "lh": Lh, "lhu": Lhu, "lb": Lb, "lbu": Lbu,
}

var storeKinds = map[string]Kind{
	"sw": Sw, "sh": Sh, "sb": Sb,
}

// Decode walks a parser.Program's code vector and produces a fully
// bound instruction vector: every register name, immediate, memory
// operand and label reference has already been resolved, so the vm
// package only ever switches on Instruction.Kind.
func Decode(program *parser.Program) ([]Instruction, error) {
	out := make([]Instruction, len(program.Code))
	for i, cl := range program.Code {
		ins, err := decodeOne(program.Labels, i, cl)
		if err != nil {
			return nil, err
		}
		ins.Line = cl.Pos.Line
		out[i] = ins
	}
	return out, nil
}

func decodeOne(labels *parser.LabelTable, idx int, cl parser.CodeLine) (Instruction, error) {
	pos := cl.Pos
	m := cl.Mnemonic
	args := cl.Args

	// xor zero, zero, zero is the debug dump pseudo-instruction, not a
	// real XOR: the machine has no other in-band way to ask for a
	// register trace, so this exact operand pattern is reserved.
	if m == "xor" && len(args) == 3 && args[0] == "zero" && args[1] == "zero" && args[2] == "zero" {
		return Instruction{Kind: DebugDump}, nil
	}

	switch m {
	case "nop":
		if len(args) != 0 {
			return Instruction{}, parser.NewError(pos, parser.ErrorSyntax, "nop takes no operands")
		}
		return Instruction{Kind: Nop}, nil

	case "printc":
		if err := wantArgs(pos, m, args, 1); err != nil {
			return Instruction{}, err
		}
		rs1, err := parseRegister(pos, args[0])
		if err != nil {
			return Instruction{}, err
		}
		return Instruction{Kind: Printc, Rs1: rs1}, nil

	case "la":
		if err := wantArgs(pos, m, args, 2); err != nil {
			return Instruction{}, err
		}
		rd, err := parseRegister(pos, args[0])
		if err != nil {
			return Instruction{}, err
		}
		off, err := resolveDataLabel(labels, args[1])
		if err != nil {
			return Instruction{}, parser.NewError(pos, parser.ErrorUndefinedLabel, "undefined data label %q", args[1])
		}
		return Instruction{Kind: La, Rd: rd, Target: uint32(dataBase + off)}, nil

	case "jal":
		if err := wantArgs(pos, m, args, 2); err != nil {
			return Instruction{}, err
		}
		rd, err := parseRegister(pos, args[0])
		if err != nil {
			return Instruction{}, err
		}
		target, err := resolveCodeLabel(labels, pos, idx, args[1])
		if err != nil {
			return Instruction{}, err
		}
		return Instruction{Kind: Jal, Rd: rd, Target: uint32(target)}, nil

	case "jalr":
		if len(args) != 2 && len(args) != 3 {
			return Instruction{}, parser.NewError(pos, parser.ErrorSyntax, "jalr expects 2 or 3 operands, got %d", len(args))
		}
		rd, err := parseRegister(pos, args[0])
		if err != nil {
			return Instruction{}, err
		}
		rs1, err := parseRegister(pos, args[1])
		if err != nil {
			return Instruction{}, err
		}
		var imm int32
		if len(args) == 3 {
			imm, err = parseImmediate(pos, args[2])
			if err != nil {
				return Instruction{}, err
			}
		}
		return Instruction{Kind: Jalr, Rd: rd, Rs1: rs1, Imm: imm}, nil
	}

	if kind, ok := rrrKinds[m]; ok {
		if err := wantArgs(pos, m, args, 3); err != nil {
			return Instruction{}, err
		}
		rd, err := parseRegister(pos, args[0])
		if err != nil {
			return Instruction{}, err
		}
		rs1, err := parseRegister(pos, args[1])
		if err != nil {
			return Instruction{}, err
		}
		rs2, err := parseRegister(pos, args[2])
		if err != nil {
			return Instruction{}, err
		}
		return Instruction{Kind: kind, Rd: rd, Rs1: rs1, Rs2: rs2}, nil
	}

	if kind, ok := rriKinds[m]; ok {
		if err := wantArgs(pos, m, args, 3); err != nil {
			return Instruction{}, err
		}
		rd, err := parseRegister(pos, args[0])
		if err != nil {
			return Instruction{}, err
		}
		rs1, err := parseRegister(pos, args[1])
		if err != nil {
			return Instruction{}, err
		}
		imm, err := parseImmediate(pos, args[2])
		if err != nil {
			return Instruction{}, err
		}
		return Instruction{Kind: kind, Rd: rd, Rs1: rs1, Imm: imm}, nil
	}

	if kind, ok := branchKinds[m]; ok {
		if err := wantArgs(pos, m, args, 3); err != nil {
			return Instruction{}, err
		}
		rs1, err := parseRegister(pos, args[0])
		if err != nil {
			return Instruction{}, err
		}
		rs2, err := parseRegister(pos, args[1])
		if err != nil {
			return Instruction{}, err
		}
		target, err := resolveCodeLabel(labels, pos, idx, args[2])
		if err != nil {
			return Instruction{}, err
		}
		return Instruction{Kind: kind, Rs1: rs1, Rs2: rs2, Target: uint32(target)}, nil
	}

	if kind, ok := loadKinds[m]; ok {
		if err := wantArgs(pos, m, args, 2); err != nil {
			return Instruction{}, err
		}
		rd, err := parseRegister(pos, args[0])
		if err != nil {
			return Instruction{}, err
		}
		mem, err := parseMemOperand(pos, args[1])
		if err != nil {
			return Instruction{}, err
		}
		return Instruction{Kind: kind, Rd: rd, MemOffset: mem.Offset, MemBase: mem.BaseReg}, nil
	}

	if kind, ok := storeKinds[m]; ok {
		if err := wantArgs(pos, m, args, 2); err != nil {
			return Instruction{}, err
		}
		mem, err := parseMemOperand(pos, args[0])
		if err != nil {
			return Instruction{}, err
		}
		rs1, err := parseRegister(pos, args[1])
		if err != nil {
			return Instruction{}, err
		}
		return Instruction{Kind: kind, Rs1: rs1, MemOffset: mem.Offset, MemBase: mem.BaseReg}, nil
	}

	return Instruction{}, parser.NewError(pos, parser.ErrorSyntax, "unknown mnemonic %q", m)
}

func wantArgs(pos parser.Position, mnemonic string, args []string, n int) error {
	if len(args) != n {
		return parser.NewError(pos, parser.ErrorSyntax, "%s expects %d operand(s), got %d", mnemonic, n, len(args))
	}
	return nil
}
