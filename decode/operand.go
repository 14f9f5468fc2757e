package decode

import (
	"regexp"
	"strings"

	"github.com/arashvm/riscsub/parser"
)

var memOperandRE = regexp.MustCompile(`^(-?\w+)\((\w+)\)$`)

// memOperand is the parsed form of a "OFFSET(BASE_REG)" textual operand.
type memOperand struct {
	Offset  int32
	BaseReg int
}

func parseMemOperand(pos parser.Position, tok string) (memOperand, error) {
	m := memOperandRE.FindStringSubmatch(strings.TrimSpace(tok))
	if m == nil {
		return memOperand{}, parser.NewError(pos, parser.ErrorSyntax, "malformed memory operand %q", tok)
	}
	off, err := parser.ParseNumber(m[1])
	if err != nil {
		return memOperand{}, parser.NewError(pos, parser.ErrorSyntax, "invalid offset in %q", tok)
	}
	base, ok := RegisterIndex(m[2])
	if !ok {
		return memOperand{}, parser.NewError(pos, parser.ErrorSyntax, "unknown base register %q", m[2])
	}
	return memOperand{Offset: int32(off), BaseReg: base}, nil
}

func parseRegister(pos parser.Position, tok string) (int, error) {
	idx, ok := RegisterIndex(strings.TrimSpace(tok))
	if !ok {
		return 0, parser.NewError(pos, parser.ErrorUndefinedLabel, "unknown register %q", tok)
	}
	return idx, nil
}

func parseImmediate(pos parser.Position, tok string) (int32, error) {
	v, err := parser.ParseNumber(strings.TrimSpace(tok))
	if err != nil {
		return 0, parser.NewError(pos, parser.ErrorSyntax, "invalid immediate %q", tok)
	}
	return int32(v), nil
}

// labelRef classifies a branch/jump/la target token into a global
// reference or a positional ("Nf"/"Nb") reference.
var positionalRE = regexp.MustCompile(`^(\d+)([fb])$`)
var bareDigitsRE = regexp.MustCompile(`^\d+$`)

func resolveCodeLabel(labels *parser.LabelTable, pos parser.Position, from int, tok string) (int, error) {
	tok = strings.TrimSpace(tok)
	if bareDigitsRE.MatchString(tok) {
		return 0, parser.NewError(pos, parser.ErrorSyntax, "numeric label %q must specify direction with f or b", tok)
	}
	if m := positionalRE.FindStringSubmatch(tok); m != nil {
		return labels.ResolveNumeric(m[1], m[2] == "f", from)
	}
	return labels.ResolveCode(tok)
}

func resolveDataLabel(labels *parser.LabelTable, tok string) (int, error) {
	return labels.ResolveData(strings.TrimSpace(tok))
}
