package cpu

import (
	"iter"
	"strings"
)

// Opcode represents a line of assembled source with its generated instruction.
type Opcode struct {
	LineNo int
	Words  []string
	Code   Code
}

// Program is an assembled listing. The IP of an opcode is its index.
type Program struct {
	Opcodes []Opcode
}

// Debug returns the opcode at ip, or nil if ip is outside the program.
func (prog *Program) Debug(ip int) (op *Opcode) {
	if ip >= 0 && ip < len(prog.Opcodes) {
		op = &prog.Opcodes[ip]
	}

	return
}

// Binary returns a new instruction arena for the program.
func (prog *Program) Binary() (codes []Code) {
	codes = make([]Code, 0, len(prog.Opcodes))
	for _, code := range prog.Codes() {
		codes = append(codes, code)
	}

	return
}

// Codes iterates over the program instructions by IP.
func (prog *Program) Codes() iter.Seq2[int, Code] {
	return func(yield func(ip int, code Code) bool) {
		for ip, op := range prog.Opcodes {
			if !yield(ip, op.Code) {
				return
			}
		}
	}
}

// String returns the program as assembly source text.
func (prog *Program) String() string {
	var text strings.Builder
	for _, code := range prog.Codes() {
		text.WriteString(code.String())
		text.WriteByte('\n')
	}

	return text.String()
}
