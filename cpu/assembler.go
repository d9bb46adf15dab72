// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"io"
	"log"
	"slices"
	"strconv"
	"strings"
)

// Assembler is a single pass, line oriented assembler for the bunny machine.
type Assembler struct {
	Verbose bool     // If set, verbosely logs the assembler actions.
	Opcode  []Opcode // List of generated opcodes.
}

// regMap is a map of register names to registers.
var regMap = map[string]Register{
	"a": REG_A,
	"b": REG_B,
	"c": REG_C,
	"d": REG_D,
}

// kindMap is a map of the parseable instruction mnemonics.
var kindMap = map[string]Kind{
	"inc": KIND_INC,
	"dec": KIND_DEC,
	"cpy": KIND_CPY,
	"jnz": KIND_JNZ,
	"tgl": KIND_TGL,
}

// valueOf returns the operand for a simple word.
func valueOf(word string) (op Operand, err error) {
	reg, ok := regMap[word]
	if ok {
		op = Reg(reg)
		return
	}

	v64, err := strconv.ParseInt(word, 10, 32)
	if err != nil {
		err = ErrParseValue(word)
		return
	}

	op = Imm(int32(v64))

	return
}

// registerOf returns the register named by a word.
func registerOf(word string) (reg Register, err error) {
	reg, ok := regMap[word]
	if !ok {
		err = ErrParseRegister(word)
	}

	return
}

// ParseLine parses a single line of source as an instruction.
func ParseLine(line string) (code Code, err error) {
	words := strings.Fields(line)
	if len(words) == 0 {
		err = ErrOpcodeMissing
		return
	}

	kind, ok := kindMap[words[0]]
	if !ok {
		err = ErrOpcodeInvalid
		return
	}

	args := words[1:]
	switch {
	case len(args) < kind.Arity():
		err = ErrOpcodeValueMissing
		return
	case len(args) > kind.Arity():
		err = ErrOpcodeExtraArgs
		return
	}

	switch kind {
	case KIND_INC, KIND_DEC:
		var reg Register
		reg, err = registerOf(args[0])
		if err != nil {
			return
		}
		code = Code{Kind: kind, Arg: [2]Operand{Reg(reg)}}
	case KIND_CPY:
		var src Operand
		var dst Register
		src, err = valueOf(args[0])
		if err != nil {
			return
		}
		dst, err = registerOf(args[1])
		if err != nil {
			return
		}
		code = MakeCodeCpy(src, dst)
	case KIND_JNZ:
		var cond, offset Operand
		cond, err = valueOf(args[0])
		if err != nil {
			return
		}
		offset, err = valueOf(args[1])
		if err != nil {
			return
		}
		code = MakeCodeJnz(cond, offset)
	case KIND_TGL:
		var target Operand
		target, err = valueOf(args[0])
		if err != nil {
			return
		}
		code = MakeCodeTgl(target)
	}

	return
}

// Parse parses an input stream into a Program containing opcodes.
//
// A line that fails to parse rejects the whole input.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	asm.Opcode = asm.Opcode[:0]

	var lineno int
	for scanner.Scan() {
		line := scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, line)
		}

		var code Code
		code, err = ParseLine(line)
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
			return
		}

		asm.Opcode = append(asm.Opcode, Opcode{
			LineNo: lineno,
			Words:  strings.Fields(line),
			Code:   code,
		})
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	prog = &Program{
		Opcodes: slices.Clone(asm.Opcode),
	}

	return
}
