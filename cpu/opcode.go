package cpu

import (
	"fmt"
	"strconv"
)

// Register is a machine register index.
type Register int

//go:generate go tool stringer -linecomment -type=Register
const (
	REG_A = Register(0) // a
	REG_B = Register(1) // b
	REG_C = Register(2) // c
	REG_D = Register(3) // d
)

// REGISTER_COUNT is the number of machine registers.
const REGISTER_COUNT = 4

// Kind is the instruction kind.
type Kind int

//go:generate go tool stringer -linecomment -type=Kind
const (
	KIND_INVALID = Kind(0) // invalid
	KIND_INC     = Kind(1) // inc
	KIND_DEC     = Kind(2) // dec
	KIND_CPY     = Kind(3) // cpy
	KIND_JNZ     = Kind(4) // jnz
	KIND_TGL     = Kind(5) // tgl
)

// Operand is either an immediate value, or a register reference.
type Operand struct {
	IsRegister bool     // If set, Register is the value source.
	Register   Register // Register source.
	Value      int32    // Immediate value.
}

// Imm creates an immediate operand.
func Imm(value int32) Operand {
	return Operand{Value: value}
}

// Reg creates a register operand.
func Reg(reg Register) Operand {
	return Operand{IsRegister: true, Register: reg}
}

// String returns the assembly language representation of the operand.
func (op Operand) String() string {
	if op.IsRegister {
		return op.Register.String()
	}

	return strconv.FormatInt(int64(op.Value), 10)
}

// Code is a single decoded instruction.
//
// The zero Code is the invalid instruction.
type Code struct {
	Kind Kind
	Arg  [2]Operand
}

// MakeCodeInc creates a register increment instruction.
func MakeCodeInc(reg Register) Code {
	return Code{Kind: KIND_INC, Arg: [2]Operand{Reg(reg)}}
}

// MakeCodeDec creates a register decrement instruction.
func MakeCodeDec(reg Register) Code {
	return Code{Kind: KIND_DEC, Arg: [2]Operand{Reg(reg)}}
}

// MakeCodeCpy creates a copy of src into the dst register.
func MakeCodeCpy(src Operand, dst Register) Code {
	return Code{Kind: KIND_CPY, Arg: [2]Operand{src, Reg(dst)}}
}

// MakeCodeJnz creates a relative jump by offset, taken when cond is not zero.
func MakeCodeJnz(cond, offset Operand) Code {
	return Code{Kind: KIND_JNZ, Arg: [2]Operand{cond, offset}}
}

// MakeCodeTgl creates a toggle of the instruction at the relative target.
func MakeCodeTgl(target Operand) Code {
	return Code{Kind: KIND_TGL, Arg: [2]Operand{target}}
}

// Arity returns the number of operands used by the instruction kind.
func (kind Kind) Arity() int {
	switch kind {
	case KIND_INC, KIND_DEC, KIND_TGL:
		return 1
	case KIND_CPY, KIND_JNZ:
		return 2
	}

	return 0
}

// Toggle returns the instruction that replaces code when it is the
// target of a tgl.
//
// Only the kind and operand shapes of code are considered. Anything
// without a rewrite becomes the invalid instruction.
func (code Code) Toggle() (toggled Code) {
	src, dst := code.Arg[0], code.Arg[1]

	switch code.Kind {
	case KIND_INC:
		toggled = MakeCodeDec(src.Register)
	case KIND_DEC:
		toggled = MakeCodeInc(src.Register)
	case KIND_TGL:
		if src.IsRegister {
			toggled = MakeCodeInc(src.Register)
		}
	case KIND_JNZ:
		if dst.IsRegister {
			toggled = MakeCodeCpy(src, dst.Register)
		}
	case KIND_CPY:
		toggled = MakeCodeJnz(src, Reg(dst.Register))
	case KIND_INVALID:
		// stays invalid
	}

	return
}

// String returns the assembly language representation of this instruction.
func (code Code) String() (out string) {
	switch code.Kind.Arity() {
	case 1:
		out = fmt.Sprintf("%v %v", code.Kind, code.Arg[0])
	case 2:
		out = fmt.Sprintf("%v %v %v", code.Kind, code.Arg[0], code.Arg[1])
	default:
		out = code.Kind.String()
	}

	return
}
