// Package cpu implements the register machine and assembler for the bunny system.
//
// The machine has four 32-bit signed registers (a-d), an instruction pointer
// (IP), and an owned, fixed-length arena of instructions. Jumps are relative
// to the jumping instruction, and the tgl instruction rewrites the kind of
// another instruction in the arena, including ones not yet executed.
//
// The assembler reads the line-oriented source text, one instruction per
// line, into a Program listing.
package cpu
