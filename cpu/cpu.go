package cpu

import (
	"fmt"
	"log"
)

// Cpu is the simulation context for the bunny register machine.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Ip       int                   // Current instruction pointer.
	Register [REGISTER_COUNT]int32 // Register bank.
	Code     []Code                // Instruction arena, owned by the Cpu.

	Ticks   int // Executed instruction counter.
	Toggles int // Applied (in range) toggle counter.
}

// NewCpu creates a new CPU, taking ownership of the instruction arena.
func NewCpu(codes []Code) (cpu *Cpu) {
	cpu = &Cpu{
		Code: codes,
	}

	return
}

// Get returns the value of a register.
func (cpu *Cpu) Get(reg Register) int32 {
	return cpu.Register[reg]
}

// Set sets the value of a register.
func (cpu *Cpu) Set(reg Register, value int32) {
	cpu.Register[reg] = value
}

// Halted is true once the IP has left the instruction arena.
func (cpu *Cpu) Halted() bool {
	return cpu.Ip < 0 || cpu.Ip >= len(cpu.Code)
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	text = fmt.Sprintf("% 5s: %v\n", "ip", cpu.Ip)
	for n, val := range cpu.Register {
		text += fmt.Sprintf("% 5s: %v\n", Register(n), val)
	}

	return
}

// Step executes the instruction at the IP.
// Returns true while the machine is still running.
func (cpu *Cpu) Step() (running bool) {
	if cpu.Halted() {
		return
	}

	cpu.Execute(cpu.Code[cpu.Ip])

	running = !cpu.Halted()

	return
}

// Run steps the CPU until it halts.
func (cpu *Cpu) Run() {
	for cpu.Step() {
	}
}

// Tick executes a single CPU instruction cycle.
func (cpu *Cpu) Tick() (err error) {
	if cpu.Halted() {
		err = ErrIpEmpty
		return
	}

	cpu.Step()

	return
}

// Execute executes a single decoded instruction at the current IP.
func (cpu *Cpu) Execute(code Code) {
	if cpu.Verbose {
		log.Printf("%03d: %v", cpu.Ip, code)
	}

	next_ip := cpu.Ip + 1

	switch code.Kind {
	case KIND_INC:
		cpu.Register[code.Arg[0].Register]++
	case KIND_DEC:
		cpu.Register[code.Arg[0].Register]--
	case KIND_CPY:
		cpu.Register[code.Arg[1].Register] = cpu.getValue(code.Arg[0])
	case KIND_JNZ:
		if cpu.getValue(code.Arg[0]) != 0 {
			next_ip = cpu.Ip + int(cpu.getValue(code.Arg[1]))
		}
	case KIND_TGL:
		cpu.Toggle(cpu.getValue(code.Arg[0]))
	case KIND_INVALID:
		// no-op
	}

	cpu.Ip = next_ip
	cpu.Ticks += 1
}

// Toggle rewrites the instruction at offset from the IP.
// Targets outside of the arena are ignored.
func (cpu *Cpu) Toggle(offset int32) {
	target := cpu.Ip + int(offset)
	if target < 0 || target >= len(cpu.Code) {
		if cpu.Verbose {
			log.Printf("%03d: tgl %v outside of code", cpu.Ip, target)
		}
		return
	}

	prior := cpu.Code[target]
	cpu.Code[target] = prior.Toggle()
	cpu.Toggles += 1

	if cpu.Verbose {
		log.Printf("%03d: tgl %03d: %v => %v", cpu.Ip, target, prior, cpu.Code[target])
	}
}

// getValue gets the value of an operand, based on CPU state.
func (cpu *Cpu) getValue(op Operand) (value int32) {
	if op.IsRegister {
		value = cpu.Register[op.Register]
	} else {
		value = op.Value
	}

	return
}
