// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"iter"
	"log"
	"slices"
	"strconv"

	"github.com/ezrec/bunny/cpu"
	"github.com/ezrec/bunny/internal"
)

// Emulator state. CPU + program listing + run controls.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Reference to the currently running program listing.

	Seed      map[cpu.Register]int32 // Register values applied at reset.
	TickLimit int                    // If non-zero, the maximum ticks per run.
	Watch     *Watch                 // If set, stops the run once the condition holds.
	Trace     *Trace                 // If set, records each executed instruction.
}

// NewEmulator creates a new emulator.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Cpu:     cpu.NewCpu(nil),
		Program: &cpu.Program{},
		Seed:    map[cpu.Register]int32{},
	}

	return
}

// State returns an iterator over the register values and run counters.
func (emu *Emulator) State() iter.Seq2[string, string] {
	registers := func(yield func(string, string) bool) {
		for n, value := range emu.Cpu.Register {
			if !yield(cpu.Register(n).String(), strconv.FormatInt(int64(value), 10)) {
				return
			}
		}
	}

	counters := func(yield func(string, string) bool) {
		for _, counter := range [][2]string{
			{"ip", strconv.Itoa(emu.Cpu.Ip)},
			{"ticks", strconv.Itoa(emu.Cpu.Ticks)},
			{"toggles", strconv.Itoa(emu.Cpu.Toggles)},
		} {
			if !yield(counter[0], counter[1]) {
				return
			}
		}
	}

	return internal.IterSeq2Concat(registers, counters)
}

// Listing returns an iterator over the live, possibly toggled, instructions.
func (emu *Emulator) Listing() iter.Seq2[int, cpu.Code] {
	return slices.All(emu.Cpu.Code)
}

// Reset the emulator state.
// - Loads a fresh instruction arena from the program listing.
// - Zeros the registers and counters.
// - Applies the register seeds.
func (emu *Emulator) Reset() (err error) {
	for reg := range emu.Seed {
		if reg < cpu.REG_A || reg >= cpu.REGISTER_COUNT {
			err = ErrRegisterInvalid
			return
		}
	}

	emu.Cpu = cpu.NewCpu(emu.Program.Binary())
	emu.Cpu.Verbose = emu.Verbose

	for reg, value := range emu.Seed {
		emu.Cpu.Set(reg, value)
	}

	if emu.Verbose {
		log.Printf("emulator: reset, %d instructions", len(emu.Cpu.Code))
		for name, value := range emu.State() {
			log.Printf("emulator: % 7s: %v", name, value)
		}
	}

	return
}

// LineNo returns the current line number for the executing opcode.
func (emu *Emulator) LineNo() int {
	op := emu.Program.Debug(emu.Cpu.Ip)
	if op == nil {
		return 0
	}

	return op.LineNo
}

// Tick performs a single tick of the emulator.
// Returns done once the CPU has halted.
func (emu *Emulator) Tick() (done bool, err error) {
	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose

	lineno := emu.LineNo()
	defer func() {
		if err != nil {
			err = &ErrRuntime{LineNo: lineno, Err: err}
		}
	}()

	if emu.Cpu.Halted() {
		done = true
		return
	}

	if emu.TickLimit > 0 && emu.Cpu.Ticks >= emu.TickLimit {
		err = ErrTickLimit
		return
	}

	ip := emu.Cpu.Ip
	code := emu.Cpu.Code[ip]

	emu.Cpu.Step()

	if emu.Trace != nil {
		err = emu.Trace.Record(TraceRecord{
			Tick:     emu.Cpu.Ticks,
			Ip:       ip,
			LineNo:   lineno,
			Code:     code.String(),
			Register: emu.Cpu.Register,
		})
		if err != nil {
			return
		}
	}

	if emu.Watch != nil {
		var hit bool
		hit, err = emu.Watch.Check(emu.Cpu)
		if err != nil {
			return
		}
		if hit {
			err = ErrWatch
			return
		}
	}

	return
}

// Run ticks the emulator until the CPU halts, or an error occurs.
func (emu *Emulator) Run() (err error) {
	var done bool
	for !done {
		done, err = emu.Tick()
		if err != nil {
			return
		}
	}

	if emu.Verbose {
		log.Printf("emulator: halted after %d ticks", emu.Cpu.Ticks)
	}

	return
}
