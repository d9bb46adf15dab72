package emulator

import (
	"errors"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/bunny/cpu"
)

// Watch is a stop condition, evaluated after every tick.
//
// The condition is a Starlark expression over the registers (a, b, c, d),
// the instruction pointer (ip), and the tick counter (ticks).
type Watch struct {
	Expr string // Source of the condition.

	thread *starlark.Thread
	check  *starlark.Function
}

// NewWatch compiles a watch condition.
func NewWatch(expr string) (w *Watch, err error) {
	if len(expr) == 0 {
		err = ErrWatchExpression(expr)
		return
	}

	thread := &starlark.Thread{Name: "watch"}
	opts := syntax.FileOptions{}
	prog := "check = lambda a, b, c, d, ip, ticks: (" + expr + ")\n"
	dict, err := starlark.ExecFileOptions(&opts, thread, "watch", prog, nil)
	if err != nil {
		err = errors.Join(ErrWatchExpression(expr), err)
		return
	}

	check, ok := dict["check"].(*starlark.Function)
	if !ok {
		err = ErrWatchExpression(expr)
		return
	}

	w = &Watch{
		Expr:   expr,
		thread: thread,
		check:  check,
	}

	return
}

// Check evaluates the condition against the CPU state.
func (w *Watch) Check(c *cpu.Cpu) (hit bool, err error) {
	args := starlark.Tuple{
		starlark.MakeInt(int(c.Get(cpu.REG_A))),
		starlark.MakeInt(int(c.Get(cpu.REG_B))),
		starlark.MakeInt(int(c.Get(cpu.REG_C))),
		starlark.MakeInt(int(c.Get(cpu.REG_D))),
		starlark.MakeInt(c.Ip),
		starlark.MakeInt(c.Ticks),
	}

	value, err := starlark.Call(w.thread, w.check, args, nil)
	if err != nil {
		return
	}

	hit = bool(value.Truth())

	return
}
