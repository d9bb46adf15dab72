package cpu

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func assemble(t *testing.T, program ...string) []Code {
	asm := &Assembler{}
	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	if err != nil {
		t.Fatal(err)
	}

	return prog.Binary()
}

func TestCpu(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu(nil)
	assert.Equal(0, cpu.Ip)
	assert.Equal([REGISTER_COUNT]int32{}, cpu.Register)
	assert.True(cpu.Halted())
	assert.False(cpu.Step())
	assert.ErrorIs(cpu.Tick(), ErrIpEmpty)
	assert.Equal(0, cpu.Ticks)

	cpu.Set(REG_C, 12)
	assert.Equal(int32(12), cpu.Get(REG_C))
	assert.Equal(int32(0), cpu.Get(REG_A))
}

func TestCpuSample(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu(assemble(t,
		"cpy 41 a",
		"inc a",
		"inc a",
		"dec a",
		"jnz a 2",
		"dec a",
	))
	cpu.Run()

	assert.Equal(int32(42), cpu.Get(REG_A))
	assert.Equal(6, cpu.Ip)
	assert.Equal(5, cpu.Ticks)
}

func TestCpuToggleSample(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu(assemble(t,
		"cpy 2 a",
		"tgl a",
		"tgl a",
		"tgl a",
		"cpy 1 a",
		"dec a",
		"dec a",
	))
	cpu.Run()

	assert.Equal(int32(3), cpu.Get(REG_A))
	assert.Equal(2, cpu.Toggles)

	// The arena reflects the self modification.
	assert.Equal(MakeCodeInc(REG_A), cpu.Code[3])
	assert.Equal(MakeCodeJnz(Imm(1), Reg(REG_A)), cpu.Code[4])
	assert.Equal(MakeCodeDec(REG_A), cpu.Code[5])
}

func TestCpuToggleAhead(t *testing.T) {
	assert := assert.New(t)

	// Rewrite an instruction before the IP reaches it.
	cpu := NewCpu(assemble(t,
		"tgl 2",
		"inc b",
		"inc a",
	))

	assert.True(cpu.Step())
	assert.Equal(MakeCodeDec(REG_A), cpu.Code[2])
	assert.True(cpu.Step())
	assert.False(cpu.Step())

	assert.Equal(int32(-1), cpu.Get(REG_A))
	assert.Equal(int32(1), cpu.Get(REG_B))
}

func TestCpuToggleSelf(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu(assemble(t,
		"cpy 2 c",
		"tgl b",
		"dec c",
		"jnz c -2",
	))
	cpu.Run()

	// tgl b with b == 0 toggles itself into inc b, which the loop then runs.
	assert.Equal(int32(1), cpu.Get(REG_B))
	assert.Equal(MakeCodeInc(REG_B), cpu.Code[1])
	assert.Equal(1, cpu.Toggles)
}

func TestCpuArithmetic(t *testing.T) {
	assert := assert.New(t)

	for _, seed := range []int32{0, 5, -9} {
		for _, ops := range []string{"", "i", "d", "iid", "ddddi", "ididid", "iiiiiii"} {
			var program []string
			expected := seed
			for _, op := range ops {
				if op == 'i' {
					program = append(program, "inc b")
					expected++
				} else {
					program = append(program, "dec b")
					expected--
				}
			}
			cpu := NewCpu(assemble(t, program...))
			cpu.Set(REG_B, seed)
			cpu.Run()
			assert.Equal(expected, cpu.Get(REG_B), ops)
		}
	}
}

func TestCpuWrap(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu(assemble(t, "inc a", "dec b"))
	cpu.Set(REG_A, math.MaxInt32)
	cpu.Set(REG_B, math.MinInt32)
	cpu.Run()

	assert.Equal(int32(math.MinInt32), cpu.Get(REG_A))
	assert.Equal(int32(math.MaxInt32), cpu.Get(REG_B))
}

func TestCpuJump(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name    string
		program []string
		a       int32
		ip      []int
	}){
		{"skip_one", []string{"jnz a 2", "inc b", "inc c"}, 1, []int{2, 3}},
		{"not_taken", []string{"jnz a 2", "inc b", "inc c"}, 0, []int{1, 2, 3}},
		{"register_offset", []string{"cpy 3 d", "jnz 1 d", "inc b", "inc c", "inc d"}, 0, []int{1, 4, 5}},
		{"backward", []string{"dec a", "jnz a -1"}, 2, []int{1, 0, 1, 2}},
		{"out_low", []string{"inc b", "jnz 1 -5", "inc c"}, 0, []int{1, -4}},
		{"out_high", []string{"jnz 1 10", "inc c"}, 0, []int{10}},
	}

	for _, entry := range table {
		cpu := NewCpu(assemble(t, entry.program...))
		cpu.Set(REG_A, entry.a)
		for n, ip := range entry.ip {
			running := cpu.Step()
			assert.Equal(ip, cpu.Ip, entry.name)
			assert.Equal(n < len(entry.ip)-1, running, entry.name)
		}
		assert.True(cpu.Halted(), entry.name)
	}
}

func TestCpuToggleOutOfRange(t *testing.T) {
	assert := assert.New(t)

	program := []string{"tgl 5", "tgl -2", "tgl b", "inc a"}
	cpu := NewCpu(assemble(t, program...))
	cpu.Set(REG_B, 2)
	cpu.Run()

	assert.Equal(assemble(t, program...), cpu.Code)
	assert.Equal(int32(1), cpu.Get(REG_A))
	assert.Equal(0, cpu.Toggles)
}

func TestCpuInvalid(t *testing.T) {
	assert := assert.New(t)

	// jnz 1 1 toggles into invalid.
	cpu := NewCpu(assemble(t,
		"cpy 7 a",
		"cpy -1 b",
		"tgl 1",
		"jnz 1 1",
		"jnz 1 1",
	))
	cpu.Step()
	cpu.Step()
	cpu.Step()
	assert.Equal(Code{}, cpu.Code[3])

	regs := cpu.Register
	for range 5 {
		ip := cpu.Ip
		cpu.Execute(Code{})
		assert.Equal(ip+1, cpu.Ip)
		assert.Equal(regs, cpu.Register)
	}
}

func TestCpuString(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu(nil)
	cpu.Set(REG_A, 42)
	cpu.Set(REG_D, -1)

	text := cpu.String()
	assert.Contains(text, "   ip: 0\n")
	assert.Contains(text, "    a: 42\n")
	assert.Contains(text, "    d: -1\n")
}
