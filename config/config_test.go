package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/bunny/cpu"
)

func TestDefault(t *testing.T) {
	assert := assert.New(t)

	conf := Default()
	assert.Equal("-", conf.Program)
	assert.Equal("a", conf.Result)
	assert.Equal(0, conf.TickLimit)
	assert.NoError(conf.Validate())

	seeds, err := conf.Seeds()
	assert.NoError(err)
	assert.Equal(0, len(seeds))
}

func TestLoad(t *testing.T) {
	assert := assert.New(t)

	text := []string{
		`program = "input.txt"`,
		`tick_limit = 1000000`,
		`watch = "a > 10"`,
		`trace = "run.cbor"`,
		`verbose = true`,
		`listing = true`,
		`result = "c"`,
		``,
		`[registers]`,
		`a = 7`,
		`d = -2`,
	}

	conf, err := Load(strings.NewReader(strings.Join(text, "\n")))
	assert.NoError(err)
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal("input.txt", conf.Program)
	assert.Equal(1000000, conf.TickLimit)
	assert.Equal("a > 10", conf.Watch)
	assert.Equal("run.cbor", conf.Trace)
	assert.True(conf.Verbose)
	assert.True(conf.Listing)

	reg, err := conf.ResultRegister()
	assert.NoError(err)
	assert.Equal(cpu.REG_C, reg)

	seeds, err := conf.Seeds()
	assert.NoError(err)
	assert.Equal(map[cpu.Register]int32{cpu.REG_A: 7, cpu.REG_D: -2}, seeds)
}

func TestLoadErrors(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		text string
		err  error
	}){
		{"tick_limit = -1", ErrConfigLimit},
		{`result = "e"`, ErrConfigRegister("e")},
		{"[registers]\nA = 1", ErrConfigRegister("A")},
		{"speed = 3", ErrConfigKey("speed")},
	}

	for _, entry := range table {
		conf, err := Load(strings.NewReader(entry.text))
		assert.Nil(conf, entry.text)
		assert.ErrorIs(err, entry.err, entry.text)
	}

	// Not TOML at all.
	conf, err := Load(strings.NewReader("program = "))
	assert.Nil(conf)
	assert.Error(err)
}

func TestLoadFile(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "bunny.toml")
	err := os.WriteFile(path, []byte("program = \"day23.txt\"\n[registers]\na = 12\n"), 0o644)
	assert.NoError(err)

	conf, err := LoadFile(path)
	assert.NoError(err)
	assert.Equal("day23.txt", conf.Program)
	assert.Equal(int32(12), conf.Registers["a"])

	_, err = LoadFile(filepath.Join(dir, "missing.toml"))
	assert.ErrorIs(err, os.ErrNotExist)

	err = os.WriteFile(path, []byte("result = \"x\"\n"), 0o644)
	assert.NoError(err)
	_, err = LoadFile(path)
	assert.ErrorIs(err, ErrConfigRegister("x"))
	assert.Contains(err.Error(), path)
}
