// Package config handles bunny.toml run configuration.
package config

import (
	"fmt"
	"io"
	"maps"
	"os"
	"slices"

	"github.com/BurntSushi/toml"

	"github.com/ezrec/bunny/cpu"
)

// Config is a single run configuration.
type Config struct {
	Program   string           `toml:"program"`    // Source file, "-" for stdin.
	TickLimit int              `toml:"tick_limit"` // If non-zero, the maximum ticks.
	Watch     string           `toml:"watch"`      // Watch condition.
	Trace     string           `toml:"trace"`      // CBOR trace output file.
	Verbose   bool             `toml:"verbose"`    // Verbose logging.
	Listing   bool             `toml:"listing"`    // Print the final code after the run.
	Result    string           `toml:"result"`     // Register reported as the result.
	Registers map[string]int32 `toml:"registers"`  // Initial register values.
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Program:   "-",
		Result:    cpu.REG_A.String(),
		Registers: map[string]int32{},
	}
}

// registerOf returns the register for a name.
func registerOf(name string) (reg cpu.Register, err error) {
	for n := range cpu.REGISTER_COUNT {
		reg = cpu.Register(n)
		if reg.String() == name {
			return
		}
	}

	err = ErrConfigRegister(name)

	return
}

// Load reads a TOML configuration, on top of the defaults.
func Load(r io.Reader) (conf *Config, err error) {
	conf = Default()

	md, err := toml.NewDecoder(r).Decode(conf)
	if err != nil {
		conf = nil
		return
	}

	undecoded := md.Undecoded()
	if len(undecoded) != 0 {
		conf = nil
		err = ErrConfigKey(undecoded[0].String())
		return
	}

	err = conf.Validate()
	if err != nil {
		conf = nil
		return
	}

	return
}

// LoadFile reads a TOML configuration file.
func LoadFile(path string) (conf *Config, err error) {
	inf, err := os.Open(path)
	if err != nil {
		return
	}
	defer inf.Close()

	conf, err = Load(inf)
	if err != nil {
		err = fmt.Errorf("%s: %w", path, err)
		return
	}

	return
}

// Validate checks the configuration values.
func (conf *Config) Validate() (err error) {
	if conf.TickLimit < 0 {
		err = ErrConfigLimit
		return
	}

	_, err = conf.ResultRegister()
	if err != nil {
		return
	}

	_, err = conf.Seeds()

	return
}

// ResultRegister returns the register reported as the result.
func (conf *Config) ResultRegister() (reg cpu.Register, err error) {
	return registerOf(conf.Result)
}

// Seeds returns the initial register values.
func (conf *Config) Seeds() (seeds map[cpu.Register]int32, err error) {
	seeds = make(map[cpu.Register]int32, len(conf.Registers))

	for _, name := range slices.Sorted(maps.Keys(conf.Registers)) {
		var reg cpu.Register
		reg, err = registerOf(name)
		if err != nil {
			seeds = nil
			return
		}
		seeds[reg] = conf.Registers[name]
	}

	return
}
