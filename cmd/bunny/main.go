// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/tebeka/atexit"
	"golang.org/x/term"

	"github.com/ezrec/bunny/config"
	"github.com/ezrec/bunny/cpu"
	"github.com/ezrec/bunny/emulator"
)

// seedFlag collects repeated -r REG=VALUE flags.
type seedFlag map[string]int32

func (seeds seedFlag) String() string {
	var pairs []string
	for reg, value := range seeds {
		pairs = append(pairs, fmt.Sprintf("%v=%v", reg, value))
	}
	return strings.Join(pairs, ",")
}

func (seeds seedFlag) Set(text string) (err error) {
	reg, value, ok := strings.Cut(text, "=")
	if !ok {
		err = fmt.Errorf("'%v' is not REG=VALUE", text)
		return
	}

	v64, err := strconv.ParseInt(value, 10, 32)
	if err != nil {
		return
	}

	seeds[reg] = int32(v64)

	return
}

func main() {
	var conf_file string
	var compile string
	var ticks int
	var watch string
	var trace string
	var listing bool
	var verbose bool
	var result string
	seeds := seedFlag{}

	flag.StringVar(&conf_file, "f", "", "bunny.toml file to use")
	flag.StringVar(&compile, "c", "-", "Program file to run")
	flag.Var(seeds, "r", "Initial register value, REG=VALUE (repeatable)")
	flag.IntVar(&ticks, "n", 0, "Maximum ticks, 0 for no limit")
	flag.StringVar(&watch, "w", "", "Stop when the watch expression is true")
	flag.StringVar(&trace, "t", "", "CBOR trace output file")
	flag.BoolVar(&listing, "l", false, "Print the final code after the run")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")
	flag.StringVar(&result, "o", "a", "Register to print as the result")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	conf := config.Default()
	if len(conf_file) != 0 {
		var err error
		conf, err = config.LoadFile(conf_file)
		if err != nil {
			log.Fatalf("%v: %v", os.Args[0], err)
		}
	}

	// Command line flags override the configuration file.
	flag.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "c":
			conf.Program = compile
		case "n":
			conf.TickLimit = ticks
		case "w":
			conf.Watch = watch
		case "t":
			conf.Trace = trace
		case "l":
			conf.Listing = listing
		case "v":
			conf.Verbose = verbose
		case "o":
			conf.Result = result
		case "r":
			for reg, value := range seeds {
				conf.Registers[reg] = value
			}
		}
	})

	err := conf.Validate()
	if err != nil {
		log.Fatalf("%v: %v", os.Args[0], err)
	}

	err = run(conf)
	if err != nil {
		atexit.Fatalf("%v: %v", os.Args[0], err)
	}

	atexit.Exit(0)
}

// load assembles the configured program.
func load(conf *config.Config) (prog *cpu.Program, err error) {
	var input io.Reader
	if conf.Program == "-" {
		if term.IsTerminal(int(os.Stdin.Fd())) {
			err = errors.New("will not read a program from a terminal, use -c")
			return
		}
		input = os.Stdin
	} else {
		var inf *os.File
		inf, err = os.Open(conf.Program)
		if err != nil {
			return
		}
		defer inf.Close()
		input = inf
	}

	asm := &cpu.Assembler{Verbose: conf.Verbose}
	prog, err = asm.Parse(input)
	if err != nil {
		err = fmt.Errorf("%v: %w", conf.Program, err)
		return
	}

	return
}

// run executes the configured program, and prints the result.
func run(conf *config.Config) (err error) {
	prog, err := load(conf)
	if err != nil {
		return
	}

	emu := emulator.NewEmulator()
	emu.Program = prog
	emu.Verbose = conf.Verbose
	emu.TickLimit = conf.TickLimit

	emu.Seed, err = conf.Seeds()
	if err != nil {
		return
	}

	reg, err := conf.ResultRegister()
	if err != nil {
		return
	}

	if len(conf.Watch) != 0 {
		emu.Watch, err = emulator.NewWatch(conf.Watch)
		if err != nil {
			return
		}
	}

	if len(conf.Trace) != 0 {
		var ouf *os.File
		ouf, err = os.Create(conf.Trace)
		if err != nil {
			return
		}
		buff := bufio.NewWriter(ouf)
		atexit.Register(func() {
			err := buff.Flush()
			if err != nil {
				log.Printf("%v: %v", conf.Trace, err)
			}
			ouf.Close()
		})
		emu.Trace = emulator.NewTrace(buff)
	}

	err = emu.Reset()
	if err != nil {
		return
	}

	err = emu.Run()
	if errors.Is(err, emulator.ErrWatch) {
		log.Printf("%v: %v", conf.Program, err)
		err = nil
	}
	if err != nil {
		err = fmt.Errorf("%v: %w", conf.Program, err)
		return
	}

	if conf.Listing {
		for ip, code := range emu.Listing() {
			fmt.Printf("%03d: %v\n", ip, code)
		}
	}

	fmt.Println(emu.Get(reg))

	return
}
