// Command vip8 executes CHIP-8 programs on a windowed virtual machine.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"runtime/pprof"

	"github.com/kd/vip8/chip8"
)

func main() {
	log.SetPrefix("vip8: ")
	log.SetFlags(0)

	var (
		cliFlag    = flag.Bool("cli", false, "disable GUI features")
		devFlag    = flag.Bool("dev", false, "reload the program when its file changes")
		debugFlag  = flag.Bool("debug", false, "enable debugger (implies -dev)")
		disasmFlag = flag.Bool("disasm", false, "print a disassembly of the program and exit")

		scaleFlag = flag.Int("scale", 16, "display scale factor")
		memFlag   = flag.Int("mem", 4096, "memory size in bytes")
		stackFlag = flag.Int("stack", 16, "call stack depth")
		ipsFlag   = flag.Int("ips", 720, "instruction steps per second")
		colorFlag = flag.String("color", defaultColor, "foreground color as `r,g,b,a`")
		keysFlag  = flag.String("keys", defaultKeys, "16 keys bound to pads 0-f, in pad order")

		cpuProfileFlag = flag.String("cpu_profile", "", "write CPU profile to `file`")
	)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [-cli] <program.ch8>\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "       %s [-cli] <-dev | -debug> <program.ch8>\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(2)
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
	}

	fg, err := parseColor(*colorFlag)
	if err != nil {
		log.Fatal(err)
	}
	keymap, err := parseKeymap(*keysFlag)
	if err != nil {
		log.Fatal(err)
	}

	m := chip8.New(chip8.Config{
		Mem:    *memFlag,
		Stack:  *stackFlag,
		Scale:  *scaleFlag,
		Color:  fg,
		Keymap: keymap,
	})

	if *disasmFlag {
		rom, err := os.ReadFile(flag.Arg(0))
		if err != nil {
			log.Fatal(err)
		}
		if err := m.Load(rom); err != nil {
			log.Fatal(err)
		}
		for _, d := range m.Disassemble()[:(len(rom)+1)/2] {
			fmt.Println(d)
		}
		return
	}

	if *devFlag || *debugFlag {
		r := NewRunner(!*cliFlag, true, *ipsFlag, nil)
		if err := devMode(r, m, *debugFlag, flag.Arg(0)); err != nil {
			log.Fatal(err)
		}
		return
	}

	rom, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		log.Fatal(err)
	}

	var cpuProfile io.Closer
	if prof := *cpuProfileFlag; prof != "" {
		f, err := os.Create(prof)
		if err != nil {
			log.Fatalf("creating CPU profile file: %v", err)
		}
		pprof.StartCPUProfile(f)
		cpuProfile = f
	}

	code := NewRunner(!*cliFlag, false, *ipsFlag, nil).Run(m, rom)

	if f := cpuProfile; f != nil {
		pprof.StopCPUProfile()
		f.Close()
	}
	os.Exit(code)
}
