// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/ezrec/m88k/cpu"
	"github.com/ezrec/m88k/emulator"
)

func main() {
	var compile string
	var verbose bool
	var supervisor bool
	var ticks int
	var memorySize uint

	flag.StringVar(&compile, "c", "", ".s file to assemble and run")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")
	flag.BoolVar(&supervisor, "s", false, "Start in supervisor mode")
	flag.IntVar(&ticks, "n", emulator.TICK_LIMIT, "Tick limit, 0 for unlimited")
	flag.UintVar(&memorySize, "m", 0, "Memory size in bytes, 0 for the default")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	if len(compile) == 0 {
		log.Fatalf("%v: -c is required", os.Args[0])
	}

	opts := []emulator.Option{
		emulator.WithVerbose(verbose),
		emulator.WithSupervisor(supervisor),
		emulator.WithTickLimit(ticks),
	}
	if memorySize != 0 {
		opts = append(opts, emulator.WithMemorySize(uint32(memorySize)))
	}

	emu := emulator.NewEmulator(opts...)

	inf, err := os.Open(compile)
	if err != nil {
		log.Fatalf("%v: %v", compile, err)
	}
	defer inf.Close()

	asm := &cpu.Assembler{Verbose: verbose}
	for key, value := range emu.Defines() {
		asm.Predefine(key, value)
	}

	prog, err := asm.Parse(inf)
	if err != nil {
		log.Fatalf("%v: %v", compile, err)
	}

	emu.Program = prog
	emu.Reset()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err = emu.Run(ctx)

	fmt.Print(emu.Cpu.String())
	if verbose {
		fmt.Print(emu.Dump())
	}

	if err != nil {
		log.Fatalf("%v: %v", compile, err)
	}
}
