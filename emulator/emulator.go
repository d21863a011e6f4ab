// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"context"
	"fmt"
	"iter"
	"log"
	"maps"

	"github.com/davecgh/go-spew/spew"

	"github.com/ezrec/m88k/cpu"
	"github.com/ezrec/m88k/internal"
	"github.com/ezrec/m88k/memory"
)

const (
	TICK_LIMIT = 1_000_000 // Default limit of instructions per run.
)

// Emulator state. CPU + Memory + loaded program.
type Emulator struct {
	Verbose   bool         // If set, enables verbose logging.
	*cpu.Cpu               // Reference to the CPU simulation.
	Program   *cpu.Program // Reference to the currently running program listing.
	TickLimit int          // Maximum ticks for Run; zero is unlimited.

	memorySize uint32
	privilege  cpu.Privilege
}

// Option configures a new Emulator.
type Option func(emu *Emulator)

// WithMemorySize sets the physical memory size in bytes.
func WithMemorySize(size uint32) Option {
	return func(emu *Emulator) {
		emu.memorySize = size
	}
}

// WithSupervisor selects supervisor mode at reset.
func WithSupervisor(supervisor bool) Option {
	return func(emu *Emulator) {
		if supervisor {
			emu.privilege = cpu.PRIVILEGE_SUPERVISOR
		} else {
			emu.privilege = cpu.PRIVILEGE_USER
		}
	}
}

// WithVerbose enables verbose logging.
func WithVerbose(verbose bool) Option {
	return func(emu *Emulator) {
		emu.Verbose = verbose
	}
}

// WithTickLimit sets the maximum number of ticks for Run.
func WithTickLimit(limit int) Option {
	return func(emu *Emulator) {
		emu.TickLimit = limit
	}
}

// NewEmulator creates a new emulator, in its reset state.
func NewEmulator(opts ...Option) (emu *Emulator) {
	emu = &Emulator{
		Program:    &cpu.Program{},
		TickLimit:  TICK_LIMIT,
		memorySize: memory.MEMORY_SIZE,
	}

	for _, opt := range opts {
		opt(emu)
	}

	emu.Cpu = cpu.NewCpu(memory.NewMemory(emu.memorySize))
	emu.Reset()

	return
}

// Defines returns an iterator over all of the defines
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	defines := map[string]string{
		"MEMORY_TOP": fmt.Sprintf("0x%x", emu.Cpu.Memory.Size()),
	}

	return internal.IterSeq2Concat(maps.All(defines),
		emu.Cpu.Defines(),
		emu.Cpu.Memory.Defines(),
	)
}

// Reset the processor and memory; the program is kept.
func (emu *Emulator) Reset() {
	emu.Cpu.Verbose = emu.Verbose

	emu.Cpu.Memory.Reset()
	emu.Cpu.Reset()
	emu.Cpu.SetPrivilege(emu.privilege)

	if emu.Verbose {
		log.Printf("emulator: reset, %v mode, %d bytes", emu.privilege, emu.Cpu.Memory.Size())
	}
}

// Ticks returns the total ticks since a reset.
func (emu *Emulator) Ticks() int {
	return emu.Cpu.Ticks
}

// Code returns the current instruction code.
func (emu *Emulator) Code() cpu.Code {
	code, _ := emu.Program.Fetch(emu.Cpu.Pc)
	return code
}

// LineNo returns the current line number for the executing opcode.
func (emu *Emulator) LineNo() int {
	dbg := emu.Program.Debug(emu.Cpu.Pc)
	if dbg.Statement == nil {
		return 0
	}

	return dbg.LineNo
}

// refused is an instruction the dispatcher will not execute at the
// current privilege level.
type refused struct {
	cpu.Code
}

func (ref refused) Execute(cp *cpu.Cpu, mem *memory.Memory) {
	cp.SetFlags(cpu.CR0_PRIVILEGE_VIOLATION)
}

func (ref refused) String() string {
	return ref.Code.String() + " ; " + f("privilege violation")
}

// Tick performs a single instruction dispatch.
//
// A program counter just past the end of the program is a normal halt, and
// returns done. The program counter advances by one instruction unless the
// instruction changed it.
func (emu *Emulator) Tick() (done bool, err error) {
	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose

	pc := emu.Cpu.Pc
	lineno := emu.LineNo()
	defer func() {
		if err != nil {
			err = &ErrRuntime{Pc: pc, LineNo: lineno, Err: err}
		}
	}()

	code, ok := emu.Program.Fetch(pc)
	if !ok {
		if pc == emu.Program.Size() {
			if emu.Verbose {
				log.Printf("emulator: halt at %08x", pc)
			}
			done = true
			return
		}
		err = ErrPcInvalid
		return
	}

	var inst cpu.Instruction = code
	if code.Opcode.Privileged() && !emu.Cpu.Supervisor() {
		inst = refused{Code: code}
	}

	code.Load(emu.Cpu)
	emu.Cpu.Execute(inst)

	if emu.Cpu.Pc == pc {
		emu.Cpu.Pc += cpu.INSTRUCTION_SIZE
	}

	return
}

// Run ticks the emulator until the program halts, an error occurs, the
// context is cancelled, or the tick limit is reached.
func (emu *Emulator) Run(ctx context.Context) (err error) {
	for {
		select {
		case <-ctx.Done():
			err = ctx.Err()
			return
		default:
		}

		if emu.TickLimit > 0 && emu.Cpu.Ticks >= emu.TickLimit {
			err = &ErrRuntime{Pc: emu.Cpu.Pc, LineNo: emu.LineNo(), Err: ErrTickLimit}
			return
		}

		var done bool
		done, err = emu.Tick()
		if err != nil || done {
			return
		}
	}
}

// State is a snapshot of the architectural state of the processor.
type State struct {
	Pc         uint32
	Nip        uint32
	Fip        uint32
	Sxip       uint32
	Snip       uint32
	Sfip       uint32
	Cr0        cpu.Flags
	Privilege  cpu.Privilege
	MmuControl cpu.MmuControl
	TrapVector uint8
	Register   [cpu.REGISTER_COUNT]uint32
	Ticks      int
}

// State returns a snapshot of the processor state.
func (emu *Emulator) State() State {
	cp := emu.Cpu
	return State{
		Pc:         cp.Pc,
		Nip:        cp.Nip,
		Fip:        cp.Fip,
		Sxip:       cp.Sxip,
		Snip:       cp.Snip,
		Sfip:       cp.Sfip,
		Cr0:        cp.Cr0,
		Privilege:  cp.Privilege(),
		MmuControl: cp.MmuControl,
		TrapVector: cp.TrapVector,
		Register:   cp.Register,
		Ticks:      cp.Ticks,
	}
}

var _dumper = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
}

// Dump returns a detailed listing of the processor state.
func (emu *Emulator) Dump() string {
	return _dumper.Sdump(emu.State())
}
