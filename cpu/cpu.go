// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"errors"
	"fmt"
	"iter"
	"log"
	"maps"
	"strings"

	"github.com/ezrec/m88k/memory"
)

// Flags is the CR0 control and status register bit set.
type Flags uint32

// CR0 bits.
const (
	CR0_EQUAL               = Flags(1 << 0)  // Integer compare equal.
	CR0_LESS                = Flags(1 << 1)  // Integer compare less.
	CR0_GREATER             = Flags(1 << 2)  // Integer compare greater.
	CR0_UNORDERED           = Flags(1 << 3)  // Unordered compare.
	CR0_FP_DIVZERO          = Flags(1 << 4)  // Sticky divide by zero.
	CR0_FP_INEXACT          = Flags(1 << 5)  // Sticky inexact.
	CR0_FP_INVALID          = Flags(1 << 6)  // Sticky invalid operation.
	CR0_FP_OVERFLOW         = Flags(1 << 7)  // Sticky overflow.
	CR0_FP_UNDERFLOW        = Flags(1 << 8)  // Sticky underflow.
	CR0_FP_EQUAL            = Flags(1 << 9)  // Float compare equal.
	CR0_FP_LESS             = Flags(1 << 10) // Float compare less.
	CR0_FP_GREATER          = Flags(1 << 11) // Float compare greater.
	CR0_FP_UNORDERED        = Flags(1 << 12) // Float compare unordered.
	CR0_BOUNDS_CHECK        = Flags(1 << 13) // Bounds check violation.
	CR0_TRAP                = Flags(1 << 14) // Trap raised.
	CR0_PAGE_FAULT          = Flags(1 << 15) // Page fault.
	CR0_WRITE_PROTECT       = Flags(1 << 16) // Write protection violation.
	CR0_PRIVILEGE_VIOLATION = Flags(1 << 17) // Privilege violation.

	CR0_COMPARE_MASK    = CR0_EQUAL | CR0_LESS | CR0_GREATER
	CR0_FP_COMPARE_MASK = CR0_FP_EQUAL | CR0_FP_LESS | CR0_FP_GREATER | CR0_FP_UNORDERED
)

var _flag_names = []string{
	"eq", "lt", "gt", "un",
	"fp_divzero", "fp_inexact", "fp_invalid", "fp_overflow", "fp_underflow",
	"fp_eq", "fp_lt", "fp_gt", "fp_un",
	"bounds", "trap", "page_fault", "write_protect", "privilege",
}

// Has returns true if all of the bits in mask are set.
func (fl Flags) Has(mask Flags) bool {
	return (fl & mask) == mask
}

// Set sets the bits in mask.
func (fl *Flags) Set(mask Flags) {
	*fl |= mask
}

// Clear clears the bits in mask.
func (fl *Flags) Clear(mask Flags) {
	*fl &^= mask
}

// String returns the names of the set bits, separated by '|'.
func (fl Flags) String() string {
	var names []string
	for n, name := range _flag_names {
		if (fl & (1 << n)) != 0 {
			names = append(names, name)
		}
	}

	rest := fl &^ ((1 << len(_flag_names)) - 1)
	if rest != 0 {
		names = append(names, fmt.Sprintf("0x%x", uint32(rest)))
	}

	if len(names) == 0 {
		return "-"
	}

	return strings.Join(names, "|")
}

// Privilege is the processor privilege level.
type Privilege int

//go:generate go tool stringer -linecomment -type=Privilege
const (
	PRIVILEGE_USER       = Privilege(0) // user
	PRIVILEGE_SUPERVISOR = Privilege(1) // supervisor
)

// MmuControl is the MMU control register.
type MmuControl uint32

const (
	MMU_ENABLE        = MmuControl(1 << 0) // Translation enabled.
	MMU_SUPERVISOR    = MmuControl(1 << 1) // Supervisor mode translation.
	MMU_WRITE_PROTECT = MmuControl(1 << 2) // Write protection.
)

const (
	REGISTER_COUNT = 32 // Number of general purpose registers.
	VECTOR_LANES   = 4  // Number of lanes in a vector operation.
)

var _cpu_defines = map[string]string{
	"REGISTER_COUNT":          fmt.Sprintf("%d", REGISTER_COUNT),
	"VECTOR_LANES":            fmt.Sprintf("%d", VECTOR_LANES),
	"MMU_ENABLE":              fmt.Sprintf("0x%x", uint32(MMU_ENABLE)),
	"MMU_SUPERVISOR":          fmt.Sprintf("0x%x", uint32(MMU_SUPERVISOR)),
	"MMU_WRITE_PROTECT":       fmt.Sprintf("0x%x", uint32(MMU_WRITE_PROTECT)),
	"CR0_EQUAL":               fmt.Sprintf("0x%x", uint32(CR0_EQUAL)),
	"CR0_LESS":                fmt.Sprintf("0x%x", uint32(CR0_LESS)),
	"CR0_GREATER":             fmt.Sprintf("0x%x", uint32(CR0_GREATER)),
	"CR0_UNORDERED":           fmt.Sprintf("0x%x", uint32(CR0_UNORDERED)),
	"CR0_FP_DIVZERO":          fmt.Sprintf("0x%x", uint32(CR0_FP_DIVZERO)),
	"CR0_FP_INEXACT":          fmt.Sprintf("0x%x", uint32(CR0_FP_INEXACT)),
	"CR0_FP_INVALID":          fmt.Sprintf("0x%x", uint32(CR0_FP_INVALID)),
	"CR0_FP_OVERFLOW":         fmt.Sprintf("0x%x", uint32(CR0_FP_OVERFLOW)),
	"CR0_FP_UNDERFLOW":        fmt.Sprintf("0x%x", uint32(CR0_FP_UNDERFLOW)),
	"CR0_FP_EQUAL":            fmt.Sprintf("0x%x", uint32(CR0_FP_EQUAL)),
	"CR0_FP_LESS":             fmt.Sprintf("0x%x", uint32(CR0_FP_LESS)),
	"CR0_FP_GREATER":          fmt.Sprintf("0x%x", uint32(CR0_FP_GREATER)),
	"CR0_FP_UNORDERED":        fmt.Sprintf("0x%x", uint32(CR0_FP_UNORDERED)),
	"CR0_BOUNDS_CHECK":        fmt.Sprintf("0x%x", uint32(CR0_BOUNDS_CHECK)),
	"CR0_TRAP":                fmt.Sprintf("0x%x", uint32(CR0_TRAP)),
	"CR0_PAGE_FAULT":          fmt.Sprintf("0x%x", uint32(CR0_PAGE_FAULT)),
	"CR0_WRITE_PROTECT":       fmt.Sprintf("0x%x", uint32(CR0_WRITE_PROTECT)),
	"CR0_PRIVILEGE_VIOLATION": fmt.Sprintf("0x%x", uint32(CR0_PRIVILEGE_VIOLATION)),
	"CR0_COMPARE_MASK":        fmt.Sprintf("0x%x", uint32(CR0_COMPARE_MASK)),
	"CR0_FP_COMPARE_MASK":     fmt.Sprintf("0x%x", uint32(CR0_FP_COMPARE_MASK)),
}

// Cpu is the processor state of the M88000.
//
// The operand fields (D, S1, S2, Imm, Offset, Select, Vector) are the
// decode output of the current instruction, and are overwritten on every
// dispatch.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Memory *memory.Memory // Memory used by Execute.

	Register [REGISTER_COUNT]uint32 // General purpose registers.
	Pc       uint32                 // Program counter.
	Nip      uint32                 // Next instruction pointer.
	Fip      uint32                 // Fetch instruction pointer.
	Sxip     uint32                 // Shadow execute instruction pointer.
	Snip     uint32                 // Shadow next instruction pointer.
	Sfip     uint32                 // Shadow fetch instruction pointer.
	Cr0      Flags                  // Control and status register.

	TrapVector uint8      // Vector of the last trap.
	MmuControl MmuControl // MMU control register.

	D      int     // Destination register index.
	S1     int     // First source register index.
	S2     int     // Second source register index.
	Imm    int16   // Immediate value.
	Offset int16   // Branch or memory offset.
	Select CacheOp // Cache operation selector.
	Vector uint8   // Trap vector number.

	Ticks int // Instructions executed.

	privilege Privilege
}

// NewCpu creates a new processor attached to a memory.
// A nil memory attaches a new memory of the default size.
func NewCpu(mem *memory.Memory) (cpu *Cpu) {
	if mem == nil {
		mem = memory.NewMemory(0)
	}

	cpu = &Cpu{
		Memory: mem,
	}

	return
}

// Defines for the cpu.
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}

// Reset the processor state to user mode with all registers cleared.
// Attached memory is not modified.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	mem := cpu.Memory
	verbose := cpu.Verbose
	*cpu = Cpu{
		Verbose: verbose,
		Memory:  mem,
	}
}

// Privilege returns the current privilege level.
func (cpu *Cpu) Privilege() Privilege {
	return cpu.privilege
}

// SetPrivilege sets the current privilege level.
func (cpu *Cpu) SetPrivilege(level Privilege) {
	cpu.privilege = level
}

// Supervisor returns true when in supervisor mode.
func (cpu *Cpu) Supervisor() bool {
	return cpu.privilege == PRIVILEGE_SUPERVISOR
}

// SetFlags sets CR0 bits.
func (cpu *Cpu) SetFlags(mask Flags) {
	cpu.Cr0.Set(mask)
}

// ClearFlags clears CR0 bits.
func (cpu *Cpu) ClearFlags(mask Flags) {
	cpu.Cr0.Clear(mask)
}

// HasFlags returns true if all the CR0 bits in mask are set.
func (cpu *Cpu) HasFlags(mask Flags) bool {
	return cpu.Cr0.Has(mask)
}

// MmuEnabled returns true if MMU_ENABLE is set in the MMU control register.
func (cpu *Cpu) MmuEnabled() bool {
	return (cpu.MmuControl & MMU_ENABLE) != 0
}

// SetMmuEnabled sets or clears MMU_ENABLE in the MMU control register.
func (cpu *Cpu) SetMmuEnabled(enabled bool) {
	if enabled {
		cpu.MmuControl |= MMU_ENABLE
	} else {
		cpu.MmuControl &^= MMU_ENABLE
	}
}

// Reg returns a register; the index is taken modulo 32.
func (cpu *Cpu) Reg(index int) uint32 {
	return cpu.Register[index&(REGISTER_COUNT-1)]
}

// SetReg sets a register; the index is taken modulo 32.
func (cpu *Cpu) SetReg(index int, value uint32) {
	cpu.Register[index&(REGISTER_COUNT-1)] = value
}

// fault records a memory error as CR0 fault bits.
func (cpu *Cpu) fault(err error) {
	if errors.Is(err, memory.ErrWriteProtect(0)) {
		cpu.Cr0.Set(CR0_WRITE_PROTECT)
	} else {
		cpu.Cr0.Set(CR0_PAGE_FAULT)
	}
}

// Execute runs an instruction against the processor and its memory.
func (cpu *Cpu) Execute(inst Instruction) {
	if cpu.Verbose {
		log.Printf("%08x: %v", cpu.Pc, inst)
	}

	inst.Execute(cpu, cpu.Memory)

	cpu.Ticks++
}

// String returns the current processor state as a string.
func (cpu *Cpu) String() (text string) {
	text += fmt.Sprintf("   pc: %08x  nip: %08x  fip: %08x\n", cpu.Pc, cpu.Nip, cpu.Fip)
	text += fmt.Sprintf(" sxip: %08x snip: %08x sfip: %08x\n", cpu.Sxip, cpu.Snip, cpu.Sfip)
	text += fmt.Sprintf("  cr0: %08x %v\n", uint32(cpu.Cr0), cpu.Cr0)
	text += fmt.Sprintf(" mode: %v\n", cpu.privilege)

	for n := 0; n < REGISTER_COUNT; n += 4 {
		for i := range 4 {
			text += fmt.Sprintf("% 5s: %04X_%04X", fmt.Sprintf("r%d", n+i), cpu.Register[n+i]>>16, cpu.Register[n+i]&0xffff)
		}
		text += "\n"
	}

	return
}
