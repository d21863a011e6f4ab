package cpu

import (
	"log"

	"github.com/ezrec/m88k/memory"
)

// privileged checks for supervisor mode, and flags a privilege
// violation if not.
func (cpu *Cpu) privileged(op Opcode) (ok bool) {
	if cpu.Supervisor() {
		return true
	}

	if cpu.Verbose {
		log.Printf("cpu: %v: privilege violation", op)
	}

	cpu.Cr0.Set(CR0_PRIVILEGE_VIOLATION)

	return false
}

// doSystem executes the cache control opcodes.
// There are no caches, so the opcodes only enforce privilege.
func (cpu *Cpu) doSystem(op Opcode) {
	switch op {
	case OP_CPREF:
		// Allowed at any privilege.
	case OP_ICACHE, OP_DCACHE, OP_FLUSHC, OP_CINV, OP_CFLUSH:
		cpu.privileged(op)
	}
}

// doMmu executes the MMU control opcodes.
func (cpu *Cpu) doMmu(op Opcode, mem *memory.Memory) {
	switch op {
	case OP_PTBR:
		if !cpu.privileged(op) {
			return
		}
		mem.SetPageTableBase(cpu.Reg(cpu.S1))
		cpu.SetMmuEnabled(true)
		mem.SetMmuEnabled(true)
	case OP_TLBINV:
		if !cpu.privileged(op) {
			return
		}
		cpu.SetMmuEnabled(false)
		mem.SetMmuEnabled(false)
	case OP_TLBLD:
		mem.SetMmuEnabled(cpu.MmuEnabled())
	case OP_XLATE:
		paddr, err := mem.Translate(cpu.Reg(cpu.S1), false)
		if err != nil {
			cpu.Cr0.Set(CR0_PAGE_FAULT)
			return
		}
		cpu.SetReg(cpu.D, paddr)
	}
}
