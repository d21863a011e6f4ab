package cpu

import (
	"github.com/ezrec/m88k/memory"
)

// load reads size bytes, big endian, one byte at a time.
// A fault is recorded in CR0, and stops the read.
func (cpu *Cpu) load(mem *memory.Memory, addr uint32, size int) (value uint64, ok bool) {
	for n := range size {
		b, err := mem.Read8(addr + uint32(n))
		if err != nil {
			cpu.fault(err)
			return
		}
		value = (value << 8) | uint64(b)
	}

	ok = true
	return
}

// store writes size bytes, big endian, one byte at a time.
// A fault is recorded in CR0, and stops the write; bytes before the
// faulting byte stay written.
func (cpu *Cpu) store(mem *memory.Memory, addr uint32, size int, value uint64) (ok bool) {
	for n := range size {
		err := mem.Write8(addr+uint32(n), byte(value>>((size-1-n)*8)))
		if err != nil {
			cpu.fault(err)
			return
		}
	}

	ok = true
	return
}

// doMemory executes the load and store opcodes.
// The effective address is S1 plus the sign extended Offset.
func (cpu *Cpu) doMemory(op Opcode, mem *memory.Memory) {
	addr := cpu.Reg(cpu.S1) + uint32(int32(cpu.Offset))

	switch op {
	case OP_LD:
		if value, ok := cpu.load(mem, addr, 4); ok {
			cpu.SetReg(cpu.D, uint32(value))
		}
	case OP_LD_B:
		if value, ok := cpu.load(mem, addr, 1); ok {
			cpu.SetReg(cpu.D, uint32(value))
		}
	case OP_LD_H:
		if value, ok := cpu.load(mem, addr, 2); ok {
			cpu.SetReg(cpu.D, uint32(value))
		}
	case OP_LD_D:
		if value, ok := cpu.load(mem, addr, 8); ok {
			cpu.setPair(cpu.D, value)
		}
	case OP_ST:
		cpu.store(mem, addr, 4, uint64(cpu.Reg(cpu.D)))
	case OP_ST_B:
		cpu.store(mem, addr, 1, uint64(cpu.Reg(cpu.D)))
	case OP_ST_H:
		cpu.store(mem, addr, 2, uint64(cpu.Reg(cpu.D)))
	case OP_ST_D:
		cpu.store(mem, addr, 8, cpu.pair(cpu.D))
	case OP_XMEM:
		old, ok := cpu.load(mem, addr, 4)
		if !ok {
			return
		}
		if !cpu.store(mem, addr, 4, uint64(cpu.Reg(cpu.D))) {
			return
		}
		cpu.SetReg(cpu.D, uint32(old))
	}
}
