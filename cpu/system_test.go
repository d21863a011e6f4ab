package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/m88k/memory"
)

func TestSystem_UserMode(t *testing.T) {
	assert := assert.New(t)

	table := []Code{
		{Opcode: OP_ICACHE, Select: CACHE_OP_INVALIDATE},
		{Opcode: OP_DCACHE, Select: CACHE_OP_FLUSH},
		{Opcode: OP_FLUSHC},
		{Opcode: OP_CINV},
		{Opcode: OP_CFLUSH},
		{Opcode: OP_PTBR, S1: 2},
		{Opcode: OP_TLBINV},
	}

	for _, code := range table {
		cpu := newTestCpu()
		for n := range REGISTER_COUNT {
			cpu.Register[n] = uint32(n * 0x01010101)
		}
		cpu.Pc = 0x100
		cpu.Cr0 = CR0_EQUAL
		cpu.SetMmuEnabled(true)
		cpu.Memory.SetMmuEnabled(false)

		code.Load(cpu)
		before := *cpu

		cpu.Execute(code)

		assert.Equal(CR0_EQUAL|CR0_PRIVILEGE_VIOLATION, cpu.Cr0, code.String())

		after := *cpu
		after.Cr0 = before.Cr0
		after.Ticks = before.Ticks
		assert.Equal(before, after, code.String())

		assert.False(cpu.Memory.MmuEnabled(), code.String())
		assert.Equal(uint32(0), cpu.Memory.PageTableBase(), code.String())
		assert.Equal(PRIVILEGE_USER, cpu.Privilege(), code.String())
	}
}

func TestSystem_Supervisor(t *testing.T) {
	assert := assert.New(t)

	for _, op := range []Opcode{OP_ICACHE, OP_DCACHE, OP_FLUSHC, OP_CINV, OP_CFLUSH, OP_CPREF} {
		cpu := newTestCpu()
		cpu.SetPrivilege(PRIVILEGE_SUPERVISOR)

		cpu.Execute(Code{Opcode: op})
		assert.Equal(Flags(0), cpu.Cr0, op.String())
	}

	// cpref is allowed in user mode.
	cpu := newTestCpu()
	cpu.Execute(Code{Opcode: OP_CPREF})
	assert.Equal(Flags(0), cpu.Cr0)
}

func TestMmu_PtbrTlbinv(t *testing.T) {
	assert := assert.New(t)

	cpu := newTestCpu()
	cpu.SetPrivilege(PRIVILEGE_SUPERVISOR)
	cpu.Register[2] = 0x2345

	cpu.Execute(Code{Opcode: OP_PTBR, S1: 2})
	assert.Equal(uint32(0x2000), cpu.Memory.PageTableBase())
	assert.True(cpu.Memory.MmuEnabled())
	assert.True(cpu.MmuEnabled())

	cpu.Execute(Code{Opcode: OP_TLBINV})
	assert.False(cpu.Memory.MmuEnabled())
	assert.False(cpu.MmuEnabled())
	assert.Equal(Flags(0), cpu.Cr0)
}

func TestMmu_Tlbld(t *testing.T) {
	assert := assert.New(t)

	cpu := newTestCpu()

	cpu.MmuControl = MMU_ENABLE
	cpu.Execute(Code{Opcode: OP_TLBLD})
	assert.True(cpu.Memory.MmuEnabled())

	cpu.MmuControl = 0
	cpu.Execute(Code{Opcode: OP_TLBLD})
	assert.False(cpu.Memory.MmuEnabled())
}

func TestMmu_Xlate(t *testing.T) {
	assert := assert.New(t)

	cpu := newTestCpu()
	mem := cpu.Memory

	// Identity with translation disabled.
	cpu.Register[2] = 0x1234
	cpu.Execute(Code{Opcode: OP_XLATE, D: 1, S1: 2})
	assert.Equal(uint32(0x1234), cpu.Register[1])

	// Virtual page 1 maps to physical page 5.
	base := uint32(0x8000)
	err := mem.WritePhysical32(base+1*memory.PTE_SIZE, memory.NewPageTableEntry(0x5000).Uint32())
	assert.NoError(err)
	mem.SetPageTableBase(base)
	mem.SetMmuEnabled(true)

	cpu.Execute(Code{Opcode: OP_XLATE, D: 1, S1: 2})
	assert.Equal(uint32(0x5234), cpu.Register[1])
	assert.Equal(Flags(0), cpu.Cr0)

	// Virtual page 2 is not mapped.
	cpu.Register[2] = 0x2000
	cpu.Execute(Code{Opcode: OP_XLATE, D: 1, S1: 2})
	assert.Equal(uint32(0x5234), cpu.Register[1])
	assert.Equal(CR0_PAGE_FAULT, cpu.Cr0)
}
