package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/m88k/memory"
)

func TestMemory_RoundTrip(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name   string
		store  Opcode
		load   Opcode
		value  uint32
		expect uint32
	}){
		{"word", OP_ST, OP_LD, 0x12345678, 0x12345678},
		{"half", OP_ST_H, OP_LD_H, 0x1234abcd, 0xabcd},
		{"byte", OP_ST_B, OP_LD_B, 0x123456ff, 0xff},
	}

	for _, entry := range table {
		for _, addr := range []uint32{0, 0x101, 0xfff, 0xfffc} {
			cpu := newTestCpu()
			cpu.Register[1] = entry.value
			cpu.Register[2] = addr

			cpu.Execute(Code{Opcode: entry.store, D: 1, S1: 2})
			cpu.Execute(Code{Opcode: entry.load, D: 3, S1: 2})

			assert.Equal(entry.expect, cpu.Register[3], "%v 0x%x", entry.name, addr)
			assert.Equal(Flags(0), cpu.Cr0, "%v 0x%x", entry.name, addr)
		}
	}
}

func TestMemory_Double(t *testing.T) {
	assert := assert.New(t)

	cpu := newTestCpu()
	cpu.Register[4] = 0x01234567
	cpu.Register[5] = 0x89abcdef
	cpu.Register[2] = 0x200

	cpu.Execute(Code{Opcode: OP_ST_D, D: 4, S1: 2})

	hi, err := cpu.Memory.ReadPhysical32(0x200)
	assert.NoError(err)
	assert.Equal(uint32(0x01234567), hi)
	lo, err := cpu.Memory.ReadPhysical32(0x204)
	assert.NoError(err)
	assert.Equal(uint32(0x89abcdef), lo)

	cpu.Execute(Code{Opcode: OP_LD_D, D: 10, S1: 2})
	assert.Equal(uint32(0x01234567), cpu.Register[10])
	assert.Equal(uint32(0x89abcdef), cpu.Register[11])
	assert.Equal(Flags(0), cpu.Cr0)
}

func TestMemory_Offset(t *testing.T) {
	assert := assert.New(t)

	cpu := newTestCpu()
	err := cpu.Memory.WritePhysical32(0x100, 0xcafef00d)
	assert.NoError(err)

	cpu.Register[2] = 0x104
	cpu.Execute(Code{Opcode: OP_LD, D: 1, S1: 2, Offset: -4})
	assert.Equal(uint32(0xcafef00d), cpu.Register[1])

	cpu.Register[2] = 0xf0
	cpu.Execute(Code{Opcode: OP_LD_H, D: 1, S1: 2, Offset: 0x12})
	assert.Equal(uint32(0xf00d), cpu.Register[1])
}

func TestMemory_Xmem(t *testing.T) {
	assert := assert.New(t)

	cpu := newTestCpu()
	err := cpu.Memory.WritePhysical32(0x100, 0x11223344)
	assert.NoError(err)

	cpu.Register[1] = 0xaabbccdd
	cpu.Register[2] = 0x100
	cpu.Execute(Code{Opcode: OP_XMEM, D: 1, S1: 2})

	assert.Equal(uint32(0x11223344), cpu.Register[1])
	value, err := cpu.Memory.ReadPhysical32(0x100)
	assert.NoError(err)
	assert.Equal(uint32(0xaabbccdd), value)
}

func TestMemory_InvalidAddress(t *testing.T) {
	assert := assert.New(t)

	cpu := newTestCpu()
	cpu.Register[1] = 0xdeadbeef
	cpu.Register[2] = testMemorySize

	cpu.Execute(Code{Opcode: OP_LD, D: 1, S1: 2})
	assert.Equal(uint32(0xdeadbeef), cpu.Register[1])
	assert.Equal(CR0_PAGE_FAULT, cpu.Cr0)
}

// mapPages sets up a page table at 0x8000:
// virtual page 0 is physical page 1, writable;
// virtual page 1 is unmapped;
// virtual page 2 is physical page 2, read only.
func mapPages(t *testing.T, mem *memory.Memory) {
	assert := assert.New(t)

	base := uint32(0x8000)

	rw := memory.NewPageTableEntry(0x1000)
	ro := memory.NewPageTableEntry(0x2000)
	ro.Writable = false

	assert.NoError(mem.WritePhysical32(base+0*memory.PTE_SIZE, rw.Uint32()))
	assert.NoError(mem.WritePhysical32(base+2*memory.PTE_SIZE, ro.Uint32()))

	mem.SetPageTableBase(base)
	mem.SetMmuEnabled(true)
}

func TestMemory_WriteProtect(t *testing.T) {
	assert := assert.New(t)

	cpu := newTestCpu()
	mapPages(t, cpu.Memory)

	err := cpu.Memory.WritePhysical32(0x2010, 0x55555555)
	assert.NoError(err)

	cpu.Register[1] = 0xaaaaaaaa
	cpu.Register[2] = 0x2010
	cpu.Execute(Code{Opcode: OP_ST, D: 1, S1: 2})
	assert.Equal(CR0_WRITE_PROTECT, cpu.Cr0)

	value, err := cpu.Memory.ReadPhysical32(0x2010)
	assert.NoError(err)
	assert.Equal(uint32(0x55555555), value)

	// Reads are allowed.
	cpu.Execute(Code{Opcode: OP_LD, D: 3, S1: 2})
	assert.Equal(uint32(0x55555555), cpu.Register[3])
}

func TestMemory_PageFault(t *testing.T) {
	assert := assert.New(t)

	cpu := newTestCpu()
	mapPages(t, cpu.Memory)

	cpu.Register[1] = 0xdeadbeef
	cpu.Register[2] = 0x1000
	cpu.Execute(Code{Opcode: OP_LD, D: 1, S1: 2})
	assert.Equal(uint32(0xdeadbeef), cpu.Register[1])
	assert.Equal(CR0_PAGE_FAULT, cpu.Cr0)

	// Translated access to a mapped page.
	cpu.Cr0 = 0
	cpu.Register[2] = 0x0010
	cpu.Execute(Code{Opcode: OP_ST, D: 1, S1: 2})
	value, err := cpu.Memory.ReadPhysical32(0x1010)
	assert.NoError(err)
	assert.Equal(uint32(0xdeadbeef), value)
	assert.Equal(Flags(0), cpu.Cr0)
}

func TestMemory_DoubleStraddle(t *testing.T) {
	assert := assert.New(t)

	cpu := newTestCpu()
	mapPages(t, cpu.Memory)

	cpu.Register[4] = 0x01234567
	cpu.Register[5] = 0x89abcdef
	cpu.Register[2] = 0x0ffc

	cpu.Execute(Code{Opcode: OP_ST_D, D: 4, S1: 2})
	assert.Equal(CR0_PAGE_FAULT, cpu.Cr0)

	// The bytes before the page boundary were written.
	value, err := cpu.Memory.ReadPhysical32(0x1ffc)
	assert.NoError(err)
	assert.Equal(uint32(0x01234567), value)

	// A double load across the boundary leaves the pair untouched.
	cpu.Register[10] = 0xdeadbeef
	cpu.Register[11] = 0xdeadbeef
	cpu.Execute(Code{Opcode: OP_LD_D, D: 10, S1: 2})
	assert.Equal(uint32(0xdeadbeef), cpu.Register[10])
	assert.Equal(uint32(0xdeadbeef), cpu.Register[11])
}
