package cpu

import (
	"maps"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/m88k/memory"
)

const testMemorySize = 0x10000

// newTestCpu returns a user mode cpu with a small memory.
func newTestCpu() *Cpu {
	return NewCpu(memory.NewMemory(testMemorySize))
}

func TestCpu(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu(nil)
	assert.NotNil(cpu.Memory)
	assert.Equal(memory.MEMORY_SIZE, cpu.Memory.Size())
	assert.Equal(PRIVILEGE_USER, cpu.Privilege())
	assert.False(cpu.Supervisor())

	cpu.SetPrivilege(PRIVILEGE_SUPERVISOR)
	assert.True(cpu.Supervisor())
	assert.Equal("supervisor", cpu.Privilege().String())
}

func TestCpu_Reset(t *testing.T) {
	assert := assert.New(t)

	mem := memory.NewMemory(testMemorySize)
	cpu := NewCpu(mem)
	cpu.Verbose = true
	cpu.Register[5] = 0x1234
	cpu.Pc = 0x100
	cpu.Cr0 = CR0_TRAP
	cpu.SetPrivilege(PRIVILEGE_SUPERVISOR)
	cpu.SetMmuEnabled(true)
	cpu.Ticks = 10

	cpu.Reset()

	assert.True(cpu.Verbose)
	assert.Same(mem, cpu.Memory)
	assert.Equal(uint32(0), cpu.Register[5])
	assert.Equal(uint32(0), cpu.Pc)
	assert.Equal(Flags(0), cpu.Cr0)
	assert.Equal(PRIVILEGE_USER, cpu.Privilege())
	assert.False(cpu.MmuEnabled())
	assert.Equal(0, cpu.Ticks)
}

func TestCpu_Reg(t *testing.T) {
	assert := assert.New(t)

	cpu := newTestCpu()

	cpu.SetReg(33, 0xcafe)
	assert.Equal(uint32(0xcafe), cpu.Register[1])
	assert.Equal(uint32(0xcafe), cpu.Reg(1))
	assert.Equal(uint32(0xcafe), cpu.Reg(-31))

	// r0 is an ordinary register.
	cpu.SetReg(0, 7)
	assert.Equal(uint32(7), cpu.Reg(0))
}

func TestFlags(t *testing.T) {
	assert := assert.New(t)

	var fl Flags

	assert.Equal("-", fl.String())

	fl.Set(CR0_EQUAL | CR0_TRAP)
	assert.True(fl.Has(CR0_EQUAL))
	assert.True(fl.Has(CR0_EQUAL | CR0_TRAP))
	assert.False(fl.Has(CR0_EQUAL | CR0_LESS))
	assert.Equal("eq|trap", fl.String())

	fl.Clear(CR0_EQUAL)
	assert.Equal(CR0_TRAP, fl)

	fl = Flags(1 << 20)
	assert.Equal("0x100000", fl.String())

	assert.Equal("privilege", CR0_PRIVILEGE_VIOLATION.String())
}

func TestCpu_Flags(t *testing.T) {
	assert := assert.New(t)

	cpu := newTestCpu()

	cpu.SetFlags(CR0_FP_DIVZERO | CR0_FP_INVALID)
	assert.True(cpu.HasFlags(CR0_FP_DIVZERO))
	cpu.ClearFlags(CR0_FP_DIVZERO)
	assert.False(cpu.HasFlags(CR0_FP_DIVZERO))
	assert.True(cpu.HasFlags(CR0_FP_INVALID))
}

func TestCpu_Defines(t *testing.T) {
	assert := assert.New(t)

	cpu := newTestCpu()

	defines := maps.Collect(cpu.Defines())
	assert.Equal("0x4000", defines["CR0_TRAP"])
	assert.Equal("0x20000", defines["CR0_PRIVILEGE_VIOLATION"])
	assert.Equal("32", defines["REGISTER_COUNT"])
	assert.Equal("0x1", defines["MMU_ENABLE"])
}

func TestCpu_Execute(t *testing.T) {
	assert := assert.New(t)

	cpu := newTestCpu()
	cpu.Register[2] = 3
	cpu.Register[3] = 4

	cpu.Execute(Code{Opcode: OP_ADD, D: 1, S1: 2, S2: 3})
	assert.Equal(uint32(7), cpu.Register[1])
	assert.Equal(1, cpu.Ticks)

	// Operand fields are decoded into the cpu.
	assert.Equal(1, cpu.D)
	assert.Equal(2, cpu.S1)
	assert.Equal(3, cpu.S2)

	// Opcodes execute with the operand fields already in the cpu.
	cpu.Execute(OP_SUB)
	assert.Equal(uint32(0xffffffff), cpu.Register[1])
	assert.Equal(2, cpu.Ticks)
}

func TestCpu_String(t *testing.T) {
	assert := assert.New(t)

	cpu := newTestCpu()
	cpu.Register[31] = 0x12345678
	cpu.Cr0 = CR0_LESS

	text := cpu.String()
	assert.True(strings.Contains(text, "r31: 1234_5678"), text)
	assert.True(strings.Contains(text, "lt"), text)
	assert.True(strings.Contains(text, "user"), text)
}
