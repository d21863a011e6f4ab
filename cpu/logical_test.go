package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogical(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name   string
		op     Opcode
		a, b   uint32
		imm    int16
		expect uint32
	}){
		{"and", OP_AND, 0xf0f0, 0xff00, 0, 0xf000},
		{"andi", OP_ANDI, 0xffffffff, 0, 0xff, 0xff},
		{"andi_sign", OP_ANDI, 0xffffffff, 0, -16, 0xfffffff0},
		{"or", OP_OR, 0xf0, 0x0f, 0, 0xff},
		{"ori", OP_ORI, 0x100, 0, 1, 0x101},
		{"xor", OP_XOR, 0xff00, 0x0ff0, 0, 0xf0f0},
		{"xori_sign", OP_XORI, 0, 0, -1, 0xffffffff},
		{"not", OP_NOT, 0x0f0f0f0f, 0, 0, 0xf0f0f0f0},
		{"clr", OP_CLR, 0xff, 3, 0, 0xf7},
		{"clr_mod32", OP_CLR, 0xff, 35, 0, 0xf7},
		{"set", OP_SET, 0, 31, 0, 0x80000000},
		{"ext", OP_EXT, 0x12345678, 8<<5 | 8, 0, 0x56},
		{"extu", OP_EXTU, 0x12345678, 16<<5 | 16, 0, 0x1234},
		{"ext_empty", OP_EXT, 0x12345678, 8 << 5, 0, 0},
		{"mak", OP_MAK, 0xabcd, 16<<5 | 8, 0, 0x00cd0000},
		{"makn", OP_MAKN, 0xffffffff, 4<<5 | 4, 0, 0xf0},
		{"mak_empty", OP_MAK, 0xffffffff, 4 << 5, 0, 0},
		{"rot", OP_ROT, 0x1, 1, 0, 0x80000000},
		{"rot_byte", OP_ROT, 0x12345678, 8, 0, 0x78123456},
		{"rot_mod32", OP_ROT, 0x12345678, 32, 0, 0x12345678},
		{"ext.b", OP_EXT_B, 0x80, 0, 0, 0xffffff80},
		{"ext.b_pos", OP_EXT_B, 0x1234, 0, 0, 0x34},
		{"ext.h", OP_EXT_H, 0x18000, 0, 0, 0xffff8000},
		{"extu.b", OP_EXTU_B, 0x1280, 0, 0, 0x80},
		{"extu.h", OP_EXTU_H, 0x12345678, 0, 0, 0x5678},
	}

	for _, entry := range table {
		cpu := newTestCpu()
		cpu.Register[1] = 0xdeadbeef
		cpu.Register[2] = entry.a
		cpu.Register[3] = entry.b

		cpu.Execute(Code{Opcode: entry.op, D: 1, S1: 2, S2: 3, Imm: entry.imm})

		assert.Equal(entry.expect, cpu.Register[1], entry.name)
		assert.Equal(Flags(0), cpu.Cr0, entry.name)
	}
}

func TestLogical_ClrSetRoundTrip(t *testing.T) {
	assert := assert.New(t)

	cpu := newTestCpu()
	for bit := range uint32(32) {
		cpu.Register[2] = 0x5a5a5a5a
		cpu.Register[3] = bit

		cpu.Execute(Code{Opcode: OP_SET, D: 1, S1: 2, S2: 3})
		cpu.Execute(Code{Opcode: OP_CLR, D: 1, S1: 1, S2: 3})
		assert.Equal(uint32(0x5a5a5a5a)&^(1<<bit), cpu.Register[1], bit)
	}
}

func TestLogical_ExtMak(t *testing.T) {
	assert := assert.New(t)

	cpu := newTestCpu()
	for offset := range uint32(24) {
		field := offset<<5 | 8

		// Extracting a made field returns the original low bits.
		cpu.Register[2] = 0xa5
		cpu.Register[3] = field
		cpu.Execute(Code{Opcode: OP_MAK, D: 4, S1: 2, S2: 3})
		assert.Equal(uint32(0xa5)<<offset, cpu.Register[4], offset)

		cpu.Execute(Code{Opcode: OP_EXTU, D: 5, S1: 4, S2: 3})
		assert.Equal(uint32(0xa5), cpu.Register[5], offset)
	}
}
