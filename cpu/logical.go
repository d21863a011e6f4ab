package cpu

import (
	"math/bits"
)

// bitField decodes the width and offset of a bit field operand.
// A width of zero is an empty field.
func bitField(value uint32) (mask uint32, offset uint32) {
	width := value & 0x1f
	offset = (value >> 5) & 0x1f
	if width != 0 {
		mask = (uint32(1) << width) - 1
	}
	return
}

// doLogical executes the logical and bit field opcodes.
func (cpu *Cpu) doLogical(op Opcode) {
	a := cpu.Reg(cpu.S1)
	b := cpu.Reg(cpu.S2)
	imm := uint32(int32(cpu.Imm))

	switch op {
	case OP_AND:
		cpu.SetReg(cpu.D, a&b)
	case OP_ANDI:
		cpu.SetReg(cpu.D, a&imm)
	case OP_OR:
		cpu.SetReg(cpu.D, a|b)
	case OP_ORI:
		cpu.SetReg(cpu.D, a|imm)
	case OP_XOR:
		cpu.SetReg(cpu.D, a^b)
	case OP_XORI:
		cpu.SetReg(cpu.D, a^imm)
	case OP_NOT:
		cpu.SetReg(cpu.D, ^a)
	case OP_CLR:
		cpu.SetReg(cpu.D, a&^(1<<(b&0x1f)))
	case OP_SET:
		cpu.SetReg(cpu.D, a|(1<<(b&0x1f)))
	case OP_EXT, OP_EXTU:
		mask, offset := bitField(b)
		cpu.SetReg(cpu.D, (a>>offset)&mask)
	case OP_MAK, OP_MAKN:
		// The field replaces the destination; other bits are cleared.
		mask, offset := bitField(b)
		cpu.SetReg(cpu.D, (a&mask)<<offset)
	case OP_ROT:
		cpu.SetReg(cpu.D, bits.RotateLeft32(a, -int(b&0x1f)))
	case OP_EXT_B:
		cpu.SetReg(cpu.D, uint32(int32(int8(a))))
	case OP_EXT_H:
		cpu.SetReg(cpu.D, uint32(int32(int16(a))))
	case OP_EXTU_B:
		cpu.SetReg(cpu.D, a&0xff)
	case OP_EXTU_H:
		cpu.SetReg(cpu.D, a&0xffff)
	}
}
