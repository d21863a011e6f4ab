package cpu

import (
	"math"
)

// lane returns byte lane n of value; lane 0 is the most significant byte.
func lane(value uint32, n int) uint32 {
	return (value >> ((3 - n) * 8)) & 0xff
}

// laneSet returns a value with lane n set to b.
func laneSet(value uint32, n int, b uint32) uint32 {
	shift := (3 - n) * 8
	return (value &^ (0xff << shift)) | ((b & 0xff) << shift)
}

// byteLanes applies fn to each byte lane of a and b.
func byteLanes(a, b uint32, fn func(x, y uint32) uint32) (result uint32) {
	for n := range VECTOR_LANES {
		result = laneSet(result, n, fn(lane(a, n), lane(b, n)))
	}
	return
}

func laneMask(ok bool) uint32 {
	if ok {
		return 0xff
	}
	return 0
}

// doVector executes the vector opcodes.
//
// The float lane opcodes operate on the four registers starting at each
// operand index, wrapping modulo 32. The byte lane opcodes operate on the
// four bytes of a single register.
func (cpu *Cpu) doVector(op Opcode) {
	switch op {
	case OP_VADD, OP_VSUB, OP_VMUL, OP_VDIV, OP_VMOV:
		for n := range VECTOR_LANES {
			cpu.floatLane(op, cpu.D+n, cpu.S1+n, cpu.S2+n)
		}
		return
	}

	a := cpu.Reg(cpu.S1)
	b := cpu.Reg(cpu.S2)

	switch op {
	case OP_VEQ:
		cpu.SetReg(cpu.D, byteLanes(a, b, func(x, y uint32) uint32 { return laneMask(x == y) }))
	case OP_VGT:
		cpu.SetReg(cpu.D, byteLanes(a, b, func(x, y uint32) uint32 { return laneMask(x > y) }))
	case OP_VLT:
		cpu.SetReg(cpu.D, byteLanes(a, b, func(x, y uint32) uint32 { return laneMask(x < y) }))
	case OP_VMAX:
		cpu.SetReg(cpu.D, byteLanes(a, b, func(x, y uint32) uint32 { return max(x, y) }))
	case OP_VMIN:
		cpu.SetReg(cpu.D, byteLanes(a, b, func(x, y uint32) uint32 { return min(x, y) }))
	case OP_VSHUF:
		// Two selector bits per lane, lane 0 in bits 7:6. A selector of
		// n picks the byte at bit 8*n of the source.
		var result uint32
		for n := range VECTOR_LANES {
			sel := (b >> ((3 - n) * 2)) & 0x3
			result = laneSet(result, n, a>>(sel*8))
		}
		cpu.SetReg(cpu.D, result)
	case OP_VILH:
		cpu.SetReg(cpu.D, lane(a, 0)<<24|lane(b, 0)<<16|lane(a, 1)<<8|lane(b, 1))
	case OP_VILL:
		cpu.SetReg(cpu.D, lane(a, 2)<<24|lane(b, 2)<<16|lane(a, 3)<<8|lane(b, 3))
	case OP_VEXTB:
		cpu.SetReg(cpu.D, lane(a, int(b&0x3)))
	case OP_VINSB:
		cpu.SetReg(cpu.D, laneSet(a, int(cpu.Imm&0x3), b))
	case OP_VPKBH:
		cpu.SetReg(cpu.D, lane(a, 0)<<24|lane(b, 0)<<16|lane(a, 1)<<8|lane(b, 1))
	case OP_VPKHW:
		cpu.SetReg(cpu.D, (a&0xffff)<<16|(b&0xffff))
	case OP_VUPKBH:
		cpu.SetReg(cpu.D, lane(a, 0)<<16|lane(a, 1))
	case OP_VUPKHW:
		cpu.SetReg(cpu.D, a>>16)
		cpu.SetReg(cpu.D+1, a&0xffff)
	}
}

// floatLane executes one lane of a float vector opcode.
func (cpu *Cpu) floatLane(op Opcode, d, s1, s2 int) {
	if op == OP_VMOV {
		cpu.SetReg(d, cpu.Reg(s1))
		return
	}

	a := math.Float32frombits(cpu.Reg(s1))
	b := math.Float32frombits(cpu.Reg(s2))

	var result float32
	switch op {
	case OP_VADD:
		result = float32(a + b)
	case OP_VSUB:
		result = float32(a - b)
	case OP_VMUL:
		result = float32(a * b)
	case OP_VDIV:
		if b == 0 {
			cpu.Cr0.Set(CR0_FP_DIVZERO)
			cpu.setFloat(d, float32(math.NaN()))
			return
		}
		result = float32(a / b)
	}

	if isNaN32(result) {
		cpu.Cr0.Set(CR0_FP_INVALID)
	}

	cpu.setFloat(d, result)
}
