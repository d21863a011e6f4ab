package cpu

import (
	"math/bits"
)

// doInteger executes the integer arithmetic opcodes.
//
// All add, subtract and multiply results wrap modulo 2^32. Division by zero
// sets CR0_FP_DIVZERO and writes zero to the destination.
func (cpu *Cpu) doInteger(op Opcode) {
	a := cpu.Reg(cpu.S1)
	b := cpu.Reg(cpu.S2)
	imm := uint32(int32(cpu.Imm))

	switch op {
	case OP_ADD, OP_ADDU:
		cpu.SetReg(cpu.D, a+b)
	case OP_ADDI, OP_ADDUI:
		cpu.SetReg(cpu.D, a+imm)
	case OP_SUB, OP_SUBU:
		cpu.SetReg(cpu.D, a-b)
	case OP_SUBI, OP_SUBUI:
		cpu.SetReg(cpu.D, a-imm)
	case OP_MUL, OP_MULU:
		cpu.SetReg(cpu.D, a*b)
	case OP_DIV:
		if b == 0 {
			cpu.divideByZero()
			return
		}
		// MIN_INT / -1 wraps to MIN_INT.
		cpu.SetReg(cpu.D, uint32(int32(a)/int32(b)))
	case OP_DIVU:
		if b == 0 {
			cpu.divideByZero()
			return
		}
		cpu.SetReg(cpu.D, a/b)
	case OP_REM:
		if b == 0 {
			cpu.divideByZero()
			return
		}
		// MIN_INT % -1 is zero.
		cpu.SetReg(cpu.D, uint32(int32(a)%int32(b)))
	case OP_REMU:
		if b == 0 {
			cpu.divideByZero()
			return
		}
		cpu.SetReg(cpu.D, a%b)
	case OP_LMUL:
		product := uint64(int64(int32(a)) * int64(int32(b)))
		cpu.setPair(cpu.D, product)
	case OP_LMULU:
		hi, lo := bits.Mul32(a, b)
		cpu.SetReg(cpu.D, hi)
		cpu.SetReg(cpu.D+1, lo)
	case OP_DIVUD:
		dividend := uint64(a)<<32 | uint64(cpu.Reg(cpu.S1+1))
		if b == 0 {
			cpu.Cr0.Set(CR0_FP_DIVZERO)
			cpu.setPair(cpu.D, 0)
			return
		}
		quotient := dividend / uint64(b)
		remainder := dividend % uint64(b)
		cpu.SetReg(cpu.D, uint32(quotient))
		cpu.SetReg(cpu.D+1, uint32(remainder))
	case OP_CMP:
		cpu.compare(int64(int32(a)), int64(int32(b)))
	case OP_CMPU:
		cpu.compare(int64(a), int64(b))
	case OP_MASK:
		cpu.SetReg(cpu.D, a&b)
	case OP_FF1:
		cpu.SetReg(cpu.D, uint32(bits.TrailingZeros32(a)))
	case OP_FF0:
		cpu.SetReg(cpu.D, uint32(bits.TrailingZeros32(^a)))
	}
}

func (cpu *Cpu) divideByZero() {
	cpu.Cr0.Set(CR0_FP_DIVZERO)
	cpu.SetReg(cpu.D, 0)
}

// setPair writes a 64-bit value to the register pair (index, index+1),
// high word first.
func (cpu *Cpu) setPair(index int, value uint64) {
	cpu.SetReg(index, uint32(value>>32))
	cpu.SetReg(index+1, uint32(value))
}

// pair reads the 64-bit value of the register pair (index, index+1).
func (cpu *Cpu) pair(index int) uint64 {
	return uint64(cpu.Reg(index))<<32 | uint64(cpu.Reg(index+1))
}

// compare sets exactly one of the integer compare bits.
func (cpu *Cpu) compare(a, b int64) {
	cpu.Cr0.Clear(CR0_COMPARE_MASK)
	switch {
	case a == b:
		cpu.Cr0.Set(CR0_EQUAL)
	case a < b:
		cpu.Cr0.Set(CR0_LESS)
	default:
		cpu.Cr0.Set(CR0_GREATER)
	}
}
