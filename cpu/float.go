package cpu

import (
	"math"
)

const (
	_float32_epsilon = 1.1920929e-07 // Difference between 1.0 and the next float32.
)

func isNaN32(value float32) bool {
	return math.IsNaN(float64(value))
}

func isInf32(value float32) bool {
	return math.IsInf(float64(value), 0)
}

// doFloat executes the single precision floating point opcodes.
// Registers hold the IEEE-754 bit pattern of the values.
func (cpu *Cpu) doFloat(op Opcode) {
	a := math.Float32frombits(cpu.Reg(cpu.S1))
	b := math.Float32frombits(cpu.Reg(cpu.S2))

	switch op {
	case OP_FADD:
		result := float32(a + b)
		if isInf32(result) && !isInf32(a) && !isInf32(b) {
			cpu.Cr0.Set(CR0_FP_OVERFLOW)
		}
		if result == 0 && (a != 0 || b != 0) {
			cpu.Cr0.Set(CR0_FP_UNDERFLOW)
		}
		cpu.setFloat(cpu.D, result)
	case OP_FSUB:
		result := float32(a - b)
		if isNaN32(result) {
			cpu.Cr0.Set(CR0_FP_INVALID)
		}
		cpu.setFloat(cpu.D, result)
	case OP_FMUL:
		result := float32(a * b)
		if isInf32(result) && !isInf32(a) && !isInf32(b) {
			cpu.Cr0.Set(CR0_FP_OVERFLOW)
		}
		if result == 0 && a != 0 && b != 0 {
			cpu.Cr0.Set(CR0_FP_UNDERFLOW)
		}
		cpu.setFloat(cpu.D, result)
	case OP_FDIV:
		cpu.fdiv(a, b)
	case OP_FCMP:
		cpu.Cr0.Clear(CR0_FP_COMPARE_MASK)
		switch {
		case isNaN32(a) || isNaN32(b):
			cpu.Cr0.Set(CR0_FP_UNORDERED)
		case a < b:
			cpu.Cr0.Set(CR0_FP_LESS)
		case a > b:
			cpu.Cr0.Set(CR0_FP_GREATER)
		default:
			cpu.Cr0.Set(CR0_FP_EQUAL)
		}
	case OP_FLT:
		cpu.setFloat(cpu.D, float32(int32(cpu.Reg(cpu.S1))))
	case OP_NINT:
		cpu.SetReg(cpu.D, uint32(cpu.nint(a)))
	}
}

func (cpu *Cpu) setFloat(index int, value float32) {
	cpu.SetReg(index, math.Float32bits(value))
}

// fdiv divides, handling a zero divisor before the general case.
func (cpu *Cpu) fdiv(a, b float32) {
	if b == 0 {
		cpu.Cr0.Set(CR0_FP_DIVZERO)
		switch {
		case a == 0:
			cpu.Cr0.Set(CR0_FP_INVALID)
			cpu.setFloat(cpu.D, float32(math.NaN()))
		case math.Signbit(float64(a)):
			cpu.setFloat(cpu.D, float32(math.Inf(-1)))
		default:
			cpu.setFloat(cpu.D, float32(math.Inf(1)))
		}
		return
	}

	result := float32(a / b)
	if isInf32(result) && !isInf32(a) {
		cpu.Cr0.Set(CR0_FP_OVERFLOW)
	}
	if result == 0 && a != 0 {
		cpu.Cr0.Set(CR0_FP_UNDERFLOW)
	}
	cpu.setFloat(cpu.D, result)
}

// nint rounds to the nearest integer, ties to even.
//
// NaN and infinity are invalid and convert to zero. Values outside of the
// int32 range overflow and saturate.
func (cpu *Cpu) nint(value float32) (result int32) {
	if isNaN32(value) || isInf32(value) {
		cpu.Cr0.Set(CR0_FP_INVALID)
		return 0
	}

	if value >= math.MaxInt32 || value < math.MinInt32 {
		cpu.Cr0.Set(CR0_FP_OVERFLOW)
		if value > 0 {
			return math.MaxInt32
		}
		return math.MinInt32
	}

	v := float64(value)
	_, fract := math.Modf(v)
	if math.Abs(math.Abs(fract)-0.5) < _float32_epsilon {
		floor := math.Floor(v)
		if int64(floor)%2 == 0 {
			return int32(floor)
		}
		return int32(math.Ceil(v))
	}

	return int32(math.Round(v))
}
