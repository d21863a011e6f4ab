package cpu

import (
	"fmt"
	"iter"

	"github.com/ezrec/m88k/memory"
)

// Instruction is an operation that executes against processor state and memory.
//
// Execute never fails: faults are recorded in CR0.
type Instruction interface {
	Execute(cpu *Cpu, mem *memory.Memory)
}

// Opcode is an M88000 operation. The operands are taken from the
// operand fields of the Cpu.
type Opcode int

//go:generate go tool stringer -linecomment -type=Opcode
const (
	OP_ADD   = Opcode(0)  // add
	OP_ADDI  = Opcode(1)  // addi
	OP_ADDU  = Opcode(2)  // addu
	OP_ADDUI = Opcode(3)  // addui
	OP_SUB   = Opcode(4)  // sub
	OP_SUBI  = Opcode(5)  // subi
	OP_SUBU  = Opcode(6)  // subu
	OP_SUBUI = Opcode(7)  // subui
	OP_MUL   = Opcode(8)  // mul
	OP_MULU  = Opcode(9)  // mulu
	OP_DIV   = Opcode(10) // div
	OP_DIVU  = Opcode(11) // divu
	OP_REM   = Opcode(12) // rem
	OP_REMU  = Opcode(13) // remu
	OP_LMUL  = Opcode(14) // lmul
	OP_LMULU = Opcode(15) // lmulu
	OP_DIVUD = Opcode(16) // divud
	OP_CMP   = Opcode(17) // cmp
	OP_CMPU  = Opcode(18) // cmpu
	OP_MASK  = Opcode(19) // mask
	OP_FF1   = Opcode(20) // ff1
	OP_FF0   = Opcode(21) // ff0

	OP_AND    = Opcode(22) // and
	OP_ANDI   = Opcode(23) // andi
	OP_OR     = Opcode(24) // or
	OP_ORI    = Opcode(25) // ori
	OP_XOR    = Opcode(26) // xor
	OP_XORI   = Opcode(27) // xori
	OP_NOT    = Opcode(28) // not
	OP_CLR    = Opcode(29) // clr
	OP_SET    = Opcode(30) // set
	OP_EXT    = Opcode(31) // ext
	OP_EXTU   = Opcode(32) // extu
	OP_MAK    = Opcode(33) // mak
	OP_MAKN   = Opcode(34) // makn
	OP_ROT    = Opcode(35) // rot
	OP_EXT_B  = Opcode(36) // ext.b
	OP_EXT_H  = Opcode(37) // ext.h
	OP_EXTU_B = Opcode(38) // extu.b
	OP_EXTU_H = Opcode(39) // extu.h

	OP_BEQ  = Opcode(40) // beq
	OP_BNE  = Opcode(41) // bne
	OP_BGT  = Opcode(42) // bgt
	OP_BLT  = Opcode(43) // blt
	OP_BGE  = Opcode(44) // bge
	OP_BLE  = Opcode(45) // ble
	OP_JR   = Opcode(46) // jr
	OP_JAL  = Opcode(47) // jal
	OP_LDCR = Opcode(48) // ldcr
	OP_STCR = Opcode(49) // stcr
	OP_RTE  = Opcode(50) // rte
	OP_TRAP = Opcode(51) // trap
	OP_TBND = Opcode(52) // tbnd

	OP_FADD = Opcode(53) // fadd
	OP_FSUB = Opcode(54) // fsub
	OP_FMUL = Opcode(55) // fmul
	OP_FDIV = Opcode(56) // fdiv
	OP_FCMP = Opcode(57) // fcmp
	OP_FLT  = Opcode(58) // flt
	OP_NINT = Opcode(59) // nint

	OP_VADD   = Opcode(60) // vadd
	OP_VSUB   = Opcode(61) // vsub
	OP_VMUL   = Opcode(62) // vmul
	OP_VDIV   = Opcode(63) // vdiv
	OP_VMOV   = Opcode(64) // vmov
	OP_VEQ    = Opcode(65) // veq
	OP_VGT    = Opcode(66) // vgt
	OP_VLT    = Opcode(67) // vlt
	OP_VMAX   = Opcode(68) // vmax
	OP_VMIN   = Opcode(69) // vmin
	OP_VSHUF  = Opcode(70) // vshuf
	OP_VILH   = Opcode(71) // vilh
	OP_VILL   = Opcode(72) // vill
	OP_VEXTB  = Opcode(73) // vextb
	OP_VINSB  = Opcode(74) // vinsb
	OP_VPKBH  = Opcode(75) // vpkbh
	OP_VPKHW  = Opcode(76) // vpkhw
	OP_VUPKBH = Opcode(77) // vupkbh
	OP_VUPKHW = Opcode(78) // vupkhw

	OP_ICACHE = Opcode(79) // icache
	OP_DCACHE = Opcode(80) // dcache
	OP_FLUSHC = Opcode(81) // flushc
	OP_CINV   = Opcode(82) // cinv
	OP_CFLUSH = Opcode(83) // cflush
	OP_CPREF  = Opcode(84) // cpref

	OP_PTBR   = Opcode(85) // ptbr
	OP_TLBINV = Opcode(86) // tlbinv
	OP_TLBLD  = Opcode(87) // tlbld
	OP_XLATE  = Opcode(88) // xlate

	OP_LD   = Opcode(89) // ld
	OP_ST   = Opcode(90) // st
	OP_LD_B = Opcode(91) // ld.b
	OP_ST_B = Opcode(92) // st.b
	OP_LD_H = Opcode(93) // ld.h
	OP_ST_H = Opcode(94) // st.h
	OP_LD_D = Opcode(95) // ld.d
	OP_ST_D = Opcode(96) // st.d
	OP_XMEM = Opcode(97) // xmem

)

// Opcodes returns all of the valid opcodes, in order.
func Opcodes() iter.Seq[Opcode] {
	return func(yield func(op Opcode) bool) {
		for op := OP_ADD; op <= OP_XMEM; op++ {
			if !yield(op) {
				return
			}
		}
	}
}

// Class is an opcode execution class.
type Class int

//go:generate go tool stringer -linecomment -type=Class
const (
	CLASS_INTEGER = Class(0) // integer
	CLASS_LOGICAL = Class(1) // logical
	CLASS_CONTROL = Class(2) // control
	CLASS_FLOAT   = Class(3) // float
	CLASS_VECTOR  = Class(4) // vector
	CLASS_SYSTEM  = Class(5) // system
	CLASS_MMU     = Class(6) // mmu
	CLASS_MEMORY  = Class(7) // memory
	CLASS_INVALID = Class(8) // invalid
)

// Class returns the execution class of the opcode.
func (op Opcode) Class() Class {
	switch {
	case op < OP_ADD:
		return CLASS_INVALID
	case op < OP_AND:
		return CLASS_INTEGER
	case op < OP_BEQ:
		return CLASS_LOGICAL
	case op < OP_FADD:
		return CLASS_CONTROL
	case op < OP_VADD:
		return CLASS_FLOAT
	case op < OP_ICACHE:
		return CLASS_VECTOR
	case op < OP_PTBR:
		return CLASS_SYSTEM
	case op < OP_LD:
		return CLASS_MMU
	case op <= OP_XMEM:
		return CLASS_MEMORY
	}

	return CLASS_INVALID
}

// Format is the assembly operand layout of an opcode.
type Format int

const (
	FORMAT_NONE         = Format(0)  // no operands
	FORMAT_D            = Format(1)  // d
	FORMAT_S1           = Format(2)  // s1
	FORMAT_S1_S2        = Format(3)  // s1, s2
	FORMAT_D_S1         = Format(4)  // d, s1
	FORMAT_D_S1_S2      = Format(5)  // d, s1, s2
	FORMAT_D_S1_IMM     = Format(6)  // d, s1, imm
	FORMAT_D_S1_S2_IMM  = Format(7)  // d, s1, s2, imm
	FORMAT_D_S1_OFFSET  = Format(8)  // d, s1, offset
	FORMAT_S1_S2_OFFSET = Format(9)  // s1, s2, offset
	FORMAT_VECTOR       = Format(10) // vector
	FORMAT_SELECT       = Format(11) // cache operation
)

// Format returns the assembly operand layout of the opcode.
func (op Opcode) Format() (format Format) {
	switch op {
	case OP_RTE, OP_FLUSHC, OP_CINV, OP_CFLUSH, OP_CPREF, OP_TLBINV, OP_TLBLD:
		format = FORMAT_NONE
	case OP_LDCR:
		format = FORMAT_D
	case OP_JR, OP_JAL, OP_STCR, OP_PTBR:
		format = FORMAT_S1
	case OP_CMP, OP_CMPU, OP_TBND, OP_FCMP:
		format = FORMAT_S1_S2
	case OP_FF1, OP_FF0, OP_NOT,
		OP_EXT_B, OP_EXT_H, OP_EXTU_B, OP_EXTU_H,
		OP_FLT, OP_NINT,
		OP_VMOV, OP_VUPKBH, OP_VUPKHW,
		OP_XLATE:
		format = FORMAT_D_S1
	case OP_ADDI, OP_ADDUI, OP_SUBI, OP_SUBUI, OP_ANDI, OP_ORI, OP_XORI:
		format = FORMAT_D_S1_IMM
	case OP_VINSB:
		format = FORMAT_D_S1_S2_IMM
	case OP_BEQ, OP_BNE, OP_BGT, OP_BLT, OP_BGE, OP_BLE:
		format = FORMAT_S1_S2_OFFSET
	case OP_TRAP:
		format = FORMAT_VECTOR
	case OP_ICACHE, OP_DCACHE:
		format = FORMAT_SELECT
	default:
		if op.Class() == CLASS_MEMORY {
			format = FORMAT_D_S1_OFFSET
		} else {
			format = FORMAT_D_S1_S2
		}
	}

	return
}

// Privileged returns true if the opcode requires supervisor mode.
func (op Opcode) Privileged() bool {
	switch op {
	case OP_ICACHE, OP_DCACHE, OP_FLUSHC, OP_CINV, OP_CFLUSH, OP_PTBR, OP_TLBINV, OP_RTE:
		return true
	}
	return false
}

// Execute the opcode using the operand fields of the cpu.
func (op Opcode) Execute(cpu *Cpu, mem *memory.Memory) {
	switch op.Class() {
	case CLASS_INTEGER:
		cpu.doInteger(op)
	case CLASS_LOGICAL:
		cpu.doLogical(op)
	case CLASS_CONTROL:
		cpu.doControl(op)
	case CLASS_FLOAT:
		cpu.doFloat(op)
	case CLASS_VECTOR:
		cpu.doVector(op)
	case CLASS_SYSTEM:
		cpu.doSystem(op)
	case CLASS_MMU:
		cpu.doMmu(op, mem)
	case CLASS_MEMORY:
		cpu.doMemory(op, mem)
	}
}

// CacheOp is the operation selector of the cache control opcodes.
type CacheOp int

//go:generate go tool stringer -linecomment -type=CacheOp
const (
	CACHE_OP_INVALIDATE = CacheOp(0) // inv
	CACHE_OP_FLUSH      = CacheOp(1) // flush
	CACHE_OP_LOAD_LOCK  = CacheOp(2) // ldlock
	CACHE_OP_STORE_LOCK = CacheOp(3) // stlock
	CACHE_OP_PREFETCH   = CacheOp(4) // prefetch
	CACHE_OP_CLEAR_LOCK = CacheOp(5) // unlock
)

// Code is a decoded instruction: an opcode with its operand fields.
type Code struct {
	Opcode Opcode
	D      int
	S1     int
	S2     int
	Imm    int16
	Offset int16
	Select CacheOp
	Vector uint8
}

// Load copies the operand fields into the cpu.
func (code Code) Load(cpu *Cpu) {
	cpu.D = code.D
	cpu.S1 = code.S1
	cpu.S2 = code.S2
	cpu.Imm = code.Imm
	cpu.Offset = code.Offset
	cpu.Select = code.Select
	cpu.Vector = code.Vector
}

// Execute loads the operand fields into the cpu, then executes the opcode.
func (code Code) Execute(cpu *Cpu, mem *memory.Memory) {
	code.Load(cpu)
	code.Opcode.Execute(cpu, mem)
}

// String returns the assembly language representation of the instruction.
func (code Code) String() (out string) {
	op := code.Opcode.String()
	d := code.D & (REGISTER_COUNT - 1)
	s1 := code.S1 & (REGISTER_COUNT - 1)
	s2 := code.S2 & (REGISTER_COUNT - 1)

	switch code.Opcode.Format() {
	case FORMAT_NONE:
		out = op
	case FORMAT_D:
		out = fmt.Sprintf("%v r%d", op, d)
	case FORMAT_S1:
		out = fmt.Sprintf("%v r%d", op, s1)
	case FORMAT_S1_S2:
		out = fmt.Sprintf("%v r%d, r%d", op, s1, s2)
	case FORMAT_D_S1:
		out = fmt.Sprintf("%v r%d, r%d", op, d, s1)
	case FORMAT_D_S1_S2:
		out = fmt.Sprintf("%v r%d, r%d, r%d", op, d, s1, s2)
	case FORMAT_D_S1_IMM:
		out = fmt.Sprintf("%v r%d, r%d, %d", op, d, s1, code.Imm)
	case FORMAT_D_S1_S2_IMM:
		out = fmt.Sprintf("%v r%d, r%d, r%d, %d", op, d, s1, s2, code.Imm)
	case FORMAT_D_S1_OFFSET:
		out = fmt.Sprintf("%v r%d, r%d, %d", op, d, s1, code.Offset)
	case FORMAT_S1_S2_OFFSET:
		out = fmt.Sprintf("%v r%d, r%d, %d", op, s1, s2, code.Offset)
	case FORMAT_VECTOR:
		out = fmt.Sprintf("%v %d", op, code.Vector)
	case FORMAT_SELECT:
		out = fmt.Sprintf("%v %v", op, code.Select)
	}

	return
}
