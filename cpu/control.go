package cpu

// doControl executes the control flow and trap opcodes.
//
// A branch not taken leaves the PC unchanged; sequential advance is the
// job of the dispatcher.
func (cpu *Cpu) doControl(op Opcode) {
	a := cpu.Reg(cpu.S1)
	b := cpu.Reg(cpu.S2)

	var taken bool

	switch op {
	case OP_BEQ:
		taken = a == b
	case OP_BNE:
		taken = a != b
	case OP_BGT:
		taken = int32(a) > int32(b)
	case OP_BLT:
		taken = int32(a) < int32(b)
	case OP_BGE:
		taken = int32(a) >= int32(b)
	case OP_BLE:
		taken = int32(a) <= int32(b)
	case OP_JR:
		cpu.Pc = a
	case OP_JAL:
		// The link address replaces the jump target register.
		link := cpu.Pc + 4
		cpu.Pc = a
		cpu.SetReg(cpu.S1, link)
	case OP_LDCR:
		cpu.SetReg(cpu.D, uint32(cpu.Cr0))
	case OP_STCR:
		cpu.Cr0 = Flags(a)
	case OP_RTE:
		cpu.Pc = cpu.Sxip
		cpu.Nip = cpu.Snip
		cpu.Fip = cpu.Sfip
	case OP_TRAP:
		cpu.Cr0.Set(CR0_TRAP)
		cpu.TrapVector = cpu.Vector
	case OP_TBND:
		if a > b {
			cpu.Cr0.Set(CR0_BOUNDS_CHECK)
		}
	}

	if taken {
		cpu.Pc += uint32(int32(cpu.Offset))
	}
}
