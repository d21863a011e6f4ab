package cpu

import (
	"iter"
)

const (
	INSTRUCTION_SIZE = 4 // Bytes per instruction.
)

// Statement is a line of assembled code with its source location.
type Statement struct {
	LineNo    int      // Source line number.
	Pc        uint32   // Address of the instruction.
	Words     []string // Source words, after expansion.
	Code      Code     // Decoded instruction.
	LinkLabel string   // Branch target, resolved when linking.
}

// Program is an assembled program. Statement n is at address n * 4.
type Program struct {
	Statements []Statement
}

type Debug struct {
	*Statement
}

// Debug returns the statement at an address, if any.
func (prog *Program) Debug(pc uint32) (dbg Debug) {
	for n, stmt := range prog.Statements {
		if stmt.Pc == pc {
			dbg = Debug{
				Statement: &prog.Statements[n],
			}
			break
		}
	}

	return
}

// Size returns the program size in bytes.
func (prog *Program) Size() uint32 {
	return uint32(len(prog.Statements)) * INSTRUCTION_SIZE
}

// Fetch returns the instruction at an address.
func (prog *Program) Fetch(pc uint32) (code Code, ok bool) {
	if pc%INSTRUCTION_SIZE != 0 || pc >= prog.Size() {
		return
	}

	code = prog.Statements[pc/INSTRUCTION_SIZE].Code
	ok = true
	return
}

// Codes iterates over the instructions and their addresses.
func (prog *Program) Codes() iter.Seq2[uint32, Code] {
	return func(yield func(pc uint32, code Code) bool) {
		for _, stmt := range prog.Statements {
			if !yield(stmt.Pc, stmt.Code) {
				return
			}
		}
	}
}
