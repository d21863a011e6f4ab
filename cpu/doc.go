// Package cpu implements the processor and assembler of the M88000 emulator.
//
// The processor consists of 32 general-purpose 32-bit registers (r0-r31, all
// writable), a program counter with next/fetch pointers and their shadow
// copies, the CR0 control and status register, and a privilege level.
// Instructions never fail: integer, floating point and memory faults are
// recorded as sticky bits in CR0 for a supervisor to inspect.
//
// The assembler provides a textual assembly language for the instruction set,
// supporting macros, labels, equates, and compile-time expression evaluation.
package cpu
