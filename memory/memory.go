// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package memory implements the physical memory and page table MMU of the
// M88000 emulator.
package memory

import (
	"fmt"
	"iter"
	"maps"
)

const (
	MEMORY_SIZE = 16 * 1024 * 1024 // Default physical memory size.
)

var _memory_defines = map[string]string{
	"MEMORY_SIZE":    fmt.Sprintf("0x%x", MEMORY_SIZE),
	"PAGE_SIZE":      fmt.Sprintf("0x%x", PAGE_SIZE),
	"PAGE_MASK":      fmt.Sprintf("0x%x", PAGE_MASK),
	"PTE_VALID":      fmt.Sprintf("0x%x", PTE_VALID),
	"PTE_WRITABLE":   fmt.Sprintf("0x%x", PTE_WRITABLE),
	"PTE_SUPERVISOR": fmt.Sprintf("0x%x", PTE_SUPERVISOR),
}

// Memory is a flat physical byte array behind an optional page table MMU.
//
// When the MMU is enabled, every byte access walks the page table; there
// is no translation cache.
type Memory struct {
	data          []byte
	mmuEnabled    bool
	pageTableBase uint32
}

// NewMemory creates a zeroed memory of the given size in bytes.
// A size of zero selects MEMORY_SIZE.
func NewMemory(size uint32) (mem *Memory) {
	if size == 0 {
		size = MEMORY_SIZE
	}

	mem = &Memory{
		data: make([]byte, size),
	}

	return
}

// Defines for the memory subsystem.
func (mem *Memory) Defines() iter.Seq2[string, string] {
	return maps.All(_memory_defines)
}

// Size returns the physical memory size in bytes.
func (mem *Memory) Size() int {
	return len(mem.data)
}

// Reset zeros memory, disables the MMU and clears the page table base.
func (mem *Memory) Reset() {
	clear(mem.data)
	mem.mmuEnabled = false
	mem.pageTableBase = 0
}

// SetMmuEnabled enables or disables address translation.
func (mem *Memory) SetMmuEnabled(enabled bool) {
	mem.mmuEnabled = enabled
}

// MmuEnabled returns true if address translation is enabled.
func (mem *Memory) MmuEnabled() bool {
	return mem.mmuEnabled
}

// SetPageTableBase sets the physical address of the page table.
// The base is forced to page alignment.
func (mem *Memory) SetPageTableBase(base uint32) {
	mem.pageTableBase = base & PAGE_MASK
}

// PageTableBase returns the physical address of the page table.
func (mem *Memory) PageTableBase() uint32 {
	return mem.pageTableBase
}

// physical checks that [addr, addr+size) lies in memory.
func (mem *Memory) physical(addr uint32, size int) (err error) {
	if int64(addr)+int64(size) > int64(len(mem.data)) {
		err = ErrInvalidAddress(addr)
	}
	return
}

// ReadPhysical32 reads a big-endian word, bypassing the MMU.
func (mem *Memory) ReadPhysical32(addr uint32) (value uint32, err error) {
	err = mem.physical(addr, 4)
	if err != nil {
		return
	}

	data := mem.data[addr : addr+4]
	value = uint32(data[0])<<24 | uint32(data[1])<<16 | uint32(data[2])<<8 | uint32(data[3])
	return
}

// WritePhysical32 writes a big-endian word, bypassing the MMU.
func (mem *Memory) WritePhysical32(addr uint32, value uint32) (err error) {
	err = mem.physical(addr, 4)
	if err != nil {
		return
	}

	data := mem.data[addr : addr+4]
	data[0] = byte(value >> 24)
	data[1] = byte(value >> 16)
	data[2] = byte(value >> 8)
	data[3] = byte(value)
	return
}

// Translate maps a virtual address to a physical address.
//
// With the MMU disabled, the mapping is the identity. Otherwise the page
// table entry at PageTableBase() + (vaddr >> 12) * 4 is read from physical
// memory; an invalid entry is a page fault, and a write through an entry
// without the writable bit is a write protection fault.
func (mem *Memory) Translate(vaddr uint32, write bool) (paddr uint32, err error) {
	if !mem.mmuEnabled {
		paddr = vaddr
		return
	}

	index := vaddr >> PAGE_SHIFT
	value, err := mem.ReadPhysical32(mem.pageTableBase + index*PTE_SIZE)
	if err != nil {
		return
	}

	pte := DecodePageTableEntry(value)
	if !pte.Valid {
		err = ErrPageFault(vaddr)
		return
	}

	if write && !pte.Writable {
		err = ErrWriteProtect(vaddr)
		return
	}

	paddr = pte.PhysicalPage | (vaddr & ^PAGE_MASK)
	return
}

// Read8 reads a byte from a virtual address.
func (mem *Memory) Read8(addr uint32) (value byte, err error) {
	paddr, err := mem.Translate(addr, false)
	if err != nil {
		return
	}

	err = mem.physical(paddr, 1)
	if err != nil {
		return
	}

	value = mem.data[paddr]
	return
}

// Write8 writes a byte to a virtual address.
func (mem *Memory) Write8(addr uint32, value byte) (err error) {
	paddr, err := mem.Translate(addr, true)
	if err != nil {
		return
	}

	err = mem.physical(paddr, 1)
	if err != nil {
		return
	}

	mem.data[paddr] = value
	return
}

// Read32 reads a big-endian word from a virtual address, one byte at a time.
// Each byte is translated separately, so a word may straddle two pages.
func (mem *Memory) Read32(addr uint32) (value uint32, err error) {
	for n := range uint32(4) {
		var b byte
		b, err = mem.Read8(addr + n)
		if err != nil {
			return
		}
		value = (value << 8) | uint32(b)
	}

	return
}

// Write32 writes a big-endian word to a virtual address, one byte at a time.
// A fault stops the write; bytes before the faulting byte stay written.
func (mem *Memory) Write32(addr uint32, value uint32) (err error) {
	for n := range uint32(4) {
		err = mem.Write8(addr+n, byte(value>>(24-8*n)))
		if err != nil {
			return
		}
	}

	return
}
