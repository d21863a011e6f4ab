package memory

const (
	PAGE_SHIFT = 12                     // Virtual address bits below the page index.
	PAGE_SIZE  = 1 << PAGE_SHIFT        // Bytes per page.
	PAGE_MASK  = ^uint32(PAGE_SIZE - 1) // Mask of the page number bits.

	PTE_SIZE       = 4      // Bytes per page table entry.
	PTE_VALID      = 1 << 0 // Entry maps a page.
	PTE_WRITABLE   = 1 << 1 // Page may be written.
	PTE_SUPERVISOR = 1 << 2 // Page is reserved to supervisor mode.
)

// PageTableEntry is the decoded form of a 32-bit page table entry.
type PageTableEntry struct {
	PhysicalPage uint32 // Physical address of the page, 4KiB aligned.
	Valid        bool
	Writable     bool
	Supervisor   bool
}

// NewPageTableEntry creates a valid, writable, user-accessible mapping.
func NewPageTableEntry(physical uint32) PageTableEntry {
	return PageTableEntry{
		PhysicalPage: physical & PAGE_MASK,
		Valid:        true,
		Writable:     true,
	}
}

// Uint32 encodes the entry.
func (pte PageTableEntry) Uint32() (value uint32) {
	value = pte.PhysicalPage & PAGE_MASK
	if pte.Valid {
		value |= PTE_VALID
	}
	if pte.Writable {
		value |= PTE_WRITABLE
	}
	if pte.Supervisor {
		value |= PTE_SUPERVISOR
	}
	return
}

// DecodePageTableEntry decodes an entry; reserved low bits are ignored.
func DecodePageTableEntry(value uint32) PageTableEntry {
	return PageTableEntry{
		PhysicalPage: value & PAGE_MASK,
		Valid:        (value & PTE_VALID) != 0,
		Writable:     (value & PTE_WRITABLE) != 0,
		Supervisor:   (value & PTE_SUPERVISOR) != 0,
	}
}
