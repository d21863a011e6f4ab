package memory

import (
	"errors"

	"github.com/ezrec/m88k/translate"
)

var f = translate.From

var (
	// Memory fault kinds, matched with errors.Is().
	ErrFault = errors.New(f("memory fault"))
)

// ErrPageFault is a translation through an invalid page table entry.
type ErrPageFault uint32

func (err ErrPageFault) Error() string {
	return f("page fault at 0x%08x", uint32(err))
}

func (err ErrPageFault) Is(target error) (ok bool) {
	_, ok = target.(ErrPageFault)
	return ok || target == ErrFault
}

// ErrWriteProtect is a write through a read-only page table entry.
type ErrWriteProtect uint32

func (err ErrWriteProtect) Error() string {
	return f("write protection violation at 0x%08x", uint32(err))
}

func (err ErrWriteProtect) Is(target error) (ok bool) {
	_, ok = target.(ErrWriteProtect)
	return ok || target == ErrFault
}

// ErrInvalidAddress is a physical address outside of memory.
type ErrInvalidAddress uint32

func (err ErrInvalidAddress) Error() string {
	return f("invalid address 0x%08x", uint32(err))
}

func (err ErrInvalidAddress) Is(target error) (ok bool) {
	_, ok = target.(ErrInvalidAddress)
	return ok || target == ErrFault
}
