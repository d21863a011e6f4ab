package emulator

import (
	"errors"

	"github.com/ezrec/m88k/translate"
)

var f = translate.From

var (
	ErrPcInvalid = errors.New(f("program counter outside of program"))
	ErrTickLimit = errors.New(f("tick limit reached"))
)

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	Pc     uint32
	LineNo int
	Err    error
}

func (err *ErrRuntime) Error() string {
	return f("pc %08x line %d %v", err.Pc, err.LineNo, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
