package emulator

import (
	"errors"

	"github.com/ezrec/gtuc312/translate"
)

var f = translate.From

var (
	ErrLoadWarnings = errors.New(f("program did not load cleanly"))
)

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	Address int64
	LineNo  int
	Err     error
}

func (err *ErrRuntime) Error() string {
	if err.LineNo == 0 {
		return f("address %v %v", err.Address, err.Err)
	}
	return f("line %d address %v %v", err.LineNo, err.Address, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
