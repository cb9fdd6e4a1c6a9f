package cpu

import (
	"errors"

	"github.com/ezrec/gtuc312/translate"
)

var f = translate.From

var (
	// Cpu errors
	ErrHalted         = errors.New(f("cpu halted"))
	ErrAddressRange   = errors.New(f("address out of range"))
	ErrProtection     = errors.New(f("protected address in user mode"))
	ErrCellType       = errors.New(f("cell type mismatch"))
	ErrNotInstruction = errors.New(f("cell is not an instruction"))
	ErrStackInvalid   = errors.New(f("stack pointer invalid"))
	ErrHandlerInvalid = errors.New(f("syscall handler invalid"))
	ErrChannelSend    = errors.New(f("output channel send"))
	ErrOverflow       = errors.New(f("integer overflow"))

	// Instruction decode errors
	ErrOpcodeEmpty   = errors.New(f("instruction empty"))
	ErrOpcodeUnknown = errors.New(f("opcode unknown"))
	ErrOpcodeArity   = errors.New(f("operand count"))
	ErrOpcodeOperand = errors.New(f("operand not an integer"))
	ErrOpcodeArg1    = errors.New(f("arg1"))
	ErrOpcodeArg2    = errors.New(f("arg2"))

	// Load warnings
	ErrLoadRange = errors.New(f("load address out of range"))
)

// ErrAccess describes a failed address validation.
type ErrAccess struct {
	Address int64
	Access  Access
	Mode    Mode
	Err     error
}

func (err *ErrAccess) Error() string {
	return f("%v %v at %v in %v mode", err.Err, err.Access.String(), err.Address, err.Mode.String())
}

func (err *ErrAccess) Unwrap() error {
	return err.Err
}

// ErrOpcode is an instruction that failed to decode or execute.
type ErrOpcode string

func (eo ErrOpcode) Error() string {
	return f("bad instruction '%v'", string(eo))
}

func (eo ErrOpcode) Is(err error) (ok bool) {
	_, ok = err.(ErrOpcode)
	return
}

// ErrParseNumber is an operand that is not a decimal integer.
type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

// ErrLoad is a skipped load item.
type ErrLoad struct {
	Address int64
	Err     error
}

func (err *ErrLoad) Error() string {
	return f("address %v: %v", err.Address, err.Err)
}

func (err *ErrLoad) Unwrap() error {
	return err.Err
}
