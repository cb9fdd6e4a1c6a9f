package cpu

import (
	"errors"
	"strconv"
	"strings"
)

// Opcode is an instruction mnemonic.
type Opcode int

//go:generate go tool stringer -linecomment -type=Opcode
const (
	OP_INVALID       = Opcode(0)  // ?
	OP_HLT           = Opcode(1)  // HLT
	OP_SET           = Opcode(2)  // SET
	OP_CPY           = Opcode(3)  // CPY
	OP_CPYI          = Opcode(4)  // CPYI
	OP_CPYI2         = Opcode(5)  // CPYI2
	OP_ADD           = Opcode(6)  // ADD
	OP_ADDI          = Opcode(7)  // ADDI
	OP_SUBI          = Opcode(8)  // SUBI
	OP_JIF           = Opcode(9)  // JIF
	OP_PUSH          = Opcode(10) // PUSH
	OP_POP           = Opcode(11) // POP
	OP_CALL          = Opcode(12) // CALL
	OP_RET           = Opcode(13) // RET
	OP_USER          = Opcode(14) // USER
	OP_SYSCALL_PRN   = Opcode(15) // SYSCALL_PRN
	OP_SYSCALL_HLT   = Opcode(16) // SYSCALL_HLT
	OP_SYSCALL_YIELD = Opcode(17) // SYSCALL_YIELD
)

const op_count = OP_SYSCALL_YIELD + 1

// Number of operands for each opcode.
var _opcode_arity = [op_count]int{
	OP_SET:         2,
	OP_CPY:         2,
	OP_CPYI:        2,
	OP_CPYI2:       2,
	OP_ADD:         2,
	OP_ADDI:        2,
	OP_SUBI:        2,
	OP_JIF:         2,
	OP_PUSH:        1,
	OP_POP:         1,
	OP_CALL:        1,
	OP_USER:        1,
	OP_SYSCALL_PRN: 1,
}

var _opcode_lookup = func() map[string]Opcode {
	lookup := make(map[string]Opcode, op_count)
	for op := OP_HLT; op < op_count; op++ {
		lookup[op.String()] = op
	}
	return lookup
}()

// ParseOpcode returns the opcode of a mnemonic, in any case.
func ParseOpcode(name string) (op Opcode, ok bool) {
	op, ok = _opcode_lookup[strings.ToUpper(name)]
	return
}

// Arity returns the number of operands the opcode takes.
func (op Opcode) Arity() int {
	if op < 0 || op >= op_count {
		return 0
	}

	return _opcode_arity[op]
}

// IsSyscall returns true for the trap opcodes.
func (op Opcode) IsSyscall() bool {
	switch op {
	case OP_SYSCALL_PRN, OP_SYSCALL_HLT, OP_SYSCALL_YIELD:
		return true
	}

	return false
}

// Instruction is a decoded instruction.
type Instruction struct {
	Op   Opcode
	Args []int64
}

// String returns the canonical text of the instruction.
func (inst Instruction) String() string {
	words := []string{inst.Op.String()}
	for _, arg := range inst.Args {
		words = append(words, strconv.FormatInt(arg, 10))
	}

	return strings.Join(words, " ")
}

// Decode parses the text of an instruction.
//
// The mnemonic is case insensitive. Operands are decimal integers separated
// by whitespace; trailing commas on an operand are dropped. When the mnemonic
// is known, inst.Op is set even if the operands fail to decode.
func Decode(text string) (inst Instruction, err error) {
	defer func() {
		if err != nil {
			err = errors.Join(ErrOpcode(text), err)
		}
	}()

	words := strings.Fields(text)
	if len(words) == 0 {
		err = ErrOpcodeEmpty
		return
	}

	op, ok := ParseOpcode(words[0])
	if !ok {
		err = ErrOpcodeUnknown
		return
	}
	inst.Op = op

	words = words[1:]
	if len(words) != op.Arity() {
		err = ErrOpcodeArity
		return
	}

	if len(words) > 0 {
		inst.Args = make([]int64, len(words))
	}
	for n, word := range words {
		var value int64
		word = strings.TrimRight(word, ",")
		value, err = strconv.ParseInt(word, 10, 64)
		if err != nil {
			err = errors.Join(ErrOpcodeOperand, ErrParseNumber(word))
			return
		}
		inst.Args[n] = value
	}

	return
}
